package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/output"
	"github.com/fatih/color"
)

// urgencyColors maps urgency levels to their terminal styling.
var urgencyColors = map[Urgency]*color.Color{
	UrgencyLow:      color.New(color.FgGreen),
	UrgencyMedium:   color.New(color.FgBlue),
	UrgencyHigh:     color.New(color.FgYellow),
	UrgencyCritical: color.New(color.FgRed, color.Bold),
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a human-readable summary of e.
func FormatTerminal(e *Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeHeader(e, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, c := range e.Changes {
		prefix := "  - "
		text := c
		if !opts.Plain {
			text = wrapText(c, width-len(prefix), "    ")
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, text); err != nil {
			return err
		}
	}

	if e.Maintainer != "" {
		_, err := fmt.Fprintf(w, "\n  %s <%s>, %s\n", e.Maintainer, e.Email, e.Timestamp)
		return err
	}
	return nil
}

// writeHeader writes the package, version and urgency line.
func writeHeader(e *Entry, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s %s", e.Package, e.FullVersion())
	meta := fmt.Sprintf("%s, urgency %s", e.Distribution, e.Urgency)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s (%s)\n", header, meta)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	c, ok := urgencyColors[e.Urgency]
	if !ok {
		c = color.New(color.Reset)
	}
	_, err := fmt.Fprintf(w, "%s (%s)\n", bold(header), c.Sprint(meta))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
