// Package output provides terminal output formatting utilities for the
// debcatalog CLI. It depends on nothing inside the module so any package can
// use it.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintRunHeader prints a dim separator line with a centered label, used
// between watch-mode runs.
func PrintRunHeader(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintPassed prints a green checkmark line.
func PrintPassed(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintSkipped prints a dim dash line for a check that did not run.
func PrintSkipped(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s (skipped)\n", dim("-"), message)
}

// PrintFailed prints a red cross line.
func PrintFailed(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// PrintSummary prints the closing counts of a check run.
func PrintSummary(out io.Writer, passed, errs, warnings int) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", dim(fmt.Sprintf("%d passed, %d error(s), %d warning(s)", passed, errs, warnings)))
}
