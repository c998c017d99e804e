package changelog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/version"
)

const (
	// HeaderPattern is the shape every record header line must have.
	HeaderPattern = `^[\w-]+ \([^)]+\) \w+; urgency=\w+$`
	// TrailerPattern is the shape of the maintainer sign-off line.
	TrailerPattern = `^ -- (.+) <([^<>]+)>  (.+)$`
)

var (
	headerRe  = regexp.MustCompile(`^([\w-]+) \(([^)]+)\) (\w+); urgency=(\w+)$`)
	trailerRe = regexp.MustCompile(TrailerPattern)
	versionRe = regexp.MustCompile(`^(.+)-(\d+)$`)
)

// ErrEmptyChangelog is returned when the changelog holds no record. It marks
// the Empty state: there is no prior release, which callers may treat as
// revision zero rather than a failure.
var ErrEmptyChangelog = errors.New("changelog is empty")

// IsEmpty reports whether err means the changelog has no record yet.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmptyChangelog)
}

// ParseError reports a changelog line that does not have the expected shape.
// It matches version.ErrFormat under errors.Is.
type ParseError struct {
	// Line is the 1-based line number within the changelog.
	Line    int
	Text    string
	Pattern string
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "changelog line %d: %s", e.Line, e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&sb, ": %q", e.Text)
	}
	if e.Pattern != "" {
		fmt.Fprintf(&sb, " (expected %s)", e.Pattern)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{version.ErrFormat, e.Err}
	}
	return []error{version.ErrFormat}
}

// ValidateHeadFormat reports whether the first line of raw is a well-formed
// record header.
func ValidateHeadFormat(raw string) bool {
	line, _, _ := strings.Cut(raw, "\n")
	return headerRe.MatchString(line)
}

// ParseHead parses the newest record of raw. Only the header line and the
// version in it are mandatory; body and trailer are read when present. The
// rest of the changelog is not inspected.
func ParseHead(raw string) (*Entry, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyChangelog
	}

	lines := strings.Split(raw, "\n")
	entry, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	end := recordEnd(lines)
	for _, line := range lines[1:end] {
		switch {
		case strings.HasPrefix(line, "  * "):
			entry.Changes = append(entry.Changes, strings.TrimSpace(line[4:]))
		case strings.HasPrefix(line, "    ") && len(entry.Changes) > 0:
			last := len(entry.Changes) - 1
			entry.Changes[last] += " " + strings.TrimSpace(line)
		case strings.HasPrefix(line, " -- "):
			if m := trailerRe.FindStringSubmatch(line); m != nil {
				entry.Maintainer = m[1]
				entry.Email = m[2]
				entry.Timestamp = m[3]
			}
		}
	}

	return entry, nil
}

// ValidateHead parses the head record and additionally requires at least one
// change line and a well-formed trailer, which is the shape PrependEntry
// writes.
func ValidateHead(raw string) (*Entry, error) {
	entry, err := ParseHead(raw)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(raw, "\n")
	end := recordEnd(lines)

	trailerLine := 0
	for i := 1; i < end; i++ {
		if strings.HasPrefix(lines[i], " -- ") {
			trailerLine = i
			break
		}
	}

	if len(entry.Changes) == 0 {
		return nil, &ParseError{Line: 1, Text: lines[0], Reason: "record has no change lines", Pattern: "'  * <change>'"}
	}
	if trailerLine == 0 {
		return nil, &ParseError{Line: end, Reason: "record has no maintainer trailer", Pattern: TrailerPattern}
	}
	if !trailerRe.MatchString(lines[trailerLine]) {
		return nil, &ParseError{Line: trailerLine + 1, Text: lines[trailerLine], Reason: "malformed trailer", Pattern: TrailerPattern}
	}
	return entry, nil
}

func parseHeader(line string) (*Entry, error) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return nil, &ParseError{Line: 1, Text: line, Reason: "malformed header", Pattern: HeaderPattern}
	}

	vm := versionRe.FindStringSubmatch(m[2])
	if vm == nil {
		return nil, &ParseError{Line: 1, Text: line, Reason: "version has no packaging revision", Pattern: "(MAJOR.MINOR.PATCH[~PRERELEASE]-REVISION)"}
	}

	full, err := version.Parse(m[2])
	if err != nil {
		return nil, &ParseError{Line: 1, Text: line, Reason: "unparseable version", Err: err}
	}
	if full.IsDateBased() {
		return nil, &ParseError{Line: 1, Text: line, Reason: "date-based version not allowed in changelog", Pattern: "(MAJOR.MINOR.PATCH[~PRERELEASE]-REVISION)"}
	}

	urgency, err := ParseUrgency(m[4])
	if err != nil {
		return nil, &ParseError{Line: 1, Text: line, Reason: "unknown urgency", Err: err}
	}

	return &Entry{
		Package:      m[1],
		Version:      full.Upstream(),
		Revision:     full.Revision,
		Distribution: m[3],
		Urgency:      urgency,
	}, nil
}

// recordEnd returns the index one past the last line of the head record:
// the line after its trailer, or the next header, or the end of input.
func recordEnd(lines []string) int {
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], " -- ") {
			return i + 1
		}
		if headerRe.MatchString(lines[i]) {
			return i
		}
	}
	return len(lines)
}
