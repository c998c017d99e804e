package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ariel-frischer/debcatalog/internal/version"
)

// TimestampLayout is the RFC 2822 date layout used in trailers.
const TimestampLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

var (
	packageRe      = regexp.MustCompile(`^[\w-]+$`)
	distributionRe = regexp.MustCompile(`^\w+$`)
)

// FormatTimestamp renders t the way dch does.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ValidationError describes an Entry that cannot be rendered.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validate checks that e renders to a record ParseHead and ValidateHead
// accept.
func (e *Entry) Validate() error {
	if !packageRe.MatchString(e.Package) {
		return &ValidationError{Field: "package", Message: fmt.Sprintf("invalid package name %q", e.Package)}
	}
	if e.Version.IsDateBased() {
		return &ValidationError{Field: "version", Message: "date-based versions cannot be recorded"}
	}
	if e.Revision < 1 {
		return &ValidationError{Field: "revision", Message: fmt.Sprintf("must be positive, got %d", e.Revision)}
	}
	if !distributionRe.MatchString(e.Distribution) {
		return &ValidationError{Field: "distribution", Message: fmt.Sprintf("invalid distribution %q", e.Distribution)}
	}
	if _, err := ParseUrgency(string(e.Urgency)); err != nil {
		return &ValidationError{Field: "urgency", Message: err.Error()}
	}
	if len(e.Changes) == 0 {
		return &ValidationError{Field: "changes", Message: "at least one change is required"}
	}
	for i, c := range e.Changes {
		if strings.TrimSpace(c) == "" || strings.Contains(c, "\n") {
			return &ValidationError{Field: fmt.Sprintf("changes[%d]", i), Message: "change must be a single non-empty line"}
		}
	}
	if strings.TrimSpace(e.Maintainer) == "" || strings.ContainsAny(e.Maintainer, "<>\n") {
		return &ValidationError{Field: "maintainer", Message: fmt.Sprintf("invalid maintainer name %q", e.Maintainer)}
	}
	if strings.TrimSpace(e.Email) == "" || strings.ContainsAny(e.Email, "<> \n") {
		return &ValidationError{Field: "email", Message: fmt.Sprintf("invalid email %q", e.Email)}
	}
	if strings.TrimSpace(e.Timestamp) == "" || strings.Contains(e.Timestamp, "\n") {
		return &ValidationError{Field: "timestamp", Message: "timestamp is required"}
	}
	return nil
}

// Render writes e in canonical form, followed by the blank line that
// separates it from the next record.
func Render(e *Entry, w io.Writer) error {
	if err := e.Validate(); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s) %s; urgency=%s\n\n", e.Package, e.FullVersion(), e.Distribution, e.Urgency)
	for _, c := range e.Changes {
		fmt.Fprintf(&sb, "  * %s\n", strings.TrimSpace(c))
	}
	fmt.Fprintf(&sb, "\n -- %s <%s>  %s\n\n", e.Maintainer, e.Email, e.Timestamp)

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderString is a convenience function that renders to a string.
func RenderString(e *Entry) (string, error) {
	var b strings.Builder
	if err := Render(e, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// PrependEntry returns the rendered entry followed by raw, untouched. If the
// entry cannot be rendered, raw is returned unchanged along with the error.
func PrependEntry(e *Entry, raw string) (string, error) {
	rendered, err := RenderString(e)
	if err != nil {
		return raw, fmt.Errorf("rendering %s entry: %w", e.Package, err)
	}
	return rendered + raw, nil
}

// NextRevision returns the packaging revision for a release of upstream on
// top of raw: 1 for an empty changelog or a new upstream version, otherwise
// the head revision plus one.
func NextRevision(raw string, upstream version.Version) (int, error) {
	head, err := ParseHead(raw)
	if err != nil {
		if IsEmpty(err) {
			return 1, nil
		}
		return 0, err
	}
	return nextRevision(head, upstream), nil
}

func nextRevision(head *Entry, upstream version.Version) int {
	if head == nil || !head.Version.Upstream().Equal(upstream.Upstream()) {
		return 1
	}
	return head.Revision + 1
}
