// Package version implements the upstream version model used across the
// catalog: parsing, ordering and bumping of semantic versions with Debian-style
// pre-release markers and packaging revisions, plus date-based identifiers.
//
// Two textual encodings are accepted and round-trip through String:
//
//	MAJOR.MINOR.PATCH[~PRERELEASE][-REVISION]   e.g. 2.19.0~beta.4-1
//	YYYYMMDD-REVISION                           e.g. 20240520-1
//
// Date-based identifiers are opaque: they are ordered but never bumped.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// SemanticPattern matches the semantic encoding.
	SemanticPattern = `^\d+\.\d+\.\d+(~[A-Za-z0-9.]+)?(-\d+)?$`
	// DatePattern matches the date-based encoding.
	DatePattern = `^\d{8}-\d+$`
)

var (
	semanticRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:~([A-Za-z0-9.]+))?(?:-(\d+))?$`)
	dateRe     = regexp.MustCompile(`^(\d{8})-(\d+)$`)
)

var (
	// ErrFormat is the root of every malformed version or header error.
	ErrFormat = errors.New("invalid format")
	// ErrUnsupportedOperation is returned when arithmetic is attempted on a
	// date-based version.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// FormatError reports text that matches none of the accepted encodings, or
// that matches one but would not survive a round trip through String:
// numeric components with leading zeros and a zero revision are rejected.
type FormatError struct {
	Input   string
	Pattern string
	Reason  string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid version %q", e.Input)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Pattern != "" {
		msg += fmt.Sprintf(" (expected %s)", e.Pattern)
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrFormat) match.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// Version is an immutable upstream version with an optional packaging
// revision. The zero value is 0.0.0.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	// Revision is the Debian packaging revision; 0 means absent.
	Revision int

	// date holds the YYYYMMDD identifier of a date-based version.
	date string
}

// New returns a plain semantic release.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses either encoding. Whitespace is not trimmed.
func Parse(text string) (Version, error) {
	if m := semanticRe.FindStringSubmatch(text); m != nil {
		return parseSemantic(text, m)
	}
	if m := dateRe.FindStringSubmatch(text); m != nil {
		rev, err := parseComponent(text, "revision", m[2])
		if err != nil {
			return Version{}, err
		}
		if rev == 0 {
			return Version{}, &FormatError{Input: text, Reason: "revision must be positive"}
		}
		return Version{date: m[1], Revision: rev}, nil
	}
	return Version{}, &FormatError{
		Input:   text,
		Pattern: fmt.Sprintf("%s or %s", SemanticPattern, DatePattern),
	}
}

func parseSemantic(text string, m []string) (Version, error) {
	var v Version
	var err error
	if v.Major, err = parseComponent(text, "major", m[1]); err != nil {
		return Version{}, err
	}
	if v.Minor, err = parseComponent(text, "minor", m[2]); err != nil {
		return Version{}, err
	}
	if v.Patch, err = parseComponent(text, "patch", m[3]); err != nil {
		return Version{}, err
	}
	v.Prerelease = m[4]
	if m[5] != "" {
		if v.Revision, err = parseComponent(text, "revision", m[5]); err != nil {
			return Version{}, err
		}
		if v.Revision == 0 {
			return Version{}, &FormatError{Input: text, Reason: "revision must be positive"}
		}
	}
	return v, nil
}

func parseComponent(text, name, digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &FormatError{Input: text, Reason: fmt.Sprintf("%s component out of range", name)}
	}
	// Atoi accepts leading zeros; String would drop them and break round-trip.
	if len(digits) > 1 && digits[0] == '0' {
		return 0, &FormatError{Input: text, Reason: fmt.Sprintf("%s component has leading zeros", name)}
	}
	return n, nil
}

// MustParse is Parse for constants and tests.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// IsDateBased reports whether v uses the YYYYMMDD-N encoding.
func (v Version) IsDateBased() bool {
	return v.date != ""
}

// Date returns the YYYYMMDD identifier of a date-based version.
func (v Version) Date() string {
	return v.date
}

// IsPrerelease reports whether v carries a ~ marker.
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// HasRevision reports whether v carries a packaging revision.
func (v Version) HasRevision() bool {
	return v.Revision > 0
}

// Upstream returns v without its packaging revision. A date-based version
// keeps its revision because the identifier is atomic.
func (v Version) Upstream() Version {
	if v.IsDateBased() {
		return v
	}
	v.Revision = 0
	return v
}

// WithRevision returns v with the packaging revision replaced.
func (v Version) WithRevision(rev int) Version {
	v.Revision = rev
	return v
}

// String renders v in the encoding it was parsed from.
func (v Version) String() string {
	if v.IsDateBased() {
		return fmt.Sprintf("%s-%d", v.date, v.Revision)
	}

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.Prerelease != "" {
		sb.WriteByte('~')
		sb.WriteString(v.Prerelease)
	}
	if v.Revision > 0 {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(v.Revision))
	}
	return sb.String()
}

// Format is the package-level inverse of Parse.
func Format(v Version) string {
	return v.String()
}

// Equal reports whether a and b order the same.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Compare orders two versions. It returns -1 if a < b, 0 if equal, 1 if a > b.
//
// Numeric components are compared first, then the pre-release marker (a
// version with a marker sorts before the same version without one, two
// markers compare as strings), then the packaging revision. Date-based
// versions sort after every semantic version and among themselves by date.
func Compare(a, b Version) int {
	switch {
	case a.IsDateBased() && b.IsDateBased():
		if c := strings.Compare(a.date, b.date); c != 0 {
			return c
		}
		return compareInt(a.Revision, b.Revision)
	case a.IsDateBased():
		return 1
	case b.IsDateBased():
		return -1
	}

	if c := compareInt(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareInt(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := compareInt(a.Patch, b.Patch); c != 0 {
		return c
	}

	switch {
	case a.Prerelease == "" && b.Prerelease != "":
		return 1
	case a.Prerelease != "" && b.Prerelease == "":
		return -1
	}
	if c := strings.Compare(a.Prerelease, b.Prerelease); c != 0 {
		return c
	}

	return compareInt(a.Revision, b.Revision)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
