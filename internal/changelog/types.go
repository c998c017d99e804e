package changelog

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/version"
)

// Urgency is the Debian upload urgency of a record.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// ValidUrgencies returns the accepted urgency levels in increasing order.
func ValidUrgencies() []Urgency {
	return []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}
}

// ParseUrgency validates an urgency keyword (case-insensitive).
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(s))
	for _, valid := range ValidUrgencies() {
		if u == valid {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown urgency %q (expected low, medium, high or critical)", s)
}

// Entry is a single changelog record. Version holds the semantic upstream
// version; the packaging revision is kept separately in Revision.
type Entry struct {
	Package      string
	Version      version.Version
	Revision     int
	Distribution string
	Urgency      Urgency
	Changes      []string
	Maintainer   string
	Email        string
	Timestamp    string
}

// FullVersion returns the version as written inside the header parentheses.
func (e *Entry) FullVersion() string {
	return e.Version.Upstream().WithRevision(e.Revision).String()
}

// State is the changelog lifecycle state.
type State int

const (
	// StateEmpty means no record has been written yet.
	StateEmpty State = iota
	// StateNonEmpty means at least one record exists.
	StateNonEmpty
)

func (s State) String() string {
	if s == StateEmpty {
		return "empty"
	}
	return "non-empty"
}

// Document is a changelog split into a structured head and the raw text it
// was read from. Raw is never rewritten.
type Document struct {
	Head *Entry
	Raw  string
}

// Load parses the head of raw. An empty changelog yields a Document with a
// nil Head and no error.
func Load(raw string) (*Document, error) {
	head, err := ParseHead(raw)
	if err != nil {
		if IsEmpty(err) {
			return &Document{Raw: raw}, nil
		}
		return nil, err
	}
	return &Document{Head: head, Raw: raw}, nil
}

// State reports whether the document holds any record.
func (d *Document) State() State {
	if d.Head == nil {
		return StateEmpty
	}
	return StateNonEmpty
}

// NextRevision is NextRevision applied to an already-loaded document.
func (d *Document) NextRevision(upstream version.Version) int {
	return nextRevision(d.Head, upstream)
}

// Prepend renders e ahead of the document text and returns the new document.
func (d *Document) Prepend(e *Entry) (*Document, error) {
	content, err := PrependEntry(e, d.Raw)
	if err != nil {
		return d, err
	}
	head := *e
	return &Document{Head: &head, Raw: content}, nil
}
