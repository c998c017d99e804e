// Package consistency cross-references the category tags used by catalog
// applications against the category metadata declared by the store.
//
// The two directions are deliberately asymmetric: a category in use without
// metadata cannot be displayed and is an error; metadata nobody uses is only
// reported, since placeholder categories are allowed.
package consistency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/catalog"
	"github.com/ariel-frischer/debcatalog/internal/storeconfig"
)

// MissingCategoryMetadataError lists categories used by applications that
// have no store metadata.
type MissingCategoryMetadataError struct {
	IDs []string
	// UsedBy maps each missing id to the applications tagging it.
	UsedBy map[string][]string
}

func (e *MissingCategoryMetadataError) Error() string {
	parts := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		if apps := e.UsedBy[id]; len(apps) > 0 {
			parts = append(parts, fmt.Sprintf("%s (used by %s)", id, strings.Join(apps, ", ")))
			continue
		}
		parts = append(parts, id)
	}
	return "categories used by apps but missing metadata: " + strings.Join(parts, "; ")
}

// UnusedCategoryWarning lists declared categories no application uses. It is
// an observation, never a failure.
type UnusedCategoryWarning struct {
	IDs []string
}

func (w *UnusedCategoryWarning) Error() string {
	return "category metadata defined but not used by any app: " + strings.Join(w.IDs, ", ")
}

// ComputeMissing returns actual - declared, sorted.
func ComputeMissing(actual, declared map[string]struct{}) []string {
	return difference(actual, declared)
}

// ComputeUnused returns declared - actual, sorted.
func ComputeUnused(actual, declared map[string]struct{}) []string {
	return difference(declared, actual)
}

func difference(a, b map[string]struct{}) []string {
	out := []string{}
	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Result holds both channels of a category check.
type Result struct {
	Actual   []string
	Declared []string
	Missing  []string
	Unused   []string
	usedBy   map[string][]string
}

// Err returns the hard failure, if any.
func (r *Result) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	usedBy := make(map[string][]string, len(r.Missing))
	for _, id := range r.Missing {
		usedBy[id] = r.usedBy[id]
	}
	return &MissingCategoryMetadataError{IDs: r.Missing, UsedBy: usedBy}
}

// Warning returns the soft finding, if any.
func (r *Result) Warning() *UnusedCategoryWarning {
	if len(r.Unused) == 0 {
		return nil
	}
	return &UnusedCategoryWarning{IDs: r.Unused}
}

// Check derives the categories in use from entries and compares them with
// the metadata declared in cfg.
func Check(entries []catalog.Entry, cfg *storeconfig.Config) *Result {
	actual := catalog.CategoryUnion(entries)
	declared := cfg.DeclaredCategoryIDs()

	usedBy := make(map[string][]string)
	for _, e := range entries {
		for _, id := range e.Categories() {
			usedBy[id] = appendUnique(usedBy[id], e.AppID)
		}
	}

	return &Result{
		Actual:   sortedKeys(actual),
		Declared: sortedKeys(declared),
		Missing:  ComputeMissing(actual, declared),
		Unused:   ComputeUnused(actual, declared),
		usedBy:   usedBy,
	}
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set builds a string set from ids.
func Set(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
