// Package release prepends a new entry to the store changelog and keeps the
// repository version marker in step with it.
package release

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	"github.com/ariel-frischer/debcatalog/internal/version"
)

// ErrNoBaseVersion means neither the changelog nor the version marker names
// a version to release from.
var ErrNoBaseVersion = errors.New("no changelog history and no version marker")

// ErrMarker is returned when the version marker exists but cannot be read.
var ErrMarker = errors.New("unreadable version marker")

// Action selects how the next upstream version is derived.
type Action string

const (
	ActionPatch     Action = "patch"
	ActionMinor     Action = "minor"
	ActionMajor     Action = "major"
	ActionRepackage Action = "repackage"
)

// Actions returns every action in CLI order.
func Actions() []Action {
	return []Action{ActionPatch, ActionMinor, ActionMajor, ActionRepackage}
}

// ParseAction parses a CLI action name.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Actions() {
		if a == valid {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown release action %q: expected one of %v", s, Actions())
}

// Level returns the bump level, or false for a repackage.
func (a Action) Level() (version.Level, bool) {
	switch a {
	case ActionPatch:
		return version.LevelPatch, true
	case ActionMinor:
		return version.LevelMinor, true
	case ActionMajor:
		return version.LevelMajor, true
	default:
		return 0, false
	}
}

// Plan is the version arithmetic of one release.
type Plan struct {
	Action Action
	// Base is the upstream version released from.
	Base version.Version
	// BaseFromMarker is set when the changelog was empty and Base came from
	// the version marker.
	BaseFromMarker bool
	// Upstream is the new upstream version.
	Upstream version.Version
	Revision int
}

// Version returns the full version of the planned entry.
func (p Plan) Version() version.Version {
	return p.Upstream.WithRevision(p.Revision)
}

// Bumps reports whether the plan changes the upstream version.
func (p Plan) Bumps() bool {
	return p.Action != ActionRepackage
}

// DefaultChange is the change line used when none is given.
func (p Plan) DefaultChange() string {
	if p.Bumps() {
		return "Version bump to " + p.Upstream.String()
	}
	return fmt.Sprintf("Repackage %s (revision %d)", p.Upstream, p.Revision)
}

// ComputePlan derives the next version from the changelog head, or from
// marker when the changelog is empty. marker may be nil.
func ComputePlan(doc *changelog.Document, marker *version.Version, action Action) (Plan, error) {
	plan := Plan{Action: action}

	switch {
	case doc.Head != nil:
		plan.Base = doc.Head.Version.Upstream()
	case marker != nil:
		plan.Base = *marker
		plan.BaseFromMarker = true
	default:
		return Plan{}, ErrNoBaseVersion
	}

	plan.Upstream = plan.Base
	if level, ok := action.Level(); ok {
		next, err := version.Bump(plan.Base, level)
		if err != nil {
			return Plan{}, err
		}
		plan.Upstream = next
	}

	plan.Revision = doc.NextRevision(plan.Upstream)
	return plan, nil
}
