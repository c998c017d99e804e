package version

import (
	"fmt"
	"math"
	"strings"
)

// Level selects which component a bump increments.
type Level int

const (
	// LevelPatch increments the patch component.
	LevelPatch Level = iota
	// LevelMinor increments minor and resets patch.
	LevelMinor
	// LevelMajor increments major and resets minor and patch.
	LevelMajor
)

// String returns the CLI spelling of the level.
func (l Level) String() string {
	switch l {
	case LevelPatch:
		return "patch"
	case LevelMinor:
		return "minor"
	case LevelMajor:
		return "major"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Levels returns all valid levels in increasing order.
func Levels() []Level {
	return []Level{LevelPatch, LevelMinor, LevelMajor}
}

// ParseLevel converts "patch", "minor" or "major" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patch":
		return LevelPatch, nil
	case "minor":
		return LevelMinor, nil
	case "major":
		return LevelMajor, nil
	default:
		return 0, fmt.Errorf("unknown bump level %q (expected patch, minor or major)", s)
	}
}

// Bump returns the next plain release of v at the given level. The
// pre-release marker and packaging revision are always cleared.
func Bump(v Version, level Level) (Version, error) {
	if v.IsDateBased() {
		return Version{}, fmt.Errorf("bumping date-based version %s: %w", v, ErrUnsupportedOperation)
	}

	next := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	switch level {
	case LevelPatch:
		if next.Patch == math.MaxInt {
			return Version{}, overflowError(v, level)
		}
		next.Patch++
	case LevelMinor:
		if next.Minor == math.MaxInt {
			return Version{}, overflowError(v, level)
		}
		next.Minor++
		next.Patch = 0
	case LevelMajor:
		if next.Major == math.MaxInt {
			return Version{}, overflowError(v, level)
		}
		next.Major++
		next.Minor = 0
		next.Patch = 0
	default:
		return Version{}, fmt.Errorf("bumping %s: unknown level %s", v, level)
	}
	return next, nil
}

func overflowError(v Version, level Level) error {
	return fmt.Errorf("bumping %s at %s level: component overflow: %w", v, level, ErrUnsupportedOperation)
}
