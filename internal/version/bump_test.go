package version

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBump(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		current  string
		level    Level
		expected string
	}{
		"patch":                        {current: "0.1.0", level: LevelPatch, expected: "0.1.1"},
		"minor resets patch":           {current: "0.1.5", level: LevelMinor, expected: "0.2.0"},
		"major resets minor and patch": {current: "0.2.5", level: LevelMajor, expected: "1.0.0"},
		"patch multi-digit rollover":   {current: "1.10.99", level: LevelPatch, expected: "1.10.100"},
		"minor multi-digit rollover":   {current: "1.99.5", level: LevelMinor, expected: "1.100.0"},
		"major multi-digit rollover":   {current: "9.9.9", level: LevelMajor, expected: "10.0.0"},
		"clears prerelease":            {current: "2.19.0~beta.4", level: LevelPatch, expected: "2.19.1"},
		"clears revision":              {current: "2.17.2-3", level: LevelMinor, expected: "2.18.0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Bump(MustParse(tt.current), tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestBump_Monotonic(t *testing.T) {
	t.Parallel()

	inputs := []string{"0.0.0", "0.1.0", "1.10.99", "1.99.5", "2.19.0~beta.4", "2.19.0~beta.4-1", "3.2.1-9"}
	for _, input := range inputs {
		v := MustParse(input)
		for _, level := range Levels() {
			next, err := Bump(v, level)
			require.NoError(t, err)
			assert.Equal(t, 1, Compare(next, v), "bump(%s, %s) = %s must sort after", input, level, next)
		}
	}
}

func TestBump_DateBased(t *testing.T) {
	t.Parallel()

	for _, level := range Levels() {
		_, err := Bump(MustParse("20240520-1"), level)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedOperation))
	}
}

func TestBump_Overflow(t *testing.T) {
	t.Parallel()

	_, err := Bump(Version{Patch: math.MaxInt}, LevelPatch)
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range Levels() {
		got, err := ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, got)
	}

	got, err := ParseLevel(" Minor ")
	require.NoError(t, err)
	assert.Equal(t, LevelMinor, got)

	_, err = ParseLevel("epoch")
	assert.Error(t, err)
}
