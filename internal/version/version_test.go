package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		expected Version
		dated    bool
	}{
		"plain release":           {input: "0.1.0", expected: Version{Minor: 1}},
		"with revision":           {input: "2.17.2-1", expected: Version{Major: 2, Minor: 17, Patch: 2, Revision: 1}},
		"prerelease and revision": {input: "2.19.0~beta.4-1", expected: Version{Major: 2, Minor: 19, Prerelease: "beta.4", Revision: 1}},
		"prerelease only":         {input: "1.0.0~rc1", expected: Version{Major: 1, Prerelease: "rc1"}},
		"multi-digit components":  {input: "10.200.3000", expected: Version{Major: 10, Minor: 200, Patch: 3000}},
		"date based":              {input: "20240520-1", dated: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v, err := Parse(tt.input)
			require.NoError(t, err)
			if tt.dated {
				assert.True(t, v.IsDateBased())
				assert.Equal(t, "20240520", v.Date())
				assert.Equal(t, 1, v.Revision)
				return
			}
			assert.False(t, v.IsDateBased())
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":               "",
		"two components":      "1.2",
		"four components":     "1.2.3.4",
		"v prefix":            "v1.2.3",
		"hyphen prerelease":   "1.2.3-beta",
		"empty prerelease":    "1.2.3~",
		"bad prerelease char": "1.2.3~beta_1",
		"short date":          "2024052-1",
		"date without rev":    "20240520",
		"zero revision":       "1.2.3-0",
		"leading zero":        "01.2.3",
		"surrounding spaces":  " 1.2.3 ",
		"overflow":            "99999999999999999999.0.0",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "expected ErrFormat, got %v", err)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, input, fe.Input)
		})
	}
}

func TestParse_NonCanonical(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input  string
		reason string
	}{
		"leading zero major":         {input: "01.2.3", reason: "major component has leading zeros"},
		"leading zero minor":         {input: "1.02.3", reason: "minor component has leading zeros"},
		"leading zero patch":         {input: "1.2.03", reason: "patch component has leading zeros"},
		"leading zero revision":      {input: "1.2.3-01", reason: "revision component has leading zeros"},
		"leading zero date revision": {input: "20240520-01", reason: "revision component has leading zeros"},
		"zero revision":              {input: "1.2.3-0", reason: "revision must be positive"},
		"zero date revision":         {input: "20240520-0", reason: "revision must be positive"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.reason, fe.Reason)
			assert.True(t, errors.Is(err, ErrFormat))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"0.0.0",
		"0.1.0",
		"1.10.99",
		"1.100.0",
		"2.17.2-1",
		"2.19.0~beta.4",
		"2.19.0~beta.4-1",
		"3.0.0~rc.1.2-12",
		"20240520-1",
		"19991231-42",
	}

	for _, input := range inputs {
		v, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, input, Format(v))
		assert.Equal(t, input, v.String())
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b     string
		expected int
	}{
		"equal":                         {a: "1.2.3", b: "1.2.3", expected: 0},
		"major wins":                    {a: "2.0.0", b: "1.99.99", expected: 1},
		"minor numeric not lexical":     {a: "1.10.0", b: "1.9.0", expected: 1},
		"patch numeric not lexical":     {a: "1.0.2", b: "1.0.10", expected: -1},
		"prerelease before release":     {a: "2.19.0~beta.4", b: "2.19.0", expected: -1},
		"release after prerelease":      {a: "1.0.0", b: "1.0.0~beta.1", expected: 1},
		"prerelease after prior":        {a: "1.0.0~beta.1", b: "0.9.9", expected: 1},
		"prereleases lexical":           {a: "1.0.0~alpha", b: "1.0.0~beta", expected: -1},
		"revision breaks tie":           {a: "1.0.0-2", b: "1.0.0-1", expected: 1},
		"revision absent sorts first":   {a: "1.0.0", b: "1.0.0-1", expected: -1},
		"revision ignored when numeric": {a: "1.0.1-1", b: "1.0.0-9", expected: 1},
		"prerelease beats revision":     {a: "1.0.0~rc1-9", b: "1.0.0-1", expected: -1},
		"dates by identifier":           {a: "20240520-1", b: "20231231-5", expected: 1},
		"dates by revision":             {a: "20240520-1", b: "20240520-2", expected: -1},
		"date after semantic":           {a: "20240520-1", b: "99.0.0", expected: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)
			assert.Equal(t, tt.expected, Compare(a, b))
			assert.Equal(t, -tt.expected, Compare(b, a), "comparison must be antisymmetric")
		})
	}
}

func TestUpstream(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.19.0~beta.4", MustParse("2.19.0~beta.4-3").Upstream().String())
	assert.Equal(t, "1.0.0", MustParse("1.0.0").Upstream().String())
	assert.Equal(t, "20240520-1", MustParse("20240520-1").Upstream().String())
	assert.Equal(t, "1.2.3-7", MustParse("1.2.3").WithRevision(7).String())
}
