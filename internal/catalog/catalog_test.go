package catalog

import (
	"errors"
	"sort"
	"testing"

	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeApp(t *testing.T, fs billy.Filesystem, id, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, "apps/"+id+"/metadata.yaml", []byte(content), 0o644))
}

func TestLoadEntries(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	writeApp(t, fs, "signalk-server", `
name: Signal K Server
version: "2.19.0~beta.4-1"
tags:
  - category::navigation
  - role::server
`)
	writeApp(t, fs, "avnav", `
version: 20240520-1
tags: [category::navigation, category::monitoring]
`)
	writeApp(t, fs, "grafana", `
version: 11.2.0-2
`)
	require.NoError(t, util.WriteFile(fs, "apps/README.md", []byte("not an app"), 0o644))

	entries, err := LoadEntries(fs, "apps")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	ids := []string{entries[0].AppID, entries[1].AppID, entries[2].AppID}
	assert.Equal(t, []string{"avnav", "grafana", "signalk-server"}, ids)

	assert.True(t, entries[0].Version.IsDateBased())
	assert.Equal(t, version.MustParse("11.2.0-2"), entries[1].Version)
	assert.Equal(t, []string{"navigation"}, entries[2].Categories())

	union := CategoryUnion(entries)
	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"monitoring", "navigation"}, keys)
}

func TestLoadEntries_NoApps(t *testing.T) {
	t.Parallel()

	_, err := LoadEntries(memfs.New(), "apps")
	assert.True(t, errors.Is(err, ErrNoApps))
}

func TestParseEntry_VersionErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		message string
	}{
		"missing":       {content: "name: x\n", message: "is required"},
		"empty":         {content: "version: \"\"\n", message: "is required"},
		"number":        {content: "version: 1.5\n", message: "must be a string"},
		"invalid":       {content: "version: v1.2.3\n", message: "invalid format"},
		"hyphen marker": {content: "version: 1.2.3-beta\n", message: "invalid format"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseEntry([]byte(tt.content), "apps/x/metadata.yaml")

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "version", fe.Field)
			assert.Contains(t, fe.Message, tt.message)
			assert.Contains(t, err.Error(), "apps/x/metadata.yaml")
		})
	}
}

func TestParseEntry_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := ParseEntry([]byte("version: [unclosed\n"), "apps/x/metadata.yaml")
	assert.Error(t, err)
}

func TestExtractCategories(t *testing.T) {
	t.Parallel()

	got := ExtractCategories([]string{
		"category::navigation",
		"category::",
		"role::server",
		"navigation",
		"category::monitoring",
	})
	assert.Equal(t, []string{"navigation", "monitoring"}, got)
	assert.Nil(t, ExtractCategories(nil))
}
