package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	"github.com/ariel-frischer/debcatalog/internal/config"
	"github.com/ariel-frischer/debcatalog/internal/consistency"
	"github.com/ariel-frischer/debcatalog/internal/storeconfig"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = config.Layout{
	VersionFile:     "VERSION",
	ChangelogPath:   "store/debian/changelog",
	StoreFile:       "store/marine.yaml",
	AppsDir:         "apps",
	BumpversionFile: ".bumpversion.cfg",
}

const testChangelog = `marine-container-store (0.2.0-1) stable; urgency=medium

  * Version bump to 0.2.0

 -- Test User <test@example.com>  Tue, 02 Jan 2024 12:00:00 +0000

marine-container-store (0.1.0-1) stable; urgency=medium

  * Initial release

 -- Test User <test@example.com>  Mon, 01 Jan 2024 12:00:00 +0000
`

const testStore = `id: marine
name: Marine
description: Marine apps
filters:
  include_tags: [field::marine]
category_metadata:
  - {id: navigation, label: Navigation}
  - {id: monitoring, label: Monitoring}
  - {id: communication, label: Communication}
`

const testStoreWithoutCategories = `id: marine
name: Marine
description: Marine apps
filters:
  include_tags: [field::marine]
`

func newRepo(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	files := map[string]string{
		"VERSION":                           "0.2.0\n",
		"store/debian/changelog":            testChangelog,
		"store/marine.yaml":                 testStore,
		".bumpversion.cfg":                  validBumpversion,
		"apps/signalk-server/metadata.yaml": "version: 2.19.0~beta.4-1\ntags: [category::navigation]\n",
		"apps/grafana/metadata.yaml":        "version: 11.2.0-1\ntags: [category::monitoring, role::dashboard]\n",
	}
	for name, content := range files {
		writeFile(t, fs, name, content)
	}
	return fs
}

func writeFile(t *testing.T, fs billy.Filesystem, name, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
}

func TestRun_Valid(t *testing.T) {
	t.Parallel()

	r := Run(context.Background(), newRepo(t), testLayout)

	require.False(t, r.HasErrors(), "unexpected errors: %v", r.Err())
	assert.NoError(t, r.Err())

	// communication is declared but unused: reported, not failed.
	require.Len(t, r.Warnings, 1)
	var w *consistency.UnusedCategoryWarning
	require.ErrorAs(t, r.Warnings[0].Err, &w)
	assert.Equal(t, []string{"communication"}, w.IDs)
	assert.Len(t, r.Passed, 6)
	assert.Empty(t, r.Skipped)
}

func TestRun_MissingCategoryMetadata(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	writeFile(t, fs, "apps/kip/metadata.yaml", "version: 2.5.0-1\ntags: [category::visualization]\n")

	r := Run(context.Background(), fs, testLayout)

	require.Len(t, r.Errors, 1)
	assert.Equal(t, NameCategories, r.Errors[0].Check)
	var me *consistency.MissingCategoryMetadataError
	require.ErrorAs(t, r.Err(), &me)
	assert.Equal(t, []string{"visualization"}, me.IDs)
}

func TestRun_LegacyStoreKeys(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	writeFile(t, fs, "store/marine.yaml", testStore+"section_metadata:\n  - id: old\n")

	r := Run(context.Background(), fs, testLayout)

	require.Len(t, r.Errors, 1)
	assert.Equal(t, NameStoreConfig, r.Errors[0].Check)
	var de *storeconfig.DeprecatedFieldError
	assert.ErrorAs(t, r.Err(), &de)

	// Category check depends on the store document and is skipped.
	require.NotEmpty(t, r.Warnings)
	assert.Equal(t, NameCategories, r.Warnings[0].Check)
	assert.Equal(t, []string{NameCategories}, r.Skipped)
	assert.NotContains(t, r.Passed, NameCategories)
}

func TestRun_IndependentFailures(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	writeFile(t, fs, "store/debian/changelog", "not a debian changelog\n")
	writeFile(t, fs, "apps/broken/metadata.yaml", "version: v1\n")
	writeFile(t, fs, "store/marine.yaml", "id: marine\nname: M\ndescription: d\nfilters: {}\n")

	r := Run(context.Background(), fs, testLayout)

	checks := make([]string, 0, len(r.Errors))
	for _, f := range r.Errors {
		checks = append(checks, f.Check)
	}
	assert.Equal(t, []string{NameChangelog, NameAppVersions, NameStoreConfig}, checks)
	assert.True(t, errors.Is(r.Err(), storeconfig.ErrVacuousFilter))
	assert.Contains(t, r.Passed, NameMarker)
	assert.Contains(t, r.Passed, NameBumpversion)
	assert.Equal(t, []string{NameCategories}, r.Skipped)
}

func TestRun_EmptyChangelogIsWarning(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	require.NoError(t, fs.Remove("store/debian/changelog"))

	r := Run(context.Background(), fs, testLayout)

	assert.False(t, r.HasErrors(), "unexpected errors: %v", r.Err())
	found := false
	for _, w := range r.Warnings {
		if errors.Is(w.Err, changelog.ErrEmptyChangelog) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRun_MarkerMismatch(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	writeFile(t, fs, "VERSION", "0.3.0\n")

	r := Run(context.Background(), fs, testLayout)

	require.Len(t, r.Errors, 1)
	assert.Equal(t, NameChangelog, r.Errors[0].Check)
	assert.ErrorContains(t, r.Errors[0].Err, "0.2.0-1")
}

func TestRun_MarkerFormat(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	writeFile(t, fs, "VERSION", "0.2.0\nextra\n")

	r := Run(context.Background(), fs, testLayout)

	require.Len(t, r.Errors, 1)
	assert.Equal(t, NameMarker, r.Errors[0].Check)
	assert.Equal(t, "VERSION", r.Errors[0].Source)
}

func TestRun_BumpversionOptional(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	require.NoError(t, fs.Remove(".bumpversion.cfg"))
	r := Run(context.Background(), fs, testLayout)
	assert.False(t, r.HasErrors())
	assert.Equal(t, []string{NameBumpversion}, r.Skipped)
	assert.NotContains(t, r.Passed, NameBumpversion)

	layout := testLayout
	layout.BumpversionFile = ""
	r = Run(context.Background(), fs, layout)
	assert.Len(t, r.Warnings, 1)
	assert.Equal(t, []string{NameBumpversion}, r.Skipped)
	assert.Len(t, r.Passed, 5)
}

func TestRun_NoCategoryMetadataIsSkipped(t *testing.T) {
	t.Parallel()

	fs := newRepo(t)
	writeFile(t, fs, "store/marine.yaml", testStoreWithoutCategories)

	r := Run(context.Background(), fs, testLayout)

	assert.False(t, r.HasErrors(), "unexpected errors: %v", r.Err())
	assert.Equal(t, []string{NameCategories}, r.Skipped)
	assert.NotContains(t, r.Passed, NameCategories)
	assert.Len(t, r.Passed, 5)
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := Run(ctx, newRepo(t), testLayout)
	require.Len(t, r.Errors, 1)
	assert.True(t, errors.Is(r.Err(), context.Canceled))
	assert.Empty(t, r.Passed)
}
