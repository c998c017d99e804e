package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariel-frischer/debcatalog/internal/catalog"
	"github.com/ariel-frischer/debcatalog/internal/changelog"
	"github.com/ariel-frischer/debcatalog/internal/config"
	"github.com/ariel-frischer/debcatalog/internal/consistency"
	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/ariel-frischer/debcatalog/internal/logger"
	"github.com/ariel-frischer/debcatalog/internal/storeconfig"
	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/go-git/go-billy/v5"
)

// Check names used in findings.
const (
	NameMarker      = "version-marker"
	NameChangelog   = "changelog"
	NameAppVersions = "app-versions"
	NameStoreConfig = "store-config"
	NameCategories  = "categories"
	NameBumpversion = "bumpversion"
)

// state carries values between checks. A nil field means the source failed
// to load and dependent checks are skipped.
type state struct {
	marker  *version.Version
	head    *changelog.Entry
	entries []catalog.Entry
	store   *storeconfig.Config
}

// Run validates the catalog repository on fs. Structural errors in one source
// only skip the checks that depend on that source; soft findings never stop
// the run. Cancellation is checked between checks.
func Run(ctx context.Context, fs billy.Filesystem, layout config.Layout) *Report {
	log := logger.FromContext(ctx)
	r := &Report{}
	st := &state{}

	steps := []struct {
		name string
		fn   func(*Report)
	}{
		{NameMarker, func(r *Report) { checkMarker(fs, layout, st, r) }},
		{NameChangelog, func(r *Report) { checkChangelog(fs, layout, st, r) }},
		{NameAppVersions, func(r *Report) { checkApps(fs, layout, st, r) }},
		{NameStoreConfig, func(r *Report) { checkStore(fs, layout, st, r) }},
		{NameCategories, func(r *Report) { checkCategories(st, r) }},
		{NameBumpversion, func(r *Report) { checkBumpversion(fs, layout, r) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			r.AddError(step.name, "", err)
			return r
		}
		before, skipped := len(r.Errors), len(r.Skipped)
		step.fn(r)
		if len(r.Errors) == before && len(r.Skipped) == skipped {
			r.Pass(step.name)
		}
		log.Debug().Str("check", step.name).Int("errors", len(r.Errors)-before).Msg("check finished")
	}
	return r
}

func checkMarker(fs billy.Filesystem, layout config.Layout, st *state, r *Report) {
	v, err := version.ReadMarker(fs, layout.VersionFile)
	if err != nil {
		r.AddError(NameMarker, layout.VersionFile, err)
		return
	}
	st.marker = &v
}

func checkChangelog(fs billy.Filesystem, layout config.Layout, st *state, r *Report) {
	raw, err := changelog.NewStore(fs, layout.ChangelogPath).Read()
	if err != nil {
		r.AddError(NameChangelog, layout.ChangelogPath, err)
		return
	}
	head, err := changelog.ValidateHead(raw)
	if changelog.IsEmpty(err) {
		r.AddWarning(NameChangelog, layout.ChangelogPath, err)
		return
	}
	if err != nil {
		r.AddError(NameChangelog, layout.ChangelogPath, err)
		return
	}
	st.head = head

	if st.marker == nil {
		return
	}
	upstream := head.Version.Upstream()
	if upstream.Equal(*st.marker) {
		return
	}
	mismatch := fmt.Errorf("%s holds %s but the changelog head is %s", layout.VersionFile, *st.marker, head.FullVersion())
	if upstream.IsPrerelease() {
		r.AddWarning(NameChangelog, layout.ChangelogPath, mismatch)
		return
	}
	r.AddError(NameChangelog, layout.ChangelogPath, mismatch)
}

func checkApps(fs billy.Filesystem, layout config.Layout, st *state, r *Report) {
	entries, err := catalog.LoadEntries(fs, layout.AppsDir)
	if err != nil {
		r.AddError(NameAppVersions, layout.AppsDir, err)
		return
	}
	st.entries = entries
}

func checkStore(fs billy.Filesystem, layout config.Layout, st *state, r *Report) {
	cfg, err := storeconfig.Load(fs, layout.StoreFile)
	if err != nil {
		r.AddError(NameStoreConfig, layout.StoreFile, err)
		return
	}
	st.store = cfg
}

func checkCategories(st *state, r *Report) {
	if st.entries == nil || st.store == nil {
		r.AddWarning(NameCategories, "", errors.New("skipped: app metadata or store config failed to load"))
		r.Skip(NameCategories)
		return
	}
	if !st.store.HasCategoryMetadata {
		r.AddWarning(NameCategories, st.store.Path, errors.New("no category_metadata defined, skipping category check"))
		r.Skip(NameCategories)
		return
	}

	res := consistency.Check(st.entries, st.store)
	r.AddError(NameCategories, st.store.Path, res.Err())
	if w := res.Warning(); w != nil {
		r.AddWarning(NameCategories, st.store.Path, w)
	}
}

func checkBumpversion(fs billy.Filesystem, layout config.Layout, r *Report) {
	if layout.BumpversionFile == "" {
		r.Skip(NameBumpversion)
		return
	}
	exists, err := fsutil.Exists(fs, layout.BumpversionFile)
	if err != nil {
		r.AddError(NameBumpversion, layout.BumpversionFile, err)
		return
	}
	if !exists {
		r.AddWarning(NameBumpversion, layout.BumpversionFile, errors.New("not found, skipping"))
		r.Skip(NameBumpversion)
		return
	}
	r.AddError(NameBumpversion, layout.BumpversionFile, CheckBumpversion(fs, layout.BumpversionFile, layout.VersionFile))
}
