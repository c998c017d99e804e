package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	"github.com/ariel-frischer/debcatalog/internal/config"
	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/ariel-frischer/debcatalog/internal/logger"
	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/go-git/go-billy/v5"
)

// Options configures a release.
type Options struct {
	FS     billy.Filesystem
	Layout config.Layout

	Action       Action
	Package      string
	Distribution string
	Urgency      changelog.Urgency
	Changes      []string
	Maintainer   string
	Email        string

	// Owner is recorded in the lease file. Defaults to the maintainer.
	Owner string
	// Now supplies the entry timestamp. Defaults to time.Now.
	Now    func() time.Time
	DryRun bool
}

// Result describes a completed (or, for dry runs, planned) release.
type Result struct {
	Plan     Plan
	Entry    *changelog.Entry
	Rendered string
	// Written is false for dry runs.
	Written bool
	// MarkerWritten is set when the version marker was updated.
	MarkerWritten bool
}

// Release runs one release: acquire the changelog lease, read the head,
// compute the next version, prepend the rendered entry, then update the
// version marker for bumps. The lease is released on every path, and a
// failure leaves the changelog content unchanged.
func Release(ctx context.Context, opts Options) (res *Result, err error) {
	log := logger.FromContext(ctx).With().Str("component", "release").Logger()
	store := changelog.NewStore(opts.FS, opts.Layout.ChangelogPath)

	if !opts.DryRun {
		var lease *changelog.Lease
		lease, err = changelog.AcquireLease(opts.FS, store.Path(), leaseOwner(opts))
		if err != nil {
			return nil, err
		}
		log.Debug().Str("lock", changelog.LockPath(store.Path())).Msg("lease acquired")
		defer func() {
			if releaseErr := lease.Release(); releaseErr != nil {
				log.Warn().Err(releaseErr).Msg("releasing lease")
				res, err = nil, errors.Join(err, releaseErr)
				return
			}
			log.Debug().Msg("lease released")
		}()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := store.Load()
	if err != nil {
		return nil, err
	}

	marker, err := readMarker(opts.FS, opts.Layout.VersionFile)
	if err != nil {
		return nil, err
	}

	plan, err := ComputePlan(doc, marker, opts.Action)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("base", plan.Base.String()).
		Str("upstream", plan.Upstream.String()).
		Int("revision", plan.Revision).
		Bool("base_from_marker", plan.BaseFromMarker).
		Msg("release planned")

	entry := newEntry(opts, plan)
	rendered, err := changelog.RenderString(entry)
	if err != nil {
		return nil, err
	}
	res = &Result{Plan: plan, Entry: entry, Rendered: rendered}
	if opts.DryRun {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next, err := doc.Prepend(entry)
	if err != nil {
		return nil, err
	}
	if err := store.Write(next.Raw); err != nil {
		return nil, err
	}
	res.Written = true

	if plan.Bumps() {
		if err := version.WriteMarker(opts.FS, opts.Layout.VersionFile, plan.Upstream); err != nil {
			if rollbackErr := store.Write(doc.Raw); rollbackErr != nil {
				return nil, errors.Join(err, fmt.Errorf("restoring %s: %w", store.Path(), rollbackErr))
			}
			return nil, err
		}
		res.MarkerWritten = true
	}

	log.Info().Str("version", entry.FullVersion()).Msg("changelog entry written")
	return res, nil
}

func newEntry(opts Options, plan Plan) *changelog.Entry {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	changes := opts.Changes
	if len(changes) == 0 {
		changes = []string{plan.DefaultChange()}
	}
	return &changelog.Entry{
		Package:      opts.Package,
		Version:      plan.Upstream,
		Revision:     plan.Revision,
		Distribution: opts.Distribution,
		Urgency:      opts.Urgency,
		Changes:      changes,
		Maintainer:   opts.Maintainer,
		Email:        opts.Email,
		Timestamp:    changelog.FormatTimestamp(now()),
	}
}

// readMarker returns nil when the marker file does not exist.
func readMarker(fs billy.Filesystem, path string) (*version.Version, error) {
	exists, err := fsutil.Exists(fs, path)
	if err != nil || !exists {
		return nil, err
	}
	v, err := version.ReadMarker(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarker, err)
	}
	return &v, nil
}

func leaseOwner(opts Options) string {
	if opts.Owner != "" {
		return opts.Owner
	}
	if opts.Email != "" {
		return fmt.Sprintf("%s <%s>", opts.Maintainer, opts.Email)
	}
	host, _ := os.Hostname()
	return host
}
