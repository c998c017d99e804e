package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/ariel-frischer/debcatalog/internal/git"
	"github.com/ariel-frischer/debcatalog/internal/release"
	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newReleaseCmd(a *app) *cobra.Command {
	var (
		changes      []string
		dryRun       bool
		distribution string
		urgency      string
	)
	cmd := &cobra.Command{
		Use:   "release <patch|minor|major|repackage>",
		Short: "Prepend a new entry to the store changelog",
		Long: `Prepend a new entry to the store package changelog and, for patch, minor
and major releases, write the new version to VERSION.

The next version is computed from the changelog head (or from VERSION when
the changelog is empty). A new upstream version starts at revision 1;
repackage keeps the upstream version and increments the revision.

The changelog is locked for the duration of the release. Older entries are
never rewritten.`,
		Example: `  debcatalog release minor -m "Add AvNav" -m "Update Signal K to 2.19.0"
  debcatalog release repackage -m "Rebuild against new base image"
  debcatalog release patch --dry-run`,
		GroupID: GroupRelease,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := release.ParseAction(args[0])
			if err != nil {
				return clierrors.InvalidReleaseAction(args[0])
			}

			u := a.cfg.Urgency
			if urgency != "" {
				u = urgency
			}
			parsedUrgency, err := changelog.ParseUrgency(u)
			if err != nil {
				return clierrors.NewArgumentError(err.Error(), "Use one of: low, medium, high, critical")
			}
			dist := a.cfg.Distribution
			if distribution != "" {
				dist = distribution
			}

			id, err := a.maintainer()
			if err != nil {
				return err
			}

			layout := a.cfg.Layout()
			res, err := release.Release(cmd.Context(), release.Options{
				FS:           a.fs,
				Layout:       layout,
				Action:       action,
				Package:      a.cfg.StorePackage,
				Distribution: dist,
				Urgency:      parsedUrgency,
				Changes:      changes,
				Maintainer:   id.Name,
				Email:        id.Email,
				Owner:        leaseOwner(id),
				DryRun:       dryRun,
			})
			if err != nil {
				return releaseError(err, layout.ChangelogPath, layout.VersionFile)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Dry run, nothing written:")
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, res.Rendered)
			if res.Written {
				color.New(color.FgGreen).Fprintf(out, "Released %s %s\n", a.cfg.StorePackage, res.Entry.FullVersion())
			}
			if res.MarkerWritten {
				fmt.Fprintf(out, "Updated %s to %s\n", layout.VersionFile, res.Plan.Upstream)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&changes, "message", "m", nil, "Change line (repeatable; default: a generated summary)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the entry without writing anything")
	cmd.Flags().StringVar(&distribution, "distribution", "", "Override the configured distribution")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Override the configured urgency")
	return cmd
}

// maintainer returns the configured identity, completed from git config.
func (a *app) maintainer() (git.Identity, error) {
	id := git.Identity{Name: a.cfg.Maintainer.Name, Email: a.cfg.Maintainer.Email}
	if id.Complete() {
		return id, nil
	}
	fromGit, err := git.UserIdentity(a.root)
	if err != nil && !errors.Is(err, git.ErrNoIdentity) {
		a.log.Debug().Err(err).Msg("reading git identity")
	}
	if id.Name == "" {
		id.Name = fromGit.Name
	}
	if id.Email == "" {
		id.Email = fromGit.Email
	}
	if !id.Complete() {
		return id, clierrors.MissingMaintainer()
	}
	return id, nil
}

func leaseOwner(id git.Identity) string {
	host, err := os.Hostname()
	if err != nil {
		return id.String()
	}
	return fmt.Sprintf("%s on %s", id, host)
}

func releaseError(err error, changelogPath, versionFile string) error {
	switch {
	case errors.Is(err, changelog.ErrLeaseHeld):
		return clierrors.LeaseHeld(changelog.LockPath(changelogPath), err)
	case errors.Is(err, release.ErrMarker):
		return clierrors.MissingVersionFile(versionFile, err)
	case errors.Is(err, release.ErrNoBaseVersion):
		return clierrors.NoReleaseBase(changelogPath, versionFile, err)
	case errors.Is(err, version.ErrUnsupportedOperation):
		return clierrors.UnsupportedBump(err)
	}
	var ve *changelog.ValidationError
	if errors.As(err, &ve) {
		return clierrors.WrapWithMessage(err, clierrors.Argument, "cannot render changelog entry",
			"Check the change lines, distribution and maintainer settings")
	}
	return err
}
