package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/ariel-frischer/debcatalog/internal/output"
	"github.com/ariel-frischer/debcatalog/internal/validation"
	"github.com/ariel-frischer/debcatalog/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		strict    bool
		watchMode bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check versions, changelog and store categories for consistency",
		Long: `Run every consistency check over the catalog repository:

  version-marker  VERSION holds a single MAJOR.MINOR.PATCH line
  changelog       the head entry is well formed and matches VERSION
  app-versions    every apps/<id>/metadata.yaml has a valid version
  store-config    the store document has its required keys, no legacy
                  keys and at least one non-empty filter
  categories      every category tag in use has store metadata
  bumpversion     .bumpversion.cfg rewrites VERSION and never tags

Errors fail the run. Warnings (such as declared but unused categories) are
reported without failing it unless --strict is given.`,
		Example: `  debcatalog validate
  debcatalog validate --strict
  debcatalog validate --watch`,
		GroupID: GroupInspect,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchMode {
				return a.watchValidate(cmd)
			}
			r := validation.Run(cmd.Context(), a.fs, a.cfg.Layout())
			printReport(cmd.OutOrStdout(), r)
			return reportError(r, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings too")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-run on every change until interrupted")
	return cmd
}

// watchValidate re-runs validation on changes until the context is canceled.
func (a *app) watchValidate(cmd *cobra.Command) error {
	layout := a.cfg.Layout()
	dirs := []string{
		a.root,
		filepath.Join(a.root, layout.AppsDir),
		filepath.Join(a.root, filepath.Dir(layout.StoreFile)),
		filepath.Join(a.root, filepath.Dir(layout.ChangelogPath)),
	}
	w, err := watch.New(dirs, watch.DefaultDebounce)
	if err != nil {
		return clierrors.NewRuntimeError(
			fmt.Sprintf("cannot watch %s: %v", a.root, err),
			"Run 'debcatalog validate' without --watch",
		)
	}
	defer w.Close()

	out := cmd.OutOrStdout()
	err = w.Run(cmd.Context(), func(ctx context.Context) {
		output.PrintRunHeader(out, "validate "+time.Now().Format(time.TimeOnly))
		printReport(out, validation.Run(ctx, a.fs, layout))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printReport(w io.Writer, r *validation.Report) {
	for _, name := range r.Passed {
		output.PrintPassed(w, name)
	}
	for _, name := range r.Skipped {
		output.PrintSkipped(w, name)
	}
	for _, f := range r.Errors {
		output.PrintFailed(w, f.String())
	}
	for _, f := range r.Warnings {
		fmt.Fprint(w, clierrors.FormatWarning(f.String(), !color.NoColor))
	}
	output.PrintSummary(w, len(r.Passed), len(r.Errors), len(r.Warnings))
}

func reportError(r *validation.Report, strict bool) error {
	if r.HasErrors() || (strict && r.HasWarnings()) {
		return clierrors.ValidationFailed(len(r.Errors), len(r.Warnings))
	}
	return nil
}
