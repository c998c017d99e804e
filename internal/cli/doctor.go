package cli

import (
	"fmt"

	"github.com/ariel-frischer/debcatalog/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the repository is ready for releases",
		Long: `Check the files and identity a release needs: the git repository, the
store changelog, the version marker, the store document, the apps directory
and a maintainer for changelog trailers.

Exits with code 4 when a check fails.`,
		GroupID: GroupInspect,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := health.RunHealthChecks(health.Options{
				FS:         a.fs,
				Root:       a.root,
				Layout:     a.cfg.Layout(),
				Maintainer: a.maintainer,
			})
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
			if !report.Passed {
				return NewExitError(ExitMissingFiles)
			}
			return nil
		},
	}
}
