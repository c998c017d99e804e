package cli

import (
	"errors"
	"os"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/spf13/cobra"
)

// classify turns any command error into a CLIError with remediation.
// Commands wrap errors they have specific context for; this catches the rest.
func classify(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	switch {
	case errors.Is(err, changelog.ErrLeaseHeld):
		return clierrors.Wrap(err, clierrors.Runtime,
			"Wait for the other release to finish, or remove the stale .lock file")
	case errors.Is(err, version.ErrUnsupportedOperation):
		return clierrors.UnsupportedBump(err)
	case errors.Is(err, version.ErrFormat):
		return clierrors.Wrap(err, clierrors.Validation,
			"Run 'debcatalog validate' to list every malformed file")
	case errors.Is(err, os.ErrNotExist):
		return clierrors.Wrap(err, clierrors.Prerequisite,
			"Run debcatalog from the catalog repository, or pass --root")
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

// exactArgs is cobra.ExactArgs with a usage-bearing CLIError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
				"Run '"+cmd.CommandPath()+" --help' for details")
		}
		return nil
	}
}

func flagError(cmd *cobra.Command, err error) error {
	return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
		"Run '"+cmd.CommandPath()+" --help' for details")
}
