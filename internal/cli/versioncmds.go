package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/spf13/cobra"
)

func newBumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bump <version> <patch|minor|major>",
		Short: "Print the next version for a bump level",
		Long: `Print the version that results from bumping <version> at the given level.
Prerelease and revision are cleared. Date-based versions cannot be bumped.`,
		Example: `  debcatalog bump 1.10.99 patch     # 1.10.100
  debcatalog bump 2.19.0~beta.4-1 minor   # 2.20.0`,
		GroupID:           GroupInspect,
		Args:              exactArgs(2),
		PersistentPreRunE: noSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVersionArg(args[0])
			if err != nil {
				return err
			}
			level, err := version.ParseLevel(args[1])
			if err != nil {
				return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
			}
			next, err := version.Bump(v, level)
			if err != nil {
				return clierrors.UnsupportedBump(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two versions, printing -1, 0 or 1",
		Example: `  debcatalog compare 2.19.0~beta.4 2.19.0   # -1
  debcatalog compare 1.0.0-2 1.0.0-1        # 1`,
		GroupID:           GroupInspect,
		Args:              exactArgs(2),
		PersistentPreRunE: noSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseVersionArg(args[0])
			if err != nil {
				return err
			}
			b, err := parseVersionArg(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Compare(a, b))
			return nil
		},
	}
}

func parseVersionArg(s string) (version.Version, error) {
	v, err := version.Parse(s)
	if err != nil {
		return version.Version{}, clierrors.InvalidVersion(err)
	}
	return v, nil
}
