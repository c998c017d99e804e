package cli

import (
	"fmt"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/spf13/cobra"
)

func newRevisionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revision <upstream-version>",
		Short: "Print the Debian revision the next package of a version gets",
		Long: `Print the Debian revision for packaging <upstream-version>: 1 when the
changelog is empty or its head has a different upstream version, otherwise
the head revision plus one.`,
		Example: `  # Head is 1.0.0-3
  debcatalog revision 1.0.0   # 4
  debcatalog revision 1.1.0   # 1`,
		GroupID: GroupRelease,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upstream, err := parseVersionArg(args[0])
			if err != nil {
				return err
			}

			store := changelog.NewStore(a.fs, a.cfg.ChangelogPath)
			raw, err := store.Read()
			if err != nil {
				return err
			}
			rev, err := changelog.NextRevision(raw, upstream)
			if err != nil {
				return clierrors.MalformedChangelog(store.Path(), err)
			}

			a.log.Debug().Str("upstream", upstream.String()).Int("revision", rev).Msg("next revision")
			fmt.Fprintln(cmd.OutOrStdout(), rev)
			return nil
		},
	}
}
