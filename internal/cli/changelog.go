package cli

import (
	"fmt"

	"github.com/ariel-frischer/debcatalog/internal/changelog"
	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/spf13/cobra"
)

func newChangelogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "changelog",
		Short:   "Inspect the store package changelog",
		GroupID: GroupInspect,
	}
	cmd.AddCommand(newChangelogHeadCmd(a))
	return cmd
}

func newChangelogHeadCmd(a *app) *cobra.Command {
	var (
		plain       bool
		versionOnly bool
		width       int
	)
	cmd := &cobra.Command{
		Use:   "head",
		Short: "Show the newest changelog entry",
		Example: `  debcatalog changelog head
  debcatalog changelog head --version-only   # 1.2.0-1`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := changelog.NewStore(a.fs, a.cfg.ChangelogPath)
			raw, err := store.Read()
			if err != nil {
				return err
			}
			head, err := changelog.ParseHead(raw)
			if changelog.IsEmpty(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s has no entries yet\n", store.Path())
				return nil
			}
			if err != nil {
				return clierrors.MalformedChangelog(store.Path(), err)
			}

			if versionOnly {
				fmt.Fprintln(cmd.OutOrStdout(), head.FullVersion())
				return nil
			}
			return changelog.FormatTerminal(head, cmd.OutOrStdout(), changelog.FormatOptions{
				Plain:    plain,
				MaxWidth: width,
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain text output (no colors)")
	cmd.Flags().BoolVar(&versionOnly, "version-only", false, "Print only the full version")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (default: terminal width)")
	return cmd
}
