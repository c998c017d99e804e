package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ariel-frischer/debcatalog/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage debcatalog configuration",
		GroupID: GroupConfiguration,
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigTemplateCmd())
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			dim := color.New(color.Faint).SprintFunc()

			fmt.Fprintf(out, "root: %s\n", a.root)
			fmt.Fprintf(out, "sources: %s\n\n", a.cfg.SourceNames())

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, key := range config.SortedKeys() {
				value, err := a.cfg.Value(key)
				if err != nil {
					return err
				}
				schema, _ := config.GetKeySchema(key)
				fmt.Fprintf(tw, "%s\t%q\t%s\n", key, value, dim(schema.Description))
			}
			return tw.Flush()
		},
	}
}

func newConfigTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "template",
		Short:             "Print a commented .debcatalog.yml",
		Example:           "  debcatalog config template > .debcatalog.yml",
		Args:              exactArgs(0),
		PersistentPreRunE: noSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
			return nil
		},
	}
}
