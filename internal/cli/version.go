package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/debcatalog/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Display version information",
		Long:              "Display version, commit, build date, and Go version information for debcatalog",
		Args:              exactArgs(0),
		PersistentPreRunE: noSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintln(out, build.Info())
				return nil
			}
			bold := color.New(color.Bold)
			bold.Fprintf(out, "debcatalog %s\n", build.Version)
			fmt.Fprintf(out, "  commit:   %s\n", build.Commit)
			fmt.Fprintf(out, "  built:    %s\n", build.BuildDate)
			fmt.Fprintf(out, "  go:       %s\n", runtime.Version())
			fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Single-line output for scripts")
	return cmd
}
