// Package cli implements the debcatalog command line: validation of the
// catalog, releases of the store package and version arithmetic helpers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ariel-frischer/debcatalog/internal/config"
	clierrors "github.com/ariel-frischer/debcatalog/internal/errors"
	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/ariel-frischer/debcatalog/internal/git"
	"github.com/ariel-frischer/debcatalog/internal/logger"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Command groups
const (
	GroupRelease       = "release"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	root       string
	logLevel   string
	verbose    bool
	noColor    bool
}

// app is the state resolved once per invocation in PersistentPreRunE.
type app struct {
	flags globalFlags

	cfg  *config.Configuration
	root string
	fs   billy.Filesystem
	log  zerolog.Logger

	// loadOpts lets tests keep the user config out of the way.
	loadOpts config.LoadOptions
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, NewRootCmd(), os.Stderr)
}

// run executes cmd and prints any error it returns to stderr.
func run(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	cliErr := classify(err)
	clierrors.FprintError(stderr, cliErr)
	return ExitCode(cliErr)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debcatalog",
		Short: "Version and changelog consistency for a Debian app catalog",
		Long: `debcatalog keeps a catalog of independently versioned applications
consistent with the Debian changelog of the store package and the store's
category taxonomy.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags
  2. Environment variables (DEBCATALOG_*)
  3. Project config (.debcatalog.yml or .debcatalog.json)
  4. User config (~/.config/debcatalog/config.yml)
  5. Built-in defaults`,
		Example: `  # Check every source of truth
  debcatalog validate

  # Release a new minor version of the store package
  debcatalog release minor -m "Add AvNav"

  # Rebuild the current version with a new Debian revision
  debcatalog release repackage -m "Rebuild against new base image"

  # Version arithmetic for scripts
  debcatalog bump 1.10.99 patch
  debcatalog revision 1.2.0`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "Project config file (default: <root>/.debcatalog.yml)")
	pf.StringVar(&a.flags.root, "root", "", "Catalog repository root (default: enclosing git repository)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Verbose logging (same as --log-level debug)")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	cmd.SetFlagErrorFunc(flagError)

	cmd.AddCommand(
		newVersionCmd(),
		newValidateCmd(a),
		newReleaseCmd(a),
		newRevisionCmd(a),
		newBumpCmd(),
		newCompareCmd(),
		newChangelogCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// setup resolves the repository root, configuration and logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.flags.noColor {
		color.NoColor = true
	}

	root, err := a.resolveRoot()
	if err != nil {
		return err
	}

	opts := a.loadOpts
	opts.ProjectConfigPath = a.flags.configPath
	if opts.ProjectConfigPath == "" {
		opts.ProjectConfigPath = projectConfigIn(root)
	}
	opts.WarningWriter = cmd.ErrOrStderr()

	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return clierrors.ConfigLoadFailed(err)
	}
	if a.flags.root == "" && cfg.Root != "" {
		if root, err = filepath.Abs(cfg.Root); err != nil {
			return fmt.Errorf("resolving root %s: %w", cfg.Root, err)
		}
	}

	level := cfg.LogLevel
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	if a.flags.verbose {
		level = "debug"
	}
	if _, err := logger.ParseLevel(level); err != nil {
		return clierrors.NewArgumentError(err.Error(), "Use one of: trace, debug, info, warn, error")
	}

	a.cfg = cfg
	a.root = root
	a.fs = fsutil.OS(root)
	a.log = logger.New(logger.Config{Level: level, Pretty: true, Output: cmd.ErrOrStderr()})

	gitLog := logger.Component(a.log, "git")
	git.SetDebugLogger(func(format string, args ...any) {
		gitLog.Debug().Msgf(format, args...)
	})

	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
	a.log.Debug().Str("root", root).Str("config_sources", cfg.SourceNames()).Msg("configuration loaded")
	return nil
}

// resolveRoot picks --root, else the enclosing git repository, else the
// working directory.
func (a *app) resolveRoot() (string, error) {
	if a.flags.root != "" {
		root, err := filepath.Abs(a.flags.root)
		if err != nil {
			return "", fmt.Errorf("resolving root %s: %w", a.flags.root, err)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return "", clierrors.NewPrerequisiteError(
				fmt.Sprintf("catalog root %s is not a directory", root),
				"Pass --root pointing at the catalog repository",
			)
		}
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if root, err := git.RepositoryRoot(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// projectConfigIn returns the project config inside root, or "" to fall
// back to the working directory default.
func projectConfigIn(root string) string {
	for _, name := range []string{config.ProjectConfigPath(), config.ProjectJSONConfigPath()} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// noSetup replaces setup for commands that touch neither the repository nor
// the configuration.
func noSetup(*cobra.Command, []string) error {
	return nil
}
