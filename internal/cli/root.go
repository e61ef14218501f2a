// Package cli implements the rubychanges command line: scrape per-release
// changelog documents into the database, then list or report on it.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/config"
	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
	"github.com/ariel-frischer/rubychanges/internal/git"
	"github.com/ariel-frischer/rubychanges/internal/logging"
)

// Command groups shown in help output.
const (
	GroupWorkflow      = "workflow"
	GroupConfiguration = "configuration"
	GroupInformation   = "information"
)

// skipConfigAnnotation marks commands that must run even when the
// configuration does not load.
const skipConfigAnnotation = "rubychanges/skip-config"

var (
	cfgFile string
	verbose bool

	appConfig *config.Configuration
	logger    = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "rubychanges",
	Short: "Scrape Ruby changelogs and distill them into a filterable report",
	Long: `rubychanges turns per-release Ruby changelog documents (3.2.md, 3.3.md, ...)
into a YAML database of change records, then distills that database into a
self-contained HTML report or a terminal listing.

Configuration is layered: defaults < ~/.config/rubychanges/config.yml <
.rubychanges.yml < RUBYCHANGES_* environment variables < flags.

Source: https://github.com/ariel-frischer/rubychanges`,
	Example: `  # Build database.yaml from the documents in ./docs
  rubychanges scrape --source docs

  # Important changes between 2.7 and 3.3 as HTML
  rubychanges report --from 2.7 --to 3.3 --important

  # Potentially breaking language changes in the terminal
  rubychanges list --breaking-only --language-only`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupWorkflow, Title: "Workflow:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
		&cobra.Group{ID: GroupInformation, Title: "Information:"},
	)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Project config file (default: .rubychanges.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace parsing and print effective options")
}

// setup loads the configuration and builds the logger for every command.
func setup(cmd *cobra.Command, _ []string) error {
	if _, skip := cmd.Annotations[skipConfigAnnotation]; skip {
		logger = logging.New(cmd.ErrOrStderr(), verbose)
		return nil
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: cfgFile,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigParseError(err)
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	appConfig = cfg

	logger = logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.Verbose {
		git.SetDebugLogger(logging.Printf(logger))
	} else {
		git.SetDebugLogger(nil)
	}
	logger.Debug("configuration loaded", "database", cfg.Database, "source_dir", cfg.SourceDir)
	return nil
}

// currentConfig returns the configuration loaded by setup.
func currentConfig() *config.Configuration {
	return appConfig
}

func currentLogger() *slog.Logger {
	return logger
}

// Execute runs the root command and prints any error. The caller maps the
// returned error to an exit status with ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		// Already reported by the command.
	case clierrors.IsCLIError(err):
		clierrors.FprintError(rootCmd.ErrOrStderr(), clierrors.AsCLIError(err))
	default:
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
