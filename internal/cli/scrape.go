package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/changelog"
	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
	"github.com/ariel-frischer/rubychanges/internal/output"
	"github.com/ariel-frischer/rubychanges/internal/progress"
	"github.com/ariel-frischer/rubychanges/internal/scrape"
)

var (
	scrapeSource   string
	scrapeDB       string
	scrapeBase     string
	scrapeWatch    bool
	scrapeDebounce time.Duration
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Parse the release documents into the change database",
	Long: `Parse every release document in the source directory (3.2.md, 3.3.md, ...)
and replace the database with the change records found.

Records without any supporting material (discussion, docs, code or a reason)
are dropped. Nothing is written when a document fails to parse or the result
does not validate.

With --watch the database is rebuilt whenever a release document changes,
until interrupted.`,
	Example: `  rubychanges scrape
  rubychanges scrape --source docs --db database.yaml
  rubychanges scrape --watch`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runScrape,
}

func init() {
	scrapeCmd.GroupID = GroupWorkflow
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&scrapeSource, "source", "s", "", "Directory of release documents (default: source_dir of the config)")
	scrapeCmd.Flags().StringVar(&scrapeDB, "db", "", "Database file to write (default: database key of the config)")
	scrapeCmd.Flags().StringVar(&scrapeBase, "base", "", "Base release; the report starts after it (default: base_release of the config)")
	scrapeCmd.Flags().BoolVarP(&scrapeWatch, "watch", "w", false, "Rebuild when release documents change")
	scrapeCmd.Flags().DurationVar(&scrapeDebounce, "debounce", scrape.DefaultDebounce, "Quiet period before a watch rebuild")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	opts := scrape.Options{
		SourceDir:   cfg.SourceDir,
		Database:    cfg.Database,
		BaseRelease: cfg.BaseReleaseValue(),
		Logger:      currentLogger(),
	}
	if scrapeSource != "" {
		opts.SourceDir = scrapeSource
	}
	if scrapeDB != "" {
		opts.Database = scrapeDB
	}
	if scrapeBase != "" {
		base, err := change.ParseRelease(scrapeBase)
		if err != nil {
			return clierrors.NewArgumentError(
				fmt.Sprintf("invalid --base %q", scrapeBase),
				"Releases are dotted numbers, e.g. 2.3 or 3.10",
			)
		}
		opts.BaseRelease = base
	}

	if info, err := os.Stat(opts.SourceDir); err != nil || !info.IsDir() {
		return clierrors.DirectoryNotFound(opts.SourceDir)
	}

	if err := scrapeOnce(cmd, opts); err != nil || !scrapeWatch {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", opts.SourceDir)
	err := scrape.Watch(ctx, opts.SourceDir, scrapeDebounce, func() error {
		output.PrintSeparator(cmd.OutOrStdout(), "rebuild "+time.Now().Format(time.TimeOnly))
		return scrapeOnce(cmd, opts)
	}, currentLogger())
	if err != nil {
		return fmt.Errorf("watching %s: %w", opts.SourceDir, err)
	}
	return nil
}

// scrapeOnce runs one scrape with a spinner and reports the outcome.
func scrapeOnce(cmd *cobra.Command, opts scrape.Options) error {
	sp := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
	sp.Start(fmt.Sprintf("Scraping %s", opts.SourceDir))

	result, err := scrape.Run(opts)
	if err != nil {
		sp.Fail("Scrape failed")
		return scrapeError(opts, err)
	}

	sp.Success(fmt.Sprintf("Parsed %d documents", len(result.Sources)))
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf(
		"Wrote %s (%d of %d records kept, releases %s)",
		opts.Database, result.Database.Count(), result.Parsed,
		changelog.JoinReleases(result.Database.Releases()),
	))
	return nil
}

func scrapeError(opts scrape.Options, err error) error {
	switch {
	case errors.Is(err, scrape.ErrNoSources):
		return clierrors.NoSourceDocuments(opts.SourceDir)
	case changelog.IsValidationError(err):
		return clierrors.WrapWithMessage(err, clierrors.Data,
			"scraped records do not validate; nothing was written",
			"Fix the reported field in the release document and scrape again",
		)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Data,
			fmt.Sprintf("scraping %s", opts.SourceDir),
			"Run with --verbose to trace the parser",
		)
	}
}
