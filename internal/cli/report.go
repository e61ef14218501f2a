package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/changelog"
	"github.com/ariel-frischer/rubychanges/internal/distill"
	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
	"github.com/ariel-frischer/rubychanges/internal/output"
	"github.com/ariel-frischer/rubychanges/internal/report"
)

var (
	reportSelection selectionFlags
	reportOutput    string
	reportReleases  bool
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"distill"},
	Short:   "Write the HTML report of selected changes",
	Long: `Write a self-contained HTML report of the changes in the database.

The report opens with the selection given on the command line. Its selectors
(importance, language only, release range) re-filter the page in the browser
without regenerating it.

--from is exclusive and --to inclusive: "--from 3.1 --to 3.3" shows the
changes of 3.2 and 3.3. Both must be documented releases; see --releases.`,
	Example: `  rubychanges report
  rubychanges report --from 2.7 --to 3.3 --important
  rubychanges report --breaking-only --section "Standard Library" -o breaking.html
  rubychanges report --releases`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	reportCmd.GroupID = GroupWorkflow
	rootCmd.AddCommand(reportCmd)

	reportSelection.bind(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Report file (default: output key of the config)")
	reportCmd.Flags().BoolVar(&reportReleases, "releases", false, "Print the documented releases and exit")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg := currentConfig()
	dbPath := reportSelection.databasePath(cfg)
	db, err := loadDatabase(dbPath)
	if err != nil {
		return err
	}
	known := db.KnownReleases()

	if reportReleases {
		return changelog.FormatReleases(known, cmd.OutOrStdout())
	}

	o, err := reportSelection.options(cfg, known)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printOptions(cmd.ErrOrStderr(), o, dbPath)
	}

	path := reportOutput
	if path == "" {
		path = cfg.Output
	}
	if err := report.WriteFile(path, db.Changes, known, o, report.NewCommonMark()); err != nil {
		return clierrors.FileNotWritable(path, err)
	}

	count := len(distill.Distill(db.Changes, o))
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s (%d changes, %s to %s)", path, count, o.From, o.To))
	return nil
}
