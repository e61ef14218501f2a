package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/changelog"
	"github.com/ariel-frischer/rubychanges/internal/distill"
	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
)

var (
	listSelection selectionFlags
	listPlain     bool
)

var listCmd = &cobra.Command{
	Use:     "list [release]",
	Aliases: []string{"ls"},
	Short:   "Print selected changes in the terminal (ls)",
	Long: `Print the selected changes grouped by release.

With a release argument only that release is shown, as if called with
--from <previous release> --to <release>. Otherwise the same selection flags
as 'report' apply.`,
	Example: `  # Everything after the base release
  rubychanges list

  # One release, important changes only
  rubychanges list 3.3 --important

  # Pipe-friendly output
  rubychanges list --breaking-only --plain | less`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runList,
}

func init() {
	listCmd.GroupID = GroupWorkflow
	rootCmd.AddCommand(listCmd)

	listSelection.bind(listCmd)
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Plain output without colors or icons")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	dbPath := listSelection.databasePath(cfg)
	db, err := loadDatabase(dbPath)
	if err != nil {
		return err
	}
	known := db.KnownReleases()

	if len(args) == 1 {
		if listSelection.from != "" || listSelection.to != "" {
			return clierrors.InvalidFlagCombination("[release] with --from/--to",
				"a release argument already selects a single release")
		}
		from, to, err := singleRelease(known, args[0])
		if err != nil {
			return err
		}
		listSelection.from, listSelection.to = from.String(), to.String()
	}

	o, err := listSelection.options(cfg, known)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printOptions(cmd.ErrOrStderr(), o, dbPath)
	}

	selected := distill.Distill(db.Changes, o)
	if len(selected) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes found")
		return nil
	}
	return changelog.FormatTerminal(selected, cmd.OutOrStdout(), changelog.FormatOptions{Plain: listPlain})
}

// singleRelease returns the range covering only the named release.
func singleRelease(known []change.Release, input string) (change.Release, change.Release, error) {
	r, err := changelog.FindRelease(known, input)
	if err != nil {
		return "", "", clierrors.UnsupportedRelease("release", input, changelog.JoinReleases(known[1:]))
	}
	i := slices.Index(known, r)
	if i == 0 {
		return "", "", clierrors.NewArgumentError(
			fmt.Sprintf("%s is the base release and has no changes of its own", r),
			fmt.Sprintf("Pick one of: %s", changelog.JoinReleases(known[1:])),
		)
	}
	return known[i-1], r, nil
}
