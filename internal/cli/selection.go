package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/changelog"
	"github.com/ariel-frischer/rubychanges/internal/config"
	"github.com/ariel-frischer/rubychanges/internal/distill"
	clierrors "github.com/ariel-frischer/rubychanges/internal/errors"
	"github.com/ariel-frischer/rubychanges/internal/output"
)

// selectionFlags are the record selection flags shared by report and list.
type selectionFlags struct {
	db           string
	from, to     string
	important    bool
	relevant     bool
	breakingOnly bool
	languageOnly bool
	sections     []string
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.db, "db", "", "Database file (default: database key of the config)")
	flags.StringVarP(&f.from, "from", "f", "", "Show only changes after this release (default: base release)")
	flags.StringVarP(&f.to, "to", "t", "", "Show only changes up to and including this release (default: newest)")
	flags.BoolVarP(&f.important, "important", "i", false, "Show only the most important changes")
	flags.BoolVarP(&f.relevant, "relevant", "r", false, "Show only major/medium changes (ignore esoteric changes)")
	flags.BoolVarP(&f.breakingOnly, "breaking-only", "b", false, "Show only changes that may affect existing scripts")
	flags.BoolVarP(&f.languageOnly, "language-only", "l", false, "Show only changes to the language (not specific classes/methods)")
	flags.StringArrayVar(&f.sections, "section", nil, "Also show this section, e.g. \"Standard Library\" (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("important", "relevant")
}

// databasePath returns the --db flag or the configured database.
func (f *selectionFlags) databasePath(cfg *config.Configuration) string {
	if f.db != "" {
		return f.db
	}
	return cfg.Database
}

// loadDatabase reads the database, turning a missing or invalid file into a
// data error.
func loadDatabase(path string) (*changelog.Database, error) {
	db, err := changelog.Load(path)
	if err == nil {
		return db, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, clierrors.DatabaseNotFound(path)
	}
	return nil, clierrors.DatabaseInvalid(path, err)
}

// options resolves the flags and configuration into distill options. Unknown
// releases are argument errors listing the valid ones.
func (f *selectionFlags) options(cfg *config.Configuration, known []change.Release) (distill.Options, error) {
	o := distill.DefaultOptions(known)
	o.Level = cfg.DefaultLevel
	switch {
	case f.important:
		o.Level = change.LevelHigh
	case f.relevant:
		o.Level = change.LevelMedium
	}
	o.BreakingOnly = f.breakingOnly
	o.LanguageOnly = f.languageOnly
	o.Sections = cfg.ExtraSections()
	for _, s := range f.sections {
		o.Sections = append(o.Sections, change.Section(s))
	}

	var err error
	if f.from != "" {
		if o.From, err = resolveRelease(known, "from", f.from); err != nil {
			return o, err
		}
	}
	if f.to != "" {
		if o.To, err = resolveRelease(known, "to", f.to); err != nil {
			return o, err
		}
	}

	// Both bounds are known here, so only the level can fail.
	if err := o.Validate(known); err != nil {
		return o, clierrors.InvalidLevel(o.Level)
	}
	if o.From.Compare(o.To) > 0 {
		return o, clierrors.InvalidFlagCombination(
			fmt.Sprintf("--from %s --to %s", o.From, o.To),
			"--from must not be newer than --to",
		)
	}
	return o, nil
}

func resolveRelease(known []change.Release, flag, value string) (change.Release, error) {
	r, err := changelog.FindRelease(known, value)
	if err != nil {
		return "", clierrors.UnsupportedRelease(flag, value, changelog.JoinReleases(known))
	}
	return r, nil
}

// printOptions dumps the effective selection, for --verbose.
func printOptions(w io.Writer, o distill.Options, database string) {
	fmt.Fprintln(w, "Effective options:")
	output.PrintKeyValue(w, "database", database, "")
	output.PrintKeyValue(w, "from", o.From, "exclusive")
	output.PrintKeyValue(w, "to", o.To, "inclusive")
	output.PrintKeyValue(w, "level", o.Level, "")
	output.PrintKeyValue(w, "breaking-only", o.BreakingOnly, "")
	output.PrintKeyValue(w, "language-only", o.LanguageOnly, "")
	output.PrintKeyValue(w, "sections", o.AllowedSections(), "")
}
