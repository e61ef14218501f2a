package scrape

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/changelog"
	"github.com/ariel-frischer/rubychanges/internal/git"
)

// ErrNoSources is returned by Run when the source directory holds no
// release documents.
var ErrNoSources = errors.New("no release documents (e.g. 3.2.md) found")

// Options configures a scrape run.
type Options struct {
	SourceDir   string
	Database    string
	BaseRelease change.Release
	// Registry resolves bullet labels. Nil means change.DefaultRegistry().
	Registry *change.Registry
	Logger   *slog.Logger
}

// Result summarizes a scrape run.
type Result struct {
	Sources  []Source
	Parsed   int
	Database *changelog.Database
}

// Collect parses every source in order, derives release and section, and
// drops records without a release or supporting material. It also returns
// how many records were parsed before dropping.
func Collect(sources []Source, parser *Parser, logger *slog.Logger) ([]*change.Change, int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var all []*change.Change
	for _, src := range sources {
		records, err := parser.ParseFile(src)
		if err != nil {
			return nil, 0, err
		}
		logger.Debug("parsed document", "source", src.Name, "records", len(records))
		all = append(all, records...)
	}

	DeriveMetadata(all, logger)
	return RemoveUnwanted(all, logger), len(all), nil
}

// Run scrapes opts.SourceDir and replaces the database at opts.Database.
// Nothing is written when any document fails to load or the result does
// not validate.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := opts.Registry
	if registry == nil {
		registry = change.DefaultRegistry()
	}

	sources, err := FindSources(opts.SourceDir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, opts.SourceDir)
	}

	kept, parsed, err := Collect(sources, NewParser(registry, logger), logger)
	if err != nil {
		return nil, err
	}

	db := changelog.New(opts.BaseRelease, kept)
	if rev, err := git.HeadRevision(opts.SourceDir); err == nil {
		db.Source = rev.String()
	} else {
		logger.Debug("source revision unavailable", "dir", opts.SourceDir, "error", err)
	}

	if err := changelog.Save(opts.Database, db); err != nil {
		return nil, err
	}

	logger.Debug("scrape complete", "sources", len(sources), "parsed", parsed, "kept", len(kept))
	return &Result{Sources: sources, Parsed: parsed, Database: db}, nil
}
