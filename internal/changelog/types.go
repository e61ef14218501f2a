package changelog

import (
	"slices"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// SchemaVersion is the database layout this build reads and writes.
const SchemaVersion = 1

// Database is the root structure of database.yaml.
// BaseRelease is the oldest release the report can be compared against; it
// has no records of its own.
type Database struct {
	SchemaVersion int              `yaml:"schema_version" validate:"required"`
	BaseRelease   change.Release   `yaml:"base_release" validate:"required"`
	Source        string           `yaml:"source,omitempty"`
	Changes       []*change.Change `yaml:"changes" validate:"dive,required"`
}

// New returns a database at the current schema version.
func New(base change.Release, changes []*change.Change) *Database {
	if changes == nil {
		changes = []*change.Change{}
	}
	return &Database{
		SchemaVersion: SchemaVersion,
		BaseRelease:   base,
		Changes:       changes,
	}
}

// Releases returns the distinct releases that have records, ascending.
func (d *Database) Releases() []change.Release {
	seen := make(map[change.Release]bool)
	var releases []change.Release
	for _, c := range d.Changes {
		if c.Release == "" || seen[c.Release] {
			continue
		}
		seen[c.Release] = true
		releases = append(releases, c.Release)
	}
	change.SortReleases(releases)
	return releases
}

// KnownReleases returns the base release followed by every release with
// records, ascending and without duplicates.
func (d *Database) KnownReleases() []change.Release {
	releases := d.Releases()
	if !slices.Contains(releases, d.BaseRelease) {
		releases = append(releases, d.BaseRelease)
		change.SortReleases(releases)
	}
	return releases
}

// Count returns the number of records.
func (d *Database) Count() int {
	return len(d.Changes)
}
