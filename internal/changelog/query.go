package changelog

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// ReleaseNotFoundError is returned when a requested release is not known.
type ReleaseNotFoundError struct {
	Release   string
	Available []change.Release
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("release %q not found (available: %s)", e.Release, JoinReleases(e.Available))
}

// JoinReleases formats releases as a comma separated list.
func JoinReleases(releases []change.Release) string {
	names := make([]string, len(releases))
	for i, r := range releases {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}

// NormalizeRelease accepts "3.2", "v3.2" and "ruby-3.2" style input.
func NormalizeRelease(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ruby")
	s = strings.TrimLeft(s, " -_")
	return strings.TrimPrefix(s, "v")
}

// FindRelease resolves user input against known releases.
// Returns ReleaseNotFoundError if the release is not among them.
func FindRelease(known []change.Release, input string) (change.Release, error) {
	normalized := NormalizeRelease(input)
	if rel, err := change.ParseRelease(normalized); err == nil {
		for _, k := range known {
			if k.Compare(rel) == 0 {
				return k, nil
			}
		}
	}
	return "", &ReleaseNotFoundError{Release: input, Available: known}
}

// Latest returns the newest known release.
func (d *Database) Latest() change.Release {
	known := d.KnownReleases()
	return known[len(known)-1]
}

// ChangesIn returns the records of a single release in stored order.
func (d *Database) ChangesIn(release change.Release) []*change.Change {
	var out []*change.Change
	for _, c := range d.Changes {
		if c.Release.Compare(release) == 0 {
			out = append(out, c)
		}
	}
	return out
}
