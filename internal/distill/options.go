// Package distill selects the change records a reader asked for: a release
// range, a minimum importance, optionally only breaking changes, and a set of
// sections. The selection is expressed as a declarative Filter so the HTML
// report can run the very same predicates in the browser.
package distill

import (
	"fmt"
	"slices"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/changelog"
)

// Options selects records.
type Options struct {
	// From is exclusive, To inclusive.
	From, To change.Release
	// Level is the minimum importance, 1 to 3.
	Level        int
	BreakingOnly bool
	// LanguageOnly drops everything outside the Language section.
	LanguageOnly bool
	// Sections lists extra sections to show next to Language and Core.
	Sections []change.Section
}

// DefaultOptions covers every known release at every importance.
func DefaultOptions(known []change.Release) Options {
	o := Options{Level: change.LevelLow}
	if len(known) > 0 {
		o.From = known[0]
		o.To = known[len(known)-1]
	}
	return o
}

// Resolve parses the user supplied from/to against known releases. Empty
// input keeps the default bound.
func Resolve(known []change.Release, from, to string) (change.Release, change.Release, error) {
	defaults := DefaultOptions(known)
	lo, hi := defaults.From, defaults.To
	var err error
	if from != "" {
		if lo, err = changelog.FindRelease(known, from); err != nil {
			return "", "", err
		}
	}
	if to != "" {
		if hi, err = changelog.FindRelease(known, to); err != nil {
			return "", "", err
		}
	}
	return lo, hi, nil
}

// Validate checks the importance range and that From and To are known
// releases.
func (o Options) Validate(known []change.Release) error {
	if o.Level < change.LevelLow || o.Level > change.LevelHigh {
		return fmt.Errorf("level %d out of range 1-3", o.Level)
	}
	for _, r := range []change.Release{o.From, o.To} {
		if !slices.ContainsFunc(known, func(k change.Release) bool { return k.Compare(r) == 0 }) {
			return &changelog.ReleaseNotFoundError{Release: r.String(), Available: known}
		}
	}
	return nil
}

// InRange reports whether From < r <= To.
func (o Options) InRange(r change.Release) bool {
	return o.From.Compare(r) < 0 && r.Compare(o.To) <= 0
}

// AllowedSections returns Language, then Core unless LanguageOnly, then the
// extra sections unless LanguageOnly.
func (o Options) AllowedSections() []change.Section {
	allowed := []change.Section{change.SectionLanguage}
	if o.LanguageOnly {
		return allowed
	}
	allowed = append(allowed, change.SectionCore)
	for _, s := range o.Sections {
		if !slices.Contains(allowed, s) {
			allowed = append(allowed, s)
		}
	}
	return allowed
}

// Adjectives describes the selection for a report caption, e.g.
// ["Important", "Potentially-Breaking"].
func (o Options) Adjectives() []string {
	var adj []string
	switch o.Level {
	case change.LevelHigh:
		adj = append(adj, "Important")
	case change.LevelMedium:
		adj = append(adj, "Non-Esoteric")
	}
	if o.BreakingOnly {
		adj = append(adj, "Potentially-Breaking")
	}
	return adj
}

// Widest returns the browsing range of a report: every release after the
// base, every importance, every kind, and the sections o asked for.
func (o Options) Widest(known []change.Release) Options {
	w := DefaultOptions(known)
	w.Sections = slices.Clone(o.Sections)
	return w
}
