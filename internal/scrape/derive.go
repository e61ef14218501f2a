package scrape

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

var (
	rubyRelease = regexp.MustCompile(`\bRuby (\d+(?:\.\d+){0,2})\b`)
	words       = regexp.MustCompile(`\w+`)

	sectionRules = []struct {
		pattern *regexp.Regexp
		section change.Section
	}{
		{regexp.MustCompile(`(?i)language`), change.SectionLanguage},
		{regexp.MustCompile(`(?i)core`), change.SectionCore},
		{regexp.MustCompile(`(?i)stdlib|standard library`), change.SectionStdlib},
	}
)

// DeriveMetadata fills in release and section from each record's heading
// path. Records whose section cannot be classified are reported and left
// without one.
func DeriveMetadata(records []*change.Change, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, c := range records {
		if rel, ok := releaseFromPath(c.Path); ok {
			c.Release = rel
		}

		section, ok := sectionFor(c)
		if !ok {
			logger.Warn("cannot classify section", "path", strings.Join(c.Path, " > "), "title", c.Title)
			continue
		}
		c.Section = section
	}
}

func releaseFromPath(path []string) (change.Release, bool) {
	for _, segment := range path {
		if m := rubyRelease.FindStringSubmatch(segment); m != nil {
			return change.Release(m[1]), true
		}
	}
	return "", false
}

func sectionFor(c *change.Change) (change.Section, bool) {
	if len(c.Path) < 2 || c.Path[1] == "" {
		return titleize(c.Title), true
	}
	for _, rule := range sectionRules {
		if rule.pattern.MatchString(c.Path[1]) {
			return rule.section, true
		}
	}
	return "", false
}

// titleize capitalizes every word of s: "language changes" becomes
// "Language Changes".
func titleize(s string) change.Section {
	ws := words.FindAllString(s, -1)
	for i, w := range ws {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		ws[i] = string(r)
	}
	return change.Section(strings.Join(ws, " "))
}

// RemoveUnwanted keeps only records that sit under a heading, belong to a
// release and carry supporting material. Substantive records dropped for
// lacking a release are reported. Input order is preserved.
func RemoveUnwanted(records []*change.Change, logger *slog.Logger) []*change.Change {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	kept := make([]*change.Change, 0, len(records))
	for _, c := range records {
		if len(c.Path) == 0 || !c.Substantive() {
			continue
		}
		if c.Release == "" {
			logger.Warn("dropping record outside any release", "path", strings.Join(c.Path, " > "), "title", c.Title)
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
