package scrape

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// Source is one changelog document, named after the release it describes.
type Source struct {
	Name    string
	Path    string
	Version change.Release
}

var leadingVersion = regexp.MustCompile(`^(\d+(?:\.\d+){0,2})`)

// IsSourceName reports whether a file name looks like a release document,
// e.g. "3.2.md".
func IsSourceName(name string) bool {
	return strings.HasSuffix(name, ".md") && leadingVersion.MatchString(name)
}

// FindSources lists the release documents in dir ordered by the version
// token leading their names, so 3.10 follows 3.9.
func FindSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var sources []Source
	for _, e := range entries {
		if e.IsDir() || !IsSourceName(e.Name()) {
			continue
		}
		sources = append(sources, Source{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Version: change.Release(leadingVersion.FindString(e.Name())),
		})
	}

	slices.SortFunc(sources, func(a, b Source) int {
		if c := a.Version.Compare(b.Version); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return sources, nil
}
