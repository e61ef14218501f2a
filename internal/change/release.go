package change

import (
	"fmt"
	"regexp"
	"slices"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Release is a numeric Ruby version such as "3.2" or "2.7.1".
type Release string

var releaseToken = regexp.MustCompile(`^\d+(?:\.\d+){0,2}$`)

// ParseRelease validates s as a release number of one to three numeric
// components.
func ParseRelease(s string) (Release, error) {
	if !releaseToken.MatchString(s) {
		return "", fmt.Errorf("invalid release %q: expected a numeric version like 3.2", s)
	}
	return Release(s), nil
}

// MustParseRelease is like ParseRelease but panics on invalid input.
func MustParseRelease(s string) Release {
	r, err := ParseRelease(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Compare returns -1, 0 or +1 comparing r to other numerically, so that
// "3.2" < "3.10". Invalid releases sort before valid ones.
func (r Release) Compare(other Release) int {
	return semver.Compare("v"+string(r), "v"+string(other))
}

// Valid reports whether r is a well-formed release number.
func (r Release) Valid() bool {
	return releaseToken.MatchString(string(r))
}

func (r Release) String() string {
	return string(r)
}

// MarshalYAML writes the release as a string so "3.10" does not become 3.1.
func (r Release) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(r)}, nil
}

// UnmarshalYAML accepts both quoted and bare numeric scalars.
func (r *Release) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: release must be a scalar", value.Line)
	}
	parsed, err := ParseRelease(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// SortReleases sorts releases in ascending numeric order.
func SortReleases(releases []Release) {
	slices.SortFunc(releases, Release.Compare)
}
