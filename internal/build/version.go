// Package build holds the rubychanges version information.
// It has no dependencies on other internal packages.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/rubychanges"

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// ShortCommit shortens the commit hash to 8 characters.
func ShortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}
	return Commit
}

// Info is one labelled line of version output.
type Info struct {
	Label string
	Value string
}

// Details returns the version, commit, build date, Go version and platform.
func Details() []Info {
	return []Info{
		{"Version", Version},
		{"Commit", ShortCommit()},
		{"Built", BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
}
