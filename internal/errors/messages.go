package errors

import "fmt"

// Common error messages for the rubychanges CLI.
// These templates ensure consistent, actionable error messages.

// UnsupportedRelease creates an error for a --from or --to value that is not
// a known release. available is the comma separated list of known releases.
func UnsupportedRelease(flag, provided, available string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unsupported release %s for --%s; must be one of: %s", provided, flag, available),
		"rubychanges report --from <release> --to <release>",
		"List documented releases with: rubychanges report --releases",
		"Releases may be written as 3.2, v3.2 or ruby-3.2",
	)
}

// InvalidLevel creates an error for an importance outside 1-3.
func InvalidLevel(level int) *CLIError {
	return NewConfigError(
		fmt.Sprintf("invalid importance level %d", level),
		"Use 1 (all), 2 (non-esoteric) or 3 (important)",
		"Check default_level in .rubychanges.yml or RUBYCHANGES_DEFAULT_LEVEL",
	)
}

// DatabaseNotFound creates an error for a missing database file.
func DatabaseNotFound(path string) *CLIError {
	return NewDataError(
		fmt.Sprintf("database not found: %s", path),
		"Run 'rubychanges scrape' to build it from the release documents",
		"Or point to it with --db, the database key in .rubychanges.yml, or RUBYCHANGES_DATABASE",
	)
}

// DatabaseInvalid creates an error for a database that fails to load.
func DatabaseInvalid(path string, err error) *CLIError {
	return WrapWithMessage(err, Data,
		fmt.Sprintf("invalid database %s", path),
		"Rebuild it with: rubychanges scrape",
		"Do not edit the database by hand; edit the release documents instead",
	)
}

// NoSourceDocuments creates an error when the source directory holds no
// release documents.
func NoSourceDocuments(dir string) *CLIError {
	return NewDataError(
		fmt.Sprintf("no release documents found in %s", dir),
		"Release documents are named after their release, e.g. 3.2.md",
		"Point to the right directory with --source or source_dir in .rubychanges.yml",
	)
}

// DirectoryNotFound creates an error for missing directory.
func DirectoryNotFound(path string) *CLIError {
	return NewDataError(
		fmt.Sprintf("directory not found: %s", path),
		"Check that the path is correct",
		"Set source_dir in .rubychanges.yml or RUBYCHANGES_SOURCE_DIR",
	)
}

// ConfigParseError creates an error for invalid config file format.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .rubychanges.yml and ~/.config/rubychanges/config.yml for YAML syntax errors",
		"Print the effective configuration with: rubychanges config show",
		"Recreate the project config with: rubychanges config init --force",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'rubychanges <command> --help' to see valid options",
	)
}

// FileExists creates an error when a command refuses to overwrite a file.
func FileExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("file already exists: %s", path),
		"Pass --force to overwrite it",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
