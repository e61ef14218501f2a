package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# rubychanges configuration
# Precedence: flags > RUBYCHANGES_* env > .rubychanges.yml > ~/.config/rubychanges/config.yml

# Scraping
source_dir: .                         # Directory holding the per-release documents (3.2.md, ...)
database: database.yaml               # Canonical store written by 'scrape', read by 'report' and 'list'
base_release: "2.3"                   # Oldest release reports compare against (quote it: 3.10 is not 3.1)

# Reporting
output: ruby-changes.html             # Report file written by 'report'
default_level: 1                      # Minimum importance: 1 (all) | 2 (non-esoteric) | 3 (important)
sections: []                          # Extra sections next to Language and Core, e.g. ["Standard Library"]

# Diagnostics
verbose: false                        # Trace parsing and print effective options
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"source_dir":   ".",
		"database":     "database.yaml",
		"base_release": "2.3",
		"output":       "ruby-changes.html",
		// default_level: 1 keeps every record; --relevant and --important
		// raise it per run.
		"default_level": 1,
		"sections":      []string{},
		"verbose":       false,
	}
}
