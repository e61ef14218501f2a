// Package changelog is the canonical store of scraped Ruby change records.
//
// This package implements:
//   - database.yaml loading, validation and atomic saving
//   - the list of known releases and release lookup for CLI input
//   - terminal listing of change records for `rubychanges list`
//
// The database is a single versioned YAML document. It is rewritten as a
// whole on every scrape and never edited in place.
package changelog
