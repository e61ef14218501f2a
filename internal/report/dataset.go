package report

import (
	"strings"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/distill"
)

// Discussion is a dataset entry's background link.
type Discussion struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Comments string `json:"comments,omitempty"`
}

// Entry is one record as the report script sees it. The keys of the
// attributes the filter reads match the distill Field names.
type Entry struct {
	ID      string         `json:"id"`
	Release change.Release `json:"release"`
	Section change.Section `json:"section"`
	Level   int            `json:"level"`
	Kind    change.Kind    `json:"kind"`
	Scope   string         `json:"scope"`

	Title  string       `json:"title"`
	Brief  string       `json:"brief,omitempty"`
	Reason string       `json:"reason,omitempty"`
	Code   string       `json:"code,omitempty"`
	Notes  string       `json:"notes,omitempty"`
	Docs   string       `json:"docs,omitempty"`
	BG     []Discussion `json:"bg,omitempty"`
}

// NewEntry converts c, rendering its prose with md.
func NewEntry(c *change.Change, md Markdown) Entry {
	e := Entry{
		ID:      c.UniqueID(),
		Release: c.Release,
		Section: c.Section,
		Level:   c.Level,
		Kind:    c.Kind,
		Scope:   c.Scope,
		Title:   md.HTML(c.Title),
		Brief:   md.HTML(c.Summary),
		Reason:  md.HTML(c.Reason),
		Code:    md.HTML(strings.Join(c.Code, "\n")),
		Notes:   md.HTML(c.Notes),
		Docs:    md.HTML(strings.Join(c.Documentation, "\n")),
	}
	for _, d := range c.Discussions {
		e.BG = append(e.BG, Discussion{Label: d.Label(), URL: d.URL(), Comments: d.Note()})
	}
	return e
}

// Dataset is everything the report script needs to re-filter the grid
// without a round trip.
type Dataset struct {
	// Releases is every known release, ascending. Range bounds compare by
	// position in this list.
	Releases []change.Release `json:"releases"`
	// Changes maps UniqueID to entry.
	Changes map[string]Entry `json:"changes"`
	// Filters maps "<preset>|<1 or 0>" to the compiled filter for that
	// combination of the change filter and language selectors.
	Filters map[string]distill.Filter `json:"filters"`
	Sort    []distill.SortKey         `json:"sort"`
}

// FilterKey names the Dataset.Filters entry for a selector combination.
func FilterKey(preset string, languageOnly bool) string {
	if languageOnly {
		return preset + "|0"
	}
	return preset + "|1"
}

// NewDataset builds the dataset for the widest browsing range of o: every
// release after the base, every importance and kind, and o's sections.
func NewDataset(records []*change.Change, known []change.Release, o distill.Options, md Markdown) *Dataset {
	widest := o.Widest(known)
	ds := &Dataset{
		Releases: known,
		Changes:  make(map[string]Entry),
		Filters:  make(map[string]distill.Filter),
		Sort:     distill.CellOrder,
	}
	for _, c := range distill.Distill(records, widest) {
		ds.Changes[c.UniqueID()] = NewEntry(c, md)
	}

	presets, _ := distill.PresetsFor(o)
	for _, p := range presets {
		for _, langOnly := range []bool{false, true} {
			combo := p.Apply(widest)
			combo.LanguageOnly = langOnly
			ds.Filters[FilterKey(p.Value, langOnly)] = distill.Compile(combo)
		}
	}
	return ds
}
