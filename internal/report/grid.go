package report

import (
	"html/template"
	"slices"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/distill"
)

// Item is a rendered cell entry.
type Item struct {
	Kind    change.Kind
	Title   template.HTML
	Tooltip string
}

// Cell holds the entries of one release and section.
type Cell struct {
	Section    change.Section
	IsLanguage bool
	Hidden     bool
	Items      []Item
}

// Row is one release of the grid.
type Row struct {
	Release change.Release
	Hidden  bool
	Cells   []Cell
}

// Grid is the server-rendered table: sections are columns, releases rows.
type Grid struct {
	Sections []change.Section
	Rows     []Row
	Count    int
}

// BuildGrid lays out the records selected by o. Every release after the base
// gets a row and every section of the widest range a column, even when
// empty. Rows outside the range or without visible entries are hidden, as
// are columns the selection excludes.
func BuildGrid(records []*change.Change, known []change.Release, o distill.Options, md Markdown) Grid {
	sections := o.Widest(known).AllowedSections()
	allowed := o.AllowedSections()

	bucket := make(map[change.Release]map[change.Section][]*change.Change)
	for _, c := range distill.Distill(records, o) {
		if bucket[c.Release] == nil {
			bucket[c.Release] = make(map[change.Section][]*change.Change)
		}
		bucket[c.Release][c.Section] = append(bucket[c.Release][c.Section], c)
	}

	g := Grid{Sections: sections}
	if len(known) == 0 {
		return g
	}
	for _, release := range known[1:] {
		row := Row{Release: release}
		n := 0
		for _, section := range sections {
			cell := Cell{
				Section:    section,
				IsLanguage: section == change.SectionLanguage,
				Hidden:     !slices.Contains(allowed, section),
			}
			entries := bucket[release][section]
			distill.SortCell(entries)
			for _, c := range entries {
				cell.Items = append(cell.Items, Item{
					Kind:    c.Kind,
					Title:   template.HTML(md.HTML(c.Title)),
					Tooltip: md.Text(c.Summary),
				})
			}
			n += len(cell.Items)
			row.Cells = append(row.Cells, cell)
		}
		row.Hidden = n == 0 || !o.InRange(release)
		g.Count += n
		g.Rows = append(g.Rows, row)
	}
	return g
}
