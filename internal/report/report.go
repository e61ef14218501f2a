// Package report renders distilled change records as a self-contained HTML
// page. The page shows the requested selection right away and carries the
// records of the widest range together with compiled filters, so its
// selectors can re-filter the grid in the browser using the same predicates.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/natefinch/atomic"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/distill"
)

//go:embed report.html.tmpl
var pageSource string

//go:embed report.js
var script string

var page = template.Must(template.New("report").Parse(pageSource))

type pageData struct {
	Grid         Grid
	Dataset      *Dataset
	Presets      []distill.Preset
	Selected     string
	LanguageOnly bool
	Language     change.Section
	FromChoices  []change.Release
	ToChoices    []change.Release
	From, To     change.Release
	Script       template.JS
}

// Render writes the report for records to w. known is the ascending list of
// known releases, base release first; o must already be validated against
// it.
func Render(w io.Writer, records []*change.Change, known []change.Release, o distill.Options, md Markdown) error {
	if len(known) < 2 {
		return fmt.Errorf("rendering report: need at least one release after the base, have %d known", len(known))
	}
	if md == nil {
		md = NewCommonMark()
	}

	presets, selected := distill.PresetsFor(o)
	data := pageData{
		Grid:         BuildGrid(records, known, o, md),
		Dataset:      NewDataset(records, known, o, md),
		Presets:      presets,
		Selected:     selected,
		LanguageOnly: o.LanguageOnly,
		Language:     change.SectionLanguage,
		FromChoices:  known[:len(known)-1],
		ToChoices:    known[1:],
		From:         o.From,
		To:           o.To,
		Script:       template.JS(script),
	}

	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// WriteFile renders the report and replaces path with it in one step. On
// error path is left untouched.
func WriteFile(path string, records []*change.Change, known []change.Release, o distill.Options, md Markdown) error {
	var buf bytes.Buffer
	if err := Render(&buf, records, known, o, md); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
