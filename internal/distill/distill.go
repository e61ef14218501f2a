package distill

import (
	"cmp"
	"slices"
	"unicode/utf16"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// Distill returns the records selected by o, in input order. It never
// modifies the records.
func Distill(records []*change.Change, o Options) []*change.Change {
	f := Compile(o)
	out := make([]*change.Change, 0, len(records))
	for _, c := range records {
		if o.InRange(c.Release) && f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// SortKey orders records within a report cell.
type SortKey struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// CellOrder sorts by importance, most important first, then scope, then id.
var CellOrder = []SortKey{
	{Field: FieldLevel, Desc: true},
	{Field: FieldScope},
	{Field: FieldID},
}

// SortCell sorts records in place by CellOrder.
func SortCell(records []*change.Change) {
	slices.SortStableFunc(records, CompareCell)
}

// CompareCell compares two records by CellOrder.
func CompareCell(a, b *change.Change) int {
	for _, key := range CellOrder {
		var c int
		if av, ok := intField(a, key.Field); ok {
			bv, _ := intField(b, key.Field)
			c = cmp.Compare(av, bv)
		} else {
			av, _ := stringField(a, key.Field)
			bv, _ := stringField(b, key.Field)
			c = compareText(av, bv)
		}
		if key.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareText orders strings by UTF-16 code units, as the report script's
// < operator does. Byte order differs once a string leaves the BMP.
func compareText(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
