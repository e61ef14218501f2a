package distill

import (
	"slices"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// Op is a predicate operator.
type Op string

const (
	// OpAtLeast holds when the integer field is >= Int.
	OpAtLeast Op = "gte"
	// OpIn holds when the string field is one of Values.
	OpIn Op = "in"
)

// Field names double as the keys of the report dataset entries.
const (
	FieldLevel   = "level"
	FieldKind    = "kind"
	FieldSection = "section"
	FieldScope   = "scope"
	FieldID      = "id"
)

// Predicate is one condition on a record attribute.
type Predicate struct {
	Field  string   `json:"field"`
	Op     Op       `json:"op"`
	Int    int      `json:"int,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Filter is a conjunction of predicates. It serializes to JSON for the
// report script, which evaluates it with the same semantics as Match.
type Filter struct {
	Predicates []Predicate `json:"predicates"`
}

// Compile builds the filter for everything in o except the release range.
func Compile(o Options) Filter {
	preds := []Predicate{{Field: FieldLevel, Op: OpAtLeast, Int: o.Level}}

	if o.BreakingOnly {
		kinds := change.BreakingKinds()
		values := make([]string, len(kinds))
		for i, k := range kinds {
			values[i] = string(k)
		}
		preds = append(preds, Predicate{Field: FieldKind, Op: OpIn, Values: values})
	}

	sections := o.AllowedSections()
	values := make([]string, len(sections))
	for i, s := range sections {
		values[i] = string(s)
	}
	preds = append(preds, Predicate{Field: FieldSection, Op: OpIn, Values: values})

	return Filter{Predicates: preds}
}

// Match reports whether c satisfies every predicate. Unknown fields or
// operators never match.
func (f Filter) Match(c *change.Change) bool {
	for _, p := range f.Predicates {
		if !p.match(c) {
			return false
		}
	}
	return true
}

func (p Predicate) match(c *change.Change) bool {
	switch p.Op {
	case OpAtLeast:
		v, ok := intField(c, p.Field)
		return ok && v >= p.Int
	case OpIn:
		v, ok := stringField(c, p.Field)
		return ok && slices.Contains(p.Values, v)
	default:
		return false
	}
}

func intField(c *change.Change, field string) (int, bool) {
	switch field {
	case FieldLevel:
		return c.Level, true
	default:
		return 0, false
	}
}

func stringField(c *change.Change, field string) (string, bool) {
	switch field {
	case FieldKind:
		return string(c.Kind), true
	case FieldSection:
		return string(c.Section), true
	case FieldScope:
		return c.Scope, true
	case FieldID:
		return c.UniqueID(), true
	default:
		return "", false
	}
}
