// Package change defines the change record scraped from per-release Ruby
// changelog documents, together with the field table that maps markdown bullet
// labels onto record attributes.
//
// A record is created for every markdown heading and filled in by the bullets
// and prose lines that follow it. The scrape package drives that process; this
// package only knows how a single value lands on a record.
package change

import (
	"fmt"
	"slices"
	"strings"
)

// Kind classifies a change.
type Kind string

const (
	KindAddition    Kind = "addition"
	KindRemoval     Kind = "removal"
	KindChange      Kind = "change"
	KindPromotion   Kind = "promotion"
	KindDeprecation Kind = "deprecation"
	KindOther       Kind = "other"
)

// Kinds returns every recognized kind in display order.
func Kinds() []Kind {
	return []Kind{KindAddition, KindRemoval, KindChange, KindPromotion, KindDeprecation, KindOther}
}

// ParseKind normalizes s and reports whether it names a recognized kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, slices.Contains(Kinds(), k)
}

// Breaking reports whether changes of this kind may break existing code.
func (k Kind) Breaking() bool {
	return k == KindRemoval || k == KindChange
}

// BreakingKinds returns the kinds for which Breaking is true.
func BreakingKinds() []Kind {
	return []Kind{KindRemoval, KindChange}
}

// Section is the coarse area of the language a change belongs to.
type Section string

const (
	SectionLanguage Section = "Language Changes"
	SectionCore     Section = "Core Classes and Modules"
	SectionStdlib   Section = "Standard Library"
)

// Importance levels. Higher is more important.
const (
	LevelLow     = 1
	LevelMedium  = 2
	LevelHigh    = 3
	DefaultLevel = LevelMedium
)

// Change is one documented change in one Ruby release.
type Change struct {
	Release       Release     `yaml:"release,omitempty" validate:"required"`
	Section       Section     `yaml:"section,omitempty"`
	Path          []string    `yaml:"path,flow" validate:"min=1"`
	Title         string      `yaml:"title" validate:"required"`
	Summary       string      `yaml:"summary,omitempty"`
	Kind          Kind        `yaml:"kind,omitempty" validate:"omitempty,oneof=addition removal change promotion deprecation other"`
	Level         int         `yaml:"level" validate:"min=1,max=3"`
	Highlight     bool        `yaml:"highlight,omitempty"`
	Scope         string      `yaml:"scope,omitempty"`
	Affects       []string    `yaml:"affects,omitempty"`
	Notes         string      `yaml:"notes,omitempty"`
	Reason        string      `yaml:"reason,omitempty"`
	Followup      string      `yaml:"followup,omitempty"`
	Discussions   Discussions `yaml:"discussions,omitempty"`
	Documentation []string    `yaml:"documentation,omitempty"`
	Code          []string    `yaml:"code,omitempty"`
}

// New returns a record for the heading title found under the given path.
func New(title string, path []string) *Change {
	return &Change{
		Title: title,
		Path:  slices.Clone(path),
		Level: DefaultLevel,
	}
}

// UniqueID derives a stable identifier from the heading path and title.
// Segments are lower-cased and joined with "/". Letters, digits, "_" and
// "." are kept, whitespace runs become "-", and every other byte is written
// as "~" plus two hex digits, so "`Integer#+`" and "`Integer#-`" stay
// apart. Two records share an ID only when their path and title differ in
// letter case or spacing alone.
func (c *Change) UniqueID() string {
	var sb strings.Builder
	for i, segment := range append(slices.Clone(c.Path), c.Title) {
		if i > 0 {
			sb.WriteByte('/')
		}
		writeSlug(&sb, segment)
	}
	return sb.String()
}

func writeSlug(sb *strings.Builder, s string) {
	s = strings.ToLower(s)
	space := false
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == ' ' || b == '\t' {
			if !space {
				sb.WriteByte('-')
			}
			space = true
			continue
		}
		space = false
		switch {
		case b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '_', b == '.':
			sb.WriteByte(b)
		default:
			fmt.Fprintf(sb, "~%02x", b)
		}
	}
}

// Breaking reports whether the change kind may break existing code.
func (c *Change) Breaking() bool {
	return c.Kind.Breaking()
}

// Finalize trims trailing whitespace collected by multi-line prose fields.
// Code lines are left untouched.
func (c *Change) Finalize() {
	c.Notes = strings.TrimSpace(c.Notes)
	c.Reason = strings.TrimSpace(c.Reason)
	c.Followup = strings.TrimSpace(c.Followup)
	for len(c.Documentation) > 0 && c.Documentation[len(c.Documentation)-1] == "" {
		c.Documentation = c.Documentation[:len(c.Documentation)-1]
	}
}

// Substantive reports whether the record carries any supporting material:
// discussions, documentation, a reason, or code.
func (c *Change) Substantive() bool {
	return len(c.Discussions) > 0 ||
		len(c.Documentation) > 0 ||
		c.Reason != "" ||
		len(c.Code) > 0
}
