package change

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ApplyFunc assigns a bullet value (or a continuation line) to a record.
type ApplyFunc func(c *Change, value string) error

// Field is a canonical record attribute that bullets can assign.
type Field struct {
	// Name is the canonical label, lower-case.
	Name string
	// SingleLine fields never receive continuation lines.
	SingleLine bool
	Apply      ApplyFunc
}

// UnknownFieldError is returned for a label the registry does not know.
type UnknownFieldError struct {
	Label string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Label)
}

// ValueError is returned when a field rejects a value. The record is left
// unchanged.
type ValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Field, e.Reason, e.Value)
}

// Registry resolves bullet labels, case-insensitively, to fields.
type Registry struct {
	fields  map[string]Field
	aliases map[string]string
}

// NewRegistry builds a registry from fields and an alias table mapping
// alias labels to canonical field names. It fails on duplicate names,
// aliases that point nowhere, and fields without a handler.
func NewRegistry(fields []Field, aliases map[string]string) (*Registry, error) {
	r := &Registry{
		fields:  make(map[string]Field, len(fields)),
		aliases: make(map[string]string, len(aliases)),
	}
	for _, f := range fields {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}

	// sorted so the first reported error is deterministic
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	for _, alias := range names {
		if err := r.Alias(alias, aliases[alias]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Register adds a canonical field.
func (r *Registry) Register(f Field) error {
	name := normalizeLabel(f.Name)
	switch {
	case name == "":
		return errors.New("registering field: empty name")
	case f.Apply == nil:
		return fmt.Errorf("registering field %q: nil handler", name)
	}
	if _, taken := r.resolve(name); taken {
		return fmt.Errorf("registering field %q: label already registered", name)
	}
	f.Name = name
	r.fields[name] = f
	return nil
}

// Alias makes label resolve to the canonical field named target.
func (r *Registry) Alias(label, target string) error {
	label = normalizeLabel(label)
	target = normalizeLabel(target)
	if _, ok := r.fields[target]; !ok {
		return fmt.Errorf("alias %q: no field named %q", label, target)
	}
	if _, taken := r.resolve(label); taken {
		return fmt.Errorf("alias %q: label already registered", label)
	}
	r.aliases[label] = target
	return nil
}

func (r *Registry) resolve(label string) (Field, bool) {
	if f, ok := r.fields[label]; ok {
		return f, true
	}
	if target, ok := r.aliases[label]; ok {
		return r.fields[target], true
	}
	return Field{}, false
}

// Lookup resolves a bullet label to its canonical field.
func (r *Registry) Lookup(label string) (Field, bool) {
	return r.resolve(normalizeLabel(label))
}

// Apply resolves label and assigns value to c.
func (r *Registry) Apply(c *Change, label, value string) (Field, error) {
	f, ok := r.Lookup(label)
	if !ok {
		return Field{}, &UnknownFieldError{Label: label}
	}
	return f, f.Apply(c, value)
}

// Labels returns every label the registry accepts, sorted.
func (r *Registry) Labels() []string {
	labels := make([]string, 0, len(r.fields)+len(r.aliases))
	for name := range r.fields {
		labels = append(labels, name)
	}
	for alias := range r.aliases {
		labels = append(labels, alias)
	}
	sort.Strings(labels)
	return labels
}

// DefaultRegistry returns a fresh registry holding the built-in fields.
// It panics if the built-in table is inconsistent.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(nil, nil)
	if err != nil {
		panic(err)
	}
	for _, f := range builtinFields(r) {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	for alias, target := range builtinAliases {
		if err := r.Alias(alias, target); err != nil {
			panic(err)
		}
	}
	return r
}

var builtinAliases = map[string]string{
	"note":                         "notes",
	"notice":                       "notes",
	"follow-up":                    "followup",
	"follow-ups":                   "followup",
	"reason/usage":                 "reason",
	"discussions":                  "discussion",
	"affected methods":             "affects",
	"methods affected":             "affects",
	"classes and modules affected": "affects",
	"new and updated methods":      "affects",
}

func builtinFields(r *Registry) []Field {
	return []Field{
		{Name: "title", SingleLine: true, Apply: setTitle},
		{Name: "summary", SingleLine: true, Apply: setSummary},
		{Name: "kind", SingleLine: true, Apply: setKind},
		{Name: "importance", SingleLine: true, Apply: setImportance},
		{Name: "highlight", SingleLine: true, Apply: setHighlight},
		{Name: "scope", SingleLine: true, Apply: setScope},
		{Name: "release", SingleLine: true, Apply: setRelease},
		{Name: "metadata", SingleLine: true, Apply: metadataHandler(r)},
		{Name: "notes", Apply: appendProse(func(c *Change) *string { return &c.Notes })},
		{Name: "reason", Apply: appendProse(func(c *Change) *string { return &c.Reason })},
		{Name: "followup", Apply: appendProse(func(c *Change) *string { return &c.Followup })},
		{Name: "discussion", Apply: addDiscussions},
		{Name: "documentation", Apply: addDocumentation},
		{Name: "affects", Apply: addAffected},
		{Name: "code", Apply: addCode},
	}
}

func setTitle(c *Change, v string) error {
	c.Title = strings.TrimSpace(v)
	return nil
}

func setSummary(c *Change, v string) error {
	c.Summary = strings.TrimSpace(v)
	return nil
}

func setScope(c *Change, v string) error {
	c.Scope = strings.TrimSpace(v)
	return nil
}

func setKind(c *Change, v string) error {
	k, ok := ParseKind(v)
	if !ok {
		return &ValueError{Field: "kind", Value: v, Reason: "unrecognized kind"}
	}
	c.Kind = k
	return nil
}

func setImportance(c *Change, v string) error {
	level, ok := ParseImportance(v)
	if !ok {
		return &ValueError{Field: "importance", Value: v, Reason: "unrecognized importance"}
	}
	c.Level = level
	return nil
}

func setHighlight(c *Change, v string) error {
	on, ok := parseFlag(v)
	if !ok {
		return &ValueError{Field: "highlight", Value: v, Reason: "expected yes or no"}
	}
	c.Highlight = on
	return nil
}

// setRelease records a release given by bullet. The heading path still wins
// when it names one.
func setRelease(c *Change, v string) error {
	rel, err := ParseRelease(strings.TrimSpace(v))
	if err != nil {
		return &ValueError{Field: "release", Value: v, Reason: "not a release number"}
	}
	c.Release = rel
	return nil
}

// appendProse accumulates paragraph text. A blank line after text becomes a
// paragraph break.
func appendProse(target func(*Change) *string) ApplyFunc {
	return func(c *Change, v string) error {
		dst := target(c)
		v = strings.TrimSpace(v)
		switch {
		case *dst == "" && v == "":
		case *dst == "":
			*dst = v
		default:
			*dst += "\n" + v
		}
		return nil
	}
}

func addDiscussions(c *Change, v string) error {
	c.Discussions = append(c.Discussions, ExtractReferences(v)...)
	return nil
}

func addDocumentation(c *Change, v string) error {
	v = strings.TrimSpace(v)
	if v == "" && len(c.Documentation) == 0 {
		return nil
	}
	c.Documentation = append(c.Documentation, v)
	return nil
}

func addAffected(c *Change, v string) error {
	if v = strings.TrimSpace(v); v != "" {
		c.Affects = append(c.Affects, v)
	}
	return nil
}

// addCode keeps lines verbatim, dropping blank lines only until the first
// non-blank one.
func addCode(c *Change, v string) error {
	if len(c.Code) == 0 && strings.TrimSpace(v) == "" {
		return nil
	}
	c.Code = append(c.Code, v)
	return nil
}

// metadataHandler parses "{key:value, key:value}" and dispatches every pair
// through r, as if each had been its own bullet.
func metadataHandler(r *Registry) ApplyFunc {
	return func(c *Change, v string) error {
		body := strings.TrimSpace(v)
		body = strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")

		var errs []error
		for _, pair := range strings.Split(body, ", ") {
			if strings.TrimSpace(pair) == "" {
				continue
			}
			key, value, ok := strings.Cut(pair, ":")
			if !ok {
				errs = append(errs, &ValueError{Field: "metadata", Value: pair, Reason: "expected key:value"})
				continue
			}
			if _, err := r.Apply(c, key, strings.TrimSpace(value)); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
