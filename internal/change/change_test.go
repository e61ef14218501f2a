package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestChange_UniqueID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path  []string
		title string
		want  string
	}{
		"words and spaces": {
			path:  []string{"Ruby 3.2", "Language changes"},
			title: "Anonymous arguments passing",
			want:  "ruby-3.2/language-changes/anonymous-arguments-passing",
		},
		"method names": {
			path:  []string{"Ruby 3.1", "Core classes and modules", "Array"},
			title: "`#intersect?`",
			want:  "ruby-3.1/core-classes-and-modules/array/~60~23intersect~3f~60",
		},
		"whitespace runs collapse": {
			path:  []string{"Ruby  3.2"},
			title: "keyword_init\tdefault",
			want:  "ruby-3.2/keyword_init-default",
		},
		"skipped heading level": {
			path:  []string{"Ruby 3.2", ""},
			title: "Set",
			want:  "ruby-3.2//set",
		},
		"no path": {
			title: "Standalone",
			want:  "standalone",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := New(tt.title, tt.path)
			assert.Equal(t, tt.want, c.UniqueID())
			assert.Equal(t, c.UniqueID(), New(tt.title, tt.path).UniqueID())
		})
	}
}

func TestChange_UniqueID_Distinct(t *testing.T) {
	t.Parallel()

	core := []string{"Ruby 3.2", "Core classes and modules"}
	tests := map[string]struct {
		a, b *Change
	}{
		"operators": {
			a: New("`Integer#+`", core),
			b: New("`Integer#-`", core),
		},
		"predicate suffix": {
			a: New("`Hash#any?`", core),
			b: New("`Hash#any`", core),
		},
		"markup only": {
			a: New("`Set`", core),
			b: New("Set", core),
		},
		"hyphen versus space": {
			a: New("Pattern-matching", core),
			b: New("Pattern matching", core),
		},
		"segment boundary": {
			a: New("b c", []string{"Ruby 3.2", "a"}),
			b: New("c", []string{"Ruby 3.2", "a b"}),
		},
		"slash in title": {
			a: New("a/b", []string{"Ruby 3.2"}),
			b: New("b", []string{"Ruby 3.2", "a"}),
		},
		"non-ascii": {
			a: New("`String#ü`", core),
			b: New("`String#u`", core),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.NotEqual(t, tt.a.UniqueID(), tt.b.UniqueID())
		})
	}
}

func TestChange_UniqueID_CaseAndSpacing(t *testing.T) {
	t.Parallel()

	core := []string{"Ruby 3.2", "Core classes and modules"}
	assert.Equal(t, New("`Set`", core).UniqueID(), New("`set`", core).UniqueID())
	assert.Equal(t, New("Data  class", core).UniqueID(), New("Data class", core).UniqueID())
}

func TestNew_CopiesPath(t *testing.T) {
	t.Parallel()

	path := []string{"Ruby 3.2", "Language"}
	c := New("x", path)
	path[1] = "Mutated"

	assert.Equal(t, []string{"Ruby 3.2", "Language"}, c.Path)
	assert.Equal(t, DefaultLevel, c.Level)
}

func TestChange_Substantive(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		change Change
		want   bool
	}{
		"empty":         {change: Change{}, want: false},
		"notes only":    {change: Change{Notes: "n"}, want: false},
		"reason":        {change: Change{Reason: "r"}, want: true},
		"code":          {change: Change{Code: []string{"x"}}, want: true},
		"documentation": {change: Change{Documentation: []string{"d"}}, want: true},
		"discussion":    {change: Change{Discussions: Discussions{GitHubPullRequest{ID: 1}}}, want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.change.Substantive())
		})
	}
}

func TestRelease_Compare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b Release
		want int
	}{
		"minor ordering":      {a: "3.2", b: "3.10", want: -1},
		"major ordering":      {a: "2.7", b: "3.0", want: -1},
		"equal":               {a: "3.2", b: "3.2", want: 0},
		"patch after minor":   {a: "3.2.1", b: "3.2", want: 1},
		"invalid sorts first": {a: "", b: "2.3", want: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestSortReleases(t *testing.T) {
	t.Parallel()

	releases := []Release{"3.10", "2.7", "3.2", "3.0"}
	SortReleases(releases)
	assert.Equal(t, []Release{"2.7", "3.0", "3.2", "3.10"}, releases)
}

func TestParseRelease(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"3", "3.2", "2.7.1"} {
		_, err := ParseRelease(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "Ruby 3.2", "3.x", "1.2.3.4"} {
		_, err := ParseRelease(bad)
		assert.Error(t, err, bad)
	}
}

func TestChange_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := &Change{
		Release:   "3.10",
		Section:   SectionCore,
		Path:      []string{"Ruby 3.10", "Core classes and modules", "Array"},
		Title:     "#sum",
		Summary:   "Sums elements",
		Kind:      KindAddition,
		Level:     LevelHigh,
		Highlight: true,
		Scope:     "Array",
		Affects:   []string{"Array#sum"},
		Notes:     "first\n\nsecond",
		Reason:    "because",
		Discussions: Discussions{
			RubyIssue{Kind: IssueFeature, ID: 12345, Comment: "proposal"},
			GitHubPullRequest{ID: 99},
			RubyIssue{Kind: IssueBug, ID: 7},
		},
		Documentation: []string{"[Array#sum](https://docs.ruby-lang.org/en/master/Array.html#method-i-sum)"},
		Code:          []string{"```ruby", "  [1, 2].sum", "", "```"},
	}

	out, err := yaml.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(out), `release: "3.10"`)

	var decoded Change
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, original, &decoded)
}

func TestDiscussions_UnmarshalYAML_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown type":       "- {type: mail, id: 1}",
		"unknown issue kind": "- {type: issue, kind: Task, id: 1}",
		"not a list":         "type: issue",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var d Discussions
			assert.Error(t, yaml.Unmarshal([]byte(input), &d))
		})
	}
}

func TestRelease_UnmarshalBareNumber(t *testing.T) {
	t.Parallel()

	var doc struct {
		Release Release `yaml:"release"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("release: 3.2\n"), &doc))
	assert.Equal(t, Release("3.2"), doc.Release)
}
