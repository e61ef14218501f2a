package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonMark_HTML(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"empty":       {input: "", want: ""},
		"blank":       {input: "  \n", want: ""},
		"paragraph":   {input: "Anonymous **block** argument", want: "Anonymous <strong>block</strong> argument"},
		"inline code": {input: "`Struct#filter_map`", want: "<code>Struct#filter_map</code>"},
		"link": {
			input: "[Feature #1](https://bugs.ruby-lang.org/issues/1)",
			want:  `<a href="https://bugs.ruby-lang.org/issues/1">Feature #1</a>`,
		},
	}

	md := NewCommonMark()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, md.HTML(tt.input))
		})
	}
}

func TestCommonMark_Text(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"empty":    {input: "", want: ""},
		"markup":   {input: "Use `a & b` *now*", want: "Use a & b now"},
		"newlines": {input: "First line.\n\nSecond line.", want: "First line.\nSecond line."},
	}

	md := NewCommonMark()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, md.Text(tt.input))
		})
	}
}
