package report

import (
	"regexp"
	"strings"

	"gitlab.com/golang-commonmark/markdown"
	"golang.org/x/net/html"
)

// Markdown converts record prose for the report.
type Markdown interface {
	// HTML renders src as inline HTML. A lone wrapping paragraph is removed
	// so titles can sit inside the report's own <p> elements.
	HTML(src string) string
	// Text renders src and returns the visible text, for tooltips.
	Text(src string) string
}

// CommonMark is the default Markdown implementation.
type CommonMark struct {
	md *markdown.Markdown
}

// NewCommonMark returns a CommonMark renderer that passes inline HTML through
// and leaves quotes alone.
func NewCommonMark() *CommonMark {
	return &CommonMark{
		md: markdown.New(
			markdown.HTML(true),
			markdown.Typographer(false),
			markdown.Linkify(false),
		),
	}
}

var lineBreaks = regexp.MustCompile(`\n+ *`)

// HTML implements Markdown.
func (c *CommonMark) HTML(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	out := strings.TrimSpace(c.md.RenderToString([]byte(src)))
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return strings.TrimSpace(out)
}

// Text implements Markdown. Runs of newlines collapse to one.
func (c *CommonMark) Text(src string) string {
	rendered := c.HTML(src)
	if rendered == "" {
		return ""
	}
	return lineBreaks.ReplaceAllString(strings.TrimSpace(htmlText(rendered)), "\n")
}

func htmlText(fragment string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
