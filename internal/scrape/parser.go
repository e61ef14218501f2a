// Package scrape turns per-release changelog markdown documents into change
// records. A Parser walks one document line by line; DeriveMetadata and
// RemoveUnwanted post-process the records of all documents before they are
// stored.
package scrape

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

var (
	headingLine = regexp.MustCompile("^(#+) ([\\w`\"].*)$")
	bulletLine  = regexp.MustCompile(`^\s*\* \*\*(.+?):\*\*\s*(.*)$`)
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	placeholder  = "-"
)

// Parser extracts change records from changelog markdown.
// A Parser is not safe for concurrent use.
type Parser struct {
	registry *change.Registry
	logger   *slog.Logger

	source    Source
	lineNo    int
	path      []string
	current   *change.Change
	sticky    *change.Field
	inComment bool
	records   []*change.Change
}

// NewParser returns a parser resolving bullet labels through registry.
// A nil logger discards diagnostics.
func NewParser(registry *change.Registry, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{registry: registry, logger: logger}
}

// ParseFile reads and parses the document at src.Path.
func (p *Parser) ParseFile(src Source) ([]*change.Change, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", src.Name, err)
	}
	defer f.Close()

	return p.Parse(src, f)
}

// Parse parses one document read from r.
func (p *Parser) Parse(src Source, r io.Reader) ([]*change.Change, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Name, err)
	}
	return p.ParseLines(src, lines), nil
}

// ParseLines parses one document and returns every record it creates, in
// the order their headings appear.
func (p *Parser) ParseLines(src Source, lines []string) []*change.Change {
	p.reset(src)
	for i, line := range lines {
		p.lineNo = i + 1
		p.parseLine(strings.TrimRight(line, " \t\r"))
	}
	p.finish()

	records := p.records
	p.records = nil
	return records
}

func (p *Parser) reset(src Source) {
	p.source = src
	p.lineNo = 0
	p.path = nil
	p.current = nil
	p.sticky = nil
	p.inComment = false
	p.records = nil
}

func (p *Parser) parseLine(line string) {
	if p.inComment {
		if strings.Contains(line, commentClose) {
			p.inComment = false
		}
		return
	}

	if m := headingLine.FindStringSubmatch(line); m != nil {
		p.startRecord(len(m[1]), m[2])
		return
	}

	if m := bulletLine.FindStringSubmatch(line); m != nil {
		p.assignField(m[1], m[2])
		return
	}

	if i := strings.LastIndex(line, commentOpen); i >= 0 {
		if !strings.Contains(line[i+len(commentOpen):], commentClose) {
			p.inComment = true
		}
		return
	}

	switch {
	case p.sticky != nil && p.current != nil:
		p.apply(*p.sticky, line)
	case p.current != nil && p.current.Summary == "" && strings.TrimSpace(line) != "":
		p.current.Summary = strings.TrimSpace(line)
	}
}

func (p *Parser) startRecord(level int, text string) {
	p.finish()

	if len(p.path) > level-1 {
		p.path = p.path[:level-1]
	}
	for len(p.path) < level-1 {
		p.path = append(p.path, "")
	}
	p.current = change.New(text, p.path)
	p.path = append(p.path, text)
	p.sticky = nil
	p.records = append(p.records, p.current)
	p.logger.Debug("created record", "source", p.source.Name, "line", p.lineNo, "path", strings.Join(p.path, " > "))
}

func (p *Parser) assignField(label, value string) {
	// "* **X:** -" leaves X blank and ends any running continuation.
	if value == placeholder {
		p.sticky = nil
		return
	}

	f, ok := p.registry.Lookup(label)
	if !ok {
		p.logger.Warn("skipping unhandled field", "source", p.source.Name, "line", p.lineNo, "label", label)
		return
	}
	if p.current == nil {
		p.logger.Warn("field outside of any heading", "source", p.source.Name, "line", p.lineNo, "label", label)
		return
	}

	p.apply(f, value)
	if f.SingleLine {
		p.sticky = nil
	} else {
		p.sticky = &f
	}
	p.logger.Debug("assigned field", "source", p.source.Name, "line", p.lineNo, "field", f.Name)
}

func (p *Parser) apply(f change.Field, value string) {
	if err := f.Apply(p.current, value); err != nil {
		p.logger.Warn("ignoring field value", "source", p.source.Name, "line", p.lineNo,
			"field", f.Name, "error", err)
	}
}

func (p *Parser) finish() {
	if p.current != nil {
		p.current.Finalize()
	}
}
