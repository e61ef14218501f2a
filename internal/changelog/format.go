package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// KindStyle defines the color and glyph for a change kind.
type KindStyle struct {
	Color *color.Color
	Icon  string
}

// kindStyles mirrors the glyphs used by the HTML report.
var kindStyles = map[change.Kind]KindStyle{
	change.KindAddition:    {Color: color.New(color.FgGreen), Icon: "⊕"},
	change.KindRemoval:     {Color: color.New(color.FgRed), Icon: "⊗"},
	change.KindChange:      {Color: color.New(color.FgYellow), Icon: "⊛"},
	change.KindPromotion:   {Color: color.New(color.FgBlue), Icon: "✪"},
	change.KindDeprecation: {Color: color.New(color.FgMagenta), Icon: "⎊"},
	change.KindOther:       {Color: color.New(color.Reset), Icon: "•"},
}

func styleFor(k change.Kind) KindStyle {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return kindStyles[change.KindOther]
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes records to w grouped by release, in the order given.
func FormatTerminal(changes []*change.Change, w io.Writer, opts FormatOptions) error {
	if len(changes) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupByRelease(changes) {
		if err := formatReleaseGroup(group, w, opts, width, i > 0); err != nil {
			return fmt.Errorf("formatting release %s: %w", group.release, err)
		}
	}
	return nil
}

// FormatReleases writes the "Documented releases" line.
func FormatReleases(releases []change.Release, w io.Writer) error {
	_, err := fmt.Fprintf(w, "Documented releases: %s\n", JoinReleases(releases))
	return err
}

type releaseGroup struct {
	release change.Release
	changes []*change.Change
}

// groupByRelease groups consecutive records of the same release.
func groupByRelease(changes []*change.Change) []releaseGroup {
	var groups []releaseGroup
	var current *releaseGroup

	for _, c := range changes {
		if current == nil || current.release != c.Release {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &releaseGroup{release: c.Release}
		}
		current.changes = append(current.changes, c)
	}

	if current != nil {
		groups = append(groups, *current)
	}
	return groups
}

func formatReleaseGroup(group releaseGroup, w io.Writer, opts FormatOptions, width int, addSeparator bool) error {
	if addSeparator {
		fmt.Fprintln(w)
	}

	header := fmt.Sprintf("Ruby %s", group.release)
	if opts.Plain {
		if _, err := fmt.Fprintf(w, "## %s\n", header); err != nil {
			return err
		}
	} else {
		bold := color.New(color.Bold).SprintFunc()
		if _, err := fmt.Fprintf(w, "## %s\n", bold(header)); err != nil {
			return err
		}
	}

	var section change.Section
	for _, c := range group.changes {
		if c.Section != section {
			section = c.Section
			if _, err := fmt.Fprintf(w, "\n### %s\n", section); err != nil {
				return err
			}
		}
		if err := writeEntry(c, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(c *change.Change, w io.Writer, opts FormatOptions, width int) error {
	text := c.Title
	if c.Summary != "" {
		text += ": " + c.Summary
	}

	if opts.Plain {
		kind := c.Kind
		if kind == "" {
			kind = change.KindOther
		}
		_, err := fmt.Fprintf(w, "  - [%s] %s\n", kind, text)
		return err
	}

	style := styleFor(c.Kind)
	prefix := fmt.Sprintf("  %s ", style.Icon)
	wrapped := wrapText(text, width-4, "    ")
	if c.Highlight || c.Level == change.LevelHigh {
		wrapped = color.New(color.Bold).Sprint(wrapped)
	}
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", colored(prefix), wrapped)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
