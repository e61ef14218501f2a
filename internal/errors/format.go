package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette paints the parts of a formatted error. The zero palette is plain.
type palette struct {
	label, message, category, usage, fix, bullet func(a ...any) string
}

func plain(a ...any) string { return fmt.Sprint(a...) }

var (
	plainPalette = palette{plain, plain, plain, plain, plain, plain}

	colorPalette = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
)

// FormatError renders err for the terminal: the category and message, the
// usage line of argument errors, then the remediation steps. Colors follow
// fatih/color's terminal detection.
func FormatError(err *CLIError) string {
	return format(err, colorPalette)
}

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	return format(err, plainPalette)
}

func format(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintError writes the formatted err to w. Nil is a no-op.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
