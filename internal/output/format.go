// Package output provides terminal output formatting utilities for the rubychanges CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSeparator prints a dim rule with a centered label, e.g. between
// rebuilds in watch mode.
func PrintSeparator(out io.Writer, label string) {
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (GetTerminalWidth() - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintKeyValue prints an aligned "key: value (source)" line, as used by
// 'config show' and --verbose option dumps. source may be empty.
func PrintKeyValue(out io.Writer, key string, value any, source string) {
	dim := color.New(color.Faint).SprintFunc()
	if source == "" {
		fmt.Fprintf(out, "  %-14s %v\n", key+":", value)
		return
	}
	fmt.Fprintf(out, "  %-14s %v %s\n", key+":", value, dim("("+source+")"))
}
