// Package progress reports long-running steps on the terminal: a spinner
// while work is in flight and a ✓/✗ line when it ends. Output degrades to
// plain lines when stdout is not a terminal.
package progress

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols is the symbol set matching a terminal's capabilities.
type ProgressSymbols struct {
	Checkmark string
	Failure   string
	// SpinnerSet indexes spinner.CharSets.
	SpinnerSet int
}
