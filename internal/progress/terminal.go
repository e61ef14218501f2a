package progress

import (
	"os"

	"golang.org/x/term"
)

// asciiEnv forces ASCII symbols, e.g. for terminals without braille glyphs.
const asciiEnv = "RUBYCHANGES_ASCII"

// DetectTerminalCapabilities inspects stdout and the NO_COLOR and
// RUBYCHANGES_ASCII variables.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return TerminalCapabilities{}
	}

	caps := TerminalCapabilities{
		IsTTY:           true,
		SupportsColor:   os.Getenv("NO_COLOR") == "",
		SupportsUnicode: os.Getenv(asciiEnv) != "1",
	}
	if w, _, err := term.GetSize(fd); err == nil {
		caps.Width = w
	}
	return caps
}

var (
	unicodeSymbols = ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14} // ⠋ ⠙ ⠹ ⠸ ...
	asciiSymbols   = ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
)

// SelectSymbols returns braille spinner and ✓/✗ on Unicode terminals, a
// |/-\ spinner and [OK]/[FAIL] otherwise.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
