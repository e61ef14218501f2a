package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner shows one step at a time. Without a TTY it prints nothing until
// the step ends, so logs and pipes only see the final line.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
	start   time.Time
}

// NewSpinner returns a spinner writing to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins a step.
func (p *Spinner) Start(message string) {
	p.start = time.Now()
	if !p.caps.IsTTY {
		return
	}
	p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(p.out))
	p.s.Suffix = " " + message
	p.s.Start()
}

// Success ends the step with a checkmark line.
func (p *Spinner) Success(message string) {
	p.finish(p.symbols.Checkmark, color.FgGreen, message)
}

// Fail ends the step with a failure line.
func (p *Spinner) Fail(message string) {
	p.finish(p.symbols.Failure, color.FgRed, message)
}

func (p *Spinner) finish(symbol string, attr color.Attribute, message string) {
	if p.s != nil {
		p.s.Stop()
		p.s = nil
	}
	if p.caps.SupportsColor {
		symbol = color.New(attr, color.Bold).Sprint(symbol)
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "%s %s (%s)\n", symbol, message, elapsed)
}
