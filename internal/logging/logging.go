// Package logging builds the slog logger shared by the scrape and report
// pipelines. Diagnostics about malformed changelog input are Warn records;
// parse tracing is Debug and only shown with --verbose.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New returns a text logger writing to w. Verbose lowers the level to Debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: dropTime,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Printf adapts logger to the printf-style debug hooks used by some
// packages, e.g. git.SetDebugLogger. Messages are logged at Debug with a
// leading "[component]" tag lifted into a "component" attribute.
func Printf(logger *slog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		if strings.HasPrefix(msg, "[") {
			if end := strings.Index(msg, "] "); end > 0 {
				logger.Debug(msg[end+2:], "component", msg[1:end])
				return
			}
		}
		logger.Debug(msg)
	}
}

// dropTime removes the timestamp; CLI diagnostics are read live.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}
