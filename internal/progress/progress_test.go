package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestSpinner_NoTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})

	s.Start("Scraping")
	assert.Empty(t, buf.String())

	s.Success("Wrote 5 changes")
	assert.True(t, strings.HasPrefix(buf.String(), "[OK] Wrote 5 changes ("), buf.String())

	buf.Reset()
	s.Start("Scraping")
	s.Fail("no documents")
	assert.True(t, strings.HasPrefix(buf.String(), "[FAIL] no documents ("), buf.String())
}
