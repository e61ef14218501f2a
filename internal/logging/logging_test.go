package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		verbose   bool
		wantDebug bool
	}{
		"quiet hides debug": {verbose: false, wantDebug: false},
		"verbose shows all": {verbose: true, wantDebug: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := New(&buf, tt.verbose)
			logger.Debug("created record", "line", 3)
			logger.Warn("skipping unhandled field", "label", "Frob")

			out := buf.String()
			assert.Contains(t, out, `msg="skipping unhandled field" label=Frob`)
			assert.NotContains(t, out, "time=")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("created record")))
		})
	}
}

func TestPrintf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	debugf := Printf(New(&buf, true))
	debugf("[git] HeadRevision: %s", "abc")
	debugf("untagged %d", 1)

	out := buf.String()
	assert.Contains(t, out, `msg="HeadRevision: abc" component=git`)
	assert.Contains(t, out, `msg="untagged 1"`)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.False(t, Discard().Enabled(t.Context(), 12))
}
