package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"data":          {category: Data, want: "Data Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := UnsupportedRelease("from", "1.9", "2.3, 3.2")
	got := FormatErrorPlain(err)

	assert.Contains(t, got, "Error [Argument Error]: unsupported release 1.9 for --from; must be one of: 2.3, 3.2\n")
	assert.Contains(t, got, "Usage: rubychanges report --from <release> --to <release>\n")
	assert.Contains(t, got, "To fix this:\n  • List documented releases with: rubychanges report --releases\n")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintError_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	FprintError(&buf, DatabaseNotFound("database.yaml"))
	assert.Equal(t, FormatErrorPlain(DatabaseNotFound("database.yaml")), buf.String())
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	inner := NoSourceDocuments("docs")
	wrapped := fmt.Errorf("scraping: %w", inner)

	assert.True(t, IsCLIError(wrapped))
	assert.Same(t, inner, AsCLIError(wrapped))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.False(t, IsCLIError(nil))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))

	cause := stderrors.New("changes[0].title: is required")
	err := DatabaseInvalid("db.yaml", cause)
	require.NotNil(t, err)
	assert.Equal(t, Data, err.Category)
	assert.Equal(t, "invalid database db.yaml: changes[0].title: is required", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("report: %w", err), cause)
}

func TestMessages_Categories(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *CLIError
		want ErrorCategory
	}{
		"unsupported release": {err: UnsupportedRelease("to", "9", "3.2"), want: Argument},
		"invalid level":       {err: InvalidLevel(4), want: Configuration},
		"database not found":  {err: DatabaseNotFound("x"), want: Data},
		"no sources":          {err: NoSourceDocuments("x"), want: Data},
		"directory":           {err: DirectoryNotFound("x"), want: Data},
		"config parse":        {err: ConfigParseError(stderrors.New("bad")), want: Configuration},
		"flags":               {err: InvalidFlagCombination("--a --b", "pick one"), want: Argument},
		"file exists":         {err: FileExists("x"), want: Argument},
		"not writable":        {err: FileNotWritable("x", stderrors.New("denied")), want: Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Category)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}
