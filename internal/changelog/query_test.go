package changelog

import (
	"errors"
	"testing"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownReleases(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		base    change.Release
		records []change.Release
		want    []change.Release
	}{
		"base first then sorted distinct": {
			base:    "2.3",
			records: []change.Release{"3.10", "2.4", "3.2", "2.4"},
			want:    []change.Release{"2.3", "2.4", "3.2", "3.10"},
		},
		"base already documented": {
			base:    "2.4",
			records: []change.Release{"2.4", "2.5"},
			want:    []change.Release{"2.4", "2.5"},
		},
		"no records": {
			base: "2.3",
			want: []change.Release{"2.3"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var changes []*change.Change
			for _, r := range tt.records {
				changes = append(changes, &change.Change{Release: r})
			}
			db := New(tt.base, changes)
			assert.Equal(t, tt.want, db.KnownReleases())
			assert.Equal(t, tt.want[len(tt.want)-1], db.Latest())
		})
	}
}

func TestFindRelease(t *testing.T) {
	t.Parallel()

	known := []change.Release{"2.3", "2.4", "3.10"}

	tests := map[string]struct {
		input   string
		want    change.Release
		wantErr bool
	}{
		"exact match":       {input: "2.4", want: "2.4"},
		"with v prefix":     {input: "v3.10", want: "3.10"},
		"with ruby prefix":  {input: "Ruby 2.4", want: "2.4"},
		"trailing zero":     {input: "2.4.0", want: "2.4"},
		"unknown release":   {input: "2.5", wantErr: true},
		"not a release":     {input: "latest", wantErr: true},
		"float lookalike":   {input: "3.1", wantErr: true},
		"empty input":       {input: "", wantErr: true},
		"whitespace padded": {input: " 2.3 ", want: "2.3"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := FindRelease(known, tt.input)
			if tt.wantErr {
				var notFound *ReleaseNotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, known, notFound.Available)
				assert.Contains(t, err.Error(), "2.3, 2.4, 3.10")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangesIn(t *testing.T) {
	t.Parallel()

	db := sampleDatabase()
	got := db.ChangesIn("3.10")
	require.Len(t, got, 1)
	assert.Equal(t, "Array#sum", got[0].Title)
	assert.Empty(t, db.ChangesIn("2.9"))
}
