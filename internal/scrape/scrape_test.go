package scrape

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ariel-frischer/rubychanges/internal/change"
	"github.com/ariel-frischer/rubychanges/internal/changelog"
	"github.com/ariel-frischer/rubychanges/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyDocs copies the markdown fixtures into a fresh temp dir.
func copyDocs(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	entries, err := os.ReadDir(filepath.Join("testdata", "docs"))
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join("testdata", "docs", e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}
	return dir
}

func TestFindSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"3.10.md", "3.9.md", "2.7.md", "README.md", "3.2-notes.txt", "3.2.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "4.0.md"), 0o755))

	sources, err := FindSources(dir)
	require.NoError(t, err)

	var names []string
	for _, s := range sources {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"2.7.md", "3.2.md", "3.9.md", "3.10.md"}, names)
	assert.Equal(t, change.Release("3.10"), sources[3].Version)
}

func TestFindSources_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := FindSources(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := copyDocs(t)
	dbPath := filepath.Join(t.TempDir(), "database.yaml")

	result, err := Run(Options{SourceDir: dir, Database: dbPath, BaseRelease: "2.3"})
	require.NoError(t, err)

	assert.Len(t, result.Sources, 2)
	assert.Equal(t, 12, result.Parsed)

	db, err := changelog.Load(dbPath)
	require.NoError(t, err)
	assert.Equal(t, result.Database, db)

	titles := make([]string, 0, len(db.Changes))
	for _, c := range db.Changes {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{
		"Anonymous arguments passing",
		"Find pattern is no longer experimental",
		"Struct",
		"Set is available without require",
		"Imaginary feature",
	}, titles)
	assert.Equal(t, []change.Release{"2.3", "3.2", "3.10"}, db.KnownReleases())

	anon := db.Changes[0]
	assert.Equal(t, change.SectionLanguage, anon.Section)
	assert.Equal(t, []string{"  ```ruby", "  def foo(*, **)", "    bar(*, **)", "  end", "  ```"}, anon.Code)
	assert.Len(t, anon.Documentation, 1)
	assert.Empty(t, anon.Notes)

	find := db.Changes[1]
	assert.Equal(t, change.KindPromotion, find.Kind)
	assert.Equal(t, change.LevelHigh, find.Level)
	assert.Equal(t, "promoted", find.Discussions[0].Note())

	st := db.Changes[2]
	assert.Equal(t, change.SectionCore, st.Section)
	assert.Equal(t, change.KindChange, st.Kind)
	assert.Equal(t, "Struct classes can be initialized with keyword arguments without keyword_init.", st.Summary)
	assert.Equal(t, []string{"Struct.new"}, st.Affects)
	assert.Len(t, st.Discussions, 2)

	set := db.Changes[3]
	assert.Equal(t, change.SectionStdlib, set.Section)
	assert.Equal(t, "`Set` is now autoloaded.", set.Reason)
	assert.Equal(t, change.LevelLow, set.Level)

	assert.Equal(t, change.Release("3.10"), db.Changes[4].Release)
}

func TestRun_DropsRecordsWithoutRelease(t *testing.T) {
	t.Parallel()

	dir := copyDocs(t)
	appendix := "# Appendix\n\n## Language\n\n### B\n\n* **Reason:** Explained outside any release.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3.3.md"), []byte(appendix), 0o644))
	dbPath := filepath.Join(t.TempDir(), "database.yaml")

	var buf bytes.Buffer
	result, err := Run(Options{SourceDir: dir, Database: dbPath, BaseRelease: "2.3", Logger: logging.New(&buf, false)})
	require.NoError(t, err)
	assert.Len(t, result.Sources, 3)
	assert.Len(t, result.Database.Changes, 5)
	assert.Contains(t, buf.String(), "dropping record outside any release")

	db, err := changelog.Load(dbPath)
	require.NoError(t, err)
	for _, c := range db.Changes {
		assert.NotEqual(t, "B", c.Title)
		assert.NotEmpty(t, c.Release)
	}
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	dir := copyDocs(t)
	out := t.TempDir()
	first := filepath.Join(out, "a.yaml")
	second := filepath.Join(out, "b.yaml")

	_, err := Run(Options{SourceDir: dir, Database: first, BaseRelease: "2.3"})
	require.NoError(t, err)
	_, err = Run(Options{SourceDir: dir, Database: second, BaseRelease: "2.3"})
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_NoSources(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "database.yaml")
	_, err := Run(Options{SourceDir: t.TempDir(), Database: dbPath, BaseRelease: "2.3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSources)
	assert.NoFileExists(t, dbPath)
}

func TestWatch_RebuildsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rebuilds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 20*time.Millisecond, func() error {
			rebuilds.Add(1)
			return nil
		}, nil)
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "3.3.md"), []byte("# Ruby 3.3\n"), 0o644))

	assert.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	t.Parallel()

	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), time.Millisecond, func() error { return nil }, nil)
	assert.Error(t, err)
}
