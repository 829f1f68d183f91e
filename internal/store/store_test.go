package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

// replaceTestFile stores a file with the given targets and returns it with ID set.
func replaceTestFile(t *testing.T, s *Store, path string, targets ...string) *File {
	t.Helper()
	f := &File{Path: path, Hash: ContentHash([]byte(path)), ScannedAt: time.Now().Truncate(time.Second)}
	require.NoError(t, s.ReplaceFile(f, targets))
	require.Positive(t, f.ID)
	return f
}

// =============================================================================
// Schema & Lifecycle
// =============================================================================

func TestMigrate_AllTablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, table := range []string{"files", "includes", "metadata"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestMigrate_WALMode(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	var mode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

// =============================================================================
// File operations
// =============================================================================

func TestFile_ReplaceAndRetrieve(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	f := replaceTestFile(t, s, "libs/a/include/a/x.hpp", "b/y.hpp", "vector")

	got, err := s.FileByPath("libs/a/include/a/x.hpp")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, f.Hash, got.Hash)
	assert.Equal(t, 2, got.IncludeCount)

	targets, err := s.IncludesByFile(got.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b/y.hpp", "vector"}, targets)
}

func TestFile_ByPathNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	got, err := s.FileByPath("/nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFile_ReplaceDropsOldIncludes(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	old := replaceTestFile(t, s, "x.hpp", "a.hpp", "b.hpp")
	fresh := replaceTestFile(t, s, "x.hpp", "c.hpp")
	assert.NotEqual(t, old.ID, fresh.ID)

	targets, err := s.IncludesByFile(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.hpp"}, targets)

	stale, err := s.IncludesByFile(old.ID)
	require.NoError(t, err)
	assert.Empty(t, stale)

	n, err := s.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFile_NoIncludes(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	f := replaceTestFile(t, s, "empty.hpp")
	targets, err := s.IncludesByFile(f.ID)
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestFilesIncluding(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	replaceTestFile(t, s, "z.hpp", "boost/config.hpp")
	replaceTestFile(t, s, "a.hpp", "boost/config.hpp", "boost/config.hpp")
	replaceTestFile(t, s, "m.hpp", "other.hpp")

	paths, err := s.FilesIncluding("boost/config.hpp")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.hpp", "z.hpp"}, paths)
}

func TestClear(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	replaceTestFile(t, s, "a.hpp", "b.hpp")
	require.NoError(t, s.SetMetadata("extractor", "lexical"))
	require.NoError(t, s.Clear())

	n, err := s.FileCount()
	require.NoError(t, err)
	assert.Zero(t, n)

	v, err := s.GetMetadata("extractor")
	require.NoError(t, err)
	assert.Equal(t, "lexical", v)
}

// =============================================================================
// Metadata
// =============================================================================

func TestMetadata_MissingKey(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	v, err := s.GetMetadata("nope")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestMetadata_Overwrite(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.SetMetadata("extractor", "lexical"))
	require.NoError(t, s.SetMetadata("extractor", "tree-sitter"))
	v, err := s.GetMetadata("extractor")
	require.NoError(t, err)
	assert.Equal(t, "tree-sitter", v)
}

func TestContentHash(t *testing.T) {
	t.Parallel()
	a := ContentHash([]byte("#include <a.hpp>\n"))
	b := ContentHash([]byte("#include <b.hpp>\n"))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ContentHash([]byte("#include <a.hpp>\n")))
}
