package libdep_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/libdep"
	"github.com/jward/libdep/internal/cparse"
)

// writeCollection writes files, keyed by slash-separated root-relative
// path, under a new temp directory with a root marker.
func writeCollection(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["Jamroot"] = ""
	for p, body := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
	return root
}

func diskCollection() map[string]string {
	return map[string]string{
		"libs/app/include/app/app.hpp":       "#include <net/net.hpp>\n/*\n#include <ghost/ghost.hpp>\n*/\n",
		"libs/app/src/app.cpp":               "#include <log/log.hpp>\n",
		"libs/net/include/net/net.hpp":       "#include <core/core.hpp>\n#include <boost/gone.hpp>\n",
		"libs/log/include/log/log.hpp":       "#include <core/core.hpp>\n",
		"libs/core/include/core/core.hpp":    "#include <vector>\n",
		"libs/ghost/include/ghost/ghost.hpp": "",
	}
}

// TestIntegration_FindRootAndOpen tests the on-disk pipeline:
// nested directory → FindRoot → Open → graph queries.
func TestIntegration_FindRootAndOpen(t *testing.T) {
	t.Parallel()
	root := writeCollection(t, diskCollection())

	found, err := libdep.FindRoot(filepath.Join(root, "libs", "net", "include"), "Jamroot")
	require.NoError(t, err)
	assert.Equal(t, root, found)

	e, err := libdep.Open(found)
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, root, e.Root())

	q := e.Query(context.Background())
	assert.Equal(t, []string{"app", "core", "ghost", "log", "net"}, q.Modules())

	deps, err := q.Primary("net")
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, deps)

	// The lexical scanner does not understand comments.
	deps, err = q.Primary("app")
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost", "net"}, deps)
}

func TestIntegration_FindRootMissing(t *testing.T) {
	t.Parallel()
	_, err := libdep.FindRoot(t.TempDir(), "Jamroot")
	assert.ErrorIs(t, err, libdep.ErrRootNotFound)
}

// TestIntegration_TreeSitterSkipsComments checks that the grammar-based
// extractor agrees with the lexical one except for commented-out
// directives.
func TestIntegration_TreeSitterSkipsComments(t *testing.T) {
	t.Parallel()
	root := writeCollection(t, diskCollection())

	e, err := libdep.Open(root, libdep.WithExtractor(cparse.New()))
	require.NoError(t, err)
	defer e.Close()

	q := e.Query(context.Background())
	deps, err := q.Primary("app")
	require.NoError(t, err)
	assert.Equal(t, []string{"net"}, deps)

	deps, err = q.Primary("net")
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, deps)
}

// TestIntegration_CacheAcrossEngines tests that a second Engine over the
// same cache sees the includes recorded by the first, and that switching
// extractors invalidates them.
func TestIntegration_CacheAcrossEngines(t *testing.T) {
	t.Parallel()
	root := writeCollection(t, diskCollection())
	cachePath := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := libdep.Open(root, libdep.WithCache(cachePath))
	require.NoError(t, err)
	stats, err := first.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Modules)
	assert.Positive(t, stats.CachedFiles)
	require.NoError(t, first.Close())

	second, err := libdep.Open(root, libdep.WithCache(cachePath))
	require.NoError(t, err)
	assert.False(t, second.ExtractorChanged())
	files, err := second.Cache().FilesIncluding("core/core.hpp")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"libs/log/include/log/log.hpp", "libs/net/include/net/net.hpp"}, files)
	require.NoError(t, second.Close())

	third, err := libdep.Open(root, libdep.WithCache(cachePath), libdep.WithExtractor(cparse.New()))
	require.NoError(t, err)
	defer third.Close()
	n, err := third.Cache().FileCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestIntegration_SourcesPolicy tests that source trees contribute edges
// only when tracked.
func TestIntegration_SourcesPolicy(t *testing.T) {
	t.Parallel()
	root := writeCollection(t, diskCollection())

	e, err := libdep.Open(root, libdep.WithPolicy(libdep.ScanPolicy{Sources: true}))
	require.NoError(t, err)
	defer e.Close()

	q := e.Query(context.Background())
	deps, err := q.Primary("app")
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost", "log", "net"}, deps)

	l, err := q.Level("app")
	require.NoError(t, err)
	assert.Equal(t, 2, l)
}

// TestIntegration_MissingHeaders tests unresolved references on disk.
func TestIntegration_MissingHeaders(t *testing.T) {
	t.Parallel()
	root := writeCollection(t, diskCollection())

	e, err := libdep.Open(root)
	require.NoError(t, err)
	defer e.Close()

	missing := e.MissingHeaders(context.Background())
	require.Len(t, missing, 1)
	assert.Equal(t, "net", missing[0].Module)
	require.Len(t, missing[0].Headers, 1)
	assert.Equal(t, "boost/gone.hpp", missing[0].Headers[0].Header)
	assert.Equal(t, []string{"net/net.hpp"}, missing[0].Headers[0].From)
}
