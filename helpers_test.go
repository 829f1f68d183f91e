package libdep

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// newTestEngine builds an Engine over an in-memory collection. files maps
// root-relative paths to contents; the root marker is added.
func newTestEngine(t *testing.T, files map[string]string, opts ...Option) *Engine {
	t.Helper()
	e, err := New(testFS(files), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{"Jamroot": &fstest.MapFile{}}
	for p, body := range files {
		fsys[p] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

// graphOf builds a Graph directly from module edges. Every module named as
// a source or target is registered, plus any extra modules.
func graphOf(edges map[string][]string, extra ...string) *Graph {
	owned := map[string][]string{}
	for m, deps := range edges {
		owned[m] = nil
		for _, d := range deps {
			owned[d] = nil
		}
	}
	for _, m := range extra {
		owned[m] = nil
	}
	g := newGraph(NewRegistry(DefaultLayout(), owned), ScanPolicy{})
	for m, deps := range edges {
		for _, d := range deps {
			g.primary.add(m, d)
			g.reverse.add(d, m)
		}
	}
	return g
}

// twoModules is the smallest collection with one cross-module include.
var twoModules = map[string]string{
	"libs/a/include/a/x.hpp": "#include <b/y.hpp>\n",
	"libs/b/include/b/y.hpp": "",
}
