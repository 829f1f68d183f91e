package libdep

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden test format. Absent sections are not checked.
type goldenFile struct {
	Modules   []string            `json:"modules"`
	Primary   map[string][]string `json:"primary,omitempty"`
	Reverse   map[string][]string `json:"reverse,omitempty"`
	Secondary map[string][]string `json:"secondary,omitempty"`
	Levels    map[string]int      `json:"levels,omitempty"`
	Weights   map[string]int      `json:"weights,omitempty"`
	Cycles    [][]string          `json:"cycles,omitempty"`
	Missing   map[string][]string `json:"missing,omitempty"`
}

// TestGolden runs every testdata/<case>/ directory that holds a collection/
// tree and a golden.json.
func TestGolden(t *testing.T) {
	cases, err := os.ReadDir("testdata")
	if err != nil {
		t.Skip("no testdata directory found")
	}

	for _, c := range cases {
		if !c.IsDir() {
			continue
		}
		testDir := filepath.Join("testdata", c.Name())
		goldenPath := filepath.Join(testDir, "golden.json")
		root := filepath.Join(testDir, "collection")

		if _, err := os.Stat(goldenPath); err != nil {
			continue
		}
		if _, err := os.Stat(root); err != nil {
			continue
		}

		t.Run(c.Name(), func(t *testing.T) {
			t.Parallel()
			runGoldenTest(t, root, goldenPath)
		})
	}
}

func runGoldenTest(t *testing.T, root, goldenPath string) {
	t.Helper()

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	var golden goldenFile
	require.NoError(t, json.Unmarshal(data, &golden))

	e, err := Open(root)
	require.NoError(t, err)
	defer e.Close()

	ctx := context.Background()
	q := e.Query(ctx)
	assert.Equal(t, golden.Modules, q.Modules())

	if golden.Primary != nil {
		t.Run("primary", func(t *testing.T) {
			verifyModuleLists(t, golden.Primary, q.Primary)
		})
	}
	if golden.Reverse != nil {
		t.Run("reverse", func(t *testing.T) {
			verifyModuleLists(t, golden.Reverse, q.Reverse)
		})
	}
	if golden.Secondary != nil {
		t.Run("secondary", func(t *testing.T) {
			verifyModuleLists(t, golden.Secondary, func(m string) ([]string, error) {
				c, err := q.Secondary(m)
				if err != nil {
					return nil, err
				}
				return c.Additions(), nil
			})
		})
	}
	if golden.Levels != nil {
		t.Run("levels", func(t *testing.T) {
			verifyModuleInts(t, golden.Levels, q.Level)
		})
	}
	if golden.Weights != nil {
		t.Run("weights", func(t *testing.T) {
			verifyModuleInts(t, golden.Weights, q.Weight)
		})
	}
	if golden.Cycles != nil {
		t.Run("cycles", func(t *testing.T) {
			assert.Equal(t, golden.Cycles, q.Cycles())
		})
	}
	if golden.Missing != nil {
		t.Run("missing", func(t *testing.T) {
			got := map[string][]string{}
			for _, mh := range e.MissingHeaders(ctx) {
				for _, h := range mh.Headers {
					got[mh.Module] = append(got[mh.Module], h.Header)
				}
			}
			assert.Equal(t, golden.Missing, got)
		})
	}
}

func verifyModuleLists(t *testing.T, expected map[string][]string, get func(string) ([]string, error)) {
	t.Helper()
	for m, want := range expected {
		got, err := get(m)
		require.NoError(t, err, m)
		if got == nil {
			got = []string{}
		}
		assert.Equal(t, want, got, m)
	}
}

func verifyModuleInts(t *testing.T, expected map[string]int, get func(string) (int, error)) {
	t.Helper()
	for m, want := range expected {
		got, err := get(m)
		require.NoError(t, err, m)
		assert.Equal(t, want, got, m)
	}
}
