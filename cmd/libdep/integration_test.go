package main_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the libdep command into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "libdep"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	bin := filepath.Join(t.TempDir(), binName)
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = filepath.Join(projectRoot(t), "cmd", "libdep")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(out))
	return bin
}

// projectRoot walks up from this file's directory to the one holding
// go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "go.mod not found")
		dir = parent
	}
}

// createCollection writes a small collection: app includes net and core,
// net includes core, and app ships sources and a build directory.
func createCollection(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"Jamroot":                          "",
		"libs/app/include/app/app.hpp":     "#include <net/net.hpp>\n",
		"libs/app/src/app.cpp":             "#include <app/app.hpp>\n#include <core/core.hpp>\n",
		"libs/app/build/Jamfile":           "",
		"libs/net/include/net/net.hpp":     "#include <core/core.hpp>\n#include <boost/missing.hpp>\n",
		"libs/core/include/core/core.hpp":  "#include <vector>\n",
		"libs/core/include/core/extra.hpp": "",
	}
	for p, body := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
	return root
}

// runLibdep runs the binary in dir and returns its output and exit code.
func runLibdep(t *testing.T, bin, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return stdoutBuf.String(), stderrBuf.String(), code
}

func runJSON(t *testing.T, bin, dir string, args ...string) map[string]any {
	t.Helper()
	stdout, _, _ := runLibdep(t, bin, dir, append([]string{"--format", "json"}, args...)...)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result), "invalid JSON output: %s", stdout)
	return result
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	root := createCollection(t)
	sub := filepath.Join(root, "libs", "net")

	t.Run("list-modules", func(t *testing.T) {
		stdout, _, code := runLibdep(t, bin, root, "list-modules")
		assert.Equal(t, 0, code)
		assert.Equal(t, "app\ncore\nnet\n", stdout)
	})

	t.Run("root found from a subdirectory", func(t *testing.T) {
		stdout, _, code := runLibdep(t, bin, sub, "list-buildable")
		assert.Equal(t, 0, code)
		assert.Equal(t, "app\n", stdout)
	})

	t.Run("list-dependencies", func(t *testing.T) {
		stdout, _, _ := runLibdep(t, bin, root, "list-dependencies")
		assert.Contains(t, stdout, "app -> net\n")
		assert.Contains(t, stdout, "net -> core\n")
	})

	t.Run("list-missing-headers", func(t *testing.T) {
		stdout, _, _ := runLibdep(t, bin, root, "list-missing-headers")
		assert.Contains(t, stdout, "net:")
		assert.Contains(t, stdout, "boost/missing.hpp")
	})

	t.Run("primary by bare argument", func(t *testing.T) {
		stdout, _, code := runLibdep(t, bin, root, "net")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "dependencies for net:")
		assert.Contains(t, stdout, "<core/core.hpp>")
		assert.Contains(t, stdout, "from <net/net.hpp>")
	})

	t.Run("header by bare argument", func(t *testing.T) {
		stdout, _, code := runLibdep(t, bin, root, "core/core.hpp")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "net")
	})

	t.Run("unknown bare argument", func(t *testing.T) {
		_, stderr, code := runLibdep(t, bin, root, "nothing")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "'nothing': not an option, module or header")
	})

	t.Run("secondary json", func(t *testing.T) {
		result := runJSON(t, bin, root, "secondary", "app")
		assert.Equal(t, "secondary", result["command"])
		body, ok := result["results"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "app", body["module"])
	})

	t.Run("levels", func(t *testing.T) {
		stdout, _, _ := runLibdep(t, bin, root, "levels")
		assert.True(t, strings.HasPrefix(stdout, "Module Levels:"), stdout)
	})

	t.Run("weights html", func(t *testing.T) {
		stdout, _, code := runLibdep(t, bin, root, "--format", "html", "--html-title", "Deps", "weights")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "<title>Deps</title>")
		assert.Contains(t, stdout, "Module Weights")
	})

	t.Run("list commands reject html", func(t *testing.T) {
		_, stderr, code := runLibdep(t, bin, root, "--format", "html", "list-modules")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "html output is not supported")
	})

	t.Run("pkgconfig", func(t *testing.T) {
		stdout, _, _ := runLibdep(t, bin, root, "--track-sources", "pkgconfig", "app", "1.90.0", "prefix=/usr")
		assert.True(t, strings.HasPrefix(stdout, "prefix=/usr\n\n"), stdout)
		assert.Contains(t, stdout, "Name: boost_app\n")
		assert.Contains(t, stdout, "Requires: boost_net = 1.90.0")
	})

	t.Run("cmake", func(t *testing.T) {
		stdout, _, _ := runLibdep(t, bin, root, "cmake", "app")
		assert.True(t, strings.HasPrefix(stdout, "# Generated file. Do not edit.\n"), stdout)
		assert.Contains(t, stdout, "boost_net")
	})

	t.Run("unknown module json error", func(t *testing.T) {
		result := runJSON(t, bin, root, "primary", "nothing")
		assert.Equal(t, "primary", result["command"])
		assert.Contains(t, result["error"], "unknown module")
	})

	t.Run("subset-for", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "main.cpp"), []byte("#include <net/net.hpp>\n"), 0o644))
		stdout, _, code := runLibdep(t, bin, root, "subset-for", dir)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, "core:")
	})

	t.Run("index with cache", func(t *testing.T) {
		result := runJSON(t, bin, root, "--cache", ".libdep/cache.db", "index")
		body, ok := result["results"].(map[string]any)
		require.True(t, ok, "%v", result)
		assert.EqualValues(t, 3, body["modules"])
		assert.FileExists(t, filepath.Join(root, ".libdep", "cache.db"))
	})

	t.Run("script", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), "count.risor")
		require.NoError(t, os.WriteFile(script, []byte("len(modules())\n"), 0o644))
		stdout, _, code := runLibdep(t, bin, root, "script", script)
		assert.Equal(t, 0, code)
		assert.Equal(t, "3\n", stdout)
	})
}

func TestCLI_RootNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)

	_, stderr, code := runLibdep(t, bin, t.TempDir(), "list-modules")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Error:")
}

func TestCLI_InvalidFormat(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)

	_, stderr, code := runLibdep(t, bin, t.TempDir(), "--format", "xml", "list-modules")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid format")
}
