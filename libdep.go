package libdep

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// UndeterminedLevel marks a module whose level could not be fixed because
// it sits on a dependency cycle.
const UndeterminedLevel = math.MaxInt32 / 2

// IsUndetermined reports whether level is the undetermined sentinel.
func IsUndetermined(level int) bool { return level >= UndeterminedLevel }

// maxRootHops bounds the upward search for the collection root.
const maxRootHops = 32

var (
	// ErrRootNotFound is returned when no collection root marker is found.
	ErrRootNotFound = errors.New("could not find collection root")
	// ErrUnknownModule is returned for a module name that is not registered.
	ErrUnknownModule = errors.New("unknown module")
	// ErrUnknownHeader is returned for a header no module owns or includes.
	ErrUnknownHeader = errors.New("unknown header")
)

// FindRoot walks up from start looking for a directory containing marker
// and returns its absolute path. It gives up after a bounded number of
// parent hops or at the filesystem root.
func FindRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("libdep: find root: %w", err)
	}
	for range maxRootHops {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("libdep: %w (no %s above %s)", ErrRootNotFound, marker, start)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
