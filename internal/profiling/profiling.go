// Package profiling wraps a run in a CPU profile when the PROFILE
// environment variable is set. The profile lands next to the executable and
// can be inspected with `go tool pprof`.
package profiling

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
)

// Enabled reports whether the PROFILE environment variable requests a
// profiling run.
func Enabled() bool {
	switch strings.ToLower(os.Getenv("PROFILE")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Run executes fn under a CPU profile.
func Run(fn func() error) error {
	path, err := profilePath()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // best-effort

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	defer pprof.StopCPUProfile()

	return fn()
}

func profilePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return exe + ".pprof", nil
}
