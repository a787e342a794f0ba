// Package archive resolves the target ZIP path, names entries after their
// source URLs, and writes page bodies into the archive.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timestampLayout names one archive per run, at second resolution.
const timestampLayout = "2006-01-02_150405"

var (
	// ErrDataDirNotFound reports a configured data directory that does not
	// exist as a directory.
	ErrDataDirNotFound = errors.New("data directory does not exist")
	// ErrArchiveExists reports a target path that is already on disk.
	ErrArchiveExists = errors.New("target archive already exists")
)

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// ResolveTarget computes the absolute path of the run's output archive.
// A relative dataDir is resolved against baseDir. The existence probe is a
// plain stat, not an exclusive create; concurrent invocations within the
// same second are out of scope.
func ResolveTarget(dataDir, baseDir string, clk Clock) (string, error) {
	dir := dataDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(baseDir, dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDataDirNotFound, dir)
	}

	target := filepath.Join(dir, clk.Now().Format(timestampLayout)+".zip")
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s", ErrArchiveExists, target)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}
	return abs, nil
}
