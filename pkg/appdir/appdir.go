// Package appdir locates the per-user directory holding bytestring state
// (log databases, default config).
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const dirName = ".bytestring"

var (
	mu       sync.Mutex
	appDir   string
	override string
)

// AppDir returns ~/.bytestring, or the directory set with SetOverride.
func AppDir() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if override != "" {
		return override, nil
	}
	if appDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("appdir: cannot resolve home directory: %w", err)
		}
		appDir = filepath.Join(home, dirName)
	}
	return appDir, nil
}

// SetOverride replaces the application directory. An empty path restores
// the default.
func SetOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	override = path
}

// Ensure creates the application directory if needed and returns it.
func Ensure() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("appdir: cannot create %s: %w", dir, err)
	}
	return dir, nil
}

// Path joins name onto the application directory unless name is already
// absolute.
func Path(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir, err := Ensure()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
