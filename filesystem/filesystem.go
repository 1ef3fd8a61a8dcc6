// Package filesystem routes every file operation through a swappable afero backend.
//
// Production code runs against the OS; tests swap in an in-memory tree so that
// workspaces, caches and history files never touch the real disk.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Use installs fs as the active backend.
func Use(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
