// Package storage provides the key/value stores that persist session data
// such as the play-count table. Values are opaque strings.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a string key/value store.
type Store interface {
	// Load returns the value under key and whether it exists.
	Load(key string) (string, bool, error)
	Save(key, value string) error
	Close() error
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverGdata  = "gdata"
)

// Options select and configure a store.
type Options struct {
	Driver string
	// Path is the database file for the sqlite driver.
	Path string
	// AppName is the save-data namespace for the gdata driver.
	AppName string
}

// Open builds the store named by opts.Driver.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(opts.Path)
	case DriverGdata:
		return OpenGdata(opts.AppName)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
