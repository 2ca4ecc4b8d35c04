package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Backend names accepted by Open.
const (
	KindFile   = "file"
	KindMemory = "memory"
	KindMySQL  = "mysql"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend is a synchronous string key-value store.
type Backend interface {
	// Get returns the value under key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Close releases resources held by the backend.
	Close() error
	// Describe returns a human-readable location, e.g. a file path.
	Describe() string
}

// Options selects and configures a backend.
type Options struct {
	Kind    string
	Path    string        // file backend
	DSN     string        // mysql backend
	Table   string        // mysql backend, defaults to DefaultTable
	Timeout time.Duration // mysql backend, per statement
}

// Open returns the backend described by opts.
func Open(opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", KindFile:
		return NewFileKV(opts.Path)
	case KindMemory:
		return NewMemoryKV(), nil
	case KindMySQL:
		return OpenMySQL(opts.DSN, opts.Table, opts.Timeout)
	default:
		return nil, fmt.Errorf("%w %q, must be one of: file, memory, mysql", ErrUnknownBackend, opts.Kind)
	}
}
