package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileKV keeps all keys in one JSON object file.
//
// Reads take a shared lock and writes an exclusive lock on a sibling
// ".lock" file. Writes replace the data file atomically via rename.
type FileKV struct {
	path string
	lock *flock.Flock
}

// NewFileKV returns a file backend at path, creating its directory.
// The data file itself is created on first write.
func NewFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, fmt.Errorf("storage file path is empty")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &FileKV{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the data file path.
func (f *FileKV) Path() string {
	return f.path
}

// Describe returns the data file path.
func (f *FileKV) Describe() string {
	return "file " + f.path
}

// Get returns the value stored under key.
func (f *FileKV) Get(key string) (string, bool, error) {
	if err := f.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("lock storage file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	entries, err := f.readEntries()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Set stores value under key, keeping the other keys in the file.
// An unreadable data file is replaced.
func (f *FileKV) Set(key, value string) error {
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock storage file: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	entries, err := f.readEntries()
	if err != nil {
		entries = make(map[string]string)
	}
	entries[key] = value

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal storage file: %w", err)
	}
	data = append(data, '\n')

	return writeFileAtomic(f.path, data)
}

// Close releases the lock file handle.
func (f *FileKV) Close() error {
	return f.lock.Close()
}

func (f *FileKV) readEntries() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse storage file: %w", err)
	}
	return entries, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
