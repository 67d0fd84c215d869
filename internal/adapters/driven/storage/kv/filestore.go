// Package kv provides a file-backed key-value slot store and a history
// store persisted through such a slot. Values are opaque strings; the file
// itself is TOML so it stays hand-inspectable next to the config file.
package kv

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/agora-labs/agora-cli/internal/core/ports/driven"
	"github.com/agora-labs/agora-cli/internal/logger"
)

// Ensure FileStore implements the interface.
var _ driven.KVStore = (*FileStore)(nil)

// FileStore is a durable driven.KVStore backed by a TOML file in the
// profile directory. A missing or corrupted file reads as empty.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// NewFileStore creates a store at dataDir/storage.toml.
// If dataDir is empty, defaults to ~/.agora.
func NewFileStore(dataDir string) (*FileStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".agora")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	s := &FileStore{
		filePath: filepath.Join(dataDir, "storage.toml"),
		values:   make(map[string]string),
	}
	s.load()
	return s, nil
}

// Get returns the value for key and whether it was present.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and flushes to disk.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// Delete removes key and flushes to disk.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flush()
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.filePath
}

// load reads the backing file. Corrupted data is discarded, not surfaced:
// storage must never block the client from starting.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Reading %s failed: %v", s.filePath, err)
		}
		return
	}

	values := make(map[string]string)
	if err := toml.Unmarshal(data, &values); err != nil {
		logger.Warn("Ignoring corrupted storage file %s: %v", s.filePath, err)
		return
	}
	s.values = values
}

// flush writes the values atomically via a temp file rename.
func (s *FileStore) flush() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}
