// Package file provides the TOML configuration store for the Agora CLI.
// Configuration lives at ~/.agora/config.toml unless overridden.
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable client settings.
type Config struct {
	// BaseURL is the Agora backend root, e.g. https://api.agora.dev.
	BaseURL string `toml:"base_url"`

	// Token is the optional bearer token. The AGORA_TOKEN environment
	// variable takes precedence when set.
	Token string `toml:"token,omitempty"`

	// CacheTTLSeconds is the search response cache lifetime.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`

	// DebounceMillis is the dropdown preview debounce delay.
	DebounceMillis int `toml:"debounce_millis"`

	// MinQueryChars is the minimum query length for previews.
	MinQueryChars int `toml:"min_query_chars"`

	// DropdownMax caps preview results per content domain.
	DropdownMax int `toml:"dropdown_max"`

	// DataDir overrides the ~/.agora data directory.
	DataDir string `toml:"data_dir,omitempty"`

	// HistoryBackend selects "sqlite" (default) or "file".
	HistoryBackend string `toml:"history_backend,omitempty"`
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://api.agora.dev",
		CacheTTLSeconds: 300,
		DebounceMillis:  300,
		MinQueryChars:   2,
		DropdownMax:     3,
		HistoryBackend:  "sqlite",
	}
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Debounce returns the debounce delay as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// Store is a file-based TOML configuration store.
type Store struct {
	mu       sync.RWMutex
	filePath string
	cfg      Config
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.agora/config.toml. A missing file
// yields defaults; a corrupted file is an error.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".agora")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		cfg:      DefaultConfig(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Get returns the current configuration.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Save replaces the configuration and writes it to disk.
func (s *Store) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// Load re-reads the configuration from disk. Missing fields keep their
// defaults.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.filePath
}

func (s *Store) configDir() string {
	return filepath.Dir(s.filePath)
}
