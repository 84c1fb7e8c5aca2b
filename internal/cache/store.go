package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// fileExtension is the file extension used for cache entries.
const fileExtension = ".json"

// Common cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// FileStore stores cache entries as JSON files in one directory.
// It is safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int
	now        func() time.Time

	mu sync.RWMutex
}

// NewFileStore creates a file store, creating directory if needed.
// A disabled store answers every call with ErrDisabled.
func NewFileStore(directory string, enabled bool, ttlSeconds int) (*FileStore, error) {
	if !enabled {
		return &FileStore{now: time.Now}, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
		now:        time.Now,
	}, nil
}

// SetClock replaces the time source. Used by tests.
func (s *FileStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Get returns the entry for key. It returns ErrNotFound when there is none
// and ErrExpired (after removing the file) when it is stale.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	if entry.IsExpired(s.now()) {
		_ = os.Remove(filePath)
		return nil, ErrExpired
	}

	return &entry, nil
}

// Set stores data under key with the store's TTL, overwriting any
// existing entry. The file is written to a temp path and renamed.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := NewEntry(key, data, s.ttlSeconds, s.now())
	entryData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := s.keyToFilePath(key)
	tempPath := filePath + ".tmp"
	if err = os.WriteFile(tempPath, entryData, 0o600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err = os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	return nil
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// DeleteScope removes the entry for Key(screen) and every entry scoped under
// it, e.g. all subtopic lists regardless of topic. It returns how many were
// removed.
func (s *FileStore) DeleteScope(screen string) (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}
	base := Key(screen)
	if base == "" {
		return 0, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}

	name := safeFileName(base)
	removed := 0
	for _, path := range files {
		stem := strings.TrimSuffix(filepath.Base(path), fileExtension)
		if stem != name && !strings.HasPrefix(stem, name+"_") {
			continue
		}
		if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(path), err)
		}
		removed++
	}
	return removed, nil
}

// Clear removes every cache entry and returns how many were removed.
func (s *FileStore) Clear() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}
	for i, path := range files {
		if err = os.Remove(path); err != nil {
			return i, fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(path), err)
		}
	}
	return len(files), nil
}

// Stats summarizes the cache directory.
type Stats struct {
	Directory  string `json:"directory"`
	Entries    int    `json:"entries"`
	Expired    int    `json:"expired"`
	SizeBytes  int64  `json:"size_bytes"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Stats counts entries, expired entries and total size on disk.
func (s *FileStore) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.entryFiles()
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Directory: s.directory, TTLSeconds: s.ttlSeconds}
	now := s.now()
	for _, path := range files {
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		st.Entries++
		st.SizeBytes += info.Size()

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		var entry Entry
		if json.Unmarshal(data, &entry) == nil && entry.IsExpired(now) {
			st.Expired++
		}
	}
	return st, nil
}

// IsEnabled reports whether caching is active.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the entry lifetime in seconds.
func (s *FileStore) TTL() int {
	return s.ttlSeconds
}

func (s *FileStore) entryFiles() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == fileExtension {
			files = append(files, filepath.Join(s.directory, entry.Name()))
		}
	}
	return files, nil
}

// keyToFilePath converts a cache key to a file path inside the directory.
func (s *FileStore) keyToFilePath(key string) string {
	return filepath.Join(s.directory, safeFileName(key)+fileExtension)
}

func safeFileName(key string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_").Replace(key)
}
