// Package index implements the persistent directory-size cache: a mapping
// from filesystem path to the last measured aggregate size and the time it
// was measured. One Store instance owns one backing file; the directory
// ranking and application ranking domains each use their own.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Entry is one cached size measurement. The owning path is the Store key.
type Entry struct {
	SizeBytes int64     `json:"size_bytes"`
	IndexedAt time.Time `json:"indexed_at"`
}

// Store maintains the in-memory mapping and its backing file. Methods are
// safe for concurrent use within one process; cross-process safety relies
// on Save's atomic replace only.
type Store struct {
	mu      sync.RWMutex
	file    string
	entries map[string]Entry
}

// Open loads the store backed by file. An absent backing file yields an
// empty store, and so does a corrupt one: a broken cache means a cache
// miss for everything, never a failed query.
func Open(file string) *Store {
	s := &Store{file: file, entries: make(map[string]Entry)}

	data, err := os.ReadFile(file)
	if err != nil {
		return s
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return s
	}
	s.entries = entries
	return s
}

// File returns the backing file path.
func (s *Store) File() string { return s.file }

// Get returns the entry for path if present.
func (s *Store) Get(path string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[path]
	return entry, ok
}

// Put inserts or overwrites the entry for path, stamped with the current
// time. Only completed scans may call Put; a totally failed scan drops the
// entry via Drop instead, so a stale-but-valid measurement is never
// replaced by a truncated one.
func (s *Store) Put(path string, sizeBytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[path] = Entry{SizeBytes: sizeBytes, IndexedAt: time.Now()}
}

// Drop removes the entry for path, if any.
func (s *Store) Drop(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, path)
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Paths returns all cached paths in sorted order.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.entries))
	for path := range s.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Prune drops entries whose path no longer exists according to the given
// predicate and returns how many were removed. Invoked on forced reindex
// to bound index growth.
func (s *Store) Prune(exists func(path string) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for path := range s.entries {
		if !exists(path) {
			delete(s.entries, path)
			pruned++
		}
	}
	return pruned
}

// Save persists the full mapping to the backing file atomically: the
// content is written to a temp file in the same directory and renamed over
// the target, so a crash mid-write never leaves a half-written index.
// Safe to invoke on partial progress; every entry present is valid.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".spacescan-*")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing temp index file: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return fmt.Errorf("setting index file mode: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing temp index file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp index file: %w", err)
	}
	if err := os.Rename(f.Name(), s.file); err != nil {
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

// IsFresh reports whether entry was measured within the last ttlHours.
// A zero or negative TTL is always stale: a misconfigured TTL forces
// rescans instead of silently trusting old data forever.
func IsFresh(entry Entry, ttlHours int) bool {
	if ttlHours <= 0 {
		return false
	}
	return time.Since(entry.IndexedAt) <= time.Duration(ttlHours)*time.Hour
}

// DefaultDir returns the user-scoped cache directory holding the index
// backing files. It is created lazily by the first Save.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "spacescan"), nil
}
