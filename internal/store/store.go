// Package store provides file-backed key-value persistence for the data
// the service manages around the core engine: raw byte blobs, saved graph
// descriptions (meshes), application configs, and function metadata. The
// engine itself never touches storage; the surrounding layers load a
// description from here and hand it to the builder as data.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a directory of files addressed by logical keys. A suffix codec
// keeps the on-disk extension out of the key space: Get("mydag") on a
// ".json" store reads "mydag.json".
type Store struct {
	dir    string
	suffix string
}

// Open creates (if needed) and returns a store rooted at dir. suffix may
// be empty for raw byte blobs.
func Open(dir, suffix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return &Store{dir: dir, suffix: suffix}, nil
}

// path maps a logical key to its file path, refusing keys that would
// escape the store directory.
func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	cleaned := filepath.Clean(key)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, cleaned+s.suffix), nil
}

// Get reads the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return data, err
}

// Put writes a value under key, creating parent directories for nested
// keys as needed.
func (s *Store) Put(key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// Delete removes the value stored under key.
func (s *Store) Delete(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return err
}

// Has reports whether a key exists.
func (s *Store) Has(key string) bool {
	p, err := s.path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Keys lists every stored key in lexical order, suffix stripped.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if s.suffix != "" {
			if !strings.HasSuffix(rel, s.suffix) {
				return nil
			}
			rel = strings.TrimSuffix(rel, s.suffix)
		}
		keys = append(keys, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
