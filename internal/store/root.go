package store

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Sub-store names.
const (
	RawData   = "raw_data"
	Functions = "functions"
	Meshes    = "meshes"
	Configs   = "configs"
)

// Root fans out to the service's sub-stores under one base directory:
// raw byte blobs, function signature metadata, saved graph descriptions,
// and application configurations.
type Root struct {
	base   string
	stores map[string]*Store
}

// NewRoot opens all sub-stores under base, creating directories as needed.
func NewRoot(base string) (*Root, error) {
	layout := map[string]string{
		RawData:   "",
		Functions: ".json",
		Meshes:    ".json",
		Configs:   ".json",
	}

	r := &Root{base: base, stores: make(map[string]*Store, len(layout))}
	for name, suffix := range layout {
		s, err := Open(filepath.Join(base, name), suffix)
		if err != nil {
			return nil, err
		}
		r.stores[name] = s
	}
	return r, nil
}

// Store resolves a sub-store by name.
func (r *Root) Store(name string) (*Store, error) {
	s, ok := r.stores[name]
	if !ok {
		return nil, fmt.Errorf("unknown store %q, available stores: %v", name, r.Names())
	}
	return s, nil
}

// Meshes returns the saved-graph store.
func (r *Root) Meshes() *Store { return r.stores[Meshes] }

// Configs returns the application-config store.
func (r *Root) Configs() *Store { return r.stores[Configs] }

// Names lists the sub-store names in lexical order.
func (r *Root) Names() []string {
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllKeys lists every key of every sub-store.
func (r *Root) AllKeys() (map[string][]string, error) {
	out := make(map[string][]string, len(r.stores))
	for name, s := range r.stores {
		keys, err := s.Keys()
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", name, err)
		}
		out[name] = keys
	}
	return out, nil
}
