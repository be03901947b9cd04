package stream

import (
	"fmt"
	"sort"
	"sync"
)

// Registry tracks the stream sources available to the HTTP layer.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry creates an empty stream registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds a source; a later source with the same id replaces the
// earlier one.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.ID()] = s
}

// Get resolves a source by id.
func (r *Registry) Get(id string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sources[id]
	if !ok {
		return nil, fmt.Errorf("stream %q not found", id)
	}
	return s, nil
}

// List returns the registered source ids in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MultiChannelView slices several registered streams over one shared time
// window, keeping multi-channel data aligned.
type MultiChannelView struct {
	reg *Registry
}

// NewMultiChannelView creates a view over the given registry.
func NewMultiChannelView(reg *Registry) *MultiChannelView {
	return &MultiChannelView{reg: reg}
}

// Slice returns the [bt:tt] window of every named channel, keyed by id.
// An unknown channel fails the whole call.
func (v *MultiChannelView) Slice(channelIDs []string, bt, tt float64) (map[string][]float64, error) {
	out := make(map[string][]float64, len(channelIDs))
	for _, id := range channelIDs {
		src, err := v.reg.Get(id)
		if err != nil {
			return nil, err
		}
		data, err := src.Slice(bt, tt)
		if err != nil {
			return nil, fmt.Errorf("slicing %q: %w", id, err)
		}
		out[id] = data
	}
	return out, nil
}

// Info returns the metadata of every named channel, keyed by id.
func (v *MultiChannelView) Info(channelIDs []string) (map[string]Metadata, error) {
	out := make(map[string]Metadata, len(channelIDs))
	for _, id := range channelIDs {
		src, err := v.reg.Get(id)
		if err != nil {
			return nil, err
		}
		meta, err := src.Metadata()
		if err != nil {
			return nil, err
		}
		out[id] = meta
	}
	return out, nil
}
