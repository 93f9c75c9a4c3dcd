package mesh

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Registry deduplicates mesh assets by resolved source path and tracks how
// many bindings reference each payload. Registration is serialized; lookups
// after geometry construction are read-mostly.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mesh *Mesh
	refs int
}

// EntryStat describes one cached asset, for diagnostics.
type EntryStat struct {
	Path string `json:"path"`
	Refs int    `json:"refs"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Load returns the mesh stored at path, scaled by the given unit factor.
// The raw payload is parsed once per resolved path; subsequent loads bump
// the reference count and reuse the cache.
func (r *Registry) Load(path string, scale float64) (*Mesh, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: cannot resolve %q: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, cached := r.entries[resolved]
	if !cached {
		m, err := LoadSTL(resolved)
		if err != nil {
			return nil, err
		}
		e = &entry{mesh: m}
		r.entries[resolved] = e
	}
	e.refs++
	return e.mesh.Scaled(scale), nil
}

// Register stores an already built mesh under the given path, bypassing
// file parsing. Used by tests and in-memory assets.
func (r *Registry) Register(path string, m *Mesh) (*Mesh, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: cannot resolve %q: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, cached := r.entries[resolved]
	if !cached {
		e = &entry{mesh: m}
		r.entries[resolved] = e
	}
	e.refs++
	return e.mesh, nil
}

// Stats reports cached paths and reference counts, sorted by path. Unused
// or over-shared assets show up here.
func (r *Registry) Stats() []EntryStat {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]EntryStat, 0, len(r.entries))
	for path, e := range r.entries {
		out = append(out, EntryStat{Path: path, Refs: e.refs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
