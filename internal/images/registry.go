package images

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry is the set of asset file names already used in one run. Names are
// compared case-insensitively. A Registry is not safe for concurrent use; the
// pipeline processes documents one at a time.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry returns a registry seeded with existing names.
func NewRegistry(existing ...string) *Registry {
	r := &Registry{names: make(map[string]struct{}, len(existing))}
	for _, n := range existing {
		r.Add(n)
	}
	return r
}

// Contains reports whether name is taken, ignoring case.
func (r *Registry) Contains(name string) bool {
	_, ok := r.names[strings.ToLower(name)]
	return ok
}

// Add marks name as taken.
func (r *Registry) Add(name string) {
	r.names[strings.ToLower(name)] = struct{}{}
}

// Len returns the number of registered names.
func (r *Registry) Len() int { return len(r.names) }

// Next returns name if it is free, otherwise the first free "base-N.ext"
// variant. It does not register the result.
func (r *Registry) Next(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; r.Contains(candidate); n++ {
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	return candidate
}
