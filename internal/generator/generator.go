package generator

import (
	"fmt"

	"SeoContentEngine/internal/ports"
)

// Backend is a named generation strategy (OpenAI-compatible API, self-hosted
// inference service, offline stub).
type Backend interface {
	Name() string
	ports.Generator
}

// Registry keeps a mapping from backend names to their implementations.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: map[string]Backend{}}
}

// Register adds or replaces a backend implementation.
func (r *Registry) Register(backend Backend) {
	if r.backends == nil {
		r.backends = map[string]Backend{}
	}
	r.backends[backend.Name()] = backend
}

// Resolve returns a backend by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Backend, error) {
	if backend, ok := r.backends[name]; ok {
		return backend, nil
	}
	return nil, fmt.Errorf("generator backend %s is not registered", name)
}
