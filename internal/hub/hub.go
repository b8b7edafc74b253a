// Package hub provides a registry of named model fixtures.
//
// Models register themselves by name; callers load fresh instances bound to
// their own backend. The registry fills the role of a model zoo for the test
// and tooling surface: small, deterministic architectures that exercise the
// layer stack end to end.
package hub

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/hadamard-ml/hadamard/internal/nn"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Builder constructs a fresh model instance bound to the given backend.
type Builder[B tensor.Backend] func(backend B) nn.Module[B]

// Registry maps model names to builders. One registry exists per backend
// type.
type Registry[B tensor.Backend] struct {
	mu       sync.RWMutex
	builders map[string]Builder[B]
}

// NewRegistry creates an empty model registry.
func NewRegistry[B tensor.Backend]() *Registry[B] {
	return &Registry[B]{builders: make(map[string]Builder[B])}
}

// Register adds a named builder. Registering the same name twice panics:
// model names are package-level constants and a collision is a bug.
func (r *Registry[B]) Register(name string, builder Builder[B]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.builders[name]; exists {
		panic("hub: model " + name + " registered twice")
	}
	r.builders[name] = builder
}

// Load builds a fresh instance of the named model bound to backend.
func (r *Registry[B]) Load(name string, backend B) (nn.Module[B], error) {
	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("hub: unknown model %q (available: %v)", name, r.Names())
	}
	klog.V(2).Infof("hub: building model %q on %s", name, backend.Name())
	return builder(backend), nil
}

// Names lists the registered model names, sorted.
func (r *Registry[B]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
