package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/value"
)

// ErrNotImplemented is returned by Create for a name with no constructor.
var ErrNotImplemented = errors.New("not_implemented")

// Module is the interface that bundles of components implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered component constructors for a single host.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]component.Constructor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		constructors: make(map[string]component.Constructor),
	}
}

// Register adds a constructor under name. It panics if the name is empty or
// already taken.
func (r *Registry) Register(name string, ctor component.Constructor) {
	if name == "" {
		panic("registry: component name must not be empty")
	}
	if ctor == nil {
		panic(fmt.Sprintf("registry: nil constructor for component '%s'", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constructors[name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", name))
	}
	slog.Debug("Registering component.", "name", name)
	r.constructors[name] = ctor
}

// Create builds the component registered under name, handing it config
// unvalidated. Unknown names fail with ErrNotImplemented.
func (r *Registry) Create(name string, config value.Value) (component.Component, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("component '%s': %w", name, ErrNotImplemented)
	}

	c, err := ctor(config)
	if err != nil {
		return nil, fmt.Errorf("failed to construct component '%s': %w", name, err)
	}
	return c, nil
}

// Has reports whether a constructor is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[name]
	return ok
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.constructors))
}
