package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned when a request names an unknown renderer.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry holds the output formats a table can be rendered to. The first
// registered renderer answers requests that name none, until SetDefault
// picks another one.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry returns a registry holding renderers, registered in order.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its Name.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// SetDefault makes name the renderer used when a request names none.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	r.fallback = name
	return nil
}

// Resolve returns the renderer called name, or the default one when name
// is empty.
func (r *Registry) Resolve(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = r.fallback
	}
	if name == "" {
		return nil, errors.New("render: no renderers registered")
	}
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrRendererNotFound, name, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// Names lists the registered renderers alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
