package formatters

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Formatter turns a raw cell value into display text. options are the
// column options copied onto the value view (currency, layout, precision).
type Formatter func(value any, options map[string]any) (string, error)

// Registry tracks formatters keyed by column type. Lookups walk a type chain
// so a column type inherits the formatter of its nearest registered parent.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Clone returns a copy of the registry to allow isolated overrides.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, formatter := range r.formatters {
		cloned.formatters[name] = formatter
	}
	return cloned
}

// Register associates a formatter with a column type. Existing entries are
// replaced.
func (r *Registry) Register(name string, formatter Formatter) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("formatters: column type is required")
	}
	if formatter == nil {
		return fmt.Errorf("formatters: formatter for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[name] = formatter
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry setup.
func (r *Registry) MustRegister(name string, formatter Formatter) {
	if err := r.Register(name, formatter); err != nil {
		panic(err)
	}
}

// Formatter fetches the formatter registered for exactly name.
func (r *Registry) Formatter(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formatter, ok := r.formatters[normalize(name)]
	return formatter, ok
}

// Lookup returns the formatter of the first type in chain that has one.
func (r *Registry) Lookup(chain []string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range chain {
		if formatter, ok := r.formatters[normalize(name)]; ok {
			return formatter, true
		}
	}
	return nil, false
}

// Format renders value with the formatter found for chain, falling back to
// plain text.
func (r *Registry) Format(chain []string, value any, options map[string]any) (string, error) {
	formatter, ok := r.Lookup(chain)
	if !ok {
		return Text(value, options)
	}
	return formatter(value, options)
}

// Names returns a sorted slice of registered column types.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
