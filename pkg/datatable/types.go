package datatable

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Categories used as outer block prefixes.
const (
	CategoryColumn = "column"
	CategoryAction = "action"
)

// Built-in column types.
const (
	ColumnTypeText     = "text"
	ColumnTypeNumber   = "number"
	ColumnTypeMoney    = "money"
	ColumnTypeDate     = "date"
	ColumnTypeBoolean  = "boolean"
	ColumnTypeLink     = "link"
	ColumnTypeHTML     = "html"
	ColumnTypeActions  = "actions"
	ColumnTypeCheckbox = "checkbox"
)

// Built-in action types.
const (
	ActionTypeLink   = "link"
	ActionTypeButton = "button"
	ActionTypeForm   = "form"
)

type typeKey struct {
	category string
	name     string
}

// TypeRegistry records the parent of every column and action type. Types
// are scoped by category so "link" can be both a column and an action.
type TypeRegistry struct {
	mu      sync.RWMutex
	parents map[typeKey]string
}

// NewTypeRegistry creates a registry holding the built-in types.
func NewTypeRegistry() *TypeRegistry {
	reg := &TypeRegistry{parents: make(map[typeKey]string)}
	reg.registerBuiltins()
	return reg
}

var (
	defaultTypesOnce sync.Once
	defaultTypes     *TypeRegistry
)

// DefaultTypes returns the shared registry used when a table does not carry
// its own.
func DefaultTypes() *TypeRegistry {
	defaultTypesOnce.Do(func() {
		defaultTypes = NewTypeRegistry()
	})
	return defaultTypes
}

func (r *TypeRegistry) registerBuiltins() {
	builtins := []struct {
		category, name, parent string
	}{
		{CategoryColumn, CategoryColumn, ""},
		{CategoryColumn, ColumnTypeText, CategoryColumn},
		{CategoryColumn, ColumnTypeNumber, ColumnTypeText},
		{CategoryColumn, ColumnTypeMoney, ColumnTypeNumber},
		{CategoryColumn, ColumnTypeDate, ColumnTypeText},
		{CategoryColumn, ColumnTypeBoolean, ColumnTypeText},
		{CategoryColumn, ColumnTypeLink, ColumnTypeText},
		{CategoryColumn, ColumnTypeHTML, ColumnTypeText},
		{CategoryColumn, ColumnTypeActions, CategoryColumn},
		{CategoryColumn, ColumnTypeCheckbox, CategoryColumn},
		{CategoryAction, CategoryAction, ""},
		{CategoryAction, ActionTypeLink, CategoryAction},
		{CategoryAction, ActionTypeButton, ActionTypeLink},
		{CategoryAction, ActionTypeForm, ActionTypeButton},
	}
	for _, b := range builtins {
		r.parents[typeKey{b.category, b.name}] = b.parent
	}
}

// Register adds a type under category with the given parent. An empty parent
// attaches the type directly to the category root. Parents must already be
// registered; a type naming itself as parent is accepted and treated as a
// root during prefix resolution.
func (r *TypeRegistry) Register(category, name, parent string) error {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	parent = strings.TrimSpace(parent)
	if category == "" || name == "" {
		return fmt.Errorf("datatable: type category and name are required")
	}
	if parent == "" && name != category {
		parent = category
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if parent != "" && parent != name {
		if _, ok := r.parents[typeKey{category, parent}]; !ok {
			return fmt.Errorf("datatable: parent %s type %q is not registered", category, parent)
		}
	}
	r.parents[typeKey{category, name}] = parent
	return nil
}

// Has reports whether a type is registered under category.
func (r *TypeRegistry) Has(category, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parents[typeKey{category, name}]
	return ok
}

// List returns the registered type names of a category, sorted.
func (r *TypeRegistry) List(category string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for key := range r.parents {
		if key.category == category {
			names = append(names, key.name)
		}
	}
	sort.Strings(names)
	return names
}

// BlockPrefixes returns name followed by its ancestors, most specific first,
// always ending with the category. Walking stops at the first repeated type,
// so self-parented or cyclic hierarchies terminate.
func (r *TypeRegistry) BlockPrefixes(category, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = category
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.parents[typeKey{category, name}]; !ok {
		return nil, fmt.Errorf("datatable: unknown %s type %q", category, name)
	}

	var prefixes []string
	seen := make(map[string]struct{})
	for current := name; current != ""; current = r.parents[typeKey{category, current}] {
		if _, dup := seen[current]; dup {
			break
		}
		seen[current] = struct{}{}
		prefixes = append(prefixes, current)
	}
	if prefixes[len(prefixes)-1] != category {
		prefixes = append(prefixes, category)
	}
	return prefixes, nil
}
