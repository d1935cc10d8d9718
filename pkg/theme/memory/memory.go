// Package memory provides a theme.Environment whose templates are plain Go
// maps from block name to render function. It backs tests and callers that
// build fragments in code instead of template files.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-datatable/pkg/theme"
)

// RenderFunc renders a block with the given context.
type RenderFunc func(ctx theme.Context) (string, error)

// Block is one named fragment. When Defined is set the block only exists
// for contexts it accepts.
type Block struct {
	Render  RenderFunc
	Defined func(ctx theme.Context) bool
}

// Template is a set of named blocks.
type Template map[string]Block

// HasBlock implements theme.Template.
func (t Template) HasBlock(name string, ctx theme.Context) (bool, error) {
	block, ok := t[name]
	if !ok || block.Render == nil {
		return false, nil
	}
	if block.Defined != nil && !block.Defined(ctx) {
		return false, nil
	}
	return true, nil
}

// RenderBlock implements theme.Template.
func (t Template) RenderBlock(name string, ctx theme.Context) (string, error) {
	block, ok := t[name]
	if !ok || block.Render == nil {
		return "", fmt.Errorf("memory: block %q is not defined", name)
	}
	return block.Render(ctx)
}

// Static returns a block that always renders text.
func Static(text string) Block {
	return Block{Render: func(theme.Context) (string, error) { return text, nil }}
}

// Func returns a block backed by fn.
func Func(fn RenderFunc) Block {
	return Block{Render: fn}
}

// Environment stores templates by identifier.
type Environment struct {
	mu        sync.RWMutex
	templates map[string]Template
	loads     map[string]int
}

var _ theme.Environment = (*Environment)(nil)

// New creates an environment seeded with templates.
func New(templates map[string]Template) *Environment {
	env := &Environment{
		templates: make(map[string]Template, len(templates)),
		loads:     make(map[string]int),
	}
	for name, tpl := range templates {
		env.templates[strings.TrimSpace(name)] = tpl
	}
	return env
}

// Register adds or replaces a template.
func (e *Environment) Register(name string, tpl Template) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("memory: template name is required")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[name] = tpl
	return nil
}

// Load implements theme.Environment.
func (e *Environment) Load(name string) (theme.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tpl, ok := e.templates[name]
	if !ok {
		return nil, fmt.Errorf("memory: template %q not found", name)
	}
	e.loads[name]++
	return tpl, nil
}

// Loads reports how many times name was loaded.
func (e *Environment) Loads(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loads[name]
}

// List returns the registered template names, sorted.
func (e *Environment) List() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
