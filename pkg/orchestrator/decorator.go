package orchestrator

import (
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

// ViewDecorator mutates the view tree after it is built and before it is
// rendered.
type ViewDecorator interface {
	Decorate(root *view.View) error
}

// DecoratorFunc adapts plain functions to the ViewDecorator interface.
type DecoratorFunc func(root *view.View) error

// Decorate executes the wrapped function when non-nil.
func (fn DecoratorFunc) Decorate(root *view.View) error {
	if fn == nil {
		return nil
	}
	return fn(root)
}

// ThemeDecorator stacks themes on every table, replacing the table's own
// stack when Only is set.
type ThemeDecorator struct {
	Themes []string
	Only   bool
}

// Decorate applies the configured themes to the table root.
func (d ThemeDecorator) Decorate(root *view.View) error {
	if root == nil || len(d.Themes) == 0 {
		return nil
	}
	theme.SetThemes(root.DataTable(), d.Themes, d.Only)
	return nil
}
