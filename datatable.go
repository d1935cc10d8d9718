// Package datatable renders data table snapshots through stacked themes.
// The root package re-exports the most common entry points; the pkg/
// packages hold the building blocks.
package datatable

import (
	"context"

	theme "github.com/goliatone/go-theme"

	pkgdatatable "github.com/goliatone/go-datatable/pkg/datatable"
	"github.com/goliatone/go-datatable/pkg/orchestrator"
	"github.com/goliatone/go-datatable/pkg/render"
)

// Table aliases the data table snapshot.
type Table = pkgdatatable.Table

// RenderOptions describes per-request theme overrides and block variables.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders table with the named renderer, the vanilla HTML
// renderer when empty. It is the simplest entry point for callers that just
// want HTML output.
func GenerateHTML(ctx context.Context, table *Table, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Table:    table,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator
// so the selected theme's data table template is stacked on every table.
func WithThemeSelector(selector theme.ThemeSelector, name, variant, key string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant, key)
}
