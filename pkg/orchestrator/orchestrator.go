package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"maps"

	gotheme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-datatable/pkg/config"
	"github.com/goliatone/go-datatable/pkg/datatable"
	"github.com/goliatone/go-datatable/pkg/render"
	"github.com/goliatone/go-datatable/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry. The default vanilla renderer is
// only built when no registry is supplied.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithConfig seeds tables with configured defaults and configures the
// default renderer (classes, URL path, theme selection).
func WithConfig(cfg *config.Config) Option {
	return func(o *Orchestrator) {
		o.config = cfg
	}
}

// WithThemeSelector appends the stack of a go-theme selection to every
// table rendered by the default renderer. It wins over a selection in the
// configuration.
func WithThemeSelector(selector gotheme.ThemeSelector, name, variant, key string) Option {
	return func(o *Orchestrator) {
		o.selector = &themeSelection{selector: selector, name: name, variant: variant, key: key}
	}
}

// WithRendererOptions forwards options to the default vanilla renderer.
func WithRendererOptions(options ...vanilla.Option) Option {
	return func(o *Orchestrator) {
		o.rendererOptions = append(o.rendererOptions, options...)
	}
}

// WithTransformer registers a Transformer that mutates tables before their
// view is built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithViewDecorators registers decorators that run against the view tree
// before rendering.
func WithViewDecorators(decorators ...ViewDecorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithLogger attaches a logger to the orchestrator and the default renderer.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

type themeSelection struct {
	selector gotheme.ThemeSelector
	name     string
	variant  string
	key      string
}

// Orchestrator coordinates the pipeline from table snapshot to rendered
// output. It applies sensible defaults (vanilla renderer, built-in themes)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	config          *config.Config
	selector        *themeSelection
	rendererOptions []vanilla.Option
	transformer     Transformer
	decorators      []ViewDecorator
	logger          zerolog.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a table.
type Request struct {
	// Table is the snapshot to render. Unset settings are filled from the
	// configuration; the caller's value is not modified.
	Table *datatable.Table

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request theme overrides and block variables.
	RenderOptions render.RenderOptions
}

// Generate executes the defaults -> transformer -> view -> decorators ->
// renderer sequence and returns the rendered bytes (HTML for the default
// vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Table == nil {
		return nil, errors.New("orchestrator: table is required")
	}

	table := cloneTable(req.Table)
	o.config.Apply(table)

	if err := o.applyTransformer(ctx, table); err != nil {
		return nil, err
	}

	root, err := table.CreateView()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build view: %w", err)
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(root); err != nil {
			return nil, fmt.Errorf("orchestrator: decorate view: %w", err)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().Str("table", table.Name).Str("renderer", renderer.Name()).Msg("rendering table")

	output, err := renderer.Render(ctx, root, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry, including the default renderer
// when one was built.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Renderer returns the renderer a request naming name would use.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	return o.rendererFor(name)
}

// rendererFor picks the named renderer. Without a name it prefers the
// configured default and falls back to the registry's own default.
func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name == "" {
		if renderer, err := o.registry.Resolve(o.defaultRenderer); err == nil {
			return renderer, nil
		}
	}
	renderer, err := o.registry.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

// cloneTable copies every slice a transformer may edit in place. Row maps
// are copied one level deep; nested values stay shared with the caller.
func cloneTable(in *datatable.Table) *datatable.Table {
	out := *in
	out.Columns = append([]datatable.Column(nil), in.Columns...)
	out.Actions = append([]datatable.Action(nil), in.Actions...)
	out.Sorting = append([]datatable.SortField(nil), in.Sorting...)
	out.Themes = append([]string(nil), in.Themes...)
	out.ExportFormats = append([]string(nil), in.ExportFormats...)
	out.Filters = make([]datatable.Filter, len(in.Filters))
	for i, filter := range in.Filters {
		filter.Operators = append([]datatable.Operator(nil), filter.Operators...)
		out.Filters[i] = filter
	}
	if in.Rows != nil {
		out.Rows = make([]map[string]any, len(in.Rows))
		for i, row := range in.Rows {
			out.Rows[i] = maps.Clone(row)
		}
	}
	out.Attr = maps.Clone(in.Attr)
	out.Query = maps.Clone(in.Query)
	return &out
}

func (o *Orchestrator) applyTransformer(ctx context.Context, table *datatable.Table) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, table); err != nil {
		return fmt.Errorf("orchestrator: transform table: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry != nil {
		return
	}

	renderer, err := o.defaultVanilla()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		return
	}
	o.registry = registry
}

func (o *Orchestrator) defaultVanilla() (*vanilla.Renderer, error) {
	var extOpts []render.Option
	opts := []vanilla.Option{vanilla.WithLogger(o.logger)}

	if cfg := o.config; cfg != nil {
		extOpts = append(extOpts, render.WithURLGenerator(datatable.QueryURLGenerator{Path: cfg.URL.Path}))
		opts = append(opts, vanilla.WithClasses(vanilla.Classes(cfg.Classes)))

		if o.selector == nil && cfg.Theme.Name != "" {
			selector, err := cfg.ThemeSelector()
			if err != nil {
				return nil, err
			}
			if selector == nil {
				return nil, fmt.Errorf("theme %q selected but no manifests configured", cfg.Theme.Name)
			}
			o.selector = &themeSelection{selector: selector, name: cfg.Theme.Name, variant: cfg.Theme.Variant, key: cfg.Theme.Key}
		}
	}
	if s := o.selector; s != nil {
		extOpts = append(extOpts, render.WithThemeSelector(s.selector, s.name, s.variant, s.key))
	}

	opts = append(opts, vanilla.WithExtensionOptions(extOpts...))
	opts = append(opts, o.rendererOptions...)
	return vanilla.New(opts...)
}
