package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-datatable/pkg/render"
	rendertemplate "github.com/goliatone/go-datatable/pkg/render/template"
	"github.com/goliatone/go-datatable/pkg/render/template/pongo"
	"github.com/goliatone/go-datatable/pkg/renderers/vanilla/formatters"
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

// DefaultThemes is the stack used for tables that carry no themes.
var DefaultThemes = []string{ThemeBase}

type Option func(*config)

type config struct {
	templateFS []fs.FS
	engine     rendertemplate.Engine
	formatters *formatters.Registry
	classes    Classes
	extension  []render.Option
	logger     zerolog.Logger
	stylesheet bool
}

// WithTemplatesFS supplies additional themes via fs.FS. The built-in themes
// stay available; a file with the same name shadows the built-in one.
// Repeated calls add more sources, earlier ones winning.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = append(cfg.templateFS, files)
		}
	}
}

// WithTemplatesDir loads additional themes from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = append(cfg.templateFS, os.DirFS(path))
	}
}

// WithEngine injects a custom block engine. Themes are loaded from it
// as-is.
func WithEngine(engine rendertemplate.Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithFormatters replaces the cell formatter registry.
func WithFormatters(registry *formatters.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.formatters = registry
		}
	}
}

// WithClasses overrides chrome classes by key.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// WithExtensionOptions forwards options to the render extension, for
// example URL generators or a go-theme selector.
func WithExtensionOptions(options ...render.Option) Option {
	return func(cfg *config) {
		cfg.extension = append(cfg.extension, options...)
	}
}

// WithLogger attaches a logger to the resolver and extension.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithInlineStylesheet prepends the default stylesheet in a <style> tag.
func WithInlineStylesheet() Option {
	return func(cfg *config) {
		cfg.stylesheet = true
	}
}

// Renderer renders data tables to HTML through the pongo2 theme stack.
type Renderer struct {
	extension  *render.Extension
	stylesheet string
	logger     zerolog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		formatters: formatters.NewDefaultRegistry(),
		classes:    DefaultClasses(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		engineOpts := []pongo.Option{pongo.WithExtension(".tmpl")}
		for _, files := range cfg.templateFS {
			engineOpts = append(engineOpts, pongo.WithFS(files))
		}
		engineOpts = append(engineOpts, pongo.WithFS(TemplatesFS()))
		built, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template engine: %w", err)
		}
		engine = built
	}

	resolver := theme.NewResolver(engine, theme.WithLogger(cfg.logger))
	extOpts := append([]render.Option{render.WithLogger(cfg.logger)}, cfg.extension...)
	ext, err := render.New(resolver, extOpts...)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure extension: %w", err)
	}

	functions := append(ext.Functions(), helperFunctions(cfg.formatters)...)
	for _, fn := range functions {
		if err := engine.RegisterFunction(fn); err != nil {
			return nil, fmt.Errorf("vanilla renderer: register %s: %w", fn.Name, err)
		}
	}
	engine.GlobalContext(map[string]any{"classes": map[string]string(cfg.classes)})

	renderer := &Renderer{
		extension: ext,
		logger:    cfg.logger,
	}
	if cfg.stylesheet {
		renderer.stylesheet = defaultStylesheet()
	}
	return renderer, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Extension exposes the fragment surface, for callers that render single
// fragments such as a row after an inline edit.
func (r *Renderer) Extension() *render.Extension {
	return r.extension
}

// Render applies the configured theme selection and option themes to table,
// then renders its data_table block.
func (r *Renderer) Render(ctx context.Context, table *view.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.extension == nil {
		return nil, fmt.Errorf("vanilla renderer: extension is nil")
	}
	if table == nil {
		return nil, fmt.Errorf("vanilla renderer: table view is nil")
	}
	table = table.DataTable()

	if len(theme.Themes(table)) == 0 {
		theme.SetThemes(table, DefaultThemes, true)
	}
	if err := r.extension.Prepare(table); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if len(options.Themes) > 0 {
		theme.SetThemes(table, options.Themes, options.Only)
	}
	r.logger.Debug().Strs("themes", theme.Themes(table)).Str("table", table.Vars.String(view.VarName)).Msg("rendering data table")

	out, err := r.extension.RenderDataTable(table, options.Vars)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render data table: %w", err)
	}
	if r.stylesheet != "" {
		out = "<style>" + r.stylesheet + "</style>\n" + out
	}
	return []byte(out), nil
}
