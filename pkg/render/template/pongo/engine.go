package pongo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-datatable/pkg/render/template"
	"github.com/goliatone/go-datatable/pkg/theme"
)

// Option configures the pongo2 engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  []fs.FS
	extension  string
	functions  []template.Function
	globalData map[string]any
}

// WithBaseDir loads themes from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS adds an fs.FS to load themes from. Filesystems are searched in
// the order they were added, after the base dir.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = append(cfg.templates, files)
		}
	}
}

// WithExtension overrides the default theme file extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFunctions registers helpers when the engine is created.
func WithFunctions(fns ...template.Function) Option {
	return func(cfg *config) {
		cfg.functions = append(cfg.functions, fns...)
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// DefaultExtension is appended to theme names without an extension.
const DefaultExtension = ".tmpl"

var (
	blockTag   = regexp.MustCompile(`\{%-?\s*block\s+([a-zA-Z0-9_]+)`)
	// inert matches source regions pongo2 never parses as tags.
	inert      = regexp.MustCompile(`\{#[^\n]*?#\}|(?s:\{%-?\s*comment\s*-?%\}.*?\{%-?\s*endcomment\s*-?%\})|(?s:\{% verbatim %\}.*?\{% endverbatim %\})`)
	identifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// Engine is a pongo2 backed theme environment. Each theme is one template
// file whose {% block %} definitions are the theme's blocks.
type Engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	loaders   []pongo2.TemplateLoader
	templates map[string]*blockTemplate
	ext       string
}

var _ template.Engine = (*Engine)(nil)

// New constructs an Engine using the provided options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: DefaultExtension,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && len(cfg.templates) == 0 {
		return nil, errors.New("pongo: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	for _, files := range cfg.templates {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}

	engine := &Engine{
		set:       pongo2.NewSet("datatable", loaders...),
		loaders:   loaders,
		templates: make(map[string]*blockTemplate),
		ext:       cfg.extension,
	}
	engine.set.Globals = make(pongo2.Context)
	registerDefaultFilters()

	engine.GlobalContext(cfg.globalData)
	for _, fn := range cfg.functions {
		if err := engine.RegisterFunction(fn); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// Load returns the compiled theme template. Templates are compiled once and
// cached for the lifetime of the engine.
func (e *Engine) Load(name string) (theme.Template, error) {
	if e == nil || e.set == nil {
		return nil, errors.New("pongo: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	e.mu.RLock()
	if tpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.templates[path]; ok {
		return tpl, nil
	}

	source, err := e.readSource(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: read template %q: %w", path, err)
	}
	compiled, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", path, err)
	}

	tpl := &blockTemplate{
		name:   path,
		tpl:    compiled,
		blocks: scanBlocks(source),
	}
	e.templates[path] = tpl
	return tpl, nil
}

// RenderString compiles and executes an inline template.
func (e *Engine) RenderString(content string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	tpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template string: %w", err)
	}
	out, err := tpl.Execute(toContext(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}
	return out, nil
}

// RegisterFunction exposes fn to every template as a global callable.
func (e *Engine) RegisterFunction(fn template.Function) error {
	name := strings.TrimSpace(fn.Name)
	if name == "" || fn.Call == nil {
		return errors.New("pongo: function name and call required")
	}
	if !identifier.MatchString(name) {
		return fmt.Errorf("pongo: invalid function name %q", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Globals[name] = bridge(fn)
	return nil
}

// RegisterFilter registers a template filter. pongo2 filters are process
// wide, so a name that already exists is rejected.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}
	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

// GlobalContext seeds global data on the template set.
func (e *Engine) GlobalContext(data map[string]any) {
	if e == nil || len(data) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Globals.Update(toContext(data))
}

func (e *Engine) readSource(path string) (string, error) {
	var lastErr error
	for _, loader := range e.loaders {
		reader, err := loader.Get(loader.Abs("", path))
		if err != nil {
			lastErr = err
			continue
		}
		raw, err := io.ReadAll(reader)
		if closer, ok := reader.(io.Closer); ok {
			_ = closer.Close()
		}
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	if lastErr == nil {
		lastErr = fs.ErrNotExist
	}
	return "", lastErr
}

func scanBlocks(source string) map[string]struct{} {
	blocks := make(map[string]struct{})
	source = inert.ReplaceAllString(source, "")
	for _, match := range blockTag.FindAllStringSubmatch(source, -1) {
		blocks[match[1]] = struct{}{}
	}
	return blocks
}

// blockTemplate adapts a compiled pongo2 template to theme.Template.
type blockTemplate struct {
	name   string
	tpl    *pongo2.Template
	blocks map[string]struct{}
}

func (t *blockTemplate) HasBlock(name string, _ theme.Context) (bool, error) {
	_, ok := t.blocks[name]
	return ok, nil
}

func (t *blockTemplate) RenderBlock(name string, ctx theme.Context) (string, error) {
	if _, ok := t.blocks[name]; !ok {
		return "", fmt.Errorf("pongo: template %q has no block %q", t.name, name)
	}
	out, err := t.tpl.ExecuteBlocks(toContext(ctx), []string{name})
	if err != nil {
		return "", fmt.Errorf("pongo: execute block %q of %q: %w", name, t.name, err)
	}
	rendered, ok := out[name]
	if !ok {
		return "", fmt.Errorf("pongo: template %q did not render block %q", t.name, name)
	}
	return rendered, nil
}

// bridge turns a Function into a pongo2 callable. pongo2 injects the
// execution context when the first parameter asks for it.
func bridge(fn template.Function) func(*pongo2.ExecutionContext, ...*pongo2.Value) (*pongo2.Value, error) {
	return func(ec *pongo2.ExecutionContext, args ...*pongo2.Value) (*pongo2.Value, error) {
		var ctx theme.Context
		if fn.NeedsContext {
			ctx = contextOf(ec)
		}
		values := make([]any, len(args))
		for idx, arg := range args {
			if arg == nil {
				continue
			}
			values[idx] = arg.Interface()
		}
		out, err := fn.Call(ctx, values...)
		if err != nil {
			return nil, err
		}
		if fn.Safe {
			return pongo2.AsSafeValue(out), nil
		}
		return pongo2.AsValue(out), nil
	}
}

func contextOf(ec *pongo2.ExecutionContext) theme.Context {
	ctx := theme.Context{}
	if ec == nil {
		return ctx
	}
	for key, value := range ec.Public {
		ctx[key] = value
	}
	for key, value := range ec.Private {
		ctx[key] = value
	}
	delete(ctx, "pongo2")
	return ctx
}

// toContext drops keys pongo2 cannot address; it rejects the whole context
// otherwise.
func toContext(data map[string]any) pongo2.Context {
	out := make(pongo2.Context, len(data))
	for key, value := range data {
		if !identifier.MatchString(key) {
			continue
		}
		out[key] = value
	}
	return out
}
