package theme

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger attaches a logger for resolution diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolver finds and renders blocks across theme stacks. It keeps no
// per-request state and can be shared.
type Resolver struct {
	env    Environment
	logger zerolog.Logger
}

// NewResolver wraps env. A nil environment is reported on first use.
func NewResolver(env Environment, options ...Option) *Resolver {
	r := &Resolver{
		env:    env,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Environment exposes the wrapped template environment.
func (r *Resolver) Environment() Environment {
	return r.env
}

// RenderBlock renders the first definition of block found while walking
// themes from last to first.
func (r *Resolver) RenderBlock(themes []string, block string, ctx Context) (string, error) {
	_, out, err := r.ResolveBlock(themes, block, ctx)
	return out, err
}

// ResolveBlock is RenderBlock that also reports the winning theme.
func (r *Resolver) ResolveBlock(themes []string, block string, ctx Context) (string, string, error) {
	name, err := r.FindBlock(themes, block, ctx)
	if err != nil {
		return "", "", err
	}
	if name == "" {
		return "", "", &BlockNotFoundError{
			Block:  block,
			Themes: append([]string(nil), themes...),
		}
	}

	tpl, err := r.load(name)
	if err != nil {
		return "", "", err
	}
	blockCtx := ctx.Clone()
	blockCtx[KeyTheme] = name
	r.logger.Debug().Str("block", block).Str("theme", name).Msg("block resolved")

	out, err := tpl.RenderBlock(block, blockCtx)
	if err != nil {
		return name, "", fmt.Errorf("theme: render block %q from %q: %w", block, name, err)
	}
	return name, out, nil
}

// FindBlock returns the theme RenderBlock would use for block, or "" when
// no theme defines it.
func (r *Resolver) FindBlock(themes []string, block string, ctx Context) (string, error) {
	if r == nil || r.env == nil {
		return "", errors.New("theme: environment is nil")
	}
	for i := len(themes) - 1; i >= 0; i-- {
		name := themes[i]
		tpl, err := r.load(name)
		if err != nil {
			return "", err
		}
		ok, err := tpl.HasBlock(block, ctx)
		if err != nil {
			return "", fmt.Errorf("theme: check block %q in %q: %w", block, name, err)
		}
		if ok {
			return name, nil
		}
		r.logger.Trace().Str("block", block).Str("theme", name).Msg("block missing")
	}
	return "", nil
}

func (r *Resolver) load(name string) (Template, error) {
	if r == nil || r.env == nil {
		return nil, errors.New("theme: environment is nil")
	}
	tpl, err := r.env.Load(name)
	if err != nil {
		return nil, fmt.Errorf("theme: load %q: %w", name, err)
	}
	if tpl == nil {
		return nil, fmt.Errorf("theme: load %q: environment returned no template", name)
	}
	return tpl, nil
}
