package template

import (
	"github.com/goliatone/go-datatable/pkg/theme"
)

// Function is a helper made available to templates under Name.
type Function struct {
	Name string
	// Safe marks the result as trusted markup that must not be escaped.
	Safe bool
	// NeedsContext passes the caller's template context as ctx.
	NeedsContext bool
	Call         func(ctx theme.Context, args ...any) (any, error)
}

// Engine is a block capable template environment. Any Engine can back a
// theme.Resolver.
type Engine interface {
	theme.Environment
	RenderString(content string, data map[string]any) (string, error)
	RegisterFunction(fn Function) error
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data map[string]any)
}
