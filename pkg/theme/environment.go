package theme

// Context carries the variables handed to a block while it renders.
type Context map[string]any

// Clone returns a shallow copy so callers can inject resolution metadata
// without leaking it into the caller's map.
func (c Context) Clone() Context {
	out := make(Context, len(c)+2)
	for key, value := range c {
		out[key] = value
	}
	return out
}

// String returns the string stored under key, or "" when missing.
func (c Context) String(key string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// Environment loads compiled themes by identifier. Implementations own
// parsing and caching.
type Environment interface {
	Load(name string) (Template, error)
}

// Template is a loaded theme able to report and render its named blocks.
// HasBlock receives the render context because some engines define blocks
// conditionally.
type Template interface {
	HasBlock(name string, ctx Context) (bool, error)
	RenderBlock(name string, ctx Context) (string, error)
}

// EnvironmentFunc adapts a plain function to the Environment interface.
type EnvironmentFunc func(name string) (Template, error)

// Load calls f(name).
func (f EnvironmentFunc) Load(name string) (Template, error) {
	return f(name)
}
