package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datatable/pkg/render"
	"github.com/goliatone/go-datatable/pkg/view"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, *view.View, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg, err := render.NewRegistry(namedRenderer("vanilla"), namedRenderer("compact"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := reg.Register(namedRenderer("vanilla")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected name error")
	}
	if diff := cmp.Diff([]string{"compact", "vanilla"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	got, err := reg.Resolve("")
	if err != nil || got.Name() != "vanilla" {
		t.Fatalf("first registered renderer must be the default, got %v, %v", got, err)
	}
	if err := reg.SetDefault("compact"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got, _ := reg.Resolve(""); got.Name() != "compact" {
		t.Fatalf("default not switched: %s", got.Name())
	}

	if _, err := reg.Resolve("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := reg.SetDefault("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegistry_Empty(t *testing.T) {
	reg, err := render.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if _, err := reg.Resolve(""); err == nil {
		t.Fatalf("expected error from empty registry")
	}
	if _, err := render.NewRegistry(namedRenderer("a"), namedRenderer("a")); err == nil {
		t.Fatalf("expected duplicate error from constructor")
	}
}
