package memory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/theme/memory"
)

func TestTemplate_ConditionalBlock(t *testing.T) {
	tpl := memory.Template{
		"row": {
			Render:  func(theme.Context) (string, error) { return "row", nil },
			Defined: func(ctx theme.Context) bool { return ctx["striped"] == true },
		},
	}

	ok, err := tpl.HasBlock("row", theme.Context{"striped": true})
	if err != nil || !ok {
		t.Fatalf("expected block defined for striped context, got ok=%v err=%v", ok, err)
	}
	ok, err = tpl.HasBlock("row", theme.Context{})
	if err != nil || ok {
		t.Fatalf("expected block undefined for plain context, got ok=%v err=%v", ok, err)
	}
	if ok, _ := tpl.HasBlock("missing", nil); ok {
		t.Fatalf("missing block reported as defined")
	}
}

func TestEnvironment_LoadAndList(t *testing.T) {
	env := memory.New(map[string]memory.Template{
		"b": {"x": memory.Static("b")},
	})
	if err := env.Register("a", memory.Template{"x": memory.Static("a")}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := env.Register(" ", nil); err == nil {
		t.Fatalf("expected error for blank name")
	}

	if diff := cmp.Diff([]string{"a", "b"}, env.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	tpl, err := env.Load("a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := tpl.RenderBlock("x", nil)
	if err != nil || out != "a" {
		t.Fatalf("render: got %q err=%v", out, err)
	}
	if env.Loads("a") != 1 {
		t.Fatalf("expected one load, got %d", env.Loads("a"))
	}
	if _, err := env.Load("zzz"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
