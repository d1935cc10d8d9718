package theme_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/theme/memory"
)

func echo(label string) memory.Block {
	return memory.Func(func(ctx theme.Context) (string, error) {
		return fmt.Sprintf("%s:%v", label, ctx[theme.KeyTheme]), nil
	})
}

func TestResolver_EarlierThemeUsedWhenLaterLacksBlock(t *testing.T) {
	env := memory.New(map[string]memory.Template{
		"A": {"X": echo("a")},
		"B": {"Y": echo("b")},
	})
	resolver := theme.NewResolver(env)

	out, err := resolver.RenderBlock([]string{"A", "B"}, "X", theme.Context{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "a:A" {
		t.Fatalf("want a:A, got %q", out)
	}
}

func TestResolver_LastRegisteredThemeWins(t *testing.T) {
	env := memory.New(map[string]memory.Template{
		"A": {"X": echo("a")},
		"B": {"X": echo("b")},
	})
	resolver := theme.NewResolver(env)

	winner, out, err := resolver.ResolveBlock([]string{"A", "B"}, "X", theme.Context{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if winner != "B" || out != "b:B" {
		t.Fatalf("want B/b:B, got %s/%q", winner, out)
	}
}

func TestResolver_ContextIsNotMutated(t *testing.T) {
	env := memory.New(map[string]memory.Template{"A": {"X": echo("a")}})
	ctx := theme.Context{"label": "Name"}

	if _, err := theme.NewResolver(env).RenderBlock([]string{"A"}, "X", ctx); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, ok := ctx[theme.KeyTheme]; ok {
		t.Fatalf("theme key leaked into caller context")
	}
}

func TestResolver_ConditionalBlockUsesContext(t *testing.T) {
	env := memory.New(map[string]memory.Template{
		"A": {"X": echo("a")},
		"B": {"X": {
			Render:  func(theme.Context) (string, error) { return "b", nil },
			Defined: func(ctx theme.Context) bool { return ctx["compact"] == true },
		}},
	})
	resolver := theme.NewResolver(env)

	out, err := resolver.RenderBlock([]string{"A", "B"}, "X", theme.Context{})
	if err != nil || out != "a:A" {
		t.Fatalf("plain context: got %q err=%v", out, err)
	}
	out, err = resolver.RenderBlock([]string{"A", "B"}, "X", theme.Context{"compact": true})
	if err != nil || out != "b" {
		t.Fatalf("compact context: got %q err=%v", out, err)
	}
}

func TestResolver_BlockNotFoundListsThemesInOrder(t *testing.T) {
	env := memory.New(map[string]memory.Template{
		"A": {},
		"B": {},
		"C": {"other": echo("c")},
	})

	_, err := theme.NewResolver(env).RenderBlock([]string{"A", "B", "C"}, "X", nil)
	if !errors.Is(err, theme.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
	var notFound *theme.BlockNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *BlockNotFoundError, got %T", err)
	}
	if notFound.Block != "X" {
		t.Fatalf("block mismatch: %q", notFound.Block)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, notFound.Themes); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}
	want := `Block "X" does not exist on any of the configured data table themes: "A", "B", "C"`
	if err.Error() != want {
		t.Fatalf("message mismatch\nwant: %s\n got: %s", want, err.Error())
	}
}

func TestResolver_EngineErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	env := memory.New(map[string]memory.Template{
		"A": {"X": memory.Func(func(theme.Context) (string, error) { return "", boom })},
	})
	resolver := theme.NewResolver(env)

	if _, err := resolver.RenderBlock([]string{"A"}, "X", nil); !errors.Is(err, boom) {
		t.Fatalf("expected render error to propagate, got %v", err)
	}
	if _, err := resolver.RenderBlock([]string{"missing"}, "X", nil); err == nil {
		t.Fatalf("expected load error")
	}
	if _, err := theme.NewResolver(nil).RenderBlock([]string{"A"}, "X", nil); err == nil {
		t.Fatalf("expected error for nil environment")
	}
}

func TestResolver_FindBlock(t *testing.T) {
	env := memory.New(map[string]memory.Template{
		"A": {"X": echo("a")},
		"B": {"X": echo("b")},
		"C": {},
	})
	resolver := theme.NewResolver(env)

	name, err := resolver.FindBlock([]string{"A", "B", "C"}, "X", nil)
	if err != nil || name != "B" {
		t.Fatalf("expected B, got %q err=%v", name, err)
	}
	name, err = resolver.FindBlock([]string{"A", "C"}, "Y", nil)
	if err != nil || name != "" {
		t.Fatalf("expected no theme, got %q err=%v", name, err)
	}
}
