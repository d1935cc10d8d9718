package theme_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

func TestSetThemes_AppendAndReplace(t *testing.T) {
	table := view.New(view.KindDataTable, nil)
	table.Vars[view.VarThemes] = []string{"base"}
	row := view.New(view.KindHeaderRow, table)
	header := view.New(view.KindColumnHeader, row)

	theme.SetThemes(header, []string{"site", "page"}, false)
	if diff := cmp.Diff([]string{"base", "site", "page"}, theme.Themes(header)); diff != "" {
		t.Fatalf("append mismatch (-want +got):\n%s", diff)
	}

	theme.SetThemes(table, []string{"only"}, true)
	if diff := cmp.Diff([]string{"only"}, theme.Themes(header)); diff != "" {
		t.Fatalf("replace mismatch (-want +got):\n%s", diff)
	}

	theme.SetThemes(nil, []string{"ignored"}, false)
}

func TestSetThemes_ReplaceCopiesInput(t *testing.T) {
	table := view.New(view.KindDataTable, nil)
	input := []string{"a", "b"}
	theme.SetThemes(table, input, true)
	input[0] = "mutated"

	if diff := cmp.Diff([]string{"a", "b"}, theme.Themes(table)); diff != "" {
		t.Fatalf("stack aliased caller slice (-want +got):\n%s", diff)
	}
}

func TestParseThemeList(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    []string
		ok      bool
		invalid bool
	}{
		{name: "nil", value: nil},
		{name: "empty string", value: ""},
		{name: "empty list", value: []string{}},
		{name: "strings", value: []string{"a", "b"}, want: []string{"a", "b"}, ok: true},
		{name: "any strings", value: []any{"a"}, want: []string{"a"}, ok: true},
		{name: "scalar", value: "a", invalid: true},
		{name: "map", value: map[string]any{"a": 1}, invalid: true},
		{name: "mixed list", value: []any{"a", 1}, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := theme.ParseThemeList(tt.value)
			if tt.invalid {
				if !errors.Is(err, theme.ErrInvalidThemeList) {
					t.Fatalf("expected ErrInvalidThemeList, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.ok {
				t.Fatalf("ok mismatch: want %v, got %v", tt.ok, ok)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("themes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyOverride(t *testing.T) {
	table := view.New(view.KindDataTable, nil)
	table.Vars[view.VarThemes] = []string{"base"}

	applied, err := theme.ApplyOverride(table, map[string]any{"themes": []string{"custom"}})
	if err != nil || !applied {
		t.Fatalf("expected override applied, applied=%v err=%v", applied, err)
	}
	if diff := cmp.Diff([]string{"custom"}, theme.Themes(table)); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}

	if _, err := theme.ApplyOverride(table, map[string]any{"themes": 42}); !errors.Is(err, theme.ErrInvalidThemeList) {
		t.Fatalf("expected invalid theme list, got %v", err)
	}
	if diff := cmp.Diff([]string{"custom"}, theme.Themes(table)); diff != "" {
		t.Fatalf("invalid override must not touch the stack (-want +got):\n%s", diff)
	}
}

func TestBuildContext(t *testing.T) {
	vars := view.Vars{
		"label": "Name",
		"attr":  map[string]any{"class": "th"},
	}

	ctx := theme.BuildContext(vars, map[string]any{"label": "Override"}, false)
	if ctx["label"] != "Override" {
		t.Fatalf("override must win, got %v", ctx["label"])
	}
	if diff := cmp.Diff(map[string]any{"class": "th"}, ctx["attr"]); diff != "" {
		t.Fatalf("attr must be preserved (-want +got):\n%s", diff)
	}

	reset := theme.BuildContext(vars, nil, true)
	if diff := cmp.Diff(map[string]any{}, reset["attr"]); diff != "" {
		t.Fatalf("attr must be empty after reset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"class": "th"}, vars["attr"]); diff != "" {
		t.Fatalf("node vars mutated (-want +got):\n%s", diff)
	}
}

func TestStackFromSelection(t *testing.T) {
	manifest := &gotheme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			theme.DefaultManifestKey: "themes/acme",
		},
		Variants: map[string]gotheme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Templates: map[string]string{
					theme.DefaultManifestKey: "themes/acme-dark",
				},
			},
		},
	}

	stack := theme.StackFromSelection(&gotheme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}, "")
	if diff := cmp.Diff([]string{"themes/acme", "themes/acme-dark"}, stack); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}

	stack = theme.StackFromSelection(&gotheme.Selection{Theme: "acme", Manifest: manifest}, theme.DefaultManifestKey)
	if diff := cmp.Diff([]string{"themes/acme"}, stack); diff != "" {
		t.Fatalf("base-only stack mismatch (-want +got):\n%s", diff)
	}

	manifest.Variants["light"] = gotheme.Variant{Tokens: map[string]string{"brand": "#ffffff"}}
	stack = theme.StackFromSelection(&gotheme.Selection{Theme: "acme", Variant: "light", Manifest: manifest}, "")
	if diff := cmp.Diff([]string{"themes/acme"}, stack); diff != "" {
		t.Fatalf("variant without template must keep the base only (-want +got):\n%s", diff)
	}

	if theme.StackFromSelection(nil, "") != nil {
		t.Fatalf("nil selection must yield nil stack")
	}
}

type stubSelector struct {
	selection *gotheme.Selection
	err       error
}

func (s stubSelector) Select(_, _ string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	return s.selection, s.err
}

func TestSelectStack(t *testing.T) {
	manifest := &gotheme.Manifest{
		Name:      "acme",
		Templates: map[string]string{theme.DefaultManifestKey: "themes/acme"},
	}
	selection, stack, err := theme.SelectStack(stubSelector{selection: &gotheme.Selection{Theme: "acme", Manifest: manifest}}, "acme", "", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "acme" {
		t.Fatalf("selection not returned: %+v", selection)
	}
	if diff := cmp.Diff([]string{"themes/acme"}, stack); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}

	boom := errors.New("boom")
	if _, _, err := theme.SelectStack(stubSelector{err: boom}, "x", "", ""); !errors.Is(err, boom) {
		t.Fatalf("expected selector error, got %v", err)
	}
}
