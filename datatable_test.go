package datatable_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-datatable"
	pkgdatatable "github.com/goliatone/go-datatable/pkg/datatable"
	"github.com/goliatone/go-datatable/pkg/renderers/vanilla"
)

func TestGenerateHTML(t *testing.T) {
	table := &datatable.Table{
		Name:    "orders",
		Columns: []pkgdatatable.Column{{Name: "number"}},
		Rows:    []map[string]any{{"number": "A-1"}},
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(&gotheme.Manifest{
		Name:      "acme",
		Version:   "1.0.0",
		Tokens:    map[string]string{"accent": "#ff6600"},
		Templates: map[string]string{"datatable.theme": vanilla.ThemeCompact},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	selector := gotheme.Selector{Registry: registry}

	out, err := datatable.GenerateHTML(context.Background(), table, "", datatable.WithThemeSelector(selector, "acme", "", ""))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "A-1") || !strings.Contains(html, "datatable-table--compact") {
		t.Fatalf("expected compact table with the row:\n%s", html)
	}
	if !strings.Contains(html, `style="--datatable-accent: #ff6600;"`) {
		t.Fatalf("expected theme tokens on the root:\n%s", html)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.ReadFile(datatable.EmbeddedTemplates(), "base.tmpl"); err != nil {
		t.Fatalf("expected base theme: %v", err)
	}
	if _, err := fs.ReadFile(datatable.EmbeddedAssets(), vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}
