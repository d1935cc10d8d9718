package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-datatable/pkg/config"
	"github.com/goliatone/go-datatable/pkg/theme"
)

func TestThemeSelector(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "datatable.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	selector, err := cfg.ThemeSelector()
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	selection, stack, err := theme.SelectStack(selector, cfg.Theme.Name, cfg.Theme.Variant, cfg.Theme.Key)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"acme", "acme/dark"}, stack); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"brand": "#123456"}, selection.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	// Empty requests use the configured theme and variant.
	selection, err = selector.Select("", "")
	if err != nil || selection.Theme != "acme" || selection.Variant != "dark" {
		t.Fatalf("expected configured defaults, got %+v, %v", selection, err)
	}
	// Unknown themes fall back to the configured one.
	selection, err = selector.Select("nope", "")
	if err != nil || selection.Manifest.Name != "acme" {
		t.Fatalf("expected fallback manifest, got %+v, %v", selection, err)
	}
}

func TestThemeSelector_NoManifests(t *testing.T) {
	selector, err := config.Default().ThemeSelector()
	if err != nil || selector != nil {
		t.Fatalf("expected no selector, got %v, %v", selector, err)
	}

	registry, err := config.Default().ThemeRegistry()
	if err != nil || len(registry.List()) != 0 {
		t.Fatalf("expected empty registry, got %v, %v", registry.List(), err)
	}
	if _, err := registry.Get("acme"); !errors.Is(err, gotheme.ErrThemeNotFound) {
		t.Fatalf("expected theme not found, got %v", err)
	}
}

func TestValidate_Manifests(t *testing.T) {
	valid := func() *config.Config {
		cfg := config.Default()
		cfg.Theme = config.Selection{Name: "acme", Variant: "dark"}
		cfg.Manifests = []gotheme.Manifest{{
			Name:      "acme",
			Version:   "1.0.0",
			Templates: map[string]string{theme.DefaultManifestKey: "acme"},
			Variants: map[string]gotheme.Variant{
				"dark": {Templates: map[string]string{theme.DefaultManifestKey: "acme/dark"}},
			},
		}}
		return cfg
	}
	if err := config.Validate(valid()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]struct {
		mutate func(*config.Config)
		field  string
	}{
		"missing version": {
			mutate: func(c *config.Config) { c.Manifests[0].Version = "" },
			field:  "manifests[0]",
		},
		"empty template": {
			mutate: func(c *config.Config) { c.Manifests[0].Templates["datatable.theme"] = " " },
			field:  "manifests[0]",
		},
		"bad name": {
			mutate: func(c *config.Config) { c.Manifests[0].Name = "a b"; c.Theme = config.Selection{} },
			field:  "manifests[0].name",
		},
		"duplicate": {
			mutate: func(c *config.Config) { c.Manifests = append(c.Manifests, c.Manifests[0]) },
			field:  "manifests[1]",
		},
		"unknown theme": {
			mutate: func(c *config.Config) { c.Theme.Name = "ghost"; c.Theme.Variant = "" },
			field:  "theme.name",
		},
		"unknown variant": {
			mutate: func(c *config.Config) { c.Theme.Variant = "light" },
			field:  "theme.variant",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := config.Validate(cfg)
			var verr *config.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %s, got %s (%v)", tc.field, verr.Field, err)
			}
		})
	}

	// A second version of the same manifest is allowed.
	cfg := valid()
	second := cfg.Manifests[0]
	second.Version = "2.0.0"
	cfg.Manifests = append(cfg.Manifests, second)
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("versions must coexist: %v", err)
	}
}
