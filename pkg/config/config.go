// Package config loads the YAML configuration shared by renderers and the
// CLI: the default theme stack, table defaults and an optional go-theme
// selection.
package config

import (
	"fmt"
	"os"

	gotheme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datatable/pkg/datatable"
)

// Config is the root configuration document.
type Config struct {
	Themes    []string           `yaml:"themes" validate:"required,min=1,dive,theme_name"`
	Defaults  Defaults           `yaml:"defaults"`
	Theme     Selection          `yaml:"theme"`
	Manifests []gotheme.Manifest `yaml:"manifests"`
	Classes   map[string]string  `yaml:"classes"`
	URL       URL                `yaml:"url"`
}

// Defaults seed tables that leave a setting unset.
type Defaults struct {
	PerPage       int      `yaml:"per_page" validate:"gte=1,lte=1000"`
	Features      Features `yaml:"features"`
	ExportFormats []string `yaml:"export_formats" validate:"dive,required"`
}

// Features toggles table features. Missing entries stay enabled.
type Features struct {
	Sorting         *bool `yaml:"sorting"`
	Filtration      *bool `yaml:"filtration"`
	Pagination      *bool `yaml:"pagination"`
	Personalization *bool `yaml:"personalization"`
	Exporting       *bool `yaml:"exporting"`
}

// Selection picks one of the configured manifests. Its data table template
// is appended to the configured stack and its tokens become CSS variables.
type Selection struct {
	Name    string `yaml:"name" validate:"required_with=Variant"`
	Variant string `yaml:"variant"`
	Key     string `yaml:"key"`
}

// URL configures the default query string generators.
type URL struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Themes: []string{"base"},
		Defaults: Defaults{
			PerPage:       25,
			ExportFormats: []string{"csv"},
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Line: extractLine(err), Err: err}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FeatureSet resolves the toggles, treating missing entries as enabled.
func (f Features) FeatureSet() datatable.Features {
	return datatable.Features{
		Sorting:         enabled(f.Sorting),
		Filtration:      enabled(f.Filtration),
		Pagination:      enabled(f.Pagination),
		Personalization: enabled(f.Personalization),
		Exporting:       enabled(f.Exporting),
	}
}

// Apply fills unset table settings from the configuration: themes, page
// size, export formats and, when the table enables nothing, features.
func (c *Config) Apply(table *datatable.Table) {
	if c == nil || table == nil {
		return
	}
	if len(table.Themes) == 0 {
		table.Themes = append([]string(nil), c.Themes...)
	}
	if table.Pagination.PerPage == 0 {
		table.Pagination.PerPage = c.Defaults.PerPage
	}
	if len(table.ExportFormats) == 0 {
		table.ExportFormats = append([]string(nil), c.Defaults.ExportFormats...)
	}
	if table.Features == (datatable.Features{}) {
		table.Features = c.Defaults.Features.FeatureSet()
	}
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}
