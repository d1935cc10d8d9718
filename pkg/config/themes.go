package config

import (
	"fmt"

	gotheme "github.com/goliatone/go-theme"
)

// ThemeRegistry registers the configured manifests in a go-theme registry.
func (c *Config) ThemeRegistry() (*gotheme.MemoryRegistry, error) {
	registry := gotheme.NewRegistry()
	if c == nil {
		return registry, nil
	}
	for i := range c.Manifests {
		manifest := c.Manifests[i]
		if err := registry.Register(&manifest); err != nil {
			return nil, fmt.Errorf("config: register manifest %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}

// ThemeSelector returns a selector over the configured manifests defaulting
// to the theme section, or nil when no manifest is declared.
func (c *Config) ThemeSelector() (gotheme.ThemeSelector, error) {
	if c == nil || len(c.Manifests) == 0 {
		return nil, nil
	}
	registry, err := c.ThemeRegistry()
	if err != nil {
		return nil, err
	}
	return gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   c.Theme.Name,
		DefaultVariant: c.Theme.Variant,
	}, nil
}

// validateManifests checks every manifest with go-theme, then rejects
// duplicate name/version pairs and a selection the manifests cannot serve.
func validateManifests(cfg *Config) error {
	seen := make(map[string]struct{}, len(cfg.Manifests))
	byName := make(map[string]gotheme.Manifest, len(cfg.Manifests))
	for i := range cfg.Manifests {
		manifest := &cfg.Manifests[i]
		field := fmt.Sprintf("manifests[%d]", i)
		if err := manifest.Validate(); err != nil {
			return &ValidationError{Field: field, Message: err.Error(), Err: err}
		}
		if !themeNamePattern.MatchString(manifest.Name) {
			return &ValidationError{Field: field + ".name", Message: fmt.Sprintf("invalid manifest name %q", manifest.Name)}
		}
		id := manifest.Name + "@" + manifest.Version
		if _, dup := seen[id]; dup {
			return &ValidationError{Field: field, Message: fmt.Sprintf("duplicate manifest %s", id)}
		}
		seen[id] = struct{}{}
		byName[manifest.Name] = *manifest
	}

	if cfg.Theme.Name == "" || len(cfg.Manifests) == 0 {
		return nil
	}
	manifest, ok := byName[cfg.Theme.Name]
	if !ok {
		return &ValidationError{Field: "theme.name", Message: fmt.Sprintf("no manifest named %q", cfg.Theme.Name)}
	}
	if cfg.Theme.Variant != "" {
		if _, ok := manifest.Variants[cfg.Theme.Variant]; !ok {
			return &ValidationError{Field: "theme.variant", Message: fmt.Sprintf("manifest %q has no variant %q", cfg.Theme.Name, cfg.Theme.Variant)}
		}
	}
	return nil
}
