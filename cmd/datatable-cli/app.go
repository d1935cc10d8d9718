package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-datatable/internal/logging"
	"github.com/goliatone/go-datatable/pkg/config"
	"github.com/goliatone/go-datatable/pkg/orchestrator"
	"github.com/goliatone/go-datatable/pkg/render"
	"github.com/goliatone/go-datatable/pkg/renderers/vanilla"
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

const templateExt = ".tmpl"

func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(flags.configPath)
}

func newLogger(flags *rootFlags, w io.Writer) (zerolog.Logger, error) {
	level := "info"
	if flags.verbose {
		level = "debug"
	}
	return logging.New(logging.Options{Level: level, HumanReadable: true, Writer: w})
}

type rendererOptions struct {
	stylesheet bool
}

// newOrchestrator builds the render pipeline from cfg and the global flags.
// The vanilla renderer is the only one registered.
func newOrchestrator(cfg *config.Config, flags *rootFlags, logger zerolog.Logger, opts rendererOptions) *orchestrator.Orchestrator {
	rendererOpts := []vanilla.Option{vanilla.WithTemplatesDir(flags.templates)}
	if opts.stylesheet {
		rendererOpts = append(rendererOpts, vanilla.WithInlineStylesheet())
	}
	return orchestrator.New(
		orchestrator.WithConfig(cfg),
		orchestrator.WithLogger(logger),
		orchestrator.WithRendererOptions(rendererOpts...),
	)
}

// availableThemes lists the built-in themes, the configured ones and any
// template found in the templates directory, sorted.
func availableThemes(cfg *config.Config, templatesDir string) ([]string, error) {
	seen := map[string]struct{}{
		vanilla.ThemeBase:    {},
		vanilla.ThemeCompact: {},
	}
	for _, name := range cfg.Themes {
		seen[name] = struct{}{}
	}
	if templatesDir != "" {
		err := fs.WalkDir(os.DirFS(templatesDir), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, templateExt) {
				seen[strings.TrimSuffix(path, templateExt)] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list templates in %s: %w", templatesDir, err)
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// prepareStack applies the same theme steps as the vanilla renderer so
// explain reports what render would use.
func prepareStack(ext *render.Extension, root *view.View, themes []string, only bool) error {
	if len(theme.Themes(root)) == 0 {
		theme.SetThemes(root, vanilla.DefaultThemes, true)
	}
	if err := ext.Prepare(root); err != nil {
		return err
	}
	if len(themes) > 0 {
		theme.SetThemes(root, themes, only)
	}
	return nil
}
