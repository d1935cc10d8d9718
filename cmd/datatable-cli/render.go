package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datatable/internal/prompt"
	"github.com/goliatone/go-datatable/pkg/orchestrator"
	"github.com/goliatone/go-datatable/pkg/render"
)

type renderOptions struct {
	renderer    string
	themes      []string
	only        bool
	interactive bool
	output      string
	stylesheet  bool
}

// newPromptDriver is swapped in tests.
var newPromptDriver = func() prompt.Driver {
	return prompt.NewSurveyDriver()
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render FIXTURE",
		Short: "Render a table fixture to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.renderer, "renderer", "r", "vanilla", "Renderer name")
	cmd.Flags().StringSliceVarP(&opts.themes, "theme", "t", nil, "Theme to stack on top of the table's themes (repeatable)")
	cmd.Flags().BoolVar(&opts.only, "only", false, "Replace the table's themes instead of appending")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick themes interactively")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.stylesheet, "stylesheet", false, "Inline the default stylesheet")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlags, opts renderOptions, fixturePath string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	table, err := loadTable(fixturePath, cfg)
	if err != nil {
		return err
	}

	orch := newOrchestrator(cfg, root, logger, rendererOptions{stylesheet: opts.stylesheet})

	options := render.RenderOptions{Themes: opts.themes, Only: opts.only}
	if opts.interactive {
		available, err := availableThemes(cfg, root.templates)
		if err != nil {
			return err
		}
		choice, err := prompt.PickThemes(ctx, newPromptDriver(), available, table.Themes)
		if err != nil {
			return err
		}
		options.Themes = choice.Themes
		options.Only = choice.Only
	}

	out, err := orch.Generate(ctx, orchestrator.Request{
		Table:         table,
		Renderer:      opts.renderer,
		RenderOptions: options,
	})
	if err != nil {
		return err
	}
	logger.Debug().Str("renderer", opts.renderer).Int("bytes", len(out)).Msg("table rendered")

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	return nil
}
