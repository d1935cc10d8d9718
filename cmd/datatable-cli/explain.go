package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datatable/pkg/datatable"
	"github.com/goliatone/go-datatable/pkg/render"
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

type explainOptions struct {
	themes []string
	only   bool
}

var explainedFragments = []string{
	render.BlockDataTable,
	render.BlockActionBar,
	render.BlockTable,
	render.BlockHeaderRow,
	render.BlockValueRow,
	render.BlockColumnLabel,
	render.BlockColumnHeader,
	render.BlockColumnValue,
	render.BlockAction,
	render.BlockPagination,
	render.BlockFiltersForm,
	render.BlockPersonalizationForm,
	render.BlockExportForm,
}

type extensionProvider interface {
	Extension() *render.Extension
}

func newExplainCmd(root *rootFlags) *cobra.Command {
	opts := explainOptions{}

	cmd := &cobra.Command{
		Use:   "explain FIXTURE",
		Short: "Show which theme provides each block of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.themes, "theme", "t", nil, "Theme to stack on top of the table's themes (repeatable)")
	cmd.Flags().BoolVar(&opts.only, "only", false, "Replace the table's themes instead of appending")

	return cmd
}

func runExplain(cmd *cobra.Command, root *rootFlags, opts explainOptions, fixturePath string) error {
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
	renderer, err := newOrchestrator(cfg, root, logger, rendererOptions{}).Renderer("vanilla")
	if err != nil {
		return err
	}
	provider, ok := renderer.(extensionProvider)
	if !ok {
		return fmt.Errorf("renderer %q does not expose its theme extension", renderer.Name())
	}
	ext := provider.Extension()

	tableView, err := table.CreateView()
	if err != nil {
		return err
	}
	if err := prepareStack(ext, tableView, opts.themes, opts.only); err != nil {
		return err
	}

	return explain(cmd.OutOrStdout(), ext.Resolver(), tableView)
}

func explain(out io.Writer, resolver *theme.Resolver, table *view.View) error {
	themes := theme.Themes(table)
	fmt.Fprintf(out, "table:  %s\n", table.Vars.String(view.VarName))
	fmt.Fprintf(out, "themes: %s\n\n", strings.Join(themes, ", "))

	ctx := theme.BuildContext(table.Vars, nil, false)
	ctx[theme.KeyDataTable] = table

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAGMENT\tTHEME")
	for _, block := range explainedFragments {
		winner, err := resolver.FindBlock(themes, block, ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", block, orDash(winner))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tPART\tBLOCK\tTHEME\tCANDIDATES")
	var nodes []explainedNode
	if header, ok := table.Vars["header_row"].(*view.View); ok {
		for _, node := range header.ChildrenOf(view.KindColumnHeader) {
			nodes = append(nodes, explainedNode{node, datatable.CategoryColumn, "header"})
		}
	}
	if rows, ok := table.Vars["value_rows"].([]*view.View); ok && len(rows) > 0 {
		for _, node := range rows[0].ChildrenOf(view.KindColumnValue) {
			nodes = append(nodes, explainedNode{node, datatable.CategoryColumn, "value"})
		}
	}
	if actions, ok := table.Vars["actions"].([]*view.View); ok {
		for _, node := range actions {
			nodes = append(nodes, explainedNode{node, datatable.CategoryAction, "control"})
		}
	}
	for _, n := range nodes {
		if err := n.explain(w, resolver, themes, table); err != nil {
			return err
		}
	}
	return w.Flush()
}

type explainedNode struct {
	node     *view.View
	category string
	suffix   string
}

func (n explainedNode) explain(w io.Writer, resolver *theme.Resolver, themes []string, table *view.View) error {
	ctx := theme.BuildContext(n.node.Vars, nil, false)
	ctx[theme.KeyDataTable] = table
	prefixes := n.node.BlockPrefixes()

	decorated, err := resolver.Decorate(themes, ctx, prefixes, n.category, n.suffix)
	if err != nil {
		return err
	}
	block := decorated.String(theme.KeyBlockName)
	winner := decorated.String(theme.KeyBlockTheme)
	if winner == "" {
		if winner, err = resolver.FindBlock(themes, block, decorated); err != nil {
			return err
		}
	}

	candidates := theme.BlockNames(n.category, n.suffix, prefixes)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		n.node.Vars.String(view.VarName), n.suffix, block, orDash(winner), strings.Join(candidates, ", "))
	return nil
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
