package render

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-datatable/pkg/datatable"
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

// Block names rendered by the fragment helpers.
const (
	BlockDataTable           = "data_table"
	BlockTable               = "data_table_table"
	BlockActionBar           = "data_table_action_bar"
	BlockHeaderRow           = "data_table_header_row"
	BlockValueRow            = "data_table_value_row"
	BlockColumnLabel         = "data_table_column_label"
	BlockColumnHeader        = "data_table_column_header"
	BlockColumnValue         = "data_table_column_value"
	BlockAction              = "data_table_action"
	BlockPagination          = "data_table_pagination"
	BlockFiltersForm         = "data_table_filters_form"
	BlockPersonalizationForm = "data_table_personalization_form"
	BlockExportForm          = "data_table_export_form"
)

// KeyView holds the view a fragment was rendered for, so blocks can pass it
// on to URL helpers.
const KeyView = "view"

// KeyThemeStyle holds the CSS custom properties of the selected theme tokens,
// set on the table root by Prepare.
const KeyThemeStyle = "theme_style"

const cssVariablePrefix = "--datatable-"

const (
	categoryColumn = datatable.CategoryColumn
	categoryAction = datatable.CategoryAction
)

// Option configures an Extension.
type Option func(*Extension)

// WithLogger attaches a logger for render diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithURLGenerator installs the query string generators for sorting, filter
// clearing and pagination links.
func WithURLGenerator(gen datatable.QueryURLGenerator) Option {
	return func(e *Extension) {
		e.sortURL = gen.ColumnSort()
		e.filterClearURL = gen.FilterClear()
		e.paginationURL = gen.Pagination()
	}
}

// WithColumnSortURLGenerator overrides the sort link generator.
func WithColumnSortURLGenerator(gen datatable.ColumnSortURLGenerator) Option {
	return func(e *Extension) {
		if gen != nil {
			e.sortURL = gen
		}
	}
}

// WithFilterClearURLGenerator overrides the filter clear link generator.
func WithFilterClearURLGenerator(gen datatable.FilterClearURLGenerator) Option {
	return func(e *Extension) {
		if gen != nil {
			e.filterClearURL = gen
		}
	}
}

// WithPaginationURLGenerator overrides the page link generator.
func WithPaginationURLGenerator(gen datatable.PaginationURLGenerator) Option {
	return func(e *Extension) {
		if gen != nil {
			e.paginationURL = gen
		}
	}
}

// WithThemeSelector appends the stack selected from a go-theme registry to
// every table passed through Prepare. key names the manifest template that
// holds the data table theme; empty means theme.DefaultManifestKey.
func WithThemeSelector(selector gotheme.ThemeSelector, name, variant, key string) Option {
	return func(e *Extension) {
		e.selector = selector
		e.selection = selection{name: name, variant: variant, key: key}
	}
}

type selection struct {
	name    string
	variant string
	key     string
}

// Extension is the fragment rendering surface used by themes: one helper
// per view kind plus raw block access and URL helpers.
type Extension struct {
	resolver *theme.Resolver
	logger   zerolog.Logger

	sortURL        datatable.ColumnSortURLGenerator
	filterClearURL datatable.FilterClearURLGenerator
	paginationURL  datatable.PaginationURLGenerator

	selector  gotheme.ThemeSelector
	selection selection
}

// New constructs an Extension around resolver.
func New(resolver *theme.Resolver, options ...Option) (*Extension, error) {
	if resolver == nil {
		return nil, errors.New("render: resolver is required")
	}
	defaults := datatable.QueryURLGenerator{}
	e := &Extension{
		resolver:       resolver,
		logger:         zerolog.Nop(),
		sortURL:        defaults.ColumnSort(),
		filterClearURL: defaults.FilterClear(),
		paginationURL:  defaults.Pagination(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e, nil
}

// Resolver exposes the wrapped resolver.
func (e *Extension) Resolver() *theme.Resolver {
	return e.resolver
}

// Prepare applies the configured theme selection to table: the selected
// stack goes on top of the current one unless it already ends with it, and
// the selection tokens become KeyThemeStyle on the root.
func (e *Extension) Prepare(table *view.View) error {
	if e.selector == nil || table == nil {
		return nil
	}
	selection, stack, err := theme.SelectStack(e.selector, e.selection.name, e.selection.variant, e.selection.key)
	if err != nil {
		return fmt.Errorf("render: select theme: %w", err)
	}
	table = table.DataTable()
	if !endsWith(theme.Themes(table), stack) {
		theme.SetThemes(table, stack, false)
	}
	if selection != nil {
		if style := inlineStyle(selection.CSSVariables(cssVariablePrefix)); style != "" {
			if table.Vars == nil {
				table.Vars = view.Vars{}
			}
			table.Vars[KeyThemeStyle] = style
		}
	}
	e.logger.Debug().Strs("themes", theme.Themes(table)).Msg("theme selection applied")
	return nil
}

func endsWith(stack, tail []string) bool {
	if len(tail) > len(stack) {
		return false
	}
	return slices.Equal(stack[len(stack)-len(tail):], tail)
}

// inlineStyle renders vars as a style attribute value, sorted by name.
func inlineStyle(vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", name, vars[name])
	}
	return b.String()
}

// RenderDataTable renders the whole table.
func (e *Extension) RenderDataTable(table *view.View, vars map[string]any) (string, error) {
	return e.renderFragment(table, vars, BlockDataTable)
}

// RenderTable renders the table element.
func (e *Extension) RenderTable(table *view.View, vars map[string]any) (string, error) {
	return e.renderFragment(table, vars, BlockTable)
}

// RenderActionBar renders the toolbar holding actions, filters and forms.
func (e *Extension) RenderActionBar(table *view.View, vars map[string]any) (string, error) {
	return e.renderFragment(table, vars, BlockActionBar)
}

// RenderHeaderRow renders the header row.
func (e *Extension) RenderHeaderRow(row *view.View, vars map[string]any) (string, error) {
	return e.renderFragment(row, vars, BlockHeaderRow)
}

// RenderValueRow renders one data row.
func (e *Extension) RenderValueRow(row *view.View, vars map[string]any) (string, error) {
	return e.renderFragment(row, vars, BlockValueRow)
}

// RenderColumnLabel renders the label of a column header.
func (e *Extension) RenderColumnLabel(header *view.View, vars map[string]any) (string, error) {
	return e.renderFragment(header, vars, BlockColumnLabel)
}

// RenderColumnHeader renders a column header through its type chain.
func (e *Extension) RenderColumnHeader(header *view.View, vars map[string]any) (string, error) {
	return e.renderDecorated(header, vars, BlockColumnHeader, categoryColumn, "header")
}

// RenderColumnValue renders a cell through its column type chain.
func (e *Extension) RenderColumnValue(value *view.View, vars map[string]any) (string, error) {
	return e.renderDecorated(value, vars, BlockColumnValue, categoryColumn, "value")
}

// RenderAction renders an action through its action type chain.
func (e *Extension) RenderAction(action *view.View, vars map[string]any) (string, error) {
	return e.renderDecorated(action, vars, BlockAction, categoryAction, "control")
}

// RenderPagination renders pagination. A table view is replaced by its
// pagination child.
func (e *Extension) RenderPagination(node *view.View, vars map[string]any) (string, error) {
	if node != nil && node.Kind == view.KindDataTable {
		child, ok := node.Vars[view.VarPagination].(*view.View)
		if !ok || child == nil {
			return "", fmt.Errorf("render: data table %q has no pagination", node.Vars.String(view.VarName))
		}
		node = child
	}
	return e.renderFragment(node, vars, BlockPagination)
}

// RenderFiltersForm renders the filtration form.
func (e *Extension) RenderFiltersForm(form *view.View, vars map[string]any) (string, error) {
	return e.renderForm(form, vars, BlockFiltersForm)
}

// RenderPersonalizationForm renders the column personalization form.
func (e *Extension) RenderPersonalizationForm(form *view.View, vars map[string]any) (string, error) {
	return e.renderForm(form, vars, BlockPersonalizationForm)
}

// RenderExportForm renders the export form.
func (e *Extension) RenderExportForm(form *view.View, vars map[string]any) (string, error) {
	return e.renderForm(form, vars, BlockExportForm)
}

// RenderThemeBlock renders block against the stack of table. With resetAttr
// a non-empty attr entry in ctx is cleared first.
func (e *Extension) RenderThemeBlock(table *view.View, block string, ctx theme.Context, resetAttr bool) (string, error) {
	if table == nil {
		return "", errors.New("render: data table view is required")
	}
	ctx = ctx.Clone()
	if resetAttr {
		theme.ResetAttr(ctx)
	}
	if _, ok := ctx[theme.KeyDataTable]; !ok {
		ctx[theme.KeyDataTable] = table.DataTable()
	}
	return e.resolver.RenderBlock(theme.Themes(table), block, ctx)
}

// RenderResolvedBlock renders the block a decorated context points at,
// using the stack of the context's data table.
func (e *Extension) RenderResolvedBlock(ctx theme.Context) (string, error) {
	table, ok := ctx[theme.KeyDataTable].(*view.View)
	if !ok || table == nil {
		return "", fmt.Errorf("render: context has no %s", theme.KeyDataTable)
	}
	return e.resolver.RenderDecorated(theme.Themes(table), ctx)
}

// GenerateColumnSortURL returns the link toggling sort on headers.
func (e *Extension) GenerateColumnSortURL(table *view.View, headers ...*view.View) string {
	return e.sortURL.Generate(table, headers...)
}

// GenerateFilterClearURL returns the link clearing filters.
func (e *Extension) GenerateFilterClearURL(table *view.View, filters ...*view.View) string {
	return e.filterClearURL.Generate(table, filters...)
}

// GeneratePaginationURL returns the link to page.
func (e *Extension) GeneratePaginationURL(table *view.View, page int) string {
	return e.paginationURL.Generate(table, page)
}

func (e *Extension) renderFragment(node *view.View, vars map[string]any, block string) (string, error) {
	table, err := e.decoratedDataTable(node, vars)
	if err != nil {
		return "", err
	}
	ctx := theme.BuildContext(node.Vars, vars, false)
	ctx[theme.KeyDataTable] = table
	ctx[KeyView] = node
	return e.RenderThemeBlock(table, block, ctx, false)
}

func (e *Extension) renderDecorated(node *view.View, vars map[string]any, block, category, suffix string) (string, error) {
	table, err := e.decoratedDataTable(node, vars)
	if err != nil {
		return "", err
	}
	ctx := theme.BuildContext(node.Vars, vars, false)
	ctx[theme.KeyDataTable] = table
	ctx[KeyView] = node
	ctx, err = e.resolver.Decorate(theme.Themes(table), ctx, node.BlockPrefixes(), category, suffix)
	if err != nil {
		return "", err
	}
	return e.RenderThemeBlock(table, block, ctx, false)
}

func (e *Extension) renderForm(form *view.View, vars map[string]any, block string) (string, error) {
	if form == nil {
		return "", errors.New("render: form view is required")
	}
	node := form
	if table, ok := form.Vars["data_table_view"].(*view.View); ok && table != nil {
		node = table
	}
	table, err := e.decoratedDataTable(node, vars)
	if err != nil {
		return "", err
	}
	ctx := theme.Context{"form": form, theme.KeyDataTable: table}
	return e.RenderThemeBlock(table, block, ctx, false)
}

// decoratedDataTable returns the table root of node after applying a themes
// override from vars.
func (e *Extension) decoratedDataTable(node *view.View, vars map[string]any) (*view.View, error) {
	if node == nil {
		return nil, errors.New("render: view is required")
	}
	table := node.DataTable()
	overridden, err := theme.ApplyOverride(table, vars)
	if err != nil {
		return nil, err
	}
	if overridden {
		e.logger.Debug().Strs("themes", theme.Themes(table)).Msg("themes overridden")
	}
	return table, nil
}
