package render

import (
	"fmt"

	"github.com/goliatone/go-datatable/pkg/render/template"
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

// Function is a template helper; see template.Function.
type Function = template.Function

type fragmentFunc func(node *view.View, vars map[string]any) (string, error)

// Functions returns the helpers themes call to render nested fragments and
// build links. Fragment helpers take a view and an optional vars map.
func (e *Extension) Functions() []Function {
	fragments := []struct {
		name string
		fn   fragmentFunc
	}{
		{"data_table", e.RenderDataTable},
		{"data_table_table", e.RenderTable},
		{"data_table_action_bar", e.RenderActionBar},
		{"data_table_header_row", e.RenderHeaderRow},
		{"data_table_value_row", e.RenderValueRow},
		{"data_table_column_label", e.RenderColumnLabel},
		{"data_table_column_header", e.RenderColumnHeader},
		{"data_table_column_value", e.RenderColumnValue},
		{"data_table_action", e.RenderAction},
		{"data_table_pagination", e.RenderPagination},
		{"data_table_filters_form", e.RenderFiltersForm},
		{"data_table_personalization_form", e.RenderPersonalizationForm},
		{"data_table_export_form", e.RenderExportForm},
	}

	out := make([]Function, 0, len(fragments)+5)
	for _, fragment := range fragments {
		out = append(out, fragmentFunction(fragment.name, fragment.fn))
	}

	out = append(out,
		Function{
			Name:         "data_table_theme_block",
			Safe:         true,
			NeedsContext: true,
			Call: func(ctx theme.Context, args ...any) (any, error) {
				table, err := viewArg("data_table_theme_block", args, 0)
				if err != nil {
					return nil, err
				}
				block, ok := argAt(args, 1).(string)
				if !ok || block == "" {
					return nil, fmt.Errorf("render: data_table_theme_block: block name must be a string")
				}
				resetAttr, _ := argAt(args, 2).(bool)
				return e.RenderThemeBlock(table, block, ctx, resetAttr)
			},
		},
		Function{
			Name:         "data_table_block",
			Safe:         true,
			NeedsContext: true,
			Call: func(ctx theme.Context, _ ...any) (any, error) {
				return e.RenderResolvedBlock(ctx)
			},
		},
		Function{
			Name: "data_table_filter_clear_url",
			Call: func(_ theme.Context, args ...any) (any, error) {
				table, err := viewArg("data_table_filter_clear_url", args, 0)
				if err != nil {
					return nil, err
				}
				return e.GenerateFilterClearURL(table, viewsFrom(args[1:])...), nil
			},
		},
		Function{
			Name: "data_table_column_sort_url",
			Call: func(_ theme.Context, args ...any) (any, error) {
				table, err := viewArg("data_table_column_sort_url", args, 0)
				if err != nil {
					return nil, err
				}
				return e.GenerateColumnSortURL(table, viewsFrom(args[1:])...), nil
			},
		},
		Function{
			Name: "data_table_pagination_url",
			Call: func(_ theme.Context, args ...any) (any, error) {
				table, err := viewArg("data_table_pagination_url", args, 0)
				if err != nil {
					return nil, err
				}
				page, err := intArg("data_table_pagination_url", args, 1)
				if err != nil {
					return nil, err
				}
				return e.GeneratePaginationURL(table, page), nil
			},
		},
	)
	return out
}

func fragmentFunction(name string, fn fragmentFunc) Function {
	return Function{
		Name: name,
		Safe: true,
		Call: func(_ theme.Context, args ...any) (any, error) {
			node, err := viewArg(name, args, 0)
			if err != nil {
				return nil, err
			}
			vars, err := varsArg(name, args, 1)
			if err != nil {
				return nil, err
			}
			return fn(node, vars)
		},
	}
}

func argAt(args []any, idx int) any {
	if idx >= len(args) {
		return nil
	}
	return args[idx]
}

func viewArg(name string, args []any, idx int) (*view.View, error) {
	node, ok := argAt(args, idx).(*view.View)
	if !ok || node == nil {
		return nil, fmt.Errorf("render: %s: argument %d must be a view, got %T", name, idx, argAt(args, idx))
	}
	return node, nil
}

func varsArg(name string, args []any, idx int) (map[string]any, error) {
	switch typed := argAt(args, idx).(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return typed, nil
	case view.Vars:
		return typed, nil
	case theme.Context:
		return typed, nil
	default:
		return nil, fmt.Errorf("render: %s: argument %d must be a map, got %T", name, idx, typed)
	}
}

func intArg(name string, args []any, idx int) (int, error) {
	switch typed := argAt(args, idx).(type) {
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	case float64:
		return int(typed), nil
	default:
		return 0, fmt.Errorf("render: %s: argument %d must be a number, got %T", name, idx, typed)
	}
}

func viewsFrom(args []any) []*view.View {
	var out []*view.View
	for _, arg := range args {
		switch typed := arg.(type) {
		case *view.View:
			out = append(out, typed)
		case []*view.View:
			out = append(out, typed...)
		}
	}
	return out
}
