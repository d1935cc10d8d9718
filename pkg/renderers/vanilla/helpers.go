package vanilla

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-datatable/pkg/datatable"
	"github.com/goliatone/go-datatable/pkg/render/template"
	"github.com/goliatone/go-datatable/pkg/renderers/vanilla/formatters"
	"github.com/goliatone/go-datatable/pkg/theme"
	"github.com/goliatone/go-datatable/pkg/view"
)

// helperFunctions are the renderer specific template helpers layered on top
// of the extension's fragment functions.
func helperFunctions(registry *formatters.Registry) []template.Function {
	return []template.Function{
		{
			Name: "data_table_attrs",
			Safe: true,
			Call: func(_ theme.Context, args ...any) (any, error) {
				if len(args) == 0 {
					return "", nil
				}
				return renderAttrs(args[0]), nil
			},
		},
		{
			Name: "data_table_parameter",
			Call: func(_ theme.Context, args ...any) (any, error) {
				if len(args) == 0 {
					return "", fmt.Errorf("vanilla: data_table_parameter needs a table name")
				}
				parts := make([]string, 0, len(args)-1)
				for _, arg := range args[1:] {
					parts = append(parts, fmt.Sprint(arg))
				}
				return datatable.ParameterName(fmt.Sprint(args[0]), parts...), nil
			},
		},
		{
			Name: "data_table_format",
			Call: func(_ theme.Context, args ...any) (any, error) {
				node, ok := firstArg(args).(*view.View)
				if !ok || node == nil {
					return "", fmt.Errorf("vanilla: data_table_format expects a column value view")
				}
				return registry.Format(node.BlockPrefixes(), node.Vars["value"], node.Vars)
			},
		},
	}
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// renderAttrs renders an attr map as a leading-space attribute list, sorted
// for stable output. true renders a bare attribute; false and nil are
// skipped.
func renderAttrs(value any) string {
	attrs := toAttrMap(value)
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if name == "" || strings.ContainsAny(name, " \"'<>=/") {
			continue
		}
		switch typed := attrs[key].(type) {
		case nil:
			continue
		case bool:
			if typed {
				b.WriteString(" " + html.EscapeString(name))
			}
		default:
			fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(name), html.EscapeString(fmt.Sprint(typed)))
		}
	}
	return b.String()
}

func toAttrMap(value any) map[string]any {
	switch typed := value.(type) {
	case map[string]any:
		return typed
	case view.Vars:
		return typed
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = val
		}
		return out
	default:
		return nil
	}
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.Join(strings.Fields(value), " ")
}
