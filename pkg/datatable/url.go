package datatable

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/goliatone/go-datatable/pkg/view"
)

// ColumnSortURLGenerator builds the link that toggles sorting on headers.
type ColumnSortURLGenerator interface {
	Generate(table *view.View, headers ...*view.View) string
}

// FilterClearURLGenerator builds the link that clears the given filters.
type FilterClearURLGenerator interface {
	Generate(table *view.View, filters ...*view.View) string
}

// PaginationURLGenerator builds the link to a page.
type PaginationURLGenerator interface {
	Generate(table *view.View, page int) string
}

// ParameterName returns the query parameter used by a table for a feature,
// e.g. "products[page]" or "products[sort][name]".
func ParameterName(table string, parts ...string) string {
	name := table
	for _, part := range parts {
		name += "[" + part + "]"
	}
	return name
}

// QueryURLGenerator implements all three generators on top of the current
// request query stored on the table view. Unrelated parameters are kept;
// sorting and filter changes reset the page.
type QueryURLGenerator struct {
	// Path is prepended to the generated query string.
	Path string
}

var (
	_ ColumnSortURLGenerator  = sortURLGenerator{}
	_ FilterClearURLGenerator = filterClearURLGenerator{}
	_ PaginationURLGenerator  = paginationURLGenerator{}
)

// ColumnSort returns the sort URL generator.
func (g QueryURLGenerator) ColumnSort() ColumnSortURLGenerator { return sortURLGenerator(g) }

// FilterClear returns the filter clear URL generator.
func (g QueryURLGenerator) FilterClear() FilterClearURLGenerator { return filterClearURLGenerator(g) }

// Pagination returns the pagination URL generator.
func (g QueryURLGenerator) Pagination() PaginationURLGenerator { return paginationURLGenerator(g) }

type sortURLGenerator QueryURLGenerator

func (g sortURLGenerator) Generate(table *view.View, headers ...*view.View) string {
	table = table.DataTable()
	if table == nil {
		return build(g.Path, nil)
	}
	name := tableName(table)
	query := currentQuery(table)

	for _, header := range headers {
		if header == nil {
			continue
		}
		column := header.Vars.String(view.VarName)
		next := DirectionAsc
		if header.Vars.String("sort_direction") == DirectionAsc {
			next = DirectionDesc
		}
		query.Set(ParameterName(name, "sort", column), next)
	}
	query.Del(ParameterName(name, "page"))
	return build(g.Path, query)
}

type filterClearURLGenerator QueryURLGenerator

func (g filterClearURLGenerator) Generate(table *view.View, filters ...*view.View) string {
	table = table.DataTable()
	if table == nil {
		return build(g.Path, nil)
	}
	name := tableName(table)
	query := currentQuery(table)

	for _, filter := range filters {
		if filter == nil {
			continue
		}
		field := filter.Vars.String(view.VarName)
		query.Del(ParameterName(name, "filter", field, "value"))
		query.Del(ParameterName(name, "filter", field, "operator"))
	}
	query.Del(ParameterName(name, "page"))
	return build(g.Path, query)
}

type paginationURLGenerator QueryURLGenerator

func (g paginationURLGenerator) Generate(table *view.View, page int) string {
	table = table.DataTable()
	if table == nil {
		return build(g.Path, nil)
	}
	name := tableName(table)
	query := currentQuery(table)
	if page < 1 {
		page = 1
	}
	query.Set(ParameterName(name, "page"), strconv.Itoa(page))
	return build(g.Path, query)
}

func tableName(table *view.View) string {
	if table == nil {
		return ""
	}
	return table.Vars.String(view.VarName)
}

func currentQuery(table *view.View) url.Values {
	out := url.Values{}
	if table == nil {
		return out
	}
	if current, ok := table.Vars["url_query"].(url.Values); ok {
		for key, values := range current {
			out[key] = append([]string(nil), values...)
		}
	}
	return out
}

func build(path string, query url.Values) string {
	var encoded string
	if query != nil {
		encoded = query.Encode()
	}
	if encoded == "" {
		if path == "" {
			return "?"
		}
		return path
	}
	return fmt.Sprintf("%s?%s", path, encoded)
}
