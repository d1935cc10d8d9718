package datatable

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ApplyQuery reads the table state encoded by QueryURLGenerator back from a
// request query: sort directions, the page and filter values. Unknown
// columns, unsortable columns and malformed values are ignored so stale links
// still render. The query is kept on the table for link generation.
func (t *Table) ApplyQuery(query url.Values) {
	if t == nil {
		return
	}
	t.Query = cloneValues(query)

	columns := make(map[string]Column, len(t.Columns))
	for _, col := range t.Columns {
		columns[col.Name] = col
	}

	sortPrefix := ParameterName(t.Name, "sort") + "["
	var sorting []SortField
	for key, values := range query {
		if !strings.HasPrefix(key, sortPrefix) || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, sortPrefix), "]")
		col, ok := columns[name]
		if !ok || !col.Sortable {
			continue
		}
		switch direction := strings.ToLower(values[0]); direction {
		case DirectionAsc, DirectionDesc:
			sorting = append(sorting, SortField{Column: name, Direction: direction})
		}
	}
	if len(sorting) > 0 {
		sort.Slice(sorting, func(i, j int) bool { return sorting[i].Column < sorting[j].Column })
		t.Sorting = sorting
	}

	if raw := query.Get(ParameterName(t.Name, "page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			t.Pagination.Page = page
		}
	}

	for idx := range t.Filters {
		filter := &t.Filters[idx]
		value := query.Get(ParameterName(t.Name, "filter", filter.Name, "value"))
		if value != "" {
			filter.Data.Value = value
		}
		raw := query.Get(ParameterName(t.Name, "filter", filter.Name, "operator"))
		if raw == "" {
			continue
		}
		if op, err := ParseOperator(raw); err == nil && allowsOperator(*filter, op) {
			filter.Data.Operator = op
		}
	}
}

func allowsOperator(filter Filter, op Operator) bool {
	if len(filter.Operators) == 0 {
		return true
	}
	for _, allowed := range filter.Operators {
		if allowed == op {
			return true
		}
	}
	return false
}
