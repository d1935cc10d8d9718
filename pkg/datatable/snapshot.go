package datatable

import (
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-datatable/pkg/view"
)

// Form names exposed as view vars on the table root.
const (
	FormFiltration      = "filtration"
	FormPersonalization = "personalization"
	FormExport          = "export"
)

// pageWindow is how many page links are shown on each side of the current
// page.
const pageWindow = 2

// CreateView builds the rendering-ready view tree for the table. The tree
// is built once per request; only themes and attr are expected to change
// afterwards.
func (t *Table) CreateView() (*view.View, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	root := view.New(view.KindDataTable, nil)
	root.Vars = view.Vars{
		view.VarName:              t.Name,
		"title":                   t.Title,
		view.VarThemes:            append([]string{}, t.Themes...),
		view.VarAttr:              cloneMap(t.Attr),
		"sorting_enabled":         t.Features.Sorting,
		"filtration_enabled":      t.Features.Filtration,
		"pagination_enabled":      t.Features.Pagination,
		"personalization_enabled": t.Features.Personalization,
		"exporting_enabled":       t.Features.Exporting,
		"has_active_filters":      t.HasActiveFilters(),
		"url_query":               cloneValues(t.Query),
	}

	columns := t.visibleColumns()
	header, err := t.buildHeaderRow(root, columns)
	if err != nil {
		return nil, err
	}
	root.Vars["header_row"] = header
	root.Vars["column_count"] = len(columns)

	valueRows := make([]*view.View, 0, len(t.Rows))
	for idx, row := range t.Rows {
		valueRow, err := t.buildValueRow(root, columns, idx, row)
		if err != nil {
			return nil, err
		}
		valueRows = append(valueRows, valueRow)
	}
	root.Vars["value_rows"] = valueRows

	actions := make([]*view.View, 0, len(t.Actions))
	for _, action := range t.Actions {
		actionView, err := t.buildAction(root, action)
		if err != nil {
			return nil, err
		}
		actions = append(actions, actionView)
	}
	root.Vars["actions"] = actions

	if t.Features.Pagination {
		root.Vars[view.VarPagination] = t.buildPagination(root)
	}

	filters := make([]*view.View, 0, len(t.Filters))
	for _, filter := range t.Filters {
		filters = append(filters, buildFilter(root, filter))
	}
	root.Vars["filters"] = filters

	if t.Features.Filtration && len(filters) > 0 {
		form := newForm(root, FormFiltration)
		form.Vars["fields"] = filters
		root.Vars["filtration_form"] = form
	}
	if t.Features.Personalization {
		form := newForm(root, FormPersonalization)
		form.Vars["columns"] = t.personalizationColumns()
		root.Vars["personalization_form"] = form
	}
	if t.Features.Exporting && len(t.ExportFormats) > 0 {
		form := newForm(root, FormExport)
		form.Vars["formats"] = append([]string(nil), t.ExportFormats...)
		form.Vars["default_format"] = t.ExportFormats[0]
		root.Vars["export_form"] = form
	}

	return root, nil
}

func (t *Table) visibleColumns() []Column {
	columns := make([]Column, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.Hidden {
			continue
		}
		columns = append(columns, col)
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Priority < columns[j].Priority
	})
	return columns
}

func (t *Table) buildHeaderRow(root *view.View, columns []Column) (*view.View, error) {
	row := view.New(view.KindHeaderRow, root)
	row.Vars[view.VarAttr] = map[string]any{}

	headers := make([]*view.View, 0, len(columns))
	for idx, col := range columns {
		prefixes, err := t.types().BlockPrefixes(CategoryColumn, columnType(col))
		if err != nil {
			return nil, err
		}
		direction := t.sortDirection(col.Name)

		header := view.New(view.KindColumnHeader, row)
		copyOptions(header.Vars, col.Options)
		header.Vars[view.VarName] = col.Name
		header.Vars["label"] = columnLabel(col)
		header.Vars["type"] = columnType(col)
		header.Vars["index"] = idx
		header.Vars["sortable"] = col.Sortable && t.Features.Sorting
		header.Vars["sorted"] = direction != ""
		header.Vars["sort_direction"] = direction
		header.Vars[view.VarBlockPrefixes] = prefixes
		header.Vars[view.VarAttr] = cloneMap(col.Attr)
		headers = append(headers, header)
	}
	row.Vars["headers"] = headers
	return row, nil
}

func (t *Table) buildValueRow(root *view.View, columns []Column, index int, data map[string]any) (*view.View, error) {
	row := view.New(view.KindValueRow, root)
	row.Vars["index"] = index
	row.Vars["data"] = data
	row.Vars[view.VarAttr] = map[string]any{}

	values := make([]*view.View, 0, len(columns))
	for _, col := range columns {
		prefixes, err := t.types().BlockPrefixes(CategoryColumn, columnType(col))
		if err != nil {
			return nil, err
		}
		accessor := col.Accessor
		if accessor == "" {
			accessor = col.Name
		}

		value := view.New(view.KindColumnValue, row)
		copyOptions(value.Vars, col.Options)
		value.Vars[view.VarName] = col.Name
		value.Vars["type"] = columnType(col)
		value.Vars["value"] = lookup(data, accessor)
		value.Vars["row_index"] = index
		value.Vars["html"] = columnType(col) == ColumnTypeHTML || col.Options["html"] == true
		value.Vars[view.VarBlockPrefixes] = prefixes
		value.Vars[view.VarAttr] = cloneMap(col.Attr)
		values = append(values, value)
	}
	row.Vars["values"] = values
	return row, nil
}

func (t *Table) buildAction(root *view.View, action Action) (*view.View, error) {
	prefixes, err := t.types().BlockPrefixes(CategoryAction, actionType(action))
	if err != nil {
		return nil, err
	}
	label := action.Label
	if label == "" {
		label = humanize(action.Name)
	}

	node := view.New(view.KindAction, root)
	node.Vars[view.VarName] = action.Name
	node.Vars["type"] = actionType(action)
	node.Vars["label"] = label
	node.Vars["href"] = action.Href
	node.Vars["confirm"] = action.Confirm
	node.Vars[view.VarBlockPrefixes] = prefixes
	node.Vars[view.VarAttr] = cloneMap(action.Attr)
	return node, nil
}

func (t *Table) buildPagination(root *view.View) *view.View {
	p := t.Pagination
	perPage := p.PerPage
	pageCount := 1
	if perPage > 0 && p.Total > 0 {
		pageCount = (p.Total + perPage - 1) / perPage
	}
	current := p.Page
	if current < 1 {
		current = 1
	}
	if current > pageCount {
		current = pageCount
	}

	first := max(1, current-pageWindow)
	last := min(pageCount, current+pageWindow)
	pages := make([]int, 0, last-first+1)
	for page := first; page <= last; page++ {
		pages = append(pages, page)
	}

	node := view.New(view.KindPagination, root)
	node.Vars["current_page"] = current
	node.Vars["page_count"] = pageCount
	node.Vars["per_page"] = perPage
	node.Vars["total"] = p.Total
	node.Vars["has_previous_page"] = current > 1
	node.Vars["has_next_page"] = current < pageCount
	node.Vars["previous_page"] = max(1, current-1)
	node.Vars["next_page"] = min(pageCount, current+1)
	node.Vars["first_visible_page"] = first
	node.Vars["last_visible_page"] = last
	node.Vars["pages"] = pages
	node.Vars[view.VarAttr] = map[string]any{}
	return node
}

func buildFilter(root *view.View, filter Filter) *view.View {
	label := filter.Label
	if label == "" {
		label = humanize(filter.Name)
	}
	operators := make([]string, 0, len(filter.Operators))
	for _, op := range filter.Operators {
		operators = append(operators, string(op))
	}

	node := view.New(view.KindFilter, root)
	node.Vars[view.VarName] = filter.Name
	node.Vars["label"] = label
	node.Vars["value"] = filter.Data.Value
	node.Vars["operator"] = string(filter.Data.Operator)
	node.Vars["operators"] = operators
	node.Vars["active"] = filter.Data.HasValue()
	node.Vars["data"] = filter.Data
	return node
}

func newForm(root *view.View, name string) *view.View {
	form := view.New(view.KindForm, root)
	form.Vars[view.VarName] = name
	form.Vars["data_table_view"] = root
	form.Vars[view.VarAttr] = map[string]any{}
	return form
}

func (t *Table) personalizationColumns() []map[string]any {
	out := make([]map[string]any, 0, len(t.Columns))
	for _, col := range t.Columns {
		out = append(out, map[string]any{
			"name":     col.Name,
			"label":    columnLabel(col),
			"visible":  !col.Hidden,
			"priority": col.Priority,
		})
	}
	return out
}

func (t *Table) sortDirection(column string) string {
	for _, field := range t.Sorting {
		if field.Column == column {
			return field.Direction
		}
	}
	return ""
}

func columnLabel(col Column) string {
	if col.Label != "" {
		return col.Label
	}
	return humanize(col.Name)
}

// humanize turns snake_case or dotted names into a sentence case label.
func humanize(name string) string {
	name = strings.NewReplacer("_", " ", ".", " ", "-", " ").Replace(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// lookup reads a dotted path from nested maps.
func lookup(data map[string]any, path string) any {
	if data == nil {
		return nil
	}
	if value, ok := data[path]; ok {
		return value
	}
	var current any = data
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[segment]
	}
	return current
}

func copyOptions(dst view.Vars, options map[string]any) {
	for key, value := range options {
		dst[key] = value
	}
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cloneValues(in url.Values) url.Values {
	out := make(url.Values, len(in))
	for key, values := range in {
		out[key] = append([]string(nil), values...)
	}
	return out
}
