package datatable

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Sort directions.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Column describes one table column.
type Column struct {
	Name string
	// Type names a registered column type; empty means "text".
	Type  string
	Label string
	// Accessor is the dotted key used to read the cell from a row. Defaults
	// to Name.
	Accessor string
	Sortable bool
	// Hidden columns are listed by the personalization form but skipped in
	// header and value rows.
	Hidden bool
	// Priority orders visible columns; lower first, ties keep declaration
	// order.
	Priority int
	Attr     map[string]any
	// Options are copied verbatim into both header and value view vars.
	Options map[string]any
}

// Action describes a table level action rendered in the action bar.
type Action struct {
	Name    string
	Type    string
	Label   string
	Href    string
	Confirm string
	Attr    map[string]any
}

// Filter describes a filter field and its submitted data.
type Filter struct {
	Name      string
	Label     string
	Operators []Operator
	Data      FilterData
}

// SortField is one active sort criterion.
type SortField struct {
	Column    string
	Direction string
}

// Pagination records the page window of the current snapshot.
type Pagination struct {
	Page    int
	PerPage int
	Total   int
}

// Features toggles the optional table features.
type Features struct {
	Sorting         bool
	Filtration      bool
	Pagination      bool
	Personalization bool
	Exporting       bool
}

// DefaultFeatures enables everything.
func DefaultFeatures() Features {
	return Features{
		Sorting:         true,
		Filtration:      true,
		Pagination:      true,
		Personalization: true,
		Exporting:       true,
	}
}

// Table is a snapshot of a data table after its query ran.
type Table struct {
	Name          string
	Title         string
	Columns       []Column
	Actions       []Action
	Filters       []Filter
	Rows          []map[string]any
	Sorting       []SortField
	Pagination    Pagination
	Features      Features
	ExportFormats []string
	// Themes seeds the theme stack of the root view.
	Themes []string
	// Query is the current request query; URL generators keep unrelated
	// parameters from it.
	Query url.Values
	Attr  map[string]any
	// Types resolves column and action block prefixes. Defaults to
	// DefaultTypes().
	Types *TypeRegistry
}

// Validate checks the structural invariants CreateView relies on.
func (t *Table) Validate() error {
	if t == nil {
		return errors.New("datatable: table is nil")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("datatable: table name is required")
	}
	types := t.types()

	seen := make(map[string]struct{}, len(t.Columns))
	for _, col := range t.Columns {
		name := strings.TrimSpace(col.Name)
		if name == "" {
			return fmt.Errorf("datatable: table %q has a column without name", t.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("datatable: table %q has duplicate column %q", t.Name, name)
		}
		seen[name] = struct{}{}
		if !types.Has(CategoryColumn, columnType(col)) {
			return fmt.Errorf("datatable: column %q uses unknown type %q", name, columnType(col))
		}
	}

	for _, action := range t.Actions {
		if strings.TrimSpace(action.Name) == "" {
			return fmt.Errorf("datatable: table %q has an action without name", t.Name)
		}
		if !types.Has(CategoryAction, actionType(action)) {
			return fmt.Errorf("datatable: action %q uses unknown type %q", action.Name, actionType(action))
		}
	}

	for _, sortField := range t.Sorting {
		if _, ok := seen[sortField.Column]; !ok {
			return fmt.Errorf("datatable: sorting references unknown column %q", sortField.Column)
		}
		switch sortField.Direction {
		case DirectionAsc, DirectionDesc:
		default:
			return fmt.Errorf("datatable: invalid sort direction %q for column %q", sortField.Direction, sortField.Column)
		}
	}
	return nil
}

// HasActiveFilters reports whether any filter carries a value.
func (t *Table) HasActiveFilters() bool {
	for _, filter := range t.Filters {
		if filter.Data.HasValue() {
			return true
		}
	}
	return false
}

func (t *Table) types() *TypeRegistry {
	if t.Types != nil {
		return t.Types
	}
	return DefaultTypes()
}

func columnType(col Column) string {
	if col.Type == "" {
		return ColumnTypeText
	}
	return col.Type
}

func actionType(action Action) string {
	if action.Type == "" {
		return ActionTypeLink
	}
	return action.Type
}
