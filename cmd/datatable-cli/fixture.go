package main

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datatable/pkg/config"
	"github.com/goliatone/go-datatable/pkg/datatable"
)

// tableFixture is the on-disk table snapshot. JSON documents decode too,
// being valid YAML.
type tableFixture struct {
	Name          string           `yaml:"name"`
	Title         string           `yaml:"title"`
	Columns       []columnFixture  `yaml:"columns"`
	Actions       []actionFixture  `yaml:"actions"`
	Filters       []filterFixture  `yaml:"filters"`
	Rows          []map[string]any `yaml:"rows"`
	Sorting       []sortFixture    `yaml:"sorting"`
	Pagination    pageFixture      `yaml:"pagination"`
	Features      *config.Features `yaml:"features"`
	ExportFormats []string         `yaml:"export_formats"`
	Themes        []string         `yaml:"themes"`
	Query         string           `yaml:"query"`
	Attr          map[string]any   `yaml:"attr"`
	Types         []typeFixture    `yaml:"types"`
}

type columnFixture struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Label    string         `yaml:"label"`
	Accessor string         `yaml:"accessor"`
	Sortable bool           `yaml:"sortable"`
	Hidden   bool           `yaml:"hidden"`
	Priority int            `yaml:"priority"`
	Attr     map[string]any `yaml:"attr"`
	Options  map[string]any `yaml:"options"`
}

type actionFixture struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type"`
	Label   string         `yaml:"label"`
	Href    string         `yaml:"href"`
	Confirm string         `yaml:"confirm"`
	Attr    map[string]any `yaml:"attr"`
}

type filterFixture struct {
	Name      string   `yaml:"name"`
	Label     string   `yaml:"label"`
	Operators []string `yaml:"operators"`
	Value     any      `yaml:"value"`
	Operator  string   `yaml:"operator"`
}

type sortFixture struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction"`
}

type pageFixture struct {
	Page    int `yaml:"page"`
	PerPage int `yaml:"per_page"`
	Total   int `yaml:"total"`
}

type typeFixture struct {
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent"`
}

// loadTable reads a fixture and fills its unset settings from cfg.
func loadTable(path string, cfg *config.Config) (*datatable.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var fixture tableFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	table, err := fixture.table()
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	cfg.Apply(table)
	return table, nil
}

func (f tableFixture) table() (*datatable.Table, error) {
	table := &datatable.Table{
		Name:          f.Name,
		Title:         f.Title,
		Rows:          f.Rows,
		Pagination:    datatable.Pagination(f.Pagination),
		ExportFormats: f.ExportFormats,
		Themes:        f.Themes,
		Attr:          f.Attr,
	}
	if f.Features != nil {
		table.Features = f.Features.FeatureSet()
	}

	if len(f.Types) > 0 {
		types := datatable.NewTypeRegistry()
		for _, t := range f.Types {
			if err := types.Register(t.Category, t.Name, t.Parent); err != nil {
				return nil, err
			}
		}
		table.Types = types
	}

	if f.Query != "" {
		query, err := url.ParseQuery(f.Query)
		if err != nil {
			return nil, fmt.Errorf("parse query: %w", err)
		}
		table.Query = query
	}

	for _, col := range f.Columns {
		table.Columns = append(table.Columns, datatable.Column(col))
	}
	for _, action := range f.Actions {
		table.Actions = append(table.Actions, datatable.Action(action))
	}
	for _, sort := range f.Sorting {
		table.Sorting = append(table.Sorting, datatable.SortField(sort))
	}
	for _, filter := range f.Filters {
		converted, err := filter.filter()
		if err != nil {
			return nil, err
		}
		table.Filters = append(table.Filters, converted)
	}
	return table, nil
}

func (f filterFixture) filter() (datatable.Filter, error) {
	out := datatable.Filter{Name: f.Name, Label: f.Label}
	for _, raw := range f.Operators {
		op, err := datatable.ParseOperator(raw)
		if err != nil {
			return datatable.Filter{}, err
		}
		out.Operators = append(out.Operators, op)
	}
	raw := map[string]any{"operator": f.Operator}
	if f.Value != nil {
		raw["value"] = f.Value
	}
	data, err := datatable.FilterDataFromMap(raw)
	if err != nil {
		return datatable.Filter{}, err
	}
	out.Data = data
	return out, nil
}
