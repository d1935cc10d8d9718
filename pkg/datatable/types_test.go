package datatable_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datatable/pkg/datatable"
)

func TestTypeRegistry_BlockPrefixes(t *testing.T) {
	reg := datatable.NewTypeRegistry()
	if err := reg.Register(datatable.CategoryAction, "custom", ""); err != nil {
		t.Fatalf("register custom: %v", err)
	}
	if err := reg.Register(datatable.CategoryAction, "same_parent", "same_parent"); err != nil {
		t.Fatalf("register self parent: %v", err)
	}
	if err := reg.Register(datatable.CategoryColumn, "price", datatable.ColumnTypeMoney); err != nil {
		t.Fatalf("register price: %v", err)
	}

	tests := []struct {
		category string
		name     string
		want     []string
	}{
		{datatable.CategoryAction, "custom", []string{"custom", "action"}},
		{datatable.CategoryAction, "same_parent", []string{"same_parent", "action"}},
		{datatable.CategoryAction, datatable.ActionTypeForm, []string{"form", "button", "link", "action"}},
		{datatable.CategoryColumn, "price", []string{"price", "money", "number", "text", "column"}},
		{datatable.CategoryColumn, "", []string{"column"}},
	}
	for _, tt := range tests {
		got, err := reg.BlockPrefixes(tt.category, tt.name)
		if err != nil {
			t.Fatalf("%s/%s: %v", tt.category, tt.name, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%s/%s prefixes mismatch (-want +got):\n%s", tt.category, tt.name, diff)
		}
	}
}

func TestTypeRegistry_Errors(t *testing.T) {
	reg := datatable.NewTypeRegistry()
	if err := reg.Register(datatable.CategoryColumn, "orphan", "missing"); err == nil {
		t.Fatalf("expected error for unknown parent")
	}
	if err := reg.Register("", "x", ""); err == nil {
		t.Fatalf("expected error for missing category")
	}
	if _, err := reg.BlockPrefixes(datatable.CategoryColumn, "nope"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if !reg.Has(datatable.CategoryAction, datatable.ActionTypeLink) || !reg.Has(datatable.CategoryColumn, datatable.ColumnTypeLink) {
		t.Fatalf("link must exist in both categories")
	}
}

func TestFilterData(t *testing.T) {
	data, err := datatable.FilterDataFromMap(map[string]any{"operator": "contains", "ignored": true})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if data.Operator != datatable.OperatorContains {
		t.Fatalf("operator mismatch: %q", data.Operator)
	}
	if data.HasValue() {
		t.Fatalf("empty default value must not count")
	}

	if _, err := datatable.FilterDataFromMap(map[string]any{"operator": "like"}); err == nil {
		t.Fatalf("expected unknown operator error")
	}
	if _, err := datatable.FilterDataFromMap(map[string]any{"operator": 3}); err == nil {
		t.Fatalf("expected operator type error")
	}

	cases := map[string]struct {
		value any
		want  bool
	}{
		"nil":        {nil, false},
		"empty":      {"", false},
		"empty list": {[]any{}, false},
		"zero":       {0, true},
		"text":       {"a", true},
		"list":       {[]string{"a"}, true},
	}
	for name, tc := range cases {
		if got := (datatable.FilterData{Value: tc.value}).HasValue(); got != tc.want {
			t.Fatalf("%s: want %v, got %v", name, tc.want, got)
		}
	}
}
