package formatters

import (
	"testing"
	"time"
)

func TestRegistryLookupWalksChain(t *testing.T) {
	reg := NewDefaultRegistry()

	got, err := reg.Format([]string{"price", "money", "number", "text", "column"}, 12.5, map[string]any{"currency": "EUR"})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if got != "12.50 EUR" {
		t.Fatalf("expected money formatter, got %q", got)
	}

	got, err = reg.Format([]string{"custom", "column"}, 7, nil)
	if err != nil || got != "7" {
		t.Fatalf("expected text fallback, got %q (%v)", got, err)
	}
}

func TestRegistryCloneIsolated(t *testing.T) {
	reg := NewDefaultRegistry()
	cloned := reg.Clone()
	cloned.MustRegister("money", Text)

	got, _ := reg.Format([]string{"money"}, 1, nil)
	if got != "1.00" {
		t.Fatalf("original registry mutated: %q", got)
	}
	if err := reg.Register(" ", Text); err == nil {
		t.Fatalf("expected name error")
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatalf("expected nil formatter error")
	}
}

func TestDefaultFormatters(t *testing.T) {
	when := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name      string
		formatter Formatter
		value     any
		options   map[string]any
		want      string
	}{
		{"number plain", Number, 3.25, nil, "3.25"},
		{"number precision", Number, 3.256, map[string]any{"precision": 1}, "3.3"},
		{"money string", Money, "4", nil, "4.00"},
		{"date time", Date, when, map[string]any{"layout": "02/01/2006"}, "09/03/2024"},
		{"date string", Date, "2024-03-09T10:00:00Z", nil, "2024-03-09"},
		{"date unparsable", Date, "soon", nil, "soon"},
		{"boolean true", Boolean, true, nil, "Yes"},
		{"boolean label", Boolean, 0, map[string]any{"false_label": "Off"}, "Off"},
		{"text nil", Text, nil, nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.formatter(tc.value, tc.options)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := Money("abc", nil); err == nil {
		t.Fatalf("expected error for non numeric money")
	}
}
