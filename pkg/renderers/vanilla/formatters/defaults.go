package formatters

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayout is used when a date column sets no layout option.
const DefaultDateLayout = "2006-01-02"

// NewDefaultRegistry returns formatters for the built-in column types.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister("text", Text)
	registry.MustRegister("number", Number)
	registry.MustRegister("money", Money)
	registry.MustRegister("date", Date)
	registry.MustRegister("boolean", Boolean)
	return registry
}

// Text prints the value, rendering nil as an empty string.
func Text(value any, _ map[string]any) (string, error) {
	if value == nil {
		return "", nil
	}
	return fmt.Sprint(value), nil
}

// Number formats numeric values with an optional "precision" option.
func Number(value any, options map[string]any) (string, error) {
	if value == nil {
		return "", nil
	}
	number, ok := toFloat(value)
	if !ok {
		return Text(value, options)
	}
	precision, hasPrecision := intOption(options, "precision")
	if !hasPrecision {
		return strconv.FormatFloat(number, 'f', -1, 64), nil
	}
	return strconv.FormatFloat(number, 'f', precision, 64), nil
}

// Money formats with two decimals (or "precision") and appends the
// "currency" option.
func Money(value any, options map[string]any) (string, error) {
	if value == nil {
		return "", nil
	}
	number, ok := toFloat(value)
	if !ok {
		return "", fmt.Errorf("formatters: money value %v is not numeric", value)
	}
	precision, hasPrecision := intOption(options, "precision")
	if !hasPrecision {
		precision = 2
	}
	out := strconv.FormatFloat(number, 'f', precision, 64)
	if currency, _ := options["currency"].(string); strings.TrimSpace(currency) != "" {
		out += " " + strings.TrimSpace(currency)
	}
	return out, nil
}

// Date formats time.Time values and RFC 3339 strings with the "layout"
// option.
func Date(value any, options map[string]any) (string, error) {
	layout, _ := options["layout"].(string)
	if layout == "" {
		layout = DefaultDateLayout
	}
	switch typed := value.(type) {
	case nil:
		return "", nil
	case time.Time:
		if typed.IsZero() {
			return "", nil
		}
		return typed.Format(layout), nil
	case string:
		if typed == "" {
			return "", nil
		}
		parsed, err := time.Parse(time.RFC3339, typed)
		if err != nil {
			return typed, nil
		}
		return parsed.Format(layout), nil
	default:
		return Text(value, options)
	}
}

// Boolean prints the "true_label"/"false_label" options, "Yes"/"No" by
// default.
func Boolean(value any, options map[string]any) (string, error) {
	truthy := false
	switch typed := value.(type) {
	case bool:
		truthy = typed
	case string:
		parsed, err := strconv.ParseBool(typed)
		truthy = err == nil && parsed
	default:
		if number, ok := toFloat(value); ok {
			truthy = number != 0
		}
	}
	if truthy {
		return labelOption(options, "true_label", "Yes"), nil
	}
	return labelOption(options, "false_label", "No"), nil
}

func labelOption(options map[string]any, key, fallback string) string {
	if label, ok := options[key].(string); ok && label != "" {
		return label
	}
	return fallback
}

func intOption(options map[string]any, key string) (int, bool) {
	switch typed := options[key].(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
