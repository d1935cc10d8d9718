package datatable

import (
	"fmt"
	"strings"
)

// Operator names a filter comparison.
type Operator string

// Supported operators.
const (
	OperatorEquals            Operator = "equals"
	OperatorNotEquals         Operator = "not-equals"
	OperatorContains          Operator = "contains"
	OperatorNotContains       Operator = "not-contains"
	OperatorGreaterThan       Operator = "greater-than"
	OperatorGreaterThanEquals Operator = "greater-than-equals"
	OperatorLessThan          Operator = "less-than"
	OperatorLessThanEquals    Operator = "less-than-equals"
	OperatorStartsWith        Operator = "starts-with"
	OperatorEndsWith          Operator = "ends-with"
	OperatorIn                Operator = "in"
	OperatorNotIn             Operator = "not-in"
	OperatorBetween           Operator = "between"
)

var knownOperators = map[Operator]struct{}{
	OperatorEquals: {}, OperatorNotEquals: {}, OperatorContains: {}, OperatorNotContains: {},
	OperatorGreaterThan: {}, OperatorGreaterThanEquals: {}, OperatorLessThan: {}, OperatorLessThanEquals: {},
	OperatorStartsWith: {}, OperatorEndsWith: {}, OperatorIn: {}, OperatorNotIn: {}, OperatorBetween: {},
}

// ParseOperator validates a raw operator name.
func ParseOperator(raw string) (Operator, error) {
	op := Operator(strings.TrimSpace(raw))
	if _, ok := knownOperators[op]; !ok {
		return "", fmt.Errorf("datatable: unknown filter operator %q", raw)
	}
	return op, nil
}

// FilterData is the submitted value of one filter.
type FilterData struct {
	Value    any
	Operator Operator
}

// FilterDataFromMap reads "value" and "operator" keys, ignoring anything
// else. A missing value defaults to "".
func FilterDataFromMap(data map[string]any) (FilterData, error) {
	out := FilterData{Value: ""}
	if value, ok := data["value"]; ok {
		out.Value = value
	}
	switch op := data["operator"].(type) {
	case nil:
	case Operator:
		out.Operator = op
	case string:
		if op == "" {
			break
		}
		parsed, err := ParseOperator(op)
		if err != nil {
			return FilterData{}, err
		}
		out.Operator = parsed
	default:
		return FilterData{}, fmt.Errorf("datatable: filter operator must be a string, got %T", op)
	}
	return out, nil
}

// HasValue reports whether the filter carries a usable value: nil, "" and
// empty lists do not count.
func (d FilterData) HasValue() bool {
	switch v := d.Value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}
