package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter is one legacy filter condition on a response attribute.
type Filter struct {
	Attribute string `json:"attribute"`
	Condition string `json:"condition"`
	Value     string `json:"value"`
}

// ConditionSource supplies the filter conditions applicable to a data type.
// The master-data repository implements it; a nil source falls back to the
// built-in defaults.
type ConditionSource interface {
	ConditionsForType(dataType string) []string
}

// ApplyCondition evaluates a condition against a value. String comparisons
// are case-insensitive; numeric comparisons return false when either side
// does not parse as a number.
func ApplyCondition(value any, condition, filterValue string) bool {
	attrValue := strings.ToLower(fmt.Sprint(value))
	cmpValue := strings.ToLower(filterValue)

	switch condition {
	case "EQ":
		return attrValue == cmpValue
	case "NEQ":
		return attrValue != cmpValue
	case "Contains":
		return strings.Contains(attrValue, cmpValue)
	case "NotContains":
		return !strings.Contains(attrValue, cmpValue)
	case "GT", "LT", "GTE", "LTE":
		left, lok := toFloat(value)
		right, rok := toFloat(filterValue)
		if !lok || !rok {
			return false
		}
		switch condition {
		case "GT":
			return left > right
		case "LT":
			return left < right
		case "GTE":
			return left >= right
		default:
			return left <= right
		}
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// DefaultConditions returns the built-in condition list for a data type,
// used when no master-data list is configured.
func DefaultConditions(dataType string) []string {
	switch strings.ToLower(dataType) {
	case "string":
		return []string{"EQ", "NEQ", "Contains", "NotContains"}
	case "integer", "number", "int32", "int64", "float", "double":
		return []string{"EQ", "NEQ", "GT", "LT", "GTE", "LTE"}
	case "boolean":
		return []string{"EQ", "NEQ"}
	default:
		return []string{"EQ", "NEQ"}
	}
}
