package cityvizor

import (
	"fmt"
)

// Query operators
const (
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpIn           = "in"
	OpBetween      = "between"
)

var operators = []string{OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpIn, OpBetween}

// Condition is a single predicate on a profile column
type Condition struct {
	Column   string      // profile column, e.g. ColumnStatus
	Operator string      // one of the Op* constants
	Value    interface{} // []interface{} for in, [2]interface{} for between
}

// Query selects profiles matching all conditions
type Query struct {
	Conditions []Condition
	Limit      int
	Offset     int
}

// MatchesQuery checks if a record matches all conditions in the query
func (r *Record) MatchesQuery(query Query) bool {
	for _, condition := range query.Conditions {
		if !evalCondition(r, condition) {
			return false
		}
	}
	return true
}

func evalCondition(record *Record, condition Condition) bool {
	// a missing column compares as nil
	value := record.Values[condition.Column]

	switch condition.Operator {
	case OpEqual:
		return compareEqual(value, condition.Value)
	case OpNotEqual:
		return !compareEqual(value, condition.Value)
	case OpGreater:
		return compareNumeric(value, condition.Value, func(a, b float64) bool { return a > b })
	case OpGreaterEqual:
		return compareNumeric(value, condition.Value, func(a, b float64) bool { return a >= b })
	case OpLess:
		return compareNumeric(value, condition.Value, func(a, b float64) bool { return a < b })
	case OpLessEqual:
		return compareNumeric(value, condition.Value, func(a, b float64) bool { return a <= b })
	case OpIn:
		return compareIn(value, condition.Value)
	case OpBetween:
		return compareBetween(value, condition.Value)
	default:
		return false
	}
}

func compareEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if isNumeric(a) && isNumeric(b) {
		return toFloat64(a) == toFloat64(b)
	}

	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func compareNumeric(a, b interface{}, cmp func(a, b float64) bool) bool {
	if !isNumeric(a) || !isNumeric(b) {
		return false
	}
	return cmp(toFloat64(a), toFloat64(b))
}

func compareIn(a, b interface{}) bool {
	list, ok := b.([]interface{})
	if !ok {
		return false
	}

	for _, item := range list {
		if compareEqual(a, item) {
			return true
		}
	}
	return false
}

func compareBetween(a, b interface{}) bool {
	lo, hi, ok := bounds(b)
	if !ok {
		return false
	}

	if !isNumeric(a) || !isNumeric(lo) || !isNumeric(hi) {
		return false
	}

	v := toFloat64(a)
	return v >= toFloat64(lo) && v <= toFloat64(hi)
}

func bounds(v interface{}) (interface{}, interface{}, bool) {
	switch b := v.(type) {
	case [2]interface{}:
		return b[0], b[1], true
	case []interface{}:
		if len(b) == 2 {
			return b[0], b[1], true
		}
	}
	return nil, nil, false
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	default:
		return 0
	}
}

// paginate applies Offset and Limit to an already filtered slice
func paginate[T any](items []T, query Query) []T {
	if query.Offset >= len(items) {
		return []T{}
	}
	items = items[query.Offset:]

	if query.Limit > 0 && query.Limit < len(items) {
		items = items[:query.Limit]
	}
	return items
}

// ValidateQuery validates query structure
func ValidateQuery(query Query) error {
	for i, cond := range query.Conditions {
		if cond.Column == "" {
			return fmt.Errorf("empty column name in condition %d", i)
		}

		valid := false
		for _, op := range operators {
			if cond.Operator == op {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid operator '%s' in condition %d", cond.Operator, i)
		}

		switch cond.Operator {
		case OpIn:
			if _, ok := cond.Value.([]interface{}); !ok {
				return fmt.Errorf("operator 'in' requires []interface{} value in condition %d", i)
			}
		case OpBetween:
			if _, _, ok := bounds(cond.Value); !ok {
				return fmt.Errorf("operator 'between' requires two bounds in condition %d", i)
			}
		}
	}

	if query.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if query.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}

	return nil
}
