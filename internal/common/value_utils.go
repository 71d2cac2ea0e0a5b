// Package common provides shared value-coercion utilities used by series
// construction and record import.
package common

import (
	"fmt"
	"math"
	"strconv"
)

// ValueCoercer provides conversions from untyped record values to the
// concrete representations backing each series kind.
type ValueCoercer struct{}

// NewValueCoercer creates a new ValueCoercer instance.
func NewValueCoercer() *ValueCoercer {
	return &ValueCoercer{}
}

// ToFloat64 converts numeric record values to float64.
func (vc *ValueCoercer) ToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

// ToString converts a record value to its string representation. Strings
// pass through unchanged; other values render via strconv/fmt.
func (vc *ValueCoercer) ToString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	default:
		if f, err := vc.ToFloat64(value); err == nil {
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
		return fmt.Sprintf("%v", value), nil
	}
}

// ToBool converts a record value to bool. Numeric values follow the usual
// zero/non-zero convention.
func (vc *ValueCoercer) ToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		if f, err := vc.ToFloat64(value); err == nil {
			return f != 0, nil
		}
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}

// IsNumeric reports whether the value converts cleanly to float64.
func (vc *ValueCoercer) IsNumeric(value interface{}) bool {
	_, err := vc.ToFloat64(value)
	return err == nil
}

// IsAbsent reports whether a record value denotes a missing cell. Only nil
// counts; NaN is a present (if degenerate) number.
func IsAbsent(value interface{}) bool {
	return value == nil
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
