// Package series provides the typed column storage backing frames. A series
// holds one value kind for its whole lifetime; numeric series use the Arrow
// null bitmap as the "absent" marker for missing numbers.
package series

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/okapi-data/okapi/internal/common"
	"github.com/okapi-data/okapi/internal/errors"
	"github.com/okapi-data/okapi/internal/permute"
)

// Kind identifies the value kind a series holds.
type Kind int

const (
	// Number is a float64 column where positions may be absent.
	Number Kind = iota
	// Text is a string column.
	Text
	// Bool is a boolean column.
	Bool
	// Object is an opaque Go value column; it is the fallback kind for
	// values Arrow cannot represent.
	Object
)

// String returns the kind name used in errors and display output.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "string"
	case Bool:
		return "bool"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Series represents one typed data column. Number, Text and Bool kinds are
// backed by an Apache Arrow array; Object kind holds plain Go values with a
// validity slice. A series is immutable once constructed: every transform
// builds a new instance.
type Series struct {
	name string
	kind Kind

	arr arrow.Array // Number, Text, Bool

	objs     []any  // Object
	objValid []bool // Object
}

var coercer = common.NewValueCoercer()

func allocOrDefault(mem memory.Allocator) memory.Allocator {
	if mem == nil {
		return memory.NewGoAllocator()
	}
	return mem
}

// NewNumber creates a numeric series. valid marks present positions; a nil
// valid means every value is present. valid must match values in length.
func NewNumber(name string, values []float64, valid []bool, mem memory.Allocator) *Series {
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("series: validity length %d does not match values length %d", len(valid), len(values)))
	}

	builder := array.NewFloat64Builder(allocOrDefault(mem))
	defer builder.Release()
	for i, v := range values {
		if valid != nil && !valid[i] {
			builder.AppendNull()
			continue
		}
		builder.Append(v)
	}

	return &Series{name: name, kind: Number, arr: builder.NewArray()}
}

// NewNumbers creates a numeric series with every position present.
func NewNumbers(name string, values []float64, mem memory.Allocator) *Series {
	return NewNumber(name, values, nil, mem)
}

// NewText creates a string series.
func NewText(name string, values []string, mem memory.Allocator) *Series {
	return NewTextWithNulls(name, values, nil, mem)
}

// NewTextWithNulls creates a string series with per-position validity.
func NewTextWithNulls(name string, values []string, valid []bool, mem memory.Allocator) *Series {
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("series: validity length %d does not match values length %d", len(valid), len(values)))
	}

	builder := array.NewStringBuilder(allocOrDefault(mem))
	defer builder.Release()
	for i, v := range values {
		if valid != nil && !valid[i] {
			builder.AppendNull()
			continue
		}
		builder.Append(v)
	}

	return &Series{name: name, kind: Text, arr: builder.NewArray()}
}

// NewBool creates a boolean series.
func NewBool(name string, values []bool, mem memory.Allocator) *Series {
	return NewBoolWithNulls(name, values, nil, mem)
}

// NewBoolWithNulls creates a boolean series with per-position validity.
func NewBoolWithNulls(name string, values, valid []bool, mem memory.Allocator) *Series {
	if valid != nil && len(valid) != len(values) {
		panic(fmt.Sprintf("series: validity length %d does not match values length %d", len(valid), len(values)))
	}

	builder := array.NewBooleanBuilder(allocOrDefault(mem))
	defer builder.Release()
	for i, v := range values {
		if valid != nil && !valid[i] {
			builder.AppendNull()
			continue
		}
		builder.Append(v)
	}

	return &Series{name: name, kind: Bool, arr: builder.NewArray()}
}

// NewObject creates an object series. A nil element marks an absent
// position.
func NewObject(name string, values []any) *Series {
	objs := make([]any, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		objs[i] = v
		valid[i] = v != nil
	}
	return &Series{name: name, kind: Object, objs: objs, objValid: valid}
}

// Infer creates a series whose kind is taken from the first non-absent
// element: numeric values build a Number series, strings Text, booleans
// Bool, anything else Object. An all-absent input yields an Object series
// of absent positions. Values that do not match the inferred kind become
// absent.
func Infer(name string, values []any, mem memory.Allocator) *Series {
	kind := Object
	for _, v := range values {
		if common.IsAbsent(v) {
			continue
		}
		kind = inferKind(v)
		break
	}
	return OfKind(name, kind, values, mem)
}

func inferKind(value any) Kind {
	switch value.(type) {
	case string:
		return Text
	case bool:
		return Bool
	default:
		if coercer.IsNumeric(value) {
			return Number
		}
		return Object
	}
}

// OfKind creates a series of a declared kind from untyped values, coercing
// each element. Elements that are nil or fail to coerce become absent. Use
// it when kind inference from data is undesirable.
func OfKind(name string, kind Kind, values []any, mem memory.Allocator) *Series {
	n := len(values)

	switch kind {
	case Number:
		nums := make([]float64, n)
		valid := make([]bool, n)
		for i, v := range values {
			if common.IsAbsent(v) {
				continue
			}
			if f, err := coercer.ToFloat64(v); err == nil {
				nums[i] = f
				valid[i] = true
			}
		}
		return NewNumber(name, nums, valid, mem)

	case Text:
		strs := make([]string, n)
		valid := make([]bool, n)
		for i, v := range values {
			if common.IsAbsent(v) {
				continue
			}
			if s, err := coercer.ToString(v); err == nil {
				strs[i] = s
				valid[i] = true
			}
		}
		return NewTextWithNulls(name, strs, valid, mem)

	case Bool:
		bools := make([]bool, n)
		valid := make([]bool, n)
		for i, v := range values {
			if common.IsAbsent(v) {
				continue
			}
			if b, err := coercer.ToBool(v); err == nil {
				bools[i] = b
				valid[i] = true
			}
		}
		return NewBoolWithNulls(name, bools, valid, mem)

	case Object:
		return NewObject(name, values)

	default:
		panic(fmt.Sprintf("series: unknown kind %v", kind))
	}
}

// Name returns the column name.
func (s *Series) Name() string {
	return s.name
}

// Kind returns the value kind.
func (s *Series) Kind() Kind {
	return s.kind
}

// Len returns the number of positions in storage.
func (s *Series) Len() int {
	if s.kind == Object {
		return len(s.objs)
	}
	return s.arr.Len()
}

// IsAbsent reports whether the value at position i is missing.
func (s *Series) IsAbsent(i int) bool {
	if i < 0 || i >= s.Len() {
		return true
	}
	if s.kind == Object {
		return !s.objValid[i]
	}
	return s.arr.IsNull(i)
}

// At returns the value at position i, or nil when the position is absent or
// out of range.
func (s *Series) At(i int) any {
	if i < 0 || i >= s.Len() || s.IsAbsent(i) {
		return nil
	}

	switch s.kind {
	case Number:
		return s.arr.(*array.Float64).Value(i)
	case Text:
		return s.arr.(*array.String).Value(i)
	case Bool:
		return s.arr.(*array.Boolean).Value(i)
	case Object:
		return s.objs[i]
	default:
		return nil
	}
}

// Float returns the numeric value at position i and whether it is present.
// It reports false for non-numeric series.
func (s *Series) Float(i int) (float64, bool) {
	if s.kind != Number || i < 0 || i >= s.Len() || s.arr.IsNull(i) {
		return 0, false
	}
	return s.arr.(*array.Float64).Value(i), true
}

// First returns the value at position 0.
func (s *Series) First() (any, error) {
	if s.Len() == 0 {
		return nil, errors.NewEmptyAccessError("First")
	}
	return s.At(0), nil
}

// Last returns the value at the final position.
func (s *Series) Last() (any, error) {
	if s.Len() == 0 {
		return nil, errors.NewEmptyAccessError("Last")
	}
	return s.At(s.Len() - 1), nil
}

// AnyValue returns the value at a uniformly random position.
func (s *Series) AnyValue() (any, error) {
	if s.Len() == 0 {
		return nil, errors.NewEmptyAccessError("AnyValue")
	}
	return s.At(permute.IntN(s.Len())), nil
}

// Values returns every storage position as an untyped value, nil for absent
// positions.
func (s *Series) Values() []any {
	out := make([]any, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Float64s returns the numeric storage and its validity mask. It errors on
// non-numeric series.
func (s *Series) Float64s() ([]float64, []bool, error) {
	if s.kind != Number {
		return nil, nil, errors.NewKindError("Float64s", s.name, s.kind.String())
	}

	arr := s.arr.(*array.Float64)
	values := make([]float64, arr.Len())
	valid := make([]bool, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		values[i] = arr.Value(i)
		valid[i] = true
	}
	return values, valid, nil
}

// Rename returns a series with a new name sharing this series' storage.
func (s *Series) Rename(name string) *Series {
	out := *s
	out.name = name
	if out.arr != nil {
		out.arr.Retain()
	}
	return &out
}

// Gather materializes the given storage positions, in order, into a new
// series of the same kind. Positions must lie in [0, Len()); the frame layer
// validates indices before calling.
func (s *Series) Gather(index []int, mem memory.Allocator) *Series {
	values := make([]any, len(index))
	for i, pos := range index {
		values[i] = s.At(pos)
	}
	return OfKind(s.name, s.kind, values, mem)
}

// Retain increments the reference count of the underlying Arrow storage.
// Frames sharing a series across views retain it once per holder.
func (s *Series) Retain() {
	if s.arr != nil {
		s.arr.Retain()
	}
}

// Release releases the underlying Arrow memory.
func (s *Series) Release() {
	if s.arr != nil {
		s.arr.Release()
	}
}

// String returns a string representation of the series.
func (s *Series) String() string {
	return fmt.Sprintf("Series[%s]: %s (len=%d)", s.kind, s.name, s.Len())
}
