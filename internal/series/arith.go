package series

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/okapi-data/okapi/internal/errors"
)

// mapNumeric builds a new numeric series by applying fn to every present
// position. Absent positions stay absent.
func (s *Series) mapNumeric(op string, fn func(float64) float64) (*Series, error) {
	if s.kind != Number {
		return nil, errors.NewKindError(op, s.name, s.kind.String())
	}

	arr := s.arr.(*array.Float64)
	builder := array.NewFloat64Builder(memory.NewGoAllocator())
	defer builder.Release()

	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			builder.AppendNull()
			continue
		}
		builder.Append(fn(arr.Value(i)))
	}

	return &Series{name: s.name, kind: Number, arr: builder.NewArray()}, nil
}

// AddScalar returns a series with operand added to every present value.
func (s *Series) AddScalar(operand float64) (*Series, error) {
	return s.mapNumeric("AddScalar", func(v float64) float64 { return v + operand })
}

// Scale returns a series with every present value multiplied by factor.
func (s *Series) Scale(factor float64) (*Series, error) {
	return s.mapNumeric("Scale", func(v float64) float64 { return v * factor })
}

// Squared returns a series of elementwise squares.
func (s *Series) Squared() (*Series, error) {
	return s.mapNumeric("Squared", func(v float64) float64 { return v * v })
}

// Abs returns a series of elementwise absolute values.
func (s *Series) Abs() (*Series, error) {
	return s.mapNumeric("Abs", math.Abs)
}

// Log returns a series of elementwise natural logarithms. Zero and negative
// inputs produce the usual non-finite values.
func (s *Series) Log() (*Series, error) {
	return s.mapNumeric("Log", math.Log)
}

// RoundTo returns a series with every present value rounded to the given
// number of decimal digits, half away from zero. Non-finite values pass
// through unchanged.
func (s *Series) RoundTo(digits int) (*Series, error) {
	pow := math.Pow(10, float64(digits))
	return s.mapNumeric("RoundTo", func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v
		}
		return math.Round(v*pow) / pow
	})
}

// Sum returns the sum of all present values; absent positions contribute
// zero.
func (s *Series) Sum() (float64, error) {
	if s.kind != Number {
		return 0, errors.NewKindError("Sum", s.name, s.kind.String())
	}

	arr := s.arr.(*array.Float64)
	sum := 0.0
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		sum += arr.Value(i)
	}
	return sum, nil
}

// Dot returns the elementwise product of two numeric series. A position
// where either operand is absent is absent in the result.
func (s *Series) Dot(other *Series) (*Series, error) {
	if s.kind != Number {
		return nil, errors.NewKindError("Dot", s.name, s.kind.String())
	}
	if other.kind != Number {
		return nil, errors.NewKindError("Dot", other.name, other.kind.String())
	}
	if s.Len() != other.Len() {
		return nil, errors.NewLengthMismatchError("Dot", s.Len(), other.Len())
	}

	left := s.arr.(*array.Float64)
	right := other.arr.(*array.Float64)
	builder := array.NewFloat64Builder(memory.NewGoAllocator())
	defer builder.Release()

	for i := 0; i < left.Len(); i++ {
		if left.IsNull(i) || right.IsNull(i) {
			builder.AppendNull()
			continue
		}
		builder.Append(left.Value(i) * right.Value(i))
	}

	return &Series{name: s.name, kind: Number, arr: builder.NewArray()}, nil
}
