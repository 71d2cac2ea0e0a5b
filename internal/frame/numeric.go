package frame

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/okapi-data/okapi/internal/errors"
	"github.com/okapi-data/okapi/internal/series"
	"github.com/okapi-data/okapi/internal/stats"
	"github.com/okapi-data/okapi/internal/validation"
)

// withColumn replaces one column with a transformed series, sharing every
// other column and preserving the current view. The transform runs over the
// whole storage; hidden rows are transformed too, which is invisible under
// the unchanged index.
func (f *Frame) withColumn(op, column string, fn func(*series.Series) (*series.Series, error)) (*Frame, error) {
	s, exists := f.columns[column]
	if !exists {
		return nil, errors.NewColumnNotFoundError(op, column)
	}

	replaced, err := fn(s)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]*series.Series, len(f.order))
	for _, name := range f.order {
		if name == column {
			columns[name] = replaced
			continue
		}
		f.columns[name].Retain()
		columns[name] = f.columns[name]
	}

	return rawFrame(columns, append([]string(nil), f.order...), append([]int(nil), f.index...)), nil
}

// Scale multiplies every present value of a numeric column by factor.
func (f *Frame) Scale(column string, factor float64) (*Frame, error) {
	return f.withColumn("Scale", column, func(s *series.Series) (*series.Series, error) {
		return s.Scale(factor)
	})
}

// Add adds operand to every present value of a numeric column.
func (f *Frame) Add(column string, operand float64) (*Frame, error) {
	return f.withColumn("Add", column, func(s *series.Series) (*series.Series, error) {
		return s.AddScalar(operand)
	})
}

// Log replaces a numeric column with its elementwise natural logarithm.
func (f *Frame) Log(column string) (*Frame, error) {
	return f.withColumn("Log", column, func(s *series.Series) (*series.Series, error) {
		return s.Log()
	})
}

// Distribute rescales a numeric column so the sum of its visible finite
// values equals 1. Non-finite values are excluded from the sum but still
// pass through the elementwise scale, so they remain non-finite. A zero sum
// produces a defined non-finite output rather than an error.
func (f *Frame) Distribute(column string) (*Frame, error) {
	s, exists := f.columns[column]
	if !exists {
		return nil, errors.NewColumnNotFoundError("Distribute", column)
	}
	if s.Kind() != series.Number {
		return nil, errors.NewKindError("Distribute", column, s.Kind().String())
	}

	sum := f.visibleFiniteSum(s)
	return f.Scale(column, 1/sum)
}

// Digits rounds every numeric column among names to the given number of
// decimal digits; non-numeric columns in the list pass through unchanged.
// With no names, all columns are considered. Naming an unknown column is an
// error.
func (f *Frame) Digits(precision int, names ...string) (*Frame, error) {
	if len(names) == 0 {
		names = f.order
	}

	round := make(map[string]bool, len(names))
	for _, name := range names {
		s, exists := f.columns[name]
		if !exists {
			return nil, errors.NewColumnNotFoundError("Digits", name)
		}
		if s.Kind() == series.Number {
			round[name] = true
		}
	}

	columns := make(map[string]*series.Series, len(f.order))
	for _, name := range f.order {
		if round[name] {
			rounded, err := f.columns[name].RoundTo(precision)
			if err != nil {
				return nil, err
			}
			columns[name] = rounded
			continue
		}
		f.columns[name].Retain()
		columns[name] = f.columns[name]
	}

	return rawFrame(columns, append([]string(nil), f.order...), append([]int(nil), f.index...)), nil
}

// numericNames returns the names of numeric columns in column order.
func (f *Frame) numericNames() []string {
	names := make([]string, 0, len(f.order))
	for _, name := range f.order {
		if f.columns[name].Kind() == series.Number {
			names = append(names, name)
		}
	}
	return names
}

// CorrelationMatrix builds a frame of Pearson correlation coefficients:
// one row per numeric column of this frame (named in the "column" label
// column), one numeric column per numeric column of other. Rows of the two
// frames must correspond position-for-position under their current views;
// no key alignment is performed. Positions where either side is absent are
// skipped pairwise. Zero-variance columns yield NaN coefficients.
func (f *Frame) CorrelationMatrix(other *Frame) (*Frame, error) {
	if err := validation.NewLengthValidator("CorrelationMatrix", f.Len(), other.Len()).Validate(); err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()

	rows := f.numericNames()
	cols := other.numericNames()

	out := make([]*series.Series, 0, len(cols)+1)
	out = append(out, series.NewText("column", rows, mem))

	for _, colName := range cols {
		otherCol := other.columns[colName]
		coeffs := make([]float64, len(rows))
		for i, rowName := range rows {
			thisCol := f.columns[rowName]
			xs, ys := pairedVisible(f, thisCol, other, otherCol)
			coeffs[i] = stats.Pearson(xs, ys)
		}
		out = append(out, series.NewNumbers(colName, coeffs, mem))
	}

	matrix, err := New(out...)
	if err != nil {
		return nil, err
	}
	// New retained each series; drop the constructor references.
	for _, s := range out {
		s.Release()
	}
	return matrix, nil
}

// pairedVisible collects the value pairs present on both sides, walking the
// two views position-for-position.
func pairedVisible(f *Frame, a *series.Series, g *Frame, b *series.Series) ([]float64, []float64) {
	xs := make([]float64, 0, len(f.index))
	ys := make([]float64, 0, len(f.index))
	for i := range f.index {
		x, okX := a.Float(f.index[i])
		y, okY := b.Float(g.index[i])
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// Outlier drops every visible row flagged by any numeric column. A column
// flags a row when the absolute deviation from the column's mean over the
// visible present values, divided by the column's standard deviation,
// exceeds factor. With zero standard deviation every row off the mean is
// flagged. Absent values are skipped: they contribute nothing to the
// statistics and never flag a row. The result is a view sharing column
// storage.
func (f *Frame) Outlier(factor float64) *Frame {
	type columnStats struct {
		col  *series.Series
		mean float64
		std  float64
	}

	numeric := make([]columnStats, 0, len(f.order))
	for _, name := range f.numericNames() {
		col := f.columns[name]
		values := f.visibleFloats(col)
		numeric = append(numeric, columnStats{
			col:  col,
			mean: stats.Mean(values),
			std:  stats.StdDev(values),
		})
	}

	index := make([]int, 0, len(f.index))
	for _, pos := range f.index {
		flagged := false
		for _, cs := range numeric {
			v, ok := cs.col.Float(pos)
			if !ok {
				continue
			}
			// With std == 0 this ratio is +Inf for any v != mean and
			// NaN (never > factor) when v equals the mean.
			deviation := v - cs.mean
			if deviation < 0 {
				deviation = -deviation
			}
			if deviation/cs.std > factor {
				flagged = true
				break
			}
		}
		if !flagged {
			index = append(index, pos)
		}
	}

	return f.reindex(index)
}
