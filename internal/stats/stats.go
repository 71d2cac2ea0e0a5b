// Package stats provides the numeric primitives behind frame statistics:
// mean, population standard deviation, and the Pearson correlation
// coefficient. Degenerate inputs (empty sequences, zero variance) yield NaN
// rather than an error so that callers can surface a defined value.
package stats

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number covers the element types statistics accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Mean returns the arithmetic mean of values, or NaN for an empty input.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values, or NaN for an
// empty input. A constant sequence has standard deviation zero.
func StdDev[T Number](values []T) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}

// Pearson returns the Pearson correlation coefficient between two
// equal-length sequences. When either sequence has zero variance, or the
// sequences are empty or of unequal length, the result is NaN.
func Pearson[T Number](xs, ys []T) float64 {
	if len(xs) == 0 || len(xs) != len(ys) {
		return math.NaN()
	}

	meanX := Mean(xs)
	meanY := Mean(ys)

	cov := 0.0
	varX := 0.0
	varY := 0.0
	for i := range xs {
		dx := float64(xs[i]) - meanX
		dy := float64(ys[i]) - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
