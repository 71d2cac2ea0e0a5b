package frame

import (
	"fmt"
	"sort"

	"github.com/okapi-data/okapi/internal/errors"
	"github.com/okapi-data/okapi/internal/permute"
	"github.com/okapi-data/okapi/internal/series"
)

// Include returns a frame narrowed to the named columns, keeping the
// current row index. Naming an unknown column is an error.
func (f *Frame) Include(names ...string) (*Frame, error) {
	columns := make(map[string]*series.Series, len(names))
	order := make([]string, 0, len(names))

	for _, name := range names {
		s, exists := f.columns[name]
		if !exists {
			return nil, errors.NewColumnNotFoundError("Include", name)
		}
		if _, dup := columns[name]; dup {
			return nil, errors.NewDuplicateColumnError("Include", name)
		}
		columns[name] = s
		order = append(order, name)
	}

	for _, name := range order {
		columns[name].Retain()
	}
	return rawFrame(columns, order, append([]int(nil), f.index...)), nil
}

// Exclude returns a frame without the named columns. Unknown names are
// silently ignored.
func (f *Frame) Exclude(names ...string) *Frame {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	keep := make([]string, 0, len(f.order))
	for _, name := range f.order {
		if !drop[name] {
			keep = append(keep, name)
		}
	}

	// Include over the complement cannot fail: every kept name exists.
	out, err := f.Include(keep...)
	if err != nil {
		panic(fmt.Sprintf("frame: exclude complement invalid: %v", err))
	}
	return out
}

// Select keeps, in current order, only the visible rows for which pred
// returns true. The predicate receives one record assembled across every
// column.
func (f *Frame) Select(pred func(Record) bool) *Frame {
	index := make([]int, 0, len(f.index))
	for _, pos := range f.index {
		if pred(f.record(pos)) {
			index = append(index, pos)
		}
	}
	return f.reindex(index)
}

// Sort orders the visible rows by the named column. The sort is stable, so
// ties keep their current relative order. An absent value compares as
// numeric zero, the empty string, or false depending on the column kind.
// Descending order flips the comparison, not the final order.
func (f *Frame) Sort(column string, ascending bool) (*Frame, error) {
	s, exists := f.columns[column]
	if !exists {
		return nil, errors.NewColumnNotFoundError("Sort", column)
	}

	less := lessFunc(s)
	index := append([]int(nil), f.index...)
	sort.SliceStable(index, func(i, j int) bool {
		if ascending {
			return less(index[i], index[j])
		}
		return less(index[j], index[i])
	})

	return f.reindex(index), nil
}

// lessFunc returns a strict ordering over storage positions for one series.
func lessFunc(s *series.Series) func(a, b int) bool {
	switch s.Kind() {
	case series.Number:
		at := func(pos int) float64 {
			v, ok := s.Float(pos)
			if !ok {
				return 0
			}
			return v
		}
		return func(a, b int) bool { return at(a) < at(b) }

	case series.Text:
		at := func(pos int) string {
			v := s.At(pos)
			if v == nil {
				return ""
			}
			return v.(string)
		}
		return func(a, b int) bool { return at(a) < at(b) }

	case series.Bool:
		at := func(pos int) bool {
			v := s.At(pos)
			if v == nil {
				return false
			}
			return v.(bool)
		}
		return func(a, b int) bool { return !at(a) && at(b) }

	case series.Object:
		at := func(pos int) string {
			v := s.At(pos)
			if v == nil {
				return ""
			}
			return fmt.Sprint(v)
		}
		return func(a, b int) bool { return at(a) < at(b) }

	default:
		panic(fmt.Sprintf("frame: unknown series kind %v", s.Kind()))
	}
}

// Reverse returns the current view read backwards.
func (f *Frame) Reverse() *Frame {
	index := make([]int, len(f.index))
	for i, pos := range f.index {
		index[len(f.index)-1-i] = pos
	}
	return f.reindex(index)
}

// Slice restricts the view to visible positions [start, end). Out-of-range
// bounds clamp; start >= end yields an empty view.
func (f *Frame) Slice(start, end int) *Frame {
	if start < 0 {
		start = 0
	}
	if end > len(f.index) {
		end = len(f.index)
	}
	if start >= end {
		return f.reindex([]int{})
	}
	return f.reindex(append([]int(nil), f.index[start:end]...))
}

// Shuffle returns the view under one uniformly random permutation. Each
// call permutes independently; the source frame is untouched.
func (f *Frame) Shuffle() *Frame {
	perm := permute.Perm(len(f.index))
	index := make([]int, len(f.index))
	for i, p := range perm {
		index[i] = f.index[p]
	}
	return f.reindex(index)
}
