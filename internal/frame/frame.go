// Package frame provides the columnar table at the core of okapi: a named
// collection of equal-length series plus one row index defining the current
// view. View operations (sort, select, slice, reverse, shuffle) produce a
// new index over shared column storage; structural operations (amend, join,
// rename, the numeric transforms) materialize new series. A frame is never
// mutated after construction.
package frame

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/okapi-data/okapi/internal/common"
	"github.com/okapi-data/okapi/internal/errors"
	"github.com/okapi-data/okapi/internal/series"
)

// Record is one row as a mapping from column name to value. Absent cells
// are nil.
type Record map[string]any

// ColumnDef declares a column name and kind for FromDefinition.
type ColumnDef struct {
	Name string
	Kind series.Kind
}

// Frame represents a table of data with typed columns and a row index. The
// index holds storage positions; it may repeat, omit, or reorder them, and
// every column sees the same index.
type Frame struct {
	columns map[string]*series.Series
	order   []string // Maintains column order
	index   []int    // Current view over column storage
}

// rawFrame wraps fields without retaining; callers transfer ownership of
// the series to the new frame.
func rawFrame(columns map[string]*series.Series, order []string, index []int) *Frame {
	return &Frame{columns: columns, order: order, index: index}
}

func naturalIndex(n int) []int {
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	return index
}

// New creates a frame from the given series with the natural row index.
// Every series must have the same length and a distinct name. The frame
// retains each series; callers release their own references as usual.
func New(cols ...*series.Series) (*Frame, error) {
	columns := make(map[string]*series.Series, len(cols))
	order := make([]string, 0, len(cols))

	storageLen := -1
	for _, s := range cols {
		name := s.Name()
		if _, exists := columns[name]; exists {
			return nil, errors.NewDuplicateColumnError("New", name)
		}
		if storageLen >= 0 && s.Len() != storageLen {
			return nil, errors.NewLengthMismatchError("New", storageLen, s.Len())
		}
		storageLen = s.Len()
		columns[name] = s
		order = append(order, name)
	}
	if storageLen < 0 {
		storageLen = 0
	}

	for _, s := range cols {
		s.Retain()
	}
	return rawFrame(columns, order, naturalIndex(storageLen)), nil
}

// NewWithIndex creates a frame with an explicit row index. Index positions
// must lie within column storage.
func NewWithIndex(cols []*series.Series, index []int) (*Frame, error) {
	f, err := New(cols...)
	if err != nil {
		return nil, err
	}
	if err := validateIndex("NewWithIndex", index, f.StorageLen()); err != nil {
		f.Release()
		return nil, err
	}
	f.index = append([]int(nil), index...)
	return f, nil
}

func validateIndex(op string, index []int, storageLen int) error {
	for _, pos := range index {
		if pos < 0 || pos >= storageLen {
			return errors.NewInvalidIndexError(op, pos, storageLen)
		}
	}
	return nil
}

// FromRecords builds a frame from row records. Columns appear in
// first-occurrence order across the records; each column's kind is inferred
// from its first non-absent value. Keys missing from a record become absent
// positions.
func FromRecords(records []Record, mem memory.Allocator) *Frame {
	var order []string
	seen := make(map[string]bool)
	for _, rec := range records {
		// Go maps carry no key order within one record, so new names from
		// the same record are admitted alphabetically. Across records the
		// order stays first-occurrence.
		var fresh []string
		for name := range rec {
			if !seen[name] {
				seen[name] = true
				fresh = append(fresh, name)
			}
		}
		sort.Strings(fresh)
		order = append(order, fresh...)
	}

	cols := make([]*series.Series, 0, len(order))
	for _, name := range order {
		values := make([]any, len(records))
		for i, rec := range records {
			values[i] = rec[name]
		}
		cols = append(cols, series.Infer(name, values, mem))
	}

	columns := make(map[string]*series.Series, len(cols))
	for _, s := range cols {
		columns[s.Name()] = s
	}
	return rawFrame(columns, order, naturalIndex(len(records)))
}

// FromDefinition builds a frame from an explicit header of column kinds,
// ignoring what the records' runtime values would have inferred. Use it when
// inference from data is ambiguous or the input may be empty.
func FromDefinition(defs []ColumnDef, records []Record, mem memory.Allocator) (*Frame, error) {
	seen := make(map[string]bool, len(defs))
	cols := make([]*series.Series, 0, len(defs))
	order := make([]string, 0, len(defs))

	for _, def := range defs {
		if seen[def.Name] {
			return nil, errors.NewDuplicateColumnError("FromDefinition", def.Name)
		}
		seen[def.Name] = true

		values := make([]any, len(records))
		for i, rec := range records {
			values[i] = rec[def.Name]
		}
		cols = append(cols, series.OfKind(def.Name, def.Kind, values, mem))
		order = append(order, def.Name)
	}

	columns := make(map[string]*series.Series, len(cols))
	for _, s := range cols {
		columns[s.Name()] = s
	}
	return rawFrame(columns, order, naturalIndex(len(records))), nil
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	if len(f.order) == 0 {
		return []string{}
	}
	return append([]string(nil), f.order...)
}

// Len returns the number of visible rows under the current view.
func (f *Frame) Len() int {
	return len(f.index)
}

// StorageLen returns the underlying column storage length, independent of
// the current view.
func (f *Frame) StorageLen() int {
	for _, name := range f.order {
		return f.columns[name].Len()
	}
	return 0
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

// Column returns the series for the given column name.
func (f *Frame) Column(name string) (*series.Series, bool) {
	s, exists := f.columns[name]
	return s, exists
}

// HasColumn checks if a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, exists := f.columns[name]
	return exists
}

// reindex constructs a frame sharing this frame's columns under a new row
// index. It is the single primitive behind every view operation; the caller
// guarantees the index only holds positions already valid for this storage.
func (f *Frame) reindex(index []int) *Frame {
	for _, name := range f.order {
		f.columns[name].Retain()
	}
	return rawFrame(f.columns, f.order, index)
}

// record assembles the row at a storage position across every column.
func (f *Frame) record(pos int) Record {
	rec := make(Record, len(f.order))
	for _, name := range f.order {
		rec[name] = f.columns[name].At(pos)
	}
	return rec
}

// gatherAll materializes every column at the current view, producing
// series whose storage length equals the visible row count.
func (f *Frame) gatherAll(mem memory.Allocator) (map[string]*series.Series, []string) {
	columns := make(map[string]*series.Series, len(f.order))
	order := append([]string(nil), f.order...)

	for _, name := range f.order {
		columns[name] = f.columns[name].Gather(f.index, mem)
	}
	return columns, order
}

// String returns a short shape summary of the frame.
func (f *Frame) String() string {
	if len(f.columns) == 0 {
		return "Frame[empty]"
	}

	parts := []string{fmt.Sprintf("Frame[%dx%d]", f.Len(), f.Width())}
	for _, name := range f.order {
		parts = append(parts, fmt.Sprintf("  %s: %s", name, f.columns[name].Kind()))
	}
	return strings.Join(parts, "\n")
}

// Release releases every column's underlying storage.
func (f *Frame) Release() {
	for _, s := range f.columns {
		s.Release()
	}
}

// visibleFloats collects the present numeric values of one column under the
// current view.
func (f *Frame) visibleFloats(s *series.Series) []float64 {
	out := make([]float64, 0, len(f.index))
	for _, pos := range f.index {
		if v, ok := s.Float(pos); ok {
			out = append(out, v)
		}
	}
	return out
}

// visibleFiniteSum sums the present, finite numeric values of one column
// under the current view.
func (f *Frame) visibleFiniteSum(s *series.Series) float64 {
	sum := 0.0
	for _, pos := range f.index {
		if v, ok := s.Float(pos); ok && common.IsFinite(v) {
			sum += v
		}
	}
	return sum
}
