// Package okapi provides an in-memory columnar data table: typed series
// collected into frames, with non-destructive row reordering, filtering,
// derivation, joining, and simple statistics. This package is the sole
// public API of the library.
//
// Every operation returns a new value; frames and series are never mutated
// after construction. View operations (Sort, Select, Slice, Reverse,
// Shuffle) share column storage between the input and the result, so they
// cost one index slice regardless of column width.
package okapi

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/okapi-data/okapi/internal/config"
	"github.com/okapi-data/okapi/internal/frame"
	"github.com/okapi-data/okapi/internal/series"
	"github.com/okapi-data/okapi/internal/version"
)

// Kind identifies the value kind a series holds.
type Kind = series.Kind

// Series kinds.
const (
	Number = series.Number
	String = series.Text
	Bool   = series.Bool
	Object = series.Object
)

// Record is one row as a mapping from column name to value; absent cells
// are nil.
type Record = frame.Record

// ColumnDef declares a column name and kind for FromDefinition.
type ColumnDef = frame.ColumnDef

// Config re-exports the library configuration.
type Config = config.Config

// Series is the public type for one typed column.
type Series struct {
	s *series.Series
}

// Frame is the public type for a columnar table. It wraps the internal
// frame to hide implementation details.
type Frame struct {
	f *frame.Frame
}

// NewNumberSeries creates a numeric series with every position present.
func NewNumberSeries(name string, values []float64, mem memory.Allocator) *Series {
	return &Series{s: series.NewNumbers(name, values, mem)}
}

// NewNumberSeriesWithAbsent creates a numeric series; valid marks present
// positions.
func NewNumberSeriesWithAbsent(name string, values []float64, valid []bool, mem memory.Allocator) *Series {
	return &Series{s: series.NewNumber(name, values, valid, mem)}
}

// NewStringSeries creates a string series.
func NewStringSeries(name string, values []string, mem memory.Allocator) *Series {
	return &Series{s: series.NewText(name, values, mem)}
}

// NewBoolSeries creates a boolean series.
func NewBoolSeries(name string, values []bool, mem memory.Allocator) *Series {
	return &Series{s: series.NewBool(name, values, mem)}
}

// NewObjectSeries creates an opaque-value series; nil elements are absent.
func NewObjectSeries(name string, values []any) *Series {
	return &Series{s: series.NewObject(name, values)}
}

// InferSeries creates a series whose kind is inferred from the first
// non-absent element.
func InferSeries(name string, values []any, mem memory.Allocator) *Series {
	return &Series{s: series.Infer(name, values, mem)}
}

// Series methods

// Name returns the column name.
func (s *Series) Name() string { return s.s.Name() }

// Kind returns the value kind.
func (s *Series) Kind() Kind { return s.s.Kind() }

// Len returns the number of positions.
func (s *Series) Len() int { return s.s.Len() }

// At returns the value at a position, nil when absent or out of range.
func (s *Series) At(i int) any { return s.s.At(i) }

// IsAbsent reports whether the value at a position is missing.
func (s *Series) IsAbsent(i int) bool { return s.s.IsAbsent(i) }

// First returns the value at position 0, or an EmptyAccess error.
func (s *Series) First() (any, error) { return s.s.First() }

// Last returns the value at the final position, or an EmptyAccess error.
func (s *Series) Last() (any, error) { return s.s.Last() }

// AnyValue returns the value at a uniformly random position.
func (s *Series) AnyValue() (any, error) { return s.s.AnyValue() }

// Values returns every position as an untyped value, nil for absent.
func (s *Series) Values() []any { return s.s.Values() }

// AddScalar returns a series with operand added to every present value.
func (s *Series) AddScalar(operand float64) (*Series, error) {
	return wrapSeries(s.s.AddScalar(operand))
}

// Scale returns a series with every present value multiplied by factor.
func (s *Series) Scale(factor float64) (*Series, error) {
	return wrapSeries(s.s.Scale(factor))
}

// Squared returns a series of elementwise squares.
func (s *Series) Squared() (*Series, error) {
	return wrapSeries(s.s.Squared())
}

// Abs returns a series of elementwise absolute values.
func (s *Series) Abs() (*Series, error) {
	return wrapSeries(s.s.Abs())
}

// RoundTo returns a series rounded to the given decimal digits.
func (s *Series) RoundTo(digits int) (*Series, error) {
	return wrapSeries(s.s.RoundTo(digits))
}

// Sum returns the sum of present values; absent positions count as zero.
func (s *Series) Sum() (float64, error) { return s.s.Sum() }

// Dot returns the elementwise product of two numeric series; a position
// absent on either side is absent in the result.
func (s *Series) Dot(other *Series) (*Series, error) {
	return wrapSeries(s.s.Dot(other.s))
}

// Release releases the underlying storage.
func (s *Series) Release() { s.s.Release() }

// String returns a string representation of the series.
func (s *Series) String() string { return s.s.String() }

func wrapSeries(s *series.Series, err error) (*Series, error) {
	if err != nil {
		return nil, err
	}
	return &Series{s: s}, nil
}

// Frame construction

// NewFrame creates a frame from series with the natural row index.
func NewFrame(cols ...*Series) (*Frame, error) {
	return wrapFrame(frame.New(unwrapAll(cols)...))
}

// NewFrameWithIndex creates a frame with an explicit row index.
func NewFrameWithIndex(cols []*Series, index []int) (*Frame, error) {
	return wrapFrame(frame.NewWithIndex(unwrapAll(cols), index))
}

// FromRecords builds a frame from row records, inferring one series per
// distinct column name in first-occurrence order.
func FromRecords(records []Record, mem memory.Allocator) *Frame {
	return &Frame{f: frame.FromRecords(records, mem)}
}

// FromDefinition builds a frame from an explicit header of column kinds,
// regardless of the records' runtime values.
func FromDefinition(defs []ColumnDef, records []Record, mem memory.Allocator) (*Frame, error) {
	return wrapFrame(frame.FromDefinition(defs, records, mem))
}

func unwrapAll(cols []*Series) []*series.Series {
	out := make([]*series.Series, len(cols))
	for i, c := range cols {
		out[i] = c.s
	}
	return out
}

func wrapFrame(f *frame.Frame, err error) (*Frame, error) {
	if err != nil {
		return nil, err
	}
	return &Frame{f: f}, nil
}

// Frame accessors

// Names returns the column names in order.
func (d *Frame) Names() []string { return d.f.Names() }

// Len returns the number of visible rows.
func (d *Frame) Len() int { return d.f.Len() }

// Width returns the number of columns.
func (d *Frame) Width() int { return d.f.Width() }

// StorageLen returns the underlying column storage length.
func (d *Frame) StorageLen() int { return d.f.StorageLen() }

// HasColumn checks if a column exists.
func (d *Frame) HasColumn(name string) bool { return d.f.HasColumn(name) }

// Column returns the series for the given column name.
func (d *Frame) Column(name string) (*Series, bool) {
	s, exists := d.f.Column(name)
	if !exists {
		return nil, false
	}
	return &Series{s: s}, true
}

// Records exports one record per visible row in view order.
func (d *Frame) Records() []Record { return d.f.Records() }

// Grid exports one value sequence per visible row, columns in frame order.
func (d *Frame) Grid() [][]any { return d.f.Grid() }

// Values exports the visible values of one column in view order.
func (d *Frame) Values(column string) ([]any, error) { return d.f.Values(column) }

// Render produces a human-readable table of the visible rows.
func (d *Frame) Render(title string) string { return d.f.Render(title) }

// String returns a short shape summary.
func (d *Frame) String() string { return d.f.String() }

// Release releases every column's underlying storage.
func (d *Frame) Release() { d.f.Release() }

// Frame view operations

// Include narrows to the named columns; unknown names are an error.
func (d *Frame) Include(names ...string) (*Frame, error) {
	return wrapFrame(d.f.Include(names...))
}

// Exclude drops the named columns; unknown names are ignored.
func (d *Frame) Exclude(names ...string) *Frame {
	return &Frame{f: d.f.Exclude(names...)}
}

// Select keeps the visible rows for which pred returns true.
func (d *Frame) Select(pred func(Record) bool) *Frame {
	return &Frame{f: d.f.Select(pred)}
}

// Sort stably orders the visible rows by one column. Absent values compare
// as zero, the empty string, or false depending on the column kind.
func (d *Frame) Sort(column string, ascending bool) (*Frame, error) {
	return wrapFrame(d.f.Sort(column, ascending))
}

// Reverse returns the current view read backwards.
func (d *Frame) Reverse() *Frame { return &Frame{f: d.f.Reverse()} }

// Slice restricts the view to visible positions [start, end).
func (d *Frame) Slice(start, end int) *Frame { return &Frame{f: d.f.Slice(start, end)} }

// Shuffle returns the view under one uniformly random permutation.
func (d *Frame) Shuffle() *Frame { return &Frame{f: d.f.Shuffle()} }

// Frame structural operations

// Amend appends a column computed per visible row, baking the current view
// into new storage.
func (d *Frame) Amend(name string, fn func(Record) any) (*Frame, error) {
	return wrapFrame(d.f.Amend(name, fn))
}

// Rename changes column names per the mapping; colliding targets are an
// error.
func (d *Frame) Rename(mapping map[string]string) (*Frame, error) {
	return wrapFrame(d.f.Rename(mapping))
}

// Join merges other's columns positionally under each frame's own view.
func (d *Frame) Join(other *Frame) (*Frame, error) {
	return wrapFrame(d.f.Join(other.f))
}

// LeftJoin merges other's non-key columns by key value, first occurrence
// only on both sides.
func (d *Frame) LeftJoin(other *Frame, key string) (*Frame, error) {
	return wrapFrame(d.f.LeftJoin(other.f, key))
}

// CorrelationMatrix builds the frame of Pearson coefficients between this
// frame's and other's numeric columns.
func (d *Frame) CorrelationMatrix(other *Frame) (*Frame, error) {
	return wrapFrame(d.f.CorrelationMatrix(other.f))
}

// Frame numeric transforms

// Distribute rescales a numeric column so its visible finite values sum
// to 1.
func (d *Frame) Distribute(column string) (*Frame, error) {
	return wrapFrame(d.f.Distribute(column))
}

// Log replaces a numeric column with its elementwise natural logarithm.
func (d *Frame) Log(column string) (*Frame, error) {
	return wrapFrame(d.f.Log(column))
}

// Scale multiplies every present value of a numeric column by factor.
func (d *Frame) Scale(column string, factor float64) (*Frame, error) {
	return wrapFrame(d.f.Scale(column, factor))
}

// Add adds operand to every present value of a numeric column.
func (d *Frame) Add(column string, operand float64) (*Frame, error) {
	return wrapFrame(d.f.Add(column, operand))
}

// Digits rounds numeric columns to the given decimal digits; non-numeric
// columns pass through.
func (d *Frame) Digits(precision int, names ...string) (*Frame, error) {
	return wrapFrame(d.f.Digits(precision, names...))
}

// Outlier drops every visible row whose deviation ratio exceeds factor in
// any numeric column. The result is a view sharing column storage.
func (d *Frame) Outlier(factor float64) *Frame {
	return &Frame{f: d.f.Outlier(factor)}
}

// Configuration

// GetConfig returns the current global configuration.
func GetConfig() Config { return config.GetGlobalConfig() }

// SetConfig sets the global configuration.
func SetConfig(cfg Config) { config.SetGlobalConfig(cfg) }

// LoadConfigFromFile loads configuration from a JSON or YAML file.
func LoadConfigFromFile(filename string) (Config, error) {
	return config.LoadFromFile(filename)
}

// Version returns the library version string.
func Version() string { return version.String() }
