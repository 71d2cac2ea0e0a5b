package frame

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapi-data/okapi/internal/series"
)

func mustNew(t *testing.T, cols ...*series.Series) *Frame {
	t.Helper()
	f, err := New(cols...)
	require.NoError(t, err)
	return f
}

func testFrame(t *testing.T, mem memory.Allocator) *Frame {
	t.Helper()

	name := series.NewText("name", []string{"Alice", "Bob", "Charlie"}, mem)
	defer name.Release()
	age := series.NewNumbers("age", []float64{25, 30, 35}, mem)
	defer age.Release()
	active := series.NewBool("active", []bool{true, false, true}, mem)
	defer active.Release()

	return mustNew(t, name, age, active)
}

func TestNew(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	assert.Equal(t, []string{"name", "age", "active"}, f.Names())
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 3, f.StorageLen())
	assert.Equal(t, 3, f.Width())
	assert.True(t, f.HasColumn("age"))
	assert.False(t, f.HasColumn("missing"))

	col, exists := f.Column("age")
	assert.True(t, exists)
	assert.Equal(t, series.Number, col.Kind())
}

func TestNew_Empty(t *testing.T) {
	f := mustNew(t)
	defer f.Release()

	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 0, f.Width())
	assert.Equal(t, []string{}, f.Names())
	assert.Equal(t, "Frame[empty]", f.String())
}

func TestNew_LengthMismatch(t *testing.T) {
	mem := memory.NewGoAllocator()

	a := series.NewNumbers("a", []float64{1, 2}, mem)
	defer a.Release()
	b := series.NewNumbers("b", []float64{1, 2, 3}, mem)
	defer b.Release()

	_, err := New(a, b)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestNew_DuplicateName(t *testing.T) {
	mem := memory.NewGoAllocator()

	a := series.NewNumbers("x", []float64{1}, mem)
	defer a.Release()
	b := series.NewNumbers("x", []float64{2}, mem)
	defer b.Release()

	_, err := New(a, b)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestNewWithIndex(t *testing.T) {
	mem := memory.NewGoAllocator()

	n := series.NewNumbers("n", []float64{10, 20, 30}, mem)
	defer n.Release()

	f, err := NewWithIndex([]*series.Series{n}, []int{2, 0, 0})
	require.NoError(t, err)
	defer f.Release()

	values, err := f.Values("n")
	require.NoError(t, err)
	assert.Equal(t, []any{30.0, 10.0, 10.0}, values)
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 3, f.StorageLen())
}

func TestNewWithIndex_OutOfRange(t *testing.T) {
	mem := memory.NewGoAllocator()

	n := series.NewNumbers("n", []float64{10, 20}, mem)
	defer n.Release()

	_, err := NewWithIndex([]*series.Series{n}, []int{0, 2})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestFromRecords_RoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()

	records := []Record{
		{"name": "Alice", "age": 25.0},
		{"name": "Bob", "age": 30.0},
	}

	f := FromRecords(records, mem)
	defer f.Release()

	assert.Equal(t, records, f.Records())
}

func TestFromRecords_MissingKeysBecomeAbsent(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := FromRecords([]Record{
		{"a": 1.0},
		{"a": 2.0, "b": "x"},
	}, mem)
	defer f.Release()

	assert.Equal(t, []string{"a", "b"}, f.Names())

	values, err := f.Values("b")
	require.NoError(t, err)
	assert.Equal(t, []any{nil, "x"}, values)

	b, _ := f.Column("b")
	assert.Equal(t, series.Text, b.Kind())
}

func TestFromRecords_KindFromFirstNonAbsent(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := FromRecords([]Record{
		{"c": nil},
		{"c": true},
	}, mem)
	defer f.Release()

	c, _ := f.Column("c")
	assert.Equal(t, series.Bool, c.Kind())
}

func TestFromDefinition(t *testing.T) {
	mem := memory.NewGoAllocator()

	defs := []ColumnDef{
		{Name: "id", Kind: series.Number},
		{Name: "code", Kind: series.Text},
	}
	records := []Record{
		{"id": 1, "code": 7},
		{"id": 2.5},
	}

	f, err := FromDefinition(defs, records, mem)
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, []string{"id", "code"}, f.Names())

	id, _ := f.Column("id")
	assert.Equal(t, series.Number, id.Kind())

	// Declared string kind wins over the numeric runtime value.
	code, err2 := f.Values("code")
	require.NoError(t, err2)
	assert.Equal(t, []any{"7", nil}, code)
}

func TestFromDefinition_EmptyRecords(t *testing.T) {
	mem := memory.NewGoAllocator()

	f, err := FromDefinition([]ColumnDef{{Name: "n", Kind: series.Number}}, nil, mem)
	require.NoError(t, err)
	defer f.Release()

	assert.Equal(t, 0, f.Len())
	n, _ := f.Column("n")
	assert.Equal(t, series.Number, n.Kind())
}

func TestFromDefinition_DuplicateName(t *testing.T) {
	mem := memory.NewGoAllocator()

	_, err := FromDefinition([]ColumnDef{
		{Name: "n", Kind: series.Number},
		{Name: "n", Kind: series.Text},
	}, nil, mem)
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	grid := f.Grid()
	require.Len(t, grid, 3)
	assert.Equal(t, []any{"Alice", 25.0, true}, grid[0])
	assert.Equal(t, []any{"Bob", 30.0, false}, grid[1])
}

func TestValues_UnknownColumn(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	_, err := f.Values("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestString(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	s := f.String()
	assert.Contains(t, s, "Frame[3x3]")
	assert.Contains(t, s, "age: number")
	assert.Contains(t, s, "active: bool")
}

func TestRender(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	out := f.Render("people")
	assert.Contains(t, out, "people")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "25")
}
