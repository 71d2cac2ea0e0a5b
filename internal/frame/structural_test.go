package frame

import (
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapi-data/okapi/internal/series"
)

func TestAmend(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	out, err := f.Amend("age2", func(rec Record) any {
		return rec["age"].(float64) * 2
	})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []string{"name", "age", "active", "age2"}, out.Names())
	assert.Equal(t, []any{50.0, 60.0, 70.0}, colValues(t, out, "age2"))

	age2, _ := out.Column("age2")
	assert.Equal(t, series.Number, age2.Kind())
}

func TestAmend_BakesInView(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	filtered := f.Select(func(rec Record) bool { return rec["active"].(bool) })
	defer filtered.Release()
	assert.Equal(t, 3, filtered.StorageLen())

	out, err := filtered.Amend("tag", func(rec Record) any {
		return strings.ToLower(rec["name"].(string))
	})
	require.NoError(t, err)
	defer out.Release()

	// Storage now equals the visible row count: the filter is baked in.
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 2, out.StorageLen())
	assert.Equal(t, []any{"alice", "charlie"}, colValues(t, out, "tag"))
	assert.Equal(t, []any{"Alice", "Charlie"}, colValues(t, out, "name"))
}

func TestAmend_ExistingNameRejected(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	_, err := f.Amend("age", func(rec Record) any { return 0 })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestRename(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	out, err := f.Rename(map[string]string{"age": "years", "unknown": "ignored"})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []string{"name", "years", "active"}, out.Names())
	assert.Equal(t, []any{25.0, 30.0, 35.0}, colValues(t, out, "years"))
	// Source keeps its names.
	assert.True(t, f.HasColumn("age"))
}

func TestRename_CollisionRejected(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	_, err := f.Rename(map[string]string{"name": "x", "age": "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestJoin_Positional(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	city := series.NewText("city", []string{"Oslo", "Lima", "Kyiv"}, mem)
	defer city.Release()
	other := mustNew(t, city)
	defer other.Release()

	out, err := f.Join(other)
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []string{"name", "age", "active", "city"}, out.Names())
	assert.Equal(t, []any{"Oslo", "Lima", "Kyiv"}, colValues(t, out, "city"))
}

func TestJoin_ClashingColumnOverwritten(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	age := series.NewNumbers("age", []float64{99, 98, 97}, mem)
	defer age.Release()
	other := mustNew(t, age)
	defer other.Release()

	out, err := f.Join(other)
	require.NoError(t, err)
	defer out.Release()

	// Other's version wins; column position is preserved.
	assert.Equal(t, []string{"name", "age", "active"}, out.Names())
	assert.Equal(t, []any{99.0, 98.0, 97.0}, colValues(t, out, "age"))
}

func TestJoin_RespectsViews(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	left := f.Slice(0, 2)
	defer left.Release()

	city := series.NewText("city", []string{"Oslo", "Lima", "Kyiv"}, mem)
	defer city.Release()
	other := mustNew(t, city)
	defer other.Release()

	right := other.Reverse().Slice(0, 2)
	defer right.Release()

	out, err := left.Join(right)
	require.NoError(t, err)
	defer out.Release()

	// Correspondence is positional under each frame's own view.
	assert.Equal(t, []any{"Alice", "Bob"}, colValues(t, out, "name"))
	assert.Equal(t, []any{"Kyiv", "Lima"}, colValues(t, out, "city"))
}

func TestJoin_LengthMismatch(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	n := series.NewNumbers("n", []float64{1}, mem)
	defer n.Release()
	other := mustNew(t, n)
	defer other.Release()

	_, err := f.Join(other)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestLeftJoin_Concrete(t *testing.T) {
	mem := memory.NewGoAllocator()

	k := series.NewText("k", []string{"x", "y"}, mem)
	defer k.Release()
	f := mustNew(t, k)
	defer f.Release()

	otherK := series.NewText("k", []string{"y", "z"}, mem)
	defer otherK.Release()
	p := series.NewNumbers("p", []float64{10, 20}, mem)
	defer p.Release()
	other := mustNew(t, otherK, p)
	defer other.Release()

	out, err := f.LeftJoin(other, "k")
	require.NoError(t, err)
	defer out.Release()

	// Row "x" has no match; row "y" takes other's first "y" payload.
	assert.Equal(t, []string{"k", "p"}, out.Names())
	assert.Equal(t, []any{nil, 10.0}, colValues(t, out, "p"))
}

func TestLeftJoin_FirstOccurrenceWins(t *testing.T) {
	mem := memory.NewGoAllocator()

	k := series.NewText("k", []string{"y", "y"}, mem)
	defer k.Release()
	f := mustNew(t, k)
	defer f.Release()

	otherK := series.NewText("k", []string{"y", "y"}, mem)
	defer otherK.Release()
	p := series.NewNumbers("p", []float64{10, 20}, mem)
	defer p.Release()
	other := mustNew(t, otherK, p)
	defer other.Release()

	out, err := f.LeftJoin(other, "k")
	require.NoError(t, err)
	defer out.Release()

	// Only the first occurrence pairs on each side; this frame's second
	// "y" row and other's second "y" row are both ignored.
	assert.Equal(t, []any{10.0, nil}, colValues(t, out, "p"))
}

func TestLeftJoin_NumericKeysAndClash(t *testing.T) {
	mem := memory.NewGoAllocator()

	id := series.NewNumbers("id", []float64{1, 2, 3}, mem)
	defer id.Release()
	v := series.NewNumbers("v", []float64{10, 20, 30}, mem)
	defer v.Release()
	f := mustNew(t, id, v)
	defer f.Release()

	otherID := series.NewNumbers("id", []float64{3, 1}, mem)
	defer otherID.Release()
	otherV := series.NewNumbers("v", []float64{333, 111}, mem)
	defer otherV.Release()
	other := mustNew(t, otherID, otherV)
	defer other.Release()

	out, err := f.LeftJoin(other, "id")
	require.NoError(t, err)
	defer out.Release()

	// The clashing payload column is replaced; unmatched row 2 is absent.
	assert.Equal(t, []string{"id", "v"}, out.Names())
	assert.Equal(t, []any{111.0, nil, 333.0}, colValues(t, out, "v"))
}

func TestLeftJoin_AbsentKeysNeverMatch(t *testing.T) {
	mem := memory.NewGoAllocator()

	k := series.NewTextWithNulls("k", []string{"", "b"}, []bool{false, true}, mem)
	defer k.Release()
	f := mustNew(t, k)
	defer f.Release()

	otherK := series.NewTextWithNulls("k", []string{"", "b"}, []bool{false, true}, mem)
	defer otherK.Release()
	p := series.NewNumbers("p", []float64{1, 2}, mem)
	defer p.Release()
	other := mustNew(t, otherK, p)
	defer other.Release()

	out, err := f.LeftJoin(other, "k")
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []any{nil, 2.0}, colValues(t, out, "p"))
}

func TestLeftJoin_UnknownKey(t *testing.T) {
	mem := memory.NewGoAllocator()

	f := testFrame(t, mem)
	defer f.Release()

	n := series.NewNumbers("n", []float64{1}, mem)
	defer n.Release()
	other := mustNew(t, n)
	defer other.Release()

	_, err := f.LeftJoin(other, "name")
	assert.Error(t, err)

	_, err = f.LeftJoin(other, "nope")
	assert.Error(t, err)
}

func TestKeyRepr_KindsStayDistinct(t *testing.T) {
	assert.NotEqual(t, keyRepr(1.0), keyRepr("1"))
	assert.Equal(t, keyRepr("a"), keyRepr("a"))
}
