// Package testutil provides common testing utilities shared across the
// okapi test files: memory allocator setup, standard test frames, and
// record fixtures.
package testutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/okapi-data/okapi/internal/frame"
	"github.com/okapi-data/okapi/internal/series"
)

// TestMemoryContext provides memory allocator with automatic cleanup.
type TestMemoryContext struct {
	Allocator memory.Allocator
	cleanup   func()
}

// Release performs cleanup of the memory context.
func (tmc *TestMemoryContext) Release() {
	if tmc.cleanup != nil {
		tmc.cleanup()
	}
}

// SetupMemoryTest creates a memory allocator with automatic cleanup for
// tests. Returns a TestMemoryContext that should be released with defer.
func SetupMemoryTest(tb testing.TB) *TestMemoryContext {
	tb.Helper()
	allocator := memory.NewGoAllocator()

	return &TestMemoryContext{
		Allocator: allocator,
		cleanup: func() {
			// Allocator cleanup is handled by the Go GC; the pattern keeps
			// call sites consistent with Arrow-backed resources.
		},
	}
}

// StandardFrame builds the four-column frame used across tests: a string
// column, two numeric columns (one with an absent position), and a boolean
// column, four rows each.
func StandardFrame(tb testing.TB, mem memory.Allocator) *frame.Frame {
	tb.Helper()

	name := series.NewText("name", []string{"Alice", "Bob", "Charlie", "Dave"}, mem)
	defer name.Release()
	age := series.NewNumbers("age", []float64{25, 30, 35, 28}, mem)
	defer age.Release()
	score := series.NewNumber("score", []float64{92.5, 0, 78.0, 85.5}, []bool{true, false, true, true}, mem)
	defer score.Release()
	active := series.NewBool("active", []bool{true, false, true, true}, mem)
	defer active.Release()

	f, err := frame.New(name, age, score, active)
	require.NoError(tb, err)
	return f
}

// StandardRecords returns the record form of StandardFrame's content.
func StandardRecords() []frame.Record {
	return []frame.Record{
		{"name": "Alice", "age": 25.0, "score": 92.5, "active": true},
		{"name": "Bob", "age": 30.0, "score": nil, "active": false},
		{"name": "Charlie", "age": 35.0, "score": 78.0, "active": true},
		{"name": "Dave", "age": 28.0, "score": 85.5, "active": true},
	}
}
