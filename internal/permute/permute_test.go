package permute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerm_IsPermutation(t *testing.T) {
	Reseed(1)

	perm := Perm(10)
	require.Len(t, perm, 10)

	seen := make(map[int]bool, 10)
	for _, p := range perm {
		assert.GreaterOrEqual(t, p, 0)
		assert.Less(t, p, 10)
		assert.False(t, seen[p], "position repeated")
		seen[p] = true
	}
}

func TestPerm_Deterministic(t *testing.T) {
	Reseed(42)
	first := Perm(20)

	Reseed(42)
	second := Perm(20)

	assert.Equal(t, first, second)
}

func TestIntN_Bounds(t *testing.T) {
	Reseed(7)

	for range 100 {
		v := IntN(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestPerm_Empty(t *testing.T) {
	Reseed(3)
	assert.Empty(t, Perm(0))
}
