// Package permute supplies the random reordering primitive behind Shuffle
// and random element access. The source is seeded from the global
// configuration so that shuffles can be made reproducible in tests.
package permute

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okapi-data/okapi/internal/config"
)

var (
	mu  sync.Mutex
	rng *rand.Rand
)

func source() *rand.Rand {
	if rng == nil {
		seed := config.GetGlobalConfig().Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1))
	}
	return rng
}

// Reseed resets the source to a fixed seed. Subsequent Perm and IntN calls
// form a deterministic sequence.
func Reseed(seed int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1))
}

// Perm returns one uniformly random permutation of [0, n).
func Perm(n int) []int {
	mu.Lock()
	defer mu.Unlock()
	return source().Perm(n)
}

// IntN returns a uniformly random int in [0, n). n must be positive.
func IntN(n int) int {
	mu.Lock()
	defer mu.Unlock()
	return source().IntN(n)
}
