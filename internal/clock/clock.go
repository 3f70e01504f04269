package clock

import (
	"math/rand"
	"time"
)

// Clock abstracts time so the engine stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// RandomSource yields uniform integers for micro-break interval
// scheduling. Injecting it keeps scheduling reproducible under test.
type RandomSource interface {
	// UniformInt returns a uniform integer in [min, max] inclusive.
	// min > max is a programmer error and panics.
	UniformInt(min, max int) int
}

// PRNG is the production RandomSource backed by math/rand.
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG creates a PRNG seeded from the given value.
func NewPRNG(seed int64) *PRNG {
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

func (p *PRNG) UniformInt(min, max int) int {
	if min > max {
		panic("clock: UniformInt called with min > max")
	}
	return min + p.rng.Intn(max-min+1)
}
