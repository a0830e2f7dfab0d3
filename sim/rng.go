package sim

import (
	"math/rand"
	"time"
)

// Clock supplies the current time. Injected in tests to pin intervals.
type Clock func() time.Time

// UTCClock is the default Clock: wall time normalized to UTC.
func UTCClock() time.Time {
	return time.Now().UTC()
}

// Provider is the single source of randomness and time for dataset
// generation. Two Providers constructed with the same seed produce
// identical value sequences for identical call sequences, which is what
// makes generator output reproducible across runs and across tests.
//
// Thread-safety: NOT thread-safe. The owning service serializes access.
type Provider struct {
	seed  int64
	rng   *rand.Rand
	clock Clock
}

// NewProvider creates a Provider seeded with seed and the UTC wall clock.
func NewProvider(seed int64) *Provider {
	return NewProviderWithClock(seed, UTCClock)
}

// NewProviderWithClock creates a Provider with an explicit clock.
func NewProviderWithClock(seed int64, clock Clock) *Provider {
	if clock == nil {
		clock = UTCClock
	}
	return &Provider{
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
		clock: clock,
	}
}

// Seed returns the seed this Provider was constructed with.
func (p *Provider) Seed() int64 {
	return p.seed
}

// RandInt returns a uniform random integer in [a, b], bounds inclusive.
// A zero-width range (a == b) is valid and returns a.
func (p *Provider) RandInt(a, b int) int {
	if a >= b {
		return a
	}
	return a + p.rng.Intn(b-a+1)
}

// Choice returns a uniform random index in [0, n). n must be positive.
func (p *Provider) Choice(n int) int {
	return p.rng.Intn(n)
}

// Float64 returns a uniform random float64 in [0, 1).
func (p *Provider) Float64() float64 {
	return p.rng.Float64()
}

// Now returns the current time from the injected clock, in UTC.
func (p *Provider) Now() time.Time {
	return p.clock().UTC()
}
