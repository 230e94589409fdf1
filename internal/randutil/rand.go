// Package randutil derives reproducible random sources from a single seed.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Both PCG words
// are derived from the one int64 so a session can be replayed from the seed
// alone.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Coin is a fair coin backed by a *rand.Rand. It satisfies pong.Coin.
type Coin struct {
	r *rand.Rand
}

// NewCoin returns a coin seeded from seed.
func NewCoin(seed int64) *Coin {
	return CoinFrom(New(seed))
}

// CoinFrom wraps an existing generator. The coin and any other user of r
// share one stream.
func CoinFrom(r *rand.Rand) *Coin {
	return &Coin{r: r}
}

// Flip returns true or false with equal probability.
func (c *Coin) Flip() bool {
	return c.r.IntN(2) == 1
}
