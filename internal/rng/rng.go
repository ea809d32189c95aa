// Package rng provides the randomness abstraction used by the shop
// generation engine. All sampling decisions flow through a Source so that
// generation is reproducible under test.
package rng

import (
	"crypto/rand"
	"math/big"
)

// Source is the randomness provider for generation decisions.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for
// any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// IntBetween returns a uniform random int in [lo, hi] inclusive.
//
// Precondition: src must be non-nil; lo <= hi.
func IntBetween(src Source, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Pick returns a uniformly sampled element of vals.
//
// Precondition: src must be non-nil; len(vals) > 0.
func Pick[T any](src Source, vals []T) T {
	return vals[src.Intn(len(vals))]
}

// CoinFlip returns true or false with equal probability.
//
// Precondition: src must be non-nil.
func CoinFlip(src Source) bool {
	return src.Intn(2) == 1
}
