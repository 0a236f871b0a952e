// Package rng exposes the seeded pseudorandom source consumed by the
// variational family and the ADVI engine.
//
// # Basic Usage
//
//	src := rng.New(42)
//	z := src.Normal()
package rng

import "github.com/MMesbahU/advi/internal/rng"

// Source is a uniform pseudorandom source sufficient to draw standard
// normal variates. Identical seed implies an identical draw sequence.
type Source = rng.Source

// New returns a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return rng.New(seed)
}
