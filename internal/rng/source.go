// Package rng provides the seeded pseudorandom source ADVI draws standard
// normals from.
//
// Reproducibility is the whole point of this package: given the same seed,
// Source.Normal must return the same sequence every time, so that two runs
// with identical (seed, config) produce bitwise-identical trajectories
// (see the determinism property in the specification).
package rng

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a uniform pseudorandom source sufficient to draw standard
// normal variates, reused across the whole ADVI run (tune phase and run
// phase draw from the same logical stream).
type Source struct {
	normal distuv.Normal
}

// New returns a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return &Source{
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

// Normal draws a single standard-normal variate.
func (s *Source) Normal() float64 {
	return s.normal.Rand()
}

// FillNormal fills out with independent standard-normal draws.
func (s *Source) FillNormal(out []float64) {
	for i := range out {
		out[i] = s.normal.Rand()
	}
}
