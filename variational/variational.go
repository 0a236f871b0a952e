// Package variational re-exports the variational families ADVI fits,
// for callers building their own optimizer loop around them instead of
// going through advi.Run.
package variational

import (
	internal "github.com/MMesbahU/advi/internal/variational"
)

// Q is the variational family interface: a parametric distribution over
// an unconstrained D-dimensional real vector.
type Q = internal.Q

// MeanField is a diagonal-covariance Gaussian.
type MeanField = internal.MeanField

// NewMeanField creates a MeanField initialized at location loc with unit
// scales.
func NewMeanField(loc []float64) *MeanField {
	return internal.NewMeanField(loc)
}

// FullRank is a multivariate Gaussian parameterized by its location and
// the Cholesky factor of its covariance.
type FullRank = internal.FullRank

// NewFullRank creates a FullRank initialized at location loc with L set
// to the identity.
func NewFullRank(loc []float64) *FullRank {
	return internal.NewFullRank(loc)
}
