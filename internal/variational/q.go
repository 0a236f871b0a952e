// Package variational implements the parametric families ADVI optimizes
// over: a diagonal-covariance ("mean-field") Gaussian and a full-covariance
// ("full-rank") Gaussian parameterized by its Cholesky factor.
//
// Both families store a single flat []float64 parameter vector as their
// canonical representation (location concatenated with scale in
// log-space, or location concatenated with the packed lower-triangular
// Cholesky factor). Draw, entropy and gradient-accumulation all read that
// buffer directly; the optimizer in turn only ever touches it through
// plain vector arithmetic (an elementwise add of the preconditioned
// step), never
// through family-specific accessors, so the same Tuner/Runner code drives
// either family unmodified.
package variational

import (
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/model"
)

// Q is the variational family: a parametric distribution over an
// unconstrained D-dimensional real vector.
type Q interface {
	// Dimension returns D, the model's parameter count.
	Dimension() int

	// FlatLen returns the length of the flat parameter vector returned
	// by Params: 2D for mean-field, D+D(D+1)/2 for full-rank.
	FlatLen() int

	// Params returns the flat parameter vector. The returned slice
	// aliases Q's internal storage: mutating it mutates Q.
	Params() []float64

	// Mean returns the location parameter mu (length D).
	Mean() []float64

	// Sample draws a single z from the current distribution via the
	// reparameterization trick and writes it to out (length D).
	Sample(src *rng.Source, out []float64)

	// Entropy returns H(q) in closed form.
	Entropy() float64

	// CalcGrad accumulates a Monte-Carlo estimate of the ELBO gradient
	// with respect to Q's flat parameters into out (length FlatLen()),
	// averaged over nMC accepted draws, plus the analytic entropy
	// gradient. It returns ErrIllConditioned if nMC or more draws had to
	// be dropped.
	CalcGrad(out []float64, m model.Model, nMC int, src *rng.Source) error

	// ResetAt reinitializes Q in place: location <- loc, scales <- unit
	// (sigma=1 for mean-field, L=identity for full-rank).
	ResetAt(loc []float64)

	// Clone returns an independent copy of Q with the same parameters.
	Clone() Q
}
