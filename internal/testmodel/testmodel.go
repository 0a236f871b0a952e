// Package testmodel provides small closed-form Model implementations
// used to exercise the ADVI fitting loop against known posteriors,
// in the spirit of the closed-form target functions (e.g. Rastrigin)
// used to drive Metropolis-Hastings samplers under test.
package testmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/MMesbahU/advi/model"
)

// StdNormal is a 1-D standard normal target: log p(z) = -z^2/2.
// Its exact posterior mean is 0 and exact posterior variance is 1, so a
// converged mean-field fit should recover mu=0, sigma=1 closely.
type StdNormal struct{}

func (StdNormal) NumParams() int { return 1 }

func (StdNormal) LogDensity(z []float64) (float64, error) {
	return -0.5 * z[0] * z[0], nil
}

func (StdNormal) LogDensityGrad(z, grad []float64) (float64, error) {
	grad[0] = -z[0]
	return -0.5 * z[0] * z[0], nil
}

// CorrelatedGaussian is a D-dimensional Gaussian target with an
// arbitrary mean and positive-definite covariance, used to check that
// the full-rank family (unlike mean-field) can recover off-diagonal
// posterior correlation.
type CorrelatedGaussian struct {
	mean []float64
	prec *mat.SymDense // inverse of the covariance
}

// NewCorrelatedGaussian builds a target N(mean, cov). cov must be
// symmetric positive-definite.
func NewCorrelatedGaussian(mean []float64, cov *mat.SymDense) *CorrelatedGaussian {
	d := len(mean)
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		panic("testmodel: cov is not positive-definite")
	}
	prec := mat.NewSymDense(d, nil)
	if err := chol.InverseTo(prec); err != nil {
		panic(err)
	}
	return &CorrelatedGaussian{mean: mean, prec: prec}
}

func (m *CorrelatedGaussian) NumParams() int { return len(m.mean) }

func (m *CorrelatedGaussian) LogDensity(z []float64) (float64, error) {
	d := len(m.mean)
	diff := mat.NewVecDense(d, nil)
	for i := 0; i < d; i++ {
		diff.SetVec(i, z[i]-m.mean[i])
	}
	var tmp mat.VecDense
	tmp.MulVec(m.prec, diff)
	return -0.5 * mat.Dot(diff, &tmp), nil
}

func (m *CorrelatedGaussian) LogDensityGrad(z, grad []float64) (float64, error) {
	d := len(m.mean)
	diff := mat.NewVecDense(d, nil)
	for i := 0; i < d; i++ {
		diff.SetVec(i, z[i]-m.mean[i])
	}
	var tmp mat.VecDense
	tmp.MulVec(m.prec, diff)
	for i := 0; i < d; i++ {
		grad[i] = -tmp.AtVec(i)
	}
	return -0.5 * mat.Dot(diff, &tmp), nil
}

// Funnel is Neal's funnel: a pathological 2-D target whose geometry
// sharply narrows along one axis. Far from the origin its density is not
// representable, and LogDensity reports the draw as dropped (an error
// wrapping model.ErrDrawDropped) instead of a non-finite value.
type Funnel struct{}

func (Funnel) NumParams() int { return 2 }

func (Funnel) LogDensity(z []float64) (float64, error) {
	v, x := z[0], z[1]
	lp := -0.5*v*v/9 - 0.5*math.Log(2*math.Pi*9)
	sigma2 := math.Exp(v)
	if math.IsInf(sigma2, 1) || sigma2 == 0 {
		return 0, errNonFinite
	}
	lp += -0.5*x*x/sigma2 - 0.5*math.Log(2*math.Pi*sigma2)
	if math.IsNaN(lp) || math.IsInf(lp, 0) {
		return 0, errNonFinite
	}
	return lp, nil
}

func (f Funnel) LogDensityGrad(z, grad []float64) (float64, error) {
	v, x := z[0], z[1]
	sigma2 := math.Exp(v)
	if math.IsInf(sigma2, 1) || sigma2 == 0 {
		return 0, errNonFinite
	}
	grad[0] = -v/9 - 0.5 + 0.5*x*x/sigma2
	grad[1] = -x / sigma2
	return f.LogDensity(z)
}

var errNonFinite = fmt.Errorf("testmodel: draw outside the representable domain: %w", model.ErrDrawDropped)

// NoGradient is a well-posed standard-normal target whose gradient is
// always unavailable, used to force a candidate step size to fail
// regardless of how well-behaved the density itself is.
type NoGradient struct{}

func (NoGradient) NumParams() int { return 1 }

func (NoGradient) LogDensity(z []float64) (float64, error) {
	return -0.5 * z[0] * z[0], nil
}

func (NoGradient) LogDensityGrad(z, grad []float64) (float64, error) {
	return 0, errNoGradient
}

var errNoGradient = fmt.Errorf("testmodel: gradient unavailable: %w", model.ErrDrawDropped)

// FlatModel is an improper flat target: constant, with a zero gradient,
// everywhere inside [-Threshold, Threshold], and unrepresentable outside
// it. Its zero gradient gives a mean-field fit nothing to push back
// against, so the entropy term alone drives the variational scale
// upward without bound; a large step size eventually pushes draws past
// Threshold, while a small one keeps the scale bounded well within it.
// Used to exercise the Tuner's rejection of a diverging candidate.
type FlatModel struct {
	Threshold float64
}

func (FlatModel) NumParams() int { return 1 }

func (m FlatModel) LogDensity(z []float64) (float64, error) {
	if math.Abs(z[0]) > m.Threshold {
		return 0, errFlatOutOfRange
	}
	return 0, nil
}

func (m FlatModel) LogDensityGrad(z, grad []float64) (float64, error) {
	if math.Abs(z[0]) > m.Threshold {
		return 0, errFlatOutOfRange
	}
	grad[0] = 0
	return 0, nil
}

var errFlatOutOfRange = fmt.Errorf("testmodel: draw outside the representable domain: %w", model.ErrDrawDropped)
