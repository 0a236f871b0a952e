package variational

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/MMesbahU/advi/internal/advierr"
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/model"
)

// log2pi is ln(2*pi), used in the closed-form Gaussian entropy.
const log2pi = 1.8378770664093453

// MeanField is a diagonal-covariance Gaussian: mu in R^D, log-scale omega
// in R^D with sigma = exp(omega). Its flat parameter vector is
// [mu(0)...mu(D-1), omega(0)...omega(D-1)], length 2D.
type MeanField struct {
	d      int
	params []float64 // [mu | omega], length 2*d
	eps    []float64 // scratch, length d
	gradZ  []float64 // scratch, length d
}

// NewMeanField creates a MeanField initialized at location loc (length D)
// with unit scales (omega = 0).
func NewMeanField(loc []float64) *MeanField {
	d := len(loc)
	q := &MeanField{
		d:      d,
		params: make([]float64, 2*d),
		eps:    make([]float64, d),
		gradZ:  make([]float64, d),
	}
	copy(q.params[:d], loc)
	return q
}

func (q *MeanField) Dimension() int { return q.d }
func (q *MeanField) FlatLen() int   { return 2 * q.d }
func (q *MeanField) Params() []float64 { return q.params }
func (q *MeanField) Mean() []float64   { return q.params[:q.d] }

func (q *MeanField) mu() []float64    { return q.params[:q.d] }
func (q *MeanField) omega() []float64 { return q.params[q.d:] }

// Sample draws z = mu + sigma*eps, eps ~ N(0, I), writing z into out.
func (q *MeanField) Sample(src *rng.Source, out []float64) {
	mu, omega := q.mu(), q.omega()
	src.FillNormal(q.eps)
	for i := 0; i < q.d; i++ {
		out[i] = mu[i] + math.Exp(omega[i])*q.eps[i]
	}
}

// Entropy returns sum(omega) + (D/2)*(1 + log 2*pi).
func (q *MeanField) Entropy() float64 {
	return floats.Sum(q.omega()) + float64(q.d)/2*(1+log2pi)
}

// CalcGrad accumulates the reparameterization-trick gradient estimate of
// the ELBO with respect to [mu, omega] into out, averaged over nMC draws,
// plus the analytic entropy gradient (dH/dmu = 0, dH/domega_i = 1).
func (q *MeanField) CalcGrad(out []float64, m model.Model, nMC int, src *rng.Source) error {
	for i := range out {
		out[i] = 0
	}
	dMu, dOmega := out[:q.d], out[q.d:]

	mu, omega := q.mu(), q.omega()
	z := make([]float64, q.d)

	accepted, dropped := 0, 0
	for accepted < nMC {
		src.FillNormal(q.eps)
		for i := 0; i < q.d; i++ {
			z[i] = mu[i] + math.Exp(omega[i])*q.eps[i]
		}

		_, err := m.LogDensityGrad(z, q.gradZ)
		if err != nil || !finiteSlice(q.gradZ) {
			dropped++
			if dropped >= nMC {
				return advierr.ErrIllConditioned
			}
			continue
		}

		for i := 0; i < q.d; i++ {
			dMu[i] += q.gradZ[i]
			dOmega[i] += q.gradZ[i] * math.Exp(omega[i]) * q.eps[i]
		}
		accepted++
	}

	scale := 1 / float64(nMC)
	floats.Scale(scale, dMu)
	floats.Scale(scale, dOmega)

	// Analytic entropy gradient: dH/domega_i = 1.
	for i := range dOmega {
		dOmega[i] += 1
	}
	return nil
}

// ResetAt reinitializes location to loc and scales to unit (omega = 0).
func (q *MeanField) ResetAt(loc []float64) {
	copy(q.mu(), loc)
	omega := q.omega()
	for i := range omega {
		omega[i] = 0
	}
}

// Clone returns an independent copy.
func (q *MeanField) Clone() Q {
	c := &MeanField{
		d:      q.d,
		params: append([]float64(nil), q.params...),
		eps:    make([]float64, q.d),
		gradZ:  make([]float64, q.d),
	}
	return c
}

func finiteSlice(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
