package variational

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/MMesbahU/advi/internal/advierr"
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/model"
)

// FullRank is a multivariate Gaussian parameterized by its location mu and
// the lower-triangular Cholesky factor L of its covariance (Sigma = L
// L^T). Its flat parameter vector is [mu(0)...mu(D-1), packed(L)], where
// packed(L) lists L row by row, each row i contributing its first i+1
// entries (L_i0, ..., L_ii); length D + D(D+1)/2.
type FullRank struct {
	d      int
	params []float64 // [mu | packed L]
	eps    []float64 // scratch, length d
	gradZ  []float64 // scratch, length d
	lBuf   *mat.Dense // d x d, refreshed from params on demand
}

// NewFullRank creates a FullRank initialized at location loc (length D)
// with L = identity (unit marginal scales, zero correlation).
func NewFullRank(loc []float64) *FullRank {
	d := len(loc)
	q := &FullRank{
		d:      d,
		params: make([]float64, d+packedLen(d)),
		eps:    make([]float64, d),
		gradZ:  make([]float64, d),
		lBuf:   mat.NewDense(d, d, nil),
	}
	copy(q.params[:d], loc)
	q.setIdentityL()
	return q
}

func packedLen(d int) int { return d * (d + 1) / 2 }

// packedIndex returns the offset, within the packed-L section, of L_ij for
// j <= i.
func packedIndex(i, j int) int { return i*(i+1)/2 + j }

func (q *FullRank) Dimension() int     { return q.d }
func (q *FullRank) FlatLen() int       { return len(q.params) }
func (q *FullRank) Params() []float64  { return q.params }
func (q *FullRank) Mean() []float64    { return q.params[:q.d] }

func (q *FullRank) mu() []float64  { return q.params[:q.d] }
func (q *FullRank) lFlat() []float64 { return q.params[q.d:] }

func (q *FullRank) lEntry(i, j int) float64 {
	return q.lFlat()[packedIndex(i, j)]
}

func (q *FullRank) setIdentityL() {
	lf := q.lFlat()
	for i := range lf {
		lf[i] = 0
	}
	for i := 0; i < q.d; i++ {
		lf[packedIndex(i, i)] = 1
	}
}

// refreshLBuf rebuilds the dense d x d view of L from the packed flat
// storage (lBuf is pre-allocated once at construction; this only rewrites
// its entries, no allocation).
func (q *FullRank) refreshLBuf() {
	q.lBuf.Zero()
	for i := 0; i < q.d; i++ {
		for j := 0; j <= i; j++ {
			q.lBuf.Set(i, j, q.lEntry(i, j))
		}
	}
}

// LMatrix returns a dense d x d copy of the current Cholesky factor L.
// Exported for property tests that check L L^T against a target
// covariance.
func (q *FullRank) LMatrix() *mat.Dense {
	q.refreshLBuf()
	out := mat.NewDense(q.d, q.d, nil)
	out.Copy(q.lBuf)
	return out
}

// Sample draws z = mu + L*eps, eps ~ N(0, I), writing z into out.
func (q *FullRank) Sample(src *rng.Source, out []float64) {
	q.refreshLBuf()
	src.FillNormal(q.eps)
	epsVec := mat.NewVecDense(q.d, q.eps)
	zVec := mat.NewVecDense(q.d, out)
	zVec.MulVec(q.lBuf, epsVec)
	floats.Add(out, q.mu())
}

// Entropy returns sum(log L_ii) + (D/2)*(1 + log 2*pi).
func (q *FullRank) Entropy() float64 {
	h := 0.0
	for i := 0; i < q.d; i++ {
		h += math.Log(q.lEntry(i, i))
	}
	return h + float64(q.d)/2*(1+log2pi)
}

// CalcGrad accumulates the reparameterization-trick gradient estimate of
// the ELBO with respect to [mu, packed L] into out, averaged over nMC
// draws, plus the analytic entropy gradient (dH/dmu = 0,
// dH/dL_ii = 1/L_ii, dH/dL_ij = 0 for i != j).
func (q *FullRank) CalcGrad(out []float64, m model.Model, nMC int, src *rng.Source) error {
	for i := range out {
		out[i] = 0
	}
	dMu, dL := out[:q.d], out[q.d:]

	z := make([]float64, q.d)
	accepted, dropped := 0, 0
	for accepted < nMC {
		q.refreshLBuf()
		src.FillNormal(q.eps)
		for i := 0; i < q.d; i++ {
			acc := q.mu()[i]
			for j := 0; j <= i; j++ {
				acc += q.lEntry(i, j) * q.eps[j]
			}
			z[i] = acc
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
			for j := 0; j <= i; j++ {
				dL[packedIndex(i, j)] += q.gradZ[i] * q.eps[j]
			}
		}
		accepted++
	}

	scale := 1 / float64(nMC)
	floats.Scale(scale, dMu)
	floats.Scale(scale, dL)

	for i := 0; i < q.d; i++ {
		dL[packedIndex(i, i)] += 1 / q.lEntry(i, i)
	}
	return nil
}

// ResetAt reinitializes location to loc and L to identity.
func (q *FullRank) ResetAt(loc []float64) {
	copy(q.mu(), loc)
	q.setIdentityL()
}

// Clone returns an independent copy.
func (q *FullRank) Clone() Q {
	c := &FullRank{
		d:      q.d,
		params: append([]float64(nil), q.params...),
		eps:    make([]float64, q.d),
		gradZ:  make([]float64, q.d),
		lBuf:   mat.NewDense(q.d, q.d, nil),
	}
	return c
}
