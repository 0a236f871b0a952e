// Package elbo computes a Monte-Carlo estimate of the Evidence Lower
// Bound for a given variational distribution.
package elbo

import (
	"math"

	"github.com/MMesbahU/advi/internal/advierr"
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/internal/variational"
	"github.com/MMesbahU/advi/model"
)

// Evaluate estimates ELBO(q) = E_q[log p(z)] + H(q) by averaging the
// model log-density over n independent draws from q, then adding q's
// closed-form entropy.
//
// Draws whose log-density is non-finite, or whose evaluation fails with a
// recoverable model error, are dropped (not counted, not treated as
// zero). If n or more draws are dropped before n are accepted, Evaluate
// returns advierr.ErrIllConditioned: q is entirely in a region the model
// cannot evaluate.
func Evaluate(q variational.Q, m model.Model, n int, src *rng.Source) (float64, error) {
	z := make([]float64, q.Dimension())

	sum := 0.0
	accepted, dropped := 0, 0
	for accepted < n {
		q.Sample(src, z)

		lp, err := m.LogDensity(z)
		if err != nil || math.IsNaN(lp) || math.IsInf(lp, 0) {
			dropped++
			if dropped >= n {
				return 0, advierr.ErrIllConditioned
			}
			continue
		}

		sum += lp
		accepted++
	}

	return sum/float64(n) + q.Entropy(), nil
}
