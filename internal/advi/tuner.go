package advi

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/MMesbahU/advi/internal/advierr"
	"github.com/MMesbahU/advi/internal/elbo"
	"github.com/MMesbahU/advi/internal/optim"
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/internal/variational"
	"github.com/MMesbahU/advi/internal/writer"
	"github.com/MMesbahU/advi/model"
)

// tune selects a base learning rate eta from StepSizeLadder by running
// TunerIterations of adaptive gradient ascent per candidate and comparing
// the resulting ELBO, per the selection rule in the specification: a
// candidate's ELBO only has to be *recorded* as the new best (no
// improvement over eps0 required); the Tuner stops early and returns the
// previous candidate's eta the moment a candidate is strictly worse than
// a prior best that itself beat eps0.
//
// q is reset (to init, unit scale) before every candidate and again
// before returning, so the caller always receives q at its initial state
// regardless of which eta was chosen.
func tune(ctx context.Context, q variational.Q, m model.Model, cfg Config, src *rng.Source, pw *writer.Progress) (float64, error) {
	init := append([]float64(nil), q.Mean()...)

	q.ResetAt(init)
	elbo0, err := elbo.Evaluate(q, m, cfg.ElboSamples, src)
	if err != nil {
		return 0, err
	}
	pw.Printf("initial ELBO = %g\n", elbo0)

	grad := make([]float64, q.FlatLen())
	step := make([]float64, q.FlatLen())

	var bestEta, bestElbo float64
	haveBest := false

	for _, eta := range StepSizeLadder {
		q.ResetAt(init)
		pc := optim.NewPreconditioner(q.FlatLen(), preconditionerTau)

		candidateElbo, ok := runCandidate(ctx, q, m, eta, cfg.GradSamples, cfg.ElboSamples, src, pc, grad, step)
		if !ok {
			candidateElbo = math.Inf(-1)
			pw.Printf("eta = %g: FAILED.\n", eta)
		} else {
			pw.Printf("eta = %g: ELBO = %g\n", eta, candidateElbo)
		}

		if !haveBest {
			bestEta, bestElbo, haveBest = eta, candidateElbo, true
			continue
		}

		if candidateElbo < bestElbo && bestElbo > elbo0 {
			pw.Printf("SUCCESS. USING PREVIOUS ONE.\n")
			q.ResetAt(init)
			return bestEta, nil
		}

		bestEta, bestElbo = eta, candidateElbo
	}

	q.ResetAt(init)
	if bestElbo > elbo0 {
		pw.Printf("SUCCESS. USING CURRENT ONE.\n")
		return bestEta, nil
	}

	pw.Printf("ALL STEP SIZES FAILED.\n")
	return 0, advierr.ErrAllStepSizesFailed
}

// runCandidate runs TunerIterations of adaptive gradient ascent on q for
// the given eta and returns the resulting ELBO. ok is false if the
// gradient or ELBO evaluation hit ErrIllConditioned (too many dropped
// draws), which the spec treats the same as a candidate that diverged.
func runCandidate(ctx context.Context, q variational.Q, m model.Model, eta float64, gradSamples, elboSamples int, src *rng.Source, pc *optim.Preconditioner, grad, step []float64) (float64, bool) {
	for iter := 1; iter <= TunerIterations; iter++ {
		if ctx.Err() != nil {
			return 0, false
		}
		if err := q.CalcGrad(grad, m, gradSamples, src); err != nil {
			return 0, false
		}
		pc.Step(step, grad, eta)
		floats.Add(q.Params(), step)
	}

	e, err := elbo.Evaluate(q, m, elboSamples, src)
	if err != nil || math.IsNaN(e) || math.IsInf(e, 0) {
		return 0, false
	}
	return e, true
}
