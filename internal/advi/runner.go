package advi

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/MMesbahU/advi/internal/elbo"
	"github.com/MMesbahU/advi/internal/optim"
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/internal/variational"
	"github.com/MMesbahU/advi/internal/writer"
	"github.com/MMesbahU/advi/model"
)

// run executes the main stochastic-gradient-ascent loop: adaptive
// gradient steps every iteration, an ELBO evaluation and rolling-window
// convergence check every EvalElbo iterations. It mutates q in place and
// returns the number of iterations actually taken.
//
// elbo/elboPrev/elboBest all start at their literal initial values
// (0, -Inf) rather than from an ELBO evaluation up front: if EvalElbo
// exceeds MaxIterations the convergence branch never runs, and the loop
// returns having evaluated the ELBO zero times, matching the boundary
// case where a caller configures an evaluation cadence wider than the
// whole run.
//
// A cancelled ctx stops the loop early but is not treated as a failure:
// it is reported through pw exactly like reaching MaxIterations, and
// run returns a nil error so the caller still writes posterior samples
// from whatever q has become.
func run(ctx context.Context, q variational.Q, m model.Model, eta float64, cfg Config, src *rng.Source, pw *writer.Progress, dw *writer.Diagnostic) (int, error) {
	pc := optim.NewPreconditioner(q.FlatLen(), preconditionerTau)
	grad := make([]float64, q.FlatLen())
	step := make([]float64, q.FlatLen())

	buf := newRollingBuffer(rollingBufferCapacity(cfg.MaxIterations, cfg.EvalElbo))

	elboVal := 0.0
	elboBest := math.Inf(-1)

	start := cfg.now()
	iterations := 0

	for t := 1; t <= cfg.MaxIterations; t++ {
		if ctx.Err() != nil {
			pw.Printf("Informational message: the context was cancelled; stopping early after %d iterations.\n", iterations)
			return iterations, nil
		}

		if err := q.CalcGrad(grad, m, cfg.GradSamples, src); err != nil {
			return iterations, err
		}
		pc.Step(step, grad, eta)
		floats.Add(q.Params(), step)
		iterations = t

		if t%cfg.EvalElbo == 0 {
			elboPrev := elboVal
			e, err := elbo.Evaluate(q, m, cfg.ElboSamples, src)
			if err != nil {
				return iterations, err
			}
			elboVal = e
			if elboVal > elboBest {
				elboBest = elboVal
			}

			if err := dw.WriteRow(t, cfg.now().Sub(start), elboVal); err != nil {
				return iterations, err
			}

			deltaElbo := relDifference(elboPrev, elboVal)
			buf.push(deltaElbo)
			deltaMean, deltaMedian := buf.mean(), buf.median()

			note := ""
			converged := deltaMean < cfg.TolRelObj || deltaMedian < cfg.TolRelObj
			if converged {
				note = "CONVERGED"
			} else if deltaMean > 0.5 || deltaMedian > 0.5 {
				note = "MAY BE DIVERGING... INSPECT ELBO"
			}
			pw.Printf("%6d %12g %16.3f %15.3f   %s\n", t, elboVal, deltaMean, deltaMedian, note)

			if converged {
				if math.Abs(elboVal-elboBest) > 0.5 {
					pw.Printf("Informational message: the ELBO at a previous iteration was larger than the ELBO upon convergence; the variational approximation has not converged to the global optimum.\n")
				}
				return iterations, nil
			}
		}

		if t == cfg.MaxIterations {
			pw.Printf("Informational message: the maximum number of iterations was reached; the algorithm has not converged.\n")
		}
	}

	return iterations, nil
}

// relDifference returns |old-cur|/|old|: how large the last jump was
// relative to the previous ELBO. On the first evaluation old is the
// literal initial 0, so the first value pushed into the window is +Inf.
func relDifference(old, cur float64) float64 {
	return math.Abs(old-cur) / math.Abs(old)
}
