package advi

import (
	"context"
	"errors"

	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/internal/variational"
	"github.com/MMesbahU/advi/internal/writer"
	"github.com/MMesbahU/advi/model"
)

// Run fits a variational approximation to m's posterior via ADVI:
// select (or accept) a step size, run adaptive stochastic gradient
// ascent to convergence or MaxIterations, then draw Config.OutputSamples
// posterior samples.
func Run(ctx context.Context, cfg Config, m model.Model) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	d := m.NumParams()
	if d <= 0 {
		return Result{}, invalid("NumParams", d, "model must report a positive parameter count")
	}

	init := cfg.Init
	if init == nil {
		init = make([]float64, d)
	} else if len(init) != d {
		return Result{}, invalid("Init", len(init), "must have length equal to the model's parameter count")
	}

	var q variational.Q
	switch cfg.Family {
	case FullRankFamily:
		q = variational.NewFullRank(init)
	default:
		q = variational.NewMeanField(init)
	}

	src := rng.New(cfg.Seed)
	pw := writer.NewProgress(cfg.Progress)
	dw := writer.NewDiagnostic(cfg.Diagnostic)
	sw := writer.NewSample(cfg.Samples)

	eta := cfg.Eta
	if eta == 0 {
		var err error
		eta, err = tune(ctx, q, m, cfg, src, pw)
		if errors.Is(err, ErrAllStepSizesFailed) {
			return Result{Code: AllStepSizesFailed}, nil
		}
		if err != nil {
			return Result{}, err
		}
	}

	iterations, err := run(ctx, q, m, eta, cfg, src, pw, dw)
	if err != nil {
		return Result{}, err
	}

	if err := writeSamples(q, m, cfg.OutputSamples, src, sw); err != nil {
		return Result{}, err
	}

	return Result{
		Code:       OK,
		Eta:        eta,
		Iterations: iterations,
		Mean:       append([]float64(nil), q.Mean()...),
		Params:     append([]float64(nil), q.Params()...),
	}, nil
}

// writeSamples writes the posterior mean (as a degenerate zero-entropy
// draw) followed by n independent posterior draws, each paired with its
// model log-density.
func writeSamples(q variational.Q, m model.Model, n int, src *rng.Source, sw *writer.Sample) error {
	d := q.Dimension()
	if err := sw.WriteHeader(d); err != nil {
		return err
	}

	mean := q.Mean()
	lp, err := m.LogDensity(mean)
	if err != nil {
		lp = 0
	}
	if err := sw.WriteRow(lp, mean); err != nil {
		return err
	}

	z := make([]float64, d)
	for i := 0; i < n; i++ {
		q.Sample(src, z)
		lp, err := m.LogDensity(z)
		if err != nil {
			continue
		}
		if err := sw.WriteRow(lp, z); err != nil {
			return err
		}
	}
	return nil
}
