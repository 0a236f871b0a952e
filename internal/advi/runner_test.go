package advi

import (
	"context"
	"strings"
	"testing"

	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/internal/testmodel"
	"github.com/MMesbahU/advi/internal/variational"
	"github.com/MMesbahU/advi/internal/writer"
)

// TestRun_ConvergesOnStdNormal checks that the Runner reaches the
// convergence branch (iterations < MaxIterations) on a well-behaved
// target with a generous tolerance.
func TestRun_ConvergesOnStdNormal(t *testing.T) {
	q := variational.NewMeanField([]float64{2})
	m := testmodel.StdNormal{}
	cfg := Config{
		GradSamples:   1,
		ElboSamples:   200,
		EvalElbo:      25,
		MaxIterations: 2000,
		TolRelObj:     0.05,
	}
	src := rng.New(1)
	pw := writer.NewProgress(nil)
	dw := writer.NewDiagnostic(nil)

	iterations, err := run(context.Background(), q, m, 0.5, cfg, src, pw, dw)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if iterations >= cfg.MaxIterations {
		t.Errorf("iterations = %d, want convergence before MaxIterations", iterations)
	}
	if iterations%cfg.EvalElbo != 0 {
		t.Errorf("iterations = %d, want a multiple of EvalElbo (the loop only exits inside the eval branch)", iterations)
	}
}

// TestRun_EvalElboLargerThanMaxIterationsNeverEvaluates checks the
// boundary case: when EvalElbo exceeds MaxIterations the convergence
// branch never fires and the diagnostic writer never receives a row.
func TestRun_EvalElboLargerThanMaxIterationsNeverEvaluates(t *testing.T) {
	q := variational.NewMeanField([]float64{0})
	m := testmodel.StdNormal{}
	cfg := Config{
		GradSamples:   1,
		ElboSamples:   10,
		EvalElbo:      1000,
		MaxIterations: 10,
		TolRelObj:     0.01,
	}
	src := rng.New(1)
	pw := writer.NewProgress(nil)

	var diagBuf strings.Builder
	dw := writer.NewDiagnostic(&diagBuf)

	iterations, err := run(context.Background(), q, m, 0.1, cfg, src, pw, dw)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if iterations != cfg.MaxIterations {
		t.Errorf("iterations = %d, want %d", iterations, cfg.MaxIterations)
	}
	if diagBuf.Len() != 0 {
		t.Errorf("diagnostic writer received output: %q, want none", diagBuf.String())
	}
}

// TestRun_RespectsContextCancellation checks that an already-cancelled
// context stops the loop immediately without being treated as a
// failure: it is a non-fatal early stop, just like reaching
// MaxIterations, so the caller can still proceed to write samples.
func TestRun_RespectsContextCancellation(t *testing.T) {
	q := variational.NewMeanField([]float64{0})
	m := testmodel.StdNormal{}
	cfg := Config{
		GradSamples:   1,
		ElboSamples:   10,
		EvalElbo:      10,
		MaxIterations: 1000,
		TolRelObj:     0.01,
	}
	src := rng.New(1)
	pw := writer.NewProgress(nil)
	dw := writer.NewDiagnostic(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iterations, err := run(ctx, q, m, 0.1, cfg, src, pw, dw)
	if err != nil {
		t.Fatalf("run: got %v, want nil (cancellation is non-fatal)", err)
	}
	if iterations != 0 {
		t.Errorf("iterations = %d, want 0 (cancelled before the first step)", iterations)
	}
}
