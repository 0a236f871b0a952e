package advi

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MMesbahU/advi/internal/advierr"
	"github.com/MMesbahU/advi/internal/rng"
	"github.com/MMesbahU/advi/internal/testmodel"
	"github.com/MMesbahU/advi/internal/variational"
	"github.com/MMesbahU/advi/internal/writer"
)

// TestTune_PicksAStepSizeForStdNormal checks that tuning against a
// well-behaved 1-D target succeeds and leaves q reset to its initial
// state (the Tuner only probes; it never hands off a trained q).
func TestTune_PicksAStepSizeForStdNormal(t *testing.T) {
	q := variational.NewMeanField([]float64{3})
	m := testmodel.StdNormal{}
	cfg := Config{GradSamples: 1, ElboSamples: 50}
	src := rng.New(1)
	pw := writer.NewProgress(nil)

	eta, err := tune(context.Background(), q, m, cfg, src, pw)
	if err != nil {
		t.Fatalf("tune: %v", err)
	}

	found := false
	for _, candidate := range StepSizeLadder {
		if candidate == eta {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("eta = %v is not on StepSizeLadder", eta)
	}

	if got, want := q.Mean()[0], 3.0; got != want {
		t.Errorf("q.Mean() after tune: got %v, want %v (q must be reset to init)", got, want)
	}
}

// TestTune_AllStepSizesFailWhenGradientIsUnavailable checks that a
// model whose gradient always errors deterministically fails every
// candidate on the ladder and surfaces ErrAllStepSizesFailed.
func TestTune_AllStepSizesFailWhenGradientIsUnavailable(t *testing.T) {
	q := variational.NewMeanField([]float64{0})
	m := testmodel.NoGradient{}
	cfg := Config{GradSamples: 1, ElboSamples: 50}
	src := rng.New(1)
	pw := writer.NewProgress(nil)

	eta, err := tune(context.Background(), q, m, cfg, src, pw)
	if !errors.Is(err, advierr.ErrAllStepSizesFailed) {
		t.Fatalf("tune: got err = %v, want ErrAllStepSizesFailed", err)
	}
	if eta != 0 {
		t.Errorf("eta = %v, want 0 on failure", eta)
	}
}

// TestTune_RejectsDivergingStepSize checks that a candidate whose
// variational scale runs away (FlatModel's zero gradient gives it
// nothing to push back against) fails and is excluded from the final
// selection, while a smaller step size on the ladder still succeeds.
func TestTune_RejectsDivergingStepSize(t *testing.T) {
	q := variational.NewMeanField([]float64{0})
	m := testmodel.FlatModel{Threshold: 200}
	cfg := Config{GradSamples: 1, ElboSamples: 50}
	src := rng.New(1)
	var progress strings.Builder
	pw := writer.NewProgress(&progress)

	eta, err := tune(context.Background(), q, m, cfg, src, pw)
	if err != nil {
		t.Fatalf("tune: %v", err)
	}
	if eta == StepSizeLadder[0] {
		t.Errorf("eta = %v, want a step size smaller than the diverging first rung", eta)
	}

	out := progress.String()
	if !strings.Contains(out, "FAILED.") {
		t.Errorf("progress output %q: want a FAILED. line for the diverging candidate", out)
	}
	if !strings.Contains(out, "SUCCESS.") {
		t.Errorf("progress output %q: want a SUCCESS. line once a step size is accepted", out)
	}
}
