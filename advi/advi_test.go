package advi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/MMesbahU/advi/advi"
	"github.com/MMesbahU/advi/internal/testmodel"
)

func baseConfig() advi.Config {
	return advi.Config{
		GradSamples:   1,
		ElboSamples:   100,
		EvalElbo:      50,
		MaxIterations: 3000,
		TolRelObj:     0.05,
		OutputSamples: 20,
		Seed:          7,
	}
}

// TestRun_RecoversStdNormalPosterior fits a mean-field approximation to
// a standard normal target and checks the resulting posterior mean is
// close to the known answer (0).
func TestRun_RecoversStdNormalPosterior(t *testing.T) {
	result, err := advi.Run(context.Background(), baseConfig(), testmodel.StdNormal{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := result.Mean[0]; got < -0.5 || got > 0.5 {
		t.Errorf("posterior mean = %v, want close to 0", got)
	}
}

// TestRun_SameSeedIsDeterministic checks that two runs with identical
// config and seed take the same number of iterations and land at the
// same mean, the reproducibility contract the whole package exists to
// provide.
func TestRun_SameSeedIsDeterministic(t *testing.T) {
	cfg := baseConfig()

	r1, err := advi.Run(context.Background(), cfg, testmodel.StdNormal{})
	if err != nil {
		t.Fatalf("Run (1): %v", err)
	}
	r2, err := advi.Run(context.Background(), cfg, testmodel.StdNormal{})
	if err != nil {
		t.Fatalf("Run (2): %v", err)
	}

	if r1.Iterations != r2.Iterations {
		t.Errorf("iterations: got %d and %d, want equal", r1.Iterations, r2.Iterations)
	}
	if r1.Mean[0] != r2.Mean[0] {
		t.Errorf("mean: got %v and %v, want equal", r1.Mean[0], r2.Mean[0])
	}
}

// TestRun_RejectsInvalidConfig checks that Config.Validate is consulted
// before any work begins.
func TestRun_RejectsInvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxIterations = 0

	_, err := advi.Run(context.Background(), cfg, testmodel.StdNormal{})
	if err == nil {
		t.Fatal("Run: want an error for MaxIterations=0, got nil")
	}
}

// TestRun_WritesSamplesCSV checks that the sample sink receives a
// header row, the posterior-mean row, and one row per requested output
// sample (or fewer, if some draws were dropped), each with dim+1 columns.
func TestRun_WritesSamplesCSV(t *testing.T) {
	cfg := baseConfig()
	var buf strings.Builder
	cfg.Samples = &buf

	if _, err := advi.Run(context.Background(), cfg, testmodel.StdNormal{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d lines of CSV output, want at least a header and one row", len(lines))
	}
	if lines[0] != "lp__,theta[0]" {
		t.Errorf("header: got %q, want %q", lines[0], "lp__,theta[0]")
	}
	if max := cfg.OutputSamples + 2; len(lines) > max {
		t.Errorf("got %d lines of CSV output, want at most %d (header, mean row, %d draws)", len(lines), max, cfg.OutputSamples)
	}
	for i, line := range lines {
		if n := len(strings.Split(line, ",")); n != 2 {
			t.Errorf("line %d: got %d columns, want 2 (lp__ and theta[0])", i, n)
		}
	}
}
