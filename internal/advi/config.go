package advi

import (
	"io"
	"time"
)

// Family selects the variational family Run fits.
type Family int

const (
	// MeanField is the diagonal-covariance Gaussian family.
	MeanField Family = iota
	// FullRankFamily is the full-covariance (Cholesky-parameterized) Gaussian family.
	FullRankFamily
)

// StepSizeLadder is the fixed set of candidate base learning rates the
// Tuner selects among, in the order they are tried.
var StepSizeLadder = []float64{1.0, 0.5, 0.1, 0.05, 0.01}

// TunerIterations is the number of gradient-ascent iterations each
// candidate on the ladder is run for before its ELBO is evaluated.
const TunerIterations = 50

// preconditionerTau is the additive stabilizer tau in the step
// eta/sqrt(t) * g / (tau + sqrt(s)).
const preconditionerTau = 1.0

// Config holds the ADVI entry point's configuration. Positivity is
// checked once, by Validate, rather than silently defaulted: a violation
// must fail fast with ErrInvalidArgument (see the error-handling
// taxonomy), not proceed with a guessed value.
type Config struct {
	Family Family // Mean-field or full-rank variational family.

	Init []float64 // Starting location; zero vector if nil.
	Seed uint64    // RNG seed; identical seed implies identical trajectory.

	Eta           float64 // Base learning rate; 0 triggers the Tuner.
	TolRelObj     float64 // Rolling relative-ELBO-change convergence threshold.
	MaxIterations int     // Runner iteration cap.
	EvalElbo      int     // Iterations between ELBO evaluations.
	GradSamples   int     // Monte-Carlo draws per gradient estimate.
	ElboSamples   int     // Monte-Carlo draws per ELBO evaluation.
	OutputSamples int     // Posterior draws written at the end of a run.

	Progress   io.Writer // Human-readable progress sink; nil disables it.
	Samples    io.Writer // Posterior-mean and posterior-draw sink; nil disables it.
	Diagnostic io.Writer // Per-evaluation ELBO CSV sink; nil disables it.

	// Now returns the current time, used only to timestamp diagnostic
	// rows. Defaults to time.Now; tests inject a deterministic clock to
	// get byte-identical diagnostic CSVs across repeated runs.
	Now func() time.Time
}

// Validate checks every positivity constraint the specification
// requires, returning a *ConfigError wrapping ErrInvalidArgument on the
// first violation found.
func (c Config) Validate() error {
	switch {
	case c.GradSamples <= 0:
		return invalid("GradSamples", c.GradSamples, "must be positive")
	case c.ElboSamples <= 0:
		return invalid("ElboSamples", c.ElboSamples, "must be positive")
	case c.EvalElbo <= 0:
		return invalid("EvalElbo", c.EvalElbo, "must be positive")
	case c.OutputSamples <= 0:
		return invalid("OutputSamples", c.OutputSamples, "must be positive")
	case c.TolRelObj <= 0:
		return invalid("TolRelObj", c.TolRelObj, "must be positive")
	case c.MaxIterations <= 0:
		return invalid("MaxIterations", c.MaxIterations, "must be positive")
	case c.Eta < 0:
		return invalid("Eta", c.Eta, "must be non-negative")
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
