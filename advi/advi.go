// Package advi implements Automatic Differentiation Variational
// Inference: a black-box, gradient-based approximation to a Bayesian
// posterior that works against any model exposing an unconstrained-space
// log-density and gradient (see the model package).
//
// # Overview
//
// Run fits a Gaussian variational family (mean-field or full-rank) to
// the posterior by stochastic gradient ascent on a Monte-Carlo estimate
// of the Evidence Lower Bound, using the reparameterization trick to get
// low-variance gradients. A caller supplying Eta=0 gets an automatic
// step-size search first; otherwise the supplied step size is used
// directly.
//
// # Basic Usage
//
//	cfg := advi.Config{
//	    GradSamples:   1,
//	    ElboSamples:   100,
//	    EvalElbo:      100,
//	    MaxIterations: 10000,
//	    TolRelObj:     0.01,
//	    OutputSamples: 1000,
//	    Seed:          42,
//	}
//	result, err := advi.Run(context.Background(), cfg, myModel)
package advi

import (
	"context"

	internal "github.com/MMesbahU/advi/internal/advi"
	"github.com/MMesbahU/advi/model"
)

// Family selects the variational family Run fits: MeanField (diagonal
// covariance) or FullRank (dense covariance via a Cholesky factor).
type Family = internal.Family

const (
	// MeanField is the diagonal-covariance Gaussian family. O(D) per
	// draw; the default choice for high-dimensional models.
	MeanField = internal.MeanField
	// FullRank is the full-covariance Gaussian family. O(D^2) per draw;
	// captures posterior correlation at a cost that scales quadratically.
	FullRank = internal.FullRankFamily
)

// StepSizeLadder is the fixed sequence of candidate base learning rates
// the automatic step-size search tries, in order, when Config.Eta is 0.
var StepSizeLadder = internal.StepSizeLadder

// Config configures a Run call.
type Config = internal.Config

// ConfigError reports a single invalid Config field.
type ConfigError = internal.ConfigError

// ExitCode classifies how Run terminated.
type ExitCode = internal.ExitCode

const (
	// OK means the Runner converged or exhausted MaxIterations.
	OK = internal.OK
	// AllStepSizesFailed means the automatic step-size search exhausted
	// StepSizeLadder without finding one that improved on the initial
	// ELBO.
	AllStepSizesFailed = internal.AllStepSizesFailed
)

// Result is Run's return value.
type Result = internal.Result

var (
	// ErrInvalidArgument wraps every Config validation failure.
	ErrInvalidArgument = internal.ErrInvalidArgument
	// ErrIllConditioned is returned when a single ELBO or gradient
	// estimate drops as many Monte-Carlo draws (non-finite or unevaluable
	// log-density or gradient) as it was asked to accept, making the
	// estimate impossible.
	ErrIllConditioned = internal.ErrIllConditioned
	// ErrAllStepSizesFailed marks an automatic step-size search that
	// exhausts StepSizeLadder without success. Run does not return it as
	// an error: it reports that outcome as Result.Code ==
	// AllStepSizesFailed with a nil error and writes no samples.
	ErrAllStepSizesFailed = internal.ErrAllStepSizesFailed
)

// Run fits a variational approximation to m's posterior. ctx is checked
// between iterations (never mid-gradient-evaluation). A cancellation
// during the main optimization loop stops the run early but is not an
// error — it is reported through Config.Progress exactly like reaching
// MaxIterations, and Run still returns whatever posterior fit and
// samples had been produced so far. A cancellation during the automatic
// step-size search (Eta=0) makes each remaining candidate count as
// failed, which can end the search with Code AllStepSizesFailed and no
// samples.
func Run(ctx context.Context, cfg Config, m model.Model) (Result, error) {
	return internal.Run(ctx, cfg, m)
}
