// Package advierr holds the sentinel errors shared by the evaluator,
// gradient estimator and the ADVI engine itself, factored out of the
// advi package proper to avoid an import cycle (variational and elbo sit
// below advi but still need to raise/recognize Ill_Conditioned).
package advierr

import "errors"

// ErrIllConditioned is raised when a Monte-Carlo evaluation (ELBO or
// gradient) had to drop n_monte_carlo samples or more: the distribution Q
// is entirely in a region the model cannot evaluate.
var ErrIllConditioned = errors.New("advi: ill-conditioned (too many dropped draws)")

// ErrInvalidArgument is raised when a configuration value violates a
// positivity constraint, before any optimization work starts.
var ErrInvalidArgument = errors.New("advi: invalid argument")

// ErrAllStepSizesFailed is raised by the Tuner when every candidate on the
// step-size ladder failed to improve on the initial ELBO.
var ErrAllStepSizesFailed = errors.New("advi: all step sizes failed")
