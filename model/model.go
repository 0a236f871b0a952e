// Package model declares the collaborator ADVI fits a posterior against.
//
// # Overview
//
// A Model supplies an unconstrained-space log-density and its gradient.
// Building that log-density — parsing a model declaration, applying
// change-of-variables Jacobians for constrained parameters, differentiating
// it — is out of scope here; ADVI only ever calls the two methods below.
//
// # Basic Usage
//
//	type StdNormal struct{}
//
//	func (StdNormal) NumParams() int { return 1 }
//
//	func (StdNormal) LogDensity(z []float64) (float64, error) {
//	    return -0.5 * z[0] * z[0], nil
//	}
//
//	func (StdNormal) LogDensityGrad(z, grad []float64) (float64, error) {
//	    grad[0] = -z[0]
//	    return -0.5 * z[0] * z[0], nil
//	}
package model

import "errors"

// ErrDrawDropped signals a recoverable numerical failure on a single draw
// (non-finite log-density, an out-of-domain evaluation, an overflow inside
// the model). Callers should wrap it with fmt.Errorf("...: %w", ...) rather
// than return a bare, unrelated error, so the cause can be recognized with
// errors.Is. The evaluator's drop policy itself treats any non-nil error
// from the model as a dropped draw.
var ErrDrawDropped = errors.New("model: draw dropped")

// Model is the external collaborator supplying the joint log-likelihood
// plus log-prior, already transformed to an unconstrained space with the
// log-absolute-determinant of the Jacobian added.
type Model interface {
	// NumParams returns the dimension D of the unconstrained parameter
	// vector this model accepts.
	NumParams() int

	// LogDensity returns log p(z) for most z, or a finite value paired
	// with an error matching ErrDrawDropped when the draw cannot be
	// evaluated (e.g. it overflows a downstream transform).
	LogDensity(z []float64) (float64, error)

	// LogDensityGrad writes grad(i) = d/dz_i log p(z) into grad (which
	// must already be allocated to length NumParams()) and returns the
	// log-density value at z, so callers needing both do not pay for two
	// passes. Same recoverable-failure contract as LogDensity.
	LogDensityGrad(z []float64, grad []float64) (float64, error)
}
