// Package optim implements the adaptive per-coordinate step-size scaling
// shared by the ADVI Tuner and Runner.
//
// Both phases apply the exact same update:
//
//	s  <- g^2                  (t == 1, cold start)
//	s  <- 0.9*s + 0.1*g^2      (t  > 1, EMA)
//	dz <- (eta / sqrt(t)) * g / (tau + sqrt(s))
//
// Keeping the rule in one place guarantees the Tuner's 50-iteration probe
// and the Runner's full optimization loop can never drift apart.
package optim

import "math"

// emaDecay is the weight on the latest squared gradient once warmed up.
const emaDecay = 0.1

// Preconditioner holds the running per-coordinate second-moment estimate
// used to scale the stochastic gradient, AdaGrad/RMSProp style.
type Preconditioner struct {
	s    []float64
	tau  float64
	step int
}

// NewPreconditioner allocates a zeroed preconditioner for a parameter vector
// of the given length. tau is the additive stabilizer (ADVI uses 1.0).
func NewPreconditioner(dim int, tau float64) *Preconditioner {
	return &Preconditioner{
		s:   make([]float64, dim),
		tau: tau,
	}
}

// Reset zeroes the accumulator and the step counter, returning p to the
// state NewPreconditioner creates.
func (p *Preconditioner) Reset() {
	for i := range p.s {
		p.s[i] = 0
	}
	p.step = 0
}

// Step advances the internal iteration counter, updates s from grad, and
// writes the scaled update direction (eta/sqrt(t)) * grad / (tau + sqrt(s))
// into dst. dst, grad and the preconditioner must share length.
//
// Step returns the 1-based iteration count t after the update, matching
// the t used in the eta/sqrt(t) decay.
func (p *Preconditioner) Step(dst, grad []float64, eta float64) int {
	p.step++
	t := p.step
	decay := math.Sqrt(float64(t))
	for i, g := range grad {
		if t == 1 {
			p.s[i] += g * g
		} else {
			p.s[i] = 0.9*p.s[i] + emaDecay*g*g
		}
		dst[i] = (eta / decay) * g / (p.tau + math.Sqrt(p.s[i]))
	}
	return t
}

// Iteration returns the current 1-based step count.
func (p *Preconditioner) Iteration() int {
	return p.step
}
