// Package writer re-exports ADVI's output sinks for callers that want to
// feed advi.Config.Progress/Samples/Diagnostic through the same nil-safe
// wrappers Run itself uses, rather than writing raw CSV by hand.
package writer

import (
	"io"

	internal "github.com/MMesbahU/advi/internal/writer"
)

// Progress writes free-form status lines. A nil or zero-value Progress
// discards every call.
type Progress = internal.Progress

// NewProgress wraps w. w may be nil.
func NewProgress(w io.Writer) *Progress {
	return internal.NewProgress(w)
}

// Sample writes the posterior mean and posterior draws as CSV rows.
type Sample = internal.Sample

// NewSample wraps w. w may be nil.
func NewSample(w io.Writer) *Sample {
	return internal.NewSample(w)
}

// Diagnostic writes one CSV row per ELBO evaluation.
type Diagnostic = internal.Diagnostic

// NewDiagnostic wraps w. w may be nil.
func NewDiagnostic(w io.Writer) *Diagnostic {
	return internal.NewDiagnostic(w)
}
