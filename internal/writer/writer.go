// Package writer holds the three output sinks a run produces: a
// human-readable progress log, a CSV of posterior draws, and a CSV of
// per-evaluation ELBO diagnostics. Each is nil-safe: a zero-value sink
// backed by a nil io.Writer silently discards everything written to it,
// so callers don't have to branch on whether a given writer was
// configured.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Progress writes free-form status lines. A nil or zero-value Progress
// discards every call.
type Progress struct {
	w io.Writer
}

// NewProgress wraps w. w may be nil.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Printf writes a formatted status line. It is a no-op if the
// underlying writer is nil.
func (p *Progress) Printf(format string, args ...interface{}) {
	if p == nil || p.w == nil {
		return
	}
	fmt.Fprintf(p.w, format, args...)
}

// Sample writes the posterior mean followed by posterior draws as CSV
// rows, one parameter vector per row with a leading log-density column,
// mirroring the teacher's CSV convention for tabular output.
type Sample struct {
	cw     *csv.Writer
	header bool
}

// NewSample wraps w. w may be nil.
func NewSample(w io.Writer) *Sample {
	if w == nil {
		return &Sample{}
	}
	return &Sample{cw: csv.NewWriter(w)}
}

// WriteHeader writes the column header for a dim-dimensional draw. It
// is a no-op if the underlying writer is nil.
func (s *Sample) WriteHeader(dim int) error {
	if s.cw == nil || s.header {
		return nil
	}
	s.header = true
	row := make([]string, dim+1)
	row[0] = "lp__"
	for i := 0; i < dim; i++ {
		row[i+1] = fmt.Sprintf("theta[%d]", i)
	}
	return s.write(row)
}

// WriteRow writes one draw: its model log-density followed by its
// parameter values.
func (s *Sample) WriteRow(logDensity float64, z []float64) error {
	if s.cw == nil {
		return nil
	}
	row := make([]string, len(z)+1)
	row[0] = strconv.FormatFloat(logDensity, 'g', -1, 64)
	for i, v := range z {
		row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return s.write(row)
}

func (s *Sample) write(row []string) error {
	if err := s.cw.Write(row); err != nil {
		return err
	}
	s.cw.Flush()
	return s.cw.Error()
}

// Diagnostic writes one CSV row per ELBO evaluation: iteration, elapsed
// wall-clock time, and the ELBO value.
type Diagnostic struct {
	cw     *csv.Writer
	header bool
}

// NewDiagnostic wraps w. w may be nil.
func NewDiagnostic(w io.Writer) *Diagnostic {
	if w == nil {
		return &Diagnostic{}
	}
	return &Diagnostic{cw: csv.NewWriter(w)}
}

// WriteRow writes one diagnostic row, emitting the header first if this
// is the first call.
func (d *Diagnostic) WriteRow(iter int, elapsed time.Duration, elboVal float64) error {
	if d.cw == nil {
		return nil
	}
	if !d.header {
		d.header = true
		if err := d.cw.Write([]string{"iter", "time_in_seconds", "ELBO"}); err != nil {
			return err
		}
	}
	row := []string{
		strconv.Itoa(iter),
		strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64),
		strconv.FormatFloat(elboVal, 'g', -1, 64),
	}
	if err := d.cw.Write(row); err != nil {
		return err
	}
	d.cw.Flush()
	return d.cw.Error()
}
