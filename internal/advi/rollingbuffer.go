package advi

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// rollingBuffer holds the most recent relative ELBO differences, capacity
// C = max(ceil(0.1*maxIter/evalElbo), 2), evicting the oldest entry once
// full.
type rollingBuffer struct {
	data []float64
	cap  int
	next int // next write position
	n    int // number of valid entries, n <= cap
	sort []float64 // scratch for median, reused, bounded by cap
}

// rollingBufferCapacity computes C per the specification.
func rollingBufferCapacity(maxIter, evalElbo int) int {
	c := (maxIter + 10*evalElbo - 1) / (10 * evalElbo) // ceil(0.1*maxIter/evalElbo)
	if c < 2 {
		c = 2
	}
	return c
}

func newRollingBuffer(cap int) *rollingBuffer {
	return &rollingBuffer{
		data: make([]float64, cap),
		cap:  cap,
		sort: make([]float64, cap),
	}
}

// push appends delta, evicting the oldest entry if the buffer is full.
func (b *rollingBuffer) push(delta float64) {
	b.data[b.next] = delta
	b.next = (b.next + 1) % b.cap
	if b.n < b.cap {
		b.n++
	}
}

func (b *rollingBuffer) len() int { return b.n }

// mean returns the arithmetic mean of the valid entries.
func (b *rollingBuffer) mean() float64 {
	return floats.Sum(b.valid()) / float64(b.n)
}

// median sorts a copy of the valid entries and returns the element at
// index floor(n/2), matching the source's partial-selection semantics
// exactly (including its tie and even-length-window behavior).
func (b *rollingBuffer) median() float64 {
	v := b.sort[:b.n]
	copy(v, b.valid())
	sort.Float64s(v)
	return v[b.n/2]
}

func (b *rollingBuffer) valid() []float64 {
	if b.n < b.cap {
		return b.data[:b.n]
	}
	return b.data
}
