package advi

import "testing"

// TestRollingBufferCapacity_Heuristic checks the ceil(0.1*maxIter/evalElbo)
// floor-of-2 sizing rule against a few hand-picked inputs.
func TestRollingBufferCapacity_Heuristic(t *testing.T) {
	cases := []struct {
		maxIter, evalElbo, want int
	}{
		{maxIter: 10000, evalElbo: 100, want: 10},
		{maxIter: 100, evalElbo: 100, want: 2},  // 0.1*100/100=0.1 -> floor to 2
		{maxIter: 1000, evalElbo: 50, want: 2},  // 0.1*1000/50=2
		{maxIter: 1001, evalElbo: 50, want: 3},  // ceil(2.002)=3
	}
	for _, c := range cases {
		got := rollingBufferCapacity(c.maxIter, c.evalElbo)
		if got != c.want {
			t.Errorf("rollingBufferCapacity(%d, %d): got %d, want %d", c.maxIter, c.evalElbo, got, c.want)
		}
	}
}

// TestRollingBuffer_MeanAndMedian checks both statistics against a known
// sequence, including the behavior once the buffer has wrapped.
func TestRollingBuffer_MeanAndMedian(t *testing.T) {
	b := newRollingBuffer(3)
	for _, v := range []float64{1, 2, 3} {
		b.push(v)
	}
	if got, want := b.mean(), 2.0; got != want {
		t.Errorf("mean: got %v, want %v", got, want)
	}
	if got, want := b.median(), 2.0; got != want {
		t.Errorf("median: got %v, want %v", got, want)
	}

	// Push a 4th value; 1 is evicted, window is now {2,3,4}.
	b.push(4)
	if got, want := b.mean(), 3.0; got != want {
		t.Errorf("mean after wrap: got %v, want %v", got, want)
	}
	if got, want := b.median(), 3.0; got != want {
		t.Errorf("median after wrap: got %v, want %v", got, want)
	}
}

// TestRollingBuffer_EvenLengthMedianTakesUpperMiddle checks the
// floor(n/2)-index tie-breaking rule on an even-length window.
func TestRollingBuffer_EvenLengthMedianTakesUpperMiddle(t *testing.T) {
	b := newRollingBuffer(4)
	for _, v := range []float64{1, 2, 3, 4} {
		b.push(v)
	}
	// sorted = [1,2,3,4], index n/2 = 2 -> value 3
	if got, want := b.median(), 3.0; got != want {
		t.Errorf("median: got %v, want %v", got, want)
	}
}
