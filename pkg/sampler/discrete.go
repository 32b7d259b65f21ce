package sampler

import "sort"

// Discrete1D is a cumulative-weight table used to draw a weighted-random
// bin index in O(log n). The zero value is a valid, empty distribution.
type Discrete1D struct {
	cdf   []float64 // len = n+1, cdf[0] == 0
	total float64   // sum of raw weights, before Normalize
}

// NewDiscrete1D returns an empty Discrete1D ready for Add calls.
func NewDiscrete1D() *Discrete1D {
	return &Discrete1D{cdf: []float64{0}}
}

// Add appends a new bin with (non-negative) weight w.
func (d *Discrete1D) Add(w float64) {
	d.total += w
	d.cdf = append(d.cdf, d.cdf[len(d.cdf)-1]+w)
}

// Len returns the number of bins.
func (d *Discrete1D) Len() int {
	return len(d.cdf) - 1
}

// Normalize divides every cumulative entry by the total weight so that
// cdf[n] == 1. Calling Normalize on an empty or all-zero distribution
// leaves it unchanged (there is nothing meaningful to normalize to).
func (d *Discrete1D) Normalize() {
	if d.total <= 0 {
		return
	}
	inv := 1.0 / d.total
	for i := range d.cdf {
		d.cdf[i] *= inv
	}
	d.total = 1
	// Guard against floating-point drift so cdf[n] is exactly 1.
	d.cdf[len(d.cdf)-1] = 1
}

// PMF returns the probability mass of bin i (0 if i is out of range).
func (d *Discrete1D) PMF(i int) float64 {
	if i < 0 || i >= d.Len() {
		return 0
	}
	return d.cdf[i+1] - d.cdf[i]
}

// Sample draws a bin index for uniform u in [0,1) by an upper-bound
// search on u*total, clamped into [0, n-1] so a non-empty distribution
// always returns a valid bin even under floating-point rounding at the
// boundaries.
func (d *Discrete1D) Sample(u float64) int {
	n := d.Len()
	if n == 0 {
		return 0
	}
	target := u * d.cdf[len(d.cdf)-1]
	// upper_bound: first index i in cdf[1:] with cdf[i] > target
	i := sort.Search(n, func(i int) bool { return d.cdf[i+1] > target })
	if i >= n {
		i = n - 1
	}
	return i
}
