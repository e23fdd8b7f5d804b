// Package benchmark - Work-precision and shootout benchmarking of
// differential equation integrators.
package benchmark

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/diffbench/diffbench/problem"
)

// Norm selects how the difference between a numerical and a reference state
// is reduced to a scalar error.
type Norm string

const (
	// NormL2 - Euclidean distance between final states.
	NormL2 Norm = "l2"
	// NormLinf - maximum componentwise distance between final states.
	NormLinf Norm = "linf"
)

// Distance computes the norm of a-b. States of mismatched dimension are a
// programming error upstream and reported as +Inf so the run is flagged
// rather than panicking mid-sweep.
func (n Norm) Distance(a, b problem.State) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	switch n {
	case NormLinf:
		return floats.Distance(a, b, math.Inf(1))
	default:
		return floats.Distance(a, b, 2)
	}
}

// Validate rejects unknown norms before a sweep starts.
func (n Norm) Validate() error {
	switch n {
	case NormL2, NormLinf, "":
		return nil
	}
	return errors.Errorf("benchmark: unknown error norm %q", string(n))
}
