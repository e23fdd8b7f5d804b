package benchmark

import "math"

// ToleranceGrid builds the 10^-lo .. 10^-hi tolerance sequence benchmark
// suites conventionally sweep, pairing each absolute tolerance with the same
// relative tolerance. lo and hi are inclusive exponents; hi >= lo.
func ToleranceGrid(lo, hi int) []Tolerance {
	if hi < lo {
		lo, hi = hi, lo
	}
	grid := make([]Tolerance, 0, hi-lo+1)
	for e := lo; e <= hi; e++ {
		t := math.Pow(10, -float64(e))
		grid = append(grid, Tolerance{Abs: t, Rel: t})
	}
	return grid
}

// ToleranceGridOffset is ToleranceGrid with the relative tolerance shifted by
// a fixed number of decades, matching the common "reltol three orders tighter
// than abstol" sweep setup.
func ToleranceGridOffset(lo, hi, relOffset int) []Tolerance {
	grid := ToleranceGrid(lo, hi)
	for i := range grid {
		grid[i].Rel = grid[i].Abs * math.Pow(10, -float64(relOffset))
	}
	return grid
}

// DtSequence builds an n-entry step-size schedule starting at dt0 and halving
// per level, the usual companion table for fixed-step configs in a
// work-precision sweep.
func DtSequence(dt0 float64, n int) []float64 {
	dts := make([]float64, n)
	dt := dt0
	for i := 0; i < n; i++ {
		dts[i] = dt
		dt /= 2
	}
	return dts
}
