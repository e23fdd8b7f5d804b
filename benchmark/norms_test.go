package benchmark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffbench/diffbench/problem"
)

func TestNormDistance(t *testing.T) {
	a := problem.State{1, 2, 2}
	b := problem.State{1, 0, 0}

	assert.InDelta(t, math.Sqrt(8), NormL2.Distance(a, b), 1e-12)
	assert.InDelta(t, 2.0, NormLinf.Distance(a, b), 1e-12)

	// The zero value defaults to L2.
	var n Norm
	assert.InDelta(t, math.Sqrt(8), n.Distance(a, b), 1e-12)
}

func TestNormDistanceDimensionMismatch(t *testing.T) {
	assert.True(t, math.IsInf(NormL2.Distance(problem.State{1}, problem.State{1, 2}), 1))
	assert.True(t, math.IsInf(NormL2.Distance(nil, nil), 1))
}

func TestNormValidate(t *testing.T) {
	assert.NoError(t, NormL2.Validate())
	assert.NoError(t, NormLinf.Validate())
	assert.NoError(t, Norm("").Validate())
	assert.Error(t, Norm("l7").Validate())
}
