package problem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecValidate(t *testing.T) {
	for _, p := range []*Spec{
		NewLinear(), NewLinearND(8), NewWave(1), NewFitzhughNagumo(), NewAdditiveNoise(0.1, 0.5),
	} {
		assert.NoError(t, p.Validate(), p.Name)
	}

	assert.Error(t, (&Spec{Name: "empty"}).Validate())

	noSpan := NewLinear()
	noSpan.T1 = noSpan.T0
	assert.Error(t, noSpan.Validate())

	badState := NewLinear()
	badState.InitialState = State{math.NaN()}
	assert.Error(t, badState.Validate())

	sde := NewAdditiveNoise(0.1, 0.5)
	sde.Diffusion = nil
	assert.Error(t, sde.Validate())
}

func TestLinearAnalytic(t *testing.T) {
	p := NewLinear()
	require.True(t, p.HasAnalytic())

	exact := p.ExactFinal()
	assert.InDelta(t, 0.5*math.Exp(1.01), exact[0], 1e-12)

	// Analytic at t0 reproduces the initial state.
	assert.InDelta(t, 0.5, p.Analytic(0, p.InitialState)[0], 1e-15)
}

func TestWaveAnalyticPeriod(t *testing.T) {
	p := NewWave(1)
	// One full period returns to the initial state.
	u := p.Analytic(2*math.Pi, p.InitialState)
	assert.InDelta(t, p.InitialState[0], u[0], 1e-12)
	assert.InDelta(t, p.InitialState[1], u[1], 1e-12)
}

func TestDerivativePrefersInPlace(t *testing.T) {
	p := NewLinear()
	du := make(State, 1)
	p.Derivative(0, State{2}, du)
	assert.InDelta(t, 2.02, du[0], 1e-15)

	// Dynamics-only specs still work through the fallback copy.
	fhn := NewFitzhughNagumo()
	out := make(State, 2)
	fhn.Derivative(0, fhn.InitialState, out)
	assert.True(t, out.IsValid())
}

func TestDynamicsDoesNotMutateInput(t *testing.T) {
	p := NewLinearND(4)
	u := p.InitialState.Clone()
	_ = p.Dynamics(0, u)
	assert.Equal(t, p.InitialState, u)
}

func TestStateHelpers(t *testing.T) {
	s := State{1, 2}
	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 1.0, s[0])

	assert.True(t, State{1, 2}.IsValid())
	assert.False(t, State{math.Inf(1)}.IsValid())
	assert.False(t, State{math.NaN()}.IsValid())
}

func TestByName(t *testing.T) {
	for _, name := range []string{"linear", "linear-2d", "wave", "fitzhugh-nagumo", "additive-noise"} {
		p, err := ByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p.Name)
		assert.NoError(t, p.Validate())
	}

	_, err := ByName("brusselator")
	assert.Error(t, err)
}
