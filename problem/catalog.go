package problem

import "math"

// Standard test problems used across the benchmark suites. Each constructor
// returns a fresh Spec so callers can never alias catalog state.

// NewLinear returns the scalar linear growth problem du/dt = 1.01 u on [0, 1]
// with u0 = 1/2 and exact solution u0 * exp(1.01 t).
func NewLinear() *Spec {
	const a = 1.01
	return &Spec{
		Name:         "linear",
		InitialState: State{0.5},
		T0:           0,
		T1:           1,
		Dynamics: func(t float64, u State) State {
			return State{a * u[0]}
		},
		DynamicsInPlace: func(t float64, u State, du State) {
			du[0] = a * u[0]
		},
		Analytic: func(t float64, u0 State) State {
			return State{u0[0] * math.Exp(a*t)}
		},
	}
}

// NewLinearND returns the n-dimensional elementwise linear growth problem
// du/dt = 1.01 u with u0[i] = (i+1)/n. The classic "2D linear" benchmark
// problem is NewLinearND(8), a flattened 4x2 system.
func NewLinearND(n int) *Spec {
	const a = 1.01
	u0 := make(State, n)
	for i := range u0 {
		u0[i] = float64(i+1) / float64(n)
	}
	return &Spec{
		Name:         "linear-nd",
		InitialState: u0,
		T0:           0,
		T1:           1,
		Dynamics: func(t float64, u State) State {
			du := make(State, len(u))
			for i, v := range u {
				du[i] = a * v
			}
			return du
		},
		DynamicsInPlace: func(t float64, u State, du State) {
			for i, v := range u {
				du[i] = a * v
			}
		},
		Analytic: func(t float64, u0 State) State {
			f := math.Exp(a * t)
			u := make(State, len(u0))
			for i, v := range u0 {
				u[i] = v * f
			}
			return u
		},
	}
}

// NewWave returns a simple harmonic oscillator u'' = -omega^2 u written as a
// first-order system, with exact solution (cos, -omega*sin) scaled by u0.
func NewWave(omega float64) *Spec {
	return &Spec{
		Name:         "wave",
		InitialState: State{1, 0},
		T0:           0,
		T1:           2 * math.Pi,
		Dynamics: func(t float64, u State) State {
			return State{u[1], -omega * omega * u[0]}
		},
		DynamicsInPlace: func(t float64, u State, du State) {
			du[0] = u[1]
			du[1] = -omega * omega * u[0]
		},
		Analytic: func(t float64, u0 State) State {
			c, s := math.Cos(omega*t), math.Sin(omega*t)
			return State{
				u0[0]*c + u0[1]/omega*s,
				-u0[0]*omega*s + u0[1]*c,
			}
		},
	}
}

// NewFitzhughNagumo returns the Fitzhugh-Nagumo neuron model. It has no
// closed-form solution, so error computation falls back to a high-accuracy
// reference trajectory.
func NewFitzhughNagumo() *Spec {
	const (
		a   = 0.7
		b   = 0.8
		tau = 12.5
	)
	return &Spec{
		Name:         "fitzhugh-nagumo",
		InitialState: State{1, 1},
		T0:           0,
		T1:           20,
		Dynamics: func(t float64, u State) State {
			v, w := u[0], u[1]
			return State{
				v - v*v*v/3 - w + 0.5,
				(v + a - b*w) / tau,
			}
		},
	}
}

// NewAdditiveNoise returns the scalar additive-noise SDE
// du = a u dt + b dW on [0, 1]. No pathwise analytic solution is exposed;
// collectors treat it as stochastic and aggregate errors against a reference
// trajectory by RMS across repetitions.
func NewAdditiveNoise(a, b float64) *Spec {
	return &Spec{
		Name:         "additive-noise",
		InitialState: State{1},
		T0:           0,
		T1:           1,
		Stochastic:   true,
		Dynamics: func(t float64, u State) State {
			return State{a * u[0]}
		},
		Diffusion: func(t float64, u State) State {
			return State{b}
		},
	}
}
