// Package problem - Differential equation problem definitions for benchmarking.
package problem

import (
	"math"

	"github.com/pkg/errors"
)

// State is a system state vector. Scalar problems use a 1-vector.
type State []float64

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether the state contains no NaN or Inf entries.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// DynamicsFunc evaluates the right-hand side du/dt = f(t, u).
type DynamicsFunc func(t float64, u State) State

// DynamicsInPlaceFunc evaluates the right-hand side into du, avoiding
// allocation on the hot path. Optional; bindings fall back to DynamicsFunc.
type DynamicsInPlaceFunc func(t float64, u State, du State)

// DiffusionFunc evaluates the diffusion term g(t, u) of an SDE
// du = f(t, u) dt + g(t, u) dW.
type DiffusionFunc func(t float64, u State) State

// AnalyticFunc returns the exact solution u(t) for initial state u0.
type AnalyticFunc func(t float64, u0 State) State

// Spec is an immutable description of an initial value problem. A Spec is
// shared read-only across every configuration in a benchmark run; bindings
// must never mutate it.
type Spec struct {
	// Name identifies the problem in reports.
	Name string `json:"name"`

	// Dynamics is the drift / right-hand side function. Required.
	Dynamics DynamicsFunc `json:"-"`

	// DynamicsInPlace is an optional in-place variant of Dynamics.
	DynamicsInPlace DynamicsInPlaceFunc `json:"-"`

	// Diffusion is the SDE diffusion term. Required when Stochastic is set.
	Diffusion DiffusionFunc `json:"-"`

	// InitialState is u(T0).
	InitialState State `json:"initial_state"`

	// T0 and T1 bound the integration interval.
	T0 float64 `json:"t0"`
	T1 float64 `json:"t1"`

	// Analytic, when non-nil, gives the exact solution used for error
	// computation. Without it the collector needs a reference trajectory.
	Analytic AnalyticFunc `json:"-"`

	// Stochastic marks SDE problems. Error aggregation across repetitions
	// switches to RMS for these, since one sampled path is not representative.
	Stochastic bool `json:"stochastic"`
}

// Validate checks the Spec is well formed. It is called once by the engines
// before any solve is attempted.
func (s *Spec) Validate() error {
	if s.Dynamics == nil && s.DynamicsInPlace == nil {
		return errors.Errorf("problem %q: no dynamics function", s.Name)
	}
	if len(s.InitialState) == 0 {
		return errors.Errorf("problem %q: empty initial state", s.Name)
	}
	if !s.InitialState.IsValid() {
		return errors.Errorf("problem %q: initial state contains NaN or Inf", s.Name)
	}
	if !(s.T1 > s.T0) {
		return errors.Errorf("problem %q: time span [%g, %g] is empty", s.Name, s.T0, s.T1)
	}
	if s.Stochastic && s.Diffusion == nil {
		return errors.Errorf("problem %q: stochastic without diffusion term", s.Name)
	}
	return nil
}

// HasAnalytic reports whether an exact solution is available.
func (s *Spec) HasAnalytic() bool { return s.Analytic != nil }

// ExactFinal evaluates the analytic solution at T1.
func (s *Spec) ExactFinal() State {
	return s.Analytic(s.T1, s.InitialState)
}

// Derivative evaluates the dynamics into du, preferring the in-place variant.
func (s *Spec) Derivative(t float64, u State, du State) {
	if s.DynamicsInPlace != nil {
		s.DynamicsInPlace(t, u, du)
		return
	}
	copy(du, s.Dynamics(t, u))
}

// Dim returns the state dimension.
func (s *Spec) Dim() int { return len(s.InitialState) }
