package benchmark

import (
	"context"
	"math"

	"github.com/diffbench/diffbench/problem"
	"github.com/diffbench/diffbench/solver"
)

// Test bindings implementing the solver.Binding capability interface.

// eulerBinding is a forward-Euler test double for fixed-step configs. It
// exercises the harness with real stepping so error scaling with dt is
// observable; DenseOutput changes only what is saved, never the stepping.
type eulerBinding struct{}

func (eulerBinding) Name() string { return "euler" }

func (eulerBinding) Solve(ctx context.Context, spec *problem.Spec, cfg solver.Config) (*solver.Trajectory, error) {
	if cfg.Mode != solver.ModeFixedStep {
		return nil, solver.NewFailure("euler", solver.ReasonInternal, solver.ErrInvalidConfig)
	}
	dt := cfg.FixedStep.Dt
	u := spec.InitialState.Clone()
	du := make(problem.State, len(u))
	t := spec.T0

	tr := &solver.Trajectory{}
	save := func() {
		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, u.Clone())
	}
	save()

	for t < spec.T1 {
		if ctx.Err() != nil {
			return nil, solver.NewFailure("euler", solver.ReasonBudget, ctx.Err())
		}
		h := dt
		if t+h > spec.T1 {
			h = spec.T1 - t
		}
		spec.Derivative(t, u, du)
		for i := range u {
			u[i] += h * du[i]
		}
		t += h
		tr.Stats.StepCount++
		tr.Stats.EvaluationCount++
		if cfg.SaveEverySteps || cfg.DenseOutput {
			save()
		}
	}
	if !cfg.SaveEverySteps && !cfg.DenseOutput {
		save()
	} else if tr.FinalTime() != t {
		save()
	}
	return tr, nil
}

// spinSink defeats dead code elimination in fakeAdaptiveBinding.
var spinSink float64

// fakeAdaptiveBinding simulates an adaptive integrator: the final-state error
// equals errAt(abstol) and the solve burns CPU inversely proportional to the
// tolerance, so tighter tolerance means more work.
type fakeAdaptiveBinding struct {
	name   string
	errAt  func(absTol float64) float64
	workAt func(absTol float64) int
}

func (f *fakeAdaptiveBinding) Name() string { return f.name }

func (f *fakeAdaptiveBinding) Solve(ctx context.Context, spec *problem.Spec, cfg solver.Config) (*solver.Trajectory, error) {
	if cfg.Mode != solver.ModeAdaptive {
		return nil, solver.NewFailure(f.name, solver.ReasonInternal, solver.ErrInvalidConfig)
	}
	tol := cfg.Adaptive.AbsTol

	work := 0
	if f.workAt != nil {
		work = f.workAt(tol)
	}
	acc := 0.0
	for i := 0; i < work; i++ {
		acc += math.Sqrt(float64(i))
	}
	spinSink = acc

	// Perturb the exact final state by the simulated error along the first
	// coordinate.
	exact := spec.ExactFinal().Clone()
	exact[0] += f.errAt(tol)

	return &solver.Trajectory{
		Times:  []float64{spec.T0, spec.T1},
		States: []problem.State{spec.InitialState.Clone(), exact},
		Stats:  solver.Stats{StepCount: uint(work)},
	}, nil
}

// failingBinding fails every run with a fixed reason.
type failingBinding struct {
	name   string
	reason solver.FailureReason
}

func (f *failingBinding) Name() string { return f.name }

func (f *failingBinding) Solve(ctx context.Context, spec *problem.Spec, cfg solver.Config) (*solver.Trajectory, error) {
	return nil, solver.NewFailure(f.name, f.reason, nil)
}

// blockingBinding blocks until the run context is cancelled; it exercises the
// per-run budget path.
type blockingBinding struct{ name string }

func (b *blockingBinding) Name() string { return b.name }

func (b *blockingBinding) Solve(ctx context.Context, spec *problem.Spec, cfg solver.Config) (*solver.Trajectory, error) {
	<-ctx.Done()
	return nil, solver.BudgetExceeded(ctx.Err())
}

// exactBinding returns the analytic solution, producing exactly zero error.
type exactBinding struct {
	name string
	// extraWork inflates solve time so zero-error ties can be broken by time.
	extraWork int
}

func (e *exactBinding) Name() string { return e.name }

func (e *exactBinding) Solve(ctx context.Context, spec *problem.Spec, cfg solver.Config) (*solver.Trajectory, error) {
	acc := 0.0
	for i := 0; i < e.extraWork; i++ {
		acc += math.Sqrt(float64(i))
	}
	spinSink = acc
	return &solver.Trajectory{
		Times:  []float64{spec.T0, spec.T1},
		States: []problem.State{spec.InitialState.Clone(), spec.ExactFinal()},
	}, nil
}

func newTestRegistry(bindings ...solver.Binding) *solver.Registry {
	r := solver.NewRegistry()
	for _, b := range bindings {
		r.Register(b)
	}
	return r
}
