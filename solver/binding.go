// Package solver - Capability interface over external integrator implementations.
package solver

import (
	"context"
	"fmt"
	"sync"

	"github.com/diffbench/diffbench/problem"
)

// Binding adapts one external integrator family to the harness. Bindings are
// pluggable strategies: new algorithms are added by implementing this
// interface, never by branching on a type tag inside the engines.
//
// Solve must allocate its scratch state per call so that independent runs can
// execute concurrently, must leave the Spec untouched, and must surface
// internal failures (non-convergence, step underflow, NaN/Inf state) as a
// *Failure rather than panicking.
type Binding interface {
	// Name identifies the integrator family (e.g. "dopri5", "euler-maruyama").
	Name() string

	// Solve integrates the problem under the given configuration. A
	// cancelled or expired context aborts the run with ReasonBudget.
	Solve(ctx context.Context, spec *problem.Spec, cfg Config) (*Trajectory, error)
}

// Trajectory is the output of one solve: the step points the integrator
// saved, in time order.
type Trajectory struct {
	Times  []float64
	States []problem.State
	Stats  Stats
}

// Stats carries integrator-internal counters for diagnostics.
type Stats struct {
	StepCount       uint `json:"step_count"`
	RejectedCount   uint `json:"rejected_count"`
	EvaluationCount uint `json:"evaluation_count"`
}

// FinalState returns the state at the last saved step.
func (tr *Trajectory) FinalState() problem.State {
	if len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// FinalTime returns the time of the last saved step.
func (tr *Trajectory) FinalTime() float64 {
	if len(tr.Times) == 0 {
		return 0
	}
	return tr.Times[len(tr.Times)-1]
}

// Len returns the number of saved steps.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// Registry maps algorithm identifiers to bindings. The zero value is ready
// to use after NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// NewRegistry creates an empty binding registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// Register adds a binding under its own name. Re-registering a name
// replaces the previous binding.
func (r *Registry) Register(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Name()] = b
}

// Lookup resolves an algorithm identifier to its binding.
func (r *Registry) Lookup(algorithm string) (Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[algorithm]
	if !ok {
		return nil, fmt.Errorf("solver: no binding registered for algorithm %q", algorithm)
	}
	return b, nil
}

// Names returns the registered algorithm identifiers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the registry external integrator adapters register into
// from their init functions, in the manner of database/sql drivers.
var DefaultRegistry = NewRegistry()

// Register adds a binding to the default registry.
func Register(b Binding) { DefaultRegistry.Register(b) }
