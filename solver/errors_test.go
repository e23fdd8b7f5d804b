package solver

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/diffbench/diffbench/problem"
)

// stubBinding is a no-op binding for registry tests.
type stubBinding string

func (s stubBinding) Name() string { return string(s) }

func (s stubBinding) Solve(ctx context.Context, spec *problem.Spec, cfg Config) (*Trajectory, error) {
	return &Trajectory{}, nil
}

func TestFailureError(t *testing.T) {
	f := NewFailure("dopri5", ReasonStepUnderflow, nil)
	assert.Contains(t, f.Error(), "dopri5")
	assert.Contains(t, f.Error(), "step_underflow")

	wrapped := NewFailure("dopri5", ReasonInternal, errors.New("boom"))
	assert.Contains(t, wrapped.Error(), "boom")
	assert.EqualError(t, wrapped.Unwrap(), "boom")
}

func TestAsFailurePassThrough(t *testing.T) {
	orig := NewFailure("milstein", ReasonDiverged, nil)
	got := AsFailure("milstein", errors.Wrap(orig, "solve"))
	assert.Equal(t, ReasonDiverged, got.Reason)
}

func TestAsFailureBudget(t *testing.T) {
	got := AsFailure("dopri5", BudgetExceeded(context.DeadlineExceeded))
	assert.Equal(t, ReasonBudget, got.Reason)

	got = AsFailure("dopri5", context.Canceled)
	assert.Equal(t, ReasonBudget, got.Reason)
}

func TestAsFailureUnknownBecomesInternal(t *testing.T) {
	got := AsFailure("dopri5", errors.New("segfault adjacent event"))
	assert.Equal(t, ReasonInternal, got.Reason)
	assert.Equal(t, "dopri5", got.Algorithm)
}

func TestTrajectoryAccessors(t *testing.T) {
	tr := &Trajectory{
		Times:  []float64{0, 0.5, 1},
		States: []problem.State{{1}, {1.5}, {2.25}},
	}
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, 1.0, tr.FinalTime())
	assert.Equal(t, problem.State{2.25}, tr.FinalState())

	empty := &Trajectory{}
	assert.Nil(t, empty.FinalState())
	assert.Equal(t, 0.0, empty.FinalTime())
}
