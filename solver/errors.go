package solver

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a malformed configuration. It is detected before
// any solve is attempted and always propagates to the caller.
var ErrInvalidConfig = errors.New("solver: invalid configuration")

// FailureReason classifies why a single solve run did not complete.
type FailureReason string

const (
	// ReasonDiverged - the state contained NaN or Inf.
	ReasonDiverged FailureReason = "diverged"
	// ReasonStepUnderflow - the adaptive controller drove dt below its minimum.
	ReasonStepUnderflow FailureReason = "step_underflow"
	// ReasonNonConvergence - an implicit stage iteration failed to converge.
	ReasonNonConvergence FailureReason = "non_convergence"
	// ReasonBudget - the run exceeded its wall-clock or step-count budget.
	ReasonBudget FailureReason = "budget_exceeded"
	// ReasonInternal - any other integrator-internal error.
	ReasonInternal FailureReason = "internal"
)

// Failure is the typed outcome of a solve run that did not complete. Engines
// record failures as data and keep sweeping; a Failure never aborts a sweep.
type Failure struct {
	Algorithm string
	Reason    FailureReason
	Err       error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("solver %s: %s: %v", f.Algorithm, f.Reason, f.Err)
	}
	return fmt.Sprintf("solver %s: %s", f.Algorithm, f.Reason)
}

func (f *Failure) Unwrap() error { return f.Err }

// NewFailure builds a Failure for the given algorithm and reason.
func NewFailure(algorithm string, reason FailureReason, err error) *Failure {
	return &Failure{Algorithm: algorithm, Reason: reason, Err: err}
}

// AsFailure extracts a *Failure from an error chain. Errors that are not
// failures (including context cancellation surfaced raw) are wrapped as
// ReasonInternal so the collector always has a reason to record.
func AsFailure(algorithm string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if errors.Is(err, errContextDone) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return NewFailure(algorithm, ReasonBudget, err)
	}
	return NewFailure(algorithm, ReasonInternal, err)
}

var errContextDone = errors.New("solver: run budget exhausted")

// BudgetExceeded wraps a context error into the budget sentinel chain.
func BudgetExceeded(cause error) error {
	return fmt.Errorf("%w: %v", errContextDone, cause)
}
