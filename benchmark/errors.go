package benchmark

import "errors"

// Sweep-level errors. Per-run failures never surface here; they are
// downgraded to data inside the Summary so one bad algorithm cannot kill a
// long sweep.
var (
	// ErrDegenerateRanking - no configuration in a shootout succeeded, so
	// there is nothing to rank. Hard failure.
	ErrDegenerateRanking = errors.New("benchmark: no successful configuration to rank")

	// ErrNoErrorReference - the problem has no analytic solution and the
	// collector was given no reference trajectory, so errors cannot be
	// computed. Detected before any solve runs.
	ErrNoErrorReference = errors.New("benchmark: no analytic solution or reference trajectory for error computation")
)
