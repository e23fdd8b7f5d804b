package benchmark

import (
	"context"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/diffbench/diffbench/problem"
	"github.com/diffbench/diffbench/solver"
)

// Repetition defaults. Stochastic integrators show high run-to-run variance
// from path sampling, so SDE cells need far more repetitions for a
// representative error aggregate.
const (
	DefaultRepetitions           = 20
	DefaultStochasticRepetitions = 1000
)

// Collector runs a configured solve repeatedly and reduces the runs to a
// Summary. The zero value is usable: 20 repetitions (1000 for stochastic
// problems), L2 norm, no per-run budget.
type Collector struct {
	// Repetitions overrides the per-problem default when > 0.
	Repetitions int

	// Norm reduces the final-state difference to a scalar error.
	Norm Norm

	// RunBudget bounds the wall-clock time of a single solve. A run that
	// overruns is aborted into a budget failure instead of hanging the sweep.
	RunBudget time.Duration

	// Reference supplies the high-accuracy trajectory used for error
	// computation when the problem has no analytic solution.
	Reference *solver.Trajectory

	Logger *slog.Logger
}

func (c *Collector) repetitions(spec *problem.Spec) int {
	if c.Repetitions > 0 {
		return c.Repetitions
	}
	if spec.Stochastic {
		return DefaultStochasticRepetitions
	}
	return DefaultRepetitions
}

func (c *Collector) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// exactFinal resolves the reference state errors are measured against.
func (c *Collector) exactFinal(spec *problem.Spec) (problem.State, error) {
	if spec.HasAnalytic() {
		return spec.ExactFinal(), nil
	}
	if c.Reference != nil && c.Reference.Len() > 0 {
		return c.Reference.FinalState(), nil
	}
	return nil, ErrNoErrorReference
}

// Measure runs the configuration the configured number of times and
// aggregates timing and error over the successful runs. Wall-clock time is
// measured strictly around Solve; reference-state setup happens outside the
// timed region. All repetitions failing yields a Summary with
// Succeeded=false, never an error: only preconditions (invalid config,
// unknown norm, missing error reference) surface as errors.
func (c *Collector) Measure(
	ctx context.Context,
	spec *problem.Spec,
	binding solver.Binding,
	cfg solver.Config,
	tolIndex int,
) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if err := c.Norm.Validate(); err != nil {
		return Summary{}, err
	}
	exact, err := c.exactFinal(spec)
	if err != nil {
		return Summary{}, err
	}

	reps := c.repetitions(spec)
	runs := make([]RunResult, 0, reps)
	attempted := 0

	for i := 0; i < reps; i++ {
		if ctx.Err() != nil {
			break
		}
		attempted++
		runs = append(runs, c.runOnce(ctx, spec, binding, cfg, tolIndex, exact))
	}

	return c.summarize(spec, cfg, tolIndex, attempted, runs), nil
}

// runOnce performs one timed solve and classifies its outcome.
func (c *Collector) runOnce(
	ctx context.Context,
	spec *problem.Spec,
	binding solver.Binding,
	cfg solver.Config,
	tolIndex int,
	exact problem.State,
) RunResult {
	run := RunResult{ConfigLabel: cfg.Label(), ToleranceIndex: tolIndex}

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if c.RunBudget > 0 {
		runCtx, cancel = context.WithTimeout(ctx, c.RunBudget)
	}

	start := time.Now()
	traj, err := binding.Solve(runCtx, spec, cfg)
	elapsed := time.Since(start).Seconds()
	cancel()

	if elapsed < minMeasurableTime {
		elapsed = minMeasurableTime
	}
	run.Elapsed = elapsed

	if err != nil {
		f := solver.AsFailure(cfg.Algorithm, err)
		run.FailureReason = f.Reason
		c.logger().Warn("solve failed",
			"config", cfg.Label(), "tolerance_index", tolIndex, "reason", string(f.Reason))
		return run
	}

	final := traj.FinalState()
	if final == nil || !final.IsValid() {
		run.FailureReason = solver.ReasonDiverged
		c.logger().Warn("solve diverged",
			"config", cfg.Label(), "tolerance_index", tolIndex)
		return run
	}

	run.Error = c.Norm.Distance(final, exact)
	if math.IsNaN(run.Error) || math.IsInf(run.Error, 0) {
		run.FailureReason = solver.ReasonDiverged
		return run
	}

	run.Succeeded = true
	return run
}

// summarize averages the successful runs. Time is an arithmetic mean; error
// is a mean for deterministic problems and an RMS across repetitions for
// stochastic ones, since a single sampled path is not representative.
func (c *Collector) summarize(
	spec *problem.Spec,
	cfg solver.Config,
	tolIndex, attempted int,
	runs []RunResult,
) Summary {
	s := Summary{
		Config:         cfg,
		ToleranceIndex: tolIndex,
		Repetitions:    attempted,
		Runs:           runs,
		Failures:       make(map[solver.FailureReason]int),
	}

	times := make([]float64, 0, len(runs))
	errs := make([]float64, 0, len(runs))
	for i := range runs {
		if !runs[i].Succeeded {
			s.Failures[runs[i].FailureReason]++
			continue
		}
		times = append(times, runs[i].Elapsed)
		errs = append(errs, runs[i].Error)
	}
	if len(s.Failures) == 0 {
		s.Failures = nil
	}
	if attempted > 0 {
		s.SuccessFraction = float64(len(times)) / float64(attempted)
	}
	if len(times) == 0 {
		return s
	}

	s.Succeeded = true
	s.MeanTime = stat.Mean(times, nil)
	if spec.Stochastic {
		sq := make([]float64, len(errs))
		for i, e := range errs {
			sq[i] = e * e
		}
		s.Error = math.Sqrt(stat.Mean(sq, nil))
	} else {
		s.Error = stat.Mean(errs, nil)
	}

	s.Timing = TimingStats{
		Min:     floats.Min(times),
		Max:     floats.Max(times),
		Mean:    s.MeanTime,
		Samples: len(times),
	}
	if len(times) > 1 {
		s.Timing.Stddev = stat.StdDev(times, nil)
	}
	return s
}
