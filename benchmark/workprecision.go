package benchmark

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/diffbench/diffbench/problem"
	"github.com/diffbench/diffbench/solver"
)

// DtTable maps a fixed-step config label to its per-level step sizes.
// Fixed-step methods have no tolerance parameter, so the caller supplies the
// tolerance-to-dt correspondence explicitly; it is never inferred.
type DtTable map[string][]float64

// WorkPrecision sweeps a set of configurations across a tolerance grid and
// collects a (configs x tolerances) matrix of summaries.
//
// Every cell is a pure, independent computation over the shared read-only
// problem Spec, so cells may run concurrently. Parallelism applies across
// cells only - the repetitions inside one timing measurement always run
// sequentially, so concurrent workers can skew absolute times through CPU
// contention. Keep Parallelism at 1 when wall-clock comparisons matter and
// treat higher values as an optimization for broad scans.
type WorkPrecision struct {
	Registry  *solver.Registry
	Collector Collector

	// Parallelism bounds the number of concurrently evaluated cells.
	// Values < 2 mean sequential execution.
	Parallelism int

	Logger *slog.Logger
}

func (wp *WorkPrecision) logger() *slog.Logger {
	if wp.Logger != nil {
		return wp.Logger
	}
	return slog.Default()
}

// Run evaluates every configuration at every tolerance level. Adaptive
// configs get the level's tolerance pair substituted; fixed-step configs get
// the level-indexed dt from the table. The returned grid has no missing
// cells: a cell whose runs all failed is present with Succeeded=false.
//
// Configuration problems (invalid config, fixed-step config without a
// matching dts row, missing error reference) fail fast before any solve.
func (wp *WorkPrecision) Run(
	ctx context.Context,
	spec *problem.Spec,
	configs []solver.Config,
	tolerances []Tolerance,
	dts DtTable,
) (*WorkPrecisionSet, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, errors.Wrap(solver.ErrInvalidConfig, "no configurations")
	}
	if len(tolerances) == 0 {
		return nil, errors.Wrap(solver.ErrInvalidConfig, "no tolerance levels")
	}
	bindings := make([]solver.Binding, len(configs))
	seen := make(map[string]bool, len(configs))
	for i, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		// Labels key the dt table and the result rows; duplicates would
		// silently alias both.
		if seen[cfg.Label()] {
			return nil, errors.Wrapf(solver.ErrInvalidConfig,
				"duplicate config label %q", cfg.Label())
		}
		seen[cfg.Label()] = true
		if cfg.Mode == solver.ModeFixedStep {
			row, ok := dts[cfg.Label()]
			if !ok {
				return nil, errors.Wrapf(solver.ErrInvalidConfig,
					"fixed-step config %q has no dt table row", cfg.Label())
			}
			if len(row) != len(tolerances) {
				return nil, errors.Wrapf(solver.ErrInvalidConfig,
					"config %q: dt table has %d entries for %d tolerance levels",
					cfg.Label(), len(row), len(tolerances))
			}
		}
		b, err := wp.Registry.Lookup(cfg.Algorithm)
		if err != nil {
			return nil, errors.Wrap(solver.ErrInvalidConfig, err.Error())
		}
		bindings[i] = b
	}

	set := &WorkPrecisionSet{
		RunID:      uuid.New(),
		CreatedAt:  time.Now(),
		Problem:    spec.Name,
		Tolerances: tolerances,
		Cells:      make([][]Summary, len(configs)),
	}
	for i := range set.Cells {
		set.Cells[i] = make([]Summary, len(tolerances))
	}

	g, gctx := errgroup.WithContext(ctx)
	if wp.Parallelism > 1 {
		g.SetLimit(wp.Parallelism)
	} else {
		g.SetLimit(1)
	}

	start := time.Now()
	for i := range configs {
		for j := range tolerances {
			i, j := i, j
			g.Go(func() error {
				cell := wp.cellConfig(configs[i], tolerances[j], j, dts)
				summary, err := wp.Collector.Measure(gctx, spec, bindings[i], cell, j)
				if err != nil {
					return err
				}
				set.Cells[i][j] = summary
				wp.logger().Debug("cell done",
					"config", cell.Label(), "tolerance_index", j,
					"succeeded", summary.Succeeded)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	wp.logger().Info("work-precision sweep complete",
		"problem", spec.Name,
		"configs", len(configs),
		"tolerances", len(tolerances),
		"elapsed", time.Since(start))
	return set, nil
}

// cellConfig substitutes the tolerance level into a copy of the config.
func (wp *WorkPrecision) cellConfig(cfg solver.Config, tol Tolerance, level int, dts DtTable) solver.Config {
	if cfg.Mode == solver.ModeFixedStep {
		return cfg.WithDt(dts[cfg.Label()][level])
	}
	return cfg.WithTolerance(tol.Abs, tol.Rel)
}
