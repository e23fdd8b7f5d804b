package benchmark

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/diffbench/diffbench/problem"
	"github.com/diffbench/diffbench/solver"
)

// Shootout runs a single-tolerance head-to-head comparison: every
// configuration is measured once (internally over the collector's
// repetitions), efficiencies are derived, and configurations are ranked
// against the best. Configs are always measured sequentially so the timing
// comparison is not biased by contention between configurations.
type Shootout struct {
	Registry  *solver.Registry
	Collector Collector
	Logger    *slog.Logger
}

func (s *Shootout) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Run measures every configuration at its own configured tolerance or step
// size and ranks them by efficiency. Configurations whose every repetition
// failed stay in the result as non-participating entries; if no
// configuration succeeds there is nothing to rank and Run returns
// ErrDegenerateRanking.
func (s *Shootout) Run(
	ctx context.Context,
	spec *problem.Spec,
	configs []solver.Config,
) (*ResultSet, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, errors.Wrap(solver.ErrInvalidConfig, "no configurations")
	}
	bindings := make([]solver.Binding, len(configs))
	for i, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		b, err := s.Registry.Lookup(cfg.Algorithm)
		if err != nil {
			return nil, errors.Wrap(solver.ErrInvalidConfig, err.Error())
		}
		bindings[i] = b
	}

	start := time.Now()
	summaries := make([]Summary, len(configs))
	for i, cfg := range configs {
		summary, err := s.Collector.Measure(ctx, spec, bindings[i], cfg, 0)
		if err != nil {
			return nil, err
		}
		summaries[i] = summary
		if !summary.Succeeded {
			s.logger().Warn("config excluded from ranking",
				"config", cfg.Label(), "failures", summary.Failures)
		}
	}

	rs, err := newResultSet(spec.Name, summaries)
	if err != nil {
		return nil, err
	}
	s.logger().Info("shootout complete",
		"problem", spec.Name,
		"configs", len(configs),
		"best", rs.Best().Config.Label(),
		"elapsed", time.Since(start))
	return rs, nil
}
