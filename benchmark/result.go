package benchmark

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/diffbench/diffbench/solver"
)

// minMeasurableTime is the sentinel floor (in seconds) for a measured solve
// time. A zero wall-clock reading is a clock-granularity artifact, not a
// free solve; clamping keeps efficiency finite instead of dividing by zero.
const minMeasurableTime = 1e-9

// RunResult is the outcome of a single solve repetition.
type RunResult struct {
	ConfigLabel    string               `json:"config"`
	ToleranceIndex int                  `json:"tolerance_index"`
	Elapsed        float64              `json:"elapsed_seconds"`
	Error          float64              `json:"error"`
	Succeeded      bool                 `json:"succeeded"`
	FailureReason  solver.FailureReason `json:"failure_reason,omitempty"`
}

// TimingStats summarizes the run durations of a measurement cell.
type TimingStats struct {
	Min     float64 `json:"min_seconds"`
	Max     float64 `json:"max_seconds"`
	Mean    float64 `json:"mean_seconds"`
	Stddev  float64 `json:"stddev_seconds"`
	Samples int     `json:"samples"`
}

// Summary aggregates the repetitions of one (config, tolerance) cell.
// MeanTime and Error average over successful runs only; a cell where every
// repetition failed has Succeeded=false and carries no time or error.
type Summary struct {
	Config         solver.Config `json:"config"`
	ToleranceIndex int           `json:"tolerance_index"`

	MeanTime float64 `json:"mean_time_seconds"`
	Error    float64 `json:"error"`

	Succeeded       bool    `json:"succeeded"`
	SuccessFraction float64 `json:"success_fraction"`
	Repetitions     int     `json:"repetitions"`

	Timing   TimingStats                  `json:"timing"`
	Failures map[solver.FailureReason]int `json:"failures,omitempty"`
	Runs     []RunResult                  `json:"-"`
}

// Efficiency is 1/(error * time). A zero error yields +Inf; the sentinel
// time floor keeps the product positive. Failed cells report NaN, which
// marks them non-participating in ranking (neither zero nor infinite).
func (s *Summary) Efficiency() float64 {
	if !s.Succeeded {
		return math.NaN()
	}
	return efficiency(s.Error, s.MeanTime)
}

func efficiency(err, meanTime float64) float64 {
	if meanTime < minMeasurableTime {
		meanTime = minMeasurableTime
	}
	if err == 0 {
		return math.Inf(1)
	}
	return 1 / (err * meanTime)
}

// ResultSet is the ranked output of a shootout: one entry per configuration,
// in the caller's config order. Immutable once built.
type ResultSet struct {
	RunID     uuid.UUID `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Problem   string    `json:"problem"`

	Summaries []Summary `json:"summaries"`

	// Efficiencies[i] is NaN for configs whose every run failed.
	Efficiencies []float64 `json:"efficiencies"`

	// BestIndex is the argmax of efficiency over successful configs.
	// Ties: zero-error configs win by lowest mean time, everything else by
	// lowest config index.
	BestIndex int `json:"best_index"`

	// EffRatios[i] = Efficiencies[BestIndex] / Efficiencies[i]; exactly 1.0
	// at BestIndex, NaN for failed configs.
	EffRatios []float64 `json:"eff_ratios"`
}

// newResultSet derives efficiencies and rankings from per-config summaries.
// Returns ErrDegenerateRanking when no config succeeded.
func newResultSet(problemName string, summaries []Summary) (*ResultSet, error) {
	rs := &ResultSet{
		RunID:        uuid.New(),
		CreatedAt:    time.Now(),
		Problem:      problemName,
		Summaries:    summaries,
		Efficiencies: make([]float64, len(summaries)),
		EffRatios:    make([]float64, len(summaries)),
		BestIndex:    -1,
	}

	for i := range summaries {
		rs.Efficiencies[i] = summaries[i].Efficiency()
	}

	for i := range summaries {
		if !summaries[i].Succeeded {
			continue
		}
		if rs.BestIndex < 0 {
			rs.BestIndex = i
			continue
		}
		if betterThan(&summaries[i], rs.Efficiencies[i],
			&summaries[rs.BestIndex], rs.Efficiencies[rs.BestIndex]) {
			rs.BestIndex = i
		}
	}
	if rs.BestIndex < 0 {
		return nil, ErrDegenerateRanking
	}

	best := rs.Efficiencies[rs.BestIndex]
	for i := range summaries {
		switch {
		case !summaries[i].Succeeded:
			rs.EffRatios[i] = math.NaN()
		case i == rs.BestIndex:
			rs.EffRatios[i] = 1.0
		case math.IsInf(best, 1) && math.IsInf(rs.Efficiencies[i], 1):
			// Two zero-error configs: the efficiency quotient is
			// indeterminate, so the ratio degrades to the cost ratio. The
			// best has the lowest time among them, keeping this >= 1.
			rs.EffRatios[i] = timeRatio(summaries[i].MeanTime, summaries[rs.BestIndex].MeanTime)
		default:
			rs.EffRatios[i] = best / rs.Efficiencies[i]
		}
	}
	return rs, nil
}

func timeRatio(t, base float64) float64 {
	if t < minMeasurableTime {
		t = minMeasurableTime
	}
	if base < minMeasurableTime {
		base = minMeasurableTime
	}
	return t / base
}

// betterThan reports whether candidate strictly beats incumbent. Equal
// efficiency is not better, so the first occurrence in config order wins.
// Two zero-error configs both sit at +Inf; the cheaper one wins.
func betterThan(cand *Summary, candEff float64, inc *Summary, incEff float64) bool {
	if math.IsInf(candEff, 1) && math.IsInf(incEff, 1) {
		return cand.MeanTime < inc.MeanTime
	}
	return candEff > incEff
}

// Names returns the config display names in result order.
func (rs *ResultSet) Names() []string {
	names := make([]string, len(rs.Summaries))
	for i := range rs.Summaries {
		names[i] = rs.Summaries[i].Config.Label()
	}
	return names
}

// Times returns the mean solve time per config, NaN for failed configs.
func (rs *ResultSet) Times() []float64 {
	out := make([]float64, len(rs.Summaries))
	for i := range rs.Summaries {
		if rs.Summaries[i].Succeeded {
			out[i] = rs.Summaries[i].MeanTime
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Errors returns the aggregated error per config, NaN for failed configs.
func (rs *ResultSet) Errors() []float64 {
	out := make([]float64, len(rs.Summaries))
	for i := range rs.Summaries {
		if rs.Summaries[i].Succeeded {
			out[i] = rs.Summaries[i].Error
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// SuccessFractions returns the fraction of repetitions that succeeded per config.
func (rs *ResultSet) SuccessFractions() []float64 {
	out := make([]float64, len(rs.Summaries))
	for i := range rs.Summaries {
		out[i] = rs.Summaries[i].SuccessFraction
	}
	return out
}

// Best returns the summary of the winning configuration.
func (rs *ResultSet) Best() *Summary {
	return &rs.Summaries[rs.BestIndex]
}

// jsonFloat renders non-finite values JSON-safely: NaN becomes null
// (non-participating), infinities become strings. encoding/json rejects
// these values outright otherwise.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte("null"), nil
	case math.IsInf(v, 1):
		return []byte(`"+inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-inf"`), nil
	}
	return json.Marshal(v)
}

func jsonFloats(vs []float64) []jsonFloat {
	out := make([]jsonFloat, len(vs))
	for i, v := range vs {
		out[i] = jsonFloat(v)
	}
	return out
}

// MarshalJSON substitutes JSON-safe efficiencies and ratios.
func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RunID        uuid.UUID   `json:"run_id"`
		CreatedAt    time.Time   `json:"created_at"`
		Problem      string      `json:"problem"`
		Summaries    []Summary   `json:"summaries"`
		Efficiencies []jsonFloat `json:"efficiencies"`
		BestIndex    int         `json:"best_index"`
		EffRatios    []jsonFloat `json:"eff_ratios"`
	}{
		RunID:        rs.RunID,
		CreatedAt:    rs.CreatedAt,
		Problem:      rs.Problem,
		Summaries:    rs.Summaries,
		Efficiencies: jsonFloats(rs.Efficiencies),
		BestIndex:    rs.BestIndex,
		EffRatios:    jsonFloats(rs.EffRatios),
	})
}

// Tolerance is one level of a work-precision sweep.
type Tolerance struct {
	Abs float64 `json:"abs" yaml:"abs"`
	Rel float64 `json:"rel" yaml:"rel"`
}

// WorkPrecisionSet is the configs x tolerances grid a work-precision sweep
// produces. Rows follow the caller's config order, columns the caller's
// tolerance order.
type WorkPrecisionSet struct {
	RunID     uuid.UUID `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Problem   string    `json:"problem"`

	Tolerances []Tolerance `json:"tolerances"`
	// Cells[i][j] is config i at tolerance level j.
	Cells [][]Summary `json:"cells"`
}

// Row returns the summaries of one config across all tolerance levels.
func (w *WorkPrecisionSet) Row(config int) []Summary { return w.Cells[config] }

// Names returns the config display names in row order.
func (w *WorkPrecisionSet) Names() []string {
	names := make([]string, len(w.Cells))
	for i, row := range w.Cells {
		if len(row) > 0 {
			names[i] = row[0].Config.Label()
		}
	}
	return names
}

// Times returns the mean-time grid, NaN for failed cells.
func (w *WorkPrecisionSet) Times() [][]float64 {
	return w.grid(func(s *Summary) float64 { return s.MeanTime })
}

// Errors returns the error grid, NaN for failed cells.
func (w *WorkPrecisionSet) Errors() [][]float64 {
	return w.grid(func(s *Summary) float64 { return s.Error })
}

func (w *WorkPrecisionSet) grid(field func(*Summary) float64) [][]float64 {
	out := make([][]float64, len(w.Cells))
	for i, row := range w.Cells {
		out[i] = make([]float64, len(row))
		for j := range row {
			if row[j].Succeeded {
				out[i][j] = field(&row[j])
			} else {
				out[i][j] = math.NaN()
			}
		}
	}
	return out
}
