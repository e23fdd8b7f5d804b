package benchmark

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/diffbench/diffbench/solver"
)

// SuiteConfig is the on-disk description of a benchmark run: which problem,
// which configurations, which tolerance grid. YAML is the primary format;
// JSON is accepted for generated suites.
type SuiteConfig struct {
	Problem     string  `json:"problem"      yaml:"problem"`
	OutputDir   string  `json:"output_dir"   yaml:"output_dir"`
	Repetitions int     `json:"repetitions"  yaml:"repetitions"`
	Norm        Norm    `json:"norm"         yaml:"norm"`
	Parallelism int     `json:"parallelism"  yaml:"parallelism"`

	// RunBudget bounds a single solve, in nanoseconds on disk. Zero means
	// unbounded.
	RunBudget time.Duration `json:"run_budget" yaml:"run_budget"`

	Tolerances []Tolerance     `json:"tolerances" yaml:"tolerances"`
	Configs    []solver.Config `json:"configs"    yaml:"configs"`
	Dts        DtTable         `json:"dts,omitempty" yaml:"dts,omitempty"`
}

// DefaultSuiteConfig returns a runnable baseline configuration.
func DefaultSuiteConfig() *SuiteConfig {
	return &SuiteConfig{
		Problem:     "linear",
		OutputDir:   "./bench_results",
		Norm:        NormL2,
		Parallelism: 1,
		RunBudget:   30 * time.Second,
		Tolerances:  ToleranceGrid(3, 7),
	}
}

// Collector builds the metric collector this suite describes.
func (sc *SuiteConfig) Collector() Collector {
	return Collector{
		Repetitions: sc.Repetitions,
		Norm:        sc.Norm,
		RunBudget:   sc.RunBudget,
	}
}

// Validate checks the suite before any solve is attempted.
func (sc *SuiteConfig) Validate() error {
	if sc.Problem == "" {
		return errors.Wrap(solver.ErrInvalidConfig, "suite: missing problem name")
	}
	if len(sc.Configs) == 0 {
		return errors.Wrap(solver.ErrInvalidConfig, "suite: no configurations")
	}
	for _, cfg := range sc.Configs {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return sc.Norm.Validate()
}

// LoadSuiteConfig reads a suite file, choosing the decoder by extension.
func LoadSuiteConfig(path string) (*SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read suite config")
	}

	sc := DefaultSuiteConfig()
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, sc); err != nil {
			return nil, errors.Wrap(err, "unmarshal suite config")
		}
	default:
		if err := yaml.Unmarshal(data, sc); err != nil {
			return nil, errors.Wrap(err, "unmarshal suite config")
		}
	}
	return sc, nil
}

// Save writes the suite config, choosing the encoder by extension.
func (sc *SuiteConfig) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".json":
		data, err = json.MarshalIndent(sc, "", "  ")
	default:
		data, err = yaml.Marshal(sc)
	}
	if err != nil {
		return errors.Wrap(err, "marshal suite config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write suite config")
	}
	return nil
}
