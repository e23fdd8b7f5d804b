package solver

import (
	"fmt"

	"github.com/pkg/errors"
)

// Mode selects the stepping family a configuration belongs to. Each family
// carries only the fields it accepts; Validate rejects mixed or missing
// variants before any solve runs.
type Mode string

const (
	// ModeAdaptive - runtime step-size control targeting a tolerance pair.
	ModeAdaptive Mode = "adaptive"
	// ModeFixedStep - a predetermined step size, no tolerance parameter.
	ModeFixedStep Mode = "fixed"
)

// AdaptiveOptions configures an adaptive-mode solve.
type AdaptiveOptions struct {
	AbsTol float64 `json:"abs_tol" yaml:"abs_tol"`
	RelTol float64 `json:"rel_tol" yaml:"rel_tol"`
}

// FixedStepOptions configures a fixed-step solve.
type FixedStepOptions struct {
	Dt float64 `json:"dt" yaml:"dt"`
}

// Config describes one benchmark configuration: an algorithm plus the options
// bundle its family accepts. Configs are value types; engines substitute
// tolerance levels by copying, never by mutating a shared Config.
type Config struct {
	// Algorithm is the registry identifier of the binding to run.
	Algorithm string `json:"algorithm" yaml:"algorithm"`

	// DisplayName labels the configuration in reports. Defaults to Algorithm.
	DisplayName string `json:"display_name" yaml:"display_name"`

	Mode      Mode             `json:"mode"      yaml:"mode"`
	Adaptive  *AdaptiveOptions `json:"adaptive,omitempty"  yaml:"adaptive,omitempty"`
	FixedStep *FixedStepOptions `json:"fixed_step,omitempty" yaml:"fixed_step,omitempty"`

	// DenseOutput requests continuous interpolated output from the binding.
	DenseOutput bool `json:"dense_output" yaml:"dense_output"`

	// SaveEverySteps requests every internal step point in the trajectory
	// rather than only the endpoints.
	SaveEverySteps bool `json:"save_every_step" yaml:"save_every_step"`
}

// NewAdaptive builds an adaptive configuration.
func NewAdaptive(algorithm string, absTol, relTol float64) Config {
	return Config{
		Algorithm:   algorithm,
		DisplayName: algorithm,
		Mode:        ModeAdaptive,
		Adaptive:    &AdaptiveOptions{AbsTol: absTol, RelTol: relTol},
	}
}

// NewFixedStep builds a fixed-step configuration.
func NewFixedStep(algorithm string, dt float64) Config {
	return Config{
		Algorithm:   algorithm,
		DisplayName: algorithm,
		Mode:        ModeFixedStep,
		FixedStep:   &FixedStepOptions{Dt: dt},
	}
}

// Named returns a copy with the given display name.
func (c Config) Named(name string) Config {
	c.DisplayName = name
	return c
}

// WithDenseOutput returns a copy with dense output toggled.
func (c Config) WithDenseOutput(on bool) Config {
	c.DenseOutput = on
	return c
}

// WithTolerance returns a copy with the tolerance pair substituted. Only
// meaningful for adaptive configs; the work-precision engine uses it to walk
// a tolerance grid without touching the caller's Config.
func (c Config) WithTolerance(absTol, relTol float64) Config {
	c.Adaptive = &AdaptiveOptions{AbsTol: absTol, RelTol: relTol}
	return c
}

// WithDt returns a copy with the fixed step size substituted.
func (c Config) WithDt(dt float64) Config {
	c.FixedStep = &FixedStepOptions{Dt: dt}
	return c
}

// Label returns the display name, falling back to the algorithm identifier.
func (c Config) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Algorithm
}

// Validate checks the variant invariants: adaptive configs need a positive
// tolerance pair, fixed-step configs need a positive dt, and neither may
// carry the other family's options. All violations wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Algorithm == "" {
		return errors.Wrap(ErrInvalidConfig, "missing algorithm identifier")
	}
	switch c.Mode {
	case ModeAdaptive:
		if c.FixedStep != nil {
			return invalid(c, "adaptive config carries fixed-step options")
		}
		if c.Adaptive == nil {
			return invalid(c, "adaptive config without tolerances")
		}
		if c.Adaptive.AbsTol <= 0 || c.Adaptive.RelTol <= 0 {
			return invalid(c, fmt.Sprintf("non-positive tolerances abs=%g rel=%g",
				c.Adaptive.AbsTol, c.Adaptive.RelTol))
		}
	case ModeFixedStep:
		if c.Adaptive != nil {
			return invalid(c, "fixed-step config carries adaptive options")
		}
		if c.FixedStep == nil {
			return invalid(c, "fixed-step config without step size")
		}
		if c.FixedStep.Dt <= 0 {
			return invalid(c, fmt.Sprintf("non-positive step size dt=%g", c.FixedStep.Dt))
		}
	default:
		return invalid(c, fmt.Sprintf("unknown mode %q", c.Mode))
	}
	return nil
}

func invalid(c Config, msg string) error {
	return errors.Wrapf(ErrInvalidConfig, "config %q: %s", c.Label(), msg)
}
