package problem

import "github.com/pkg/errors"

// ByName resolves a named catalog problem, the entry point suite configs use.
//
// Recognized names: "linear", "linear-2d", "wave", "fitzhugh-nagumo",
// "additive-noise".
func ByName(name string) (*Spec, error) {
	switch name {
	case "linear":
		return NewLinear(), nil
	case "linear-2d":
		// The classic flattened 4x2 elementwise linear system.
		return NewLinearND(8), nil
	case "wave":
		return NewWave(1), nil
	case "fitzhugh-nagumo":
		return NewFitzhughNagumo(), nil
	case "additive-noise":
		return NewAdditiveNoise(0.1, 0.5), nil
	}
	return nil, errors.Errorf("problem: unknown catalog problem %q", name)
}
