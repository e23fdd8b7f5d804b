package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateAdaptive(t *testing.T) {
	cfg := NewAdaptive("dopri5", 1e-6, 1e-3)
	assert.NoError(t, cfg.Validate())

	assert.ErrorIs(t, Config{Mode: ModeAdaptive}.Validate(), ErrInvalidConfig)

	missing := Config{Algorithm: "dopri5", Mode: ModeAdaptive}
	assert.ErrorIs(t, missing.Validate(), ErrInvalidConfig)

	bad := NewAdaptive("dopri5", -1e-6, 1e-3)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	mixed := NewAdaptive("dopri5", 1e-6, 1e-3)
	mixed.FixedStep = &FixedStepOptions{Dt: 0.1}
	assert.ErrorIs(t, mixed.Validate(), ErrInvalidConfig)
}

func TestConfigValidateFixedStep(t *testing.T) {
	cfg := NewFixedStep("euler", 1.0/64)
	assert.NoError(t, cfg.Validate())

	missing := Config{Algorithm: "euler", Mode: ModeFixedStep}
	assert.ErrorIs(t, missing.Validate(), ErrInvalidConfig)

	zero := NewFixedStep("euler", 0)
	assert.ErrorIs(t, zero.Validate(), ErrInvalidConfig)

	mixed := NewFixedStep("euler", 0.1)
	mixed.Adaptive = &AdaptiveOptions{AbsTol: 1e-6, RelTol: 1e-6}
	assert.ErrorIs(t, mixed.Validate(), ErrInvalidConfig)
}

func TestConfigValidateUnknownMode(t *testing.T) {
	cfg := Config{Algorithm: "euler", Mode: "magic"}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestConfigSubstitutionCopies(t *testing.T) {
	base := NewAdaptive("dopri5", 1e-3, 1e-3)

	tight := base.WithTolerance(1e-9, 1e-9)
	assert.Equal(t, 1e-3, base.Adaptive.AbsTol, "base config must stay untouched")
	assert.Equal(t, 1e-9, tight.Adaptive.AbsTol)

	fixed := NewFixedStep("euler", 0.5)
	half := fixed.WithDt(0.25)
	assert.Equal(t, 0.5, fixed.FixedStep.Dt)
	assert.Equal(t, 0.25, half.FixedStep.Dt)
}

func TestConfigLabel(t *testing.T) {
	cfg := NewAdaptive("dopri5", 1e-6, 1e-6)
	assert.Equal(t, "dopri5", cfg.Label())
	assert.Equal(t, "RK45 (dense)", cfg.Named("RK45 (dense)").Label())
	assert.Equal(t, "euler", Config{Algorithm: "euler"}.Label())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	b := stubBinding("euler")
	r.Register(b)

	got, err := r.Lookup("euler")
	require.NoError(t, err)
	assert.Equal(t, "euler", got.Name())

	_, err = r.Lookup("milstein")
	assert.Error(t, err)
	assert.Equal(t, []string{"euler"}, r.Names())
}

func BenchmarkConfigValidate(b *testing.B) {
	cfg := NewAdaptive("dopri5", 1e-6, 1e-3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Validate()
	}
}
