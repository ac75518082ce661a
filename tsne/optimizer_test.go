package tsne

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUpdatedGain_SignCases pins the three-way sign semantics of the gain
// schedule: zero is its own sign class, so a nonzero gradient against a
// still-zero velocity counts as disagreement and bumps the gain. That is
// what lets every parameter accelerate on the very first step, before any
// velocity has accumulated.
func TestUpdatedGain_SignCases(t *testing.T) {
	cases := []struct {
		name      string
		grad, vel float64
		want      float64
	}{
		{"agree positive", 1.0, 2.0, 1.0 * gainDecay},
		{"agree negative", -0.5, -3.0, 1.0 * gainDecay},
		{"agree both zero", 0.0, 0.0, 1.0 * gainDecay},
		{"disagree opposite", 1.0, -1.0, 1.0 + gainBump},
		{"disagree positive vs zero velocity", 1.0, 0.0, 1.0 + gainBump},
		{"disagree negative vs zero velocity", -1.0, 0.0, 1.0 + gainBump},
		{"disagree zero gradient vs moving", 0.0, 1.0, 1.0 + gainBump},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, updatedGain(1.0, tc.grad, tc.vel), 1e-15)
		})
	}
}

// TestUpdatedGain_Floor verifies repeated decay clamps at minGain.
func TestUpdatedGain_Floor(t *testing.T) {
	g := minGain * 1.5
	for i := 0; i < 10; i++ {
		g = updatedGain(g, 1.0, 1.0) // agreement: decay
	}
	assert.Equal(t, minGain, g)
}

// TestSchedules_StepBoundaries pins the 1-based step numbering of both
// schedules: the exaggerated target runs through step 99 and is removed at
// step 100; momentum stays 0.5 through step 249 and switches at step 250.
func TestSchedules_StepBoundaries(t *testing.T) {
	assert.Equal(t, exaggeration, exaggerationAt(1))
	assert.Equal(t, exaggeration, exaggerationAt(exaggerationUntil-1))
	assert.Equal(t, 1.0, exaggerationAt(exaggerationUntil))

	assert.Equal(t, momentumEarly, momentumAt(1))
	assert.Equal(t, momentumEarly, momentumAt(momentumSwitch-1))
	assert.Equal(t, momentumLate, momentumAt(momentumSwitch))
}

// TestStep_CounterIsOneBased verifies the counter advances at the top of
// the step, so the first step already sees step number 1.
func TestStep_CounterIsOneBased(t *testing.T) {
	ts := newReady(t, twoPairs3D(t), pairOptions())

	_, err := ts.Step()
	assert.NoError(t, err)
	assert.Equal(t, 1, ts.Iteration())
}
