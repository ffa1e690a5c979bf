package reel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/forgewheel/internal/reel"
)

func TestDrawBounds(t *testing.T) {
	got, err := reel.Draw(0, reel.NewSeededRNG(1))
	require.NoError(t, err)
	assert.False(t, got, "p=0 should never hit")

	got, err = reel.Draw(1, reel.NewSeededRNG(1))
	require.NoError(t, err)
	assert.True(t, got, "p=1 should always hit")

	_, err = reel.Draw(-0.1, nil)
	assert.ErrorIs(t, err, reel.ErrInvalidProb)
	_, err = reel.Draw(1.1, nil)
	assert.ErrorIs(t, err, reel.ErrInvalidProb)
}

func TestDrawStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	rng := reel.NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		ok, err := reel.Draw(p, rng)
		require.NoError(t, err)
		if ok {
			hit++
		}
	}
	assert.InDelta(t, p, float64(hit)/n, 0.01)
}

func TestSequenceRNGWraps(t *testing.T) {
	rng := reel.NewSequenceRNG(0.1, 0.2)
	assert.Equal(t, 0.1, rng.Float64())
	assert.Equal(t, 0.2, rng.Float64())
	assert.Equal(t, 0.1, rng.Float64())
	assert.Equal(t, 3, rng.Draws())
}
