package reel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/forgewheel/internal/reel"
)

func forgeCatalog(t *testing.T) *reel.Catalog {
	t.Helper()
	cat, err := reel.NewCatalog(reel.ForgeKinds()...)
	require.NoError(t, err)
	return cat
}

func TestCatalogAccessors(t *testing.T) {
	cat := forgeCatalog(t)

	assert.InDelta(t, 5.65, cat.TotalWeight(), 1e-9)
	assert.Equal(t, int64(75), cat.BaseValue(reel.Crown))
	assert.Equal(t, 0.5, cat.TicketChance(reel.Crown))
	assert.Equal(t, 0.0, cat.TicketChance(reel.Slag))
	assert.Equal(t, 0.35, cat.StackPropensity(reel.Ember))
	assert.True(t, cat.IsWild(reel.Wild))
	assert.False(t, cat.IsWild(reel.Ember))
	assert.Equal(t, 7, cat.Len())
}

func TestCatalogRejectsBadKinds(t *testing.T) {
	tests := []struct {
		name  string
		kinds []reel.Kind
	}{
		{"empty", nil},
		{"zero weight", []reel.Kind{{ID: "a", Weight: 0}}},
		{"negative value", []reel.Kind{{ID: "a", Weight: 1, BaseValue: -1}}},
		{"duplicate", []reel.Kind{{ID: "a", Weight: 1}, {ID: "a", Weight: 2}}},
		{"ticket chance", []reel.Kind{{ID: "a", Weight: 1, TicketChance: 1.5}}},
		{"missing id", []reel.Kind{{Weight: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reel.NewCatalog(tt.kinds...)
			assert.ErrorIs(t, err, reel.ErrInvalidConfig)
		})
	}
}

func TestPickWeightedBoundaries(t *testing.T) {
	cat := forgeCatalog(t)

	assert.Equal(t, reel.Slag, cat.PickWeighted(reel.NewSequenceRNG(0)))
	// 1.4 < 0.3*5.65 = 1.695 <= 2.7 lands on coal
	assert.Equal(t, reel.Coal, cat.PickWeighted(reel.NewSequenceRNG(0.3)))
	assert.Equal(t, reel.Wild, cat.PickWeighted(reel.NewSequenceRNG(0.9999999)))
}

func TestPickWeightedDistribution(t *testing.T) {
	cat := forgeCatalog(t)
	rng := reel.NewSeededRNG(7)
	const n = 200000
	counts := map[reel.SymbolID]int{}
	for i := 0; i < n; i++ {
		counts[cat.PickWeighted(rng)]++
	}
	for _, k := range cat.Kinds() {
		want := k.Weight / cat.TotalWeight()
		assert.InDelta(t, want, float64(counts[k.ID])/n, 0.01, "symbol %s", k.ID)
	}
}
