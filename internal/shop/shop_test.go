package shop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
	"github.com/xtding233/forgewheel/internal/shop"
)

func defaultCatalog(t *testing.T) *shop.Catalog {
	t.Helper()
	cat, err := shop.NewCatalog(shop.DefaultTrinkets()...)
	require.NoError(t, err)
	return cat
}

func ids(p shop.Plan) []string {
	out := make([]string, 0, len(p.Trinkets))
	for _, t := range p.Trinkets {
		out = append(out, t.ID)
	}
	return out
}

func TestBestLoadout(t *testing.T) {
	cat := defaultCatalog(t)
	tests := []struct {
		name   string
		budget int64
		owned  map[string]bool
		want   []string
		score  int
	}{
		{"nothing affordable", 1, nil, []string{}, 0},
		{"cheapest only", 3, nil, []string{"tongs"}, 1},
		{"uncommon plus common", 6, nil, []string{"tongs", "bellows"}, 3},
		{"rare plus common beats uncommon pairings", 8, nil, []string{"tongs", "anvil"}, 4},
		{"pair ties with legendary", 10, nil, []string{"bellows", "anvil"}, 5},
		{"everything", 100, nil, []string{"tongs", "bellows", "anvil", "crucible"}, 11},
		{"skips owned", 100, map[string]bool{"crucible": true}, []string{"tongs", "bellows", "anvil"}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := shop.BestLoadout(cat, tt.budget, tt.owned)
			assert.ElementsMatch(t, tt.want, ids(plan))
			assert.Equal(t, tt.score, plan.Score)
			assert.LessOrEqual(t, plan.Cost, tt.budget)
		})
	}
}

func TestCatalogValidation(t *testing.T) {
	_, err := shop.NewCatalog(shop.Trinket{ID: "x", Rarity: "mythic", Cost: 1})
	assert.ErrorIs(t, err, shop.ErrInvalidCatalog)
	_, err = shop.NewCatalog(shop.Trinket{ID: "x", Rarity: shop.Common, Cost: 0})
	assert.ErrorIs(t, err, shop.ErrInvalidCatalog)
	_, err = shop.NewCatalog(
		shop.Trinket{ID: "x", Rarity: shop.Common, Cost: 1},
		shop.Trinket{ID: "x", Rarity: shop.Rare, Cost: 2},
	)
	assert.ErrorIs(t, err, shop.ErrInvalidCatalog)
}

func TestBuyAppliesEffect(t *testing.T) {
	cfg := cycle.DefaultConfig()
	cfg.GridPolicy = reel.GridIndependent
	// every cell a crown: 18 tickets per spin
	m, err := cycle.New(cfg, cycle.WithRandomSource(reel.NewSequenceRNG(0.9469)))
	require.NoError(t, err)
	cat := defaultCatalog(t)

	require.True(t, m.BuySpins())
	for m.CanSpin() {
		m.Spin()
	}
	tickets := m.Tickets()

	assert.False(t, cat.Buy(m, "missing"))
	require.True(t, cat.Buy(m, "bellows"))
	assert.Equal(t, tickets-4, m.Tickets())
	assert.Equal(t, cfg.SpinsPerBatch+1, m.BatchSize())
	assert.False(t, cat.Buy(m, "bellows"))
}
