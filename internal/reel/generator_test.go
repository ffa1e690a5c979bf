package reel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/forgewheel/internal/reel"
)

func TestGenerateShape(t *testing.T) {
	cat := forgeCatalog(t)
	for _, policy := range []reel.GridPolicy{reel.GridIndependent, reel.GridStacking} {
		for _, dims := range [][2]int{{3, 5}, {1, 1}, {4, 6}} {
			gen, err := reel.NewGenerator(cat, dims[0], dims[1], policy)
			require.NoError(t, err)
			rng := reel.NewSeededRNG(11)
			for i := 0; i < 50; i++ {
				g := gen.Generate(rng)
				require.NoError(t, g.Validate(dims[0], dims[1]), "policy %s", policy)
				for _, row := range g {
					for _, cell := range row {
						assert.False(t, cell.Winning)
						_, ok := cat.Lookup(cell.Symbol)
						assert.True(t, ok)
					}
				}
			}
		}
	}
}

func twoKindCatalog(t *testing.T) *reel.Catalog {
	t.Helper()
	cat, err := reel.NewCatalog(
		reel.Kind{ID: "sticky", Weight: 1, StackChance: 0.9},
		reel.Kind{ID: "loose", Weight: 1},
	)
	require.NoError(t, err)
	return cat
}

func TestStackingFillsColumn(t *testing.T) {
	cat := twoKindCatalog(t)
	gen, err := reel.NewGenerator(cat, 3, 1, reel.GridStacking)
	require.NoError(t, err)

	// pick sticky, stack to 2, extend to 3
	rng := reel.NewSequenceRNG(0.1, 0.0, 0.0)
	g := gen.Generate(rng)
	for r := 0; r < 3; r++ {
		assert.Equal(t, reel.SymbolID("sticky"), g[r][0].Symbol)
	}
	assert.Equal(t, 3, rng.Draws())
}

func TestStackingClampsToRemainingRows(t *testing.T) {
	cat := twoKindCatalog(t)
	gen, err := reel.NewGenerator(cat, 2, 1, reel.GridStacking)
	require.NoError(t, err)

	rng := reel.NewSequenceRNG(0.1, 0.0)
	g := gen.Generate(rng)
	assert.Equal(t, reel.SymbolID("sticky"), g[0][0].Symbol)
	assert.Equal(t, reel.SymbolID("sticky"), g[1][0].Symbol)
	assert.Equal(t, 2, rng.Draws(), "no third-cell draw without room")
}

func TestStackingSkipsZeroPropensity(t *testing.T) {
	cat := twoKindCatalog(t)
	gen, err := reel.NewGenerator(cat, 3, 1, reel.GridStacking)
	require.NoError(t, err)

	// loose, loose, sticky(no room left to stack)
	rng := reel.NewSequenceRNG(0.9, 0.9, 0.1)
	g := gen.Generate(rng)
	assert.Equal(t, []reel.SymbolID{"loose", "loose", "sticky"},
		[]reel.SymbolID{g[0][0].Symbol, g[1][0].Symbol, g[2][0].Symbol})
}

func TestStripsHaveExactLength(t *testing.T) {
	cat := forgeCatalog(t)
	for _, policy := range []reel.GridPolicy{reel.GridIndependent, reel.GridStacking} {
		gen, err := reel.NewGenerator(cat, 3, 5, policy)
		require.NoError(t, err)
		strips, err := gen.Strips(reel.NewSeededRNG(3), 20)
		require.NoError(t, err)
		require.Len(t, strips, 5)
		for _, s := range strips {
			assert.Len(t, s, 20)
		}
	}
	gen, err := reel.NewGenerator(cat, 3, 5, reel.GridStacking)
	require.NoError(t, err)
	_, err = gen.Strips(nil, -1)
	assert.Error(t, err)
}

func TestGeneratorRejectsBadShape(t *testing.T) {
	_, err := reel.NewGenerator(forgeCatalog(t), 0, 5, reel.GridIndependent)
	assert.ErrorIs(t, err, reel.ErrInvalidConfig)
	_, err = reel.NewGenerator(forgeCatalog(t), 3, 5, "diagonal")
	assert.ErrorIs(t, err, reel.ErrInvalidConfig)
}
