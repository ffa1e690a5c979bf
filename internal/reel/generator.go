package reel

import "fmt"

// GridPolicy selects how cells are drawn.
type GridPolicy string

const (
	// Every cell drawn on its own.
	GridIndependent GridPolicy = "independent"
	// Columns filled top-down with short runs of the same symbol.
	GridStacking GridPolicy = "stacking"
)

func (p GridPolicy) valid() bool { return p == GridIndependent || p == GridStacking }

// Generator produces grids for a fixed shape and catalog.
type Generator struct {
	catalog *Catalog
	rows    int
	cols    int
	policy  GridPolicy
}

func NewGenerator(cat *Catalog, rows, cols int, policy GridPolicy) (*Generator, error) {
	var errs problems
	if cat == nil {
		errs.addf("catalog is required")
	}
	if rows <= 0 || cols <= 0 {
		errs.addf("grid must be at least 1x1, got %dx%d", rows, cols)
	}
	if !policy.valid() {
		errs.addf("unknown grid policy %q", policy)
	}
	if err := errs.err("generator"); err != nil {
		return nil, err
	}
	return &Generator{catalog: cat, rows: rows, cols: cols, policy: policy}, nil
}

func (g *Generator) Rows() int { return g.rows }

func (g *Generator) Cols() int { return g.cols }

func (g *Generator) Policy() GridPolicy { return g.policy }

// Generate draws a fresh grid with all winning flags false.
func (g *Generator) Generate(rng RandomSource) Grid {
	if rng == nil {
		rng = DefaultRNG()
	}
	if g.policy == GridIndependent {
		return NewGrid(g.rows, g.cols, func(int, int) SymbolID {
			return g.catalog.PickWeighted(rng)
		})
	}
	columns := make([][]SymbolID, g.cols)
	for c := range columns {
		columns[c] = g.column(g.rows, rng)
	}
	return NewGrid(g.rows, g.cols, func(r, c int) SymbolID { return columns[c][r] })
}

// column fills n cells top-down, stacking 2 cells when a draw lands under the
// symbol's propensity and 3 when a second draw lands under half of it.
func (g *Generator) column(n int, rng RandomSource) []SymbolID {
	out := make([]SymbolID, 0, n)
	for len(out) < n {
		id := g.catalog.PickWeighted(rng)
		room := n - len(out)
		stack := 1
		if room > 1 {
			prop := g.catalog.StackPropensity(id)
			if chance(prop, rng) {
				stack = 2
				if room > 2 && chance(prop*0.5, rng) {
					stack = 3
				}
			}
		}
		for i := 0; i < stack; i++ {
			out = append(out, id)
		}
	}
	return out
}

// Strips returns one scrolling strip per column of exactly length symbols,
// built from whole generated columns. Cosmetic only.
func (g *Generator) Strips(rng RandomSource, length int) ([][]SymbolID, error) {
	if length < 0 {
		return nil, fmt.Errorf("strip length must be >= 0, got %d", length)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	strips := make([][]SymbolID, g.cols)
	for c := range strips {
		strip := make([]SymbolID, 0, length+g.rows)
		for len(strip) < length {
			if g.policy == GridIndependent {
				for r := 0; r < g.rows; r++ {
					strip = append(strip, g.catalog.PickWeighted(rng))
				}
				continue
			}
			strip = append(strip, g.column(g.rows, rng)...)
		}
		strips[c] = strip[:length]
	}
	return strips, nil
}
