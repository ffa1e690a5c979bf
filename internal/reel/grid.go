package reel

import "fmt"

// Cell is one slot of a Grid.
type Cell struct {
	Symbol  SymbolID
	Row     int
	Col     int
	Winning bool
}

// Grid is a rows x cols matrix of cells, indexed [row][col].
type Grid [][]Cell

// NewGrid returns a rows x cols grid filled by fill(row, col).
func NewGrid(rows, cols int, fill func(r, c int) SymbolID) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Cell, cols)
		for c := range g[r] {
			g[r][c] = Cell{Symbol: fill(r, c), Row: r, Col: c}
		}
	}
	return g
}

func (g Grid) Rows() int { return len(g) }

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the cell at p. It panics on out-of-range positions, which
// validated payline tables never produce.
func (g Grid) At(p Position) *Cell { return &g[p.Row][p.Col] }

// Clone deep-copies the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r := range g {
		out[r] = append([]Cell(nil), g[r]...)
	}
	return out
}

// Symbols returns the symbol ids as a plain matrix.
func (g Grid) Symbols() [][]SymbolID {
	out := make([][]SymbolID, len(g))
	for r := range g {
		out[r] = make([]SymbolID, len(g[r]))
		for c := range g[r] {
			out[r][c] = g[r][c].Symbol
		}
	}
	return out
}

// ClearWinning resets every winning flag.
func (g Grid) ClearWinning() {
	for r := range g {
		for c := range g[r] {
			g[r][c].Winning = false
		}
	}
}

// Validate checks shape and that each cell knows its own coordinates.
func (g Grid) Validate(rows, cols int) error {
	if len(g) != rows {
		return fmt.Errorf("grid has %d rows, want %d", len(g), rows)
	}
	for r := range g {
		if len(g[r]) != cols {
			return fmt.Errorf("grid row %d has %d cells, want %d", r, len(g[r]), cols)
		}
		for c, cell := range g[r] {
			if cell.Row != r || cell.Col != c {
				return fmt.Errorf("cell at [%d,%d] reports [%d,%d]", r, c, cell.Row, cell.Col)
			}
		}
	}
	return nil
}
