package reel

import "fmt"

// Position addresses one grid cell.
type Position struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

func (p Position) String() string { return fmt.Sprintf("[%d,%d]", p.Row, p.Col) }

// Payline is a fixed left-to-right path through the grid, one cell per column.
type Payline struct {
	ID        int
	Name      string
	Positions []Position
}

// PaylineTable is the validated set of paylines for one grid shape.
type PaylineTable struct {
	rows, cols int
	lines      []Payline
}

// NewPaylineTable checks every line against the grid shape: one position per
// column, in column order, with rows in range.
func NewPaylineTable(rows, cols int, lines ...Payline) (*PaylineTable, error) {
	var errs problems
	if rows <= 0 || cols <= 0 {
		errs.addf("grid must be at least 1x1, got %dx%d", rows, cols)
	}
	if len(lines) == 0 {
		errs.addf("at least one payline is required")
	}
	seen := make(map[int]bool, len(lines))
	t := &PaylineTable{rows: rows, cols: cols}
	for i, l := range lines {
		if seen[l.ID] {
			errs.addf("paylines[%d].id %d is duplicated", i, l.ID)
		}
		seen[l.ID] = true
		if len(l.Positions) != cols {
			errs.addf("paylines[%d] has %d positions, want %d", i, len(l.Positions), cols)
			continue
		}
		for j, p := range l.Positions {
			if p.Col != j {
				errs.addf("paylines[%d].positions[%d] is in column %d, want %d", i, j, p.Col, j)
			}
			if p.Row < 0 || p.Row >= rows {
				errs.addf("paylines[%d].positions[%d] row %d out of range", i, j, p.Row)
			}
		}
		t.lines = append(t.lines, Payline{
			ID:        l.ID,
			Name:      l.Name,
			Positions: append([]Position(nil), l.Positions...),
		})
	}
	if err := errs.err("paylines"); err != nil {
		return nil, err
	}
	return t, nil
}

// RowPaylines builds ID-numbered payline positions from per-column row indexes.
func RowPaylines(names []string, rows [][]int) []Payline {
	out := make([]Payline, len(rows))
	for i, rs := range rows {
		pos := make([]Position, len(rs))
		for c, r := range rs {
			pos[c] = Position{Row: r, Col: c}
		}
		name := ""
		if i < len(names) {
			name = names[i]
		}
		out[i] = Payline{ID: i + 1, Name: name, Positions: pos}
	}
	return out
}

func (t *PaylineTable) Lines() []Payline { return append([]Payline(nil), t.lines...) }

func (t *PaylineTable) Len() int { return len(t.lines) }

func (t *PaylineTable) Rows() int { return t.rows }

func (t *PaylineTable) Cols() int { return t.cols }
