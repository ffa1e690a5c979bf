package reel

// EvalPolicy selects how a grid is scanned for wins.
type EvalPolicy string

const (
	// Maximal same-symbol runs in each row, no wilds.
	EvalRows EvalPolicy = "rows"
	// Configured paylines with wild substitution.
	EvalPaylines EvalPolicy = "paylines"
)

func (p EvalPolicy) valid() bool { return p == EvalRows || p == EvalPaylines }

// WinLine is one qualifying run.
type WinLine struct {
	Symbol  SymbolID
	Cells   []Position // in scan order, starting at the row or payline start
	Count   int
	Payout  int64
	Tickets int
	Payline int // payline id, 0 for row wins
	Row     int // row index for row wins, -1 for payline wins
}

// Evaluator finds wins on a grid.
type Evaluator struct {
	catalog *Catalog
	policy  EvalPolicy
	lines   *PaylineTable
	mult    MultiplierTable
}

// NewEvaluator requires a payline table for EvalPaylines. It is ignored for
// EvalRows.
func NewEvaluator(cat *Catalog, policy EvalPolicy, lines *PaylineTable, mult MultiplierTable) (*Evaluator, error) {
	var errs problems
	if cat == nil {
		errs.addf("catalog is required")
	}
	if !policy.valid() {
		errs.addf("unknown evaluation policy %q", policy)
	}
	if policy == EvalPaylines && lines == nil {
		errs.addf("payline policy needs a payline table")
	}
	if len(mult.keys) == 0 {
		errs.addf("multiplier table is required")
	}
	if err := errs.err("evaluator"); err != nil {
		return nil, err
	}
	return &Evaluator{catalog: cat, policy: policy, lines: lines, mult: mult}, nil
}

func (e *Evaluator) Policy() EvalPolicy { return e.policy }

// Evaluate scans g, sets winning flags on matched cells and returns the wins.
// rng is consumed only for ticket awards.
func (e *Evaluator) Evaluate(g Grid, rng RandomSource) []WinLine {
	if rng == nil {
		rng = DefaultRNG()
	}
	var wins []WinLine
	if e.policy == EvalRows {
		wins = e.scanRows(g)
	} else {
		wins = e.scanPaylines(g)
	}
	for i := range wins {
		w := &wins[i]
		w.Payout = e.catalog.BaseValue(w.Symbol) * e.mult.For(w.Count)
		w.Tickets = e.tickets(w.Symbol, w.Count, rng)
		for _, p := range w.Cells {
			g.At(p).Winning = true
		}
	}
	return wins
}

func (e *Evaluator) scanRows(g Grid) []WinLine {
	var wins []WinLine
	for r, row := range g {
		start := 0
		for start < len(row) {
			end := start + 1
			for end < len(row) && row[end].Symbol == row[start].Symbol {
				end++
			}
			if n := end - start; n >= 3 {
				cells := make([]Position, n)
				for i := range cells {
					cells[i] = Position{Row: r, Col: start + i}
				}
				wins = append(wins, WinLine{Symbol: row[start].Symbol, Cells: cells, Count: n, Row: r})
			}
			start = end
		}
	}
	return wins
}

func (e *Evaluator) scanPaylines(g Grid) []WinLine {
	var wins []WinLine
	for _, line := range e.lines.lines {
		syms := make([]SymbolID, len(line.Positions))
		for i, p := range line.Positions {
			syms[i] = g.At(p).Symbol
		}
		count := 1
		for i := 1; i < len(syms); i++ {
			if !e.catalog.matches(syms[0], syms[i]) && !e.catalog.matches(syms[i-1], syms[i]) {
				break
			}
			count++
		}
		if count < 3 {
			continue
		}
		credited := syms[0]
		for _, s := range syms[:count] {
			if !e.catalog.IsWild(s) {
				credited = s
				break
			}
		}
		wins = append(wins, WinLine{
			Symbol:  credited,
			Cells:   append([]Position(nil), line.Positions[:count]...),
			Count:   count,
			Payline: line.ID,
			Row:     -1,
		})
	}
	return wins
}

// tickets rolls ticketChance x (count-2); a hit pays 2 tickets from five
// matches up, otherwise 1.
func (e *Evaluator) tickets(id SymbolID, count int, rng RandomSource) int {
	base := e.catalog.TicketChance(id)
	if base <= 0 {
		return 0
	}
	if !chance(base*float64(count-2), rng) {
		return 0
	}
	if count >= 5 {
		return 2
	}
	return 1
}
