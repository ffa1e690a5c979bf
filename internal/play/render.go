package play

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
	"github.com/xtding233/forgewheel/internal/shop"
)

const (
	colorWin  = "#f59e0b"
	colorCool = "#22c55e"
	colorWarm = "#f97316"
	colorHot  = "#ef4444"
	colorDim  = "#6b7280"

	heatBarWidth = 20
)

// renderer draws machine state as text. Colour and weight depend on the
// output's profile; termenv.Ascii yields plain text.
type renderer struct {
	out *termenv.Output
}

func (r renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// cellLabel prefers the symbol's asset and falls back to its id.
func cellLabel(cat *reel.Catalog, id reel.SymbolID) string {
	if k, ok := cat.Lookup(id); ok && k.Asset != "" {
		return k.Asset
	}
	return string(id)
}

func (r renderer) grid(cat *reel.Catalog, g reel.Grid) {
	for _, row := range g {
		cells := make([]string, len(row))
		for i, c := range row {
			label := fmt.Sprintf("%-6s", cellLabel(cat, c.Symbol))
			s := r.out.String(label)
			if c.Winning {
				s = s.Bold().Foreground(r.out.Color(colorWin))
			}
			cells[i] = s.String()
		}
		r.printf("| %s|\n", strings.Join(cells, " "))
	}
}

func (r renderer) wins(cat *reel.Catalog, wins []reel.WinLine) {
	if len(wins) == 0 {
		r.printf("%s\n", r.out.String("no win").Foreground(r.out.Color(colorDim)))
		return
	}
	for _, w := range wins {
		where := fmt.Sprintf("row %d", w.Row+1)
		if w.Row < 0 {
			where = fmt.Sprintf("payline %d", w.Payline)
		}
		name := string(w.Symbol)
		if k, ok := cat.Lookup(w.Symbol); ok {
			name = k.Name
		}
		line := fmt.Sprintf("%dx %s on %s: +%d coins", w.Count, name, where, w.Payout)
		if w.Tickets > 0 {
			line += fmt.Sprintf(", +%d tickets", w.Tickets)
		}
		r.printf("%s\n", r.out.String(line).Bold().Foreground(r.out.Color(colorWin)))
	}
}

func (r renderer) heat(h int) string {
	filled := h * heatBarWidth / cycle.HeatMax
	bar := strings.Repeat("#", filled) + strings.Repeat(".", heatBarWidth-filled)
	color := colorCool
	switch {
	case h >= 70:
		color = colorHot
	case h > cycle.HeatSafe:
		color = colorWarm
	}
	return r.out.String(fmt.Sprintf("[%s] %d", bar, h)).Foreground(r.out.Color(color)).String()
}

func (r renderer) status(s cycle.ProgressState, batchCost int64, batchSize int) {
	r.printf("phase %s  cycle %d  round %d\n", s.Phase, s.Cycle, s.Round)
	r.printf("coins %d  tickets %d  spins left %d\n", s.Coins, s.Tickets, s.SpinsRemaining)
	r.printf("debt %d/%d paid  batch %d spins for %d coins\n", s.DebtPaid, s.Debt, batchSize, batchCost)
	r.printf("heat %s\n", r.heat(s.Heat))
	if len(s.Trinkets) > 0 {
		r.printf("trinkets %s\n", strings.Join(s.Trinkets, ", "))
	}
}

func (r renderer) shop(cat *shop.Catalog, m *cycle.Machine) {
	if cat == nil || cat.Len() == 0 {
		r.printf("the shop is empty\n")
		return
	}
	r.printf("tickets: %d\n", m.Tickets())
	for _, t := range cat.List() {
		mark := " "
		if m.Owns(t.ID) {
			mark = "*"
		}
		r.printf("%s %-10s %-9s %3d tickets  %s\n", mark, t.ID, t.Rarity, t.Cost, t.Description)
	}
}
