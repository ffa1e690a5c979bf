package cycle

import "github.com/xtding233/forgewheel/internal/reel"

// Phase is the machine's current step.
type Phase string

const (
	PhaseBetweenRounds Phase = "between_rounds"
	PhaseBuySpins      Phase = "buy_spins"   // simple progression
	PhasePayTribute    Phase = "pay_tribute" // simple progression
	PhaseIdle          Phase = "idle"
	PhaseSpinning      Phase = "spinning"
	PhaseRevealing     Phase = "revealing"
	PhaseWin           Phase = "win"
	PhaseLose          Phase = "lose"
)

// ProgressState is the full mutable state of one session.
type ProgressState struct {
	Coins          int64
	Tickets        int64
	Debt           int64
	DebtPaid       int64
	Cycle          int
	Round          int
	SpinsRemaining int
	Phase          Phase
	Heat           int

	Grid        reel.Grid
	LastWins    []reel.WinLine
	LastPayout  int64
	LastTickets int

	Trinkets  []string
	Modifiers Modifiers
}

// DebtRemaining is the unpaid part of this cycle's debt.
func (s ProgressState) DebtRemaining() int64 { return max(0, s.Debt-s.DebtPaid) }

func (s ProgressState) clone() ProgressState {
	out := s
	out.Grid = s.Grid.Clone()
	if s.LastWins != nil {
		out.LastWins = make([]reel.WinLine, len(s.LastWins))
		for i, w := range s.LastWins {
			w.Cells = append([]reel.Position(nil), w.Cells...)
			out.LastWins[i] = w
		}
	}
	if s.Trinkets != nil {
		out.Trinkets = append([]string(nil), s.Trinkets...)
	}
	return out
}
