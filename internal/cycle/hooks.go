package cycle

import "github.com/xtding233/forgewheel/internal/reel"

// PhaseChange is emitted on every phase transition.
type PhaseChange struct {
	From, To Phase
}

// SpinEvent is emitted once the winnings of a spin are applied.
type SpinEvent struct {
	Result  reel.SpinResult
	Payout  int64 // after bonuses
	Tickets int
	Cycle   int
	Round   int
}

// TributeEvent is emitted for every accepted payment.
type TributeEvent struct {
	Cycle  int
	Amount int64
	Paid   int64
	Debt   int64
}

// CycleEvent is emitted when a debt is cleared.
type CycleEvent struct {
	From, To int
	NextDebt int64
}

// LoseEvent is emitted when the session enters PhaseLose.
type LoseEvent struct {
	Cycle int
	Coins int64
}

// TrinketEvent is emitted when a trinket is bought.
type TrinketEvent struct {
	ID   string
	Cost int64
}

// Hooks observe a machine. They run inside the session's critical section
// and must not call back into the machine.
type Hooks struct {
	OnPhaseChange  func(PhaseChange)
	OnSpin         func(SpinEvent)
	OnTribute      func(TributeEvent)
	OnCycleAdvance func(CycleEvent)
	OnLose         func(LoseEvent)
	OnTrinket      func(TrinketEvent)
}

type hookSet []Hooks

func (hs hookSet) phase(e PhaseChange) {
	for _, h := range hs {
		if h.OnPhaseChange != nil {
			h.OnPhaseChange(e)
		}
	}
}

func (hs hookSet) spin(e SpinEvent) {
	for _, h := range hs {
		if h.OnSpin != nil {
			h.OnSpin(e)
		}
	}
}

func (hs hookSet) tribute(e TributeEvent) {
	for _, h := range hs {
		if h.OnTribute != nil {
			h.OnTribute(e)
		}
	}
}

func (hs hookSet) cycle(e CycleEvent) {
	for _, h := range hs {
		if h.OnCycleAdvance != nil {
			h.OnCycleAdvance(e)
		}
	}
}

func (hs hookSet) lose(e LoseEvent) {
	for _, h := range hs {
		if h.OnLose != nil {
			h.OnLose(e)
		}
	}
}

func (hs hookSet) trinket(e TrinketEvent) {
	for _, h := range hs {
		if h.OnTrinket != nil {
			h.OnTrinket(e)
		}
	}
}
