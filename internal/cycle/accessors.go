package cycle

import "github.com/xtding233/forgewheel/internal/reel"

// Snapshot returns a deep copy of the current state.
func (m *Machine) Snapshot() ProgressState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() Config { return m.cfg }

// Catalog exposes the validated symbol catalog for presentation.
func (m *Machine) Catalog() *reel.Catalog { return m.eng.catalog }

// Strips draws cosmetic reel strips with the machine's generator.
func (m *Machine) Strips(length int) ([][]reel.SymbolID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eng.resolver.Generator().Strips(m.rng, length)
}

func locked[T any](m *Machine, f func() T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return f()
}

func (m *Machine) Coins() int64 { return locked(m, func() int64 { return m.state.Coins }) }

func (m *Machine) Tickets() int64 { return locked(m, func() int64 { return m.state.Tickets }) }

func (m *Machine) Debt() int64 { return locked(m, func() int64 { return m.state.Debt }) }

func (m *Machine) DebtPaid() int64 { return locked(m, func() int64 { return m.state.DebtPaid }) }

func (m *Machine) DebtRemaining() int64 {
	return locked(m, func() int64 { return m.state.DebtRemaining() })
}

func (m *Machine) Cycle() int { return locked(m, func() int { return m.state.Cycle }) }

func (m *Machine) Round() int { return locked(m, func() int { return m.state.Round }) }

func (m *Machine) SpinsRemaining() int {
	return locked(m, func() int { return m.state.SpinsRemaining })
}

func (m *Machine) Phase() Phase { return locked(m, func() Phase { return m.state.Phase }) }

func (m *Machine) Heat() int { return locked(m, func() int { return m.state.Heat }) }

func (m *Machine) LastPayout() int64 {
	return locked(m, func() int64 { return m.state.LastPayout })
}

func (m *Machine) LastTickets() int {
	return locked(m, func() int { return m.state.LastTickets })
}

// Grid returns a copy of the latest grid.
func (m *Machine) Grid() reel.Grid {
	return locked(m, func() reel.Grid { return m.state.Grid.Clone() })
}

// LastWins returns a copy of the latest win lines.
func (m *Machine) LastWins() []reel.WinLine {
	return locked(m, func() []reel.WinLine { return m.state.clone().LastWins })
}

// BatchCost is the current price of a batch, after trinket discounts.
func (m *Machine) BatchCost() int64 { return locked(m, func() int64 { return m.batchCost() }) }

// BatchSize is the current number of spins per batch.
func (m *Machine) BatchSize() int { return locked(m, func() int { return m.batchSize() }) }

func (m *Machine) CanBuySpins() bool { return locked(m, func() bool { return m.canBuySpins() }) }

func (m *Machine) CanSpin() bool { return locked(m, func() bool { return m.canSpin() }) }

func (m *Machine) CanPayTribute() bool {
	return locked(m, func() bool { return m.canPayTribute() })
}

// MaxTributePayment is the most a tribute payment may move right now.
func (m *Machine) MaxTributePayment() int64 {
	return locked(m, func() int64 { return m.maxTributePayment() })
}

func (m *Machine) IsGameOver() bool {
	return locked(m, func() bool { return m.state.Phase == PhaseLose })
}

// IsStuck reports that neither buying nor a full tribute is possible.
func (m *Machine) IsStuck() bool { return locked(m, func() bool { return m.isStuck() }) }
