package cycle

import (
	"sync"

	"go.uber.org/zap"

	"github.com/xtding233/forgewheel/internal/reel"
)

// Machine drives one play session. Every operation runs under the
// session lock, so a spin's phase sequence never interleaves with another
// call. Guard failures are silent no-ops reported by a false return.
type Machine struct {
	mu sync.Mutex

	cfg    Config
	eng    *engine
	rng    reel.RandomSource
	pacer  Pacer
	hooks  hookSet
	logger *zap.Logger

	state ProgressState
}

// Option configures a Machine.
type Option func(*Machine)

// WithRandomSource injects the source used for every spin.
func WithRandomSource(rng reel.RandomSource) Option {
	return func(m *Machine) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithPacer(p Pacer) Option {
	return func(m *Machine) {
		if p != nil {
			m.pacer = p
		}
	}
}

// WithHooks adds an observer. May be given more than once.
func WithHooks(h Hooks) Option {
	return func(m *Machine) { m.hooks = append(m.hooks, h) }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// New validates cfg once and returns a machine in its initial state.
func New(cfg Config, opts ...Option) (*Machine, error) {
	eng, err := build(cfg)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		cfg:    cfg,
		eng:    eng,
		rng:    reel.DefaultRNG(),
		pacer:  NoPacing{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = m.initialState()
	return m, nil
}

func (m *Machine) initialState() ProgressState {
	return ProgressState{
		Coins: m.cfg.StartingCoins,
		Debt:  DebtFor(m.cfg.DebtBase, m.cfg.DebtMultiplier, 1),
		Cycle: 1,
		Phase: m.restPhase(),
		Heat:  HeatSafe,
		Grid:  m.eng.initial.Clone(),
	}
}

// restPhase is where buying happens.
func (m *Machine) restPhase() Phase {
	if m.cfg.Progression == ProgressionSimple {
		return PhaseBuySpins
	}
	return PhaseBetweenRounds
}

func (m *Machine) simple() bool { return m.cfg.Progression == ProgressionSimple }

func (m *Machine) setPhase(p Phase) {
	from := m.state.Phase
	if from == p {
		return
	}
	m.state.Phase = p
	m.logger.Debug("phase change", zap.String("from", string(from)), zap.String("to", string(p)))
	m.hooks.phase(PhaseChange{From: from, To: p})
}

func (m *Machine) rejected(op string) bool {
	m.logger.Debug("operation ignored",
		zap.String("op", op),
		zap.String("phase", string(m.state.Phase)),
		zap.Int64("coins", m.state.Coins),
		zap.Int("spins_remaining", m.state.SpinsRemaining),
	)
	return false
}

func (m *Machine) batchCost() int64 {
	return max(1, m.cfg.BatchCost-m.state.Modifiers.BatchDiscount)
}

func (m *Machine) batchSize() int {
	return max(1, m.cfg.SpinsPerBatch+m.state.Modifiers.ExtraSpins)
}

func (m *Machine) refreshHeat() {
	m.state.Heat = HeatFor(m.state.Coins, m.state.DebtRemaining(), m.state.SpinsRemaining, m.batchSize())
}

// BuySpins spends one batch cost for a fresh batch of spins.
func (m *Machine) BuySpins() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.canBuySpins() {
		return m.rejected("buy_spins")
	}
	m.state.Coins -= m.batchCost()
	m.state.SpinsRemaining = m.batchSize()
	m.state.Round++
	m.setPhase(PhaseIdle)
	m.refreshHeat()
	return true
}

// Spin resolves one spin and walks Spinning, Revealing and, on a payout,
// Win before settling. The outcome is fixed before any pacing delay.
func (m *Machine) Spin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.canSpin() {
		return m.rejected("spin")
	}
	cols := m.cfg.Cols
	timing := m.cfg.Timing

	m.state.SpinsRemaining--
	m.setPhase(PhaseSpinning)
	res := m.eng.resolver.Resolve(m.rng)
	m.state.Grid = res.Grid
	m.state.LastWins = res.Wins
	m.pacer.Pace(PhaseSpinning, timing.SpinDuration*timeScale(cols))

	m.setPhase(PhaseRevealing)
	m.pacer.Pace(PhaseRevealing, timing.RevealDelay*timeScale(cols))

	payout := percentBonus(res.Payout, m.state.Modifiers.PayoutBonusPct)
	if !m.simple() {
		payout = TributeBonus(payout, m.state.DebtPaid, m.state.Debt)
	}
	// tickets only come with a paying spin
	tickets := 0
	if payout > 0 {
		tickets = res.Tickets
	}
	m.state.Coins += payout
	m.state.Tickets += int64(tickets)
	m.state.LastPayout = payout
	m.state.LastTickets = tickets
	m.hooks.spin(SpinEvent{
		Result:  res,
		Payout:  payout,
		Tickets: tickets,
		Cycle:   m.state.Cycle,
		Round:   m.state.Round,
	})

	if payout > 0 {
		m.setPhase(PhaseWin)
		m.pacer.Pace(PhaseWin, timing.WinHighlight)
	}
	m.refreshHeat()

	switch {
	case m.state.SpinsRemaining > 0:
		m.setPhase(PhaseIdle)
	case m.simple():
		m.setPhase(PhasePayTribute)
	default:
		m.setPhase(PhaseBetweenRounds)
	}
	return true
}

// PayTribute pays the largest payment currently allowed.
func (m *Machine) PayTribute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payTribute(-1)
}

// PayTributeAmount pays amount, clamped to MaxTributePayment. Amounts <= 0
// are ignored. In simple progression the full debt is always paid.
func (m *Machine) PayTributeAmount(amount int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if amount <= 0 {
		return m.rejected("pay_tribute")
	}
	return m.payTribute(amount)
}

func (m *Machine) payTribute(amount int64) bool {
	limit := m.maxTributePayment()
	if !m.canPayTribute() || limit <= 0 {
		return m.rejected("pay_tribute")
	}
	if amount < 0 || amount > limit || m.simple() {
		amount = limit
	}
	m.state.Coins -= amount
	m.state.DebtPaid += amount
	m.hooks.tribute(TributeEvent{
		Cycle:  m.state.Cycle,
		Amount: amount,
		Paid:   m.state.DebtPaid,
		Debt:   m.state.Debt,
	})
	if m.state.DebtPaid >= m.state.Debt {
		m.advanceCycle()
	} else {
		m.refreshHeat()
	}
	if m.simple() {
		m.setPhase(PhaseBuySpins)
	}
	return true
}

func (m *Machine) advanceCycle() {
	from := m.state.Cycle
	m.state.Cycle++
	m.state.DebtPaid = 0
	m.state.Round = 0
	m.state.Debt = DebtFor(m.cfg.DebtBase, m.cfg.DebtMultiplier, m.state.Cycle)
	m.state.Heat = HeatSafe
	m.logger.Info("cycle cleared",
		zap.Int("cycle", m.state.Cycle),
		zap.Int64("next_debt", m.state.Debt),
		zap.Int64("coins", m.state.Coins),
	)
	m.hooks.cycle(CycleEvent{From: from, To: m.state.Cycle, NextDebt: m.state.Debt})
}

// AcceptFate ends a stuck session.
func (m *Machine) AcceptFate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isStuck() {
		return m.rejected("accept_fate")
	}
	m.setPhase(PhaseLose)
	m.state.Heat = HeatMax
	m.logger.Info("session lost", zap.Int("cycle", m.state.Cycle), zap.Int64("coins", m.state.Coins))
	m.hooks.lose(LoseEvent{Cycle: m.state.Cycle, Coins: m.state.Coins})
	return true
}

// Reset restores the initial state unconditionally.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.state.Phase
	m.state = m.initialState()
	if from != m.state.Phase {
		m.hooks.phase(PhaseChange{From: from, To: m.state.Phase})
	}
	m.logger.Debug("session reset")
}

func (m *Machine) canBuySpins() bool {
	return m.state.Phase == m.restPhase() && m.state.Coins >= m.batchCost()
}

func (m *Machine) canSpin() bool {
	return m.state.Phase == PhaseIdle && m.state.SpinsRemaining > 0
}

func (m *Machine) canPayTribute() bool {
	if m.simple() {
		return m.state.Phase == PhasePayTribute && m.state.Coins >= m.state.DebtRemaining()
	}
	return m.state.Phase == PhaseBetweenRounds && m.state.DebtRemaining() > 0 && m.maxTributePayment() > 0
}

func (m *Machine) maxTributePayment() int64 {
	remaining := m.state.DebtRemaining()
	if m.simple() {
		if m.state.Phase == PhasePayTribute && m.state.Coins >= remaining {
			return remaining
		}
		return 0
	}
	if m.state.Phase != PhaseBetweenRounds {
		return 0
	}
	return min(remaining, max(0, m.state.Coins-m.batchCost()))
}

func (m *Machine) isStuck() bool {
	if m.simple() {
		switch m.state.Phase {
		case PhaseBuySpins:
			return m.state.Coins < m.batchCost()
		case PhasePayTribute:
			return m.state.Coins < m.state.DebtRemaining()
		}
		return false
	}
	return m.state.Phase == PhaseBetweenRounds &&
		!m.canBuySpins() &&
		m.maxTributePayment() < m.state.DebtRemaining()
}
