package cycle_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
)

// Independent draws of 0 and 0.3 alternate slag and coal by column, which
// no payline can match.
func losingRNG() reel.RandomSource { return reel.NewSequenceRNG(0, 0.3, 0, 0.3, 0) }

// Every cell ingot: nine five-of-a-kind lines, no ticket draws.
func ingotRNG() reel.RandomSource { return reel.NewSequenceRNG(0.708) }

// Every cell crown: nine five-of-a-kind lines, two tickets each.
func crownRNG() reel.RandomSource { return reel.NewSequenceRNG(0.9469) }

func testConfig() cycle.Config {
	cfg := cycle.DefaultConfig()
	cfg.GridPolicy = reel.GridIndependent
	return cfg
}

func newMachine(t *testing.T, cfg cycle.Config, opts ...cycle.Option) *cycle.Machine {
	t.Helper()
	m, err := cycle.New(cfg, opts...)
	require.NoError(t, err)
	return m
}

func TestEndToEndFirstCycle(t *testing.T) {
	m := newMachine(t, testConfig(), cycle.WithRandomSource(losingRNG()))

	assert.Equal(t, cycle.PhaseBetweenRounds, m.Phase())
	assert.Equal(t, int64(30), m.Debt())

	require.True(t, m.BuySpins())
	assert.Equal(t, int64(80), m.Coins())
	assert.Equal(t, 7, m.SpinsRemaining())
	assert.Equal(t, cycle.PhaseIdle, m.Phase())
	assert.Equal(t, 1, m.Round())

	for i := 0; i < 7; i++ {
		require.True(t, m.Spin(), "spin %d", i)
		assert.Zero(t, m.LastPayout())
		assert.Empty(t, m.LastWins())
	}
	assert.False(t, m.Spin())
	assert.Equal(t, int64(80), m.Coins())
	assert.Equal(t, cycle.PhaseBetweenRounds, m.Phase())
	assert.False(t, m.IsStuck())
	assert.Equal(t, int64(30), m.MaxTributePayment())

	require.True(t, m.PayTribute())
	assert.Equal(t, 2, m.Cycle())
	assert.Equal(t, int64(39), m.Debt())
	assert.Equal(t, int64(50), m.Coins())
	assert.Zero(t, m.DebtPaid())
	assert.Equal(t, cycle.HeatSafe, m.Heat())
	assert.Equal(t, cycle.PhaseBetweenRounds, m.Phase())
	assert.Zero(t, m.Round())
}

func TestBuySpinsGuard(t *testing.T) {
	cfg := testConfig()
	cfg.StartingCoins = 19
	m := newMachine(t, cfg)
	before := m.Snapshot()

	assert.False(t, m.CanBuySpins())
	assert.False(t, m.BuySpins())
	assert.Equal(t, before, m.Snapshot())

	m = newMachine(t, testConfig(), cycle.WithRandomSource(losingRNG()))
	require.True(t, m.BuySpins())
	assert.False(t, m.BuySpins(), "cannot buy while a batch is live")
	assert.Equal(t, int64(80), m.Coins())
}

func TestPartialTribute(t *testing.T) {
	cfg := testConfig()
	cfg.StartingCoins = 35
	m := newMachine(t, cfg)

	assert.Equal(t, int64(15), m.MaxTributePayment(), "keeps one batch in reserve")
	require.True(t, m.PayTributeAmount(10))
	assert.Equal(t, int64(25), m.Coins())
	assert.Equal(t, int64(10), m.DebtPaid())
	assert.Equal(t, int64(20), m.DebtRemaining())
	assert.Equal(t, 1, m.Cycle())

	require.True(t, m.PayTributeAmount(1000), "clamped to the cap")
	assert.Equal(t, int64(20), m.Coins())
	assert.Equal(t, int64(15), m.DebtPaid())

	assert.False(t, m.CanPayTribute())
	assert.False(t, m.PayTribute())
	assert.False(t, m.PayTributeAmount(0))
	assert.Equal(t, int64(20), m.Coins())
}

func TestTributeNeverOverdraws(t *testing.T) {
	for _, coins := range []int64{0, 5, 20, 21, 49, 50, 51, 200} {
		cfg := testConfig()
		cfg.StartingCoins = coins
		m := newMachine(t, cfg)
		limit := min(m.DebtRemaining(), max(0, coins-cfg.BatchCost))
		assert.Equal(t, limit, m.MaxTributePayment())
		m.PayTribute()
		assert.GreaterOrEqual(t, m.Coins(), int64(0))
		assert.Equal(t, coins-limit, m.Coins())
	}
}

func TestTributeBonusAppliesToPayout(t *testing.T) {
	m := newMachine(t, testConfig(), cycle.WithRandomSource(ingotRNG()))

	require.True(t, m.PayTributeAmount(15))
	require.True(t, m.BuySpins())
	require.True(t, m.Spin())

	// nine lines x 15 x 10 = 1350, scaled by 1 + 15/30
	assert.Equal(t, int64(2025), m.LastPayout())
	assert.Equal(t, int64(100-15-20+2025), m.Coins())
	assert.Len(t, m.LastWins(), 9)
	assert.Equal(t, cycle.PhaseIdle, m.Phase())
}

func TestSpinPhaseOrder(t *testing.T) {
	var phases []cycle.Phase
	var paced []time.Duration
	var spins []cycle.SpinEvent
	m := newMachine(t, testConfig(),
		cycle.WithRandomSource(ingotRNG()),
		cycle.WithHooks(cycle.Hooks{
			OnPhaseChange: func(e cycle.PhaseChange) { phases = append(phases, e.To) },
			OnSpin:        func(e cycle.SpinEvent) { spins = append(spins, e) },
		}),
		cycle.WithPacer(cycle.PacerFunc(func(_ cycle.Phase, d time.Duration) { paced = append(paced, d) })),
	)

	require.True(t, m.BuySpins())
	require.True(t, m.Spin())

	assert.Equal(t, []cycle.Phase{
		cycle.PhaseIdle,
		cycle.PhaseSpinning,
		cycle.PhaseRevealing,
		cycle.PhaseWin,
		cycle.PhaseIdle,
	}, phases)
	assert.Equal(t, []time.Duration{750 * time.Millisecond, 500 * time.Millisecond, 1500 * time.Millisecond}, paced)
	require.Len(t, spins, 1)
	assert.Equal(t, int64(1350), spins[0].Result.Payout)
	assert.Equal(t, 6, m.SpinsRemaining())
}

func TestLosingSpinSkipsWinPhase(t *testing.T) {
	var phases []cycle.Phase
	m := newMachine(t, testConfig(),
		cycle.WithRandomSource(losingRNG()),
		cycle.WithHooks(cycle.Hooks{OnPhaseChange: func(e cycle.PhaseChange) { phases = append(phases, e.To) }}),
	)
	require.True(t, m.BuySpins())
	require.True(t, m.Spin())
	assert.NotContains(t, phases, cycle.PhaseWin)
	assert.Equal(t, cycle.PhaseIdle, m.Phase())
}

func TestStuckAndAcceptFate(t *testing.T) {
	cfg := testConfig()
	cfg.StartingCoins = 20
	var lost []cycle.LoseEvent
	m := newMachine(t, cfg,
		cycle.WithRandomSource(losingRNG()),
		cycle.WithHooks(cycle.Hooks{OnLose: func(e cycle.LoseEvent) { lost = append(lost, e) }}),
	)

	assert.False(t, m.IsStuck())
	assert.False(t, m.AcceptFate())

	require.True(t, m.BuySpins())
	for m.CanSpin() {
		m.Spin()
	}
	assert.True(t, m.IsStuck())
	assert.False(t, m.IsGameOver())

	require.True(t, m.AcceptFate())
	assert.True(t, m.IsGameOver())
	assert.Equal(t, cycle.PhaseLose, m.Phase())
	assert.Equal(t, cycle.HeatMax, m.Heat())
	assert.Len(t, lost, 1)

	assert.False(t, m.BuySpins())
	assert.False(t, m.PayTribute())
	assert.False(t, m.AcceptFate())
}

func TestResetRestoresInitialState(t *testing.T) {
	m := newMachine(t, testConfig(), cycle.WithRandomSource(ingotRNG()))
	initial := m.Snapshot()

	require.True(t, m.PayTributeAmount(5))
	require.True(t, m.BuySpins())
	require.True(t, m.Spin())
	require.NotEqual(t, initial, m.Snapshot())

	m.Reset()
	assert.Equal(t, initial, m.Snapshot())
	assert.Equal(t, cycle.HeatSafe, initial.Heat)
	assert.Equal(t, cycle.HeatSafe, m.Heat())
	assert.Equal(t, reel.Crown, initial.Grid[1][2].Symbol)
}

func TestSimpleProgression(t *testing.T) {
	cfg := testConfig()
	cfg.Progression = cycle.ProgressionSimple
	m := newMachine(t, cfg, cycle.WithRandomSource(losingRNG()))

	assert.Equal(t, cycle.PhaseBuySpins, m.Phase())
	assert.False(t, m.CanPayTribute())
	require.True(t, m.BuySpins())
	for m.CanSpin() {
		m.Spin()
	}
	assert.Equal(t, cycle.PhasePayTribute, m.Phase())
	assert.False(t, m.BuySpins())
	assert.Equal(t, int64(30), m.MaxTributePayment())

	require.True(t, m.PayTributeAmount(1), "simple progression always settles the whole debt")
	assert.Equal(t, int64(50), m.Coins())
	assert.Equal(t, 2, m.Cycle())
	assert.Equal(t, cycle.PhaseBuySpins, m.Phase())
}

func TestSimpleProgressionStuck(t *testing.T) {
	cfg := testConfig()
	cfg.Progression = cycle.ProgressionSimple
	cfg.StartingCoins = 20
	m := newMachine(t, cfg, cycle.WithRandomSource(losingRNG()))

	require.True(t, m.BuySpins())
	for m.CanSpin() {
		m.Spin()
	}
	assert.True(t, m.IsStuck())
	assert.False(t, m.PayTribute(), "cannot cover the debt")
	assert.Equal(t, cycle.PhasePayTribute, m.Phase())
	require.True(t, m.AcceptFate())
	assert.True(t, m.IsGameOver())
}

func TestTrinkets(t *testing.T) {
	m := newMachine(t, testConfig(), cycle.WithRandomSource(crownRNG()))
	bellows := cycle.Modifiers{ExtraSpins: 1, BatchDiscount: 5}

	require.True(t, m.BuySpins())
	require.True(t, m.Spin())
	assert.Equal(t, int64(18), m.Tickets())
	assert.False(t, m.ApplyTrinket("bellows", 3, bellows), "not between rounds")

	for m.CanSpin() {
		m.Spin()
	}
	require.True(t, m.ApplyTrinket("bellows", 3, bellows))
	assert.False(t, m.ApplyTrinket("bellows", 3, bellows), "owned")
	assert.False(t, m.ApplyTrinket("crucible", 1000, cycle.Modifiers{ExtraSpins: 2}), "too expensive")

	assert.Equal(t, int64(15), m.BatchCost())
	assert.Equal(t, 8, m.BatchSize())
	assert.True(t, m.Owns("bellows"))

	coins := m.Coins()
	require.True(t, m.BuySpins())
	assert.Equal(t, coins-15, m.Coins())
	assert.Equal(t, 8, m.SpinsRemaining())

	m.Reset()
	assert.Empty(t, m.Trinkets())
	assert.Equal(t, cycle.Modifiers{}, m.Modifiers())
}

func TestTrinketRejectsNegativeEffects(t *testing.T) {
	m := newMachine(t, testConfig(), cycle.WithRandomSource(crownRNG()))
	require.True(t, m.BuySpins())
	for m.CanSpin() {
		m.Spin()
	}
	tickets := m.Tickets()
	require.Positive(t, tickets)

	assert.False(t, m.ApplyTrinket("cursed", 1, cycle.Modifiers{ExtraSpins: -10, BatchDiscount: -1000}))
	assert.False(t, m.ApplyTrinket("leaky", 1, cycle.Modifiers{PayoutBonusPct: -50}))
	assert.Equal(t, tickets, m.Tickets())
	assert.Empty(t, m.Trinkets())
	assert.Equal(t, 7, m.BatchSize())
	assert.Equal(t, int64(20), m.BatchCost())

	require.True(t, m.BuySpins())
	assert.Equal(t, 7, m.SpinsRemaining())
	assert.Equal(t, cycle.PhaseIdle, m.Phase())
	assert.True(t, m.CanSpin())
}

func TestTicketsNeedAPayout(t *testing.T) {
	cfg := testConfig()
	for i := range cfg.Symbols {
		cfg.Symbols[i].BaseValue = 0
	}
	var events []cycle.SpinEvent
	hooks := cycle.Hooks{OnSpin: func(e cycle.SpinEvent) { events = append(events, e) }}
	m := newMachine(t, cfg, cycle.WithRandomSource(crownRNG()), cycle.WithHooks(hooks))

	require.True(t, m.BuySpins())
	require.True(t, m.Spin())
	assert.NotEmpty(t, m.LastWins())
	assert.Zero(t, m.LastPayout())
	assert.Zero(t, m.LastTickets())
	assert.Zero(t, m.Tickets())
	require.Len(t, events, 1)
	assert.Zero(t, events[0].Tickets)
}

func TestPayoutBonusModifier(t *testing.T) {
	m := newMachine(t, testConfig(), cycle.WithRandomSource(crownRNG()))
	require.True(t, m.BuySpins())
	for m.CanSpin() {
		m.Spin()
	}
	require.True(t, m.ApplyTrinket("anvil", 5, cycle.Modifiers{PayoutBonusPct: 10}))
	require.True(t, m.BuySpins())
	require.True(t, m.Spin())
	// 9 x 75 x 10 = 6750, +10%
	assert.Equal(t, int64(7425), m.LastPayout())
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*cycle.Config)
	}{
		{"batch cost", func(c *cycle.Config) { c.BatchCost = 0 }},
		{"spins per batch", func(c *cycle.Config) { c.SpinsPerBatch = 0 }},
		{"debt base", func(c *cycle.Config) { c.DebtBase = 0 }},
		{"shrinking debt", func(c *cycle.Config) { c.DebtMultiplier = 0.9 }},
		{"progression", func(c *cycle.Config) { c.Progression = "endless" }},
		{"no symbols", func(c *cycle.Config) { c.Symbols = nil }},
		{"payline width", func(c *cycle.Config) { c.Cols = 4 }},
		{"unknown initial symbol", func(c *cycle.Config) { c.InitialPattern = [][]reel.SymbolID{{"gold"}} }},
		{"grid policy", func(c *cycle.Config) { c.GridPolicy = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cycle.DefaultConfig()
			tt.mutate(&cfg)
			_, err := cycle.New(cfg)
			assert.ErrorIs(t, err, cycle.ErrInvalidConfig)
		})
	}

	cfg := cycle.DefaultConfig()
	cfg.EvalPolicy = reel.EvalRows
	cfg.Cols = 4
	_, err := cycle.New(cfg)
	assert.NoError(t, err, "row scan needs no paylines")
}

func TestConcurrentCallsKeepInvariants(t *testing.T) {
	cfg := cycle.DefaultConfig()
	cfg.StartingCoins = 500
	m := newMachine(t, cfg, cycle.WithRandomSource(reel.NewSeededRNG(3)))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch i % 4 {
				case 0:
					m.BuySpins()
				case 1, 2:
					m.Spin()
				default:
					m.PayTributeAmount(7)
				}
				s := m.Snapshot()
				assert.GreaterOrEqual(t, s.Coins, int64(0))
				assert.GreaterOrEqual(t, s.SpinsRemaining, 0)
				assert.LessOrEqual(t, s.DebtPaid, s.Debt)
			}
		}()
	}
	wg.Wait()
}
