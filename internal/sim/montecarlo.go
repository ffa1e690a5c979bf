package sim

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
	"github.com/xtding233/forgewheel/internal/shop"
)

// Params describes one simulation run.
type Params struct {
	Trials      int
	Seed        uint64 // trial i uses Seed+i
	Workers     int    // <= 0 means GOMAXPROCS
	MaxCycles   int    // stop a trial once this many debts are cleared; <= 0 means 50
	MaxSpins    int    // hard stop per trial; <= 0 means 10000
	BuyTrinkets bool
}

// Trial is the outcome of one simulated session.
type Trial struct {
	Cycle   int // cycle reached
	Spins   int
	Tickets int
	Payout  int64
	Spent   int64 // coins spent on batches
	Lost    bool
}

// Report summarizes all trials.
type Report struct {
	Trials   int
	Cycles   Stats
	Spins    Stats
	Tickets  Stats
	Payout   Stats
	RTP      decimal.Decimal // total payout / total batch spend
	Survival float64         // share of trials that hit a limit without losing
}

// Option configures Run.
type Option func(*runner)

type runner struct {
	logger *zap.Logger
	hooks  []cycle.Hooks
}

func WithLogger(l *zap.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHooks attaches hooks to every simulated machine. They are called
// from several goroutines at once.
func WithHooks(h cycle.Hooks) Option {
	return func(r *runner) { r.hooks = append(r.hooks, h) }
}

// Run plays p.Trials independent sessions on a bounded worker pool.
func Run(ctx context.Context, cfg cycle.Config, trinkets []shop.Trinket, p Params, opts ...Option) (Report, error) {
	if p.Trials <= 0 {
		return Report{}, nil
	}
	r := &runner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := cycle.New(cfg); err != nil {
		return Report{}, err
	}
	cat, err := shop.NewCatalog(trinkets...)
	if err != nil {
		return Report{}, err
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	if p.MaxCycles <= 0 {
		p.MaxCycles = 50
	}
	if p.MaxSpins <= 0 {
		p.MaxSpins = 10000
	}

	results := make([]Trial, p.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for i := 0; i < p.Trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := r.playOne(cfg, cat, p, p.Seed+uint64(i))
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := summarize(results)
	r.logger.Info("simulation finished",
		zap.Int("trials", rep.Trials),
		zap.Float64("mean_cycle", rep.Cycles.Mean),
		zap.String("rtp", rep.RTP.StringFixed(4)),
	)
	return rep, nil
}

func (r *runner) playOne(cfg cycle.Config, cat *shop.Catalog, p Params, seed uint64) (Trial, error) {
	opts := []cycle.Option{cycle.WithRandomSource(reel.NewSeededRNG(seed))}
	for _, h := range r.hooks {
		opts = append(opts, cycle.WithHooks(h))
	}
	m, err := cycle.New(cfg, opts...)
	if err != nil {
		return Trial{}, err
	}
	return Autoplay(m, cat, p), nil
}

// Autoplay drives m until it is lost or a limit is reached: spin out each
// batch, pay the largest tribute allowed, buy the best trinket loadout and
// the next batch, and accept fate when stuck.
func Autoplay(m *cycle.Machine, cat *shop.Catalog, p Params) Trial {
	var t Trial
	for t.Spins < p.MaxSpins && m.Cycle() <= p.MaxCycles {
		if m.IsGameOver() {
			break
		}
		if m.CanSpin() {
			m.Spin()
			t.Spins++
			t.Payout += m.LastPayout()
			t.Tickets += m.LastTickets()
			continue
		}
		if m.CanPayTribute() && m.PayTribute() {
			continue
		}
		if m.CanBuySpins() {
			if p.BuyTrinkets && cat != nil {
				buyLoadout(m, cat)
			}
			t.Spent += m.BatchCost()
			m.BuySpins()
			continue
		}
		if m.IsStuck() && m.AcceptFate() {
			continue
		}
		break
	}
	t.Cycle = m.Cycle()
	t.Lost = m.IsGameOver()
	return t
}

func buyLoadout(m *cycle.Machine, cat *shop.Catalog) {
	owned := make(map[string]bool)
	for _, id := range m.Trinkets() {
		owned[id] = true
	}
	for _, tr := range shop.BestLoadout(cat, m.Tickets(), owned).Trinkets {
		cat.Buy(m, tr.ID)
	}
}

func summarize(results []Trial) Report {
	n := len(results)
	cycles := make([]int, n)
	spins := make([]int, n)
	tickets := make([]int, n)
	payouts := make([]int64, n)
	var paid, spent int64
	survived := 0
	for i, t := range results {
		cycles[i] = t.Cycle
		spins[i] = t.Spins
		tickets[i] = t.Tickets
		payouts[i] = t.Payout
		paid += t.Payout
		spent += t.Spent
		if !t.Lost {
			survived++
		}
	}
	rtp := decimal.Zero
	if spent > 0 {
		rtp = decimal.NewFromInt(paid).DivRound(decimal.NewFromInt(spent), 6)
	}
	return Report{
		Trials:   n,
		Cycles:   calcStats(cycles),
		Spins:    calcStats(spins),
		Tickets:  calcStats(tickets),
		Payout:   calcStats(payouts),
		RTP:      rtp,
		Survival: float64(survived) / float64(n),
	}
}
