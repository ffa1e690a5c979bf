package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xtding233/forgewheel/internal/cycle"
)

// Collector aggregates machine activity into Prometheus metrics.
type Collector struct {
	Spins         *prometheus.CounterVec
	Payout        prometheus.Counter
	Tickets       prometheus.Counter
	TributePaid   prometheus.Counter
	CyclesCleared prometheus.Counter
	Losses        prometheus.Counter
	Trinkets      *prometheus.CounterVec
	SpinPayout    prometheus.Histogram
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Spins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forge_spins_total",
			Help: "Spins resolved, by outcome.",
		}, []string{"outcome"}),
		Payout: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_payout_coins_total",
			Help: "Coins paid out by spins after bonuses.",
		}),
		Tickets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_tickets_awarded_total",
			Help: "Tickets awarded by spins.",
		}),
		TributePaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_tribute_paid_coins_total",
			Help: "Coins paid towards debt.",
		}),
		CyclesCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_cycles_advanced_total",
			Help: "Debts fully cleared.",
		}),
		Losses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_losses_total",
			Help: "Sessions that accepted their fate.",
		}),
		Trinkets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forge_trinkets_bought_total",
			Help: "Trinkets bought, by id.",
		}, []string{"trinket"}),
		SpinPayout: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forge_spin_payout_coins",
			Help:    "Payout per spin after bonuses.",
			Buckets: []float64{0, 5, 10, 30, 100, 300, 1000, 3000},
		}),
	}
	for _, col := range []prometheus.Collector{
		c.Spins, c.Payout, c.Tickets, c.TributePaid, c.CyclesCleared, c.Losses, c.Trinkets, c.SpinPayout,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns machine hooks feeding c.
func (c *Collector) Hooks() cycle.Hooks {
	return cycle.Hooks{
		OnSpin: func(e cycle.SpinEvent) {
			outcome := "loss"
			if e.Payout > 0 {
				outcome = "win"
			}
			c.Spins.WithLabelValues(outcome).Inc()
			c.Payout.Add(float64(e.Payout))
			c.Tickets.Add(float64(e.Tickets))
			c.SpinPayout.Observe(float64(e.Payout))
		},
		OnTribute: func(e cycle.TributeEvent) {
			c.TributePaid.Add(float64(e.Amount))
		},
		OnCycleAdvance: func(cycle.CycleEvent) {
			c.CyclesCleared.Inc()
		},
		OnLose: func(cycle.LoseEvent) {
			c.Losses.Inc()
		},
		OnTrinket: func(e cycle.TrinketEvent) {
			c.Trinkets.WithLabelValues(e.ID).Inc()
		},
	}
}
