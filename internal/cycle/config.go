package cycle

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xtding233/forgewheel/internal/reel"
)

// ErrInvalidConfig is returned by New for any configuration problem.
var ErrInvalidConfig = reel.ErrInvalidConfig

// Progression selects the debt model.
type Progression string

const (
	// Partial tribute payments between rounds, payout bonus for progress.
	ProgressionTribute Progression = "tribute"
	// One batch per cycle, full debt due when the batch is spent.
	ProgressionSimple Progression = "simple"
)

// Timing holds presentation delays. They never affect outcomes.
type Timing struct {
	SpinDuration time.Duration // per column
	RevealDelay  time.Duration // per column
	WinHighlight time.Duration
	HeatPulse    time.Duration
}

// Config is the static setup of a machine.
type Config struct {
	Rows           int
	Cols           int
	StartingCoins  int64
	BatchCost      int64
	SpinsPerBatch  int
	DebtBase       int64
	DebtMultiplier float64
	Progression    Progression
	GridPolicy     reel.GridPolicy
	EvalPolicy     reel.EvalPolicy
	Multipliers    map[int]int64
	Symbols        []reel.Kind
	Paylines       []reel.Payline
	InitialPattern [][]reel.SymbolID
	Timing         Timing
}

// DefaultConfig is the 3x5 forge board with partial tributes.
func DefaultConfig() Config {
	return Config{
		Rows:           3,
		Cols:           5,
		StartingCoins:  100,
		BatchCost:      20,
		SpinsPerBatch:  7,
		DebtBase:       30,
		DebtMultiplier: 1.3,
		Progression:    ProgressionTribute,
		GridPolicy:     reel.GridStacking,
		EvalPolicy:     reel.EvalPaylines,
		Multipliers:    reel.ForgeMultipliers(),
		Symbols:        reel.ForgeKinds(),
		Paylines:       reel.ForgePaylines(),
		InitialPattern: reel.ForgeInitialPattern(),
		Timing: Timing{
			SpinDuration: 150 * time.Millisecond,
			RevealDelay:  100 * time.Millisecond,
			WinHighlight: 1500 * time.Millisecond,
			HeatPulse:    2000 * time.Millisecond,
		},
	}
}

// engine is the validated, built form of a Config.
type engine struct {
	catalog  *reel.Catalog
	resolver *reel.Resolver
	initial  reel.Grid
}

func build(cfg Config) (*engine, error) {
	var errs []string
	if cfg.StartingCoins < 0 {
		errs = append(errs, "starting_coins must be >= 0")
	}
	if cfg.BatchCost <= 0 {
		errs = append(errs, "spin_batch_cost must be > 0")
	}
	if cfg.SpinsPerBatch <= 0 {
		errs = append(errs, "spins_per_batch must be > 0")
	}
	if cfg.DebtBase <= 0 {
		errs = append(errs, "debt_base must be > 0")
	}
	if math.IsNaN(cfg.DebtMultiplier) || math.IsInf(cfg.DebtMultiplier, 0) || cfg.DebtMultiplier < 1 {
		errs = append(errs, "debt_multiplier must be >= 1")
	}
	if cfg.Progression != ProgressionTribute && cfg.Progression != ProgressionSimple {
		errs = append(errs, "progression must be one of: tribute, simple")
	}
	if cfg.Timing.SpinDuration < 0 || cfg.Timing.RevealDelay < 0 || cfg.Timing.WinHighlight < 0 || cfg.Timing.HeatPulse < 0 {
		errs = append(errs, "timing values must be >= 0")
	}
	if len(errs) > 0 {
		return nil, invalid(errs)
	}

	cat, err := reel.NewCatalog(cfg.Symbols...)
	if err != nil {
		return nil, err
	}
	gen, err := reel.NewGenerator(cat, cfg.Rows, cfg.Cols, cfg.GridPolicy)
	if err != nil {
		return nil, err
	}
	mult, err := reel.NewMultiplierTable(cfg.Multipliers)
	if err != nil {
		return nil, err
	}
	var lines *reel.PaylineTable
	if cfg.EvalPolicy == reel.EvalPaylines {
		if lines, err = reel.NewPaylineTable(cfg.Rows, cfg.Cols, cfg.Paylines...); err != nil {
			return nil, err
		}
	}
	eval, err := reel.NewEvaluator(cat, cfg.EvalPolicy, lines, mult)
	if err != nil {
		return nil, err
	}
	for r, row := range cfg.InitialPattern {
		for c, id := range row {
			if _, ok := cat.Lookup(id); !ok {
				errs = append(errs, fmt.Sprintf("initial_grid[%d][%d] names unknown symbol %q", r, c, id))
			}
		}
	}
	if len(errs) > 0 {
		return nil, invalid(errs)
	}
	return &engine{
		catalog:  cat,
		resolver: reel.NewResolver(gen, eval),
		initial:  reel.PatternGrid(cat, cfg.Rows, cfg.Cols, cfg.InitialPattern),
	}, nil
}

func invalid(errs []string) error {
	return fmt.Errorf("%w: machine: %s", ErrInvalidConfig, strings.Join(errs, "; "))
}
