package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidConfig = errors.New("config validation failed")

// ValidateRaw checks semantic constraints of a fully merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// grid
	rows, cols := 0, 0
	if cfg.Grid.Rows == nil || *cfg.Grid.Rows <= 0 {
		errs = append(errs, "grid.rows must be >= 1")
	} else {
		rows = *cfg.Grid.Rows
	}
	if cfg.Grid.Cols == nil || *cfg.Grid.Cols <= 0 {
		errs = append(errs, "grid.cols must be >= 1")
	} else {
		cols = *cfg.Grid.Cols
	}
	switch cfg.Grid.Policy {
	case "independent", "stacking":
	default:
		errs = append(errs, "grid.policy must be one of: independent, stacking")
	}

	// evaluation
	switch cfg.Evaluation.Policy {
	case "rows", "paylines":
	default:
		errs = append(errs, "evaluation.policy must be one of: rows, paylines")
	}
	if len(cfg.Evaluation.Multipliers) == 0 {
		errs = append(errs, "evaluation.multipliers must not be empty")
	}
	for k, v := range cfg.Evaluation.Multipliers {
		if k < 3 {
			errs = append(errs, fmt.Sprintf("evaluation.multipliers key %d must be >= 3", k))
		}
		if v < 0 {
			errs = append(errs, fmt.Sprintf("evaluation.multipliers[%d] must be >= 0", k))
		}
	}

	// economy
	e := cfg.Economy
	if e.StartingCoins == nil || *e.StartingCoins < 0 {
		errs = append(errs, "economy.starting_coins must be >= 0")
	}
	if e.SpinBatchCost == nil || *e.SpinBatchCost <= 0 {
		errs = append(errs, "economy.spin_batch_cost must be > 0")
	}
	if e.SpinsPerBatch == nil || *e.SpinsPerBatch <= 0 {
		errs = append(errs, "economy.spins_per_batch must be > 0")
	}
	if e.DebtBase == nil || *e.DebtBase <= 0 {
		errs = append(errs, "economy.debt_base must be > 0")
	}
	if e.DebtMultiplier == nil || math.IsNaN(*e.DebtMultiplier) || *e.DebtMultiplier < 1 {
		errs = append(errs, "economy.debt_multiplier must be >= 1")
	}
	switch e.Progression {
	case "tribute", "simple":
	default:
		errs = append(errs, "economy.progression must be one of: tribute, simple")
	}

	// timing
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"spin_duration_ms", cfg.Timing.SpinDurationMS},
		{"reveal_delay_ms", cfg.Timing.RevealDelayMS},
		{"win_highlight_ms", cfg.Timing.WinHighlightMS},
		{"heat_pulse_ms", cfg.Timing.HeatPulseMS},
	} {
		if f.v == nil || *f.v < 0 {
			errs = append(errs, fmt.Sprintf("timing.%s must be >= 0", f.name))
		}
	}

	// symbols
	known := make(map[string]bool, len(cfg.Symbols))
	if len(cfg.Symbols) == 0 {
		errs = append(errs, "symbols must not be empty")
	}
	for i, s := range cfg.Symbols {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("symbols[%d].id must not be empty", i))
		} else if known[s.ID] {
			errs = append(errs, fmt.Sprintf("symbols[%d].id %q is duplicated", i, s.ID))
		}
		known[s.ID] = true
		if !(s.Weight > 0) || math.IsInf(s.Weight, 0) {
			errs = append(errs, fmt.Sprintf("symbols[%d].weight must be > 0", i))
		}
		if s.BaseValue < 0 {
			errs = append(errs, fmt.Sprintf("symbols[%d].base_value must be >= 0", i))
		}
		if !(s.TicketChance >= 0 && s.TicketChance <= 1) {
			errs = append(errs, fmt.Sprintf("symbols[%d].ticket_chance must be in [0,1]", i))
		}
		if !(s.StackChance >= 0 && s.StackChance <= 1) {
			errs = append(errs, fmt.Sprintf("symbols[%d].stack_chance must be in [0,1]", i))
		}
	}

	// paylines only matter to the payline policy
	if cfg.Evaluation.Policy == "paylines" {
		if len(cfg.Paylines) == 0 {
			errs = append(errs, "paylines must not be empty for evaluation.policy=paylines")
		}
		for i, l := range cfg.Paylines {
			if cols > 0 && len(l.Rows) != cols {
				errs = append(errs, fmt.Sprintf("paylines[%d] has %d positions, want %d", i, len(l.Rows), cols))
			}
			for j, r := range l.Rows {
				if rows > 0 && (r < 0 || r >= rows) {
					errs = append(errs, fmt.Sprintf("paylines[%d].rows[%d]=%d out of range", i, j, r))
				}
			}
		}
	}

	// initial grid
	for r, row := range cfg.InitialGrid {
		for c, id := range row {
			if !known[id] {
				errs = append(errs, fmt.Sprintf("initial_grid[%d][%d] names unknown symbol %q", r, c, id))
			}
		}
	}

	// trinkets
	seen := make(map[string]bool, len(cfg.Trinkets))
	for i, t := range cfg.Trinkets {
		if t.ID == "" || seen[t.ID] {
			errs = append(errs, fmt.Sprintf("trinkets[%d].id must be unique and non-empty", i))
		}
		seen[t.ID] = true
		switch t.Rarity {
		case "common", "uncommon", "rare", "legendary":
		default:
			errs = append(errs, fmt.Sprintf("trinkets[%d].rarity must be one of: common, uncommon, rare, legendary", i))
		}
		if t.Cost <= 0 {
			errs = append(errs, fmt.Sprintf("trinkets[%d].cost must be > 0", i))
		}
		if t.Effect.ExtraSpins < 0 || t.Effect.BatchDiscount < 0 || t.Effect.PayoutBonusPct < 0 {
			errs = append(errs, fmt.Sprintf("trinkets[%d].effect values must be >= 0", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
