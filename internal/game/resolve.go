// resolve.go
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
	"github.com/xtding233/forgewheel/internal/shop"
)

// Overrides carries command-line tweaks applied after every file layer.
type Overrides struct {
	Rows           *int     `mapstructure:"rows"`
	Cols           *int     `mapstructure:"cols"`
	GridPolicy     *string  `mapstructure:"grid_policy"`
	EvalPolicy     *string  `mapstructure:"eval_policy"`
	StartingCoins  *int64   `mapstructure:"starting_coins"`
	SpinBatchCost  *int64   `mapstructure:"spin_batch_cost"`
	SpinsPerBatch  *int     `mapstructure:"spins_per_batch"`
	DebtBase       *int64   `mapstructure:"debt_base"`
	DebtMultiplier *float64 `mapstructure:"debt_multiplier"`
	Progression    *string  `mapstructure:"progression"`
}

type Resolver interface {
	// Returns merged RawConfig and the resolved engine configuration
	Resolve(variant string, o Overrides) (RawConfig, Resolved, error)
}

// ParseOverrides decodes key=value pairs, converting values to field types.
func ParseOverrides(pairs []string) (Overrides, error) {
	var o Overrides
	if len(pairs) == 0 {
		return o, nil
	}
	in := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return Overrides{}, fmt.Errorf("override %q: want key=value", p)
		}
		in[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &o,
	})
	if err != nil {
		return Overrides{}, err
	}
	if err := dec.Decode(in); err != nil {
		return Overrides{}, fmt.Errorf("decode overrides: %w", err)
	}
	return o, nil
}

// Apply writes the set fields of o into a copy of cfg.
func (o Overrides) Apply(cfg RawConfig) RawConfig {
	out := cfg
	if o.Rows != nil {
		out.Grid.Rows = o.Rows
	}
	if o.Cols != nil {
		out.Grid.Cols = o.Cols
	}
	if o.GridPolicy != nil {
		out.Grid.Policy = *o.GridPolicy
	}
	if o.EvalPolicy != nil {
		out.Evaluation.Policy = *o.EvalPolicy
	}
	if o.StartingCoins != nil {
		out.Economy.StartingCoins = o.StartingCoins
	}
	if o.SpinBatchCost != nil {
		out.Economy.SpinBatchCost = o.SpinBatchCost
	}
	if o.SpinsPerBatch != nil {
		out.Economy.SpinsPerBatch = o.SpinsPerBatch
	}
	if o.DebtBase != nil {
		out.Economy.DebtBase = o.DebtBase
	}
	if o.DebtMultiplier != nil {
		out.Economy.DebtMultiplier = o.DebtMultiplier
	}
	if o.Progression != nil {
		out.Economy.Progression = *o.Progression
	}
	return out
}

// Builtin returns the compiled-in defaults as a RawConfig layer.
func Builtin() RawConfig {
	def := cycle.DefaultConfig()
	raw := RawConfig{
		Version: "builtin",
		Grid:    GridConfig{Rows: ptr(def.Rows), Cols: ptr(def.Cols), Policy: string(def.GridPolicy)},
		Evaluation: EvalConfig{
			Policy:      string(def.EvalPolicy),
			Multipliers: def.Multipliers,
		},
		Economy: EconomyConfig{
			StartingCoins:  ptr(def.StartingCoins),
			SpinBatchCost:  ptr(def.BatchCost),
			SpinsPerBatch:  ptr(def.SpinsPerBatch),
			DebtBase:       ptr(def.DebtBase),
			DebtMultiplier: ptr(def.DebtMultiplier),
			Progression:    string(def.Progression),
		},
		Timing: TimingConfig{
			SpinDurationMS: ptr(int(def.Timing.SpinDuration / time.Millisecond)),
			RevealDelayMS:  ptr(int(def.Timing.RevealDelay / time.Millisecond)),
			WinHighlightMS: ptr(int(def.Timing.WinHighlight / time.Millisecond)),
			HeatPulseMS:    ptr(int(def.Timing.HeatPulse / time.Millisecond)),
		},
	}
	for _, k := range def.Symbols {
		raw.Symbols = append(raw.Symbols, SymbolConfig{
			ID:           string(k.ID),
			Name:         k.Name,
			Asset:        k.Asset,
			Weight:       k.Weight,
			BaseValue:    k.BaseValue,
			TicketChance: k.TicketChance,
			StackChance:  k.StackChance,
			Wild:         k.Wild,
		})
	}
	for _, l := range def.Paylines {
		rows := make([]int, len(l.Positions))
		for i, p := range l.Positions {
			rows[i] = p.Row
		}
		raw.Paylines = append(raw.Paylines, PaylineConfig{ID: l.ID, Name: l.Name, Rows: rows})
	}
	for _, row := range def.InitialPattern {
		ids := make([]string, len(row))
		for i, id := range row {
			ids[i] = string(id)
		}
		raw.InitialGrid = append(raw.InitialGrid, ids)
	}
	for _, t := range shop.DefaultTrinkets() {
		raw.Trinkets = append(raw.Trinkets, TrinketConfig{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Rarity:      string(t.Rarity),
			Cost:        t.Cost,
			Effect:      t.Effect,
		})
	}
	return raw
}

// Resolve applies overrides to a merged layer, validates it and converts it
// to engine types.
func Resolve(raw RawConfig, o Overrides) (Resolved, error) {
	merged := mergeRaw(Builtin(), o.Apply(raw))
	if err := ValidateRaw(merged); err != nil {
		return Resolved{}, err
	}
	return toResolved(merged), nil
}

// toResolved assumes a merged, validated config: every pointer is set.
func toResolved(raw RawConfig) Resolved {
	cfg := cycle.Config{
		Rows:           *raw.Grid.Rows,
		Cols:           *raw.Grid.Cols,
		StartingCoins:  *raw.Economy.StartingCoins,
		BatchCost:      *raw.Economy.SpinBatchCost,
		SpinsPerBatch:  *raw.Economy.SpinsPerBatch,
		DebtBase:       *raw.Economy.DebtBase,
		DebtMultiplier: *raw.Economy.DebtMultiplier,
		Progression:    cycle.Progression(raw.Economy.Progression),
		GridPolicy:     reel.GridPolicy(raw.Grid.Policy),
		EvalPolicy:     reel.EvalPolicy(raw.Evaluation.Policy),
		Multipliers:    make(map[int]int64, len(raw.Evaluation.Multipliers)),
		Timing: cycle.Timing{
			SpinDuration: ms(*raw.Timing.SpinDurationMS),
			RevealDelay:  ms(*raw.Timing.RevealDelayMS),
			WinHighlight: ms(*raw.Timing.WinHighlightMS),
			HeatPulse:    ms(*raw.Timing.HeatPulseMS),
		},
	}
	for k, v := range raw.Evaluation.Multipliers {
		cfg.Multipliers[k] = v
	}
	for _, s := range raw.Symbols {
		cfg.Symbols = append(cfg.Symbols, reel.Kind{
			ID:           reel.SymbolID(s.ID),
			Name:         s.Name,
			Asset:        s.Asset,
			Weight:       s.Weight,
			BaseValue:    s.BaseValue,
			TicketChance: s.TicketChance,
			StackChance:  s.StackChance,
			Wild:         s.Wild,
		})
	}
	names := make([]string, len(raw.Paylines))
	rows := make([][]int, len(raw.Paylines))
	for i, l := range raw.Paylines {
		names[i], rows[i] = l.Name, l.Rows
	}
	cfg.Paylines = reel.RowPaylines(names, rows)
	for i, l := range raw.Paylines {
		if l.ID != 0 {
			cfg.Paylines[i].ID = l.ID
		}
	}
	for _, row := range raw.InitialGrid {
		ids := make([]reel.SymbolID, len(row))
		for i, id := range row {
			ids[i] = reel.SymbolID(id)
		}
		cfg.InitialPattern = append(cfg.InitialPattern, ids)
	}

	out := Resolved{Machine: cfg, Version: raw.Version}
	for _, t := range raw.Trinkets {
		out.Trinkets = append(out.Trinkets, shop.Trinket{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Rarity:      shop.Rarity(t.Rarity),
			Cost:        t.Cost,
			Effect:      t.Effect,
		})
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
