// types.go
package game

import (
	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/shop"
)

// RawConfig is one YAML layer. Pointer and empty fields mean "not set".
type RawConfig struct {
	Version     string          `yaml:"version"`
	Grid        GridConfig      `yaml:"grid"`
	Evaluation  EvalConfig      `yaml:"evaluation"`
	Economy     EconomyConfig   `yaml:"economy"`
	Timing      TimingConfig    `yaml:"timing"`
	Symbols     []SymbolConfig  `yaml:"symbols,omitempty"`
	Paylines    []PaylineConfig `yaml:"paylines,omitempty"`
	InitialGrid [][]string      `yaml:"initial_grid,omitempty"`
	Trinkets    []TrinketConfig `yaml:"trinkets,omitempty"`
	Notes       string          `yaml:"notes,omitempty"`
}

type GridConfig struct {
	Rows   *int   `yaml:"rows,omitempty"`
	Cols   *int   `yaml:"cols,omitempty"`
	Policy string `yaml:"policy,omitempty"` // "independent" | "stacking"
}

type EvalConfig struct {
	Policy      string        `yaml:"policy,omitempty"` // "rows" | "paylines"
	Multipliers map[int]int64 `yaml:"multipliers,omitempty"`
}

type EconomyConfig struct {
	StartingCoins  *int64   `yaml:"starting_coins,omitempty"`
	SpinBatchCost  *int64   `yaml:"spin_batch_cost,omitempty"`
	SpinsPerBatch  *int     `yaml:"spins_per_batch,omitempty"`
	DebtBase       *int64   `yaml:"debt_base,omitempty"`
	DebtMultiplier *float64 `yaml:"debt_multiplier,omitempty"`
	Progression    string   `yaml:"progression,omitempty"` // "tribute" | "simple"
}

type TimingConfig struct {
	SpinDurationMS *int `yaml:"spin_duration_ms,omitempty"`
	RevealDelayMS  *int `yaml:"reveal_delay_ms,omitempty"`
	WinHighlightMS *int `yaml:"win_highlight_ms,omitempty"`
	HeatPulseMS    *int `yaml:"heat_pulse_ms,omitempty"`
}

type SymbolConfig struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Asset        string  `yaml:"asset,omitempty"`
	Weight       float64 `yaml:"weight"`
	BaseValue    int64   `yaml:"base_value"`
	TicketChance float64 `yaml:"ticket_chance,omitempty"`
	StackChance  float64 `yaml:"stack_chance,omitempty"`
	Wild         bool    `yaml:"wild,omitempty"`
}

// PaylineConfig lists the row index used in each column, left to right.
type PaylineConfig struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name,omitempty"`
	Rows []int  `yaml:"rows"`
}

type TrinketConfig struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Rarity      string          `yaml:"rarity"`
	Cost        int64           `yaml:"cost"`
	Effect      cycle.Modifiers `yaml:"effect"`
}

// Resolved is a merged, validated configuration ready to build machines.
type Resolved struct {
	Machine  cycle.Config
	Trinkets []shop.Trinket
	Version  string // effective config version for tracing
}
