package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultVariant names the base layer file.
const DefaultVariant = "default"

// ErrUnknownVariant is returned for a variant with no config file.
var ErrUnknownVariant = errors.New("unknown variant")

// Paths helper for default/variant files.
type Paths struct {
	BaseDir string // base directory, e.g., ./configs
}

func (p Paths) GamesDir() string { return filepath.Join(p.BaseDir, "games") }

func (p Paths) DefaultPath() string { return p.VariantPath(DefaultVariant) }

func (p Paths) VariantPath(variant string) string {
	return filepath.Join(p.GamesDir(), variant+".yaml")
}

var _ Resolver = (*Loader)(nil)

// Loader reads YAML configs and merges default → variant.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: variant name
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// HasVariant reports whether variant has its own file. The default variant
// always exists since the builtin config backs it.
func (l *Loader) HasVariant(variant string) bool {
	if variant == "" || variant == DefaultVariant {
		return true
	}
	_, err := os.Stat(l.paths.VariantPath(variant))
	return err == nil
}

// LoadMerged loads and merges default → variant. Both files are optional;
// an absent file contributes nothing. The result is not validated.
func (l *Loader) LoadMerged(variant string) (RawConfig, error) {
	if variant == "" {
		variant = DefaultVariant
	}
	l.mu.RLock()
	cfg, ok := l.cache[variant]
	l.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if variant != DefaultVariant {
		varCfg, err := readYAML(l.paths.VariantPath(variant))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read variant %s: %w", variant, err)
		}
		merged = mergeRaw(defCfg, varCfg)
	}

	l.mu.Lock()
	l.cache[variant] = merged
	l.mu.Unlock()
	return merged, nil
}

// Resolve loads variant, applies overrides and validates the result.
func (l *Loader) Resolve(variant string, o Overrides) (RawConfig, Resolved, error) {
	raw, err := l.LoadMerged(variant)
	if err != nil {
		return RawConfig{}, Resolved{}, err
	}
	res, err := Resolve(raw, o)
	if err != nil {
		return raw, Resolved{}, err
	}
	return raw, res, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a. Scalars in b win when set; lists and the
// multiplier map in b replace a's wholesale.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// grid
	out.Grid.Rows = pick(a.Grid.Rows, b.Grid.Rows)
	out.Grid.Cols = pick(a.Grid.Cols, b.Grid.Cols)
	if b.Grid.Policy != "" {
		out.Grid.Policy = b.Grid.Policy
	}

	// evaluation
	if b.Evaluation.Policy != "" {
		out.Evaluation.Policy = b.Evaluation.Policy
	}
	if len(b.Evaluation.Multipliers) > 0 {
		out.Evaluation.Multipliers = make(map[int]int64, len(b.Evaluation.Multipliers))
		for k, v := range b.Evaluation.Multipliers {
			out.Evaluation.Multipliers[k] = v
		}
	}

	// economy
	out.Economy.StartingCoins = pick(a.Economy.StartingCoins, b.Economy.StartingCoins)
	out.Economy.SpinBatchCost = pick(a.Economy.SpinBatchCost, b.Economy.SpinBatchCost)
	out.Economy.SpinsPerBatch = pick(a.Economy.SpinsPerBatch, b.Economy.SpinsPerBatch)
	out.Economy.DebtBase = pick(a.Economy.DebtBase, b.Economy.DebtBase)
	out.Economy.DebtMultiplier = pick(a.Economy.DebtMultiplier, b.Economy.DebtMultiplier)
	if b.Economy.Progression != "" {
		out.Economy.Progression = b.Economy.Progression
	}

	// timing
	out.Timing.SpinDurationMS = pick(a.Timing.SpinDurationMS, b.Timing.SpinDurationMS)
	out.Timing.RevealDelayMS = pick(a.Timing.RevealDelayMS, b.Timing.RevealDelayMS)
	out.Timing.WinHighlightMS = pick(a.Timing.WinHighlightMS, b.Timing.WinHighlightMS)
	out.Timing.HeatPulseMS = pick(a.Timing.HeatPulseMS, b.Timing.HeatPulseMS)

	// lists
	if len(b.Symbols) > 0 {
		out.Symbols = append([]SymbolConfig(nil), b.Symbols...)
	}
	if len(b.Paylines) > 0 {
		out.Paylines = append([]PaylineConfig(nil), b.Paylines...)
	}
	if len(b.InitialGrid) > 0 {
		out.InitialGrid = append([][]string(nil), b.InitialGrid...)
	}
	if len(b.Trinkets) > 0 {
		out.Trinkets = append([]TrinketConfig(nil), b.Trinkets...)
	}

	return out
}

func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}
