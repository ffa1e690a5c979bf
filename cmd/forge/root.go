package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/forgewheel/internal/game"
	"github.com/xtding233/forgewheel/internal/logging"
	"github.com/xtding233/forgewheel/internal/reel"
)

var rootCmd = &cobra.Command{
	Use:          "forge",
	Short:        "Forgewheel is a debt-cycle slot machine",
	Long:         `Forgewheel spins a configurable reel grid, pays out matching lines and charges an ever-growing tribute each cycle.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Config directory holding games/*.yaml (env FORGE_CONFIG_DIR)")
	rootCmd.PersistentFlags().String("variant", "", "Game variant to load (env FORGE_VARIANT)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (env FORGE_LOG_LEVEL)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed, 0 for a crypto source (env FORGE_SEED)")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a config value, e.g. --set debt_multiplier=1.5")
}

// env is read from FORGE_* variables; flags win when given.
type env struct {
	ConfigDir string `envconfig:"CONFIG_DIR" default:"configs"`
	Variant   string `envconfig:"VARIANT" default:"default"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	Seed      uint64 `envconfig:"SEED"`
}

// app bundles what every command needs.
type app struct {
	logger    *zap.Logger
	loader    *game.Loader
	variant   string
	overrides game.Overrides
	seed      uint64
}

func newApp(cmd *cobra.Command) (*app, error) {
	var e env
	if err := envconfig.Process("FORGE", &e); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		e.ConfigDir, _ = flags.GetString("dir")
	}
	if flags.Changed("variant") {
		e.Variant, _ = flags.GetString("variant")
	}
	if flags.Changed("log-level") {
		e.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("seed") {
		e.Seed, _ = flags.GetUint64("seed")
	}
	sets, _ := flags.GetStringArray("set")
	o, err := game.ParseOverrides(sets)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(e.LogLevel)
	if err != nil {
		return nil, err
	}
	return &app{
		logger:    logger,
		loader:    game.NewLoader(e.ConfigDir),
		variant:   e.Variant,
		overrides: o,
		seed:      e.Seed,
	}, nil
}

func (a *app) resolve() (game.Resolved, error) {
	if !a.loader.HasVariant(a.variant) {
		return game.Resolved{}, fmt.Errorf("variant %s: %w (no %s)", a.variant, game.ErrUnknownVariant, a.loader.Paths().VariantPath(a.variant))
	}
	_, res, err := a.loader.Resolve(a.variant, a.overrides)
	if err != nil {
		return game.Resolved{}, fmt.Errorf("variant %s: %w", a.variant, err)
	}
	return res, nil
}

// randomSources hands each new session its own source. With a seed the
// n-th session draws from seed+n.
func (a *app) randomSources() func() reel.RandomSource {
	if a.seed == 0 {
		return reel.DefaultRNG
	}
	var n atomic.Uint64
	return func() reel.RandomSource {
		return reel.NewSeededRNG(a.seed + n.Add(1) - 1)
	}
}

func (a *app) close() {
	_ = a.logger.Sync()
}
