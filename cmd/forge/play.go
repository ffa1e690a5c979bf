package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/game"
	"github.com/xtding233/forgewheel/internal/play"
	"github.com/xtding233/forgewheel/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long:  `Starts a session and reads commands (buy, spin, pay, fate, shop, trinket, status, reset) from standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		pace, _ := cmd.Flags().GetBool("pace")
		watch, _ := cmd.Flags().GetBool("watch")
		return runPlay(cmd, a, pace, watch)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("pace", false, "Pause between spin phases using the configured timings")
	playCmd.Flags().BoolP("watch", "w", false, "Reload config files on change; applied on reset")
}

func runPlay(cmd *cobra.Command, a *app, pace, watch bool) error {
	res, err := a.resolve()
	if err != nil {
		return err
	}
	var mopts []cycle.Option
	if pace {
		mopts = append(mopts, cycle.WithPacer(cycle.SleepPacer{}))
	}
	mgr, err := session.NewManager(res.Machine,
		session.WithLogger(a.logger),
		session.WithRandomSources(a.randomSources()),
		session.WithMachineOptions(mopts...),
	)
	if err != nil {
		return err
	}
	r, err := play.New(mgr, res.Trinkets, cmd.InOrStdin(), cmd.OutOrStdout(), play.WithLogger(a.logger))
	if err != nil {
		return err
	}

	if watch {
		w, err := game.NewFileWatcher(a.loader, func(path string) {
			next, err := a.resolve()
			if err != nil {
				a.logger.Warn("reloaded config rejected", zap.String("path", path), zap.Error(err))
				return
			}
			if err := r.Reload(next); err != nil {
				a.logger.Warn("reloaded config rejected", zap.String("path", path), zap.Error(err))
			}
		}, a.logger)
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return r.Run(ctx)
}
