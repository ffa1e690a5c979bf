package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/xtding233/forgewheel/internal/metrics"
	"github.com/xtding233/forgewheel/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo balance simulation",
	Long:  `Plays many sessions with a greedy auto-player and reports how far they get and how much the machine returns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		f := cmd.Flags()
		p := sim.Params{Seed: a.seed}
		p.Trials, _ = f.GetInt("trials")
		p.Workers, _ = f.GetInt("workers")
		p.MaxCycles, _ = f.GetInt("max-cycles")
		p.MaxSpins, _ = f.GetInt("max-spins")
		p.BuyTrinkets, _ = f.GetBool("buy-trinkets")
		metricsOut, _ := f.GetString("metrics-out")

		res, err := a.resolve()
		if err != nil {
			return err
		}
		opts := []sim.Option{sim.WithLogger(a.logger)}
		var reg *prometheus.Registry
		if metricsOut != "" {
			reg = prometheus.NewRegistry()
			c, err := metrics.NewCollector(reg)
			if err != nil {
				return err
			}
			opts = append(opts, sim.WithHooks(c.Hooks()))
		}

		rep, err := sim.Run(cmd.Context(), res.Machine, res.Trinkets, p, opts...)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), a.variant, p.Seed, rep)

		if reg != nil {
			if err := prometheus.WriteToTextfile(metricsOut, reg); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("trials", 10000, "Number of sessions to play")
	simulateCmd.Flags().Int("workers", 0, "Parallel workers, 0 for GOMAXPROCS")
	simulateCmd.Flags().Int("max-cycles", 50, "Stop a session after clearing this many debts")
	simulateCmd.Flags().Int("max-spins", 10000, "Stop a session after this many spins")
	simulateCmd.Flags().Bool("buy-trinkets", false, "Let the auto-player spend tickets in the shop")
	simulateCmd.Flags().String("metrics-out", "", "Write Prometheus text metrics to this file")
}

func printReport(w io.Writer, variant string, seed uint64, rep sim.Report) {
	fmt.Fprintf(w, "variant   %s (seed %d)\n", variant, seed)
	fmt.Fprintf(w, "trials    %d\n", rep.Trials)
	for _, row := range []struct {
		name string
		s    sim.Stats
	}{
		{"cycle", rep.Cycles},
		{"spins", rep.Spins},
		{"tickets", rep.Tickets},
		{"payout", rep.Payout},
	} {
		fmt.Fprintf(w, "%-9s mean %.2f  sd %.2f  p50 %.0f  p90 %.0f  p99 %.0f\n",
			row.name, row.s.Mean, row.s.StdDev, row.s.P50, row.s.P90, row.s.P99)
	}
	fmt.Fprintf(w, "rtp       %s\n", rep.RTP.StringFixed(4))
	fmt.Fprintf(w, "survival  %.2f%%\n", rep.Survival*100)
}
