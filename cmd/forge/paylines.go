package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtding233/forgewheel/internal/reel"
)

var paylinesCmd = &cobra.Command{
	Use:   "paylines",
	Short: "Print the payline table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.resolve()
		if err != nil {
			return err
		}
		cfg := res.Machine
		table, err := reel.NewPaylineTable(cfg.Rows, cfg.Cols, cfg.Paylines...)
		if err != nil {
			return err
		}
		if cfg.EvalPolicy != reel.EvalPaylines {
			fmt.Fprintf(cmd.OutOrStdout(), "note: evaluation policy is %s, paylines are not scored\n\n", cfg.EvalPolicy)
		}
		printPaylines(cmd.OutOrStdout(), table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paylinesCmd)
}

func printPaylines(w io.Writer, t *reel.PaylineTable) {
	for _, l := range t.Lines() {
		fmt.Fprintf(w, "%d %s\n", l.ID, l.Name)
		for r := 0; r < t.Rows(); r++ {
			cells := make([]string, t.Cols())
			for c := range cells {
				cells[c] = "."
			}
			for _, p := range l.Positions {
				if p.Row == r {
					cells[p.Col] = "#"
				}
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, " "))
		}
	}
}
