package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/forgewheel/internal/cycle"
)

var validateCmd = &cobra.Command{
	Use:   "validate [variant...]",
	Short: "Check game configs",
	Long:  `Loads, merges and validates each variant (default: the selected one) and builds a machine from it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 0 {
			args = []string{a.variant}
		}
		failed := 0
		for _, v := range args {
			a.variant = v
			if err := validateVariant(a); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", v, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", v)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d variants invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateVariant(a *app) error {
	res, err := a.resolve()
	if err != nil {
		return err
	}
	_, err = cycle.New(res.Machine)
	return err
}
