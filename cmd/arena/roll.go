package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

func newRollCmd() *cobra.Command {
	var (
		seed  uint64
		times int
	)

	cmd := &cobra.Command{
		Use:   "roll [notation]",
		Short: "Roll dice using dice notation",
		Long: `Roll dice and see the totals. Examples:

  roll 3d6
  roll 1d20+2 --times 5
  roll 4d6/2-1 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := dice.Parse(args[0])
			if err != nil {
				return err
			}
			if times < 1 {
				return errors.InvalidArgumentf("times must be at least 1, got %d", times)
			}

			if seed == 0 {
				if seed, err = dice.RandomSeed(); err != nil {
					return err
				}
			}
			src := dice.NewSource(seed)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (range %d-%d, average %d)\n", expr, expr.Min(), expr.Max(), expr.Average())
			for i := 0; i < times; i++ {
				total, err := expr.Evaluate(src)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  roll %d: %d\n", i+1, total)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed; 0 picks one")
	cmd.Flags().IntVar(&times, "times", 1, "number of rolls")

	return cmd
}
