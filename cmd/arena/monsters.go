package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/repositories/monsters"
)

func newMonstersCmd() *cobra.Command {
	var maxHitDice int

	cmd := &cobra.Command{
		Use:   "monsters [name]",
		Short: "List the monster catalog, or show one entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			catalog, err := monsters.NewEmbedded()
			if err != nil {
				return err
			}

			var entries []*monsters.Entry
			if len(args) == 1 {
				out, err := catalog.Get(ctx, &monsters.GetInput{Name: args[0]})
				if err != nil {
					return err
				}
				entries = []*monsters.Entry{out.Entry}
			} else {
				out, err := catalog.List(ctx, &monsters.ListInput{MaxHitDice: maxHitDice})
				if err != nil {
					return err
				}
				entries = out.Entries
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Name\tHD\tAC\tMove\tAttacks\tAlign\tXP\tTreasure")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%d\t%d\n",
					e.Name, e.HitDice, e.ArmorClass, e.Move, attacks(e), e.Alignment, e.XPValue, e.TreasureXP)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&maxHitDice, "max-hd", 0, "only monsters with at most this many hit dice")

	return cmd
}

func attacks(e *monsters.Entry) string {
	parts := make([]string, 0, len(e.Attacks))
	for _, a := range e.Attacks {
		s := fmt.Sprintf("%s %s", a.Name, a.Damage)
		if a.Count > 1 {
			s = fmt.Sprintf("%dx %s", a.Count, s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
