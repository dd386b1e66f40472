package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/report"
	"github.com/KirkDiggler/rpg-arena/internal/services/simulation"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect archived runs",
	}
	cmd.AddCommand(newRunsListCmd(a), newRunsGetCmd(a))
	return cmd
}

func newRunsListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, release, err := openRuns(a.cfg)
			if err != nil {
				return err
			}
			defer release()

			svc, err := newSimulation(repo, nil)
			if err != nil {
				return err
			}

			out, err := svc.ListRuns(cmd.Context(), &simulation.ListRunsInput{Limit: limit})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCreated\tSeed\tMode\tYears\tFights\tLiving")
			for _, run := range out.Runs {
				r := run.Report
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
					run.ID, run.CreatedAt.Format(time.RFC3339), run.Seed,
					r.Options.Mode, r.Options.Years, r.Totals.Fights, r.Totals.Living)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum runs to list")

	return cmd
}

func newRunsGetCmd(a *app) *cobra.Command {
	var (
		format    string
		reporting string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "get [run-id]",
		Short: "Print an archived run's report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			repo, release, err := openRuns(a.cfg)
			if err != nil {
				return err
			}
			defer release()

			svc, err := newSimulation(repo, nil)
			if err != nil {
				return err
			}

			out, err := svc.GetRun(cmd.Context(), &simulation.GetRunInput{RunID: args[0]})
			if err != nil {
				return err
			}

			sections := out.Run.Report.Options.Reporting
			if cmd.Flags().Changed("report") {
				if sections, err = arena.ParseReporting(reporting); err != nil {
					return err
				}
			}

			w, closeOut, err := outputWriter(cmd, output)
			if err != nil {
				return err
			}
			defer closeOut()

			return report.Write(w, f, out.Run.Report, sections)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatText), "output format: text, json or pdf")
	cmd.Flags().StringVarP(&reporting, "report", "r", "", "report sections, defaults to those of the run")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}
