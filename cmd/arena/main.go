// Package main is the entry point for the arena CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the process configuration into subcommands
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "arena",
		Short: "Tabletop arena combat simulator",
		Long: `Arena pits a pool of fighters against each other, or against monsters,
year after year, and reports who is left standing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		newRunCmd(a),
		newRollCmd(),
		newMonstersCmd(),
		newRunsCmd(a),
	)

	return root
}
