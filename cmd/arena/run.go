package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/report"
	"github.com/KirkDiggler/rpg-arena/internal/services/simulation"
)

type runFlags struct {
	years       int
	fights      int
	fighters    int
	level       int
	party       int
	armor       int
	mode        string
	treasure    bool
	reporting   string
	replaceDead bool
	xpPerLevel  int
	maxRounds   int
	seed        uint64
	format      string
	output      string
	weapon      string
	weaponBonus int
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a tournament",
		Long: `Run a multi-year tournament and print its report.

  arena run -y 10 -n 40 -m monster -r sdy
  arena run --seed 1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTournament(cmd, a, f)
		},
	}

	d := arena.DefaultOptions()
	flags := cmd.Flags()
	flags.IntVarP(&f.years, "years", "y", d.Years, "years to simulate")
	flags.IntVarP(&f.fights, "fights", "f", d.FightsPerYear, "fights per year")
	flags.IntVarP(&f.fighters, "fighters", "n", d.Fighters, "fighters in the pool")
	flags.IntVarP(&f.level, "level", "l", d.StartLevel, "starting level of recruits")
	flags.IntVarP(&f.party, "party", "p", d.PartySize, "fighters per side")
	flags.IntVarP(&f.armor, "armor", "a", 3, "base armor: 0 none, 1 leather, 2 chain, 3 plate")
	flags.StringVarP(&f.mode, "mode", "m", string(d.Mode), "man-vs-man or man-vs-monster")
	flags.BoolVarP(&f.treasure, "treasure", "t", d.Treasure, "award monster treasure experience")
	flags.StringVarP(&f.reporting, "report", "r", d.Reporting.String(), "report sections, any of sdktxy")
	flags.BoolVar(&f.replaceDead, "replace-dead", d.ReplaceDead, "recruit replacements for the dead each year")
	flags.IntVar(&f.xpPerLevel, "xp-per-level", d.XPPerLevel, "experience per level of a defeated fighter")
	flags.IntVar(&f.maxRounds, "max-rounds", d.MaxRounds, "rounds before a fight is abandoned")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed; 0 picks one")
	flags.StringVar(&f.format, "format", string(report.FormatText), "output format: text, json or pdf")
	flags.StringVarP(&f.output, "output", "o", "", "write the report to a file instead of stdout")
	flags.StringVar(&f.weapon, "weapon", "", "issue weapon: sword, axe, spear, dagger or a D&D 5e weapon index")
	flags.IntVar(&f.weaponBonus, "weapon-bonus", 0, "magic bonus of the issue weapon")

	return cmd
}

func (f *runFlags) options() (arena.Options, error) {
	opts := arena.DefaultOptions()

	armor, ok := equipment.ArmorTypeFromCode(f.armor)
	if !ok {
		return opts, errors.InvalidConfigurationf("armor must be 0-3, got %d", f.armor)
	}
	mode, err := arena.ParseMode(f.mode)
	if err != nil {
		return opts, err
	}
	reporting, err := arena.ParseReporting(f.reporting)
	if err != nil {
		return opts, err
	}

	opts.Years = f.years
	opts.FightsPerYear = f.fights
	opts.Fighters = f.fighters
	opts.StartLevel = f.level
	opts.PartySize = f.party
	opts.Armor = armor
	opts.Mode = mode
	opts.Treasure = f.treasure
	opts.ReplaceDead = f.replaceDead
	opts.XPPerLevel = f.xpPerLevel
	opts.MaxRounds = f.maxRounds
	opts.Reporting = reporting

	return opts, opts.Validate()
}

func runTournament(cmd *cobra.Command, a *app, f *runFlags) error {
	ctx := cmd.Context()

	opts, err := f.options()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}

	weapon, err := issueWeapon(ctx, a.cfg, f.weapon, f.weaponBonus)
	if err != nil {
		return err
	}

	repo, release, err := openRuns(a.cfg)
	if err != nil {
		return err
	}
	defer release()

	svc, err := newSimulation(repo, weapon)
	if err != nil {
		return err
	}

	out, err := svc.Simulate(ctx, &simulation.SimulateInput{Options: &opts, Seed: f.seed})
	if err != nil {
		return err
	}

	w, closeOut, err := outputWriter(cmd, f.output)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := report.Write(w, format, out.Run.Report, opts.Reporting); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "run %s (seed %d)\n", out.Run.ID, out.Run.Seed)
	return nil
}

func outputWriter(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create %s", path)
	}
	return file, func() { _ = file.Close() }, nil
}
