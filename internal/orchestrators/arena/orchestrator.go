// Package arena runs the multi-year tournament. A pool of fighters fights
// card after card each year; the dead are culled at year end and replaced.
package arena

//go:generate mockgen -destination=mock/mock_service.go -package=arenamock github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/monsters"
)

// Service defines the interface for running tournaments
type Service interface {
	// Run simulates a whole tournament. A fixed seed and fixed options
	// reproduce the report exactly.
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)
}

// Config holds the dependencies for the arena orchestrator
type Config struct {
	Monsters monsters.Repository
	// Weapon is issued to every recruit; a standard sword when nil
	Weapon *equipment.Weapon
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewConfigValidationBuilder()

	if c.Monsters == nil {
		vb.RequiredField("Monsters")
	}
	if c.Weapon != nil {
		if err := c.Weapon.Damage.Validate(); err != nil {
			vb.InvalidField("Weapon", errors.GetMessage(err))
		}
	}

	return vb.Build()
}

type orchestrator struct {
	monsters monsters.Repository
	weapon   *equipment.Weapon
}

// NewOrchestrator creates a new arena orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidConfiguration("arena config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		monsters: cfg.Monsters,
		weapon:   cfg.Weapon,
	}, nil
}

// RunInput defines the request for a tournament
type RunInput struct {
	Options Options
	Seed    uint64
}

// RunOutput defines the response for a tournament
type RunOutput struct {
	Report *Report
}

// Run validates the options, then fights every year in order. Any error
// inside a fight aborts the run.
func (o *orchestrator) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Options.Validate(); err != nil {
		return nil, err
	}

	t, err := newTournament(&tournamentConfig{
		options:  input.Options,
		seed:     input.Seed,
		monsters: o.monsters,
		weapon:   o.weapon,
	})
	if err != nil {
		return nil, err
	}
	defer t.close()

	slog.Info("Arena run started",
		"seed", input.Seed,
		"mode", input.Options.Mode,
		"years", input.Options.Years,
		"fights_per_year", input.Options.FightsPerYear,
		"fighters", input.Options.Fighters,
		"party_size", input.Options.PartySize,
	)

	report, err := t.run(ctx)
	if err != nil {
		slog.Error("Arena run aborted", "seed", input.Seed, "year", t.year, "error", err)
		return nil, err
	}

	slog.Info("Arena run finished",
		"seed", input.Seed,
		"fights", report.Totals.Fights,
		"living", report.Totals.Living,
		"dead", report.Totals.Dead,
		"highest_level", report.Totals.HighestLevel,
	)

	return &RunOutput{Report: report}, nil
}
