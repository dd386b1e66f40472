// Package simulation implements the simulation orchestrator
package simulation

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs"
	"github.com/KirkDiggler/rpg-arena/internal/services/simulation"
)

// Config holds the dependencies for the simulation orchestrator
type Config struct {
	Arena arena.Service
	Runs  runs.Repository
	// IDGenerator defaults to UUIDs prefixed with "run"
	IDGenerator idgen.Generator
	// Clock defaults to the wall clock
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Arena == nil {
		vb.RequiredField("Arena")
	}
	if c.Runs == nil {
		vb.RequiredField("Runs")
	}

	return vb.Build()
}

// Orchestrator implements the simulation.Service interface
type Orchestrator struct {
	arena arena.Service
	runs  runs.Repository
	ids   idgen.Generator
	clock clock.Clock
}

// New creates a new simulation orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &Orchestrator{
		arena: cfg.Arena,
		runs:  cfg.Runs,
		ids:   cfg.IDGenerator,
		clock: cfg.Clock,
	}
	if o.ids == nil {
		o.ids = idgen.NewUUID("run")
	}
	if o.clock == nil {
		o.clock = clock.New()
	}

	return o, nil
}

// Ensure Orchestrator implements the Service interface
var _ simulation.Service = (*Orchestrator)(nil)

// Simulate runs one tournament and archives it under a fresh ID
func (o *Orchestrator) Simulate(ctx context.Context, input *simulation.SimulateInput) (*simulation.SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	opts := arena.DefaultOptions()
	if input.Options != nil {
		opts = *input.Options
	}

	seed := input.Seed
	if seed == 0 {
		var err error
		seed, err = dice.RandomSeed()
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw seed")
		}
	}

	runID := o.ids.Generate()
	slog.Debug("Starting simulation", "run_id", runID, "seed", seed)

	out, err := o.arena.Run(ctx, &arena.RunInput{Options: opts, Seed: seed})
	if err != nil {
		return nil, errors.Wrapf(err, "simulation %s failed", runID)
	}

	run := &runs.Run{
		ID:        runID,
		Seed:      seed,
		CreatedAt: o.clock.Now().UTC(),
		Report:    out.Report,
	}
	if _, err := o.runs.Save(ctx, &runs.SaveInput{Run: run}); err != nil {
		return nil, errors.Wrapf(err, "failed to archive run %s", runID)
	}

	slog.Info("Simulation archived",
		"run_id", runID,
		"seed", seed,
		"fights", out.Report.Totals.Fights,
		"living", out.Report.Totals.Living)

	return &simulation.SimulateOutput{Run: run}, nil
}

// GetRun returns an archived run
func (o *Orchestrator) GetRun(ctx context.Context, input *simulation.GetRunInput) (*simulation.GetRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("runID", input.RunID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.runs.Get(ctx, &runs.GetInput{ID: input.RunID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", input.RunID)
	}

	return &simulation.GetRunOutput{Run: out.Run}, nil
}

// ListRuns returns the most recent archived runs
func (o *Orchestrator) ListRuns(ctx context.Context, input *simulation.ListRunsInput) (*simulation.ListRunsOutput, error) {
	if input == nil {
		input = &simulation.ListRunsInput{}
	}

	out, err := o.runs.List(ctx, &runs.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}

	return &simulation.ListRunsOutput{Runs: out.Runs}, nil
}
