// Package simulation defines the interface for running and archiving
// tournaments
package simulation

import (
	"context"

	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs"
)

// Service defines the interface for simulation operations
type Service interface {
	// Simulate runs a tournament and archives its report
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)

	// Archived runs
	GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error)
	ListRuns(ctx context.Context, input *ListRunsInput) (*ListRunsOutput, error)
}

// SimulateInput defines the request for a tournament
type SimulateInput struct {
	// Options defaults to arena.DefaultOptions when nil
	Options *arena.Options
	// Seed of zero draws a random seed
	Seed uint64
}

// SimulateOutput defines the response for a tournament
type SimulateOutput struct {
	Run *runs.Run
}

// GetRunInput defines the request for an archived run
type GetRunInput struct {
	RunID string
}

// GetRunOutput defines the response for an archived run
type GetRunOutput struct {
	Run *runs.Run
}

// ListRunsInput defines the request for listing archived runs
type ListRunsInput struct {
	Limit int
}

// ListRunsOutput defines the response for listing archived runs
type ListRunsOutput struct {
	Runs []*runs.Run
}
