// Package runs archives finished tournament reports. A run is stored once
// and never resumed; the archive only serves lookups and listings.
package runs

//go:generate mockgen -destination=mock/mock_repository.go -package=runsmock github.com/KirkDiggler/rpg-arena/internal/repositories/runs Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 20

// Run is an archived tournament
type Run struct {
	ID        string        `json:"id"`
	Seed      uint64        `json:"seed"`
	CreatedAt time.Time     `json:"created_at"`
	Report    *arena.Report `json:"report"`
}

// Repository defines the storage interface for archived runs
type Repository interface {
	// Save stores a new run; an existing ID is an error
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a run by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns the most recent runs, newest first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// SaveInput defines the request for saving a run
type SaveInput struct {
	Run *Run
}

// SaveOutput defines the response for saving a run
type SaveOutput struct {
	Run *Run
}

// GetInput defines the request for retrieving a run
type GetInput struct {
	ID string
}

// GetOutput defines the response for retrieving a run
type GetOutput struct {
	Run *Run
}

// ListInput defines the request for listing runs
type ListInput struct {
	// Limit defaults to DefaultListLimit
	Limit int
}

// ListOutput defines the response for listing runs
type ListOutput struct {
	Runs []*Run
}

func validateSave(input *SaveInput) error {
	if input == nil || input.Run == nil {
		return errors.InvalidArgument("run is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", input.Run.ID, vb)
	if input.Run.Report == nil {
		vb.RequiredField("Report")
	}
	if input.Run.CreatedAt.IsZero() {
		vb.RequiredField("CreatedAt")
	}
	return vb.Build()
}

func validateGet(input *GetInput) error {
	if input == nil || input.ID == "" {
		return errors.InvalidArgument("run ID is required")
	}
	return nil
}

func listLimit(input *ListInput) (int, error) {
	if input == nil || input.Limit == 0 {
		return DefaultListLimit, nil
	}
	if input.Limit < 0 {
		return 0, errors.InvalidArgumentf("limit must not be negative, got %d", input.Limit)
	}
	return input.Limit, nil
}
