package runs

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Run
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Run),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a run
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Run.ID]; exists {
		return nil, errors.AlreadyExistsf("run %s already exists", input.Run.ID)
	}

	run := *input.Run
	r.store[run.ID] = &run

	return &SaveOutput{Run: input.Run}, nil
}

// Get retrieves a run by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("run %s not found", input.ID)
	}

	// Return a copy to prevent external modification
	out := *run
	return &GetOutput{Run: &out}, nil
}

// List returns the most recent runs
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	limit, err := listLimit(input)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	all := make([]*Run, 0, len(r.store))
	for _, run := range r.store {
		out := *run
		all = append(all, &out)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if len(all) > limit {
		all = all[:limit]
	}

	return &ListOutput{Runs: all}, nil
}
