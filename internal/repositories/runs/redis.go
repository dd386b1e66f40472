package runs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

const (
	// Key pattern: arena_run:{id}
	runKeyPrefix = "arena_run:"
	// Sorted set of run IDs scored by creation time
	runIndexKey = "arena_runs"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL expires archived runs; zero keeps them forever
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgumentf("ttl must not be negative, got %s", c.TTL)
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for archived runs
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores the run and indexes it by creation time
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal run %s", input.Run.ID)
	}

	stored, err := r.client.SetNX(ctx, runKey(input.Run.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save run %s", input.Run.ID)
	}
	if !stored {
		return nil, errors.AlreadyExistsf("run %s already exists", input.Run.ID)
	}

	score := float64(input.Run.CreatedAt.UnixMilli())
	if err := r.client.ZAdd(ctx, runIndexKey, redisclient.Z{Score: score, Member: input.Run.ID}).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to index run %s", input.Run.ID)
	}

	return &SaveOutput{Run: input.Run}, nil
}

// Get retrieves a run by ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	run, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Run: run}, nil
}

// List returns the most recent runs. Index entries whose run has expired are
// pruned as they are found.
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	limit, err := listLimit(input)
	if err != nil {
		return nil, err
	}

	ids, err := r.client.ZRevRange(ctx, runIndexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read run index")
	}

	out := make([]*Run, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		run, err := r.load(ctx, id)
		if errors.IsNotFound(err) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}

	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, runIndexKey, stale...).Err(); err != nil {
			return nil, errors.Wrap(err, "failed to prune run index")
		}
	}

	return &ListOutput{Runs: out}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*Run, error) {
	data, err := r.client.Get(ctx, runKey(id)).Result()
	if err == redisclient.Nil {
		return nil, errors.NotFoundf("run %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get run %s", id)
	}

	var run Run
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal run %s", id)
	}

	return &run, nil
}

func runKey(id string) string {
	return runKeyPrefix + id
}
