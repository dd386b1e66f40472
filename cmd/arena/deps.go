package main

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/clients/external"
	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	simorch "github.com/KirkDiggler/rpg-arena/internal/orchestrators/simulation"
	"github.com/KirkDiggler/rpg-arena/internal/redis"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/monsters"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/runs"
)

// openRuns opens the configured archive. The returned func releases it.
func openRuns(cfg *config.Config) (runs.Repository, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to connect to redis")
		}
		repo, err := runs.NewRedisRepository(&runs.RedisConfig{Client: client, TTL: cfg.RunTTL})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, func() { _ = client.Close() }, nil
	case config.StoreSQLite:
		repo, err := runs.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return runs.NewInMemory(), func() {}, nil
	}
}

// issueWeapon resolves a weapon name. Standard keys come from the built-in
// table; anything else is looked up in the D&D 5e reference API.
func issueWeapon(ctx context.Context, cfg *config.Config, name string, bonus int) (*equipment.Weapon, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	if w, err := equipment.MakeWeapon(name, bonus); err == nil {
		return &w, nil
	}

	client, err := external.New(&external.Config{
		BaseURL:     cfg.DND5eBaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}
	return lookupWeapon(ctx, client, name, bonus)
}

func lookupWeapon(ctx context.Context, client external.Client, name string, bonus int) (*equipment.Weapon, error) {
	data, err := client.GetWeaponData(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch weapon %s", name)
	}
	if !data.IsMelee() {
		return nil, errors.InvalidArgumentf("weapon %s is not a melee weapon", name)
	}

	w, err := data.ToWeapon(bonus)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// newSimulation wires the arena and the archive together
func newSimulation(repo runs.Repository, weapon *equipment.Weapon) (*simorch.Orchestrator, error) {
	catalog, err := monsters.NewEmbedded()
	if err != nil {
		return nil, err
	}

	arenaSvc, err := arena.NewOrchestrator(&arena.Config{
		Monsters: catalog,
		Weapon:   weapon,
	})
	if err != nil {
		return nil, err
	}

	return simorch.New(&simorch.Config{
		Arena: arenaSvc,
		Runs:  repo,
	})
}
