// Package external is the location for the dnd5e-api client
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-arena/internal/clients/external Client

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Client defines the interface for external API interactions
type Client interface {
	// GetWeaponData fetches a weapon's damage profile from external source
	GetWeaponData(ctx context.Context, weaponID string) (*WeaponData, error)

	// ListWeaponsByCategory returns the weapons of an equipment category,
	// e.g. "martial-weapons" or "simple-weapons"
	ListWeaponsByCategory(ctx context.Context, category string) ([]*WeaponData, error)
}

// equipmentAPI is the slice of the dnd5e API the arena reads
type equipmentAPI interface {
	GetEquipment(key string) (dnd5e.EquipmentInterface, error)
	GetEquipmentCategory(key string) (*entities.EquipmentCategory, error)
}

type client struct {
	dnd5eClient equipmentAPI
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.HTTPTimeout < 0 || cfg.CacheTTL < 0 {
		return errors.InvalidConfiguration("timeouts must not be negative")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create D&D 5e API client")
	}

	return &client{
		dnd5eClient: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL),
	}, nil
}

func (c *client) GetWeaponData(_ context.Context, weaponID string) (*WeaponData, error) {
	if weaponID == "" {
		return nil, errors.InvalidArgument("weapon ID is required")
	}

	slog.Debug("Calling D&D 5e API to get weapon", "weapon", weaponID)
	item, err := c.dnd5eClient.GetEquipment(weaponID)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get equipment %s", weaponID)
	}

	weapon, ok := item.(*entities.Weapon)
	if !ok || weapon == nil {
		return nil, errors.NotFoundf("equipment %s is not a weapon", weaponID)
	}

	return convertWeapon(weapon), nil
}

func (c *client) ListWeaponsByCategory(_ context.Context, category string) ([]*WeaponData, error) {
	if category == "" {
		return nil, errors.InvalidArgument("category is required")
	}

	cat, err := c.dnd5eClient.GetEquipmentCategory(category)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get equipment category %s", category)
	}
	if cat == nil {
		return nil, errors.NotFoundf("equipment category %s not found", category)
	}

	return c.loadWeapons(cat.Equipment)
}

// loadWeapons loads full weapon details concurrently, keeping reference order
// and skipping entries that are not weapons
func (c *client) loadWeapons(refs []*entities.ReferenceItem) ([]*WeaponData, error) {
	slog.Debug("Loading weapon details concurrently", "count", len(refs))
	loaded := make([]*WeaponData, len(refs))
	errChan := make(chan error, len(refs))
	var wg sync.WaitGroup

	for i, ref := range refs {
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()

			item, err := c.dnd5eClient.GetEquipment(key)
			if err != nil {
				slog.Error("Failed to get equipment details", "equipment", key, "error", err)
				errChan <- errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to get equipment %s", key)
				return
			}
			if weapon, ok := item.(*entities.Weapon); ok && weapon != nil {
				loaded[idx] = convertWeapon(weapon)
			}
		}(i, ref.Key)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	weapons := make([]*WeaponData, 0, len(loaded))
	for _, w := range loaded {
		if w != nil {
			weapons = append(weapons, w)
		}
	}
	return weapons, nil
}

func convertWeapon(w *entities.Weapon) *WeaponData {
	data := &WeaponData{
		ID:       w.Key,
		Name:     w.Name,
		Category: w.WeaponCategory,
		Range:    w.WeaponRange,
		Weight:   float64(w.Weight),
	}
	if w.Damage != nil {
		data.DamageDice = w.Damage.DamageDice
		if w.Damage.DamageType != nil {
			data.DamageType = w.Damage.DamageType.Name
		}
	}
	return data
}
