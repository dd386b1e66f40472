package monsters

import (
	"context"
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

//go:embed data/monsters.yaml
var embeddedCatalog []byte

// Catalog implements Repository over a fixed list of entries
type Catalog struct {
	entries []*Entry
	byName  map[string]*Entry
}

// NewEmbedded loads the bestiary compiled into the binary
func NewEmbedded() (*Catalog, error) {
	return Load(embeddedCatalog)
}

// Load parses a YAML list of entries. Names must be unique ignoring case.
func Load(data []byte) (*Catalog, error) {
	var entries []*Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfiguration, "failed to parse monster catalog")
	}
	if len(entries) == 0 {
		return nil, errors.InvalidConfiguration("monster catalog is empty")
	}

	c := &Catalog{
		entries: entries,
		byName:  make(map[string]*Entry, len(entries)),
	}
	for i, e := range entries {
		if e == nil {
			return nil, errors.InvalidConfigurationf("monster catalog entry %d is empty", i)
		}
		if err := e.Validate(); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidConfiguration, "invalid monster catalog entry %d", i).
				WithMeta("name", e.Name)
		}
		key := strings.ToLower(e.Name)
		if _, exists := c.byName[key]; exists {
			return nil, errors.InvalidConfigurationf("duplicate monster %q", e.Name)
		}
		c.byName[key] = e
	}

	return c, nil
}

// Get retrieves a copy of an entry by name
func (c *Catalog) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("monster name is required")
	}

	e, ok := c.byName[strings.ToLower(strings.TrimSpace(input.Name))]
	if !ok {
		return nil, errors.NotFoundf("monster %q not found", input.Name)
	}

	return &GetOutput{Entry: e.Clone()}, nil
}

// List returns copies of the entries in catalog order
func (c *Catalog) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MaxHitDice < 0 {
		return nil, errors.InvalidArgumentf("max hit dice must not be negative, got %d", input.MaxHitDice)
	}

	output := &ListOutput{}
	for _, e := range c.entries {
		if input.MaxHitDice > 0 && e.Level() > input.MaxHitDice {
			continue
		}
		output.Entries = append(output.Entries, e.Clone())
	}
	return output, nil
}

var _ Repository = (*Catalog)(nil)
