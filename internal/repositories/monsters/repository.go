// Package monsters provides the read-only bestiary the arena spawns opponents from
package monsters

//go:generate mockgen -destination=mock/mock_repository.go -package=monstersmock github.com/KirkDiggler/rpg-arena/internal/repositories/monsters Repository

import (
	"context"
	"fmt"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Repository defines read access to monster entries
type Repository interface {
	// Get retrieves an entry by name, ignoring case
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns entries in catalog order, optionally capped by hit dice
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// AttackEntry is one line of a monster's attack routine
type AttackEntry struct {
	Name     string          `yaml:"name" json:"name"`
	Count    int             `yaml:"count,omitempty" json:"count,omitempty"`
	HitBonus int             `yaml:"hit_bonus,omitempty" json:"hit_bonus,omitempty"`
	Damage   dice.Expression `yaml:"damage" json:"damage"`
}

// Entry is the static description of a monster kind
type Entry struct {
	Name       string                        `yaml:"name" json:"name"`
	HitDice    dice.Expression               `yaml:"hit_dice" json:"hit_dice"`
	ArmorClass int                           `yaml:"armor_class" json:"armor_class"`
	Move       int                           `yaml:"move" json:"move"`
	Attacks    []AttackEntry                 `yaml:"attacks" json:"attacks"`
	Specials   map[combatant.SpecialType]int `yaml:"specials,omitempty" json:"specials,omitempty"`
	Alignment  combatant.Alignment           `yaml:"alignment,omitempty" json:"alignment,omitempty"`
	XPValue    int                           `yaml:"xp_value,omitempty" json:"xp_value,omitempty"`
	TreasureXP int                           `yaml:"treasure_xp,omitempty" json:"treasure_xp,omitempty"`
}

// Level is the entry's hit dice count
func (e *Entry) Level() int {
	return e.HitDice.Count
}

// Clone returns a deep copy; callers may change it without touching the catalog
func (e *Entry) Clone() *Entry {
	c := *e
	c.Attacks = append([]AttackEntry(nil), e.Attacks...)
	if e.Specials != nil {
		c.Specials = make(map[combatant.SpecialType]int, len(e.Specials))
		for k, v := range e.Specials {
			c.Specials[k] = v
		}
	}
	return &c
}

// Routine expands the attack entries into one Attack per swing
func (e *Entry) Routine() []combatant.Attack {
	var attacks []combatant.Attack
	for _, a := range e.Attacks {
		for range max(a.Count, 1) {
			attacks = append(attacks, combatant.Attack{Name: a.Name, HitBonus: a.HitBonus, Damage: a.Damage})
		}
	}
	return attacks
}

// Spawn creates a fresh monster of this kind, rolling its hit points
func (e *Entry) Spawn(id string, roller rpgdice.Roller) (*combatant.Monster, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}

	m, err := combatant.NewMonster(&combatant.MonsterConfig{
		ID:         id,
		Race:       e.Name,
		ArmorClass: e.ArmorClass,
		Move:       e.Move,
		HitDice:    e.HitDice,
		Attacks:    e.Routine(),
		Specials:   e.Specials,
		Alignment:  e.Alignment,
		XPValue:    e.XPValue,
		TreasureXP: e.TreasureXP,
	}, roller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to spawn %s", e.Name)
	}
	return m, nil
}

// Validate checks an entry as loaded from the catalog
func (e *Entry) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", e.Name, vb)
	if err := e.HitDice.Validate(); err != nil {
		vb.InvalidField("hit_dice", errors.GetMessage(err))
	}
	if len(e.Attacks) == 0 {
		vb.RequiredField("attacks")
	}
	for i, a := range e.Attacks {
		if err := a.Damage.Validate(); err != nil {
			vb.InvalidField(fmt.Sprintf("attacks[%d].damage", i), errors.GetMessage(err))
		}
		if a.Count < 0 {
			vb.Fieldf(fmt.Sprintf("attacks[%d].count", i), "must not be negative, got %d", a.Count)
		}
	}
	for s := range e.Specials {
		if !s.IsValid() {
			vb.Fieldf("specials", "unknown special %q", s)
		}
	}
	if e.Alignment != "" && !e.Alignment.IsValid() {
		vb.InvalidField("alignment", string(e.Alignment))
	}

	return vb.Build()
}

// GetInput defines the request for retrieving an entry
type GetInput struct {
	Name string
}

// GetOutput defines the response for retrieving an entry
type GetOutput struct {
	Entry *Entry
}

// ListInput defines the request for listing entries
type ListInput struct {
	// MaxHitDice excludes entries above this level when positive
	MaxHitDice int
}

// ListOutput defines the response for listing entries
type ListOutput struct {
	Entries []*Entry
}
