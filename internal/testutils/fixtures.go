package testutils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// ScriptedRoller replays a fixed sequence of die results. Roll and RollN
// consume from the same sequence.
type ScriptedRoller struct {
	values []int
	next   int
}

// NewScriptedRoller creates a roller that returns values in order
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	if r.next >= len(r.values) {
		return 0, errors.Internalf("scripted roller exhausted after %d rolls", r.next)
	}
	v := r.values[r.next]
	if v < 1 || v > size {
		return 0, errors.Internalf("scripted value %d at position %d does not fit a d%d", v, r.next, size)
	}
	r.next++
	return v, nil
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	results := make([]int, count)
	for i := range results {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// Remaining returns how many scripted values are left
func (r *ScriptedRoller) Remaining() int {
	return len(r.values) - r.next
}

// CreateTestMonster creates a monster with fixed hit points and a single attack
func CreateTestMonster(t *testing.T, id string, hp, ac, hitBonus int, damage string) *combatant.Monster {
	t.Helper()

	m, err := combatant.NewMonster(&combatant.MonsterConfig{
		ID:         id,
		Race:       fmt.Sprintf("Test %s", id),
		ArmorClass: ac,
		HitPoints:  hp,
		Attacks: []combatant.Attack{
			{Name: "strike", HitBonus: hitBonus, Damage: dice.MustParse(damage)},
		},
	}, nil)
	require.NoError(t, err, "failed to create test monster")

	return m
}

// CreateTestFighter recruits a plate-armored level 1 fighter from a seeded source
func CreateTestFighter(t *testing.T, id string, seed uint64) *combatant.Character {
	t.Helper()

	c, err := combatant.NewCharacter(&combatant.CharacterConfig{
		ID:    id,
		Armor: "plate",
	}, dice.NewSource(seed))
	require.NoError(t, err, "failed to create test fighter")

	return c
}
