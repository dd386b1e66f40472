// Package combatant defines the fighters and monsters that meet in the arena.
//
// Monster is the base record: hit points, armor class, an attack routine and
// a fixed set of special abilities. Character composes a Monster and adds
// ability scores, equipment, experience and levels. Both satisfy Combatant,
// which is all the combat resolver and party aggregate ever see.
//
// Armor class follows the descending convention: 9 is unarmored, lower is
// better, and it may go negative.
package combatant

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
)

// Entity types reported by GetType
const (
	TypeMonster   = "monster"
	TypeCharacter = "character"
)

// Combatant is anything that can stand on one side of a fight
type Combatant interface {
	core.Entity

	Name() string
	Race() string
	Alignment() Alignment

	HitPoints() int
	MaxHitPoints() int
	ArmorClass() int
	Level() int

	// Attacks is the full routine for one round with every bonus applied
	Attacks() []Attack

	IsAlive() bool
	// TakeDamage subtracts damage and reports whether the combatant still lives
	TakeDamage(damage int) bool
	// Heal restores up to amount hit points without exceeding the maximum
	Heal(amount int)
	HealFully()

	AddKills(n int)
	Kills() int

	// AwardXP grants experience; the roller supplies hit dice for any levels gained
	AwardXP(xp int, roller rpgdice.Roller) error
	XP() int
	// XPValue is the experience earned for defeating this combatant
	XPValue() int
	TreasureXP() int

	HasSpecial(special SpecialType) bool
	SpecialValue(special SpecialType) int
}

var (
	_ Combatant = (*Monster)(nil)
	_ Combatant = (*Character)(nil)
)
