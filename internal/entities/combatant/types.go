package combatant

import (
	"strings"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Alignment is the lawful/neutral/chaotic axis
type Alignment string

// Alignments
const (
	AlignmentLawful  Alignment = "lawful"
	AlignmentNeutral Alignment = "neutral"
	AlignmentChaotic Alignment = "chaotic"
)

// String returns the string representation of the alignment
func (a Alignment) String() string {
	return string(a)
}

// Short returns the single-letter code: L, N or C
func (a Alignment) Short() string {
	if a == "" {
		return "?"
	}
	return strings.ToUpper(string(a[:1]))
}

// IsValid checks if the alignment is known
func (a Alignment) IsValid() bool {
	switch a {
	case AlignmentLawful, AlignmentNeutral, AlignmentChaotic:
		return true
	default:
		return false
	}
}

// AlignmentFromString accepts a full name or a single-letter code
func AlignmentFromString(s string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "lawful":
		return AlignmentLawful, true
	case "n", "neutral":
		return AlignmentNeutral, true
	case "c", "chaotic":
		return AlignmentChaotic, true
	default:
		return "", false
	}
}

// RandomAlignment draws a normally distributed alignment from one d6:
// 1 lawful, 2-5 neutral, 6 chaotic
func RandomAlignment(roller rpgdice.Roller) (Alignment, error) {
	roll, err := roller.Roll(6)
	if err != nil {
		return "", errors.Wrap(err, "failed to roll alignment")
	}

	switch {
	case roll == 1:
		return AlignmentLawful, nil
	case roll == 6:
		return AlignmentChaotic, nil
	default:
		return AlignmentNeutral, nil
	}
}

// SpecialType is one of the fixed set of special abilities a combatant can
// carry. Specials are resolved when the combatant is created.
type SpecialType string

// Specials with combat effects. The integer value attached to each is
// documented beside it.
const (
	// SpecialHitBonus adds its value to every attack roll
	SpecialHitBonus SpecialType = "hit_bonus"
	// SpecialBerserking adds +2 to every attack roll
	SpecialBerserking SpecialType = "berserking"
	// SpecialDamageReduction subtracts its value from each hit taken (minimum 1)
	SpecialDamageReduction SpecialType = "damage_reduction"
	// SpecialRegeneration restores its value in hit points at the end of each round
	SpecialRegeneration SpecialType = "regeneration"
)

// Descriptive specials, carried for reporting
const (
	SpecialPoison       SpecialType = "poison"
	SpecialParalysis    SpecialType = "paralysis"
	SpecialEnergyDrain  SpecialType = "energy_drain"
	SpecialBloodDrain   SpecialType = "blood_drain"
	SpecialSilverToHit  SpecialType = "silver_to_hit"
	SpecialMagicToHit   SpecialType = "magic_to_hit"
	SpecialFireBreath   SpecialType = "fire_breath"
	SpecialUndead       SpecialType = "undead"
	SpecialFearlessness SpecialType = "fearlessness"
	SpecialGrabbing     SpecialType = "grabbing"
	SpecialSwallowing   SpecialType = "swallowing"
)

// BerserkingBonus is the to-hit bonus granted by SpecialBerserking
const BerserkingBonus = 2

// IsValid checks if the special is in the fixed set
func (s SpecialType) IsValid() bool {
	switch s {
	case SpecialHitBonus, SpecialBerserking, SpecialDamageReduction, SpecialRegeneration,
		SpecialPoison, SpecialParalysis, SpecialEnergyDrain, SpecialBloodDrain,
		SpecialSilverToHit, SpecialMagicToHit, SpecialFireBreath, SpecialUndead,
		SpecialFearlessness, SpecialGrabbing, SpecialSwallowing:
		return true
	default:
		return false
	}
}

// SpecialTypeFromString normalizes names like "Damage Reduction"
func SpecialTypeFromString(s string) (SpecialType, bool) {
	st := SpecialType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	if st.IsValid() {
		return st, true
	}
	return "", false
}

// Ability is one of the six ability scores
type Ability string

// Abilities
const (
	AbilityStrength     Ability = "STR"
	AbilityIntelligence Ability = "INT"
	AbilityWisdom       Ability = "WIS"
	AbilityDexterity    Ability = "DEX"
	AbilityConstitution Ability = "CON"
	AbilityCharisma     Ability = "CHA"
)

// AllAbilities returns the abilities in the order they are rolled
func AllAbilities() []Ability {
	return []Ability{
		AbilityStrength,
		AbilityIntelligence,
		AbilityWisdom,
		AbilityDexterity,
		AbilityConstitution,
		AbilityCharisma,
	}
}

// ClassType is a character class
type ClassType string

// Classes
const (
	ClassFighter  ClassType = "Fighter"
	ClassWizard   ClassType = "Wizard"
	ClassThief    ClassType = "Thief"
	ClassElf      ClassType = "Elf"
	ClassDwarf    ClassType = "Dwarf"
	ClassHalfling ClassType = "Halfling"
)

// IsValid checks if the class is known
func (c ClassType) IsValid() bool {
	switch c {
	case ClassFighter, ClassWizard, ClassThief, ClassElf, ClassDwarf, ClassHalfling:
		return true
	default:
		return false
	}
}
