package equipment

import (
	"fmt"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Armor is a suit of armor or a shield. Base is the amount it improves
// (lowers) the wearer's armor class.
type Armor struct {
	Type   ArmorType `json:"type" yaml:"type"`
	Base   int       `json:"base" yaml:"base"`
	Weight int       `json:"weight" yaml:"weight"`
	Bonus  int       `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

var armorTable = map[ArmorType]Armor{
	ArmorNone:    {Type: ArmorNone},
	ArmorLeather: {Type: ArmorLeather, Base: 2, Weight: 1},
	ArmorChain:   {Type: ArmorChain, Base: 4, Weight: 2},
	ArmorPlate:   {Type: ArmorPlate, Base: 6, Weight: 4},
	ArmorShield:  {Type: ArmorShield, Base: 1, Weight: 1},
}

// MakeArmor returns the standard armor of the given type with a magic bonus
// (capped at MaxMagicBonus)
func MakeArmor(t ArmorType, bonus int) (Armor, error) {
	a, ok := armorTable[t]
	if !ok {
		return Armor{}, errors.InvalidArgumentf("unknown armor type: %q", t)
	}
	a.Bonus = clampBonus(bonus)
	return a, nil
}

// ArmorClass is the total protection: base plus magic bonus
func (a Armor) ArmorClass() int {
	return a.Base + a.Bonus
}

// IsMetal reports whether the armor is chain or plate
func (a Armor) IsMetal() bool {
	return a.Type == ArmorPlate || a.Type == ArmorChain
}

// IsShield reports whether the armor is carried in the shield slot
func (a Armor) IsShield() bool {
	return a.Type == ArmorShield
}

// String renders e.g. "Plate +1"
func (a Armor) String() string {
	return withBonus(titleCase(string(a.Type)), a.Bonus)
}

func withBonus(name string, bonus int) string {
	switch {
	case bonus > 0:
		return fmt.Sprintf("%s +%d", name, bonus)
	case bonus < 0:
		return fmt.Sprintf("%s %d", name, bonus)
	default:
		return name
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
