package equipment

import (
	"sort"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Weapon is a melee weapon. Its magic bonus applies to both to-hit and damage.
type Weapon struct {
	Key    string          `json:"key" yaml:"key"`
	Name   string          `json:"name" yaml:"name"`
	Damage dice.Expression `json:"damage" yaml:"damage"`
	Weight int             `json:"weight" yaml:"weight"`
	Bonus  int             `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

// Standard weapon keys
const (
	WeaponSword  = "sword"
	WeaponAxe    = "axe"
	WeaponSpear  = "spear"
	WeaponDagger = "dagger"
)

var weaponTable = map[string]Weapon{
	WeaponSword:  {Key: WeaponSword, Name: "Sword", Damage: dice.MustParse("1d8"), Weight: 1},
	WeaponAxe:    {Key: WeaponAxe, Name: "Axe", Damage: dice.MustParse("1d8"), Weight: 1},
	WeaponSpear:  {Key: WeaponSpear, Name: "Spear", Damage: dice.MustParse("1d6"), Weight: 1},
	WeaponDagger: {Key: WeaponDagger, Name: "Dagger", Damage: dice.MustParse("1d4")},
}

// MakeWeapon returns the standard weapon for key with a magic bonus
func MakeWeapon(key string, bonus int) (Weapon, error) {
	w, ok := weaponTable[key]
	if !ok {
		return Weapon{}, errors.NotFoundf("unknown weapon: %q", key)
	}
	w.Bonus = clampBonus(bonus)
	return w, nil
}

// StandardWeaponKeys lists the weapons in the built-in table
func StandardWeaponKeys() []string {
	keys := make([]string, 0, len(weaponTable))
	for k := range weaponTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToHitBonus is the weapon's contribution to the attack roll
func (w Weapon) ToHitBonus() int {
	return w.Bonus
}

// DamageExpression is the weapon's damage dice with its magic bonus folded in
func (w Weapon) DamageExpression() dice.Expression {
	d := w.Damage
	d.Modifier += w.Bonus
	return d
}

// IsMagic reports whether the weapon carries an enchantment
func (w Weapon) IsMagic() bool {
	return w.Bonus > 0
}

// String renders e.g. "Sword +2"
func (w Weapon) String() string {
	return withBonus(w.Name, w.Bonus)
}
