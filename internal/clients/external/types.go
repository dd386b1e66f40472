package external

import (
	"math"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// WeaponData represents weapon information from external source
type WeaponData struct {
	ID         string
	Name       string
	Category   string
	Range      string
	DamageDice string
	DamageType string
	Weight     float64
}

// IsMelee reports whether the weapon is used in hand-to-hand combat
func (w *WeaponData) IsMelee() bool {
	return w.Range == "" || w.Range == "Melee"
}

// ToWeapon converts the reference data into an arena weapon with a magic bonus
func (w *WeaponData) ToWeapon(bonus int) (equipment.Weapon, error) {
	if w.DamageDice == "" {
		return equipment.Weapon{}, errors.InvalidArgumentf("weapon %s has no damage dice", w.ID)
	}

	damage, err := dice.Parse(w.DamageDice)
	if err != nil {
		return equipment.Weapon{}, errors.Wrapf(err, "weapon %s has unusable damage dice", w.ID)
	}

	return equipment.Weapon{
		Key:    w.ID,
		Name:   w.Name,
		Damage: damage,
		Weight: int(math.Round(w.Weight)),
		Bonus:  min(max(bonus, 0), equipment.MaxMagicBonus),
	}, nil
}
