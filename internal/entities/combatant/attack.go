package combatant

import (
	"fmt"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
)

// Attack is one entry of an attack routine
type Attack struct {
	Name     string          `json:"name" yaml:"name"`
	HitBonus int             `json:"hit_bonus" yaml:"hit_bonus"`
	Damage   dice.Expression `json:"damage" yaml:"damage"`
}

// String renders e.g. "claw +1 (1d4)"
func (a Attack) String() string {
	return fmt.Sprintf("%s %+d (%s)", a.Name, a.HitBonus, a.Damage)
}
