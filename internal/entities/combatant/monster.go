package combatant

import (
	"fmt"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Monster defaults
const (
	DefaultMove = 12
	BaseHitDie  = 6

	// MonsterXPPerHitDie is the experience value of each hit die when the
	// monster carries no explicit value
	MonsterXPPerHitDie = 100
)

var defaultAttack = Attack{Name: "attack", Damage: dice.Expression{Count: 1, Faces: BaseHitDie}}

// MonsterConfig describes a monster to create
type MonsterConfig struct {
	ID   string
	Race string
	// ArmorClass is taken as given; 0 and below are valid, strong armor
	ArmorClass int
	// Move defaults to DefaultMove when zero
	Move int
	// HitDice defaults to 1d6; its count is the monster's level
	HitDice dice.Expression
	// HitPoints fixes the starting hit points instead of rolling HitDice
	HitPoints int
	// Attacks defaults to a single 1d6 attack
	Attacks    []Attack
	Specials   map[SpecialType]int
	Alignment  Alignment
	XPValue    int
	TreasureXP int
}

// Validate ensures the monster can be created
func (c *MonsterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	errors.ValidateRequired("Race", c.Race, vb)

	if c.HitPoints < 0 {
		vb.Field("HitPoints", "must not be negative")
	}
	if !c.HitDice.IsZero() {
		if err := c.HitDice.Validate(); err != nil {
			vb.InvalidField("HitDice", errors.GetMessage(err))
		}
	}
	for i, a := range c.Attacks {
		if err := a.Damage.Validate(); err != nil {
			vb.InvalidField(fmt.Sprintf("Attacks[%d].Damage", i), errors.GetMessage(err))
		}
	}
	for s := range c.Specials {
		if !s.IsValid() {
			vb.Fieldf("Specials", "unknown special %q", s)
		}
	}
	if c.Alignment != "" && !c.Alignment.IsValid() {
		vb.InvalidField("Alignment", string(c.Alignment))
	}

	return vb.Build()
}

// Monster is the base combatant record. Hit points may go negative to record
// overkill; the monster is alive while they are above zero.
type Monster struct {
	id         string
	race       string
	armorClass int
	move       int
	hitDice    dice.Expression
	hp         int
	maxHP      int
	attacks    []Attack
	specials   map[SpecialType]int
	alignment  Alignment
	kills      int
	xpValue    int
	treasureXP int
}

// NewMonster creates a monster, rolling its hit points unless fixed
func NewMonster(cfg *MonsterConfig, roller rpgdice.Roller) (*Monster, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("monster config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid monster config")
	}

	m := &Monster{
		id:         cfg.ID,
		race:       cfg.Race,
		armorClass: cfg.ArmorClass,
		move:       cfg.Move,
		hitDice:    cfg.HitDice,
		attacks:    append([]Attack(nil), cfg.Attacks...),
		specials:   make(map[SpecialType]int, len(cfg.Specials)),
		alignment:  cfg.Alignment,
		xpValue:    cfg.XPValue,
		treasureXP: cfg.TreasureXP,
	}
	if m.move == 0 {
		m.move = DefaultMove
	}
	if m.hitDice.IsZero() {
		m.hitDice = dice.Expression{Count: 1, Faces: BaseHitDie}
	}
	if len(m.attacks) == 0 {
		m.attacks = []Attack{defaultAttack}
	}
	if m.alignment == "" {
		m.alignment = AlignmentNeutral
	}
	for s, v := range cfg.Specials {
		m.specials[s] = v
	}

	if cfg.HitPoints > 0 {
		m.hp = cfg.HitPoints
	} else {
		hp, err := m.hitDice.Evaluate(roller)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll hit points for %s", cfg.Race)
		}
		m.hp = max(hp, 1)
	}
	m.maxHP = m.hp

	return m, nil
}

// GetID implements core.Entity
func (m *Monster) GetID() string {
	return m.id
}

// GetType implements core.Entity
func (m *Monster) GetType() string {
	return TypeMonster
}

// Name is the monster's race
func (m *Monster) Name() string {
	return m.race
}

// Race returns the kind of monster
func (m *Monster) Race() string {
	return m.race
}

// Alignment returns the monster's alignment
func (m *Monster) Alignment() Alignment {
	return m.alignment
}

// HitPoints returns current hit points
func (m *Monster) HitPoints() int {
	return m.hp
}

// MaxHitPoints returns maximum hit points
func (m *Monster) MaxHitPoints() int {
	return m.maxHP
}

// ArmorClass returns the monster's armor class
func (m *Monster) ArmorClass() int {
	return m.armorClass
}

// Move returns the movement rate in inches
func (m *Monster) Move() int {
	return m.move
}

// HitDice returns the monster's hit dice
func (m *Monster) HitDice() dice.Expression {
	return m.hitDice
}

// Level is the number of hit dice
func (m *Monster) Level() int {
	return m.hitDice.Count
}

// Attacks returns the attack routine with special bonuses applied
func (m *Monster) Attacks() []Attack {
	bonus := m.attackBonus()
	attacks := make([]Attack, len(m.attacks))
	for i, a := range m.attacks {
		a.HitBonus += bonus
		attacks[i] = a
	}
	return attacks
}

func (m *Monster) attackBonus() int {
	bonus := m.specials[SpecialHitBonus]
	if m.HasSpecial(SpecialBerserking) {
		bonus += BerserkingBonus
	}
	return bonus
}

// IsAlive reports whether hit points are above zero
func (m *Monster) IsAlive() bool {
	return m.hp > 0
}

// TakeDamage subtracts damage and reports whether the monster still lives
func (m *Monster) TakeDamage(damage int) bool {
	m.hp -= damage
	return m.IsAlive()
}

// Heal restores hit points up to the maximum
func (m *Monster) Heal(amount int) {
	if amount <= 0 {
		return
	}
	m.hp = min(m.hp+amount, m.maxHP)
}

// HealFully restores maximum hit points
func (m *Monster) HealFully() {
	m.hp = m.maxHP
}

// AddKills adds to the kill tally
func (m *Monster) AddKills(n int) {
	m.kills += n
}

// Kills returns the kill tally
func (m *Monster) Kills() int {
	return m.kills
}

// AwardXP is a no-op: monsters do not advance
func (m *Monster) AwardXP(int, rpgdice.Roller) error {
	return nil
}

// XP is always zero for monsters
func (m *Monster) XP() int {
	return 0
}

// XPValue is the experience earned for defeating the monster
func (m *Monster) XPValue() int {
	if m.xpValue > 0 {
		return m.xpValue
	}
	return m.Level() * MonsterXPPerHitDie
}

// TreasureXP is the experience value of the monster's treasure type
func (m *Monster) TreasureXP() int {
	return m.treasureXP
}

// HasSpecial reports whether the monster has the special ability
func (m *Monster) HasSpecial(special SpecialType) bool {
	_, ok := m.specials[special]
	return ok
}

// SpecialValue returns the value attached to a special ability, 0 if absent
func (m *Monster) SpecialValue(special SpecialType) int {
	return m.specials[special]
}

// Specials returns a copy of the special abilities
func (m *Monster) Specials() map[SpecialType]int {
	specials := make(map[SpecialType]int, len(m.specials))
	for s, v := range m.specials {
		specials[s] = v
	}
	return specials
}

func (m *Monster) String() string {
	return fmt.Sprintf("%s (HD %d, AC %d, HP %d)", m.race, m.Level(), m.armorClass, m.hp)
}
