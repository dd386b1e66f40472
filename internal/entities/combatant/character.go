package combatant

import (
	"fmt"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Character constants
const (
	BaseArmorClass = 9
	MaxLevel       = 20

	// CharacterXPPerLevel is the experience value of each level of a
	// defeated character
	CharacterXPPerLevel = 100
)

// AbilityMethod selects the dice used to roll ability scores
type AbilityMethod int

// Ability rolling methods
const (
	AbilityMethodStandard  AbilityMethod = iota // 3d6
	AbilityMethodHeroic                         // 2d6+6
	AbilityMethodSuperior                       // 2d4+10
	AbilityMethodLegendary                      // 2d3+12
)

var abilityDice = [...]dice.Expression{
	AbilityMethodStandard:  {Count: 3, Faces: 6},
	AbilityMethodHeroic:    {Count: 2, Faces: 6, Modifier: 6},
	AbilityMethodSuperior:  {Count: 2, Faces: 4, Modifier: 10},
	AbilityMethodLegendary: {Count: 2, Faces: 3, Modifier: 12},
}

// Dice returns the expression rolled for each ability
func (m AbilityMethod) Dice() dice.Expression {
	return abilityDice[m]
}

// IsValid checks if the method is known
func (m AbilityMethod) IsValid() bool {
	return m >= AbilityMethodStandard && m <= AbilityMethodLegendary
}

// AbilityModifier maps a score to its modifier: 8 or less -1, 9-12 0, 13+ +1
func AbilityModifier(score int) int {
	switch {
	case score <= 8:
		return -1
	case score <= 12:
		return 0
	default:
		return 1
	}
}

// CharacterConfig describes a character to recruit
type CharacterConfig struct {
	ID   string
	Name string
	// Class defaults to ClassFighter
	Class ClassType
	// Level defaults to 1
	Level         int
	AbilityMethod AbilityMethod
	// Armor defaults to no armor
	Armor      equipment.ArmorType
	ArmorBonus int
	Shield     bool
	// Weapon defaults to a standard sword
	Weapon *equipment.Weapon
	// Alignment is rolled when empty
	Alignment Alignment
}

// Validate ensures the character can be created
func (c *CharacterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ID", c.ID, vb)
	if c.Class != "" && !c.Class.IsValid() {
		vb.InvalidField("Class", string(c.Class))
	}
	if c.Level != 0 {
		errors.ValidateRange("Level", c.Level, 1, MaxLevel, vb)
	}
	if !c.AbilityMethod.IsValid() {
		vb.Fieldf("AbilityMethod", "unknown method %d", c.AbilityMethod)
	}
	if c.Armor != "" && (!c.Armor.IsValid() || c.Armor == equipment.ArmorShield) {
		vb.InvalidField("Armor", string(c.Armor))
	}
	if c.Weapon != nil {
		if err := c.Weapon.Damage.Validate(); err != nil {
			vb.InvalidField("Weapon", errors.GetMessage(err))
		}
	}
	if c.Alignment != "" && !c.Alignment.IsValid() {
		vb.InvalidField("Alignment", string(c.Alignment))
	}

	return vb.Build()
}

// Character is a fighter: a Monster record plus ability scores, equipment
// and experience. Armor class and the attack routine are derived.
type Character struct {
	Monster

	name          string
	class         ClassType
	level         int
	xp            int
	abilities     map[Ability]int
	abilityDamage map[Ability]int
	armor         *equipment.Armor
	shield        *equipment.Armor
	weapon        equipment.Weapon
}

// NewCharacter rolls up a new character. Rolls are drawn in a fixed order
// (abilities, alignment, hit points) so a seeded roller reproduces it.
func NewCharacter(cfg *CharacterConfig, roller rpgdice.Roller) (*Character, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("character config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid character config")
	}

	class := cfg.Class
	if class == "" {
		class = ClassFighter
	}
	level := cfg.Level
	if level == 0 {
		level = 1
	}
	name := cfg.Name
	if name == "" {
		name = cfg.ID
	}

	c := &Character{
		Monster: Monster{
			id:         cfg.ID,
			race:       string(class),
			armorClass: BaseArmorClass,
			move:       DefaultMove,
			hitDice:    dice.Expression{Count: level, Faces: BaseHitDie},
			specials:   map[SpecialType]int{},
		},
		name:          name,
		class:         class,
		level:         level,
		xp:            XPForLevel(level),
		abilities:     make(map[Ability]int, 6),
		abilityDamage: make(map[Ability]int, 6),
	}

	if err := c.rollAbilities(cfg.AbilityMethod, roller); err != nil {
		return nil, err
	}

	c.alignment = cfg.Alignment
	if c.alignment == "" {
		alignment, err := RandomAlignment(roller)
		if err != nil {
			return nil, err
		}
		c.alignment = alignment
	}

	for i := 0; i < level; i++ {
		gain, err := c.rollHitDie(roller)
		if err != nil {
			return nil, err
		}
		c.maxHP += gain
	}
	c.hp = c.maxHP

	if cfg.Armor != "" && cfg.Armor != equipment.ArmorNone {
		armor, err := equipment.MakeArmor(cfg.Armor, cfg.ArmorBonus)
		if err != nil {
			return nil, err
		}
		c.armor = &armor
	}
	if cfg.Shield {
		shield, err := equipment.MakeArmor(equipment.ArmorShield, 0)
		if err != nil {
			return nil, err
		}
		c.shield = &shield
	}
	if cfg.Weapon != nil {
		c.weapon = *cfg.Weapon
	} else {
		sword, err := equipment.MakeWeapon(equipment.WeaponSword, 0)
		if err != nil {
			return nil, err
		}
		c.weapon = sword
	}

	return c, nil
}

func (c *Character) rollAbilities(method AbilityMethod, roller rpgdice.Roller) error {
	expr := method.Dice()
	for _, ability := range AllAbilities() {
		score, err := expr.Evaluate(roller)
		if err != nil {
			return errors.Wrapf(err, "failed to roll %s", ability)
		}
		c.abilities[ability] = score
		c.abilityDamage[ability] = 0
	}
	return nil
}

// rollHitDie rolls one level's hit points: 1d6 plus the constitution
// modifier, never less than 1
func (c *Character) rollHitDie(roller rpgdice.Roller) (int, error) {
	roll, err := roller.Roll(BaseHitDie)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll hit die")
	}
	return max(roll+c.AbilityModifier(AbilityConstitution), 1), nil
}

// GetType implements core.Entity
func (c *Character) GetType() string {
	return TypeCharacter
}

// Name returns the character's name
func (c *Character) Name() string {
	return c.name
}

// Class returns the character class
func (c *Character) Class() ClassType {
	return c.class
}

// Level returns the current level
func (c *Character) Level() int {
	return c.level
}

// XP returns accumulated experience
func (c *Character) XP() int {
	return c.xp
}

// XPValue is the experience earned for defeating this character
func (c *Character) XPValue() int {
	return c.level * CharacterXPPerLevel
}

// ArmorClass is derived: base 9, minus armor, minus shield, minus the
// dexterity modifier
func (c *Character) ArmorClass() int {
	ac := BaseArmorClass
	if c.armor != nil {
		ac -= c.armor.ArmorClass()
	}
	if c.shield != nil {
		ac -= c.shield.ArmorClass()
	}
	return ac - c.AbilityModifier(AbilityDexterity)
}

// Attacks is one weapon attack at level plus strength modifier plus the
// weapon's magic bonus
func (c *Character) Attacks() []Attack {
	return []Attack{{
		Name:     c.weapon.Name,
		HitBonus: c.level + c.AbilityModifier(AbilityStrength) + c.weapon.ToHitBonus() + c.attackBonus(),
		Damage:   c.weapon.DamageExpression(),
	}}
}

// AwardXP adds experience and advances levels per the experience table.
// Each level gained adds a hit die to both current and maximum hit points.
func (c *Character) AwardXP(xp int, roller rpgdice.Roller) error {
	if xp < 0 {
		return errors.InvalidArgumentf("experience award must not be negative, got %d", xp)
	}

	c.xp += xp
	for c.level < MaxLevel && c.xp >= XPForLevel(c.level+1) {
		gain, err := c.rollHitDie(roller)
		if err != nil {
			return errors.Wrapf(err, "failed to advance %s to level %d", c.name, c.level+1)
		}
		c.level++
		c.hitDice.Count = c.level
		c.maxHP += gain
		c.hp += gain
	}
	return nil
}

// AbilityScore returns the score after damage, never below zero
func (c *Character) AbilityScore(ability Ability) int {
	return max(c.abilities[ability]-c.abilityDamage[ability], 0)
}

// AbilityModifier returns the modifier for the current (damaged) score
func (c *Character) AbilityModifier(ability Ability) int {
	return AbilityModifier(c.AbilityScore(ability))
}

// Abilities returns the undamaged scores
func (c *Character) Abilities() map[Ability]int {
	abilities := make(map[Ability]int, len(c.abilities))
	for a, v := range c.abilities {
		abilities[a] = v
	}
	return abilities
}

// TakeAbilityDamage drains an ability score
func (c *Character) TakeAbilityDamage(ability Ability, damage int) {
	c.abilityDamage[ability] += damage
}

// RestoreAbilities clears all ability damage
func (c *Character) RestoreAbilities() {
	for _, a := range AllAbilities() {
		c.abilityDamage[a] = 0
	}
}

// HasNullAbilityScore reports whether any ability has been drained to zero
func (c *Character) HasNullAbilityScore() bool {
	for _, a := range AllAbilities() {
		if c.AbilityScore(a) <= 0 {
			return true
		}
	}
	return false
}

// Armor returns the worn armor, if any
func (c *Character) Armor() (equipment.Armor, bool) {
	if c.armor == nil {
		return equipment.Armor{}, false
	}
	return *c.armor, true
}

// Shield returns the carried shield, if any
func (c *Character) Shield() (equipment.Armor, bool) {
	if c.shield == nil {
		return equipment.Armor{}, false
	}
	return *c.shield, true
}

// Weapon returns the weapon in hand
func (c *Character) Weapon() equipment.Weapon {
	return c.weapon
}

// Equip places armor in the slot its type occupies
func (c *Character) Equip(armor equipment.Armor) error {
	switch armor.Type.Slot() {
	case equipment.SlotShield:
		c.shield = &armor
	case equipment.SlotArmor:
		if armor.Type == equipment.ArmorNone {
			c.armor = nil
			return nil
		}
		c.armor = &armor
	default:
		return errors.InvalidArgumentf("cannot equip %s", armor)
	}
	return nil
}

// Wield replaces the weapon in hand
func (c *Character) Wield(weapon equipment.Weapon) error {
	if err := weapon.Damage.Validate(); err != nil {
		return errors.Wrapf(err, "cannot wield %s", weapon.Name)
	}
	c.weapon = weapon
	return nil
}

func (c *Character) String() string {
	return fmt.Sprintf("%s (%s %d, AC %d, HP %d/%d)", c.name, c.class, c.level, c.ArmorClass(), c.hp, c.maxHP)
}
