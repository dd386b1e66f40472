// Package equipment holds the static armor and weapon tables fighters are
// issued from.
package equipment

import "strings"

// MaxMagicBonus caps the enchantment on any single item
const MaxMagicBonus = 5

// EquipmentSlot represents where an item is worn or held
type EquipmentSlot string

// Define all available equipment slots
const (
	SlotMainHand EquipmentSlot = "main_hand"
	SlotArmor    EquipmentSlot = "armor"
	SlotShield   EquipmentSlot = "shield"
)

// String returns the string representation of the equipment slot
func (s EquipmentSlot) String() string {
	return string(s)
}

// IsValid checks if the equipment slot is valid
func (s EquipmentSlot) IsValid() bool {
	switch s {
	case SlotMainHand, SlotArmor, SlotShield:
		return true
	default:
		return false
	}
}

// ArmorType enumerates the armor kinds in the table
type ArmorType string

// Armor types. ArmorNone is a valid choice for a fighter's base armor.
const (
	ArmorNone    ArmorType = "none"
	ArmorLeather ArmorType = "leather"
	ArmorChain   ArmorType = "chain"
	ArmorPlate   ArmorType = "plate"
	ArmorShield  ArmorType = "shield"
)

// String returns the string representation of the armor type
func (t ArmorType) String() string {
	return string(t)
}

// IsValid checks if the armor type is known
func (t ArmorType) IsValid() bool {
	switch t {
	case ArmorNone, ArmorLeather, ArmorChain, ArmorPlate, ArmorShield:
		return true
	default:
		return false
	}
}

// Slot returns the slot an armor type occupies
func (t ArmorType) Slot() EquipmentSlot {
	if t == ArmorShield {
		return SlotShield
	}
	return SlotArmor
}

// BodyArmorTypes returns the armor types a fighter can start in, from
// lightest to heaviest
func BodyArmorTypes() []ArmorType {
	return []ArmorType{ArmorNone, ArmorLeather, ArmorChain, ArmorPlate}
}

// ArmorTypeFromString converts a name to an ArmorType
// Returns the type and true if valid, empty type and false if invalid
func ArmorTypeFromString(s string) (ArmorType, bool) {
	t := ArmorType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return "", false
}

// ArmorTypeFromCode converts the numeric armor code used on the command line
// (0 none, 1 leather, 2 chain, 3 plate) to an ArmorType
func ArmorTypeFromCode(code int) (ArmorType, bool) {
	types := BodyArmorTypes()
	if code < 0 || code >= len(types) {
		return "", false
	}
	return types[code], true
}

func clampBonus(bonus int) int {
	if bonus > MaxMagicBonus {
		return MaxMagicBonus
	}
	return bonus
}
