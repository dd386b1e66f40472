package combatant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

func TestNewMonster_Defaults(t *testing.T) {
	roller := testutils.NewScriptedRoller(4)

	m, err := combatant.NewMonster(&combatant.MonsterConfig{
		ID:         "goblin-1",
		Race:       "Goblin",
		ArmorClass: 10,
	}, roller)
	require.NoError(t, err)

	assert.Equal(t, "goblin-1", m.GetID())
	assert.Equal(t, combatant.TypeMonster, m.GetType())
	assert.Equal(t, "Goblin", m.Name())
	assert.Equal(t, 10, m.ArmorClass())
	assert.Equal(t, combatant.DefaultMove, m.Move())
	assert.Equal(t, "1d6", m.HitDice().String())
	assert.Equal(t, 1, m.Level())
	assert.Equal(t, 4, m.HitPoints())
	assert.Equal(t, 4, m.MaxHitPoints())
	assert.Equal(t, combatant.AlignmentNeutral, m.Alignment())
	assert.Equal(t, combatant.MonsterXPPerHitDie, m.XPValue())
	require.Len(t, m.Attacks(), 1)
	assert.Equal(t, "1d6", m.Attacks()[0].Damage.String())
	assert.Zero(t, roller.Remaining())
}

func TestNewMonster_ArmorClassIsNotDefaulted(t *testing.T) {
	for _, ac := range []int{0, -2} {
		m, err := combatant.NewMonster(&combatant.MonsterConfig{
			ID:         "wyrm",
			Race:       "Wyrm",
			ArmorClass: ac,
			HitPoints:  30,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, ac, m.ArmorClass())
	}
}

func TestNewMonster_RolledHitPointsNeverBelowOne(t *testing.T) {
	m, err := combatant.NewMonster(&combatant.MonsterConfig{
		ID:      "rat-1",
		Race:    "Rat",
		HitDice: dice.MustParse("1d4-3"),
	}, testutils.NewScriptedRoller(1))
	require.NoError(t, err)
	assert.Equal(t, 1, m.HitPoints())
}

func TestNewMonster_Validation(t *testing.T) {
	testCases := []struct {
		name string
		cfg  *combatant.MonsterConfig
	}{
		{"missing id", &combatant.MonsterConfig{Race: "Orc"}},
		{"missing race", &combatant.MonsterConfig{ID: "orc-1"}},
		{"negative hp", &combatant.MonsterConfig{ID: "orc-1", Race: "Orc", HitPoints: -1}},
		{"bad attack", &combatant.MonsterConfig{ID: "orc-1", Race: "Orc", Attacks: []combatant.Attack{{Name: "bite"}}}},
		{"unknown special", &combatant.MonsterConfig{ID: "orc-1", Race: "Orc", Specials: map[combatant.SpecialType]int{"flying": 1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := combatant.NewMonster(tc.cfg, dice.NewSource(1))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}

	_, err := combatant.NewMonster(nil, dice.NewSource(1))
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestMonster_DamageAndHealing(t *testing.T) {
	m := testutils.CreateTestMonster(t, "ogre", 10, 5, 0, "1d10")

	assert.True(t, m.TakeDamage(4))
	assert.Equal(t, 6, m.HitPoints())

	m.Heal(10)
	assert.Equal(t, 10, m.HitPoints(), "healing caps at maximum")

	assert.False(t, m.TakeDamage(13))
	assert.Equal(t, -3, m.HitPoints(), "overkill is recorded")
	assert.False(t, m.IsAlive())

	m.HealFully()
	assert.Equal(t, 10, m.HitPoints())
	assert.True(t, m.IsAlive())
}

func TestMonster_SpecialsShapeAttacks(t *testing.T) {
	m, err := combatant.NewMonster(&combatant.MonsterConfig{
		ID:        "troll-1",
		Race:      "Troll",
		HitPoints: 30,
		Attacks: []combatant.Attack{
			{Name: "claw", HitBonus: 6, Damage: dice.MustParse("1d4")},
			{Name: "claw", HitBonus: 6, Damage: dice.MustParse("1d4")},
			{Name: "bite", HitBonus: 6, Damage: dice.MustParse("1d8")},
		},
		Specials: map[combatant.SpecialType]int{
			combatant.SpecialHitBonus:     1,
			combatant.SpecialBerserking:   0,
			combatant.SpecialRegeneration: 3,
		},
	}, nil)
	require.NoError(t, err)

	attacks := m.Attacks()
	require.Len(t, attacks, 3)
	for _, a := range attacks {
		assert.Equal(t, 6+1+combatant.BerserkingBonus, a.HitBonus)
	}
	assert.True(t, m.HasSpecial(combatant.SpecialBerserking))
	assert.Equal(t, 3, m.SpecialValue(combatant.SpecialRegeneration))
	assert.False(t, m.HasSpecial(combatant.SpecialDamageReduction))
	assert.Zero(t, m.SpecialValue(combatant.SpecialDamageReduction))

	// Attacks returns copies
	attacks[0].HitBonus = 100
	assert.Equal(t, 9, m.Attacks()[0].HitBonus)
}

func TestMonster_DoesNotAdvance(t *testing.T) {
	m := testutils.CreateTestMonster(t, "kobold", 3, 7, 0, "1d4")

	require.NoError(t, m.AwardXP(5000, nil))
	assert.Zero(t, m.XP())
	assert.Equal(t, 1, m.Level())

	m.AddKills(2)
	m.AddKills(1)
	assert.Equal(t, 3, m.Kills())
}

func TestRandomAlignment(t *testing.T) {
	testCases := []struct {
		roll     int
		expected combatant.Alignment
	}{
		{1, combatant.AlignmentLawful},
		{2, combatant.AlignmentNeutral},
		{5, combatant.AlignmentNeutral},
		{6, combatant.AlignmentChaotic},
	}

	for _, tc := range testCases {
		t.Run(tc.expected.String(), func(t *testing.T) {
			a, err := combatant.RandomAlignment(testutils.NewScriptedRoller(tc.roll))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, a)
		})
	}
}

func TestAlignmentAndSpecialParsing(t *testing.T) {
	a, ok := combatant.AlignmentFromString("L")
	require.True(t, ok)
	assert.Equal(t, combatant.AlignmentLawful, a)
	assert.Equal(t, "L", a.Short())

	_, ok = combatant.AlignmentFromString("good")
	assert.False(t, ok)

	s, ok := combatant.SpecialTypeFromString("Damage Reduction")
	require.True(t, ok)
	assert.Equal(t, combatant.SpecialDamageReduction, s)

	_, ok = combatant.SpecialTypeFromString("laser eyes")
	assert.False(t, ok)
}
