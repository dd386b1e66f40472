package combat_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/entities/party"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

// recordingBus keeps every published event
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.published = append(b.published, e)
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

func (b *recordingBus) types() []string {
	types := make([]string, len(b.published))
	for i, e := range b.published {
		types[i] = e.Type()
	}
	return types
}

type ResolverTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ResolverTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ResolverTestSuite) newResolver(cfg *combat.Config) *combat.Resolver {
	r, err := combat.NewResolver(cfg)
	s.Require().NoError(err)
	return r
}

func (s *ResolverTestSuite) TestNewResolver_Validation() {
	_, err := combat.NewResolver(nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidConfiguration(err))

	_, err = combat.NewResolver(&combat.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidConfiguration(err))
	s.Contains(err.Error(), "Roller")

	_, err = combat.NewResolver(&combat.Config{Roller: dice.NewSource(1), MaxRounds: -1})
	s.Require().Error(err)
	s.Contains(err.Error(), "MaxRounds")
}

func (s *ResolverTestSuite) TestDuel_SeededFightIsReproducible() {
	fight := func() *combat.ResolveOutput {
		a := testutils.CreateTestMonster(s.T(), "a", 10, 10, 5, "1d6")
		b := testutils.CreateTestMonster(s.T(), "b", 10, 10, 5, "1d6")
		r := s.newResolver(&combat.Config{Roller: dice.NewSource(1), RecordTrace: true})

		out, err := r.Duel(s.ctx, a, b)
		s.Require().NoError(err)
		return out
	}

	first := fight()
	second := fight()

	s.True(first.Outcome.IsTerminal())
	s.Equal(first.Rounds, len(first.Trace))
	s.Equal(first, second)

	last := first.Trace[len(first.Trace)-1]
	alive := 0
	for _, hp := range last.HitPoints {
		if hp.HP > 0 {
			alive++
		}
	}
	switch first.Outcome {
	case combat.OutcomeMutualDestruction:
		s.Zero(alive)
		s.Empty(first.Winners)
	default:
		s.Equal(1, alive)
		s.Require().Len(first.Winners, 1)
		s.Equal(1, first.Winners[0].Kills())
	}
}

func (s *ResolverTestSuite) TestResolve_SettlesKillsAndExperience() {
	hero := testutils.CreateTestFighter(s.T(), "hero", 7)
	goblin := testutils.CreateTestMonster(s.T(), "goblin", 1, 10, 0, "1d6")
	bus := &recordingBus{}

	roller := testutils.NewScriptedRoller(
		19, 5, // hero cuts the goblin down
		1, // goblin fumbles
		3, // hit die for the new level
	)
	r := s.newResolver(&combat.Config{
		Roller:   roller,
		EventBus: bus,
		XPAward:  func([]combatant.Combatant) int { return 2500 },
	})

	out, err := r.Resolve(s.ctx, &combat.ResolveInput{
		SideA: newParty(s.T(), "heroes", hero),
		SideB: newParty(s.T(), "goblins", goblin),
	})
	s.Require().NoError(err)

	s.Equal(combat.OutcomeSideAVictorious, out.Outcome)
	s.Equal(1, out.Rounds)
	s.Equal(2500, out.XPAward)
	s.Require().Len(out.Defeated, 1)
	s.Equal("goblin", out.Defeated[0].GetID())
	s.Equal(1, hero.Kills())
	s.Equal(2500, hero.XP())
	s.Equal(2, hero.Level())
	s.Zero(roller.Remaining())

	s.Equal([]string{
		combat.EventAttackHit,
		combat.EventCombatantSlain,
		combat.EventAttackMiss,
	}, bus.types())
	s.Equal("hero", bus.published[1].Source().GetID())
	s.Equal("goblin", bus.published[1].Target().GetID())
}

func (s *ResolverTestSuite) TestResolve_DefaultAwardIsExperienceValueOfDefeated() {
	a := testutils.CreateTestMonster(s.T(), "a", 5, 10, 0, "1d6")
	b1 := testutils.CreateTestMonster(s.T(), "b1", 1, 10, 0, "1d6")
	b2 := testutils.CreateTestMonster(s.T(), "b2", 1, 10, 0, "1d6")
	b2.TakeDamage(1)

	roller := testutils.NewScriptedRoller(
		19, 2, // a kills b1
		1, // b1 misses
	)
	r := s.newResolver(&combat.Config{Roller: roller})

	out, err := r.Resolve(s.ctx, &combat.ResolveInput{
		SideA: newParty(s.T(), "a", a),
		SideB: newParty(s.T(), "b", b1, b2),
	})
	s.Require().NoError(err)

	// b2 was already dead and does not count
	s.Require().Len(out.Defeated, 1)
	s.Equal(b1.XPValue(), out.XPAward)
	s.Equal(1, a.Kills())
}

func (s *ResolverTestSuite) TestResolve_MutualDestructionHasNoWinners() {
	a := testutils.CreateTestMonster(s.T(), "a", 1, 10, 0, "1d6")
	b := testutils.CreateTestMonster(s.T(), "b", 1, 10, 0, "1d6")
	r := s.newResolver(&combat.Config{Roller: testutils.NewScriptedRoller(20, 1, 20, 1)})

	out, err := r.Duel(s.ctx, a, b)
	s.Require().NoError(err)

	s.Equal(combat.OutcomeMutualDestruction, out.Outcome)
	s.Empty(out.Winners)
	s.Zero(a.Kills())
	s.Zero(b.Kills())
}

func (s *ResolverTestSuite) TestResolve_RoundLimit() {
	newTroll := func(id string) *combatant.Monster {
		m, err := combatant.NewMonster(&combatant.MonsterConfig{
			ID:        id,
			Race:      "Troll",
			HitPoints: 10,
			Attacks:   []combatant.Attack{{Name: "claw", Damage: dice.MustParse("1d4")}},
			Specials:  map[combatant.SpecialType]int{combatant.SpecialRegeneration: 10},
		}, nil)
		s.Require().NoError(err)
		return m
	}
	r := s.newResolver(&combat.Config{Roller: dice.NewSource(3), MaxRounds: 25})

	_, err := r.Duel(s.ctx, newTroll("t1"), newTroll("t2"))
	s.Require().Error(err)
	s.True(errors.IsInvalidCombatState(err))
	s.Contains(err.Error(), "25 rounds")
}

func (s *ResolverTestSuite) TestResolve_RejectsDeadSide() {
	a := testutils.CreateTestMonster(s.T(), "a", 5, 10, 0, "1d6")
	b := testutils.CreateTestMonster(s.T(), "b", 5, 10, 0, "1d6")
	b.TakeDamage(10)
	r := s.newResolver(&combat.Config{Roller: dice.NewSource(1)})

	_, err := r.Duel(s.ctx, a, b)
	s.Require().Error(err)
	s.True(errors.IsInvalidCombatState(err))

	_, err = r.Duel(s.ctx, a, nil)
	s.True(errors.IsInvalidCombatState(err))
}

// Without regeneration every fight ends inside the default round limit
func TestResolve_AlwaysTerminates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		side := func(label string) *party.Party {
			size := rapid.IntRange(1, 3).Draw(t, label+"_size")
			p, err := party.New(label)
			if err != nil {
				t.Fatalf("party %s: %v", label, err)
			}
			for i := 0; i < size; i++ {
				id := fmt.Sprintf("%s%d", label, i)
				damage, err := dice.New(
					rapid.IntRange(1, 3).Draw(t, id+"_dice"),
					rapid.IntRange(2, 8).Draw(t, id+"_faces"),
					0,
				)
				if err != nil {
					t.Fatalf("damage for %s: %v", id, err)
				}
				m, err := combatant.NewMonster(&combatant.MonsterConfig{
					ID:         id,
					Race:       "Orc",
					ArmorClass: rapid.IntRange(-2, 9).Draw(t, id+"_ac"),
					HitPoints:  rapid.IntRange(1, 30).Draw(t, id+"_hp"),
					Attacks: []combatant.Attack{{
						Name:     "blade",
						HitBonus: rapid.IntRange(0, 5).Draw(t, id+"_bonus"),
						Damage:   damage,
					}},
				}, nil)
				if err != nil {
					t.Fatalf("monster %s: %v", id, err)
				}
				if err := p.AddMember(m); err != nil {
					t.Fatalf("add %s: %v", id, err)
				}
			}
			return p
		}

		r, err := combat.NewResolver(&combat.Config{
			Roller: dice.NewSource(rapid.Uint64().Draw(t, "seed")),
		})
		if err != nil {
			t.Fatalf("resolver: %v", err)
		}

		out, err := r.Resolve(context.Background(), &combat.ResolveInput{SideA: side("a"), SideB: side("b")})
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !out.Outcome.IsTerminal() {
			t.Fatalf("outcome %v is not terminal after %d rounds", out.Outcome, out.Rounds)
		}
	})
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
