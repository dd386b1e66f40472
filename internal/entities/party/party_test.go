package party_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/entities/party"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

type PartyTestSuite struct {
	suite.Suite

	a, b, c, d *combatant.Monster
	party      *party.Party
}

func TestPartySuite(t *testing.T) {
	suite.Run(t, new(PartyTestSuite))
}

func (s *PartyTestSuite) SetupTest() {
	s.a = testutils.CreateTestMonster(s.T(), "a", 10, 5, 1, "1d6")
	s.b = testutils.CreateTestMonster(s.T(), "b", 8, 5, 1, "1d6")
	s.c = testutils.CreateTestMonster(s.T(), "c", 6, 5, 1, "1d6")
	s.d = testutils.CreateTestMonster(s.T(), "d", 4, 5, 1, "1d6")

	p, err := party.New("left", s.a, s.b, s.c, s.d)
	s.Require().NoError(err)
	s.party = p
}

func (s *PartyTestSuite) ids(members []combatant.Combatant) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.GetID()
	}
	return ids
}

func (s *PartyTestSuite) TestAddMemberRejectsDuplicates() {
	err := s.party.AddMember(s.a)
	s.Require().Error(err)
	s.Assert().True(errors.IsAlreadyExists(err))
	s.Assert().Equal(4, s.party.Len())

	s.Assert().True(errors.IsInvalidArgument(s.party.AddMember(nil)))

	_, err = party.New("dupes", s.a, s.a)
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *PartyTestSuite) TestRemoveMember() {
	s.Require().NoError(s.party.RemoveMember(s.b))
	s.Assert().Equal([]string{"a", "c", "d"}, s.ids(s.party.Members()))
	s.Assert().False(s.party.Contains(s.b))

	err := s.party.RemoveMember(s.b)
	s.Require().Error(err)
	s.Assert().True(errors.IsMemberNotFound(err))
	s.Assert().Equal("b", errors.GetMeta(err)["member_id"])

	// removed members can rejoin at the end
	s.Require().NoError(s.party.AddMember(s.b))
	s.Assert().Equal([]string{"a", "c", "d", "b"}, s.ids(s.party.Members()))
}

func (s *PartyTestSuite) TestDerivedQueriesReadLiveState() {
	s.Assert().Equal(4, s.party.NumLiving())
	s.Assert().Equal(0, s.party.NumDead())
	s.Assert().Equal(28, s.party.TotalHP())

	s.b.TakeDamage(20)
	s.d.TakeDamage(1)

	s.Assert().Equal(3, s.party.NumLiving())
	s.Assert().Equal(1, s.party.NumDead())
	s.Assert().Equal(10+6+3, s.party.TotalHP(), "dead members do not count")
	s.Assert().Equal(28, s.party.TotalMaxHP())
	s.Assert().Equal([]string{"b"}, s.ids(s.party.Dead()))
	s.Assert().Equal([]string{"a", "c", "d"}, s.ids(s.party.Living()))
	s.Assert().True(s.party.AnyAlive())
}

func (s *PartyTestSuite) TestBringOutYourDead() {
	s.b.TakeDamage(8)
	s.d.TakeDamage(10)
	livingBefore := s.party.NumLiving()

	dead := s.party.BringOutYourDead()

	s.Assert().Equal([]string{"b", "d"}, s.ids(dead))
	s.Assert().Equal(0, s.party.NumDead())
	s.Assert().Equal(livingBefore, s.party.NumLiving())
	s.Assert().Equal([]string{"a", "c"}, s.ids(s.party.Members()))
	s.Assert().False(s.party.Contains(s.d))

	s.Assert().Empty(s.party.BringOutYourDead())
}

func (s *PartyTestSuite) TestHealAllRestoresEveryMember() {
	s.a.TakeDamage(5)
	s.c.TakeDamage(6)
	s.Require().False(s.c.IsAlive())

	s.party.HealAll()

	s.Assert().Equal(10, s.a.HitPoints())
	s.Assert().Equal(s.c.MaxHitPoints(), s.c.HitPoints())
	s.Assert().True(s.c.IsAlive())
	s.Assert().Zero(s.party.NumDead())
}

func (s *PartyTestSuite) TestHealLivingSkipsTheDead() {
	s.a.TakeDamage(5)
	s.c.TakeDamage(6)

	s.party.HealLiving()

	s.Assert().Equal(10, s.a.HitPoints())
	s.Assert().Equal(0, s.c.HitPoints())
	s.Assert().False(s.c.IsAlive())
}

func (s *PartyTestSuite) TestAverageLevel() {
	empty, err := party.New("empty")
	s.Require().NoError(err)
	s.Assert().Equal(0.0, empty.AverageLevel())
	s.Assert().True(empty.IsEmpty())
	_, ok := empty.HighestLevel()
	s.Assert().False(ok)

	vet, err := combatant.NewCharacter(&combatant.CharacterConfig{ID: "vet", Level: 4}, dice.NewSource(2))
	s.Require().NoError(err)
	s.Require().NoError(s.party.AddMember(vet))

	s.Assert().InDelta(8.0/5.0, s.party.AverageLevel(), 1e-9)

	best, ok := s.party.HighestLevel()
	s.Require().True(ok)
	s.Assert().Equal("vet", best.GetID())

	s.party.SortByLevel()
	s.Assert().Equal([]string{"vet", "a", "b", "c", "d"}, s.ids(s.party.Members()))
}

func (s *PartyTestSuite) TestShuffleIsAPermutation() {
	s.Require().NoError(s.party.Shuffle(dice.NewSource(4)))

	s.Assert().ElementsMatch([]string{"a", "b", "c", "d"}, s.ids(s.party.Members()))
	s.Assert().Equal(4, s.party.Len())
}

func (s *PartyTestSuite) TestShuffleIsDeterministicPerSeed() {
	other, err := party.New("right", s.a, s.b, s.c, s.d)
	s.Require().NoError(err)

	s.Require().NoError(s.party.Shuffle(dice.NewSource(77)))
	s.Require().NoError(other.Shuffle(dice.NewSource(77)))

	s.Assert().Equal(s.ids(s.party.Members()), s.ids(other.Members()))
}

// Each of the 24 orderings of four members should appear about equally often.
func (s *PartyTestSuite) TestShuffleIsUnbiased() {
	const trials = 24000
	src := dice.NewSource(123)
	counts := map[string]int{}

	for i := 0; i < trials; i++ {
		p, err := party.New("p", s.a, s.b, s.c, s.d)
		s.Require().NoError(err)
		s.Require().NoError(p.Shuffle(src))

		key := ""
		for _, id := range s.ids(p.Members()) {
			key += id
		}
		counts[key]++
	}

	s.Require().Len(counts, 24)
	expected := float64(trials) / 24
	chiSquare := 0.0
	for _, observed := range counts {
		diff := float64(observed) - expected
		chiSquare += diff * diff / expected
	}
	// 23 degrees of freedom, p = 0.001
	s.Assert().Less(chiSquare, 49.73)
}

func (s *PartyTestSuite) TestRandomLiving() {
	s.a.TakeDamage(10)
	s.c.TakeDamage(10)

	picked, err := s.party.RandomLiving(testutils.NewScriptedRoller(2))
	s.Require().NoError(err)
	s.Assert().Equal("d", picked.GetID())

	s.b.TakeDamage(10)
	s.d.TakeDamage(10)
	_, err = s.party.RandomLiving(dice.NewSource(1))
	s.Assert().True(errors.IsMemberNotFound(err))
}

func (s *PartyTestSuite) TestString() {
	s.Assert().Equal("left [Test a, Test b, Test c, Test d]", s.party.String())
}
