package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/entities/party"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/monsters"
)

// record is a fighter's running statistics
type record struct {
	fighter       *combatant.Character
	fights        int
	wins          int
	yearsSurvived int
	recruitedYear int
	diedYear      int
	slainBy       string
}

type tournamentConfig struct {
	options  Options
	seed     uint64
	monsters monsters.Repository
	weapon   *equipment.Weapon
}

// tournament is the state of a single run. It is not safe for concurrent use.
type tournament struct {
	opts     Options
	seed     uint64
	roller   *dice.Source
	resolver *combat.Resolver
	bus      events.EventBus
	subID    string
	monsters monsters.Repository
	weapon   *equipment.Weapon

	fighterIDs *idgen.SequentialGenerator
	monsterIDs *idgen.SequentialGenerator

	pool    *party.Party
	records map[string]*record
	order   []*record

	year          int
	yearKills     int
	monsterKills  tally
	fighterDeaths tally
	years         []YearStats
	xpAwards      []XPAward
	totals        Totals
}

func newTournament(cfg *tournamentConfig) (*tournament, error) {
	pool, err := party.New("pool")
	if err != nil {
		return nil, err
	}

	t := &tournament{
		opts:          cfg.options,
		seed:          cfg.seed,
		roller:        dice.NewSource(cfg.seed),
		bus:           events.NewBus(),
		monsters:      cfg.monsters,
		weapon:        cfg.weapon,
		fighterIDs:    idgen.NewSequential("fighter"),
		monsterIDs:    idgen.NewSequential("monster"),
		pool:          pool,
		records:       make(map[string]*record),
		monsterKills:  tally{},
		fighterDeaths: tally{},
	}

	t.resolver, err = combat.NewResolver(&combat.Config{
		Roller:    t.roller,
		EventBus:  t.bus,
		XPAward:   t.award,
		MaxRounds: t.opts.MaxRounds,
	})
	if err != nil {
		return nil, err
	}

	t.subID = t.bus.SubscribeFunc(combat.EventCombatantSlain, 0, t.onSlain)
	return t, nil
}

func (t *tournament) close() {
	if t.subID != "" {
		_ = t.bus.Unsubscribe(t.subID)
	}
}

func (t *tournament) run(ctx context.Context) (*Report, error) {
	if _, err := t.recruit(t.opts.Fighters, 1); err != nil {
		return nil, err
	}

	for year := 1; year <= t.opts.Years; year++ {
		t.year = year
		t.yearKills = 0
		stats := YearStats{Year: year}

		for card := 1; card <= t.opts.FightsPerYear; card++ {
			fights, err := t.fightCard(ctx, card)
			if err != nil {
				return nil, errors.Wrapf(err, "year %d fight %d failed", year, card)
			}
			stats.Fights += fights
		}

		if err := t.yearEnd(&stats); err != nil {
			return nil, err
		}
	}

	return t.report(), nil
}

// recruit adds n fresh fighters of the starting configuration who first
// fight in the given year
func (t *tournament) recruit(n, year int) (int, error) {
	for range n {
		id := t.fighterIDs.Generate()
		fighter, err := combatant.NewCharacter(&combatant.CharacterConfig{
			ID:     id,
			Name:   fmt.Sprintf("Fighter %d", t.fighterIDs.Count()),
			Class:  combatant.ClassFighter,
			Level:  t.opts.StartLevel,
			Armor:  t.opts.Armor,
			Weapon: t.weapon,
		}, t.roller)
		if err != nil {
			return 0, errors.Wrap(err, "failed to recruit fighter")
		}
		if err := t.pool.AddMember(fighter); err != nil {
			return 0, err
		}

		rec := &record{fighter: fighter, recruitedYear: year}
		t.records[id] = rec
		t.order = append(t.order, rec)
	}
	return n, nil
}

// fightCard shuffles the living pool, cuts it into sides and fights every
// match on the card. Survivors are healed afterwards; the dead stay down
// until the year-end cull.
func (t *tournament) fightCard(ctx context.Context, card int) (int, error) {
	if err := t.pool.Shuffle(t.roller); err != nil {
		return 0, err
	}

	sides, err := t.sides(card)
	if err != nil {
		return 0, err
	}

	fights := 0
	switch t.opts.Mode {
	case ModeManVsMonster:
		for _, side := range sides {
			opponents, err := t.spawnOpponents(ctx, side)
			if err != nil {
				return fights, err
			}
			if err := t.match(ctx, card, side, opponents); err != nil {
				return fights, err
			}
			fights++
		}
	default:
		for i := 0; i+1 < len(sides); i += 2 {
			if err := t.match(ctx, card, sides[i], sides[i+1]); err != nil {
				return fights, err
			}
			fights++
		}
	}

	t.pool.HealLiving()
	return fights, nil
}

// sides cuts the living pool into consecutive parties of the configured
// size. The last party may be short.
func (t *tournament) sides(card int) ([]*party.Party, error) {
	living := t.pool.Living()
	var sides []*party.Party
	for start := 0; start < len(living); start += t.opts.PartySize {
		end := min(start+t.opts.PartySize, len(living))
		side, err := party.New(fmt.Sprintf("y%d-c%d-s%d", t.year, card, len(sides)+1), living[start:end]...)
		if err != nil {
			return nil, err
		}
		sides = append(sides, side)
	}
	return sides, nil
}

// spawnOpponents picks a monster kind no tougher than the side's average
// level plus one and spawns as many of it as the side has members
func (t *tournament) spawnOpponents(ctx context.Context, side *party.Party) (*party.Party, error) {
	maxHitDice := int(side.AverageLevel()) + 1
	out, err := t.monsters.List(ctx, &monsters.ListInput{MaxHitDice: maxHitDice})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list monsters")
	}
	if len(out.Entries) == 0 {
		return nil, errors.InvalidConfigurationf("no monsters of %d hit dice or fewer", maxHitDice)
	}

	entry := out.Entries[0]
	if len(out.Entries) > 1 {
		pick, err := t.roller.Roll(len(out.Entries))
		if err != nil {
			return nil, errors.Wrap(err, "failed to pick monster")
		}
		entry = out.Entries[pick-1]
	}

	group, err := party.New(entry.Name)
	if err != nil {
		return nil, err
	}
	for range side.Len() {
		m, err := entry.Spawn(t.monsterIDs.Generate(), t.roller)
		if err != nil {
			return nil, err
		}
		if err := group.AddMember(m); err != nil {
			return nil, err
		}
	}
	return group, nil
}

func (t *tournament) match(ctx context.Context, card int, a, b *party.Party) error {
	out, err := t.resolver.Resolve(ctx, &combat.ResolveInput{SideA: a, SideB: b})
	if err != nil {
		return err
	}

	t.totals.Fights++
	for _, side := range []*party.Party{a, b} {
		for _, m := range side.Members() {
			if rec, ok := t.records[m.GetID()]; ok {
				rec.fights++
			}
		}
	}
	if out.Outcome == combat.OutcomeMutualDestruction {
		t.totals.MutualDestruction++
	}

	fightersWon := false
	for _, w := range out.Winners {
		rec, ok := t.records[w.GetID()]
		if !ok {
			continue
		}
		fightersWon = true
		rec.wins++
		t.totals.Wins++
		if t.opts.Reporting.XPAwards && out.XPAward > 0 {
			t.xpAwards = append(t.xpAwards, XPAward{
				Year:      t.year,
				Fight:     card,
				FighterID: rec.fighter.GetID(),
				XP:        out.XPAward,
				Level:     rec.fighter.Level(),
			})
		}
	}
	if fightersWon && t.opts.Mode == ModeManVsMonster {
		xp, treasure := t.monsterExperience(out.Defeated)
		t.totals.MonsterXP += xp * len(out.Winners)
		t.totals.TreasureXP += treasure * len(out.Winners)
	}

	slog.Debug("Arena match resolved",
		"year", t.year,
		"fight", card,
		"side_a", a.String(),
		"side_b", b.String(),
		"outcome", out.Outcome,
		"rounds", out.Rounds,
		"xp_award", out.XPAward,
	)
	return nil
}

// award is the experience each surviving winner gains: a defeated fighter is
// worth its level times XPPerLevel, a defeated monster its experience value
// plus, with treasure on, its treasure
func (t *tournament) award(defeated []combatant.Combatant) int {
	xp, treasure := t.monsterExperience(defeated)
	for _, d := range defeated {
		if d.GetType() == combatant.TypeCharacter {
			xp += d.Level() * t.opts.XPPerLevel
		}
	}
	return xp + treasure
}

func (t *tournament) monsterExperience(defeated []combatant.Combatant) (xp, treasure int) {
	for _, d := range defeated {
		if d.GetType() != combatant.TypeMonster {
			continue
		}
		xp += d.XPValue()
		if t.opts.Treasure {
			treasure += d.TreasureXP()
		}
	}
	return xp, treasure
}

// onSlain tallies deaths published by the resolver
func (t *tournament) onSlain(_ context.Context, e events.Event) error {
	victim, ok := e.Target().(combatant.Combatant)
	if !ok {
		return nil
	}
	slayer, ok := e.Source().(combatant.Combatant)
	if !ok {
		return nil
	}

	if slayer.GetType() == combatant.TypeCharacter {
		t.yearKills++
		if victim.GetType() == combatant.TypeMonster {
			t.monsterKills[victim.Race()]++
		}
	}
	if rec, ok := t.records[victim.GetID()]; ok {
		rec.slainBy = slayer.Name()
		t.fighterDeaths[slayer.Race()]++
	}
	return nil
}

// yearEnd culls the dead, ages the survivors and refills the pool
func (t *tournament) yearEnd(stats *YearStats) error {
	dead := t.pool.BringOutYourDead()
	for _, d := range dead {
		if rec, ok := t.records[d.GetID()]; ok {
			rec.diedYear = t.year
		}
	}
	for _, m := range t.pool.Members() {
		if rec, ok := t.records[m.GetID()]; ok {
			rec.yearsSurvived++
		}
	}

	stats.Deaths = len(dead)
	stats.Survivors = t.pool.NumLiving()
	stats.TotalKills = t.yearKills
	stats.AverageLevel = t.pool.AverageLevel()
	if best, ok := t.pool.HighestLevel(); ok {
		stats.HighestLevel = best.Level()
	}

	if t.opts.ReplaceDead {
		n, err := t.recruit(t.opts.Fighters-t.pool.Len(), t.year+1)
		if err != nil {
			return err
		}
		stats.Recruits = n
	}

	t.years = append(t.years, *stats)

	slog.Info("Arena year ended",
		"year", stats.Year,
		"fights", stats.Fights,
		"deaths", stats.Deaths,
		"survivors", stats.Survivors,
		"recruits", stats.Recruits,
		"average_level", stats.AverageLevel,
	)
	return nil
}

func (t *tournament) report() *Report {
	r := &Report{
		Seed:          t.seed,
		Options:       t.opts,
		Years:         t.years,
		Fighters:      make([]FighterStats, 0, len(t.order)),
		MonsterKills:  t.monsterKills.sorted(),
		FighterDeaths: t.fighterDeaths.sorted(),
		XPAwards:      t.xpAwards,
		Totals:        t.totals,
	}

	for _, rec := range t.order {
		f := rec.fighter
		r.Fighters = append(r.Fighters, FighterStats{
			ID:            f.GetID(),
			Name:          f.Name(),
			Alignment:     f.Alignment().String(),
			Level:         f.Level(),
			XP:            f.XP(),
			HitPoints:     f.HitPoints(),
			MaxHitPoints:  f.MaxHitPoints(),
			ArmorClass:    f.ArmorClass(),
			Fights:        rec.fights,
			Wins:          rec.wins,
			Kills:         f.Kills(),
			YearsSurvived: rec.yearsSurvived,
			RecruitedYear: rec.recruitedYear,
			Alive:         rec.diedYear == 0 && f.IsAlive(),
			DiedYear:      rec.diedYear,
			SlainBy:       rec.slainBy,
		})
	}

	r.Totals.Recruited = len(t.order)
	r.Totals.Living = t.pool.NumLiving()
	r.Totals.Dead = r.Totals.Recruited - r.Totals.Living
	r.Totals.MonsterKills = t.monsterKills.total()
	r.Totals.AverageLevel = t.pool.AverageLevel()
	if best, ok := t.pool.HighestLevel(); ok {
		r.Totals.HighestLevel = best.Level()
		r.Totals.HighestLevelID = best.GetID()
	}
	return r
}
