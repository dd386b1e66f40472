// Package combat resolves fights between two sides of combatants.
//
// An Encounter is the round-based state machine; the Resolver drives one to
// a terminal state and settles kills and experience for the winners.
package combat

import (
	"context"
	"log/slog"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/entities/party"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// DefaultMaxRounds bounds a single fight. Regeneration can out-heal damage,
// so a fight that runs this long is treated as a defect.
const DefaultMaxRounds = 1000

// Config holds the dependencies for the resolver
type Config struct {
	Roller rpgdice.Roller
	// EventBus is optional; attacks and deaths are published when set
	EventBus events.EventBus
	// XPAward defaults to DefaultXPAward
	XPAward XPAwardFunc
	// MaxRounds defaults to DefaultMaxRounds
	MaxRounds int
	// RecordTrace keeps a RoundTrace for every round
	RecordTrace bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewConfigValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.MaxRounds < 0 {
		vb.Field("MaxRounds", "must not be negative")
	}

	return vb.Build()
}

// Resolver fights encounters to completion
type Resolver struct {
	roller      rpgdice.Roller
	bus         events.EventBus
	xpAward     XPAwardFunc
	maxRounds   int
	recordTrace bool
}

// NewResolver creates a resolver with the provided dependencies
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidConfiguration("resolver config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Resolver{
		roller:      cfg.Roller,
		bus:         cfg.EventBus,
		xpAward:     cfg.XPAward,
		maxRounds:   cfg.MaxRounds,
		recordTrace: cfg.RecordTrace,
	}
	if r.xpAward == nil {
		r.xpAward = DefaultXPAward
	}
	if r.maxRounds == 0 {
		r.maxRounds = DefaultMaxRounds
	}
	return r, nil
}

// ResolveInput names the two sides to fight
type ResolveInput struct {
	SideA *party.Party
	SideB *party.Party
}

// ResolveOutput is the settled result of a fight
type ResolveOutput struct {
	Outcome Outcome
	Rounds  int
	// Winners are the surviving members of the victorious side
	Winners []combatant.Combatant
	// Defeated are the members of the losing side that entered the fight alive
	Defeated []combatant.Combatant
	// XPAward is the experience granted to each winner
	XPAward int
	Trace   []RoundTrace
}

// Resolve fights until one side has no living members. Surviving winners
// each gain one kill per defeated opponent and the configured experience.
func (r *Resolver) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	enc, err := NewEncounter(&EncounterConfig{
		SideA:    input.SideA,
		SideB:    input.SideB,
		Roller:   r.roller,
		EventBus: r.bus,
	})
	if err != nil {
		return nil, err
	}

	entered := map[Side][]combatant.Combatant{
		SideA: input.SideA.Living(),
		SideB: input.SideB.Living(),
	}

	output := &ResolveOutput{}
	for !enc.Outcome().IsTerminal() {
		if enc.Round() >= r.maxRounds {
			return nil, errors.InvalidCombatStatef("fight did not end within %d rounds", r.maxRounds).
				WithMeta("side_a", input.SideA.Name()).
				WithMeta("side_b", input.SideB.Name())
		}

		trace, err := enc.Step(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fight round %d", enc.Round()+1)
		}
		if r.recordTrace {
			output.Trace = append(output.Trace, *trace)
		}
	}

	output.Outcome = enc.Outcome()
	output.Rounds = enc.Round()

	var winner Side
	switch output.Outcome {
	case OutcomeSideAVictorious:
		winner = SideA
	case OutcomeSideBVictorious:
		winner = SideB
	default:
		slog.Debug("Fight ended in mutual destruction",
			"side_a", input.SideA.Name(),
			"side_b", input.SideB.Name(),
			"rounds", output.Rounds,
		)
		return output, nil
	}

	output.Winners = enc.Side(winner).Living()
	output.Defeated = entered[winner.Opponent()]
	output.XPAward = r.xpAward(output.Defeated)

	for _, w := range output.Winners {
		w.AddKills(len(output.Defeated))
		if err := w.AwardXP(output.XPAward, r.roller); err != nil {
			return nil, errors.Wrapf(err, "failed to award experience to %s", w.GetID())
		}
	}

	slog.Debug("Fight resolved",
		"outcome", output.Outcome,
		"rounds", output.Rounds,
		"winners", len(output.Winners),
		"defeated", len(output.Defeated),
		"xp_award", output.XPAward,
	)

	return output, nil
}

// Duel fights two single combatants against each other
func (r *Resolver) Duel(ctx context.Context, a, b combatant.Combatant) (*ResolveOutput, error) {
	if a == nil || b == nil {
		return nil, errors.InvalidCombatState("a duel needs two combatants")
	}
	sideA, err := party.New(a.GetID(), a)
	if err != nil {
		return nil, err
	}
	sideB, err := party.New(b.GetID(), b)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, &ResolveInput{SideA: sideA, SideB: sideB})
}
