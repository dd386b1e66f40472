package combat

import (
	"context"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/dice"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/entities/party"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// To-hit rules, descending armor class: a natural 20 always hits, a natural 1
// always misses, otherwise d20 + hit bonus + defender AC must reach HitTarget.
const (
	HitTarget     = 20
	NaturalHit    = 20
	NaturalMiss   = 1
	MinimumDamage = 1
)

var d20 = dice.Expression{Count: 1, Faces: 20}

// EncounterConfig holds the dependencies for one encounter
type EncounterConfig struct {
	SideA  *party.Party
	SideB  *party.Party
	Roller rpgdice.Roller
	// EventBus is optional
	EventBus events.EventBus
}

// Validate ensures the encounter can start
func (c *EncounterConfig) Validate() error {
	if c.Roller == nil {
		return errors.InvalidArgument("roller is required")
	}
	if c.SideA == nil || c.SideB == nil {
		return errors.InvalidCombatState("both sides are required")
	}
	if c.SideA.NumLiving() == 0 {
		return errors.InvalidCombatStatef("side a (%s) has no living members", c.SideA.Name())
	}
	if c.SideB.NumLiving() == 0 {
		return errors.InvalidCombatStatef("side b (%s) has no living members", c.SideB.Name())
	}
	return nil
}

// Encounter is the round-by-round state machine between two sides. It
// mutates the combatants' hit points in place.
type Encounter struct {
	sides   map[Side]*party.Party
	roller  rpgdice.Roller
	bus     events.EventBus
	round   int
	outcome Outcome
}

// declaredAttack is an attack fixed at the start of a round
type declaredAttack struct {
	side     Side
	attacker combatant.Combatant
	defender combatant.Combatant
	attack   combatant.Attack
}

// NewEncounter starts an encounter in the ongoing state
func NewEncounter(cfg *EncounterConfig) (*Encounter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("encounter config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Encounter{
		sides:   map[Side]*party.Party{SideA: cfg.SideA, SideB: cfg.SideB},
		roller:  cfg.Roller,
		bus:     cfg.EventBus,
		outcome: OutcomeOngoing,
	}, nil
}

// Outcome returns the current state
func (e *Encounter) Outcome() Outcome {
	return e.outcome
}

// Round returns the number of rounds fought
func (e *Encounter) Round() int {
	return e.round
}

// Side returns the party fighting on a side
func (e *Encounter) Side(side Side) *party.Party {
	return e.sides[side]
}

// Step fights one round. Every member living at the start of the round
// declares each attack of its routine against an opponent chosen among those
// living at the start of the round. Declared attacks then resolve in order
// (side A, then side B) and all of them land even if their attacker falls
// during the round. Regeneration applies at round end.
func (e *Encounter) Step(ctx context.Context) (*RoundTrace, error) {
	if e.outcome.IsTerminal() {
		return nil, errors.InvalidCombatStatef("encounter already ended: %s", e.outcome).
			WithMeta("round", e.round)
	}

	declared, err := e.declare()
	if err != nil {
		return nil, err
	}

	e.round++
	trace := &RoundTrace{Round: e.round}

	for _, d := range declared {
		at, err := e.resolve(ctx, d)
		if err != nil {
			return nil, err
		}
		trace.Attacks = append(trace.Attacks, at)
	}

	for _, side := range []Side{SideA, SideB} {
		for _, m := range e.sides[side].Living() {
			if regen := m.SpecialValue(combatant.SpecialRegeneration); regen > 0 {
				m.Heal(regen)
			}
		}
	}

	for _, side := range []Side{SideA, SideB} {
		for _, m := range e.sides[side].Members() {
			trace.HitPoints = append(trace.HitPoints, HitPointsTrace{ID: m.GetID(), HP: m.HitPoints()})
		}
	}

	e.outcome = e.evaluate()
	return trace, nil
}

func (e *Encounter) declare() ([]declaredAttack, error) {
	living := map[Side][]combatant.Combatant{
		SideA: e.sides[SideA].Living(),
		SideB: e.sides[SideB].Living(),
	}
	for _, side := range []Side{SideA, SideB} {
		if len(living[side]) == 0 {
			return nil, errors.InvalidCombatStatef("side %s has no living members", side)
		}
	}

	var declared []declaredAttack
	for _, side := range []Side{SideA, SideB} {
		targets := living[side.Opponent()]
		for _, attacker := range living[side] {
			for _, attack := range attacker.Attacks() {
				target, err := e.pickTarget(targets)
				if err != nil {
					return nil, err
				}
				declared = append(declared, declaredAttack{
					side:     side,
					attacker: attacker,
					defender: target,
					attack:   attack,
				})
			}
		}
	}
	return declared, nil
}

func (e *Encounter) pickTarget(targets []combatant.Combatant) (combatant.Combatant, error) {
	if len(targets) == 1 {
		return targets[0], nil
	}
	roll, err := e.roller.Roll(len(targets))
	if err != nil {
		return nil, errors.Wrap(err, "failed to choose target")
	}
	return targets[roll-1], nil
}

func (e *Encounter) resolve(ctx context.Context, d declaredAttack) (AttackTrace, error) {
	at := AttackTrace{
		Side:       d.side,
		AttackerID: d.attacker.GetID(),
		DefenderID: d.defender.GetID(),
		Attack:     d.attack.Name,
	}

	roll, err := d20.Evaluate(e.roller)
	if err != nil {
		return at, errors.Wrap(err, "failed to roll to hit")
	}
	at.Roll = roll
	at.Hit = Hits(roll, d.attack.HitBonus, d.defender.ArmorClass())

	if !at.Hit {
		at.DefenderHP = d.defender.HitPoints()
		return at, publish(ctx, e.bus, EventAttackMiss, d.attacker, d.defender)
	}

	damage, err := d.attack.Damage.Evaluate(e.roller)
	if err != nil {
		return at, errors.Wrapf(err, "failed to roll damage for %s", d.attack.Name)
	}
	damage = max(damage-d.defender.SpecialValue(combatant.SpecialDamageReduction), MinimumDamage)

	wasAlive := d.defender.IsAlive()
	d.defender.TakeDamage(damage)
	at.Damage = damage
	at.DefenderHP = d.defender.HitPoints()

	if err := publish(ctx, e.bus, EventAttackHit, d.attacker, d.defender); err != nil {
		return at, err
	}
	if wasAlive && !d.defender.IsAlive() {
		if err := publish(ctx, e.bus, EventCombatantSlain, d.attacker, d.defender); err != nil {
			return at, err
		}
	}
	return at, nil
}

func (e *Encounter) evaluate() Outcome {
	aAlive := e.sides[SideA].AnyAlive()
	bAlive := e.sides[SideB].AnyAlive()

	switch {
	case aAlive && bAlive:
		return OutcomeOngoing
	case aAlive:
		return OutcomeSideAVictorious
	case bAlive:
		return OutcomeSideBVictorious
	default:
		return OutcomeMutualDestruction
	}
}

// Hits applies the to-hit rule to a natural d20 roll
func Hits(roll, hitBonus, defenderAC int) bool {
	switch roll {
	case NaturalHit:
		return true
	case NaturalMiss:
		return false
	default:
		return roll+hitBonus+defenderAC >= HitTarget
	}
}
