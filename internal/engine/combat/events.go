package combat

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Event types published on the bus. The attacker is the event source and the
// defender its target.
const (
	EventAttackHit      = "arena.attack.hit"
	EventAttackMiss     = "arena.attack.miss"
	EventCombatantSlain = "arena.combatant.slain"
)

func publish(ctx context.Context, bus events.EventBus, eventType string, source, target combatant.Combatant) error {
	if bus == nil {
		return nil
	}
	if err := bus.Publish(ctx, events.NewGameEvent(eventType, source, target)); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return nil
}
