package combat

import "github.com/KirkDiggler/rpg-arena/internal/entities/combatant"

// Outcome is the state of an encounter
type Outcome string

// Encounter states. Every state but OutcomeOngoing is terminal.
const (
	OutcomeOngoing           Outcome = "ongoing"
	OutcomeSideAVictorious   Outcome = "side_a_victorious"
	OutcomeSideBVictorious   Outcome = "side_b_victorious"
	OutcomeMutualDestruction Outcome = "mutual_destruction"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsTerminal reports whether no more rounds can be fought
func (o Outcome) IsTerminal() bool {
	return o != OutcomeOngoing
}

// Side identifies one of the two opposing parties
type Side string

// Sides
const (
	SideA Side = "a"
	SideB Side = "b"
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// AttackTrace records one resolved attack
type AttackTrace struct {
	Side       Side   `json:"side"`
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
	Attack     string `json:"attack"`
	Roll       int    `json:"roll"`
	Hit        bool   `json:"hit"`
	Damage     int    `json:"damage,omitempty"`
	DefenderHP int    `json:"defender_hp"`
}

// HitPointsTrace is one combatant's hit points at the end of a round
type HitPointsTrace struct {
	ID string `json:"id"`
	HP int    `json:"hp"`
}

// RoundTrace records everything that happened in a round
type RoundTrace struct {
	Round     int              `json:"round"`
	Attacks   []AttackTrace    `json:"attacks"`
	HitPoints []HitPointsTrace `json:"hit_points"`
}

// XPAwardFunc computes the experience granted to each surviving winner
type XPAwardFunc func(defeated []combatant.Combatant) int

// DefaultXPAward sums the experience value of the defeated
func DefaultXPAward(defeated []combatant.Combatant) int {
	total := 0
	for _, d := range defeated {
		total += d.XPValue()
	}
	return total
}
