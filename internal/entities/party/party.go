// Package party groups combatants into one side of a fight or a fighter pool.
package party

import (
	"fmt"
	"sort"
	"strings"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Party is an ordered set of combatants. Members keep insertion order and are
// unique by ID. Every query reads live member state; nothing is cached.
type Party struct {
	name    string
	members []combatant.Combatant
	ids     map[string]struct{}
}

// New creates a party holding the given members
func New(name string, members ...combatant.Combatant) (*Party, error) {
	p := &Party{
		name: name,
		ids:  make(map[string]struct{}, len(members)),
	}
	for _, m := range members {
		if err := p.AddMember(m); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Name returns the party's label
func (p *Party) Name() string {
	return p.name
}

// AddMember appends a combatant
func (p *Party) AddMember(member combatant.Combatant) error {
	if member == nil {
		return errors.InvalidArgument("member is required")
	}
	if _, ok := p.ids[member.GetID()]; ok {
		return errors.AlreadyExistsf("%s is already in party %s", member.GetID(), p.name).
			WithMeta("member_id", member.GetID())
	}

	p.ids[member.GetID()] = struct{}{}
	p.members = append(p.members, member)
	return nil
}

// RemoveMember removes a combatant, preserving the order of the rest
func (p *Party) RemoveMember(member combatant.Combatant) error {
	if member == nil {
		return errors.InvalidArgument("member is required")
	}
	id := member.GetID()
	if _, ok := p.ids[id]; !ok {
		return errors.MemberNotFoundf("%s is not in party %s", id, p.name).
			WithMeta("member_id", id)
	}

	for i, m := range p.members {
		if m.GetID() == id {
			p.members = append(p.members[:i], p.members[i+1:]...)
			break
		}
	}
	delete(p.ids, id)
	return nil
}

// Contains reports whether a combatant with the same ID is a member
func (p *Party) Contains(member combatant.Combatant) bool {
	if member == nil {
		return false
	}
	_, ok := p.ids[member.GetID()]
	return ok
}

// Members returns the members in order
func (p *Party) Members() []combatant.Combatant {
	return append([]combatant.Combatant(nil), p.members...)
}

// Len returns the number of members, living or dead
func (p *Party) Len() int {
	return len(p.members)
}

// IsEmpty reports whether the party has no members
func (p *Party) IsEmpty() bool {
	return len(p.members) == 0
}

// Living returns the living members in order
func (p *Party) Living() []combatant.Combatant {
	return p.filter(true)
}

// Dead returns the dead members in order
func (p *Party) Dead() []combatant.Combatant {
	return p.filter(false)
}

func (p *Party) filter(alive bool) []combatant.Combatant {
	var out []combatant.Combatant
	for _, m := range p.members {
		if m.IsAlive() == alive {
			out = append(out, m)
		}
	}
	return out
}

// NumLiving counts members with hit points above zero
func (p *Party) NumLiving() int {
	n := 0
	for _, m := range p.members {
		if m.IsAlive() {
			n++
		}
	}
	return n
}

// NumDead counts members with zero or fewer hit points
func (p *Party) NumDead() int {
	return len(p.members) - p.NumLiving()
}

// AnyAlive reports whether at least one member lives
func (p *Party) AnyAlive() bool {
	for _, m := range p.members {
		if m.IsAlive() {
			return true
		}
	}
	return false
}

// AverageLevel is the mean level of all members, 0 for an empty party
func (p *Party) AverageLevel() float64 {
	if len(p.members) == 0 {
		return 0
	}
	total := 0
	for _, m := range p.members {
		total += m.Level()
	}
	return float64(total) / float64(len(p.members))
}

// TotalHP sums the current hit points of living members
func (p *Party) TotalHP() int {
	total := 0
	for _, m := range p.members {
		if m.IsAlive() {
			total += m.HitPoints()
		}
	}
	return total
}

// TotalMaxHP sums the maximum hit points of all members
func (p *Party) TotalMaxHP() int {
	total := 0
	for _, m := range p.members {
		total += m.MaxHitPoints()
	}
	return total
}

// HealAll restores every member to full hit points, the dead included
func (p *Party) HealAll() {
	for _, m := range p.members {
		m.HealFully()
	}
}

// HealLiving restores the living to full hit points and leaves the dead
// where they fell
func (p *Party) HealLiving() {
	for _, m := range p.members {
		if m.IsAlive() {
			m.HealFully()
		}
	}
}

// BringOutYourDead removes and returns the dead, in order. Afterwards the
// party holds only living members.
func (p *Party) BringOutYourDead() []combatant.Combatant {
	var dead []combatant.Combatant
	living := p.members[:0]
	for _, m := range p.members {
		if m.IsAlive() {
			living = append(living, m)
			continue
		}
		dead = append(dead, m)
		delete(p.ids, m.GetID())
	}
	clear(p.members[len(living):])
	p.members = living
	return dead
}

// Shuffle reorders the members uniformly at random (Fisher-Yates)
func (p *Party) Shuffle(roller rpgdice.Roller) error {
	for i := len(p.members) - 1; i > 0; i-- {
		roll, err := roller.Roll(i + 1)
		if err != nil {
			return errors.Wrap(err, "failed to shuffle party")
		}
		j := roll - 1
		p.members[i], p.members[j] = p.members[j], p.members[i]
	}
	return nil
}

// RandomLiving picks a living member uniformly at random
func (p *Party) RandomLiving(roller rpgdice.Roller) (combatant.Combatant, error) {
	living := p.Living()
	if len(living) == 0 {
		return nil, errors.MemberNotFoundf("party %s has no living members", p.name)
	}
	roll, err := roller.Roll(len(living))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick a living member")
	}
	return living[roll-1], nil
}

// HighestLevel returns the highest-level member, earliest on ties
func (p *Party) HighestLevel() (combatant.Combatant, bool) {
	var best combatant.Combatant
	for _, m := range p.members {
		if best == nil || m.Level() > best.Level() {
			best = m
		}
	}
	return best, best != nil
}

// SortByLevel orders members from highest to lowest level, keeping insertion
// order among equals
func (p *Party) SortByLevel() {
	sort.SliceStable(p.members, func(i, j int) bool {
		return p.members[i].Level() > p.members[j].Level()
	})
}

func (p *Party) String() string {
	names := make([]string, len(p.members))
	for i, m := range p.members {
		names[i] = m.Name()
	}
	return fmt.Sprintf("%s [%s]", p.name, strings.Join(names, ", "))
}
