package combat

import (
	"math"
	"math/rand"

	"runeclash/internal/catalog"
	"runeclash/internal/stats"
)

type Policy int

const (
	PolicyNearest Policy = iota
	PolicyAnomaly
	PolicyLowHP
	PolicyRandom
)

func (p Policy) String() string {
	switch p {
	case PolicyAnomaly:
		return "anomaly"
	case PolicyLowHP:
		return "low_hp"
	case PolicyRandom:
		return "random"
	}
	return "nearest"
}

// PolicyFor picks the targeting policy from rune behaviors in fixed precedence.
func PolicyFor(b stats.Behaviors) Policy {
	switch {
	case b.Has(catalog.EffectPrioritizeAnomaly):
		return PolicyAnomaly
	case b.Has(catalog.EffectPrioritizeLowHP):
		return PolicyLowHP
	case b.Has(catalog.EffectRandomRetarget):
		return PolicyRandom
	}
	return PolicyNearest
}

// targetScore weights distance by how easy c is to aim at. Lower wins.
func targetScore(dist float64, c *Combatant) float64 {
	return dist * math.Max(0, 1+c.Stats.TargetedFactor/50)
}

func candidates(self *Combatant, r *Roster) []*Combatant {
	side := self.Side.Opposing()
	if self.Stats.TargetSameSide {
		side = self.Side
	}
	var out []*Combatant
	for _, c := range r.Living(side) {
		if c != self {
			out = append(out, c)
		}
	}
	return out
}

// SelectTarget returns the roster slot self should aim at, or NoTarget.
func SelectTarget(self *Combatant, r *Roster, p Policy, followRange float64, rng *rand.Rand) int {
	cs := candidates(self, r)
	if len(cs) == 0 {
		return NoTarget
	}
	ally := self.Stats.TargetSameSide
	within := func(limit float64) []*Combatant {
		var out []*Combatant
		for _, c := range cs {
			if self.Pos.Distance(c.Pos) <= limit {
				out = append(out, c)
			}
		}
		return out
	}

	switch p {
	case PolicyAnomaly:
		var marked []*Combatant
		for _, c := range within(followRange) {
			if c.Conditions.Flags().AnyNegative() {
				marked = append(marked, c)
			}
		}
		if len(marked) > 0 {
			return best(self, marked, !ally)
		}
	case PolicyLowHP:
		near := within(followRange)
		if len(near) > 0 {
			pick := near[0]
			for _, c := range near[1:] {
				if c.HPRatio() < pick.HPRatio() {
					pick = c
				}
			}
			return pick.Slot
		}
	case PolicyRandom:
		pool := within(self.Stats.AttackRange)
		if len(pool) == 0 {
			pool = within(followRange)
		}
		if len(pool) > 0 {
			return pool[rng.Intn(len(pool))].Slot
		}
	}
	return best(self, cs, !ally)
}

// best is the nearest candidate, weighted by targetScore when weighted is set.
func best(self *Combatant, cs []*Combatant, weighted bool) int {
	pick, bestScore := NoTarget, math.Inf(1)
	for _, c := range cs {
		s := self.Pos.Distance(c.Pos)
		if weighted {
			s = targetScore(s, c)
		}
		if s < bestScore {
			pick, bestScore = c.Slot, s
		}
	}
	return pick
}
