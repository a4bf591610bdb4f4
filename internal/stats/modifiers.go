package stats

import (
	"runeclash/internal/catalog"
	"runeclash/internal/condition"
)

// modifiers is the running product and sum of every equipped rune tier.
type modifiers struct {
	physicalPower   float64
	magicalPower    float64
	physicalDefense float64
	magicalDefense  float64
	delay           float64
	speed           float64
	moveSpeed       float64
	scale           float64
	distance        float64
	time            float64
	critChance      float64
	critDamage      float64
	knockback       float64
	guard           float64

	addLevel       int
	unitThrough    int
	objectThrough  int
	lifesteal      float64
	comboDamage    float64
	comboCritical  int
	conditionGuard float64
	conditionRate  float64
	poisonTime     float64
	bleedTime      float64
	guards         catalog.ConditionTable
	inflict        catalog.ConditionTable
}

func newModifiers() modifiers {
	return modifiers{
		physicalPower: 1, magicalPower: 1, physicalDefense: 1, magicalDefense: 1,
		delay: 1, speed: 1, moveSpeed: 1, scale: 1, distance: 1, time: 1,
		critChance: 1, critDamage: 1, knockback: 1, guard: 1,
	}
}

func (m *modifiers) apply(t catalog.RuneTier) {
	m.physicalPower *= t.PhysicalPower
	m.magicalPower *= t.MagicalPower
	m.physicalDefense *= t.PhysicalDefense
	m.magicalDefense *= t.MagicalDefense
	m.delay *= t.Delay
	m.speed *= t.Speed
	m.moveSpeed *= t.MoveSpeed
	m.scale *= t.Scale
	m.distance *= t.Distance
	m.time *= t.Time
	m.critChance *= t.CritChance
	m.critDamage *= t.CritDamage
	m.knockback *= t.Knockback
	m.guard *= t.Guard

	m.addLevel += t.AddLevel
	m.unitThrough += t.UnitThrough
	m.objectThrough += t.ObjectThrough
	m.lifesteal += t.Lifesteal
	m.comboDamage += t.ComboDamage
	m.comboCritical += t.ComboCritical
	m.conditionGuard += t.ConditionGuard
	m.conditionRate += t.ConditionRate
	m.poisonTime += t.PoisonTime
	m.bleedTime += t.BleedTime
	m.guards = m.guards.Add(t.Guards)
	m.inflict = m.inflict.Add(t.Inflict)
}

func (m modifiers) applyTo(s *Stats) {
	s.PhysicalAttack *= m.physicalPower
	s.MagicalAttack *= m.magicalPower
	s.PhysicalDefense *= m.physicalDefense
	s.MagicalDefense *= m.magicalDefense
	s.AttackDelay *= m.delay
	s.Speed *= m.speed
	s.MoveSpeed *= m.moveSpeed
	s.AttackSize *= m.scale
	s.AttackDistance *= m.distance
	s.AttackLifetime *= m.time
	s.CritChance *= m.critChance
	s.CritDamage *= m.critDamage
	s.Knockback *= m.knockback
	s.Guard *= m.guard

	s.UnitThrough += m.unitThrough
	s.ObjectThrough += m.objectThrough
	s.Lifesteal += m.lifesteal
	s.ComboDamage += m.comboDamage
	s.ComboCritical += m.comboCritical

	s.StatusGuard = m.guards
	for _, k := range condition.Kinds {
		tableAdd(&s.StatusGuard, k, m.conditionGuard)
	}
	s.Inflict.Chance = m.conditionRate
	s.Inflict.Amount = m.inflict
	for _, k := range condition.Kinds {
		if tableGet(m.inflict, k) > 0 {
			tableSet(&s.Inflict.Duration, k, baseInflictTime)
		}
	}
	if m.inflict.Poison > 0 {
		s.Inflict.Duration.Poison += m.poisonTime
	}
	if m.inflict.Bleed > 0 {
		s.Inflict.Duration.Bleed += m.bleedTime
	}
}

func tablePtr(t *catalog.ConditionTable, k condition.Kind) *float64 {
	switch k {
	case condition.Poison:
		return &t.Poison
	case condition.Bleed:
		return &t.Bleed
	case condition.Stun:
		return &t.Stun
	case condition.Paralysis:
		return &t.Paralysis
	case condition.Weaken:
		return &t.Weaken
	case condition.DefenseDown:
		return &t.DefenseDown
	case condition.Regen:
		return &t.Regen
	}
	return nil
}

func tableGet(t catalog.ConditionTable, k condition.Kind) float64 {
	if p := tablePtr(&t, k); p != nil {
		return *p
	}
	return 0
}

func tableSet(t *catalog.ConditionTable, k condition.Kind, v float64) {
	if p := tablePtr(t, k); p != nil {
		*p = v
	}
}

func tableAdd(t *catalog.ConditionTable, k condition.Kind, v float64) {
	if p := tablePtr(t, k); p != nil {
		*p += v
	}
}

func tableScale(t *catalog.ConditionTable, k condition.Kind, f float64) {
	if p := tablePtr(t, k); p != nil {
		*p *= f
	}
}

// GuardAgainst is the status guard percent for kind k.
func (s Stats) GuardAgainst(k condition.Kind) float64 {
	return tableGet(s.StatusGuard, k)
}
