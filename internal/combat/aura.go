package combat

import (
	"runeclash/internal/catalog"
	"runeclash/internal/condition"
	"runeclash/internal/stats"
)

const (
	auraPulse      = condition.TickInterval
	auraRadius     = 1.0
	auraRadiusStep = 0.5
	auraDamageStep = 0.2
	auraHold       = 2.0
)

// Aura is the area effect a combatant radiates, one level per aura rune kind.
type Aura struct {
	Attack int
	Slow   int
	Regen  int
	next   float64
}

func (a *Aura) empty() bool { return a.Attack == 0 && a.Slow == 0 && a.Regen == 0 }

// Level is the highest level among the aura kinds; it sizes the visual.
func (a *Aura) Level() int { return max(a.Attack, a.Slow, a.Regen) }

// Radius is the reach of an aura of the given level.
func Radius(level int) float64 { return auraRadius + auraRadiusStep*float64(level) }

func auraOf(b stats.Behaviors) Aura {
	return Aura{
		Attack: b.Level(catalog.EffectAreaAttack),
		Slow:   b.Level(catalog.EffectAreaSlow),
		Regen:  b.Level(catalog.EffectRegenAura),
	}
}

// syncAura creates, resizes or drops c's aura to match its behaviors.
// The dead carry no aura.
func (c *Combatant) syncAura(ctx *Context) {
	var want Aura
	if c.Alive {
		want = auraOf(c.Stats.Behaviors)
	}
	switch {
	case want.empty():
		c.dropAura(ctx)
	case c.aura == nil:
		c.aura = &want
		ctx.Effects.AuraChanged(c, want.Level(), Radius(want.Level()))
		ctx.Logger.Info("aura spawned", "combatant", c.ID,
			"attack", want.Attack, "slow", want.Slow, "regen", want.Regen)
	default:
		resized := want.Level() != c.aura.Level()
		c.aura.Attack, c.aura.Slow, c.aura.Regen = want.Attack, want.Slow, want.Regen
		if resized {
			ctx.Effects.AuraChanged(c, want.Level(), Radius(want.Level()))
		}
	}
}

func (c *Combatant) dropAura(ctx *Context) {
	if c.aura == nil {
		return
	}
	c.aura = nil
	ctx.Effects.AuraRemoved(c)
	ctx.Logger.Info("aura removed", "combatant", c.ID)
}

// pulse applies every aura kind c carries on the condition cadence.
func (a *Aura) pulse(b *Battle, c *Combatant) {
	now := b.Env.Time
	if now < a.next {
		return
	}
	a.next = now + auraPulse

	if a.Attack > 0 {
		dmg := auraDamageStep * float64(a.Attack) * c.Stats.PhysicalAttack
		for _, o := range within(b.Roster.Living(c.Side.Opposing()), c, Radius(a.Attack)) {
			b.ResolveHit(c, o, Payload{Attribute: stats.Physical, Physical: dmg, Defenseless: true})
		}
	}
	if a.Slow > 0 {
		for _, o := range within(b.Roster.Living(c.Side.Opposing()), c, Radius(a.Slow)) {
			if o.Inflict(condition.Paralysis, 1, auraHold, c.Slot) {
				b.settle(o)
			}
		}
	}
	if a.Regen > 0 {
		for _, o := range within(b.Roster.Living(c.Side), c, Radius(a.Regen)) {
			if o.Inflict(condition.Regen, float64(a.Regen), auraHold, c.Slot) {
				b.settle(o)
			}
		}
	}
}

func within(cs []*Combatant, from *Combatant, r float64) []*Combatant {
	var out []*Combatant
	for _, o := range cs {
		if from.Pos.Distance(o.Pos) <= r {
			out = append(out, o)
		}
	}
	return out
}
