package combat

import (
	"math"

	"runeclash/internal/condition"
	"runeclash/internal/stats"
	"runeclash/internal/util"
)

const (
	knockbackDistance = 0.5
	defenseFactor     = 0.1
)

// Payload is what one projectile or instant hit carries into the damage pipeline.
type Payload struct {
	Attribute stats.Attribute
	Physical  float64
	Magical   float64

	// Defenseless damage skips guard, knockback, combo and condition rolls.
	Defenseless bool
}

type HitResult struct {
	Blocked     bool
	KnockedBack bool
	Critical    bool
	Combo       int
	Damage      float64
	Healed      float64
	Lifesteal   float64
	Inflicted   []condition.Kind
	Killed      bool
}

// ResolveHit runs one collision through the damage pipeline. att may be nil
// for unattributed damage.
func (b *Battle) ResolveHit(att, def *Combatant, p Payload) HitResult {
	var res HitResult
	if def == nil || !def.Alive {
		return res
	}
	from := condition.NoOrigin
	if att != nil {
		from = att.Slot
	}
	rng := b.Env.Rng

	if p.Attribute == stats.Healing {
		res.Healed = def.Heal(p.Magical, from)
		if att != nil {
			res.Inflicted = b.rollConditions(att, def, true)
		}
		b.settle(def)
		b.emit(Event{T: b.Env.Time, Type: "Heal", Payload: map[string]any{
			"source": idOf(att), "target": def.ID, "amount": round2(res.Healed), "hp": round2(def.HP),
		}})
		return res
	}

	if !p.Defenseless && util.Chance(rng, def.Stats.Guard) {
		res.Blocked = true
		b.Ctx.Effects.SpawnEffect("guard", def.Pos)
		b.emit(Event{T: b.Env.Time, Type: "Guard", Payload: map[string]any{
			"source": idOf(att), "target": def.ID,
		}})
		return res
	}

	if !p.Defenseless && att != nil && util.Chance(rng, att.Stats.Knockback) {
		def.KnockBack(b.Arena, dirTo(att.Pos, def.Pos), knockbackDistance)
		res.KnockedBack = true
	}

	amount := baseDamage(def, p)
	if !p.Defenseless && att != nil {
		res.Combo = att.combo.hit(b.Env.Time)
		forced := att.Stats.ComboCritical > 0 && res.Combo%att.Stats.ComboCritical == 0
		if forced || util.Chance(rng, att.Stats.CritChance) {
			res.Critical = true
			amount *= att.Stats.CritDamage
		}
		amount += att.Stats.ComboDamage * float64(res.Combo)
		res.Inflicted = b.rollConditions(att, def, false)
		b.settle(def)
	}

	dr := b.applyDamage(def, Damage{Amount: amount, From: from, Defenseless: p.Defenseless})
	res.Damage = dr.Dealt
	res.Killed = dr.Killed
	// Lifesteal drains what the hit actually took, not the overkill.
	if !p.Defenseless && att != nil && att.Alive {
		if ls := att.Conditions.Get(condition.Lifesteal); ls.Active {
			res.Lifesteal = att.Heal(dr.Dealt*ls.Magnitude()/100, att.Slot)
		}
	}
	if res.Critical {
		b.Ctx.Effects.SpawnEffect("critical", def.Pos)
	}
	return res
}

// baseDamage converts a payload to raw damage against def's defenses.
func baseDamage(def *Combatant, p Payload) float64 {
	var d float64
	switch p.Attribute {
	case stats.Magical:
		d = p.Magical
		if !p.Defenseless {
			d -= def.Stats.MagicalDefense * defenseFactor
		}
	default:
		d = p.Physical
		if !p.Defenseless {
			d -= def.Stats.PhysicalDefense * defenseFactor
		}
	}
	return math.Max(1, d)
}

// rollConditions rolls every kind att's hits carry. Damaging hits only carry
// negative kinds and healing hits only carry regen.
func (b *Battle) rollConditions(att, def *Combatant, healing bool) []condition.Kind {
	var out []condition.Kind
	inf := att.Stats.Inflict
	for _, k := range condition.Kinds {
		if !condition.Timed(k) || !inf.Enabled(k) {
			continue
		}
		if healing != (k == condition.Regen) || (!healing && !condition.Negative(k)) {
			continue
		}
		if !condition.Stackable(k) && def.Conditions.Active(k) {
			continue
		}
		chance := inf.Chance
		if condition.Negative(k) {
			chance = condition.EffectiveChance(chance, def.Stats.ResistCondition, def.Stats.GuardAgainst(k))
		}
		if !util.Chance(b.Env.Rng, chance) {
			continue
		}
		if def.Inflict(k, inf.AmountOf(k), inf.DurationOf(k), att.Slot) {
			out = append(out, k)
			b.emit(Event{T: b.Env.Time, Type: "Inflict", Payload: map[string]any{
				"source": att.ID, "target": def.ID, "kind": k.String(),
			}})
		}
	}
	return out
}

// applyDamage is the single path HP goes down through during a battle.
func (b *Battle) applyDamage(def *Combatant, d Damage) DamageResult {
	r := def.TakeDamage(d)
	if r.Dealt <= 0 {
		return r
	}
	if src := b.Roster.Member(d.From); src != nil {
		b.Ctx.Stats.RecordDamage(src.Slot, r.Dealt)
		b.damageBy[src.ID] += r.Dealt
	}
	b.emit(Event{T: b.Env.Time, Type: "Hit", Payload: map[string]any{
		"source": idOf(b.Roster.Member(d.From)), "target": def.ID,
		"dmg": round2(r.Dealt), "hp": round2(def.HP), "defenseless": d.Defenseless,
	}})
	if r.Killed {
		b.kill(def, d.From)
	}
	return r
}

func idOf(c *Combatant) string {
	if c == nil {
		return ""
	}
	return c.ID
}
