package combat

import (
	"math/rand"

	"github.com/jakecoffman/cp"

	"runeclash/internal/stats"
	"runeclash/internal/util"
)

type fireStage int

const (
	fireIdle fireStage = iota
	fireCooldown
)

const (
	maxDelay      = 10.0
	minDelay      = 0.1
	delayOffset   = 3.0
	shotStagger   = 0.05
	restartGap    = 0.1
	swingDuration = 0.2
)

type pendingShot struct {
	at     float64
	origin cp.Vector
	dir    cp.Vector
}

// FireControl is the per-combatant attack loop, driven by the battle tick.
type FireControl struct {
	stage     fireStage
	stageEnd  float64
	lastStart float64
	pending   []pendingShot
	profile   AttackProfile

	swing    stats.WeaponSwing
	swingEnd float64
	aim      cp.Vector
}

func NewFireControl() *FireControl {
	return &FireControl{lastStart: -restartGap}
}

func (f *FireControl) configure(s stats.WeaponSwing) { f.swing = s }

func (f *FireControl) Shooting() bool { return f.stage != fireIdle }

// Swinging reports whether the weapon visual is mid-swing at now.
func (f *FireControl) Swinging(now float64) bool { return now < f.swingEnd }

// Aim is the last heading fired at; zero while idle.
func (f *FireControl) Aim() cp.Vector { return f.aim }

// Stop cancels the loop and any staggered shots. Safe to call repeatedly.
func (f *FireControl) Stop() {
	f.stage = fireIdle
	f.stageEnd = 0
	f.pending = f.pending[:0]
	f.swingEnd = 0
	f.aim = cp.Vector{}
}

// Delay is the wait after a shot for an attack delay stat and profile.
func Delay(attackDelay float64, p AttackProfile, jitter float64, rng *rand.Rand) float64 {
	d := cp.Clamp(maxDelay/(attackDelay*p.Delay+delayOffset), minDelay, maxDelay)
	if jitter > 0 && rng != nil {
		d += util.Between(rng, -jitter/2, jitter/2)
	}
	return max(d, minDelay)
}

func (f *FireControl) Update(b *Battle, c *Combatant) {
	if !c.Alive {
		f.Stop()
		return
	}
	now := b.Env.Time
	if c.Stunned() {
		f.pending = f.pending[:0]
		return
	}
	f.flush(b, c, now)

	target := b.Roster.Get(c.Target)
	enabled := false
	if target != nil {
		if c.Stats.Stance && c.move != nil {
			enabled = c.move.Stance.InStance()
		} else {
			enabled = c.Pos.Distance(target.Pos) <= c.Stats.AttackRange
		}
	}
	if !enabled {
		if f.stage != fireIdle {
			f.Stop()
		}
		return
	}

	switch f.stage {
	case fireIdle:
		if now-f.lastStart < restartGap {
			return
		}
		f.lastStart = now
		f.fire(b, c, target)
	case fireCooldown:
		if now >= f.stageEnd {
			f.fire(b, c, target)
		}
	}
}

func (f *FireControl) fire(b *Battle, c *Combatant, target *Combatant) {
	now := b.Env.Time
	f.profile = profileFor(c.Stats)
	p := f.profile
	f.stage = fireCooldown
	f.stageEnd = now + Delay(c.Stats.AttackDelay, p, b.Tuning.DelayJitter, b.Env.Rng)
	f.swingEnd = now + swingDuration

	origin := c.Pos
	switch p.Origin {
	case OriginRandom:
		origin = c.Pos.Add(util.InsideUnitCircle(b.Env.Rng).Mult(c.Stats.AttackRange))
	case OriginDirect:
		origin = target.Pos.Add(dirTo(target.Pos, c.Pos).Mult(directHitOffset))
	}
	aim := dirTo(origin, target.Pos)
	if aim.LengthSq() == 0 {
		aim = c.Facing
	}
	f.aim = aim
	c.Facing = aim

	b.emit(Event{T: now, Type: "Attack", Payload: map[string]any{
		"id": c.ID, "target": target.ID, "swing": f.swing.Amplitude,
	}})

	if c.Stats.Attribute == stats.Healing {
		b.ResolveHit(c, target, Payload{Attribute: stats.Healing, Magical: c.Stats.MagicalAttack * p.Attack})
	} else {
		for i, d := range directions(p.Pattern, aim) {
			shot := pendingShot{at: now + float64(i)*shotStagger, origin: origin, dir: d}
			if i == 0 {
				f.spawn(b, c, shot)
				continue
			}
			f.pending = append(f.pending, shot)
		}
	}

	if p.Retarget && c.move != nil {
		c.move.ForceRetarget()
	}
	if p.MoveBack {
		c.KnockBack(b.Arena, dirTo(target.Pos, c.Pos), b.Tuning.MoveBackDistance)
	}
}

// flush launches staggered shots that are due.
func (f *FireControl) flush(b *Battle, c *Combatant, now float64) {
	kept := f.pending[:0]
	for _, s := range f.pending {
		if s.at <= now {
			f.spawn(b, c, s)
			continue
		}
		kept = append(kept, s)
	}
	f.pending = kept
}

func (f *FireControl) spawn(b *Battle, c *Combatant, s pendingShot) {
	p := f.profile
	spec := ProjectileSpec{
		Origin:        s.origin,
		Dir:           s.dir,
		Owner:         c.Slot,
		Side:          c.Side,
		Target:        NoTarget,
		Speed:         c.Stats.Speed * p.Speed,
		Lifetime:      p.Lifetime,
		Radius:        projectileRadius * c.Stats.AttackSize,
		UnitThrough:   p.UnitThrough,
		ObjectThrough: p.ObjectThrough,
		Payload: Payload{
			Attribute: c.Stats.Attribute,
			Physical:  c.Stats.PhysicalAttack * p.Attack,
			Magical:   c.Stats.MagicalAttack * p.Attack,
		},
		Motion: p.Motion,
		Shake:  p.Shake,
		Growth: p.Growth,
		Chain:  p.Chain,
		Trail:  p.Trail,
	}
	if c.Stats.Attribute == stats.Physical {
		spec.MaxDistance = c.Stats.AttackDistance * p.Distance
	}
	if p.Motion == MotionHoming {
		spec.Target = c.Target
	}
	b.SpawnProjectile(spec)
}
