package combat

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

type Phase int

const (
	PhaseFlying Phase = iota
	PhaseFading
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseFading:
		return "fading"
	case PhaseDestroyed:
		return "destroyed"
	}
	return "flying"
}

type Motion int

const (
	MotionStraight Motion = iota
	MotionHoming
	MotionSpiral
)

const (
	fadeDuration     = 0.1
	homingRamp       = 1.0
	chainRadius      = 10.0
	growthRate       = 0.1
	projectileRadius = 0.15
)

// ProjectileSpec is everything SpawnProjectile needs to launch one shot.
type ProjectileSpec struct {
	Origin cp.Vector
	Dir    cp.Vector
	Owner  int
	Side   Side
	Target int // homing target slot

	Speed       float64
	Lifetime    float64
	MaxDistance float64 // 0 limits by lifetime only
	Radius      float64

	UnitThrough   int
	ObjectThrough int

	Payload Payload
	Motion  Motion
	Shake   float64
	Growth  bool
	Chain   bool
	Trail   bool
}

type Projectile struct {
	ID    int
	Spec  ProjectileSpec
	Pos   cp.Vector
	Dir   cp.Vector
	Phase Phase
	Scale float64

	age        float64
	homingAge  float64
	fade       float64
	spiral     float64
	heading    float64
	target     int
	unitLeft   int
	objectLeft int
	touching   bool
	hits       map[int]bool
}

// SpawnProjectile launches a projectile into the battle and returns its handle.
func (b *Battle) SpawnProjectile(spec ProjectileSpec) *Projectile {
	dir := spec.Dir
	if dir.LengthSq() == 0 {
		dir = vec(1, 0)
	}
	dir = dir.Normalize()
	if spec.Radius <= 0 {
		spec.Radius = projectileRadius
	}
	b.nextProjectile++
	p := &Projectile{
		ID:         b.nextProjectile,
		Spec:       spec,
		Pos:        spec.Origin,
		Dir:        dir,
		Scale:      1,
		heading:    dir.ToAngle(),
		target:     spec.Target,
		unitLeft:   max(spec.UnitThrough, 1),
		objectLeft: max(spec.ObjectThrough, 1),
		hits:       map[int]bool{},
	}
	b.projectiles = append(b.projectiles, p)
	b.emit(Event{T: b.Env.Time, Type: "Projectile", Payload: map[string]any{
		"id": p.ID, "owner": idOf(b.Roster.Member(spec.Owner)),
		"at": posPayload(p.Pos), "dir": posPayload(p.Dir),
	}})
	return p
}

func (p *Projectile) HitCount() int { return len(p.hits) }

func (p *Projectile) radius() float64 { return p.Spec.Radius * p.Scale }

func (p *Projectile) fadeOut() {
	p.Phase = PhaseFading
	p.fade = fadeDuration
}

// step advances p by one tick.
func (p *Projectile) step(b *Battle) {
	dt := b.Env.Delta
	switch p.Phase {
	case PhaseDestroyed:
		return
	case PhaseFading:
		p.fade -= dt
		if p.fade <= 0 {
			p.destroy(b, "faded")
		}
		return
	}
	owner := b.Roster.Member(p.Spec.Owner)
	if owner == nil || !owner.Alive {
		p.destroy(b, "orphaned")
		return
	}

	p.age += dt
	p.homingAge += dt
	from := p.Pos
	p.move(b, dt)
	at, touching := b.Arena.Contact(from, p.Pos, p.radius())
	stop := false
	if touching && !p.touching {
		p.objectLeft--
		stop = p.objectLeft <= 0
	}
	p.touching = touching

	for _, h := range p.sweep(b, from) {
		if stop && h.t > at {
			break
		}
		c := h.unit
		p.hits[c.Slot] = true
		res := b.ResolveHit(owner, c, p.Spec.Payload)
		if !res.Blocked && c.Alive && c.move != nil {
			c.move.TriggerEscape(b, c, owner)
		}
		p.unitLeft--
		if p.unitLeft <= 0 {
			p.Pos = h.at
			p.fadeOut()
			return
		}
		if p.Spec.Chain && !stop {
			p.Pos = h.at
			p.chain(b, c)
			return
		}
	}
	if stop {
		p.Pos = from.Lerp(p.Pos, at)
		p.fadeOut()
		return
	}
	p.expire(b)
}

// expire destroys p once it leaves the arena or outruns its range.
func (p *Projectile) expire(b *Battle) {
	switch {
	case !b.Arena.Contains(p.Pos):
		p.destroy(b, "left_arena")
	case p.Spec.MaxDistance > 0:
		if p.Spec.Origin.Distance(p.Pos) >= p.Spec.MaxDistance {
			p.destroy(b, "distance")
		}
	case p.age >= p.Spec.Lifetime:
		p.destroy(b, "lifetime")
	}
}

type sweepHit struct {
	unit *Combatant
	at   cp.Vector
	t    float64
}

// sweep returns the unhit opposing units touched along from..p.Pos, nearest first.
func (p *Projectile) sweep(b *Battle, from cp.Vector) []sweepHit {
	var out []sweepHit
	reach := p.radius() + unitRadius
	for _, c := range b.Roster.Living(p.Spec.Side.Opposing()) {
		if c.Slot == p.Spec.Owner || p.hits[c.Slot] {
			continue
		}
		at, t := closestOnSegment(c.Pos, from, p.Pos)
		if at.Distance(c.Pos) > reach {
			continue
		}
		out = append(out, sweepHit{unit: c, at: at, t: t})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].t < out[j].t })
	return out
}

func (p *Projectile) move(b *Battle, dt float64) {
	sp := p.Spec.Speed
	if p.Spec.Motion == MotionHoming {
		if t := b.Roster.Get(p.target); t != nil {
			strength := cp.Clamp(p.homingAge/homingRamp, 0, 1)
			if d := p.Dir.Lerp(dirTo(p.Pos, t.Pos), strength); d.LengthSq() > 0 {
				p.Dir = d.Normalize()
			}
		}
	}
	var shake cp.Vector
	if p.Spec.Shake != 0 {
		shake = p.Dir.Perp().Mult(math.Sin(b.Env.Time*sp) * p.Spec.Shake)
	}
	if p.Spec.Motion == MotionSpiral {
		p.spiral += sp * dt
		r := p.spiral * spiralExpansion
		off := cp.ForAngle(p.heading + p.spiral).Mult(r)
		p.Pos = p.Pos.Add(off.Add(shake).Mult(dt))
		if off.LengthSq() > 0 {
			p.Dir = off.Normalize()
		}
	} else {
		p.Pos = p.Pos.Add(p.Dir.Mult(sp).Add(shake).Mult(dt))
	}
	if p.Spec.Growth {
		p.Scale *= 1 + sp*dt*growthRate
	}
}

// chain turns p toward the nearest unhit unit on the victim's side.
func (p *Projectile) chain(b *Battle, victim *Combatant) {
	var next *Combatant
	best := chainRadius
	for _, c := range b.Roster.Living(victim.Side) {
		if c == victim || p.hits[c.Slot] {
			continue
		}
		if d := p.Pos.Distance(c.Pos); d <= best {
			next, best = c, d
		}
	}
	if next == nil {
		return
	}
	p.Dir = dirTo(p.Pos, next.Pos)
	if p.Spec.Motion == MotionHoming {
		p.target = next.Slot
		p.homingAge = 0
	}
}

func (p *Projectile) destroy(b *Battle, reason string) {
	p.Phase = PhaseDestroyed
	b.Ctx.Logger.Debug("projectile expired", "id", p.ID, "reason", reason, "hits", len(p.hits))
}
