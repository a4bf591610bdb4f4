package combat

import (
	"github.com/jakecoffman/cp"

	"runeclash/internal/util"
)

// Tuning holds controller constants shared by every combatant of a battle.
type Tuning struct {
	FollowRange      float64
	FollowWeight     float64 // percent of seek in the wander/seek blend
	RetargetInterval float64
	WanderInterval   float64
	WanderRate       float64
	TeleportInterval float64
	TeleportDistance float64
	EscapeSpeed      float64
	EscapeDistance   float64
	SeparationRadius float64
	MoveBackDistance float64
	DelayJitter      float64
	MoveEventEvery   float64
}

func DefaultTuning() Tuning {
	return Tuning{
		FollowRange:      7,
		FollowWeight:     99,
		RetargetInterval: 0.5,
		WanderInterval:   3,
		WanderRate:       0.03,
		TeleportInterval: 10,
		TeleportDistance: 2,
		EscapeSpeed:      1.5,
		EscapeDistance:   1.5,
		SeparationRadius: 0.4,
		MoveBackDistance: 0.3,
		MoveEventEvery:   0.25,
	}
}

const (
	scanStep       = 15.0
	scanLimit      = 90.0
	escapeArrival  = 0.1
	wanderControl  = 2.0
	teleportFactor = 3.0
)

// wanderPath is a cubic bezier toward a random waypoint, re-picked on an interval.
type wanderPath struct {
	p0, p1, p2, p3 cp.Vector
	t              float64
	nextPick       float64
}

func (w *wanderPath) pick(b *Battle, from cp.Vector) {
	rng := b.Env.Rng
	bb := b.Arena.Bounds
	to := vec(util.Between(rng, bb.L, bb.R), util.Between(rng, bb.B, bb.T))
	span := to.Sub(from)
	w.p0 = from
	w.p1 = from.Add(span.Mult(1.0 / 3)).Add(util.InsideUnitCircle(rng).Mult(wanderControl))
	w.p2 = from.Add(span.Mult(2.0 / 3)).Add(util.InsideUnitCircle(rng).Mult(wanderControl))
	w.p3 = to
	w.t = 0
}

func (w *wanderPath) next(b *Battle, c *Combatant, tn Tuning) cp.Vector {
	now := b.Env.Time
	if now >= w.nextPick {
		w.pick(b, c.Pos)
		w.nextPick = now + tn.WanderInterval
	}
	w.t += b.Env.Delta * tn.WanderRate * c.Stats.MoveSpeed
	if w.t > 1 {
		w.t = 1
	}
	return bezier(w.t, w.p0, w.p1, w.p2, w.p3)
}

// Controller is the per-combatant targeting and movement state.
type Controller struct {
	Tuning Tuning
	Stance *Stance

	nextRetarget  float64
	forceRetarget bool
	nextTeleport  float64
	started       bool
	escaping      bool
	escapeTo      cp.Vector
	wander        wanderPath
	lastEvent     float64
	lastEventPos  cp.Vector
}

func NewController(t Tuning) *Controller {
	return &Controller{Tuning: t, Stance: NewStance(), forceRetarget: true}
}

// ForceRetarget makes the next update pick a target regardless of the interval.
func (m *Controller) ForceRetarget() { m.forceRetarget = true }

func (m *Controller) Escaping() bool { return m.escaping }

func (m *Controller) reset() {
	m.escaping = false
	m.forceRetarget = true
	m.Stance.Reset()
}

func (m *Controller) begin(b *Battle, c *Combatant) {
	m.started = true
	m.nextTeleport = b.Env.Time + m.Tuning.TeleportInterval
	m.lastEventPos = c.Pos
	m.wander.pick(b, c.Pos)
	m.wander.nextPick = b.Env.Time + m.Tuning.WanderInterval
}

// Update runs one control step for c.
func (m *Controller) Update(b *Battle, c *Combatant) {
	if !m.started {
		m.begin(b, c)
	}
	if c.Stunned() {
		return
	}
	now := b.Env.Time
	if m.forceRetarget || now >= m.nextRetarget {
		m.retarget(b, c)
	}
	target := b.Roster.Get(c.Target)
	defer m.report(b, c)

	if c.Stats.Stance {
		inRange := target != nil && c.Pos.Distance(target.Pos) <= c.Stats.AttackRange
		if m.Stance.Update(now, inRange, c.Stats.StanceDuration, c.Stats.StanceDelay) {
			b.emit(Event{T: now, Type: "Stance", Payload: map[string]any{
				"id": c.ID, "state": string(m.Stance.State()),
			}})
		}
		if m.Stance.Holding() {
			if target != nil {
				c.Facing = dirTo(c.Pos, target.Pos)
			}
			return
		}
	} else if m.Stance.Holding() {
		m.Stance.Reset()
	}

	if c.Stats.Escape {
		if !m.escaping {
			if threat := nearestThreat(b, c); threat != nil && c.Pos.Distance(threat.Pos) <= threat.Stats.AttackRange {
				m.flee(b, c, threat)
			}
		}
		if m.escaping {
			m.runAway(b, c)
			return
		}
	}

	if c.Stats.Teleport {
		m.teleport(b, c, target)
		return
	}
	m.walk(b, c, target)
}

func (m *Controller) retarget(b *Battle, c *Combatant) {
	prev := c.Target
	c.Target = SelectTarget(c, b.Roster, PolicyFor(c.Stats.Behaviors), m.Tuning.FollowRange, b.Env.Rng)
	m.nextRetarget = b.Env.Time + m.Tuning.RetargetInterval
	m.forceRetarget = false
	if c.Target != prev && c.Target != NoTarget {
		b.emit(Event{T: b.Env.Time, Type: "Target", Payload: map[string]any{
			"id": c.ID, "target": b.Roster.Member(c.Target).ID,
		}})
	}
}

func nearestThreat(b *Battle, c *Combatant) *Combatant {
	var pick *Combatant
	best := 0.0
	for _, o := range b.Roster.Living(c.Side.Opposing()) {
		d := c.Pos.Distance(o.Pos)
		if pick == nil || d < best {
			pick, best = o, d
		}
	}
	return pick
}

// TriggerEscape starts an escape away from threat if c can escape.
func (m *Controller) TriggerEscape(b *Battle, c *Combatant, threat *Combatant) {
	if !c.Stats.Escape || m.escaping || threat == nil {
		return
	}
	m.flee(b, c, threat)
}

func (m *Controller) flee(b *Battle, c *Combatant, threat *Combatant) {
	away := dirTo(threat.Pos, c.Pos)
	if away.LengthSq() == 0 {
		away = rotateDeg(vec(1, 0), b.Env.Rng.Float64()*360)
	}
	dist := threat.Stats.AttackRange * m.Tuning.EscapeDistance
	m.escapeTo = b.Arena.Clamp(c.Pos.Add(away.Mult(dist)), unitRadius)
	m.escaping = true
	b.emit(Event{T: b.Env.Time, Type: "Escape", Payload: map[string]any{
		"id": c.ID, "from": threat.ID, "to": posPayload(m.escapeTo),
	}})
}

func (m *Controller) runAway(b *Battle, c *Combatant) {
	step := c.Stats.MoveSpeed * m.Tuning.EscapeSpeed * b.Env.Delta
	next := moveTowards(c.Pos, m.escapeTo, step)
	if b.Arena.Blocked(c.Pos, next, unitRadius) {
		m.escaping = false
		return
	}
	c.Facing = dirTo(c.Pos, next)
	c.Pos = b.Arena.Clamp(next, unitRadius)
	if c.Pos.Distance(m.escapeTo) < escapeArrival {
		m.escaping = false
		m.wander.pick(b, c.Pos)
	}
}

func (m *Controller) teleport(b *Battle, c *Combatant, target *Combatant) {
	now := b.Env.Time
	if now < m.nextTeleport {
		return
	}
	interval := m.Tuning.TeleportInterval
	for _, o := range b.Roster.Living(c.Side.Opposing()) {
		if c.Pos.Distance(o.Pos) <= c.Stats.AttackRange {
			interval *= teleportFactor
			break
		}
	}
	m.nextTeleport = now + interval
	if target == nil {
		return
	}

	dist := c.Pos.Distance(target.Pos)
	step := min(m.Tuning.TeleportDistance, dist-c.Stats.AttackRange)
	var to cp.Vector
	if step > 0 {
		to = c.Pos.Add(dirTo(c.Pos, target.Pos).Mult(step))
	}
	if step <= 0 || to == c.Pos {
		to = target.Pos.Add(util.InsideUnitCircle(b.Env.Rng).Mult(c.Stats.AttackRange))
	}
	to = b.Arena.Clamp(to, unitRadius)
	if b.Arena.ObstacleAt(to, unitRadius) {
		return
	}
	from := c.Pos
	c.Pos = to
	c.Facing = dirTo(c.Pos, target.Pos)
	b.Ctx.Effects.SpawnEffect("teleport", to)
	b.emit(Event{T: now, Type: "Teleport", Payload: map[string]any{
		"id": c.ID, "from": posPayload(from), "to": posPayload(to),
	}})
	m.lastEventPos = to
}

func (m *Controller) walk(b *Battle, c *Combatant, target *Combatant) {
	seek := c.Pos
	if target != nil {
		d := c.Pos.Distance(target.Pos)
		if d <= m.Tuning.FollowRange && d > c.Stats.AttackRange {
			seek = moveTowards(c.Pos, target.Pos, c.Stats.MoveSpeed*b.Env.Delta)
		}
	}
	w := cp.Clamp(m.Tuning.FollowWeight/100, 0, 1)
	wander := m.wander.next(b, c, m.Tuning)
	desired := wander.Mult(1 - w).Add(seek.Mult(w))

	next := m.avoid(b, c, desired)
	next = next.Add(separation(b, c, m.Tuning.SeparationRadius))
	if b.Arena.Blocked(c.Pos, next, unitRadius) {
		next = c.Pos
	}
	next = b.Arena.Clamp(next, unitRadius)

	if target != nil && c.Pos.Distance(target.Pos) <= c.Stats.AttackRange {
		c.Facing = dirTo(c.Pos, target.Pos)
	} else if d := next.Sub(c.Pos); d.LengthSq() > 0 {
		c.Facing = d.Normalize()
	}
	c.Pos = next
}

// avoid returns desired if the way there is clear, otherwise the clear heading
// closest to it within the scan cone, or the current position.
func (m *Controller) avoid(b *Battle, c *Combatant, desired cp.Vector) cp.Vector {
	delta := desired.Sub(c.Pos)
	if delta.LengthSq() == 0 || !b.Arena.Blocked(c.Pos, desired, unitRadius) {
		return desired
	}
	for a := scanStep; a <= scanLimit; a += scanStep {
		for _, sign := range []float64{1, -1} {
			p := c.Pos.Add(rotateDeg(delta, sign*a))
			if !b.Arena.Blocked(c.Pos, p, unitRadius) {
				return p
			}
		}
	}
	return c.Pos
}

// separation pushes c out of same-side units closer than radius.
func separation(b *Battle, c *Combatant, radius float64) cp.Vector {
	var push cp.Vector
	for _, o := range b.Roster.Living(c.Side) {
		if o == c {
			continue
		}
		d := c.Pos.Distance(o.Pos)
		if d >= radius {
			continue
		}
		away := dirTo(o.Pos, c.Pos)
		if away.LengthSq() == 0 {
			away = rotateDeg(vec(1, 0), float64(c.Slot)*45)
		}
		push = push.Add(away.Mult((radius - d) / 2))
	}
	return push
}

// report emits a throttled Move event when c has changed position.
func (m *Controller) report(b *Battle, c *Combatant) {
	now := b.Env.Time
	if c.Pos == m.lastEventPos || now-m.lastEvent < m.Tuning.MoveEventEvery {
		return
	}
	b.emit(Event{T: now, Type: "Move", Payload: map[string]any{
		"id": c.ID, "from": posPayload(m.lastEventPos), "to": posPayload(c.Pos),
	}})
	m.lastEvent = now
	m.lastEventPos = c.Pos
}
