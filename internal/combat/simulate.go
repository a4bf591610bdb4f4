package combat

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"runeclash/internal/condition"
	"runeclash/internal/gear"
)

type Env struct {
	Time  float64
	Delta float64
	Rng   *rand.Rand
}

type SimResult struct {
	Win      bool               `json:"win"`
	Duration float64            `json:"duration"`
	Events   []Event            `json:"events,omitempty"`
	DamageBy map[string]float64 `json:"damage_by,omitempty"`
	Kills    map[string]int     `json:"kills,omitempty"`
	Loot     Loot               `json:"loot"`
	Meta     SimMeta            `json:"meta"`
}

type SimMeta struct {
	Scenario   string             `json:"scenario,omitempty"`
	Combatants []SimCombatantMeta `json:"combatants"`
	Notes      []string           `json:"notes,omitempty"`
}

type SimCombatantMeta struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Side  string  `json:"side"`
	Level int     `json:"level"`
	MaxHP float64 `json:"max_hp"`
	HP    float64 `json:"hp"`
	Alive bool    `json:"alive"`
}

// Battle drives one fight. Every system advances from Step on a fixed delta.
type Battle struct {
	Env     *Env
	Ctx     *Context
	Arena   *Arena
	Roster  *Roster
	Tuning  Tuning
	Storage gear.Storage
	Meta    SimMeta

	projectiles    []*Projectile
	nextProjectile int
	record         bool
	events         []Event
	damageBy       map[string]float64
	kills          map[string]int
	loot           Loot
	err            error
}

func NewBattle(env *Env, ctx *Context, arena *Arena, tuning Tuning, record bool) *Battle {
	if ctx == nil {
		ctx = &Context{}
	}
	ctx.fill()
	if env.Delta <= 0 {
		env.Delta = 0.05
	}
	return &Battle{
		Env:      env,
		Ctx:      ctx,
		Arena:    arena,
		Roster:   NewRoster(),
		Tuning:   tuning,
		record:   record,
		damageBy: map[string]float64{},
		kills:    map[string]int{},
	}
}

func (b *Battle) emit(ev Event) {
	if b.record {
		b.events = append(b.events, ev)
	}
}

func (b *Battle) logLine(source, id, format string, args ...any) {
	if !b.record {
		return
	}
	payload := map[string]any{"text": fmt.Sprintf(format, args...)}
	if source != "" {
		payload["source"] = source
	}
	if id != "" {
		payload["id"] = id
	}
	b.emit(Event{T: b.Env.Time, Type: "LogLine", Payload: payload})
}

// fail records the first data-integrity error; Step returns it from then on.
func (b *Battle) fail(err error) {
	if err == nil || b.err != nil {
		return
	}
	b.err = err
	b.Ctx.Logger.Error("battle aborted", "t", round2(b.Env.Time), "err", err)
}

func (b *Battle) settle(c *Combatant) {
	b.fail(c.settle(b.Ctx))
}

func (b *Battle) Projectiles() []*Projectile { return b.projectiles }

// Add computes c's stats and places it in the roster.
func (b *Battle) Add(c *Combatant) error {
	c.move = NewController(b.Tuning)
	c.fire = NewFireControl()
	if err := c.Refresh(b.Ctx); err != nil {
		return err
	}
	c.Pos = b.Arena.Clamp(c.Pos, unitRadius)
	b.Roster.Add(c)
	b.emit(Event{T: b.Env.Time, Type: "Spawn", Payload: map[string]any{
		"id": c.ID, "side": c.Side.String(), "at": posPayload(c.Pos),
		"hp": round2(c.HP), "max_hp": round2(c.Stats.MaxHP), "level": c.Stats.Level,
	}})
	b.logLine(c.Side.String(), c.ID, "%s joins: Lv %d, HP %.0f", c.Name, c.Stats.Level, c.Stats.MaxHP)
	return nil
}

// Step advances the battle by one delta: conditions, recomputes, auras,
// movement, fire control, projectiles.
func (b *Battle) Step() error {
	if b.err != nil {
		return b.err
	}
	dt := b.Env.Delta
	members := b.Roster.All()

	for _, c := range members {
		if c.Alive {
			b.tickConditions(c, dt)
		}
	}
	for _, c := range members {
		if c.Alive {
			b.settle(c)
		}
	}
	for _, c := range members {
		if c.Alive && c.aura != nil {
			c.aura.pulse(b, c)
		}
	}
	for _, c := range members {
		if c.Alive && c.Active {
			c.move.Update(b, c)
		}
	}
	for _, c := range members {
		if c.Alive && c.Active {
			c.fire.Update(b, c)
		}
	}
	for _, p := range b.projectiles {
		p.step(b)
	}
	b.reap()
	b.Env.Time += dt
	return b.err
}

func (b *Battle) tickConditions(c *Combatant, dt float64) {
	for _, o := range c.Conditions.Advance(dt) {
		if !c.Alive {
			return
		}
		switch {
		case o.Damage > 0:
			b.applyDamage(c, Damage{Amount: o.Damage, From: o.Origin, Defenseless: true})
		case o.HealPercent > 0:
			c.Heal(c.Stats.MaxHP/100*o.HealPercent, o.Origin)
		}
		if o.Expired {
			b.emit(Event{T: b.Env.Time, Type: "ConditionEnd", Payload: map[string]any{
				"id": c.ID, "kind": o.Kind.String(),
			}})
		}
	}
}

func (b *Battle) reap() {
	kept := b.projectiles[:0]
	for _, p := range b.projectiles {
		if p.Phase != PhaseDestroyed {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(b.projectiles); i++ {
		b.projectiles[i] = nil
	}
	b.projectiles = kept
}

func (b *Battle) kill(c *Combatant, from int) {
	c.die()
	c.dropAura(b.Ctx)
	b.Ctx.Effects.SpawnEffect("death", c.Pos)
	if !c.Player {
		for _, o := range b.Roster.All() {
			o.Conditions.Forget(c.Slot)
		}
	}
	killer := b.Roster.Member(from)
	if killer != nil {
		b.Ctx.Stats.RecordKill(killer.Slot)
		b.kills[killer.ID]++
	}
	b.emit(Event{T: b.Env.Time, Type: "Death", Payload: map[string]any{
		"id": c.ID, "by": idOf(killer),
	}})
	b.logLine(c.Side.String(), c.ID, "%s is defeated", c.Name)
	b.Ctx.Logger.Info("combatant defeated", "id", c.ID, "by", idOf(killer), "t", round2(b.Env.Time))

	if c.Player || c.EnemyID == 0 {
		return
	}
	e, err := b.Ctx.Catalog.FindEnemy(c.EnemyID)
	if err != nil {
		b.fail(fmt.Errorf("loot for %s: %w", c.ID, err))
		return
	}
	loot := RollLoot(e, b.Ctx.Room, b.Env.Rng)
	b.loot.Add(loot)
	slot := condition.NoOrigin
	if killer != nil {
		slot = killer.Slot
	}
	b.Ctx.Rewards.Grant(slot, loot)
	b.emit(Event{T: b.Env.Time, Type: "Loot", Payload: map[string]any{
		"from": c.ID, "exp": loot.Exp, "gold": loot.Gold, "items": loot.Items,
	}})
	for _, p := range b.Roster.Living(c.Side.Opposing()) {
		if !p.Player || loot.Exp == 0 {
			continue
		}
		before := p.Stats.Level
		p.Exp += loot.Exp
		if err := p.Refresh(b.Ctx); err != nil {
			b.fail(err)
			return
		}
		if p.Stats.Level > before {
			b.logLine(p.Side.String(), p.ID, "%s reaches Lv %d", p.Name, p.Stats.Level)
		}
	}
}

// Revive brings a defeated player back at fraction of its max HP.
func (b *Battle) Revive(c *Combatant, fraction float64) error {
	if c.Alive || !c.Player {
		return nil
	}
	if err := c.Revive(b.Ctx, fraction); err != nil {
		return err
	}
	b.emit(Event{T: b.Env.Time, Type: "Revive", Payload: map[string]any{
		"id": c.ID, "hp": round2(c.HP),
	}})
	b.Ctx.Logger.Info("combatant revived", "id", c.ID, "hp", round2(c.HP))
	return nil
}

// Over reports whether one side has no living combatants.
func (b *Battle) Over() bool {
	return !b.Roster.AnyAlive(Ally) || !b.Roster.AnyAlive(Enemy)
}

// Run steps until one side is wiped out or limit seconds have passed.
func (b *Battle) Run(limit float64) (SimResult, error) {
	for b.Env.Time < limit && !b.Over() {
		if err := b.Step(); err != nil {
			return SimResult{}, err
		}
	}
	return b.Result(), nil
}

func (b *Battle) Result() SimResult {
	meta := b.Meta
	meta.Combatants = meta.Combatants[:0:0]
	for _, c := range b.Roster.All() {
		meta.Combatants = append(meta.Combatants, SimCombatantMeta{
			ID:    c.ID,
			Name:  c.Name,
			Side:  c.Side.String(),
			Level: c.Stats.Level,
			MaxHP: round2(c.Stats.MaxHP),
			HP:    round2(c.HP),
			Alive: c.Alive,
		})
	}
	res := SimResult{
		Win:      b.Roster.AnyAlive(Ally) && !b.Roster.AnyAlive(Enemy),
		Duration: round2(b.Env.Time),
		DamageBy: b.damageBy,
		Kills:    b.kills,
		Loot:     b.loot,
		Meta:     meta,
	}
	if b.record {
		res.Events = b.events
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
