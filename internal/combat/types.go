package combat

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"runeclash/internal/catalog"
	"runeclash/internal/condition"
	"runeclash/internal/gear"
	"runeclash/internal/stats"
)

type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Side int

const (
	Ally Side = iota
	Enemy
)

func (s Side) String() string {
	if s == Enemy {
		return "enemy"
	}
	return "ally"
}

func (s Side) Opposing() Side {
	if s == Enemy {
		return Ally
	}
	return Enemy
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "", "ally":
		return Ally, nil
	case "enemy":
		return Enemy, nil
	}
	return Ally, fmt.Errorf("unknown side %q", s)
}

const (
	NoTarget = -1

	// unitRadius is the contact radius of every combatant.
	unitRadius  = 0.25
	comboWindow = 1.0
)

// Damage is one HP decrement routed through TakeDamage.
type Damage struct {
	Amount      float64
	From        int
	Defenseless bool
}

type DamageResult struct {
	Dealt  float64
	Killed bool
}

type combo struct {
	count int
	last  float64
}

// hit advances the combo at now; it resets after comboWindow without hits.
func (c *combo) hit(now float64) int {
	if c.count == 0 || now-c.last > comboWindow {
		c.count = 0
	}
	c.count++
	c.last = now
	return c.count
}

// Combatant is one unit in a battle. Stats and Conditions are only changed
// through its own methods.
type Combatant struct {
	ID      string
	Name    string
	Slot    int
	Side    Side
	Player  bool
	EnemyID int

	Job         int
	Exp         int
	BonusLevels int
	Loadout     gear.Loadout

	Stats      stats.Stats
	Conditions condition.Set

	HP     float64
	Pos    cp.Vector
	Facing cp.Vector
	Target int
	Alive  bool
	Active bool

	combo combo
	move  *Controller
	fire  *FireControl
	aura  *Aura
	ready bool
}

func NewCombatant(id, name string, side Side) *Combatant {
	return &Combatant{
		ID:     id,
		Name:   name,
		Side:   side,
		Slot:   -1,
		Target: NoTarget,
		Alive:  true,
		Active: true,
		Facing: vec(1, 0),
	}
}

func (c *Combatant) inputs(room catalog.RoomModifiers) stats.Inputs {
	return stats.Inputs{
		Job:         c.Job,
		Exp:         c.Exp,
		BonusLevels: c.BonusLevels,
		Loadout:     c.Loadout,
		Conditions:  c.Conditions.Flags(),
		Room:        room,
		Monster:     c.Side == Enemy && !c.Player,
	}
}

// Refresh recomputes the stat block and syncs everything derived from it.
func (c *Combatant) Refresh(ctx *Context) error {
	s, err := stats.Recompute(ctx.Catalog, c.inputs(ctx.Room))
	if err != nil {
		return fmt.Errorf("combatant %s: %w", c.ID, err)
	}
	c.Stats = s
	if !c.ready {
		c.HP = s.MaxHP
		c.ready = true
	} else if c.HP > s.MaxHP {
		c.HP = s.MaxHP
	}
	c.Conditions.SetPassive(condition.Lifesteal, s.Lifesteal)
	c.syncAura(ctx)
	if c.fire != nil {
		c.fire.configure(s.Swing)
	}
	ctx.Observer.EquipmentChanged(c)
	return nil
}

// settle recomputes once if the condition set toggled since the last check.
func (c *Combatant) settle(ctx *Context) error {
	if !c.Conditions.TakeDirty() {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Combatant) HPRatio() float64 {
	if c.Stats.MaxHP <= 0 {
		return 0
	}
	return c.HP / c.Stats.MaxHP
}

func (c *Combatant) Stunned() bool { return c.Conditions.Active(condition.Stun) }

// TakeDamage is the only way HP goes down. HP under 1 is death.
func (c *Combatant) TakeDamage(d Damage) DamageResult {
	if !c.Alive || d.Amount <= 0 {
		return DamageResult{}
	}
	dealt := d.Amount
	if dealt > c.HP {
		dealt = c.HP
	}
	c.HP -= d.Amount
	if c.HP < 1 {
		c.HP = 0
		c.Alive = false
		return DamageResult{Dealt: dealt, Killed: true}
	}
	return DamageResult{Dealt: dealt}
}

// Heal restores HP up to MaxHP and returns the amount restored. from is the
// healer's slot.
func (c *Combatant) Heal(amount float64, from int) float64 {
	if !c.Alive || amount <= 0 {
		return 0
	}
	before := c.HP
	c.HP += amount
	if c.HP > c.Stats.MaxHP {
		c.HP = c.Stats.MaxHP
	}
	return c.HP - before
}

func (c *Combatant) Inflict(k condition.Kind, amount, duration float64, origin int) bool {
	if !c.Alive {
		return false
	}
	return c.Conditions.Inflict(k, amount, duration, origin)
}

// KnockBack displaces the combatant by dist along dir, kept inside the arena.
func (c *Combatant) KnockBack(a *Arena, dir cp.Vector, dist float64) {
	if dir.LengthSq() == 0 || dist <= 0 {
		return
	}
	to := c.Pos.Add(dir.Normalize().Mult(dist))
	if a != nil {
		if a.Blocked(c.Pos, to, unitRadius) {
			return
		}
		to = a.Clamp(to, unitRadius)
	}
	c.Pos = to
}

// Revive brings a defeated player combatant back with a fraction of MaxHP.
func (c *Combatant) Revive(ctx *Context, fraction float64) error {
	if !c.Player || c.Alive {
		return nil
	}
	c.Conditions.Clear()
	c.Alive = true
	c.Active = true
	c.Target = NoTarget
	c.combo = combo{}
	c.Conditions.TakeDirty()
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	c.HP = c.Stats.MaxHP * fraction
	if c.HP < 1 {
		c.HP = 1
	}
	return nil
}

// die clears everything a dead combatant must not keep running.
func (c *Combatant) die() {
	c.Alive = false
	c.HP = 0
	c.Conditions.Clear()
	c.Target = NoTarget
	c.combo = combo{}
	if c.fire != nil {
		c.fire.Stop()
	}
	if c.move != nil {
		c.move.reset()
	}
	c.Active = false
}

// change applies a loadout edit and recomputes; on any error the loadout is restored.
func (c *Combatant) change(ctx *Context, edit func(*gear.Loadout) error) error {
	before := c.Loadout.Clone()
	if err := edit(&c.Loadout); err != nil {
		c.Loadout = before
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		c.Loadout = before
		return err
	}
	return nil
}

func (c *Combatant) EquipWeapon(ctx *Context, id int, storage gear.Storage) error {
	return c.change(ctx, func(l *gear.Loadout) error {
		return l.EquipWeapon(ctx.Catalog, id, storage)
	})
}

func (c *Combatant) EquipItem(ctx *Context, slot catalog.Slot, id int) error {
	return c.change(ctx, func(l *gear.Loadout) error {
		return l.EquipItem(ctx.Catalog, slot, id)
	})
}

// SetMainRune installs r and pushes the previous main rune into storage.
func (c *Combatant) SetMainRune(ctx *Context, r gear.EquippedRune, storage gear.Storage) error {
	return c.change(ctx, func(l *gear.Loadout) error {
		if l.Main != nil && !l.Main.Empty() && (storage == nil || storage.Free() < 1) {
			return gear.ErrNoStorage
		}
		prev, err := l.SetMain(ctx.Catalog, r)
		if err != nil || prev.Empty() {
			return err
		}
		return storage.Put(prev)
	})
}

// SetSubRune installs r in a sub socket and pushes what was there into storage.
func (c *Combatant) SetSubRune(ctx *Context, slot int, r gear.EquippedRune, storage gear.Storage) error {
	return c.change(ctx, func(l *gear.Loadout) error {
		if slot >= 0 && slot < len(l.Subs) && !l.Subs[slot].Empty() && !l.Subs[slot].Fixed &&
			(storage == nil || storage.Free() < 1) {
			return gear.ErrNoStorage
		}
		prev, err := l.SetSub(ctx.Catalog, slot, r)
		if err != nil || prev.Empty() {
			return err
		}
		return storage.Put(prev)
	})
}

func (c *Combatant) RemoveSubRune(ctx *Context, slot int, storage gear.Storage) error {
	return c.change(ctx, func(l *gear.Loadout) error {
		return l.RemoveSub(slot, storage)
	})
}
