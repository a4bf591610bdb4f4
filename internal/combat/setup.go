package combat

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"

	"runeclash/internal/catalog"
	"runeclash/internal/config"
	"runeclash/internal/gear"
)

// TuningFrom overlays scenario control settings on DefaultTuning.
func TuningFrom(d config.ControlDef) Tuning {
	t := DefaultTuning()
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	set(&t.FollowRange, d.FollowRange)
	set(&t.FollowWeight, d.FollowWeight)
	set(&t.RetargetInterval, d.RetargetInterval)
	set(&t.TeleportInterval, d.TeleportInterval)
	set(&t.TeleportDistance, d.TeleportDistance)
	set(&t.EscapeSpeed, d.EscapeSpeedMul)
	set(&t.EscapeDistance, d.EscapeDistanceMul)
	set(&t.DelayJitter, d.DelayJitter)
	return t
}

// ArenaFrom builds the arena and its obstacles. A box obstacle is centered on At.
func ArenaFrom(d config.ArenaDef) *Arena {
	a := NewArena(cp.BB{L: d.Min.X, B: d.Min.Y, R: d.Max.X, T: d.Max.Y})
	for _, o := range d.Obstacles {
		at := vec(o.At.X, o.At.Y)
		if o.Size.X > 0 && o.Size.Y > 0 {
			hw, hh := o.Size.X/2, o.Size.Y/2
			a.AddBox(cp.BB{L: at.X - hw, B: at.Y - hh, R: at.X + hw, T: at.Y + hh})
			continue
		}
		if o.Radius > 0 {
			a.AddCircle(at, o.Radius)
		}
	}
	return a
}

// NewFromScenario resolves every roster entry against the catalog and returns a
// battle ready to run. ctx.Catalog must be set.
func NewFromScenario(ctx *Context, sc *config.ScenarioConfig, rng *rand.Rand, record bool) (*Battle, error) {
	if ctx == nil || ctx.Catalog == nil {
		return nil, fmt.Errorf("scenario %s: no catalog", sc.ID)
	}
	ctx.Room = catalog.NewRoom(sc.Room)
	env := &Env{Delta: sc.Delta, Rng: rng}
	b := NewBattle(env, ctx, ArenaFrom(sc.Arena), TuningFrom(sc.Control), record)
	b.Storage = gear.NewBag(sc.Storage)
	b.Meta.Scenario = sc.ID
	if sc.Note != "" {
		b.Meta.Notes = append(b.Meta.Notes, sc.Note)
	}

	for i, d := range sc.Roster {
		c, err := b.combatantFrom(i, d)
		if err != nil {
			return nil, fmt.Errorf("scenario %s roster %d: %w", sc.ID, i, err)
		}
		if err := b.Add(c); err != nil {
			return nil, fmt.Errorf("scenario %s roster %d: %w", sc.ID, i, err)
		}
	}
	return b, nil
}

func (b *Battle) combatantFrom(i int, d config.CombatantDef) (*Combatant, error) {
	side, err := ParseSide(d.Side)
	if err != nil {
		return nil, err
	}
	cat := b.Ctx.Catalog
	c := NewCombatant(fmt.Sprintf("%s-%d", side, i), d.Name, side)
	c.Pos = vec(d.Spawn.X, d.Spawn.Y)

	weapon, shield, armor, accessory := d.Weapon, d.Shield, d.Armor, d.Accessory
	if d.Enemy != 0 {
		e, err := cat.FindEnemy(d.Enemy)
		if err != nil {
			return nil, err
		}
		c.EnemyID = e.ID
		c.Job = e.Job
		c.BonusLevels = e.AddLevel
		if c.Name == "" {
			c.Name = e.Name
		}
		weapon, shield, armor, accessory = pick(weapon, e.Weapon), pick(shield, e.Shield), pick(armor, e.Armor), pick(accessory, e.Accessory)
	} else {
		job, err := cat.FindJob(d.Job)
		if err != nil {
			return nil, err
		}
		c.Job = job.ID
		c.Exp = d.Exp
		c.Player = side == Ally
		if c.Name == "" {
			c.Name = job.Name
		}
		weapon, shield, armor, accessory = pick(weapon, job.InitWeapon), pick(shield, job.InitShield), pick(armor, job.InitArmor), pick(accessory, job.InitAccessory)
	}

	l := &c.Loadout
	if weapon != 0 {
		if err := l.EquipWeapon(cat, weapon, b.Storage); err != nil {
			return nil, err
		}
	}
	for _, it := range []struct {
		slot catalog.Slot
		id   int
	}{
		{catalog.SlotShield, shield},
		{catalog.SlotArmor, armor},
		{catalog.SlotAccessory, accessory},
	} {
		if err := l.EquipItem(cat, it.slot, it.id); err != nil {
			return nil, err
		}
	}
	if d.MainRune != nil {
		if _, err := l.SetMain(cat, gear.EquippedRune{RuneID: d.MainRune.ID, Level: d.MainRune.Level}); err != nil {
			return nil, err
		}
	}
	for _, r := range d.SubRunes {
		slot := freeSub(l)
		if slot < 0 {
			return nil, fmt.Errorf("sub rune %d: %w", r.ID, gear.ErrSlotOutOfRange)
		}
		if _, err := l.SetSub(cat, slot, gear.EquippedRune{RuneID: r.ID, Level: r.Level}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// pick prefers an explicit scenario id over a catalog default.
func pick(explicit, fallback int) int {
	if explicit != 0 {
		return explicit
	}
	return fallback
}

func freeSub(l *gear.Loadout) int {
	for i, r := range l.Subs {
		if r.Empty() {
			return i
		}
	}
	return -1
}
