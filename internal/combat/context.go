package combat

import (
	"io"
	"log/slog"

	"github.com/jakecoffman/cp"

	"runeclash/internal/catalog"
	"runeclash/internal/stats"
)

// Catalog is every lookup a battle performs.
type Catalog interface {
	stats.Catalog
	FindEnemy(id int) (*catalog.Enemy, error)
}

// StatsSink collects damage and kill statistics per roster slot.
type StatsSink interface {
	RecordDamage(slot int, amount float64)
	RecordKill(slot int)
}

// EffectSink spawns purely visual effects. AuraChanged is called when an aura
// appears or changes level, AuraRemoved when it goes away.
type EffectSink interface {
	SpawnEffect(kind string, pos cp.Vector)
	AuraChanged(c *Combatant, level int, radius float64)
	AuraRemoved(c *Combatant)
}

// RewardSink receives loot from defeated enemies.
type RewardSink interface {
	Grant(slot int, loot Loot)
}

// EquipmentObserver is told whenever a combatant's stat block changes.
type EquipmentObserver interface {
	EquipmentChanged(c *Combatant)
}

// Context carries the collaborators a battle calls out to.
type Context struct {
	Catalog  Catalog
	Stats    StatsSink
	Effects  EffectSink
	Rewards  RewardSink
	Observer EquipmentObserver
	Room     catalog.RoomModifiers
	Logger   *slog.Logger
}

type nopSink struct{}

func (nopSink) RecordDamage(int, float64)            {}
func (nopSink) RecordKill(int)                       {}
func (nopSink) SpawnEffect(string, cp.Vector)        {}
func (nopSink) AuraChanged(*Combatant, int, float64) {}
func (nopSink) AuraRemoved(*Combatant)               {}
func (nopSink) Grant(int, Loot)                      {}
func (nopSink) EquipmentChanged(*Combatant)          {}

func (c *Context) fill() {
	if c.Stats == nil {
		c.Stats = nopSink{}
	}
	if c.Effects == nil {
		c.Effects = nopSink{}
	}
	if c.Rewards == nil {
		c.Rewards = nopSink{}
	}
	if c.Observer == nil {
		c.Observer = nopSink{}
	}
	if c.Room == (catalog.RoomModifiers{}) {
		c.Room = catalog.DefaultRoom()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
