package combat

import (
	"fmt"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"runeclash/internal/catalog"
	"runeclash/internal/config"
	"runeclash/internal/gear"
	"runeclash/internal/util"
)

const (
	jobFighter = 1
	jobCleric  = 2
	jobRunner  = 3
	jobBlinker = 4
	jobWeak    = 5

	weaponSword = 100
	weaponStaff = 101

	itemShield = 200
	itemArmor  = 201

	runeCombo    = 1
	runeLowHP    = 2
	runeAnomaly  = 3
	runeRandom   = 4
	runeEightWay = 5
	runeHoming   = 6
	runeSpiral   = 7
	runePower    = 8
	runeStance   = 9
	runeRegen    = 10
	runeAreaHit  = 11
	runeThreeWay = 12

	enemyGoblin = 1
)

// behavior is a rune with only an ability and identity tiers.
func behavior(id int, ability string) config.RuneDef {
	return config.RuneDef{ID: id, Name: ability, Ability: ability, MaxLevel: 3}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cfg := &config.Catalog{
		Jobs: config.JobsConfig{Jobs: []config.JobDef{
			{ID: jobFighter, Name: "fighter", Base: config.StatLineDef{Str: 10}},
			{ID: jobCleric, Name: "cleric", Base: config.StatLineDef{Str: 10, Magic: 10}, TargetSameSide: true},
			{ID: jobRunner, Name: "runner", Base: config.StatLineDef{Str: 10}, Escape: true},
			{ID: jobBlinker, Name: "blinker", Base: config.StatLineDef{Str: 10}, Teleport: true},
			{ID: jobWeak, Name: "weakling", Base: config.StatLineDef{Str: 1}},
		}},
		Weapons: config.ItemsConfig{Items: []config.ItemDef{
			{ID: weaponSword, Name: "sword", Slot: "weapon", Category: 111, SocketCount: 2, AttackRange: 4.7},
			{ID: weaponStaff, Name: "staff", Slot: "weapon", Category: 114, SocketCount: 1, AttackRange: 4.7},
		}},
		Equipment: config.ItemsConfig{Items: []config.ItemDef{
			{ID: itemShield, Name: "tower shield", Slot: "shield", GuardChance: 100},
			{ID: itemArmor, Name: "leather", Slot: "armor", HP: 20},
		}},
		Runes: config.RunesConfig{Runes: []config.RuneDef{
			{ID: runeCombo, Name: "combo", MaxLevel: 1, Levels: []config.RuneTierDef{{ComboCritical: 5}}},
			behavior(runeLowHP, "prioritizeLowHP"),
			behavior(runeAnomaly, "prioritizeAnomaly"),
			behavior(runeRandom, "randomRetarget"),
			behavior(runeEightWay, "eightWay"),
			behavior(runeHoming, "homing"),
			behavior(runeSpiral, "spiral"),
			behavior(runePower, "powerAttack"),
			behavior(runeStance, "stance"),
			behavior(runeRegen, "regenAura"),
			behavior(runeAreaHit, "areaAttack"),
			behavior(runeThreeWay, "threeWay"),
		}},
		Enemies: config.EnemiesConfig{Enemies: []config.EnemyDef{
			{ID: enemyGoblin, Name: "goblin", Job: jobWeak, Exp: 30, Gold: 5,
				Drops: []config.DropDef{{Item: itemArmor, Rate: 100}}},
		}},
	}
	cat, err := catalog.New(cfg)
	require.NoError(t, err)
	return cat
}

type effectLog struct{ kinds []string }

func (e *effectLog) SpawnEffect(kind string, _ cp.Vector) { e.kinds = append(e.kinds, kind) }

func (e *effectLog) AuraChanged(_ *Combatant, level int, radius float64) {
	e.kinds = append(e.kinds, fmt.Sprintf("aura:%d:%.1f", level, radius))
}

func (e *effectLog) AuraRemoved(*Combatant) { e.kinds = append(e.kinds, "aura:removed") }

type rewardLog struct {
	slots []int
	loot  []Loot
}

func (r *rewardLog) Grant(slot int, l Loot) {
	r.slots = append(r.slots, slot)
	r.loot = append(r.loot, l)
}

func newTestBattle(t *testing.T) *Battle {
	t.Helper()
	ctx := &Context{Catalog: testCatalog(t)}
	env := &Env{Delta: 0.05, Rng: util.New(7)}
	arena := NewArena(cp.BB{L: -10, B: -10, R: 10, T: 10})
	b := NewBattle(env, ctx, arena, DefaultTuning(), true)
	b.Storage = gear.NewBag(4)
	return b
}

// spawn adds a combatant of job at (x, y). Allies are players.
func spawn(t *testing.T, b *Battle, side Side, job int, x, y float64) *Combatant {
	t.Helper()
	c := NewCombatant(fmt.Sprintf("%s-%d", side, b.Roster.Len()), "", side)
	c.Job = job
	c.Player = side == Ally
	c.Pos = vec(x, y)
	require.NoError(t, b.Add(c))
	return c
}

func equip(t *testing.T, b *Battle, c *Combatant, weapon int, runes ...int) {
	t.Helper()
	require.NoError(t, c.EquipWeapon(b.Ctx, weapon, b.Storage))
	for i, id := range runes {
		r := gear.EquippedRune{RuneID: id, Level: 1}
		if i == 0 {
			require.NoError(t, c.SetMainRune(b.Ctx, r, b.Storage))
			continue
		}
		require.NoError(t, c.SetSubRune(b.Ctx, i-1, r, b.Storage))
	}
}

// fly steps only the projectiles n times.
func fly(b *Battle, n int) {
	for i := 0; i < n; i++ {
		for _, p := range b.projectiles {
			p.step(b)
		}
		b.reap()
		b.Env.Time += b.Env.Delta
	}
}

func eventsOf(b *Battle, typ string) []Event {
	var out []Event
	for _, ev := range b.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
