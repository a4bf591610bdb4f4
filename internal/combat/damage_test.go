package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeclash/internal/catalog"
	"runeclash/internal/condition"
	"runeclash/internal/stats"
)

func physical(amount float64) Payload {
	return Payload{Attribute: stats.Physical, Physical: amount}
}

func TestResolveHitSubtractsScaledDefense(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0

	res := b.ResolveHit(att, def, physical(10))
	assert.False(t, res.Blocked)
	assert.InDelta(t, 9.9, res.Damage, 1e-9)
	assert.InDelta(t, 90.1, def.HP, 1e-9)
	assert.Equal(t, 1, res.Combo)
	assert.InDelta(t, 9.9, b.damageBy[att.ID], 1e-9)
	require.Len(t, eventsOf(b, "Hit"), 1)
}

func TestBaseDamageFloorsAtOne(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	def.Stats.PhysicalDefense = 1000

	res := b.ResolveHit(att, def, physical(10))
	assert.Equal(t, 1.0, res.Damage)
}

func TestGuardBlocksWholeHit(t *testing.T) {
	b := newTestBattle(t)
	fx := &effectLog{}
	b.Ctx.Effects = fx
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	require.NoError(t, def.EquipItem(b.Ctx, catalog.SlotShield, itemShield))
	require.Equal(t, 100.0, def.Stats.Guard)

	att.Stats.Knockback = 100
	att.Stats.Inflict = stats.Infliction{
		Chance:   100,
		Amount:   catalog.ConditionTable{Poison: 5, Stun: 1},
		Duration: catalog.ConditionTable{Poison: 6, Stun: 6},
	}
	for i := 0; i < 10; i++ {
		res := b.ResolveHit(att, def, physical(50))
		assert.True(t, res.Blocked)
		assert.False(t, res.KnockedBack)
		assert.Empty(t, res.Inflicted)
	}
	assert.Equal(t, def.Stats.MaxHP, def.HP)
	assert.Equal(t, condition.Flags(0), def.Conditions.Flags())
	assert.Equal(t, 1.0, def.Pos.X, "a blocked hit never knocks back")
	assert.Contains(t, fx.kinds, "guard")
	assert.Len(t, eventsOf(b, "Guard"), 10)
}

func TestDefenselessSkipsGuardAndDefense(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	require.NoError(t, def.EquipItem(b.Ctx, catalog.SlotShield, itemShield))

	res := b.ResolveHit(att, def, Payload{Attribute: stats.Physical, Physical: 7, Defenseless: true})
	assert.False(t, res.Blocked)
	assert.Equal(t, 7.0, res.Damage)
	assert.Zero(t, res.Combo, "defenseless damage does not build combo")
}

func TestZeroCritChanceNeverCrits(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	def.HP = 1e6

	for i := 0; i < 200; i++ {
		res := b.ResolveHit(att, def, physical(10))
		require.False(t, res.Critical, "hit %d", i)
		require.InDelta(t, 9.9, res.Damage, 1e-9)
		b.Env.Time += 2 * comboWindow
	}
}

func TestComboCriticalForcesEveryNthHit(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	equip(t, b, att, weaponSword, runeCombo)
	require.Equal(t, 5, att.Stats.ComboCritical)
	att.Stats.CritChance = 0
	def.HP = 1e6

	for i := 1; i <= 10; i++ {
		res := b.ResolveHit(att, def, physical(10))
		assert.Equal(t, i, res.Combo)
		if i%5 == 0 {
			assert.True(t, res.Critical, "hit %d", i)
			assert.InDelta(t, 9.9*att.Stats.CritDamage, res.Damage, 1e-9)
		} else {
			assert.False(t, res.Critical, "hit %d", i)
		}
		b.Env.Time += 0.5
	}

	b.Env.Time += comboWindow + 0.1
	res := b.ResolveHit(att, def, physical(10))
	assert.Equal(t, 1, res.Combo, "combo resets after the window")
	assert.False(t, res.Critical)
}

func TestComboDamageAddsPerHit(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	att.Stats.ComboDamage = 2
	def.HP = 1e6

	b.ResolveHit(att, def, physical(10))
	res := b.ResolveHit(att, def, physical(10))
	assert.InDelta(t, 9.9+4, res.Damage, 1e-9)
}

func TestLifestealHealsAttacker(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	att.Conditions.SetPassive(condition.Lifesteal, 50)
	att.HP = 50

	res := b.ResolveHit(att, def, physical(10))
	assert.InDelta(t, 4.95, res.Lifesteal, 1e-9)
	assert.InDelta(t, 54.95, att.HP, 1e-9)
}

func TestLifestealDrainsOnlyDealtDamage(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	att.Conditions.SetPassive(condition.Lifesteal, 50)
	att.HP = 50
	def.HP = 2

	res := b.ResolveHit(att, def, physical(10))
	require.True(t, res.Killed)
	assert.InDelta(t, 2, res.Damage, 1e-9)
	assert.InDelta(t, 1, res.Lifesteal, 1e-9, "overkill is not drained")
	assert.InDelta(t, 51, att.HP, 1e-9)
}

func TestDamagingHitsOnlyCarryNegativeConditions(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	att.Stats.Inflict = stats.Infliction{
		Chance:   100,
		Amount:   catalog.ConditionTable{Stun: 1, Regen: 5},
		Duration: catalog.ConditionTable{Stun: 6, Regen: 6},
	}

	res := b.ResolveHit(att, def, physical(10))
	assert.Equal(t, []condition.Kind{condition.Stun}, res.Inflicted)
	assert.True(t, def.Stunned())
	assert.False(t, def.Conditions.Active(condition.Regen))

	res = b.ResolveHit(att, def, physical(10))
	assert.Empty(t, res.Inflicted, "stun does not refresh while active")
}

func TestResistCanZeroInfliction(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.Inflict = stats.Infliction{
		Chance:   100,
		Amount:   catalog.ConditionTable{Poison: 3},
		Duration: catalog.ConditionTable{Poison: 6},
	}
	def.Stats.ResistCondition = 100
	def.HP = 1e6

	for i := 0; i < 20; i++ {
		res := b.ResolveHit(att, def, physical(10))
		require.Empty(t, res.Inflicted)
	}
}

func TestHealingHitRestoresAndRollsRegen(t *testing.T) {
	b := newTestBattle(t)
	healer := spawn(t, b, Ally, jobCleric, 0, 0)
	friend := spawn(t, b, Ally, jobFighter, 1, 0)
	require.Equal(t, stats.Healing, healer.Stats.Attribute)
	healer.Stats.Inflict = stats.Infliction{
		Chance:   100,
		Amount:   catalog.ConditionTable{Poison: 3, Regen: 5},
		Duration: catalog.ConditionTable{Poison: 6, Regen: 6},
	}
	friend.HP = 50

	res := b.ResolveHit(healer, friend, Payload{Attribute: stats.Healing, Magical: 20})
	assert.Equal(t, 20.0, res.Healed)
	assert.Equal(t, 70.0, friend.HP)
	assert.Equal(t, []condition.Kind{condition.Regen}, res.Inflicted)
	assert.False(t, friend.Conditions.Active(condition.Poison))

	friend.HP = friend.Stats.MaxHP - 1
	res = b.ResolveHit(healer, friend, Payload{Attribute: stats.Healing, Magical: 20})
	assert.Equal(t, 1.0, res.Healed, "healing caps at max HP")
}

func TestKnockbackPushesAway(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	att.Stats.Knockback = 100

	res := b.ResolveHit(att, def, physical(10))
	assert.True(t, res.KnockedBack)
	assert.InDelta(t, 1+knockbackDistance, def.Pos.X, 1e-9)
}

func TestKnockbackStopsAtObstacle(t *testing.T) {
	b := newTestBattle(t)
	b.Arena.AddCircle(vec(1.6, 0), 0.2)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	att.Stats.Knockback = 100

	res := b.ResolveHit(att, def, physical(10))
	assert.True(t, res.KnockedBack)
	assert.Equal(t, 1.0, def.Pos.X)
}

func TestLethalHitKills(t *testing.T) {
	b := newTestBattle(t)
	att := spawn(t, b, Ally, jobFighter, 0, 0)
	def := spawn(t, b, Enemy, jobFighter, 1, 0)
	att.Stats.CritChance = 0
	def.HP = 5
	def.Inflict(condition.Poison, 1, 6, att.Slot)

	res := b.ResolveHit(att, def, physical(10))
	assert.True(t, res.Killed)
	assert.Equal(t, 5.0, res.Damage, "dealt is capped by remaining HP")
	assert.False(t, def.Alive)
	assert.False(t, def.Active)
	assert.Zero(t, def.Conditions.Flags())
	assert.Nil(t, b.Roster.Get(def.Slot))
	assert.Same(t, def, b.Roster.Member(def.Slot))
	assert.Equal(t, 1, b.kills[att.ID])
	require.Len(t, eventsOf(b, "Death"), 1)

	res = b.ResolveHit(att, def, physical(10))
	assert.Zero(t, res.Damage, "the dead take no further hits")
}
