package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeclash/internal/condition"
)

func TestSelectTargetNearest(t *testing.T) {
	b := newTestBattle(t)
	self := spawn(t, b, Ally, jobFighter, 0, 0)
	spawn(t, b, Enemy, jobFighter, 4, 0)
	near := spawn(t, b, Enemy, jobFighter, 0, -2)
	spawn(t, b, Ally, jobFighter, 0.5, 0)

	assert.Equal(t, near.Slot, SelectTarget(self, b.Roster, PolicyNearest, 7, b.Env.Rng))
}

func TestSelectTargetWeightsTargetedFactor(t *testing.T) {
	b := newTestBattle(t)
	self := spawn(t, b, Ally, jobFighter, 0, 0)
	hard := spawn(t, b, Enemy, jobFighter, 2, 0)
	soft := spawn(t, b, Enemy, jobFighter, 2.5, 0)
	hard.Stats.TargetedFactor = 25

	assert.Equal(t, 3.0, targetScore(2, hard))
	assert.Equal(t, soft.Slot, SelectTarget(self, b.Roster, PolicyNearest, 7, b.Env.Rng))

	hard.Stats.TargetedFactor = -100
	assert.Zero(t, targetScore(2, hard), "score never goes negative")
}

func TestSelectTargetSupportsOwnSide(t *testing.T) {
	b := newTestBattle(t)
	healer := spawn(t, b, Ally, jobCleric, 0, 0)
	spawn(t, b, Enemy, jobFighter, 0.5, 0)
	friend := spawn(t, b, Ally, jobFighter, 3, 0)
	require.True(t, healer.Stats.TargetSameSide)

	assert.Equal(t, friend.Slot, SelectTarget(healer, b.Roster, PolicyNearest, 7, b.Env.Rng))

	friend.die()
	assert.Equal(t, NoTarget, SelectTarget(healer, b.Roster, PolicyNearest, 7, b.Env.Rng),
		"a healer never targets itself")
}

func TestSelectTargetLowHP(t *testing.T) {
	b := newTestBattle(t)
	self := spawn(t, b, Ally, jobFighter, 0, 0)
	spawn(t, b, Enemy, jobFighter, 1, 0)
	hurt := spawn(t, b, Enemy, jobFighter, 5, 0)
	farAway := spawn(t, b, Enemy, jobFighter, 9, 0)
	hurt.HP = 30
	farAway.HP = 1

	assert.Equal(t, hurt.Slot, SelectTarget(self, b.Roster, PolicyLowHP, 7, b.Env.Rng),
		"units beyond follow range are ignored")
}

func TestSelectTargetAnomaly(t *testing.T) {
	b := newTestBattle(t)
	self := spawn(t, b, Ally, jobFighter, 0, 0)
	near := spawn(t, b, Enemy, jobFighter, 1, 0)
	marked := spawn(t, b, Enemy, jobFighter, 4, 0)

	assert.Equal(t, near.Slot, SelectTarget(self, b.Roster, PolicyAnomaly, 7, b.Env.Rng),
		"falls back to nearest when nobody is afflicted")

	marked.Inflict(condition.Poison, 1, 6, self.Slot)
	assert.Equal(t, marked.Slot, SelectTarget(self, b.Roster, PolicyAnomaly, 7, b.Env.Rng))
}

func TestSelectTargetRandomPrefersAttackRange(t *testing.T) {
	b := newTestBattle(t)
	self := spawn(t, b, Ally, jobFighter, 0, 0)
	equip(t, b, self, weaponSword)
	a := spawn(t, b, Enemy, jobFighter, 1, 0)
	c := spawn(t, b, Enemy, jobFighter, -1, 0)
	spawn(t, b, Enemy, jobFighter, 6, 0)

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[SelectTarget(self, b.Roster, PolicyRandom, 7, b.Env.Rng)] = true
	}
	assert.Equal(t, map[int]bool{a.Slot: true, c.Slot: true}, seen)
}

func TestSelectTargetNoCandidates(t *testing.T) {
	b := newTestBattle(t)
	self := spawn(t, b, Ally, jobFighter, 0, 0)
	assert.Equal(t, NoTarget, SelectTarget(self, b.Roster, PolicyNearest, 7, b.Env.Rng))
}

func TestPolicyForPrecedence(t *testing.T) {
	b := newTestBattle(t)
	c := spawn(t, b, Ally, jobFighter, 0, 0)
	assert.Equal(t, PolicyNearest, PolicyFor(c.Stats.Behaviors))

	equip(t, b, c, weaponSword, runeRandom, runeLowHP)
	assert.Equal(t, PolicyLowHP, PolicyFor(c.Stats.Behaviors))

	equip(t, b, c, weaponSword, runeRandom, runeLowHP, runeAnomaly)
	assert.Equal(t, PolicyAnomaly, PolicyFor(c.Stats.Behaviors))
}
