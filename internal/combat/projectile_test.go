package combat

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeclash/internal/stats"
)

func shot(owner *Combatant, dir cp.Vector, speed float64) ProjectileSpec {
	return ProjectileSpec{
		Origin:   owner.Pos,
		Dir:      dir,
		Owner:    owner.Slot,
		Side:     owner.Side,
		Target:   NoTarget,
		Speed:    speed,
		Lifetime: 10,
		Payload:  Payload{Attribute: stats.Magical, Magical: 5},
	}
}

func TestProjectilePiercesUnitThroughThenFades(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, -5, 0)
	friend := spawn(t, b, Ally, jobFighter, -2, 0)
	first := spawn(t, b, Enemy, jobFighter, 0, 0)
	second := spawn(t, b, Enemy, jobFighter, 1, 0)
	third := spawn(t, b, Enemy, jobFighter, 2, 0)
	owner.Stats.CritChance = 0

	spec := shot(owner, vec(1, 0), 10)
	spec.UnitThrough = 2
	p := b.SpawnProjectile(spec)

	fly(b, 13)
	assert.Equal(t, 2, p.HitCount())
	assert.Equal(t, PhaseFading, p.Phase)
	assert.Less(t, first.HP, first.Stats.MaxHP)
	assert.Less(t, second.HP, second.Stats.MaxHP)

	fly(b, 10)
	assert.Equal(t, PhaseDestroyed, p.Phase)
	assert.Empty(t, b.Projectiles())
	assert.Equal(t, third.Stats.MaxHP, third.HP)
	assert.Equal(t, friend.Stats.MaxHP, friend.HP, "projectiles never hit their own side")
}

func TestProjectileHitsEachUnitOnce(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, -5, 0)
	enemy := spawn(t, b, Enemy, jobFighter, 0, 0)
	owner.Stats.CritChance = 0

	spec := shot(owner, vec(1, 0), 1)
	spec.UnitThrough = 5
	p := b.SpawnProjectile(spec)
	fly(b, 120)
	assert.Equal(t, 1, p.HitCount())
	assert.InDelta(t, enemy.Stats.MaxHP-(5-enemy.Stats.MagicalDefense*defenseFactor), enemy.HP, 1e-9)
}

func TestProjectileLifetime(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)

	spec := shot(owner, vec(0, 1), 1)
	spec.Lifetime = 0.5
	p := b.SpawnProjectile(spec)
	fly(b, 9)
	assert.Equal(t, PhaseFlying, p.Phase)
	fly(b, 2)
	assert.Equal(t, PhaseDestroyed, p.Phase, "lifetime expiry skips the fade")
}

func TestProjectileMaxDistance(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)

	spec := shot(owner, vec(1, 0), 10)
	spec.MaxDistance = 2
	p := b.SpawnProjectile(spec)
	fly(b, 3)
	assert.Equal(t, PhaseFlying, p.Phase)
	fly(b, 1)
	assert.Equal(t, PhaseDestroyed, p.Phase)
}

func TestProjectileLeavingArenaIsDestroyed(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 9, 0)

	p := b.SpawnProjectile(shot(owner, vec(1, 0), 40))
	fly(b, 1)
	assert.Equal(t, PhaseDestroyed, p.Phase)
	assert.Empty(t, b.Projectiles())
}

func TestProjectileStopsAtObstacle(t *testing.T) {
	b := newTestBattle(t)
	b.Arena.AddBox(cp.BB{L: -0.5, B: -0.5, R: 0.5, T: 0.5})
	owner := spawn(t, b, Ally, jobFighter, -5, 0)
	behind := spawn(t, b, Enemy, jobFighter, 3, 0)

	p := b.SpawnProjectile(shot(owner, vec(1, 0), 10))
	fly(b, 40)
	assert.Equal(t, PhaseDestroyed, p.Phase)
	assert.Less(t, p.Pos.X, 0.5)
	assert.Equal(t, behind.Stats.MaxHP, behind.HP)
}

func TestProjectileObjectThrough(t *testing.T) {
	b := newTestBattle(t)
	b.Arena.AddBox(cp.BB{L: -0.5, B: -0.5, R: 0.5, T: 0.5})
	owner := spawn(t, b, Ally, jobFighter, -5, 0)
	behind := spawn(t, b, Enemy, jobFighter, 3, 0)

	spec := shot(owner, vec(1, 0), 10)
	spec.ObjectThrough = 2
	b.SpawnProjectile(spec)
	fly(b, 40)
	assert.Less(t, behind.HP, behind.Stats.MaxHP)
}

func TestOrphanedProjectileIsDestroyed(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)
	p := b.SpawnProjectile(shot(owner, vec(1, 0), 1))

	owner.die()
	fly(b, 1)
	assert.Equal(t, PhaseDestroyed, p.Phase)
}

func TestHomingCurvesOntoTarget(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)
	target := spawn(t, b, Enemy, jobFighter, 0, 5)

	straight := b.SpawnProjectile(shot(owner, vec(1, 0), 5))
	spec := shot(owner, vec(1, 0), 5)
	spec.Motion = MotionHoming
	spec.Target = target.Slot
	homing := b.SpawnProjectile(spec)

	fly(b, 100)
	assert.Equal(t, 0, straight.HitCount())
	assert.Equal(t, 1, homing.HitCount())
	assert.Less(t, target.HP, target.Stats.MaxHP)
}

func TestChainTurnsToNextVictim(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, -5, 0)
	first := spawn(t, b, Enemy, jobFighter, 0, 0)
	second := spawn(t, b, Enemy, jobFighter, 0, 3)

	spec := shot(owner, vec(1, 0), 10)
	spec.UnitThrough = 2
	spec.Chain = true
	p := b.SpawnProjectile(spec)
	fly(b, 30)
	assert.Equal(t, 2, p.HitCount())
	assert.Less(t, first.HP, first.Stats.MaxHP)
	assert.Less(t, second.HP, second.Stats.MaxHP)
}

func TestSpiralBendsAwayFromHeading(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)

	spec := shot(owner, vec(1, 0), 2)
	spec.Motion = MotionSpiral
	p := b.SpawnProjectile(spec)
	fly(b, 20)
	require.Equal(t, PhaseFlying, p.Phase)
	assert.NotEqual(t, vec(1, 0), p.Dir)
	assert.Greater(t, p.Pos.Length(), 0.0)
	assert.Less(t, p.Pos.Length(), 2.0, "spirals expand slower than straight shots")
}

func TestGrowthScalesRadius(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)

	spec := shot(owner, vec(0, 1), 2)
	spec.Growth = true
	p := b.SpawnProjectile(spec)
	fly(b, 10)
	assert.Greater(t, p.Scale, 1.0)
	assert.Greater(t, p.radius(), projectileRadius)
}

func TestFastProjectileHitsUnitBetweenSteps(t *testing.T) {
	b := newTestBattle(t)
	owner := spawn(t, b, Ally, jobFighter, 0, 0)
	enemy := spawn(t, b, Enemy, jobFighter, 1.5, 0)
	require.Greater(t, 20*b.Env.Delta, 2*(projectileRadius+unitRadius), "the shot must outrun its contact size")

	p := b.SpawnProjectile(shot(owner, vec(1, 0), 20))
	fly(b, 3)
	assert.Equal(t, 1, p.HitCount())
	assert.Less(t, enemy.HP, enemy.Stats.MaxHP)
	assert.InDelta(t, 1.5, p.Pos.X, 1e-9, "fades where it touched")
}

func TestFastProjectileStopsAtThinWall(t *testing.T) {
	b := newTestBattle(t)
	b.Arena.AddBox(cp.BB{L: 1.45, B: -1, R: 1.5, T: 1})
	owner := spawn(t, b, Ally, jobFighter, 0, 0)
	behind := spawn(t, b, Enemy, jobFighter, 4, 0)

	p := b.SpawnProjectile(shot(owner, vec(1, 0), 20))
	fly(b, 10)
	assert.Equal(t, PhaseDestroyed, p.Phase)
	assert.Less(t, p.Pos.X, 1.45)
	assert.Equal(t, behind.Stats.MaxHP, behind.HP)
}

func TestSweepHitsUnitsBeforeTheWall(t *testing.T) {
	b := newTestBattle(t)
	b.Arena.AddBox(cp.BB{L: 1.95, B: -1, R: 2, T: 1})
	owner := spawn(t, b, Ally, jobFighter, 0, 0)
	front := spawn(t, b, Enemy, jobFighter, 1.5, 0)
	behind := spawn(t, b, Enemy, jobFighter, 4, 0)

	spec := shot(owner, vec(1, 0), 40)
	spec.UnitThrough = 3
	p := b.SpawnProjectile(spec)
	fly(b, 1)
	assert.Equal(t, PhaseFading, p.Phase)
	assert.Less(t, front.HP, front.Stats.MaxHP)
	assert.Equal(t, behind.Stats.MaxHP, behind.HP)
	assert.InDelta(t, 1.8, p.Pos.X, 1e-6)
}
