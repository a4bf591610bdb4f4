package combat

import (
	"github.com/jakecoffman/cp"

	"runeclash/internal/catalog"
	"runeclash/internal/stats"
)

type Origin int

const (
	OriginSelf Origin = iota
	OriginRandom
	OriginDirect
)

const (
	directHitOffset  = 1.0
	pierceEverything = 99
	spiralLifetime   = 3.0
	spiralExpansion  = 0.5
	shakeAmplitude   = 0.5
)

// AttackProfile is the shot shape a combatant's behaviors produce. It is
// rebuilt every fire cycle since gear can change mid-battle.
type AttackProfile struct {
	Attack   float64 // damage multiplier
	Delay    float64 // multiplies the attack delay stat; higher fires faster
	Speed    float64
	Distance float64
	Lifetime float64

	UnitThrough   int
	ObjectThrough int

	Pattern  catalog.RuneEffect
	Origin   Origin
	Motion   Motion
	Shake    float64
	Trail    bool
	Growth   bool
	Chain    bool
	MoveBack bool
	Retarget bool
}

var attackScale = []struct {
	effect catalog.RuneEffect
	factor float64
}{
	{catalog.EffectContinuousAttack, 0.5},
	{catalog.EffectChargeAttack, 1.5},
	{catalog.EffectMoveBack, 1.25},
	{catalog.EffectDirectHit, 0.33},
	{catalog.EffectTrail, 0.5},
	{catalog.EffectHoming, 0.5},
	{catalog.EffectGrowth, 0.75},
	{catalog.EffectThreeWay, 0.5},
	{catalog.EffectFourWay, 0.5},
	{catalog.EffectDiagonal, 0.5},
	{catalog.EffectEightWay, 0.33},
	{catalog.EffectTwoWay, 0.5},
}

func profileFor(s stats.Stats) AttackProfile {
	b := s.Behaviors
	p := AttackProfile{
		Attack:        1,
		Delay:         1,
		Speed:         1,
		Distance:      1,
		Lifetime:      s.AttackLifetime,
		UnitThrough:   s.UnitThrough,
		ObjectThrough: s.ObjectThrough,
		Pattern:       b.Pattern(),
		Trail:         b.Has(catalog.EffectTrail),
		Growth:        b.Has(catalog.EffectGrowth),
		Chain:         b.Has(catalog.EffectChain),
		MoveBack:      b.Has(catalog.EffectMoveBack),
		Retarget:      b.Has(catalog.EffectRandomRetarget),
	}
	if b.Has(catalog.EffectPowerAttack) {
		p.Speed *= 2
		p.Distance *= 2
		p.UnitThrough = pierceEverything
		p.ObjectThrough = pierceEverything
		p.Delay *= 0.33
	}
	if b.Has(catalog.EffectContinuousAttack) {
		p.Delay *= 3
	}
	if b.Has(catalog.EffectChargeAttack) {
		p.Delay *= 2
		p.Speed *= 1.5
	}
	if p.Retarget && b.Has(catalog.EffectDirectHit) {
		p.Attack *= 0.33
	}
	for _, a := range attackScale {
		if b.Has(a.effect) {
			p.Attack *= a.factor
		}
	}

	switch {
	case b.Has(catalog.EffectDirectHit):
		p.Origin = OriginDirect
	case b.Has(catalog.EffectRandomOrigin):
		p.Origin = OriginRandom
	}
	switch {
	case b.Has(catalog.EffectHoming):
		p.Motion = MotionHoming
	case b.Has(catalog.EffectSpiral):
		p.Motion = MotionSpiral
		p.Lifetime *= spiralLifetime
	}
	if b.Has(catalog.EffectShake) {
		p.Shake = shakeAmplitude * float64(b.Level(catalog.EffectShake))
	}
	return p
}

// directions returns the shot headings for pattern around aim.
func directions(pattern catalog.RuneEffect, aim cp.Vector) []cp.Vector {
	switch pattern {
	case catalog.EffectThreeWay:
		return []cp.Vector{aim, rotateDeg(aim, 30), rotateDeg(aim, -30)}
	case catalog.EffectTwoWay:
		return []cp.Vector{rotateDeg(aim, 15), rotateDeg(aim, -15)}
	case catalog.EffectFourWay:
		return orthogonal
	case catalog.EffectDiagonal:
		return diagonal
	case catalog.EffectEightWay:
		return append(append([]cp.Vector{}, orthogonal...), diagonal...)
	}
	return []cp.Vector{aim}
}

var (
	orthogonal = []cp.Vector{vec(0, 1), vec(0, -1), vec(-1, 0), vec(1, 0)}
	diagonal   = []cp.Vector{
		vec(1, 1).Normalize(), vec(1, -1).Normalize(),
		vec(-1, 1).Normalize(), vec(-1, -1).Normalize(),
	}
)
