package catalog

import "fmt"

// RuneEffect is a behavior a rune switches on. Resolved once at load.
type RuneEffect int

const (
	EffectNone RuneEffect = iota
	EffectIronWall
	EffectAreaAttack
	EffectAreaSlow
	EffectRegenAura
	EffectEasyTarget
	EffectHardTarget
	EffectPrioritizeAnomaly
	EffectPrioritizeLowHP
	EffectRandomRetarget
	EffectStance
	EffectTeleport
	EffectEscape
	EffectHoming
	EffectSpiral
	EffectShake
	EffectTrail
	EffectGrowth
	EffectTwoWay
	EffectThreeWay
	EffectFourWay
	EffectDiagonal
	EffectEightWay
	EffectDirectHit
	EffectRandomOrigin
	EffectMoveBack
	EffectPowerAttack
	EffectChargeAttack
	EffectContinuousAttack
	EffectChain

	effectCount
)

var effectNames = [effectCount]string{
	EffectNone:              "",
	EffectIronWall:          "ironWall",
	EffectAreaAttack:        "areaAttack",
	EffectAreaSlow:          "areaSlow",
	EffectRegenAura:         "regenAura",
	EffectEasyTarget:        "easyTarget",
	EffectHardTarget:        "hardTarget",
	EffectPrioritizeAnomaly: "prioritizeAnomaly",
	EffectPrioritizeLowHP:   "prioritizeLowHP",
	EffectRandomRetarget:    "randomRetarget",
	EffectStance:            "stance",
	EffectTeleport:          "teleport",
	EffectEscape:            "escape",
	EffectHoming:            "homing",
	EffectSpiral:            "spiral",
	EffectShake:             "shake",
	EffectTrail:             "trail",
	EffectGrowth:            "growth",
	EffectTwoWay:            "twoWay",
	EffectThreeWay:          "threeWay",
	EffectFourWay:           "fourWay",
	EffectDiagonal:          "diagonal",
	EffectEightWay:          "eightWay",
	EffectDirectHit:         "directHit",
	EffectRandomOrigin:      "randomOrigin",
	EffectMoveBack:          "moveBack",
	EffectPowerAttack:       "powerAttack",
	EffectChargeAttack:      "chargeAttack",
	EffectContinuousAttack:  "continuousAttack",
	EffectChain:             "chain",
}

var effectByName = func() map[string]RuneEffect {
	m := make(map[string]RuneEffect, effectCount)
	for i, n := range effectNames {
		m[n] = RuneEffect(i)
	}
	return m
}()

// EffectCount is the number of effects including EffectNone.
const EffectCount = int(effectCount)

func (e RuneEffect) String() string {
	if e < 0 || e >= effectCount {
		return fmt.Sprintf("RuneEffect(%d)", int(e))
	}
	if e == EffectNone {
		return "none"
	}
	return effectNames[e]
}

// ParseEffect maps an ability name to its effect. An empty name is EffectNone.
func ParseEffect(name string) (RuneEffect, error) {
	e, ok := effectByName[name]
	if !ok {
		return EffectNone, fmt.Errorf("unknown rune ability %q", name)
	}
	return e, nil
}

// IsPattern reports whether the effect picks a multi-shot direction pattern.
func (e RuneEffect) IsPattern() bool {
	switch e {
	case EffectTwoWay, EffectThreeWay, EffectFourWay, EffectDiagonal, EffectEightWay:
		return true
	}
	return false
}
