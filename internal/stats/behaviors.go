package stats

import "runeclash/internal/catalog"

// Behaviors is the set of rune effects a combatant carries, with summed rune levels.
type Behaviors struct {
	caps   uint64
	levels [catalog.EffectCount]int
}

func (b *Behaviors) add(e catalog.RuneEffect, level int) {
	if e == catalog.EffectNone {
		return
	}
	b.caps |= 1 << uint(e)
	b.levels[e] += level
}

func (b Behaviors) Has(e catalog.RuneEffect) bool {
	return b.caps&(1<<uint(e)) != 0
}

// Level is the summed level of every rune granting e.
func (b Behaviors) Level(e catalog.RuneEffect) int {
	if e < 0 || int(e) >= catalog.EffectCount {
		return 0
	}
	return b.levels[e]
}

// patternOrder is the precedence used when more than one direction pattern is equipped.
var patternOrder = []catalog.RuneEffect{
	catalog.EffectThreeWay,
	catalog.EffectEightWay,
	catalog.EffectFourWay,
	catalog.EffectDiagonal,
	catalog.EffectTwoWay,
}

// Pattern returns the single active direction pattern, or EffectNone for an aimed shot.
func (b Behaviors) Pattern() catalog.RuneEffect {
	for _, e := range patternOrder {
		if b.Has(e) {
			return e
		}
	}
	return catalog.EffectNone
}
