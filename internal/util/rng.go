package util

import (
	"math/rand"

	"github.com/jakecoffman/cp"
)

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Chance rolls a percentage in [0,100]. 0 never succeeds, 100 always does.
func Chance(rng *rand.Rand, pct float64) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return rng.Float64()*100 < pct
}

// Between returns a uniform value in [min, max).
func Between(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// InsideUnitCircle returns a uniformly distributed point in the unit disc.
func InsideUnitCircle(rng *rand.Rand) cp.Vector {
	for {
		v := cp.Vector{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
		if v.LengthSq() <= 1 {
			return v
		}
	}
}
