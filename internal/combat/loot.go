package combat

import (
	"math/rand"

	"runeclash/internal/catalog"
	"runeclash/internal/util"
)

// Loot is what one defeated enemy yields.
type Loot struct {
	Exp   int   `json:"exp"`
	Gold  int   `json:"gold"`
	Items []int `json:"items,omitempty"`
}

func (l *Loot) Add(o Loot) {
	l.Exp += o.Exp
	l.Gold += o.Gold
	l.Items = append(l.Items, o.Items...)
}

// RollLoot resolves exp, gold and item drops for e under room modifiers.
func RollLoot(e *catalog.Enemy, room catalog.RoomModifiers, rng *rand.Rand) Loot {
	l := Loot{Exp: e.Exp, Gold: e.Gold}
	if room.DoubleExp {
		l.Exp *= 2
	}
	if room.DoubleGold {
		l.Gold *= 2
	}
	rate := room.DropRate
	if rate <= 0 {
		rate = 1
	}
	for _, d := range e.Drops {
		if util.Chance(rng, d.Rate*rate) {
			l.Items = append(l.Items, d.Item)
		}
	}
	return l
}
