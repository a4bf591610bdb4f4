// Package condition tracks timed status effects on one combatant.
// Effects advance on a fixed 2s cadence regardless of the caller's step size.
package condition

import "fmt"

type Kind int

const (
	Poison Kind = iota
	Bleed
	Stun
	Paralysis
	Weaken
	DefenseDown
	Lifesteal
	Regen

	kindCount
)

// Kinds lists every condition in declaration order.
var Kinds = [...]Kind{Poison, Bleed, Stun, Paralysis, Weaken, DefenseDown, Lifesteal, Regen}

var kindNames = [kindCount]string{"poison", "bleed", "stun", "paralysis", "weaken", "defenseDown", "lifesteal", "regen"}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

const (
	TickInterval = 2.0
	MaxStacks    = 3
	// NoOrigin marks an effect with no attacker to credit.
	NoOrigin = -1
)

func Negative(k Kind) bool {
	switch k {
	case Poison, Bleed, Stun, Paralysis, Weaken, DefenseDown:
		return true
	}
	return false
}

// Timed reports whether the condition runs down. Lifesteal is passive.
func Timed(k Kind) bool { return k != Lifesteal }

func Stackable(k Kind) bool { return k == Poison || k == Bleed }

// EffectiveChance is the percent chance an infliction lands after the defender's resist and guard.
func EffectiveChance(chance, resist, guard float64) float64 {
	p := chance * (1 - clampPct(resist)/100) * (1 - clampPct(guard)/100)
	if p < 0 {
		return 0
	}
	return p
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

type Slot struct {
	Active    bool
	Remaining float64
	// Amount is the per-stack magnitude: damage per tick for Poison/Bleed, heal percent for Regen.
	Amount float64
	Stacks int
	Origin int
}

// Magnitude is the per-tick value after stacking.
func (s Slot) Magnitude() float64 {
	if s.Stacks > 1 {
		return s.Amount * float64(s.Stacks)
	}
	return s.Amount
}

// Outcome is one per-tick result the owner must apply.
type Outcome struct {
	Kind        Kind
	Damage      float64
	HealPercent float64
	Origin      int
	Expired     bool
}

// Flags is the active-condition bitset read by stat aggregation.
type Flags uint16

func (f Flags) Has(k Kind) bool { return f&(1<<uint(k)) != 0 }

func (f Flags) With(k Kind) Flags { return f | 1<<uint(k) }

// AnyNegative reports whether any debuff is active.
func (f Flags) AnyNegative() bool {
	for _, k := range Kinds {
		if Negative(k) && f.Has(k) {
			return true
		}
	}
	return false
}

type Set struct {
	slots [kindCount]Slot
	acc   float64
	dirty bool
}

func (s *Set) Get(k Kind) Slot { return s.slots[k] }

func (s *Set) Active(k Kind) bool { return s.slots[k].Active }

func (s *Set) Flags() Flags {
	var f Flags
	for _, k := range Kinds {
		if s.slots[k].Active {
			f = f.With(k)
		}
	}
	return f
}

// Inflict applies a condition. Non-stackable kinds refuse while active.
// Poison and Bleed add a stack up to MaxStacks, keep the larger per-stack amount
// and refresh duration to the longer of remaining and new.
func (s *Set) Inflict(k Kind, amount, duration float64, origin int) bool {
	if k < 0 || k >= kindCount {
		return false
	}
	sl := &s.slots[k]
	if sl.Active {
		if !Stackable(k) {
			return false
		}
		if sl.Stacks < MaxStacks {
			sl.Stacks++
		}
		if amount > sl.Amount {
			sl.Amount = amount
		}
		if duration > sl.Remaining {
			sl.Remaining = duration
		}
		sl.Origin = origin
		return true
	}
	if Timed(k) && duration <= 0 {
		return false
	}
	*sl = Slot{Active: true, Remaining: duration, Amount: amount, Stacks: 1, Origin: origin}
	s.dirty = true
	return true
}

// Advance accumulates dt and runs each whole tick. Per tick, damage and healing
// are reported first and then durations decrement; slots at or below zero clear.
func (s *Set) Advance(dt float64) []Outcome {
	if dt <= 0 {
		return nil
	}
	s.acc += dt
	var out []Outcome
	for s.acc >= TickInterval {
		s.acc -= TickInterval
		out = s.tick(out)
	}
	return out
}

func (s *Set) tick(out []Outcome) []Outcome {
	for _, k := range Kinds {
		sl := &s.slots[k]
		if !sl.Active || !Timed(k) {
			continue
		}
		o := Outcome{Kind: k, Origin: sl.Origin}
		switch k {
		case Poison, Bleed:
			o.Damage = sl.Magnitude()
		case Regen:
			o.HealPercent = sl.Magnitude()
		}
		sl.Remaining -= TickInterval
		if sl.Remaining <= 0 {
			*sl = Slot{}
			o.Expired = true
			s.dirty = true
		}
		if o.Damage > 0 || o.HealPercent > 0 || o.Expired {
			out = append(out, o)
		}
	}
	return out
}

// SetPassive sets an untimed condition's magnitude, zero turning it off.
// It does not mark the set dirty.
func (s *Set) SetPassive(k Kind, amount float64) {
	if k < 0 || k >= kindCount || Timed(k) {
		return
	}
	if amount <= 0 {
		s.slots[k] = Slot{}
		return
	}
	s.slots[k] = Slot{Active: true, Amount: amount, Stacks: 1, Origin: NoOrigin}
}

// TakeDirty reports whether the active set changed since the last call and resets the mark.
func (s *Set) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Clear drops every condition, e.g. on death.
func (s *Set) Clear() {
	had := s.Flags() != 0
	*s = Set{dirty: had}
}

// Forget rewrites origin references to a roster slot that no longer exists.
func (s *Set) Forget(origin int) {
	for i := range s.slots {
		if s.slots[i].Origin == origin {
			s.slots[i].Origin = NoOrigin
		}
	}
}
