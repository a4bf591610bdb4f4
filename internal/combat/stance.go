package combat

import (
	"context"

	"github.com/looplab/fsm"
)

type StanceState string

const (
	StanceApproaching StanceState = "approaching"
	StanceHolding     StanceState = "in_stance"
	StanceDelay       StanceState = "post_stance_delay"
)

const (
	eventEngage  = "engage"
	eventRelease = "release"
	eventRecover = "recover"
)

// Stance is the attack-stance cycle: approach until in range, hold for a
// duration, then wait out a delay before approaching again.
type Stance struct {
	fsm   *fsm.FSM
	until float64
}

func NewStance() *Stance {
	s := &Stance{}
	s.fsm = fsm.NewFSM(
		string(StanceApproaching),
		fsm.Events{
			{Name: eventEngage, Src: []string{string(StanceApproaching)}, Dst: string(StanceHolding)},
			{Name: eventRelease, Src: []string{string(StanceHolding)}, Dst: string(StanceDelay)},
			{Name: eventRecover, Src: []string{string(StanceDelay)}, Dst: string(StanceApproaching)},
		},
		fsm.Callbacks{
			"enter_" + string(StanceHolding): s.enterTimed,
			"enter_" + string(StanceDelay):   s.enterTimed,
		},
	)
	return s
}

func (s *Stance) enterTimed(_ context.Context, e *fsm.Event) {
	if len(e.Args) > 0 {
		if t, ok := e.Args[0].(float64); ok {
			s.until = t
		}
	}
}

func (s *Stance) State() StanceState { return StanceState(s.fsm.Current()) }

// Holding reports whether the combatant must stay put.
func (s *Stance) Holding() bool { return !s.fsm.Is(string(StanceApproaching)) }

// InStance reports whether a stance shooter may fire.
func (s *Stance) InStance() bool { return s.fsm.Is(string(StanceHolding)) }

// Update advances the cycle at now. It returns true when the state changed.
func (s *Stance) Update(now float64, inRange bool, duration, delay float64) bool {
	ctx := context.Background()
	switch s.State() {
	case StanceApproaching:
		if inRange {
			return s.fsm.Event(ctx, eventEngage, now+duration) == nil
		}
	case StanceHolding:
		if now >= s.until {
			return s.fsm.Event(ctx, eventRelease, now+delay) == nil
		}
	case StanceDelay:
		if now >= s.until {
			if s.fsm.Event(ctx, eventRecover) != nil {
				return false
			}
			if inRange {
				_ = s.fsm.Event(ctx, eventEngage, now+duration)
			}
			return true
		}
	}
	return false
}

// Reset drops back to approaching.
func (s *Stance) Reset() {
	s.fsm.SetState(string(StanceApproaching))
	s.until = 0
}
