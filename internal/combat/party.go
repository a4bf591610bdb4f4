package combat

// Roster owns every combatant of a battle. Slots are stable for the whole
// battle, so conditions and statistics can refer to a combatant by slot.
type Roster struct {
	members []*Combatant
}

func NewRoster() *Roster { return &Roster{} }

// Add assigns c the next slot and returns it.
func (r *Roster) Add(c *Combatant) int {
	c.Slot = len(r.members)
	r.members = append(r.members, c)
	return c.Slot
}

func (r *Roster) Len() int { return len(r.members) }

// Member returns the combatant in slot regardless of state, or nil.
func (r *Roster) Member(slot int) *Combatant {
	if slot < 0 || slot >= len(r.members) {
		return nil
	}
	return r.members[slot]
}

// Get returns the combatant in slot only while it is alive and active.
func (r *Roster) Get(slot int) *Combatant {
	c := r.Member(slot)
	if c == nil || !c.Alive || !c.Active {
		return nil
	}
	return c
}

func (r *Roster) All() []*Combatant { return r.members }

func (r *Roster) Living(side Side) []*Combatant {
	var out []*Combatant
	for _, c := range r.members {
		if c.Alive && c.Active && c.Side == side {
			out = append(out, c)
		}
	}
	return out
}

func (r *Roster) AnyAlive(side Side) bool {
	for _, c := range r.members {
		if c.Alive && c.Active && c.Side == side {
			return true
		}
	}
	return false
}

// Find looks a combatant up by its scenario id.
func (r *Roster) Find(id string) *Combatant {
	for _, c := range r.members {
		if c.ID == id {
			return c
		}
	}
	return nil
}
