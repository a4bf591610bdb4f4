// Package gear manages a combatant's equipped items and rune sockets.
package gear

import (
	"errors"
	"fmt"

	"runeclash/internal/catalog"
)

// MaxSubSlots caps the sub-rune sockets regardless of the weapon's socket count.
const MaxSubSlots = 4

var (
	ErrNoStorage      = errors.New("gear: not enough rune storage")
	ErrFixedRune      = errors.New("gear: rune is fixed to the weapon")
	ErrSlotOutOfRange = errors.New("gear: sub slot out of range")
	ErrRuneLevel      = errors.New("gear: invalid rune level")
	ErrWrongSlot      = errors.New("gear: item does not fit slot")
)

type EquippedRune struct {
	RuneID int
	Level  int
	Fixed  bool
}

func (r EquippedRune) Empty() bool { return r.RuneID == 0 }

// Catalog is the lookup surface gear needs.
type Catalog interface {
	FindWeapon(id int) (*catalog.Item, error)
	FindEquipment(id int) (*catalog.Item, error)
	FindRune(id int) (*catalog.Rune, error)
}

// Storage receives runes pushed out of sockets.
type Storage interface {
	Free() int
	Put(EquippedRune) error
	// PutAll stores every rune or, on error, none of them.
	PutAll([]EquippedRune) error
}

// Loadout is the item ids and runes one combatant carries. Id 0 means empty.
type Loadout struct {
	Weapon    int
	Shield    int
	Armor     int
	Accessory int
	Main      *EquippedRune
	Subs      []EquippedRune
}

func SubSlots(weapon *catalog.Item) int {
	if weapon == nil {
		return 0
	}
	return min(weapon.SocketCount, MaxSubSlots)
}

// Runes lists the main rune then every filled sub socket.
func (l *Loadout) Runes() []EquippedRune {
	out := make([]EquippedRune, 0, 1+len(l.Subs))
	if l.Main != nil && !l.Main.Empty() {
		out = append(out, *l.Main)
	}
	for _, r := range l.Subs {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

func checkLevel(cat Catalog, r EquippedRune) error {
	def, err := cat.FindRune(r.RuneID)
	if err != nil {
		return err
	}
	if r.Level < 1 || r.Level > def.MaxLevel {
		return fmt.Errorf("rune %d level %d: %w", r.RuneID, r.Level, ErrRuneLevel)
	}
	return nil
}

// EquipWeapon swaps the weapon. The old weapon's fixed runes leave with it,
// the new weapon's fixed runes take the first sockets, and player runes that no
// longer fit go to storage. Nothing changes if storage cannot hold the overflow.
func (l *Loadout) EquipWeapon(cat Catalog, id int, storage Storage) error {
	w, err := cat.FindWeapon(id)
	if err != nil {
		return err
	}
	n := SubSlots(w)

	subs := make([]EquippedRune, n)
	k := 0
	for _, ref := range w.FixedRunes {
		if k == n {
			break
		}
		subs[k] = EquippedRune{RuneID: ref.ID, Level: ref.Level, Fixed: true}
		k++
	}

	var overflow []EquippedRune
	for _, r := range l.Subs {
		if r.Empty() || r.Fixed {
			continue
		}
		if k < n {
			subs[k] = r
			k++
			continue
		}
		overflow = append(overflow, r)
	}
	if len(overflow) > 0 {
		if storage == nil || storage.Free() < len(overflow) {
			return fmt.Errorf("equip weapon %d: %d runes to store: %w", id, len(overflow), ErrNoStorage)
		}
		if err := storage.PutAll(overflow); err != nil {
			return fmt.Errorf("equip weapon %d: %w", id, err)
		}
	}
	l.Weapon = id
	l.Subs = subs
	return nil
}

// EquipItem puts a shield, armor or accessory on. Id 0 unequips.
func (l *Loadout) EquipItem(cat Catalog, slot catalog.Slot, id int) error {
	if id != 0 {
		it, err := cat.FindEquipment(id)
		if err != nil {
			return err
		}
		if it.Slot != slot {
			return fmt.Errorf("item %d is %s, not %s: %w", id, it.Slot, slot, ErrWrongSlot)
		}
	}
	switch slot {
	case catalog.SlotShield:
		l.Shield = id
	case catalog.SlotArmor:
		l.Armor = id
	case catalog.SlotAccessory:
		l.Accessory = id
	default:
		return fmt.Errorf("slot %s: %w", slot, ErrWrongSlot)
	}
	return nil
}

// SetMain installs the main rune and returns what was there.
func (l *Loadout) SetMain(cat Catalog, r EquippedRune) (EquippedRune, error) {
	if err := checkLevel(cat, r); err != nil {
		return EquippedRune{}, err
	}
	var prev EquippedRune
	if l.Main != nil {
		prev = *l.Main
	}
	r.Fixed = false
	l.Main = &r
	return prev, nil
}

// SetSub installs a rune into a sub socket and returns what was there.
func (l *Loadout) SetSub(cat Catalog, slot int, r EquippedRune) (EquippedRune, error) {
	if slot < 0 || slot >= len(l.Subs) {
		return EquippedRune{}, fmt.Errorf("slot %d of %d: %w", slot, len(l.Subs), ErrSlotOutOfRange)
	}
	if l.Subs[slot].Fixed {
		return EquippedRune{}, ErrFixedRune
	}
	if err := checkLevel(cat, r); err != nil {
		return EquippedRune{}, err
	}
	prev := l.Subs[slot]
	r.Fixed = false
	l.Subs[slot] = r
	return prev, nil
}

// RemoveSub moves a sub rune into storage.
func (l *Loadout) RemoveSub(slot int, storage Storage) error {
	if slot < 0 || slot >= len(l.Subs) {
		return fmt.Errorf("slot %d of %d: %w", slot, len(l.Subs), ErrSlotOutOfRange)
	}
	r := l.Subs[slot]
	if r.Empty() {
		return nil
	}
	if r.Fixed {
		return ErrFixedRune
	}
	if storage == nil || storage.Free() < 1 {
		return ErrNoStorage
	}
	if err := storage.Put(r); err != nil {
		return err
	}
	l.Subs[slot] = EquippedRune{}
	return nil
}

// Clone returns a deep copy.
func (l Loadout) Clone() Loadout {
	out := l
	if l.Main != nil {
		m := *l.Main
		out.Main = &m
	}
	out.Subs = append([]EquippedRune(nil), l.Subs...)
	return out
}
