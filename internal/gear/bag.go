package gear

// Bag is a fixed-capacity rune storage.
type Bag struct {
	capacity int
	items    []EquippedRune
}

func NewBag(capacity int) *Bag {
	return &Bag{capacity: capacity}
}

func (b *Bag) Free() int { return b.capacity - len(b.items) }

func (b *Bag) Put(r EquippedRune) error {
	if b.Free() < 1 {
		return ErrNoStorage
	}
	r.Fixed = false
	b.items = append(b.items, r)
	return nil
}

func (b *Bag) PutAll(rs []EquippedRune) error {
	if b.Free() < len(rs) {
		return ErrNoStorage
	}
	for _, r := range rs {
		r.Fixed = false
		b.items = append(b.items, r)
	}
	return nil
}

// Take removes and returns the rune at i.
func (b *Bag) Take(i int) (EquippedRune, bool) {
	if i < 0 || i >= len(b.items) {
		return EquippedRune{}, false
	}
	r := b.items[i]
	b.items = append(b.items[:i], b.items[i+1:]...)
	return r, true
}

func (b *Bag) Items() []EquippedRune {
	return append([]EquippedRune(nil), b.items...)
}
