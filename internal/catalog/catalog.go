// Package catalog holds the immutable job, item, rune and enemy tables a battle reads from.
package catalog

import (
	"errors"
	"fmt"

	"runeclash/internal/config"
)

var ErrNotFound = errors.New("catalog: not found")

type Catalog struct {
	jobs      map[int]*Job
	weapons   map[int]*Item
	equipment map[int]*Item
	runes     map[int]*Rune
	enemies   map[int]*Enemy
}

// New converts decoded config into lookup tables.
// Duplicate ids, unknown roles/slots/abilities and bad rune levels fail the load.
func New(cfg *config.Catalog) (*Catalog, error) {
	c := &Catalog{
		jobs:      make(map[int]*Job, len(cfg.Jobs.Jobs)),
		weapons:   make(map[int]*Item, len(cfg.Weapons.Items)),
		equipment: make(map[int]*Item, len(cfg.Equipment.Items)),
		runes:     make(map[int]*Rune, len(cfg.Runes.Runes)),
		enemies:   make(map[int]*Enemy, len(cfg.Enemies.Enemies)),
	}
	for _, d := range cfg.Jobs.Jobs {
		if err := c.addJob(d); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.Weapons.Items {
		if err := addItem(c.weapons, d, true); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.Equipment.Items {
		if err := addItem(c.equipment, d, false); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.Runes.Runes {
		if err := c.addRune(d); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.Enemies.Enemies {
		if err := c.addEnemy(d); err != nil {
			return nil, err
		}
	}
	if err := c.checkRefs(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addJob(d config.JobDef) error {
	if _, dup := c.jobs[d.ID]; dup {
		return fmt.Errorf("job %d: duplicate id", d.ID)
	}
	role, err := parseRole(d.Role)
	if err != nil {
		return fmt.Errorf("job %d: %w", d.ID, err)
	}
	scale := d.LevelScaleFactor
	if scale <= 0 {
		scale = 1
	}
	c.jobs[d.ID] = &Job{
		ID:               d.ID,
		Name:             d.Name,
		Role:             role,
		Base:             statLine(d.Base),
		PerLevel:         statLine(d.PerLevel),
		LevelScaleFactor: scale,
		TargetSameSide:   d.TargetSameSide,
		Teleport:         d.Teleport,
		Escape:           d.Escape,
		InitWeapon:       d.InitWeapon,
		InitShield:       d.InitShield,
		InitArmor:        d.InitArmor,
		InitAccessory:    d.InitAccessory,
	}
	return nil
}

// addItem files d under into. Weapons and the other slots live in separate
// tables, so a weapon in the equipment table is rejected and vice versa.
func addItem(into map[int]*Item, d config.ItemDef, weapons bool) error {
	if _, dup := into[d.ID]; dup {
		return fmt.Errorf("item %d: duplicate id", d.ID)
	}
	slot, err := parseSlot(d.Slot)
	if err != nil {
		return fmt.Errorf("item %d: %w", d.ID, err)
	}
	if (slot == SlotWeapon) != weapons {
		return fmt.Errorf("item %d: slot %s in the wrong table", d.ID, slot)
	}
	fixed := make([]RuneRef, 0, len(d.FixedRunes))
	for _, r := range d.FixedRunes {
		fixed = append(fixed, RuneRef(r))
	}
	into[d.ID] = &Item{
		ID:              d.ID,
		Name:            d.Name,
		Slot:            slot,
		Category:        d.Category,
		SocketCount:     d.SocketCount,
		HP:              d.HP,
		PhysicalAttack:  d.PhysicalAttack,
		MagicalAttack:   d.MagicalAttack,
		PhysicalDefense: d.PhysicalDefense,
		MagicalDefense:  d.MagicalDefense,
		ResistCondition: d.ResistCondition,
		GuardChance:     d.GuardChance,
		CritChance:      d.CritChance,
		CritDamage:      d.CritDamage,
		AttackDelay:     d.AttackDelay,
		Speed:           d.Speed,
		UnitThrough:     d.UnitThrough,
		ObjectThrough:   d.ObjectThrough,
		AttackSize:      d.AttackSize,
		Knockback:       d.Knockback,
		AttackRange:     d.AttackRange,
		StanceDuration:  d.StanceDuration,
		StanceDelay:     d.StanceDelay,
		Teleport:        d.Teleport,
		Escape:          d.Escape,
		FixedRunes:      fixed,
	}
	return nil
}

func (c *Catalog) addRune(d config.RuneDef) error {
	if _, dup := c.runes[d.ID]; dup {
		return fmt.Errorf("rune %d: duplicate id", d.ID)
	}
	effect, err := ParseEffect(d.Ability)
	if err != nil {
		return fmt.Errorf("rune %d: %w", d.ID, err)
	}
	maxLevel := d.MaxLevel
	if maxLevel == 0 {
		maxLevel = len(d.Levels)
	}
	if maxLevel < 1 || maxLevel > MaxRuneLevel {
		return fmt.Errorf("rune %d: max level %d outside 1..%d", d.ID, maxLevel, MaxRuneLevel)
	}
	if len(d.Levels) > MaxRuneLevel {
		return fmt.Errorf("rune %d: %d level columns, want at most %d", d.ID, len(d.Levels), MaxRuneLevel)
	}
	r := &Rune{ID: d.ID, Name: d.Name, Effect: effect, MaxLevel: maxLevel, Price: d.Price}
	for i := range r.Tiers {
		var td config.RuneTierDef
		if i < len(d.Levels) {
			td = d.Levels[i]
		}
		r.Tiers[i] = runeTier(td)
	}
	c.runes[d.ID] = r
	return nil
}

func (c *Catalog) addEnemy(d config.EnemyDef) error {
	if _, dup := c.enemies[d.ID]; dup {
		return fmt.Errorf("enemy %d: duplicate id", d.ID)
	}
	drops := make([]Drop, 0, len(d.Drops))
	for _, dr := range d.Drops {
		drops = append(drops, Drop(dr))
	}
	c.enemies[d.ID] = &Enemy{
		ID:        d.ID,
		Name:      d.Name,
		Job:       d.Job,
		AddLevel:  d.AddLevel,
		Weapon:    d.Weapon,
		Shield:    d.Shield,
		Armor:     d.Armor,
		Accessory: d.Accessory,
		Drops:     drops,
		Exp:       d.Exp,
		Gold:      d.Gold,
	}
	return nil
}

// checkRefs catches fixed runes and enemy jobs that point nowhere.
func (c *Catalog) checkRefs() error {
	for _, w := range c.weapons {
		if len(w.FixedRunes) > w.SocketCount {
			return fmt.Errorf("weapon %d: %d fixed runes for %d sockets", w.ID, len(w.FixedRunes), w.SocketCount)
		}
		for _, ref := range w.FixedRunes {
			r, err := c.FindRune(ref.ID)
			if err != nil {
				return fmt.Errorf("weapon %d fixed rune: %w", w.ID, err)
			}
			if _, err := r.Tier(ref.Level); err != nil {
				return fmt.Errorf("weapon %d fixed rune: %w", w.ID, err)
			}
		}
	}
	for _, e := range c.enemies {
		if _, err := c.FindJob(e.Job); err != nil {
			return fmt.Errorf("enemy %d: %w", e.ID, err)
		}
	}
	return nil
}

func (c *Catalog) FindJob(id int) (*Job, error) {
	if j, ok := c.jobs[id]; ok {
		return j, nil
	}
	return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
}

func (c *Catalog) FindWeapon(id int) (*Item, error) {
	if it, ok := c.weapons[id]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("weapon %d: %w", id, ErrNotFound)
}

func (c *Catalog) FindEquipment(id int) (*Item, error) {
	if it, ok := c.equipment[id]; ok {
		return it, nil
	}
	return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
}

func (c *Catalog) FindRune(id int) (*Rune, error) {
	if r, ok := c.runes[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("rune %d: %w", id, ErrNotFound)
}

func (c *Catalog) FindEnemy(id int) (*Enemy, error) {
	if e, ok := c.enemies[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("enemy %d: %w", id, ErrNotFound)
}
