// Package stats derives a combatant's combat stat block from job, level, gear, runes and conditions.
package stats

import (
	"fmt"
	"math"

	"runeclash/internal/catalog"
	"runeclash/internal/condition"
	"runeclash/internal/gear"
)

const (
	BaseExp = 10

	baseCritChance   = 5.0
	baseCritDamage   = 1.5
	baseAttackRange  = 0.3
	baseLifetime     = 1.0
	baseDistance     = 3.0
	baseMoveSpeed    = 1.0
	baseSpeed        = 3.0
	baseAttackSize   = 1.0
	baseInflictTime  = 6.0
	defaultStance    = 10.0
	defaultStanceGap = 5.0

	conditionPenalty = 0.7
	tankBulk         = 2.0
	tankSlow         = 0.5
	roleTrait        = 3.0
	ironWallGuard    = 10.0
	easyTargetStep   = -10.0
	hardTargetStep   = 25.0
)

// Catalog is the lookup surface aggregation reads.
type Catalog interface {
	FindJob(id int) (*catalog.Job, error)
	FindWeapon(id int) (*catalog.Item, error)
	FindEquipment(id int) (*catalog.Item, error)
	FindRune(id int) (*catalog.Rune, error)
}

// Inputs is everything a stat block depends on.
type Inputs struct {
	Job         int
	Exp         int
	BonusLevels int
	Loadout     gear.Loadout
	Conditions  condition.Flags
	Room        catalog.RoomModifiers
	Monster     bool
}

// Infliction is what a combatant's hits try to apply.
type Infliction struct {
	Chance   float64 // percent
	Amount   catalog.ConditionTable
	Duration catalog.ConditionTable
}

// Enabled reports whether hits carry kind k.
func (i Infliction) Enabled(k condition.Kind) bool {
	return tableGet(i.Amount, k) > 0
}

func (i Infliction) AmountOf(k condition.Kind) float64   { return tableGet(i.Amount, k) }
func (i Infliction) DurationOf(k condition.Kind) float64 { return tableGet(i.Duration, k) }

type Stats struct {
	Level        int
	NextLevelExp int
	Role         catalog.Role

	MaxHP           float64
	PhysicalAttack  float64
	MagicalAttack   float64
	PhysicalDefense float64
	MagicalDefense  float64
	ResistCondition float64
	AttackDelay     float64 // higher fires faster
	Speed           float64 // projectile speed
	MoveSpeed       float64
	UnitThrough     int
	ObjectThrough   int
	AttackRange     float64
	AttackSize      float64
	AttackLifetime  float64
	AttackDistance  float64
	Knockback       float64 // percent
	Guard           float64 // percent
	CritChance      float64 // percent
	CritDamage      float64
	ComboDamage     float64
	ComboCritical   int
	Lifesteal       float64 // percent of damage dealt
	TargetedFactor  float64

	TargetSameSide bool
	Teleport       bool
	Escape         bool
	Stance         bool
	StanceDuration float64
	StanceDelay    float64

	StatusGuard catalog.ConditionTable
	Inflict     Infliction

	Attribute Attribute
	Swing     WeaponSwing
	Behaviors Behaviors
}

// Level returns the level for exp and the exp needed for the next one.
func Level(exp int, scale float64, bonus int) (level, next int) {
	if scale <= 0 {
		scale = 1
	}
	if exp < 0 {
		exp = 0
	}
	level = int(math.Floor(math.Sqrt(float64(exp)/(BaseExp*scale)))) + bonus + 1
	n := float64(level - bonus)
	next = int(BaseExp * scale * n * n)
	return level, next
}

// Recompute derives the stat block. Unknown ids fail rather than default.
func Recompute(cat Catalog, in Inputs) (Stats, error) {
	job, err := cat.FindJob(in.Job)
	if err != nil {
		return Stats{}, err
	}
	mods, beh, err := collectRunes(cat, in.Loadout.Runes())
	if err != nil {
		return Stats{}, err
	}
	items, weapon, err := collectItems(cat, in.Loadout)
	if err != nil {
		return Stats{}, err
	}

	bonus := in.BonusLevels + mods.addLevel
	if in.Monster && in.Room.MonsterLevelUp {
		bonus++
	}
	var s Stats
	s.Level, s.NextLevelExp = Level(in.Exp, job.LevelScaleFactor, bonus)
	s.Role = job.Role
	s.Behaviors = beh

	lv := float64(s.Level - 1)
	mag := job.Base.Magic + lv*job.PerLevel.Magic
	str := job.Base.Str + lv*job.PerLevel.Str
	dex := job.Base.Dex + lv*job.PerLevel.Dex
	res := job.Base.ResistCondition + lv*job.PerLevel.ResistCondition
	unit := job.Base.UnitThrough + lv*job.PerLevel.UnitThrough
	obj := job.Base.ObjectThrough + lv*job.PerLevel.ObjectThrough
	kb := job.Base.Knockback + lv*job.PerLevel.Knockback

	s.MaxHP = str*10 + items.hp
	s.PhysicalAttack = str + items.physicalAttack
	s.MagicalAttack = mag + items.magicalAttack
	s.PhysicalDefense = str/10 + items.physicalDefense
	s.MagicalDefense = mag/10 + items.magicalDefense
	s.ResistCondition = res/10 + items.resistCondition
	s.AttackDelay = dex/10 + items.attackDelay
	s.Speed = baseSpeed + dex/10 + items.speed
	s.MoveSpeed = baseMoveSpeed
	s.UnitThrough = int(unit) + items.unitThrough
	s.ObjectThrough = int(obj) + items.objectThrough
	s.AttackRange = baseAttackRange + items.attackRange
	s.AttackSize = baseAttackSize + items.attackSize
	s.AttackLifetime = baseLifetime
	s.AttackDistance = baseDistance
	s.Knockback = kb/10 + items.knockback
	s.Guard = items.guard
	s.CritChance = baseCritChance + items.critChance
	s.CritDamage = baseCritDamage + items.critDamage
	s.StanceDuration = items.stanceDuration
	s.StanceDelay = items.stanceDelay

	mods.applyTo(&s)
	applyBehaviors(&s, beh)

	s.TargetSameSide = job.TargetSameSide
	s.Teleport = job.Teleport || items.teleport || beh.Has(catalog.EffectTeleport)
	s.Escape = job.Escape || items.escape || beh.Has(catalog.EffectEscape)
	s.Stance = beh.Has(catalog.EffectStance) || s.StanceDuration > 0
	if s.Stance {
		if s.StanceDuration <= 0 {
			s.StanceDuration = defaultStance
		}
		if s.StanceDelay <= 0 {
			s.StanceDelay = defaultStanceGap
		}
	}
	category := 0
	if weapon != nil {
		category = weapon.Category
	}
	s.Swing = Swing(category)
	s.Attribute = attributeFor(category, job.TargetSameSide)

	applyRole(&s)
	if in.Monster {
		applyRoom(&s, in.Room)
	}
	applyConditions(&s, in.Conditions)
	return s, nil
}

type itemSums struct {
	hp              float64
	physicalAttack  float64
	magicalAttack   float64
	physicalDefense float64
	magicalDefense  float64
	resistCondition float64
	guard           float64
	critChance      float64
	critDamage      float64
	attackDelay     float64
	speed           float64
	unitThrough     int
	objectThrough   int
	attackSize      float64
	knockback       float64
	attackRange     float64
	stanceDuration  float64
	stanceDelay     float64
	teleport        bool
	escape          bool
}

func (t *itemSums) add(it *catalog.Item) {
	t.hp += float64(it.HP)
	t.physicalAttack += it.PhysicalAttack
	t.magicalAttack += it.MagicalAttack
	t.physicalDefense += it.PhysicalDefense
	t.magicalDefense += it.MagicalDefense
	t.resistCondition += it.ResistCondition
	t.guard += it.GuardChance
	t.critChance += it.CritChance
	t.critDamage += it.CritDamage
	t.attackDelay += it.AttackDelay
	t.speed += it.Speed
	t.unitThrough += it.UnitThrough
	t.objectThrough += it.ObjectThrough
	t.attackSize += it.AttackSize
	t.knockback += it.Knockback
	t.attackRange += it.AttackRange
	t.stanceDuration += it.StanceDuration
	t.stanceDelay += it.StanceDelay
	t.teleport = t.teleport || it.Teleport
	t.escape = t.escape || it.Escape
}

func collectItems(cat Catalog, l gear.Loadout) (itemSums, *catalog.Item, error) {
	var sums itemSums
	var weapon *catalog.Item
	if l.Weapon != 0 {
		w, err := cat.FindWeapon(l.Weapon)
		if err != nil {
			return sums, nil, err
		}
		weapon = w
		sums.add(w)
	}
	for _, id := range []int{l.Shield, l.Armor, l.Accessory} {
		if id == 0 {
			continue
		}
		it, err := cat.FindEquipment(id)
		if err != nil {
			return sums, nil, err
		}
		sums.add(it)
	}
	return sums, weapon, nil
}

func collectRunes(cat Catalog, runes []gear.EquippedRune) (modifiers, Behaviors, error) {
	m := newModifiers()
	var b Behaviors
	for _, r := range runes {
		def, err := cat.FindRune(r.RuneID)
		if err != nil {
			return m, b, err
		}
		tier, err := def.Tier(r.Level)
		if err != nil {
			return m, b, fmt.Errorf("aggregate: %w", err)
		}
		m.apply(tier)
		b.add(def.Effect, r.Level)
	}
	return m, b, nil
}

func applyBehaviors(s *Stats, b Behaviors) {
	s.Guard += ironWallGuard * float64(b.Level(catalog.EffectIronWall))
	s.TargetedFactor += easyTargetStep*float64(b.Level(catalog.EffectEasyTarget)) +
		hardTargetStep*float64(b.Level(catalog.EffectHardTarget))
}

func applyRole(s *Stats) {
	switch s.Role {
	case catalog.RoleTank:
		s.MaxHP *= tankBulk
		s.PhysicalDefense *= tankBulk
		s.MagicalDefense *= tankBulk
		s.MoveSpeed *= tankSlow
		s.AttackDelay *= tankSlow
	case catalog.RoleAssassin:
		for _, k := range condition.Kinds {
			if !condition.Negative(k) {
				continue
			}
			tableScale(&s.Inflict.Amount, k, roleTrait)
			tableScale(&s.Inflict.Duration, k, roleTrait)
		}
	case catalog.RoleHealer:
		tableScale(&s.Inflict.Amount, condition.Regen, roleTrait)
	case catalog.RoleKnight:
		s.Lifesteal *= roleTrait
	}
}

func applyRoom(s *Stats, r catalog.RoomModifiers) {
	s.MaxHP *= one(r.MonsterHP)
	s.PhysicalAttack *= one(r.MonsterAttack)
	s.MagicalAttack *= one(r.MonsterAttack)
	s.PhysicalDefense *= one(r.MonsterDefense)
	s.MagicalDefense *= one(r.MonsterDefense)
}

func applyConditions(s *Stats, f condition.Flags) {
	if f.Has(condition.Paralysis) {
		s.MoveSpeed *= conditionPenalty
		s.Speed *= conditionPenalty
		s.AttackDelay *= conditionPenalty
	}
	if f.Has(condition.Weaken) {
		s.PhysicalAttack *= conditionPenalty
		s.MagicalAttack *= conditionPenalty
	}
	if f.Has(condition.DefenseDown) {
		s.PhysicalDefense *= conditionPenalty
		s.MagicalDefense *= conditionPenalty
	}
}

func one(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
