package catalog

import (
	"fmt"

	"runeclash/internal/config"
)

type Role int

const (
	RoleNone Role = iota
	RoleTank
	RoleAssassin
	RoleHealer
	RoleKnight
)

func parseRole(s string) (Role, error) {
	switch s {
	case "":
		return RoleNone, nil
	case "tank":
		return RoleTank, nil
	case "assassin":
		return RoleAssassin, nil
	case "healer":
		return RoleHealer, nil
	case "knight":
		return RoleKnight, nil
	}
	return RoleNone, fmt.Errorf("unknown job role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleTank:
		return "tank"
	case RoleAssassin:
		return "assassin"
	case RoleHealer:
		return "healer"
	case RoleKnight:
		return "knight"
	}
	return "none"
}

// StatLine is one row of job attributes, used for both base and per-level growth.
type StatLine struct {
	Magic           float64
	Str             float64
	Dex             float64
	ResistCondition float64
	UnitThrough     float64
	ObjectThrough   float64
	Knockback       float64
}

func statLine(d config.StatLineDef) StatLine {
	return StatLine(d)
}

type Job struct {
	ID               int
	Name             string
	Role             Role
	Base             StatLine
	PerLevel         StatLine
	LevelScaleFactor float64
	TargetSameSide   bool
	Teleport         bool
	Escape           bool
	InitWeapon       int
	InitShield       int
	InitArmor        int
	InitAccessory    int
}

type Slot int

const (
	SlotWeapon Slot = iota
	SlotShield
	SlotArmor
	SlotAccessory
)

func parseSlot(s string) (Slot, error) {
	switch s {
	case "weapon":
		return SlotWeapon, nil
	case "shield":
		return SlotShield, nil
	case "armor":
		return SlotArmor, nil
	case "accessory":
		return SlotAccessory, nil
	}
	return SlotWeapon, fmt.Errorf("unknown item slot %q", s)
}

func (s Slot) String() string {
	switch s {
	case SlotShield:
		return "shield"
	case SlotArmor:
		return "armor"
	case SlotAccessory:
		return "accessory"
	}
	return "weapon"
}

type RuneRef struct {
	ID    int
	Level int
}

// Item is a weapon or a piece of equipment. Stats are additive contributions.
type Item struct {
	ID              int
	Name            string
	Slot            Slot
	Category        int
	SocketCount     int
	HP              int
	PhysicalAttack  float64
	MagicalAttack   float64
	PhysicalDefense float64
	MagicalDefense  float64
	ResistCondition float64
	GuardChance     float64
	CritChance      float64
	CritDamage      float64
	AttackDelay     float64
	Speed           float64
	UnitThrough     int
	ObjectThrough   int
	AttackSize      float64
	Knockback       float64
	AttackRange     float64
	StanceDuration  float64
	StanceDelay     float64
	Teleport        bool
	Escape          bool
	FixedRunes      []RuneRef
}

// ConditionTable carries one value per status condition that runes can grant or guard.
type ConditionTable struct {
	Poison      float64
	Bleed       float64
	Stun        float64
	Paralysis   float64
	Weaken      float64
	DefenseDown float64
	Regen       float64
}

func (t ConditionTable) Add(o ConditionTable) ConditionTable {
	return ConditionTable{
		Poison:      t.Poison + o.Poison,
		Bleed:       t.Bleed + o.Bleed,
		Stun:        t.Stun + o.Stun,
		Paralysis:   t.Paralysis + o.Paralysis,
		Weaken:      t.Weaken + o.Weaken,
		DefenseDown: t.DefenseDown + o.DefenseDown,
		Regen:       t.Regen + o.Regen,
	}
}

// RuneTier is one level column of a rune. Multiplicative fields are never 0 after load.
type RuneTier struct {
	PhysicalPower   float64
	MagicalPower    float64
	PhysicalDefense float64
	MagicalDefense  float64
	Delay           float64
	Speed           float64
	MoveSpeed       float64
	Scale           float64
	Distance        float64
	Time            float64
	CritChance      float64
	CritDamage      float64
	Knockback       float64
	Guard           float64

	AddLevel       int
	UnitThrough    int
	ObjectThrough  int
	Lifesteal      float64
	ComboDamage    float64
	ComboCritical  int
	ConditionGuard float64
	ConditionRate  float64
	PoisonTime     float64
	BleedTime      float64
	Guards         ConditionTable
	Inflict        ConditionTable
}

func one(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func runeTier(d config.RuneTierDef) RuneTier {
	return RuneTier{
		PhysicalPower:   one(d.PhysicalPower),
		MagicalPower:    one(d.MagicalPower),
		PhysicalDefense: one(d.PhysicalDefense),
		MagicalDefense:  one(d.MagicalDefense),
		Delay:           one(d.Delay),
		Speed:           one(d.Speed),
		MoveSpeed:       one(d.MoveSpeed),
		Scale:           one(d.Scale),
		Distance:        one(d.Distance),
		Time:            one(d.Time),
		CritChance:      one(d.CritChance),
		CritDamage:      one(d.CritDamage),
		Knockback:       one(d.Knockback),
		Guard:           one(d.Guard),
		AddLevel:        d.AddLevel,
		UnitThrough:     d.UnitThrough,
		ObjectThrough:   d.ObjectThrough,
		Lifesteal:       d.Lifesteal,
		ComboDamage:     d.ComboDamage,
		ComboCritical:   d.ComboCritical,
		ConditionGuard:  d.ConditionGuard,
		ConditionRate:   d.ConditionRate,
		PoisonTime:      d.PoisonTime,
		BleedTime:       d.BleedTime,
		Guards:          ConditionTable(d.Guards),
		Inflict:         ConditionTable(d.Inflict),
	}
}

// MaxRuneLevel is the number of tier columns on a rune.
const MaxRuneLevel = 3

type Rune struct {
	ID       int
	Name     string
	Effect   RuneEffect
	MaxLevel int
	Price    int
	Tiers    [MaxRuneLevel]RuneTier
}

// Tier returns the column for level 1..MaxLevel.
func (r *Rune) Tier(level int) (RuneTier, error) {
	if level < 1 || level > r.MaxLevel {
		return RuneTier{}, fmt.Errorf("rune %d: level %d outside 1..%d", r.ID, level, r.MaxLevel)
	}
	return r.Tiers[level-1], nil
}

type Drop struct {
	Item int
	Rate float64 // percent
}

type Enemy struct {
	ID        int
	Name      string
	Job       int
	AddLevel  int
	Weapon    int
	Shield    int
	Armor     int
	Accessory int
	Drops     []Drop
	Exp       int
	Gold      int
}

// RoomModifiers are read-only room flags resolved to multipliers.
type RoomModifiers struct {
	DoubleGold     bool
	DoubleExp      bool
	MonsterLevelUp bool
	MonsterHP      float64
	MonsterAttack  float64
	MonsterDefense float64
	DropRate       float64
}

const roomBoost = 1.5

// DefaultRoom has every multiplier at 1.
func DefaultRoom() RoomModifiers {
	return RoomModifiers{MonsterHP: 1, MonsterAttack: 1, MonsterDefense: 1, DropRate: 1}
}

func NewRoom(d config.RoomDef) RoomModifiers {
	r := DefaultRoom()
	r.DoubleGold = d.DoubleGold
	r.DoubleExp = d.DoubleExp
	r.MonsterLevelUp = d.MonsterLevelUp
	if d.MonsterHPUp {
		r.MonsterHP = roomBoost
	}
	if d.MonsterAtkUp {
		r.MonsterAttack = roomBoost
	}
	if d.MonsterDefUp {
		r.MonsterDefense = roomBoost
	}
	if d.ItemDropUp {
		r.DropRate = roomBoost
	}
	return r
}
