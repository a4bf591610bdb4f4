package config

type RunesConfig struct {
	Runes []RuneDef `yaml:"runes"`
}

type RuneDef struct {
	ID       int           `yaml:"id"`
	Name     string        `yaml:"name"`
	Ability  string        `yaml:"ability"`
	MaxLevel int           `yaml:"max_level"`
	Price    int           `yaml:"price"`
	Levels   []RuneTierDef `yaml:"levels"`
	Note     string        `yaml:"note"`
}

// RuneTierDef is one level column. Multiplicative fields left at 0 mean "unchanged".
type RuneTierDef struct {
	PhysicalPower   float64 `yaml:"physical_power"`
	MagicalPower    float64 `yaml:"magical_power"`
	PhysicalDefense float64 `yaml:"physical_defense"`
	MagicalDefense  float64 `yaml:"magical_defense"`
	Delay           float64 `yaml:"delay"`
	Speed           float64 `yaml:"speed"`
	MoveSpeed       float64 `yaml:"move_speed"`
	Scale           float64 `yaml:"scale"`
	Distance        float64 `yaml:"distance"`
	Time            float64 `yaml:"time"`
	CritChance      float64 `yaml:"crit_chance"`
	CritDamage      float64 `yaml:"crit_damage"`
	Knockback       float64 `yaml:"knockback"`
	Guard           float64 `yaml:"guard"`

	AddLevel       int     `yaml:"add_level"`
	UnitThrough    int     `yaml:"unit_through"`
	ObjectThrough  int     `yaml:"object_through"`
	Lifesteal      float64 `yaml:"lifesteal"`
	ComboDamage    float64 `yaml:"combo_damage"`
	ComboCritical  int     `yaml:"combo_critical"`
	ConditionGuard float64 `yaml:"condition_guard"`
	ConditionRate  float64 `yaml:"condition_rate"`
	PoisonTime     float64 `yaml:"poison_time"`
	BleedTime      float64 `yaml:"bleed_time"`

	Guards  ConditionTableDef `yaml:"guards"`
	Inflict ConditionTableDef `yaml:"inflict"`
}

// ConditionTableDef holds one value per status condition.
type ConditionTableDef struct {
	Poison      float64 `yaml:"poison"`
	Bleed       float64 `yaml:"bleed"`
	Stun        float64 `yaml:"stun"`
	Paralysis   float64 `yaml:"paralysis"`
	Weaken      float64 `yaml:"weaken"`
	DefenseDown float64 `yaml:"defense_down"`
	Regen       float64 `yaml:"regen"`
}
