package config

// ItemsConfig is shared by weapons.yaml and equipment.yaml.
type ItemsConfig struct {
	Items []ItemDef `yaml:"items"`
}

type ItemDef struct {
	ID              int          `yaml:"id"`
	Name            string       `yaml:"name"`
	Slot            string       `yaml:"slot"` // weapon | shield | armor | accessory
	Category        int          `yaml:"category"`
	SocketCount     int          `yaml:"socket_count"`
	HP              int          `yaml:"hp"`
	PhysicalAttack  float64      `yaml:"physical_attack"`
	MagicalAttack   float64      `yaml:"magical_attack"`
	PhysicalDefense float64      `yaml:"physical_defense"`
	MagicalDefense  float64      `yaml:"magical_defense"`
	ResistCondition float64      `yaml:"resist_condition"`
	GuardChance     float64      `yaml:"guard_chance"`
	CritChance      float64      `yaml:"crit_chance"`
	CritDamage      float64      `yaml:"crit_damage"`
	AttackDelay     float64      `yaml:"attack_delay"`
	Speed           float64      `yaml:"speed"`
	UnitThrough     int          `yaml:"unit_through"`
	ObjectThrough   int          `yaml:"object_through"`
	AttackSize      float64      `yaml:"attack_size"`
	Knockback       float64      `yaml:"knockback"`
	AttackRange     float64      `yaml:"attack_range"`
	StanceDuration  float64      `yaml:"stance_duration"`
	StanceDelay     float64      `yaml:"stance_delay"`
	Teleport        bool         `yaml:"teleport"`
	Escape          bool         `yaml:"escape"`
	FixedRunes      []RuneRefDef `yaml:"fixed_runes"`
	Note            string       `yaml:"note"`
}

type RuneRefDef struct {
	ID    int `yaml:"id"`
	Level int `yaml:"level"`
}
