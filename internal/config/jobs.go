package config

type JobsConfig struct {
	Jobs []JobDef `yaml:"jobs"`
}

type StatLineDef struct {
	Magic           float64 `yaml:"magic"`
	Str             float64 `yaml:"str"`
	Dex             float64 `yaml:"dex"`
	ResistCondition float64 `yaml:"resist_condition"`
	UnitThrough     float64 `yaml:"unit_through"`
	ObjectThrough   float64 `yaml:"object_through"`
	Knockback       float64 `yaml:"knockback"`
}

type JobDef struct {
	ID               int         `yaml:"id"`
	Name             string      `yaml:"name"`
	Role             string      `yaml:"role"` // tank | assassin | healer | knight
	Base             StatLineDef `yaml:"base"`
	PerLevel         StatLineDef `yaml:"per_level"`
	LevelScaleFactor float64     `yaml:"level_scale_factor"`
	TargetSameSide   bool        `yaml:"target_same_side"`
	Teleport         bool        `yaml:"teleport"`
	Escape           bool        `yaml:"escape"`
	InitWeapon       int         `yaml:"init_weapon"`
	InitShield       int         `yaml:"init_shield"`
	InitArmor        int         `yaml:"init_armor"`
	InitAccessory    int         `yaml:"init_accessory"`
	Note             string      `yaml:"note"`
}
