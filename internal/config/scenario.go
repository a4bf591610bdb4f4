package config

type ScenarioConfig struct {
	ID        string         `yaml:"id"`
	Note      string         `yaml:"note"`
	TimeLimit float64        `yaml:"time_limit"`
	Delta     float64        `yaml:"delta"`
	Arena     ArenaDef       `yaml:"arena"`
	Room      RoomDef        `yaml:"room"`
	Control   ControlDef     `yaml:"control"`
	Roster    []CombatantDef `yaml:"roster"`
	Storage   int            `yaml:"rune_storage"`
}

type Vec2Def struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ArenaDef struct {
	Min       Vec2Def       `yaml:"min"`
	Max       Vec2Def       `yaml:"max"`
	Obstacles []ObstacleDef `yaml:"obstacles"`
}

// ObstacleDef is a box when Size is set, otherwise a circle of Radius.
type ObstacleDef struct {
	At     Vec2Def `yaml:"at"`
	Size   Vec2Def `yaml:"size"`
	Radius float64 `yaml:"radius"`
}

type RoomDef struct {
	DoubleGold     bool `yaml:"double_gold"`
	DoubleExp      bool `yaml:"double_exp"`
	MonsterLevelUp bool `yaml:"monster_level_up"`
	MonsterHPUp    bool `yaml:"monster_hp_up"`
	MonsterAtkUp   bool `yaml:"monster_atk_up"`
	MonsterDefUp   bool `yaml:"monster_def_up"`
	ItemDropUp     bool `yaml:"item_drop_up"`
}

// ControlDef overrides controller tuning for every combatant in the scenario.
type ControlDef struct {
	FollowRange       float64 `yaml:"follow_range"`
	FollowWeight      float64 `yaml:"follow_weight"`
	RetargetInterval  float64 `yaml:"retarget_interval"`
	TeleportInterval  float64 `yaml:"teleport_interval"`
	TeleportDistance  float64 `yaml:"teleport_distance"`
	EscapeSpeedMul    float64 `yaml:"escape_speed_mul"`
	EscapeDistanceMul float64 `yaml:"escape_distance_mul"`
	DelayJitter       float64 `yaml:"delay_jitter"`
}

type CombatantDef struct {
	Name      string       `yaml:"name"`
	Side      string       `yaml:"side"` // ally | enemy
	Job       int          `yaml:"job"`
	Enemy     int          `yaml:"enemy"`
	Exp       int          `yaml:"exp"`
	Weapon    int          `yaml:"weapon"`
	Shield    int          `yaml:"shield"`
	Armor     int          `yaml:"armor"`
	Accessory int          `yaml:"accessory"`
	MainRune  *RuneRefDef  `yaml:"main_rune"`
	SubRunes  []RuneRefDef `yaml:"sub_runes"`
	Spawn     Vec2Def      `yaml:"spawn"`
}
