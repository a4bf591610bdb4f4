package config

type EnemiesConfig struct {
	Enemies []EnemyDef `yaml:"enemies"`
}

type EnemyDef struct {
	ID        int       `yaml:"id"`
	Name      string    `yaml:"name"`
	Job       int       `yaml:"job"`
	AddLevel  int       `yaml:"add_level"`
	Weapon    int       `yaml:"weapon"`
	Shield    int       `yaml:"shield"`
	Armor     int       `yaml:"armor"`
	Accessory int       `yaml:"accessory"`
	Drops     []DropDef `yaml:"drops"`
	Exp       int       `yaml:"exp"`
	Gold      int       `yaml:"gold"`
	Note      string    `yaml:"note"`
}

type DropDef struct {
	Item int     `yaml:"item"`
	Rate float64 `yaml:"rate"` // percent
}
