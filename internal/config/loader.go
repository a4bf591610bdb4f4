package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog bundles every definition table read from a config dir.
type Catalog struct {
	Jobs      JobsConfig
	Weapons   ItemsConfig
	Equipment ItemsConfig
	Runes     RunesConfig
	Enemies   EnemiesConfig
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func LoadAll(dir string) (*Catalog, error) {
	var c Catalog
	files := []struct {
		name string
		out  any
	}{
		{"jobs.yaml", &c.Jobs},
		{"weapons.yaml", &c.Weapons},
		{"equipment.yaml", &c.Equipment},
		{"runes.yaml", &c.Runes},
		{"enemies.yaml", &c.Enemies},
	}
	for _, f := range files {
		if err := loadYAML(filepath.Join(dir, f.name), f.out); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// LoadScenario reads a battle scenario and fills unset tuning with defaults.
func LoadScenario(path string) (*ScenarioConfig, error) {
	var sc ScenarioConfig
	if err := loadYAML(path, &sc); err != nil {
		return nil, err
	}
	sc.applyDefaults()
	return &sc, nil
}

func (sc *ScenarioConfig) applyDefaults() {
	if sc.TimeLimit == 0 {
		sc.TimeLimit = 120
	}
	if sc.Delta == 0 {
		sc.Delta = 0.05
	}
	if sc.Arena.Max.X == 0 && sc.Arena.Max.Y == 0 && sc.Arena.Min.X == 0 && sc.Arena.Min.Y == 0 {
		sc.Arena.Min = Vec2Def{X: -10, Y: -10}
		sc.Arena.Max = Vec2Def{X: 10, Y: 10}
	}
	c := &sc.Control
	if c.FollowRange == 0 {
		c.FollowRange = 7
	}
	if c.FollowWeight == 0 {
		c.FollowWeight = 99
	}
	if c.RetargetInterval == 0 {
		c.RetargetInterval = 0.5
	}
	if c.TeleportInterval == 0 {
		c.TeleportInterval = 10
	}
	if c.TeleportDistance == 0 {
		c.TeleportDistance = 2
	}
	if c.EscapeSpeedMul == 0 {
		c.EscapeSpeedMul = 1.5
	}
	if c.EscapeDistanceMul == 0 {
		c.EscapeDistanceMul = 1.5
	}
	if sc.Storage == 0 {
		sc.Storage = 8
	}
	for i := range sc.Roster {
		if sc.Roster[i].Side == "" {
			sc.Roster[i].Side = "ally"
		}
	}
}
