package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeclash/internal/config"
)

func baseConfig() *config.Catalog {
	return &config.Catalog{
		Jobs: config.JobsConfig{Jobs: []config.JobDef{
			{ID: 1, Name: "knight", Role: "knight", Base: config.StatLineDef{Str: 10}},
		}},
		Weapons: config.ItemsConfig{Items: []config.ItemDef{
			{ID: 100, Slot: "weapon", Category: 111, SocketCount: 2,
				FixedRunes: []config.RuneRefDef{{ID: 7, Level: 1}}},
		}},
		Equipment: config.ItemsConfig{Items: []config.ItemDef{
			{ID: 200, Slot: "shield", GuardChance: 10},
		}},
		Runes: config.RunesConfig{Runes: []config.RuneDef{
			{ID: 7, Ability: "ironWall", MaxLevel: 2, Levels: []config.RuneTierDef{
				{PhysicalDefense: 1.2}, {PhysicalDefense: 1.5, UnitThrough: 1},
			}},
		}},
		Enemies: config.EnemiesConfig{Enemies: []config.EnemyDef{
			{ID: 500, Job: 1, Drops: []config.DropDef{{Item: 100, Rate: 5}}},
		}},
	}
}

func TestNewResolvesRecords(t *testing.T) {
	c, err := New(baseConfig())
	require.NoError(t, err)

	j, err := c.FindJob(1)
	require.NoError(t, err)
	assert.Equal(t, RoleKnight, j.Role)
	assert.Equal(t, 1.0, j.LevelScaleFactor)

	r, err := c.FindRune(7)
	require.NoError(t, err)
	assert.Equal(t, EffectIronWall, r.Effect)
	tier, err := r.Tier(2)
	require.NoError(t, err)
	assert.Equal(t, 1.5, tier.PhysicalDefense)
	assert.Equal(t, 1.0, tier.PhysicalPower, "unset multiplier is identity")
	assert.Equal(t, 1, tier.UnitThrough)
	_, err = r.Tier(3)
	assert.Error(t, err)

	s, err := c.FindEquipment(200)
	require.NoError(t, err)
	assert.Equal(t, SlotShield, s.Slot)
}

func TestFindMissWrapsNotFound(t *testing.T) {
	c, err := New(baseConfig())
	require.NoError(t, err)

	_, err = c.FindWeapon(999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.FindEquipment(100)
	assert.ErrorIs(t, err, ErrNotFound, "weapons and equipment are separate tables")
	_, err = c.FindEnemy(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRejectsBadData(t *testing.T) {
	cases := map[string]func(*config.Catalog){
		"unknown ability": func(c *config.Catalog) { c.Runes.Runes[0].Ability = "fireball" },
		"unknown role":    func(c *config.Catalog) { c.Jobs.Jobs[0].Role = "bard" },
		"duplicate job":   func(c *config.Catalog) { c.Jobs.Jobs = append(c.Jobs.Jobs, c.Jobs.Jobs[0]) },
		"fixed rune gone": func(c *config.Catalog) { c.Weapons.Items[0].FixedRunes[0].ID = 8 },
		"fixed rune lvl":  func(c *config.Catalog) { c.Weapons.Items[0].FixedRunes[0].Level = 3 },
		"enemy job":       func(c *config.Catalog) { c.Enemies.Enemies[0].Job = 9 },
		"bad slot":        func(c *config.Catalog) { c.Equipment.Items[0].Slot = "helmet" },
		"shield weapon":   func(c *config.Catalog) { c.Weapons.Items[0].Slot = "shield" },
		"weapon armor":    func(c *config.Catalog) { c.Equipment.Items[0].Slot = "weapon" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := baseConfig()
			mutate(cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestEffectNames(t *testing.T) {
	for i := 1; i < EffectCount; i++ {
		e := RuneEffect(i)
		got, err := ParseEffect(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	assert.True(t, EffectEightWay.IsPattern())
	assert.False(t, EffectHoming.IsPattern())
}

func TestNewRoom(t *testing.T) {
	r := NewRoom(config.RoomDef{MonsterHPUp: true, ItemDropUp: true, DoubleGold: true})
	assert.Equal(t, 1.5, r.MonsterHP)
	assert.Equal(t, 1.0, r.MonsterAttack)
	assert.Equal(t, 1.5, r.DropRate)
	assert.True(t, r.DoubleGold)
	assert.False(t, r.DoubleExp)
}
