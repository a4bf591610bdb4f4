package combat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeclash/internal/catalog"
	"runeclash/internal/config"
	"runeclash/internal/util"
)

func TestShippedScenarioRuns(t *testing.T) {
	dir := filepath.Join("..", "..", "assets")
	raw, err := config.LoadAll(dir)
	require.NoError(t, err)
	cat, err := catalog.New(raw)
	require.NoError(t, err)
	sc, err := config.LoadScenario(filepath.Join(dir, "battle.yaml"))
	require.NoError(t, err)

	b, err := NewFromScenario(&Context{Catalog: cat}, sc, util.New(12345), false)
	require.NoError(t, err)
	require.Equal(t, len(sc.Roster), b.Roster.Len())

	res, err := b.Run(sc.TimeLimit)
	require.NoError(t, err)
	assert.Greater(t, res.Duration, 0.0)
	assert.LessOrEqual(t, res.Duration, sc.TimeLimit+sc.Delta)
	assert.Len(t, res.Meta.Combatants, len(sc.Roster))
}
