package levels

import (
	"testing"

	"github.com/milk9111/frostpurge/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrost1(t *testing.T) {
	lvl, err := Load("frost1")
	require.NoError(t, err)
	assert.Equal(t, "frost1", lvl.Name)
	assert.Equal(t, 21, lvl.Width())
	assert.Equal(t, 12, lvl.Height())
	assert.Equal(t, level.Coord{Col: 2, Row: 2}, lvl.Player)
	require.Len(t, lvl.Enemies, 3)
	assert.Equal(t, "flies.yaml", lvl.Enemies[1].Prefab)
	assert.Len(t, lvl.Enemies[2].Anchors, 1)

	m, err := lvl.BuildMap()
	require.NoError(t, err)

	goal, ok := m.TileAt(19, 10)
	require.True(t, ok)
	assert.Equal(t, level.Goal, goal.Type)

	corner, _ := m.TileAt(0, 0)
	assert.Equal(t, level.Obstacle, corner.Type)
}

func TestFrost1GoalBehindBreakables(t *testing.T) {
	lvl, err := Load("frost1.yaml")
	require.NoError(t, err)
	m, err := lvl.BuildMap()
	require.NoError(t, err)
	g := level.BuildGraph(m)

	_, ok := g.FindPath(lvl.Player, level.Coord{Col: 19, Row: 10})
	require.False(t, ok)

	wall, _ := m.TileAt(11, 8)
	require.Equal(t, level.Breakable, wall.Type)
	wall.Deactivate()

	_, ok = g.FindPath(lvl.Player, level.Coord{Col: 19, Row: 10})
	assert.True(t, ok)
}

func TestBuildMapRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name string
		lvl  Level
	}{
		{"ragged", Level{Name: "r", TileSize: 8, Rows: []string{"...", ".."}}},
		{"unknown_rune", Level{Name: "u", TileSize: 8, Rows: []string{".?."}}},
		{"spawn_outside", Level{Name: "s", TileSize: 8, Rows: []string{"..."}, Player: level.Coord{Col: 5}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.lvl.BuildMap()
			assert.ErrorIs(t, err, ErrBadLayout)
		})
	}

	_, err := (&Level{Name: "empty", TileSize: 8}).BuildMap()
	assert.ErrorIs(t, err, level.ErrInvalidSize)
}

func TestNamesAndMissing(t *testing.T) {
	assert.Contains(t, Names(), "frost1")

	_, err := Load("missing")
	assert.Error(t, err)
}
