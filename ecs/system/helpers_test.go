package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
	"github.com/milk9111/frostpurge/prefabs"
	"github.com/stretchr/testify/require"
)

const testTile = 16.0

type fixture struct {
	w     *ecs.World
	m     *level.Map
	graph *level.Graph
	cues  *component.CueQueue
}

// newFixture builds a world over a map described top row first with the
// same runes as level files.
func newFixture(t *testing.T, rows ...string) *fixture {
	t.Helper()
	if len(rows) == 0 {
		rows = []string{".....", ".....", "....."}
	}
	m, err := level.NewMap(len(rows[0]), len(rows), testTile)
	require.NoError(t, err)
	types := map[rune]level.TileType{'.': level.Open, '#': level.Obstacle, '~': level.Swamp, 'G': level.Goal, 'B': level.Bouncy, 'X': level.Breakable}
	for i, line := range rows {
		for col, r := range line {
			require.NoError(t, m.SetType(level.Coord{Col: col, Row: len(rows) - 1 - i}, types[r]))
		}
	}

	w := ecs.NewWorld()
	cues := &component.CueQueue{}
	session := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, session, component.CueQueueComponent.Kind(), cues))
	require.NoError(t, ecs.Add(w, session, component.GameStateComponent.Kind(), &component.GameState{Phase: component.PhasePlay}))
	return &fixture{w: w, m: m, graph: level.BuildGraph(m), cues: cues}
}

func (f *fixture) cueNames() []component.Cue {
	var out []component.Cue
	for _, r := range f.cues.Requests {
		out = append(out, r.Cue)
	}
	return out
}

func newBody(radius float64) *cp.Body {
	body := cp.NewBody(1, cp.MomentForCircle(1, 0, radius, cp.Vector{}))
	return body
}

// addPlayer adds a player whose body lives outside any space.
func (f *fixture) addPlayer(t *testing.T, x, y, vx, vy float64) (ecs.Entity, *component.Player, *cp.Body) {
	t.Helper()
	e := ecs.CreateEntity(f.w)
	body := newBody(6)
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetVelocity(vx, vy)
	pl := &component.Player{InvincibleTime: 1, ShakeTime: 0.25}
	require.NoError(t, ecs.Add(f.w, e, component.PlayerComponent.Kind(), pl))
	require.NoError(t, ecs.Add(f.w, e, component.HealthComponent.Kind(), &component.Health{Current: 100, Max: 100}))
	require.NoError(t, ecs.Add(f.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(f.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Radius: 6, Mass: 1}))
	return e, pl, body
}

func (f *fixture) addEnemy(t *testing.T, variant string, x, y float64) (ecs.Entity, *cp.Body) {
	t.Helper()
	e := ecs.CreateEntity(f.w)
	body := newBody(6)
	body.SetPosition(cp.Vector{X: x, Y: y})
	require.NoError(t, ecs.Add(f.w, e, component.EnemyComponent.Kind(), &component.Enemy{Variant: variant}))
	require.NoError(t, ecs.Add(f.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(f.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Radius: 6, Mass: 1}))
	return e, body
}

// addTile adds a tile entity for the map cell at (col, row).
func (f *fixture) addTile(t *testing.T, col, row int) (ecs.Entity, *level.Tile) {
	t.Helper()
	tile, ok := f.m.TileAt(col, row)
	require.True(t, ok)
	e := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, e, component.TileRefComponent.Kind(), &component.TileRef{Tile: tile}))
	return e, tile
}

// begin delivers a contact with the sides in the given order.
func begin(d *CollisionDispatcher, w *ecs.World, a, b ContactBody, swap bool, c *Contact) bool {
	if swap {
		a, b = b, a
	}
	return d.BeginContact(w, a, b, c)
}

func side(e ecs.Entity) ContactBody { return ContactBody{UserData: e} }

func sensor(e ecs.Entity) ContactBody { return ContactBody{UserData: e, Sensor: true} }

// ready returns a dispatcher whose cue cooldown has already elapsed.
func ready() *CollisionDispatcher {
	d := NewCollisionDispatcher(DefaultContactTuning())
	d.Advance(0.6)
	return d
}

func prefabsContactSpec(hitDamage int, breakSpeed float64) prefabs.ContactSpec {
	return prefabs.ContactSpec{HitDamage: hitDamage, BreakSpeed: breakSpeed}
}
