package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var collisionRows = []string{
	"#~GBX",
	".....",
	".....",
}

var orders = []struct {
	name string
	swap bool
}{
	{"player_first", false},
	{"player_second", true},
}

func TestCueCooldownGating(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want int
	}{
		{"contacts_0.3s_apart", 0.3, 1},
		{"contacts_0.6s_apart", 0.6, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, _, _ := f.addPlayer(t, 8, 40, 10, 0)
			te, _ := f.addTile(t, 0, 2)
			d := ready()

			assert.True(t, d.BeginContact(f.w, side(pe), side(te), NewContact()))
			d.Advance(tc.gap)
			assert.True(t, d.BeginContact(f.w, side(te), side(pe), NewContact()))

			assert.Len(t, f.cues.Requests, tc.want)
			for _, r := range f.cues.Requests {
				assert.Equal(t, component.CueCollide, r.Cue)
				assert.InDelta(t, 1.5, r.Volume, 1e-9)
			}
		})
	}
}

func TestCueCooldownStartsClosed(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, _, _ := f.addPlayer(t, 8, 40, 10, 0)
	te, _ := f.addTile(t, 0, 2)
	d := NewCollisionDispatcher(DefaultContactTuning())

	d.Advance(0.5)
	d.BeginContact(f.w, side(pe), side(te), NewContact())
	assert.Empty(t, f.cues.Requests, "cooldown must be strictly exceeded")

	d.Advance(0.01)
	d.BeginContact(f.w, side(pe), side(te), NewContact())
	assert.Len(t, f.cues.Requests, 1)
	assert.Zero(t, d.Elapsed())
}

func TestCooldownIsSharedAcrossGatedCues(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, _, _ := f.addPlayer(t, 8, 8, 0, 0)
	ee, _ := f.addEnemy(t, "bear", 20, 8)
	te, _ := f.addTile(t, 0, 2)
	d := ready()

	d.BeginContact(f.w, side(pe), side(ee), NewContact())
	require.Equal(t, []component.Cue{component.CueHit}, f.cueNames())

	d.Advance(0.2)
	d.BeginContact(f.w, side(pe), side(te), NewContact())
	assert.Equal(t, []component.Cue{component.CueHit}, f.cueNames(), "hit cue closed the collide cue too")
}

func TestBounceScenario(t *testing.T) {
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, _, body := f.addPlayer(t, 42, 40, 50, 0)
			te, tile := f.addTile(t, 3, 2)
			d := NewCollisionDispatcher(DefaultContactTuning())

			ok := begin(d, f.w, side(pe), side(te), o.swap, NewContact(cp.Vector{X: 48, Y: 40}))

			assert.True(t, ok)
			v := body.Velocity()
			assert.InDelta(t, -200, v.X, 1e-9)
			assert.InDelta(t, 0, v.Y, 1e-9)
			assert.Equal(t, []component.Cue{component.CueBounce}, f.cueNames(), "bounce is never gated")
			assert.True(t, tile.Activated())
		})
	}
}

func TestBounceFromTopFace(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, _, body := f.addPlayer(t, 56, 54, 10, -30)
	te, _ := f.addTile(t, 3, 2)
	d := NewCollisionDispatcher(DefaultContactTuning())

	d.BeginContact(f.w, side(pe), side(te), NewContact(cp.Vector{X: 56, Y: 48}))

	v := body.Velocity()
	assert.InDelta(t, 40, v.X, 1e-9)
	assert.InDelta(t, 120, v.Y, 1e-9)
}

func TestBreakableHighSpeed(t *testing.T) {
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, pl, _ := f.addPlayer(t, 60, 20, 0, 120)
			te, tile := f.addTile(t, 4, 2)
			d := ready()
			require.False(t, f.graph.HasNode(tile))

			c := NewContact()
			ok := begin(d, f.w, side(pe), side(te), o.swap, c)

			assert.False(t, ok)
			assert.True(t, c.Suppressed())
			assert.True(t, tile.Broken())
			assert.True(t, pl.Shake)
			assert.Equal(t, []component.Cue{component.CueBreak}, f.cueNames())
			assert.True(t, f.graph.HasNode(tile), "broken tile joins the graph")
			assert.Equal(t, 0.6, d.Elapsed(), "break cue leaves the shared cooldown alone")

			events := f.w.Events().Drain()
			require.Len(t, events, 1)
			assert.Equal(t, ecs.EventTileBroken, events[0].Kind)
		})
	}
}

func TestBreakableLowSpeedIsAnObstacle(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, pl, _ := f.addPlayer(t, 60, 20, 0, 105)
	te, tile := f.addTile(t, 4, 2)
	d := ready()

	c := NewContact()
	assert.True(t, d.BeginContact(f.w, side(pe), side(te), c))
	assert.False(t, c.Suppressed())
	assert.False(t, tile.Broken())
	assert.False(t, pl.Shake)
	assert.Equal(t, []component.Cue{component.CueCollide}, f.cueNames())
}

func TestBrokenTileIsUnclassified(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, _, _ := f.addPlayer(t, 60, 20, 0, 200)
	te, tile := f.addTile(t, 4, 2)
	tile.Deactivate()
	d := ready()

	assert.True(t, d.BeginContact(f.w, side(pe), side(te), NewContact()))
	assert.Empty(t, f.cues.Requests)
}

func TestPlayerEnemyWhileInvincible(t *testing.T) {
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, _, body := f.addPlayer(t, 8, 8, 5, 0)
			ee, _ := f.addEnemy(t, "bear", 20, 8)
			require.NoError(t, ecs.Add(f.w, pe, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: 0.5}))
			d := ready()

			c := NewContact()
			ok := begin(d, f.w, side(pe), side(ee), o.swap, c)

			assert.False(t, ok)
			assert.True(t, c.Suppressed())
			h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
			assert.Equal(t, 100, h.Current)
			assert.Empty(t, f.cues.Requests)
			assert.Equal(t, cp.Vector{X: 5}, body.Velocity())
		})
	}
}

func TestPlayerEnemyAfterGameOverIsSuppressed(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, pl, _ := f.addPlayer(t, 8, 8, 0, 0)
	pl.GameOver = true
	fe, _ := f.addEnemy(t, component.VariantFlies, 20, 8)
	d := ready()

	assert.False(t, d.BeginContact(f.w, side(fe), side(pe), NewContact()))
	h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
	assert.Equal(t, 100, h.Current)
}

func TestPlayerEnemyHit(t *testing.T) {
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, pl, pBody := f.addPlayer(t, 30, 8, 0, 0)
			ee, eBody := f.addEnemy(t, "bear", 20, 8)
			d := ready()

			c := NewContact()
			ok := begin(d, f.w, side(pe), side(ee), o.swap, c)

			assert.True(t, ok)
			h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
			assert.Equal(t, 85, h.Current)
			assert.True(t, pl.Shake)
			assert.InDelta(t, 50, pBody.Velocity().X, 1e-6, "player pushed away from enemy")
			assert.InDelta(t, -50, eBody.Velocity().X, 1e-6, "enemy pushed the other way")
			assert.Equal(t, []component.Cue{component.CueHit}, f.cueNames())
			assert.InDelta(t, 2.0, f.cues.Requests[0].Volume, 1e-9)

			inv, ok := ecs.Get(f.w, pe, component.InvulnerableComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, 1.0, inv.Remaining)
			stagger, ok := ecs.Get(f.w, ee, component.StaggerComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, 0.25, stagger.Remaining)

			// A second touch inside the window is suppressed.
			again := NewContact()
			assert.False(t, begin(d, f.w, side(pe), side(ee), o.swap, again))
			assert.Equal(t, 85, h.Current)
		})
	}
}

func TestPlayerEnemyHitWithinCooldownHasNoCue(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, _, _ := f.addPlayer(t, 30, 8, 0, 0)
	ee, _ := f.addEnemy(t, "bear", 20, 8)
	d := NewCollisionDispatcher(DefaultContactTuning())

	d.BeginContact(f.w, side(pe), side(ee), NewContact())

	h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
	assert.Equal(t, 85, h.Current)
	assert.Empty(t, f.cues.Requests)
	assert.True(t, ecs.Has(f.w, pe, component.InvulnerableComponent.Kind()))
}

func TestPlayerEnemyHitWithoutInvincibleTime(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, pl, _ := f.addPlayer(t, 30, 8, 0, 0)
	pl.InvincibleTime = 0
	ee, _ := f.addEnemy(t, "bear", 20, 8)
	d := ready()

	assert.True(t, d.BeginContact(f.w, side(pe), side(ee), NewContact()))
	assert.False(t, ecs.Has(f.w, pe, component.InvulnerableComponent.Kind()), "no window rather than an endless one")

	assert.True(t, d.BeginContact(f.w, side(pe), side(ee), NewContact()))
	h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
	assert.Equal(t, 70, h.Current)
}

func TestPlayerFliesContact(t *testing.T) {
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, pl, body := f.addPlayer(t, 30, 8, 40, -8)
			fe, _ := f.addEnemy(t, component.VariantFlies, 20, 8)
			d := ready()

			assert.True(t, begin(d, f.w, side(pe), side(fe), o.swap, NewContact()))

			assert.InDelta(t, 10, body.Velocity().X, 1e-9)
			assert.InDelta(t, -2, body.Velocity().Y, 1e-9)
			h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
			assert.Equal(t, 99, h.Current)
			assert.False(t, pl.Shake)
			assert.False(t, ecs.Has(f.w, pe, component.InvulnerableComponent.Kind()))
			assert.Empty(t, f.cues.Requests)
		})
	}
}

func TestGoalReachedThroughSensor(t *testing.T) {
	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			f := newFixture(t, collisionRows...)
			pe, pl, _ := f.addPlayer(t, 40, 40, 0, 0)
			ge, tile := f.addTile(t, 2, 2)
			d := ready()

			assert.True(t, begin(d, f.w, side(pe), sensor(ge), o.swap, NewContact()))
			assert.True(t, tile.Activated())
			assert.True(t, pl.Win)
		})
	}
}

func TestGoalSolidFixtureIgnored(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, pl, _ := f.addPlayer(t, 40, 40, 0, 0)
	ge, tile := f.addTile(t, 2, 2)
	d := ready()

	d.BeginContact(f.w, sensor(pe), side(ge), NewContact())
	assert.False(t, tile.Activated())
	assert.False(t, pl.Win)
}

func TestEnemyBouncyLeavesVelocity(t *testing.T) {
	f := newFixture(t, collisionRows...)
	ee, body := f.addEnemy(t, "bear", 42, 40)
	body.SetVelocity(30, 0)
	te, tile := f.addTile(t, 3, 2)
	d := ready()

	assert.True(t, d.BeginContact(f.w, side(te), side(ee), NewContact(cp.Vector{X: 48, Y: 40})))
	assert.True(t, tile.Activated())
	assert.Equal(t, cp.Vector{X: 30}, body.Velocity())
	assert.Empty(t, f.cues.Requests)
}

func TestReservedAndUnhandledPairsAreNoOps(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, pl, pBody := f.addPlayer(t, 8, 8, 7, 0)
	e1, b1 := f.addEnemy(t, "bear", 20, 8)
	e2, _ := f.addEnemy(t, "bear", 30, 8)
	obstacle, _ := f.addTile(t, 0, 2)
	swamp, _ := f.addTile(t, 1, 2)
	goal, goalTile := f.addTile(t, 2, 2)
	p2 := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, p2, component.PlayerComponent.Kind(), &component.Player{}))
	b1.SetVelocity(3, 3)

	pairs := []struct {
		name string
		a, b ContactBody
	}{
		{"player_swamp", side(pe), sensor(swamp)},
		{"enemy_enemy", side(e1), side(e2)},
		{"enemy_obstacle", side(e1), side(obstacle)},
		{"enemy_goal", side(e1), sensor(goal)},
		{"player_player", side(pe), side(p2)},
		{"obstacle_swamp", side(obstacle), side(swamp)},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			d := ready()
			for _, swap := range []bool{false, true} {
				c := NewContact()
				assert.True(t, begin(d, f.w, p.a, p.b, swap, c))
				assert.False(t, c.Suppressed())
			}
			assert.Equal(t, 0.6, d.Elapsed())
		})
	}

	assert.Empty(t, f.cues.Requests)
	assert.False(t, goalTile.Activated())
	assert.False(t, pl.Win)
	assert.Equal(t, cp.Vector{X: 7}, pBody.Velocity())
	assert.Equal(t, cp.Vector{X: 3, Y: 3}, b1.Velocity())
	h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
	assert.Equal(t, 100, h.Current)
}

func TestUnclassifiedParticipants(t *testing.T) {
	f := newFixture(t, collisionRows...)
	pe, _, _ := f.addPlayer(t, 8, 8, 0, 0)
	open, _ := f.addTile(t, 2, 0)
	dead := ecs.CreateEntity(f.w)
	require.NoError(t, ecs.Add(f.w, dead, component.EnemyComponent.Kind(), &component.Enemy{}))
	ecs.DestroyEntity(f.w, dead)
	bare := ecs.CreateEntity(f.w)
	d := ready()

	for _, other := range []any{nil, "player", 42, dead, bare, open} {
		assert.True(t, d.BeginContact(f.w, side(pe), ContactBody{UserData: other}, NewContact()))
	}
	assert.Empty(t, f.cues.Requests)

	_, ok := Classify(f.w, nil)
	assert.False(t, ok)
	p, ok := Classify(f.w, pe)
	require.True(t, ok)
	assert.Equal(t, KindPlayer, p.Kind)
}

func TestClassifyTiles(t *testing.T) {
	f := newFixture(t, collisionRows...)
	want := map[int]Kind{0: KindObstacle, 1: KindSwamp, 2: KindGoal, 3: KindBouncy, 4: KindBreakable}
	for col, kind := range want {
		e, tile := f.addTile(t, col, 2)
		p, ok := Classify(f.w, e)
		require.True(t, ok, tile.Type.String())
		assert.Equal(t, kind, p.Kind)
		assert.Same(t, tile, p.Tile)
		assert.Equal(t, kind == KindObstacle || kind == KindBreakable, IsObstacleTile(f.w, e))
	}

	e, tile := f.addTile(t, 4, 2)
	tile.Deactivate()
	assert.False(t, IsObstacleTile(f.w, e))
	assert.Equal(t, "breakable", KindBreakable.String())
	assert.Equal(t, level.Breakable, tile.Type)
}

func TestContactSuppressOnce(t *testing.T) {
	c := NewContact(cp.Vector{X: 1, Y: 2})
	assert.Equal(t, []cp.Vector{{X: 1, Y: 2}}, c.Points())
	assert.False(t, c.Suppressed())
	assert.True(t, c.Suppress())
	assert.False(t, c.Suppress())
	assert.True(t, c.Suppressed())

	late := NewContact()
	late.close()
	assert.False(t, late.Suppress(), "closed contacts cannot be suppressed")
	assert.False(t, late.Suppressed())
}

func TestDispatcherClosesContact(t *testing.T) {
	f := newFixture(t, collisionRows...)
	c := NewContact()
	f.addPlayer(t, 0, 0, 0, 0)
	NewCollisionDispatcher(DefaultContactTuning()).BeginContact(f.w, ContactBody{}, ContactBody{}, c)
	assert.False(t, c.Suppress())
}

func TestContactTuningFromSpecOverlaysDefaults(t *testing.T) {
	tuning := ContactTuningFromSpec(prefabsContactSpec(40, 0), 0.5)
	assert.Equal(t, 40, tuning.HitDamage)
	assert.Equal(t, 105.0, tuning.BreakSpeed)
	assert.Equal(t, 0.5, tuning.MasterVolume)

	f := newFixture(t, collisionRows...)
	pe, _, _ := f.addPlayer(t, 8, 40, 0, 0)
	te, _ := f.addTile(t, 3, 2)
	d := NewCollisionDispatcher(tuning)
	d.BeginContact(f.w, side(pe), side(te), NewContact())
	require.Len(t, f.cues.Requests, 1)
	assert.InDelta(t, 0.5, f.cues.Requests[0].Volume, 1e-9)
}
