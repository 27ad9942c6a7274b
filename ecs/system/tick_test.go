package system

import (
	"testing"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickSchedulerOrder(t *testing.T) {
	f := newFixture(t)
	ps := NewPhysicsSystem(nil)
	ai := NewAISystem(f.m, f.graph)
	audio := NewAudioSystem()

	systems := NewTickScheduler(nil, ps, ai, audio).Systems()
	require.Len(t, systems, 7)
	assert.IsType(t, &PlayerControllerSystem{}, systems[0])
	assert.IsType(t, &InvulnerableSystem{}, systems[1])
	assert.Same(t, ps, systems[2])
	assert.Same(t, ai, systems[3])
	assert.IsType(t, &MovementSystem{}, systems[4])
	assert.IsType(t, &GameStateSystem{}, systems[5])
	assert.Same(t, audio, systems[6])

	withInput := NewTickScheduler(NewInputSystem(), ps, ai, nil).Systems()
	require.Len(t, withInput, 8)
	assert.IsType(t, &InputSystem{}, withInput[0])
	assert.IsType(t, &AudioSystem{}, withInput[7])
}

func TestGoalReactionWithinOneTick(t *testing.T) {
	f := newFixture(t,
		"..........",
		"......G...",
	)
	f.addSolidTile(t, 6, 0)
	_, pl := f.spawnPlayer(t, 104, 8)
	st := patrolState(level.Coord{Col: 0, Row: 0}, level.Coord{Col: 2, Row: 0})
	st.Current = component.StateChase
	_, state := f.addAgent(t, 80, 8, bear(), st)

	ps := NewPhysicsSystem(nil)
	sched := NewTickScheduler(nil, ps, NewAISystem(f.m, f.graph), nil)
	sched.Update(f.w)

	assert.True(t, pl.Win)
	assert.Equal(t, component.StateReturn, state.Current, "enemy gives up on the same tick")
	ge, _ := ecs.First(f.w, component.GameStateComponent.Kind())
	gs, _ := ecs.Get(f.w, ge, component.GameStateComponent.Kind())
	assert.Equal(t, component.PhaseWon, gs.Phase)
}

func TestEnemyStepsAlongPath(t *testing.T) {
	f := newFixture(t, "..........")
	e, _ := f.addAgent(t, 8, 8, bear(), patrolState(level.Coord{Col: 0, Row: 0}, level.Coord{Col: 5, Row: 0}))
	require.NoError(t, ecs.Add(f.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 6, Mass: 1}))

	sched := NewTickScheduler(nil, NewPhysicsSystem(nil), NewAISystem(f.m, f.graph), nil)
	for range 30 {
		sched.Update(f.w)
	}

	tr, _ := ecs.Get(f.w, e, component.TransformComponent.Kind())
	assert.Greater(t, tr.X, 16.0, "enemy moved toward its anchor")
	assert.InDelta(t, 8, tr.Y, 0.5)
}

func TestIntroHoldsTheWorld(t *testing.T) {
	f := newFixture(t, "..........")
	gameState(t, f.w).Phase = component.PhaseIntro
	pe, pl := f.spawnPlayer(t, 40, 8)
	st := patrolState(level.Coord{Col: 0, Row: 0}, level.Coord{Col: 5, Row: 0})
	st.Current = component.StateChase
	ee, state := f.addAgent(t, 30, 8, bear(), st)
	require.NoError(t, ecs.Add(f.w, ee, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 6, Mass: 1}))

	sched := NewTickScheduler(nil, NewPhysicsSystem(nil), NewAISystem(f.m, f.graph), nil)
	for range 300 {
		sched.Update(f.w)
	}

	h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
	assert.Equal(t, 100, h.Current)
	assert.False(t, pl.GameOver)
	assert.Equal(t, component.StateChase, state.Current)
	tr, _ := ecs.Get(f.w, ee, component.TransformComponent.Kind())
	assert.Equal(t, 30.0, tr.X)
	assert.Equal(t, component.PhaseIntro, gameState(t, f.w).Phase)

	gameState(t, f.w).Phase = component.PhasePlay
	sched.Update(f.w)
	assert.Equal(t, 85, h.Current, "the touch lands once play starts")
}

func TestHitStaggerOutlastsSteering(t *testing.T) {
	f := newFixture(t, "..........")
	pe, _ := f.spawnPlayer(t, 40, 8)
	st := patrolState(level.Coord{Col: 0, Row: 0}, level.Coord{Col: 5, Row: 0})
	st.Current = component.StateChase
	ee, _ := f.addAgent(t, 32, 8, bear(), st)
	require.NoError(t, ecs.Add(f.w, ee, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 6, Mass: 1}))

	sched := NewTickScheduler(nil, NewPhysicsSystem(nil), NewAISystem(f.m, f.graph), nil)
	sched.Update(f.w)

	h, _ := ecs.Get(f.w, pe, component.HealthComponent.Kind())
	require.Equal(t, 85, h.Current)
	require.True(t, ecs.Has(f.w, ee, component.StaggerComponent.Kind()))
	pb, _ := ecs.Get(f.w, ee, component.PhysicsBodyComponent.Kind())
	assert.Less(t, pb.Body.Velocity().X, 0.0, "knocked back away from the player")

	for range 5 {
		sched.Update(f.w)
	}
	assert.Less(t, pb.Body.Velocity().X, 0.0, "still sliding while staggered")

	for range 20 {
		sched.Update(f.w)
	}
	assert.False(t, ecs.Has(f.w, ee, component.StaggerComponent.Kind()))
	assert.Greater(t, pb.Body.Velocity().X, 0.0, "chasing again")
}
