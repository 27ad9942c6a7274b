package system

import (
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
)

// Kind is the collision role of a classified entity.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindObstacle
	KindSwamp
	KindGoal
	KindBouncy
	KindBreakable
	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:    "player",
	KindEnemy:     "enemy",
	KindObstacle:  "obstacle",
	KindSwamp:     "swamp",
	KindGoal:      "goal",
	KindBouncy:    "bouncy",
	KindBreakable: "breakable",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Participant is a classified contact side.
type Participant struct {
	Kind   Kind
	Entity ecs.Entity
	Tile   *level.Tile
}

// Classify maps physics user data to a collision role. Anything that is not a
// live entity with a player, enemy or non-open tile is unclassified.
func Classify(w *ecs.World, userData any) (Participant, bool) {
	e, ok := userData.(ecs.Entity)
	if !ok || !ecs.IsAlive(w, e) {
		return Participant{}, false
	}
	if ecs.Has(w, e, component.PlayerComponent.Kind()) {
		return Participant{Kind: KindPlayer, Entity: e}, true
	}
	if ecs.Has(w, e, component.EnemyComponent.Kind()) {
		return Participant{Kind: KindEnemy, Entity: e}, true
	}
	ref, ok := ecs.Get(w, e, component.TileRefComponent.Kind())
	if !ok || ref.Tile == nil {
		return Participant{}, false
	}
	kind, ok := tileKind(ref.Tile)
	if !ok {
		return Participant{}, false
	}
	return Participant{Kind: kind, Entity: e, Tile: ref.Tile}, true
}

func tileKind(t *level.Tile) (Kind, bool) {
	switch t.Type {
	case level.Obstacle:
		return KindObstacle, true
	case level.Swamp:
		return KindSwamp, true
	case level.Goal:
		return KindGoal, true
	case level.Bouncy:
		return KindBouncy, true
	case level.Breakable:
		// A broken tile no longer collides with anything.
		return KindBreakable, t.Intact()
	}
	return 0, false
}

// IsObstacleTile reports whether e is a tile that blocks movement.
func IsObstacleTile(w *ecs.World, e ecs.Entity) bool {
	ref, ok := ecs.Get(w, e, component.TileRefComponent.Kind())
	if !ok || ref.Tile == nil {
		return false
	}
	return ref.Tile.Type == level.Obstacle || ref.Tile.Intact()
}
