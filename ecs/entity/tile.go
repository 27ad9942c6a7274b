package entity

import (
	"fmt"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/level"
)

// NewTile builds the static collider for a non-open tile. Goal and swamp
// tiles are sensors: the player passes over them.
func NewTile(w *ecs.World, t *level.Tile) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TileRefComponent.Kind(), &component.TileRef{Tile: t}); err != nil {
		return 0, fmt.Errorf("tile: add tile ref: %w", err)
	}

	b := t.Bounds
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: b.CenterX(), Y: b.CenterY()}); err != nil {
		return 0, fmt.Errorf("tile: add transform: %w", err)
	}

	body := &component.PhysicsBody{
		Width:    b.MaxX - b.MinX,
		Height:   b.MaxY - b.MinY,
		Static:   true,
		Friction: 0.4,
		Sensor:   t.Type == level.Goal || t.Type == level.Swamp,
	}
	if t.Type == level.Bouncy {
		body.Elasticity = 0.8
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("tile: add physics body: %w", err)
	}

	return entity, nil
}
