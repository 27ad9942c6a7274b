package entity

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/ecs/system"
	"github.com/milk9111/frostpurge/level"
	"github.com/milk9111/frostpurge/prefabs"
)

var ErrNoAnchor = errors.New("enemy: spawn has no anchor")

// NewEnemy builds an enemy from its prefab at the first anchor. Two distinct
// anchors make it patrol; otherwise it idles at home.
func NewEnemy(w *ecs.World, m *level.Map, prefab string, anchors []level.Coord) (ecs.Entity, error) {
	if len(anchors) == 0 {
		return 0, ErrNoAnchor
	}
	for _, a := range anchors {
		if !m.InBounds(a) {
			return 0, fmt.Errorf("enemy: anchor %v: %w", a, level.ErrOutOfBounds)
		}
	}

	spec, err := prefabs.LoadEnemySpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}

	var rule string
	if spec.DetectScript != "" {
		src, err := prefabs.LoadScript(spec.DetectScript)
		if err != nil {
			return 0, fmt.Errorf("enemy: load detect script: %w", err)
		}
		if _, err := system.CompileDetectRule(string(src)); err != nil {
			return 0, fmt.Errorf("enemy: %s: %w", spec.DetectScript, err)
		}
		rule = string(src)
	}

	lose := spec.LoseRadius
	if lose < spec.DetectRadius {
		log.Printf("Enemy: %s lose radius %.1f below detect radius %.1f, clamping", spec.Name, lose, spec.DetectRadius)
		lose = spec.DetectRadius
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{Variant: spec.Variant}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIComponent.Kind(), &component.AI{
		DetectRadius: spec.DetectRadius,
		LoseRadius:   lose,
		MoveSpeed:    spec.MoveSpeed,
		RepathTicks:  spec.RepathTicks,
		DetectRule:   rule,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	state := &component.AIState{
		Current: component.StateIdle,
		Anchors: append([]level.Coord(nil), anchors...),
		Home:    anchors[0],
		Target:  anchors[0],
	}
	if len(anchors) >= 2 && anchors[0] != anchors[1] {
		state.Current = component.StatePatrol
		state.PatrolIndex = 1
		state.Target = anchors[1]
	}
	if err := ecs.Add(w, entity, component.AIStateComponent.Kind(), state); err != nil {
		return 0, fmt.Errorf("enemy: add ai state: %w", err)
	}

	if err := ecs.Add(w, entity, component.PathfindingComponent.Kind(), &component.Pathfinding{}); err != nil {
		return 0, fmt.Errorf("enemy: add pathfinding: %w", err)
	}

	if err := ecs.Add(w, entity, component.SteeringComponent.Kind(), &component.Steering{Hold: true}); err != nil {
		return 0, fmt.Errorf("enemy: add steering: %w", err)
	}

	x, y := m.Center(anchors[0])
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), physicsBodyFromSpec(spec.Collider)); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}

	return entity, nil
}
