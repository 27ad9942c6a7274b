package entity

import (
	"fmt"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/prefabs"
)

// NewPlayerAt builds the player from player.yaml centred on (x, y).
func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return newPlayer(w, spec, x, y)
}

func newPlayer(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveForce:       spec.MoveForce,
		AccelSpeedLimit: spec.AccelSpeedLimit,
		Brake:           spec.Brake,
		Friction:        spec.Friction,
		BoostForce:      spec.BoostForce,
		BoostCharges:    spec.BoostCharges,
		BoostCooldown:   spec.BoostCooldown,
		InvincibleTime:  spec.InvincibleTime,
		ShakeTime:       spec.ShakeTime,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), physicsBodyFromSpec(spec.Collider)); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	return entity, nil
}

func physicsBodyFromSpec(c prefabs.ColliderSpec) *component.PhysicsBody {
	return &component.PhysicsBody{
		Width:      c.Width,
		Height:     c.Height,
		Radius:     c.Radius,
		Mass:       c.Mass,
		Friction:   c.Friction,
		Elasticity: c.Elasticity,
	}
}
