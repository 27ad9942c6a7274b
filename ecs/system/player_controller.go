package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
)

const inputDeadzone = 0.1

// PlayerControllerSystem turns input into impulses on the player body: steady
// acceleration below a speed cap, braking, a charged boost and a constant
// rolling friction.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || !playing(w) {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, pl *component.Player, input *component.Input, bodyComp *component.PhysicsBody) {
		body := bodyComp.Body
		if body == nil {
			return
		}

		dir := cp.Vector{}
		if !pl.GameOver && !pl.Win {
			dir = cp.Vector{X: input.MoveX, Y: input.MoveY}
			if dir.Length() > 1 {
				dir = dir.Normalize()
			}
		}

		if input.Brake && pl.Brake > 0 {
			body.SetVelocityVector(body.Velocity().Mult(pl.Brake))
		} else if body.Velocity().Length() < pl.AccelSpeedLimit {
			body.ApplyImpulseAtWorldPoint(dir.Mult(pl.MoveForce), body.Position())
		}

		if input.BoostPressed && pl.BoostCharges > 0 && pl.BoostRemaining <= 0 && dir.Length() > 0 {
			body.ApplyImpulseAtWorldPoint(dir.Mult(pl.BoostForce), body.Position())
			pl.BoostCharges--
			pl.BoostRemaining = pl.BoostCooldown
		}

		if math.Abs(dir.X) >= inputDeadzone || math.Abs(dir.Y) >= inputDeadzone {
			body.SetAngle(math.Atan2(dir.Y, dir.X))
		}
		body.SetAngularVelocity(0)

		if pl.Friction > 0 {
			body.SetVelocityVector(body.Velocity().Mult(pl.Friction))
		}
	})
}
