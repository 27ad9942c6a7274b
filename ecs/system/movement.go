package system

import (
	"math"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
)

// MovementSystem drives steered bodies: velocity along the heading and the
// body turned to face it. Staggered bodies keep whatever physics gave them.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if !playing(w) {
		return
	}
	ecs.ForEach2(w, component.SteeringComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, steer *component.Steering, bodyComp *component.PhysicsBody) {
		body := bodyComp.Body
		if body == nil || bodyComp.Static {
			return
		}
		if ecs.Has(w, e, component.StaggerComponent.Kind()) {
			return
		}
		if steer.Hold {
			body.SetVelocity(0, 0)
			return
		}
		body.SetVelocity(steer.HeadingX*steer.Speed, steer.HeadingY*steer.Speed)
		if steer.HeadingX != 0 || steer.HeadingY != 0 {
			body.SetAngle(math.Atan2(steer.HeadingY, steer.HeadingX))
		}
		body.SetAngularVelocity(0)
	})
}
