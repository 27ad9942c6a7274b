package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/frostpurge/common"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
)

const collisionTypeEntity cp.CollisionType = 1

// PhysicsSystem owns the Chipmunk space. Every shape carries its entity as
// user data; contact begins are routed to the collision dispatcher while the
// space steps.
type PhysicsSystem struct {
	space         *cp.Space
	dispatcher    *CollisionDispatcher
	handlersReady bool
	dt            float64

	// stepping is the world being stepped; only set inside Update.
	stepping *ecs.World
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(dispatcher *CollisionDispatcher) *PhysicsSystem {
	if dispatcher == nil {
		dispatcher = NewCollisionDispatcher(DefaultContactTuning())
	}
	return &PhysicsSystem{
		space:      newSpace(),
		dispatcher: dispatcher,
		dt:         common.TickSeconds,
		entities:   make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Dispatcher() *CollisionDispatcher {
	if ps == nil {
		return nil
	}
	return ps.dispatcher
}

// SetTimeStep overrides the fixed step, mostly for tests.
func (ps *PhysicsSystem) SetTimeStep(dt float64) {
	if dt > 0 {
		ps.dt = dt
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	if !playing(w) {
		return
	}

	ps.dispatcher.Advance(ps.dt)
	ps.stepping = w
	ps.space.Step(ps.dt)
	ps.stepping = nil

	// Shapes cannot leave the space from inside a callback, so tiles broken
	// during the step are removed here.
	ps.removeBrokenTiles(w)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypeEntity, collisionTypeEntity)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.stepping == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		return sys.dispatcher.BeginContact(sys.stepping,
			ContactBody{UserData: shapeA.UserData, Sensor: shapeA.Sensor()},
			ContactBody{UserData: shapeB.UserData, Sensor: shapeB.Sensor()},
			contactFromArbiter(arb),
		)
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			return
		}

		info := ps.createBodyInfo(e, transform, bodyComp)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		radius = 8
	}

	info := &bodyInfo{static: bodyComp.Static}

	var shape *cp.Shape
	if bodyComp.Static {
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		info.body = ps.space.StaticBody
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}

		var moment float64
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}

		body := cp.NewBody(mass, moment)
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		body.SetAngle(transform.Rotation)
		ps.space.AddBody(body)

		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		info.body = body
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionTypeEntity)
	shape.UserData = e
	ps.space.AddShape(shape)

	info.shape = shape
	return info
}

func (ps *PhysicsSystem) removeBrokenTiles(w *ecs.World) {
	ecs.ForEach(w, component.TileRefComponent.Kind(), func(e ecs.Entity, ref *component.TileRef) {
		if !ref.Tile.Broken() || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		ecs.Remove(w, e, component.PhysicsBodyComponent.Kind())
		ps.release(e)
		log.Printf("Physics: removed broken tile at %d,%d", ref.Tile.Col, ref.Tile.Row)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.release(e)
	}
}

func (ps *PhysicsSystem) release(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}
