package system

import (
	"github.com/milk9111/frostpurge/common"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
)

// InvulnerableSystem counts down timed invulnerability, enemy stagger and the
// player's boost and shake timers by one fixed step.
type InvulnerableSystem struct {
	dt float64
}

func NewInvulnerableSystem() *InvulnerableSystem {
	return &InvulnerableSystem{dt: common.TickSeconds}
}

func (s *InvulnerableSystem) Update(w *ecs.World) {
	if w == nil || !playing(w) {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Remaining <= 0 {
			return
		}
		inv.Remaining -= s.dt
		if inv.Remaining <= 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	ecs.ForEach(w, component.StaggerComponent.Kind(), func(e ecs.Entity, st *component.Stagger) {
		st.Remaining -= s.dt
		if st.Remaining <= 0 {
			ecs.Remove(w, e, component.StaggerComponent.Kind())
		}
	})

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, pl *component.Player) {
		if pl.BoostRemaining > 0 {
			pl.BoostRemaining -= s.dt
		}
		if pl.ShakeRemaining > 0 {
			pl.ShakeRemaining -= s.dt
			if pl.ShakeRemaining <= 0 {
				pl.Shake = false
			}
		}
	})
}
