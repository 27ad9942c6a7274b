package system

import (
	"log"

	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
)

// GameStateSystem advances the game phase: intro until start is pressed, then
// play until the player dies or wins. Over and won are terminal.
type GameStateSystem struct{}

func NewGameStateSystem() *GameStateSystem {
	return &GameStateSystem{}
}

func (s *GameStateSystem) Update(w *ecs.World) {
	ge, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return
	}
	gs, _ := ecs.Get(w, ge, component.GameStateComponent.Kind())

	pe, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	pl, _ := ecs.Get(w, pe, component.PlayerComponent.Kind())

	switch gs.Phase {
	case component.PhaseIntro:
		if input, ok := ecs.Get(w, pe, component.InputComponent.Kind()); ok && input.StartPressed {
			gs.Phase = component.PhasePlay
			log.Printf("GameState: level %s started", gs.Level)
		}
	case component.PhasePlay:
		gs.Ticks++
		if h, ok := ecs.Get(w, pe, component.HealthComponent.Kind()); ok && h.Current <= 0 {
			pl.GameOver = true
		}
		switch {
		case pl.GameOver:
			gs.Phase = component.PhaseOver
			log.Printf("GameState: level %s lost after %d ticks", gs.Level, gs.Ticks)
		case pl.Win:
			gs.Phase = component.PhaseWon
			log.Printf("GameState: level %s won after %d ticks", gs.Level, gs.Ticks)
		}
	}
}

// playing reports whether the world is in the play phase. Worlds without a
// session run unconditionally.
func playing(w *ecs.World) bool {
	ge, ok := ecs.First(w, component.GameStateComponent.Kind())
	if !ok {
		return true
	}
	gs, ok := ecs.Get(w, ge, component.GameStateComponent.Kind())
	return !ok || gs.Phase == component.PhasePlay
}
