package system

import "github.com/milk9111/frostpurge/ecs"

// NewTickScheduler wires the per-tick order: control, timers, physics with
// contact dispatch, behaviour, movement, game phase, audio. input runs first
// when non-nil; headless callers pass nil and fill Input themselves.
func NewTickScheduler(input ecs.System, physics *PhysicsSystem, ai *AISystem, audio *AudioSystem) *ecs.Scheduler {
	s := ecs.NewScheduler()
	if input != nil {
		s.Add(input)
	}
	s.Add(NewPlayerControllerSystem())
	s.Add(NewInvulnerableSystem())
	s.Add(physics)
	s.Add(ai)
	s.Add(NewMovementSystem())
	s.Add(NewGameStateSystem())
	if audio == nil {
		audio = NewAudioSystem()
	}
	s.Add(audio)
	return s
}
