package component

import "github.com/milk9111/frostpurge/level"

// StateID identifies an AI FSM state.
type StateID string

const (
	StatePatrol StateID = "patrol"
	StateChase  StateID = "chase"
	StateReturn StateID = "return"
	StateIdle   StateID = "idle"
)

// AIState stores the current FSM state and where the enemy is heading.
type AIState struct {
	Current StateID
	// Anchors are the patrol end points. Fewer than two distinct anchors
	// make the enemy idle at Home.
	Anchors     []level.Coord
	PatrolIndex int
	Home        level.Coord
	Target      level.Coord
}

var AIStateComponent = NewComponent[AIState]()
