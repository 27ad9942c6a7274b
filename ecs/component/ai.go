package component

// AI configures an enemy's behaviour state machine. LoseRadius is kept >=
// DetectRadius so chase does not flicker at the boundary.
type AI struct {
	DetectRadius float64
	LoseRadius   float64
	MoveSpeed    float64
	// RepathTicks is the chase re-plan interval; 0 re-plans every tick.
	RepathTicks int
	// DetectRule is an optional tengo expression that replaces the radius
	// test when deciding to start a chase.
	DetectRule string
}

var AIComponent = NewComponent[AI]()
