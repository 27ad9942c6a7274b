package component

// Steering is the desired unit heading and speed for the movement system.
// Hold stops the body in place.
type Steering struct {
	HeadingX float64
	HeadingY float64
	Speed    float64
	Hold     bool
}

var SteeringComponent = NewComponent[Steering]()
