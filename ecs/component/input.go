package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64
	Brake bool
	// BoostPressed is true only on the frame the boost key went down.
	BoostPressed bool
	StartPressed bool
}

var InputComponent = NewComponent[Input]()
