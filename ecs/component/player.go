package component

// Player holds the controllable entity's tuning and terminal flags.
type Player struct {
	// MoveForce is applied along the input direction while the body is slower
	// than AccelSpeedLimit.
	MoveForce       float64
	AccelSpeedLimit float64
	Brake           float64
	Friction        float64

	BoostForce    float64
	BoostCharges  int
	BoostCooldown float64
	// BoostRemaining counts down after a boost; no boost fires while it is > 0.
	BoostRemaining float64

	InvincibleTime float64
	ShakeTime      float64
	ShakeRemaining float64

	Shake    bool
	Win      bool
	GameOver bool
}

var PlayerComponent = NewComponent[Player]()
