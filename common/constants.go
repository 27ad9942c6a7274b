package common

// TPS is the fixed simulation rate; every system advances by TickSeconds.
const (
	TPS         = 60
	TickSeconds = 1.0 / TPS
)

const (
	ScreenWidth  = 640
	ScreenHeight = 384
)
