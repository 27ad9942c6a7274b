package component

import "github.com/milk9111/frostpurge/level"

// Pathfinding stores the last planned route toward an AI target.
type Pathfinding struct {
	Path         level.Path
	Next         level.Coord
	HasNext      bool
	Unreachable  bool
	FrameCounter int
	LastStart    level.Coord
	LastTarget   level.Coord
}

var PathfindingComponent = NewComponent[Pathfinding]()
