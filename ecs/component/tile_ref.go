package component

import "github.com/milk9111/frostpurge/level"

// TileRef links a static collider to the map tile it represents.
type TileRef struct {
	Tile *level.Tile
}

var TileRefComponent = NewComponent[TileRef]()
