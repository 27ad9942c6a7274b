package level

import "math"

// TileType tags what a grid cell does to bodies touching it.
type TileType uint8

const (
	Open TileType = iota
	Obstacle
	Swamp
	Goal
	Bouncy
	Breakable
)

var tileTypeNames = [...]string{
	Open:      "open",
	Obstacle:  "obstacle",
	Swamp:     "swamp",
	Goal:      "goal",
	Bouncy:    "bouncy",
	Breakable: "breakable",
}

func (t TileType) String() string {
	if int(t) < len(tileTypeNames) {
		return tileTypeNames[t]
	}
	return "unknown"
}

// Coord addresses a grid cell. Rows grow upward.
type Coord struct {
	Col int
	Row int
}

func (c Coord) Up() Coord    { return Coord{Col: c.Col, Row: c.Row + 1} }
func (c Coord) Right() Coord { return Coord{Col: c.Col + 1, Row: c.Row} }
func (c Coord) Down() Coord  { return Coord{Col: c.Col, Row: c.Row - 1} }
func (c Coord) Left() Coord  { return Coord{Col: c.Col - 1, Row: c.Row} }

// Rect is an axis-aligned world-space box.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }
func (r Rect) CenterY() float64 { return (r.MinY + r.MaxY) / 2 }

// Tile is one cell of the level grid. Activation state is mutated through
// Activate/Deactivate so the owning map can notify listeners.
type Tile struct {
	Coord
	Type   TileType
	Bounds Rect

	activated bool
	broken    bool
	owner     *Map
}

// Activated reports the goal/bouncy visual state.
func (t *Tile) Activated() bool { return t != nil && t.activated }

// Broken reports whether a breakable tile has been destroyed.
func (t *Tile) Broken() bool { return t != nil && t.broken }

// Intact reports whether a breakable tile still blocks movement.
func (t *Tile) Intact() bool { return t != nil && t.Type == Breakable && !t.broken }

// Walkable reports whether enemies may route through the tile.
func (t *Tile) Walkable() bool {
	if t == nil || t.Type == Obstacle {
		return false
	}
	return !t.Intact()
}

// Activate turns on a goal or bouncy tile. Repeated activations still notify
// so bouncy tiles can pulse on every hit.
func (t *Tile) Activate() {
	if t == nil {
		return
	}
	t.activated = true
	t.owner.notify(t)
}

// Deactivate breaks a breakable tile and clears the activated flag of any
// other tile.
func (t *Tile) Deactivate() {
	if t == nil {
		return
	}
	if t.Type == Breakable {
		if t.broken {
			return
		}
		t.broken = true
	}
	t.activated = false
	t.owner.notify(t)
}

// BounceSigns returns the per-axis velocity multipliers for a contact at
// (x, y). The face nearest the point flips its axis; a corner flips both.
func (t *Tile) BounceSigns(x, y float64) (sx, sy float64) {
	b := t.Bounds
	dx := math.Min(math.Abs(x-b.MinX), math.Abs(x-b.MaxX))
	dy := math.Min(math.Abs(y-b.MinY), math.Abs(y-b.MaxY))
	const eps = 1e-6
	switch {
	case math.Abs(dx-dy) <= eps:
		return -1, -1
	case dx < dy:
		return -1, 1
	default:
		return 1, -1
	}
}
