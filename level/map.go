package level

import (
	"errors"
	"math"
)

var (
	ErrOutOfBounds  = errors.New("level: coordinate out of bounds")
	ErrInvalidSize  = errors.New("level: invalid map size")
	ErrTileConflict = errors.New("level: tile already assigned")
)

// Map owns the tile grid for one level.
type Map struct {
	width    int
	height   int
	tileSize float64
	tiles    []*Tile

	listeners []func(*Tile)
}

// NewMap creates a width x height grid of Open tiles.
func NewMap(width, height int, tileSize float64) (*Map, error) {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil, ErrInvalidSize
	}
	m := &Map{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    make([]*Tile, width*height),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			x0 := float64(col) * tileSize
			y0 := float64(row) * tileSize
			m.tiles[row*width+col] = &Tile{
				Coord:  Coord{Col: col, Row: row},
				Type:   Open,
				Bounds: Rect{MinX: x0, MinY: y0, MaxX: x0 + tileSize, MaxY: y0 + tileSize},
				owner:  m,
			}
		}
	}
	return m, nil
}

func (m *Map) Width() int        { return m.width }
func (m *Map) Height() int       { return m.height }
func (m *Map) TileSize() float64 { return m.tileSize }
func (m *Map) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < m.width && c.Row < m.height
}

// SetType assigns a tile type during level construction. Only Open tiles may
// be reassigned.
func (m *Map) SetType(c Coord, typ TileType) error {
	t, ok := m.TileAt(c.Col, c.Row)
	if !ok {
		return ErrOutOfBounds
	}
	if t.Type != Open && t.Type != typ {
		return ErrTileConflict
	}
	t.Type = typ
	return nil
}

// TileAt returns the tile at (col, row).
func (m *Map) TileAt(col, row int) (*Tile, bool) {
	if m == nil || !m.InBounds(Coord{Col: col, Row: row}) {
		return nil, false
	}
	return m.tiles[row*m.width+col], true
}

// NeighborsOf returns the in-grid 4-neighbours of (col, row) in the order
// up, right, down, left.
func (m *Map) NeighborsOf(col, row int) []*Tile {
	c := Coord{Col: col, Row: row}
	if m == nil || !m.InBounds(c) {
		return nil
	}
	out := make([]*Tile, 0, 4)
	for _, n := range [4]Coord{c.Up(), c.Right(), c.Down(), c.Left()} {
		if t, ok := m.TileAt(n.Col, n.Row); ok {
			out = append(out, t)
		}
	}
	return out
}

// Tiles returns every tile in row-major order.
func (m *Map) Tiles() []*Tile {
	out := make([]*Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// CoordAt converts a world position into the containing grid cell.
func (m *Map) CoordAt(x, y float64) (Coord, bool) {
	c := Coord{
		Col: int(math.Floor(x / m.tileSize)),
		Row: int(math.Floor(y / m.tileSize)),
	}
	return c, m.InBounds(c)
}

// Center returns the world position of a cell's centre.
func (m *Map) Center(c Coord) (x, y float64) {
	return (float64(c.Col) + 0.5) * m.tileSize, (float64(c.Row) + 0.5) * m.tileSize
}

// OnChange registers fn to run after any tile activation change.
func (m *Map) OnChange(fn func(*Tile)) {
	if m == nil || fn == nil {
		return
	}
	m.listeners = append(m.listeners, fn)
}

func (m *Map) notify(t *Tile) {
	if m == nil {
		return
	}
	for _, fn := range m.listeners {
		fn(t)
	}
}
