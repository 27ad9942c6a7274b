package level

import "sort"

// Graph is the undirected adjacency structure over walkable tiles. Obstacle
// tiles are never nodes and never edge endpoints.
type Graph struct {
	nodes map[Coord]*Tile
	adj   map[Coord]map[Coord]struct{}
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Coord]*Tile),
		adj:   make(map[Coord]map[Coord]struct{}),
	}
}

// BuildGraph adds every walkable cell of m as a node, connects it to its
// walkable 4-neighbours, and subscribes the graph to m's tile changes so a
// broken tile joins the graph.
func BuildGraph(m *Map) *Graph {
	g := NewGraph()
	if m == nil {
		return g
	}
	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			t, _ := m.TileAt(col, row)
			if !t.Walkable() {
				continue
			}
			g.AddNode(t)
			for _, n := range m.NeighborsOf(col, row) {
				if n.Walkable() {
					g.AddNode(n)
					g.Connect(t, n)
				}
			}
		}
	}
	m.OnChange(func(t *Tile) { g.Refresh(m, t) })
	return g
}

// AddNode registers t. Re-adding is a no-op, as is adding an Obstacle.
func (g *Graph) AddNode(t *Tile) {
	if t == nil || t.Type == Obstacle {
		return
	}
	if _, ok := g.nodes[t.Coord]; ok {
		return
	}
	g.nodes[t.Coord] = t
	g.adj[t.Coord] = make(map[Coord]struct{}, 4)
}

// HasNode reports whether t is a vertex.
func (g *Graph) HasNode(t *Tile) bool {
	if t == nil {
		return false
	}
	n, ok := g.nodes[t.Coord]
	return ok && n == t
}

// Connect adds the unordered edge a-b when both are nodes and distinct.
func (g *Graph) Connect(a, b *Tile) {
	if !g.HasNode(a) || !g.HasNode(b) || a.Coord == b.Coord {
		return
	}
	g.adj[a.Coord][b.Coord] = struct{}{}
	g.adj[b.Coord][a.Coord] = struct{}{}
}

// Connected reports whether the edge a-b exists.
func (g *Graph) Connected(a, b *Tile) bool {
	if !g.HasNode(a) || !g.HasNode(b) {
		return false
	}
	_, ok := g.adj[a.Coord][b.Coord]
	return ok
}

// Neighbors returns the tiles joined to t, ordered up, right, down, left and
// then any non-cardinal neighbours by row and column. Empty when t is not a
// node.
func (g *Graph) Neighbors(t *Tile) []*Tile {
	if !g.HasNode(t) {
		return nil
	}
	return g.neighbors(t.Coord)
}

func (g *Graph) neighbors(c Coord) []*Tile {
	edges := g.adj[c]
	out := make([]*Tile, 0, len(edges))
	for n := range edges {
		out = append(out, g.nodes[n])
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := visitRank(c, out[i].Coord), visitRank(c, out[j].Coord)
		if ri != rj {
			return ri < rj
		}
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func visitRank(from, to Coord) int {
	switch to {
	case from.Up():
		return 0
	case from.Right():
		return 1
	case from.Down():
		return 2
	case from.Left():
		return 3
	}
	return 4
}

// RemoveNode drops t and every edge touching it.
func (g *Graph) RemoveNode(t *Tile) {
	if !g.HasNode(t) {
		return
	}
	for n := range g.adj[t.Coord] {
		delete(g.adj[n], t.Coord)
	}
	delete(g.adj, t.Coord)
	delete(g.nodes, t.Coord)
}

// Refresh re-evaluates t after an activation change: a tile that became
// walkable joins the graph with edges to its walkable neighbours, one that
// stopped being walkable leaves it.
func (g *Graph) Refresh(m *Map, t *Tile) {
	if t == nil || m == nil {
		return
	}
	switch {
	case t.Walkable() && !g.HasNode(t):
		g.AddNode(t)
		for _, n := range m.NeighborsOf(t.Col, t.Row) {
			if n.Walkable() {
				g.AddNode(n)
				g.Connect(t, n)
			}
		}
	case !t.Walkable() && g.HasNode(t):
		g.RemoveNode(t)
	}
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the tile registered at c.
func (g *Graph) Node(c Coord) (*Tile, bool) {
	t, ok := g.nodes[c]
	return t, ok
}
