package level

// Path is an ordered walk of graph-adjacent cells, start first.
type Path []Coord

// FindPath runs a breadth-first search from start to goal. Ties between
// equal-length routes resolve through the neighbour order up, right, down,
// left, so results are reproducible. It reports false when either end is not
// a node or goal is unreachable; no partial path is ever returned.
//
// FindPath only reads the graph and may run concurrently with other reads.
func (g *Graph) FindPath(start, goal Coord) (Path, bool) {
	if _, ok := g.nodes[start]; !ok {
		return nil, false
	}
	if _, ok := g.nodes[goal]; !ok {
		return nil, false
	}
	if start == goal {
		return Path{start}, true
	}

	cameFrom := map[Coord]Coord{start: start}
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbors(cur) {
			if _, seen := cameFrom[n.Coord]; seen {
				continue
			}
			cameFrom[n.Coord] = cur
			if n.Coord == goal {
				return reconstruct(cameFrom, start, goal), true
			}
			queue = append(queue, n.Coord)
		}
	}
	return nil, false
}

// NextStep returns the first cell to move into on the way to goal. When
// start == goal the step is start itself.
func (g *Graph) NextStep(start, goal Coord) (Coord, bool) {
	p, ok := g.FindPath(start, goal)
	if !ok {
		return Coord{}, false
	}
	if len(p) == 1 {
		return p[0], true
	}
	return p[1], true
}

func reconstruct(cameFrom map[Coord]Coord, start, goal Coord) Path {
	var p Path
	for cur := goal; ; cur = cameFrom[cur] {
		p = append(p, cur)
		if cur == start {
			break
		}
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}
