package engine

// CountMarkers returns the total number of markers in the world.
func CountMarkers(g *Grid) int {
	total := 0
	for _, n := range g.markers {
		total += int(n)
	}
	return total
}

// CountObstacles returns the number of interior walls.
func CountObstacles(g *Grid) int {
	count := 0
	for _, w := range g.walls {
		if w {
			count++
		}
	}
	return count
}

// OpenCells returns the number of interior cells without a wall.
func OpenCells(g *Grid) int {
	return g.height*g.width - CountObstacles(g)
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// ReachableCells returns every cell the hero can walk to from its current
// position, the start included, in breadth-first order.
func ReachableCells(g *Grid) []Position {
	start := g.pose.Position
	seen := make([]bool, len(g.walls))
	seen[g.index(start)] = true
	queue := []Position{start}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for d := North; d <= West; d++ {
			next := cur.Step(d)
			if g.IsWall(next) || seen[g.index(next)] {
				continue
			}
			seen[g.index(next)] = true
			queue = append(queue, next)
		}
	}
	return queue
}

// ReachableShare returns the fraction of open interior cells the hero can
// walk to. A world without open cells counts as fully reachable.
func ReachableShare(g *Grid) float64 {
	open := OpenCells(g)
	if open == 0 {
		return 1
	}
	reached := 0
	for _, p := range ReachableCells(g) {
		if !g.IsObstacle(p) {
			reached++
		}
	}
	return float64(reached) / float64(open)
}

// FindNearestMarker returns the reachable marker cell with the shortest walk
// from the hero, and the walk length. ok is false when no marker is reachable.
func FindNearestMarker(g *Grid) (pos Position, steps int, ok bool) {
	start := g.pose.Position
	dist := make([]int, len(g.walls))
	for i := range dist {
		dist[i] = -1
	}
	dist[g.index(start)] = 0
	queue := []Position{start}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		if g.MarkerCount(cur) > 0 {
			return cur, dist[g.index(cur)], true
		}
		for d := North; d <= West; d++ {
			next := cur.Step(d)
			if g.IsWall(next) || dist[g.index(next)] >= 0 {
				continue
			}
			dist[g.index(next)] = dist[g.index(cur)] + 1
			queue = append(queue, next)
		}
	}
	return Position{}, 0, false
}
