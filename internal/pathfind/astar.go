// Package pathfind provides grid A* search, a short-lived path cache, and
// a Bresenham line-of-sight test shared by the pathfinder and the wolf
// perception system. Cells are floor(x/cellSize), floor(y/cellSize)
// pairs, and walkability is read through a caller-supplied WalkableFunc.
package pathfind

import (
	"container/heap"
	"math"

	"wolfpack/internal/game/vecmath"
)

const (
	// NodeLimit bounds a single search; exceeding it returns no path
	// rather than an error.
	NodeLimit = 1000

	// CacheTTLMs is how long a cached path stays valid for a given
	// start/goal cell pair.
	CacheTTLMs float64 = 5000

	sqrt2 = math.Sqrt2
)

// cellKey identifies a grid cell.
type cellKey struct{ x, y int }

// WalkableFunc reports whether a grid cell is traversable. Cell indices
// are floor(x/cellSize), floor(y/cellSize).
type WalkableFunc func(cellX, cellY int) bool

// Pathfinder runs bounded A* searches over a uniform grid and caches
// results per start/goal cell pair for CacheTTLMs. The cache has no size
// cap and nothing clears it: an expired entry is replaced only when the
// same start/goal pair is looked up again.
type Pathfinder struct {
	cellSize float64
	walkable WalkableFunc

	cache map[[2]cellKey]cacheEntry
}

type cacheEntry struct {
	path      []vecmath.Vec2
	expiresMs float64
}

// NewPathfinder creates a pathfinder over a grid with the given cell
// size, querying walkability through fn.
func NewPathfinder(cellSize float64, fn WalkableFunc) *Pathfinder {
	return &Pathfinder{
		cellSize: cellSize,
		walkable: fn,
		cache:    make(map[[2]cellKey]cacheEntry),
	}
}

func (p *Pathfinder) toCell(v vecmath.Vec2) cellKey {
	return cellKey{int(math.Floor(v.X / p.cellSize)), int(math.Floor(v.Y / p.cellSize))}
}

func (p *Pathfinder) cellCenter(c cellKey) vecmath.Vec2 {
	return vecmath.Vec2{
		X: (float64(c.x) + 0.5) * p.cellSize,
		Y: (float64(c.y) + 0.5) * p.cellSize,
	}
}

// FindPath searches for a path from start to goal, returning the
// smoothed list of cell-center waypoints. nowMs is the caller's
// monotonic simulation clock, used to evaluate and populate the cache;
// it is never read from wall-clock time so replays stay deterministic.
func (p *Pathfinder) FindPath(start, goal vecmath.Vec2, nowMs float64) ([]vecmath.Vec2, bool) {
	startCell := p.toCell(start)
	goalCell := p.toCell(goal)
	key := [2]cellKey{startCell, goalCell}

	if entry, ok := p.cache[key]; ok && nowMs < entry.expiresMs {
		return entry.path, true
	}

	path, ok := p.search(startCell, goalCell)
	if !ok {
		return nil, false
	}

	smoothed := p.smooth(path)
	p.cache[key] = cacheEntry{path: smoothed, expiresMs: nowMs + CacheTTLMs}
	return smoothed, true
}

// search runs 8-connected A* with straight cost 1, diagonal cost sqrt2,
// and a Euclidean heuristic, bounded to NodeLimit expansions.
func (p *Pathfinder) search(start, goal cellKey) ([]cellKey, bool) {
	if start == goal {
		return []cellKey{start}, true
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &searchNode{cell: start, g: 0, f: heuristic(start, goal)})

	cameFrom := make(map[cellKey]cellKey)
	gScore := map[cellKey]float64{start: 0}
	visited := make(map[cellKey]bool)

	expansions := 0
	for open.Len() > 0 {
		if expansions >= NodeLimit {
			return nil, false
		}
		current := heap.Pop(open).(*searchNode)
		if visited[current.cell] {
			continue
		}
		visited[current.cell] = true
		expansions++

		if current.cell == goal {
			return reconstructPath(cameFrom, current.cell), true
		}

		for _, n := range neighbors(current.cell) {
			if visited[n.cell] || !p.walkable(n.cell.x, n.cell.y) {
				continue
			}
			tentativeG := gScore[current.cell] + n.cost
			if existing, ok := gScore[n.cell]; ok && tentativeG >= existing {
				continue
			}
			cameFrom[n.cell] = current.cell
			gScore[n.cell] = tentativeG
			heap.Push(open, &searchNode{cell: n.cell, g: tentativeG, f: tentativeG + heuristic(n.cell, goal)})
		}
	}

	return nil, false
}

// smooth removes any waypoint w_i such that w_{i-1} has line-of-sight to
// w_{i+1}.
func (p *Pathfinder) smooth(path []cellKey) []vecmath.Vec2 {
	if len(path) <= 2 {
		out := make([]vecmath.Vec2, len(path))
		for i, c := range path {
			out[i] = p.cellCenter(c)
		}
		return out
	}

	result := []cellKey{path[0]}
	i := 0
	for i < len(path)-1 {
		j := len(path) - 1
		for j > i+1 {
			if p.lineOfSightCells(path[i], path[j]) {
				break
			}
			j--
		}
		result = append(result, path[j])
		i = j
	}

	out := make([]vecmath.Vec2, len(result))
	for i, c := range result {
		out[i] = p.cellCenter(c)
	}
	return out
}

func (p *Pathfinder) lineOfSightCells(a, b cellKey) bool {
	return p.LineOfSight(p.cellCenter(a), p.cellCenter(b))
}

// LineOfSight walks a Bresenham line between two world points over the
// walkability grid, exposed separately for the perception system to use.
func (p *Pathfinder) LineOfSight(a, b vecmath.Vec2) bool {
	start := p.toCell(a)
	end := p.toCell(b)

	x0, y0 := start.x, start.y
	x1, y1 := end.x, end.y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if !p.walkable(x0, y0) {
			return false
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func heuristic(a, b cellKey) float64 {
	dx := float64(a.x - b.x)
	dy := float64(a.y - b.y)
	return math.Sqrt(dx*dx + dy*dy)
}

func reconstructPath(cameFrom map[cellKey]cellKey, current cellKey) []cellKey {
	path := []cellKey{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append([]cellKey{prev}, path...)
		current = prev
	}
	return path
}

type neighborCost struct {
	cell cellKey
	cost float64
}

func neighbors(c cellKey) []neighborCost {
	return []neighborCost{
		{cellKey{c.x + 1, c.y}, 1},
		{cellKey{c.x - 1, c.y}, 1},
		{cellKey{c.x, c.y + 1}, 1},
		{cellKey{c.x, c.y - 1}, 1},
		{cellKey{c.x + 1, c.y + 1}, sqrt2},
		{cellKey{c.x + 1, c.y - 1}, sqrt2},
		{cellKey{c.x - 1, c.y + 1}, sqrt2},
		{cellKey{c.x - 1, c.y - 1}, sqrt2},
	}
}

// searchNode is one entry in the A* open set.
type searchNode struct {
	cell cellKey
	g, f float64
}

// nodeHeap is a container/heap min-heap ordered by f-score.
type nodeHeap []*searchNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*searchNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
