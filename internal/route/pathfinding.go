// Package route finds walkable paths across a height field.
package route

import (
	"container/heap"
	gomath "math"

	"github.com/Faultbox/procscape/internal/terrain"
)

// Default limits for a ground walker.
const (
	DefaultMaxClimb  = 1.0
	DefaultClimbCost = 0.5
)

// PathNode represents a node in the A* search.
type PathNode struct {
	X, Z   int     // Cell coordinates
	G      float32 // Cost from start
	H      float32 // Heuristic (estimated cost to goal)
	F      float32 // Total cost (G + H)
	Parent *PathNode
	Index  int // Index in heap
}

// PathHeap implements a priority queue for A* search.
type PathHeap []*PathNode

func (h PathHeap) Len() int           { return len(h) }
func (h PathHeap) Less(i, j int) bool { return h[i].F < h[j].F }
func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *PathHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*PathNode)
	node.Index = n
	*h = append(*h, node)
}

func (h *PathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[0 : n-1]
	return node
}

// PathFinder searches a height field. A step between neighbouring cells is
// allowed when neither cell is blocked and the height difference is at most
// MaxClimb. Climbing adds ClimbCost per unit of height to the step cost.
type PathFinder struct {
	field     *terrain.HeightField
	blocked   []bool
	MaxClimb  float32
	ClimbCost float32
}

// NewPathFinder creates a pathfinder over f with default limits.
func NewPathFinder(f *terrain.HeightField) *PathFinder {
	if f == nil {
		return nil
	}
	return &PathFinder{
		field:     f,
		blocked:   make([]bool, len(f.Cells)),
		MaxClimb:  DefaultMaxClimb,
		ClimbCost: DefaultClimbCost,
	}
}

// Block marks a cell as impassable. Out-of-range cells are ignored.
func (pf *PathFinder) Block(x, z int) {
	if pf.inBounds(x, z) {
		pf.blocked[pf.key(x, z)] = true
	}
}

// IsWalkable reports whether a cell can be stood on.
func (pf *PathFinder) IsWalkable(x, z int) bool {
	if pf == nil || !pf.inBounds(x, z) {
		return false
	}
	return !pf.blocked[pf.key(x, z)]
}

// CanStep reports whether a walker may move between two walkable cells.
func (pf *PathFinder) CanStep(x1, z1, x2, z2 int) bool {
	if !pf.IsWalkable(x1, z1) || !pf.IsWalkable(x2, z2) {
		return false
	}
	return pf.climb(x1, z1, x2, z2) <= pf.MaxClimb
}

// FindPath finds a path from start to goal using A*.
// Returns nil if no path exists.
func (pf *PathFinder) FindPath(startX, startZ, goalX, goalZ int) [][2]int {
	if pf == nil || pf.field == nil {
		return nil
	}
	if !pf.IsWalkable(startX, startZ) || !pf.IsWalkable(goalX, goalZ) {
		return nil
	}

	openSet := &PathHeap{}
	heap.Init(openSet)

	closedSet := make(map[int]bool)
	nodeMap := make(map[int]*PathNode)

	startNode := &PathNode{
		X: startX,
		Z: startZ,
		G: 0,
		H: pf.heuristic(startX, startZ, goalX, goalZ),
	}
	startNode.F = startNode.G + startNode.H
	heap.Push(openSet, startNode)
	nodeMap[pf.key(startX, startZ)] = startNode

	// 8-way movement; odd indices are diagonals
	directions := [][2]int{
		{0, 1},
		{-1, 1},
		{-1, 0},
		{-1, -1},
		{0, -1},
		{1, -1},
		{1, 0},
		{1, 1},
	}

	diagonalCost := float32(gomath.Sqrt2)
	straightCost := float32(1.0)

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PathNode)

		if current.X == goalX && current.Z == goalZ {
			return pf.reconstructPath(current)
		}

		closedSet[pf.key(current.X, current.Z)] = true

		for i, dir := range directions {
			nx, nz := current.X+dir[0], current.Z+dir[1]

			if !pf.CanStep(current.X, current.Z, nx, nz) {
				continue
			}
			if closedSet[pf.key(nx, nz)] {
				continue
			}

			var moveCost float32
			if i%2 == 1 {
				moveCost = diagonalCost
				// No corner cutting: both orthogonal steps must be possible
				if !pf.CanStep(current.X, current.Z, current.X+dir[0], current.Z) ||
					!pf.CanStep(current.X, current.Z, current.X, current.Z+dir[1]) {
					continue
				}
			} else {
				moveCost = straightCost
			}
			moveCost += pf.climb(current.X, current.Z, nx, nz) * pf.ClimbCost

			g := current.G + moveCost

			neighbor, exists := nodeMap[pf.key(nx, nz)]
			if !exists {
				neighbor = &PathNode{
					X:      nx,
					Z:      nz,
					G:      g,
					H:      pf.heuristic(nx, nz, goalX, goalZ),
					Parent: current,
				}
				neighbor.F = neighbor.G + neighbor.H
				nodeMap[pf.key(nx, nz)] = neighbor
				heap.Push(openSet, neighbor)
			} else if g < neighbor.G {
				neighbor.G = g
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Parent = current
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	return nil
}

// PathLength returns the horizontal length of a path in cells.
func PathLength(path [][2]int) float32 {
	var total float32
	for i := 1; i < len(path); i++ {
		dx := float64(path[i][0] - path[i-1][0])
		dz := float64(path[i][1] - path[i-1][1])
		total += float32(gomath.Hypot(dx, dz))
	}
	return total
}

func (pf *PathFinder) climb(x1, z1, x2, z2 int) float32 {
	h1 := pf.field.Cells[pf.key(x1, z1)].Position.Y
	h2 := pf.field.Cells[pf.key(x2, z2)].Position.Y
	return float32(gomath.Abs(float64(h2 - h1)))
}

// heuristic is the octile distance, which never overestimates the step cost.
func (pf *PathFinder) heuristic(x1, z1, x2, z2 int) float32 {
	dx := abs(x2 - x1)
	dz := abs(z2 - z1)
	if dx < dz {
		return float32(dx)*gomath.Sqrt2 + float32(dz-dx)
	}
	return float32(dz)*gomath.Sqrt2 + float32(dx-dz)
}

func (pf *PathFinder) inBounds(x, z int) bool {
	return x >= 0 && x < pf.field.Width && z >= 0 && z < pf.field.Height
}

func (pf *PathFinder) key(x, z int) int {
	return pf.field.Index(x, z)
}

func (pf *PathFinder) reconstructPath(node *PathNode) [][2]int {
	var path [][2]int
	for node != nil {
		path = append(path, [2]int{node.X, node.Z})
		node = node.Parent
	}
	// Reverse path (it's built from goal to start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
