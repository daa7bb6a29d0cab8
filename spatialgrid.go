package stride

import (
	"math"
	"sort"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMaxTraversedCells bounds the number of cells a single ray walks through
const DefaultMaxTraversedCells = 512

// CellKey - Coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - Holds the indices of the colliders overlapping a cell
type Cell struct {
	colliderIndices []int
}

// SpatialGrid - Uniform hashed grid indexing the bounded colliders of a world
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid - Creates a grid of numCells buckets, rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].colliderIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - Adds the collider index to every cell its bounds overlap
func (sg *SpatialGrid) Insert(colliderIndex int, collider *actor.Collider) {
	aabb := collider.Shape.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})

				sg.cells[cellIdx].colliderIndices = append(
					sg.cells[cellIdx].colliderIndices,
					colliderIndex,
				)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].colliderIndices = sg.cells[i].colliderIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].colliderIndices) > 1 {
			sort.Ints(sg.cells[i].colliderIndices)
		}
	}
}

// Traverse walks the cells crossed by the ray between the distances from and
// to, in order (3D DDA). For every cell, visit receives the collider indices
// of its bucket and the distance at which the ray leaves the cell; returning
// false stops the walk. At most maxCells cells are visited.
//
// Buckets are hashed, so a bucket may also hold colliders of distant cells.
func (sg *SpatialGrid) Traverse(ray actor.Ray, from, to float64, maxCells int, visit func(indices []int, exit float64) bool) {
	start := sg.worldToCell(ray.At(from))
	cell := [3]int{start.X, start.Y, start.Z}

	var step [3]int
	var tMax, tDelta [3]float64
	for axis := 0; axis < 3; axis++ {
		d := ray.Direction[axis]
		origin := ray.Origin[axis]
		bound := float64(cell[axis]) * sg.cellSize

		switch {
		case d > 0:
			step[axis] = 1
			tMax[axis] = (bound + sg.cellSize - origin) / d
			tDelta[axis] = sg.cellSize / d
		case d < 0:
			step[axis] = -1
			tMax[axis] = (bound - origin) / d
			tDelta[axis] = -sg.cellSize / d
		default:
			tMax[axis] = math.Inf(1)
			tDelta[axis] = math.Inf(1)
		}
	}

	for visited := 0; visited < maxCells; visited++ {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		exit := tMax[axis]

		key := CellKey{cell[0], cell[1], cell[2]}
		if !visit(sg.cells[sg.hashCell(key)].colliderIndices, exit) {
			return
		}
		if exit >= to || math.IsInf(exit, 1) {
			return
		}

		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}
}

// worldToCell - Converts a world position into cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - Hashes a cell into a bucket index
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
