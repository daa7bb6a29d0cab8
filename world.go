package stride

import (
	"math"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_CELL_SIZE = 1.0
	DEFAULT_CELLS     = 1024
	DEFAULT_WORKERS   = 1
)

// World is a static collision scene answering ray queries.
// Colliders are indexed when added; a collider moved through SetTransform
// requires a call to Rebuild. Queries never mutate the world, so CastRay may
// be called from several goroutines once the world is set up.
type World struct {
	// List of all colliders in the world
	Colliders   []*actor.Collider
	SpatialGrid *SpatialGrid
	// Upper bound on the cells walked by one ray
	MaxTraversedCells int
	Workers           int

	// Planes are unbounded and tested directly instead of through the grid
	planes []int
	bounds actor.AABB
	// Whether bounds holds at least one gridded collider
	bounded bool
}

// NewWorld creates an empty world indexed by a grid of the given cell size
func NewWorld(cellSize float64, numCells int) *World {
	if !(cellSize > 0) {
		cellSize = DEFAULT_CELL_SIZE
	}

	return &World{
		SpatialGrid:       NewSpatialGrid(cellSize, numCells),
		MaxTraversedCells: DefaultMaxTraversedCells,
		Workers:           DEFAULT_WORKERS,
	}
}

// AddCollider adds a collider to the world and indexes it
func (w *World) AddCollider(collider *actor.Collider) {
	w.Colliders = append(w.Colliders, collider)
	w.index(len(w.Colliders)-1, collider)
}

// RemoveCollider removes a collider from the world and rebuilds the index
func (w *World) RemoveCollider(collider *actor.Collider) {
	k := -1
	for i, c := range w.Colliders {
		if c == collider {
			k = i
			break
		}
	}

	if k != -1 {
		w.Colliders = append(w.Colliders[:k], w.Colliders[k+1:]...)
		w.Rebuild()
	}
}

// Rebuild recomputes every collider's bounds and indexes them again
func (w *World) Rebuild() {
	w.SpatialGrid.Clear()
	w.planes = w.planes[:0]
	w.bounds = actor.AABB{}
	w.bounded = false

	for i, collider := range w.Colliders {
		collider.SetTransform(collider.Transform)
		w.index(i, collider)
	}
	w.SpatialGrid.SortCells()
}

func (w *World) index(i int, collider *actor.Collider) {
	if collider.Shape.Type() == actor.ShapeTypePlane {
		w.planes = append(w.planes, i)
		return
	}

	w.SpatialGrid.Insert(i, collider)

	aabb := collider.Shape.GetAABB()
	if !w.bounded {
		w.bounds = aabb
		w.bounded = true
		return
	}
	for k := 0; k < 3; k++ {
		w.bounds.Min[k] = math.Min(w.bounds.Min[k], aabb.Min[k])
		w.bounds.Max[k] = math.Max(w.bounds.Max[k], aabb.Max[k])
	}
}

// CastRay returns the nearest hit of the ray with a collider whose layer
// matches layerMask. A non-positive maxDistance means unbounded. Ties between
// colliders at the same distance go to the first one added.
//
// Planes are always tested. Other colliders are only found within the first
// MaxTraversedCells grid cells crossed by the ray inside the colliders'
// bounds: in a sparse world spanning more cells than that along the ray, a
// distant collider can be missed even though maxDistance is unbounded.
func (w *World) CastRay(origin, direction mgl64.Vec3, maxDistance float64, layerMask actor.Layer) (actor.RaycastHit, bool) {
	if direction.Len() == 0 || !finite(origin) || !finite(direction) {
		return actor.RaycastHit{}, false
	}
	if !(maxDistance > 0) {
		maxDistance = math.Inf(1)
	}

	ray := actor.Ray{Origin: origin, Direction: direction.Normalize()}
	q := query{world: w, ray: ray, maxDistance: maxDistance, mask: layerMask, best: -1}

	for _, i := range w.planes {
		q.test(i)
	}
	q.walkGrid()

	if q.best == -1 {
		return actor.RaycastHit{}, false
	}

	return q.hit, true
}

// CastRays runs CastRay for every ray, spread over the world's workers.
// Results are in the same order as the rays.
func (w *World) CastRays(rays []actor.Ray, maxDistance float64, layerMask actor.Layer) ([]actor.RaycastHit, []bool) {
	hits := make([]actor.RaycastHit, len(rays))
	found := make([]bool, len(rays))

	task(w.Workers, rays, func(i int, ray actor.Ray) {
		hits[i], found[i] = w.CastRay(ray.Origin, ray.Direction, maxDistance, layerMask)
	})

	return hits, found
}

// query holds the state of a single ray cast
type query struct {
	world       *World
	ray         actor.Ray
	maxDistance float64
	mask        actor.Layer

	best int
	hit  actor.RaycastHit
	// Colliders already tested, a collider spans several cells
	tested []int
}

func (q *query) walkGrid() {
	w := q.world
	if !w.bounded {
		return
	}

	entry, exit, _, ok := w.bounds.IntersectRay(q.ray)
	if !ok || entry > q.maxDistance {
		return
	}

	from := math.Max(entry, 0)
	to := math.Min(exit, q.maxDistance)

	w.SpatialGrid.Traverse(q.ray, from, to, w.MaxTraversedCells, func(indices []int, cellExit float64) bool {
		for _, i := range indices {
			if q.seen(i) {
				continue
			}
			q.tested = append(q.tested, i)
			q.test(i)
		}

		// Every hit before the cell exit lies in a cell already visited
		return q.best == -1 || q.hit.Distance > cellExit
	})
}

func (q *query) test(i int) {
	collider := q.world.Colliders[i]
	if !collider.Layer.In(q.mask) {
		return
	}

	hit, ok := collider.Raycast(q.ray, q.maxDistance)
	if !ok {
		return
	}

	if q.best == -1 || hit.Distance < q.hit.Distance || (hit.Distance == q.hit.Distance && i < q.best) {
		q.best = i
		q.hit = hit
	}
}

func (q *query) seen(i int) bool {
	for _, j := range q.tested {
		if j == i {
			return true
		}
	}

	return false
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}
