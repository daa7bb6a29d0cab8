package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// IntersectRay runs the slab test of a ray against the box.
// It returns the entry and exit distances along the ray; entry is negative when
// the ray starts inside the box. axis is the slab the ray entered through
// (-1 when it starts inside).
func (a AABB) IntersectRay(ray Ray) (entry, exit float64, axis int, ok bool) {
	entry = math.Inf(-1)
	exit = math.Inf(1)
	axis = -1

	for i := 0; i < 3; i++ {
		o := ray.Origin[i]
		d := ray.Direction[i]

		if d == 0 {
			// Parallel to the slab, the origin must already be between its planes
			if o < a.Min[i] || o > a.Max[i] {
				return 0, 0, -1, false
			}
			continue
		}

		t1 := (a.Min[i] - o) / d
		t2 := (a.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > entry {
			entry = t1
			axis = i
		}
		exit = math.Min(exit, t2)

		if entry > exit {
			return 0, 0, -1, false
		}
	}

	if exit < 0 {
		return 0, 0, -1, false
	}
	if entry < 0 {
		axis = -1
	}

	return entry, exit, axis, true
}
