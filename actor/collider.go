package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Layer is a collision category bitmask. A collider belongs to the layers set
// in its Layer field, and queries only consider colliders matching their mask.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerGround
	LayerLimb

	LayerAll Layer = math.MaxUint32
)

// In reports whether the layer shares at least one bit with mask
func (l Layer) In(mask Layer) bool {
	return l&mask != 0
}

// Collider is a static collision shape placed in the world.
// Colliders never move on their own: the world only queries them.
type Collider struct {
	Id        interface{}
	Transform Transform
	Shape     ShapeInterface
	Layer     Layer
	// Density is used to derive the collider's mass, see Mass
	Density float64
}

// NewCollider creates a new collider and computes its bounds
func NewCollider(transform Transform, shape ShapeInterface, layer Layer) *Collider {
	c := &Collider{
		Shape:   shape,
		Layer:   layer,
		Density: 1.0,
	}
	c.SetTransform(transform)

	return c
}

// SetTransform moves the collider and refreshes its bounds.
// The owning world must be rebuilt afterwards.
func (c *Collider) SetTransform(transform Transform) {
	c.Transform = TransformAt(transform.Position, transform.Rotation)
	c.Shape.ComputeAABB(c.Transform)
}

// Raycast intersects a world space ray with the collider.
// Hits further than maxDistance are discarded.
func (c *Collider) Raycast(ray Ray, maxDistance float64) (RaycastHit, bool) {
	local := Ray{
		Origin:    c.Transform.ToLocal(ray.Origin),
		Direction: c.Transform.ToLocalDirection(ray.Direction),
	}

	distance, normal, ok := c.Shape.IntersectRay(local)
	if !ok || distance > maxDistance {
		return RaycastHit{}, false
	}

	return RaycastHit{
		Point:    ray.At(distance),
		Normal:   c.Transform.ToWorldDirection(normal).Normalize(),
		Distance: distance,
		Collider: c,
	}, true
}

// Centroid returns the center of the collider's volume in world space
func (c *Collider) Centroid() mgl64.Vec3 {
	if capsule, ok := c.Shape.(*Capsule); ok {
		return c.Transform.ToWorld(capsule.Center)
	}

	return c.Transform.Position
}

// Mass returns the mass of the collider's shape at its density
func (c *Collider) Mass() float64 {
	return c.Shape.ComputeMass(c.Density)
}
