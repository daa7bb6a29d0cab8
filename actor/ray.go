package actor

import "github.com/go-gl/mathgl/mgl64"

// Ray is a half line starting at Origin. Direction must be normalized so that
// distances along the ray are world units.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at the given distance along the ray
func (r Ray) At(distance float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// RaycastHit is the nearest intersection of a ray with a collider
type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider *Collider
}
