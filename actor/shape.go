package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
	ShapeTypePlane
	ShapeTypeCapsule
)

const rayEpsilon = 1e-12

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	Type() ShapeType
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// ComputeMass calculates mass data for the shape given a density
	ComputeMass(density float64) float64
	// IntersectRay tests a ray expressed in the shape's local space.
	// It returns the distance along the ray and the local surface normal of the
	// first hit. Rays starting inside a solid shape do not hit it.
	IntersectRay(ray Ray) (float64, mgl64.Vec3, bool)
}

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) ComputeAABB(transform Transform) {
	corners := [8]mgl64.Vec3{
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
	}

	b.aabb = boundPoints(transform, corners[:])
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

// ComputeMass calculates mass data for the box
func (b *Box) ComputeMass(density float64) float64 {
	// Volume = 8 * hx * hy * hz (full dimensions are 2*halfExtents)
	volume := 8.0 * b.HalfExtents.X() * b.HalfExtents.Y() * b.HalfExtents.Z()

	return density * volume
}

func (b *Box) IntersectRay(ray Ray) (float64, mgl64.Vec3, bool) {
	local := AABB{Min: b.HalfExtents.Mul(-1), Max: b.HalfExtents}

	entry, _, axis, ok := local.IntersectRay(ray)
	if !ok || axis < 0 {
		return 0, mgl64.Vec3{}, false
	}

	var normal mgl64.Vec3
	if ray.Direction[axis] > 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}

	return entry, normal, true
}

// Sphere represents a spherical collision shape
type Sphere struct {
	Radius float64
	aabb   AABB
}

func (s *Sphere) Type() ShapeType {
	return ShapeTypeSphere
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	radiusVec := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	s.aabb = AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

// ComputeMass calculates mass data for the sphere
func (s *Sphere) ComputeMass(density float64) float64 {
	// Volume of sphere = (4/3) * π * r³
	volume := (4.0 / 3.0) * math.Pi * math.Pow(s.Radius, 3)

	return density * volume
}

func (s *Sphere) IntersectRay(ray Ray) (float64, mgl64.Vec3, bool) {
	t, ok := raySphere(ray, mgl64.Vec3{}, s.Radius)
	if !ok {
		return 0, mgl64.Vec3{}, false
	}

	return t, ray.At(t).Normalize(), true
}

// Plane represents an infinite plane collision shape
// The plane is defined by the equation: Normal · p + Distance = 0
// where Normal is the plane's normal vector (must be normalized)
// and Distance is the signed distance from the origin along the normal
type Plane struct {
	Normal   mgl64.Vec3 // Plane normal (must be normalized)
	Distance float64    // Plane constant (signed distance from origin)
	aabb     AABB
}

func (p *Plane) Type() ShapeType {
	return ShapeTypePlane
}

func (p *Plane) ComputeAABB(transform Transform) {
	const thickness = 1.0 // detection thickness below the surface
	const infinity = 1e10

	// Point on the plane closest to the origin
	// Assumes p.Normal is normalized
	planePoint := p.Normal.Mul(-p.Distance)

	// Create base bounds with thickness along the normal
	min := planePoint.Sub(p.Normal.Mul(thickness)).Add(transform.Position)
	max := planePoint.Add(transform.Position)

	// Only an axis-aligned normal keeps a finite extent, on that axis
	for i := 0; i < 3; i++ {
		if math.Abs(p.Normal[i]) < 1.0 {
			min[i] = -infinity
			max[i] = infinity
		} else if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}

	p.aabb = AABB{Min: min, Max: max}
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

// ComputeMass calculates mass data for the plane
// Planes are always static with infinite mass
func (p *Plane) ComputeMass(density float64) float64 {
	return math.Inf(1)
}

// IntersectRay only reports hits on the front face, the side the normal points to.
func (p *Plane) IntersectRay(ray Ray) (float64, mgl64.Vec3, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if denom > -rayEpsilon {
		return 0, mgl64.Vec3{}, false
	}

	t := -(p.Normal.Dot(ray.Origin) + p.Distance) / denom
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}

	return t, p.Normal, true
}

// Capsule is a segment swept by a sphere, aligned with the local Y axis and
// centered on Center. Height is the full height, both caps included; a height
// below twice the radius degenerates into a sphere.
type Capsule struct {
	Center mgl64.Vec3
	Height float64
	Radius float64
	aabb   AABB
}

func (c *Capsule) Type() ShapeType {
	return ShapeTypeCapsule
}

// Segment returns the two end points of the capsule's inner segment
func (c *Capsule) Segment() (mgl64.Vec3, mgl64.Vec3) {
	half := math.Max(c.Height/2-c.Radius, 0)
	axis := mgl64.Vec3{0, half, 0}

	return c.Center.Sub(axis), c.Center.Add(axis)
}

func (c *Capsule) ComputeAABB(transform Transform) {
	a, b := c.Segment()
	bounds := boundPoints(transform, []mgl64.Vec3{a, b})
	radiusVec := mgl64.Vec3{c.Radius, c.Radius, c.Radius}

	c.aabb = AABB{
		Min: bounds.Min.Sub(radiusVec),
		Max: bounds.Max.Add(radiusVec),
	}
}

func (c *Capsule) GetAABB() AABB {
	return c.aabb
}

// ComputeMass calculates mass data for the capsule
func (c *Capsule) ComputeMass(density float64) float64 {
	// Cylinder π r² L plus the two half spheres (4/3) π r³
	a, b := c.Segment()
	length := b.Sub(a).Len()
	volume := math.Pi*c.Radius*c.Radius*length + (4.0/3.0)*math.Pi*math.Pow(c.Radius, 3)

	return density * volume
}

func (c *Capsule) IntersectRay(ray Ray) (float64, mgl64.Vec3, bool) {
	a, b := c.Segment()
	ba := b.Sub(a)
	baba := ba.Dot(ba)

	best := math.Inf(1)
	var normal mgl64.Vec3

	// Cylinder body, skipped when the ray runs along the axis or the capsule is a sphere
	if baba > rayEpsilon {
		oa := ray.Origin.Sub(a)
		bard := ba.Dot(ray.Direction)
		baoa := ba.Dot(oa)

		k2 := baba - bard*bard
		if k2 > rayEpsilon {
			k1 := baba*ray.Direction.Dot(oa) - baoa*bard
			k0 := baba*oa.Dot(oa) - baoa*baoa - c.Radius*c.Radius*baba
			h := k1*k1 - k2*k0

			if h >= 0 && k0 > 0 {
				t := (-k1 - math.Sqrt(h)) / k2
				y := baoa + t*bard
				if t >= 0 && y > 0 && y < baba {
					best = t
					p := ray.At(t)
					normal = p.Sub(a.Add(ba.Mul(y / baba))).Normalize()
				}
			}
		}
	}

	for _, center := range [2]mgl64.Vec3{a, b} {
		if t, ok := raySphere(ray, center, c.Radius); ok && t < best {
			best = t
			normal = ray.At(t).Sub(center).Normalize()
		}
	}

	if math.IsInf(best, 1) {
		return 0, mgl64.Vec3{}, false
	}

	return best, normal, true
}

// raySphere returns the entry distance of a ray into a sphere. Rays starting
// inside the sphere do not hit it.
func raySphere(ray Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, false
	}

	h := b*b - c
	if h < 0 {
		return 0, false
	}

	t := -b - math.Sqrt(h)
	if t < 0 {
		return 0, false
	}

	return t, true
}

// boundPoints returns the AABB of local points placed by a transform
func boundPoints(transform Transform, points []mgl64.Vec3) AABB {
	first := transform.ToWorld(points[0])
	min := first
	max := first

	for _, point := range points[1:] {
		world := transform.ToWorld(point)

		min[0] = math.Min(min[0], world[0])
		min[1] = math.Min(min[1], world[1])
		min[2] = math.Min(min[2], world[2])

		max[0] = math.Max(max[0], world[0])
		max[1] = math.Max(max[1], world[1])
		max[2] = math.Max(max[2], world[2])
	}

	return AABB{Min: min, Max: max}
}
