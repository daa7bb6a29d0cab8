package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

var down = mgl64.Vec3{0, -1, 0}

// ========== MASS ==========

func TestShapeComputeMass(t *testing.T) {
	tests := []struct {
		name     string
		shape    ShapeInterface
		density  float64
		expected float64
	}{
		{"unit cube", &Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}, 2.0, 2.0},
		{"box 2x4x6", &Box{HalfExtents: mgl64.Vec3{1, 2, 3}}, 1.0, 48.0},
		{"unit sphere", &Sphere{Radius: 1.0}, 1.0, 4.0 / 3.0 * math.Pi},
		{"capsule", &Capsule{Height: 4, Radius: 1}, 1.0, math.Pi*2 + 4.0/3.0*math.Pi},
		{"flat capsule is a sphere", &Capsule{Height: 1, Radius: 1}, 1.0, 4.0 / 3.0 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.shape.ComputeMass(tt.density)
			if !floatEqual(got, tt.expected, 1e-9) {
				t.Errorf("ComputeMass(%v) = %v, want %v", tt.density, got, tt.expected)
			}
		})
	}

	if mass := (&Plane{Normal: mgl64.Vec3{0, 1, 0}}).ComputeMass(1.0); !math.IsInf(mass, 1) {
		t.Errorf("Plane mass = %v, want +Inf", mass)
	}
}

// ========== AABB ==========

func TestBoxComputeAABBWithRotation(t *testing.T) {
	tests := []struct {
		name        string
		box         *Box
		transform   Transform
		expectedMin mgl64.Vec3
		expectedMax mgl64.Vec3
	}{
		{
			name:        "no rotation",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			transform:   NewTransform(),
			expectedMin: mgl64.Vec3{-1, -2, -3},
			expectedMax: mgl64.Vec3{1, 2, 3},
		},
		{
			name:        "rotation 90° around Z-axis",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 2, 3}},
			transform:   TransformAt(mgl64.Vec3{}, mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})),
			expectedMin: mgl64.Vec3{-2, -1, -3},
			expectedMax: mgl64.Vec3{2, 1, 3},
		},
		{
			name:        "rotation 45° around Y-axis",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:   TransformAt(mgl64.Vec3{}, mgl64.QuatRotate(mgl64.DegToRad(45), mgl64.Vec3{0, 1, 0})),
			expectedMin: mgl64.Vec3{-1.4142, -1, -1.4142},
			expectedMax: mgl64.Vec3{1.4142, 1, 1.4142},
		},
		{
			name:        "rotation with offset position",
			box:         &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			transform:   TransformAt(mgl64.Vec3{5, 10, -3}, mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})),
			expectedMin: mgl64.Vec3{4, 9, -4},
			expectedMax: mgl64.Vec3{6, 11, -2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.box.ComputeAABB(tt.transform)
			aabb := tt.box.GetAABB()

			if !vec3Equal(aabb.Min, tt.expectedMin, 1e-3) {
				t.Errorf("Min = %v, want %v", aabb.Min, tt.expectedMin)
			}
			if !vec3Equal(aabb.Max, tt.expectedMax, 1e-3) {
				t.Errorf("Max = %v, want %v", aabb.Max, tt.expectedMax)
			}
		})
	}
}

func TestCapsuleComputeAABB(t *testing.T) {
	capsule := &Capsule{Center: mgl64.Vec3{0, 1, 0}, Height: 4, Radius: 0.5}

	capsule.ComputeAABB(TransformAt(mgl64.Vec3{10, 0, 0}, mgl64.QuatIdent()))
	aabb := capsule.GetAABB()
	if !vec3Equal(aabb.Min, mgl64.Vec3{9.5, -1, -0.5}, 1e-9) || !vec3Equal(aabb.Max, mgl64.Vec3{10.5, 3, 0.5}, 1e-9) {
		t.Errorf("upright capsule AABB = %v", aabb)
	}

	// Lying along X once rotated around Z
	capsule.ComputeAABB(TransformAt(mgl64.Vec3{}, mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1})))
	aabb = capsule.GetAABB()
	if !vec3Equal(aabb.Min, mgl64.Vec3{-3, -0.5, -0.5}, 1e-9) || !vec3Equal(aabb.Max, mgl64.Vec3{1, 0.5, 0.5}, 1e-9) {
		t.Errorf("rotated capsule AABB = %v", aabb)
	}
}

func TestPlaneComputeAABB(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: -2}
	plane.ComputeAABB(NewTransform())
	aabb := plane.GetAABB()

	if !floatEqual(aabb.Max.Y(), 2, 1e-9) || !floatEqual(aabb.Min.Y(), 1, 1e-9) {
		t.Errorf("plane AABB Y range = [%v, %v], want [1, 2]", aabb.Min.Y(), aabb.Max.Y())
	}
	if aabb.Min.X() > -1e9 || aabb.Max.Z() < 1e9 {
		t.Errorf("plane AABB should be unbounded on X/Z, got %v", aabb)
	}
}

// ========== RAY INTERSECTION ==========

func TestShapeIntersectRay(t *testing.T) {
	tests := []struct {
		name     string
		shape    ShapeInterface
		ray      Ray
		hit      bool
		distance float64
		normal   mgl64.Vec3
	}{
		{
			name:     "plane from above",
			shape:    &Plane{Normal: mgl64.Vec3{0, 1, 0}},
			ray:      Ray{Origin: mgl64.Vec3{3, 5, -2}, Direction: down},
			hit:      true,
			distance: 5,
			normal:   mgl64.Vec3{0, 1, 0},
		},
		{
			name:  "plane from below is ignored",
			shape: &Plane{Normal: mgl64.Vec3{0, 1, 0}},
			ray:   Ray{Origin: mgl64.Vec3{0, -5, 0}, Direction: mgl64.Vec3{0, 1, 0}},
			hit:   false,
		},
		{
			name:  "plane behind the origin",
			shape: &Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: -10},
			ray:   Ray{Origin: mgl64.Vec3{0, 5, 0}, Direction: down},
			hit:   false,
		},
		{
			name:  "parallel to the plane",
			shape: &Plane{Normal: mgl64.Vec3{0, 1, 0}},
			ray:   Ray{Origin: mgl64.Vec3{0, 1, 0}, Direction: mgl64.Vec3{1, 0, 0}},
			hit:   false,
		},
		{
			name:     "box top face",
			shape:    &Box{HalfExtents: mgl64.Vec3{1, 0.5, 1}},
			ray:      Ray{Origin: mgl64.Vec3{0.2, 3, 0.2}, Direction: down},
			hit:      true,
			distance: 2.5,
			normal:   mgl64.Vec3{0, 1, 0},
		},
		{
			name:     "box side face",
			shape:    &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			ray:      Ray{Origin: mgl64.Vec3{-4, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}},
			hit:      true,
			distance: 3,
			normal:   mgl64.Vec3{-1, 0, 0},
		},
		{
			name:  "box missed",
			shape: &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			ray:   Ray{Origin: mgl64.Vec3{5, 3, 0}, Direction: down},
			hit:   false,
		},
		{
			name:  "ray starting inside the box",
			shape: &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			ray:   Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: down},
			hit:   false,
		},
		{
			name:     "sphere",
			shape:    &Sphere{Radius: 2},
			ray:      Ray{Origin: mgl64.Vec3{0, 10, 0}, Direction: down},
			hit:      true,
			distance: 8,
			normal:   mgl64.Vec3{0, 1, 0},
		},
		{
			name:  "sphere missed",
			shape: &Sphere{Radius: 2},
			ray:   Ray{Origin: mgl64.Vec3{3, 10, 0}, Direction: down},
			hit:   false,
		},
		{
			name:     "capsule top cap",
			shape:    &Capsule{Height: 4, Radius: 1},
			ray:      Ray{Origin: mgl64.Vec3{0, 10, 0}, Direction: down},
			hit:      true,
			distance: 8,
			normal:   mgl64.Vec3{0, 1, 0},
		},
		{
			name:     "capsule cylinder",
			shape:    &Capsule{Height: 4, Radius: 1},
			ray:      Ray{Origin: mgl64.Vec3{5, 0.5, 0}, Direction: mgl64.Vec3{-1, 0, 0}},
			hit:      true,
			distance: 4,
			normal:   mgl64.Vec3{1, 0, 0},
		},
		{
			name:     "offset capsule",
			shape:    &Capsule{Center: mgl64.Vec3{0, 2, 0}, Height: 2, Radius: 0.5},
			ray:      Ray{Origin: mgl64.Vec3{0, 10, 0}, Direction: down},
			hit:      true,
			distance: 7,
			normal:   mgl64.Vec3{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, normal, ok := tt.shape.IntersectRay(tt.ray)
			if ok != tt.hit {
				t.Fatalf("IntersectRay() hit = %v, want %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if !floatEqual(distance, tt.distance, 1e-9) {
				t.Errorf("distance = %v, want %v", distance, tt.distance)
			}
			if !vec3Equal(normal, tt.normal, 1e-9) {
				t.Errorf("normal = %v, want %v", normal, tt.normal)
			}
		})
	}
}

func TestColliderRaycast(t *testing.T) {
	// A ramp: a box tilted 30° around X, centered 1 unit below the origin
	rotation := mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{1, 0, 0})
	collider := NewCollider(TransformAt(mgl64.Vec3{0, -1, 0}, rotation), &Box{HalfExtents: mgl64.Vec3{5, 0.5, 5}}, LayerGround)

	hit, ok := collider.Raycast(Ray{Origin: mgl64.Vec3{0, 5, 0}, Direction: down}, math.Inf(1))
	if !ok {
		t.Fatal("expected a hit on the ramp")
	}

	// The top face passes 0.5/cos(30°) above the box center on the vertical line
	expectedY := -1 + 0.5/math.Cos(mgl64.DegToRad(30))
	if !floatEqual(hit.Point.Y(), expectedY, 1e-9) {
		t.Errorf("hit Y = %v, want %v", hit.Point.Y(), expectedY)
	}
	if !floatEqual(hit.Distance, 5-expectedY, 1e-9) {
		t.Errorf("hit distance = %v, want %v", hit.Distance, 5-expectedY)
	}
	if !vec3Equal(hit.Normal, rotation.Rotate(mgl64.Vec3{0, 1, 0}), 1e-9) {
		t.Errorf("hit normal = %v, want ramp up vector", hit.Normal)
	}
	if hit.Collider != collider {
		t.Error("hit should reference the collider")
	}

	if _, ok := collider.Raycast(Ray{Origin: mgl64.Vec3{0, 5, 0}, Direction: down}, 1.0); ok {
		t.Error("hit beyond maxDistance should be discarded")
	}
}

func TestColliderCentroidAndMass(t *testing.T) {
	capsule := &Capsule{Center: mgl64.Vec3{0, 1, 0}, Height: 2, Radius: 0.5}
	collider := NewCollider(TransformAt(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent()), capsule, LayerLimb)
	collider.Density = 2

	if !vec3Equal(collider.Centroid(), mgl64.Vec3{1, 1, 0}, 1e-9) {
		t.Errorf("Centroid() = %v, want (1, 1, 0)", collider.Centroid())
	}
	if !floatEqual(collider.Mass(), capsule.ComputeMass(2), 1e-12) {
		t.Errorf("Mass() = %v, want %v", collider.Mass(), capsule.ComputeMass(2))
	}
}

func TestLayerIn(t *testing.T) {
	if !LayerGround.In(LayerGround | LayerDefault) {
		t.Error("LayerGround should be in a mask containing it")
	}
	if LayerLimb.In(LayerGround) {
		t.Error("LayerLimb should not be in the ground mask")
	}
	if !LayerLimb.In(LayerAll) {
		t.Error("every layer is in LayerAll")
	}
}
