package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 3D space
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position:        mgl64.Vec3{0, 0, 0},
		Rotation:        mgl64.QuatIdent(),
		InverseRotation: mgl64.QuatIdent(),
	}
}

// TransformAt creates a transform at the given position and rotation.
// A zero quaternion is treated as the identity.
func TransformAt(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}
	rotation = rotation.Normalize()

	return Transform{
		Position:        position,
		Rotation:        rotation,
		InverseRotation: rotation.Inverse(),
	}
}

// ToLocal converts a world space point into the transform's local space
func (t Transform) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(point.Sub(t.Position))
}

// ToLocalDirection converts a world space direction into the transform's local space
func (t Transform) ToLocalDirection(direction mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(direction)
}

// ToWorld converts a local space point into world space
func (t Transform) ToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

// ToWorldDirection converts a local space direction into world space
func (t Transform) ToWorldDirection(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(direction)
}
