package stride

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	worldUp   = mgl64.Vec3{0, 1, 0}
	worldDown = mgl64.Vec3{0, -1, 0}
)

// Pose is the placement of the body: Position sits at ground level under the
// body, Rotation orients the torso.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// TargetPose is the pose the body is blending toward during a tick
type TargetPose struct {
	Rotation mgl64.Quat
	Position mgl64.Vec3
}

// NewPose creates a pose, a zero rotation standing for the identity
func NewPose(position mgl64.Vec3, rotation mgl64.Quat) Pose {
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}

	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// Up returns the body's up axis in world space
func (p Pose) Up() mgl64.Vec3 {
	return p.Rotation.Rotate(worldUp)
}

// AngleBetween returns the angle in degrees of the rotation taking a to b
func AngleBetween(a, b mgl64.Quat) float64 {
	relative := a.Normalize().Conjugate().Mul(b.Normalize())

	return mgl64.RadToDeg(2 * math.Atan2(relative.V.Len(), math.Abs(relative.W)))
}

// LerpRotation interpolates linearly from one rotation to another along the
// shortest arc and normalizes the result. t is clamped to [0, 1].
func LerpRotation(from, to mgl64.Quat, t float64) mgl64.Quat {
	t = mgl64.Clamp(t, 0, 1)
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}

	q := mgl64.Quat{
		W: from.W + (to.W-from.W)*t,
		V: from.V.Add(to.V.Sub(from.V).Mul(t)),
	}
	if q.Len() == 0 {
		return to.Normalize()
	}

	return q.Normalize()
}

// LerpPosition interpolates linearly between two points, t clamped to [0, 1]
func LerpPosition(from, to mgl64.Vec3, t float64) mgl64.Vec3 {
	t = mgl64.Clamp(t, 0, 1)

	return from.Add(to.Sub(from).Mul(t))
}
