package stride

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DEFAULT_COM_OFFSET is the height of the reference point above the body position
const DEFAULT_COM_OFFSET = 1.0

// CenterOfMass derives the ground probe's reference point from the body pose
type CenterOfMass interface {
	Compute(pose Pose) mgl64.Vec3
}

// OffsetCenterOfMass places the reference point straight above the body
// position, along the world up axis.
type OffsetCenterOfMass struct {
	Offset float64
}

func (c OffsetCenterOfMass) Compute(pose Pose) mgl64.Vec3 {
	return pose.Position.Add(worldUp.Mul(c.Offset))
}

// MassSource is a weighted point of the body, e.g. an actor.Collider
type MassSource interface {
	Centroid() mgl64.Vec3
	Mass() float64
}

// WeightedCenterOfMass averages its sources by mass. Sources are expressed in
// the body's space and follow the pose. Sources with a non-finite or
// non-positive mass are ignored; without any mass left, the offset point is
// returned.
type WeightedCenterOfMass struct {
	Sources []MassSource
	Offset  float64
}

func (c WeightedCenterOfMass) Compute(pose Pose) mgl64.Vec3 {
	var total float64
	var weighted mgl64.Vec3

	for _, source := range c.Sources {
		mass := source.Mass()
		if !(mass > 0) || math.IsInf(mass, 0) {
			continue
		}
		centroid := source.Centroid()
		if !finite(centroid) {
			continue
		}

		weighted = weighted.Add(centroid.Mul(mass))
		total += mass
	}

	if total == 0 {
		return OffsetCenterOfMass{Offset: c.Offset}.Compute(pose)
	}

	local := weighted.Mul(1 / total)

	return pose.Position.Add(pose.Rotation.Rotate(local))
}
