package stride

import (
	"github.com/akmonengine/stride/gait"
	"github.com/go-gl/mathgl/mgl64"
)

// Limb is a leg driven by an external IK solver
type Limb interface {
	// TipPosition returns the world position of the leg tip
	TipPosition() mgl64.Vec3
	// IsMoving reports whether the leg is mid-swing
	IsMoving() bool
	gait.ForwardOffsetter
}

func anyMoving(limbs []Limb) bool {
	for _, limb := range limbs {
		if limb.IsMoving() {
			return true
		}
	}

	return false
}
