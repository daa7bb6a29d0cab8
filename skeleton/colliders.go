package skeleton

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"

	"github.com/akmonengine/stride/actor"
)

var (
	ErrMissingJoint = errors.New("missing joint reference")
	ErrZeroScale    = errors.New("zero inherited scale")
)

// LimbBones references the joints of a two-bone limb in a skeleton
type LimbBones struct {
	Name string
	Root int
	Mid  int
}

// BoneCollider is a capsule bounding the segment between a limb's root and
// mid joints, expressed in the root bone's parent space.
type BoneCollider struct {
	Limb    int
	Bone    int
	Capsule *actor.Capsule
}

// Generate derives one capsule per limb from the rest positions of its root
// and mid joints. A limb whose joints cannot be resolved gets no collider; its
// error is combined with the others and the remaining limbs are still processed.
func Generate(sk *Skeleton, limbs []LimbBones) ([]BoneCollider, error) {
	colliders := make([]BoneCollider, 0, len(limbs))
	var errs error

	for i, limb := range limbs {
		collider, err := generate(sk, i, limb)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		colliders = append(colliders, collider)
	}

	return colliders, errs
}

func generate(sk *Skeleton, index int, limb LimbBones) (BoneCollider, error) {
	if !sk.Valid(limb.Root) {
		return BoneCollider{}, fmt.Errorf("limb %d %q: root bone %d: %w", index, limb.Name, limb.Root, ErrMissingJoint)
	}
	if !sk.Valid(limb.Mid) {
		return BoneCollider{}, fmt.Errorf("limb %d %q: mid bone %d: %w", index, limb.Name, limb.Mid, ErrMissingJoint)
	}

	scale := sk.WorldScale(limb.Root)
	if scale.X() == 0 || scale.Y() == 0 || scale.Z() == 0 {
		return BoneCollider{}, fmt.Errorf("limb %d %q: %w %v", index, limb.Name, ErrZeroScale, scale)
	}

	a := sk.Bones[limb.Root].LocalPosition
	b := sk.Bones[limb.Mid].LocalPosition

	center := a.Add(b).Mul(0.5)
	height := divide(a, scale).Sub(divide(b, scale)).Len()

	return BoneCollider{
		Limb: index,
		Bone: limb.Root,
		Capsule: &actor.Capsule{
			Center: center,
			Height: height,
			Radius: height / 4,
		},
	}, nil
}

// Collider places the capsule in the world on the given layer. The capsule
// lives in the space of the root bone's parent, so a root without a parent is
// placed at the origin.
func (bc BoneCollider) Collider(sk *Skeleton, layer actor.Layer) *actor.Collider {
	transform := actor.NewTransform()
	if parent := sk.Bones[bc.Bone].Parent; sk.Valid(parent) {
		transform = sk.WorldTransform(parent)
	}

	collider := actor.NewCollider(transform, bc.Capsule, layer)
	collider.Id = sk.Bones[bc.Bone].Name

	return collider
}

func divide(v, by mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X() / by.X(), v.Y() / by.Y(), v.Z() / by.Z()}
}
