// Package skeleton stores bone rest poses as a flat arena with parent indices
// and derives capsule colliders for limb segments.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/stride/actor"
)

// NoParent marks a root bone
const NoParent = -1

// Bone is a rest pose expressed in its parent's space
type Bone struct {
	Name          string
	Parent        int
	LocalPosition mgl64.Vec3
	LocalRotation mgl64.Quat
	LocalScale    mgl64.Vec3
}

type Skeleton struct {
	Bones []Bone
}

// AddBone appends a bone with identity rotation and unit scale and returns its index
func (s *Skeleton) AddBone(name string, parent int, position mgl64.Vec3) int {
	s.Bones = append(s.Bones, Bone{
		Name:          name,
		Parent:        parent,
		LocalPosition: position,
		LocalRotation: mgl64.QuatIdent(),
		LocalScale:    mgl64.Vec3{1, 1, 1},
	})

	return len(s.Bones) - 1
}

// Find returns the index of the first bone with the given name, or -1
func (s *Skeleton) Find(name string) int {
	for i, bone := range s.Bones {
		if bone.Name == name {
			return i
		}
	}

	return -1
}

// Valid reports whether i references a bone
func (s *Skeleton) Valid(i int) bool {
	return i >= 0 && i < len(s.Bones)
}

// WorldScale folds the local scales from the bone up to its root.
// A broken parent chain (out of range or cyclic) stops the fold.
func (s *Skeleton) WorldScale(i int) mgl64.Vec3 {
	scale := mgl64.Vec3{1, 1, 1}

	for steps := 0; s.Valid(i) && steps < len(s.Bones); steps++ {
		local := s.Bones[i].LocalScale
		scale = mgl64.Vec3{scale.X() * local.X(), scale.Y() * local.Y(), scale.Z() * local.Z()}
		i = s.Bones[i].Parent
	}

	return scale
}

// WorldTransform returns the placement of a bone's space in the world,
// scale excluded (see WorldScale).
func (s *Skeleton) WorldTransform(i int) actor.Transform {
	chain := s.chain(i)

	position := mgl64.Vec3{}
	rotation := mgl64.QuatIdent()
	scale := mgl64.Vec3{1, 1, 1}

	// From the root down to the bone
	for k := len(chain) - 1; k >= 0; k-- {
		bone := s.Bones[chain[k]]
		local := mgl64.Vec3{
			bone.LocalPosition.X() * scale.X(),
			bone.LocalPosition.Y() * scale.Y(),
			bone.LocalPosition.Z() * scale.Z(),
		}

		position = position.Add(rotation.Rotate(local))
		rotation = rotation.Mul(normalized(bone.LocalRotation))
		scale = mgl64.Vec3{
			scale.X() * bone.LocalScale.X(),
			scale.Y() * bone.LocalScale.Y(),
			scale.Z() * bone.LocalScale.Z(),
		}
	}

	return actor.TransformAt(position, rotation)
}

// chain lists the bone indices from i up to its root
func (s *Skeleton) chain(i int) []int {
	var chain []int
	for steps := 0; s.Valid(i) && steps < len(s.Bones); steps++ {
		chain = append(chain, i)
		i = s.Bones[i].Parent
	}

	return chain
}

func normalized(q mgl64.Quat) mgl64.Quat {
	if q.Len() == 0 {
		return mgl64.QuatIdent()
	}

	return q.Normalize()
}
