// Package gait describes how limbs are mounted on the body and splits them
// into the two phase groups of an alternating gait.
package gait

import (
	"fmt"
	"strings"
)

// DefaultZigzagOffset is the forward offset handed to group B limbs at startup
const DefaultZigzagOffset = 1.0

// PhaseGroup is a set of limbs swinging together
type PhaseGroup int

const (
	GroupA PhaseGroup = iota
	GroupB
)

func (g PhaseGroup) String() string {
	if g == GroupA {
		return "A"
	}
	return "B"
}

// PhaseScheme selects how limbs are split into phase groups
type PhaseScheme string

const (
	// PhaseParity puts even limb indices in group A and odd ones in group B
	PhaseParity PhaseScheme = "parity"
	// PhaseDiagonal alternates groups along both the side and the station,
	// giving a trot on four limbs and a tripod on six.
	PhaseDiagonal PhaseScheme = "diagonal"
)

// ParsePhaseScheme parses a scheme name, the empty string meaning PhaseParity
func ParsePhaseScheme(name string) (PhaseScheme, error) {
	switch PhaseScheme(strings.ToLower(name)) {
	case "", PhaseParity:
		return PhaseParity, nil
	case PhaseDiagonal:
		return PhaseDiagonal, nil
	default:
		return "", fmt.Errorf("unknown phase scheme %q", name)
	}
}

// ForwardOffsetter accepts a one-time forward offset of its step target
type ForwardOffsetter interface {
	SetForwardOffset(distance float64)
}

// AssignPhases returns the phase group of each limb of the layout.
// The assignment does not change for the lifetime of the creature.
func AssignPhases(layout Layout, scheme PhaseScheme) []PhaseGroup {
	groups := make([]PhaseGroup, len(layout))

	for i, m := range layout {
		switch scheme {
		case PhaseDiagonal:
			groups[i] = PhaseGroup((m.Station + int(m.Side)) % 2)
		default:
			groups[i] = PhaseGroup(i % 2)
		}
	}

	return groups
}

// StartZigzag offsets every group B limb forward once, so both groups start
// their step cycle out of phase.
func StartZigzag[T ForwardOffsetter](limbs []T, groups []PhaseGroup, distance float64) int {
	offset := 0
	for i, limb := range limbs {
		if i < len(groups) && groups[i] == GroupB {
			limb.SetForwardOffset(distance)
			offset++
		}
	}

	return offset
}

// Members returns the indices of the limbs belonging to a group
func Members(groups []PhaseGroup, group PhaseGroup) []int {
	var indices []int
	for i, g := range groups {
		if g == group {
			indices = append(indices, i)
		}
	}

	return indices
}
