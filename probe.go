package stride

import (
	"math"

	"github.com/akmonengine/stride/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// RayCaster answers nearest-hit ray queries against colliders matching a
// layer mask. A non-positive maxDistance means unbounded.
type RayCaster interface {
	CastRay(origin, direction mgl64.Vec3, maxDistance float64, layerMask actor.Layer) (actor.RaycastHit, bool)
}

// RayCasterFunc adapts a function to the RayCaster interface
type RayCasterFunc func(origin, direction mgl64.Vec3, maxDistance float64, layerMask actor.Layer) (actor.RaycastHit, bool)

func (f RayCasterFunc) CastRay(origin, direction mgl64.Vec3, maxDistance float64, layerMask actor.Layer) (actor.RaycastHit, bool) {
	return f(origin, direction, maxDistance, layerMask)
}

// GroundSample is the result of one ground probe
type GroundSample struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Valid    bool
}

// GroundProbe casts rays against the ground layer only
type GroundProbe struct {
	Caster      RayCaster
	LayerMask   actor.Layer
	MaxDistance float64
}

// Probe casts a ray from origin along direction. Hits with a non-finite point
// or a negative distance are discarded.
func (p GroundProbe) Probe(origin, direction mgl64.Vec3) (GroundSample, bool) {
	if p.Caster == nil {
		return GroundSample{}, false
	}

	hit, ok := p.Caster.CastRay(origin, direction, p.MaxDistance, p.LayerMask)
	if !ok || !finite(hit.Point) || math.IsNaN(hit.Distance) || hit.Distance < 0 {
		return GroundSample{}, false
	}

	return GroundSample{
		Point:    hit.Point,
		Normal:   hit.Normal,
		Distance: hit.Distance,
		Valid:    true,
	}, true
}
