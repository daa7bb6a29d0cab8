// Package stability infers the pitch and roll that level a body over its limb tips.
//
// Conventions: Y is up, +Z is forward and +X is right. A positive pitch lowers
// the front of the body (rotation around +X), a positive roll lowers its left
// side (rotation around +Z). Angles are in degrees.
//
// Each axis is estimated from a set of limb pairs. For a pair (a, b), the two
// tips and the higher tip projected onto the lower tip's height form a right
// triangle; the pair's tilt is the acute angle of that triangle, signed
// positive when b is the higher tip. The axis angle is the mean over its pairs,
// pairs within the realignment threshold counting as exactly level.
package stability

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultThreshold is the height difference under which a pair counts as level
	DefaultThreshold = 0.1
	// DefaultQuantum rounds axis angles to whole degrees
	DefaultQuantum = 1.0
)

var (
	axisPitch   = mgl64.Vec3{1, 0, 0}
	axisYaw     = mgl64.Vec3{0, 1, 0}
	axisRoll    = mgl64.Vec3{0, 0, 1}
	forwardAxis = mgl64.Vec3{0, 0, 1}
	rightAxis   = mgl64.Vec3{1, 0, 0}
)

// Tilt is a pitch and roll in degrees
type Tilt struct {
	Pitch float64
	Roll  float64
}

type Estimator struct {
	// Threshold is the realignment threshold: pairs whose height difference is
	// at most Threshold contribute exactly 0.
	Threshold float64
	// Quantum rounds each axis angle to a multiple of itself, 0 disables it.
	Quantum float64
	Pairs   PairScheme
}

// NewEstimator creates an estimator with the default threshold and quantum
func NewEstimator(pairs PairScheme) Estimator {
	return Estimator{
		Threshold: DefaultThreshold,
		Quantum:   DefaultQuantum,
		Pairs:     pairs,
	}
}

// PairAngle returns the signed tilt implied by two limb tips
func (e Estimator) PairAngle(a, b mgl64.Vec3) float64 {
	dy := b.Y() - a.Y()
	if !(math.Abs(dy) > e.Threshold) {
		return 0
	}

	higher, lower, sign := a, b, -1.0
	if dy > 0 {
		higher, lower, sign = b, a, 1.0
	}

	// Third vertex of the right triangle, under the higher tip at the lower tip's height
	c := mgl64.Vec3{higher.X(), lower.Y(), higher.Z()}

	hypotenuse := higher.Sub(lower).Len()
	opposite := higher.Sub(c).Len()
	adjacent := lower.Sub(c).Len()

	theta := asinDeg(opposite / hypotenuse)
	gamma := asinDeg(adjacent / hypotenuse)

	angle := sign * math.Min(theta, gamma)
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}

	return angle
}

// AxisAngle averages the pair angles of one axis. It also returns the number
// of pairs averaged; with none, the angle is 0.
func (e Estimator) AxisAngle(tips []mgl64.Vec3, pairs []Pair) (float64, int) {
	var sum float64
	var count int

	for _, pair := range pairs {
		if pair.A < 0 || pair.A >= len(tips) || pair.B < 0 || pair.B >= len(tips) {
			continue
		}

		sum += e.PairAngle(tips[pair.A], tips[pair.B])
		count++
	}

	if count == 0 {
		return 0, 0
	}

	return e.quantize(sum / float64(count)), count
}

// Estimate computes the pitch and roll leveling the body over the given tips
func (e Estimator) Estimate(tips []mgl64.Vec3) Tilt {
	pitch, _ := e.AxisAngle(tips, e.Pairs.Pitch)
	roll, _ := e.AxisAngle(tips, e.Pairs.Roll)

	return Tilt{Pitch: pitch, Roll: roll}
}

// TargetRotation keeps the heading of current and replaces its pitch and roll
// with the ones inferred from the tips.
func (e Estimator) TargetRotation(current mgl64.Quat, tips []mgl64.Vec3) mgl64.Quat {
	tilt := e.Estimate(tips)

	return Compose(Yaw(current), tilt.Pitch, tilt.Roll)
}

func (e Estimator) quantize(angle float64) float64 {
	if e.Quantum <= 0 {
		return angle
	}

	q := math.RoundToEven(angle/e.Quantum) * e.Quantum
	if q == 0 {
		// drop the sign of -0
		return 0
	}

	return q
}

// Compose builds a rotation from yaw, pitch and roll in degrees.
// Roll is applied first, then pitch, then yaw.
func Compose(yaw, pitch, roll float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), axisYaw)
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), axisPitch)
	qz := mgl64.QuatRotate(mgl64.DegToRad(roll), axisRoll)

	return qy.Mul(qx).Mul(qz).Normalize()
}

// Yaw extracts the heading of a rotation in degrees
func Yaw(q mgl64.Quat) float64 {
	forward := q.Rotate(forwardAxis)
	if math.Abs(forward.X()) > 1e-9 || math.Abs(forward.Z()) > 1e-9 {
		return mgl64.RadToDeg(math.Atan2(forward.X(), forward.Z()))
	}

	// Facing straight up or down, the right axis still carries the heading
	right := q.Rotate(rightAxis)
	return mgl64.RadToDeg(math.Atan2(-right.Z(), right.X()))
}

func asinDeg(ratio float64) float64 {
	return mgl64.RadToDeg(math.Asin(mgl64.Clamp(ratio, 0, 1)))
}
