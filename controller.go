package stride

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/akmonengine/stride/gait"
	"github.com/akmonengine/stride/skeleton"
	"github.com/akmonengine/stride/stability"
)

// BlendState tells whether a blend has reached its target
type BlendState uint8

const (
	Settled BlendState = iota
	Interpolating
)

func (s BlendState) String() string {
	if s == Settled {
		return "settled"
	}
	return "interpolating"
}

// Controller keeps the body of an n-legged creature level over its limb tips
// and at ground height. It is driven by one Tick per physics step and is not
// safe for concurrent use.
type Controller struct {
	limbs     []Limb
	layout    gait.Layout
	groups    []gait.PhaseGroup
	estimator stability.Estimator
	probe     GroundProbe
	com       CenterOfMass
	config    Config
	logger    *zap.Logger

	pose          Pose
	centerOfMass  mgl64.Vec3
	ground        GroundSample
	target        TargetPose
	rotationState BlendState
	heightState   BlendState

	skeleton      *skeleton.Skeleton
	limbBones     []skeleton.LimbBones
	boneColliders []skeleton.BoneCollider

	pairs  *stability.PairScheme
	tips   []mgl64.Vec3
	Events Events
}

type Option func(*Controller)

// WithLogger sets the logger, zap.NewNop by default
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCenterOfMass replaces the reference point derived from the pose
func WithCenterOfMass(com CenterOfMass) Option {
	return func(c *Controller) {
		c.com = com
	}
}

// WithPairs replaces the pairs derived from the layout
func WithPairs(pairs stability.PairScheme) Option {
	return func(c *Controller) {
		c.pairs = &pairs
	}
}

// WithLayout describes how the limbs are mounted, gait.DefaultLayout by default
func WithLayout(layout gait.Layout) Option {
	return func(c *Controller) {
		c.layout = layout
	}
}

// WithSkeleton provides the bones capsule colliders are generated from
func WithSkeleton(sk *skeleton.Skeleton, limbs []skeleton.LimbBones) Option {
	return func(c *Controller) {
		c.skeleton = sk
		c.limbBones = limbs
	}
}

// WithPose sets the initial pose, at the origin with no rotation by default
func WithPose(pose Pose) Option {
	return func(c *Controller) {
		c.pose = NewPose(pose.Position, pose.Rotation)
	}
}

// NewController validates the configuration, assigns the limbs to their phase
// groups and issues the zigzag offset once.
func NewController(limbs []Limb, caster RayCaster, cfg Config, opts ...Option) (*Controller, error) {
	if caster == nil {
		return nil, ErrNoRayCaster
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, limb := range limbs {
		if limb == nil {
			return nil, fmt.Errorf("%w: limb %d is nil", ErrInvalidConfig, i)
		}
	}

	c := &Controller{
		limbs:  limbs,
		config: cfg,
		logger: zap.NewNop(),
		pose:   NewPose(mgl64.Vec3{}, mgl64.QuatIdent()),
		probe: GroundProbe{
			Caster:      caster,
			LayerMask:   cfg.GroundLayer,
			MaxDistance: cfg.ProbeMaxDistance,
		},
		tips:   make([]mgl64.Vec3, len(limbs)),
		Events: NewEvents(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.layout == nil {
		c.layout = gait.DefaultLayout(len(limbs))
	}
	if len(c.layout) != len(limbs) {
		return nil, fmt.Errorf("%w: %d mounts for %d limbs", ErrLayoutMismatch, len(c.layout), len(limbs))
	}
	if err := c.layout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutMismatch, err)
	}

	pairs := c.layout.Pairs()
	if c.pairs != nil {
		pairs = *c.pairs
	}
	if err := pairs.Validate(len(limbs)); err != nil {
		return nil, err
	}

	c.estimator = stability.Estimator{
		Threshold: cfg.RealignmentThreshold,
		Quantum:   cfg.AngleQuantum,
		Pairs:     pairs,
	}
	if c.com == nil {
		c.com = OffsetCenterOfMass{Offset: cfg.CenterOfMassOffset}
	}

	if len(limbs) < 3 {
		c.logger.Warn("too few limbs to stabilize the body", zap.Int("limbs", len(limbs)))
	}
	if len(pairs.Pitch) == 0 || len(pairs.Roll) == 0 {
		c.logger.Warn("axis without limb pairs is kept level",
			zap.Int("pitchPairs", len(pairs.Pitch)),
			zap.Int("rollPairs", len(pairs.Roll)),
		)
	}

	scheme, err := cfg.phaseScheme()
	if err != nil {
		return nil, err
	}
	c.groups = gait.AssignPhases(c.layout, scheme)

	offset := 0
	if cfg.Zigzag.Enabled {
		offset = gait.StartZigzag(c.limbs, c.groups, cfg.Zigzag.Offset)
	}

	if cfg.GenerateBoneColliders && c.skeleton != nil {
		c.generateBoneColliders()
	}

	c.centerOfMass = c.com.Compute(c.pose)
	c.target = TargetPose{Rotation: c.pose.Rotation, Position: c.pose.Position}

	c.logger.Info("controller created",
		zap.Int("limbs", len(limbs)),
		zap.String("phaseScheme", string(scheme)),
		zap.Int("offsetLimbs", offset),
		zap.Int("boneColliders", len(c.boneColliders)),
	)

	return c, nil
}

func (c *Controller) generateBoneColliders() {
	colliders, err := skeleton.Generate(c.skeleton, c.limbBones)
	c.boneColliders = colliders

	if err != nil {
		c.logger.Warn("bone colliders skipped",
			zap.Int("generated", len(colliders)),
			zap.Errors("errors", multierr.Errors(err)),
		)
	}
}

// Tick advances the controller by dt seconds: it refreshes the reference
// point, probes the ground, levels the body when no limb is swinging and then
// moves the body to ground height once its rotation has converged.
// A non-positive or non-finite dt is ignored.
func (c *Controller) Tick(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}

	c.centerOfMass = c.com.Compute(c.pose)

	ground, hit := c.probe.Probe(c.centerOfMass, worldDown)
	if c.Events.processGround(c.centerOfMass, ground, hit) {
		c.logger.Debug("ground contact changed", zap.Bool("grounded", hit))
	}
	c.ground = ground

	if hit {
		t := mgl64.Clamp(dt*c.config.RealignmentSpeed, 0, 1)

		rotationSettled := c.updateRotation(t)
		if rotationSettled {
			c.updateHeight(t)
		}
	}

	c.Events.processStates(c.pose, c.rotationState, c.heightState)
	if c.Events.wants(DEBUG_DRAW) {
		c.Events.emit(c.debugDraw())
	}
	c.Events.flush()
}

// updateRotation blends the rotation toward the one leveling the body over
// the limb tips. The rotation is left untouched while a limb swings, which
// counts as converged.
func (c *Controller) updateRotation(t float64) bool {
	if anyMoving(c.limbs) {
		return true
	}

	for i, limb := range c.limbs {
		c.tips[i] = limb.TipPosition()
	}
	target := c.estimator.TargetRotation(c.pose.Rotation, c.tips)
	c.target.Rotation = target

	if AngleBetween(c.pose.Rotation, target) <= c.config.RotationSnapThreshold {
		c.pose.Rotation = target
		c.rotationState = Settled
		return true
	}

	c.pose.Rotation = LerpRotation(c.pose.Rotation, target, t)
	c.rotationState = Interpolating
	return false
}

// updateHeight blends the body position toward the ground height, keeping
// its horizontal placement.
func (c *Controller) updateHeight(t float64) {
	position := c.pose.Position
	target := mgl64.Vec3{position.X(), c.ground.Point.Y(), position.Z()}
	c.target.Position = target

	if position.Y() == target.Y() {
		c.heightState = Settled
		return
	}

	if position.Sub(target).Len() <= c.config.PositionSnapThreshold {
		c.pose.Position = target
		c.heightState = Settled
		return
	}

	c.pose.Position = LerpPosition(position, target, t)
	c.heightState = Interpolating
}

func (c *Controller) debugDraw() DebugDrawEvent {
	event := DebugDrawEvent{
		Points: []mgl64.Vec3{c.centerOfMass},
	}
	if c.ground.Valid {
		event.Points = append(event.Points, c.ground.Point)
		event.Lines = append(event.Lines, Line{From: c.centerOfMass, To: c.ground.Point})
	}

	tips := make([]mgl64.Vec3, len(c.limbs))
	for i, limb := range c.limbs {
		tips[i] = limb.TipPosition()
	}
	event.Points = append(event.Points, tips...)

	for _, pairs := range [][]stability.Pair{c.estimator.Pairs.Pitch, c.estimator.Pairs.Roll} {
		for _, pair := range pairs {
			event.Lines = append(event.Lines, Line{From: tips[pair.A], To: tips[pair.B]})
		}
	}

	return event
}

// Translate moves the body horizontally, its height stays under the
// controller's authority.
func (c *Controller) Translate(delta mgl64.Vec3) {
	c.pose.Position = c.pose.Position.Add(mgl64.Vec3{delta.X(), 0, delta.Z()})
}

// Turn rotates the body heading by the given angle in degrees
func (c *Controller) Turn(degrees float64) {
	turn := mgl64.QuatRotate(mgl64.DegToRad(degrees), worldUp)
	c.pose.Rotation = turn.Mul(c.pose.Rotation).Normalize()
}

// Pose returns a copy of the body pose
func (c *Controller) Pose() Pose {
	return c.pose
}

// CenterOfMass returns the reference point of the last tick
func (c *Controller) CenterOfMass() mgl64.Vec3 {
	return c.centerOfMass
}

// Ground returns the ground sample of the last tick
func (c *Controller) Ground() (GroundSample, bool) {
	return c.ground, c.ground.Valid
}

// Target returns the last pose the body blended toward
func (c *Controller) Target() TargetPose {
	return c.target
}

func (c *Controller) RotationState() BlendState {
	return c.rotationState
}

func (c *Controller) HeightState() BlendState {
	return c.heightState
}

// Groups returns the phase group of every limb
func (c *Controller) Groups() []gait.PhaseGroup {
	return append([]gait.PhaseGroup(nil), c.groups...)
}

// Pairs returns the limb pairs the body is leveled over
func (c *Controller) Pairs() stability.PairScheme {
	return c.estimator.Pairs
}

// BoneColliders returns the capsules generated from the skeleton at creation
func (c *Controller) BoneColliders() []skeleton.BoneCollider {
	return c.boneColliders
}
