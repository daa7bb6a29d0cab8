package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/akmonengine/stride"
	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/gait"
	"github.com/akmonengine/stride/internal/logging"
	"github.com/akmonengine/stride/skeleton"
)

var (
	configPath = flag.String("config", "", "optional yaml configuration file")
	ticks      = flag.Int("ticks", 900, "number of fixed steps to simulate")
	dt         = flag.Float64("dt", 1.0/60.0, "fixed step in seconds")
	speed      = flag.Float64("speed", 1.5, "forward walking speed in units per second")
	logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
)

const (
	stepLength   = 0.6
	swingTicks   = 12
	probeHeight  = 3.0
	logEveryTick = 30
)

// demoLimb plants its tip on the ground and swings it forward once the body
// has moved a stride past it.
type demoLimb struct {
	name    string
	rest    mgl64.Vec3
	tip     mgl64.Vec3
	target  mgl64.Vec3
	swing   int
	forward float64
}

func (l *demoLimb) TipPosition() mgl64.Vec3 { return l.tip }
func (l *demoLimb) IsMoving() bool { return l.swing > 0 }
func (l *demoLimb) SetForwardOffset(d float64) { l.forward += d }

// Walker moves the limb tips with an alternating two-group gait
type Walker struct {
	world  *stride.World
	limbs  []*demoLimb
	groups []gait.PhaseGroup
}

func (w *Walker) footRays(pose stride.Pose) []actor.Ray {
	rays := make([]actor.Ray, len(w.limbs))
	for i, limb := range w.limbs {
		foot := pose.Position.Add(limb.rest)
		rays[i] = actor.Ray{
			Origin:    foot.Add(mgl64.Vec3{0, probeHeight, 0}),
			Direction: mgl64.Vec3{0, -1, 0},
		}
	}

	return rays
}

// Plant drops every tip on the ground under its rest position, shifted by
// the pending forward offset.
func (w *Walker) Plant(pose stride.Pose) {
	hits, ok := w.world.CastRays(w.footRays(pose), 0, actor.LayerGround)
	for i, limb := range w.limbs {
		if !ok[i] {
			continue
		}
		limb.tip = hits[i].Point.Add(mgl64.Vec3{0, 0, limb.forward})
		limb.forward = 0
	}
}

func (w *Walker) groupMoving(group gait.PhaseGroup) bool {
	for _, i := range gait.Members(w.groups, group) {
		if w.limbs[i].IsMoving() {
			return true
		}
	}

	return false
}

// Step advances swinging limbs and lifts the ones left behind by the body
func (w *Walker) Step(pose stride.Pose) {
	hits, ok := w.world.CastRays(w.footRays(pose), 0, actor.LayerGround)

	for i, limb := range w.limbs {
		if limb.swing > 0 {
			limb.tip = stride.LerpPosition(limb.tip, limb.target, 1/float64(limb.swing))
			limb.swing--
			continue
		}
		if !ok[i] {
			continue
		}

		behind := hits[i].Point.Z() - limb.tip.Z()
		other := gait.GroupB
		if w.groups[i] == gait.GroupB {
			other = gait.GroupA
		}
		if behind > stepLength/2 && !w.groupMoving(other) {
			limb.target = hits[i].Point.Add(mgl64.Vec3{0, 0, stepLength / 2})
			limb.swing = swingTicks
		}
	}
}

// SetupScene creates flat ground rising onto a ramp and a plateau
func SetupScene() *stride.World {
	world := stride.NewWorld(stride.DEFAULT_CELL_SIZE, stride.DEFAULT_CELLS)
	world.Workers = 4

	ground := actor.NewCollider(actor.NewTransform(), &actor.Plane{
		Normal:   mgl64.Vec3{0, 1, 0},
		Distance: 0,
	}, actor.LayerGround)
	ground.Id = "ground"
	world.AddCollider(ground)

	// 15 degrees nose up: the top face climbs toward +Z
	ramp := actor.NewCollider(actor.TransformAt(
		mgl64.Vec3{0, -0.5, 6},
		mgl64.QuatRotate(mgl64.DegToRad(-15), mgl64.Vec3{1, 0, 0}),
	), &actor.Box{HalfExtents: mgl64.Vec3{3, 1, 4}}, actor.LayerGround)
	ramp.Id = "ramp"
	world.AddCollider(ramp)

	plateau := actor.NewCollider(actor.TransformAt(
		mgl64.Vec3{0, 0, 14},
		mgl64.QuatIdent(),
	), &actor.Box{HalfExtents: mgl64.Vec3{3, 1.5, 4.5}}, actor.LayerGround)
	plateau.Id = "plateau"
	world.AddCollider(plateau)

	world.Rebuild()

	return world
}

// SetupSkeleton creates a body with a hip and a knee per limb
func SetupSkeleton(rest []mgl64.Vec3) (*skeleton.Skeleton, []skeleton.LimbBones) {
	sk := &skeleton.Skeleton{}
	body := sk.AddBone("body", skeleton.NoParent, mgl64.Vec3{0, 0, 0})

	layout := gait.DefaultLayout(len(rest))
	names := make([]string, len(rest))
	for i, foot := range rest {
		names[i] = layout[i].Name(layout.Stations())
		hip := sk.AddBone(names[i]+"_hip", body, mgl64.Vec3{foot.X() * 0.6, 0.9, foot.Z()})
		sk.AddBone(names[i]+"_knee", hip, mgl64.Vec3{foot.X() * 0.4, 0.4, foot.Z()})
	}

	// joints are resolved by name, a missing one is reported by the controller
	limbs := make([]skeleton.LimbBones, len(names))
	for i, name := range names {
		limbs[i] = skeleton.LimbBones{
			Name: name,
			Root: sk.Find(name + "_hip"),
			Mid:  sk.Find(name + "_knee"),
		}
	}

	return sk, limbs
}

func run(logger *zap.Logger, cfg stride.Config) error {
	world := SetupScene()

	rest := []mgl64.Vec3{{-0.6, 0, 0.8}, {0.6, 0, 0.8}, {-0.6, 0, -0.8}, {0.6, 0, -0.8}}
	layout := gait.DefaultLayout(len(rest))
	demoLimbs := make([]*demoLimb, len(rest))
	limbs := make([]stride.Limb, len(rest))
	for i := range rest {
		demoLimbs[i] = &demoLimb{name: layout[i].Name(layout.Stations()), rest: rest[i]}
		limbs[i] = demoLimbs[i]
	}

	sk, bones := SetupSkeleton(rest)
	com := &stride.WeightedCenterOfMass{Offset: cfg.CenterOfMassOffset}

	controller, err := stride.NewController(limbs, world, cfg,
		stride.WithLogger(logger),
		stride.WithLayout(layout),
		stride.WithSkeleton(sk, bones),
		stride.WithCenterOfMass(com),
		stride.WithPose(stride.NewPose(mgl64.Vec3{0, 0, -6}, mgl64.QuatIdent())),
	)
	if err != nil {
		return err
	}

	for _, bc := range controller.BoneColliders() {
		com.Sources = append(com.Sources, bc.Collider(sk, actor.LayerLimb))
	}

	controller.Events.Subscribe(stride.GROUND_LOST, func(event stride.Event) {
		logger.Warn("ground lost", zap.Any("origin", event.(stride.GroundLostEvent).Origin))
	})
	controller.Events.Subscribe(stride.GROUND_FOUND, func(event stride.Event) {
		logger.Info("ground found", zap.Any("point", event.(stride.GroundFoundEvent).Ground.Point))
	})
	controller.Events.Subscribe(stride.ROTATION_SETTLED, func(event stride.Event) {
		logger.Debug("rotation settled", zap.Any("rotation", event.(stride.RotationSettledEvent).Rotation))
	})
	controller.Events.Subscribe(stride.HEIGHT_SETTLED, func(event stride.Event) {
		logger.Debug("height settled", zap.Float64("y", event.(stride.HeightSettledEvent).Position.Y()))
	})

	walker := &Walker{world: world, limbs: demoLimbs, groups: controller.Groups()}
	walker.Plant(controller.Pose())

	for tick := 0; tick < *ticks; tick++ {
		controller.Translate(mgl64.Vec3{0, 0, *speed * *dt})
		walker.Step(controller.Pose())
		controller.Tick(*dt)

		if tick%logEveryTick == 0 {
			pose := controller.Pose()
			logger.Info("tick",
				zap.Int("tick", tick),
				zap.String("position", fmt.Sprintf("%.3f", pose.Position)),
				zap.Float64("tilt", stride.AngleBetween(mgl64.QuatIdent(), pose.Rotation)),
				zap.String("up", fmt.Sprintf("%.3f", pose.Up())),
				zap.Stringer("rotation", controller.RotationState()),
				zap.Stringer("height", controller.HeightState()),
			)
		}
	}

	pose := controller.Pose()
	logger.Info("walk finished",
		zap.Int("ticks", *ticks),
		zap.String("position", fmt.Sprintf("%.3f", pose.Position)),
		zap.String("up", fmt.Sprintf("%.3f", pose.Up())),
		zap.Float64("tilt", stride.AngleBetween(mgl64.QuatIdent(), pose.Rotation)),
	)

	return nil
}

func main() {
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := stride.DefaultConfig()
	if *configPath != "" {
		cfg, err = stride.LoadConfig(*configPath)
		if err != nil {
			logger.Error("loading configuration", zap.String("path", *configPath), zap.Error(err))
			os.Exit(1)
		}
	}

	if err := run(logger, cfg); err != nil {
		logger.Error("walk failed", zap.Error(err))
		os.Exit(1)
	}
}
