package stride

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/gait"
	"github.com/akmonengine/stride/stability"
)

const (
	DEFAULT_REALIGNMENT_SPEED       = 25.0
	DEFAULT_POSITION_SNAP_THRESHOLD = 0.1
	DEFAULT_ROTATION_SNAP_THRESHOLD = 1.1
)

type ZigzagConfig struct {
	Enabled bool    `yaml:"enabled"`
	Offset  float64 `yaml:"offset"`
}

// Config holds the construction constants of a Controller.
// Distances are in world units, angles in degrees.
type Config struct {
	// Blend rate of rotation and height, per second
	RealignmentSpeed float64 `yaml:"realignment_speed"`
	// Height difference under which a limb pair counts as level
	RealignmentThreshold  float64 `yaml:"realignment_threshold"`
	PositionSnapThreshold float64 `yaml:"position_snap_threshold"`
	RotationSnapThreshold float64 `yaml:"rotation_snap_threshold"`

	Zigzag      ZigzagConfig     `yaml:"zigzag"`
	PhaseScheme gait.PhaseScheme `yaml:"phase_scheme"`

	GroundLayer actor.Layer `yaml:"ground_layer"`
	// 0 casts the ground probe without a distance limit
	ProbeMaxDistance float64 `yaml:"probe_max_distance"`

	GenerateBoneColliders bool    `yaml:"generate_bone_colliders"`
	CenterOfMassOffset    float64 `yaml:"center_of_mass_offset"`
	// Step the target angles are rounded to, 0 disables rounding
	AngleQuantum float64 `yaml:"angle_quantum"`
}

func DefaultConfig() Config {
	return Config{
		RealignmentSpeed:      DEFAULT_REALIGNMENT_SPEED,
		RealignmentThreshold:  stability.DefaultThreshold,
		PositionSnapThreshold: DEFAULT_POSITION_SNAP_THRESHOLD,
		RotationSnapThreshold: DEFAULT_ROTATION_SNAP_THRESHOLD,
		Zigzag: ZigzagConfig{
			Enabled: true,
			Offset:  gait.DefaultZigzagOffset,
		},
		PhaseScheme:           gait.PhaseParity,
		GroundLayer:           actor.LayerGround,
		GenerateBoneColliders: true,
		CenterOfMassOffset:    DEFAULT_COM_OFFSET,
		AngleQuantum:          stability.DefaultQuantum,
	}
}

// Validate checks every value is usable, the returned error wraps ErrInvalidConfig
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value float64
		ok    bool
	}{
		{"realignment_speed", c.RealignmentSpeed, c.RealignmentSpeed > 0},
		{"realignment_threshold", c.RealignmentThreshold, c.RealignmentThreshold >= 0},
		{"position_snap_threshold", c.PositionSnapThreshold, c.PositionSnapThreshold >= 0},
		{"rotation_snap_threshold", c.RotationSnapThreshold, c.RotationSnapThreshold > 0},
		{"zigzag.offset", c.Zigzag.Offset, true},
		{"probe_max_distance", c.ProbeMaxDistance, c.ProbeMaxDistance >= 0},
		{"center_of_mass_offset", c.CenterOfMassOffset, true},
		{"angle_quantum", c.AngleQuantum, c.AngleQuantum >= 0},
	}

	for _, check := range checks {
		if math.IsNaN(check.value) || math.IsInf(check.value, 0) || !check.ok {
			return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, check.name, check.value)
		}
	}

	if c.GroundLayer == 0 {
		return fmt.Errorf("%w: ground_layer is empty", ErrInvalidConfig)
	}
	if _, err := c.phaseScheme(); err != nil {
		return err
	}

	return nil
}

// phaseScheme parses the configured scheme, the empty string meaning parity
func (c Config) phaseScheme() (gait.PhaseScheme, error) {
	scheme, err := gait.ParsePhaseScheme(string(c.PhaseScheme))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return scheme, nil
}

// LoadConfig reads a YAML file over the default configuration and validates
// the result. Keys missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, cfg.Validate()
}
