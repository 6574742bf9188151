package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/blockrunner/geom"
	"github.com/milk9111/blockrunner/physics"
	"gopkg.in/yaml.v3"
)

// ControllerFile is the default controller tuning prefab.
const ControllerFile = "controller.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ControllerSpec mirrors physics.Config. Zero fields keep the defaults, so
// a prefab only lists what it tunes.
type ControllerSpec struct {
	Name             string        `yaml:"name"`
	Gravity          float64       `yaml:"gravity"`
	JumpForce        float64       `yaml:"jump_force"`
	TerminalVelocity float64       `yaml:"terminal_velocity"`
	MoveSpeed        float64       `yaml:"move_speed"`
	Collider         ColliderSpec  `yaml:"collider"`
	LandingTolerance float64       `yaml:"landing_tolerance"`
	FootProbe        float64       `yaml:"foot_probe"`
	KillY            *float64      `yaml:"kill_y"`
	Floor            *FloorSpec    `yaml:"floor"`
	Spawn            *geom.Vec3    `yaml:"spawn"`
	RespawnDelay     time.Duration `yaml:"respawn_delay"`
}

type ColliderSpec struct {
	HalfWidth  float64  `yaml:"half_width"`
	Height     float64  `yaml:"height"`
	FootOffset *float64 `yaml:"foot_offset"`
}

type FloorSpec struct {
	Enabled bool    `yaml:"enabled"`
	Y       float64 `yaml:"y"`
}

func LoadControllerSpec(name string) (*ControllerSpec, error) {
	if name == "" {
		name = ControllerFile
	}
	spec, err := LoadSpec[ControllerSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config overlays s onto physics.DefaultConfig and validates the result.
func (s *ControllerSpec) Config() (physics.Config, error) {
	cfg := physics.DefaultConfig()
	if s == nil {
		return cfg, nil
	}

	setIf := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setIf(&cfg.Gravity, s.Gravity)
	setIf(&cfg.JumpForce, s.JumpForce)
	setIf(&cfg.TerminalVelocity, s.TerminalVelocity)
	setIf(&cfg.MoveSpeed, s.MoveSpeed)
	setIf(&cfg.HalfWidth, s.Collider.HalfWidth)
	setIf(&cfg.Height, s.Collider.Height)
	setIf(&cfg.LandingTolerance, s.LandingTolerance)
	setIf(&cfg.FootProbe, s.FootProbe)
	if s.Collider.FootOffset != nil {
		cfg.FootOffset = *s.Collider.FootOffset
	}
	if s.KillY != nil {
		cfg.KillY = *s.KillY
	}
	if s.Floor != nil {
		cfg.Floor = s.Floor.Enabled
		cfg.FloorY = s.Floor.Y
	}
	if s.Spawn != nil {
		cfg.Spawn = *s.Spawn
	}
	if s.RespawnDelay != 0 {
		cfg.RespawnDelay = s.RespawnDelay
	}

	if err := cfg.Validate(); err != nil {
		return physics.Config{}, fmt.Errorf("prefabs: controller %q: %w", s.Name, err)
	}
	return cfg, nil
}

// LoadControllerConfig reads and validates a controller prefab in one step.
func LoadControllerConfig(name string) (physics.Config, error) {
	spec, err := LoadControllerSpec(name)
	if err != nil {
		return physics.Config{}, err
	}
	return spec.Config()
}
