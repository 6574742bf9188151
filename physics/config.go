package physics

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/blockrunner/geom"
)

var ErrInvalidConfig = errors.New("physics: invalid config")

// Config tunes a Controller. One Config replaces the per-variant constants
// each course used to carry.
type Config struct {
	Gravity          float64 // units/s^2, positive pulls down
	JumpForce        float64 // initial upward speed of a jump
	TerminalVelocity float64 // max downward speed, positive
	MoveSpeed        float64 // horizontal units/s per pressed axis

	HalfWidth  float64
	Height     float64
	FootOffset float64 // distance from the position anchor down to the bottom face

	LandingTolerance float64 // max depth below a top face that still counts as a landing
	FootProbe        float64 // half thickness of the slab treated as standing contact

	KillY  float64 // falling below this dies
	Floor  bool    // whether the world floor plane exists
	FloorY float64
	Spawn  geom.Vec3 // used when no respawn point was ever set

	RespawnDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Gravity:          18,
		JumpForce:        8,
		TerminalVelocity: 20,
		MoveSpeed:        6,
		HalfWidth:        0.3,
		Height:           1.8,
		FootOffset:       0,
		LandingTolerance: 0.2,
		FootProbe:        0.1,
		KillY:            -10,
		Floor:            true,
		FloorY:           0,
		Spawn:            geom.V(0, 1, 0),
		RespawnDelay:     500 * time.Millisecond,
	}
}

func (c Config) Extents() geom.Extents {
	return geom.Extents{HalfWidth: c.HalfWidth, Height: c.Height, FootOffset: c.FootOffset}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %g", ErrInvalidConfig, c.Gravity)
	case c.TerminalVelocity <= 0:
		return fmt.Errorf("%w: terminal velocity must be positive, got %g", ErrInvalidConfig, c.TerminalVelocity)
	case c.JumpForce < 0:
		return fmt.Errorf("%w: jump force must not be negative, got %g", ErrInvalidConfig, c.JumpForce)
	case c.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed must not be negative, got %g", ErrInvalidConfig, c.MoveSpeed)
	case c.HalfWidth <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: actor extents must be positive, got half width %g height %g", ErrInvalidConfig, c.HalfWidth, c.Height)
	case c.LandingTolerance < 0 || c.FootProbe < 0:
		return fmt.Errorf("%w: tolerances must not be negative", ErrInvalidConfig)
	case c.RespawnDelay < 0:
		return fmt.Errorf("%w: respawn delay must not be negative, got %s", ErrInvalidConfig, c.RespawnDelay)
	case !c.Spawn.Finite():
		return fmt.Errorf("%w: spawn must be finite", ErrInvalidConfig)
	}
	return nil
}
