package physics

import "github.com/milk9111/blockrunner/geom"

// AnimHint tells renderers which animation fits the actor's state.
type AnimHint string

const (
	AnimIdle    AnimHint = "idle"
	AnimRunning AnimHint = "running"
	AnimJumping AnimHint = "jumping"
	AnimFalling AnimHint = "falling"
	AnimDead    AnimHint = "dead"
)

// Snapshot is an immutable view of the actor after a tick.
type Snapshot struct {
	Tick      uint64
	Position  geom.Vec3
	Velocity  geom.Vec3
	Yaw       float64
	Grounded  bool
	Alive     bool
	Moving    bool
	Completed bool
	Anim      AnimHint
}

func animFor(a *Actor, moving bool) AnimHint {
	switch {
	case !a.Alive:
		return AnimDead
	case a.Grounded && moving:
		return AnimRunning
	case a.Grounded:
		return AnimIdle
	case a.Velocity.Y > 0:
		return AnimJumping
	default:
		return AnimFalling
	}
}
