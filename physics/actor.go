package physics

import (
	"math"

	"github.com/milk9111/blockrunner/geom"
)

// Actor is the controlled character. Only Velocity.Y is integrated;
// horizontal motion is recomputed from intent every tick.
type Actor struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Grounded bool
	Alive    bool
	Yaw      float64
}

// Volume returns the actor's collision box under ext.
func (a *Actor) Volume(ext geom.Extents) geom.AABB {
	return geom.FromActor(a.Position, ext)
}

func (a *Actor) place(p geom.Vec3) {
	a.Position = p
	a.Velocity = geom.Vec3{}
	a.Grounded = false
}

// yawToward returns the yaw facing a ground-plane direction, matching the
// convention used by Intent.Heading.
func yawToward(dx, dz float64) float64 {
	return math.Atan2(-dx, -dz)
}
