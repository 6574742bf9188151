package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockrunner/geom"
)

// MoveHorizontal displaces the actor by dir*distance on the ground plane
// and keeps the move only if the new volume overlaps no solid box except
// ones the actor is standing on. A rejected move restores the exact prior
// position; there is no sliding along walls. It reports whether the move
// was kept.
func MoveHorizontal(a *Actor, dir cp.Vector, distance float64, boxes []Box, cfg *Config) bool {
	if distance == 0 || (dir.X == 0 && dir.Y == 0) {
		return false
	}

	before := a.Position
	a.Position.X += dir.X * distance
	a.Position.Z += dir.Y * distance

	vol := geom.FromActor(a.Position, cfg.Extents())
	for i := range boxes {
		b := &boxes[i]
		if !b.solid() || !vol.Intersects(b.AABB) {
			continue
		}
		if standingOn(vol, b.AABB, cfg.FootProbe) {
			continue
		}
		a.Position = before
		return false
	}
	return true
}
