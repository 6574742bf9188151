package physics

import (
	"math"

	"github.com/milk9111/blockrunner/geom"
)

// NoLanding marks a Contact without a landed box.
const NoLanding = -1

// Contact is what the vertical pass decided for one tick.
type Contact struct {
	// Landing indexes the box the actor landed on, or NoLanding.
	Landing int
	// Floor is set when the world floor won the landing.
	Floor bool
	// PrevTop is the actor's top face before vertical integration.
	PrevTop float64
}

func (c Contact) Landed() bool {
	return c.Floor || c.Landing != NoLanding
}

// standingOn reports whether the top face of box lies inside the slab of
// thickness 2*probe centered on the actor's bottom face, under the actor's
// footprint. That is resting contact, not a horizontal collision.
func standingOn(vol, box geom.AABB, probe float64) bool {
	if !vol.OverlapsFootprint(box) {
		return false
	}
	return box.Max.Y >= vol.Min.Y-probe && box.Max.Y <= vol.Min.Y+probe
}

// ResolveVertical lands the actor on the floor or on the top face of a
// solid box. A landing needs a downward (or zero) velocity and either the
// actor's bottom face at most LandingTolerance below the top face, or a
// bottom face that started the tick at or above the top face and ended it
// at or below. Among several
// candidates the highest top face wins; exactly one landing is applied.
func ResolveVertical(a *Actor, boxes []Box, cfg *Config, prevTop float64) Contact {
	c := Contact{Landing: NoLanding, PrevTop: prevTop}
	if a.Velocity.Y > 0 {
		return c
	}

	ext := cfg.Extents()
	vol := geom.FromActor(a.Position, ext)
	prevBottom := prevTop - ext.Height
	top := math.Inf(-1)

	for i := range boxes {
		b := &boxes[i]
		if !b.solid() || !vol.OverlapsFootprint(b.AABB) {
			continue
		}
		// the bottom face swept through the top face during this tick
		crossed := prevBottom >= b.Max.Y && vol.Min.Y <= b.Max.Y
		if !crossed {
			// touching counts so a resting actor stays grounded on a zero dt
			if vol.Min.Y > b.Max.Y || vol.Max.Y <= b.Min.Y {
				continue
			}
			if b.Max.Y-vol.Min.Y > cfg.LandingTolerance {
				continue
			}
		}
		if b.Max.Y > top {
			top = b.Max.Y
			c.Landing = i
		}
	}

	// The floor has no underside, so any depth below it lands.
	if cfg.Floor && vol.Min.Y <= cfg.FloorY && cfg.FloorY > top {
		top = cfg.FloorY
		c.Landing = NoLanding
		c.Floor = true
	}

	if !c.Landed() {
		return c
	}
	a.Position.Y = top + ext.FootOffset
	a.Velocity.Y = 0
	a.Grounded = true
	return c
}

// ResolveHorizontal pushes the actor out of every overlapping solid box
// other than the one it landed on this tick. The push follows the face of
// least penetration and only moves the position. Boxes entered from below
// while rising clamp the actor under them and stop the rise. It returns the
// number of corrections applied.
func ResolveHorizontal(a *Actor, boxes []Box, cfg *Config, c Contact) int {
	ext := cfg.Extents()
	n := 0
	for i := range boxes {
		if i == c.Landing {
			continue
		}
		b := &boxes[i]
		if !b.solid() {
			continue
		}
		vol := geom.FromActor(a.Position, ext)
		if !vol.Intersects(b.AABB) || standingOn(vol, b.AABB, cfg.FootProbe) {
			continue
		}

		if a.Velocity.Y > 0 && c.PrevTop <= b.Min.Y {
			a.Position.Y = b.Min.Y - ext.Height + ext.FootOffset
			a.Velocity.Y = 0
			n++
			continue
		}

		face, _ := geom.HorizontalPenetration(vol, b.AABB).Least()
		switch face {
		case geom.FaceMinX:
			a.Position.X = b.Min.X - ext.HalfWidth
		case geom.FaceMaxX:
			a.Position.X = b.Max.X + ext.HalfWidth
		case geom.FaceMinZ:
			a.Position.Z = b.Min.Z - ext.HalfWidth
		case geom.FaceMaxZ:
			a.Position.Z = b.Max.Z + ext.HalfWidth
		default:
			continue
		}
		n++
	}
	return n
}
