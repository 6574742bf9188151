package geom

import "github.com/jakecoffman/cp"

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min Vec3 `json:"min" yaml:"min"`
	Max Vec3 `json:"max" yaml:"max"`
}

// Extents describes the actor's collision volume relative to its position
// anchor. The bottom face sits FootOffset below the anchor.
type Extents struct {
	HalfWidth  float64
	Height     float64
	FootOffset float64
}

// FromActor builds the actor's collision box at pos.
func FromActor(pos Vec3, ext Extents) AABB {
	bottom := pos.Y - ext.FootOffset
	return AABB{
		Min: Vec3{X: pos.X - ext.HalfWidth, Y: bottom, Z: pos.Z - ext.HalfWidth},
		Max: Vec3{X: pos.X + ext.HalfWidth, Y: bottom + ext.Height, Z: pos.Z + ext.HalfWidth},
	}
}

// FromCenter builds a box from its center and full size.
func FromCenter(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Valid reports whether the box has positive size on every axis. Zero-size,
// inverted and non-finite boxes never collide.
func (b AABB) Valid() bool {
	if !b.Min.Finite() || !b.Max.Finite() {
		return false
	}
	return b.Max.X > b.Min.X && b.Max.Y > b.Min.Y && b.Max.Z > b.Min.Z
}

// Intersects is strict: boxes that only share a face do not intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// OverlapsFootprint tests the X/Z projection only.
func (b AABB) OverlapsFootprint(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Translate returns the box moved by d.
func (b AABB) Translate(d Vec3) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Footprint projects the box onto the ground plane as a chipmunk BB with
// X mapped to X and Z mapped to Y.
func (b AABB) Footprint() cp.BB {
	return cp.BB{L: b.Min.X, B: b.Min.Z, R: b.Max.X, T: b.Max.Z}
}

// Face names one of the four horizontal faces an actor can be pushed
// through.
type Face int

const (
	FaceNone Face = iota
	FaceMinX
	FaceMaxX
	FaceMinZ
	FaceMaxZ
)

func (f Face) String() string {
	switch f {
	case FaceMinX:
		return "-x"
	case FaceMaxX:
		return "+x"
	case FaceMinZ:
		return "-z"
	case FaceMaxZ:
		return "+z"
	default:
		return "none"
	}
}

// Penetration holds the four horizontal penetration depths of an actor box
// into a solid box. Each depth is the distance the actor must travel to
// leave through that face of the solid.
type Penetration struct {
	MinX float64 // actor.max.x - box.min.x
	MaxX float64 // box.max.x - actor.min.x
	MinZ float64 // actor.max.z - box.min.z
	MaxZ float64 // box.max.z - actor.min.z
}

func HorizontalPenetration(actor, box AABB) Penetration {
	return Penetration{
		MinX: actor.Max.X - box.Min.X,
		MaxX: box.Max.X - actor.Min.X,
		MinZ: actor.Max.Z - box.Min.Z,
		MaxZ: box.Max.Z - actor.Min.Z,
	}
}

// Least returns the face with the smallest positive depth. Ties resolve in
// the order -x, +x, -z, +z.
func (p Penetration) Least() (Face, float64) {
	face := FaceNone
	best := 0.0
	for _, c := range [4]struct {
		face  Face
		depth float64
	}{
		{FaceMinX, p.MinX},
		{FaceMaxX, p.MaxX},
		{FaceMinZ, p.MinZ},
		{FaceMaxZ, p.MaxZ},
	} {
		if c.depth <= 0 {
			continue
		}
		if face == FaceNone || c.depth < best {
			face = c.face
			best = c.depth
		}
	}
	return face, best
}
