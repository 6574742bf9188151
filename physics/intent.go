package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// StickDeadzone is the analog magnitude below which the stick is ignored.
const StickDeadzone = 0.2

// Intent is one tick of normalized player input. Ground-plane vectors use
// cp.Vector with X mapped to world X and Y mapped to world Z.
type Intent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	// Stick is an analog direction relative to Heading: X strafes right,
	// Y moves forward. Used only when no movement key is held.
	Stick cp.Vector

	// Heading is the camera yaw in radians. Zero looks down -Z.
	Heading float64
}

func (in Intent) keys() bool {
	return in.Forward || in.Backward || in.Left || in.Right
}

// Basis returns the forward and right ground-plane unit vectors for Heading.
func (in Intent) Basis() (forward, right cp.Vector) {
	sin, cos := math.Sincos(in.Heading)
	forward = cp.Vector{X: -sin, Y: -cos}
	right = cp.Vector{X: cos, Y: -sin}
	return forward, right
}

// Probes appends the displacement directions for this tick to buf. Each
// held key yields its own unit probe, in forward, backward, left, right
// order, so diagonal input resolves as sequential axis probes. Without
// keys the stick yields a single probe no longer than one.
func (in Intent) Probes(buf []cp.Vector) []cp.Vector {
	forward, right := in.Basis()
	if in.keys() {
		if in.Forward {
			buf = append(buf, forward)
		}
		if in.Backward {
			buf = append(buf, forward.Neg())
		}
		if in.Left {
			buf = append(buf, right.Neg())
		}
		if in.Right {
			buf = append(buf, right)
		}
		return buf
	}

	l := in.Stick.Length()
	if l < StickDeadzone {
		return buf
	}
	dir := forward.Mult(in.Stick.Y).Add(right.Mult(in.Stick.X))
	if l > 1 {
		dir = dir.Mult(1 / l)
	}
	return append(buf, dir)
}
