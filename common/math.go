package common

import "math"

// MaxFrameDelta bounds a single tick's time step in seconds.
const MaxFrameDelta = 0.1

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampDelta turns a raw frame delta into a usable tick step. Negative or
// NaN deltas become zero.
func ClampDelta(dt float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	return math.Min(dt, MaxFrameDelta)
}

// LerpAngle interpolates between two yaw angles along the shortest arc.
func LerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a+math.Pi, 2*math.Pi)
	if diff < 0 {
		diff += 2 * math.Pi
	}
	return a + (diff-math.Pi)*t
}
