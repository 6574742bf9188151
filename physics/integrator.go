package physics

// IntegrateVertical applies gravity, clamps to terminal velocity and moves
// the actor vertically. It may leave the actor inside geometry; the
// resolver runs right after within the same tick.
func IntegrateVertical(a *Actor, dt, gravity, terminalVelocity float64) {
	a.Velocity.Y -= gravity * dt
	if a.Velocity.Y < -terminalVelocity {
		a.Velocity.Y = -terminalVelocity
	}
	a.Position.Y += a.Velocity.Y * dt
}
