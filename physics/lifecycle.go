package physics

import (
	"time"

	"github.com/milk9111/blockrunner/geom"
)

// Lifecycle is the alive/dead/completed state machine. Death starts a
// respawn countdown; the completed latch survives deaths and only clears
// when a new level session starts.
type Lifecycle struct {
	dead      bool
	remaining time.Duration
	cause     DeathCause
	completed bool
}

func (l Lifecycle) Dead() bool { return l.dead }

func (l Lifecycle) Completed() bool { return l.completed }

// Cause returns why the actor is dead, or CauseNone while alive.
func (l Lifecycle) Cause() DeathCause { return l.cause }

// Remaining is the time left before respawn.
func (l Lifecycle) Remaining() time.Duration { return l.remaining }

// Kill moves Alive to Dead. It reports false when already dead.
func (l *Lifecycle) Kill(cause DeathCause, delay time.Duration) bool {
	if l.dead {
		return false
	}
	l.dead = true
	l.cause = cause
	l.remaining = delay
	return true
}

// Advance counts the respawn timer down by dt seconds and reports whether
// the actor should respawn now.
func (l *Lifecycle) Advance(dt float64) bool {
	if !l.dead {
		return false
	}
	if dt > 0 {
		l.remaining -= time.Duration(dt * float64(time.Second))
	}
	return l.remaining <= 0
}

// Revive returns to Alive.
func (l *Lifecycle) Revive() {
	l.dead = false
	l.cause = CauseNone
	l.remaining = 0
}

// Complete latches level completion and reports true only the first time.
func (l *Lifecycle) Complete() bool {
	if l.completed {
		return false
	}
	l.completed = true
	return true
}

// Reset starts a new level session.
func (l *Lifecycle) Reset() {
	*l = Lifecycle{}
}

// touching returns the first valid box of kind the volume intersects.
func touching(vol geom.AABB, boxes []Box, kind BlockKind) (int, bool) {
	for i := range boxes {
		b := &boxes[i]
		if b.Kind != kind || !b.Valid() {
			continue
		}
		if vol.Intersects(b.AABB) {
			return i, true
		}
	}
	return 0, false
}
