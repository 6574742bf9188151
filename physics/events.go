package physics

import "github.com/milk9111/blockrunner/geom"

// EventKind identifies controller notifications.
type EventKind string

const (
	EventDied          EventKind = "died"
	EventRespawned     EventKind = "respawned"
	EventLevelComplete EventKind = "level_complete"
)

// DeathCause says why the actor died.
type DeathCause string

const (
	CauseNone        DeathCause = ""
	CauseHazard      DeathCause = "hazard"
	CauseOutOfBounds DeathCause = "out_of_bounds"
)

// Event is an edge-triggered notification. Each qualifying transition
// produces exactly one.
type Event struct {
	Kind     EventKind
	Tick     uint64
	Position geom.Vec3
	Cause    DeathCause
}

// EventQueue holds the events raised since the host last drained them, in
// the order they happened.
type EventQueue struct {
	pending []Event
}

func (q *EventQueue) Push(evt Event) {
	q.pending = append(q.pending, evt)
}

// Drain hands the pending events to the caller, who then owns the slice.
func (q *EventQueue) Drain() []Event {
	out := q.pending
	q.pending = nil
	if len(out) == 0 {
		return nil
	}
	return out
}

// flush drops undelivered events when a level session restarts.
func (q *EventQueue) flush() {
	q.pending = q.pending[:0:0]
}
