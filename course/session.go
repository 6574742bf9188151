package course

import (
	"github.com/milk9111/blockrunner/checkpoint"
	"github.com/milk9111/blockrunner/common"
	"github.com/milk9111/blockrunner/levels"
	"github.com/milk9111/blockrunner/physics"
	"github.com/rs/zerolog"
)

// Session plays one course: it feeds the course geometry to the controller
// each tick and lets the checkpoint script move the respawn point.
type Session struct {
	ctrl    *physics.Controller
	course  *levels.Course
	scripts *checkpoint.Runtime
	base    physics.Config
	log     zerolog.Logger

	events []physics.Event
}

// NewSession starts course with the given base tuning. The course's floor,
// kill plane and spawn override base. scripts may be nil.
func NewSession(base physics.Config, course *levels.Course, scripts *checkpoint.Runtime) (*Session, error) {
	cfg := course.Apply(base)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ctrl:    physics.NewController(cfg),
		course:  course,
		scripts: scripts,
		base:    base,
		log:     zerolog.Nop(),
	}
	s.ctrl.EnterLevel(cfg.Spawn)
	return s, nil
}

func (s *Session) SetLogger(l zerolog.Logger) {
	s.log = l
	s.ctrl.SetLogger(l.With().Str("component", "controller").Logger())
	if s.scripts != nil {
		s.scripts.SetLogger(l.With().Str("component", "checkpoint").Logger())
	}
}

func (s *Session) Controller() *physics.Controller { return s.ctrl }

func (s *Session) Course() *levels.Course { return s.course }

// Tick advances the session by dt seconds (clamped to common.MaxFrameDelta)
// and returns the snapshot and the events raised during the tick. The
// event slice is reused by the next Tick.
func (s *Session) Tick(dt float64, in physics.Intent) (physics.Snapshot, []physics.Event) {
	snap := s.ctrl.Update(common.ClampDelta(dt), in, s.course.Boxes())
	s.events = append(s.events[:0], s.ctrl.Events()...)

	for _, ev := range s.events {
		e := s.log.Info().Str("event", string(ev.Kind)).Uint64("tick", ev.Tick).
			Float64("x", ev.Position.X).Float64("y", ev.Position.Y).Float64("z", ev.Position.Z)
		if ev.Cause != physics.CauseNone {
			e = e.Str("cause", string(ev.Cause))
		}
		e.Msg("course event")
	}

	if s.scripts != nil {
		frame := checkpoint.Frame{
			Snapshot:   snap,
			Checkpoint: s.course.CheckpointAt(snap.Position),
			Respawn:    s.ctrl.RespawnPoint(),
		}
		if p, ok := s.scripts.Update(frame, s.events); ok {
			s.ctrl.SetRespawnPoint(p)
			s.log.Debug().Float64("x", p.X).Float64("y", p.Y).Float64("z", p.Z).Msg("respawn point moved")
		}
	}
	return snap, s.events
}

// Restart re-enters the course from its spawn and forgets claimed
// checkpoints.
func (s *Session) Restart() {
	s.ctrl.EnterLevel(s.course.Spawn)
	if s.scripts != nil {
		s.scripts.Reset()
	}
}

// SetTuning swaps the base tuning between ticks, keeping the course's
// overrides. An invalid config is rejected.
func (s *Session) SetTuning(base physics.Config) error {
	if err := s.ctrl.SetConfig(s.course.Apply(base)); err != nil {
		return err
	}
	s.base = base
	return nil
}

// SetCourse swaps the course and restarts on it.
func (s *Session) SetCourse(course *levels.Course) error {
	cfg := course.Apply(s.base)
	if err := s.ctrl.SetConfig(cfg); err != nil {
		return err
	}
	s.course = course
	s.Restart()
	return nil
}

// SetScripts swaps the checkpoint runtime. nil disables checkpoints.
func (s *Session) SetScripts(rt *checkpoint.Runtime) {
	if rt != nil {
		rt.SetLogger(s.log.With().Str("component", "checkpoint").Logger())
	}
	s.scripts = rt
}
