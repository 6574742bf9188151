package replay

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/milk9111/blockrunner/course"
	"github.com/milk9111/blockrunner/physics"
	"gopkg.in/yaml.v3"
)

var ErrEmptyTape = errors.New("replay: tape has no ticks")

// DefaultDT is the fixed step used when a tape does not name one.
const DefaultDT = 1.0 / 60

// Segment holds the same input for Ticks consecutive ticks. Heading is in
// degrees, zero facing -Z.
type Segment struct {
	Ticks    int     `yaml:"ticks"`
	Forward  bool    `yaml:"forward"`
	Backward bool    `yaml:"backward"`
	Left     bool    `yaml:"left"`
	Right    bool    `yaml:"right"`
	Jump     bool    `yaml:"jump"`
	Heading  float64 `yaml:"heading"`
}

func (s Segment) Intent() physics.Intent {
	return physics.Intent{
		Forward:  s.Forward,
		Backward: s.Backward,
		Left:     s.Left,
		Right:    s.Right,
		Jump:     s.Jump,
		Heading:  s.Heading * math.Pi / 180,
	}
}

// Tape is a recorded run.
type Tape struct {
	Name     string    `yaml:"name"`
	Course   string    `yaml:"course"`
	DT       float64   `yaml:"dt"`
	Segments []Segment `yaml:"segments"`
}

func (t *Tape) Ticks() int {
	n := 0
	for _, s := range t.Segments {
		n += s.Ticks
	}
	return n
}

func LoadTape(path string) (*Tape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return ParseTape(path, data)
}

func ParseTape(name string, data []byte) (*Tape, error) {
	var t Tape
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("replay: unmarshal %s: %w", name, err)
	}
	for i, s := range t.Segments {
		if s.Ticks < 0 {
			return nil, fmt.Errorf("replay: %s: segment %d has negative ticks", name, i)
		}
	}
	if t.Ticks() == 0 {
		return nil, fmt.Errorf("replay: %s: %w", name, ErrEmptyTape)
	}
	if t.DT <= 0 {
		t.DT = DefaultDT
	}
	return &t, nil
}

// Result summarizes a run.
type Result struct {
	Ticks     int
	Final     physics.Snapshot
	Deaths    int
	Respawns  int
	Completed bool
	// CompletedAt is the tick of the first level_complete event, or zero.
	CompletedAt uint64
}

// Observer sees every tick of a run. events is only valid during the call.
type Observer func(tick int, snap physics.Snapshot, events []physics.Event)

// Run plays the tape on s at the tape's fixed step.
func Run(s *course.Session, t *Tape, observe Observer) Result {
	var res Result
	for _, seg := range t.Segments {
		in := seg.Intent()
		for i := 0; i < seg.Ticks; i++ {
			snap, events := s.Tick(t.DT, in)
			res.Ticks++
			res.Final = snap
			for _, ev := range events {
				switch ev.Kind {
				case physics.EventDied:
					res.Deaths++
				case physics.EventRespawned:
					res.Respawns++
				case physics.EventLevelComplete:
					if !res.Completed {
						res.CompletedAt = ev.Tick
					}
					res.Completed = true
				}
			}
			if observe != nil {
				observe(res.Ticks, snap, events)
			}
		}
	}
	return res
}
