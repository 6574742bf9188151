package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockrunner/geom"
	"github.com/milk9111/blockrunner/physics"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the course the game opens when none is named.
const Default = "tutorial.json"

var ErrNoBlocks = errors.New("levels: course has no usable blocks")

// Course is a block course as stored on disk.
type Course struct {
	Name        string       `json:"name"`
	Spawn       geom.Vec3    `json:"spawn"`
	Floor       *bool        `json:"floor,omitempty"`
	KillY       *float64     `json:"kill_y,omitempty"`
	Blocks      []Block      `json:"blocks"`
	Checkpoints []Checkpoint `json:"checkpoints,omitempty"`

	// Skipped counts blocks dropped at load time for having no volume.
	Skipped int `json:"-"`

	boxes []physics.Box
}

type Block struct {
	Kind string    `json:"kind"`
	Min  geom.Vec3 `json:"min"`
	Max  geom.Vec3 `json:"max"`
}

type Checkpoint struct {
	Name string    `json:"name,omitempty"`
	Min  geom.Vec3 `json:"min"`
	Max  geom.Vec3 `json:"max"`
}

func (c Checkpoint) Volume() geom.AABB {
	return geom.AABB{Min: c.Min, Max: c.Max}
}

// LoadLevelFromFS reads a course from the embedded set.
func LoadLevelFromFS(name string) (*Course, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(name, data)
}

// Load reads path from disk when it exists and falls back to the embedded
// course of the same base name.
func Load(path string) (*Course, error) {
	if path == "" {
		path = Default
	}
	if data, err := os.ReadFile(path); err == nil {
		return Parse(path, data)
	}
	return LoadLevelFromFS(filepath.Base(path))
}

// Parse decodes and validates a course. Blocks with no volume are dropped
// and counted in Skipped; an unknown kind is an error.
func Parse(name string, data []byte) (*Course, error) {
	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if !c.Spawn.Finite() {
		return nil, fmt.Errorf("levels: %s: spawn must be finite", name)
	}

	c.boxes = make([]physics.Box, 0, len(c.Blocks))
	for i, b := range c.Blocks {
		kind, err := physics.ParseBlockKind(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: block %d: %w", name, i, err)
		}
		box := physics.Box{AABB: geom.AABB{Min: b.Min, Max: b.Max}, Kind: kind}
		if !box.Valid() {
			c.Skipped++
			continue
		}
		c.boxes = append(c.boxes, box)
	}
	if len(c.boxes) == 0 && !c.FloorEnabled(false) {
		return nil, fmt.Errorf("levels: %s: %w", name, ErrNoBlocks)
	}
	return &c, nil
}

// Boxes returns the validated geometry. The slice is shared; callers must
// not modify it.
func (c *Course) Boxes() []physics.Box {
	if c == nil {
		return nil
	}
	return c.boxes
}

// FloorEnabled reports the course's floor flag, or def when it has none.
func (c *Course) FloorEnabled(def bool) bool {
	if c == nil || c.Floor == nil {
		return def
	}
	return *c.Floor
}

// Apply overlays the course's floor and kill plane onto cfg.
func (c *Course) Apply(cfg physics.Config) physics.Config {
	if c == nil {
		return cfg
	}
	cfg.Floor = c.FloorEnabled(cfg.Floor)
	if c.KillY != nil {
		cfg.KillY = *c.KillY
	}
	cfg.Spawn = c.Spawn
	return cfg
}

// CheckpointAt returns the index of the first checkpoint containing the
// actor's feet at pos, or -1.
func (c *Course) CheckpointAt(pos geom.Vec3) int {
	if c == nil {
		return -1
	}
	for i, ck := range c.Checkpoints {
		v := ck.Volume()
		if pos.X >= v.Min.X && pos.X <= v.Max.X &&
			pos.Y >= v.Min.Y && pos.Y <= v.Max.Y &&
			pos.Z >= v.Min.Z && pos.Z <= v.Max.Z {
			return i
		}
	}
	return -1
}

// Bounds is the ground-plane extent of every block and the spawn point.
func (c *Course) Bounds() cp.BB {
	bb := cp.NewBBForCircle(cp.Vector{X: c.Spawn.X, Y: c.Spawn.Z}, 0)
	for i := range c.boxes {
		bb = bb.Merge(c.boxes[i].Footprint())
	}
	return bb
}
