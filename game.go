package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockrunner/checkpoint"
	"github.com/milk9111/blockrunner/common"
	"github.com/milk9111/blockrunner/course"
	"github.com/milk9111/blockrunner/geom"
	"github.com/milk9111/blockrunner/levels"
	"github.com/milk9111/blockrunner/physics"
	"github.com/milk9111/blockrunner/prefabs"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	// viewMargin is world units kept around the course when framing it.
	viewMargin = 2
)

type Options struct {
	Level  string
	Config string
	Script string
	Debug  bool
	Mute   bool
}

type Game struct {
	opts    Options
	session *course.Session
	input   *Input
	watcher *prefabs.Watcher
	sounds  *Sounds
	ui      *ebitenui.UI

	snap   physics.Snapshot
	facing float64 // smoothed yaw for drawing
	frames int
	deaths int
	paused bool
	quit   bool

	view  cp.BB
	scale float64
}

func NewGame(opts Options) (*Game, error) {
	c, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	if c.Skipped > 0 {
		log.Warn().Int("skipped", c.Skipped).Str("course", c.Name).Msg("dropped blocks with no volume")
	}
	cfg, err := prefabs.LoadControllerConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	rt, err := checkpoint.Load(opts.Script)
	if err != nil {
		return nil, err
	}
	s, err := course.NewSession(cfg, c, rt)
	if err != nil {
		return nil, err
	}
	s.SetLogger(log.Logger)

	g := &Game{
		opts:    opts,
		session: s,
		input:   NewInput(),
		sounds:  NewSounds(opts.Mute),
	}
	g.ui = NewPauseUI(g)
	g.frame(c)

	if w, err := prefabs.NewWatcher(watchDirs(opts.Level)...); err != nil {
		log.Warn().Err(err).Msg("hot reload disabled")
	} else {
		g.watcher = w
	}

	log.Info().Str("course", c.Name).Int("blocks", len(c.Boxes())).Msg("course loaded")
	return g, nil
}

// watchDirs lists the on-disk override directories that exist.
func watchDirs(level string) []string {
	candidates := []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"), "levels"}
	if level != "" {
		candidates = append(candidates, filepath.Dir(level))
	}
	seen := map[string]bool{}
	var dirs []string
	for _, d := range candidates {
		clean := filepath.Clean(d)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		if info, err := os.Stat(clean); err == nil && info.IsDir() {
			dirs = append(dirs, clean)
		}
	}
	return dirs
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float64(ebiten.TPS())

	g.input.Update(dt)
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		if g.quit {
			return ebiten.Termination
		}
		return nil
	}

	g.applyChanges()

	if g.input.RestartPressed {
		g.session.Restart()
	}

	snap, events := g.session.Tick(dt, g.input.Intent())
	g.snap = snap
	g.facing = common.LerpAngle(g.facing, snap.Yaw, 0.3)
	for _, ev := range events {
		if ev.Kind == physics.EventDied {
			g.deaths++
		}
		g.sounds.Play(ev.Kind)
	}
	return nil
}

// applyChanges picks up edited prefabs, scripts and courses between ticks.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Warn().Err(err).Msg("watcher error")
	default:
	}

	for {
		change, ok := g.watcher.Poll()
		if !ok {
			return
		}
		logger := log.With().Str("path", change.Path).Str("kind", change.Kind.String()).Logger()

		switch change.Kind {
		case prefabs.ChangeConfig:
			cfg, err := prefabs.LoadControllerConfig(g.opts.Config)
			if err == nil {
				err = g.session.SetTuning(cfg)
			}
			if err != nil {
				logger.Error().Err(err).Msg("controller reload rejected")
				continue
			}
		case prefabs.ChangeScript:
			rt, err := checkpoint.Load(g.opts.Script)
			if err != nil {
				logger.Error().Err(err).Msg("script reload rejected")
				continue
			}
			g.session.SetScripts(rt)
		case prefabs.ChangeLevel:
			c, err := levels.Load(g.opts.Level)
			if err == nil {
				err = g.session.SetCourse(c)
			}
			if err != nil {
				logger.Error().Err(err).Msg("course reload rejected")
				continue
			}
			g.frame(c)
		}
		logger.Info().Msg("reloaded")
	}
}

// frame fits the course's ground-plane extent into the window.
func (g *Game) frame(c *levels.Course) {
	bb := c.Bounds()
	bb = cp.BB{L: bb.L - viewMargin, B: bb.B - viewMargin, R: bb.R + viewMargin, T: bb.T + viewMargin}
	g.view = bb
	g.scale = math.Min(baseWidth/(bb.R-bb.L), baseHeight/(bb.T-bb.B))
}

// project maps world X/Z onto the screen, -Z pointing up.
func (g *Game) project(x, z float64) (float32, float32) {
	c := g.view.Center()
	sx := baseWidth/2 + (x-c.X)*g.scale
	sy := baseHeight/2 + (z-c.Y)*g.scale
	return float32(sx), float32(sy)
}

func (g *Game) rect(screen *ebiten.Image, b geom.AABB, fill, stroke color.Color) {
	x0, y0 := g.project(b.Min.X, b.Min.Z)
	x1, y1 := g.project(b.Max.X, b.Max.Z)
	if fill != nil {
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, fill, false)
	}
	if stroke != nil {
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, stroke, false)
	}
}

func blockColor(kind physics.BlockKind, top float64) color.Color {
	switch kind {
	case physics.BlockGoal:
		return colornames.Gold
	case physics.BlockHazard:
		return colornames.Crimson
	}
	// higher tops read lighter
	shade := int(common.Clamp(110+top*30, 40, 200))
	return color.RGBA{R: uint8(shade / 2), G: uint8(shade * 3 / 4), B: uint8(shade), A: 0xff}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	c := g.session.Course()
	boxes := append([]physics.Box(nil), c.Boxes()...)
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Max.Y < boxes[j].Max.Y })
	for _, b := range boxes {
		g.rect(screen, b.AABB, blockColor(b.Kind, b.Max.Y), colornames.Black)
	}
	for _, ck := range c.Checkpoints {
		g.rect(screen, ck.Volume(), nil, colornames.Mediumseagreen)
	}

	ctrl := g.session.Controller()
	rp := ctrl.RespawnPoint()
	rx, ry := g.project(rp.X, rp.Z)
	vector.StrokeCircle(screen, rx, ry, 6, 1, colornames.Mediumseagreen, true)

	cfg := ctrl.Config()
	actorColor := color.Color(colornames.White)
	if !g.snap.Alive {
		actorColor = colornames.Dimgray
	}
	g.rect(screen, geom.FromActor(g.snap.Position, cfg.Extents()), actorColor, nil)

	ax, ay := g.project(g.snap.Position.X, g.snap.Position.Z)
	fx, fy := g.project(g.snap.Position.X-math.Sin(g.facing)*cfg.HalfWidth*2, g.snap.Position.Z-math.Cos(g.facing)*cfg.HalfWidth*2)
	vector.StrokeLine(screen, ax, ay, fx, fy, 2, colornames.Orange, true)

	hx, hy := g.project(g.snap.Position.X-math.Sin(g.input.Heading)*1.5, g.snap.Position.Z-math.Cos(g.input.Heading)*1.5)
	vector.StrokeLine(screen, ax, ay, hx, hy, 1, colornames.Lightgrey, true)

	hud := fmt.Sprintf("%s    FPS: %.2f    deaths: %d", c.Name, ebiten.ActualFPS(), g.deaths)
	hud += fmt.Sprintf("\n%s  y=%.2f  vy=%.2f", g.snap.Anim, g.snap.Position.Y, g.snap.Velocity.Y)
	if g.snap.Completed {
		hud += "\nCOURSE COMPLETE - R to restart"
	}
	if g.opts.Debug {
		hud += fmt.Sprintf("\ntick %d  pos %.3f %.3f %.3f  grounded %v", g.snap.Tick, g.snap.Position.X, g.snap.Position.Y, g.snap.Position.Z, g.snap.Grounded)
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
