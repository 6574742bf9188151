package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockrunner/geom"
	"github.com/rs/zerolog"
)

// Controller owns one actor and advances it once per host tick. It is not
// safe for concurrent use; the host loop is its only caller.
type Controller struct {
	cfg    Config
	actor  Actor
	life   Lifecycle
	events EventQueue
	log    zerolog.Logger

	respawn    geom.Vec3
	hasRespawn bool

	tick   uint64
	moving bool
	probes [4]cp.Vector
}

// NewController places an alive actor at cfg.Spawn. cfg is used as given;
// callers that read it from disk validate it first.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg, log: zerolog.Nop()}
	c.actor.Alive = true
	c.actor.place(cfg.Spawn)
	return c
}

func (c *Controller) SetLogger(l zerolog.Logger) {
	c.log = l
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps the tuning between ticks. An invalid config is rejected
// and the current one kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.log.Debug().Float64("gravity", cfg.Gravity).Float64("jump", cfg.JumpForce).Msg("controller config applied")
	return nil
}

// EnterLevel starts a level session: the actor is placed alive at spawn,
// spawn becomes the respawn point and the completed latch clears.
func (c *Controller) EnterLevel(spawn geom.Vec3) {
	c.life.Reset()
	c.events.flush()
	c.actor = Actor{Alive: true}
	c.actor.place(spawn)
	c.respawn = spawn
	c.hasRespawn = true
	c.moving = false
	c.log.Debug().Interface("spawn", spawn).Msg("level entered")
}

// SetRespawnPoint overwrites where the actor returns after dying. The
// controller never moves it on its own.
func (c *Controller) SetRespawnPoint(p geom.Vec3) {
	c.respawn = p
	c.hasRespawn = true
}

// RespawnPoint falls back to the configured spawn when none was set.
func (c *Controller) RespawnPoint() geom.Vec3 {
	if !c.hasRespawn {
		return c.cfg.Spawn
	}
	return c.respawn
}

// Actor returns a copy of the actor state.
func (c *Controller) Actor() Actor {
	return c.actor
}

func (c *Controller) Lifecycle() Lifecycle {
	return c.life
}

// Events drains pending notifications.
func (c *Controller) Events() []Event {
	return c.events.Drain()
}

// Update advances one tick. dt is in seconds and already clamped by the
// host. boxes are read for this tick only and never retained.
func (c *Controller) Update(dt float64, in Intent, boxes []Box) Snapshot {
	c.tick++
	c.moving = false

	if c.life.Dead() {
		if c.life.Advance(dt) {
			c.revive()
		}
		return c.Snapshot()
	}

	a := &c.actor
	if in.Jump && a.Grounded {
		a.Velocity.Y = c.cfg.JumpForce
	}
	a.Grounded = false

	ext := c.cfg.Extents()
	prevTop := a.Position.Y - ext.FootOffset + ext.Height
	IntegrateVertical(a, dt, c.cfg.Gravity, c.cfg.TerminalVelocity)
	contact := ResolveVertical(a, boxes, &c.cfg, prevTop)
	ResolveHorizontal(a, boxes, &c.cfg, contact)

	dist := c.cfg.MoveSpeed * dt
	for _, dir := range in.Probes(c.probes[:0]) {
		if MoveHorizontal(a, dir, dist, boxes, &c.cfg) {
			c.moving = true
			a.Yaw = yawToward(dir.X, dir.Y)
		}
		ResolveHorizontal(a, boxes, &c.cfg, contact)
	}

	c.checkLifecycle(boxes)
	return c.Snapshot()
}

func (c *Controller) checkLifecycle(boxes []Box) {
	vol := c.actor.Volume(c.cfg.Extents())

	if _, ok := touching(vol, boxes, BlockHazard); ok {
		c.die(CauseHazard)
	} else if c.actor.Position.Y < c.cfg.KillY {
		c.die(CauseOutOfBounds)
	}

	if _, ok := touching(vol, boxes, BlockGoal); ok && c.life.Complete() {
		c.events.Push(Event{Kind: EventLevelComplete, Tick: c.tick, Position: c.actor.Position})
		c.log.Info().Uint64("tick", c.tick).Msg("level complete")
	}
}

func (c *Controller) die(cause DeathCause) {
	if !c.life.Kill(cause, c.cfg.RespawnDelay) {
		return
	}
	pos := c.actor.Position
	c.actor.Alive = false
	c.actor.Velocity = geom.Vec3{}
	c.actor.Grounded = false
	c.moving = false
	c.events.Push(Event{Kind: EventDied, Tick: c.tick, Position: pos, Cause: cause})
	c.log.Debug().Uint64("tick", c.tick).Str("cause", string(cause)).Interface("position", pos).Msg("actor died")
}

func (c *Controller) revive() {
	p := c.RespawnPoint()
	c.life.Revive()
	c.actor.place(p)
	c.actor.Alive = true
	c.events.Push(Event{Kind: EventRespawned, Tick: c.tick, Position: p})
	c.log.Debug().Uint64("tick", c.tick).Interface("position", p).Msg("actor respawned")
}

// Snapshot returns the current state without advancing.
func (c *Controller) Snapshot() Snapshot {
	a := &c.actor
	return Snapshot{
		Tick:      c.tick,
		Position:  a.Position,
		Velocity:  a.Velocity,
		Yaw:       a.Yaw,
		Grounded:  a.Grounded,
		Alive:     a.Alive,
		Moving:    c.moving,
		Completed: c.life.Completed(),
		Anim:      animFor(a, c.moving),
	}
}
