package physics

import (
	"testing"

	"github.com/milk9111/blockrunner/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func airConfig() Config {
	cfg := DefaultConfig()
	cfg.Floor = false
	return cfg
}

func TestLandingOnPlatformScenario(t *testing.T) {
	cfg := airConfig()
	boxes := []Box{Solid(geom.V(-1, 0, -1), geom.V(1, 1, 1))}
	a := &Actor{Position: geom.V(0, 5, 0), Velocity: geom.V(0, -8, 0), Alive: true}

	prevTop := a.Position.Y + cfg.Height
	IntegrateVertical(a, 0.26, 30, 20)
	require.Less(t, a.Position.Y, 1.0)

	c := ResolveVertical(a, boxes, &cfg, prevTop)
	assert.Equal(t, 0, c.Landing)
	assert.Equal(t, 1.0, a.Position.Y)
	assert.Equal(t, 0.0, a.Velocity.Y)
	assert.True(t, a.Grounded)
}

func TestLandingNeverTunnelsWithinTolerance(t *testing.T) {
	cfg := airConfig()
	boxes := []Box{Solid(geom.V(-2, -3, -2), geom.V(2, 1, 2))}
	depths := []float64{0, 0.001, 0.05, 0.1, 0.15, 0.199}
	speeds := []float64{0, -0.5, -4, -12, -20}

	for _, d := range depths {
		for _, v := range speeds {
			a := &Actor{Position: geom.V(0.5, 1-d, -0.5), Velocity: geom.V(0, v, 0), Alive: true}
			c := ResolveVertical(a, boxes, &cfg, 0)
			require.True(t, c.Landed(), "depth %g speed %g", d, v)
			assert.InDelta(t, 1.0, a.Position.Y, 1e-12)
			assert.Equal(t, 0.0, a.Velocity.Y)
			assert.True(t, a.Grounded)
		}
	}
}

func TestResolveVerticalRejects(t *testing.T) {
	cfg := airConfig()
	boxes := []Box{Solid(geom.V(-1, 0, -1), geom.V(1, 1, 1))}

	cases := []struct {
		name string
		pos  geom.Vec3
		vel  float64
	}{
		{"too_deep", geom.V(0, 0.5, 0), -3},
		{"rising", geom.V(0, 0.95, 0), 4},
		{"beside_box", geom.V(1.5, 0.95, 0), -3},
		{"above_box", geom.V(0, 1.5, 0), -3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := &Actor{Position: c.pos, Velocity: geom.V(0, c.vel, 0), Alive: true}
			contact := ResolveVertical(a, boxes, &cfg, 0)
			assert.False(t, contact.Landed())
			assert.Equal(t, c.pos, a.Position)
			assert.Equal(t, c.vel, a.Velocity.Y)
			assert.False(t, a.Grounded)
		})
	}
}

func TestResolveVerticalPicksOneWinner(t *testing.T) {
	cfg := airConfig()

	t.Run("coplanar_first_wins", func(t *testing.T) {
		boxes := []Box{
			Solid(geom.V(-1, 0, -1), geom.V(0, 1, 1)),
			Solid(geom.V(0, 0, -1), geom.V(1, 1, 1)),
		}
		a := &Actor{Position: geom.V(0, 0.9, 0), Velocity: geom.V(0, -2, 0), Alive: true}
		c := ResolveVertical(a, boxes, &cfg, 0)
		assert.Equal(t, 0, c.Landing)
		assert.Equal(t, 1.0, a.Position.Y)
	})

	t.Run("highest_top_wins", func(t *testing.T) {
		boxes := []Box{
			Solid(geom.V(-1, 0, -1), geom.V(0, 1, 1)),
			Solid(geom.V(0, 0, -1), geom.V(1, 1.1, 1)),
		}
		a := &Actor{Position: geom.V(0, 0.95, 0), Velocity: geom.V(0, -2, 0), Alive: true}
		c := ResolveVertical(a, boxes, &cfg, 0)
		assert.Equal(t, 1, c.Landing)
		assert.InDelta(t, 1.1, a.Position.Y, 1e-12)
	})

	t.Run("non_solid_ignored", func(t *testing.T) {
		boxes := []Box{
			Goal(geom.V(-1, 0, -1), geom.V(1, 1, 1)),
			Hazard(geom.V(-1, 0, -1), geom.V(1, 1, 1)),
			Solid(geom.V(-1, 1, -1), geom.V(1, 1, 1)),
		}
		a := &Actor{Position: geom.V(0, 0.9, 0), Velocity: geom.V(0, -2, 0), Alive: true}
		c := ResolveVertical(a, boxes, &cfg, 0)
		assert.False(t, c.Landed())
	})
}

func TestResolveVerticalFloor(t *testing.T) {
	cfg := DefaultConfig()

	a := &Actor{Position: geom.V(3, -0.7, 3), Velocity: geom.V(0, -20, 0), Alive: true}
	c := ResolveVertical(a, nil, &cfg, 0)
	assert.True(t, c.Floor)
	assert.Equal(t, NoLanding, c.Landing)
	assert.Equal(t, 0.0, a.Position.Y)
	assert.True(t, a.Grounded)

	t.Run("box_above_floor_wins", func(t *testing.T) {
		boxes := []Box{Solid(geom.V(-1, -1, -1), geom.V(1, 0.1, 1))}
		a := &Actor{Position: geom.V(0, -0.05, 0), Velocity: geom.V(0, -1, 0), Alive: true}
		c := ResolveVertical(a, boxes, &cfg, 0)
		assert.False(t, c.Floor)
		assert.Equal(t, 0, c.Landing)
		assert.InDelta(t, 0.1, a.Position.Y, 1e-12)
	})

	t.Run("foot_offset", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.FootOffset = 0.9
		a := &Actor{Position: geom.V(0, 0.8, 0), Velocity: geom.V(0, -1, 0), Alive: true}
		ResolveVertical(a, nil, &cfg, 0)
		assert.InDelta(t, 0.9, a.Position.Y, 1e-12)
	})
}

func TestPushOutPicksMinimalAxis(t *testing.T) {
	cfg := airConfig()
	boxes := []Box{Solid(geom.V(0, 0, 0), geom.V(4, 3, 4))}

	cases := []struct {
		name string
		pos  geom.Vec3
		want geom.Vec3
		axis geom.Face
	}{
		{"left_face", geom.V(-0.2, 1, 2), geom.V(-0.3, 1, 2), geom.FaceMinX},
		{"right_face", geom.V(4.1, 1, 2), geom.V(4.3, 1, 2), geom.FaceMaxX},
		{"near_face", geom.V(2, 1, 0.05), geom.V(2, 1, -0.3), geom.FaceMinZ},
		{"far_face", geom.V(2, 1, 3.9), geom.V(2, 1, 4.3), geom.FaceMaxZ},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := &Actor{Position: c.pos, Alive: true}
			face, _ := geom.HorizontalPenetration(a.Volume(cfg.Extents()), boxes[0].AABB).Least()
			require.Equal(t, c.axis, face)

			n := ResolveHorizontal(a, boxes, &cfg, Contact{Landing: NoLanding, PrevTop: c.pos.Y + cfg.Height})
			assert.Equal(t, 1, n)

			changed := 0
			for _, d := range []float64{a.Position.X - c.pos.X, a.Position.Y - c.pos.Y, a.Position.Z - c.pos.Z} {
				if d != 0 {
					changed++
				}
			}
			assert.Equal(t, 1, changed)
			assert.InDelta(t, c.want.X, a.Position.X, 1e-12)
			assert.InDelta(t, c.want.Y, a.Position.Y, 1e-12)
			assert.InDelta(t, c.want.Z, a.Position.Z, 1e-12)
			assert.False(t, a.Volume(cfg.Extents()).Intersects(boxes[0].AABB))
		})
	}
}

func TestResolveHorizontalSkips(t *testing.T) {
	cfg := airConfig()

	t.Run("landing_box", func(t *testing.T) {
		boxes := []Box{Solid(geom.V(0, 0, 0), geom.V(4, 3, 4))}
		a := &Actor{Position: geom.V(-0.2, 1, 2), Alive: true}
		assert.Zero(t, ResolveHorizontal(a, boxes, &cfg, Contact{Landing: 0}))
		assert.Equal(t, geom.V(-0.2, 1, 2), a.Position)
	})

	t.Run("standing_on_lip", func(t *testing.T) {
		boxes := []Box{Solid(geom.V(0, 0, 0), geom.V(4, 1, 4))}
		a := &Actor{Position: geom.V(-0.2, 0.95, 2), Alive: true}
		assert.Zero(t, ResolveHorizontal(a, boxes, &cfg, Contact{Landing: NoLanding}))
	})

	t.Run("degenerate_box", func(t *testing.T) {
		boxes := []Box{Solid(geom.V(0, 0, 0), geom.V(0, 3, 4))}
		a := &Actor{Position: geom.V(0, 1, 2), Alive: true}
		assert.Zero(t, ResolveHorizontal(a, boxes, &cfg, Contact{Landing: NoLanding}))
	})

	t.Run("trigger_kinds", func(t *testing.T) {
		boxes := []Box{
			Goal(geom.V(-1, 0, -1), geom.V(1, 3, 1)),
			Hazard(geom.V(-1, 0, -1), geom.V(1, 3, 1)),
		}
		a := &Actor{Position: geom.V(0, 1, 0), Alive: true}
		assert.Zero(t, ResolveHorizontal(a, boxes, &cfg, Contact{Landing: NoLanding}))
	})
}

func TestCeilingStopsRise(t *testing.T) {
	cfg := airConfig()
	boxes := []Box{Solid(geom.V(-1, 3, -1), geom.V(1, 4, 1))}
	a := &Actor{Position: geom.V(0, 1.3, 0), Velocity: geom.V(0, 5, 0), Alive: true}

	n := ResolveHorizontal(a, boxes, &cfg, Contact{Landing: NoLanding, PrevTop: 2.9})
	assert.Equal(t, 1, n)
	assert.InDelta(t, 1.2, a.Position.Y, 1e-12)
	assert.Equal(t, 0.0, a.Velocity.Y)
	assert.Equal(t, 0.0, a.Position.X)
	assert.Equal(t, 0.0, a.Position.Z)
}

func TestLandingAcceptsSweptCrossing(t *testing.T) {
	cfg := airConfig()
	boxes := []Box{Solid(geom.V(-1, 0, -1), geom.V(1, 1, 1))}

	// started the tick above the top, ended 0.3 below it
	a := &Actor{Position: geom.V(0, 0.7, 0), Velocity: geom.V(0, -20, 0), Alive: true}
	c := ResolveVertical(a, boxes, &cfg, 1.03+cfg.Height)
	assert.Equal(t, 0, c.Landing)
	assert.Equal(t, 1.0, a.Position.Y)
	assert.True(t, a.Grounded)

	// already below the top before the tick: still too deep
	a = &Actor{Position: geom.V(0, 0.5, 0), Velocity: geom.V(0, -3, 0), Alive: true}
	c = ResolveVertical(a, boxes, &cfg, 0.55+cfg.Height)
	assert.False(t, c.Landed())
	assert.Equal(t, 0.5, a.Position.Y)
}
