package checkpoint

import (
	"testing"

	"github.com/milk9111/blockrunner/geom"
	"github.com/milk9111/blockrunner/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standing(pos geom.Vec3, idx int) Frame {
	return Frame{
		Snapshot:   physics.Snapshot{Position: pos, Alive: true, Grounded: true},
		Checkpoint: idx,
		Respawn:    geom.V(0, 1, 0),
	}
}

func TestDefaultScriptClaimsEachCheckpointOnce(t *testing.T) {
	rt, err := Load("")
	require.NoError(t, err)

	p, changed := rt.Update(standing(geom.V(1, 0.5, -6), -1), nil)
	assert.False(t, changed)
	assert.Equal(t, geom.V(0, 1, 0), p)

	p, changed = rt.Update(standing(geom.V(1, 0.5, -6), 0), nil)
	require.True(t, changed)
	assert.Equal(t, geom.V(1, 0.5, -6), p)

	_, changed = rt.Update(standing(geom.V(-1, 0.5, -5.5), 0), nil)
	assert.False(t, changed, "claimed checkpoint must not move the respawn point again")

	p, changed = rt.Update(standing(geom.V(0, 1, -15), 1), nil)
	require.True(t, changed)
	assert.Equal(t, geom.V(0, 1, -15), p)

	rt.Reset()
	_, changed = rt.Update(standing(geom.V(1, 0.5, -6), 0), nil)
	assert.True(t, changed)
}

func TestDefaultScriptIgnoresAirborneAndDead(t *testing.T) {
	rt, err := Load(DefaultScript)
	require.NoError(t, err)

	f := standing(geom.V(1, 2, -6), 0)
	f.Snapshot.Grounded = false
	_, changed := rt.Update(f, nil)
	assert.False(t, changed)

	f = standing(geom.V(1, 0.5, -6), 0)
	f.Snapshot.Alive = false
	_, changed = rt.Update(f, nil)
	assert.False(t, changed)
}

func TestOnEventReceivesKinds(t *testing.T) {
	rt, err := Compile("events.tengo", []byte(`
update := func(engine, state) {}
on_event := func(engine, state, name) {
	engine.log("saw", name, engine.tick())
}
`))
	require.NoError(t, err)

	f := standing(geom.V(0, 0, 0), -1)
	f.Snapshot.Tick = 7
	rt.Update(f, []physics.Event{
		{Kind: physics.EventDied, Cause: physics.CauseHazard},
		{Kind: physics.EventLevelComplete},
	})
	assert.Equal(t, []string{"saw died 7", "saw level_complete 7"}, rt.Logs())
	assert.Empty(t, rt.Logs())
}

func TestDefaultScriptLogsCompletion(t *testing.T) {
	rt, err := Load("")
	require.NoError(t, err)

	rt.Update(standing(geom.V(0, 0, 0), -1), []physics.Event{{Kind: physics.EventLevelComplete}})
	assert.Equal(t, []string{"course finished"}, rt.Logs())
}

func TestScriptFailuresKeepRespawn(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "runtime_error", src: `
update := func(engine, state) {
	engine.set_respawn(5, 5, 5)
	x := 1 / 0
}
on_event := func(engine, state, name) {}
`},
		{name: "bad_arguments", src: `
update := func(engine, state) { engine.set_respawn("a", 1, 2) }
on_event := func(engine, state, name) {}
`},
		{name: "wrong_arity", src: `
update := func(engine, state) { engine.set_respawn(1, 2) }
on_event := func(engine, state, name) {}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := Compile(tt.name, []byte(tt.src))
			require.NoError(t, err)

			p, changed := rt.Update(standing(geom.V(3, 0, 3), 0), nil)
			assert.False(t, changed)
			assert.Equal(t, geom.V(0, 1, 0), p)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("broken", []byte(`update := func(`))
	require.Error(t, err)

	_, err = Compile("no_update", []byte(`on_event := func(engine, state, name) {}`))
	require.Error(t, err)

	_, err = Load("missing.tengo")
	require.Error(t, err)
}
