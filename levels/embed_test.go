package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/blockrunner/geom"
	"github.com/milk9111/blockrunner/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedTutorial(t *testing.T) {
	c, err := LoadLevelFromFS(Default)
	require.NoError(t, err)

	assert.Equal(t, "tutorial", c.Name)
	assert.Equal(t, geom.V(0, 0.5, 0), c.Spawn)
	assert.False(t, c.FloorEnabled(true))
	assert.Len(t, c.Boxes(), 6)
	assert.Zero(t, c.Skipped)
	assert.Len(t, c.Checkpoints, 2)

	kinds := map[physics.BlockKind]int{}
	for _, b := range c.Boxes() {
		kinds[b.Kind]++
	}
	assert.Equal(t, 4, kinds[physics.BlockSolid])
	assert.Equal(t, 1, kinds[physics.BlockGoal])
	assert.Equal(t, 1, kinds[physics.BlockHazard])
}

func TestParseSkipsDegenerateBlocks(t *testing.T) {
	c, err := Parse("flat.json", []byte(`{
		"spawn": {"x": 0, "y": 1, "z": 0},
		"blocks": [
			{"kind": "solid", "min": {"x": -1, "y": -1, "z": -1}, "max": {"x": 1, "y": 0, "z": 1}},
			{"kind": "solid", "min": {"x": 2, "y": 0, "z": 2}, "max": {"x": 2, "y": 1, "z": 3}},
			{"kind": "goal", "min": {"x": 5, "y": 1, "z": 5}, "max": {"x": 4, "y": 2, "z": 6}}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "flat", c.Name)
	assert.Len(t, c.Boxes(), 1)
	assert.Equal(t, 2, c.Skipped)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		is   error
	}{
		{name: "bad_json", data: `{"blocks": [`},
		{name: "unknown_kind", data: `{"blocks": [{"kind": "bouncy", "min": {"x": 0, "y": 0, "z": 0}, "max": {"x": 1, "y": 1, "z": 1}}]}`},
		{name: "no_blocks_no_floor", data: `{"floor": false, "blocks": []}`, is: ErrNoBlocks},
		{name: "only_degenerate", data: `{"blocks": [{"min": {"x": 0, "y": 0, "z": 0}, "max": {"x": 0, "y": 0, "z": 0}}]}`, is: ErrNoBlocks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name+".json", []byte(tt.data))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestFloorOnlyCourse(t *testing.T) {
	c, err := Parse("open.json", []byte(`{"floor": true, "spawn": {"x": 0, "y": 2, "z": 0}}`))
	require.NoError(t, err)
	assert.Empty(t, c.Boxes())

	cfg := c.Apply(physics.DefaultConfig())
	assert.True(t, cfg.Floor)
	assert.Equal(t, geom.V(0, 2, 0), cfg.Spawn)
	assert.Equal(t, physics.DefaultConfig().KillY, cfg.KillY)
}

func TestApplyOverridesFloorAndKillPlane(t *testing.T) {
	c, err := LoadLevelFromFS(Default)
	require.NoError(t, err)

	cfg := c.Apply(physics.DefaultConfig())
	assert.False(t, cfg.Floor)
	assert.Equal(t, -10.0, cfg.KillY)
	assert.Equal(t, c.Spawn, cfg.Spawn)
}

func TestCheckpointAt(t *testing.T) {
	c, err := LoadLevelFromFS(Default)
	require.NoError(t, err)

	assert.Equal(t, -1, c.CheckpointAt(geom.V(0, 0, 0)))
	assert.Equal(t, 0, c.CheckpointAt(geom.V(0, 0.5, -6)))
	assert.Equal(t, 1, c.CheckpointAt(geom.V(0, 1, -15)))
	assert.Equal(t, -1, c.CheckpointAt(geom.V(0, 3.5, -15)))
}

func TestBoundsCoversBlocks(t *testing.T) {
	c, err := LoadLevelFromFS(Default)
	require.NoError(t, err)

	bb := c.Bounds()
	assert.Equal(t, -3.0, bb.L)
	assert.Equal(t, 3.0, bb.R)
	assert.Equal(t, -22.0, bb.B)
	assert.Equal(t, 3.0, bb.T)
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tutorial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "local", "floor": true}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "local", c.Name)

	c, err = Load(filepath.Join(dir, "missing", "tutorial.json"))
	require.NoError(t, err)
	assert.Equal(t, "tutorial", c.Name)
}
