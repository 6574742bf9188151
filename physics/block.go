package physics

import (
	"fmt"
	"strings"

	"github.com/milk9111/blockrunner/geom"
)

// BlockKind decides how a box responds to the actor.
type BlockKind uint8

const (
	// BlockSolid supports standing and blocks horizontal passage.
	BlockSolid BlockKind = iota
	// BlockGoal completes the level on contact and does not block.
	BlockGoal
	// BlockHazard kills on contact and does not block.
	BlockHazard
)

func (k BlockKind) String() string {
	switch k {
	case BlockSolid:
		return "solid"
	case BlockGoal:
		return "goal"
	case BlockHazard:
		return "hazard"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint8(k))
	}
}

func ParseBlockKind(s string) (BlockKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid", "platform", "floor":
		return BlockSolid, nil
	case "goal", "finish":
		return BlockGoal, nil
	case "hazard", "kill", "lava":
		return BlockHazard, nil
	}
	return 0, fmt.Errorf("physics: unknown block kind %q", s)
}

// Box is one piece of level geometry for the current tick.
type Box struct {
	geom.AABB
	Kind BlockKind
}

func Solid(min, max geom.Vec3) Box  { return Box{AABB: geom.AABB{Min: min, Max: max}, Kind: BlockSolid} }
func Goal(min, max geom.Vec3) Box   { return Box{AABB: geom.AABB{Min: min, Max: max}, Kind: BlockGoal} }
func Hazard(min, max geom.Vec3) Box { return Box{AABB: geom.AABB{Min: min, Max: max}, Kind: BlockHazard} }

func (b *Box) solid() bool {
	return b.Kind == BlockSolid && b.Valid()
}
