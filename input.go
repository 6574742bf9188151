package main

import (
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockrunner/physics"
)

// turnSpeed is how fast Q/E and the right stick swing the heading, rad/s.
const turnSpeed = 2.5

// Input holds the current frame's movement state.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// Stick is the left stick with Y pointing forward.
	Stick cp.Vector
	// Heading is the camera yaw in radians.
	Heading float64

	RestartPressed bool
	PausePressed   bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard and the first gamepad.
func (i *Input) Update(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	i.Forward = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	i.Backward = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	i.Left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	i.Right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)

	turn := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		turn += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		turn -= 1
	}

	var gpJump, gpRestart, gpPause bool
	i.Stick = cp.Vector{}
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 {
		gid := ids[0]

		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		// stick up reads negative
		i.Stick = cp.Vector{X: lx, Y: -ly}

		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > physics.StickDeadzone {
			turn -= rx
		}

		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpRestart = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.Heading = math.Remainder(i.Heading+turn*turnSpeed*dt, 2*math.Pi)

	// Single-frame press so holding space does not bunny hop on landing.
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || gpJump
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpRestart
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) || gpPause
}

// Intent converts the polled state for the controller.
func (i *Input) Intent() physics.Intent {
	return physics.Intent{
		Forward:  i.Forward,
		Backward: i.Backward,
		Left:     i.Left,
		Right:    i.Right,
		Jump:     i.JumpPressed,
		Stick:    i.Stick,
		Heading:  i.Heading,
	}
}
