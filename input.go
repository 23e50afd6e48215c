package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds this frame's player and sandbox commands.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// SprintHeld is true while the sprint key is held.
	SprintHeld bool
	// FirePressed is true on the frame a shot is requested.
	FirePressed bool
	// GrenadePressed is true on the frame a grenade is requested.
	GrenadePressed bool

	PausePressed   bool
	RestartPressed bool
	DebugPressed   bool
	CopyPressed    bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	var gpJump, gpSprint, gpFire, gpGrenade, gpPause bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}

		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpSprint = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
		gpFire = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpGrenade = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = moveX
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || gpJump
	i.SprintHeld = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || gpSprint
	i.FirePressed = inpututil.IsKeyJustPressed(ebiten.KeyX) || gpFire
	i.GrenadePressed = inpututil.IsKeyJustPressed(ebiten.KeyG) || gpGrenade

	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	i.CopyPressed = inpututil.IsKeyJustPressed(ebiten.KeyC)
}
