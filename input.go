package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggered/common"
	"github.com/milk9111/triggered/entity"
)

const stickDeadzone = 0.3

// Input polls keyboard, mouse and the first gamepad once per tick.
type Input struct {
	state entity.Input

	// Gamepad aim is kept between ticks so releasing the stick keeps facing.
	padAim    cp.Vector
	padAiming bool
	lastMouse [2]int
}

func NewInput() *Input {
	return &Input{}
}

// State is the intent gathered by the last Update.
func (i *Input) State() entity.Input {
	return i.state
}

func heldFor(keys ...ebiten.Key) int {
	best := 0
	for _, k := range keys {
		d := inpututil.KeyPressDuration(k)
		if d > 0 && (best == 0 || d < best) {
			best = d
		}
	}
	return best
}

// Update polls devices. player is the player's world position and is used to
// turn the right stick into an aim point.
func (i *Input) Update(camera *Camera, player cp.Vector) {
	var in entity.Input

	in.Move = cp.Vector{
		X: common.Axis(heldFor(ebiten.KeyA, ebiten.KeyLeft), heldFor(ebiten.KeyD, ebiten.KeyRight)),
		Y: common.Axis(heldFor(ebiten.KeyW, ebiten.KeyUp), heldFor(ebiten.KeyS, ebiten.KeyDown)),
	}
	in.Run = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	mx, my := ebiten.CursorPosition()
	// Mouse movement takes aim back from the stick.
	if i.lastMouse != [2]int{mx, my} {
		i.padAiming = false
		i.lastMouse = [2]int{mx, my}
	}
	in.Aim = camera.ScreenToWorld(float64(mx), float64(my))
	in.HasAim = true

	in.Fire = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.FireHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 {
		gid := ids[0]

		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -stickDeadzone || lx > stickDeadzone || ly < -stickDeadzone || ly > stickDeadzone {
			in.Move = cp.Vector{X: lx, Y: ly}
		}

		in.Run = in.Run || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftStick)

		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
		if rx*rx+ry*ry > stickDeadzone*stickDeadzone {
			i.padAim = common.Normalize(cp.Vector{X: rx, Y: ry})
			i.padAiming = true
		}
		if i.padAiming {
			in.Aim = player.Add(i.padAim.Mult(100))
		}

		in.Fire = in.Fire || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		in.FireHeld = in.FireHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	i.state = in
}
