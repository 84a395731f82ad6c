package deskscene

import (
	"github.com/gekko3d/deskscene/forward/core"
)

// FlyingCameraModule adds a core.CameraState resource driven by Input.
//
// W/S move forward and back, A/D sideways, Space and LeftControl up and down.
// F resets the camera, P toggles the projection and Escape exits.
type FlyingCameraModule struct {
	// KeepAnglesOnReset makes F restore only position and basis; yaw and
	// pitch stay where the mouse left them.
	KeepAnglesOnReset bool
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewCameraState()
	cam.ResetAngles = !m.KeepAnglesOnReset
	cmd.AddResources(cam)

	app.UseSystem(
		System(flyingCameraSystem).
			InStage(Update),
	)
}

var movementKeys = []struct {
	key int
	dir core.Direction
}{
	{KeyW, core.DirectionForward},
	{KeyS, core.DirectionBackward},
	{KeyA, core.DirectionLeft},
	{KeyD, core.DirectionRight},
	{KeySpace, core.DirectionUp},
	{KeyLeftControl, core.DirectionDown},
}

func flyingCameraSystem(input *Input, t *Time, cam *core.CameraState, frame *FrameState, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Exit()
		return
	}

	if input.JustPressed[KeyP] {
		frame.Mode = frame.Mode.Toggle()
		cmd.Logger().Debugf("projection: %s", frame.Mode)
	}
	if input.Pressed[KeyF] {
		cam.Reset()
	}

	cam.ApplyCursor(input.MouseX, input.MouseY)
	if input.ScrollY != 0 {
		cam.ApplyScroll(float32(input.ScrollY))
	}

	dt := t.Seconds()
	for _, m := range movementKeys {
		if input.Pressed[m.key] {
			cam.ApplyMovement(m.dir, dt)
		}
	}
}
