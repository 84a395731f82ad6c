package deskscene

import (
	"github.com/gekko3d/deskscene/forward/core"
)

// FrameState is recomputed in PreRender from the camera and the framebuffer.
// Mode is the only field that survives between frames besides Lights.
type FrameState struct {
	core.Frame
	Mode core.ProjectionMode
}

type FrameModule struct {
	Mode core.ProjectionMode
}

func (m FrameModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&FrameState{Mode: m.Mode})
	app.UseSystem(
		System(frameSystem).
			InStage(PreRender),
	)
}

func frameSystem(ws *WindowState, cam *core.CameraState, frame *FrameState) {
	frame.update(cam, ws.FramebufferWidth, ws.FramebufferHeight)
}

func (f *FrameState) update(cam *core.CameraState, width, height int) {
	f.Width = width
	f.Height = height
	f.Eye = cam.Position
	f.View = cam.ViewMatrix()
	f.Projection = cam.ProjectionMatrix(f.Aspect(), f.Mode)
}
