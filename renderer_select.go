package deskscene

import (
	"errors"
	"fmt"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/gpu"
	"github.com/gekko3d/deskscene/forward/opengl"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RendererName identifies a concrete renderer backend.
// Keep names aligned with ensureSingleRenderer tags.
type RendererName string

const (
	RendererWGPU RendererName = "wgpu"
	RendererGL   RendererName = "gl"
)

func ParseRendererName(s string) (RendererName, error) {
	switch n := RendererName(s); n {
	case RendererWGPU, RendererGL:
		return n, nil
	default:
		return "", fmt.Errorf("unknown renderer %q (want %s or %s)", s, RendererWGPU, RendererGL)
	}
}

// ClientAPI is the window API the backend needs.
func (n RendererName) ClientAPI() ClientAPI {
	if n == RendererGL {
		return ClientAPIOpenGL
	}
	return ClientAPINone
}

// RenderBackend uploads static geometry once and draws the draw list each frame.
type RenderBackend interface {
	Upload(meshes []core.Mesh, textures []core.Texture) error
	Draw(frame *core.Frame, items []scene.DrawItem) error
	Release()
}

type RendererState struct {
	Name    RendererName
	Backend RenderBackend
}

var newBackend = func(name RendererName, window *glfw.Window) (RenderBackend, error) {
	switch name {
	case RendererWGPU:
		r, err := gpu.NewRenderer(window)
		if err != nil {
			return nil, err
		}
		return r, nil
	case RendererGL:
		r, err := opengl.NewRenderer(window)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", name)
	}
}

// RendererModule creates the named backend on the shared window, uploads the
// draw list's meshes and the loaded textures, and draws every frame in Render.
type RendererModule struct {
	Name RendererName
}

func (m RendererModule) Install(app *App, cmd *Commands) {
	name := m.Name
	if name == "" {
		name = RendererWGPU
	}
	ensureSingleRenderer(app, string(name))

	ws, ok := Resource[WindowState](app)
	if !ok {
		cmd.Fail(fmt.Errorf("%s renderer: no window", name))
		return
	}
	if ws.API != name.ClientAPI() {
		cmd.Fail(fmt.Errorf("%s renderer: window was created for %s, need %s", name, ws.API, name.ClientAPI()))
		return
	}
	list, ok := Resource[DrawList](app)
	if !ok {
		cmd.Fail(fmt.Errorf("%s renderer: no draw list", name))
		return
	}
	server, ok := Resource[AssetServer](app)
	if !ok {
		cmd.Fail(fmt.Errorf("%s renderer: no asset server", name))
		return
	}

	backend, err := newBackend(name, ws.windowGlfw)
	if err != nil {
		cmd.Fail(fmt.Errorf("%s renderer: %w", name, err))
		return
	}
	cmd.OnShutdown(backend.Release)

	if err := backend.Upload(list.Meshes, server.Textures()); err != nil {
		cmd.Fail(fmt.Errorf("%s renderer: upload: %w", name, err))
		return
	}

	cmd.AddResources(&RendererState{Name: name, Backend: backend})
	app.Logger().Infof("Renderer selected: %s", name)

	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func renderSystem(r *RendererState, frame *FrameState, list *DrawList, cmd *Commands) {
	err := r.Backend.Draw(&frame.Frame, list.Items)
	switch {
	case err == nil:
	case errors.Is(err, gpu.ErrFrameSkipped):
		cmd.Logger().Debugf("%v", err)
	default:
		cmd.Fail(fmt.Errorf("%s renderer: draw: %w", r.Name, err))
	}
}
