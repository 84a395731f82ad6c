package deskscene

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultWindowTitle  = "Main Window"
)

// ClientAPI is the graphics API the window is created for.
type ClientAPI int

const (
	// ClientAPINone leaves the surface to WebGPU.
	ClientAPINone ClientAPI = iota
	ClientAPIOpenGL
)

func (a ClientAPI) String() string {
	switch a {
	case ClientAPINone:
		return "none"
	case ClientAPIOpenGL:
		return "opengl"
	default:
		return "unknown"
	}
}

type WindowState struct {
	windowGlfw *glfw.Window

	WindowWidth       int
	WindowHeight      int
	FramebufferWidth  int
	FramebufferHeight int
	Title             string
	API               ClientAPI
}

// PlatformWindowModule creates the single glfw window shared by input and the
// renderer. Install is idempotent: an existing WindowState is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
	API    ClientAPI
}

// NewPlatformWindow fills in defaults for zero width, height and title.
func NewPlatformWindow(width, height int, title string, api ClientAPI) *PlatformWindowModule {
	if width <= 0 {
		width = DefaultWindowWidth
	}
	if height <= 0 {
		height = DefaultWindowHeight
	}
	if title == "" {
		title = DefaultWindowTitle
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
		API:    api,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title, m.API)
	if err != nil {
		cmd.Fail(fmt.Errorf("create window: %w", err))
		return
	}
	app.addResources(ws)
	cmd.OnShutdown(func() {
		ws.windowGlfw.Destroy()
		glfw.Terminate()
	})
	app.Logger().Infof("Created window (%dx%d) '%s' for %s", ws.WindowWidth, ws.WindowHeight, ws.Title, ws.API)

	app.UseSystem(
		System(windowSystem).
			InStage(PostUpdate),
	)
}

func createWindowState(width, height int, title string, api ClientAPI) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	switch api {
	case ClientAPIOpenGL:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	fbWidth, fbHeight := win.GetFramebufferSize()
	return &WindowState{
		windowGlfw:        win,
		WindowWidth:       width,
		WindowHeight:      height,
		FramebufferWidth:  fbWidth,
		FramebufferHeight: fbHeight,
		Title:             title,
		API:               api,
	}, nil
}

func windowSystem(s *WindowState, cmd *Commands) {
	if s.windowGlfw.ShouldClose() {
		cmd.Exit()
	}
	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()
	s.FramebufferWidth, s.FramebufferHeight = s.windowGlfw.GetFramebufferSize()
}
