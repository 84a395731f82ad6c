package deskscene

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyW int = iota
	KeyA
	KeyS
	KeyD
	KeyF
	KeyP
	KeySpace
	KeyEscape
	KeyLeftControl
	keyCount
)

type InputModule struct{}

// Input is the keyboard and mouse state sampled once per frame.
type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// Absolute cursor position; the cursor is captured so it is unbounded.
	MouseX, MouseY float64

	// ScrollY is the vertical scroll received since the previous frame.
	ScrollY       float64
	pendingScroll float64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	ws, ok := Resource[WindowState](app)
	if !ok {
		cmd.Fail(errors.New("input: no window"))
		return
	}

	input := &Input{}
	cmd.AddResources(input)

	ws.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	ws.windowGlfw.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		input.addScroll(yoff)
	})

	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.update(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()
	input.flushScroll()
}

// update records this frame's state of key and derives the edges.
func (input *Input) update(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

func (input *Input) addScroll(dy float64) {
	input.pendingScroll += dy
}

func (input *Input) flushScroll() {
	input.ScrollY = input.pendingScroll
	input.pendingScroll = 0
}

var keyToGlfw = map[int]glfw.Key{
	KeyW:           glfw.KeyW,
	KeyA:           glfw.KeyA,
	KeyS:           glfw.KeyS,
	KeyD:           glfw.KeyD,
	KeyF:           glfw.KeyF,
	KeyP:           glfw.KeyP,
	KeySpace:       glfw.KeySpace,
	KeyEscape:      glfw.KeyEscape,
	KeyLeftControl: glfw.KeyLeftControl,
}
