package deskscene

import (
	"testing"
	"time"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCameraApp(t *testing.T, keepAngles bool) (*App, *Input, *Time, *core.CameraState, *FrameState) {
	t.Helper()

	app := NewAppBuilder().
		UseModule(FrameModule{}, FlyingCameraModule{KeepAnglesOnReset: keepAngles}).
		Build()
	require.NoError(t, app.Err())

	input := &Input{}
	clock := &Time{Dt: 100 * time.Millisecond}
	app.addResources(input, clock)

	cam, ok := Resource[core.CameraState](app)
	require.True(t, ok)
	frame, ok := Resource[FrameState](app)
	require.True(t, ok)
	return app, input, clock, cam, frame
}

func TestFlyingCamera_Movement(t *testing.T) {
	app, input, _, cam, _ := newCameraApp(t, false)

	input.update(KeyW, true)
	app.callSystem(flyingCameraSystem)

	// speed 10 * 0.1 s along front (0,0,-1)
	want := core.StartPosition.Add(mgl32.Vec3{0, 0, -1})
	assert.True(t, cam.Position.ApproxEqualThreshold(want, 1e-5), "got %v", cam.Position)

	input.update(KeyW, false)
	input.update(KeySpace, true)
	input.update(KeyA, true)
	app.callSystem(flyingCameraSystem)

	// Left moves along +right, which is (-1,0,0) at startup.
	want = want.Add(mgl32.Vec3{-1, 1, 0})
	assert.True(t, cam.Position.ApproxEqualThreshold(want, 1e-5), "got %v", cam.Position)
}

func TestFlyingCamera_CursorAndScroll(t *testing.T) {
	app, input, _, cam, _ := newCameraApp(t, false)

	input.MouseX, input.MouseY = 400, 300
	app.callSystem(flyingCameraSystem)
	assert.Equal(t, mgl32.DegToRad(core.StartYawDeg), cam.Yaw, "first sample only seeds")

	input.MouseX = 500
	input.ScrollY = 5
	app.callSystem(flyingCameraSystem)
	assert.InDelta(t, mgl32.DegToRad(core.StartYawDeg+10), cam.Yaw, 1e-6)
	assert.Equal(t, float32(15), cam.Speed)
}

func TestFlyingCamera_ProjectionToggle(t *testing.T) {
	app, input, _, _, frame := newCameraApp(t, false)

	input.update(KeyP, true)
	app.callSystem(flyingCameraSystem)
	assert.Equal(t, core.ProjectionOrthographic, frame.Mode)

	input.update(KeyP, true)
	app.callSystem(flyingCameraSystem)
	assert.Equal(t, core.ProjectionOrthographic, frame.Mode, "holding P toggles once")

	input.update(KeyP, false)
	input.update(KeyP, true)
	app.callSystem(flyingCameraSystem)
	assert.Equal(t, core.ProjectionPerspective, frame.Mode)
}

func TestFlyingCamera_Reset(t *testing.T) {
	for _, keep := range []bool{false, true} {
		app, input, _, cam, _ := newCameraApp(t, keep)
		cam.ApplyMouseDelta(200, 100)
		cam.Position = mgl32.Vec3{5, 5, 5}

		input.update(KeyF, true)
		app.callSystem(flyingCameraSystem)

		assert.Equal(t, core.StartPosition, cam.Position)
		assert.True(t, cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5), "front %v", cam.Front)
		if keep {
			assert.NotEqual(t, mgl32.DegToRad(core.StartYawDeg), cam.Yaw)
		} else {
			assert.Equal(t, mgl32.DegToRad(core.StartYawDeg), cam.Yaw)
		}
	}
}

func TestFlyingCamera_EscapeExits(t *testing.T) {
	app, input, _, cam, _ := newCameraApp(t, false)

	input.update(KeyEscape, true)
	input.update(KeyW, true)
	app.callSystem(flyingCameraSystem)

	assert.True(t, app.exit)
	assert.Equal(t, core.StartPosition, cam.Position)
}
