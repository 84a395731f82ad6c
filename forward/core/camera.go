package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionMode selects the projection formula. It never affects camera state.
type ProjectionMode uint8

const (
	ProjectionPerspective ProjectionMode = iota
	ProjectionOrthographic
)

func (m ProjectionMode) Toggle() ProjectionMode {
	if m == ProjectionPerspective {
		return ProjectionOrthographic
	}
	return ProjectionPerspective
}

func (m ProjectionMode) String() string {
	switch m {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

const (
	MouseSensitivity float32 = 0.1
	PitchLimitDeg    float32 = 89.0

	MinSpeed     float32 = 1.0
	MaxSpeed     float32 = 20.0
	DefaultSpeed float32 = 10.0

	FieldOfViewDeg float32 = 45.0
	NearPlane      float32 = 0.1
	FarPlane       float32 = 100.0
	OrthoExtent    float32 = 10.0

	StartYawDeg   float32 = -90.0
	StartPitchDeg float32 = 0.0
)

var (
	WorldUp       = mgl32.Vec3{0, 1, 0}
	StartPosition = mgl32.Vec3{0, 3, 12}
)

// CameraState is a fly camera. Yaw and Pitch are radians; Front, Right and Up
// are recomputed from them whenever they change.
//
// Right is worldUp x front, which points to the viewer's left. Movement keeps
// that convention: DirectionLeft moves along +Right.
type CameraState struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Speed    float32

	// ResetAngles makes Reset restore Yaw and Pitch along with the basis.
	// When false, Reset leaves the angles alone and the next mouse move
	// rebuilds the basis from them.
	ResetAngles bool

	start        cameraPose
	cursorSeeded bool
	lastX, lastY float64
}

type cameraPose struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	yaw      float32
	pitch    float32
}

func NewCameraState() *CameraState {
	c := &CameraState{
		Position:    StartPosition,
		Yaw:         mgl32.DegToRad(StartYawDeg),
		Pitch:       mgl32.DegToRad(StartPitchDeg),
		Speed:       DefaultSpeed,
		ResetAngles: true,
	}
	c.updateBasis()
	c.start = cameraPose{
		position: c.Position,
		front:    c.Front,
		right:    c.Right,
		up:       c.Up,
		yaw:      c.Yaw,
		pitch:    c.Pitch,
	}
	return c
}

func (c *CameraState) updateBasis() {
	cy, sy := math32.Cos(c.Yaw), math32.Sin(c.Yaw)
	cp, sp := math32.Cos(c.Pitch), math32.Sin(c.Pitch)

	c.Front = mgl32.Vec3{cy * cp, sp, sy * cp}.Normalize()
	c.Right = WorldUp.Cross(c.Front).Normalize()
	c.Up = c.Front.Cross(c.Right).Normalize()
}

// ApplyMouseDelta turns the camera by dx/dy cursor units.
func (c *CameraState) ApplyMouseDelta(dx, dy float32) {
	limit := mgl32.DegToRad(PitchLimitDeg)

	c.Yaw += mgl32.DegToRad(dx * MouseSensitivity)
	c.Pitch = mgl32.Clamp(c.Pitch+mgl32.DegToRad(dy*MouseSensitivity), -limit, limit)

	c.updateBasis()
}

// ApplyCursor feeds an absolute cursor position. The first sample only sets
// the baseline. Screen y grows downwards, so moving the cursor up pitches up.
// Returns true if the orientation changed.
func (c *CameraState) ApplyCursor(x, y float64) bool {
	if !c.cursorSeeded {
		c.lastX, c.lastY = x, y
		c.cursorSeeded = true
		return false
	}

	dx := x - c.lastX
	dy := c.lastY - y
	c.lastX, c.lastY = x, y

	if dx == 0 && dy == 0 {
		return false
	}
	c.ApplyMouseDelta(float32(dx), float32(dy))
	return true
}

func (c *CameraState) ApplyScroll(dy float32) {
	c.Speed = mgl32.Clamp(c.Speed+dy, MinSpeed, MaxSpeed)
}

func (c *CameraState) ApplyMovement(dir Direction, dt float32) {
	step := c.Speed * dt

	switch dir {
	case DirectionForward:
		c.Position = c.Position.Add(c.Front.Mul(step))
	case DirectionBackward:
		c.Position = c.Position.Sub(c.Front.Mul(step))
	case DirectionLeft:
		c.Position = c.Position.Add(c.Right.Mul(step))
	case DirectionRight:
		c.Position = c.Position.Sub(c.Right.Mul(step))
	case DirectionUp:
		c.Position = c.Position.Add(c.Up.Mul(step))
	case DirectionDown:
		c.Position = c.Position.Sub(c.Up.Mul(step))
	}
}

// Reset restores the startup position and basis. Speed and the cursor
// baseline are kept.
func (c *CameraState) Reset() {
	c.Position = c.start.position
	c.Front = c.start.front
	c.Right = c.start.right
	c.Up = c.start.up

	if c.ResetAngles {
		c.Yaw = c.start.yaw
		c.Pitch = c.start.pitch
	}
}

func (c *CameraState) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix builds the clip transform for the given aspect ratio
// (width / height). Degenerate aspect ratios fall back to 1.
func (c *CameraState) ProjectionMatrix(aspect float32, mode ProjectionMode) mgl32.Mat4 {
	return Projection(aspect, mode)
}

func Projection(aspect float32, mode ProjectionMode) mgl32.Mat4 {
	if aspect <= 0 || math32.IsNaN(aspect) || math32.IsInf(aspect, 0) {
		aspect = 1
	}

	if mode == ProjectionOrthographic {
		return mgl32.Ortho(-OrthoExtent, OrthoExtent, -OrthoExtent, OrthoExtent, NearPlane, FarPlane)
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfViewDeg), aspect, NearPlane, FarPlane)
}
