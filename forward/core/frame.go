package core

import "github.com/go-gl/mathgl/mgl32"

// Frame is everything a backend needs to draw one image besides the draw list.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	Width      int
	Height     int
	Lights     []PointLight
}

// Empty reports a zero-area framebuffer (minimised window).
func (f *Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

func (f *Frame) Aspect() float32 {
	if f.Height <= 0 {
		return 0
	}
	return float32(f.Width) / float32(f.Height)
}

// Texture is a decoded RGBA8 image, rows top to bottom.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pix    []uint8
}
