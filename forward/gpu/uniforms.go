package gpu

import (
	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/gekko3d/deskscene/forward/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform structs mirror the WGSL declarations in lit.wgsl and lamp.wgsl.
// Every member is 16-byte aligned so the Go layout equals the std140-like one.

type lightUniform struct {
	Position [4]float32
	Color    [4]float32
	Shading  [4]float32
}

type cameraUniform struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        [4]float32
	Lights     [shaders.LightCount]lightUniform
}

type litItemUniform struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat4
	Tint   [4]float32
}

type lampItemUniform struct {
	Model mgl32.Mat4
	Color [4]float32
}

// depthRemap maps GL clip depth (-w..w) to WebGPU clip depth (0..w):
// z' = 0.5z + 0.5w. Column-major.
var depthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// clipProjection converts a GL-convention projection for WebGPU.
func clipProjection(projection mgl32.Mat4) mgl32.Mat4 {
	return depthRemap.Mul4(projection)
}

func newCameraUniform(frame *core.Frame) cameraUniform {
	u := cameraUniform{
		View:       frame.View,
		Projection: clipProjection(frame.Projection),
		Eye:        [4]float32{frame.Eye.X(), frame.Eye.Y(), frame.Eye.Z(), 1},
	}
	for i, l := range frame.Lights {
		if i >= len(u.Lights) {
			break
		}
		u.Lights[i] = lightUniform{
			Position: [4]float32{l.Position.X(), l.Position.Y(), l.Position.Z(), 1},
			Color:    [4]float32{l.Color.X(), l.Color.Y(), l.Color.Z(), 1},
			Shading:  [4]float32{l.Shading.Ambient, l.Shading.Diffuse, l.Shading.Specular, l.Shading.Shininess},
		}
	}
	return u
}

func newLitItemUniform(item *scene.DrawItem) litItemUniform {
	t := item.Material.Tint
	return litItemUniform{
		Model:  item.Model,
		Normal: core.NormalMatrix(item.Model),
		Tint:   [4]float32{t.X(), t.Y(), t.Z(), 1},
	}
}

func newLampItemUniform(item *scene.DrawItem) lampItemUniform {
	c := item.LampColor
	return lampItemUniform{
		Model: item.Model,
		Color: [4]float32{c.X(), c.Y(), c.Z(), 1},
	}
}
