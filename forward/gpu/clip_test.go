package gpu

import (
	"testing"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipProjection_NearFarPlanes(t *testing.T) {
	for _, mode := range []core.ProjectionMode{core.ProjectionPerspective, core.ProjectionOrthographic} {
		proj := clipProjection(core.Projection(4.0/3.0, mode))

		near := proj.Mul4x1(mgl32.Vec4{0, 0, -core.NearPlane, 1})
		far := proj.Mul4x1(mgl32.Vec4{0, 0, -core.FarPlane, 1})

		assert.InDelta(t, 0, near.Z()/near.W(), 1e-5, "%s near", mode)
		assert.InDelta(t, 1, far.Z()/far.W(), 1e-5, "%s far", mode)
	}
}

// Every vertex of the desk must survive WebGPU's 0 <= z <= w depth clip from
// the startup camera, in both projection modes.
func TestCameraUniform_DeskInsideDepthRange(t *testing.T) {
	items, err := scene.Build(scene.NewDesk(), scene.Materials(scene.DeskAssets()))
	require.NoError(t, err)
	meshes := core.StandardMeshes()
	cam := core.NewCameraState()

	for _, mode := range []core.ProjectionMode{core.ProjectionPerspective, core.ProjectionOrthographic} {
		frame := &core.Frame{
			View:       cam.ViewMatrix(),
			Projection: core.Projection(4.0/3.0, mode),
			Eye:        cam.Position,
		}
		u := newCameraUniform(frame)
		viewProj := u.Projection.Mul4(u.View)

		total, inside, rawInside := 0, 0, 0
		for _, item := range items {
			mvp := viewProj.Mul4(item.Model)
			raw := frame.Projection.Mul4(frame.View).Mul4(item.Model)
			for _, v := range meshes[item.Mesh].Vertices {
				p := mgl32.Vec4{v.Position[0], v.Position[1], v.Position[2], 1}
				total++

				clip := mvp.Mul4x1(p)
				if clip.Z() >= 0 && clip.Z() <= clip.W() {
					inside++
				}
				rc := raw.Mul4x1(p)
				if rc.Z() >= 0 && rc.Z() <= rc.W() {
					rawInside++
				}
			}
		}

		require.NotZero(t, total)
		assert.Equal(t, total, inside, "%s: vertices inside depth range", mode)
		if mode == core.ProjectionOrthographic {
			assert.Less(t, rawInside, total, "GL depth range alone clips the desk")
		}
	}
}
