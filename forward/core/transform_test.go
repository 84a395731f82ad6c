package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestPlacement_ModelIdentity(t *testing.T) {
	p := Placement{Scale: mgl32.Vec3{1, 1, 1}}
	assert.True(t, p.Model().ApproxEqualThreshold(mgl32.Ident4(), eps))
}

func TestPlacement_ModelOrder(t *testing.T) {
	// laptop back wall: T(0,.125,-2.5) Rx(90) S(8,1,.25)
	p := Placement{
		Translation: mgl32.Vec3{0, 0.125, -2.5},
		RotationX:   90,
		Scale:       mgl32.Vec3{8, 1, 0.25},
	}
	m := p.Model()

	// scaled corner (.5,0,.5) -> (4,0,.125), Rx(90) maps +z to -y
	got := transformPoint(m, mgl32.Vec3{0.5, 0, 0.5})
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{4, 0, -2.5}, eps), "got %v", got)

	want := mgl32.Translate3D(0, 0.125, -2.5).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90))).
		Mul4(mgl32.HomogRotate3DZ(0)).
		Mul4(mgl32.Scale3D(8, 1, 0.25))
	assert.True(t, m.ApproxEqualThreshold(want, eps))
}

func TestPlacement_FlipY(t *testing.T) {
	base := Placement{
		Translation: mgl32.Vec3{7, 0.5, -1},
		RotationX:   270,
		Scale:       mgl32.Vec3{2, 1, 1},
	}
	flipped := base
	flipped.FlipY = true

	want := base.Model().Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180)))
	// Rz is zero so Ry(180) commutes to the end
	assert.True(t, flipped.Model().ApproxEqualThreshold(want, eps))

	// +X of the quad now maps to the opposite side
	a := transformPoint(base.Model(), mgl32.Vec3{0.5, 0, 0})
	b := transformPoint(flipped.Model(), mgl32.Vec3{0.5, 0, 0})
	assert.InDelta(t, 7+1, a.X(), eps)
	assert.InDelta(t, 7-1, b.X(), eps)
}

func TestPlacement_ModelInGroup(t *testing.T) {
	p := Placement{Translation: mgl32.Vec3{7, 0, -0.5}, Scale: mgl32.Vec3{1, 1, 1}}
	group := mgl32.HomogRotate3DY(mgl32.DegToRad(-20))

	got := transformPoint(p.ModelIn(group), mgl32.Vec3{})
	want := mgl32.Rotate3DY(mgl32.DegToRad(-20)).Mul3x1(mgl32.Vec3{7, 0, -0.5})
	assert.True(t, got.ApproxEqualThreshold(want, eps), "got %v want %v", got, want)
}

func TestRingAngle(t *testing.T) {
	for i := 0; i < 24; i++ {
		assert.InDelta(t, float32(i)*15, RingAngle(24, i), eps)
	}
	assert.InDelta(t, 90, RingAngle(4, 1), eps)
	assert.Zero(t, RingAngle(0, 3))
}

func TestRingModel_Wraps(t *testing.T) {
	center := mgl32.Vec3{-7, 0, 1}
	scale := mgl32.Vec3{1, 1, 1}

	first := RingModel(center, scale, 24, 0)
	wrapped := RingModel(center, scale, 24, 24)
	assert.True(t, first.ApproxEqualThreshold(wrapped, 1e-4))

	// instance 6 is a quarter turn: +Z maps to +X
	quarter := RingModel(center, scale, 24, 6)
	got := transformPoint(quarter, mgl32.Vec3{0, 0, 1})
	assert.True(t, got.ApproxEqualThreshold(center.Add(mgl32.Vec3{1, 0, 0}), eps), "got %v", got)
}

func TestRingModel_Scale(t *testing.T) {
	m := RingModel(mgl32.Vec3{-6, 1.5, -2.5}, mgl32.Vec3{0.3, 1.25, 0.3}, 24, 0)
	got := transformPoint(m, mgl32.Vec3{0, 1, 1})
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{-6, 2.75, -2.2}, eps), "got %v", got)
}

func TestMarkerModel(t *testing.T) {
	light := mgl32.Vec3{0, 6, 3}

	front := MarkerModel(light, MarkerFaces[0])
	center := transformPoint(front, mgl32.Vec3{})
	assert.True(t, center.ApproxEqualThreshold(mgl32.Vec3{0, 6, 3 + 0.5*MarkerSize}, eps))

	// every face centre sits half a marker away from the light
	for i, face := range MarkerFaces {
		c := transformPoint(MarkerModel(light, face), mgl32.Vec3{})
		assert.InDelta(t, 0.5*MarkerSize, c.Sub(light).Len(), eps, "face %d", i)
	}

	// top face is tilted flat: the quad's normal (+Z) points up
	top := MarkerModel(light, MarkerFaces[4])
	n := top.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3().Normalize()
	assert.InDelta(t, 1, n.Y(), eps)
}

func TestNormalMatrix(t *testing.T) {
	m := Placement{
		Translation: mgl32.Vec3{1, 2, 3},
		RotationX:   30,
		Scale:       mgl32.Vec3{2, 1, 4},
	}.Model()
	nm := NormalMatrix(m)

	// normals stay perpendicular to transformed tangents
	tangent := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	normal := nm.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	assert.InDelta(t, 0, tangent.Dot(normal), eps)
}
