package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Placement positions one instance of a mesh. Angles are degrees.
type Placement struct {
	Translation mgl32.Vec3
	RotationX   float32
	RotationZ   float32
	Scale       mgl32.Vec3
	// FlipY turns the instance 180 degrees about Y between the X and Z
	// rotations so a back face shows its texture outwards.
	FlipY bool
}

// Model composes T * Rx * [Ry(180)] * Rz * S.
func (p Placement) Model() mgl32.Mat4 {
	m := mgl32.Translate3D(p.Translation.X(), p.Translation.Y(), p.Translation.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(p.RotationX)))
	if p.FlipY {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180)))
	}
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(p.RotationZ)))
	return m.Mul4(mgl32.Scale3D(p.Scale.X(), p.Scale.Y(), p.Scale.Z()))
}

// ModelIn applies a group transform before the placement's own transform.
func (p Placement) ModelIn(group mgl32.Mat4) mgl32.Mat4 {
	return group.Mul4(p.Model())
}

// RingAngle is the Y rotation in degrees of instance i of a ring of count.
func RingAngle(count, i int) float32 {
	if count <= 0 {
		return 0
	}
	return float32(i) * (360.0 / float32(count))
}

// RingModel places instance i of count evenly around the Y axis through center.
func RingModel(center, scale mgl32.Vec3, count, i int) mgl32.Mat4 {
	m := mgl32.Translate3D(center.X(), center.Y(), center.Z())
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(RingAngle(count, i))))
	return m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// MarkerFace is one side of the small cube drawn at a light position.
type MarkerFace struct {
	Offset   mgl32.Vec3
	Rotation float32
	// Tilt additionally rotates about X by Rotation (top and bottom faces).
	Tilt bool
}

var MarkerFaces = [6]MarkerFace{
	{Offset: mgl32.Vec3{0, 0, 0.5}, Rotation: 0},
	{Offset: mgl32.Vec3{0.5, 0, 0}, Rotation: 90},
	{Offset: mgl32.Vec3{0, 0, -0.5}, Rotation: 180},
	{Offset: mgl32.Vec3{-0.5, 0, 0}, Rotation: -90},
	{Offset: mgl32.Vec3{0, 0.5, 0}, Rotation: -90, Tilt: true},
	{Offset: mgl32.Vec3{0, -0.5, 0}, Rotation: 90, Tilt: true},
}

const (
	MarkerSize float32 = 0.125
)

// MarkerModel places face of a marker cube centered on light.
func MarkerModel(light mgl32.Vec3, face MarkerFace) mgl32.Mat4 {
	pos := face.Offset.Mul(MarkerSize).Add(light)
	m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(face.Rotation)))
	if face.Tilt {
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(face.Rotation)))
	}
	return m.Mul4(mgl32.Scale3D(MarkerSize, MarkerSize, MarkerSize))
}

// NormalMatrix is the inverse transpose of the model matrix.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Inv().Transpose()
}
