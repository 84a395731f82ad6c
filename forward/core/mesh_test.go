package core

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertex_Layout(t *testing.T) {
	assert.Equal(t, uintptr(11*4), unsafe.Sizeof(Vertex{}))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(Vertex{}.Color))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(Vertex{}.UV))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(Vertex{}.Normal))
}

func TestStandardMeshes_Indexed(t *testing.T) {
	meshes := StandardMeshes()
	require.Len(t, meshes, int(meshCount))

	for id, m := range meshes {
		assert.Equal(t, MeshId(id), m.Id)
		assert.Zero(t, len(m.Indices)%3, "%s: whole triangles", m.Id)
		for _, idx := range m.Indices {
			assert.Less(t, int(idx), len(m.Vertices), "%s: index in range", m.Id)
		}
	}
}

func TestCylinderFacetMesh(t *testing.T) {
	m := CylinderFacetMesh(24)
	require.Len(t, m.Vertices, 10)
	assert.Equal(t, uint32(12), m.IndexCount())

	// the wedge spans 15 degrees of a unit circle
	left := mgl32.Vec3(m.Vertices[1].Position)
	right := mgl32.Vec3(m.Vertices[2].Position)
	assert.InDelta(t, 1, left.Len(), eps)
	assert.InDelta(t, 1, right.Len(), eps)
	cos := left.Dot(right)
	assert.InDelta(t, 0.9659258, cos, eps)

	// side and top sit on the same rim
	assert.Equal(t, m.Vertices[4].Position, m.Vertices[7].Position)
	assert.Equal(t, float32(1), m.Vertices[9].Position[1])
}

func TestPyramidFaceMesh_Normal(t *testing.T) {
	m := PyramidFaceMesh()
	n := mgl32.Vec3(m.Vertices[0].Normal)
	assert.InDelta(t, 0.447214, n.Y(), eps)
	assert.InDelta(t, 0.894427, n.Z(), eps)

	// the normal is perpendicular to the face
	a := mgl32.Vec3(m.Vertices[0].Position)
	b := mgl32.Vec3(m.Vertices[1].Position)
	c := mgl32.Vec3(m.Vertices[2].Position)
	assert.InDelta(t, 0, n.Dot(b.Sub(a)), eps)
	assert.InDelta(t, 0, n.Dot(c.Sub(a)), eps)
}

func TestMeshId_String(t *testing.T) {
	assert.Equal(t, "square", MeshSquare.String())
	assert.Equal(t, "lamp-quad", MeshLampQuad.String())
	assert.Equal(t, "unknown", MeshId(42).String())
}
