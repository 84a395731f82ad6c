package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout shared by every mesh. Fields tagged
// `gpu:"layout"` become vertex attributes at the given shader location.
type Vertex struct {
	Position [3]float32 `gpu:"layout" location:"0" format:"float3"`
	Color    [3]float32 `gpu:"layout" location:"1" format:"float3"`
	UV       [2]float32 `gpu:"layout" location:"2" format:"float2"`
	Normal   [3]float32 `gpu:"layout" location:"3" format:"float3"`
}

type MeshId int

const (
	MeshSquare MeshId = iota
	MeshPyramidFace
	MeshCylinderFacet
	MeshLampQuad
	meshCount
)

func (id MeshId) String() string {
	switch id {
	case MeshSquare:
		return "square"
	case MeshPyramidFace:
		return "pyramid-face"
	case MeshCylinderFacet:
		return "cylinder-facet"
	case MeshLampQuad:
		return "lamp-quad"
	default:
		return "unknown"
	}
}

type Mesh struct {
	Id       MeshId
	Vertices []Vertex
	Indices  []uint16
}

// IndexCount is the number of indices a draw call of this mesh submits.
func (m Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// StandardMeshes returns every mesh the scene draws, indexed by MeshId.
func StandardMeshes() []Mesh {
	return []Mesh{
		MeshSquare:        SquareMesh(),
		MeshPyramidFace:   PyramidFaceMesh(),
		MeshCylinderFacet: CylinderFacetMesh(24),
		MeshLampQuad:      LampQuadMesh(),
	}
}

var upNormal = [3]float32{0, 1, 0}

// SquareMesh is a unit quad in the XZ plane facing +Y.
func SquareMesh() Mesh {
	return Mesh{
		Id: MeshSquare,
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, 0, -0.5}, Color: [3]float32{0, 1, 0}, UV: [2]float32{0, 0}, Normal: upNormal},
			{Position: [3]float32{0.5, 0, -0.5}, Color: [3]float32{0, 0, 1}, UV: [2]float32{1, 0}, Normal: upNormal},
			{Position: [3]float32{0.5, 0, 0.5}, Color: [3]float32{1, 0, 0}, UV: [2]float32{1, 1}, Normal: upNormal},
			{Position: [3]float32{-0.5, 0, 0.5}, Color: [3]float32{1, 1, 0}, UV: [2]float32{0, 1}, Normal: upNormal},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// PyramidFaceMesh is one sloped triangle of a square pyramid with apex at y=1.
func PyramidFaceMesh() Mesh {
	n := mgl32.Vec3{0, 0.5, 1}.Normalize()
	normal := [3]float32{n.X(), n.Y(), n.Z()}

	return Mesh{
		Id: MeshPyramidFace,
		Vertices: []Vertex{
			{Position: [3]float32{0.5, 0, 0.5}, Color: [3]float32{1, 0, 0}, UV: [2]float32{1, 0}, Normal: normal},
			{Position: [3]float32{-0.5, 0, 0.5}, Color: [3]float32{1, 1, 0}, UV: [2]float32{0, 0}, Normal: normal},
			{Position: [3]float32{0, 1, 0}, Color: [3]float32{0, 0, 0}, UV: [2]float32{0.5, 1}, Normal: normal},
		},
		Indices: []uint16{0, 1, 2},
	}
}

// CylinderFacetMesh is one wedge of a unit-radius, unit-height cylinder split
// into segments wedges: a base triangle, a side quad and a top triangle.
func CylinderFacetMesh(segments int) Mesh {
	half := mgl32.DegToRad(180.0 / float32(segments))
	s, c := math32.Sin(half), math32.Cos(half)

	white := [3]float32{1, 1, 1}
	black := [3]float32{0, 0, 0}
	down := [3]float32{0, -1, 0}
	out := [3]float32{0, 0, 1}

	return Mesh{
		Id: MeshCylinderFacet,
		Vertices: []Vertex{
			// base
			{Position: [3]float32{0, 0, 0}, Color: white, UV: [2]float32{0.5, 1}, Normal: down},
			{Position: [3]float32{-s, 0, c}, Color: white, UV: [2]float32{0, 0}, Normal: down},
			{Position: [3]float32{s, 0, c}, Color: black, UV: [2]float32{1, 0}, Normal: down},
			// side
			{Position: [3]float32{-s, 0, c}, Color: [3]float32{1, 0, 0}, UV: [2]float32{0, 0}, Normal: out},
			{Position: [3]float32{-s, 1, c}, Color: [3]float32{1, 0, 0}, UV: [2]float32{0, 1}, Normal: out},
			{Position: [3]float32{s, 0, c}, Color: [3]float32{0, 1, 0}, UV: [2]float32{1, 0}, Normal: out},
			{Position: [3]float32{s, 1, c}, Color: [3]float32{0, 1, 0}, UV: [2]float32{1, 1}, Normal: out},
			// top
			{Position: [3]float32{-s, 1, c}, Color: white, UV: [2]float32{0, 1}, Normal: upNormal},
			{Position: [3]float32{s, 1, c}, Color: black, UV: [2]float32{1, 1}, Normal: upNormal},
			{Position: [3]float32{0, 1, 0}, Color: white, UV: [2]float32{0.5, 0}, Normal: upNormal},
		},
		Indices: []uint16{
			0, 1, 2,
			3, 4, 5,
			4, 5, 6,
			7, 8, 9,
		},
	}
}

// LampQuadMesh is a unit quad in the XY plane. Only positions are used.
func LampQuadMesh() Mesh {
	return Mesh{
		Id: MeshLampQuad,
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, 0.5, 0}},
			{Position: [3]float32{-0.5, -0.5, 0}},
			{Position: [3]float32{0.5, -0.5, 0}},
			{Position: [3]float32{0.5, 0.5, 0}},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}
