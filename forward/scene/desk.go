package scene

import (
	"github.com/gekko3d/deskscene/forward/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Face order of every box group.
const (
	FaceBottom = iota
	FaceBack
	FaceTop
	FaceFront
	FaceLeft
	FaceRight
	boxFaces
)

// BoxGroup is six square faces sharing an optional Y rotation.
type BoxGroup struct {
	Name       string
	RotationY  float32
	Placements [boxFaces]core.Placement
	Textures   [boxFaces]string
}

// Transform is the group matrix applied before each face's own transform.
func (g BoxGroup) Transform() mgl32.Mat4 {
	if g.RotationY == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3DY(mgl32.DegToRad(g.RotationY))
}

// RingGroup repeats one mesh Count times around the Y axis through Center.
type RingGroup struct {
	Name   string
	Mesh   core.MeshId
	Center mgl32.Vec3
	Scale  mgl32.Vec3
	Count  int
	// Textures holds one name per instance, or a single name shared by all.
	Textures []string
}

func (g RingGroup) Texture(i int) string {
	if len(g.Textures) == 1 {
		return g.Textures[0]
	}
	return g.Textures[i]
}

// Desk is the static layout of the scene. Nothing in it changes after startup.
type Desk struct {
	Plane        core.Placement
	PlaneTexture string
	Boxes        []BoxGroup
	Rings        []RingGroup
	Lights       []core.PointLight
}

func faces(pos [boxFaces]mgl32.Vec3, rotX, rotZ [boxFaces]float32, scale [boxFaces]mgl32.Vec3) [boxFaces]core.Placement {
	var out [boxFaces]core.Placement
	for i := range out {
		out[i] = core.Placement{
			Translation: pos[i],
			RotationX:   rotX[i],
			RotationZ:   rotZ[i],
			Scale:       scale[i],
		}
	}
	return out
}

var sideRotZ = [boxFaces]float32{0, 0, 0, 0, 90, -90}

func laptopBase() BoxGroup {
	return BoxGroup{
		Name: "laptop-base",
		Placements: faces(
			[boxFaces]mgl32.Vec3{{0, 0, 0}, {0, 0.125, -2.5}, {0, 0.25, 0}, {0, 0.125, 2.5}, {-4, 0.125, 0}, {4, 0.125, 0}},
			[boxFaces]float32{0, 90, 0, 90, 0, 0},
			sideRotZ,
			[boxFaces]mgl32.Vec3{{8, 1, 5}, {8, 1, 0.25}, {8, 1, 5}, {8, 1, 0.25}, {0.25, 1, 5}, {0.25, 1, 5}},
		),
		Textures: [boxFaces]string{TexLaptopRim, TexLaptopRim, TexKeyboard, TexLaptopRim, TexLaptopRim, TexLaptopRim},
	}
}

func monitor() BoxGroup {
	return BoxGroup{
		Name: "monitor",
		Placements: faces(
			[boxFaces]mgl32.Vec3{{0, 0.25, -2.45}, {0, 2.75, -2.5}, {0, 5.25, -2.45}, {0, 2.75, -2.4}, {-4, 2.75, -2.45}, {4, 2.75, -2.45}},
			[boxFaces]float32{0, 270, 0, 90, 0, 0},
			sideRotZ,
			[boxFaces]mgl32.Vec3{{8, 1, 0.1}, {8, 1, 5}, {8, 1, 0.1}, {8, 1, 5}, {5, 1, 0.1}, {5, 1, 0.1}},
		),
		Textures: [boxFaces]string{TexLaptopRim, TexLaptopLid, TexLaptopRim, TexMonitor, TexLaptopRim, TexLaptopRim},
	}
}

func teaBox() BoxGroup {
	g := BoxGroup{
		Name:      "tea-box",
		RotationY: -20,
		Placements: faces(
			[boxFaces]mgl32.Vec3{{7, 0, -0.5}, {7, 0.5, -1}, {7, 1, -0.5}, {7, 0.5, 0}, {6, 0.5, -0.5}, {8, 0.5, -0.5}},
			[boxFaces]float32{180, 270, 0, 90, 90, 90},
			sideRotZ,
			[boxFaces]mgl32.Vec3{{2, 1, 1}, {2, 1, 1}, {2, 1, 1}, {2, 1, 1}, {1, 1, 1}, {1, 1, 1}},
		),
		Textures: [boxFaces]string{TexTeaboxBottom, TexTeaboxBack, TexTeaboxTop, TexTeaboxFront, TexTeaboxLeft, TexTeaboxRight},
	}
	g.Placements[FaceBack].FlipY = true
	return g
}

func bottle() BoxGroup {
	g := BoxGroup{
		Name: "bottle",
		Placements: faces(
			[boxFaces]mgl32.Vec3{{-6, 0, -2.5}, {-6, 0.75, -3}, {-6, 1.5, -2.5}, {-6, 0.75, -2}, {-6.5, 0.75, -2.5}, {-5.5, 0.75, -2.5}},
			[boxFaces]float32{0, 270, 0, 90, 0, 0},
			sideRotZ,
			[boxFaces]mgl32.Vec3{{1, 1, 1}, {1, 1, 1.5}, {1, 1, 1}, {1, 1, 1.5}, {1.5, 1, 1}, {1.5, 1, 1}},
		),
		Textures: [boxFaces]string{TexTea, TexBottleLabel, TexTea, TexBottleLabel, TexBottleNutr, TexBottleDesc},
	}
	g.Placements[FaceBack].FlipY = true
	return g
}

func nutTinTextures() []string {
	out := make([]string, NutTinFacets)
	for i := range out {
		out[i] = NutsTexture(i)
	}
	return out
}

// DeskLights are the three scene lights with their lit-shader weights.
func DeskLights() []core.PointLight {
	return []core.PointLight{
		{
			Position: mgl32.Vec3{0, 6, 3},
			Color:    mgl32.Vec3{1, 1, 1},
			Shading:  core.LightShading{Ambient: 1, Diffuse: 4, Specular: 1.5, Shininess: 16},
		},
		{
			Position: mgl32.Vec3{6, 6, -5},
			Color:    mgl32.Vec3{1, 0, 0},
			Shading:  core.LightShading{Ambient: 0.3, Diffuse: 1, Specular: 0.75, Shininess: 8},
		},
		{
			Position: mgl32.Vec3{-6, 6, 0},
			Color:    mgl32.Vec3{0, 0, 1},
			Shading:  core.LightShading{Ambient: 0.5, Diffuse: 2, Specular: 1.5, Shininess: 16},
		},
	}
}

func NewDesk() *Desk {
	return &Desk{
		Plane:        core.Placement{Scale: mgl32.Vec3{20, 1, 20}},
		PlaneTexture: TexWood,
		Boxes:        []BoxGroup{laptopBase(), monitor(), teaBox(), bottle()},
		Rings: []RingGroup{
			{
				Name:     "bottle-shoulder",
				Mesh:     core.MeshPyramidFace,
				Center:   mgl32.Vec3{-6, 1.5, -2.5},
				Scale:    mgl32.Vec3{1, 0.85, 1},
				Count:    4,
				Textures: []string{TexTea},
			},
			{
				Name:     "bottle-neck",
				Mesh:     core.MeshCylinderFacet,
				Center:   mgl32.Vec3{-6, 1.5, -2.5},
				Scale:    mgl32.Vec3{0.3, 1.25, 0.3},
				Count:    24,
				Textures: []string{TexTea},
			},
			{
				Name:     "bottle-lid",
				Mesh:     core.MeshCylinderFacet,
				Center:   mgl32.Vec3{-6, 2.75, -2.5},
				Scale:    mgl32.Vec3{0.4, 0.2, 0.4},
				Count:    24,
				Textures: []string{TexLid},
			},
			{
				Name:     "nut-tin",
				Mesh:     core.MeshCylinderFacet,
				Center:   mgl32.Vec3{-7, 0, 1},
				Scale:    mgl32.Vec3{1, 1, 1},
				Count:    NutTinFacets,
				Textures: nutTinTextures(),
			},
			{
				Name:     "tin-lid",
				Mesh:     core.MeshCylinderFacet,
				Center:   mgl32.Vec3{-7, 1, 1},
				Scale:    mgl32.Vec3{1.05, 0.2, 1.05},
				Count:    24,
				Textures: []string{TexLid},
			},
		},
		Lights: DeskLights(),
	}
}
