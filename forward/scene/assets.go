package scene

import (
	"fmt"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/go-gl/mathgl/mgl32"
)

// AssetDescriptor names a texture file and the tint its surfaces are lit with.
type AssetDescriptor struct {
	Name string
	File string
	Tint mgl32.Vec3
}

const (
	TexKeyboard     = "keyboard"
	TexLaptopLid    = "laptop_lid"
	TexLaptopRim    = "laptop_rim"
	TexMonitor      = "monitor"
	TexTeaboxBack   = "teabox_back"
	TexTeaboxBottom = "teabox_bottom"
	TexTeaboxFront  = "teabox_front"
	TexTeaboxLeft   = "teabox_left"
	TexTeaboxRight  = "teabox_right"
	TexTeaboxTop    = "teabox_top"
	TexBottleLabel  = "bottle_label"
	TexBottleDesc   = "bottle_desc"
	TexBottleNutr   = "bottle_nutr"
	TexTea          = "tea"
	TexLid          = "lid"
	TexWood         = "wood"
)

const NutTinFacets = 24

// NutsTexture is the texture name of nut tin facet i (zero based).
func NutsTexture(i int) string {
	return fmt.Sprintf("nuts%d", i+1)
}

var nutsTint = mgl32.Vec3{0.31, 0.2, 0.08}

// DeskAssets lists every texture the desk scene samples.
func DeskAssets() []AssetDescriptor {
	assets := []AssetDescriptor{
		{Name: TexKeyboard, File: "keyboardEdit.jpg", Tint: mgl32.Vec3{0.1, 0.1, 0.09}},
		{Name: TexLaptopLid, File: "laptop_lidEdit.jpg", Tint: mgl32.Vec3{0.12, 0.12, 0.11}},
		{Name: TexLaptopRim, File: "laptop_rim.jpg", Tint: mgl32.Vec3{0.08, 0.08, 0.07}},
		{Name: TexMonitor, File: "monitorEdit.jpg", Tint: mgl32.Vec3{0.08, 0.09, 0.08}},
		{Name: TexTeaboxBack, File: "teabox_backEdit.jpg", Tint: mgl32.Vec3{0.16, 0.15, 0.14}},
		{Name: TexTeaboxBottom, File: "teabox_bottomEdit.jpg", Tint: mgl32.Vec3{0.22, 0.21, 0.19}},
		{Name: TexTeaboxFront, File: "teabox_frontEdit.jpg", Tint: mgl32.Vec3{0.18, 0.19, 0.21}},
		{Name: TexTeaboxLeft, File: "teabox_leftEdit.jpg", Tint: mgl32.Vec3{0.25, 0.21, 0.18}},
		{Name: TexTeaboxRight, File: "teabox_rightEdit.jpg", Tint: mgl32.Vec3{0.21, 0.21, 0.19}},
		{Name: TexTeaboxTop, File: "teabox_topEdit.jpg", Tint: mgl32.Vec3{0.14, 0.12, 0.1}},
		{Name: TexBottleLabel, File: "teabottle_labelEdit.jpg", Tint: mgl32.Vec3{0.17, 0.19, 0.22}},
		{Name: TexBottleDesc, File: "teabottle_descEdit.jpg", Tint: mgl32.Vec3{0.09, 0.09, 0.07}},
		{Name: TexBottleNutr, File: "teabottle_nutrEdit.jpg", Tint: mgl32.Vec3{0.14, 0.12, 0.10}},
		{Name: TexTea, File: "tea.jpg", Tint: mgl32.Vec3{0.28, 0.12, 0}},
		{Name: TexLid, File: "lid.jpg", Tint: mgl32.Vec3{0.18, 0.18, 0.18}},
	}
	for i := 0; i < NutTinFacets; i++ {
		assets = append(assets, AssetDescriptor{
			Name: NutsTexture(i),
			File: fmt.Sprintf("nutsEdit%d.jpg", i+1),
			Tint: nutsTint,
		})
	}
	return append(assets, AssetDescriptor{Name: TexWood, File: "wood.jpg", Tint: mgl32.Vec3{0.27, 0.21, 0.13}})
}

// Materials indexes descriptors by texture name.
func Materials(assets []AssetDescriptor) map[string]core.Material {
	out := make(map[string]core.Material, len(assets))
	for _, a := range assets {
		out[a.Name] = core.NewMaterial(a.Name, a.Tint.X(), a.Tint.Y(), a.Tint.Z())
	}
	return out
}
