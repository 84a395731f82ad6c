package scene

import (
	"fmt"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/go-gl/mathgl/mgl32"
)

type Pass uint8

const (
	PassLit Pass = iota
	PassLamp
)

func (p Pass) String() string {
	if p == PassLamp {
		return "lamp"
	}
	return "lit"
}

// DrawItem is one indexed draw call. Lit items sample Material; lamp items
// are flat LampColor.
type DrawItem struct {
	Group     string
	Index     int
	Mesh      core.MeshId
	Pass      Pass
	Model     mgl32.Mat4
	Material  core.Material
	LampColor mgl32.Vec3
}

const (
	GroupPlane  = "plane"
	GroupMarker = "light-marker"
)

// Build flattens the desk into draw order: plane, box groups, rings, then
// the light markers. Every referenced texture must have a material.
func Build(desk *Desk, materials map[string]core.Material) ([]DrawItem, error) {
	items := make([]DrawItem, 0, 128)

	lookup := func(group, name string) (core.Material, error) {
		m, ok := materials[name]
		if !ok {
			return core.Material{}, fmt.Errorf("%s: no material for texture %q", group, name)
		}
		return m, nil
	}

	plane, err := lookup(GroupPlane, desk.PlaneTexture)
	if err != nil {
		return nil, err
	}
	items = append(items, DrawItem{
		Group:    GroupPlane,
		Mesh:     core.MeshSquare,
		Pass:     PassLit,
		Model:    desk.Plane.Model(),
		Material: plane,
	})

	for _, box := range desk.Boxes {
		g := box.Transform()
		for i, p := range box.Placements {
			mat, err := lookup(box.Name, box.Textures[i])
			if err != nil {
				return nil, err
			}
			items = append(items, DrawItem{
				Group:    box.Name,
				Index:    i,
				Mesh:     core.MeshSquare,
				Pass:     PassLit,
				Model:    p.ModelIn(g),
				Material: mat,
			})
		}
	}

	for _, ring := range desk.Rings {
		if len(ring.Textures) != 1 && len(ring.Textures) != ring.Count {
			return nil, fmt.Errorf("%s: %d textures for %d instances", ring.Name, len(ring.Textures), ring.Count)
		}
		for i := 0; i < ring.Count; i++ {
			mat, err := lookup(ring.Name, ring.Texture(i))
			if err != nil {
				return nil, err
			}
			items = append(items, DrawItem{
				Group:    ring.Name,
				Index:    i,
				Mesh:     ring.Mesh,
				Pass:     PassLit,
				Model:    core.RingModel(ring.Center, ring.Scale, ring.Count, i),
				Material: mat,
			})
		}
	}

	for l, light := range desk.Lights {
		for i, face := range core.MarkerFaces {
			items = append(items, DrawItem{
				Group:     GroupMarker,
				Index:     l*len(core.MarkerFaces) + i,
				Mesh:      core.MeshLampQuad,
				Pass:      PassLamp,
				Model:     core.MarkerModel(light.Position, face),
				LampColor: light.Color,
			})
		}
	}

	return items, nil
}

// Textures returns the distinct texture names the items sample, in first-use order.
func Textures(items []DrawItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if it.Pass != PassLit || seen[it.Material.Texture] {
			continue
		}
		seen[it.Material.Texture] = true
		out = append(out, it.Material.Texture)
	}
	return out
}
