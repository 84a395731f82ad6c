package deskscene

import (
	"errors"
	"fmt"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/scene"
)

// DrawList is the static draw list plus the meshes it indexes by MeshId.
type DrawList struct {
	Items  []scene.DrawItem
	Meshes []core.Mesh
}

// SceneModule builds the draw list once and hands the lights to FrameState.
// It needs the AssetServer (every referenced texture must be loaded) and the
// FrameState resource.
type SceneModule struct {
	Desk   *scene.Desk
	Assets []scene.AssetDescriptor
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	desk := m.Desk
	if desk == nil {
		desk = scene.NewDesk()
	}
	assets := m.Assets
	if len(assets) == 0 {
		assets = scene.DeskAssets()
	}

	list, err := buildDrawList(app, desk, assets)
	if err != nil {
		cmd.Fail(fmt.Errorf("build scene: %w", err))
		return
	}
	cmd.AddResources(list)

	if frame, ok := Resource[FrameState](app); ok {
		frame.Lights = desk.Lights
	}
	app.Logger().Infof("Scene: %d draw items, %d lights", len(list.Items), len(desk.Lights))
}

func buildDrawList(app *App, desk *scene.Desk, assets []scene.AssetDescriptor) (*DrawList, error) {
	server, ok := Resource[AssetServer](app)
	if !ok {
		return nil, errors.New("no asset server")
	}

	items, err := scene.Build(desk, scene.Materials(assets))
	if err != nil {
		return nil, err
	}
	for _, name := range scene.Textures(items) {
		if _, ok := server.Texture(name); !ok {
			return nil, fmt.Errorf("texture %s is not loaded", name)
		}
	}

	return &DrawList{
		Items:  items,
		Meshes: core.StandardMeshes(),
	}, nil
}
