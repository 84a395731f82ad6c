package deskscene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/webp"
)

type AssetId string

// MissingTexturePolicy decides what happens when a texture cannot be loaded.
type MissingTexturePolicy string

const (
	MissingTextureFail        MissingTexturePolicy = "fail"
	MissingTexturePlaceholder MissingTexturePolicy = "placeholder"
)

func ParseMissingTexturePolicy(s string) (MissingTexturePolicy, error) {
	switch p := MissingTexturePolicy(s); p {
	case MissingTextureFail, MissingTexturePlaceholder:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing-texture policy %q (want %s or %s)", s, MissingTextureFail, MissingTexturePlaceholder)
	}
}

type TextureAsset struct {
	Id          AssetId
	File        string
	Placeholder bool
	core.Texture
}

type AssetServer struct {
	dir     string
	missing MissingTexturePolicy
	logger  Logger

	textures map[AssetId]*TextureAsset
	byName   map[string]AssetId
	order    []AssetId
}

func NewAssetServer(dir string, missing MissingTexturePolicy, logger Logger) *AssetServer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &AssetServer{
		dir:      dir,
		missing:  missing,
		logger:   logger,
		textures: make(map[AssetId]*TextureAsset),
		byName:   make(map[string]AssetId),
	}
}

// CreateTexture registers an RGBA8 image under name.
func (server *AssetServer) CreateTexture(name string, texels []uint8, width, height int) (AssetId, error) {
	if width <= 0 || height <= 0 || len(texels) != width*height*4 {
		return "", fmt.Errorf("texture %s: %d bytes for %dx%d RGBA", name, len(texels), width, height)
	}
	return server.add(&TextureAsset{
		Texture: core.Texture{Name: name, Width: width, Height: height, Pix: texels},
	})
}

// LoadTexture decodes file (relative to the asset directory) and registers it
// under name. Under MissingTexturePlaceholder an unreadable file is replaced
// with a checker and only logged.
func (server *AssetServer) LoadTexture(name, file string) (AssetId, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(server.dir, file)
	}

	rgba, err := decodeTextureFile(path)
	if err != nil {
		if server.missing != MissingTexturePlaceholder {
			return "", fmt.Errorf("texture %s (%s): %w", name, path, err)
		}
		server.logger.Warnf("texture %s (%s): %v; using placeholder", name, path, err)
		return server.add(&TextureAsset{
			File:        path,
			Placeholder: true,
			Texture:     placeholderTexture(name),
		})
	}

	b := rgba.Bounds()
	server.logger.Debugf("texture %s: %dx%d from %s", name, b.Dx(), b.Dy(), path)
	return server.add(&TextureAsset{
		File: path,
		Texture: core.Texture{
			Name:   name,
			Width:  b.Dx(),
			Height: b.Dy(),
			Pix:    rgba.Pix,
		},
	})
}

func (server *AssetServer) add(asset *TextureAsset) (AssetId, error) {
	if _, ok := server.byName[asset.Name]; ok {
		return "", fmt.Errorf("texture %s is already loaded", asset.Name)
	}
	asset.Id = makeAssetId()
	server.textures[asset.Id] = asset
	server.byName[asset.Name] = asset.Id
	server.order = append(server.order, asset.Id)
	return asset.Id, nil
}

func (server *AssetServer) Texture(name string) (*TextureAsset, bool) {
	id, ok := server.byName[name]
	if !ok {
		return nil, false
	}
	return server.textures[id], true
}

func (server *AssetServer) TextureById(id AssetId) (*TextureAsset, bool) {
	t, ok := server.textures[id]
	return t, ok
}

// Textures returns every texture in load order.
func (server *AssetServer) Textures() []core.Texture {
	out := make([]core.Texture, 0, len(server.order))
	for _, id := range server.order {
		out = append(out, server.textures[id].Texture)
	}
	return out
}

func decodeTextureFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeTexture(f)
}

func decodeTexture(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}

// placeholderTexture is a 2x2 magenta/black checker.
func placeholderTexture(name string) core.Texture {
	return core.Texture{
		Name:   name,
		Width:  2,
		Height: 2,
		Pix: []uint8{
			255, 0, 255, 255, 0, 0, 0, 255,
			0, 0, 0, 255, 255, 0, 255, 255,
		},
	}
}

// AssetServerModule loads every texture in Assets up front. An empty Assets
// loads the desk scene's textures.
type AssetServerModule struct {
	Dir     string
	Missing MissingTexturePolicy
	Assets  []scene.AssetDescriptor
}

func (m AssetServerModule) Install(app *App, cmd *Commands) {
	assets := m.Assets
	if len(assets) == 0 {
		assets = scene.DeskAssets()
	}
	missing := m.Missing
	if missing == "" {
		missing = MissingTextureFail
	}

	server := NewAssetServer(m.Dir, missing, app.Logger())
	placeholders := 0
	for _, a := range assets {
		id, err := server.LoadTexture(a.Name, a.File)
		if err != nil {
			cmd.Fail(err)
			return
		}
		if t, _ := server.TextureById(id); t.Placeholder {
			placeholders++
		}
	}
	app.addResources(server)
	app.Logger().Infof("Loaded %d textures (%d placeholders)", len(assets), placeholders)
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
