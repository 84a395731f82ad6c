package deskscene

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 200
	}

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestAssetServer_LoadTexture(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png")
	writeJPEG(t, dir, "b.jpg")

	server := NewAssetServer(dir, MissingTextureFail, nil)

	idA, err := server.LoadTexture("a", "a.png")
	require.NoError(t, err)
	idB, err := server.LoadTexture("b", "b.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, idA, idB)

	a, ok := server.Texture("a")
	require.True(t, ok)
	assert.Equal(t, idA, a.Id)
	assert.Equal(t, 3, a.Width)
	assert.Equal(t, 2, a.Height)
	assert.Len(t, a.Pix, 3*2*4)
	assert.Equal(t, []uint8{255, 0, 0, 255}, a.Pix[0:4], "top-left row first")
	assert.Equal(t, []uint8{0, 0, 255, 255}, a.Pix[len(a.Pix)-4:])
	assert.False(t, a.Placeholder)

	b, ok := server.TextureById(idB)
	require.True(t, ok)
	assert.Equal(t, 8, b.Width)
	assert.Len(t, b.Pix, 8*4*4)

	textures := server.Textures()
	require.Len(t, textures, 2)
	assert.Equal(t, "a", textures[0].Name)
	assert.Equal(t, "b", textures[1].Name)

	_, err = server.LoadTexture("a", "b.jpg")
	assert.Error(t, err, "names are unique")
}

func TestAssetServer_MissingTextureFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.jpg"), []byte("not an image"), 0o644))

	server := NewAssetServer(dir, MissingTextureFail, nil)

	_, err := server.LoadTexture("gone", "gone.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "gone.jpg")

	_, err = server.LoadTexture("junk", "junk.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, image.ErrFormat)

	assert.Empty(t, server.Textures())
}

func TestAssetServer_MissingTexturePlaceholder(t *testing.T) {
	server := NewAssetServer(t.TempDir(), MissingTexturePlaceholder, nil)

	id, err := server.LoadTexture("gone", "gone.jpg")
	require.NoError(t, err)

	tex, ok := server.TextureById(id)
	require.True(t, ok)
	assert.True(t, tex.Placeholder)
	assert.Equal(t, "gone", tex.Name)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, []uint8{255, 0, 255, 255}, tex.Pix[0:4])
	assert.Equal(t, []uint8{0, 0, 0, 255}, tex.Pix[4:8])
}

func TestAssetServer_CreateTexture(t *testing.T) {
	server := NewAssetServer(".", MissingTextureFail, nil)

	_, err := server.CreateTexture("white", []uint8{255, 255, 255, 255}, 1, 1)
	require.NoError(t, err)

	_, err = server.CreateTexture("short", []uint8{1, 2, 3}, 1, 1)
	assert.Error(t, err)
}

func TestParseMissingTexturePolicy(t *testing.T) {
	p, err := ParseMissingTexturePolicy("placeholder")
	require.NoError(t, err)
	assert.Equal(t, MissingTexturePlaceholder, p)

	_, err = ParseMissingTexturePolicy("skip")
	assert.Error(t, err)
}

func TestAssetServerModule(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "wood.png")
	assets := []scene.AssetDescriptor{
		{Name: "wood", File: "wood.png", Tint: mgl32.Vec3{1, 1, 1}},
		{Name: "lid", File: "lid.png", Tint: mgl32.Vec3{1, 1, 1}},
	}

	app := NewAppBuilder().UseModule(AssetServerModule{Dir: dir, Assets: assets}).Build()
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "lid.png")

	app = NewAppBuilder().
		UseModule(AssetServerModule{Dir: dir, Missing: MissingTexturePlaceholder, Assets: assets}).
		Build()
	require.NoError(t, app.Err())

	server, ok := Resource[AssetServer](app)
	require.True(t, ok)
	lid, ok := server.Texture("lid")
	require.True(t, ok)
	assert.True(t, lid.Placeholder)
}
