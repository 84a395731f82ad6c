package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGpuItem_WritesOnlyWhenChanged(t *testing.T) {
	items, err := scene.Build(scene.NewDesk(), scene.Materials(scene.DeskAssets()))
	require.NoError(t, err)
	item := items[1]

	var slot gpuItem
	assert.True(t, slot.stale(&item))
	assert.False(t, slot.current(&item))

	slot.pass, slot.texture, slot.bindGroup = item.Pass, item.Material.Texture, &wgpu.BindGroup{}
	assert.False(t, slot.current(&item), "not written yet")

	slot.markWritten(&item)
	assert.True(t, slot.current(&item))

	for frame := 0; frame < 3; frame++ {
		same := items[1]
		assert.True(t, slot.current(&same), "static item is not rewritten on frame %d", frame)
	}

	moved := item
	moved.Model = mgl32.Translate3D(1, 0, 0).Mul4(item.Model)
	assert.False(t, slot.stale(&moved), "new model reuses the bind group")
	assert.False(t, slot.current(&moved), "new model rewrites the buffer")

	retextured := item
	retextured.Material.Texture = "elsewhere"
	assert.True(t, slot.stale(&retextured))

	lamp := item
	lamp.Pass = scene.PassLamp
	assert.True(t, slot.stale(&lamp))
}
