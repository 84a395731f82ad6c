package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/gekko3d/deskscene/forward/shaders"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ErrFrameSkipped is returned by Draw when the surface had no image to draw
// into. The caller should simply try again next frame.
var ErrFrameSkipped = errors.New("wgpu: frame skipped")

const depthFormat = wgpu.TextureFormatDepth24Plus

type gpuMesh struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

type gpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// gpuItem holds the static uniform buffer and bind group of one draw item.
// source is the item last written to the buffer.
type gpuItem struct {
	pass      scene.Pass
	texture   string
	uniforms  *wgpu.Buffer
	bindGroup *wgpu.BindGroup

	source  scene.DrawItem
	written bool
}

// stale reports whether the bind group cannot serve item.
func (it *gpuItem) stale(item *scene.DrawItem) bool {
	return it.bindGroup == nil || it.pass != item.Pass || it.texture != item.Material.Texture
}

// current reports whether the buffer already holds item's uniforms.
func (it *gpuItem) current(item *scene.DrawItem) bool {
	return it.written && !it.stale(item) && it.source == *item
}

func (it *gpuItem) markWritten(item *scene.DrawItem) {
	it.source = *item
	it.written = true
}

func (it *gpuItem) release() {
	if it.bindGroup != nil {
		it.bindGroup.Release()
	}
	if it.uniforms != nil {
		it.uniforms.Release()
	}
}

// Renderer draws the scene with WebGPU into the surface of a glfw window
// created without a client API.
type Renderer struct {
	window *glfw.Window

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	litPipeline  *wgpu.RenderPipeline
	lampPipeline *wgpu.RenderPipeline
	sampler      *wgpu.Sampler

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	cameraBuffer    *wgpu.Buffer
	litCameraGroup  *wgpu.BindGroup
	lampCameraGroup *wgpu.BindGroup

	meshes   []gpuMesh
	textures map[string]gpuTexture
	items    []gpuItem
}

func NewRenderer(window *glfw.Window) (*Renderer, error) {
	r := &Renderer{
		window:   window,
		textures: make(map[string]gpuTexture),
	}
	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init() error {
	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(r.window))

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	r.adapter = adapter

	r.device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Desk Device",
	})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	r.queue = r.device.GetQueue()

	width, height := r.window.GetFramebufferSize()
	caps := r.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return errors.New("surface reports no texture formats")
	}

	r.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      surfaceFormat(caps.Formats),
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	r.surface.Configure(adapter, r.device, r.config)

	if err := r.createDepth(); err != nil {
		return err
	}

	r.litPipeline, err = r.createPipeline("Lit Pipeline", shaders.LitWGSL)
	if err != nil {
		return err
	}
	r.lampPipeline, err = r.createPipeline("Lamp Pipeline", shaders.LampWGSL)
	if err != nil {
		return err
	}

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.,
		LodMaxClamp:   1.,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	r.cameraBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniforms",
		Size:  uint64(unsafe.Sizeof(cameraUniform{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create camera buffer: %w", err)
	}

	r.litCameraGroup, err = r.bindGroup(r.litPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: r.cameraBuffer, Size: wgpu.WholeSize},
	})
	if err != nil {
		return err
	}
	r.lampCameraGroup, err = r.bindGroup(r.lampPipeline, 0, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: r.cameraBuffer, Size: wgpu.WholeSize},
	})
	return err
}

// surfaceFormat prefers a linear 8-bit format. Textures are uploaded as
// plain RGBA8Unorm and shaded without gamma conversion.
func surfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

func (r *Renderer) createPipeline(label, code string) (*wgpu.RenderPipeline, error) {
	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: shader: %w", label, err)
	}
	defer shader.Release()

	vertexLayout, err := VertexBufferLayout(core.Vertex{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.config.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			// single-sided quads are seen from both sides
			CullMode: wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return pipeline, nil
}

func (r *Renderer) bindGroup(pipeline *wgpu.RenderPipeline, group uint32, entries []wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	layout := pipeline.GetBindGroupLayout(group)
	defer layout.Release()

	bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("bind group %d: %w", group, err)
	}
	return bg, nil
}

func (r *Renderer) createDepth() error {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}

	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth",
		Size:          wgpu.Extent3D{Width: r.config.Width, Height: r.config.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("create depth view: %w", err)
	}
	r.depthTexture, r.depthView = tex, view
	return nil
}

// resize reconfigures the surface and depth buffer for a new framebuffer size.
func (r *Renderer) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if r.config.Width == uint32(width) && r.config.Height == uint32(height) {
		return nil
	}
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	r.surface.Configure(r.adapter, r.device, r.config)
	return r.createDepth()
}

// Upload creates GPU buffers for every mesh (indexed by MeshId) and a
// texture for every image. It is meant to be called once.
func (r *Renderer) Upload(meshes []core.Mesh, textures []core.Texture) error {
	for _, m := range meshes {
		vertexBuf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    m.Id.String() + " Vertices",
			Contents: wgpu.ToBytes(m.Vertices),
			Usage:    wgpu.BufferUsageVertex,
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", m.Id, err)
		}
		indexBuf, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    m.Id.String() + " Indices",
			Contents: wgpu.ToBytes(paddedIndices(m.Indices)),
			Usage:    wgpu.BufferUsageIndex,
		})
		if err != nil {
			vertexBuf.Release()
			return fmt.Errorf("upload %s: %w", m.Id, err)
		}
		r.meshes = append(r.meshes, gpuMesh{
			vertices:   vertexBuf,
			indices:    indexBuf,
			indexCount: m.IndexCount(),
		})
	}

	for _, t := range textures {
		gt, err := r.createTexture(t)
		if err != nil {
			return fmt.Errorf("upload texture %s: %w", t.Name, err)
		}
		r.textures[t.Name] = gt
	}
	return nil
}

// paddedIndices keeps index buffers a multiple of four bytes.
func paddedIndices(indices []uint16) []uint16 {
	if len(indices)%2 == 0 {
		return indices
	}
	return append(append(make([]uint16, 0, len(indices)+1), indices...), 0)
}

func (r *Renderer) createTexture(t core.Texture) (gpuTexture, error) {
	extent := wgpu.Extent3D{
		Width:              uint32(t.Width),
		Height:             uint32(t.Height),
		DepthOrArrayLayers: 1,
	}
	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         t.Name,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return gpuTexture{}, err
	}

	err = r.queue.WriteTexture(
		texture.AsImageCopy(),
		t.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.Width) * 4,
			RowsPerImage: uint32(t.Height),
		},
		&extent,
	)
	if err != nil {
		texture.Release()
		return gpuTexture{}, err
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return gpuTexture{}, err
	}
	return gpuTexture{texture: texture, view: view}, nil
}

// prepareItem makes sure slot i has a uniform buffer and a bind group that
// matches the item's pass and texture, and writes the item's uniforms. An
// unchanged item costs nothing, so the static draw list is written once.
func (r *Renderer) prepareItem(i int, item *scene.DrawItem) error {
	for len(r.items) <= i {
		r.items = append(r.items, gpuItem{})
	}
	slot := &r.items[i]
	if slot.current(item) {
		return nil
	}

	var data []byte
	var size uint64
	if item.Pass == scene.PassLamp {
		u := []lampItemUniform{newLampItemUniform(item)}
		data, size = wgpu.ToBytes(u), uint64(unsafe.Sizeof(u[0]))
	} else {
		u := []litItemUniform{newLitItemUniform(item)}
		data, size = wgpu.ToBytes(u), uint64(unsafe.Sizeof(u[0]))
	}

	if slot.stale(item) {
		slot.release()
		*slot = gpuItem{pass: item.Pass, texture: item.Material.Texture}

		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("%s[%d] Uniforms", item.Group, item.Index),
			Size:  size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%s[%d]: uniform buffer: %w", item.Group, item.Index, err)
		}
		slot.uniforms = buf

		if item.Pass == scene.PassLamp {
			slot.bindGroup, err = r.bindGroup(r.lampPipeline, 1, []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Size: wgpu.WholeSize},
			})
		} else {
			tex, ok := r.textures[item.Material.Texture]
			if !ok {
				return fmt.Errorf("%s[%d]: texture %q was not uploaded", item.Group, item.Index, item.Material.Texture)
			}
			slot.bindGroup, err = r.bindGroup(r.litPipeline, 1, []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Size: wgpu.WholeSize},
				{Binding: 1, TextureView: tex.view, Size: wgpu.WholeSize},
				{Binding: 2, Sampler: r.sampler, Size: wgpu.WholeSize},
			})
		}
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", item.Group, item.Index, err)
		}
	}

	if err := r.queue.WriteBuffer(slot.uniforms, 0, data); err != nil {
		return fmt.Errorf("%s[%d]: write uniforms: %w", item.Group, item.Index, err)
	}
	slot.markWritten(item)
	return nil
}

// Draw renders items in order: lit items with the lit pipeline, lamp items
// with the lamp pipeline. The surface is cleared to black first.
func (r *Renderer) Draw(frame *core.Frame, items []scene.DrawItem) error {
	if frame.Empty() {
		return nil
	}
	if err := r.resize(frame.Width, frame.Height); err != nil {
		return err
	}

	camera := []cameraUniform{newCameraUniform(frame)}
	if err := r.queue.WriteBuffer(r.cameraBuffer, 0, wgpu.ToBytes(camera)); err != nil {
		return fmt.Errorf("write camera uniforms: %w", err)
	}
	for i := range items {
		if int(items[i].Mesh) >= len(r.meshes) {
			return fmt.Errorf("%s[%d]: mesh %s was not uploaded", items[i].Group, items[i].Index, items[i].Mesh)
		}
		if err := r.prepareItem(i, &items[i]); err != nil {
			return err
		}
	}

	nextTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFrameSkipped, err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})

	var current *wgpu.RenderPipeline
	for i := range items {
		item := &items[i]
		pipeline, cameraGroup := r.litPipeline, r.litCameraGroup
		if item.Pass == scene.PassLamp {
			pipeline, cameraGroup = r.lampPipeline, r.lampCameraGroup
		}
		if pipeline != current {
			pass.SetPipeline(pipeline)
			pass.SetBindGroup(0, cameraGroup, nil)
			current = pipeline
		}

		mesh := r.meshes[item.Mesh]
		pass.SetBindGroup(1, r.items[i].bindGroup, nil)
		pass.SetVertexBuffer(0, mesh.vertices, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.indices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}

	if err := pass.End(); err != nil {
		pass.Release()
		return fmt.Errorf("end render pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

// Release frees every GPU object. Safe on a partially initialised renderer.
func (r *Renderer) Release() {
	for i := range r.items {
		r.items[i].release()
	}
	r.items = nil

	for name, t := range r.textures {
		t.view.Release()
		t.texture.Release()
		delete(r.textures, name)
	}
	for _, m := range r.meshes {
		m.indices.Release()
		m.vertices.Release()
	}
	r.meshes = nil

	if r.litCameraGroup != nil {
		r.litCameraGroup.Release()
	}
	if r.lampCameraGroup != nil {
		r.lampCameraGroup.Release()
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	if r.depthView != nil {
		r.depthView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}
	if r.lampPipeline != nil {
		r.lampPipeline.Release()
	}
	if r.litPipeline != nil {
		r.litPipeline.Release()
	}
	if r.queue != nil {
		r.queue.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.surface != nil {
		r.surface.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
	*r = Renderer{window: r.window, textures: r.textures}
}
