package opengl

import (
	"fmt"
	"strings"

	"github.com/gekko3d/deskscene/forward/core"
	"github.com/gekko3d/deskscene/forward/scene"
	"github.com/gekko3d/deskscene/forward/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

type litProgram struct {
	id            uint32
	model         int32
	normalMatrix  int32
	view          int32
	projection    int32
	tint          int32
	eye           int32
	baseTexture   int32
	lightPosition int32
	lightColor    int32
	lightShading  int32
}

type lampProgram struct {
	id         uint32
	model      int32
	view       int32
	projection int32
	lampColor  int32
}

// Renderer draws the scene with OpenGL 4.1 core into a glfw window that owns
// a GL context. All calls must happen on the thread that owns the context.
type Renderer struct {
	window *glfw.Window

	lit  litProgram
	lamp lampProgram

	meshes   []glMesh
	textures map[string]uint32
}

// NewRenderer makes the window's context current, loads GL entry points and
// builds both shader programs.
func NewRenderer(window *glfw.Window) (*Renderer, error) {
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	glfw.SwapInterval(1)

	r := &Renderer{
		window:   window,
		textures: make(map[string]uint32),
	}

	litID, err := newProgram(shaders.LitVertGLSL, shaders.LitFragGLSL)
	if err != nil {
		return nil, fmt.Errorf("lit program: %w", err)
	}
	r.lit = litProgram{
		id:            litID,
		model:         uniform(litID, "model"),
		normalMatrix:  uniform(litID, "normalMatrix"),
		view:          uniform(litID, "view"),
		projection:    uniform(litID, "projection"),
		tint:          uniform(litID, "tint"),
		eye:           uniform(litID, "eye"),
		baseTexture:   uniform(litID, "baseTexture"),
		lightPosition: uniform(litID, "lightPosition"),
		lightColor:    uniform(litID, "lightColor"),
		lightShading:  uniform(litID, "lightShading"),
	}

	lampID, err := newProgram(shaders.LampVertGLSL, shaders.LampFragGLSL)
	if err != nil {
		gl.DeleteProgram(litID)
		return nil, fmt.Errorf("lamp program: %w", err)
	}
	r.lamp = lampProgram{
		id:         lampID,
		model:      uniform(lampID, "model"),
		view:       uniform(lampID, "view"),
		projection: uniform(lampID, "projection"),
		lampColor:  uniform(lampID, "lampColor"),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)
	return r, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// Upload creates a VAO per mesh (indexed by MeshId) and a mipmapped texture
// per image.
func (r *Renderer) Upload(meshes []core.Mesh, textures []core.Texture) error {
	layout, err := core.LayoutOf(core.Vertex{})
	if err != nil {
		return err
	}

	for _, m := range meshes {
		if len(m.Vertices) == 0 || len(m.Indices) == 0 {
			return fmt.Errorf("upload %s: empty mesh", m.Id)
		}

		var gm glMesh
		gl.GenVertexArrays(1, &gm.vao)
		gl.GenBuffers(1, &gm.vbo)
		gl.GenBuffers(1, &gm.ebo)

		gl.BindVertexArray(gm.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(layout.Stride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2, gl.Ptr(m.Indices), gl.STATIC_DRAW)

		for _, a := range layout.Attributes {
			gl.EnableVertexAttribArray(a.Location)
			gl.VertexAttribPointer(a.Location, int32(a.Components), gl.FLOAT, false, int32(layout.Stride), gl.PtrOffset(int(a.Offset)))
		}
		gl.BindVertexArray(0)

		gm.indexCount = int32(m.IndexCount())
		r.meshes = append(r.meshes, gm)
	}

	for _, t := range textures {
		if len(t.Pix) < t.Width*t.Height*4 || t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("upload texture %s: %dx%d with %d bytes", t.Name, t.Width, t.Height, len(t.Pix))
		}

		var id uint32
		gl.GenTextures(1, &id)
		gl.BindTexture(gl.TEXTURE_2D, id)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.Width), int32(t.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.Pix))
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		r.textures[t.Name] = id
	}
	return nil
}

// Draw clears to black, draws items in order and swaps buffers.
func (r *Renderer) Draw(frame *core.Frame, items []scene.DrawItem) error {
	if frame.Empty() {
		return nil
	}

	gl.Viewport(0, 0, int32(frame.Width), int32(frame.Height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	var positions, colors [shaders.LightCount * 3]float32
	var shading [shaders.LightCount * 4]float32
	for i, l := range frame.Lights {
		if i >= shaders.LightCount {
			break
		}
		copy(positions[i*3:], l.Position[:])
		copy(colors[i*3:], l.Color[:])
		shading[i*4+0] = l.Shading.Ambient
		shading[i*4+1] = l.Shading.Diffuse
		shading[i*4+2] = l.Shading.Specular
		shading[i*4+3] = l.Shading.Shininess
	}

	current := uint32(0)
	for i := range items {
		item := &items[i]
		if int(item.Mesh) >= len(r.meshes) {
			return fmt.Errorf("%s[%d]: mesh %s was not uploaded", item.Group, item.Index, item.Mesh)
		}

		if item.Pass == scene.PassLamp {
			if current != r.lamp.id {
				gl.UseProgram(r.lamp.id)
				gl.UniformMatrix4fv(r.lamp.view, 1, false, &frame.View[0])
				gl.UniformMatrix4fv(r.lamp.projection, 1, false, &frame.Projection[0])
				current = r.lamp.id
			}
			gl.UniformMatrix4fv(r.lamp.model, 1, false, &item.Model[0])
			gl.Uniform3f(r.lamp.lampColor, item.LampColor.X(), item.LampColor.Y(), item.LampColor.Z())
		} else {
			tex, ok := r.textures[item.Material.Texture]
			if !ok {
				return fmt.Errorf("%s[%d]: texture %q was not uploaded", item.Group, item.Index, item.Material.Texture)
			}
			if current != r.lit.id {
				gl.UseProgram(r.lit.id)
				gl.UniformMatrix4fv(r.lit.view, 1, false, &frame.View[0])
				gl.UniformMatrix4fv(r.lit.projection, 1, false, &frame.Projection[0])
				gl.Uniform3f(r.lit.eye, frame.Eye.X(), frame.Eye.Y(), frame.Eye.Z())
				gl.Uniform3fv(r.lit.lightPosition, shaders.LightCount, &positions[0])
				gl.Uniform3fv(r.lit.lightColor, shaders.LightCount, &colors[0])
				gl.Uniform4fv(r.lit.lightShading, shaders.LightCount, &shading[0])
				gl.Uniform1i(r.lit.baseTexture, 0)
				current = r.lit.id
			}
			normal := core.NormalMatrix(item.Model)
			gl.UniformMatrix4fv(r.lit.model, 1, false, &item.Model[0])
			gl.UniformMatrix4fv(r.lit.normalMatrix, 1, false, &normal[0])
			tint := item.Material.Tint
			gl.Uniform3f(r.lit.tint, tint.X(), tint.Y(), tint.Z())

			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex)
		}

		mesh := r.meshes[item.Mesh]
		gl.BindVertexArray(mesh.vao)
		gl.DrawElements(gl.TRIANGLES, mesh.indexCount, gl.UNSIGNED_SHORT, nil)
	}
	gl.BindVertexArray(0)

	r.window.SwapBuffers()
	return nil
}

// Release deletes every GL object. The context must still be current.
func (r *Renderer) Release() {
	for name, id := range r.textures {
		gl.DeleteTextures(1, &id)
		delete(r.textures, name)
	}
	for i := range r.meshes {
		m := &r.meshes[i]
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = nil

	if r.lit.id != 0 {
		gl.DeleteProgram(r.lit.id)
		r.lit = litProgram{}
	}
	if r.lamp.id != 0 {
		gl.DeleteProgram(r.lamp.id)
		r.lamp = lampProgram{}
	}
}
