package glbackend

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/panes/engine/core"
)

// RendererGL implements core.Renderer on an OpenGL 3.3 core context that
// the platform window has made current.
type RendererGL struct {
	win        core.Window
	fbW, fbH   int
	bound      *renderTarget
	activePipe *pipeline
}

type pipeline struct {
	prog      uint32
	desc      core.PipelineDesc
	locations map[string]int32
}

func (p *pipeline) ID() uint32 { return p.prog }

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.prog, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

type mesh struct {
	vao, vbo, ebo uint32
	vcap, icap    int
	count         int
}

func (m *mesh) IndexCount() int { return m.count }

type renderTarget struct {
	fbo uint32
	tex *texture
}

func (r *renderTarget) Texture() core.Texture { return r.tex }
func (r *renderTarget) Size() (int, int)      { return r.tex.w, r.tex.h }

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if r.win != nil {
		r.fbW, r.fbH = r.win.FramebufferSize()
	}
	slog.Info("gl renderer ready", "vendor", r.GPUVendor(), "renderer", r.GPURenderer(), "version", r.GPUVersion())
	return nil
}

func (r *RendererGL) Shutdown() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.UseProgram(0)
	r.bound, r.activePipe = nil, nil
}

func (r *RendererGL) Resize(w, h int) {
	r.fbW, r.fbH = w, h
	if r.bound == nil {
		gl.Viewport(0, 0, int32(w), int32(h))
	}
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *RendererGL) GPUVendor() string   { return glString(gl.VENDOR) }
func (r *RendererGL) GPURenderer() string { return glString(gl.RENDERER) }
func (r *RendererGL) GPUVersion() string  { return glString(gl.VERSION) }

func glString(name uint32) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(cstr(desc.VertexSource), cstr(desc.FragmentSource))
	if err != nil {
		return nil, err
	}
	return &pipeline{prog: prog, desc: desc, locations: map[string]int32{}}, nil
}

func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("texture format %d unsupported", desc.Format)
	}
	if desc.Pixels != nil && len(desc.Pixels) < desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("texture %dx%d: %d bytes of pixels", desc.Width, desc.Height, len(desc.Pixels))
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	var pix unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pix = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func filter(s string) int32 {
	if s == "nearest" {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (r *RendererGL) DeleteTexture(t core.Texture) {
	if tt, ok := t.(*texture); ok && tt.id != 0 {
		gl.DeleteTextures(1, &tt.id)
		tt.id = 0
	}
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &mesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)

	for _, a := range desc.Layout.Attributes {
		if a.Type != core.AttribFloat32 {
			return nil, fmt.Errorf("vertex attribute %d: type %d unsupported", a.Location, a.Type)
		}
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, desc.Layout.Stride, uintptr(a.Offset))
	}
	gl.BindVertexArray(0)

	if err := r.UpdateMesh(m, desc.Vertices, desc.Indices); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMesh uploads new contents, growing the buffers when needed.
func (r *RendererGL) UpdateMesh(cm core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return errors.New("update mesh: foreign mesh")
	}
	gl.BindVertexArray(m.vao)
	if len(vertices) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		if len(vertices) > m.vcap {
			gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
			m.vcap = len(vertices)
		} else {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
		}
	}
	if len(indices) > 0 {
		if len(indices) > m.icap {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.DYNAMIC_DRAW)
			m.icap = len(indices)
		} else {
			gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
		}
	}
	m.count = len(indices)
	gl.BindVertexArray(0)
	return nil
}

func (r *RendererGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	m, ok2 := cmd.Mesh.(*mesh)
	if !ok || !ok2 {
		return
	}
	r.usePipeline(p)

	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		switch u := v.(type) {
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &u[0])
		case [4]float32:
			gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
		case [2]float32:
			gl.Uniform2f(loc, u[0], u[1])
		case float32:
			gl.Uniform1f(loc, u)
		case int:
			gl.Uniform1i(loc, int32(u))
		case int32:
			gl.Uniform1i(loc, u)
		default:
			slog.Warn("gl: unsupported uniform type", "name", name, "type", fmt.Sprintf("%T", v))
		}
	}

	var unit uint32
	for name, t := range cmd.Samplers {
		tt, ok := t.(*texture)
		if !ok {
			continue
		}
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + unit)
		gl.BindTexture(gl.TEXTURE_2D, tt.id)
		gl.Uniform1i(loc, int32(unit))
		unit++
	}

	n := m.count
	if cmd.IndexCount > 0 && cmd.IndexCount < n {
		n = cmd.IndexCount
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(n), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (r *RendererGL) usePipeline(p *pipeline) {
	if r.activePipe == p {
		return
	}
	r.activePipe = p
	gl.UseProgram(p.prog)
	if p.desc.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if !p.desc.Blend {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	if p.desc.Premultiplied {
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (r *RendererGL) CreateRenderTarget(w, h int) (core.RenderTarget, error) {
	t, err := r.CreateTexture(core.TextureDesc{
		Width: w, Height: h, Format: core.TextureRGBA8,
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("render target: %w", err)
	}
	rt := &renderTarget{tex: t.(*texture)}
	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	r.rebind()
	if status != gl.FRAMEBUFFER_COMPLETE {
		r.DeleteRenderTarget(rt)
		return nil, fmt.Errorf("render target %dx%d: framebuffer status 0x%x", w, h, status)
	}
	return rt, nil
}

// BindRenderTarget directs drawing into rt, or the window when rt is nil.
func (r *RendererGL) BindRenderTarget(crt core.RenderTarget) {
	rt, _ := crt.(*renderTarget)
	r.bound = rt
	r.rebind()
}

func (r *RendererGL) rebind() {
	if r.bound == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(r.fbW), int32(r.fbH))
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.bound.fbo)
	gl.Viewport(0, 0, int32(r.bound.tex.w), int32(r.bound.tex.h))
}

func (r *RendererGL) DeleteRenderTarget(crt core.RenderTarget) {
	rt, ok := crt.(*renderTarget)
	if !ok {
		return
	}
	if r.bound == rt {
		r.bound = nil
		r.rebind()
	}
	if rt.fbo != 0 {
		gl.DeleteFramebuffers(1, &rt.fbo)
		rt.fbo = 0
	}
	r.DeleteTexture(rt.tex)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
