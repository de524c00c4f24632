// Package renderer2d batches textured quads onto a core.Renderer and
// adapts the batcher to gfx.Renderer through Canvas.
package renderer2d

import (
	_ "embed"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
)

// Default shader sources. Vertex colors and textures are premultiplied.
var (
	//go:embed shaders/quad.vert
	DefaultVertexShader string
	//go:embed shaders/quad.frag
	DefaultFragmentShader string
)

const (
	maxTexSlots = 16

	// x, y, r, g, b, a, u, v, slot
	floatsPerVertex = 9
	vertsPerQuad    = 4
	indsPerQuad     = 6
)

var quadLayout = core.VertexLayout{
	Stride: floatsPerVertex * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4},
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4},
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4},
	},
}

// Statistics counts the work submitted since BeginScene.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }
func (s Statistics) TotalIndexCount() int  { return s.QuadCount * indsPerQuad }

// Quad is one rectangle centred on (X, Y), rotated by Rot radians. A nil
// Tex draws solid Tint.
type Quad struct {
	X, Y, W, H float32
	Rot        float32
	Tint       colors.Color
	Tex        core.Texture
	UV         [4]float32 // u0, v0, u1, v1
}

var fullUV = [4]float32{0, 0, 1, 1}

type Renderer2D struct {
	dev   core.Renderer
	pipe  core.Pipeline
	mesh  core.Mesh
	white core.Texture

	verts    []float32
	indices  []uint32 // fixed pattern for maxQuads quads
	quads    int
	maxQuads int

	slots    [maxTexSlots]core.Texture
	used     int
	names    [maxTexSlots]string
	samplers map[string]core.Texture
	uniforms map[string]any
	extra    map[string]any

	vp    [16]float32
	stats Statistics
	err   error
}

// New compiles the quad pipeline and allocates a mesh for maxQuads quads.
// Empty shader sources fall back to the embedded defaults.
func New(dev core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	if vertSrc == "" {
		vertSrc = DefaultVertexShader
	}
	if fragSrc == "" {
		fragSrc = DefaultFragmentShader
	}
	pipe, err := dev.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
		Premultiplied:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: pipeline: %w", err)
	}
	white, err := dev.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: white texture: %w", err)
	}

	rd := &Renderer2D{
		dev:      dev,
		pipe:     pipe,
		white:    white,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*floatsPerVertex),
		indices:  quadIndices(maxQuads),
		samplers: make(map[string]core.Texture, maxTexSlots),
		uniforms: make(map[string]any, 4),
		extra:    map[string]any{},
	}
	rd.mesh, err = dev.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*floatsPerVertex),
		Indices:  rd.indices,
		Layout:   quadLayout,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: mesh: %w", err)
	}
	for i := range rd.names {
		rd.names[i] = fmt.Sprintf("uTex[%d]", i)
	}
	rd.resetBatch()
	return rd, nil
}

// quadIndices builds two triangles (TL, BL, TR) (TR, BL, BR) per quad.
func quadIndices(n int) []uint32 {
	out := make([]uint32, 0, n*indsPerQuad)
	for q := range uint32(n) {
		b := q * vertsPerQuad
		out = append(out, b, b+2, b+1, b+1, b+2, b+3)
	}
	return out
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.err = nil
	rd.resetBatch()
}

// EndScene flushes the batch and reports the first upload error of the
// scene, if any.
func (rd *Renderer2D) EndScene() error {
	rd.flush()
	return rd.err
}

// SetViewProjection flushes pending quads and switches the projection,
// e.g. when drawing moves to another render target mid-scene.
func (rd *Renderer2D) SetViewProjection(vp [16]float32) {
	rd.flush()
	rd.vp = vp
}

func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// SetUniform sends value with every following draw; nil removes it.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if value == nil {
		delete(rd.extra, name)
		return
	}
	rd.extra[name] = value
}

func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rot float32) {
	rd.Submit(Quad{X: x, Y: y, W: w, H: h, Rot: rot, Tint: color, UV: fullUV})
}

func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rot float32) {
	rd.Submit(Quad{X: x, Y: y, W: w, H: h, Rot: rot, Tint: tint, Tex: tex, UV: fullUV})
}

func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rot float32, u0, v0, u1, v1 float32) {
	rd.Submit(Quad{X: x, Y: y, W: w, H: h, Rot: rot, Tint: tint, Tex: tex, UV: [4]float32{u0, v0, u1, v1}})
}

func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rot float32) {
	rd.Submit(Quad{X: x, Y: y, W: w, H: h, Rot: rot, Tint: tint, Tex: sub.Texture, UV: sub.UV()})
}

// Submit appends q to the batch, flushing first when the batch is full
// or out of texture slots.
func (rd *Renderer2D) Submit(q Quad) {
	if rd.quads >= rd.maxQuads {
		rd.flush()
	}
	tex := q.Tex
	if tex == nil {
		tex = rd.white
	}
	slot := float32(rd.slot(tex))

	hw, hh := q.W*0.5, q.H*0.5
	s, c := math32.Sincos(q.Rot)
	a := q.Tint[3]
	r, g, b := q.Tint[0]*a, q.Tint[1]*a, q.Tint[2]*a
	u0, v0, u1, v1 := q.UV[0], q.UV[1], q.UV[2], q.UV[3]
	// TL, TR, BL, BR; Y grows downward.
	for _, p := range [4][4]float32{{-hw, -hh, u0, v0}, {hw, -hh, u1, v0}, {-hw, hh, u0, v1}, {hw, hh, u1, v1}} {
		rd.verts = append(rd.verts,
			p[0]*c-p[1]*s+q.X, p[0]*s+p[1]*c+q.Y,
			r, g, b, a,
			p[2], p[3],
			slot)
	}
	rd.quads++
	rd.stats.QuadCount++
}

// slot returns tex's sampler slot in the current batch.
func (rd *Renderer2D) slot(tex core.Texture) int {
	for i := range rd.used {
		if rd.slots[i] == tex {
			return i
		}
	}
	if rd.used == maxTexSlots {
		rd.flush()
	}
	rd.slots[rd.used] = tex
	rd.used++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.used)
	return rd.used - 1
}

func (rd *Renderer2D) flush() {
	if rd.quads == 0 {
		return
	}
	defer rd.resetBatch()

	if err := rd.dev.UpdateMesh(rd.mesh, rd.verts, rd.indices[:rd.quads*indsPerQuad]); err != nil {
		if rd.err == nil {
			rd.err = fmt.Errorf("renderer2d: upload batch: %w", err)
		}
		return
	}

	clear(rd.samplers)
	for i := range rd.used {
		rd.samplers[rd.names[i]] = rd.slots[i]
	}
	clear(rd.uniforms)
	for k, v := range rd.extra {
		rd.uniforms[k] = v
	}
	rd.uniforms["uVP"] = rd.vp

	rd.dev.Draw(core.DrawCmd{Pipe: rd.pipe, Mesh: rd.mesh, Uniforms: rd.uniforms, Samplers: rd.samplers})
	rd.stats.DrawCalls++
}

// resetBatch empties the batch; the white texture always owns slot 0.
func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.quads = 0
	clear(rd.slots[:])
	rd.slots[0] = rd.white
	rd.used = 1
}
