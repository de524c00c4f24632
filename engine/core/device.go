package core

// Renderer is the low-level GPU device the 2D renderer batches onto.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	DeleteTexture(t Texture)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)

	// Render targets back offscreen surfaces. Binding nil restores the
	// default framebuffer.
	CreateRenderTarget(w, h int) (RenderTarget, error)
	BindRenderTarget(rt RenderTarget)
	DeleteRenderTarget(rt RenderTarget)
}

type Texture interface {
	Size() (w, h int)
}

type RenderTarget interface {
	Texture() Texture
	Size() (w, h int)
}

// Pipeline is a compiled shader program plus its fixed-function state.
type Pipeline interface{ ID() uint32 }

// Mesh is a vertex/index buffer pair; IndexCount is the last upload's size.
type Mesh interface{ IndexCount() int }

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
	// Premultiplied selects ONE, ONE_MINUS_SRC_ALPHA blending for sources
	// whose color is already multiplied by alpha.
	Premultiplied bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte
	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture
	// IndexCount limits the draw to the first n indices (0 = whole mesh).
	IndexCount int
}
