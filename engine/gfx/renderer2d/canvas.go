package renderer2d

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/hubastard/panes/engine/scene"
	"github.com/hubastard/panes/engine/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const diskSize = 64

// Canvas implements gfx.Renderer on the quad batcher. Offscreen surfaces
// are render targets; drawing into one flushes the batch, binds its target
// and swaps in a camera sized to it.
type Canvas struct {
	rd        *Renderer2D
	dev       core.Renderer
	faces     *text.Faces
	atlases   map[float32]*text.Atlas
	textures  map[image.Image]core.Texture
	disk      core.Texture
	cam       *scene.OrthoCamera2D
	screen    gfx.Vec2
	target    *Surface
	setCursor func(gfx.CursorIcon)
}

// NewCanvas wraps rd. setCursor may be nil when no window shows a cursor.
func NewCanvas(rd *Renderer2D, dev core.Renderer, faces *text.Faces, setCursor func(gfx.CursorIcon)) (*Canvas, error) {
	if faces == nil {
		faces = text.Default()
	}
	disk, err := dev.CreateTexture(core.TextureDesc{
		Width: diskSize, Height: diskSize,
		Format:    core.TextureRGBA8,
		Pixels:    diskPixels(diskSize),
		MinFilter: "linear", MagFilter: "linear",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("circle mask: %w", err)
	}
	return &Canvas{
		rd: rd, dev: dev, faces: faces,
		atlases:   map[float32]*text.Atlas{},
		textures:  map[image.Image]core.Texture{},
		disk:      disk,
		cam:       scene.NewScreenCamera(1, 1),
		setCursor: setCursor,
	}, nil
}

// diskPixels rasterizes an antialiased white disk, premultiplied.
func diskPixels(n int) []byte {
	var z vector.Rasterizer
	z.Reset(n, n)
	r := float32(n) * 0.5
	const k = 0.5522847498
	z.MoveTo(2*r, r)
	z.CubeTo(2*r, r+r*k, r+r*k, 2*r, r, 2*r)
	z.CubeTo(r-r*k, 2*r, 0, r+r*k, 0, r)
	z.CubeTo(0, r-r*k, r-r*k, 0, r, 0)
	z.CubeTo(r+r*k, 0, 2*r, r-r*k, 2*r, r)
	z.ClosePath()
	dst := image.NewRGBA(image.Rect(0, 0, n, n))
	z.Draw(dst, dst.Bounds(), image.White, image.Point{})
	return dst.Pix
}

// Begin starts a frame on the default framebuffer of w x h pixels.
func (c *Canvas) Begin(w, h int) {
	c.screen = gfx.V(float32(w), float32(h))
	c.target = nil
	c.cam.SetScreenPixels(w, h)
	c.rd.BeginScene(c.cam.VP())
}

// End flushes everything and leaves the default framebuffer bound.
func (c *Canvas) End() error {
	c.use(nil)
	return c.rd.EndScene()
}

func (c *Canvas) Stats() Statistics { return c.rd.Stats() }

// use redirects subsequent quads to s (nil is the screen).
func (c *Canvas) use(s *Surface) {
	if c.target == s {
		return
	}
	c.rd.flush()
	if s == nil {
		c.dev.BindRenderTarget(nil)
		c.cam.SetScreenPixels(int(c.screen.X), int(c.screen.Y))
	} else {
		c.dev.BindRenderTarget(s.rt)
		c.cam.SetScreenPixels(s.rt.Size())
	}
	c.target = s
	c.rd.SetViewProjection(c.cam.VP())
}

func (c *Canvas) atlas(size float32) *text.Atlas {
	if a, ok := c.atlases[size]; ok {
		return a
	}
	a, err := text.NewAtlas(c.dev, c.faces, size)
	if err != nil {
		c.atlases[size] = nil
		return nil
	}
	c.atlases[size] = a
	return a
}

func (c *Canvas) texture(img image.Image) (core.Texture, error) {
	if t, ok := c.textures[img]; ok {
		return t, nil
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	t, err := c.dev.CreateTexture(core.TextureDesc{
		Width: b.Dx(), Height: b.Dy(),
		Format:    core.TextureRGBA8,
		Pixels:    rgba.Pix,
		MinFilter: "linear", MagFilter: "linear",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}
	c.textures[img] = t
	return t, nil
}

// ForgetImage frees the texture cached for img.
func (c *Canvas) ForgetImage(img image.Image) {
	if t, ok := c.textures[img]; ok {
		c.dev.DeleteTexture(t)
		delete(c.textures, img)
	}
}

// Release frees every texture the canvas created.
func (c *Canvas) Release() {
	for img := range c.textures {
		c.ForgetImage(img)
	}
	for _, a := range c.atlases {
		if a != nil {
			c.dev.DeleteTexture(a.Texture)
		}
	}
	clear(c.atlases)
	c.dev.DeleteTexture(c.disk)
}

// drawing shared by the screen and surfaces

func (c *Canvas) fillRect(r gfx.Rect, col colors.Color) {
	if r.Empty() || col[3] <= 0 {
		return
	}
	ctr := r.Center()
	c.rd.DrawQuad(ctr.X, ctr.Y, r.W, r.H, col, 0)
}

func (c *Canvas) strokeRect(r gfx.Rect, t float32, col colors.Color) {
	if t <= 0 {
		return
	}
	t = math32.Min(t, math32.Min(r.W, r.H)*0.5)
	c.fillRect(gfx.R(r.X, r.Y, r.W, t), col)
	c.fillRect(gfx.R(r.X, r.Bottom()-t, r.W, t), col)
	c.fillRect(gfx.R(r.X, r.Y+t, t, r.H-2*t), col)
	c.fillRect(gfx.R(r.Right()-t, r.Y+t, t, r.H-2*t), col)
}

func (c *Canvas) line(a, b gfx.Vec2, t float32, col colors.Color) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 || t <= 0 {
		return
	}
	m := a.Lerp(b, 0.5)
	c.rd.DrawQuad(m.X, m.Y, l, t, col, math32.Atan2(d.Y, d.X))
}

func (c *Canvas) fillCircle(ctr gfx.Vec2, radius float32, col colors.Color) {
	if radius <= 0 {
		return
	}
	c.rd.DrawTexturedQuad(ctr.X, ctr.Y, 2*radius, 2*radius, c.disk, col, 0)
}

// strokeCircle approximates the ring with one segment per ~4px of arc.
func (c *Canvas) strokeCircle(ctr gfx.Vec2, radius, t float32, col colors.Color) {
	if radius <= 0 || t <= 0 {
		return
	}
	n := int(gfx.Clamp(2*math32.Pi*radius/4, 12, 96))
	prev := gfx.V(ctr.X+radius, ctr.Y)
	for i := 1; i <= n; i++ {
		s, co := math32.Sincos(2 * math32.Pi * float32(i) / float32(n))
		p := gfx.V(ctr.X+radius*co, ctr.Y+radius*s)
		// overlap segments slightly so joints leave no gaps
		d := p.Sub(prev)
		ext := d.Scale(t * 0.5 / d.Len())
		c.line(prev.Sub(ext), p.Add(ext), t, col)
		prev = p
	}
}

func (c *Canvas) drawImage(img image.Image, dst gfx.Rect, tint colors.Color) {
	if img == nil || dst.Empty() {
		return
	}
	t, err := c.texture(img)
	if err != nil {
		return
	}
	ctr := dst.Center()
	c.rd.DrawTexturedQuad(ctr.X, ctr.Y, dst.W, dst.H, t, tint, 0)
}

func (c *Canvas) drawText(s string, pos gfx.Vec2, size float32, col colors.Color) {
	if s == "" {
		return
	}
	if a := c.atlas(size); a != nil {
		a.Draw(c.rd, s, pos.X, pos.Y, col)
	}
}

// drawSurface composites a render target. Targets are rendered Y-down, so
// their rows come out bottom-up and V is flipped.
func (c *Canvas) drawSurface(s gfx.Surface, pos gfx.Vec2) {
	src, ok := s.(*Surface)
	if !ok || src.rt == nil || src == c.target {
		return
	}
	w, h := src.rt.Size()
	fw, fh := float32(w), float32(h)
	c.rd.DrawTexturedQuadUV(pos.X+fw*0.5, pos.Y+fh*0.5, fw, fh, src.rt.Texture(), colors.White, 0, 0, 1, 1, 0)
}

// gfx.Renderer on the screen

func (c *Canvas) FillRect(r gfx.Rect, col colors.Color) { c.use(nil); c.fillRect(r, col) }
func (c *Canvas) StrokeRect(r gfx.Rect, t float32, col colors.Color) {
	c.use(nil)
	c.strokeRect(r, t, col)
}
func (c *Canvas) Line(a, b gfx.Vec2, t float32, col colors.Color) { c.use(nil); c.line(a, b, t, col) }
func (c *Canvas) FillCircle(ctr gfx.Vec2, radius float32, col colors.Color) {
	c.use(nil)
	c.fillCircle(ctr, radius, col)
}
func (c *Canvas) StrokeCircle(ctr gfx.Vec2, radius, t float32, col colors.Color) {
	c.use(nil)
	c.strokeCircle(ctr, radius, t, col)
}
func (c *Canvas) DrawImage(img image.Image, dst gfx.Rect, tint colors.Color) {
	c.use(nil)
	c.drawImage(img, dst, tint)
}
func (c *Canvas) DrawText(s string, pos gfx.Vec2, size float32, col colors.Color) {
	c.use(nil)
	c.drawText(s, pos, size, col)
}
func (c *Canvas) DrawSurface(s gfx.Surface, pos gfx.Vec2) { c.use(nil); c.drawSurface(s, pos) }

func (c *Canvas) MeasureText(s string, size float32) gfx.Vec2 { return c.faces.MeasureText(s, size) }
func (c *Canvas) ScreenSize() gfx.Vec2                        { return c.screen }

func (c *Canvas) SetCursor(ic gfx.CursorIcon) {
	if c.setCursor != nil {
		c.setCursor(ic)
	}
}

func (c *Canvas) NewSurface(w, h int) (gfx.Surface, error) {
	rt, err := c.dev.CreateRenderTarget(w, h)
	if err != nil {
		return nil, fmt.Errorf("render target %dx%d: %w", w, h, err)
	}
	return &Surface{c: c, rt: rt}, nil
}

// Surface is an offscreen render target drawn through its canvas.
type Surface struct {
	c  *Canvas
	rt core.RenderTarget
}

func (s *Surface) Size() (int, int) {
	if s.rt == nil {
		return 0, 0
	}
	return s.rt.Size()
}

func (s *Surface) Clear(col colors.Color) {
	if s.rt == nil {
		return
	}
	s.c.use(s)
	s.c.rd.flush()
	a := col[3]
	s.c.dev.Clear(col[0]*a, col[1]*a, col[2]*a, a)
}

func (s *Surface) Release() {
	if s.rt == nil {
		return
	}
	if s.c.target == s {
		s.c.use(nil)
	}
	s.c.dev.DeleteRenderTarget(s.rt)
	s.rt = nil
}

func (s *Surface) ok() bool {
	if s.rt == nil {
		return false
	}
	s.c.use(s)
	return true
}

func (s *Surface) FillRect(r gfx.Rect, col colors.Color) {
	if s.ok() {
		s.c.fillRect(r, col)
	}
}
func (s *Surface) StrokeRect(r gfx.Rect, t float32, col colors.Color) {
	if s.ok() {
		s.c.strokeRect(r, t, col)
	}
}
func (s *Surface) Line(a, b gfx.Vec2, t float32, col colors.Color) {
	if s.ok() {
		s.c.line(a, b, t, col)
	}
}
func (s *Surface) FillCircle(ctr gfx.Vec2, radius float32, col colors.Color) {
	if s.ok() {
		s.c.fillCircle(ctr, radius, col)
	}
}
func (s *Surface) StrokeCircle(ctr gfx.Vec2, radius, t float32, col colors.Color) {
	if s.ok() {
		s.c.strokeCircle(ctr, radius, t, col)
	}
}
func (s *Surface) DrawImage(img image.Image, dst gfx.Rect, tint colors.Color) {
	if s.ok() {
		s.c.drawImage(img, dst, tint)
	}
}
func (s *Surface) DrawText(str string, pos gfx.Vec2, size float32, col colors.Color) {
	if s.ok() {
		s.c.drawText(str, pos, size, col)
	}
}

// DrawSurface composites src into s; a surface cannot draw itself.
func (s *Surface) DrawSurface(src gfx.Surface, pos gfx.Vec2) {
	if s.ok() {
		s.c.drawSurface(src, pos)
	}
}
