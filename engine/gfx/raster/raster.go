// Package raster is a software gfx.Renderer drawing into image.RGBA. It is
// deterministic, needs no GPU and backs headless snapshots and tests.
package raster

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/hubastard/panes/engine/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maxSurfacePixels caps a single offscreen allocation (64 MiB of RGBA).
const maxSurfacePixels = 1 << 24

var ErrSurfaceSize = errors.New("raster: invalid surface size")

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

type canvas struct {
	img   *image.RGBA
	faces *text.Faces
	path  vector.Rasterizer
}

func (c *canvas) FillRect(r gfx.Rect, col colors.Color) {
	if c.img == nil || r.Empty() || col[3] <= 0 {
		return
	}
	draw.Draw(c.img, pixelRect(r), image.NewUniform(col.RGBA()), image.Point{}, draw.Over)
}

// StrokeRect draws the outline inside r.
func (c *canvas) StrokeRect(r gfx.Rect, t float32, col colors.Color) {
	if t <= 0 {
		return
	}
	t = math32.Min(t, math32.Min(r.W, r.H)*0.5)
	c.FillRect(gfx.R(r.X, r.Y, r.W, t), col)
	c.FillRect(gfx.R(r.X, r.Bottom()-t, r.W, t), col)
	c.FillRect(gfx.R(r.X, r.Y+t, t, r.H-2*t), col)
	c.FillRect(gfx.R(r.Right()-t, r.Y+t, t, r.H-2*t), col)
}

func (c *canvas) Line(a, b gfx.Vec2, t float32, col colors.Color) {
	d := b.Sub(a)
	l := d.Len()
	if c.img == nil || l == 0 || t <= 0 {
		return
	}
	n := gfx.V(-d.Y/l, d.X/l).Scale(t * 0.5)
	p := c.begin()
	p.MoveTo(a.X+n.X, a.Y+n.Y)
	p.LineTo(b.X+n.X, b.Y+n.Y)
	p.LineTo(b.X-n.X, b.Y-n.Y)
	p.LineTo(a.X-n.X, a.Y-n.Y)
	p.ClosePath()
	c.fill(col)
}

func (c *canvas) FillCircle(ctr gfx.Vec2, radius float32, col colors.Color) {
	if c.img == nil || radius <= 0 {
		return
	}
	p := c.begin()
	circlePath(p, ctr, radius, false)
	c.fill(col)
}

// StrokeCircle centres the ring on radius. The inner contour winds the
// other way so the accumulated coverage cancels inside it.
func (c *canvas) StrokeCircle(ctr gfx.Vec2, radius, t float32, col colors.Color) {
	if c.img == nil || radius <= 0 || t <= 0 {
		return
	}
	p := c.begin()
	circlePath(p, ctr, radius+t*0.5, false)
	if inner := radius - t*0.5; inner > 0 {
		circlePath(p, ctr, inner, true)
	}
	c.fill(col)
}

func (c *canvas) DrawImage(src image.Image, dst gfx.Rect, tint colors.Color) {
	if c.img == nil || src == nil || dst.Empty() {
		return
	}
	pr := pixelRect(dst)
	if tint == colors.White {
		draw.ApproxBiLinear.Scale(c.img, pr, src, src.Bounds(), draw.Over, nil)
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, pr.Dx(), pr.Dy()))
	draw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), src, src.Bounds(), draw.Src, nil)
	applyTint(tmp, tint)
	draw.Draw(c.img, pr, tmp, image.Point{}, draw.Over)
}

func (c *canvas) DrawText(s string, pos gfx.Vec2, size float32, col colors.Color) {
	if c.img == nil || s == "" {
		return
	}
	face := c.faces.Face(size)
	m := face.Metrics()
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col.RGBA()), Face: face}
	y := fixed.Int26_6(pos.Y*64) + fixed.I(m.Ascent.Ceil())
	for line := range strings.SplitSeq(s, "\n") {
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(pos.X * 64), Y: y}
		d.DrawString(line)
		y += fixed.I(m.Height.Ceil())
	}
}

// DrawSurface composites s, which must come from this package.
func (c *canvas) DrawSurface(s gfx.Surface, pos gfx.Vec2) {
	src, ok := s.(*Surface)
	if c.img == nil || !ok || src.img == nil {
		return
	}
	at := image.Pt(int(math32.Round(pos.X)), int(math32.Round(pos.Y)))
	draw.Draw(c.img, src.img.Bounds().Add(at), src.img, image.Point{}, draw.Over)
}

func (c *canvas) begin() *vector.Rasterizer {
	b := c.img.Bounds()
	c.path.Reset(b.Dx(), b.Dy())
	return &c.path
}

func (c *canvas) fill(col colors.Color) {
	c.path.DrawOp = draw.Over
	c.path.Draw(c.img, c.img.Bounds(), image.NewUniform(col.RGBA()), image.Point{})
}

func circlePath(p *vector.Rasterizer, ctr gfx.Vec2, r float32, reverse bool) {
	k := r * kappa
	cx, cy := ctr.X, ctr.Y
	p.MoveTo(cx+r, cy)
	if !reverse {
		p.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		p.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		p.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		p.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		p.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		p.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		p.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		p.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	p.ClosePath()
}

// applyTint multiplies premultiplied pixels by a straight-alpha tint.
func applyTint(img *image.RGBA, tint colors.Color) {
	a := tint[3]
	mul := [4]float32{tint[0] * a, tint[1] * a, tint[2] * a, a}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		for ch := 0; ch < 4; ch++ {
			img.Pix[i+ch] = uint8(float32(img.Pix[i+ch])*gfx.Clamp(mul[ch], 0, 1) + 0.5)
		}
	}
}

func pixelRect(r gfx.Rect) image.Rectangle {
	return image.Rect(
		int(math32.Round(r.X)), int(math32.Round(r.Y)),
		int(math32.Round(r.Right())), int(math32.Round(r.Bottom())),
	)
}

// Surface is an offscreen RGBA layer.
type Surface struct {
	canvas
	owner *Renderer
}

func (s *Surface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear replaces every pixel with c.
func (s *Surface) Clear(c colors.Color) {
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

// Image exposes the pixels; nil after Release.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Release() {
	if s.img == nil {
		return
	}
	s.img = nil
	s.owner.live--
}

// Renderer draws the screen into an RGBA image of fixed size.
type Renderer struct {
	canvas
	cursor gfx.CursorIcon
	live   int
	allocs int
}

func New(w, h int, faces *text.Faces) *Renderer {
	if faces == nil {
		faces = text.Default()
	}
	return &Renderer{canvas: canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), faces: faces}}
}

// Image is the screen.
func (r *Renderer) Image() *image.RGBA { return r.img }

func (r *Renderer) Faces() *text.Faces { return r.faces }

// Resize reallocates the screen; its previous contents are lost.
func (r *Renderer) Resize(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
}

func (r *Renderer) Clear(c colors.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c.RGBA()), image.Point{}, draw.Src)
}

func (r *Renderer) ScreenSize() gfx.Vec2 {
	b := r.img.Bounds()
	return gfx.V(float32(b.Dx()), float32(b.Dy()))
}

func (r *Renderer) MeasureText(s string, size float32) gfx.Vec2 {
	return r.faces.MeasureText(s, size)
}

func (r *Renderer) NewSurface(w, h int) (gfx.Surface, error) {
	if w <= 0 || h <= 0 || w*h > maxSurfacePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrSurfaceSize, w, h)
	}
	r.live++
	r.allocs++
	return &Surface{canvas: canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), faces: r.faces}, owner: r}, nil
}

func (r *Renderer) SetCursor(c gfx.CursorIcon) { r.cursor = c }
func (r *Renderer) Cursor() gfx.CursorIcon     { return r.cursor }

// LiveSurfaces counts surfaces allocated and not yet released.
func (r *Renderer) LiveSurfaces() int { return r.live }

// Allocations counts every surface ever allocated.
func (r *Renderer) Allocations() int { return r.allocs }
