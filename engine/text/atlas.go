package text

import (
	"fmt"
	"image"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	atlasPadding = 2
	atlasMinSize = 256
	atlasMaxSize = 4096
)

// Glyph locates one rune inside an atlas. Bearings and sizes are pixels.
type Glyph struct {
	Rune     rune
	Advance  float32
	BearingX float32 // pen to left edge
	BearingY float32 // baseline to top edge
	W, H     int
	U0, V0   float32
	U1, V1   float32
}

// Atlas is a white-on-transparent glyph sheet for one face and size,
// uploaded as a texture.
type Atlas struct {
	Size       float32
	Ascent     float32
	LineHeight float32
	Glyphs     map[rune]Glyph
	Texture    core.Texture
	W, H       int
	face       font.Face
}

// NewAtlas rasterizes Latin-1 at size and uploads the sheet to dev.
func NewAtlas(dev core.Renderer, faces *Faces, size float32) (*Atlas, error) {
	face := faces.Face(size)
	img, glyphs, err := packGlyphs(face, latin1())
	if err != nil {
		return nil, err
	}
	tex, err := dev.CreateTexture(core.TextureDesc{
		Width: img.Rect.Dx(), Height: img.Rect.Dy(),
		Format:    core.TextureRGBA8,
		Pixels:    img.Pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	m := face.Metrics()
	return &Atlas{
		Size:       size,
		Ascent:     float32(m.Ascent.Ceil()),
		LineHeight: float32(m.Height.Ceil()),
		Glyphs:     glyphs,
		Texture:    tex,
		W:          img.Rect.Dx(), H: img.Rect.Dy(),
		face:       face,
	}, nil
}

func latin1() []rune {
	runes := make([]rune, 0, 224)
	for r := rune(32); r <= 255; r++ {
		if r >= 127 && r < 160 {
			continue
		}
		runes = append(runes, r)
	}
	return runes
}

type glyphBox struct {
	r      rune
	w, h   int
	adv    float32
	bx, by int
}

// packGlyphs shelf-packs runes into the smallest square power-of-two sheet
// that holds them and draws them white with coverage in alpha.
func packGlyphs(face font.Face, runes []rune) (*image.RGBA, map[rune]Glyph, error) {
	boxes := make([]glyphBox, 0, len(runes))
	for _, r := range runes {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		x0, y0 := b.Min.X.Floor(), b.Min.Y.Floor()
		x1, y1 := b.Max.X.Ceil(), b.Max.Y.Ceil()
		boxes = append(boxes, glyphBox{
			r: r, w: x1 - x0, h: y1 - y0,
			adv: float32(adv) / 64,
			bx:  x0, by: -y0,
		})
	}

	size := atlasMinSize
	var pos map[rune]image.Point
	for {
		var ok bool
		pos, ok = shelfPack(boxes, size)
		if ok {
			break
		}
		size *= 2
		if size > atlasMaxSize {
			return nil, nil, fmt.Errorf("font atlas exceeds %dpx", atlasMaxSize)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	d := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	glyphs := make(map[rune]Glyph, len(boxes))
	inv := 1 / float32(size)
	for _, g := range boxes {
		gl := Glyph{Rune: g.r, Advance: g.adv, BearingX: float32(g.bx), BearingY: float32(g.by), W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			d.Dot = fixed.P(p.X-g.bx, p.Y+g.by)
			d.DrawString(string(g.r))
			gl.U0, gl.V0 = float32(p.X)*inv, float32(p.Y)*inv
			gl.U1, gl.V1 = float32(p.X+g.w)*inv, float32(p.Y+g.h)*inv
		}
		glyphs[g.r] = gl
	}
	return dst, glyphs, nil
}

// shelfPack places boxes left to right in rows. Empty glyphs get no slot.
func shelfPack(boxes []glyphBox, size int) (map[rune]image.Point, bool) {
	pos := make(map[rune]image.Point, len(boxes))
	x, y, rowH := atlasPadding, atlasPadding, 0
	for _, g := range boxes {
		if g.w <= 0 || g.h <= 0 {
			continue
		}
		if g.w+2*atlasPadding > size {
			return nil, false
		}
		if x+g.w+atlasPadding > size {
			x = atlasPadding
			y += rowH + atlasPadding
			rowH = 0
		}
		if y+g.h+atlasPadding > size {
			return nil, false
		}
		pos[g.r] = image.Pt(x, y)
		x += g.w + atlasPadding
		rowH = max(rowH, g.h)
	}
	return pos, true
}

// QuadSink receives one textured quad per glyph, positioned by its centre.
type QuadSink interface {
	DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32)
}

// Draw lays s out with its top-left corner at (x, y). Positive Y goes down.
// Runes missing from the atlas advance like a space.
func (a *Atlas) Draw(dst QuadSink, s string, x, y float32, c colors.Color) {
	penX := x
	baseY := y + a.Ascent
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += a.LineHeight
			prev = -1
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			penX += a.Glyphs[' '].Advance
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += float32(a.face.Kern(prev, r)) / 64
		}
		if g.W > 0 && g.H > 0 {
			left := penX + g.BearingX
			top := baseY - g.BearingY
			dst.DrawTexturedQuadUV(
				left+float32(g.W)*0.5, top+float32(g.H)*0.5,
				float32(g.W), float32(g.H),
				a.Texture, c, 0,
				g.U0, g.V0, g.U1, g.V1,
			)
		}
		penX += g.Advance
		prev = r
	}
}
