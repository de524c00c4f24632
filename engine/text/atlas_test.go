package text

import (
	"image"
	"testing"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct{ w, h int }

func (t fakeTexture) Size() (int, int) { return t.w, t.h }

// fakeDevice only implements texture creation; anything else panics.
type fakeDevice struct {
	core.Renderer
	uploads []core.TextureDesc
}

func (d *fakeDevice) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	d.uploads = append(d.uploads, desc)
	return fakeTexture{desc.Width, desc.Height}, nil
}

type quad struct{ x, y, w, h float32 }

type sink struct{ quads []quad }

func (s *sink) DrawTexturedQuadUV(x, y, w, h float32, _ core.Texture, _ colors.Color, _ float32, _, _, _, _ float32) {
	s.quads = append(s.quads, quad{x, y, w, h})
}

func TestPackGlyphsNoOverlap(t *testing.T) {
	f := Default()
	defer f.Close()
	img, glyphs, err := packGlyphs(f.Face(24), latin1())
	require.NoError(t, err)

	size := img.Rect.Dx()
	var rects []image.Rectangle
	for _, g := range glyphs {
		if g.W == 0 || g.H == 0 {
			continue
		}
		assert.GreaterOrEqual(t, g.U0, float32(0))
		assert.LessOrEqual(t, g.U1, float32(1))
		assert.LessOrEqual(t, g.V1, float32(1))
		x0 := int(g.U0*float32(size) + 0.5)
		y0 := int(g.V0*float32(size) + 0.5)
		rects = append(rects, image.Rect(x0, y0, x0+g.W, y0+g.H))
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			require.False(t, rects[i].Overlaps(rects[j]), "%v overlaps %v", rects[i], rects[j])
		}
	}
}

func TestShelfPackGrows(t *testing.T) {
	boxes := []glyphBox{{r: 'a', w: 200, h: 200}, {r: 'b', w: 200, h: 200}}
	_, ok := shelfPack(boxes, 256)
	assert.False(t, ok)
	pos, ok := shelfPack(boxes, 512)
	require.True(t, ok)
	assert.Len(t, pos, 2)
}

func TestNewAtlasUploadsOnce(t *testing.T) {
	dev := &fakeDevice{}
	a, err := NewAtlas(dev, Fixed(), 13)
	require.NoError(t, err)
	require.Len(t, dev.uploads, 1)
	assert.Equal(t, dev.uploads[0].Width*dev.uploads[0].Height*4, len(dev.uploads[0].Pixels))
	assert.Equal(t, float32(11), a.Ascent)
	assert.Equal(t, float32(13), a.LineHeight)
}

func TestAtlasDrawLayout(t *testing.T) {
	a, err := NewAtlas(&fakeDevice{}, Fixed(), 13)
	require.NoError(t, err)

	var s sink
	a.Draw(&s, "ab\nc", 10, 20, colors.White)
	require.Len(t, s.quads, 3)
	// 7px monospace advance on the first line
	assert.InDelta(t, 7, s.quads[1].x-s.quads[0].x, 0.001)
	// the third glyph starts a new line back at the left edge
	assert.InDelta(t, s.quads[0].x, s.quads[2].x, 0.001)
	assert.InDelta(t, 13, s.quads[2].y-s.quads[0].y, 0.001)
}
