package renderer2d

import "github.com/hubastard/panes/engine/core"

// SubTexture2D is a UV sub-rectangle of a texture, with V growing
// downward like the pixel rows it was uploaded from.
type SubTexture2D struct {
	Texture core.Texture
	U0, V0  float32
	U1, V1  float32
}

func (s SubTexture2D) UV() [4]float32 { return [4]float32{s.U0, s.V0, s.U1, s.V1} }

// FromPixels selects the w x h pixel block at (x, y) of a texW x texH
// texture.
func FromPixels(tex core.Texture, x, y, w, h, texW, texH int) SubTexture2D {
	fw, fh := float32(texW), float32(texH)
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x) / fw,
		V0:      float32(y) / fh,
		U1:      float32(x+w) / fw,
		V1:      float32(y+h) / fh,
	}
}

// FromGrid selects cell (cx, cy) of a grid of cw x ch cells.
func FromGrid(tex core.Texture, cx, cy, cw, ch, texW, texH int) SubTexture2D {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch, texW, texH)
}

// Tiles slices a tileset into its cells, row by row.
func Tiles(tex core.Texture, cw, ch, texW, texH int) []SubTexture2D {
	var out []SubTexture2D
	for cy := range texH / ch {
		for cx := range texW / cw {
			out = append(out, FromGrid(tex, cx, cy, cw, ch, texW, texH))
		}
	}
	return out
}
