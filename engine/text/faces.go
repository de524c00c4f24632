// Package text turns font files into sized faces, measures strings with
// them and packs glyphs into atlases for the GPU renderer.
package text

import (
	"fmt"
	"strings"

	"github.com/hubastard/panes/engine/gfx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Faces hands out one face per pixel size for a single font. Faces are
// created lazily and kept until Close. It is meant to be used from the
// frame goroutine only.
type Faces struct {
	font  *opentype.Font // nil selects the fixed bitmap face
	cache map[float32]font.Face
}

// Parse reads a TrueType or OpenType font.
func Parse(data []byte) (*Faces, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Faces{font: f, cache: map[float32]font.Face{}}, nil
}

// Default returns the bundled Go Regular font. It falls back to Fixed if
// the embedded font cannot be parsed.
func Default() *Faces {
	f, err := Parse(goregular.TTF)
	if err != nil {
		return Fixed()
	}
	return f
}

// Fixed returns faces backed by the 7x13 bitmap font. Every size maps to
// the same face, so measurements ignore the requested size.
func Fixed() *Faces {
	return &Faces{cache: map[float32]font.Face{}}
}

// Face returns the face for size pixels, creating it on first use.
func (f *Faces) Face(size float32) font.Face {
	if f.font == nil {
		return basicfont.Face7x13
	}
	if size <= 0 {
		size = 1
	}
	if face, ok := f.cache[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size: float64(size), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	f.cache[size] = face
	return face
}

// Ascent is the distance from the top of a line to its baseline.
func (f *Faces) Ascent(size float32) float32 {
	return float32(f.Face(size).Metrics().Ascent.Ceil())
}

// LineHeight is the advance between consecutive baselines.
func (f *Faces) LineHeight(size float32) float32 {
	return float32(f.Face(size).Metrics().Height.Ceil())
}

// MeasureText reports the width of the widest line and the height of all
// lines of s. An empty string still occupies one line.
func (f *Faces) MeasureText(s string, size float32) gfx.Vec2 {
	face := f.Face(size)
	lineH := float32(face.Metrics().Height.Ceil())
	var w float32
	lines := 0
	for line := range strings.SplitSeq(s, "\n") {
		lines++
		if lw := toFloat(font.MeasureString(face, line)); lw > w {
			w = lw
		}
	}
	return gfx.V(w, lineH*float32(lines))
}

// Close releases every cached face.
func (f *Faces) Close() error {
	var first error
	for size, face := range f.cache {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
		delete(f.cache, size)
	}
	return first
}

func toFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
