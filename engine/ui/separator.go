package ui

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// Separator is a horizontal rule, or a vertical one inside a same-line row.
type Separator struct {
	thickness float32
	padding   float32
	color     colors.Color
	vertical  bool
	length    float32
	size      gfx.Vec2
}

func newSeparator() *Separator { return &Separator{thickness: 1, padding: -1} }

func (s *Separator) SetThickness(t float32) *Separator    { s.thickness = t; return s }
func (s *Separator) SetPadding(p float32) *Separator      { s.padding = p; return s }
func (s *Separator) SetColor(c colors.Color) *Separator   { s.color = c; return s }

func (s *Separator) pad(th *Theme) float32 {
	if s.padding < 0 {
		return th.Padding
	}
	return s.padding
}

func (s *Separator) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	p := s.pad(th)
	s.vertical = u.SameLine
	if s.vertical {
		s.length = u.Measure("Ag", th.FontSize).Y + 2*th.ButtonPadding
		s.size = gfx.V(s.thickness+2*p, s.length)
	} else {
		s.length = math32.Max(0, u.Width-th.Padding)
		s.size = gfx.V(s.length, s.thickness+2*p)
	}
	return s.size
}

func (s *Separator) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	col := s.color
	if col == (colors.Color{}) {
		col = th.Separator
	}
	p := s.pad(th)
	if s.vertical {
		r.Base.FillRect(gfx.Rect{X: r.At.X + p, Y: r.At.Y, W: s.thickness, H: s.length}, col)
	} else {
		r.Base.FillRect(gfx.Rect{X: r.At.X, Y: r.At.Y + p, W: s.length, H: s.thickness}, col)
	}
	return s.size
}
