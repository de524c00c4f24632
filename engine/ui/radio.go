package ui

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/gfx"
)

// RadioButtons selects exactly one of Items. Options stack vertically, or
// horizontally inside a same-line row.
type RadioButtons struct {
	Items   []string
	Value   string
	Changed bool

	hoverIdx int
	armedIdx int
	rows     []gfx.Rect // option rects relative to the widget origin
	size     gfx.Vec2
}

func newRadioButtons(items []string, def string) *RadioButtons {
	rb := &RadioButtons{Items: slices.Clone(items), hoverIdx: -1, armedIdx: -1}
	rb.Value = validOption("radio", rb.Items, def)
	return rb
}

func (rb *RadioButtons) Selected() int { return slices.Index(rb.Items, rb.Value) }

func (rb *RadioButtons) layout(m gfx.TextMeasurer, th *Theme, horizontal bool) {
	rb.rows = rb.rows[:0]
	var cur gfx.Vec2
	rb.size = gfx.Vec2{}
	d := 2 * th.RadioOuter
	for _, it := range rb.Items {
		t := m.MeasureText(it, th.FontSize)
		r := gfx.Rect{X: cur.X, Y: cur.Y, W: d + th.Padding + t.X, H: math32.Max(d, t.Y) + 4}
		rb.rows = append(rb.rows, r)
		if horizontal {
			cur.X += r.W + 2*th.Padding
			rb.size.X = r.Right()
			rb.size.Y = math32.Max(rb.size.Y, r.H)
		} else {
			cur.Y += r.H
			rb.size.Y = r.Bottom()
			rb.size.X = math32.Max(rb.size.X, r.W)
		}
	}
}

func (rb *RadioButtons) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	in := u.Input()
	rb.layout(u.f.text, th, u.SameLine)
	rb.Changed = false

	rb.hoverIdx = -1
	for i, r := range rb.rows {
		if u.Over(r.Translate(u.At)) {
			rb.hoverIdx = i
			u.Consume()
			break
		}
	}
	if in.MousePressed && rb.hoverIdx >= 0 {
		rb.armedIdx = rb.hoverIdx
	}
	if rb.armedIdx >= 0 && in.MouseDown {
		u.Consume()
	}
	if in.MouseReleased {
		if rb.armedIdx >= 0 && rb.armedIdx == rb.hoverIdx {
			if v := rb.Items[rb.armedIdx]; v != rb.Value {
				rb.Value = v
				rb.Changed = true
			}
		}
		rb.armedIdx = -1
	}
	return rb.size
}

func (rb *RadioButtons) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	for i, row := range rb.rows {
		row = row.Translate(r.At)
		c := gfx.V(row.X+th.RadioOuter, row.Y+row.H/2)
		r.Base.FillCircle(c, th.RadioOuter, stateColor(th, i == rb.hoverIdx, i == rb.armedIdx))
		if rb.Items[i] == rb.Value {
			r.Base.FillCircle(c, th.RadioInner, th.Accent)
		}
		t := r.Measure(rb.Items[i], th.FontSize)
		r.Base.DrawText(rb.Items[i], gfx.V(row.X+2*th.RadioOuter+th.Padding, row.Y+(row.H-t.Y)/2), th.FontSize, th.Text)
	}
	return rb.size
}
