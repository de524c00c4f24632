package ui

import (
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// Checkbox flips Value on release, not on press.
type Checkbox struct {
	Label   string
	Value   bool
	Changed bool
	hovered bool
	pressed bool
	box     float32
	size    gfx.Vec2
}

func newCheckbox(label string, value bool) *Checkbox {
	return &Checkbox{Label: label, Value: value}
}

func (c *Checkbox) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	d := u.Measure(c.Label, th.FontSize)
	c.box = d.Y + th.Padding
	c.size = gfx.V(c.box+2*th.Padding+d.X, c.box)

	var clicked bool
	c.hovered, clicked = pressable(u, gfx.Rect{X: u.At.X, Y: u.At.Y, W: c.size.X, H: c.size.Y}, &c.pressed)
	c.Changed = clicked
	if clicked {
		c.Value = !c.Value
	}
	return c.size
}

func (c *Checkbox) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	box := gfx.Rect{X: r.At.X, Y: r.At.Y, W: c.box, H: c.box}
	fill := th.Track
	if c.pressed {
		fill = th.WidgetPress
	} else if c.hovered {
		fill = th.WidgetHover
	}
	r.Base.FillRect(box, fill)
	if c.pressed {
		r.Base.StrokeRect(box, 2, colors.White)
	}
	if c.Value {
		r.Base.FillRect(box.Inset(1), th.Accent)
		// check mark
		a := r.At.Add(gfx.V(c.box*0.2, c.box*0.5))
		b := r.At.Add(gfx.V(c.box*0.4, c.box*0.75))
		e := r.At.Add(gfx.V(c.box*0.8, c.box*0.2))
		r.Base.Line(a, b, 2, colors.White)
		r.Base.Line(b, e, 2, colors.White)
	}
	col := th.TextDim
	if c.hovered {
		col = th.Text
	}
	r.Base.DrawText(c.Label, r.At.Add(gfx.V(c.box+2*th.Padding, th.Padding*0.5)), th.FontSize, col)
	return c.size
}
