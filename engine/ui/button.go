package ui

import (
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// Button reports Clicked on the frame the mouse is released over it after
// a press that also started over it.
type Button struct {
	Label   string
	Clicked bool
	hovered bool
	pressed bool
	size    gfx.Vec2
}

func newButton(label string) *Button { return &Button{Label: label} }

func (b *Button) Hovered() bool { return b.hovered }
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) measure(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	d := u.Measure(b.Label, th.FontSize)
	return gfx.V(d.X+2*th.ButtonPadding, d.Y+2*th.ButtonPadding)
}

func (b *Button) Update(u *UpdateInfo) gfx.Vec2 {
	in := u.Input()
	b.size = b.measure(u)
	rect := gfx.Rect{X: u.At.X, Y: u.At.Y, W: b.size.X, H: b.size.Y}

	b.hovered, b.Clicked = pressable(u, rect, &b.pressed)
	if b.hovered && !in.MouseDown {
		u.SetCursor(gfx.CursorPointer)
	}
	return b.size
}

func (b *Button) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	rect := gfx.Rect{X: r.At.X, Y: r.At.Y, W: b.size.X, H: b.size.Y}
	r.Base.FillRect(rect, stateColor(th, b.hovered, b.pressed))
	if b.pressed {
		r.Base.StrokeRect(rect, 2, th.WidgetOutline)
	}
	r.Base.DrawText(b.Label, r.At.Add(gfx.V(th.ButtonPadding, th.ButtonPadding)), th.FontSize, th.Text)
	return b.size
}

// pressable implements the shared press-then-release interaction: a press
// over rect arms the widget, a release while still hovered clicks it. The
// pointer is claimed while hovered or while armed.
func pressable(u *UpdateInfo, rect gfx.Rect, pressed *bool) (hovered, clicked bool) {
	in := u.Input()
	if *pressed && in.MouseDown {
		u.Consume()
		hovered = rect.Contains(in.Mouse) && u.f.hover
	} else if u.Over(rect) {
		u.Consume()
		hovered = true
		if in.MousePressed {
			*pressed = true
		}
	}
	if in.MouseReleased {
		clicked = *pressed && hovered
		*pressed = false
	}
	return hovered, clicked
}

func stateColor(th *Theme, hovered, pressed bool) colors.Color {
	switch {
	case pressed:
		return th.WidgetPress
	case hovered:
		return th.WidgetHover
	default:
		return th.Widget
	}
}
