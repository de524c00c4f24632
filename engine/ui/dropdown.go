package ui

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// Dropdown picks one of Items. The open list is painted on the overlay
// layer so it covers widgets declared after it.
type Dropdown struct {
	Items   []string
	Value   string
	Changed bool

	open     bool
	hovered  bool
	pressed  bool
	hoverIdx int
	armedIdx int
	scroll   float32

	header gfx.Rect // screen space, refreshed every update
	itemH  float32
	size   gfx.Vec2
}

func newDropdown(items []string, def string) *Dropdown {
	d := &Dropdown{Items: slices.Clone(items), hoverIdx: -1, armedIdx: -1}
	d.Value = validOption("dropdown", d.Items, def)
	return d
}

// validOption returns def when it is one of items. Otherwise it logs and
// falls back to the first item.
func validOption(kind string, items []string, def string) string {
	if slices.Contains(items, def) {
		return def
	}
	fallback := ""
	if len(items) > 0 {
		fallback = items[0]
	}
	logger.Warn("default value not found in items", "widget", kind, "value", def, "items", items, "using", fallback)
	return fallback
}

func (d *Dropdown) IsOpen() bool { return d.open }

// Selected is the index of Value within Items, or -1.
func (d *Dropdown) Selected() int { return slices.Index(d.Items, d.Value) }

func (d *Dropdown) popupHeight(th *Theme) float32 {
	return math32.Min(float32(len(d.Items))*d.itemH, th.DropdownHeight)
}

func (d *Dropdown) popupRect(th *Theme) gfx.Rect {
	return gfx.Rect{X: d.header.X, Y: d.header.Bottom(), W: d.header.W, H: d.popupHeight(th)}
}

func (d *Dropdown) itemAt(th *Theme, p gfx.Vec2) int {
	pop := d.popupRect(th)
	if !pop.Contains(p) || d.itemH <= 0 {
		return -1
	}
	i := int((p.Y - pop.Y + d.scroll) / d.itemH)
	if i < 0 || i >= len(d.Items) {
		return -1
	}
	return i
}

func (d *Dropdown) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	in := u.Input()

	var widest, lineH float32
	for _, it := range d.Items {
		m := u.Measure(it, th.FontSize)
		widest = math32.Max(widest, m.X)
		lineH = math32.Max(lineH, m.Y)
	}
	if lineH == 0 {
		lineH = u.Measure("Ag", th.FontSize).Y
	}
	h := lineH + 2*th.ButtonPadding
	d.itemH = lineH + th.ButtonPadding + 3
	d.size = gfx.V(widest+2*th.ButtonPadding+h, h)
	d.header = gfx.Rect{X: u.At.X, Y: u.At.Y, W: d.size.X, H: d.size.Y}
	d.Changed = false

	overPopup := false
	if d.open && u.Pointer() && d.popupRect(th).Contains(in.Mouse) {
		overPopup = true
		u.Consume()
		d.hoverIdx = d.itemAt(th, in.Mouse)
		if in.Wheel.Y != 0 {
			u.UseWheel()
			maxScroll := math32.Max(0, float32(len(d.Items))*d.itemH-d.popupHeight(th))
			d.scroll = gfx.Clamp(d.scroll-in.Wheel.Y*d.itemH, 0, maxScroll)
		}
		if in.MousePressed {
			d.armedIdx = d.hoverIdx
		}
		if in.MouseReleased && d.armedIdx >= 0 && d.armedIdx == d.hoverIdx {
			if v := d.Items[d.armedIdx]; v != d.Value {
				d.Value = v
				d.Changed = true
			}
			d.open = false
		}
	} else {
		d.hoverIdx = -1
	}

	var clicked bool
	if overPopup {
		d.hovered = false
	} else {
		d.hovered, clicked = pressable(u, d.header, &d.pressed)
	}
	if clicked {
		d.open = !d.open
		d.scroll = 0
	}
	if d.open && in.MousePressed && !overPopup && !d.hovered {
		d.open = false
	}
	if in.MouseReleased {
		d.armedIdx = -1
	}
	return d.size
}

func (d *Dropdown) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	header := gfx.Rect{X: r.At.X, Y: r.At.Y, W: d.size.X, H: d.size.Y}
	arrow := gfx.Rect{X: header.Right() - header.H, Y: header.Y, W: header.H, H: header.H}

	r.Base.FillRect(header, stateColor(th, d.hovered, d.pressed || d.open))
	r.Base.FillRect(arrow, th.Accent)
	c := arrow.Center()
	r.Base.Line(gfx.V(c.X-5, c.Y-3), gfx.V(c.X, c.Y+3), 2, colors.White)
	r.Base.Line(gfx.V(c.X, c.Y+3), gfx.V(c.X+5, c.Y-3), 2, colors.White)
	r.Base.DrawText(d.Value, header.Pos().Add(gfx.V(th.ButtonPadding, th.ButtonPadding)), th.FontSize, th.Text)

	if !d.open {
		return d.size
	}
	pop := gfx.Rect{X: header.X, Y: header.Bottom(), W: header.W, H: d.popupHeight(th)}
	r.Overlay.FillRect(pop, th.Popup)
	for i, it := range d.Items {
		row := gfx.Rect{X: pop.X, Y: pop.Y + float32(i)*d.itemH - d.scroll, W: pop.W, H: d.itemH}
		if row.Bottom() <= pop.Y || row.Y >= pop.Bottom() {
			continue
		}
		switch {
		case i == d.armedIdx:
			r.Overlay.FillRect(row.Intersect(pop), th.WidgetPress)
		case i == d.hoverIdx:
			r.Overlay.FillRect(row.Intersect(pop), th.WidgetHover)
		case it == d.Value:
			r.Overlay.FillRect(row.Intersect(pop), th.Selection)
		}
		r.Overlay.DrawText(it, row.Pos().Add(gfx.V(th.ButtonPadding, 2)), th.FontSize, th.Text)
	}
	r.Overlay.StrokeRect(pop, 1, th.WinStroke)
	return d.size
}
