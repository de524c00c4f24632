package ui

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/gfx"
)

// Tabs is a strip of equally wide tabs spanning the window. By default a
// tab is selected on release; in holdable mode the selection follows the
// pointer while the button is held.
type Tabs struct {
	Labels   []string
	Selected int
	Changed  bool

	holdable bool
	hoverIdx int
	armedIdx int
	holding  bool
	size     gfx.Vec2
}

func newTabs(labels []string, def int) *Tabs {
	t := &Tabs{Labels: append([]string(nil), labels...), hoverIdx: -1, armedIdx: -1}
	if def < 0 || def >= len(labels) {
		logger.Warn("default tab out of range", "widget", "tabs", "index", def, "tabs", len(labels))
		def = 0
	}
	t.Selected = def
	return t
}

func (t *Tabs) SetHoldable(v bool) *Tabs { t.holdable = v; return t }

// Value is the label of the selected tab.
func (t *Tabs) Value() string {
	if t.Selected < 0 || t.Selected >= len(t.Labels) {
		return ""
	}
	return t.Labels[t.Selected]
}

func (t *Tabs) tabWidth() float32 {
	if len(t.Labels) == 0 {
		return 0
	}
	return t.size.X / float32(len(t.Labels))
}

func (t *Tabs) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	in := u.Input()
	t.size = gfx.V(math32.Max(u.Width, 1), th.TabHeight)
	t.Changed = false
	before := t.Selected

	bar := gfx.Rect{X: u.At.X, Y: u.At.Y, W: t.size.X, H: t.size.Y}
	t.hoverIdx = -1
	tw := t.tabWidth()
	if tw > 0 && (u.Over(bar) || (t.holding && bar.Contains(in.Mouse))) {
		t.hoverIdx = min(int((in.Mouse.X-bar.X)/tw), len(t.Labels)-1)
		u.Consume()
	}
	if in.MousePressed && t.hoverIdx >= 0 {
		t.armedIdx = t.hoverIdx
		if t.holdable {
			t.holding = true
			t.Selected = t.hoverIdx
		}
	}
	if t.holding {
		u.Consume()
		if t.hoverIdx >= 0 && in.MouseDown {
			t.Selected = t.hoverIdx
		}
	}
	if in.MouseReleased {
		if !t.holdable && t.armedIdx >= 0 && t.armedIdx == t.hoverIdx {
			t.Selected = t.armedIdx
		}
		t.armedIdx = -1
		t.holding = false
	}
	t.Changed = t.Selected != before
	return t.size
}

func (t *Tabs) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	tw := t.tabWidth()
	for i, label := range t.Labels {
		tab := gfx.Rect{X: r.At.X + float32(i)*tw, Y: r.At.Y, W: tw, H: t.size.Y}
		col := stateColor(th, i == t.hoverIdx, i == t.armedIdx)
		if i == t.Selected {
			col = th.Accent
		}
		r.Base.FillRect(tab, col)
		r.Base.StrokeRect(tab, 1, th.WinStroke)
		d := r.Measure(label, th.FontSize)
		r.Base.DrawText(label, gfx.V(tab.Center().X-d.X/2, tab.Center().Y-d.Y/2), th.FontSize, th.Text)
	}
	return t.size
}
