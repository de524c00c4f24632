package ui

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

type scrollState struct {
	offset   float32
	hovered  bool
	dragging bool
	grab     float32 // pointer distance from the thumb top while dragging
}

func (w *Window) maxScroll() float32 {
	return math32.Max(0, w.content.Y-w.bodyRect().H)
}

func (w *Window) scrollbarVisible() bool {
	return w.scrollable && w.maxScroll() > 0
}

// scrollTrack is the scrollbar gutter along the body's right edge, or an
// empty rect when the bar is hidden.
func (w *Window) scrollTrack() gfx.Rect {
	if !w.scrollbarVisible() {
		return gfx.Rect{}
	}
	body := w.bodyRect()
	sw := w.theme.ScrollbarWidth
	return gfx.Rect{X: body.Right() - sw, Y: body.Y, W: sw, H: body.H}
}

// scrollThumb sizes the thumb by the visible share of the content.
func (w *Window) scrollThumb() gfx.Rect {
	track := w.scrollTrack()
	if track.Empty() || w.content.Y <= 0 {
		return gfx.Rect{}
	}
	h := math32.Max(w.theme.MinThumb, track.H*w.bodyRect().H/w.content.Y)
	h = math32.Min(h, track.H)
	y := track.Y
	if m := w.maxScroll(); m > 0 {
		y += w.scroll.offset / m * (track.H - h)
	}
	return gfx.Rect{X: track.X, Y: y, W: track.W, H: h}
}

// updateScroll applies the wheel and the thumb drag. pointer says the
// mouse is over this window and no window in front owns it; taken says
// something inside the window already claimed the press. It reports
// whether the scrollbar is hovered or dragged.
func (w *Window) updateScroll(in *core.InputState, pointer, taken bool) bool {
	sc := &w.scroll
	if !w.scrollable {
		*sc = scrollState{}
		return false
	}
	maxOff := w.maxScroll()
	if pointer && !w.f.wheelUsed && in.Wheel.Y != 0 {
		sc.offset -= in.Wheel.Y * w.theme.ScrollSpeed
	}

	track := w.scrollTrack()
	thumb := w.scrollThumb()
	sc.hovered = pointer && !taken && track.Contains(in.Mouse)
	if sc.dragging {
		if !in.MouseDown {
			sc.dragging = false
		} else if span := track.H - thumb.H; span > 0 {
			sc.offset = (in.Mouse.Y - sc.grab - track.Y) / span * maxOff
		}
	} else if sc.hovered && in.MousePressed {
		sc.dragging = true
		if thumb.Contains(in.Mouse) {
			sc.grab = in.Mouse.Y - thumb.Y
		} else {
			// jump so the thumb centers on the pointer
			sc.grab = thumb.H / 2
			if span := track.H - thumb.H; span > 0 {
				sc.offset = (in.Mouse.Y - sc.grab - track.Y) / span * maxOff
			}
		}
	}
	sc.offset = gfx.Clamp(sc.offset, 0, maxOff)
	return sc.hovered || sc.dragging
}

func (w *Window) renderScrollbar(r gfx.Canvas) {
	thumb := w.scrollThumb()
	if thumb.Empty() {
		return
	}
	col := w.theme.Scrollbar
	if w.scroll.hovered || w.scroll.dragging {
		col = w.theme.ScrollbarHover
	}
	r.FillRect(thumb.Inset(1), col)
}
