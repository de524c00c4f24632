package ui

import (
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

type edge uint8

const (
	edgeRight edge = 1 << iota
	edgeBottom
)

// resizeState tracks the right/bottom/corner handles. Dragging a handle
// sizes the window from the size it had when the drag started.
type resizeState struct {
	hovered    edge
	dragging   bool
	edges      edge
	shown      edge
	startMouse gfx.Vec2
	startSize  gfx.Vec2
	opacity    float32
	cursor     gfx.CursorIcon
}

func (w *Window) resizeStrips() (right, bottom, corner gfx.Rect) {
	th := w.theme
	r := w.rect
	t := th.ResizeThickness
	c := th.ResizeCorner
	right = gfx.Rect{X: r.Right() - t, Y: r.Y, W: t, H: r.H}
	bottom = gfx.Rect{X: r.X, Y: r.Bottom() - t, W: r.W, H: t}
	corner = gfx.Rect{X: r.Right() - c, Y: r.Bottom() - c, W: c, H: c}
	return right, bottom, corner
}

// updateResize reports whether a handle is hovered or being dragged. free
// says whether the pointer is still available to the window.
func (w *Window) updateResize(in *core.InputState, free bool) bool {
	rs := &w.resize
	right, bottom, corner := w.resizeStrips()

	if rs.dragging {
		if !in.MouseDown {
			rs.dragging = false
		} else {
			d := in.Mouse.Sub(rs.startMouse)
			if rs.edges&edgeRight != 0 {
				w.rect.W = rs.startSize.X + d.X
			}
			if rs.edges&edgeBottom != 0 {
				w.rect.H = rs.startSize.Y + d.Y
			}
		}
	}

	rs.hovered = 0
	if !rs.dragging && free {
		switch {
		case corner.Contains(in.Mouse):
			rs.hovered = edgeRight | edgeBottom
		case right.Contains(in.Mouse):
			rs.hovered = edgeRight
		case bottom.Contains(in.Mouse):
			rs.hovered = edgeBottom
		}
		if rs.hovered != 0 && in.MousePressed {
			rs.dragging = true
			rs.edges = rs.hovered
			rs.startMouse = in.Mouse
			rs.startSize = w.rect.Size()
		}
	}

	current := rs.hovered
	if rs.dragging {
		current = rs.edges
	}
	target := float32(0)
	if current != 0 {
		rs.shown = current
		target = 1
	}
	rs.opacity = gfx.Lerp(rs.opacity, target, w.theme.HandleLerp)

	switch current {
	case edgeRight | edgeBottom:
		rs.cursor = gfx.CursorNWSEResize
	case edgeRight:
		rs.cursor = gfx.CursorEWResize
	case edgeBottom:
		rs.cursor = gfx.CursorNSResize
	default:
		rs.cursor = gfx.CursorDefault
	}
	return current != 0
}

func (w *Window) renderResize(r gfx.Canvas) {
	rs := &w.resize
	if !w.resizable || rs.opacity < 0.01 || rs.shown == 0 {
		return
	}
	col := w.theme.ResizeHandle
	col = col.WithAlpha(col[3] * rs.opacity)
	right, bottom, corner := w.resizeStrips()
	switch rs.shown {
	case edgeRight | edgeBottom:
		r.FillRect(corner, col)
	case edgeRight:
		r.FillRect(right, col)
	case edgeBottom:
		r.FillRect(bottom, col)
	}
}
