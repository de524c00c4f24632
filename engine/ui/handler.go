package ui

import (
	"slices"

	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/hubastard/panes/engine/profiler"
)

// MouseAction says which window, if any, owns the pointer during the
// current input pass. The zero value means nobody does.
type MouseAction struct {
	owner   Key
	claimed bool
}

func (a MouseAction) Owner() (Key, bool) { return a.owner, a.claimed }

// WindowHandler owns every window, their z-order and the per-frame
// pointer arbitration between them.
type WindowHandler struct {
	windows  map[Key]*Window
	declared []Key
	zorder   []Key // front first
	action   MouseAction
	cursor   gfx.CursorIcon
	taken    bool
	time     float64

	theme  *Theme
	text   gfx.TextMeasurer
	images ImageLoader
}

func NewWindowHandler(th *Theme, text gfx.TextMeasurer, images ImageLoader) *WindowHandler {
	return &WindowHandler{
		windows: make(map[Key]*Window),
		theme:   th,
		text:    text,
		images:  images,
	}
}

// Begin returns the window named id, creating it in front of every other
// window the first time. Calling Begin again in the same frame returns
// the same window without resetting its declarations.
func (h *WindowHandler) Begin(id string) *Window {
	k := WindowKey(id)
	w, ok := h.windows[k]
	if !ok {
		w = newWindow(id, k, h.theme, h.text, h.images)
		h.windows[k] = w
		h.zorder = slices.Insert(h.zorder, 0, k)
		logger.Debug("window created", "window", id)
	}
	if slices.Contains(h.declared, k) {
		return w
	}
	h.declared = append(h.declared, k)
	w.beginFrame()
	return w
}

// Window looks up a window without declaring it.
func (h *WindowHandler) Window(id string) *Window { return h.windows[WindowKey(id)] }

// ZOrder lists the window ids front to back.
func (h *WindowHandler) ZOrder() []string {
	ids := make([]string, 0, len(h.zorder))
	for _, k := range h.zorder {
		ids = append(ids, h.windows[k].id)
	}
	return ids
}

func (h *WindowHandler) Action() MouseAction    { return h.action }
func (h *WindowHandler) Cursor() gfx.CursorIcon { return h.cursor }

// Focused reports whether an open window is active and so owns the
// keyboard.
func (h *WindowHandler) Focused() bool {
	for _, w := range h.windows {
		if w.open && w.active {
			return true
		}
	}
	return false
}

func (h *WindowHandler) SetTheme(th *Theme) {
	h.theme = th
	for _, w := range h.windows {
		w.theme = th
	}
}

func (h *WindowHandler) isDeclared(k Key) bool { return slices.Contains(h.declared, k) }

// Update runs the input pass front to back. A window that is hovered,
// resizing or took input claims the pointer for every window behind it.
// The window that became active moves to the front. It reports whether
// the UI wants the pointer this frame.
func (h *WindowHandler) Update(in *core.InputState) bool {
	defer profiler.Start("ui.update")()

	h.cursor = gfx.CursorDefault
	h.action = MouseAction{}
	h.taken = false
	h.time = in.Time
	h.applyRaise()
	activeTaken := false
	raise, hasRaise := Key(0), false

	for _, k := range h.zorder {
		w := h.windows[k]
		if !w.open || !h.isDeclared(k) {
			continue
		}
		res := w.update(in, activeTaken, h.action)
		if w.active {
			if res.activated && !hasRaise {
				raise, hasRaise = k, true
			}
			activeTaken = true
		}
		if (res.hover || res.resizing || res.taken) && !h.action.claimed {
			h.action = MouseAction{owner: k, claimed: true}
		}
		h.taken = h.taken || res.taken
		if h.cursor == gfx.CursorDefault {
			h.cursor = res.cursor
		}
	}

	if hasRaise {
		h.zorder = slices.DeleteFunc(h.zorder, func(k Key) bool { return k == raise })
		h.zorder = slices.Insert(h.zorder, 0, raise)
	}
	return h.taken || h.action.claimed
}

// applyRaise moves the frontmost window that asked for focus through
// SetActive to the front and deactivates the others.
func (h *WindowHandler) applyRaise() {
	target, found := Key(0), false
	for _, k := range h.zorder {
		w := h.windows[k]
		if !w.raise {
			continue
		}
		w.raise = false
		if !found && w.open && h.isDeclared(k) {
			target, found = k, true
		}
	}
	if !found {
		return
	}
	for k, w := range h.windows {
		w.active = k == target
	}
	h.zorder = slices.DeleteFunc(h.zorder, func(k Key) bool { return k == target })
	h.zorder = slices.Insert(h.zorder, 0, target)
}

// Render paints windows back to front, then every window's top layer
// above all of them, then retires the frame.
func (h *WindowHandler) Render(r gfx.Renderer) {
	defer profiler.Start("ui.render")()

	for i := len(h.zorder) - 1; i >= 0; i-- {
		k := h.zorder[i]
		if w := h.windows[k]; w.open && h.isDeclared(k) {
			w.render(r, h.time)
		}
	}
	for i := len(h.zorder) - 1; i >= 0; i-- {
		k := h.zorder[i]
		if w := h.windows[k]; w.open && h.isDeclared(k) && w.layers.ready() {
			r.DrawSurface(w.layers.top, gfx.Vec2{})
		}
	}
	r.SetCursor(h.cursor)
	h.EndFrame()
}

// EndFrame drops every window not declared this frame and runs the
// retain pass of the survivors.
func (h *WindowHandler) EndFrame() {
	for k, w := range h.windows {
		if h.isDeclared(k) {
			w.endFrame()
			continue
		}
		w.layers.release()
		delete(h.windows, k)
		h.zorder = slices.DeleteFunc(h.zorder, func(z Key) bool { return z == k })
		logger.Debug("window dropped", "window", w.id)
	}
	h.declared = h.declared[:0]
}
