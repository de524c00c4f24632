package ui

import (
	"fmt"

	"github.com/hubastard/panes/engine/gfx"
)

// Holder reconciles one ordered group of declarations against the widget
// records that survive across frames, and lays them out vertically or, in
// same-line mode, horizontally.
type Holder struct {
	sameLine bool
	frame    Registry
	records  map[Key]Widget
}

func NewHolder(sameLine bool) *Holder {
	return &Holder{sameLine: sameLine, records: make(map[Key]Widget)}
}

func (h *Holder) SameLine() bool { return h.sameLine }

// BeginFrame forgets this frame's declarations. Records are untouched.
func (h *Holder) BeginFrame() { h.frame.Reset() }

// EndFrame drops every record that was not redeclared since BeginFrame.
func (h *Holder) EndFrame() {
	for k := range h.records {
		if !h.frame.Contains(k) {
			delete(h.records, k)
		}
	}
	for _, k := range h.frame.Keys() {
		if fe, ok := h.records[k].(frameEnder); ok {
			fe.endFrame()
		}
	}
}

func (h *Holder) Len() int         { return len(h.records) }
func (h *Holder) Keys() []Key      { return h.frame.Keys() }
func (h *Holder) Get(k Key) Widget { return h.records[k] }
func (h *Holder) position() int    { return h.frame.Len() }

func (h *Holder) Has(k Key) bool {
	_, ok := h.records[k]
	return ok
}

// Declare is the get-or-create path every typed declarator goes through.
// A key declared twice in one frame panics with a *DuplicateKeyError.
func Declare[T Widget](h *Holder, k Key, kind string, id WidgetID, label string, factory func() T) T {
	w, err := DeclareE(h, k, kind, id, label, func() (T, error) { return factory(), nil })
	if err != nil {
		panic(err)
	}
	return w
}

// DeclareE is Declare for factories that can fail. The factory only runs
// when no record exists for k; on failure no record is stored.
func DeclareE[T Widget](h *Holder, k Key, kind string, id WidgetID, label string, factory func() (T, error)) (T, error) {
	var zero T
	if err := h.frame.Register(k, kind, id, label); err != nil {
		panic(err)
	}
	if w, ok := h.records[k]; ok {
		t, ok := w.(T)
		if !ok {
			panic(fmt.Errorf("ui: key %s holds a %T, cannot reuse it as %s", k, w, kind))
		}
		return t, nil
	}
	t, err := factory()
	if err != nil {
		return zero, err
	}
	h.records[k] = t
	return t, nil
}

// advance moves the layout cursor past a widget of size sz.
func (h *Holder) advance(cur *gfx.Vec2, bound *gfx.Vec2, sz gfx.Vec2, pad float32) {
	if h.sameLine {
		cur.X += sz.X + pad
		bound.X = cur.X
		if sz.Y > bound.Y {
			bound.Y = sz.Y
		}
		return
	}
	cur.Y += sz.Y + pad
	bound.Y = cur.Y
	if sz.X > bound.X {
		bound.X = sz.X
	}
}

// Update runs the input pass in declaration order starting at origin
// (screen space). It reports whether the shared consumed flag is set once
// the pass is over, plus the bounding size of the laid out widgets.
func (h *Holder) Update(origin gfx.Vec2, width float32, f *frame) (bool, gfx.Vec2) {
	var cur, bound gfx.Vec2
	pad := f.theme.Padding
	for _, k := range h.frame.Keys() {
		w, ok := h.records[k]
		if !ok {
			continue
		}
		before := f.consumed
		info := UpdateInfo{
			At:       origin.Add(cur),
			Width:    width - cur.X,
			SameLine: h.sameLine,
			f:        f,
		}
		sz := w.Update(&info)
		if !before && f.consumed {
			f.consumedBy = k
		}
		h.advance(&cur, &bound, sz, pad)
	}
	return f.consumed, bound
}

// Render runs the paint pass with the same traversal as Update. origin is
// in the coordinate space of the layer canvases.
func (h *Holder) Render(origin gfx.Vec2, width float32, base RenderInfo) gfx.Vec2 {
	var cur, bound gfx.Vec2
	pad := base.theme.Padding
	for _, k := range h.frame.Keys() {
		w, ok := h.records[k]
		if !ok {
			continue
		}
		info := base
		info.At = origin.Add(cur)
		info.Width = width - cur.X
		info.SameLine = h.sameLine
		sz := w.Render(&info)
		h.advance(&cur, &bound, sz, pad)
	}
	return bound
}
