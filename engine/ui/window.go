package ui

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

// ActionType selects whether a geometry setter applies only until the
// window has run one frame, or on every frame.
type ActionType int

const (
	Once ActionType = iota
	EachFrame
)

const mainHolder = "main"

// WindowProperties sets the common window options in one call.
type WindowProperties struct {
	Title      string
	Pos        gfx.Vec2
	Size       gfx.Vec2
	Action     ActionType
	Draggable  bool
	Resizable  bool
	Closable   bool
	Scrollable bool
	Titlebar   bool
}

// Window is a movable, resizable panel holding widget declarations. It is
// obtained from UI.Begin every frame; its state persists while the window
// keeps being declared.
type Window struct {
	id      string
	key     Key
	title   string
	rect    gfx.Rect
	minSize gfx.Vec2

	draggable  bool
	resizable  bool
	closable   bool
	scrollable bool
	titlebar   bool

	open    bool
	active  bool
	hover   bool
	raise   bool
	ranOnce bool

	order   []string
	holders map[string]*Holder
	rowIDs  Registry
	current *Holder
	depth   int
	rows    int

	drag    dragState
	resize  resizeState
	scroll  scrollState
	close   closeState
	layers  layerSet
	content gfx.Vec2

	f      frame
	theme  *Theme
	text   gfx.TextMeasurer
	images ImageLoader
}

type dragState struct {
	active bool
	offset gfx.Vec2
}

type closeState struct {
	hovered bool
	pressed bool
	color   colors.Color
}

// windowResult is what one window reports back to the handler after its
// input pass.
type windowResult struct {
	hover     bool
	resizing  bool
	taken     bool
	activated bool
	cursor    gfx.CursorIcon
}

func newWindow(id string, key Key, th *Theme, text gfx.TextMeasurer, images ImageLoader) *Window {
	w := &Window{
		id:         id,
		key:        key,
		title:      id,
		rect:       gfx.Rect{X: 10, Y: 10, W: th.DefaultWidth, H: th.DefaultHeight},
		draggable:  true,
		resizable:  true,
		closable:   true,
		scrollable: true,
		titlebar:   true,
		open:       true,
		holders:    map[string]*Holder{mainHolder: NewHolder(false)},
		theme:      th,
		text:       text,
		images:     images,
	}
	w.close.color = th.CloseButton
	return w
}

func (w *Window) ID() string         { return w.id }
func (w *Window) Title() string      { return w.title }
func (w *Window) Rect() gfx.Rect     { return w.rect }
func (w *Window) Active() bool       { return w.active }
func (w *Window) Hovered() bool      { return w.hover }
func (w *Window) IsOpen() bool       { return w.open }
func (w *Window) Scroll() float32    { return w.scroll.offset }
func (w *Window) Dragging() bool     { return w.drag.active }
func (w *Window) Resizing() bool     { return w.resize.dragging }

// ContentSize is the size of everything declared, padding included.
func (w *Window) ContentSize() gfx.Vec2 { return w.content }

// HolderIDs lists this frame's holders in layout order.
func (w *Window) HolderIDs() []string { return w.order }

func (w *Window) SetTitle(title string) *Window { w.title = title; return w }

func (w *Window) SetPos(pos gfx.Vec2, action ActionType) *Window {
	if action == EachFrame || !w.ranOnce {
		w.rect.X, w.rect.Y = pos.X, pos.Y
	}
	return w
}

func (w *Window) SetSize(size gfx.Vec2, action ActionType) *Window {
	if action == EachFrame || !w.ranOnce {
		w.rect.W, w.rect.H = size.X, size.Y
	}
	return w
}

func (w *Window) SetMinSize(size gfx.Vec2) *Window { w.minSize = size; return w }
func (w *Window) SetDraggable(v bool) *Window      { w.draggable = v; return w }
func (w *Window) SetResizable(v bool) *Window      { w.resizable = v; return w }
func (w *Window) SetClosable(v bool) *Window       { w.closable = v; return w }
func (w *Window) SetScrollable(v bool) *Window     { w.scrollable = v; return w }
func (w *Window) SetTitlebar(v bool) *Window       { w.titlebar = v; return w }

// SetActive focuses or unfocuses the window. Focusing also raises it to
// the front and unfocuses the others on the next input pass.
func (w *Window) SetActive(v bool) *Window {
	w.active = v
	w.raise = v
	return w
}

func (w *Window) SetProperties(p WindowProperties) *Window {
	w.SetTitle(p.Title)
	w.SetPos(p.Pos, p.Action)
	w.SetSize(p.Size, p.Action)
	w.draggable, w.resizable, w.closable = p.Draggable, p.Resizable, p.Closable
	w.scrollable, w.titlebar = p.Scrollable, p.Titlebar
	return w
}

func (w *Window) Close() *Window { w.open = false; w.active = false; return w }
func (w *Window) Show() *Window  { w.open = true; return w }

// Once runs fn only on the window's first frame.
func (w *Window) Once(fn func(*Window)) *Window {
	if !w.ranOnce {
		fn(w)
	}
	return w
}

// Scope runs fn against the window; it only exists to group declarations.
func (w *Window) Scope(fn func(*Window)) *Window {
	fn(w)
	return w
}

func (w *Window) ScopeIf(cond bool, fn func(*Window)) *Window {
	if cond {
		fn(w)
	}
	return w
}

func (w *Window) titleHeight() float32 {
	if !w.titlebar {
		return 0
	}
	return w.theme.TitleThickness
}

// bodyRect is the part of the window below the titlebar, in screen space.
func (w *Window) bodyRect() gfx.Rect {
	t := w.titleHeight()
	return gfx.Rect{X: w.rect.X, Y: w.rect.Y + t, W: w.rect.W, H: math32.Max(0, w.rect.H-t)}
}

func (w *Window) titleRect() gfx.Rect {
	return gfx.Rect{X: w.rect.X, Y: w.rect.Y, W: w.rect.W, H: w.titleHeight()}
}

func (w *Window) closeRect() gfx.Rect {
	t := w.titleHeight()
	return gfx.Rect{X: w.rect.Right() - t, Y: w.rect.Y, W: t, H: t}
}

func (w *Window) hasClose() bool { return w.closable && w.titlebar }

// contentWidth is the room widgets get, excluding the scrollbar when it
// is showing.
func (w *Window) contentWidth() float32 {
	width := w.rect.W - 2*w.theme.Padding
	if w.scrollbarVisible() {
		width -= w.theme.ScrollbarWidth
	}
	return math32.Max(0, width)
}

// contentOrigin is where the first holder starts, relative to the body.
func (w *Window) contentOrigin() gfx.Vec2 {
	return gfx.V(w.theme.Padding, w.theme.Padding-w.scroll.offset)
}

// beginFrame resets the declaration pass. Holders persist; which of them
// are used this frame is decided by the declarations.
func (w *Window) beginFrame() {
	w.order = append(w.order[:0], mainHolder)
	w.rowIDs.Reset()
	w.rows = 0
	w.depth = 0
	w.current = w.holders[mainHolder]
	w.current.BeginFrame()
}

// endFrame retains the holders declared this frame.
func (w *Window) endFrame() {
	for name, h := range w.holders {
		if !slices.Contains(w.order, name) {
			delete(w.holders, name)
			continue
		}
		h.EndFrame()
	}
	w.ranOnce = true
}

// useHolder appends a top-level holder to this frame's layout order,
// creating it on first use.
func (w *Window) useHolder(name string, sameLine bool) *Holder {
	h, ok := w.holders[name]
	if !ok || h.sameLine != sameLine {
		h = NewHolder(sameLine)
		w.holders[name] = h
	}
	h.BeginFrame()
	w.order = append(w.order, name)
	return h
}

// update runs the window's input pass. activeTaken tells the window a
// window in front of it already holds focus; action tells it whether
// another window owns the pointer.
func (w *Window) update(in *core.InputState, activeTaken bool, action MouseAction) windowResult {
	var res windowResult
	th := w.theme
	if activeTaken {
		w.active = false
	}
	wasActive := w.active

	hover := w.rect.Contains(in.Mouse)
	windowAction := !action.claimed || action.owner == w.key
	w.hover = windowAction && hover
	if in.MousePressed && windowAction {
		w.active = hover && !activeTaken
	}
	res.activated = w.active && !wasActive

	// chrome interactions that started on an earlier frame keep the
	// pointer away from widgets until they end
	busy := w.drag.active || w.resize.dragging || w.scroll.dragging || w.close.pressed
	body := w.bodyRect()
	w.f = frame{
		in:      in,
		theme:   th,
		text:    w.text,
		hover:   w.hover && !busy,
		active:  w.active,
		clip:    body,
		winRect: w.rect,
	}
	taken := w.updateHolders(body)

	resizeHover := false
	if w.resizable {
		free := w.hover && !taken && !w.scrollTrack().Contains(in.Mouse)
		resizeHover = w.updateResize(in, free)
		if resizeHover {
			taken = true
		}
	} else {
		w.resize = resizeState{}
	}

	if w.hasClose() && !w.resize.dragging {
		if w.updateClose(in, w.hover && !taken) {
			taken = true
		}
	} else {
		w.close.hovered, w.close.pressed = false, false
	}

	w.updateDrag(in, windowAction, taken)
	w.clampRect(in.Screen)

	if w.updateScroll(in, windowAction && hover, taken) {
		taken = true
	}

	res.hover = w.hover || w.drag.active
	res.resizing = w.resize.dragging
	res.taken = taken
	res.cursor = w.f.cursor
	if w.resize.cursor != gfx.CursorDefault {
		res.cursor = w.resize.cursor
	}
	return res
}

// updateHolders lays the holders out top to bottom and records the
// content size used by scrolling.
func (w *Window) updateHolders(body gfx.Rect) bool {
	pad := w.theme.Padding
	origin := body.Pos().Add(w.contentOrigin())
	width := w.contentWidth()
	var y, maxW float32
	for _, name := range w.order {
		h := w.holders[name]
		_, sz := h.Update(origin.Add(gfx.V(0, y)), width, &w.f)
		y += sz.Y
		if h.sameLine && sz.Y > 0 {
			y += pad
		}
		maxW = math32.Max(maxW, sz.X)
	}
	w.content = gfx.V(maxW+2*pad, y+pad)
	return w.f.consumed
}

func (w *Window) updateClose(in *core.InputState, free bool) bool {
	th := w.theme
	c := &w.close
	c.hovered = free && w.closeRect().Contains(in.Mouse)
	if c.hovered && in.MousePressed && w.active {
		c.pressed = true
	}
	if in.MouseReleased {
		if c.pressed && c.hovered {
			w.Close()
		}
		c.pressed = false
	}
	target := th.CloseButton
	switch {
	case c.pressed:
		target = th.CloseButtonPress
	case c.hovered:
		target = th.CloseButtonHover
	}
	c.color = c.color.Lerp(target, th.CloseLerp)
	return c.hovered || c.pressed
}

func (w *Window) updateDrag(in *core.InputState, windowAction, taken bool) {
	if w.drag.active {
		if in.MouseDown {
			p := in.Mouse.Add(w.drag.offset)
			w.rect.X, w.rect.Y = p.X, p.Y
		} else {
			w.drag.active = false
		}
		return
	}
	if !w.draggable || !w.titlebar || taken || !w.active || !windowAction || !in.MousePressed {
		return
	}
	bar := w.titleRect()
	if w.hasClose() {
		bar.W -= w.closeRect().W
	}
	if bar.Contains(in.Mouse) {
		w.drag = dragState{active: true, offset: w.rect.Pos().Sub(in.Mouse)}
	}
}

// minWindowSize keeps the title and close button visible.
func (w *Window) minWindowSize() gfx.Vec2 {
	th := w.theme
	minW := 2 * th.Padding
	if w.titlebar {
		minW += w.text.MeasureText(w.title, th.TitleFontSize).X
		if w.hasClose() {
			minW += w.closeRect().W
		}
	}
	minH := w.titleHeight() + 2*th.Padding
	return gfx.V(math32.Max(minW, w.minSize.X), math32.Max(minH, w.minSize.Y))
}

// clampRect enforces the minimum size and keeps the window on screen. A
// zero screen size skips the screen bound.
func (w *Window) clampRect(screen gfx.Vec2) {
	m := w.minWindowSize()
	w.rect.W = math32.Max(w.rect.W, m.X)
	w.rect.H = math32.Max(w.rect.H, m.Y)
	if screen.X <= 0 || screen.Y <= 0 {
		return
	}
	w.rect.W = math32.Min(w.rect.W, math32.Max(screen.X, m.X))
	w.rect.H = math32.Min(w.rect.H, math32.Max(screen.Y, m.Y))
	w.rect.X = gfx.Clamp(w.rect.X, 0, screen.X-w.rect.W)
	w.rect.Y = gfx.Clamp(w.rect.Y, 0, screen.Y-w.rect.H)
}

// render paints the window. Layer 3 is composited by the handler once
// every window has been drawn.
func (w *Window) render(r gfx.Renderer, time float64) {
	th := w.theme
	body := w.bodyRect()
	r.FillRect(w.rect, th.Background)

	if !body.Empty() {
		if err := w.layers.ensure(r, body.Size(), r.ScreenSize()); err != nil {
			logger.Error("allocating window layers", "window", w.id, "err", err)
		} else {
			w.layers.clear()
			info := RenderInfo{
				Base:      w.layers.base,
				Overlay:   w.layers.overlay,
				Top:       w.layers.top,
				TopOffset: body.Pos(),
				theme:     th,
				text:      w.text,
				time:      time,
			}
			origin := w.contentOrigin()
			width := w.contentWidth()
			for _, name := range w.order {
				h := w.holders[name]
				sz := h.Render(origin, width, info)
				origin.Y += sz.Y
				if h.sameLine && sz.Y > 0 {
					origin.Y += th.Padding
				}
			}
			r.DrawSurface(w.layers.base, body.Pos())
			r.DrawSurface(w.layers.overlay, body.Pos())
		}
	}

	w.renderScrollbar(r)
	w.renderTitlebar(r)

	stroke := th.WinStroke
	if w.active {
		stroke = th.ActiveStroke
	} else if w.hover {
		stroke = th.HoverStroke
	}
	r.StrokeRect(w.rect, 1, stroke)

	if !w.scroll.hovered && !w.scroll.dragging {
		w.renderResize(r)
	}
}

func (w *Window) renderTitlebar(r gfx.Canvas) {
	if !w.titlebar {
		return
	}
	th := w.theme
	bar := w.titleRect()
	col := th.InactiveTitlebar
	if w.active {
		col = th.ActiveTitlebar
	}
	r.FillRect(bar, col)
	d := w.text.MeasureText(w.title, th.TitleFontSize)
	r.DrawText(w.title, gfx.V(bar.X+th.Padding, bar.Y+(bar.H-d.Y)/2), th.TitleFontSize, th.TitleText)

	if w.hasClose() {
		cr := w.closeRect().Inset(bar.H * 0.25)
		r.FillRect(cr, w.close.color)
		x := cr.Inset(cr.W * 0.25)
		r.Line(x.Pos(), gfx.V(x.Right(), x.Bottom()), 2, th.TitleText)
		r.Line(gfx.V(x.Right(), x.Y), gfx.V(x.X, x.Bottom()), 2, th.TitleText)
	}
}

// declKey derives the identity of a declaration in the current holder.
// Positional kinds mix the declaration index in when the id is Auto.
func (w *Window) declKey(kind string, id WidgetID, label string, positional bool) (string, Key) {
	if positional && id.IsAuto() {
		kind = kind + "#" + strconv.Itoa(w.current.position())
	}
	return kind, DeriveKey(kind, id, label)
}

// Text declares a static label.
func (w *Window) Text(id WidgetID, value string) *Text {
	kind, k := w.declKey("text", id, "", true)
	t := Declare(w.current, k, kind, id, "", func() *Text { return newText(value) })
	t.Value = value
	return t
}

// TextEx declares a label with its own color and font size.
func (w *Window) TextEx(id WidgetID, value string, c colors.Color, size float32) *Text {
	kind, k := w.declKey("text_ex", id, "", true)
	t := Declare(w.current, k, kind, id, "", func() *Text { return newText(value) })
	t.Value = value
	return t.SetColor(c).SetSize(size)
}

func (w *Window) Button(id WidgetID, label string) *Button {
	kind, k := w.declKey("button", id, label, true)
	b := Declare(w.current, k, kind, id, label, func() *Button { return newButton(label) })
	b.Label = label
	return b
}

// Checkbox declares a checkbox; def only seeds a freshly created record.
func (w *Window) Checkbox(id WidgetID, label string, def bool) *Checkbox {
	kind, k := w.declKey("checkbox", id, label, false)
	c := Declare(w.current, k, kind, id, label, func() *Checkbox { return newCheckbox(label, def) })
	c.Label = label
	return c
}

// Slider declares a slider over rng. The range may change between frames;
// the value is re-clamped on the next update.
func (w *Window) Slider(id WidgetID, label string, rng Range) *Slider {
	kind, k := w.declKey("slider/"+rng.kind(), id, label, false)
	s := Declare(w.current, k, kind, id, label, func() *Slider { return newSlider(label, rng) })
	s.Label, s.rng = label, rng
	return s
}

func (w *Window) ProgressBar(id WidgetID, label string, rng Range) *ProgressBar {
	kind, k := w.declKey("progress/"+rng.kind(), id, label, true)
	p := Declare(w.current, k, kind, id, label, func() *ProgressBar { return newProgressBar(label, rng) })
	p.Label, p.rng = label, rng
	return p
}

func (w *Window) Dropdown(id WidgetID, items []string, def string) *Dropdown {
	label := strings.Join(items, "|")
	kind, k := w.declKey("dropdown", id, label, false)
	return Declare(w.current, k, kind, id, label, func() *Dropdown { return newDropdown(items, def) })
}

func (w *Window) RadioButtons(id WidgetID, items []string, def string) *RadioButtons {
	label := strings.Join(items, "|")
	kind, k := w.declKey("radio", id, label, false)
	return Declare(w.current, k, kind, id, label, func() *RadioButtons { return newRadioButtons(items, def) })
}

func (w *Window) Tabs(id WidgetID, labels []string, def int) *Tabs {
	label := strings.Join(labels, "|")
	kind, k := w.declKey("tabs", id, label, false)
	return Declare(w.current, k, kind, id, label, func() *Tabs { return newTabs(labels, def) })
}

func (w *Window) Separator(id WidgetID) *Separator {
	kind, k := w.declKey("separator", id, "", true)
	return Declare(w.current, k, kind, id, "", newSeparator)
}

// TextBox declares an editable line; value only seeds a fresh record.
func (w *Window) TextBox(id WidgetID, value string) *TextBox {
	kind, k := w.declKey("textbox", id, "", true)
	return Declare(w.current, k, kind, id, "", func() *TextBox { return newTextBox("", value) })
}

func (w *Window) LabeledTextBox(id WidgetID, label, value string) *TextBox {
	kind, k := w.declKey("labeled_textbox", id, label, true)
	t := Declare(w.current, k, kind, id, label, func() *TextBox { return newTextBox(label, value) })
	t.Label = label
	return t
}

// Image declares a picture loaded from path. The loader runs only when the
// record is first created; its failure is returned and nothing is stored,
// so the next frame tries again.
func (w *Window) Image(ctx context.Context, id WidgetID, path string, size gfx.Vec2) (*Image, error) {
	kind, k := w.declKey("image", id, path, true)
	im, err := DeclareE(w.current, k, kind, id, path, func() (*Image, error) {
		return loadImage(ctx, w.images, path, size)
	})
	if err != nil {
		logger.Error("image load failed", "window", w.id, "path", path, "err", err)
		return nil, err
	}
	return im, nil
}

// Column stacks the widgets declared in fn vertically as one unit.
func (w *Window) Column(id WidgetID, fn func(*Window)) *Window {
	return w.nest("column", id, false, fn)
}

// SameLine lays the widgets declared in fn out left to right. At the top
// level of a window this opens a row holder followed by a fresh
// continuation holder; inside a column it nests a row group.
func (w *Window) SameLine(id WidgetID, fn func(*Window)) *Window {
	if w.depth > 0 {
		return w.nest("row", id, true, fn)
	}
	n := w.rows
	w.rows++
	name := strconv.Itoa(n)
	if !id.IsAuto() {
		name = id.String()
	}
	rowName := "row:" + name
	if err := w.rowIDs.Register(WindowKey(rowName), "row", id, ""); err != nil {
		panic(err)
	}
	w.current = w.useHolder(rowName, true)
	w.depth++
	fn(w)
	w.depth--
	w.current = w.useHolder(mainHolder+"#"+name, false)
	return w
}

func (w *Window) nest(kind string, id WidgetID, sameLine bool, fn func(*Window)) *Window {
	kind, k := w.declKey(kind, id, "", true)
	g := Declare(w.current, k, kind, id, "", func() *group { return newGroup(sameLine) })
	g.holder.BeginFrame()
	prev := w.current
	w.current = g.holder
	w.depth++
	fn(w)
	w.depth--
	w.current = prev
	return w
}
