package ui

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

const (
	repeatDelay       = 0.18
	repeatInterval    = 0.05
	repeatAccel       = 0.85
	repeatMinInterval = 0.01
	maxHistory        = 64
)

var fallbackClipboard core.MemClipboard

// TextBox is a single line editor with selection, clipboard and undo.
type TextBox struct {
	Label     string
	Value     string
	Changed   bool
	Submitted bool

	width     float32
	focused   bool
	hovered   bool
	selecting bool
	caret     int
	anchor    int
	scrollX   float32
	history   []string
	repeat    keyRepeat
	movedAt   float64

	labelW float32
	box    gfx.Rect // screen space
	size   gfx.Vec2
}

func newTextBox(label, value string) *TextBox {
	n := len([]rune(value))
	return &TextBox{Label: label, Value: value, caret: n, anchor: n}
}

func (t *TextBox) SetWidth(w float32) *TextBox { t.width = w; return t }
func (t *TextBox) Focused() bool               { return t.focused }
func (t *TextBox) Caret() int                  { return t.caret }

// Focus gives the box keyboard focus and selects its content.
func (t *TextBox) Focus() *TextBox {
	t.focused = true
	t.anchor, t.caret = 0, len([]rune(t.Value))
	return t
}

func (t *TextBox) Blur() *TextBox { t.focused = false; t.selecting = false; return t }

// Selection returns the selected rune range [from, to).
func (t *TextBox) Selection() (from, to int) {
	n := len([]rune(t.Value))
	from, to = min(t.anchor, t.caret), max(t.anchor, t.caret)
	return min(max(from, 0), n), min(max(to, 0), n)
}

func (t *TextBox) SelectedText() string {
	from, to := t.Selection()
	return string([]rune(t.Value)[from:to])
}

func (t *TextBox) layout(u *UpdateInfo) {
	th := u.Theme()
	t.labelW = 0
	if t.Label != "" {
		t.labelW = u.Measure(t.Label, th.FontSize).X + th.Padding
	}
	h := u.Measure("Ag", th.FontSize).Y + 2*th.ButtonPadding
	w := t.width
	if w <= 0 {
		w = math32.Max(60, u.Width-t.labelW-th.Padding)
	}
	t.box = gfx.Rect{X: u.At.X + t.labelW, Y: u.At.Y, W: w, H: h}
	t.size = gfx.V(t.labelW+w, h)
}

func (t *TextBox) Update(u *UpdateInfo) gfx.Vec2 {
	in := u.Input()
	t.layout(u)
	t.Changed, t.Submitted = false, false
	t.clampCaret()

	t.hovered = u.Over(t.box)
	if t.hovered {
		u.Consume()
		u.SetCursor(gfx.CursorText)
	}
	if in.MousePressed {
		switch {
		case !t.hovered:
			t.Blur()
		case !t.focused:
			t.Focus()
			t.movedAt = in.Time
		default:
			t.caret = t.indexAt(u, in.Mouse.X)
			t.anchor = t.caret
			t.selecting = true
			t.movedAt = in.Time
		}
	}
	if t.selecting {
		if in.MouseDown {
			u.Consume()
			t.caret = t.indexAt(u, in.Mouse.X)
		} else {
			t.selecting = false
		}
	}
	if t.focused && u.WindowActive() {
		before := t.Value
		t.edit(in)
		t.Changed = t.Value != before
	} else if t.focused && !u.WindowActive() {
		t.Blur()
	}
	t.scrollToCaret(u)
	return t.size
}

func (t *TextBox) clampCaret() {
	n := len([]rune(t.Value))
	t.caret = min(max(t.caret, 0), n)
	t.anchor = min(max(t.anchor, 0), n)
}

func (t *TextBox) pushHistory() {
	if len(t.history) > 0 && t.history[len(t.history)-1] == t.Value {
		return
	}
	t.history = append(t.history, t.Value)
	if len(t.history) > maxHistory {
		t.history = t.history[1:]
	}
}

// replaceSelection swaps the selected runes for s and moves the caret
// after the inserted text.
func (t *TextBox) replaceSelection(s []rune) {
	r := []rune(t.Value)
	from, to := t.Selection()
	out := make([]rune, 0, len(r)-(to-from)+len(s))
	out = append(out, r[:from]...)
	out = append(out, s...)
	out = append(out, r[to:]...)
	t.Value = string(out)
	t.caret = from + len(s)
	t.anchor = t.caret
}

func printable(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c >= 32 && c <= 126 {
			out = append(out, c)
		}
	}
	return out
}

func (t *TextBox) edit(in *core.InputState) {
	clip := in.Clipboard
	if clip == nil {
		clip = &fallbackClipboard
	}
	moved := false
	if in.Ctrl() {
		switch {
		case in.KeyPressed(core.KeyA):
			t.anchor, t.caret = 0, len([]rune(t.Value))
			moved = true
		case in.KeyPressed(core.KeyC):
			if sel := t.SelectedText(); sel != "" {
				clip.SetClipboardText(sel)
			}
		case in.KeyPressed(core.KeyX):
			if sel := t.SelectedText(); sel != "" {
				t.pushHistory()
				clip.SetClipboardText(sel)
				t.replaceSelection(nil)
				moved = true
			}
		case in.KeyPressed(core.KeyV):
			if paste := printable(clip.ClipboardText()); len(paste) > 0 {
				t.pushHistory()
				t.replaceSelection(paste)
				moved = true
			}
		case in.KeyPressed(core.KeyZ):
			if n := len(t.history); n > 0 {
				t.Value = t.history[n-1]
				t.history = t.history[:n-1]
				t.caret = len([]rune(t.Value))
				t.anchor = t.caret
				moved = true
			}
		}
	} else if typed := printable(string(in.Chars)); len(typed) > 0 {
		t.pushHistory()
		t.replaceSelection(typed)
		moved = true
	}

	if in.KeyPressed(core.KeyEnter) {
		t.Submitted = true
	}
	if in.KeyPressed(core.KeyEscape) {
		t.Blur()
		return
	}

	if k, ok := t.repeat.step(in); ok {
		t.applyKey(k, in.Shift())
		moved = true
	}
	if moved {
		t.movedAt = in.Time
	}
}

func (t *TextBox) applyKey(k core.Key, shift bool) {
	n := len([]rune(t.Value))
	from, to := t.Selection()
	switch k {
	case core.KeyBackspace:
		if from == to && from > 0 {
			t.anchor, t.caret = from-1, from
		}
		if t.anchor != t.caret {
			t.pushHistory()
			t.replaceSelection(nil)
		}
	case core.KeyDelete:
		if from == to && to < n {
			t.anchor, t.caret = to, to+1
		}
		if t.anchor != t.caret {
			t.pushHistory()
			t.replaceSelection(nil)
		}
	case core.KeyLeft, core.KeyRight, core.KeyHome, core.KeyEnd:
		switch k {
		case core.KeyLeft:
			if from != to && !shift {
				t.caret = from
			} else {
				t.caret = max(t.caret-1, 0)
			}
		case core.KeyRight:
			if from != to && !shift {
				t.caret = to
			} else {
				t.caret = min(t.caret+1, n)
			}
		case core.KeyHome:
			t.caret = 0
		case core.KeyEnd:
			t.caret = n
		}
		if !shift {
			t.anchor = t.caret
		}
	}
}

// prefixWidth measures the first n runes of the value.
func (t *TextBox) prefixWidth(m gfx.TextMeasurer, size float32, n int) float32 {
	r := []rune(t.Value)
	n = min(max(n, 0), len(r))
	return m.MeasureText(string(r[:n]), size).X
}

// indexAt maps a screen x coordinate to the nearest rune boundary.
func (t *TextBox) indexAt(u *UpdateInfo, x float32) int {
	th := u.Theme()
	local := x - (t.box.X + th.ButtonPadding) + t.scrollX
	n := len([]rune(t.Value))
	best, bestD := 0, float32(math.MaxFloat32)
	for i := 0; i <= n; i++ {
		d := math32.Abs(t.prefixWidth(u.f.text, th.FontSize, i) - local)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func (t *TextBox) scrollToCaret(u *UpdateInfo) {
	th := u.Theme()
	inner := t.box.W - 2*th.ButtonPadding
	cx := t.prefixWidth(u.f.text, th.FontSize, t.caret)
	if cx-t.scrollX > inner {
		t.scrollX = cx - inner
	}
	if cx < t.scrollX {
		t.scrollX = cx
	}
	full := t.prefixWidth(u.f.text, th.FontSize, len([]rune(t.Value)))
	t.scrollX = gfx.Clamp(t.scrollX, 0, math32.Max(0, full-inner))
}

func (t *TextBox) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	if t.Label != "" {
		r.Base.DrawText(t.Label, r.At.Add(gfx.V(0, th.ButtonPadding)), th.FontSize, th.Text)
	}
	box := gfx.Rect{X: r.At.X + t.labelW, Y: r.At.Y, W: t.box.W, H: t.box.H}
	r.Base.FillRect(box, th.Track)
	outline := th.WinStroke
	if t.focused {
		outline = th.Accent
	} else if t.hovered {
		outline = th.HoverStroke
	}
	r.Base.StrokeRect(box, 1, outline)

	inner := box.W - 2*th.ButtonPadding
	origin := gfx.V(box.X+th.ButtonPadding, box.Y+th.ButtonPadding)
	m := r.text

	from, to := t.Selection()
	if t.focused && from != to {
		x0 := gfx.Clamp(t.prefixWidth(m, th.FontSize, from)-t.scrollX, 0, inner)
		x1 := gfx.Clamp(t.prefixWidth(m, th.FontSize, to)-t.scrollX, 0, inner)
		r.Base.FillRect(gfx.Rect{X: origin.X + x0, Y: box.Y + 2, W: x1 - x0, H: box.H - 4}, th.Selection)
	}

	// draw only the runes that fit in the box
	runes := []rune(t.Value)
	start, end := 0, len(runes)
	for start < end && t.prefixWidth(m, th.FontSize, start+1) <= t.scrollX {
		start++
	}
	for end > start && t.prefixWidth(m, th.FontSize, end)-t.scrollX > inner {
		end--
	}
	shift := t.prefixWidth(m, th.FontSize, start) - t.scrollX
	r.Base.DrawText(string(runes[start:end]), origin.Add(gfx.V(shift, 0)), th.FontSize, th.Text)

	if t.focused && caretVisible(r.time-t.movedAt, th.CaretBlink) {
		x := origin.X + t.prefixWidth(m, th.FontSize, t.caret) - t.scrollX
		r.Base.Line(gfx.V(x, box.Y+3), gfx.V(x, box.Bottom()-3), 1, th.Text)
	}
	return t.size
}

// caretVisible blinks with the given half period, staying solid right
// after the caret moved.
func caretVisible(since float64, blink float32) bool {
	if blink <= 0 || since < float64(blink) {
		return true
	}
	return int(since/float64(blink))%2 == 0
}

// keyRepeat turns held navigation/deletion keys into accelerating repeats.
type keyRepeat struct {
	key   core.Key
	timer float32
	count int
}

var repeatKeys = []core.Key{core.KeyBackspace, core.KeyDelete, core.KeyLeft, core.KeyRight, core.KeyHome, core.KeyEnd}

func (kr *keyRepeat) step(in *core.InputState) (core.Key, bool) {
	for _, k := range repeatKeys {
		if in.KeyPressed(k) {
			kr.key, kr.timer, kr.count = k, repeatDelay, 0
			return k, true
		}
	}
	if kr.key == core.KeyUnknown {
		return core.KeyUnknown, false
	}
	if !in.KeyDown(kr.key) {
		*kr = keyRepeat{}
		return core.KeyUnknown, false
	}
	kr.timer -= in.DT
	if kr.timer > 0 {
		return core.KeyUnknown, false
	}
	kr.count++
	next := float32(repeatInterval * math.Pow(repeatAccel, float64(kr.count)))
	kr.timer += math32.Max(next, repeatMinInterval)
	return kr.key, true
}
