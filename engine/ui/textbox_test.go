package ui

import (
	"testing"

	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the box spans x 5..190 and y 35..58; its text starts at x 10 and each
// rune is 6.5 px wide
var inBox = gfx.V(20, 45)

func textboxScene(tb **TextBox, value string) func(u *UI) {
	return func(u *UI) { *tb = fixedWindow(u, "w", testRect).TextBox(Auto, value) }
}

func TestTextBoxFocusSelectsAll(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "hello")
	h.frame(gfx.V(-10, -10), idle, build)
	require.False(t, tb.Focused())

	h.click(inBox, build)
	assert.True(t, tb.Focused())
	assert.Equal(t, "hello", tb.SelectedText())

	h.frame(inBox, idle, build, chars("X"))
	assert.Equal(t, "X", tb.Value, "typing replaces the selection")
	assert.True(t, tb.Changed)
}

func TestTextBoxCaretPersistsAcrossFrames(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "")
	h.click(inBox, build)
	h.frame(inBox, idle, build, chars("abc"))
	require.Equal(t, "abc", tb.Value)
	assert.Equal(t, 3, tb.Caret())

	h.frame(inBox, idle, build, keyPress(core.KeyLeft))
	assert.Equal(t, 2, tb.Caret())
	h.frame(inBox, idle, build)
	h.frame(inBox, idle, build)
	assert.Equal(t, 2, tb.Caret(), "caret survives frames without input")

	h.frame(inBox, idle, build, keyPress(core.KeyBackspace))
	assert.Equal(t, "ac", tb.Value)
	assert.Equal(t, 1, tb.Caret())

	h.frame(inBox, idle, build, keyPress(core.KeyDelete))
	assert.Equal(t, "a", tb.Value)

	h.frame(inBox, idle, build, keyPress(core.KeyHome))
	assert.Equal(t, 0, tb.Caret())
	h.frame(inBox, idle, build, keyPress(core.KeyEnd))
	assert.Equal(t, 1, tb.Caret())
}

func TestTextBoxClickPlacesCaret(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "abc")
	h.click(inBox, build)
	require.True(t, tb.Focused())

	// x 17 is 7 px into the text, nearest the boundary after "a"
	h.click(gfx.V(17, 45), build)
	assert.Equal(t, 1, tb.Caret())
	assert.Empty(t, tb.SelectedText())
}

func TestTextBoxDragSelects(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "abcdef")
	h.click(inBox, build)

	h.frame(gfx.V(10, 45), press, build)
	h.frame(gfx.V(30, 45), hold, build)
	h.frame(gfx.V(30, 45), release, build)
	assert.Equal(t, "abc", tb.SelectedText())
}

func TestTextBoxShiftSelection(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "abcd")
	h.click(inBox, build)
	h.frame(inBox, idle, build, keyPress(core.KeyEnd))
	h.frame(inBox, idle, build, keyPress(core.KeyLeft), withMods(core.ModShift))
	h.frame(inBox, idle, build, keyPress(core.KeyLeft), withMods(core.ModShift))
	assert.Equal(t, "cd", tb.SelectedText())

	h.frame(inBox, idle, build, keyPress(core.KeyLeft))
	assert.Empty(t, tb.SelectedText())
	assert.Equal(t, 2, tb.Caret(), "left collapses to the selection start")
}

func TestTextBoxClipboardAndUndo(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "")
	h.click(inBox, build)
	h.frame(inBox, idle, build, chars("abc"))
	h.frame(inBox, idle, build, keyPress(core.KeyBackspace))
	require.Equal(t, "ab", tb.Value)

	h.frame(inBox, idle, build, keyPress(core.KeyZ), withMods(core.ModCtrl))
	assert.Equal(t, "abc", tb.Value)

	h.frame(inBox, idle, build, keyPress(core.KeyA), withMods(core.ModCtrl))
	h.frame(inBox, idle, build, keyPress(core.KeyC), withMods(core.ModCtrl))
	assert.Equal(t, "abc", h.clip.ClipboardText())

	h.frame(inBox, idle, build, keyPress(core.KeyX), withMods(core.ModCtrl))
	assert.Empty(t, tb.Value)

	h.clip.SetClipboardText("x\ty\nz")
	h.frame(inBox, idle, build, keyPress(core.KeyV), withMods(core.ModCtrl))
	assert.Equal(t, "xyz", tb.Value, "paste keeps printable ASCII only")

	h.frame(inBox, idle, build, chars("q"), withMods(core.ModCtrl))
	assert.Equal(t, "xyz", tb.Value, "chars typed with ctrl held are shortcuts, not text")
}

func TestTextBoxLosesFocus(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "abc")
	h.click(inBox, build)
	require.True(t, tb.Focused())

	h.frame(gfx.V(100, 120), press, build)
	assert.False(t, tb.Focused(), "press elsewhere blurs")

	h.click(inBox, build)
	h.frame(inBox, idle, build, keyPress(core.KeyEscape))
	assert.False(t, tb.Focused())

	h.click(inBox, build)
	h.frame(gfx.V(500, 500), press, build)
	assert.False(t, tb.Focused(), "deactivating the window blurs")
}

func TestTextBoxSubmit(t *testing.T) {
	h := newHarness()
	var tb *TextBox
	build := textboxScene(&tb, "go")
	h.click(inBox, build)
	h.frame(inBox, idle, build, keyPress(core.KeyEnter))
	assert.True(t, tb.Submitted)
	h.frame(inBox, idle, build)
	assert.False(t, tb.Submitted)
}

func TestLabeledTextBoxKeyedByLabel(t *testing.T) {
	h := newHarness()
	var a, b *TextBox
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		a = w.LabeledTextBox(Auto, "Name", "x")
		b = w.LabeledTextBox(Auto, "City", "y")
	}
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, "x", a.Value)
	assert.Equal(t, "y", b.Value)
	assert.Greater(t, a.size.X, a.box.W, "the label takes room left of the box")
}

func TestKeyRepeatAccelerates(t *testing.T) {
	var kr keyRepeat
	frame := func(d float32, pressed bool) *core.InputState {
		s := &core.InputState{Keys: map[core.Key]bool{core.KeyLeft: true}, Pressed: map[core.Key]bool{}, DT: d}
		if pressed {
			s.Pressed[core.KeyLeft] = true
		}
		return s
	}
	k, ok := kr.step(frame(0.016, true))
	require.True(t, ok)
	assert.Equal(t, core.KeyLeft, k)

	_, ok = kr.step(frame(0.1, false))
	assert.False(t, ok, "still inside the initial delay")
	_, ok = kr.step(frame(0.1, false))
	assert.True(t, ok, "delay elapsed")
	assert.InDelta(t, 0.18-0.2+0.05*0.85, kr.timer, 1e-5)

	_, ok = kr.step(&core.InputState{Keys: map[core.Key]bool{}, Pressed: map[core.Key]bool{}, DT: 0.1})
	assert.False(t, ok)
	assert.Equal(t, core.KeyUnknown, kr.key, "releasing the key stops repeating")
}

func TestCaretBlink(t *testing.T) {
	assert.True(t, caretVisible(0.1, 0.5), "solid right after moving")
	assert.False(t, caretVisible(0.7, 0.5))
	assert.True(t, caretVisible(1.2, 0.5))
	assert.True(t, caretVisible(7, 0), "zero period disables blinking")
}
