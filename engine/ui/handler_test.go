package ui

import (
	"testing"

	"github.com/hubastard/panes/engine/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoWindows(u *UI) {
	fixedWindow(u, "A", gfx.R(0, 0, 200, 150))
	fixedWindow(u, "B", gfx.R(100, 100, 200, 150))
}

// fillIndex finds the first fill of exactly r among the recorded calls.
func fillIndex(ops []drawOp, r gfx.Rect) int {
	for i, op := range ops {
		if op.kind == "fill" && op.rect == r {
			return i
		}
	}
	return -1
}

func TestNewWindowsOpenInFront(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	assert.Equal(t, []string{"B", "A"}, h.ui.Handler().ZOrder())
}

func TestClickPromotesWindow(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	a := h.ui.Handler().Window("A")
	b := h.ui.Handler().Window("B")

	h.click(gfx.V(50, 50), twoWindows)
	assert.Equal(t, []string{"A", "B"}, h.ui.Handler().ZOrder())
	assert.True(t, a.Active())

	h.r.ops = nil
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	ia, ib := fillIndex(h.r.ops, a.Rect()), fillIndex(h.r.ops, b.Rect())
	require.NotEqual(t, -1, ia)
	require.NotEqual(t, -1, ib)
	assert.Greater(t, ia, ib, "the front window is painted last")

	h.click(gfx.V(250, 200), twoWindows)
	assert.Equal(t, []string{"B", "A"}, h.ui.Handler().ZOrder())
	assert.True(t, b.Active())
	assert.False(t, a.Active(), "focusing B deactivates A")
}

func TestClickOutsideDeactivates(t *testing.T) {
	h := newHarness()
	h.click(gfx.V(50, 50), twoWindows)
	require.True(t, h.ui.Handler().Window("A").Active())
	assert.True(t, h.ui.WantsKeyboard())
	h.click(gfx.V(600, 500), twoWindows)
	assert.False(t, h.ui.Handler().Window("A").Active())
	assert.False(t, h.ui.Handler().Window("B").Active())
	assert.False(t, h.ui.WantsKeyboard())
}

func TestOnlyFrontWidgetConsumesOverlap(t *testing.T) {
	h := newHarness()
	var back, front *Button
	build := func(u *UI) {
		back = fixedWindow(u, "back", testRect).Button(Auto, "Go")
		front = fixedWindow(u, "front", testRect).Button(Auto, "Go")
	}
	h.frame(gfx.V(-10, -10), idle, build)
	require.Equal(t, []string{"front", "back"}, h.ui.Handler().ZOrder())

	assert.True(t, h.frame(gfx.V(10, 40), press, build))
	assert.True(t, front.Pressed())
	assert.False(t, back.Pressed())
	h.frame(gfx.V(10, 40), release, build)
	assert.True(t, front.Clicked)
	assert.False(t, back.Clicked)

	key, ok := h.ui.Handler().Action().Owner()
	assert.True(t, ok)
	assert.Equal(t, WindowKey("front"), key)
}

func TestClosedWindowDoesNotBlock(t *testing.T) {
	h := newHarness()
	var back *Button
	build := func(u *UI) {
		back = fixedWindow(u, "back", testRect).Button(Auto, "Go")
		fixedWindow(u, "front", testRect)
	}
	h.frame(gfx.V(-10, -10), idle, build)
	h.ui.Handler().Window("front").Close()
	h.click(gfx.V(10, 40), build)
	assert.True(t, back.Clicked)
}

func TestUpdateReportsPointerUse(t *testing.T) {
	h := newHarness()
	assert.False(t, h.frame(gfx.V(600, 500), idle, twoWindows), "nothing under the pointer")
	assert.True(t, h.frame(gfx.V(50, 50), idle, twoWindows), "hovering a window")
}

func TestUndeclaredWindowsAreDropped(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	b := h.ui.Handler().Window("B")
	top := b.layers.top.(*fakeSurface)

	h.frame(gfx.V(-10, -10), idle, func(u *UI) { fixedWindow(u, "A", gfx.R(0, 0, 200, 150)) })
	assert.Nil(t, h.ui.Handler().Window("B"))
	assert.Equal(t, []string{"A"}, h.ui.Handler().ZOrder())
	assert.True(t, top.released)

	// coming back starts from scratch
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	assert.NotSame(t, b, h.ui.Handler().Window("B"))
}

func TestBeginTwiceInOneFrame(t *testing.T) {
	h := newHarness()
	assert.NotPanics(t, func() {
		h.frame(gfx.V(-10, -10), idle, func(u *UI) {
			w1 := u.Begin("w")
			w1.Button(Auto, "X")
			w2 := u.Begin("w")
			assert.Same(t, w1, w2)
			w2.Button(Auto, "Y")
		})
	})
	assert.Equal(t, 2, h.ui.Handler().Window("w").holders[mainHolder].Len())
}

func TestSetActiveRaises(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		twoWindows(u)
		u.Begin("A").SetActive(true)
	})
	assert.Equal(t, []string{"A", "B"}, h.ui.Handler().ZOrder())
	assert.True(t, h.ui.Handler().Window("A").Active())
}

func TestSetActiveRaisesOverFocusedWindow(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	h.click(gfx.V(250, 200), twoWindows)
	a, b := h.ui.Handler().Window("A"), h.ui.Handler().Window("B")
	require.Equal(t, []string{"B", "A"}, h.ui.Handler().ZOrder())
	require.True(t, b.Active())

	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		twoWindows(u)
		u.Begin("A").SetActive(true)
	})
	assert.Equal(t, []string{"A", "B"}, h.ui.Handler().ZOrder())
	assert.True(t, a.Active())
	assert.False(t, b.Active())

	h.frame(gfx.V(-10, -10), idle, twoWindows)
	assert.Equal(t, []string{"A", "B"}, h.ui.Handler().ZOrder(), "the request is applied once")
	assert.True(t, a.Active())
}

func TestEndFrameWithoutRender(t *testing.T) {
	u := New(monoMeasurer{})
	h := newHarness()
	for range 2 {
		u.Begin("w").Checkbox(Auto, "c", true)
		u.Update(h.input(gfx.V(-10, -10), idle))
		u.EndFrame()
	}
	assert.Equal(t, 1, u.Handler().Window("w").holders[mainHolder].Len())
}

func TestSetThemeReachesWindows(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, twoWindows)
	th := DefaultTheme()
	th.TitleThickness = 40
	h.ui.SetTheme(th)
	assert.Same(t, th, h.ui.Handler().Window("A").theme)
	assert.Equal(t, float32(40), h.ui.Handler().Window("A").bodyRect().Y)
}
