package ui

import (
	"fmt"
	"testing"

	"github.com/hubastard/panes/engine/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPosOnceOnlyAppliesBeforeFirstFrame(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		u.Begin("w").SetPos(gfx.V(50, 50), Once).SetSize(gfx.V(200, 100), Once)
	})
	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		u.Begin("w").SetPos(gfx.V(999, 999), Once)
	})
	w := h.ui.Handler().Window("w")
	assert.Equal(t, gfx.R(50, 50, 200, 100), w.Rect())

	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		u.Begin("w").SetPos(gfx.V(60, 70), EachFrame)
	})
	assert.Equal(t, gfx.V(60, 70), w.Rect().Pos())
}

func TestOnceRunsOnFirstFrame(t *testing.T) {
	h := newHarness()
	runs := 0
	build := func(u *UI) { u.Begin("w").Once(func(*Window) { runs++ }) }
	h.frame(gfx.V(-10, -10), idle, build)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 1, runs)
}

func TestSetProperties(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		u.Begin("w").SetProperties(WindowProperties{
			Title: "Props", Pos: gfx.V(20, 30), Size: gfx.V(300, 200),
			Action: Once, Draggable: false, Resizable: true, Titlebar: true,
		})
	})
	w := h.ui.Handler().Window("w")
	assert.Equal(t, "Props", w.Title())
	assert.Equal(t, gfx.R(20, 30, 300, 200), w.Rect())
	assert.False(t, w.draggable)
	assert.False(t, w.closable)
}

func TestDragByTitlebar(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", gfx.R(100, 100, 200, 150)) }
	h.frame(gfx.V(150, 110), press, build)
	w := h.ui.Handler().Window("w")
	require.True(t, w.Dragging())

	h.frame(gfx.V(250, 210), hold, build)
	assert.Equal(t, gfx.V(200, 200), w.Rect().Pos())
	h.frame(gfx.V(250, 210), release, build)
	assert.False(t, w.Dragging())
	assert.Equal(t, gfx.V(200, 200), w.Rect().Pos())
}

func TestNotDraggable(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", gfx.R(100, 100, 200, 150)).SetDraggable(false) }
	h.frame(gfx.V(150, 110), press, build)
	h.frame(gfx.V(250, 210), hold, build)
	assert.Equal(t, gfx.V(100, 100), h.ui.Handler().Window("w").Rect().Pos())
}

func TestResizeFromRightEdge(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", gfx.R(100, 100, 200, 150)) }
	h.frame(gfx.V(296, 150), press, build)
	w := h.ui.Handler().Window("w")
	require.True(t, w.Resizing())
	assert.Equal(t, gfx.CursorEWResize, h.r.cursor)

	h.frame(gfx.V(346, 170), hold, build)
	assert.Equal(t, gfx.V(250, 150), w.Rect().Size())
	h.frame(gfx.V(346, 170), release, build)
	assert.False(t, w.Resizing())
}

func TestResizeFromCorner(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", gfx.R(100, 100, 200, 150)) }
	h.frame(gfx.V(295, 245), press, build)
	assert.Equal(t, gfx.CursorNWSEResize, h.r.cursor)
	h.frame(gfx.V(305, 265), hold, build)
	assert.Equal(t, gfx.V(210, 170), h.ui.Handler().Window("w").Rect().Size())
}

func TestCloseButtonClosesOnRelease(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", gfx.R(100, 100, 200, 150)) }
	// the close button is the 30 px square at the titlebar's right end
	h.frame(gfx.V(285, 115), press, build)
	w := h.ui.Handler().Window("w")
	assert.True(t, w.IsOpen())
	h.frame(gfx.V(285, 115), release, build)
	assert.False(t, w.IsOpen())

	h.r.ops = nil
	h.frame(gfx.V(-10, -10), idle, build)
	for _, op := range h.r.ops {
		assert.NotEqual(t, w.Rect(), op.rect, "a closed window is not painted")
	}

	h.frame(gfx.V(-10, -10), idle, func(u *UI) { build(u); u.Begin("w").Show() })
	assert.True(t, w.IsOpen())
}

func TestCloseNeedsReleaseOverButton(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", gfx.R(100, 100, 200, 150)) }
	h.frame(gfx.V(285, 115), press, build)
	h.frame(gfx.V(200, 200), release, build)
	assert.True(t, h.ui.Handler().Window("w").IsOpen())
}

func TestMinimumSize(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		u.Begin("w").SetSize(gfx.V(10, 10), EachFrame)
	})
	// title "w" is 7 px, plus padding on both sides and the close button
	w := h.ui.Handler().Window("w")
	assert.Equal(t, gfx.V(47, 40), w.Rect().Size())

	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		u.Begin("w").SetSize(gfx.V(10, 10), EachFrame).SetMinSize(gfx.V(120, 90))
	})
	assert.Equal(t, gfx.V(120, 90), w.Rect().Size())
}

func TestClampToScreen(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, func(u *UI) {
		fixedWindow(u, "w", gfx.R(700, 500, 200, 150))
	})
	assert.Equal(t, gfx.V(600, 450), h.ui.Handler().Window("w").Rect().Pos())
}

func scrollScene(u *UI) {
	w := fixedWindow(u, "w", gfx.R(0, 0, 200, 100))
	for i := range 10 {
		w.Text(Auto, fmt.Sprintf("line %d", i))
	}
}

func TestWheelScrollIsClamped(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(100, 60), idle, scrollScene)
	w := h.ui.Handler().Window("w")
	// ten 13 px lines with 5 px padding plus the top padding
	require.Equal(t, float32(185), w.ContentSize().Y)

	h.frame(gfx.V(100, 60), idle, scrollScene, wheel(-1))
	assert.Equal(t, float32(30), w.Scroll())
	h.frame(gfx.V(100, 60), idle, scrollScene, wheel(-10))
	assert.Equal(t, float32(115), w.Scroll(), "content 185 minus body 70")
	h.frame(gfx.V(100, 60), idle, scrollScene, wheel(100))
	assert.Equal(t, float32(0), w.Scroll())

	h.frame(gfx.V(400, 400), idle, scrollScene, wheel(-1))
	assert.Equal(t, float32(0), w.Scroll(), "the wheel only scrolls the hovered window")
}

func TestScrollThumbDrag(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, scrollScene)
	w := h.ui.Handler().Window("w")
	thumb := w.scrollThumb()
	require.False(t, thumb.Empty())

	h.frame(thumb.Center(), press, scrollScene)
	h.frame(gfx.V(thumb.Center().X, 500), hold, scrollScene)
	assert.Equal(t, float32(115), w.Scroll())
	h.frame(gfx.V(thumb.Center().X, 0), hold, scrollScene)
	assert.Equal(t, float32(0), w.Scroll())
	h.frame(gfx.V(thumb.Center().X, 0), release, scrollScene)
	assert.False(t, w.scroll.dragging)
}

func TestScrollDisabled(t *testing.T) {
	h := newHarness()
	build := func(u *UI) {
		scrollScene(u)
		u.Begin("w").SetScrollable(false)
	}
	h.frame(gfx.V(100, 60), idle, build, wheel(-5))
	assert.Equal(t, float32(0), h.ui.Handler().Window("w").Scroll())
}

func TestSameLineOpensRowAndContinuation(t *testing.T) {
	h := newHarness()
	var b, c *Button
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		w.SameLine(Auto, func(w *Window) {
			w.Button(Auto, "A")
			b = w.Button(Auto, "B")
		})
		c = w.Button(Auto, "C")
	}
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, []string{"main", "row:0", "main#0"}, h.ui.Handler().Window("w").HolderIDs())

	h.click(gfx.V(30, 45), build)
	assert.True(t, b.Clicked)
	// the continuation starts below the 23 px row and its padding
	h.click(gfx.V(10, 70), build)
	assert.True(t, c.Clicked)
}

func TestSameLineHoldersAreRetained(t *testing.T) {
	h := newHarness()
	withRow := true
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		if withRow {
			w.SameLine(ID("tools"), func(w *Window) { w.Button(Auto, "A") })
		}
	}
	h.frame(gfx.V(-10, -10), idle, build)
	w := h.ui.Handler().Window("w")
	assert.Contains(t, w.holders, "row:tools")

	withRow = false
	h.frame(gfx.V(-10, -10), idle, build)
	assert.NotContains(t, w.holders, "row:tools")
	assert.NotContains(t, w.holders, "main#tools")
}

func TestDuplicateRowIDPanics(t *testing.T) {
	h := newHarness()
	err := recoverError(func() {
		h.frame(gfx.V(-10, -10), idle, func(u *UI) {
			w := fixedWindow(u, "w", testRect)
			w.SameLine(ID("r"), func(*Window) {})
			w.SameLine(ID("r"), func(*Window) {})
		})
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLayersReallocateOnlyOnSizeChange(t *testing.T) {
	h := newHarness()
	size := gfx.V(200, 150)
	build := func(u *UI) { u.Begin("w").SetSize(size, EachFrame) }

	h.frame(gfx.V(-10, -10), idle, build)
	w := h.ui.Handler().Window("w")
	assert.Equal(t, 3, w.layers.allocs)
	first := h.r.surfaces[0]

	h.frame(gfx.V(-10, -10), idle, build)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 3, w.layers.allocs)
	assert.Equal(t, 3, first.clears, "layers are cleared every frame")

	size = gfx.V(250, 150)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 5, w.layers.allocs, "body size change reallocates base and overlay")
	assert.True(t, first.released)

	h.r.screen = gfx.V(1024, 768)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 6, w.layers.allocs, "screen size change reallocates the top layer")
}

func TestLayerAllocationFailureSkipsComposition(t *testing.T) {
	buf := captureLog(t)
	h := newHarness()
	h.r.fail = true
	assert.NotPanics(t, func() {
		h.frame(gfx.V(-10, -10), idle, func(u *UI) { fixedWindow(u, "w", testRect).Text(Auto, "hi") })
	})
	for _, op := range h.r.ops {
		assert.NotEqual(t, "surface", op.kind)
	}
	assert.Contains(t, buf.String(), "allocating window layers")
}

func TestChromeRenderOrder(t *testing.T) {
	h := newHarness()
	h.frame(gfx.V(-10, -10), idle, func(u *UI) { fixedWindow(u, "w", testRect).Text(Auto, "hi") })

	var kinds []string
	for _, op := range h.r.ops {
		kinds = append(kinds, op.kind)
	}
	require.GreaterOrEqual(t, len(kinds), 5)
	assert.Equal(t, []string{"fill", "surface", "surface", "fill"}, kinds[:4], "background, layers, then titlebar")
	assert.Equal(t, "surface", kinds[len(kinds)-1], "the top layer lands last")
}

func TestResizeHandleHiddenOverScrollbar(t *testing.T) {
	h := newHarness()
	for range 3 {
		h.frame(gfx.V(50, 97), idle, scrollScene)
	}
	w := h.ui.Handler().Window("w")
	_, bottom, _ := w.resizeStrips()
	hasStrip := func() bool {
		for _, op := range h.r.ops {
			if op.kind == "fill" && op.rect == bottom {
				return true
			}
		}
		return false
	}

	h.r.ops = nil
	h.frame(gfx.V(50, 97), idle, scrollScene)
	require.True(t, hasStrip(), "hovering the bottom edge shows its handle")

	h.r.ops = nil
	h.frame(gfx.V(196, 60), idle, scrollScene)
	require.True(t, w.scroll.hovered)
	assert.Greater(t, w.resize.opacity, float32(0.01), "the handle is still fading out")
	assert.False(t, hasStrip(), "no handle over the scrollbar")
}
