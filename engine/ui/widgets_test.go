package ui

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"testing"

	"github.com/hubastard/panes/engine/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test window sits at the origin: its body starts below the 30 px
// titlebar and the first widget at (5, 35).
var testRect = gfx.R(0, 0, 200, 150)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logger = prev })
	return &buf
}

func TestCheckboxTogglesOnRelease(t *testing.T) {
	h := newHarness()
	var cb *Checkbox
	build := func(u *UI) { cb = fixedWindow(u, "w", testRect).Checkbox(Auto, "Check", false) }

	h.frame(gfx.V(-10, -10), idle, build)
	h.frame(gfx.V(10, 40), press, build)
	assert.False(t, cb.Value, "press alone does not toggle")
	h.frame(gfx.V(10, 40), release, build)
	assert.True(t, cb.Value)
	assert.True(t, cb.Changed)
	h.frame(gfx.V(10, 40), idle, build)
	assert.False(t, cb.Changed)
}

func TestButtonReleaseOutsideDoesNotClick(t *testing.T) {
	h := newHarness()
	var b *Button
	build := func(u *UI) { b = fixedWindow(u, "w", testRect).Button(Auto, "OK") }

	h.frame(gfx.V(10, 40), press, build)
	assert.True(t, b.Pressed())
	h.frame(gfx.V(150, 120), hold, build)
	assert.True(t, b.Pressed(), "the press stays armed while held")
	h.frame(gfx.V(150, 120), release, build)
	assert.False(t, b.Clicked)

	h.click(gfx.V(10, 40), build)
	assert.True(t, b.Clicked)
}

func TestButtonSetsPointerCursor(t *testing.T) {
	h := newHarness()
	build := func(u *UI) { fixedWindow(u, "w", testRect).Button(Auto, "OK") }
	h.frame(gfx.V(10, 40), idle, build)
	assert.Equal(t, gfx.CursorPointer, h.r.cursor)
	h.frame(gfx.V(150, 120), idle, build)
	assert.Equal(t, gfx.CursorDefault, h.r.cursor)
}

func TestDropdownSelectsOnRelease(t *testing.T) {
	h := newHarness()
	var dd *Dropdown
	build := func(u *UI) { dd = fixedWindow(u, "w", testRect).Dropdown(Auto, []string{"A", "B"}, "A") }

	h.frame(gfx.V(-10, -10), idle, build)
	require.Equal(t, "A", dd.Value)

	// header spans y 35..58, items A 58..79 and B 79..100
	h.click(gfx.V(20, 46), build)
	require.True(t, dd.IsOpen())

	h.frame(gfx.V(20, 90), press, build)
	assert.Equal(t, "A", dd.Value)
	h.frame(gfx.V(20, 90), release, build)
	assert.Equal(t, "B", dd.Value)
	assert.True(t, dd.Changed)
	assert.False(t, dd.IsOpen(), "committing closes the popup on the same frame")
}

func TestDropdownClosesOnPressOutside(t *testing.T) {
	h := newHarness()
	var dd *Dropdown
	build := func(u *UI) { dd = fixedWindow(u, "w", testRect).Dropdown(Auto, []string{"A", "B"}, "A") }
	h.click(gfx.V(20, 46), build)
	require.True(t, dd.IsOpen())
	h.frame(gfx.V(150, 130), press, build)
	assert.False(t, dd.IsOpen())
	assert.Equal(t, "A", dd.Value)
}

func TestDropdownPopupCoversLaterWidgets(t *testing.T) {
	h := newHarness()
	var dd *Dropdown
	var b *Button
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		dd = w.Dropdown(Auto, []string{"A", "B"}, "B")
		b = w.Button(Auto, "Go") // at y 63..86, under the open popup
	}
	h.click(gfx.V(20, 46), build)
	require.True(t, dd.IsOpen())

	h.frame(gfx.V(15, 70), press, build)
	assert.False(t, b.Pressed())
	h.frame(gfx.V(15, 70), release, build)
	assert.False(t, b.Clicked)
	assert.Equal(t, "A", dd.Value)

	// with the popup gone the button is reachable again
	h.click(gfx.V(15, 70), build)
	assert.True(t, b.Clicked)
}

func TestDropdownPopupDrawsOnOverlay(t *testing.T) {
	h := newHarness()
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		w.Dropdown(Auto, []string{"A", "B"}, "A")
		w.Text(Auto, "below")
	}
	h.click(gfx.V(20, 46), build)
	h.frame(gfx.V(-10, -10), idle, build)

	win := h.ui.Handler().Window("w")
	base := win.layers.base.(*fakeSurface)
	overlay := win.layers.overlay.(*fakeSurface)
	assert.Contains(t, base.texts(), "below")
	assert.Equal(t, []string{"A", "B"}, overlay.texts())
}

func TestInvalidDefaultFallsBackAndLogs(t *testing.T) {
	buf := captureLog(t)
	h := newHarness()
	var dd *Dropdown
	var rb *RadioButtons
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		dd = w.Dropdown(Auto, []string{"A", "B"}, "Z")
		rb = w.RadioButtons(Auto, []string{"x", "y"}, "nope")
	}
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, "A", dd.Value)
	assert.Equal(t, "x", rb.Value)
	assert.Contains(t, buf.String(), "default value not found")
	assert.Contains(t, buf.String(), "widget=dropdown")
	assert.Contains(t, buf.String(), "widget=radio")
}

func TestSliderClampIsIdempotent(t *testing.T) {
	h := newHarness()
	var s *Slider
	var f *Slider
	first := true
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		s = w.Slider(Auto, "n", IntRange(0, 10, 5))
		f = w.Slider(Auto, "x", FloatRange(-1, 1, 0))
		if first {
			s.SetValue(1010)
			f.SetValue(-5000)
			first = false
		}
	}
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 10, s.Int())
	assert.Equal(t, -1.0, f.Float())
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 10, s.Int())
	assert.False(t, s.Changed)
	assert.Equal(t, -1.0, f.Float())
}

func TestSliderKeepsValueAcrossFrames(t *testing.T) {
	h := newHarness()
	var s *Slider
	build := func(u *UI) { s = fixedWindow(u, "w", testRect).Slider(Auto, "n", IntRange(0, 100, 5)) }
	h.frame(gfx.V(-10, -10), idle, build)
	s.SetValue(42)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 42, s.Int())
}

func TestProgressBarClamps(t *testing.T) {
	h := newHarness()
	var p *ProgressBar
	build := func(u *UI) { p = fixedWindow(u, "w", testRect).ProgressBar(Auto, "load", FloatRange(0, 1, 0)) }
	h.frame(gfx.V(-10, -10), idle, build)
	p.SetValue(3)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 1.0, p.Value)
	assert.InDelta(t, 1, p.Fraction(), 1e-6)
}

func TestTabsDefaultOutOfRange(t *testing.T) {
	buf := captureLog(t)
	h := newHarness()
	var tb *Tabs
	build := func(u *UI) { tb = fixedWindow(u, "w", testRect).Tabs(Auto, []string{"one", "two"}, 9) }
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 0, tb.Selected)
	assert.Equal(t, "one", tb.Value())
	assert.Contains(t, buf.String(), "default tab out of range")
}

func TestAutoIDsAreDistinctForRepeatedText(t *testing.T) {
	h := newHarness()
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		w.Text(Auto, "same")
		w.Text(Auto, "same")
		w.Separator(Auto)
		w.Separator(Auto)
	}
	assert.NotPanics(t, func() { h.frame(gfx.V(-10, -10), idle, build) })
}

func TestSameLabelButtonsAtDifferentPositions(t *testing.T) {
	h := newHarness()
	var first, second *Button
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		first = w.Button(Auto, "Delete")
		w.Text(Auto, "row 2")
		second = w.Button(Auto, "Delete")
	}
	require.NotPanics(t, func() { h.frame(gfx.V(-10, -10), idle, build) })
	assert.NotSame(t, first, second)

	// buttons are 23 px tall, so the second one starts at y=81
	h.click(gfx.V(20, 90), build)
	assert.False(t, first.Clicked)
	assert.True(t, second.Clicked)
}

func TestSameLabelCheckboxesNeedExplicitIDs(t *testing.T) {
	h := newHarness()
	err := recoverError(func() {
		h.frame(gfx.V(-10, -10), idle, func(u *UI) {
			w := fixedWindow(u, "w", testRect)
			w.Checkbox(Auto, "X", false)
			w.Checkbox(Auto, "X", false)
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	h = newHarness()
	assert.NotPanics(t, func() {
		h.frame(gfx.V(-10, -10), idle, func(u *UI) {
			w := fixedWindow(u, "w", testRect)
			w.Checkbox(ID(1), "X", false)
			w.Checkbox(ID(2), "X", false)
		})
	})
}

func TestColumnStacksAsOneUnit(t *testing.T) {
	h := newHarness()
	var inner, after *Button
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		w.Column(Auto, func(w *Window) {
			w.Button(Auto, "A")
			inner = w.Button(Auto, "B")
		})
		after = w.Button(Auto, "C")
	}
	h.frame(gfx.V(-10, -10), idle, build)
	// column: A at 35, B at 63, column height 51; C at 91
	h.click(gfx.V(10, 70), build)
	assert.True(t, inner.Clicked)
	h.click(gfx.V(10, 95), build)
	assert.True(t, after.Clicked)
}

func TestRowInsideColumn(t *testing.T) {
	h := newHarness()
	var b *Button
	build := func(u *UI) {
		w := fixedWindow(u, "w", testRect)
		w.Column(Auto, func(w *Window) {
			w.SameLine(Auto, func(w *Window) {
				w.Button(Auto, "A")
				b = w.Button(Auto, "B")
			})
		})
	}
	h.frame(gfx.V(-10, -10), idle, build)
	// B follows A (16.5 wide) and 5 px of padding
	h.click(gfx.V(30, 45), build)
	assert.True(t, b.Clicked)
	assert.Equal(t, []string{"main"}, h.ui.Handler().Window("w").HolderIDs())
}

func TestImageLoadsOnce(t *testing.T) {
	calls := 0
	loader := func(ctx context.Context, path string) (image.Image, error) {
		calls++
		return image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
	}
	h := newHarness(WithImageLoader(loader))
	var im *Image
	build := func(u *UI) {
		var err error
		im, err = fixedWindow(u, "w", testRect).Image(context.Background(), Auto, "icon.png", gfx.Vec2{})
		require.NoError(t, err)
	}
	h.frame(gfx.V(-10, -10), idle, build)
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 1, calls)
	assert.Equal(t, gfx.V(4, 3), im.size)

	base := h.ui.Handler().Window("w").layers.base.(*fakeSurface)
	require.NotEmpty(t, base.ops)
	assert.Equal(t, "image", base.ops[0].kind)
	assert.Equal(t, gfx.R(5, 5, 4, 3), base.ops[0].rect)
}

func TestImageFailureIsReturnedAndRetried(t *testing.T) {
	buf := captureLog(t)
	calls := 0
	loader := func(ctx context.Context, path string) (image.Image, error) {
		calls++
		return nil, errors.New("missing")
	}
	h := newHarness(WithImageLoader(loader))
	var err error
	build := func(u *UI) {
		_, err = fixedWindow(u, "w", testRect).Image(context.Background(), Auto, "gone.png", gfx.V(10, 10))
	}
	h.frame(gfx.V(-10, -10), idle, build)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.png")
	h.frame(gfx.V(-10, -10), idle, build)
	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), "image load failed")
}

func TestImageNilResultIsAnError(t *testing.T) {
	loader := func(ctx context.Context, path string) (image.Image, error) { return nil, nil }
	h := newHarness(WithImageLoader(loader))
	var im *Image
	var err error
	build := func(u *UI) {
		im, err = fixedWindow(u, "w", testRect).Image(context.Background(), Auto, "empty.png", gfx.Vec2{})
	}
	require.NotPanics(t, func() {
		h.frame(gfx.V(-10, -10), idle, build)
		h.frame(gfx.V(-10, -10), idle, build)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image")
	assert.Nil(t, im)
	assert.Equal(t, 0, h.ui.Handler().Window("w").holders[mainHolder].Len())
}

func TestImageLoadHonorsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	loader := func(ctx context.Context, path string) (image.Image, error) {
		<-block
		return nil, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loadImage(ctx, loader, "slow.png", gfx.Vec2{})
	assert.ErrorIs(t, err, context.Canceled)
}
