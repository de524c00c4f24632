package ui

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// layerSet holds a window's three offscreen surfaces: base widget content
// and the overlay share the body size, top spans the screen. Surfaces are
// reallocated only when those sizes change.
type layerSet struct {
	base    gfx.Surface
	overlay gfx.Surface
	top     gfx.Surface

	bodyW, bodyH     int
	screenW, screenH int
	allocs           int
}

func surfaceSize(v gfx.Vec2) (int, int) {
	return max(1, int(math32.Ceil(v.X))), max(1, int(math32.Ceil(v.Y)))
}

func (l *layerSet) ensure(r gfx.Renderer, body, screen gfx.Vec2) error {
	bw, bh := surfaceSize(body)
	if l.base == nil || l.overlay == nil || bw != l.bodyW || bh != l.bodyH {
		l.releaseBody()
		var err error
		if l.base, err = r.NewSurface(bw, bh); err != nil {
			return fmt.Errorf("base layer %dx%d: %w", bw, bh, err)
		}
		if l.overlay, err = r.NewSurface(bw, bh); err != nil {
			l.releaseBody()
			return fmt.Errorf("overlay layer %dx%d: %w", bw, bh, err)
		}
		l.bodyW, l.bodyH = bw, bh
		l.allocs += 2
	}
	sw, sh := surfaceSize(screen)
	if l.top == nil || sw != l.screenW || sh != l.screenH {
		if l.top != nil {
			l.top.Release()
			l.top = nil
		}
		var err error
		if l.top, err = r.NewSurface(sw, sh); err != nil {
			return fmt.Errorf("top layer %dx%d: %w", sw, sh, err)
		}
		l.screenW, l.screenH = sw, sh
		l.allocs++
	}
	return nil
}

func (l *layerSet) clear() {
	l.base.Clear(colors.Transparent)
	l.overlay.Clear(colors.Transparent)
	l.top.Clear(colors.Transparent)
}

func (l *layerSet) releaseBody() {
	if l.base != nil {
		l.base.Release()
		l.base = nil
	}
	if l.overlay != nil {
		l.overlay.Release()
		l.overlay = nil
	}
}

func (l *layerSet) release() {
	l.releaseBody()
	if l.top != nil {
		l.top.Release()
		l.top = nil
	}
}

// ready reports whether all three surfaces exist.
func (l *layerSet) ready() bool { return l.base != nil && l.overlay != nil && l.top != nil }
