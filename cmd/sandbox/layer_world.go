package main

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx/renderer2d"
	"github.com/hubastard/panes/engine/profiler"
	"github.com/hubastard/panes/engine/scene"
)

const (
	worldTile = 32
	worldCols = 48
	worldRows = 32
)

// WorldLayer draws a tile map behind the UI and pans it with the camera
// controller while the UI does not own the keyboard.
type WorldLayer struct {
	cam    *scene.OrthoCamera2D
	ctrl   *scene.OrthoController2D
	r2d    *renderer2d.Renderer2D
	img    *image.RGBA
	tex    core.Texture
	tiles  []renderer2d.SubTexture2D
	t      float32
	keysOK bool

	ShowGrid bool
	Spin     bool
	Accent   int // tile index drawn along the diagonal
	Speed    float32
}

func newWorldLayer(r2d *renderer2d.Renderer2D, tileset *image.RGBA) *WorldLayer {
	return &WorldLayer{r2d: r2d, img: tileset, Spin: true, Speed: 1, Accent: 2}
}

func (l *WorldLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewScreenCamera(w, h)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	b := l.img.Bounds()
	var err error
	l.tex, err = e.Renderer.CreateTexture(core.TextureDesc{
		Width:     b.Dx(),
		Height:    b.Dy(),
		Format:    core.TextureRGBA8,
		Pixels:    l.img.Pix,
		MinFilter: "nearest",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		panic(fmt.Errorf("tileset texture: %w", err))
	}
	l.tiles = renderer2d.Tiles(l.tex, tileSize, tileSize, b.Dx(), b.Dy())
}

func (l *WorldLayer) OnDetach(e *core.Engine) { e.Renderer.DeleteTexture(l.tex) }

func (l *WorldLayer) OnUpdate(e *core.Engine, dt float64) {
	if l.keysOK {
		l.ctrl.Update(e.Input, float32(dt))
	}
	if l.Spin {
		l.t += float32(dt) * l.Speed
	}
}

func (l *WorldLayer) ResetCamera() {
	l.cam.X, l.cam.Y = 0, 0
	l.cam.SetZoom(1)
}

func (l *WorldLayer) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("WorldLayer.OnRender")()

	l.r2d.BeginScene(l.cam.VP())
	for y := range worldRows {
		for x := range worldCols {
			tile := l.tiles[(x/6+y/4)%2]
			if x == y {
				tile = l.tiles[l.Accent]
			}
			cx := float32(x*worldTile) + worldTile*0.5
			cy := float32(y*worldTile) + worldTile*0.5
			l.r2d.DrawSubTexQuad(cx, cy, worldTile, worldTile, tile, colors.White, 0)
		}
	}
	if l.ShowGrid {
		line := colors.Black.WithAlpha(0.35)
		w, h := float32(worldCols*worldTile), float32(worldRows*worldTile)
		for x := 0; x <= worldCols; x++ {
			l.r2d.DrawQuad(float32(x*worldTile), h*0.5, 1, h, line, 0)
		}
		for y := 0; y <= worldRows; y++ {
			l.r2d.DrawQuad(w*0.5, float32(y*worldTile), w, 1, line, 0)
		}
	}
	l.r2d.DrawSubTexQuad(400, 300, 96, 96, l.tiles[l.Accent], colors.White, l.t)
	if err := l.r2d.EndScene(); err != nil {
		slog.Error("world frame", "err", err)
	}
}

func (l *WorldLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyP && v.Mods&core.ModCtrl != 0 {
			if path, err := profiler.Dump(); err != nil {
				slog.Warn("profiler dump", "err", err)
			} else {
				slog.Info("speedscope dump", "path", path)
			}
			return true
		}
	case core.EventResize:
		l.cam.SetScreenPixels(v.W, v.H)
	case core.EventScroll:
		return l.ctrl.HandleEvent(ev)
	}
	return false
}
