package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/hubastard/panes/engine/assets"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx/renderer2d"
	"github.com/hubastard/panes/engine/profiler"
	"github.com/hubastard/panes/engine/scratch"
	"github.com/hubastard/panes/engine/text"
	"github.com/hubastard/panes/engine/ui"
)

// tilesetPath names the generated tileset for the image loader.
const tilesetPath = "builtin:tileset"

type App struct {
	cfg     core.Config
	r2d     *renderer2d.Renderer2D
	canvas  *renderer2d.Canvas
	faces   *text.Faces
	ui      *ui.UI
	tileset *image.RGBA
	themes  chan *ui.Theme
	stop    context.CancelFunc
	title   *scratch.Buffer

	lastFrame time.Time
	frameMS   float32
	tick      int
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 16)

	var err error
	a.r2d, err = renderer2d.New(e.Renderer, "", "", 10000)
	if err != nil {
		panic(fmt.Errorf("renderer2d: %w", err))
	}

	a.faces = text.Default()
	if a.cfg.FontPath != "" {
		if f, err := assets.LoadFont(a.cfg.FontPath); err != nil {
			slog.Warn("font fallback to Go Regular", "err", err)
		} else {
			a.faces = f
		}
	}

	a.canvas, err = renderer2d.NewCanvas(a.r2d, e.Renderer, a.faces, e.Window.SetCursor)
	if err != nil {
		panic(fmt.Errorf("canvas: %w", err))
	}

	a.tileset = makeTileset()
	a.themes = make(chan *ui.Theme, 1)
	a.title = scratch.New(a.cfg.ScratchAllocCapacity)
	a.ui = ui.New(a.canvas, ui.WithTheme(a.loadTheme()), ui.WithImageLoader(a.loadImage))

	world := newWorldLayer(a.r2d, a.tileset)
	e.Layers.Push(e, world)
	e.Layers.Push(e, newUILayer(a, world))
}

// loadTheme reads the configured theme and starts watching it; edits are
// handed to the UI layer, which applies them between frames.
func (a *App) loadTheme() *ui.Theme {
	th := ui.DefaultTheme()
	if a.cfg.ThemePath == "" {
		return th
	}
	if loaded, err := ui.LoadTheme(a.cfg.ThemePath); err != nil {
		slog.Warn("theme", "err", err)
	} else {
		th = loaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel
	err := assets.WatchFile(ctx, a.cfg.ThemePath, func() {
		next, err := ui.LoadTheme(a.cfg.ThemePath)
		if err != nil {
			slog.Warn("theme reload", "err", err)
			return
		}
		select {
		case <-a.themes: // drop an unapplied older edit
		default:
		}
		a.themes <- next
	})
	if err != nil {
		slog.Warn("theme watch", "err", err)
	}
	return th
}

func (a *App) loadImage(ctx context.Context, path string) (image.Image, error) {
	if path == tilesetPath {
		return a.tileset, nil
	}
	return assets.ImageLoader(ctx, path)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++
	if a.tick%60 == 0 {
		a.title.Reset().S(a.cfg.Title).S(" | ").F64(float64(a.frameMS), 2).S(" ms")
		e.Window.SetTitle(a.title.String())
	}
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.frameMS = float32(now.Sub(a.lastFrame).Seconds() * 1000)
	}
	a.lastFrame = now
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.stop != nil {
		a.stop()
	}
	a.canvas.Release()
	if err := a.faces.Close(); err != nil {
		slog.Warn("closing fonts", "err", err)
	}
}
