package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/hubastard/panes/engine/profiler"
	"github.com/hubastard/panes/engine/ui"
)

var speeds = []string{"Slow", "Normal", "Fast"}

// UILayer declares the demo windows every frame and swallows pointer
// events the UI claimed so the world below does not see them.
type UILayer struct {
	app      *App
	world    *WorldLayer
	wantsPtr bool
	last     time.Time
	progress float64
	reopen   bool
}

func newUILayer(app *App, world *WorldLayer) *UILayer {
	return &UILayer{app: app, world: world}
}

func (l *UILayer) OnAttach(e *core.Engine) { l.last = time.Now() }
func (l *UILayer) OnDetach(e *core.Engine) {}

func (l *UILayer) OnUpdate(e *core.Engine, dt float64) {
	l.progress += dt * 15
	if l.progress > 100 {
		l.progress = 0
	}
}

func (l *UILayer) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("UILayer.OnRender")()

	select {
	case th := <-l.app.themes:
		l.app.ui.SetTheme(th)
	default:
	}

	now := time.Now()
	dt := float32(now.Sub(l.last).Seconds())
	l.last = now
	in := e.Input.Snapshot(dt, e.Window)

	stats := l.app.canvas.Stats()
	u := l.app.ui
	l.statsWindow(e, u, stats.DrawCalls, stats.QuadCount, stats.TextureCount)
	l.widgetsWindow(e, u)
	l.notesWindow(u)

	w, h := e.Window.FramebufferSize()
	l.app.canvas.Begin(w, h)
	l.wantsPtr = u.Draw(&in, l.app.canvas)
	if err := l.app.canvas.End(); err != nil {
		slog.Error("ui frame", "err", err)
	}

	l.world.keysOK = !u.WantsKeyboard()
}

func (l *UILayer) statsWindow(e *core.Engine, u *ui.UI, draws, quads, textures int) {
	heading := func(w *ui.Window, s string) { w.TextEx(ui.Auto, s, colors.Yellow, 15) }
	ms := l.app.frameMS
	fps := float32(0)
	if ms > 0 {
		fps = 1000 / ms
	}

	win := u.Begin("Stats").
		SetPos(gfx.V(16, 16), ui.Once).
		SetSize(gfx.V(260, 330), ui.Once).
		SetClosable(true)
	if l.reopen {
		win.Show()
		l.reopen = false
	}
	win.Scope(func(w *ui.Window) {
			heading(w, fmt.Sprintf("Frame %d", l.app.tick))
			w.Text(ui.Auto, fmt.Sprintf("%.3f ms (%.1f FPS)", ms, fps))
			heading(w, "Renderer")
			w.Text(ui.Auto, fmt.Sprintf("Draw calls: %d", draws))
			w.Text(ui.Auto, fmt.Sprintf("Quads: %d", quads))
			w.Text(ui.Auto, fmt.Sprintf("Textures: %d", textures))
			heading(w, "Memory")
			w.Text(ui.Auto, fmt.Sprintf("Usage: %.3f MB", float32(profiler.MemoryUsage())/(1<<20)))
			w.Text(ui.Auto, fmt.Sprintf("Allocs: %d", profiler.MemoryAllocs()))
			w.Text(ui.Auto, fmt.Sprintf("Goroutines: %d", profiler.NumGoroutine()))
			heading(w, "GPU")
			w.Text(ui.Auto, e.Renderer.GPUVendor())
			w.Text(ui.Auto, e.Renderer.GPURenderer())
			w.Text(ui.Auto, fmt.Sprintf("%d CPUs", profiler.NumCPU()))
		})
}

func (l *UILayer) widgetsWindow(e *core.Engine, u *ui.UI) {
	win := u.Begin("Widgets").
		SetPos(gfx.V(300, 16), ui.Once).
		SetSize(gfx.V(320, 420), ui.Once)

	tab := win.Tabs(ui.Auto, []string{"World", "Controls", "Tiles"}, 0).SetHoldable(true)
	win.Separator(ui.Auto)

	switch tab.Value() {
	case "World":
		l.world.ShowGrid = win.Checkbox(ui.Auto, "Show grid", false).Value
		l.world.Spin = win.Checkbox(ui.Auto, "Spin sprite", true).Value

		zoom := win.Slider(ui.Auto, "Zoom", ui.FloatRange(0.25, 4, 1))
		if zoom.Changed {
			l.world.cam.SetZoom(float32(zoom.Float()))
		} else {
			zoom.SetValue(float64(l.world.cam.Zoom))
		}

		win.SameLine(ui.Auto, func(w *ui.Window) {
			if w.Button(ui.Auto, "Reset camera").Clicked {
				l.world.ResetCamera()
			}
			if w.Button(ui.Auto, "Show stats").Clicked {
				l.reopen = true
			}
		})
		win.ProgressBar(ui.Auto, "Loading", ui.IntRange(0, 100, 0)).SetValue(l.progress)

	case "Controls":
		speed := win.RadioButtons(ui.Auto, speeds, "Normal")
		l.world.Speed = []float32{0.3, 1, 3}[max(speed.Selected(), 0)]

		title := win.LabeledTextBox(ui.Auto, "Title", l.app.cfg.Title)
		if title.Submitted {
			l.app.cfg.Title = title.Value
			e.Window.SetTitle(title.Value)
		}
		win.Text(ui.Auto, "Enter applies the title. WASD pans, Z/X zoom while no window is focused.").SetWrap(true)

	case "Tiles":
		accent := win.Dropdown(ui.Auto, tileNames, tileNames[l.world.Accent])
		if accent.Changed {
			l.world.Accent = accent.Selected()
		}
		win.Column(ui.Auto, func(w *ui.Window) {
			w.Text(ui.Auto, "Tileset")
			img, err := w.Image(context.Background(), ui.Auto, tilesetPath, gfx.V(256, 64))
			if err != nil {
				w.Text(ui.Auto, "tileset unavailable").SetColor(colors.Red)
				return
			}
			// dimmed while the sprite is paused
			img.Tint = colors.White
			if !l.world.Spin {
				img.Tint = colors.White.Scale(0.6)
			}
		})
	}
}

func (l *UILayer) notesWindow(u *ui.UI) {
	u.Begin("Notes").
		SetPos(gfx.V(16, 370), ui.Once).
		SetSize(gfx.V(260, 180), ui.Once).
		Scope(func(w *ui.Window) {
			w.Text(ui.Auto, "Scratch pad")
			w.TextBox(ui.Auto, "type here")
			w.Separator(ui.Auto)
			w.Text(ui.Auto, "Ctrl+A/C/X/V/Z edit, Ctrl+P dumps a profile.").SetWrap(true)
		})
}

func (l *UILayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch ev.(type) {
	case core.EventScroll, core.EventMouseButton:
		return l.wantsPtr
	}
	return false
}
