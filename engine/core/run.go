package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// TickRate is the fixed update frequency.
const TickRate = 60

// stepper converts variable frame times into whole fixed ticks plus the
// interpolation fraction left over.
type stepper struct {
	tick     time.Duration
	maxSteps int
	accum    time.Duration
}

// advance adds frame to the backlog and returns how many ticks to run.
// A backlog longer than maxSteps ticks is dropped so a stall does not
// snowball into ever longer catch-up frames.
func (s *stepper) advance(frame time.Duration) (steps int, alpha float64) {
	s.accum += frame
	steps = int(s.accum / s.tick)
	if steps > s.maxSteps {
		steps = s.maxSteps
		s.accum = s.tick * time.Duration(steps)
	}
	s.accum -= s.tick * time.Duration(steps)
	return steps, float64(s.accum) / float64(s.tick)
}

// Run wires the platform window + renderer and executes the main loop.
// Events reach the app first, then the layer stack top-down until a layer
// reports them handled.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), Config: cfg, start: time.Now()}
	eng.Input.SetScreen(w, h)
	win.SetEventCallback(func(ev Event) { eng.dispatch(app, ev) })

	app.OnStart(eng)
	defer eng.Layers.ForEach(func(l Layer) { l.OnDetach(eng) })

	clock := stepper{tick: time.Second / TickRate, maxSteps: 10}
	dt := clock.tick.Seconds()
	prev := time.Now()
	for !win.ShouldClose() {
		now := time.Now()
		steps, alpha := clock.advance(now.Sub(prev))
		prev = now

		win.PollEvents()
		for range steps {
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
		}

		c := cfg.ClearColor
		rend.Clear(c[0], c[1], c[2], c[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	slog.Info("engine exit", "uptime", eng.Uptime().Round(time.Millisecond))
	return nil
}

// dispatch feeds ev to the input accumulator, the app and the layers, then
// applies the engine's own reaction to resizes and close requests.
func (e *Engine) dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	app.OnEvent(e, ev)
	e.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(e, ev) })
	switch ev.(type) {
	case EventResize:
		if fw, fh := e.Window.FramebufferSize(); fw > 0 && fh > 0 {
			e.Renderer.Resize(fw, fh)
		}
	case EventCloseRequested:
		e.Window.RequestClose()
	}
}
