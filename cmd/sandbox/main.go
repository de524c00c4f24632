package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hubastard/panes/engine/core"
	glbackend "github.com/hubastard/panes/engine/gfx/gl"
	"github.com/hubastard/panes/engine/platform"
)

func main() {
	configPath := flag.String("config", "sandbox.toml", "TOML config file (missing file = defaults)")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(w, cfg)
	}

	app := &App{cfg: cfg}
	err = core.Run(app, cfg, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}
