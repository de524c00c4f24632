// Command uisnap renders the demo UI headlessly, replays a TOML input
// script against it and writes the final frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/panes/engine/assets"
	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx/raster"
	"github.com/hubastard/panes/engine/text"
	"github.com/hubastard/panes/engine/ui"
)

type options struct {
	out    string
	width  int
	height int
	script string
	theme  string
	font   string
	image  string
	bg     string
}

func main() {
	var o options
	flag.StringVar(&o.out, "out", "uisnap.png", "output PNG path")
	flag.IntVar(&o.width, "w", 800, "screen width")
	flag.IntVar(&o.height, "h", 600, "screen height")
	flag.StringVar(&o.script, "script", "", "TOML input script (built-in demo when empty)")
	flag.StringVar(&o.theme, "theme", "", "TOML theme file")
	flag.StringVar(&o.font, "font", "", "TTF/OTF font file (Go Regular when empty)")
	flag.StringVar(&o.image, "image", "", "image shown in the Log window")
	flag.StringVar(&o.bg, "bg", "#202020", "background color")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(o); err != nil {
		slog.Error("uisnap", "err", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", o.width, o.height)
	}
	bg, err := colors.ParseHex(o.bg)
	if err != nil {
		return err
	}

	faces := text.Default()
	if o.font != "" {
		if faces, err = assets.LoadFont(o.font); err != nil {
			return err
		}
	}
	defer faces.Close()

	th := ui.DefaultTheme()
	if o.theme != "" {
		if th, err = ui.LoadTheme(o.theme); err != nil {
			return err
		}
	}

	script := &defaultScript
	if o.script != "" {
		if script, err = LoadScript(o.script); err != nil {
			return err
		}
	}

	r := raster.New(o.width, o.height, faces)
	u := ui.New(r, ui.WithTheme(th), ui.WithImageLoader(assets.ImageLoader))
	d := &demo{image: o.image}
	p := NewPlayer(r, u, bg, d.declare)
	if err := p.Play(script); err != nil {
		return err
	}

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create %q: %w", o.out, err)
	}
	if err := p.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", o.out, err)
	}
	slog.Info("snapshot written", "path", o.out, "frames", p.Frames(), "surfaces", r.LiveSurfaces())
	return nil
}
