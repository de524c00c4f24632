package platform

import (
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/panes/engine/core"
	"github.com/hubastard/panes/engine/gfx"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w       *glfw.Window
	onEv    func(core.Event)
	cursors map[gfx.CursorIcon]*glfw.Cursor
	cursor  gfx.CursorIcon
}

// NewGLFWWindow opens a window with a current GL 3.3 core context. It must
// be called on the main thread before any GL calls.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// macOS requires the forward-compatible flag for core profiles
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	slog.Info("window created", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "gl", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &GLFWWindow{w: win, onEv: onEvent, cursors: map[gfx.CursorIcon]*glfw.Cursor{}}
	for icon, shape := range cursorShapes {
		gw.cursors[icon] = glfw.CreateStandardCursor(shape)
	}

	win.SetCloseCallback(func(*glfw.Window) {
		// Run decides; the default handler calls RequestClose
		win.SetShouldClose(false)
		gw.emit(core.EventCloseRequested{})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		btn, ok := translateButton(b)
		if !ok {
			return
		}
		gw.emit(core.EventMouseButton{Button: btn, Down: action == glfw.Press, Mods: translateMods(mods)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{Key: k, Down: action != glfw.Release, Repeat: action == glfw.Repeat, Mods: translateMods(mods)})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(core.EventChar{Char: r})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }
func (g *GLFWWindow) ClipboardText() string                { return g.w.GetClipboardString() }
func (g *GLFWWindow) SetClipboardText(s string)            { g.w.SetClipboardString(s) }

// SetCursor switches the pointer shape; repeated calls with the same icon
// are free.
func (g *GLFWWindow) SetCursor(c gfx.CursorIcon) {
	if c == g.cursor {
		return
	}
	g.cursor = c
	g.w.SetCursor(g.cursors[c]) // nil restores the default arrow
}

// Destroy frees the cursors and the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	for _, c := range g.cursors {
		c.Destroy()
	}
	g.w.Destroy()
	glfw.Terminate()
}

// GLFW 3.3 has no diagonal resize shape; the crosshair stands in for it.
var cursorShapes = map[gfx.CursorIcon]glfw.StandardCursor{
	gfx.CursorText:       glfw.IBeamCursor,
	gfx.CursorPointer:    glfw.HandCursor,
	gfx.CursorEWResize:   glfw.HResizeCursor,
	gfx.CursorNSResize:   glfw.VResizeCursor,
	gfx.CursorNWSEResize: glfw.CrosshairCursor,
}

var keyTable = map[glfw.Key]core.Key{
	glfw.KeyEscape:       core.KeyEscape,
	glfw.KeySpace:        core.KeySpace,
	glfw.KeyEnter:        core.KeyEnter,
	glfw.KeyKPEnter:      core.KeyEnter,
	glfw.KeyTab:          core.KeyTab,
	glfw.KeyBackspace:    core.KeyBackspace,
	glfw.KeyDelete:       core.KeyDelete,
	glfw.KeyLeft:         core.KeyLeft,
	glfw.KeyRight:        core.KeyRight,
	glfw.KeyUp:           core.KeyUp,
	glfw.KeyDown:         core.KeyDown,
	glfw.KeyHome:         core.KeyHome,
	glfw.KeyEnd:          core.KeyEnd,
	glfw.KeyLeftShift:    core.KeyLeftShift,
	glfw.KeyRightShift:   core.KeyRightShift,
	glfw.KeyLeftControl:  core.KeyLeftControl,
	glfw.KeyRightControl: core.KeyRightControl,
	glfw.KeyLeftAlt:      core.KeyLeftAlt,
	glfw.KeyRightAlt:     core.KeyRightAlt,
	glfw.KeyA:            core.KeyA,
	glfw.KeyC:            core.KeyC,
	glfw.KeyD:            core.KeyD,
	glfw.KeyP:            core.KeyP,
	glfw.KeyS:            core.KeyS,
	glfw.KeyV:            core.KeyV,
	glfw.KeyW:            core.KeyW,
	glfw.KeyX:            core.KeyX,
	glfw.KeyZ:            core.KeyZ,
}

func translateKey(k glfw.Key) core.Key {
	if ck, ok := keyTable[k]; ok {
		return ck
	}
	return core.KeyUnknown
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	default:
		return 0, false
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
