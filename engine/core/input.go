package core

import "github.com/hubastard/panes/engine/gfx"

// Input accumulates platform events between frames and hands out
// per-frame snapshots with edge (pressed/released) information.
type Input struct {
	keys           map[Key]bool
	pressed        map[Key]bool
	mouseX, mouseY float64
	buttons        [mouseButtonCount]bool
	btnPressed     [mouseButtonCount]bool
	btnReleased    [mouseButtonCount]bool
	wheel          gfx.Vec2
	chars          []rune
	mods           Mod
	screen         gfx.Vec2
	time           float64
}

func NewInput() *Input {
	return &Input{keys: map[Key]bool{}, pressed: map[Key]bool{}}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down && !e.Repeat && !in.keys[e.Key] {
			in.pressed[e.Key] = true
		}
		in.keys[e.Key] = e.Down
		in.mods = e.Mods
	case EventChar:
		in.chars = append(in.chars, e.Char)
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button < 0 || e.Button >= mouseButtonCount {
			return
		}
		if e.Down && !in.buttons[e.Button] {
			in.btnPressed[e.Button] = true
		}
		if !e.Down && in.buttons[e.Button] {
			in.btnReleased[e.Button] = true
		}
		in.buttons[e.Button] = e.Down
	case EventScroll:
		in.wheel.X += float32(e.Xoff)
		in.wheel.Y += float32(e.Yoff)
	case EventResize:
		in.screen = gfx.V(float32(e.W), float32(e.H))
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// SetScreen seeds the screen size before the first resize event arrives.
func (in *Input) SetScreen(w, h int) { in.screen = gfx.V(float32(w), float32(h)) }

// Snapshot freezes the accumulated state for one frame and clears edges.
func (in *Input) Snapshot(dt float32, clip Clipboard) InputState {
	in.time += float64(dt)
	s := InputState{
		Mouse:         gfx.V(float32(in.mouseX), float32(in.mouseY)),
		MouseDown:     in.buttons[MouseLeft],
		MousePressed:  in.btnPressed[MouseLeft],
		MouseReleased: in.btnReleased[MouseLeft],
		Wheel:         in.wheel,
		Keys:          make(map[Key]bool, len(in.keys)),
		Pressed:       in.pressed,
		Mods:          in.mods,
		Chars:         in.chars,
		Screen:        in.screen,
		DT:            dt,
		Time:          in.time,
		Clipboard:     clip,
	}
	for k, v := range in.keys {
		if v {
			s.Keys[k] = true
		}
	}
	in.pressed = map[Key]bool{}
	in.chars = nil
	in.wheel = gfx.Vec2{}
	in.btnPressed = [mouseButtonCount]bool{}
	in.btnReleased = [mouseButtonCount]bool{}
	return s
}

// InputState is an immutable per-frame view of the input devices. The UI
// reads nothing else, which keeps update passes deterministic under test.
type InputState struct {
	Mouse         gfx.Vec2
	MouseDown     bool
	MousePressed  bool
	MouseReleased bool
	Wheel         gfx.Vec2
	Keys          map[Key]bool
	Pressed       map[Key]bool
	Mods          Mod
	Chars         []rune
	Screen        gfx.Vec2
	DT            float32
	Time          float64
	Clipboard     Clipboard
}

func (s *InputState) KeyDown(k Key) bool    { return s.Keys[k] }
func (s *InputState) KeyPressed(k Key) bool { return s.Pressed[k] }

func (s *InputState) Ctrl() bool {
	return s.Mods&(ModCtrl|ModSuper) != 0 || s.Keys[KeyLeftControl] || s.Keys[KeyRightControl]
}

func (s *InputState) Shift() bool {
	return s.Mods&ModShift != 0 || s.Keys[KeyLeftShift] || s.Keys[KeyRightShift]
}
