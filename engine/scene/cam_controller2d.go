package scene

import "github.com/hubastard/panes/engine/core"

// OrthoController2D pans with WASD and zooms with Z/X or the wheel.
type OrthoController2D struct {
	MoveSpeed float32 // pixels per second at zoom 1
	ZoomSpeed float32 // factor per second (keys) or per wheel notch
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 400,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

// Update applies held keys. Screen space is Y-down, so W moves up.
func (cc *OrthoController2D) Update(in *core.Input, dt float32) {
	step := cc.MoveSpeed * dt / cc.Camera.Zoom
	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, -step)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, step)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-step, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(step, 0)
	}

	zoom := 1 + (cc.ZoomSpeed-1)*dt*4
	if in.IsKeyDown(core.KeyZ) {
		cc.zoom(zoom)
	}
	if in.IsKeyDown(core.KeyX) {
		cc.zoom(1 / zoom)
	}
}

// zoom scales about the viewport centre.
func (cc *OrthoController2D) zoom(f float32) {
	cc.Camera.ZoomAt(cc.Camera.Width()*0.5, cc.Camera.Height()*0.5, f)
}

// HandleEvent zooms on wheel events and reports whether it used ev.
func (cc *OrthoController2D) HandleEvent(ev core.Event) bool {
	s, ok := ev.(core.EventScroll)
	if !ok || s.Yoff == 0 {
		return false
	}
	if s.Yoff > 0 {
		cc.zoom(cc.ZoomSpeed)
	} else {
		cc.zoom(1 / cc.ZoomSpeed)
	}
	return true
}
