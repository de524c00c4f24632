// Package scene holds the 2D camera used to map world or pixel space onto
// the current render target.
package scene

import "github.com/chewxy/math32"

const minZoom = 0.05

// OrthoCamera2D looks at a viewport of W x H pixels whose top-left corner
// shows world point (X, Y). Y grows downward, like gfx coordinates.
type OrthoCamera2D struct {
	X, Y        float32
	RotationRad float32
	Zoom        float32 // 1 = one world unit per pixel

	w, h  float32
	vp    [16]float32
	dirty bool
}

// NewScreenCamera maps pixel (0,0) to the top-left corner and
// (width,height) to the bottom-right.
func NewScreenCamera(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Zoom: 1}
	c.SetScreenPixels(width, height)
	return c
}

// SetScreenPixels resizes the viewport, keeping the top-left anchor.
func (c *OrthoCamera2D) SetScreenPixels(w, h int) {
	c.w, c.h = float32(w), float32(h)
	c.dirty = true
}

func (c *OrthoCamera2D) Width() float32  { return c.w }
func (c *OrthoCamera2D) Height() float32 { return c.h }

func (c *OrthoCamera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }
func (c *OrthoCamera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }

func (c *OrthoCamera2D) SetZoom(z float32) {
	c.Zoom = max(z, minZoom)
	c.dirty = true
}

// ZoomAt scales the zoom by factor while the world point under screen
// pixel (sx, sy) stays put.
func (c *OrthoCamera2D) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.Move(wx-nx, wy-ny)
}

// ScreenToWorld inverts the camera for a pixel position.
func (c *OrthoCamera2D) ScreenToWorld(sx, sy float32) (float32, float32) {
	s, co := math32.Sincos(-c.RotationRad)
	x, y := sx/c.Zoom, sy/c.Zoom
	return c.X + x*co - y*s, c.Y + x*s + y*co
}

func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.recalculate()
	}
	return c.vp
}

// recalculate builds proj * scale(zoom) * rotate * translate(-pos).
func (c *OrthoCamera2D) recalculate() {
	view := mul(scale(c.Zoom), mul(rotateZ(c.RotationRad), translate(-c.X, -c.Y)))
	c.vp = mul(ortho(0, c.w, c.h, 0), view)
	c.dirty = false
}

// Project maps a world point to normalized device coordinates.
func (c *OrthoCamera2D) Project(x, y float32) (float32, float32) {
	m := c.VP()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// Matrices are column-major, as GLSL expects.

func translate(x, y float32) [16]float32 {
	return [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, x, y, 0, 1}
}

func scale(f float32) [16]float32 {
	return [16]float32{f, 0, 0, 0, 0, f, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func rotateZ(a float32) [16]float32 {
	s, c := math32.Sincos(a)
	return [16]float32{c, s, 0, 0, -s, c, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// ortho maps [l,r] x [b,t] to clip space with depth fixed to [-1, 1].
func ortho(l, r, b, t float32) [16]float32 {
	return [16]float32{
		2 / (r - l), 0, 0, 0,
		0, 2 / (t - b), 0, 0,
		0, 0, -1, 0,
		-(r + l) / (r - l), -(t + b) / (t - b), 0, 1,
	}
}

func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row+4*k] * b[k+4*col]
			}
			out[row+4*col] = sum
		}
	}
	return out
}
