package gfx

import "github.com/chewxy/math32"

// Vec2 is a point or extent in pixels. Positive Y goes down.
type Vec2 struct{ X, Y float32 }

func V(x, y float32) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float32) Vec2   { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Max(o Vec2) Vec2        { return Vec2{math32.Max(v.X, o.X), math32.Max(v.Y, o.Y)} }
func (v Vec2) Len() float32           { return math32.Hypot(v.X, v.Y) }
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct{ X, Y, W, H float32 }

func R(x, y, w, h float32) Rect { return Rect{x, y, w, h} }

func (r Rect) Pos() Vec2       { return Vec2{r.X, r.Y} }
func (r Rect) Size() Vec2      { return Vec2{r.W, r.H} }
func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }
func (r Rect) Center() Vec2    { return Vec2{r.X + r.W*0.5, r.Y + r.H*0.5} }
func (r Rect) Empty() bool     { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. The left/top edges are
// inclusive and the right/bottom edges exclusive, so adjacent rects
// never both claim the same pixel.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Translate(d Vec2) Rect { return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H} }

// Inset shrinks the rect by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{r.X + d, r.Y + d, math32.Max(0, r.W-2*d), math32.Max(0, r.H-2*d)}
}

// Intersect returns the overlapping area of r and o (empty when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0 := math32.Max(r.X, o.X)
	y0 := math32.Max(r.Y, o.Y)
	x1 := math32.Min(r.Right(), o.Right())
	y1 := math32.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi float32) float32 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Lerp is the scalar counterpart of Vec2.Lerp.
func Lerp(a, b, t float32) float32 { return a + (b-a)*t }
