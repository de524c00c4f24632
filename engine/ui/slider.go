package ui

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/hubastard/panes/engine/gfx"
	"github.com/hubastard/panes/engine/scratch"
)

// Range describes the bounds of a Slider or ProgressBar. Int ranges round
// every value to the nearest integer.
type Range struct {
	Min, Max, Default float64
	Int               bool
}

func IntRange(min, max, def int) Range {
	return Range{Min: float64(min), Max: float64(max), Default: float64(def), Int: true}
}

func FloatRange(min, max, def float64) Range {
	return Range{Min: min, Max: max, Default: def}
}

func (r Range) kind() string {
	if r.Int {
		return "Int"
	}
	return "Float"
}

// clamp limits v to the range, rounding for Int ranges. An inverted range
// collapses onto Min.
func (r Range) clamp(v float64) float64 {
	if r.Int {
		v = math.Round(v)
	}
	if v > r.Max {
		v = r.Max
	}
	if v < r.Min {
		v = r.Min
	}
	return v
}

// fraction maps v to [0..1] along the range.
func (r Range) fraction(v float64) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return float32((v - r.Min) / (r.Max - r.Min))
}

func (r Range) format(buf *scratch.Buffer, label string, v float64) string {
	buf.Reset()
	if label != "" {
		buf.S(label).S(": ")
	}
	if r.Int {
		buf.I(int(v))
	} else {
		buf.F64(v, 2)
	}
	return buf.View()
}

// Slider edits Value by dragging a thumb along a track that stretches to
// the window's right edge. Value is clamped into range on every update.
type Slider struct {
	Label    string
	Value    float64
	Changed  bool
	rng      Range
	hovered  bool
	dragging bool
	labelW   float32
	track    gfx.Rect
	size     gfx.Vec2
	buf      *scratch.Buffer
}

func newSlider(label string, r Range) *Slider {
	s := &Slider{Label: label, rng: r, buf: scratch.New(32)}
	s.Value = r.clamp(r.Default)
	return s
}

func (s *Slider) Range() Range   { return s.rng }
func (s *Slider) Int() int       { return int(s.Value) }
func (s *Slider) Float() float64 { return s.Value }
func (s *Slider) Dragging() bool { return s.dragging }

// SetValue writes the backing value; it is clamped on the next update.
func (s *Slider) SetValue(v float64) *Slider { s.Value = v; return s }

func (s *Slider) layout(m gfx.TextMeasurer, th *Theme, at gfx.Vec2, width float32) {
	d := m.MeasureText(s.Label, th.FontSize)
	s.labelW = d.X
	h := d.Y + 2*th.Padding
	tx := s.labelW + th.Padding
	tw := math32.Max(th.SliderThumb*4, width-tx-th.Padding)
	s.track = gfx.Rect{X: at.X + tx, Y: at.Y, W: tw, H: h}
	s.size = gfx.V(tx+tw, h)
}

func (s *Slider) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	in := u.Input()
	s.layout(u.f.text, th, u.At, u.Width)

	before := s.Value
	s.hovered = u.Over(s.track)
	if s.hovered {
		u.Consume()
		if in.MousePressed {
			s.dragging = true
		}
	}
	if s.dragging {
		u.Consume()
		if in.MouseDown || in.MousePressed {
			thumb := th.SliderThumb
			t := (in.Mouse.X - thumb/2 - s.track.X) / (s.track.W - thumb)
			s.Value = float64(t)*(s.rng.Max-s.rng.Min) + s.rng.Min
		}
		if in.MouseReleased || !in.MouseDown {
			s.dragging = false
		}
	}
	s.Value = s.rng.clamp(s.Value)
	s.Changed = s.Value != before
	return s.size
}

func (s *Slider) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	track := gfx.Rect{X: r.At.X + s.labelW + th.Padding, Y: r.At.Y, W: s.track.W, H: s.track.H}
	r.Base.DrawText(s.Label, r.At.Add(gfx.V(0, th.Padding)), th.FontSize, th.Text)
	r.Base.FillRect(track, th.Track)
	thumb := gfx.Rect{
		X: track.X + s.rng.fraction(s.Value)*(track.W-th.SliderThumb),
		Y: track.Y,
		W: th.SliderThumb,
		H: track.H,
	}
	r.Base.FillRect(thumb, stateColor(th, s.hovered, s.dragging))
	label := s.rng.format(s.buf, "", s.Value)
	d := r.Measure(label, th.FontSize)
	r.Base.DrawText(label, gfx.V(track.Center().X-d.X/2, track.Y+th.Padding), th.FontSize, th.Text)
	return s.size
}

// ProgressBar displays Value within its range. It never reacts to input.
type ProgressBar struct {
	Label string
	Value float64
	rng   Range
	bar   gfx.Rect
	size  gfx.Vec2
	buf   *scratch.Buffer
}

func newProgressBar(label string, r Range) *ProgressBar {
	p := &ProgressBar{Label: label, rng: r, buf: scratch.New(32)}
	p.Value = r.clamp(r.Default)
	return p
}

func (p *ProgressBar) Range() Range { return p.rng }

// Fraction is the filled share of the bar in [0..1].
func (p *ProgressBar) Fraction() float32 { return p.rng.fraction(p.Value) }

func (p *ProgressBar) SetValue(v float64) *ProgressBar { p.Value = v; return p }

func (p *ProgressBar) Update(u *UpdateInfo) gfx.Vec2 {
	th := u.Theme()
	p.Value = p.rng.clamp(p.Value)
	d := u.Measure(p.Label, th.FontSize)
	h := d.Y + 2*th.Padding
	x := float32(0)
	if p.Label != "" {
		x = d.X + th.Padding
	}
	w := math32.Max(40, u.Width-x-th.Padding)
	p.bar = gfx.Rect{X: x, Y: 0, W: w, H: h}
	p.size = gfx.V(x+w, h)
	return p.size
}

func (p *ProgressBar) Render(r *RenderInfo) gfx.Vec2 {
	th := r.Theme()
	bar := p.bar.Translate(r.At)
	r.Base.DrawText(p.Label, r.At.Add(gfx.V(0, th.Padding)), th.FontSize, th.Text)
	r.Base.FillRect(bar, th.Track)
	fill := bar
	fill.W *= p.Fraction()
	r.Base.FillRect(fill, th.Accent)
	label := p.rng.format(p.buf, "", p.Value)
	d := r.Measure(label, th.FontSize)
	r.Base.DrawText(label, gfx.V(bar.Center().X-d.X/2, bar.Y+th.Padding), th.FontSize, th.Text)
	return p.size
}
