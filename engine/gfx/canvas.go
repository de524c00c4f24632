package gfx

import (
	"image"

	"github.com/hubastard/panes/engine/colors"
)

// Canvas is the drawing capability every widget and window paints through.
// Coordinates are pixels relative to the canvas origin (top-left).
type Canvas interface {
	FillRect(r Rect, c colors.Color)
	StrokeRect(r Rect, thickness float32, c colors.Color)
	Line(a, b Vec2, thickness float32, c colors.Color)
	FillCircle(center Vec2, radius float32, c colors.Color)
	StrokeCircle(center Vec2, radius, thickness float32, c colors.Color)
	// DrawImage stretches img over dst, multiplied by tint.
	DrawImage(img image.Image, dst Rect, tint colors.Color)
	// DrawText draws s with its top-left corner at pos.
	DrawText(s string, pos Vec2, size float32, c colors.Color)
	// DrawSurface composites an offscreen surface with its top-left at pos.
	DrawSurface(s Surface, pos Vec2)
}

// TextMeasurer reports the pixel extent of a single line of text.
type TextMeasurer interface {
	MeasureText(s string, size float32) Vec2
}

// Surface is an offscreen render target that can itself be drawn into.
type Surface interface {
	Canvas
	Size() (w, h int)
	Clear(c colors.Color)
	Release()
}

// Renderer is the full backend surface the UI needs for one frame.
type Renderer interface {
	Canvas
	TextMeasurer
	ScreenSize() Vec2
	NewSurface(w, h int) (Surface, error)
	SetCursor(c CursorIcon)
}

type CursorIcon int

const (
	CursorDefault CursorIcon = iota
	CursorText
	CursorPointer
	CursorEWResize
	CursorNSResize
	CursorNWSEResize
)

func (c CursorIcon) String() string {
	switch c {
	case CursorText:
		return "text"
	case CursorPointer:
		return "pointer"
	case CursorEWResize:
		return "ew-resize"
	case CursorNSResize:
		return "ns-resize"
	case CursorNWSEResize:
		return "nwse-resize"
	default:
		return "default"
	}
}
