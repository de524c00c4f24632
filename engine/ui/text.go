package ui

import (
	"strings"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// Text is a static label. TextEx variants carry their own color and size.
type Text struct {
	Value string
	color colors.Color
	size  float32
	wrap  bool

	lines []string
	dim   gfx.Vec2
}

func newText(value string) *Text { return &Text{Value: value} }

func (t *Text) SetColor(c colors.Color) *Text { t.color = c; return t }
func (t *Text) SetSize(size float32) *Text    { t.size = size; return t }

// SetWrap breaks the text on word boundaries to fit the window width.
func (t *Text) SetWrap(enabled bool) *Text { t.wrap = enabled; return t }

func (t *Text) fontSize(th *Theme) float32 {
	if t.size > 0 {
		return t.size
	}
	return th.FontSize
}

func (t *Text) Update(u *UpdateInfo) gfx.Vec2 {
	size := t.fontSize(u.Theme())
	maxW := float32(0)
	if t.wrap && !u.SameLine {
		maxW = u.Width
	}
	t.lines, t.dim = layoutText(u.f.text, t.Value, size, maxW)
	return t.dim
}

func (t *Text) Render(r *RenderInfo) gfx.Vec2 {
	size := t.fontSize(r.Theme())
	col := t.color
	if col == (colors.Color{}) {
		col = r.Theme().Text
	}
	lineH := r.Measure("Ag", size).Y
	for i, line := range t.lines {
		r.Base.DrawText(line, r.At.Add(gfx.V(0, float32(i)*lineH)), size, col)
	}
	return t.dim
}

// layoutText splits s into lines no wider than maxWidth (0 disables
// wrapping) and returns them with their bounding size.
func layoutText(m gfx.TextMeasurer, s string, size, maxWidth float32) ([]string, gfx.Vec2) {
	lineH := m.MeasureText("Ag", size).Y
	if s == "" {
		return nil, gfx.V(0, lineH)
	}
	var (
		out   []string
		width float32
	)
	space := m.MeasureText(" ", size).X
	for _, raw := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			out = append(out, raw)
			if w := m.MeasureText(raw, size).X; w > width {
				width = w
			}
			continue
		}
		words := strings.Fields(raw)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		currentW := m.MeasureText(current, size).X
		for _, word := range words[1:] {
			wordW := m.MeasureText(word, size).X
			if currentW+space+wordW > maxWidth {
				out = append(out, current)
				width = max(width, currentW)
				current, currentW = word, wordW
				continue
			}
			current += " " + word
			currentW += space + wordW
		}
		out = append(out, current)
		width = max(width, currentW)
	}
	return out, gfx.V(width, lineH*float32(len(out)))
}
