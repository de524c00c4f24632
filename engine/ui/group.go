package ui

import "github.com/hubastard/panes/engine/gfx"

// group nests a holder inside another holder: a Column stacks its children
// vertically, a row (same-line group inside a column) lays them out
// horizontally.
type group struct {
	holder *Holder
	size   gfx.Vec2
}

func newGroup(sameLine bool) *group { return &group{holder: NewHolder(sameLine)} }

func (g *group) Holder() *Holder { return g.holder }

func (g *group) Update(u *UpdateInfo) gfx.Vec2 {
	_, g.size = g.holder.Update(u.At, u.Width, u.f)
	// the parent pads after us
	pad := u.Theme().Padding
	if g.holder.sameLine && g.size.X > 0 {
		g.size.X -= pad
	} else if !g.holder.sameLine && g.size.Y > 0 {
		g.size.Y -= pad
	}
	return g.size
}

func (g *group) Render(r *RenderInfo) gfx.Vec2 {
	g.holder.Render(r.At, r.Width, *r)
	return g.size
}

func (g *group) endFrame() { g.holder.EndFrame() }
