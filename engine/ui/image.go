package ui

import (
	"context"
	"fmt"
	"image"

	"github.com/hubastard/panes/engine/colors"
	"github.com/hubastard/panes/engine/gfx"
)

// ImageLoader decodes the image at path. It runs once per image identity,
// when the record is first created.
type ImageLoader func(ctx context.Context, path string) (image.Image, error)

// Image draws a decoded picture at its natural size or at a requested one.
type Image struct {
	Path string
	Tint colors.Color
	img  image.Image
	want gfx.Vec2
	size gfx.Vec2
}

// loadImage runs loader off the caller's goroutine and waits for it or for
// ctx to end, whichever comes first.
func loadImage(ctx context.Context, loader ImageLoader, path string, size gfx.Vec2) (*Image, error) {
	if loader == nil {
		return nil, fmt.Errorf("image %q: no loader configured", path)
	}
	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := loader(ctx, path)
		done <- result{img, err}
	}()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("image %q: %w", path, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("image %q: %w", path, res.err)
		}
		if res.img == nil {
			return nil, fmt.Errorf("image %q: loader returned no image", path)
		}
		return &Image{Path: path, Tint: colors.White, img: res.img, want: size}, nil
	}
}

func (im *Image) Source() image.Image { return im.img }

// SetSize overrides the drawn size. A zero size means natural size.
func (im *Image) SetSize(size gfx.Vec2) *Image { im.want = size; return im }

func (im *Image) Update(u *UpdateInfo) gfx.Vec2 {
	im.size = im.want
	if im.size.X <= 0 || im.size.Y <= 0 {
		b := im.img.Bounds()
		im.size = gfx.V(float32(b.Dx()), float32(b.Dy()))
	}
	return im.size
}

func (im *Image) Render(r *RenderInfo) gfx.Vec2 {
	r.Base.DrawImage(im.img, gfx.Rect{X: r.At.X, Y: r.At.Y, W: im.size.X, H: im.size.Y}, im.Tint)
	return im.size
}
