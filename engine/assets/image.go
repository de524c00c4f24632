// Package assets loads files the engine consumes: images, shaders, fonts
// and shaders, plus change notification for hot-reloading themes.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes a PNG, JPEG, BMP or WebP file into tightly packed
// RGBA (row-major, top-left origin, premultiplied).
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	slog.Debug("image decoded", "path", path, "format", format, "size", img.Bounds().Size())
	return ToRGBA(img), nil
}

// ImageLoader adapts LoadImage to the UI's loader signature. Decoding is
// not interruptible; ctx is only checked before starting.
func ImageLoader(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadImage(path)
}

// ToRGBA returns img when it is already a tightly packed RGBA at the
// origin and a converted copy otherwise.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if m, ok := img.(*image.RGBA); ok && m.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
