package main

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const tileSize = 16

var tileColors = []color.RGBA{
	{62, 137, 72, 255},  // grass
	{196, 164, 108, 255}, // sand
	{64, 110, 184, 255},  // water
	{120, 120, 128, 255}, // stone
}

var tileNames = []string{"Grass", "Sand", "Water", "Stone"}

// makeTileset paints one bordered 16px tile per palette entry, side by side.
func makeTileset() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(tileColors), tileSize))
	for i, c := range tileColors {
		r := image.Rect(i*tileSize, 0, (i+1)*tileSize, tileSize)
		dark := color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
		draw.Draw(img, r, image.NewUniform(dark), image.Point{}, draw.Src)
		draw.Draw(img, r.Inset(1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}
