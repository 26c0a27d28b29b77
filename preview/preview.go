// Package preview prepares stitched maps for on-screen display.
package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
)

// MaxTextureSide is the largest edge handed to the GPU by the viewer.
const MaxTextureSide = 8192

// Fit returns src scaled down so neither edge exceeds maxSide, and the
// scale factor applied. Images that already fit are returned as is.
func Fit(src image.Image, maxSide int) (image.Image, float64) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src, 1
	}

	scale := float64(maxSide) / float64(max(w, h))
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst, scale
}

// Backdrop draws a checkerboard of cell-sized squares, used behind
// transparent map regions.
func Backdrop(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if cell <= 0 {
		cell = 1
	}
	light := color.RGBA(colornames.Gainsboro)
	dark := color.RGBA(colornames.Darkgray)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
