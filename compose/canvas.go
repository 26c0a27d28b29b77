// Package compose assembles tile images into sublayer, layer, and map
// canvases. Every canvas is an *image.NRGBA with a zero origin.
package compose

import (
	"image"
)

// NewCanvas allocates a fully transparent w×h canvas.
func NewCanvas(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Paste copies src onto dst with its top-left corner at at, using src's
// alpha as the mask: pixels with non-zero alpha overwrite dst, fully
// transparent pixels leave dst untouched. Partial alpha is not blended.
// Anything falling outside dst is clipped.
func Paste(dst, src *image.NRGBA, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	// source point matching r.Min
	sp := sb.Min.Add(r.Min.Sub(at))
	w := r.Dx() * 4

	for y := 0; y < r.Dy(); y++ {
		di := dst.PixOffset(r.Min.X, r.Min.Y+y)
		si := src.PixOffset(sp.X, sp.Y+y)
		drow := dst.Pix[di : di+w]
		srow := src.Pix[si : si+w]
		for i := 0; i < w; i += 4 {
			if srow[i+3] == 0 {
				continue
			}
			copy(drow[i:i+4], srow[i:i+4])
		}
	}
}

// FlipH returns a left-right mirror of src.
func FlipH(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewCanvas(w, h)
	for y := 0; y < h; y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := out.PixOffset(0, y)
		for x := 0; x < w; x++ {
			s := si + x*4
			d := di + (w-1-x)*4
			copy(out.Pix[d:d+4], src.Pix[s:s+4])
		}
	}
	return out
}

// Size is the width and height of img.
func Size(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
