package compose

import (
	"errors"
	"image"

	"github.com/milk9111/mapstitch/common"
)

// ErrNoVisibleContent is returned by StackLayers when every layer is absent.
var ErrNoVisibleContent = errors.New("compose: no visible layers")

// StackSublayers overlays canvases at the origin in slice order, so later
// entries draw on top. Nil entries are skipped; if none remain the result
// is nil.
func StackSublayers(canvases []*image.NRGBA) *image.NRGBA {
	w, h, n := 0, 0, 0
	for _, c := range canvases {
		if c == nil {
			continue
		}
		cw, ch := Size(c)
		w, h = max(w, cw), max(h, ch)
		n++
	}
	if n == 0 {
		return nil
	}

	out := NewCanvas(w, h)
	for _, c := range canvases {
		if c != nil {
			Paste(out, c, image.Point{})
		}
	}
	return out
}

// LayerImage is one named layer handed to StackLayers. A nil Image marks an
// empty layer.
type LayerImage struct {
	Name    string
	Image   *image.NRGBA
	VCenter bool
}

// VCenterOffset is the y position of a vcenter layer of height layerH in a
// map of height mapH. The result sits two tiles below true centre.
func VCenterOffset(mapH, layerH int) int {
	return (mapH-layerH)/2 + 2*common.TileUnit
}

// StackLayers draws layers in slice order onto a canvas sized to the
// largest of them.
func StackLayers(layers []LayerImage) (*image.NRGBA, error) {
	w, h, n := 0, 0, 0
	for _, l := range layers {
		if l.Image == nil {
			continue
		}
		lw, lh := Size(l.Image)
		w, h = max(w, lw), max(h, lh)
		n++
	}
	if n == 0 {
		return nil, ErrNoVisibleContent
	}

	out := NewCanvas(w, h)
	for _, l := range layers {
		if l.Image == nil {
			continue
		}
		y := 0
		if l.VCenter {
			_, lh := Size(l.Image)
			y = VCenterOffset(h, lh)
		}
		Paste(out, l.Image, image.Pt(0, y))
	}
	return out, nil
}
