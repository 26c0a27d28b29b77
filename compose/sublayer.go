package compose

import (
	"fmt"
	"image"

	"github.com/milk9111/mapstitch/common"
	"github.com/milk9111/mapstitch/config"
	"github.com/milk9111/mapstitch/tiles"
)

const (
	// MaxCanvasSide bounds either side of any canvas, in pixels.
	MaxCanvasSide = 1 << 17
	// MaxCanvasPixels bounds the area of any canvas.
	MaxCanvasPixels = 1 << 30

	maxTiles = MaxCanvasSide / common.TileUnit
)

// Loader provides the decoded image for a tile.
type Loader interface {
	Load(t tiles.Tile) (*image.NRGBA, error)
}

// InvalidMirrorError reports a mirror_hoffset that leaves no width.
type InvalidMirrorError struct {
	Width   int
	HOffset int
}

func (e *InvalidMirrorError) Error() string {
	return fmt.Sprintf("compose: mirror_hoffset %d leaves no width for a %dpx canvas", e.HOffset, e.Width)
}

// CanvasSizeError reports a canvas that would be empty or exceed
// MaxCanvasSide or MaxCanvasPixels.
type CanvasSizeError struct {
	Reason string
}

func (e *CanvasSizeError) Error() string {
	return "compose: bad canvas size: " + e.Reason
}

func checkCanvas(w, h int) error {
	if w > MaxCanvasSide || h > MaxCanvasSide {
		return &CanvasSizeError{Reason: fmt.Sprintf("%dx%d exceeds %dpx a side", w, h, MaxCanvasSide)}
	}
	if w > 0 && h > MaxCanvasPixels/w {
		return &CanvasSizeError{Reason: fmt.Sprintf("%dx%d exceeds %d pixels", w, h, MaxCanvasPixels)}
	}
	return nil
}

// Extent is the canvas size covering every tile in ts. Tiles at negative
// rows or columns do not grow the canvas; they are clipped when pasted.
func Extent(ts []tiles.Tile) (w, h int, err error) {
	if len(ts) == 0 {
		return 0, 0, nil
	}
	maxRow, maxCol := ts[0].Row, ts[0].Col
	for _, t := range ts[1:] {
		maxRow = max(maxRow, t.Row)
		maxCol = max(maxCol, t.Col)
	}

	if maxRow < 0 || maxCol < 0 {
		return 0, 0, &CanvasSizeError{Reason: fmt.Sprintf("tiles end at row %d, column %d", maxRow, maxCol)}
	}
	if maxRow >= maxTiles || maxCol >= maxTiles {
		return 0, 0, &CanvasSizeError{Reason: fmt.Sprintf("tile at row %d, column %d is past %d tiles", maxRow, maxCol, maxTiles)}
	}

	w, h = (maxCol+1)*common.TileUnit, (maxRow+1)*common.TileUnit
	if err := checkCanvas(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// BuildSublayer pastes the tiles of one sublayer onto a fresh canvas and
// applies mirroring. It returns nil when ts is empty.
func BuildSublayer(ts []tiles.Tile, sc config.Sublayer, l Loader) (*image.NRGBA, error) {
	if len(ts) == 0 {
		return nil, nil
	}

	w, h, err := Extent(ts)
	if err != nil {
		return nil, err
	}
	canvas := NewCanvas(w, h)
	for _, t := range ts {
		// too far up or left to reach the canvas
		if t.Row < -maxTiles || t.Col < -maxTiles {
			continue
		}
		img, err := l.Load(t)
		if err != nil {
			return nil, err
		}
		Paste(canvas, img, image.Pt(t.Col*common.TileUnit, t.Row*common.TileUnit))
	}

	if !sc.Mirror {
		return canvas, nil
	}
	return Mirror(canvas, sc.MirrorHOffset)
}

// Mirror extends src to the right with its own horizontal reflection. The
// reflection starts hoffset tiles before src's right edge, so the result is
// 2*w - hoffset*TileUnit wide.
func Mirror(src *image.NRGBA, hoffset int) (*image.NRGBA, error) {
	w, h := Size(src)
	switch {
	case hoffset > 2*w/common.TileUnit:
		return nil, &InvalidMirrorError{Width: w, HOffset: hoffset}
	case hoffset < -maxTiles:
		return nil, &CanvasSizeError{Reason: fmt.Sprintf("mirror_hoffset %d widens a %dpx canvas past %dpx", hoffset, w, MaxCanvasSide)}
	}

	shift := common.TileUnit * hoffset
	mw := 2*w - shift
	if mw <= 0 {
		return nil, &InvalidMirrorError{Width: w, HOffset: hoffset}
	}
	if err := checkCanvas(mw, h); err != nil {
		return nil, err
	}

	out := NewCanvas(mw, h)
	Paste(out, src, image.Point{})
	Paste(out, FlipH(src), image.Pt(w-shift, 0))
	return out, nil
}
