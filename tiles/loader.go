package tiles

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"
)

// UnreadableTileError wraps a failure to open or decode a tile file.
type UnreadableTileError struct {
	Path string
	Err  error
}

func (e *UnreadableTileError) Error() string {
	return fmt.Sprintf("tiles: read %s: %v", e.Path, e.Err)
}

func (e *UnreadableTileError) Unwrap() error { return e.Err }

// FileLoader decodes tiles from disk.
type FileLoader struct{}

// Load decodes the tile image at t.Path.
func (FileLoader) Load(t Tile) (*image.NRGBA, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, &UnreadableTileError{Path: t.Path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &UnreadableTileError{Path: t.Path, Err: err}
	}
	return ToNRGBA(img), nil
}

// ToNRGBA returns img as a zero-origin *image.NRGBA, converting if needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
