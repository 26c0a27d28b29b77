package tiles

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTile(t *testing.T, dir, name string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
}

func TestScanGroupsBySublayer(t *testing.T) {
	dir := t.TempDir()
	red := color.NRGBA{R: 0xff, A: 0xff}
	for _, name := range []string{"2_0_0.png", "0_1_1.png", "0_0_0.png", "10_0_3.png", "0_0_1.PNG"} {
		writeTile(t, dir, name, red)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a tile"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "9_9_9.png"), 0755); err != nil {
		t.Fatal(err)
	}

	idx, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if idx.Len() != 5 {
		t.Fatalf("expected 5 tiles, got %d", idx.Len())
	}
	if got := idx.Sublayers(); !slices.Equal(got, []int{0, 2, 10}) {
		t.Fatalf("expected sublayers [0 2 10], got %v", got)
	}

	sub0 := idx.Tiles(0)
	want := []Coord{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}}
	if len(sub0) != len(want) {
		t.Fatalf("expected %d tiles in sublayer 0, got %d", len(want), len(sub0))
	}
	for i, tl := range sub0 {
		if tl.Coord != want[i] {
			t.Fatalf("tile %d: expected %+v, got %+v", i, want[i], tl.Coord)
		}
	}
	if len(idx.Tiles(5)) != 0 {
		t.Fatalf("expected no tiles for absent sublayer")
	}
}

func TestScanVisibleDropsHidden(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0_0_0.png", "1_0_0.png", "2_0_0.png"} {
		writeTile(t, dir, name, color.NRGBA{A: 0xff})
	}
	idx, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	got := idx.Visible(func(id int) bool { return id == 1 })
	if !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("expected [0 2], got %v", got)
	}
	if got := idx.Visible(nil); !slices.Equal(got, []int{0, 1, 2}) {
		t.Fatalf("expected [0 1 2], got %v", got)
	}
}

func TestScanMissingDirIsEmpty(t *testing.T) {
	idx, err := Scan(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 0 || len(idx.Sublayers()) != 0 {
		t.Fatalf("expected empty index")
	}
}

func TestScanMalformedAborts(t *testing.T) {
	dir := t.TempDir()
	writeTile(t, dir, "0_0_0.png", color.NRGBA{A: 0xff})
	writeTile(t, dir, "preview.png", color.NRGBA{A: 0xff})

	_, err := Scan(dir)
	var mErr *MalformedNameError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MalformedNameError, got %v", err)
	}
	if mErr.Name != "preview.png" {
		t.Fatalf("expected preview.png, got %s", mErr.Name)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 128}
	writeTile(t, dir, "0_0_0.png", c)

	img, err := FileLoader{}.Load(Tile{Path: filepath.Join(dir, "0_0_0.png")})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if got := img.NRGBAAt(3, 3); got != c {
		t.Fatalf("expected %v, got %v", c, got)
	}

	_, err = FileLoader{}.Load(Tile{Path: filepath.Join(dir, "missing.png")})
	var uErr *UnreadableTileError
	if !errors.As(err, &uErr) {
		t.Fatalf("expected UnreadableTileError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestToNRGBAConvertsOffsetImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.Set(6, 6, color.RGBA{R: 0xff, A: 0xff})
	out := ToNRGBA(src)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("unexpected pixel %v", got)
	}
}
