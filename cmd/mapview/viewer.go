package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mapstitch/common"
	"github.com/milk9111/mapstitch/preview"
	"github.com/milk9111/mapstitch/watch"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	minZoom = 1.0 / 64
	maxZoom = 8.0

	// backdrop checker size in map pixels
	checkerCell = common.TileUnit / 2
)

// viewer is the ebiten Game showing one stitched map.
type viewer struct {
	src     source
	watcher *watch.Watcher

	img      *ebiten.Image
	backdrop *ebiten.Image
	mapW     int
	mapH     int
	// texture pixels per map pixel, below 1 when the map was downscaled
	texScale float64
	status   string

	// view transform: screen = map*zoom + offset
	zoom    float64
	offX    float64
	offY    float64
	screenW int
	screenH int

	// reset animation targets
	animating bool
	goalZoom  float64
	goalX     float64
	goalY     float64

	dragging bool
	lastMX   int
	lastMY   int

	help     *ebitenui.UI
	showHelp bool
}

func newViewer(src source) (*viewer, error) {
	v := &viewer{src: src, zoom: 1, screenW: windowWidth, screenH: windowHeight}
	if err := v.reload(); err != nil {
		return nil, err
	}
	v.fit(false)
	v.watcher = newWatcher(src)
	v.help = newHelpUI(v)
	return v, nil
}

func (v *viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

// reload rebuilds the textures from the source. On failure the previous
// map stays on screen.
func (v *viewer) reload() error {
	m, err := v.src.Load()
	if err != nil {
		v.status = err.Error()
		return err
	}

	b := m.Bounds()
	fitted, scale := preview.Fit(m, preview.MaxTextureSide)
	if scale < 1 {
		log.Printf("mapview: %dx%d map downscaled by %.3f for display", b.Dx(), b.Dy(), scale)
	}

	if v.img != nil {
		v.img.Deallocate()
	}
	if v.backdrop != nil {
		v.backdrop.Deallocate()
	}
	v.img = ebiten.NewImageFromImage(fitted)
	cols := (b.Dx() + checkerCell - 1) / checkerCell
	rows := (b.Dy() + checkerCell - 1) / checkerCell
	v.backdrop = ebiten.NewImageFromImage(preview.Backdrop(cols, rows, 1))
	v.mapW, v.mapH = b.Dx(), b.Dy()
	v.texScale = scale
	v.status = ""
	return nil
}

// fit centres the whole map in the window.
func (v *viewer) fit(animate bool) {
	if v.mapW == 0 || v.mapH == 0 {
		return
	}
	z := math.Min(float64(v.screenW)/float64(v.mapW), float64(v.screenH)/float64(v.mapH))
	z = math.Max(minZoom, math.Min(maxZoom, z))
	x := (float64(v.screenW) - float64(v.mapW)*z) / 2
	y := (float64(v.screenH) - float64(v.mapH)*z) / 2
	if !animate {
		v.zoom, v.offX, v.offY = z, x, y
		return
	}
	v.animating = true
	v.goalZoom, v.goalX, v.goalY = z, x, y
}

func (v *viewer) Update() error {
	v.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.showHelp = !v.showHelp
	}
	if v.showHelp {
		v.help.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		v.fit(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.reload(); err != nil {
			log.Printf("mapview: reload: %v", err)
		}
	}

	mx, my := ebiten.CursorPosition()

	// wheel zoom keeps the map point under the cursor fixed
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.animating = false
		lx := (float64(mx) - v.offX) / v.zoom
		ly := (float64(my) - v.offY) / v.zoom
		factor := 1.1
		if wy < 0 {
			factor = 1.0 / 1.1
		}
		v.zoom = math.Max(minZoom, math.Min(maxZoom, v.zoom*factor))
		v.offX = float64(mx) - lx*v.zoom
		v.offY = float64(my) - ly*v.zoom
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !v.dragging {
			v.dragging = true
			v.animating = false
			v.lastMX, v.lastMY = mx, my
		}
		v.offX += float64(mx - v.lastMX)
		v.offY += float64(my - v.lastMY)
		v.lastMX, v.lastMY = mx, my
	} else {
		v.dragging = false
	}

	if v.animating {
		v.zoom = float64(common.Lerp(float32(v.zoom), float32(v.goalZoom), 0.2))
		v.offX = float64(common.Lerp(float32(v.offX), float32(v.goalX), 0.2))
		v.offY = float64(common.Lerp(float32(v.offY), float32(v.goalY), 0.2))
		if math.Abs(v.zoom-v.goalZoom) < 1e-3 && math.Abs(v.offX-v.goalX) < 0.5 && math.Abs(v.offY-v.goalY) < 0.5 {
			v.zoom, v.offX, v.offY = v.goalZoom, v.goalX, v.goalY
			v.animating = false
		}
	}
	return nil
}

func (v *viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	select {
	case name, ok := <-v.watcher.Events:
		if !ok {
			v.watcher = nil
			return
		}
		log.Printf("mapview: changed: %s", name)
		if err := v.reload(); err != nil {
			log.Printf("mapview: reload: %v", err)
		}
	case err, ok := <-v.watcher.Errors:
		if ok {
			log.Printf("mapview: watch: %v", err)
		}
	default:
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})

	if v.backdrop != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(checkerCell*v.zoom, checkerCell*v.zoom)
		op.GeoM.Translate(v.offX, v.offY)
		op.Filter = ebiten.FilterNearest
		// clip the last checker row/column to the map edge
		screen.SubImage(v.mapRect()).(*ebiten.Image).DrawImage(v.backdrop, op)
	}

	if v.img != nil {
		op := &ebiten.DrawImageOptions{}
		s := v.zoom / v.texScale
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(v.offX, v.offY)
		if s >= 1 {
			op.Filter = ebiten.FilterNearest
		} else {
			op.Filter = ebiten.FilterLinear
		}
		screen.DrawImage(v.img, op)
	}

	ebitenutil.DebugPrint(screen, v.hud())

	if v.showHelp {
		v.help.Draw(screen)
	}
}

// mapRect is the map's on-screen rectangle.
func (v *viewer) mapRect() image.Rectangle {
	x0, y0 := int(math.Floor(v.offX)), int(math.Floor(v.offY))
	x1 := int(math.Ceil(v.offX + float64(v.mapW)*v.zoom))
	y1 := int(math.Ceil(v.offY + float64(v.mapH)*v.zoom))
	return image.Rect(x0, y0, x1, y1)
}

func (v *viewer) hud() string {
	mx, my := ebiten.CursorPosition()
	px := int(math.Floor((float64(mx) - v.offX) / v.zoom))
	py := int(math.Floor((float64(my) - v.offY) / v.zoom))
	s := fmt.Sprintf("%s  %dx%d  zoom %.2f", v.src.Name(), v.mapW, v.mapH, v.zoom)
	if px >= 0 && py >= 0 && px < v.mapW && py < v.mapH {
		s += fmt.Sprintf("\npx %d,%d  tile row %d col %d", px, py, py/common.TileUnit, px/common.TileUnit)
	}
	if v.status != "" {
		s += "\nerror: " + v.status
	}
	return s + "\n[H] help"
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screenW, v.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
