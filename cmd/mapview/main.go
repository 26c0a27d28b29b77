package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	mapPath := flag.String("map", "", "stitched map image to open")
	input := flag.String("i", "", "map directory to stitch and watch (instead of -map)")
	configPath := flag.String("c", "", "config file used with -i")
	flag.Parse()

	var src source
	switch {
	case *input != "":
		src = &stitchSource{input: *input, configPath: *configPath}
	case *mapPath != "":
		src = fileSource(*mapPath)
	default:
		flag.Usage()
		log.Fatal("mapview: one of -map or -i is required")
	}

	v, err := newViewer(src)
	if err != nil {
		log.Fatal(err)
	}
	defer v.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("mapview - " + src.Name())

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
