// Package common holds constants shared by the stitcher and the viewer.
package common

// TileUnit is the edge length in pixels of every exported tile.
const TileUnit = 128

const (
	LayerBackground = "background"
	LayerTerrain    = "terrain"
	LayerForeground = "foreground"
)

// Input subdirectories, one per named layer.
const (
	DirBackground = "BackgroundVisualLayers"
	DirTerrain    = "TerrainLayers"
	DirForeground = "ForegroundVisualLayers"
)

// Lerp moves a toward b by fraction t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
