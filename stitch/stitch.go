// Package stitch runs the full map pipeline: scan each layer directory,
// build and stack its sublayers, then stack the layers into one map.
package stitch

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/mapstitch/common"
	"github.com/milk9111/mapstitch/compose"
	"github.com/milk9111/mapstitch/config"
	"github.com/milk9111/mapstitch/tiles"
)

// LayerSpec ties a named layer to its input subdirectory.
type LayerSpec struct {
	Name string
	Dir  string
}

// Layers in drawing order, bottom first.
var Layers = []LayerSpec{
	{Name: common.LayerBackground, Dir: common.DirBackground},
	{Name: common.LayerTerrain, Dir: common.DirTerrain},
	{Name: common.LayerForeground, Dir: common.DirForeground},
}

type Options struct {
	// Debug keeps every sublayer and layer canvas as an Artifact.
	Debug bool
	// Loader overrides the tile source; nil reads tiles from disk.
	Loader compose.Loader
	// Quiet suppresses progress logging.
	Quiet bool
}

// Artifact is an intermediate canvas kept for debugging.
type Artifact struct {
	Name  string
	Image *image.NRGBA
}

type Result struct {
	Stem string
	Map  *image.NRGBA
	// Layers holds the present layer composites by name.
	Layers    map[string]*image.NRGBA
	Artifacts []Artifact
}

// MissingInputError reports an input root that is absent or not a directory.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stitch: input %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("stitch: input %s: not a directory", e.Path)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

// Stitch builds the map for the input directory.
func Stitch(input string, cfg *config.Config, opts Options) (*Result, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, &MissingInputError{Path: input, Err: err}
	}
	if !info.IsDir() {
		return nil, &MissingInputError{Path: input}
	}

	loader := opts.Loader
	if loader == nil {
		loader = tiles.FileLoader{}
	}

	res := &Result{Stem: InputStem(input), Layers: make(map[string]*image.NRGBA)}
	stack := make([]compose.LayerImage, 0, len(Layers))
	for _, spec := range Layers {
		lc := cfg.Layer(spec.Name)
		img, err := res.buildLayer(filepath.Join(input, spec.Dir), spec, lc, loader, opts)
		if err != nil {
			return nil, fmt.Errorf("stitch: %s: %w", spec.Name, err)
		}
		if img != nil {
			res.Layers[spec.Name] = img
		}
		stack = append(stack, compose.LayerImage{Name: spec.Name, Image: img, VCenter: lc.VCenter})
	}

	m, err := compose.StackLayers(stack)
	if err != nil {
		return nil, fmt.Errorf("stitch: %s: %w", res.Stem, err)
	}
	res.Map = m
	if !opts.Quiet {
		log.Printf("stitch: %s: map %dx%d", res.Stem, m.Bounds().Dx(), m.Bounds().Dy())
	}
	return res, nil
}

func (res *Result) buildLayer(dir string, spec LayerSpec, lc config.Layer, loader compose.Loader, opts Options) (*image.NRGBA, error) {
	idx, err := tiles.Scan(dir)
	if err != nil {
		return nil, err
	}

	all := idx.Sublayers()
	visible := idx.Visible(lc.Hidden)
	if !opts.Quiet && len(all) > 0 {
		log.Printf("stitch: %s: %d sublayers (%d hidden), %d tiles", spec.Name, len(all), len(all)-len(visible), idx.Len())
	}

	canvases := make([]*image.NRGBA, 0, len(visible))
	for _, id := range visible {
		img, err := compose.BuildSublayer(idx.Tiles(id), lc.Sublayer(id), loader)
		if err != nil {
			return nil, fmt.Errorf("sublayer %d: %w", id, err)
		}
		if img == nil {
			continue
		}
		if opts.Debug {
			res.Artifacts = append(res.Artifacts, Artifact{Name: SublayerArtifactName(res.Stem, spec.Dir, id), Image: img})
		}
		canvases = append(canvases, img)
	}

	layer := compose.StackSublayers(canvases)
	if layer != nil && opts.Debug {
		res.Artifacts = append(res.Artifacts, Artifact{Name: LayerArtifactName(res.Stem, spec.Dir), Image: layer})
	}
	return layer, nil
}

// InputStem is the final path element of input without its extension.
func InputStem(input string) string {
	base := filepath.Base(filepath.Clean(input))
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// DefaultOutput is the output path used when none is given.
func DefaultOutput(input string) string {
	return InputStem(input) + ".png"
}

// DebugDir is where artifacts for stem are written under root.
func DebugDir(root, stem string) string {
	return filepath.Join(root, stem)
}

func SublayerArtifactName(stem, layerDir string, id int) string {
	return fmt.Sprintf("%s_%s%d.png", stem, layerDir, id)
}

func LayerArtifactName(stem, layerDir string) string {
	return fmt.Sprintf("%s_%s.png", stem, layerDir)
}
