package main

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/milk9111/mapstitch/config"
	"github.com/milk9111/mapstitch/stitch"
	"github.com/milk9111/mapstitch/tiles"
	"github.com/milk9111/mapstitch/watch"
)

// source produces the map shown by the viewer.
type source interface {
	Name() string
	Load() (image.Image, error)
	// WatchPaths lists what to watch for live reload; nil disables it.
	WatchPaths() []string
}

type fileSource string

func (f fileSource) Name() string { return filepath.Base(string(f)) }

func (f fileSource) Load() (image.Image, error) {
	img, err := tiles.FileLoader{}.Load(tiles.Tile{Path: string(f)})
	if err != nil {
		return nil, fmt.Errorf("mapview: %w", err)
	}
	return img, nil
}

func (f fileSource) WatchPaths() []string { return []string{string(f)} }

type stitchSource struct {
	input      string
	configPath string
}

func (s *stitchSource) Name() string { return stitch.InputStem(s.input) }

func (s *stitchSource) Load() (image.Image, error) {
	cfg, found, err := config.LoadOptional(s.configPath)
	if err != nil {
		return nil, err
	}
	if s.configPath != "" && !found {
		log.Printf("config: %s not found, using defaults", s.configPath)
	}
	res, err := stitch.Stitch(s.input, cfg, stitch.Options{})
	if err != nil {
		return nil, err
	}
	return res.Map, nil
}

func (s *stitchSource) WatchPaths() []string {
	paths := []string{s.configPath}
	for _, spec := range stitch.Layers {
		paths = append(paths, filepath.Join(s.input, spec.Dir))
	}
	return paths
}

func newWatcher(src source) *watch.Watcher {
	paths := src.WatchPaths()
	if len(paths) == 0 {
		return nil
	}
	w, err := watch.NewWatcher(paths...)
	if err != nil {
		log.Printf("mapview: live reload disabled: %v", err)
		return nil
	}
	return w
}
