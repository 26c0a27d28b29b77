package stitch

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Save writes the map to output and the debug artifacts (if any) under
// debugRoot. Every image is encoded to a temporary file first and only
// renamed into place once all of them encoded, so a failed save leaves
// no new files behind.
func (res *Result) Save(output, debugRoot string) error {
	var staged []stagedPNG
	defer func() {
		for _, sp := range staged {
			os.Remove(sp.tmp)
		}
	}()

	sp, err := stagePNG(output, res.Map)
	if err != nil {
		return err
	}
	staged = append(staged, sp)

	if len(res.Artifacts) > 0 {
		dir := DebugDir(debugRoot, res.Stem)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("stitch: debug dir: %w", err)
		}
		for _, a := range res.Artifacts {
			sp, err := stagePNG(filepath.Join(dir, a.Name), a.Image)
			if err != nil {
				return err
			}
			staged = append(staged, sp)
		}
	}

	for len(staged) > 0 {
		if err := staged[0].commit(); err != nil {
			return err
		}
		staged = staged[1:]
	}
	return nil
}

// stagedPNG is an encoded image waiting to be renamed to path.
type stagedPNG struct {
	path, tmp string
}

func (sp stagedPNG) commit() error {
	if err := os.Rename(sp.tmp, sp.path); err != nil {
		return fmt.Errorf("stitch: write %s: %w", sp.path, err)
	}
	return nil
}

// stagePNG encodes img to a temporary file beside path, so path never
// holds a partial image.
func stagePNG(path string, img image.Image) (stagedPNG, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return stagedPNG{}, fmt.Errorf("stitch: write %s: %w", path, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stagedPNG{}, fmt.Errorf("stitch: write %s: %w", path, err)
	}
	tmp := f.Name()

	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmp)
		return stagedPNG{}, fmt.Errorf("stitch: write %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return stagedPNG{}, fmt.Errorf("stitch: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return stagedPNG{}, fmt.Errorf("stitch: write %s: %w", path, err)
	}
	return stagedPNG{path: path, tmp: tmp}, nil
}
