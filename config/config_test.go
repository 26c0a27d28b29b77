package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/mapstitch/common"
)

func TestParseLayers(t *testing.T) {
	doc := `
terrain:
  vcenter: true
  0: {hidden: true}
  3:
    mirror: true
    mirror_hoffset: 1
  5:
foreground:
  1: {mirror: true}
background:
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	terrain := cfg.Layer(common.LayerTerrain)
	if !terrain.VCenter {
		t.Fatalf("expected terrain vcenter")
	}
	if !terrain.Hidden(0) || terrain.Hidden(3) {
		t.Fatalf("unexpected hidden flags: %+v", terrain.Sublayers)
	}
	if got := terrain.Sublayer(3); got != (Sublayer{Mirror: true, MirrorHOffset: 1}) {
		t.Fatalf("unexpected sublayer 3: %+v", got)
	}
	if got, ok := terrain.Sublayers[5]; !ok || got != (Sublayer{}) {
		t.Fatalf("expected empty sublayer 5 with defaults, got %+v (present %v)", got, ok)
	}
	if got := terrain.Sublayer(42); got != (Sublayer{}) {
		t.Fatalf("expected zero value for absent sublayer, got %+v", got)
	}

	fg := cfg.Layer(common.LayerForeground)
	if fg.VCenter || !fg.Sublayer(1).Mirror || fg.Sublayer(1).MirrorHOffset != 0 {
		t.Fatalf("unexpected foreground: %+v", fg)
	}

	if bg := cfg.Layer(common.LayerBackground); bg.VCenter || len(bg.Sublayers) != 0 {
		t.Fatalf("expected empty background, got %+v", bg)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown_key", "terrain:\n  centre: true\n"},
		{"bad_vcenter", "terrain:\n  vcenter: maybe\n"},
		{"bad_hoffset", "terrain:\n  0: {mirror_hoffset: one}\n"},
		{"layer_scalar", "terrain: 3\n"},
		{"unknown_sublayer_key", "terrain:\n  0: {hiden: true}\n"},
		{"sublayer_scalar", "terrain:\n  0: true\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse([]byte(c.doc)); err == nil {
				t.Fatalf("expected error for %q", c.doc)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Layer(common.LayerTerrain).VCenter {
		t.Fatalf("expected defaults")
	}
	var nilCfg *Config
	if nilCfg.Layer(common.LayerTerrain).Hidden(0) {
		t.Fatalf("nil config should yield defaults")
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()

	cfg, found, err := LoadOptional("")
	if err != nil || found || cfg == nil {
		t.Fatalf("empty path: cfg=%v found=%v err=%v", cfg, found, err)
	}

	cfg, found, err = LoadOptional(filepath.Join(dir, "missing.yaml"))
	if err != nil || found || cfg == nil {
		t.Fatalf("missing file: cfg=%v found=%v err=%v", cfg, found, err)
	}

	path := filepath.Join(dir, "map.yaml")
	if err := os.WriteFile(path, []byte("terrain:\n  vcenter: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, found, err = LoadOptional(path)
	if err != nil || !found {
		t.Fatalf("existing file: found=%v err=%v", found, err)
	}
	if !cfg.Terrain.VCenter {
		t.Fatalf("expected terrain vcenter")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("terrain: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadOptional(bad); err == nil {
		t.Fatalf("expected parse error")
	}
}
