package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

func parseArgs(t *testing.T, args ...string) *cli {
	t.Helper()
	var c cli
	parser, err := kong.New(&c, kong.Name("mapstitch"))
	if err != nil {
		t.Fatalf("kong: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &c
}

func TestCLIFlags(t *testing.T) {
	c := parseArgs(t, "-i", "maps/level1", "-c", "level1.yaml", "-o", "out/full.png", "-a", "-w")
	if filepath.Base(c.Input) != "level1" || filepath.Base(c.Config) != "level1.yaml" {
		t.Fatalf("unexpected paths: %+v", c)
	}
	if !c.All || !c.Watch {
		t.Fatalf("expected -a and -w to be set")
	}
	if filepath.Base(c.output()) != "full.png" {
		t.Fatalf("expected explicit output, got %s", c.output())
	}

	c = parseArgs(t, "--input", "maps/level1")
	if c.output() != "level1.png" {
		t.Fatalf("expected level1.png, got %s", c.output())
	}
}

func TestCLIRequiresInput(t *testing.T) {
	var c cli
	parser, err := kong.New(&c, kong.Name("mapstitch"))
	if err != nil {
		t.Fatalf("kong: %v", err)
	}
	if _, err := parser.Parse(nil); err == nil {
		t.Fatalf("expected missing --input error")
	}
}

func TestOwnOutput(t *testing.T) {
	c := parseArgs(t, "-i", "maps/level1", "-o", "level1.png")
	cases := []struct {
		name string
		want bool
	}{
		{"level1.png", true},
		{filepath.Join("debug", "level1", "level1_TerrainLayers0.png"), true},
		{filepath.Join("maps", "level1", "TerrainLayers", "0_0_0.png"), false},
		{"other.png", false},
	}
	for _, tc := range cases {
		if got := c.ownOutput(tc.name); got != tc.want {
			t.Fatalf("ownOutput(%q): expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty")
	if err := os.Mkdir(input, 0755); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "empty.png")
	c := &cli{Input: input, Output: out, All: true}
	if err := c.run(); err == nil {
		t.Fatalf("expected no-visible-content error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}
