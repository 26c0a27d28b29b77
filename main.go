package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/milk9111/mapstitch/config"
	"github.com/milk9111/mapstitch/stitch"
	"github.com/milk9111/mapstitch/watch"
)

const debugRoot = "debug"

const description = `Stitch together Formicide maps from per-sublayer tile exports.`

type cli struct {
	Input  string `short:"i" required:"" type:"path" help:"path to the map"`
	Config string `short:"c" type:"path" help:"path to the config file"`
	Output string `short:"o" type:"path" help:"output file (default: <input>.png)"`
	All    bool   `short:"a" help:"output all layers individually under debug/<input>/"`
	Watch  bool   `short:"w" help:"keep running and re-stitch when tiles or the config change"`
}

func (c *cli) output() string {
	if c.Output != "" {
		return c.Output
	}
	return stitch.DefaultOutput(c.Input)
}

// run stitches once and writes the result. Nothing is written on failure.
func (c *cli) run() error {
	cfg, found, err := config.LoadOptional(c.Config)
	if err != nil {
		return err
	}
	if c.Config != "" && !found {
		log.Printf("config: %s not found, using defaults", c.Config)
	}

	res, err := stitch.Stitch(c.Input, cfg, stitch.Options{Debug: c.All})
	if err != nil {
		return err
	}
	out := c.output()
	if err := res.Save(out, debugRoot); err != nil {
		return err
	}
	log.Printf("wrote %s", out)
	return nil
}

func (c *cli) watch(ctx context.Context) error {
	paths := []string{c.Config}
	for _, spec := range stitch.Layers {
		paths = append(paths, filepath.Join(c.Input, spec.Dir))
	}
	w, err := watch.NewWatcher(paths...)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Printf("watching %s", c.Input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			if c.ownOutput(name) {
				continue
			}
			log.Printf("changed: %s", name)
			if err := c.run(); err != nil {
				log.Printf("stitch failed: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// ownOutput reports whether name is a file this tool writes, so that
// saving the map does not trigger another stitch.
func (c *cli) ownOutput(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if out, err := filepath.Abs(c.output()); err == nil && out == abs {
		return true
	}
	debugDir, err := filepath.Abs(stitch.DebugDir(debugRoot, stitch.InputStem(c.Input)))
	return err == nil && filepath.Dir(abs) == debugDir
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("mapstitch"),
		kong.Description(description),
		kong.UsageOnError(),
	)

	err := c.run()
	if !c.Watch {
		kctx.FatalIfErrorf(err)
		return
	}
	if err != nil {
		log.Printf("stitch failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.FatalIfErrorf(c.watch(ctx))
}
