// Command overlayrender renders a scene description to a PNG image.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/seqsense/pcdoverlay/config"
	"github.com/seqsense/pcdoverlay/raster"
	"github.com/seqsense/pcdoverlay/scene"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene description (YAML), defaults are used if empty")
		out        = flag.String("out", "", "output PNG path, overrides the config")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("overlayrender: ")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, *configPath, *out); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configPath, out string) error {
	c := config.Default()
	if configPath != "" {
		var err error
		if c, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if out != "" {
		c.Output = out
	}

	s, err := scene.New(c)
	if err != nil {
		return err
	}
	if len(s.Points) > 0 {
		log.Printf("%d points, z range [%g, %g]", len(s.Points), s.PointStyle.ZMin, s.PointStyle.ZMax)
	}

	dst := raster.NewTarget(c.Width, c.Height)
	start := time.Now()
	if err := s.Render(ctx, dst, c.Camera.New()); err != nil {
		return err
	}
	log.Printf("rendered %dx%d in %v", c.Width, c.Height, time.Since(start))

	if err := imgio.Save(c.Output, dst.Image(), imgio.PNGEncoder()); err != nil {
		return err
	}
	log.Printf("saved %s", c.Output)
	return nil
}
