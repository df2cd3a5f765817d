// Command viewer shows a scene description in a desktop window.
//
// Left drag rotates, middle drag pans and right drag moves forward. The
// wheel zooms and a left click on the ground moves the sphere gizmo. G and
// S toggle the grid and the sphere.
package main

import (
	"context"
	"flag"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/draw"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/config"
	"github.com/seqsense/pcdoverlay/raster"
	"github.com/seqsense/pcdoverlay/scene"
)

type game struct {
	ctl    *scene.Controller
	target *raster.Target
	rgba   *image.RGBA
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.ctl.ToggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.ctl.ToggleSphere()
	}

	x, y := ebiten.CursorPosition()
	for b, btn := range map[ebiten.MouseButton]camera.Button{
		ebiten.MouseButtonLeft:   camera.ButtonLeft,
		ebiten.MouseButtonMiddle: camera.ButtonMiddle,
		ebiten.MouseButtonRight:  camera.ButtonRight,
	} {
		if inpututil.IsMouseButtonJustPressed(b) {
			g.ctl.MouseDown(x, y, btn)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			g.ctl.MouseUp(x, y)
		}
	}
	g.ctl.MouseMove(x, y)

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.ctl.Wheel(dy)
	}

	if !g.ctl.Modified() {
		return nil
	}
	if g.target == nil || g.target.Width != g.ctl.Width || g.target.Height != g.ctl.Height {
		g.target = raster.NewTarget(g.ctl.Width, g.ctl.Height)
		g.rgba = image.NewRGBA(image.Rect(0, 0, g.ctl.Width, g.ctl.Height))
	}
	if err := g.ctl.Render(context.Background(), g.target); err != nil {
		return err
	}
	draw.Draw(g.rgba, g.rgba.Bounds(), g.target.Image(), image.Point{}, draw.Src)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.rgba == nil || screen.Bounds().Size() != g.rgba.Bounds().Size() {
		return
	}
	screen.WritePixels(g.rgba.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ctl.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "scene description (YAML), defaults are used if empty")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("viewer: ")

	c := config.Default()
	if *configPath != "" {
		var err error
		if c, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	s, err := scene.New(c)
	if err != nil {
		log.Fatal(err)
	}

	g := &game{ctl: scene.NewController(s, c.Camera.New(), c.Width, c.Height)}
	ebiten.SetWindowTitle("pcdoverlay")
	ebiten.SetWindowSize(c.Width, c.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
