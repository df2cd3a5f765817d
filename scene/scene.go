// Package scene assembles the overlay pipeline from a config: environment
// background, opaque geometry, then the sphere gizmo and the grid.
package scene

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/config"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
	"github.com/seqsense/pcdoverlay/raster"
	"github.com/seqsense/pcdoverlay/texture"
)

var errNoPoint = errors.New("no point")

// ClearColor is used where no environment is drawn.
var ClearColor = overlay.Color{0, 0, 0, 1}

type Scene struct {
	Config *config.Config

	Environment *texture.Texture
	Screen      *texture.Texture
	Points      []mat.Vec3
	PointStyle  raster.PointStyle
	Boxes       []raster.Triangle

	// ShowGrid and ShowSphere start from the config and may be toggled
	// between frames.
	ShowGrid   bool
	ShowSphere bool
}

// FromConfig returns a scene without point cloud and environment.
func FromConfig(c *config.Config) *Scene {
	s := &Scene{
		Config:     c,
		PointStyle: c.PointCloud.Style(0, 0),
		ShowGrid:   c.Grid.Enabled,
		ShowSphere: c.Sphere.Enabled,
	}
	for _, b := range c.Boxes {
		s.Boxes = append(s.Boxes, b.Triangles()...)
	}
	return s
}

// New loads the files referenced by c.
func New(c *config.Config) (*Scene, error) {
	s := FromConfig(c)

	if c.Environment.Image != "" {
		tex, err := texture.Load(c.Environment.Image)
		if err != nil {
			return nil, err
		}
		if c.Environment.MaxWidth > 0 {
			tex = tex.Resize(c.Environment.MaxWidth)
		}
		s.Environment = tex
	}

	if c.Screen.Image != "" {
		tex, err := texture.Load(c.Screen.Image)
		if err != nil {
			return nil, err
		}
		s.Screen = tex
	}

	if c.PointCloud.Path != "" {
		pp, err := LoadPointCloud(c.PointCloud.Path)
		if err != nil {
			return nil, err
		}
		if err := s.SetPointCloud(pp); err != nil {
			return nil, fmt.Errorf("%s: %w", c.PointCloud.Path, err)
		}
	}
	return s, nil
}

// SetPointCloud replaces the points and fits the height colors to them
// unless the config fixes the range.
func (s *Scene) SetPointCloud(pp *pc.PointCloud) error {
	points, min, max, err := Points(pp)
	if err != nil {
		return err
	}
	s.Points = points
	s.PointStyle = s.Config.PointCloud.Style(min[2], max[2])
	return nil
}

func LoadPointCloud(path string) (*pc.PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pp, err := pc.Unmarshal(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pp, nil
}

// Points copies the xyz fields of pp and returns their bounds.
func Points(pp *pc.PointCloud) ([]mat.Vec3, mat.Vec3, mat.Vec3, error) {
	if pp == nil || pp.Points == 0 {
		return nil, mat.Vec3{}, mat.Vec3{}, errNoPoint
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, mat.Vec3{}, mat.Vec3{}, err
	}
	if !it.IsValid() {
		return nil, mat.Vec3{}, mat.Vec3{}, errNoPoint
	}
	points := make([]mat.Vec3, 0, it.Len())
	for ; it.IsValid(); it.Incr() {
		points = append(points, it.Vec3())
	}

	it, err = pp.Vec3Iterator()
	if err != nil {
		return nil, mat.Vec3{}, mat.Vec3{}, err
	}
	min, max, err := pc.MinMaxVec3(it)
	if err != nil {
		return nil, mat.Vec3{}, mat.Vec3{}, err
	}
	return points, min, max, nil
}

func (s *Scene) environment(t camera.Transform) *overlay.Environment {
	if s.Environment == nil {
		return nil
	}
	env := overlay.NewEnvironment(t, s.Environment, s.Config.Environment.Strength)
	env.Model = s.Config.Environment.Model()
	env.Range = s.Config.Environment.Range()
	return env
}

// Render draws one frame seen from cam into dst.
func (s *Scene) Render(ctx context.Context, dst *raster.Target, cam *camera.Camera) error {
	c := s.Config
	tr := cam.Transform(dst.Width, dst.Height)
	r := c.DepthRange.Range()

	dst.Reversed = r.Near > r.Far
	dst.Clear(ClearColor, r.Far)

	env := s.environment(tr)
	if env != nil {
		if err := dst.Draw(ctx, env, raster.BackgroundState); err != nil {
			return err
		}
	}
	if len(s.Boxes) > 0 {
		if err := dst.DrawTriangles(ctx, s.Boxes, tr, r, raster.DefaultFaceColors, raster.OpaqueState); err != nil {
			return err
		}
	}
	if len(s.Points) > 0 {
		if err := dst.DrawPoints(ctx, s.Points, c.PointCloud.Model(), tr, r, s.PointStyle, raster.OpaqueState); err != nil {
			return err
		}
	}
	if s.ShowSphere {
		g := overlay.NewSphereGizmo(tr, r, c.Sphere.Sphere(), overlay.Color(c.Sphere.InsideColor), overlay.Color(c.Sphere.OutsideColor))
		if c.Sphere.Mirror && env != nil {
			g.Surface = env
		}
		if err := dst.Draw(ctx, g, raster.OverlayState); err != nil {
			return err
		}
	}
	if s.ShowGrid {
		if err := dst.Draw(ctx, overlay.NewGrid(tr, r, c.Grid.Params()), raster.OverlayState); err != nil {
			return err
		}
	}
	if s.Screen != nil {
		if err := dst.Draw(ctx, overlay.Blit{Texture: s.Screen, Opacity: c.Screen.Opacity}, raster.BackgroundState); err != nil {
			return err
		}
	}
	return nil
}

// MoveSphere places the sphere gizmo on the ground plane under the given
// window position. It reports false if the ray misses the ground.
func (s *Scene) MoveSphere(cam *camera.Camera, x, y float32, width, height int) bool {
	hit, ok := Pick(cam, x, y, width, height)
	if !ok {
		return false
	}
	hit[1] = s.Config.Sphere.Radius
	s.Config.Sphere.Center = hit
	return true
}
