// Package config reads the YAML scene description used by the renderers.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seqsense/pcdoverlay/camera"
	"github.com/seqsense/pcdoverlay/depth"
	"github.com/seqsense/pcdoverlay/equirect"
	"github.com/seqsense/pcdoverlay/intersect"
	"github.com/seqsense/pcdoverlay/mat"
	"github.com/seqsense/pcdoverlay/overlay"
	"github.com/seqsense/pcdoverlay/raster"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
	defaultOutput = "overlay.png"

	defaultEnvironmentMaxWidth = 2048
)

var (
	ErrInvalidSize        = errors.New("width and height must be >0")
	ErrInvalidCamera      = errors.New("invalid camera param")
	ErrInvalidDepthRange  = errors.New("depth range must be in [0, 1]")
	ErrInvalidGrid        = errors.New("invalid grid param")
	ErrInvalidSphere      = errors.New("sphere radius must be >0")
	ErrInvalidEnvironment = errors.New("invalid environment param")
	ErrInvalidPointCloud  = errors.New("invalid pointcloud param")
	ErrInvalidBox         = errors.New("box max must be greater than min")
	ErrInvalidScreen      = errors.New("screen opacity must be in [0, 1]")
)

// Color is RGBA in [0, 1].
type Color [4]float32

type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Output string `yaml:"output"`

	Camera      Camera      `yaml:"camera"`
	DepthRange  DepthRange  `yaml:"depth_range"`
	Grid        Grid        `yaml:"grid"`
	Sphere      Sphere      `yaml:"sphere"`
	Environment Environment `yaml:"environment"`
	PointCloud  PointCloud  `yaml:"pointcloud"`
	Boxes       []Box       `yaml:"boxes"`
	Screen      Screen      `yaml:"screen"`
}

// Camera angles are in degrees.
type Camera struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	Zoom     float32    `yaml:"zoom"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type DepthRange struct {
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

type Grid struct {
	Enabled       bool      `yaml:"enabled"`
	Color         Color     `yaml:"color"`
	Scales        []float32 `yaml:"scales"`
	AxisBand      float32   `yaml:"axis_band"`
	FadeStart     float32   `yaml:"fade_start"`
	ReferenceNear float32   `yaml:"reference_near"`
	ReferenceFar  float32   `yaml:"reference_far"`
}

type Sphere struct {
	Enabled      bool       `yaml:"enabled"`
	Center       [3]float32 `yaml:"center"`
	Radius       float32    `yaml:"radius"`
	InsideColor  Color      `yaml:"inside_color"`
	OutsideColor Color      `yaml:"outside_color"`
	// Mirror colors the sphere surface with the environment.
	Mirror bool `yaml:"mirror"`
}

// Environment angles are in degrees. The default range covers the full
// sphere.
type Environment struct {
	Image     string  `yaml:"image"`
	Strength  float32 `yaml:"strength"`
	MaxWidth  int     `yaml:"max_width"`
	Rotation  float32 `yaml:"rotation"`
	Yaw       float32 `yaml:"yaw"`
	YawSpan   float32 `yaml:"yaw_span"`
	PitchMin  float32 `yaml:"pitch_min"`
	PitchSpan float32 `yaml:"pitch_span"`
}

// PointCloud height range is taken from the cloud itself when ZMin and
// ZMax are equal.
type PointCloud struct {
	Path      string  `yaml:"path"`
	ZUp       bool    `yaml:"z_up"`
	ZMin      float32 `yaml:"z_min"`
	ZMax      float32 `yaml:"z_max"`
	PointSize float32 `yaml:"point_size"`
}

// Screen is an image stretched over the whole output on top of the
// overlays, such as a reference photo taken from the camera pose.
type Screen struct {
	Image   string  `yaml:"image"`
	Opacity float32 `yaml:"opacity"`
}

type Box struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

func Default() *Config {
	grid := overlay.DefaultGridParams()
	return &Config{
		Width:  defaultWidth,
		Height: defaultHeight,
		Output: defaultOutput,
		Camera: Camera{
			Position: [3]float32{0, 2, 6},
			Yaw:      -90,
			Pitch:    -15,
			Zoom:     camera.DefaultZoom,
			Near:     camera.DefaultNear,
			Far:      camera.DefaultFar,
		},
		DepthRange: DepthRange{
			Near: depth.DefaultRange.Near,
			Far:  depth.DefaultRange.Far,
		},
		Grid: Grid{
			Enabled:       true,
			Color:         Color(grid.LineColor),
			Scales:        grid.Scales,
			AxisBand:      grid.AxisBand,
			FadeStart:     grid.FadeStart,
			ReferenceNear: grid.Reference.Near,
			ReferenceFar:  grid.Reference.Far,
		},
		Sphere: Sphere{
			Enabled:      true,
			Radius:       1,
			InsideColor:  Color{1, 0.5, 0, 0.5},
			OutsideColor: Color{0, 0.5, 1, 0.8},
		},
		Environment: Environment{
			Strength:  1,
			MaxWidth:  defaultEnvironmentMaxWidth,
			Yaw:       180,
			YawSpan:   -360,
			PitchMin:  0,
			PitchSpan: 180,
		},
		PointCloud: PointCloud{
			ZUp:       true,
			PointSize: raster.DefaultPointSize,
		},
		Screen: Screen{
			Opacity: 0.5,
		},
	}
}

// Parse decodes b over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func inUnit(v float32) bool {
	return 0 <= v && v <= 1
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w (%dx%d)", ErrInvalidSize, c.Width, c.Height)
	}
	switch {
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes must satisfy 0<near<far", ErrInvalidCamera)
	case c.Camera.Zoom <= 0 || 180 <= c.Camera.Zoom:
		return fmt.Errorf("%w: zoom must be in (0, 180)", ErrInvalidCamera)
	}
	if !inUnit(c.DepthRange.Near) || !inUnit(c.DepthRange.Far) {
		return ErrInvalidDepthRange
	}
	if c.Grid.Enabled {
		if len(c.Grid.Scales) == 0 {
			return fmt.Errorf("%w: scales must not be empty", ErrInvalidGrid)
		}
		for _, s := range c.Grid.Scales {
			if s <= 0 {
				return fmt.Errorf("%w: scale must be >0", ErrInvalidGrid)
			}
		}
		if c.Grid.ReferenceNear <= 0 || c.Grid.ReferenceFar <= c.Grid.ReferenceNear {
			return fmt.Errorf("%w: reference must satisfy 0<near<far", ErrInvalidGrid)
		}
	}
	if c.Sphere.Enabled && c.Sphere.Radius <= 0 {
		return ErrInvalidSphere
	}
	if c.Environment.Image != "" {
		switch {
		case c.Environment.Strength < 0:
			return fmt.Errorf("%w: strength must be >=0", ErrInvalidEnvironment)
		case c.Environment.YawSpan == 0 || c.Environment.PitchSpan == 0:
			return fmt.Errorf("%w: spans must not be zero", ErrInvalidEnvironment)
		case c.Environment.MaxWidth < 0:
			return fmt.Errorf("%w: max_width must be >=0", ErrInvalidEnvironment)
		}
	}
	if c.PointCloud.Path != "" {
		switch {
		case c.PointCloud.PointSize <= 0:
			return fmt.Errorf("%w: point size must be >0", ErrInvalidPointCloud)
		case c.PointCloud.ZMax < c.PointCloud.ZMin:
			return fmt.Errorf("%w: z_max must be >=z_min", ErrInvalidPointCloud)
		}
	}
	if c.Screen.Image != "" && !inUnit(c.Screen.Opacity) {
		return ErrInvalidScreen
	}
	for i, b := range c.Boxes {
		for k := 0; k < 3; k++ {
			if b.Max[k] <= b.Min[k] {
				return fmt.Errorf("%w (boxes[%d])", ErrInvalidBox, i)
			}
		}
	}
	return nil
}

func (c Camera) New() *camera.Camera {
	cam := camera.New(mat.Vec3(c.Position), mat.Vec3{0, 1, 0}, c.Yaw, c.Pitch, c.Zoom)
	cam.Near, cam.Far = c.Near, c.Far
	return cam
}

func (r DepthRange) Range() depth.Range {
	return depth.Range{Near: r.Near, Far: r.Far}
}

func (g Grid) Params() overlay.GridParams {
	return overlay.GridParams{
		LineColor: overlay.Color(g.Color),
		Scales:    append([]float32(nil), g.Scales...),
		AxisBand:  g.AxisBand,
		FadeStart: g.FadeStart,
		Reference: depth.Reference{Near: g.ReferenceNear, Far: g.ReferenceFar},
	}
}

func (s Sphere) Sphere() intersect.Sphere {
	return intersect.Sphere{Center: mat.Vec3(s.Center), Radius: s.Radius}
}

func (e Environment) Range() equirect.Range {
	return equirect.Range{
		Yaw:       mat.Radians(e.Yaw),
		YawSpan:   mat.Radians(e.YawSpan),
		PitchMin:  mat.Radians(e.PitchMin),
		PitchSpan: mat.Radians(e.PitchSpan),
	}
}

// Model rotates view directions around the world up axis.
func (e Environment) Model() mat.Mat4 {
	if e.Rotation == 0 {
		return mat.Identity()
	}
	return mat.Rotate(0, 1, 0, mat.Radians(e.Rotation))
}

// Model converts point cloud coordinates to the y up world.
func (p PointCloud) Model() mat.Mat4 {
	if !p.ZUp {
		return mat.Identity()
	}
	return mat.Rotate(1, 0, 0, -mat.Radians(90))
}

// Style returns the point style, using min and max as the height range
// when none is configured.
func (p PointCloud) Style(min, max float32) raster.PointStyle {
	ps := raster.PointStyle{ZMin: p.ZMin, ZMax: p.ZMax, SizeBase: p.PointSize}
	if ps.ZMin == ps.ZMax {
		ps.ZMin, ps.ZMax = min, max
	}
	if ps.ZMin == ps.ZMax {
		ps.ZMax = ps.ZMin + 1
	}
	return ps
}

func (b Box) Triangles() []raster.Triangle {
	return raster.Box(mat.Vec3(b.Min), mat.Vec3(b.Max))
}
