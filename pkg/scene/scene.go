// Package scene describes renderable scenes: YAML scene files, the
// built-in scenes and discovery of scene files on disk.
package scene

import (
	"bytes"
	"io"
	"os"

	"github.com/df07/interactive-raytracer/pkg/core"
	"github.com/df07/interactive-raytracer/pkg/geometry"
	"github.com/df07/interactive-raytracer/pkg/renderer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidScene is returned when a scene fails validation
	ErrInvalidScene = errors.New("invalid scene")
	// ErrUnknownScene is returned when a scene name resolves to nothing
	ErrUnknownScene = errors.New("unknown scene")
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Vector is a YAML friendly 3-vector, written as [x, y, z]
type Vector [3]float64

// Vec3 converts the vector to a core.Vec3
func (v Vector) Vec3() core.Vec3 {
	return core.FromArray(v)
}

// Config is the on-disk description of a scene
type Config struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Width       int          `yaml:"width,omitempty" json:"width,omitzero"`
	Height      int          `yaml:"height,omitempty" json:"height,omitzero"`
	Camera      CameraSpec   `yaml:"camera" json:"camera"`
	Spheres     []SphereSpec `yaml:"spheres" json:"spheres"`
	Lights      []LightSpec  `yaml:"lights" json:"lights"`
}

// CameraSpec holds camera overrides. Unset fields keep the camera defaults.
type CameraSpec struct {
	Position         *Vector `yaml:"position,omitempty" json:"position,omitzero"`
	Target           *Vector `yaml:"target,omitempty" json:"target,omitzero"`
	Up               *Vector `yaml:"up,omitempty" json:"up,omitzero"`
	FOV              float64 `yaml:"fov,omitempty" json:"fov,omitzero"`
	LookAtTarget     bool    `yaml:"lookAtTarget,omitempty" json:"lookAtTarget,omitzero"` // aim at Target instead of looking down -Z
	MovementSpeed    float64 `yaml:"movementSpeed,omitempty" json:"movementSpeed,omitzero"`
	MouseSensitivity float64 `yaml:"mouseSensitivity,omitempty" json:"mouseSensitivity,omitzero"`
}

type SphereSpec struct {
	Center Vector  `yaml:"center" json:"center"`
	Radius float64 `yaml:"radius" json:"radius"`
	Color  Vector  `yaml:"color" json:"color"`
}

type LightSpec struct {
	Position  Vector  `yaml:"position" json:"position"`
	Color     Vector  `yaml:"color" json:"color"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
}

// Parse decodes a YAML scene, fills in the default image size and validates it
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document is an empty scene
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(ErrInvalidScene, "failed to decode: %v", err)
	}

	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a YAML scene file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scene %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return cfg, nil
}

// Marshal encodes the scene as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode scene")
	}
	return data, nil
}

// Validate checks sizes, radii, colors and the camera field of view
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidScene, "image size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Camera.FOV < 0 || c.Camera.FOV >= 180 {
		return errors.Wrapf(ErrInvalidScene, "fov %g must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.MovementSpeed < 0 || c.Camera.MouseSensitivity < 0 {
		return errors.Wrap(ErrInvalidScene, "camera speed and sensitivity must not be negative")
	}
	for i, s := range c.Spheres {
		if !(s.Radius > 0) {
			return errors.Wrapf(ErrInvalidScene, "sphere %d: radius %g must be positive", i, s.Radius)
		}
		if !inUnitRange(s.Color) {
			return errors.Wrapf(ErrInvalidScene, "sphere %d: color %v must be within [0, 1]", i, s.Color)
		}
	}
	for i, l := range c.Lights {
		if l.Intensity < 0 {
			return errors.Wrapf(ErrInvalidScene, "light %d: intensity %g must not be negative", i, l.Intensity)
		}
		if l.Color[0] < 0 || l.Color[1] < 0 || l.Color[2] < 0 {
			return errors.Wrapf(ErrInvalidScene, "light %d: color %v must not be negative", i, l.Color)
		}
	}
	return nil
}

func inUnitRange(v Vector) bool {
	for _, c := range v {
		if !(c >= 0 && c <= 1) {
			return false
		}
	}
	return true
}

// CameraConfig returns the renderer camera configuration for the scene
func (c *Config) CameraConfig() renderer.CameraConfig {
	override := renderer.CameraConfig{
		VFov:             c.Camera.FOV,
		AspectRatio:      float64(c.Width) / float64(c.Height),
		MovementSpeed:    c.Camera.MovementSpeed,
		MouseSensitivity: c.Camera.MouseSensitivity,
	}
	if c.Camera.Position != nil {
		override.Position = c.Camera.Position.Vec3()
	}
	if c.Camera.Target != nil {
		override.Target = c.Camera.Target.Vec3()
	}
	if c.Camera.Up != nil {
		override.Up = c.Camera.Up.Vec3()
	}

	config := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), override)
	// The origin is a legitimate eye position but the merge treats it as unset
	if c.Camera.Position != nil {
		config.Position = c.Camera.Position.Vec3()
	}
	return config
}

// NewCamera creates the scene camera for an image of width x height
func (c *Config) NewCamera() *renderer.Camera {
	if c.Camera.LookAtTarget {
		return renderer.NewCameraLookingAt(c.CameraConfig())
	}
	return renderer.NewCamera(c.CameraConfig())
}

// Build validates the scene and returns a populated renderer and its camera
func (c *Config) Build() (*renderer.Renderer, *renderer.Camera, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	r := renderer.NewRenderer(c.Width, c.Height)
	for _, s := range c.Spheres {
		r.AddSphere(geometry.NewSphere(s.Center.Vec3(), s.Radius, s.Color.Vec3()))
	}
	for _, l := range c.Lights {
		r.AddLight(geometry.NewLight(l.Position.Vec3(), l.Color.Vec3(), l.Intensity))
	}

	return r, c.NewCamera(), nil
}
