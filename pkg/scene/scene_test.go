package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/interactive-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	data := []byte(`name: Two Lights
width: 320
height: 240
camera:
  position: [0, 0, 0]
  fov: 60
  movementSpeed: 2
spheres:
  - center: [0, 0, -3]
    radius: 1
    color: [0.5, 0.25, 1]
lights:
  - position: [5, 5, 0]
    color: [1, 1, 1]
    intensity: 0.8
  - position: [-5, 5, 0]
    color: [1, 0.5, 0.5]
    intensity: 0.4
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	expected := &Config{
		Name:   "Two Lights",
		Width:  320,
		Height: 240,
		Camera: CameraSpec{
			Position:      &Vector{0, 0, 0},
			FOV:           60,
			MovementSpeed: 2,
		},
		Spheres: []SphereSpec{
			{Center: Vector{0, 0, -3}, Radius: 1, Color: Vector{0.5, 0.25, 1}},
		},
		Lights: []LightSpec{
			{Position: Vector{5, 5, 0}, Color: Vector{1, 1, 1}, Intensity: 0.8},
			{Position: Vector{-5, 5, 0}, Color: Vector{1, 0.5, 0.5}, Intensity: 0.4},
		},
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"malformed yaml", "spheres: [unterminated"},
		{"unknown field", "bogus: 1"},
		{"negative width", "width: -1"},
		{"zero radius", "spheres:\n  - center: [0, 0, 0]\n    radius: 0\n    color: [1, 1, 1]"},
		{"albedo above one", "spheres:\n  - center: [0, 0, 0]\n    radius: 1\n    color: [1.5, 1, 1]"},
		{"negative intensity", "lights:\n  - position: [0, 0, 0]\n    color: [1, 1, 1]\n    intensity: -1"},
		{"negative light color", "lights:\n  - position: [0, 0, 0]\n    color: [-1, 1, 1]\n    intensity: 1"},
		{"fov too wide", "camera:\n  fov: 180"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if errors.Cause(err) != ErrInvalidScene {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("width: 0\nheight: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("Expected default size, got %dx%d", cfg.Width, cfg.Height)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestConfig_MarshalRoundTrip(t *testing.T) {
	original := NewDefaultScene()

	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff(original, parsed); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_CameraConfig(t *testing.T) {
	cfg := &Config{
		Width:  400,
		Height: 200,
		Camera: CameraSpec{Position: &Vector{0, 0, 0}, FOV: 60},
	}

	cc := cfg.CameraConfig()
	if cc.Position != core.NewVec3(0, 0, 0) {
		t.Errorf("Explicit origin position was replaced by %v", cc.Position)
	}
	if cc.VFov != 60 || cc.AspectRatio != 2 {
		t.Errorf("Expected fov 60 aspect 2, got fov %f aspect %f", cc.VFov, cc.AspectRatio)
	}
	if cc.MovementSpeed != 5 || cc.MouseSensitivity != 0.1 {
		t.Errorf("Expected default speed/sensitivity, got %f/%f", cc.MovementSpeed, cc.MouseSensitivity)
	}

	// No position keeps the default eye
	cfg.Camera.Position = nil
	if got := cfg.CameraConfig().Position; got != core.NewVec3(0, 0, 5) {
		t.Errorf("Expected default position, got %v", got)
	}
}

func TestConfig_Build(t *testing.T) {
	cfg := NewShadowsScene()
	cfg.Width, cfg.Height = 64, 48

	r, camera, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if r.Width() != 64 || r.Height() != 48 {
		t.Errorf("Expected 64x48 renderer, got %dx%d", r.Width(), r.Height())
	}
	if len(r.Spheres()) != len(cfg.Spheres) || len(r.Lights()) != len(cfg.Lights) {
		t.Errorf("Expected %d spheres and %d lights, got %d and %d",
			len(cfg.Spheres), len(cfg.Lights), len(r.Spheres()), len(r.Lights()))
	}

	// LookAtTarget aims at (0,0,-1) from (0,1,4)
	expectedFront := core.NewVec3(0, -1, -5).Normalize()
	if diff := cmp.Diff(expectedFront, camera.Front(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Camera front mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(camera.AspectRatio()-64.0/48.0) > 1e-12 {
		t.Errorf("Expected aspect %f, got %f", 64.0/48.0, camera.AspectRatio())
	}
}

func TestConfig_BuildInvalid(t *testing.T) {
	cfg := NewDefaultScene()
	cfg.Spheres[0].Radius = -1
	if _, _, err := cfg.Build(); errors.Cause(err) != ErrInvalidScene {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestBuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			cfg, ok := Builtin(name)
			if !ok {
				t.Fatalf("Builtin(%q) not found", name)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Built-in scene is invalid: %v", err)
			}
			if len(cfg.Spheres) == 0 || len(cfg.Lights) == 0 {
				t.Error("Built-in scene should have spheres and lights")
			}

			// Built-ins are fresh copies
			cfg.Spheres[0].Radius = 42
			again, _ := Builtin(name)
			if again.Spheres[0].Radius == 42 {
				t.Error("Builtin returned shared state")
			}
		})
	}

	if _, ok := Builtin("missing"); ok {
		t.Error("Expected unknown built-in to be missing")
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is achromatic
	gray := oklchToRGB(0.65, 0, 0)
	if math.Abs(gray.X-gray.Y) > 1e-6 || math.Abs(gray.Y-gray.Z) > 1e-6 {
		t.Errorf("Expected gray, got %v", gray)
	}

	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		for _, v := range c.Array() {
			if v < 0 || v > 1 {
				t.Errorf("hue %f: component %f out of range", hue, v)
			}
		}
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse([]byte("# Scene: Nothing yet\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.Spheres) != 0 || cfg.Width != DefaultWidth {
		t.Errorf("Expected empty default-sized scene, got %+v", cfg)
	}
}
