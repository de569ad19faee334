package scene

import (
	"math"

	"github.com/df07/interactive-raytracer/pkg/core"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// Convert from OKLAB to linear RGB
	// Using simplified approximation for OKLAB to RGB conversion
	// This is not perfectly accurate but good enough for our purposes

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a gridSize x gridSize grid of spheres resting on
// a ground sphere, hue varying across X and chroma across Z
func NewSphereGridScene() *Config {
	const (
		gridSize   = 6
		targetArea = 5.0

		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	spacing := targetArea / float64(gridSize-1)
	sphereRadius := spacing * 0.35

	cfg := &Config{
		Name:        "Sphere Grid",
		Description: "Grid of OKLCH-colored spheres under a warm key light",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Camera: CameraSpec{
			Position:     &Vector{0, 4, 8},
			Target:       &Vector{0, 0, 0},
			FOV:          40,
			LookAtTarget: true,
		},
		Spheres: []SphereSpec{
			{Center: Vector{0, -1000, 0}, Radius: 1000, Color: Vector{0.5, 0.5, 0.5}},
		},
		Lights: []LightSpec{
			{Position: Vector{6, 10, 6}, Color: Vector{1, 0.95, 0.85}, Intensity: 1},
		},
	}

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2
			z := float64(j)*spacing - targetArea/2

			// Hue across X, chroma across Z
			hue := float64(i) / float64(gridSize-1) * 360
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			color := oklchToRGB(baseLightness, chroma, hue)

			cfg.Spheres = append(cfg.Spheres, SphereSpec{
				Center: Vector{x, sphereRadius, z},
				Radius: sphereRadius,
				Color:  Vector(color.Array()),
			})
		}
	}

	return cfg
}
