package geometry

import "github.com/df07/interactive-raytracer/pkg/core"

// Light is a point light. Intensity must be non-negative.
type Light struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
}

// NewLight creates a new point light
func NewLight(position, color core.Vec3, intensity float64) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// Radiance returns the light color scaled by its intensity
func (l Light) Radiance() core.Vec3 {
	return l.Color.Multiply(l.Intensity)
}
