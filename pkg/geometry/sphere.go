package geometry

import (
	"math"

	"github.com/df07/interactive-raytracer/pkg/core"
)

// Sphere is an immutable sphere primitive with a flat albedo
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3 // albedo, each channel in [0,1]
}

// NewSphere creates a new sphere. Radius must be positive.
func NewSphere(center core.Vec3, radius float64, color core.Vec3) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// Intersect returns the smallest non-negative t at which the ray meets the
// sphere. When the ray starts inside the sphere the far side is returned;
// spheres entirely behind the origin are misses.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < 0 {
		// Origin is inside or past the near side, try the farther one
		root = (-halfB + sqrtD) / a
		if root < 0 {
			return 0, false
		}
	}

	return root, true
}

// NormalAt returns the outward unit normal at a point on the surface.
// Undefined (zero vector) at the exact center.
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Albedo returns the sphere's base color
func (s Sphere) Albedo() core.Vec3 {
	return s.Color
}
