package renderer

import (
	"github.com/df07/interactive-raytracer/pkg/core"
	"github.com/df07/interactive-raytracer/pkg/geometry"
)

// InspectResult describes what the primary ray of a single pixel sees
type InspectResult struct {
	Hit         bool
	SphereIndex int // Index in insertion order, -1 on a miss
	Sphere      geometry.Sphere
	Distance    float64
	Point       core.Vec3
	Normal      core.Vec3
	Color       core.Vec3 // Linear shaded color before gamma encoding
}

// Inspect casts the primary ray for image pixel (x, y), with row 0 at the top,
// and reports the nearest sphere it hits
func (r *Renderer) Inspect(camera *Camera, x, y int) InspectResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := InspectResult{SphereIndex: -1}
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return result
	}

	j := r.height - 1 - y
	ray := camera.GetRay(viewportCoord(x, r.width), viewportCoord(j, r.height))
	result.Color = r.traceRay(ray, 0)

	t, index, isHit := r.findNearestIntersection(ray)
	if !isHit {
		return result
	}

	sphere := r.spheres[index]
	result.Hit = true
	result.SphereIndex = index
	result.Sphere = sphere
	result.Distance = t
	result.Point = ray.At(t)
	result.Normal = sphere.NormalAt(result.Point)
	return result
}
