package renderer

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/df07/interactive-raytracer/pkg/core"
	"github.com/df07/interactive-raytracer/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

// Shading constants
const (
	MaxDepth         = 3 // Reserved recursion limit; primary rays start at depth 0
	AmbientStrength  = 0.1
	SpecularStrength = 0.5
	SpecularPower    = 32
	ShadowEpsilon    = 0.001 // Offset along the normal for shadow ray origins

	attenuationLinear    = 0.09
	attenuationQuadratic = 0.032
	displayGamma         = 2.2
)

var (
	skyColor     = core.NewVec3(0.5, 0.7, 1.0)
	horizonColor = core.NewVec3(1.0, 1.0, 1.0)
)

// RenderConfig controls how a frame is split across workers
type RenderConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	SpanSize   int // Pixels per work unit
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		SpanSize:   1024,
	}
}

// Renderer owns the scene and the RGB8 image buffer. All methods are safe
// for concurrent use: scene and size mutations wait for an in-flight Render
// to finish and vice versa.
type Renderer struct {
	mu sync.RWMutex

	width     int
	height    int
	imageData []byte // RGB8, row-major, top row first

	spheres []geometry.Sphere
	lights  []geometry.Light

	config RenderConfig
	logger core.Logger
}

// NewRenderer creates a renderer with an image buffer of width*height*3 bytes
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:     width,
		height:    height,
		imageData: make([]byte, width*height*3),
		config:    DefaultRenderConfig(),
		logger:    NewDefaultLogger(),
	}
}

// SetRenderConfig updates the parallelism configuration
func (r *Renderer) SetRenderConfig(config RenderConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = config
}

// SetLogger replaces the logger
func (r *Renderer) SetLogger(logger core.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// AddSphere appends a sphere to the scene
func (r *Renderer) AddSphere(sphere geometry.Sphere) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spheres = append(r.spheres, sphere)
}

// AddLight appends a point light to the scene
func (r *Renderer) AddLight(light geometry.Light) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lights = append(r.lights, light)
}

// ClearScene removes all spheres and lights
func (r *Renderer) ClearScene() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spheres = nil
	r.lights = nil
}

// Spheres returns a copy of the scene's spheres in insertion order
func (r *Renderer) Spheres() []geometry.Sphere {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]geometry.Sphere(nil), r.spheres...)
}

// Lights returns a copy of the scene's lights in insertion order
func (r *Renderer) Lights() []geometry.Light {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]geometry.Light(nil), r.lights...)
}

// UpdateDimensions resizes the image buffer. It blocks until any in-flight
// Render has returned, and the next Render sees the new size.
func (r *Renderer) UpdateDimensions(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width == r.width && height == r.height {
		return
	}
	r.width = width
	r.height = height
	r.imageData = make([]byte, width*height*3)
	r.logger.Printf("Resized image buffer to %dx%d\n", width, height)
}

// Width returns the image width in pixels
func (r *Renderer) Width() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width
}

// Height returns the image height in pixels
func (r *Renderer) Height() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.height
}

// ImageData returns a copy of the RGB8 image buffer (row-major, top row first)
func (r *Renderer) ImageData() []byte {
	data, _, _ := r.Frame()
	return data
}

// Frame returns a copy of the image buffer together with the dimensions it was rendered at
func (r *Renderer) Frame() ([]byte, int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.imageData...), r.width, r.height
}

// Render traces one primary ray per pixel through a snapshot of camera and
// writes the shaded result into the image buffer. Pixels are split into
// disjoint spans rendered in parallel; Render returns after all of them finish.
func (r *Renderer) Render(camera *Camera) RenderStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	startTime := time.Now()
	snapshot := *camera

	spans := NewSpanGrid(r.width*r.height, r.config.SpanSize)
	spanStats := make([]SpanStats, len(spans))
	numWorkers := r.numWorkers()

	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i, span := range spans {
		i, span := i, span // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			// Each span writes a disjoint range of the buffer and its own stats slot
			spanStats[i] = r.renderSpan(&snapshot, span)
			return nil
		})
	}
	_ = g.Wait() // span workers never fail

	stats := RenderStats{
		Width:      r.width,
		Height:     r.height,
		Spans:      len(spans),
		NumWorkers: numWorkers,
	}
	for _, s := range spanStats {
		stats.merge(s)
	}
	stats.Duration = time.Since(startTime)
	return stats
}

func (r *Renderer) numWorkers() int {
	if r.config.NumWorkers > 0 {
		return r.config.NumWorkers
	}
	return runtime.NumCPU()
}

// renderSpan renders the pixels of one span of the linear pixel index space
func (r *Renderer) renderSpan(camera *Camera, span Span) SpanStats {
	stats := SpanStats{}

	for idx := span.Start; idx < span.End; idx++ {
		i := idx % r.width
		j := idx / r.width

		u := viewportCoord(i, r.width)
		v := viewportCoord(j, r.height)

		ray := camera.GetRay(u, v)
		color, hit := r.shadeRay(ray, 0)

		// Viewport v=0 is the bottom edge; buffer row 0 is the top
		r.setPixel(i, r.height-1-j, color)

		stats.Pixels++
		if hit {
			stats.HitPixels++
		}
	}

	return stats
}

// viewportCoord maps pixel index i in [0, n) onto [0, 1]. A single pixel
// sits at the center of the viewport.
func viewportCoord(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// findNearestIntersection returns the distance and index of the closest
// sphere hit by the ray. Ties keep the sphere added first.
func (r *Renderer) findNearestIntersection(ray core.Ray) (float64, int, bool) {
	closestT := math.Inf(1)
	closestIndex := -1

	for i, sphere := range r.spheres {
		if t, isHit := sphere.Intersect(ray); isHit && t < closestT {
			closestT = t
			closestIndex = i
		}
	}

	return closestT, closestIndex, closestIndex >= 0
}

// inShadow reports whether anything lies between the surface point and a light
// distance away along lightDir
func (r *Renderer) inShadow(point, normal, lightDir core.Vec3, distance float64) bool {
	shadowRay := core.NewRay(point.Add(normal.Multiply(ShadowEpsilon)), lightDir)
	t, _, isHit := r.findNearestIntersection(shadowRay)
	return isHit && t < distance
}

// calculateLighting evaluates ambient plus attenuated Phong diffuse and
// specular terms for every unoccluded light. The sum is modulated by the
// albedo, so the ambient term carries the albedo twice.
func (r *Renderer) calculateLighting(point, normal, viewDir core.Vec3, sphere geometry.Sphere) core.Vec3 {
	albedo := sphere.Albedo()
	finalColor := albedo.Multiply(AmbientStrength)

	for _, light := range r.lights {
		toLight := light.Position.Subtract(point)
		lightDir := toLight.Normalize()
		distance := toLight.Length()

		if r.inShadow(point, normal, lightDir, distance) {
			continue
		}

		radiance := light.Radiance()

		diff := max(normal.Dot(lightDir), 0.0)
		diffuse := radiance.Multiply(diff)

		reflectDir := lightDir.Negate().Reflect(normal)
		spec := math.Pow(max(viewDir.Dot(reflectDir), 0.0), SpecularPower)
		specular := radiance.Multiply(SpecularStrength * spec)

		attenuation := 1.0 / (1.0 + attenuationLinear*distance + attenuationQuadratic*distance*distance)

		finalColor = finalColor.Add(diffuse.Add(specular).Multiply(attenuation))
	}

	return finalColor.MultiplyVec(albedo)
}

// traceRay returns the linear color seen along a ray
func (r *Renderer) traceRay(ray core.Ray, depth int) core.Vec3 {
	color, _ := r.shadeRay(ray, depth)
	return color
}

// shadeRay is traceRay that also reports whether geometry was hit.
// depth is never incremented: there is no reflected ray yet.
func (r *Renderer) shadeRay(ray core.Ray, depth int) (core.Vec3, bool) {
	if depth >= MaxDepth {
		return core.Vec3{}, false
	}

	t, index, isHit := r.findNearestIntersection(ray)
	if !isHit {
		return backgroundGradient(ray), false
	}

	sphere := r.spheres[index]
	hitPoint := ray.At(t)
	normal := sphere.NormalAt(hitPoint)
	viewDir := ray.Direction.Negate().Normalize()

	return r.calculateLighting(hitPoint, normal, viewDir, sphere), true
}

// backgroundGradient blends from white at the bottom to sky blue at the top
func backgroundGradient(ray core.Ray) core.Vec3 {
	// Map direction.y from [-1,1] to [0,1]
	t := 0.5 * (ray.Direction.Y + 1.0)
	return horizonColor.Lerp(skyColor, t)
}

// setPixel gamma-encodes color into the buffer. Out-of-range coordinates are ignored.
func (r *Renderer) setPixel(x, y int, color core.Vec3) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}

	index := (y*r.width + x) * 3
	rgb := EncodeColor(color)
	copy(r.imageData[index:index+3], rgb[:])
}

// EncodeColor gamma-corrects a linear color to the display bytes written to frames
func EncodeColor(color core.Vec3) [3]byte {
	c := color.GammaCorrect(displayGamma)
	return [3]byte{channelByte(c.X), channelByte(c.Y), channelByte(c.Z)}
}

// channelByte scales an encoded channel to [0, 255], truncating
func channelByte(value float64) byte {
	v := 255.0 * value
	if !(v > 0) { // also catches NaN from negative input
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
