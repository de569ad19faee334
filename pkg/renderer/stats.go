package renderer

import "time"

// RenderStats contains statistics about one Render call
type RenderStats struct {
	Width      int           // Image width at render time
	Height     int           // Image height at render time
	Pixels     int           // Total number of pixels rendered
	HitPixels  int           // Pixels whose primary ray hit a sphere
	Spans      int           // Number of work units
	NumWorkers int           // Parallel workers used
	Duration   time.Duration // Wall time of the render
}

// SpanStats tracks what a single span produced
type SpanStats struct {
	Pixels    int
	HitPixels int
}

// merge folds span statistics into the frame totals
func (rs *RenderStats) merge(s SpanStats) {
	rs.Pixels += s.Pixels
	rs.HitPixels += s.HitPixels
}

// BackgroundPixels returns the number of pixels that showed the background gradient
func (rs RenderStats) BackgroundPixels() int {
	return rs.Pixels - rs.HitPixels
}

// PixelsPerSecond returns the render throughput
func (rs RenderStats) PixelsPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.Pixels) / rs.Duration.Seconds()
}
