package renderer

// Span is a half-open range [Start, End) of the linear pixel index space,
// where index = j*width + i
type Span struct {
	Start int
	End   int
}

// Len returns the number of pixels in the span
func (s Span) Len() int {
	return s.End - s.Start
}

// NewSpanGrid splits totalPixels into consecutive spans of at most spanSize pixels
func NewSpanGrid(totalPixels, spanSize int) []Span {
	if totalPixels <= 0 {
		return nil
	}
	if spanSize <= 0 {
		spanSize = DefaultRenderConfig().SpanSize
	}

	spans := make([]Span, 0, (totalPixels+spanSize-1)/spanSize)
	for start := 0; start < totalPixels; start += spanSize {
		spans = append(spans, Span{
			Start: start,
			End:   min(start+spanSize, totalPixels),
		})
	}

	return spans
}
