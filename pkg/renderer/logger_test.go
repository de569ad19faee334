package renderer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	logger.Printf("Resized image buffer to %dx%d\n", 4, 3)

	out := buf.String()
	if !strings.Contains(out, `msg="Resized image buffer to 4x3"`) {
		t.Errorf("Expected formatted message without trailing newline, got %q", out)
	}
	if !strings.Contains(out, "component=renderer") {
		t.Errorf("Expected component attribute, got %q", out)
	}
}

func TestRenderer_UpdateDimensionsLogs(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(2, 2)
	r.SetLogger(NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	r.UpdateDimensions(2, 2)
	if buf.Len() != 0 {
		t.Errorf("Unchanged dimensions should not log, got %q", buf.String())
	}

	r.UpdateDimensions(5, 4)
	if !strings.Contains(buf.String(), "5x4") {
		t.Errorf("Expected resize log entry, got %q", buf.String())
	}
}
