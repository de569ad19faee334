package renderer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/df07/interactive-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of a structured slog logger
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger that writes through slog.Default()
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: slog.Default()}
}

// NewSlogLogger adapts an existing slog logger to core.Logger
func NewSlogLogger(logger *slog.Logger) core.Logger {
	return &DefaultLogger{logger: logger}
}

// Printf logs the formatted message at info level
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	dl.logger.Info(message, "component", "renderer")
}
