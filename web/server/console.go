package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/df07/interactive-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	sessionID   string
	consoleChan chan<- ConsoleMessage
	logger      *slog.Logger
}

// NewWebLogger creates a new web logger for a specific session. Messages
// also go to logger, or slog.Default() when logger is nil.
func NewWebLogger(sessionID string, consoleChan chan<- ConsoleMessage, logger *slog.Logger) core.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebLogger{
		sessionID:   sessionID,
		consoleChan: consoleChan,
		logger:      logger,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	wl.logger.Info(strings.TrimRight(message, "\n"), "session", wl.sessionID)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
