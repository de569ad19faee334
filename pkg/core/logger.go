package core

// Logger is the printf-style sink the renderer reports through. Messages
// carry their own trailing newline.
type Logger interface {
	Printf(format string, args ...interface{})
}
