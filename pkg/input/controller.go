// Package input translates keyboard and pointer events into camera motion.
package input

import (
	"strings"

	"github.com/df07/interactive-raytracer/pkg/renderer"
	"github.com/pkg/errors"
)

// ErrUnknownKey is returned by ParseKey for names that map to no movement
var ErrUnknownKey = errors.New("unknown key")

// Key is a camera movement key
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

var keyNames = map[string]Key{
	"w":          KeyForward,
	"arrowup":    KeyForward,
	"s":          KeyBackward,
	"arrowdown":  KeyBackward,
	"a":          KeyLeft,
	"arrowleft":  KeyLeft,
	"d":          KeyRight,
	"arrowright": KeyRight,
	"space":      KeyUp,
	"shift":      KeyDown,
}

// ParseKey maps a browser/GLFW style key name to a movement key
func ParseKey(name string) (Key, error) {
	if name == " " { // browsers report the space bar as a literal space
		return KeyUp, nil
	}
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownKey, "%q", name)
	}
	return key, nil
}

// ParseKeys maps several key names, failing on the first unknown one
func ParseKeys(names []string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, name := range names {
		key, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}

// Controller owns the pointer state of one input session and drives a camera.
// It is not safe for concurrent use; a session feeds it from one goroutine.
type Controller struct {
	camera     *renderer.Camera
	lastX      float64
	lastY      float64
	firstMouse bool
}

// NewController creates a controller for camera. The first pointer event
// only records a position.
func NewController(camera *renderer.Camera) *Controller {
	return &Controller{
		camera:     camera,
		firstMouse: true,
	}
}

// Camera returns the controlled camera
func (c *Controller) Camera() *renderer.Camera {
	return c.camera
}

// ProcessKeys moves the camera for every held key. deltaTime is the
// elapsed frame time in seconds; negative values are treated as zero.
// Returns whether the camera moved.
func (c *Controller) ProcessKeys(keys []Key, deltaTime float64) bool {
	if deltaTime <= 0 || len(keys) == 0 {
		return false
	}

	moved := false
	for _, key := range keys {
		switch key {
		case KeyForward:
			c.camera.MoveForward(deltaTime)
		case KeyBackward:
			c.camera.MoveBackward(deltaTime)
		case KeyLeft:
			c.camera.MoveLeft(deltaTime)
		case KeyRight:
			c.camera.MoveRight(deltaTime)
		case KeyUp:
			c.camera.MoveUp(deltaTime)
		case KeyDown:
			c.camera.MoveDown(deltaTime)
		default:
			continue
		}
		moved = true
	}
	return moved
}

// ProcessMouse rotates the camera by the pointer delta since the previous
// event. Screen y grows downwards, so the pitch delta is reversed.
// Returns whether the camera rotated.
func (c *Controller) ProcessMouse(x, y float64) bool {
	if c.firstMouse {
		c.lastX = x
		c.lastY = y
		c.firstMouse = false
		return false
	}

	xOffset := x - c.lastX
	yOffset := c.lastY - y
	c.lastX = x
	c.lastY = y

	if xOffset == 0 && yOffset == 0 {
		return false
	}
	c.camera.Rotate(xOffset, yOffset)
	return true
}

// ResetMouse makes the next pointer event behave like the first one,
// e.g. after the pointer left and re-entered the display
func (c *Controller) ResetMouse() {
	c.firstMouse = true
}
