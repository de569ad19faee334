package renderer

import (
	"math"

	"github.com/df07/interactive-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// defaultYaw points the camera down -Z
	defaultYaw = -90.0
	maxPitch   = 89.0
)

// CameraConfig contains the initial pose and viewport parameters of a camera
type CameraConfig struct {
	Position         core.Vec3 // Eye position
	Target           core.Vec3 // Look-at point (only NewCameraLookingAt derives orientation from it)
	Up               core.Vec3 // World up direction
	VFov             float64   // Vertical field of view in degrees
	AspectRatio      float64   // Width / height
	MovementSpeed    float64   // World units per second
	MouseSensitivity float64   // Degrees per pointer unit
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:         core.NewVec3(0, 0, 5),
		Target:           core.NewVec3(0, 0, 0),
		Up:               core.NewVec3(0, 1, 0),
		VFov:             45.0,
		AspectRatio:      16.0 / 9.0,
		MovementSpeed:    5.0,
		MouseSensitivity: 0.1,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Position != zero {
		result.Position = override.Position
	}
	if override.Target != zero {
		result.Target = override.Target
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.MovementSpeed != 0 {
		result.MovementSpeed = override.MovementSpeed
	}
	if override.MouseSensitivity != 0 {
		result.MouseSensitivity = override.MouseSensitivity
	}

	return result
}

// Camera is a free-flying yaw/pitch camera that generates primary rays.
// Every mutator recomputes the viewport basis before returning, so the
// state read by GetRay is never stale.
type Camera struct {
	position core.Vec3
	front    core.Vec3
	up       core.Vec3
	right    core.Vec3
	worldUp  core.Vec3

	yaw   float64 // degrees
	pitch float64 // degrees, clamped to [-89, 89]

	movementSpeed    float64
	mouseSensitivity float64
	fov              float64 // vertical, degrees
	aspectRatio      float64

	viewportHeight float64
	viewportWidth  float64
	focalLength    float64

	horizontal      core.Vec3
	vertical        core.Vec3
	lowerLeftCorner core.Vec3
}

// NewCamera creates a camera at config.Position looking down -Z.
// The initial orientation is always yaw=-90, pitch=0; config.Target is
// ignored here. Use NewCameraLookingAt to aim at the target instead.
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{
		position:         config.Position,
		worldUp:          config.Up,
		yaw:              defaultYaw,
		pitch:            0,
		movementSpeed:    config.MovementSpeed,
		mouseSensitivity: config.MouseSensitivity,
		fov:              config.VFov,
		aspectRatio:      config.AspectRatio,
		focalLength:      1.0,
	}

	c.updateViewport()
	c.updateCameraVectors()
	return c
}

// NewCameraLookingAt creates a camera whose yaw and pitch are derived from
// the direction towards config.Target
func NewCameraLookingAt(config CameraConfig) *Camera {
	c := NewCamera(config)

	direction := config.Target.Subtract(config.Position)
	if direction.LengthSquared() == 0 {
		return c
	}
	direction = direction.Normalize()

	c.yaw = radiansToDegrees(math.Atan2(direction.Z, direction.X))
	c.pitch = clampPitch(radiansToDegrees(math.Asin(direction.Y)))
	c.updateCameraVectors()
	return c
}

// updateViewport derives the viewport extent from the field of view and aspect ratio
func (c *Camera) updateViewport() {
	theta := degreesToRadians(c.fov)
	h := math.Tan(theta / 2)
	c.viewportHeight = 2.0 * h
	c.viewportWidth = c.aspectRatio * c.viewportHeight
}

// updateCameraVectors recomputes the orthonormal basis and the viewport
// vectors from yaw, pitch and position
func (c *Camera) updateCameraVectors() {
	yaw := degreesToRadians(c.yaw)
	pitch := degreesToRadians(c.pitch)

	c.front = core.NewVec3(
		math.Cos(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw)*math.Cos(pitch),
	).Normalize()

	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()

	c.horizontal = c.right.Multiply(c.viewportWidth)
	c.vertical = c.up.Multiply(c.viewportHeight)
	c.lowerLeftCorner = c.position.
		Subtract(c.horizontal.Multiply(0.5)).
		Subtract(c.vertical.Multiply(0.5)).
		Add(c.front.Multiply(c.focalLength))
}

// GetRay generates a ray through viewport coordinates (u, v) where 0 <= u,v <= 1.
// u=0 is the left edge and v=0 the bottom edge of the viewport.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.position)

	return core.NewRay(c.position, direction)
}

func (c *Camera) translate(axis core.Vec3, deltaTime float64) {
	c.position = c.position.Add(axis.Multiply(c.movementSpeed * deltaTime))
	c.updateCameraVectors()
}

// MoveForward moves along the view direction. deltaTime is in seconds and must not be negative.
func (c *Camera) MoveForward(deltaTime float64) { c.translate(c.front, deltaTime) }

// MoveBackward moves against the view direction
func (c *Camera) MoveBackward(deltaTime float64) { c.translate(c.front.Negate(), deltaTime) }

// MoveLeft strafes left
func (c *Camera) MoveLeft(deltaTime float64) { c.translate(c.right.Negate(), deltaTime) }

// MoveRight strafes right
func (c *Camera) MoveRight(deltaTime float64) { c.translate(c.right, deltaTime) }

// MoveUp moves along the world up vector
func (c *Camera) MoveUp(deltaTime float64) { c.translate(c.worldUp, deltaTime) }

// MoveDown moves against the world up vector
func (c *Camera) MoveDown(deltaTime float64) { c.translate(c.worldUp.Negate(), deltaTime) }

// Rotate applies raw pointer deltas scaled by the mouse sensitivity.
// Yaw is unbounded; pitch is clamped to [-89, 89].
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.yaw += deltaYaw * c.mouseSensitivity
	c.pitch = clampPitch(c.pitch + deltaPitch*c.mouseSensitivity)
	c.updateCameraVectors()
}

// SetAspectRatio changes the viewport shape, e.g. after the display was resized
func (c *Camera) SetAspectRatio(aspectRatio float64) {
	c.aspectRatio = aspectRatio
	c.updateViewport()
	c.updateCameraVectors()
}

// GetViewMatrix returns the look-from/look-at view matrix for rasterizing
// collaborators. The ray tracing path does not use it.
func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	eye := toMgl(c.position)
	center := toMgl(c.position.Add(c.front))
	return mgl32.LookAtV(eye, center, toMgl(c.up))
}

// Position returns the eye position
func (c *Camera) Position() core.Vec3 { return c.position }

// Front returns the unit view direction
func (c *Camera) Front() core.Vec3 { return c.front }

// Up returns the camera's unit up vector
func (c *Camera) Up() core.Vec3 { return c.up }

// Right returns the camera's unit right vector
func (c *Camera) Right() core.Vec3 { return c.right }

// Yaw returns the yaw angle in degrees
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the pitch angle in degrees
func (c *Camera) Pitch() float64 { return c.pitch }

// FieldOfView returns the vertical field of view in degrees
func (c *Camera) FieldOfView() float64 { return c.fov }

// AspectRatio returns the viewport aspect ratio
func (c *Camera) AspectRatio() float64 { return c.aspectRatio }

// MovementSpeed returns the translation speed in world units per second
func (c *Camera) MovementSpeed() float64 { return c.movementSpeed }

func clampPitch(pitch float64) float64 {
	return max(-maxPitch, min(maxPitch, pitch))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

func radiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

func toMgl(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
