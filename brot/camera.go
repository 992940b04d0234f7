package brot

import (
	"time"

	"github.com/oliverbestmann/brotview/glimpse"
	"github.com/oliverbestmann/brotview/glm"
)

// minZoom keeps the zoom positive, even for very long frames.
const minZoom = 1e-7

// Keys is the keyboard state the camera reacts to. It is implemented
// by glimpse.KeyState and *glimpse.Keyboard.
type Keys interface {
	IsPressed(key glimpse.Key) bool
	Shift() bool
}

// Speed configures how fast the camera moves, per second and relative to the zoom.
type Speed struct {
	Pan  float32
	Zoom float32

	// applied to pan and zoom while shift is held
	SlowFactor float32
}

var DefaultSpeed = Speed{Pan: 0.75, Zoom: 0.5, SlowFactor: 0.2}

// Camera is the part of the complex plane that is visible. A smaller
// zoom shows a smaller region.
type Camera struct {
	Position glm.Vec2f
	Zoom     float32
}

func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// Update moves the camera according to the pressed keys:
// W/A/S/D pan, E zooms in, Q zooms out and R resets the camera.
func (c *Camera) Update(keys Keys, dt time.Duration, speed Speed) {
	seconds := float32(dt.Seconds())

	pan := speed.Pan * seconds * c.Zoom
	zoom := speed.Zoom * seconds * c.Zoom

	if keys.Shift() {
		pan *= speed.SlowFactor
		zoom *= speed.SlowFactor
	}

	var direction glm.Vec2f

	if keys.IsPressed(glimpse.KeyW) {
		direction = direction.Add(glm.Vec2f{0, 1})
	}

	if keys.IsPressed(glimpse.KeyS) {
		direction = direction.Sub(glm.Vec2f{0, 1})
	}

	if keys.IsPressed(glimpse.KeyD) {
		direction = direction.Add(glm.Vec2f{1, 0})
	}

	if keys.IsPressed(glimpse.KeyA) {
		direction = direction.Sub(glm.Vec2f{1, 0})
	}

	c.Position = c.Position.Add(direction.MulScalar(pan))

	if keys.IsPressed(glimpse.KeyE) {
		c.Zoom -= zoom
	}

	if keys.IsPressed(glimpse.KeyQ) {
		c.Zoom += zoom
	}

	c.Zoom = max(c.Zoom, minZoom)

	if keys.IsPressed(glimpse.KeyR) {
		*c = NewCamera()
	}
}

// HelpText describes the key bindings of Update.
const HelpText = "W: Up; A: Left; S: Down; D: Right\n" +
	"Q: Zoom Out; E: Zoom In\n" +
	"R: Reset Camera\n" +
	"Hold Shift to move slower"
