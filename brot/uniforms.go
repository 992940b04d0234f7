package brot

import "github.com/oliverbestmann/brotview/glm"

// Uniforms matches the uniform block in brot.wgsl.
type Uniforms struct {
	Position   glm.Vec2f
	Screen     glm.Vec2f
	Zoom       float32
	Iterations uint32
	_          [2]uint32
}

func NewUniforms(camera Camera, width, height, iterations uint32) Uniforms {
	return Uniforms{
		Position:   camera.Position,
		Screen:     glm.Vec2u{max(width, 1), max(height, 1)}.ToVec2f(),
		Zoom:       camera.Zoom,
		Iterations: iterations,
	}
}
