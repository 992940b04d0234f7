package pulse

import (
	"github.com/oliverbestmann/webgpu/wgpu"
)

var ColorBlack = Color{A: 1}

// Color is a straight rgba color in linear rgb color space.
type Color struct {
	R, G, B, A float32
}

func (c Color) ToWGPU() wgpu.Color {
	return wgpu.Color{
		R: float64(c.R),
		G: float64(c.G),
		B: float64(c.B),
		A: float64(c.A),
	}
}
