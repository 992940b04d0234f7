package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// View manages the configuration of the window surface.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration
}

func NewView(dev *Context, vsync bool) (*View, error) {
	caps := dev.Surface.GetCapabilities(dev.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, errors.New("surface is not compatible with adapter")
	}

	format := caps.Formats[0]

	// the offscreen surface is srgb encoded, prefer an srgb
	// surface to keep the colors intact when copying
	if slices.Contains(caps.Formats, wgpu.TextureFormatBGRA8UnormSrgb) {
		format = wgpu.TextureFormatBGRA8UnormSrgb
	}

	presentMode := wgpu.PresentModeFifo
	if !vsync && slices.Contains(caps.PresentModes, wgpu.PresentModeImmediate) {
		presentMode = wgpu.PresentModeImmediate
	}

	st := &View{Context: dev}

	st.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],

		// try to reduce input latency
		DesiredMaximumFrameLatency: 1,
	}

	return st, nil
}

// Configure resizes the window surface. Sizes of zero are ignored,
// e.g. while the window is minimized.
func (vs *View) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Device, vs.surfaceConfig)

	return nil
}

// CurrentTexture returns the texture to draw the next frame into. The caller
// must either present or release the texture.
func (vs *View) CurrentTexture() (*Texture, error) {
	surface, err := vs.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}

	surfaceView, err := surface.CreateView(nil)
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("create view of current texture: %w", err)
	}

	return WrapTexture(surface, surfaceView), nil
}

func (vs *View) Present() {
	vs.Surface.Present()
}
