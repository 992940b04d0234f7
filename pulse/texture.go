package pulse

import (
	"fmt"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	format wgpu.TextureFormat

	width  uint32
	height uint32
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	// Usage of the texture. Defaults to everything a
	// color render target might need.
	Usage wgpu.TextureUsage

	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	usage := opts.Usage
	if usage == 0 {
		usage = wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageRenderAttachment |
			wgpu.TextureUsageCopyDst |
			wgpu.TextureUsageCopySrc
	}

	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: usage,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, fmt.Errorf("create texture view: %w", err)
	}

	t := &Texture{
		texture:     texture,
		textureView: textureView,
		format:      desc.Format,
		width:       desc.Size.Width,
		height:      desc.Size.Height,
	}

	return t, nil
}

// WrapTexture creates a texture from an existing wgpu.Texture and wgpu.TextureView,
// e.g. the current texture of the window surface.
func WrapTexture(texture *wgpu.Texture, textureView *wgpu.TextureView) *Texture {
	return &Texture{
		texture:     texture,
		textureView: textureView,
		format:      texture.GetFormat(),
		width:       texture.GetWidth(),
		height:      texture.GetHeight(),
	}
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) View() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture and its view. You must be sure to
// not use the texture after calling release.
func (t *Texture) Release() {
	t.textureView.Release()
	t.texture.Release()
}
