package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

// Attachment is a 2D image on the gpu that can be bound as a render target.
type Attachment interface {
	Width() uint32
	Height() uint32
	Format() wgpu.TextureFormat

	// View returns the texture view to bind in a render pass
	View() *wgpu.TextureView

	Release()
}

type AttachmentDescriptor struct {
	Label  string
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
}

// Allocator creates attachments. *Context is the Allocator backed by the gpu.
type Allocator interface {
	CreateAttachment(desc AttachmentDescriptor) (Attachment, error)
}
