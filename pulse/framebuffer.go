package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

// FrameBuffer holds everything needed to render into a color
// and a depth attachment of equal size.
type FrameBuffer struct {
	Color Attachment
	Depth Attachment
}

func (fb FrameBuffer) Width() uint32 {
	return fb.Color.Width()
}

func (fb FrameBuffer) Height() uint32 {
	return fb.Color.Height()
}

// RenderPass describes a render pass into the frame buffer that clears
// the color attachment to clearColor and the depth attachment to 1.
func (fb FrameBuffer) RenderPass(label string, clearColor Color) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       fb.Color.View(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearColor.ToWGPU(),
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            fb.Depth.View(),
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	}
}
