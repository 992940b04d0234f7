package pulse

import (
	"errors"
	"log/slog"

	"github.com/oliverbestmann/webgpu/wgpu"
)

const (
	SurfaceColorFormat = wgpu.TextureFormatRGBA8UnormSrgb
	SurfaceDepthFormat = wgpu.TextureFormatDepth32Float
)

// RenderSurface owns an offscreen color and depth attachment of the same size.
// Both attachments are always replaced together.
//
// The color attachment changes on every resize, holders of a reference to it
// must fetch it again once Generation changed.
type RenderSurface struct {
	allocator Allocator

	color Attachment
	depth Attachment

	generation uint64
}

// NewRenderSurface allocates a surface of the given size. Either both
// attachments are allocated or none.
func NewRenderSurface(allocator Allocator, width, height uint32) (*RenderSurface, error) {
	s := &RenderSurface{allocator: allocator}

	if err := s.Resize(width, height); err != nil {
		return nil, err
	}

	return s, nil
}

// Resize replaces the attachments with new ones of the given size. Calling Resize
// with the current size does nothing. If allocation fails, the previous attachments
// stay valid and in use. Resize on a released surface allocates new attachments.
func (s *RenderSurface) Resize(width, height uint32) error {
	if s.color != nil && s.Width() == width && s.Height() == height {
		return nil
	}

	color, depth, err := allocateAttachments(s.allocator, width, height)
	if err != nil {
		return err
	}

	slog.Debug("Resize render surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	s.releaseAttachments()

	s.color = color
	s.depth = depth
	s.generation++

	return nil
}

// FrameBuffer combines the current attachments into a render target. Do not keep
// the result across a call to Resize.
func (s *RenderSurface) FrameBuffer() (FrameBuffer, error) {
	if s.color == nil || s.depth == nil {
		return FrameBuffer{}, &AllocationError{Label: "FrameBuffer", Err: errReleased}
	}

	return FrameBuffer{Color: s.color, Depth: s.depth}, nil
}

// Color returns the current color attachment, e.g. to display it.
func (s *RenderSurface) Color() Attachment {
	return s.color
}

// Generation is incremented each time the attachments are replaced.
func (s *RenderSurface) Generation() uint64 {
	return s.generation
}

func (s *RenderSurface) Width() uint32 {
	if s.color == nil {
		return 0
	}

	return s.color.Width()
}

func (s *RenderSurface) Height() uint32 {
	if s.color == nil {
		return 0
	}

	return s.color.Height()
}

func (s *RenderSurface) Size() (uint32, uint32) {
	return s.Width(), s.Height()
}

// Release frees both attachments.
func (s *RenderSurface) Release() {
	s.releaseAttachments()
}

func (s *RenderSurface) releaseAttachments() {
	if s.color != nil {
		s.color.Release()
		s.color = nil
	}

	if s.depth != nil {
		s.depth.Release()
		s.depth = nil
	}
}

func allocateAttachments(allocator Allocator, width, height uint32) (color, depth Attachment, err error) {
	if width == 0 || height == 0 {
		return nil, nil, &AllocationError{
			Label:  "RenderSurface",
			Width:  width,
			Height: height,
			Err:    errInvalidSize,
		}
	}

	color, err = allocator.CreateAttachment(AttachmentDescriptor{
		Label:  "RenderSurface.Color",
		Format: SurfaceColorFormat,
		Width:  width,
		Height: height,
	})

	if err != nil {
		return nil, nil, asAllocationError(err, "RenderSurface.Color", width, height)
	}

	colorGuard := NewReleaseGuard(color)
	defer colorGuard.Release()

	depth, err = allocator.CreateAttachment(AttachmentDescriptor{
		Label:  "RenderSurface.Depth",
		Format: SurfaceDepthFormat,
		Width:  width,
		Height: height,
	})

	if err != nil {
		return nil, nil, asAllocationError(err, "RenderSurface.Depth", width, height)
	}

	colorGuard.Keep()

	return color, depth, nil
}

func asAllocationError(err error, label string, width, height uint32) error {
	var allocErr *AllocationError
	if errors.As(err, &allocErr) {
		return err
	}

	return &AllocationError{Label: label, Width: width, Height: height, Err: err}
}
