package pulse

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/webgpu/wgpu"
)

type fakeAttachment struct {
	desc     AttachmentDescriptor
	released bool
}

func (f *fakeAttachment) Width() uint32              { return f.desc.Width }
func (f *fakeAttachment) Height() uint32             { return f.desc.Height }
func (f *fakeAttachment) Format() wgpu.TextureFormat { return f.desc.Format }
func (f *fakeAttachment) View() *wgpu.TextureView    { return nil }
func (f *fakeAttachment) Release()                   { f.released = true }

// fakeAllocator hands out fakeAttachments and fails on request.
type fakeAllocator struct {
	allocated []*fakeAttachment

	// fail the allocation of attachments with this format
	failFormat wgpu.TextureFormat
}

var errDeviceLost = errors.New("device lost")

func (f *fakeAllocator) CreateAttachment(desc AttachmentDescriptor) (Attachment, error) {
	if f.failFormat != wgpu.TextureFormatUndefined && desc.Format == f.failFormat {
		return nil, errDeviceLost
	}

	if desc.Width > MaxTextureDimension || desc.Height > MaxTextureDimension {
		return nil, &AllocationError{Label: desc.Label, Width: desc.Width, Height: desc.Height, Err: errDeviceLost}
	}

	attachment := &fakeAttachment{desc: desc}
	f.allocated = append(f.allocated, attachment)
	return attachment, nil
}

func (f *fakeAllocator) live() int {
	var count int
	for _, attachment := range f.allocated {
		if !attachment.released {
			count++
		}
	}

	return count
}

func assertConsistent(t *testing.T, s *RenderSurface) {
	t.Helper()

	fb, err := s.FrameBuffer()
	if err != nil {
		t.Fatalf("FrameBuffer() error = %v", err)
	}

	if fb.Color.Width() != fb.Depth.Width() || fb.Color.Height() != fb.Depth.Height() {
		t.Fatalf("color %dx%d and depth %dx%d differ",
			fb.Color.Width(), fb.Color.Height(), fb.Depth.Width(), fb.Depth.Height())
	}

	if fb.Width() != s.Width() || fb.Height() != s.Height() {
		t.Fatalf("frame buffer %dx%d, surface %dx%d", fb.Width(), fb.Height(), s.Width(), s.Height())
	}
}

func TestNewRenderSurface(t *testing.T) {
	alloc := &fakeAllocator{}

	s, err := NewRenderSurface(alloc, 100, 100)
	if err != nil {
		t.Fatalf("NewRenderSurface() error = %v", err)
	}

	if s.Width() != 100 || s.Height() != 100 {
		t.Fatalf("size = %dx%d, want 100x100", s.Width(), s.Height())
	}

	if alloc.live() != 2 {
		t.Fatalf("live attachments = %d, want 2", alloc.live())
	}

	if s.Color().Format() != SurfaceColorFormat {
		t.Errorf("color format = %v", s.Color().Format())
	}

	fb, _ := s.FrameBuffer()
	if fb.Depth.Format() != SurfaceDepthFormat {
		t.Errorf("depth format = %v", fb.Depth.Format())
	}

	assertConsistent(t, s)
}

func TestNewRenderSurfaceInvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"both zero", 0, 0},
		{"too wide", MaxTextureDimension + 1, 100},
		{"too high", 100, MaxTextureDimension + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &fakeAllocator{}

			s, err := NewRenderSurface(alloc, tt.width, tt.height)
			if !errors.Is(err, ErrAllocation) {
				t.Fatalf("NewRenderSurface() error = %v, want ErrAllocation", err)
			}

			if s != nil {
				t.Fatal("NewRenderSurface() returned a surface on error")
			}

			if alloc.live() != 0 {
				t.Fatalf("live attachments = %d after failed create", alloc.live())
			}

			// a following valid create succeeds
			s, err = NewRenderSurface(alloc, 10, 10)
			if err != nil {
				t.Fatalf("NewRenderSurface() error = %v", err)
			}

			if alloc.live() != 2 {
				t.Fatalf("live attachments = %d, want 2", alloc.live())
			}

			assertConsistent(t, s)
		})
	}
}

func TestNewRenderSurfaceDepthFailureReleasesColor(t *testing.T) {
	alloc := &fakeAllocator{failFormat: SurfaceDepthFormat}

	_, err := NewRenderSurface(alloc, 100, 100)
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("error = %v, want ErrAllocation", err)
	}

	if !errors.Is(err, errDeviceLost) {
		t.Fatalf("error = %v, does not wrap the device error", err)
	}

	var allocErr *AllocationError
	if !errors.As(err, &allocErr) || allocErr.Label != "RenderSurface.Depth" {
		t.Fatalf("error = %v, want AllocationError for the depth attachment", err)
	}

	if len(alloc.allocated) != 1 || !alloc.allocated[0].released {
		t.Fatal("color attachment was not released")
	}
}

func TestRenderSurfaceResize(t *testing.T) {
	alloc := &fakeAllocator{}

	s, err := NewRenderSurface(alloc, 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	before, _ := s.FrameBuffer()
	generation := s.Generation()

	if err := s.Resize(200, 150); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	if s.Width() != 200 || s.Height() != 150 {
		t.Fatalf("size = %dx%d, want 200x150", s.Width(), s.Height())
	}

	after, _ := s.FrameBuffer()
	if after.Color == before.Color || after.Depth == before.Depth {
		t.Fatal("frame buffer still uses the previous attachments")
	}

	if !before.Color.(*fakeAttachment).released || !before.Depth.(*fakeAttachment).released {
		t.Fatal("previous attachments were not released")
	}

	if s.Generation() == generation {
		t.Fatal("Generation() did not change")
	}

	if alloc.live() != 2 {
		t.Fatalf("live attachments = %d, want 2", alloc.live())
	}

	assertConsistent(t, s)
}

func TestRenderSurfaceResizeSameSizeIsNoop(t *testing.T) {
	alloc := &fakeAllocator{}

	s, err := NewRenderSurface(alloc, 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	color := s.Color()
	generation := s.Generation()

	if err := s.Resize(100, 100); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	if len(alloc.allocated) != 2 {
		t.Fatalf("allocations = %d, want 2", len(alloc.allocated))
	}

	if s.Color() != color || s.Generation() != generation {
		t.Fatal("same size resize replaced the attachments")
	}
}

func TestRenderSurfaceResizeFailureKeepsAttachments(t *testing.T) {
	tests := []struct {
		name          string
		failFormat    wgpu.TextureFormat
		width, height uint32
	}{
		{"zero size", wgpu.TextureFormatUndefined, 0, 50},
		{"too large", wgpu.TextureFormatUndefined, MaxTextureDimension * 2, 50},
		{"color fails", SurfaceColorFormat, 300, 300},
		{"depth fails", SurfaceDepthFormat, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &fakeAllocator{}

			s, err := NewRenderSurface(alloc, 100, 80)
			if err != nil {
				t.Fatal(err)
			}

			previous, _ := s.FrameBuffer()

			alloc.failFormat = tt.failFormat

			err = s.Resize(tt.width, tt.height)
			if !errors.Is(err, ErrAllocation) {
				t.Fatalf("Resize() error = %v, want ErrAllocation", err)
			}

			if s.Width() != 100 || s.Height() != 80 {
				t.Fatalf("size = %dx%d, want 100x80", s.Width(), s.Height())
			}

			current, err := s.FrameBuffer()
			if err != nil {
				t.Fatalf("FrameBuffer() error = %v", err)
			}

			if current.Color != previous.Color || current.Depth != previous.Depth {
				t.Fatal("attachments changed after failed resize")
			}

			if alloc.live() != 2 {
				t.Fatalf("live attachments = %d, want 2", alloc.live())
			}

			// the surface recovers once allocation works again
			alloc.failFormat = wgpu.TextureFormatUndefined

			if err := s.Resize(300, 200); err != nil {
				t.Fatalf("Resize() error = %v", err)
			}

			assertConsistent(t, s)
		})
	}
}

func TestRenderSurfaceResizeSequence(t *testing.T) {
	alloc := &fakeAllocator{}

	s, err := NewRenderSurface(alloc, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	sizes := [][2]uint32{{640, 480}, {640, 480}, {1, 1024}, {0, 0}, {1920, 1080}, {8192, 8192}, {3, 2}}

	for _, size := range sizes {
		_ = s.Resize(size[0], size[1])
		assertConsistent(t, s)

		if alloc.live() != 2 {
			t.Fatalf("live attachments = %d, want 2", alloc.live())
		}
	}

	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", s.Width(), s.Height())
	}
}

func TestRenderSurfaceRelease(t *testing.T) {
	alloc := &fakeAllocator{}

	s, err := NewRenderSurface(alloc, 64, 64)
	if err != nil {
		t.Fatal(err)
	}

	s.Release()

	if alloc.live() != 0 {
		t.Fatalf("live attachments = %d after Release", alloc.live())
	}

	if _, err := s.FrameBuffer(); !errors.Is(err, ErrAllocation) {
		t.Fatalf("FrameBuffer() error = %v, want ErrAllocation", err)
	}

	if s.Width() != 0 || s.Height() != 0 {
		t.Fatalf("size = %dx%d after Release", s.Width(), s.Height())
	}

	// a failed resize leaves the surface empty, a valid one allocates again
	if err := s.Resize(0, 64); !errors.Is(err, ErrAllocation) {
		t.Fatalf("Resize() error = %v, want ErrAllocation", err)
	}

	if err := s.Resize(64, 64); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	assertConsistent(t, s)
}

func TestAllocationErrorMessage(t *testing.T) {
	err := &AllocationError{Label: "RenderSurface.Color", Width: 0, Height: 10, Err: errInvalidSize}

	want := `allocate "RenderSurface.Color" (0x10): width and height must be greater than zero`
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
