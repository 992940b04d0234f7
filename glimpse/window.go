package glimpse

import "github.com/oliverbestmann/webgpu/wgpu"

// PollInput processes all pending window events and returns the
// keyboard state after processing them.
type PollInput func() KeyState

type Window interface {
	// GetSize returns the size of the drawable area in pixels
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// WaitEvents blocks until a window event arrives or a short
	// timeout passed, then processes the pending events.
	WaitEvents()

	Run(render func(input PollInput) error) error
	Terminate()
}

type WindowOptions struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
}
