package pulse

import (
	"errors"
	"fmt"
)

// ErrAllocation is matched by every error that reports a failure to
// create or bind a texture or framebuffer.
var ErrAllocation = errors.New("pulse: allocation failed")

var errInvalidSize = errors.New("width and height must be greater than zero")

var errReleased = errors.New("attachments have been released")

// AllocationError describes which attachment could not be allocated.
type AllocationError struct {
	Label  string
	Width  uint32
	Height uint32
	Err    error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate %q (%dx%d): %s", e.Label, e.Width, e.Height, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}
