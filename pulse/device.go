package pulse

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// MaxTextureDimension is the largest width or height of a texture that
// every WebGPU device supports.
const MaxTextureDimension = 8192

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

func New(sd *wgpu.SurfaceDescriptor) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// create a Surface based on the window
	st.Surface = instance.CreateSurface(sd)

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    st.Surface,
	})

	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	// get a Device with the default settings
	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

// CreateAttachment allocates a new texture that can be used as a render target.
func (d *Context) CreateAttachment(desc AttachmentDescriptor) (Attachment, error) {
	var invalid error
	switch {
	case desc.Width == 0 || desc.Height == 0:
		invalid = errInvalidSize
	case desc.Width > MaxTextureDimension || desc.Height > MaxTextureDimension:
		invalid = fmt.Errorf("exceeds max texture dimension %d", MaxTextureDimension)
	}

	// reject before touching the device
	if invalid != nil {
		return nil, &AllocationError{
			Label:  desc.Label,
			Width:  desc.Width,
			Height: desc.Height,
			Err:    invalid,
		}
	}

	texture, err := NewTexture(d, NewTextureOptions{
		Label:  desc.Label,
		Format: desc.Format,
		Width:  desc.Width,
		Height: desc.Height,
		Usage:  attachmentUsage(desc.Format),
	})

	if err != nil {
		return nil, &AllocationError{
			Label:  desc.Label,
			Width:  desc.Width,
			Height: desc.Height,
			Err:    err,
		}
	}

	return texture, nil
}

func attachmentUsage(format wgpu.TextureFormat) wgpu.TextureUsage {
	if isDepthFormat(format) {
		return wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding
	}

	return wgpu.TextureUsageRenderAttachment |
		wgpu.TextureUsageTextureBinding |
		wgpu.TextureUsageCopySrc
}

func isDepthFormat(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatDepth16Unorm,
		wgpu.TextureFormatDepth24Plus,
		wgpu.TextureFormatDepth24PlusStencil8,
		wgpu.TextureFormatDepth32Float,
		wgpu.TextureFormatDepth32FloatStencil8:
		return true
	}

	return false
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
