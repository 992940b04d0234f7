package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/brotview/brot"
	"github.com/oliverbestmann/brotview/glimpse"
	"github.com/oliverbestmann/brotview/pulse"
)

type LoopState struct {
	Window  glimpse.Window
	View    *pulse.View
	Surface *pulse.RenderSurface
	Program *brot.Program
	Blit    *pulse.BlitCommand

	Camera brot.Camera
	Speed  brot.Speed

	TopBarHeight uint32

	SurfaceWidth  uint32
	SurfaceHeight uint32

	Times FrameTimes
}

func loopOnce(loopState *LoopState, input glimpse.PollInput) error {
	// get surface size for next frame
	surfaceWidth, surfaceHeight := loopState.Window.GetSize()

	if surfaceWidth == 0 || surfaceHeight == 0 {
		// minimized, nothing to draw into. Block until
		// the window changes instead of spinning.
		loopState.Window.WaitEvents()
		return nil
	}

	// reconfigure surface if needed
	if loopState.SurfaceWidth != surfaceWidth || loopState.SurfaceHeight != surfaceHeight {
		slog.Debug("Resize window surface",
			slog.Int("width", int(surfaceWidth)),
			slog.Int("height", int(surfaceHeight)),
		)

		if err := loopState.View.Configure(surfaceWidth, surfaceHeight); err != nil {
			return fmt.Errorf("resize surface: %w", err)
		}

		loopState.SurfaceWidth = surfaceWidth
		loopState.SurfaceHeight = surfaceHeight
	}

	// get the surface texture (the actual screen)
	screen, err := loopState.View.CurrentTexture()
	if err != nil {
		return err
	}

	defer func() {
		if screen != nil {
			screen.Release()
		}
	}()

	// get input after waiting for a texture to keep input lag low
	keys := input()

	logStats := loopState.Times.Tick()
	loopState.Camera.Update(keys, loopState.Times.Delta, loopState.Speed)

	panel := Layout(surfaceWidth, surfaceHeight, loopState.TopBarHeight)

	// keep the offscreen surface at the pixel size of the panel. If that
	// fails, we continue to draw into the previous surface.
	err = loopState.Surface.Resize(panel.Width(), panel.Height())
	if err != nil {
		slog.Warn("Failed to resize render surface",
			slog.Int("width", int(panel.Width())),
			slog.Int("height", int(panel.Height())),
			slog.String("err", err.Error()),
		)
	}

	fb, err := loopState.Surface.FrameBuffer()
	if err != nil {
		return fmt.Errorf("get frame buffer: %w", err)
	}

	if err := loopState.Program.Draw(fb, loopState.Camera); err != nil {
		return fmt.Errorf("draw mandelbrot: %w", err)
	}

	// show the offscreen surface within the panel
	err = loopState.Blit.Draw(screen, loopState.Surface.Color(), pulse.BlitOptions{
		Region:     panel,
		ClearColor: pulse.ColorBlack,
	})

	if err != nil {
		return fmt.Errorf("draw to screen: %w", err)
	}

	// present the rendered image
	loopState.View.Present()

	// only the view needs a release after a successful present
	screen.View().Release()
	screen = nil

	if logStats {
		width, height := loopState.Surface.Size()

		slog.Info("Frame stats",
			slog.String("fps", fmt.Sprintf("%1.2f", loopState.Times.FPS())),
			slog.Duration("time", loopState.Times.AverageDuration),
			slog.Duration("max", loopState.Times.MaxDuration),
			slog.String("res", fmt.Sprintf("%dx%d", width, height)),
		)
	}

	return nil
}
