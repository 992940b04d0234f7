package orion

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/oliverbestmann/brotview/brot"
	"github.com/oliverbestmann/brotview/config"
	"github.com/oliverbestmann/brotview/glimpse"
	"github.com/oliverbestmann/brotview/pulse"
)

type RunOptions struct {
	Config config.Config
}

// Run opens the viewer window and blocks until it is closed.
func Run(opts RunOptions) error {
	conf := opts.Config

	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// create a new window
	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:     conf.Window.Width,
		Height:    conf.Window.Height,
		Title:     conf.Window.Title,
		Resizable: conf.Window.Resizable,
	})

	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	// initialize the webgpu device
	ctx, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()

	view, err := pulse.NewView(ctx, conf.Window.VSync)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}

	// the offscreen surface the fractal is rendered into. It is resized
	// to the panel size on the first frame.
	surface, err := pulse.NewRenderSurface(ctx, conf.Surface.Width, conf.Surface.Height)
	if err != nil {
		return fmt.Errorf("create render surface: %w", err)
	}

	defer surface.Release()

	program, err := brot.NewProgram(ctx, conf.MaxIterations)
	if err != nil {
		return fmt.Errorf("create mandelbrot program: %w", err)
	}

	defer program.Release()

	blit := pulse.NewBlitCommand(ctx)
	defer blit.Release()

	for _, line := range strings.Split(brot.HelpText, "\n") {
		slog.Info("Key binding", slog.String("keys", line))
	}

	loopState := &LoopState{
		Window:  win,
		View:    view,
		Surface: surface,
		Program: program,
		Blit:    blit,
		Camera:  brot.NewCamera(),
		Speed: brot.Speed{
			Pan:        conf.Speed.Pan,
			Zoom:       conf.Speed.Zoom,
			SlowFactor: conf.Speed.SlowFactor,
		},
		TopBarHeight: conf.Window.TopBarHeight,
	}

	return win.Run(func(input glimpse.PollInput) error {
		return loopOnce(loopState, input)
	})
}
