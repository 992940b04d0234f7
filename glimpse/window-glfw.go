package glimpse

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

type glfwWindow struct {
	win      *glfw.Window
	keyboard *Keyboard
}

func NewWindow(opts WindowOptions) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{
		win:      window,
		keyboard: NewKeyboard(),
	}

	configureInput(window, w.keyboard)

	return w, nil
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(max(width, 0)), uint32(max(height, 0))
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) WaitEvents() {
	glfw.WaitEventsTimeout(0.1)
}

func (g *glfwWindow) Terminate() {
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(render func(input PollInput) error) error {
	var pollInput PollInput = func() KeyState {
		glfw.PollEvents()
		return g.keyboard.Snapshot()
	}

	for !g.win.ShouldClose() {
		if err := render(pollInput); err != nil {
			return err
		}
	}

	return nil
}

func configureInput(window *glfw.Window, keyboard *Keyboard) {
	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		key, ok := keyOf(glfwKey, scancode)
		if !ok {
			return
		}

		keyboard.SetKey(key, action == glfw.Press)
	})

	window.SetFocusCallback(func(_win *glfw.Window, focused bool) {
		if !focused {
			// we will not see the release events of keys
			// that are let go while the window is unfocused
			keyboard.Reset()
		}
	})
}

func keyOf(glfwKey glfw.Key, scancode int) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.Int("key", int(glfwKey)),
			slog.String("name", glfw.GetKeyName(glfwKey, scancode)),
		)
	}

	return
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyA: KeyA,
	glfw.KeyB: KeyB,
	glfw.KeyC: KeyC,
	glfw.KeyD: KeyD,
	glfw.KeyE: KeyE,
	glfw.KeyF: KeyF,
	glfw.KeyG: KeyG,
	glfw.KeyH: KeyH,
	glfw.KeyI: KeyI,
	glfw.KeyJ: KeyJ,
	glfw.KeyK: KeyK,
	glfw.KeyL: KeyL,
	glfw.KeyM: KeyM,
	glfw.KeyN: KeyN,
	glfw.KeyO: KeyO,
	glfw.KeyP: KeyP,
	glfw.KeyQ: KeyQ,
	glfw.KeyR: KeyR,
	glfw.KeyS: KeyS,
	glfw.KeyT: KeyT,
	glfw.KeyU: KeyU,
	glfw.KeyV: KeyV,
	glfw.KeyW: KeyW,
	glfw.KeyX: KeyX,
	glfw.KeyY: KeyY,
	glfw.KeyZ: KeyZ,

	glfw.Key0: Key0,
	glfw.Key1: Key1,
	glfw.Key2: Key2,
	glfw.Key3: Key3,
	glfw.Key4: Key4,
	glfw.Key5: Key5,
	glfw.Key6: Key6,
	glfw.Key7: Key7,
	glfw.Key8: Key8,
	glfw.Key9: Key9,

	glfw.KeySpace:     KeySpace,
	glfw.KeyEnter:     KeyEnter,
	glfw.KeyEscape:    KeyEscape,
	glfw.KeyTab:       KeyTab,
	glfw.KeyBackspace: KeyBackspace,
	glfw.KeyInsert:    KeyInsert,
	glfw.KeyDelete:    KeyDelete,
	glfw.KeyHome:      KeyHome,
	glfw.KeyEnd:       KeyEnd,
	glfw.KeyPageUp:    KeyPageUp,
	glfw.KeyPageDown:  KeyPageDown,

	glfw.KeyUp:    KeyArrowUp,
	glfw.KeyDown:  KeyArrowDown,
	glfw.KeyLeft:  KeyArrowLeft,
	glfw.KeyRight: KeyArrowRight,

	glfw.KeyF1:  KeyF1,
	glfw.KeyF2:  KeyF2,
	glfw.KeyF3:  KeyF3,
	glfw.KeyF4:  KeyF4,
	glfw.KeyF5:  KeyF5,
	glfw.KeyF6:  KeyF6,
	glfw.KeyF7:  KeyF7,
	glfw.KeyF8:  KeyF8,
	glfw.KeyF9:  KeyF9,
	glfw.KeyF10: KeyF10,
	glfw.KeyF11: KeyF11,
	glfw.KeyF12: KeyF12,

	glfw.KeyLeftShift:    KeyLeftShift,
	glfw.KeyRightShift:   KeyRightShift,
	glfw.KeyLeftControl:  KeyLeftControl,
	glfw.KeyRightControl: KeyRightControl,
	glfw.KeyLeftAlt:      KeyLeftAlt,
	glfw.KeyRightAlt:     KeyRightAlt,
	glfw.KeyLeftSuper:    KeyLeftSuper,
	glfw.KeyRightSuper:   KeyRightSuper,
}
