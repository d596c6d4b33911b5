package sdl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/runner"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	pixelSize = 20

	screenColor = 0x1A237E
	soundColor  = 0x283593 // background while the sound timer is active
	spriteColor = 0x9FA8DA

	frameTime = time.Second / 60
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	runner *runner.Runner
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(r *runner.Runner) *IO {
	return &IO{
		runner: r,
	}
}

// SetupWindow initialises and sets up the main SDL window. It has to be
// called from the main OS thread.
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*pixelSize, internal.ScreenHeight*pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	return io.surface.FillRect(nil, screenColor)
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop runs the program and renders it until the window is closed, Escape is
// pressed or the context is cancelled. Closing the window is a clean stop and
// returns nil.
func (io *IO) Loop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- io.runner.Run(ctx) }()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
		}

		if quit := io.pollEvents(); quit {
			cancel()
			return <-done
		}
		if err := io.draw(); err != nil {
			cancel()
			return errors.Join(err, <-done)
		}
	}
}

// pollEvents forwards keyboard events to the VM and reports whether the user
// asked to quit.
func (io *IO) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			keycode := t.Keysym.Scancode
			if keycode == sdl.SCANCODE_ESCAPE {
				return true
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				io.setKeymask(keycode, true)
			case sdl.KEYUP:
				io.setKeymask(keycode, false)
			}
		case *sdl.QuitEvent:
			return true
		}
	}
	return false
}

// Draws the current framebuffer snapshot on screen
func (io *IO) draw() error {
	background := uint32(screenColor)
	if io.runner.Sound() {
		background = soundColor
	}
	if err := io.surface.FillRect(nil, background); err != nil {
		return fmt.Errorf("clearing window: %w", err)
	}

	pixels := io.runner.Snapshot()
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if !pixels[h][w] {
				continue
			}
			rect := &sdl.Rect{X: w * pixelSize, Y: h * pixelSize, W: pixelSize, H: pixelSize}
			if err := io.surface.FillRect(rect, spriteColor); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}
	return io.window.UpdateSurface()
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}

func (io *IO) setKeymask(keycode sdl.Scancode, pressed bool) {
	code := keymap(keycode)
	if code != -1 {
		io.runner.SetKey(uint8(code), pressed)
	}
}
