// Package term renders a CHIP-8 program in a terminal.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/runner"
)

const (
	frameTime = time.Second / 60

	// Terminals only report key presses, a key counts as released once it
	// has not been reported for this long.
	releaseAfter = 100 * time.Millisecond
)

var (
	screenStyle = tcell.StyleDefault.Background(tcell.NewHexColor(0x1A237E))
	spriteStyle = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x9FA8DA)).Background(tcell.NewHexColor(0x1A237E))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// keymap maps the QWERTY block 1234/QWER/ASDF/ZXCV to the CHIP-8 keypad.
var keymap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// IO is the terminal front end
type IO struct {
	screen tcell.Screen
	runner *runner.Runner

	pressedAt [internal.KeyCount]time.Time
}

// NewIO returns a new I/O instance for the terminal frontend
func NewIO(r *runner.Runner) *IO {
	return &IO{
		runner: r,
	}
}

// Setup takes over the terminal.
func (io *IO) Setup() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	io.screen = screen
	io.screen.HideCursor()
	io.screen.Clear()
	return nil
}

// Destroy restores the terminal
func (io *IO) Destroy() {
	if io.screen != nil {
		io.screen.Fini()
	}
}

// Loop runs the program and renders it until Escape or Ctrl-C is pressed or
// the context is cancelled, both of which are a clean stop.
func (io *IO) Loop(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- io.runner.Run(ctx) }()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go io.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			return err

		case ev := <-events:
			if io.handleEvent(ev, time.Now()) {
				cancel()
				return <-done
			}

		case now := <-ticker.C:
			io.releaseKeys(now)
			io.draw()
		}
	}
}

// handleEvent forwards key presses to the VM and reports whether the user
// asked to quit.
func (io *IO) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return false
		}
		key, ok := keymap[ev.Rune()]
		if !ok {
			return false
		}
		io.pressedAt[key] = now
		io.runner.SetKey(key, true)

	case *tcell.EventResize:
		io.screen.Sync()
	}
	return false
}

func (io *IO) releaseKeys(now time.Time) {
	for key, at := range io.pressedAt {
		if !at.IsZero() && now.Sub(at) >= releaseAfter {
			io.pressedAt[key] = time.Time{}
			io.runner.SetKey(uint8(key), false)
		}
	}
}

// draw renders the framebuffer snapshot, one cell per pixel, with a status
// line below it.
func (io *IO) draw() {
	pixels := io.runner.Snapshot()
	for y := 0; y < internal.ScreenHeight; y++ {
		for x := 0; x < internal.ScreenWidth; x++ {
			if pixels[y][x] {
				io.screen.SetContent(x, y, '█', nil, spriteStyle)
			} else {
				io.screen.SetContent(x, y, ' ', nil, screenStyle)
			}
		}
	}

	status := "         "
	if io.runner.Sound() {
		status = "♪ beep ♪ "
	}
	for x, r := range []rune(status + "esc: quit") {
		io.screen.SetContent(x, internal.ScreenHeight, r, nil, statusStyle)
	}
	io.screen.Show()
}
