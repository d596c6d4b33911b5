package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestIO(t *testing.T, rom ...byte) (*IO, *internal.C8VM) {
	t.Helper()
	vm := internal.New(internal.DefaultConfig())
	assert.NoError(t, vm.Load(rom))
	cfg := runner.DefaultConfig()
	cfg.Logger = log.NewTestLogger(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	assert.NoError(t, screen.Init())
	screen.SetSize(internal.ScreenWidth, internal.ScreenHeight+1)
	t.Cleanup(screen.Fini)

	io := NewIO(runner.New(vm, cfg))
	io.screen = screen
	return io, vm
}

func TestDraw(t *testing.T) {
	// LD I, font 0; DRW V0, V0, 5
	io, _ := newTestIO(t, 0xA0, 0x50, 0xD0, 0x05)
	assert.NoError(t, io.runner.RunFrame())
	io.draw()

	r, _, _, _ := io.screen.GetContent(0, 0)
	assert.Equal(t, '█', r)
	r, _, _, _ = io.screen.GetContent(1, 1)
	assert.Equal(t, ' ', r)
	r, _, _, _ = io.screen.GetContent(3, 1)
	assert.Equal(t, '█', r)
}

func TestHandleEvent(t *testing.T) {
	io, vm := newTestIO(t, 0x12, 0x00)
	now := time.Now()

	quit := io.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), now)
	assert.False(t, quit)
	assert.True(t, vm.KeyPressed(0x5))

	quit = io.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), now)
	assert.False(t, quit)

	io.releaseKeys(now.Add(releaseAfter / 2))
	assert.True(t, vm.KeyPressed(0x5))
	io.releaseKeys(now.Add(releaseAfter))
	assert.False(t, vm.KeyPressed(0x5))

	assert.True(t, io.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now))
	assert.True(t, io.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), now))
}

func TestLoopStopsOnCancel(t *testing.T) {
	io, _ := newTestIO(t, 0x12, 0x00)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, io.Loop(ctx))
}

func TestLoopStopsOnEscape(t *testing.T) {
	io, _ := newTestIO(t, 0x12, 0x00)
	io.screen.(tcell.SimulationScreen).InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, io.Loop(ctx))
	assert.True(t, ctx.Err() == nil)
}
