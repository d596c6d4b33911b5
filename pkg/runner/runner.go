// Package runner drives a CHIP-8 VM for a front end: it executes
// instructions at a fixed rate, ticks the timers at 60 Hz and hands out
// framebuffer snapshots between instructions.
package runner

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/log"
)

// Runner defaults
const (
	DefaultInstructionsPerSecond = 700
	DefaultTimerHz               = 60
)

// Config contains the runner configuration.
type Config struct {
	InstructionsPerSecond int
	TimerHz               int // timer decrements per second, also the frame rate

	Logger *log.Logger
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{
		InstructionsPerSecond: DefaultInstructionsPerSecond,
		TimerHz:               DefaultTimerHz,
	}
}

// Runner schedules a VM. Instructions and timer ticks run on a single
// goroutine; the front end talks to the runner from its own goroutine.
type Runner struct {
	cfg    Config
	logger *log.Logger

	mu     sync.Mutex // guards vm against snapshots and reloads mid cycle
	vm     *internal.C8VM
	budget int // instruction budget carried over between frames, in 1/TimerHz units
}

// New returns a runner for a VM that has a program loaded.
func New(vm *internal.C8VM, cfg Config) *Runner {
	def := DefaultConfig()
	if cfg.InstructionsPerSecond <= 0 {
		cfg.InstructionsPerSecond = def.InstructionsPerSecond
	}
	if cfg.TimerHz <= 0 {
		cfg.TimerHz = def.TimerHz
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		vm:     vm,
	}
}

// Run executes the program until the context is cancelled, which is a clean
// stop and returns nil, or until the VM fails, which returns the VM error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TimerHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.RunFrame(); err != nil {
				return err
			}
		}
	}
}

// RunFrame executes the instructions due in one timer period and then ticks
// the timers once.
func (r *Runner) RunFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.budget += r.cfg.InstructionsPerSecond
	n := r.budget / r.cfg.TimerHz
	r.budget %= r.cfg.TimerHz

	for i := 0; i < n; i++ {
		if err := r.vm.Step(); err != nil {
			return err
		}
	}
	r.vm.TickTimers()
	return nil
}

// Snapshot returns a copy of the framebuffer taken between two instructions.
func (r *Runner) Snapshot() internal.Framebuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vm.Snapshot()
}

// Waiting returns whether the program is blocked on a key press.
func (r *Runner) Waiting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vm.Waiting()
}

// SetKey forwards a key press or release to the VM.
func (r *Runner) SetKey(key uint8, pressed bool) {
	r.vm.SetKey(key, pressed)
}

// Sound returns whether the sound timer is active.
func (r *Runner) Sound() bool {
	return r.vm.SoundTimer() > 0
}

// Swap replaces the running program and restarts the VM.
func (r *Runner) Swap(rom []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.vm.Load(rom); err != nil {
		return fmt.Errorf("reloading program: %w", err)
	}
	r.budget = 0
	return nil
}

// ReadROM reads a program file. The file has no header, the program is the
// whole file and must fit into memory above programBase.
func ReadROM(path string, programBase uint16) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if limit := internal.TotalMemory - int(programBase); len(data) > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, at most %d fit at 0x%03X",
			internal.ErrOversizedProgram, path, len(data), limit, programBase)
	}
	return data, nil
}
