// Package app wires the VM, the runner and a front end together.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
	"github.com/mnafees/chopper/pkg/runner"
	"github.com/mnafees/chopper/pkg/sdl"
	"github.com/mnafees/chopper/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

// Setup reads the program and returns a runner with the program loaded.
func Setup(logger *log.Logger, opts options.Program) (*runner.Runner, error) {
	rom, err := runner.ReadROM(opts.ROM, opts.ProgramBase)
	if err != nil {
		return nil, err
	}

	vm := internal.New(opts.VMConfig(logger))
	if err := vm.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	logger.Info("Loaded CHIP-8 program",
		log.String("file", opts.ROM),
		log.Hex("program_base", opts.ProgramBase),
		log.Hex("font_base", opts.FontBase),
		log.String("shift", opts.Shift),
		log.String("frontend", opts.Frontend),
	)
	return runner.New(vm, opts.RunnerConfig(logger)), nil
}

// Run runs the program in the chosen front end until the user quits, the
// context is cancelled or the VM fails.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	r, err := Setup(logger, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Watch {
		w, err := r.Watch(opts.ROM, opts.ProgramBase)
		if err != nil {
			return err
		}
		go func() { _ = w.Run(ctx) }()
	}

	title := fmt.Sprintf("Chopper | %s", filepath.Base(opts.ROM))
	switch opts.Frontend {
	case options.FrontendTerm:
		io := term.NewIO(r)
		if err := io.Setup(); err != nil {
			return err
		}
		defer io.Destroy()
		return io.Loop(ctx)

	default:
		io := sdl.NewIO(r)
		defer io.Destroy()
		if err := io.SetupWindow(title); err != nil {
			return err
		}
		return io.Loop(ctx)
	}
}
