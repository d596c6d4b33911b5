// Package options handles the command line options shared by the chopper binaries.
package options

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/runner"
	"github.com/retroenv/retrogolib/log"
)

// Supported front ends
const (
	FrontendSDL  = "sdl"
	FrontendTerm = "term"
)

// Program contains the command line options.
type Program struct {
	ROM      string
	Frontend string

	InstructionsPerSecond int
	ProgramBase           uint16
	FontBase              uint16
	Shift                 string

	Watch bool
	Debug bool
	Quiet bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s [options] <CHIP-8 program>\n\n", e.flags.Name())
	e.flags.PrintDefaults()
	fmt.Println()
}

// Parse parses the command line arguments, without the program name.
// frontend is the default of the -frontend flag.
func Parse(name string, args []string, frontend string) (Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	opts := Program{
		ProgramBase: internal.ProgramStart,
		FontBase:    internal.DefaultFont,
	}
	readOptionFlags(flags, &opts, frontend)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	rest := flags.Args()
	if len(rest) != 1 {
		return opts, &UsageError{flags: flags, msg: "expected exactly one CHIP-8 program"}
	}
	opts.ROM = rest[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Program, frontend string) {
	flags.StringVar(&opts.Frontend, "frontend", frontend, "front end to run the program in (sdl/term)")
	flags.IntVar(&opts.InstructionsPerSecond, "ips", runner.DefaultInstructionsPerSecond, "instructions executed per second")
	flags.Var((*addrValue)(&opts.ProgramBase), "rom-base", "address the program is loaded at")
	flags.Var((*addrValue)(&opts.FontBase), "font-base", "address the font is loaded at")
	flags.StringVar(&opts.Shift, "shift", "vy", "source register of the shift instructions (vy/vx)")
	flags.BoolVar(&opts.Watch, "watch", false, "reload the program when the file changes")
	flags.BoolVar(&opts.Debug, "debug", false, "trace every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
}

func normalizeOptions(opts *Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	switch opts.Frontend {
	case FrontendSDL, FrontendTerm:
	default:
		return fmt.Errorf("unsupported front end: %s. Valid options: %s, %s",
			opts.Frontend, FrontendSDL, FrontendTerm)
	}

	opts.Shift = strings.ToLower(opts.Shift)
	if opts.Shift != "vy" && opts.Shift != "vx" {
		return fmt.Errorf("unsupported shift variant: %s. Valid options: vy, vx", opts.Shift)
	}

	if opts.InstructionsPerSecond <= 0 {
		return fmt.Errorf("instructions per second must be positive, got %d", opts.InstructionsPerSecond)
	}
	return nil
}

// VMConfig returns the VM configuration for the options.
func (opts Program) VMConfig(logger *log.Logger) internal.Config {
	cfg := internal.DefaultConfig()
	cfg.ProgramBase = opts.ProgramBase
	cfg.FontBase = opts.FontBase
	if opts.Shift == "vx" {
		cfg.ShiftQuirk = internal.ShiftVX
	}
	if opts.Debug {
		cfg.Logger = logger
	}
	return cfg
}

// RunnerConfig returns the runner configuration for the options.
func (opts Program) RunnerConfig(logger *log.Logger) runner.Config {
	cfg := runner.DefaultConfig()
	cfg.InstructionsPerSecond = opts.InstructionsPerSecond
	cfg.Logger = logger
	return cfg
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// addrValue parses a memory address, accepting 0x prefixed hexadecimal.
type addrValue uint16

func (a *addrValue) String() string {
	return fmt.Sprintf("0x%03X", uint16(*a))
}

func (a *addrValue) Set(s string) error {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	*a = addrValue(v)
	return nil
}
