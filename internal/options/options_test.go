package options

import (
	"errors"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Program
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: Program{
				ROM:                   "pong.ch8",
				Frontend:              FrontendSDL,
				InstructionsPerSecond: 700,
				ProgramBase:           0x200,
				FontBase:              0x50,
				Shift:                 "vy",
			},
		},
		{
			name: "all flags",
			args: []string{"-frontend", "TERM", "-ips", "1000", "-rom-base", "0x300", "-font-base", "0",
				"-shift", "vx", "-watch", "-debug", "-q", "pong.ch8"},
			want: Program{
				ROM:                   "pong.ch8",
				Frontend:              FrontendTerm,
				InstructionsPerSecond: 1000,
				ProgramBase:           0x300,
				FontBase:              0,
				Shift:                 "vx",
				Watch:                 true,
				Debug:                 true,
				Quiet:                 true,
			},
		},
		{
			name: "decimal address",
			args: []string{"-rom-base", "1024", "pong.ch8"},
			want: Program{
				ROM:                   "pong.ch8",
				Frontend:              FrontendSDL,
				InstructionsPerSecond: 700,
				ProgramBase:           0x400,
				FontBase:              0x50,
				Shift:                 "vy",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Parse("chopper", tt.args, FrontendSDL)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no program", nil, true},
		{"two programs", []string{"a.ch8", "b.ch8"}, true},
		{"unknown flag", []string{"-nope", "a.ch8"}, true},
		{"bad address", []string{"-rom-base", "zz", "a.ch8"}, true},
		{"address too large", []string{"-rom-base", "0x10000", "a.ch8"}, true},
		{"unknown front end", []string{"-frontend", "gl", "a.ch8"}, false},
		{"unknown shift", []string{"-shift", "vz", "a.ch8"}, false},
		{"zero speed", []string{"-ips", "0", "a.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("chopper", tt.args, FrontendSDL)
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestVMConfig(t *testing.T) {
	opts, err := Parse("chopper", []string{"-shift", "vx", "-rom-base", "0x400", "a.ch8"}, FrontendSDL)
	assert.NoError(t, err)

	logger := CreateLogger(false, true)
	cfg := opts.VMConfig(logger)
	assert.Equal(t, internal.ShiftVX, cfg.ShiftQuirk)
	assert.Equal(t, uint16(0x400), cfg.ProgramBase)
	assert.Equal(t, uint16(internal.DefaultFont), cfg.FontBase)
	assert.True(t, cfg.Logger == nil)

	opts.Debug = true
	cfg = opts.VMConfig(logger)
	assert.NotNil(t, cfg.Logger)
}

func TestRunnerConfig(t *testing.T) {
	opts := Program{InstructionsPerSecond: 500}
	cfg := opts.RunnerConfig(CreateLogger(false, false))
	assert.Equal(t, 500, cfg.InstructionsPerSecond)
	assert.Equal(t, 60, cfg.TimerHz)
	assert.NotNil(t, cfg.Logger)
}
