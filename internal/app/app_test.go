package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeROM(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestSetup(t *testing.T) {
	path := writeROM(t, []byte{0x60, 0x2A, 0x12, 0x02})
	opts, err := options.Parse("chopper", []string{"-ips", "60", path}, options.FrontendTerm)
	assert.NoError(t, err)

	r, err := Setup(log.NewTestLogger(t), opts)
	assert.NoError(t, err)
	assert.NoError(t, r.RunFrame())
	assert.False(t, r.Waiting())
}

func TestSetupRejectsOversizedProgram(t *testing.T) {
	path := writeROM(t, make([]byte, internal.TotalMemory-0x300+1))
	opts, err := options.Parse("chopper", []string{"-rom-base", "0x300", path}, options.FrontendTerm)
	assert.NoError(t, err)

	_, err = Setup(log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, internal.ErrOversizedProgram))
}

func TestSetupRejectsBadFontBase(t *testing.T) {
	path := writeROM(t, []byte{0x12, 0x00})
	opts, err := options.Parse("chopper", []string{"-font-base", "0x1F0", path}, options.FrontendTerm)
	assert.NoError(t, err)

	_, err = Setup(log.NewTestLogger(t), opts)
	assert.True(t, errors.Is(err, internal.ErrInvalidBase))
}
