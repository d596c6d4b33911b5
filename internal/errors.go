package internal

import "errors"

// Errors surfaced by the VM. Call sites wrap them with the offending opcode or
// address, test for them with errors.Is.
var (
	ErrNotLoaded          = errors.New("no program loaded")
	ErrOversizedProgram   = errors.New("program size exceeds the maximum size")
	ErrInvalidBase        = errors.New("invalid load address")
	ErrIllegalInstruction = errors.New("illegal instruction")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrStackOverflow      = errors.New("stack overflow")
)
