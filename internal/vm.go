package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	TotalMemory  = 0x1000
	ProgramStart = 0x200
	DefaultFont  = 0x050

	addrMask = TotalMemory - 1

	DefaultStackDepth = 16
)

// ShiftQuirk selects the source register of the 8XY6 and 8XYE shifts.
type ShiftQuirk int

const (
	// ShiftVY shifts VY into VX, as the COSMAC VIP interpreter does.
	ShiftVY ShiftQuirk = iota
	// ShiftVX shifts VX in place and ignores VY, as CHIP-48 and later
	// interpreters do.
	ShiftVX
)

// Random is the source of the RND instruction. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Config contains the VM configuration.
type Config struct {
	ProgramBase uint16 // load address of the program and initial PC
	FontBase    uint16 // load address of the font
	StackDepth  int    // maximum number of nested subroutine calls
	ShiftQuirk  ShiftQuirk

	Random Random
	Logger *log.Logger // traces every executed instruction at debug level, may be nil
}

// DefaultConfig returns the configuration of a classic CHIP-8 interpreter.
func DefaultConfig() Config {
	return Config{
		ProgramBase: ProgramStart,
		FontBase:    DefaultFont,
		StackDepth:  DefaultStackDepth,
		ShiftQuirk:  ShiftVY,
	}
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	cfg Config

	opcode uint16             // 16-bit opcode of the current instruction
	regV   [16]uint8          // 16 general purpose 8-bit registers
	regI   uint16             // 16-bit register that is generally used to store memory addresses
	pc     uint16             // Program counter
	stack  callStack          // Return addresses of subroutine calls
	memory [TotalMemory]uint8 // 4 KB global memory

	timers Timers
	keys   Keypad
	pixels Framebuffer

	program     []byte
	programBase uint16
	fontBase    uint16
	loaded      bool

	waiting bool  // set by LD Vx, K until a key press arrives
	waitReg uint8 // register receiving the key

	fault error // first error returned by Step, repeated until the next load
}

// New creates a new instance of an emulated CHIP-8 VM. A zero ProgramBase,
// StackDepth or Random is replaced by its default, start from DefaultConfig
// to keep the font at its usual address.
func New(cfg Config) *C8VM {
	def := DefaultConfig()
	if cfg.ProgramBase == 0 {
		cfg.ProgramBase = def.ProgramBase
	}
	if cfg.StackDepth <= 0 {
		cfg.StackDepth = def.StackDepth
	}
	if cfg.Random == nil {
		cfg.Random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &C8VM{
		cfg:   cfg,
		stack: newCallStack(cfg.StackDepth),
	}
}

// Load loads a program at the configured program and font addresses.
func (vm *C8VM) Load(program []byte) error {
	return vm.LoadAt(program, vm.cfg.ProgramBase, vm.cfg.FontBase)
}

// LoadAt resets the VM, copies the font to fontBase and the program to
// programBase and points the program counter at the first instruction.
func (vm *C8VM) LoadAt(program []byte, programBase, fontBase uint16) error {
	if programBase < ProgramStart || programBase >= TotalMemory {
		return fmt.Errorf("%w: program address 0x%03X outside 0x%03X-0x%03X",
			ErrInvalidBase, programBase, ProgramStart, TotalMemory-1)
	}
	if int(fontBase)+FontSize > ProgramStart {
		return fmt.Errorf("%w: font at 0x%03X overlaps the program area", ErrInvalidBase, fontBase)
	}
	if limit := TotalMemory - int(programBase); len(program) > limit {
		return fmt.Errorf("%w: %d bytes, at most %d fit at 0x%03X",
			ErrOversizedProgram, len(program), limit, programBase)
	}

	vm.reset()
	copy(vm.memory[fontBase:], fontset[:])
	copy(vm.memory[programBase:], program)
	vm.program = append(vm.program[:0], program...)
	vm.programBase = programBase
	vm.fontBase = fontBase
	vm.pc = programBase
	vm.loaded = true
	return nil
}

// Reset restarts the last loaded program from scratch.
func (vm *C8VM) Reset() error {
	if !vm.loaded {
		return ErrNotLoaded
	}
	return vm.LoadAt(vm.program, vm.programBase, vm.fontBase)
}

func (vm *C8VM) reset() {
	vm.opcode = 0
	vm.regV = [16]uint8{}
	vm.regI = 0
	vm.pc = 0
	vm.stack.reset()
	vm.memory = [TotalMemory]uint8{}
	vm.timers.reset()
	vm.keys.clearPress()
	vm.pixels.Clear()
	vm.loaded = false
	vm.waiting = false
	vm.waitReg = 0
	vm.fault = nil
}

// Step executes a single instruction. While the VM waits for a key press
// Step does nothing and returns nil. Once Step fails, it keeps returning the
// same error until the program is loaded or reset again.
func (vm *C8VM) Step() error {
	if !vm.loaded {
		return ErrNotLoaded
	}
	if vm.fault != nil {
		return vm.fault
	}
	if vm.waiting {
		key, ok := vm.keys.takePress()
		if ok {
			vm.regV[vm.waitReg] = key
			vm.waiting = false
		}
		return nil
	}

	addr := vm.pc
	vm.opcode = uint16(vm.memory[addr&addrMask])<<8 | uint16(vm.memory[(addr+1)&addrMask])
	vm.pc += 2

	ins := decode(vm.opcode)
	if logger := vm.cfg.Logger; logger != nil {
		logger.Debug("Executing instruction",
			log.Hex("pc", addr),
			log.Hex("opcode", ins.word),
			log.String("instruction", mnemonic(ins.word)))
	}

	if err := handlers[ins.op](vm, ins); err != nil {
		vm.fault = fmt.Errorf("executing %s at 0x%03X: %w", ins, addr, err)
		return vm.fault
	}
	return nil
}

// TickTimers decrements the delay and sound timers. The host calls it at
// 60 Hz.
func (vm *C8VM) TickTimers() {
	vm.timers.Tick()
}

// SetKey updates the state of a keypad key.
func (vm *C8VM) SetKey(key uint8, pressed bool) {
	vm.keys.Set(key, pressed)
}

// KeyPressed returns whether a keypad key is held down.
func (vm *C8VM) KeyPressed(key uint8) bool {
	return vm.keys.IsPressed(key)
}

// Snapshot returns a copy of the framebuffer.
func (vm *C8VM) Snapshot() Framebuffer {
	return vm.pixels
}

// Loaded returns whether a program has been loaded.
func (vm *C8VM) Loaded() bool {
	return vm.loaded
}

// Waiting returns whether the VM is blocked on a key press.
func (vm *C8VM) Waiting() bool {
	return vm.waiting
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// I returns the value of the index register
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// V returns the value of register Vx
func (vm *C8VM) V(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// Memory returns the byte at the given address
func (vm *C8VM) Memory(addr uint16) uint8 {
	return vm.memory[addr&addrMask]
}

// StackDepth returns the number of pending subroutine returns
func (vm *C8VM) StackDepth() int {
	return vm.stack.depth()
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.timers.Delay()
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.timers.Sound()
}
