package internal

import "fmt"

// handlers executes each instruction variant. PC already points at the next
// instruction when a handler runs.
var handlers = [opCount]func(vm *C8VM, ins instruction) error{
	opIllegal: illegal,
	opCLS:     (*C8VM).cls,
	opRET:     (*C8VM).ret,
	opSYS:     (*C8VM).jp,
	opJP:      (*C8VM).jp,
	opCALL:    (*C8VM).call,
	opSEByte:  (*C8VM).seByte,
	opSNEByte: (*C8VM).sneByte,
	opSEReg:   (*C8VM).seReg,
	opLDByte:  (*C8VM).ldByte,
	opADDByte: (*C8VM).addByte,
	opLDReg:   (*C8VM).ldReg,
	opOR:      (*C8VM).or,
	opAND:     (*C8VM).and,
	opXOR:     (*C8VM).xor,
	opADDReg:  (*C8VM).addReg,
	opSUB:     (*C8VM).sub,
	opSHR:     (*C8VM).shr,
	opSUBN:    (*C8VM).subn,
	opSHL:     (*C8VM).shl,
	opSNEReg:  (*C8VM).sneReg,
	opLDI:     (*C8VM).ldI,
	opJPV0:    (*C8VM).jpV0,
	opRND:     (*C8VM).rnd,
	opDRW:     (*C8VM).drw,
	opSKP:     (*C8VM).skp,
	opSKNP:    (*C8VM).sknp,
	opLDVxDT:  (*C8VM).ldVxDT,
	opLDVxK:   (*C8VM).ldVxK,
	opLDDTVx:  (*C8VM).ldDTVx,
	opLDSTVx:  (*C8VM).ldSTVx,
	opADDI:    (*C8VM).addI,
	opLDF:     (*C8VM).ldF,
	opLDB:     (*C8VM).ldB,
	opLDMemVx: (*C8VM).ldMemVx,
	opLDVxMem: (*C8VM).ldVxMem,
}

func illegal(_ *C8VM, ins instruction) error {
	return fmt.Errorf("%w %04X", ErrIllegalInstruction, ins.word)
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
}

// CLS
func (vm *C8VM) cls(instruction) error {
	vm.pixels.Clear()
	return nil
}

// RET
func (vm *C8VM) ret(instruction) error {
	addr, err := vm.stack.pop()
	if err != nil {
		return err
	}
	vm.pc = addr
	return nil
}

// JP nnn, also SYS nnn
func (vm *C8VM) jp(ins instruction) error {
	vm.pc = ins.nnn
	return nil
}

// CALL nnn
func (vm *C8VM) call(ins instruction) error {
	if err := vm.stack.push(vm.pc); err != nil {
		return err
	}
	vm.pc = ins.nnn
	return nil
}

// SE Vx, kk
func (vm *C8VM) seByte(ins instruction) error {
	vm.skipIf(vm.regV[ins.x] == ins.kk)
	return nil
}

// SNE Vx, kk
func (vm *C8VM) sneByte(ins instruction) error {
	vm.skipIf(vm.regV[ins.x] != ins.kk)
	return nil
}

// SE Vx, Vy
func (vm *C8VM) seReg(ins instruction) error {
	vm.skipIf(vm.regV[ins.x] == vm.regV[ins.y])
	return nil
}

// LD Vx, kk
func (vm *C8VM) ldByte(ins instruction) error {
	vm.regV[ins.x] = ins.kk
	return nil
}

// ADD Vx, kk
func (vm *C8VM) addByte(ins instruction) error {
	vm.regV[ins.x] += ins.kk
	return nil
}

// LD Vx, Vy
func (vm *C8VM) ldReg(ins instruction) error {
	vm.regV[ins.x] = vm.regV[ins.y]
	return nil
}

// OR Vx, Vy
func (vm *C8VM) or(ins instruction) error {
	vm.regV[ins.x] |= vm.regV[ins.y]
	return nil
}

// AND Vx, Vy
func (vm *C8VM) and(ins instruction) error {
	vm.regV[ins.x] &= vm.regV[ins.y]
	return nil
}

// XOR Vx, Vy
func (vm *C8VM) xor(ins instruction) error {
	vm.regV[ins.x] ^= vm.regV[ins.y]
	return nil
}

// The arithmetic instructions below write VF after the result, so the flag
// wins when VF is the destination.

// ADD Vx, Vy
func (vm *C8VM) addReg(ins instruction) error {
	sum := uint16(vm.regV[ins.x]) + uint16(vm.regV[ins.y])
	vm.regV[ins.x] = uint8(sum)
	vm.regV[0xF] = flag(sum > 0xFF)
	return nil
}

// SUB Vx, Vy
func (vm *C8VM) sub(ins instruction) error {
	vx, vy := vm.regV[ins.x], vm.regV[ins.y]
	vm.regV[ins.x] = vx - vy
	vm.regV[0xF] = flag(vx >= vy)
	return nil
}

// SUBN Vx, Vy
func (vm *C8VM) subn(ins instruction) error {
	vx, vy := vm.regV[ins.x], vm.regV[ins.y]
	vm.regV[ins.x] = vy - vx
	vm.regV[0xF] = flag(vy >= vx)
	return nil
}

func (vm *C8VM) shiftSource(ins instruction) uint8 {
	if vm.cfg.ShiftQuirk == ShiftVX {
		return vm.regV[ins.x]
	}
	return vm.regV[ins.y]
}

// SHR Vx {, Vy}
func (vm *C8VM) shr(ins instruction) error {
	v := vm.shiftSource(ins)
	vm.regV[ins.x] = v >> 1
	vm.regV[0xF] = v & 0x01
	return nil
}

// SHL Vx {, Vy}
func (vm *C8VM) shl(ins instruction) error {
	v := vm.shiftSource(ins)
	vm.regV[ins.x] = v << 1
	vm.regV[0xF] = v >> 7
	return nil
}

// SNE Vx, Vy
func (vm *C8VM) sneReg(ins instruction) error {
	vm.skipIf(vm.regV[ins.x] != vm.regV[ins.y])
	return nil
}

// LD I, nnn
func (vm *C8VM) ldI(ins instruction) error {
	vm.regI = ins.nnn
	return nil
}

// JP V0, nnn
func (vm *C8VM) jpV0(ins instruction) error {
	vm.pc = ins.nnn + uint16(vm.regV[0])
	return nil
}

// RND Vx, kk
func (vm *C8VM) rnd(ins instruction) error {
	vm.regV[ins.x] = uint8(vm.cfg.Random.Intn(256)) & ins.kk
	return nil
}

// DRW Vx, Vy, n
func (vm *C8VM) drw(ins instruction) error {
	sprite := make([]byte, ins.n)
	for i := range sprite {
		sprite[i] = vm.memory[(vm.regI+uint16(i))&addrMask]
	}
	collision := vm.pixels.Draw(vm.regV[ins.x], vm.regV[ins.y], sprite)
	vm.regV[0xF] = flag(collision)
	return nil
}

// SKP Vx
func (vm *C8VM) skp(ins instruction) error {
	vm.skipIf(vm.keys.IsPressed(vm.regV[ins.x]))
	return nil
}

// SKNP Vx
func (vm *C8VM) sknp(ins instruction) error {
	vm.skipIf(!vm.keys.IsPressed(vm.regV[ins.x]))
	return nil
}

// LD Vx, DT
func (vm *C8VM) ldVxDT(ins instruction) error {
	vm.regV[ins.x] = vm.timers.Delay()
	return nil
}

// LD Vx, K
func (vm *C8VM) ldVxK(ins instruction) error {
	vm.keys.clearPress()
	vm.waiting = true
	vm.waitReg = ins.x
	return nil
}

// LD DT, Vx
func (vm *C8VM) ldDTVx(ins instruction) error {
	vm.timers.SetDelay(vm.regV[ins.x])
	return nil
}

// LD ST, Vx
func (vm *C8VM) ldSTVx(ins instruction) error {
	vm.timers.SetSound(vm.regV[ins.x])
	return nil
}

// ADD I, Vx
func (vm *C8VM) addI(ins instruction) error {
	vm.regI += uint16(vm.regV[ins.x])
	return nil
}

// LD F, Vx
func (vm *C8VM) ldF(ins instruction) error {
	vm.regI = vm.fontBase + uint16(vm.regV[ins.x])*glyphSize
	return nil
}

// LD B, Vx
func (vm *C8VM) ldB(ins instruction) error {
	v := vm.regV[ins.x]
	vm.memory[vm.regI&addrMask] = v / 100
	vm.memory[(vm.regI+1)&addrMask] = (v / 10) % 10
	vm.memory[(vm.regI+2)&addrMask] = v % 10
	return nil
}

// LD [I], Vx
func (vm *C8VM) ldMemVx(ins instruction) error {
	for i := uint16(0); i <= uint16(ins.x); i++ {
		vm.memory[(vm.regI+i)&addrMask] = vm.regV[i]
	}
	return nil
}

// LD Vx, [I]
func (vm *C8VM) ldVxMem(ins instruction) error {
	for i := uint16(0); i <= uint16(ins.x); i++ {
		vm.regV[i] = vm.memory[(vm.regI+i)&addrMask]
	}
	return nil
}
