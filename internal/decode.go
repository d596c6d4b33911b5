package internal

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// op enumerates the instruction variants of the base instruction set.
type op uint8

const (
	opIllegal op = iota
	opCLS        // 00E0
	opRET        // 00EE
	opSYS        // 0NNN
	opJP         // 1NNN
	opCALL       // 2NNN
	opSEByte     // 3XKK
	opSNEByte    // 4XKK
	opSEReg      // 5XY0
	opLDByte     // 6XKK
	opADDByte    // 7XKK
	opLDReg      // 8XY0
	opOR         // 8XY1
	opAND        // 8XY2
	opXOR        // 8XY3
	opADDReg     // 8XY4
	opSUB        // 8XY5
	opSHR        // 8XY6
	opSUBN       // 8XY7
	opSHL        // 8XYE
	opSNEReg     // 9XY0
	opLDI        // ANNN
	opJPV0       // BNNN
	opRND        // CXKK
	opDRW        // DXYN
	opSKP        // EX9E
	opSKNP       // EXA1
	opLDVxDT     // FX07
	opLDVxK      // FX0A
	opLDDTVx     // FX15
	opLDSTVx     // FX18
	opADDI       // FX1E
	opLDF        // FX29
	opLDB        // FX33
	opLDMemVx    // FX55
	opLDVxMem    // FX65
	opCount
)

// instruction is a decoded 16-bit instruction word.
type instruction struct {
	op   op
	word uint16
	x    uint8  // the lower 4 bits of the high byte of the instruction
	y    uint8  // the upper 4 bits of the low byte of the instruction
	n    uint8  // the lowest 4 bits of the instruction
	kk   uint8  // the lowest 8 bits of the instruction
	nnn  uint16 // the lowest 12 bits of the instruction
}

// Families decoded by their low nibble or low byte. Zero entries are opIllegal.
var (
	aluOps = [16]op{
		0x0: opLDReg,
		0x1: opOR,
		0x2: opAND,
		0x3: opXOR,
		0x4: opADDReg,
		0x5: opSUB,
		0x6: opSHR,
		0x7: opSUBN,
		0xE: opSHL,
	}
	keyOps = map[uint8]op{
		0x9E: opSKP,
		0xA1: opSKNP,
	}
	miscOps = map[uint8]op{
		0x07: opLDVxDT,
		0x0A: opLDVxK,
		0x15: opLDDTVx,
		0x18: opLDSTVx,
		0x1E: opADDI,
		0x29: opLDF,
		0x33: opLDB,
		0x55: opLDMemVx,
		0x65: opLDVxMem,
	}
)

// families maps the top nibble of an instruction word to its variant.
var families = [16]func(ins instruction) op{
	0x0: func(ins instruction) op {
		switch ins.word {
		case 0x00E0:
			return opCLS
		case 0x00EE:
			return opRET
		}
		return opSYS
	},
	0x1: fixed(opJP),
	0x2: fixed(opCALL),
	0x3: fixed(opSEByte),
	0x4: fixed(opSNEByte),
	0x5: regPair(opSEReg),
	0x6: fixed(opLDByte),
	0x7: fixed(opADDByte),
	0x8: func(ins instruction) op { return aluOps[ins.n] },
	0x9: regPair(opSNEReg),
	0xA: fixed(opLDI),
	0xB: fixed(opJPV0),
	0xC: fixed(opRND),
	0xD: fixed(opDRW),
	0xE: func(ins instruction) op { return keyOps[ins.kk] },
	0xF: func(ins instruction) op { return miscOps[ins.kk] },
}

func fixed(o op) func(instruction) op {
	return func(instruction) op { return o }
}

// regPair accepts only words whose lowest nibble is zero.
func regPair(o op) func(instruction) op {
	return func(ins instruction) op {
		if ins.n != 0 {
			return opIllegal
		}
		return o
	}
}

// decode splits the word into its operand fields and resolves the variant.
func decode(word uint16) instruction {
	ins := instruction{
		word: word,
		x:    uint8(word>>8) & 0xF,
		y:    uint8(word>>4) & 0xF,
		n:    uint8(word) & 0xF,
		kk:   uint8(word),
		nnn:  word & 0x0FFF,
	}
	ins.op = families[word>>12](ins)
	return ins
}

func (ins instruction) String() string {
	return fmt.Sprintf("%04X (%s)", ins.word, mnemonic(ins.word))
}

// mnemonic returns the assembler name of the instruction word, looked up in
// the CHIP-8 opcode table.
func mnemonic(word uint16) string {
	for _, opcode := range chip8.Opcodes[int(word>>12)] {
		if opcode.Info.Mask&word == opcode.Info.Value && opcode.Instruction != nil {
			return opcode.Instruction.Name
		}
	}
	return "???"
}
