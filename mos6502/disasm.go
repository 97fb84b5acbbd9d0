package mos6502

import (
	"fmt"
	"strings"
)

// Instruction is a decode of the bytes at a PC: the
// trace/disassembly surface the motherboard's debug step uses to produce
// the column-formatted line described by the trace contract. Peek never
// advances the CPU or mutates any state; it only reads through Bus, so
// callers that peek at an address with read side effects (a PPU register,
// say) will still trigger them exactly as a real fetch would.
type Instruction struct {
	PC      uint16
	Opcode  uint8
	Operand []uint8 // 0, 1 or 2 bytes, per the addressing mode's length
	Mnemonic string
	Mode    uint8
}

// Peek decodes the instruction at pc without executing it.
func (c *CPU) Peek(pc uint16) Instruction {
	opByte := c.read(pc)
	op := &opcodeTable[opByte]
	in := Instruction{PC: pc, Opcode: opByte, Mnemonic: op.name, Mode: op.mode}
	if op.fn == nil {
		in.Mnemonic = "???"
		return in
	}
	for i := uint8(1); i < op.bytes; i++ {
		in.Operand = append(in.Operand, c.read(pc+uint16(i)))
	}
	return in
}

// Bytes returns the full instruction encoding (opcode followed by its
// operand bytes), the slice the trace line's "BB BB BB" column is built
// from.
func (in Instruction) Bytes() []uint8 {
	return append([]uint8{in.Opcode}, in.Operand...)
}

// Disassemble renders the mnemonic and operand the way a reference 6502
// disassembler would, e.g. "LDA #$01" or "STA $0200,X".
func (in Instruction) Disassemble() string {
	operand := in.disassembleOperand()
	if operand == "" {
		return in.Mnemonic
	}
	return in.Mnemonic + " " + operand
}

func (in Instruction) disassembleOperand() string {
	switch in.Mode {
	case Implicit:
		return ""
	case Accumulator:
		return "A"
	case Immediate:
		return fmt.Sprintf("#$%02X", in.Operand[0])
	case ZeroPage:
		return fmt.Sprintf("$%02X", in.Operand[0])
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", in.Operand[0])
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", in.Operand[0])
	case Relative:
		target := (in.PC + 2) + uint16(int8(in.Operand[0]))
		return fmt.Sprintf("$%04X", target)
	case Absolute:
		return fmt.Sprintf("$%04X", in.le16())
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", in.le16())
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", in.le16())
	case Indirect:
		return fmt.Sprintf("($%04X)", in.le16())
	case IndirectX:
		return fmt.Sprintf("($%02X,X)", in.Operand[0])
	case IndirectY:
		return fmt.Sprintf("($%02X),Y", in.Operand[0])
	default:
		return ""
	}
}

func (in Instruction) le16() uint16 {
	return uint16(in.Operand[0]) | uint16(in.Operand[1])<<8
}

// TraceColumns renders the PC, raw-byte, mnemonic/operand and register
// columns of the trace-line contract (everything except the "PPU:" and
// "CYC:" columns, which belong to whatever owns the master clock). The
// byte column is space-padded to 3 bytes and the disassembly column is
// left-justified to 32 characters, matching the fixed layout callers
// compare against a reference log.
func (c *CPU) TraceColumns() string {
	in := c.Peek(c.PC)
	bs := in.Bytes()

	var byteCols [3]string
	for i, b := range bs {
		byteCols[i] = fmt.Sprintf("%02X", b)
	}
	byteField := strings.TrimRight(fmt.Sprintf("%-2s %-2s %-2s", byteCols[0], byteCols[1], byteCols[2]), " ")

	return fmt.Sprintf("%04X  %-8s  %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.PC, byteField, in.Disassemble(), c.A, c.X, c.Y, c.P, c.SP)
}
