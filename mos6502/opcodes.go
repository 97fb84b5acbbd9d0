package mos6502

import (
	"fmt"

	"github.com/golang/glog"
)

// instrFn is the signature every opcode handler implements. mode tells
// the handler which addressing mode produced the operand it should
// resolve; handlers that have none (Implicit) ignore it.
type instrFn func(c *CPU, mode uint8)

// opcode is one entry of the single 256-entry dispatch table indexed by
// opcode byte — the real dispatch mechanism, replacing any reflection or
// map lookup at run time.
type opcode struct {
	name   string
	mode   uint8
	bytes  uint8
	cycles uint8
	fn     instrFn
}

func (o opcode) String() string {
	if o.fn == nil {
		return "???"
	}
	return fmt.Sprintf("{%s %s}", o.name, modeNames[o.mode])
}

var opcodeTable [256]opcode

func op(code uint8, name string, mode, bytes, cycles uint8, fn instrFn) {
	opcodeTable[code] = opcode{name, mode, bytes, cycles, fn}
}

func init() {
	// Documented instructions.
	op(0x69, "ADC", Immediate, 2, 2, (*CPU).ADC)
	op(0x65, "ADC", ZeroPage, 2, 3, (*CPU).ADC)
	op(0x75, "ADC", ZeroPageX, 2, 4, (*CPU).ADC)
	op(0x6D, "ADC", Absolute, 3, 4, (*CPU).ADC)
	op(0x7D, "ADC", AbsoluteX, 3, 4, (*CPU).ADC)
	op(0x79, "ADC", AbsoluteY, 3, 4, (*CPU).ADC)
	op(0x61, "ADC", IndirectX, 2, 6, (*CPU).ADC)
	op(0x71, "ADC", IndirectY, 2, 5, (*CPU).ADC)

	op(0x29, "AND", Immediate, 2, 2, (*CPU).AND)
	op(0x25, "AND", ZeroPage, 2, 3, (*CPU).AND)
	op(0x35, "AND", ZeroPageX, 2, 4, (*CPU).AND)
	op(0x2D, "AND", Absolute, 3, 4, (*CPU).AND)
	op(0x3D, "AND", AbsoluteX, 3, 4, (*CPU).AND)
	op(0x39, "AND", AbsoluteY, 3, 4, (*CPU).AND)
	op(0x21, "AND", IndirectX, 2, 6, (*CPU).AND)
	op(0x31, "AND", IndirectY, 2, 5, (*CPU).AND)

	op(0x0A, "ASL", Accumulator, 1, 2, (*CPU).ASL)
	op(0x06, "ASL", ZeroPage, 2, 5, (*CPU).ASL)
	op(0x16, "ASL", ZeroPageX, 2, 6, (*CPU).ASL)
	op(0x0E, "ASL", Absolute, 3, 6, (*CPU).ASL)
	op(0x1E, "ASL", AbsoluteX, 3, 7, (*CPU).ASL)

	op(0x90, "BCC", Relative, 2, 2, (*CPU).BCC)
	op(0xB0, "BCS", Relative, 2, 2, (*CPU).BCS)
	op(0xF0, "BEQ", Relative, 2, 2, (*CPU).BEQ)
	op(0x24, "BIT", ZeroPage, 2, 3, (*CPU).BIT)
	op(0x2C, "BIT", Absolute, 3, 4, (*CPU).BIT)
	op(0x30, "BMI", Relative, 2, 2, (*CPU).BMI)
	op(0xD0, "BNE", Relative, 2, 2, (*CPU).BNE)
	op(0x10, "BPL", Relative, 2, 2, (*CPU).BPL)
	op(0x00, "BRK", Implicit, 2, 7, (*CPU).BRK)
	op(0x50, "BVC", Relative, 2, 2, (*CPU).BVC)
	op(0x70, "BVS", Relative, 2, 2, (*CPU).BVS)

	op(0x18, "CLC", Implicit, 1, 2, (*CPU).CLC)
	op(0xD8, "CLD", Implicit, 1, 2, (*CPU).CLD)
	op(0x58, "CLI", Implicit, 1, 2, (*CPU).CLI)
	op(0xB8, "CLV", Implicit, 1, 2, (*CPU).CLV)

	op(0xC9, "CMP", Immediate, 2, 2, (*CPU).CMP)
	op(0xC5, "CMP", ZeroPage, 2, 3, (*CPU).CMP)
	op(0xD5, "CMP", ZeroPageX, 2, 4, (*CPU).CMP)
	op(0xCD, "CMP", Absolute, 3, 4, (*CPU).CMP)
	op(0xDD, "CMP", AbsoluteX, 3, 4, (*CPU).CMP)
	op(0xD9, "CMP", AbsoluteY, 3, 4, (*CPU).CMP)
	op(0xC1, "CMP", IndirectX, 2, 6, (*CPU).CMP)
	op(0xD1, "CMP", IndirectY, 2, 5, (*CPU).CMP)

	op(0xE0, "CPX", Immediate, 2, 2, (*CPU).CPX)
	op(0xE4, "CPX", ZeroPage, 2, 3, (*CPU).CPX)
	op(0xEC, "CPX", Absolute, 3, 4, (*CPU).CPX)
	op(0xC0, "CPY", Immediate, 2, 2, (*CPU).CPY)
	op(0xC4, "CPY", ZeroPage, 2, 3, (*CPU).CPY)
	op(0xCC, "CPY", Absolute, 3, 4, (*CPU).CPY)

	op(0xC6, "DEC", ZeroPage, 2, 5, (*CPU).DEC)
	op(0xD6, "DEC", ZeroPageX, 2, 6, (*CPU).DEC)
	op(0xCE, "DEC", Absolute, 3, 6, (*CPU).DEC)
	op(0xDE, "DEC", AbsoluteX, 3, 7, (*CPU).DEC)
	op(0xCA, "DEX", Implicit, 1, 2, (*CPU).DEX)
	op(0x88, "DEY", Implicit, 1, 2, (*CPU).DEY)

	op(0x49, "EOR", Immediate, 2, 2, (*CPU).EOR)
	op(0x45, "EOR", ZeroPage, 2, 3, (*CPU).EOR)
	op(0x55, "EOR", ZeroPageX, 2, 4, (*CPU).EOR)
	op(0x4D, "EOR", Absolute, 3, 4, (*CPU).EOR)
	op(0x5D, "EOR", AbsoluteX, 3, 4, (*CPU).EOR)
	op(0x59, "EOR", AbsoluteY, 3, 4, (*CPU).EOR)
	op(0x41, "EOR", IndirectX, 2, 6, (*CPU).EOR)
	op(0x51, "EOR", IndirectY, 2, 5, (*CPU).EOR)

	op(0xE6, "INC", ZeroPage, 2, 5, (*CPU).INC)
	op(0xF6, "INC", ZeroPageX, 2, 6, (*CPU).INC)
	op(0xEE, "INC", Absolute, 3, 6, (*CPU).INC)
	op(0xFE, "INC", AbsoluteX, 3, 7, (*CPU).INC)
	op(0xE8, "INX", Implicit, 1, 2, (*CPU).INX)
	op(0xC8, "INY", Implicit, 1, 2, (*CPU).INY)

	op(0x4C, "JMP", Absolute, 3, 3, (*CPU).JMP)
	op(0x6C, "JMP", Indirect, 3, 5, (*CPU).JMP)
	op(0x20, "JSR", Absolute, 3, 6, (*CPU).JSR)

	op(0xA9, "LDA", Immediate, 2, 2, (*CPU).LDA)
	op(0xA5, "LDA", ZeroPage, 2, 3, (*CPU).LDA)
	op(0xB5, "LDA", ZeroPageX, 2, 4, (*CPU).LDA)
	op(0xAD, "LDA", Absolute, 3, 4, (*CPU).LDA)
	op(0xBD, "LDA", AbsoluteX, 3, 4, (*CPU).LDA)
	op(0xB9, "LDA", AbsoluteY, 3, 4, (*CPU).LDA)
	op(0xA1, "LDA", IndirectX, 2, 6, (*CPU).LDA)
	op(0xB1, "LDA", IndirectY, 2, 5, (*CPU).LDA)

	op(0xA2, "LDX", Immediate, 2, 2, (*CPU).LDX)
	op(0xA6, "LDX", ZeroPage, 2, 3, (*CPU).LDX)
	op(0xB6, "LDX", ZeroPageY, 2, 4, (*CPU).LDX)
	op(0xAE, "LDX", Absolute, 3, 4, (*CPU).LDX)
	op(0xBE, "LDX", AbsoluteY, 3, 4, (*CPU).LDX)

	op(0xA0, "LDY", Immediate, 2, 2, (*CPU).LDY)
	op(0xA4, "LDY", ZeroPage, 2, 3, (*CPU).LDY)
	op(0xB4, "LDY", ZeroPageX, 2, 4, (*CPU).LDY)
	op(0xAC, "LDY", Absolute, 3, 4, (*CPU).LDY)
	op(0xBC, "LDY", AbsoluteX, 3, 4, (*CPU).LDY)

	op(0x4A, "LSR", Accumulator, 1, 2, (*CPU).LSR)
	op(0x46, "LSR", ZeroPage, 2, 5, (*CPU).LSR)
	op(0x56, "LSR", ZeroPageX, 2, 6, (*CPU).LSR)
	op(0x4E, "LSR", Absolute, 3, 6, (*CPU).LSR)
	op(0x5E, "LSR", AbsoluteX, 3, 7, (*CPU).LSR)

	op(0xEA, "NOP", Implicit, 1, 2, (*CPU).NOP)

	op(0x09, "ORA", Immediate, 2, 2, (*CPU).ORA)
	op(0x05, "ORA", ZeroPage, 2, 3, (*CPU).ORA)
	op(0x15, "ORA", ZeroPageX, 2, 4, (*CPU).ORA)
	op(0x0D, "ORA", Absolute, 3, 4, (*CPU).ORA)
	op(0x1D, "ORA", AbsoluteX, 3, 4, (*CPU).ORA)
	op(0x19, "ORA", AbsoluteY, 3, 4, (*CPU).ORA)
	op(0x01, "ORA", IndirectX, 2, 6, (*CPU).ORA)
	op(0x11, "ORA", IndirectY, 2, 5, (*CPU).ORA)

	op(0x48, "PHA", Implicit, 1, 3, (*CPU).PHA)
	op(0x08, "PHP", Implicit, 1, 3, (*CPU).PHP)
	op(0x68, "PLA", Implicit, 1, 4, (*CPU).PLA)
	op(0x28, "PLP", Implicit, 1, 4, (*CPU).PLP)

	op(0x2A, "ROL", Accumulator, 1, 2, (*CPU).ROL)
	op(0x26, "ROL", ZeroPage, 2, 5, (*CPU).ROL)
	op(0x36, "ROL", ZeroPageX, 2, 6, (*CPU).ROL)
	op(0x2E, "ROL", Absolute, 3, 6, (*CPU).ROL)
	op(0x3E, "ROL", AbsoluteX, 3, 7, (*CPU).ROL)

	op(0x6A, "ROR", Accumulator, 1, 2, (*CPU).ROR)
	op(0x66, "ROR", ZeroPage, 2, 5, (*CPU).ROR)
	op(0x76, "ROR", ZeroPageX, 2, 6, (*CPU).ROR)
	op(0x6E, "ROR", Absolute, 3, 6, (*CPU).ROR)
	op(0x7E, "ROR", AbsoluteX, 3, 7, (*CPU).ROR)

	op(0x40, "RTI", Implicit, 1, 6, (*CPU).RTI)
	op(0x60, "RTS", Implicit, 1, 6, (*CPU).RTS)

	op(0xE9, "SBC", Immediate, 2, 2, (*CPU).SBC)
	op(0xE5, "SBC", ZeroPage, 2, 3, (*CPU).SBC)
	op(0xF5, "SBC", ZeroPageX, 2, 4, (*CPU).SBC)
	op(0xED, "SBC", Absolute, 3, 4, (*CPU).SBC)
	op(0xFD, "SBC", AbsoluteX, 3, 4, (*CPU).SBC)
	op(0xF9, "SBC", AbsoluteY, 3, 4, (*CPU).SBC)
	op(0xE1, "SBC", IndirectX, 2, 6, (*CPU).SBC)
	op(0xF1, "SBC", IndirectY, 2, 5, (*CPU).SBC)

	op(0x38, "SEC", Implicit, 1, 2, (*CPU).SEC)
	op(0xF8, "SED", Implicit, 1, 2, (*CPU).SED)
	op(0x78, "SEI", Implicit, 1, 2, (*CPU).SEI)

	op(0x85, "STA", ZeroPage, 2, 3, (*CPU).STA)
	op(0x95, "STA", ZeroPageX, 2, 4, (*CPU).STA)
	op(0x8D, "STA", Absolute, 3, 4, (*CPU).STA)
	op(0x9D, "STA", AbsoluteX, 3, 5, (*CPU).STA)
	op(0x99, "STA", AbsoluteY, 3, 5, (*CPU).STA)
	op(0x81, "STA", IndirectX, 2, 6, (*CPU).STA)
	op(0x91, "STA", IndirectY, 2, 6, (*CPU).STA)

	op(0x86, "STX", ZeroPage, 2, 3, (*CPU).STX)
	op(0x96, "STX", ZeroPageY, 2, 4, (*CPU).STX)
	op(0x8E, "STX", Absolute, 3, 4, (*CPU).STX)
	op(0x84, "STY", ZeroPage, 2, 3, (*CPU).STY)
	op(0x94, "STY", ZeroPageX, 2, 4, (*CPU).STY)
	op(0x8C, "STY", Absolute, 3, 4, (*CPU).STY)

	op(0xAA, "TAX", Implicit, 1, 2, (*CPU).TAX)
	op(0xA8, "TAY", Implicit, 1, 2, (*CPU).TAY)
	op(0xBA, "TSX", Implicit, 1, 2, (*CPU).TSX)
	op(0x8A, "TXA", Implicit, 1, 2, (*CPU).TXA)
	op(0x9A, "TXS", Implicit, 1, 2, (*CPU).TXS)
	op(0x98, "TYA", Implicit, 1, 2, (*CPU).TYA)

	registerIllegalOpcodes()
}

// registerIllegalOpcodes fills in the undocumented/"illegal" opcodes: the
// read-modify-write composites (LAX, SAX, DCP, ISC, SLO, RLA, SRE, RRA),
// the immediate-mode combos (ANC, ALR, ARR, AXS), the unstable
// store-group oddities (SHX, SHY, AHX, TAS, LAS), the unofficial NOPs of
// every length, and the JAM/KIL opcodes that lock real silicon. Grounded
// on public 6502 hardware references, the same way the documented table
// above cites nesdev/obelisk in its comments.
func registerIllegalOpcodes() {
	lax := []struct {
		code   uint8
		mode   uint8
		bytes  uint8
		cycles uint8
	}{
		{0xA7, ZeroPage, 2, 3}, {0xB7, ZeroPageY, 2, 4}, {0xAF, Absolute, 3, 4},
		{0xBF, AbsoluteY, 3, 4}, {0xA3, IndirectX, 2, 6}, {0xB3, IndirectY, 2, 5},
	}
	for _, e := range lax {
		op(e.code, "LAX", e.mode, e.bytes, e.cycles, (*CPU).LAX)
	}

	sax := []struct {
		code   uint8
		mode   uint8
		bytes  uint8
		cycles uint8
	}{
		{0x87, ZeroPage, 2, 3}, {0x97, ZeroPageY, 2, 4}, {0x8F, Absolute, 3, 4}, {0x83, IndirectX, 2, 6},
	}
	for _, e := range sax {
		op(e.code, "SAX", e.mode, e.bytes, e.cycles, (*CPU).SAX)
	}

	type rmw struct {
		code   uint8
		mode   uint8
		bytes  uint8
		cycles uint8
	}
	group := func(name string, fn instrFn, entries []rmw) {
		for _, e := range entries {
			op(e.code, name, e.mode, e.bytes, e.cycles, fn)
		}
	}
	group("DCP", (*CPU).DCP, []rmw{
		{0xC7, ZeroPage, 2, 5}, {0xD7, ZeroPageX, 2, 6}, {0xCF, Absolute, 3, 6},
		{0xDF, AbsoluteX, 3, 7}, {0xDB, AbsoluteY, 3, 7}, {0xC3, IndirectX, 2, 8}, {0xD3, IndirectY, 2, 8},
	})
	group("ISC", (*CPU).ISC, []rmw{
		{0xE7, ZeroPage, 2, 5}, {0xF7, ZeroPageX, 2, 6}, {0xEF, Absolute, 3, 6},
		{0xFF, AbsoluteX, 3, 7}, {0xFB, AbsoluteY, 3, 7}, {0xE3, IndirectX, 2, 8}, {0xF3, IndirectY, 2, 8},
	})
	group("SLO", (*CPU).SLO, []rmw{
		{0x07, ZeroPage, 2, 5}, {0x17, ZeroPageX, 2, 6}, {0x0F, Absolute, 3, 6},
		{0x1F, AbsoluteX, 3, 7}, {0x1B, AbsoluteY, 3, 7}, {0x03, IndirectX, 2, 8}, {0x13, IndirectY, 2, 8},
	})
	group("RLA", (*CPU).RLA, []rmw{
		{0x27, ZeroPage, 2, 5}, {0x37, ZeroPageX, 2, 6}, {0x2F, Absolute, 3, 6},
		{0x3F, AbsoluteX, 3, 7}, {0x3B, AbsoluteY, 3, 7}, {0x23, IndirectX, 2, 8}, {0x33, IndirectY, 2, 8},
	})
	group("SRE", (*CPU).SRE, []rmw{
		{0x47, ZeroPage, 2, 5}, {0x57, ZeroPageX, 2, 6}, {0x4F, Absolute, 3, 6},
		{0x5F, AbsoluteX, 3, 7}, {0x5B, AbsoluteY, 3, 7}, {0x43, IndirectX, 2, 8}, {0x53, IndirectY, 2, 8},
	})
	group("RRA", (*CPU).RRA, []rmw{
		{0x67, ZeroPage, 2, 5}, {0x77, ZeroPageX, 2, 6}, {0x6F, Absolute, 3, 6},
		{0x7F, AbsoluteX, 3, 7}, {0x7B, AbsoluteY, 3, 7}, {0x63, IndirectX, 2, 8}, {0x73, IndirectY, 2, 8},
	})

	op(0x0B, "ANC", Immediate, 2, 2, (*CPU).ANC)
	op(0x2B, "ANC", Immediate, 2, 2, (*CPU).ANC)
	op(0x4B, "ALR", Immediate, 2, 2, (*CPU).ALR)
	op(0x6B, "ARR", Immediate, 2, 2, (*CPU).ARR)
	op(0xCB, "AXS", Immediate, 2, 2, (*CPU).AXS)
	op(0xEB, "SBC", Immediate, 2, 2, (*CPU).SBC) // unofficial duplicate of 0xE9

	op(0x9C, "SHY", AbsoluteX, 3, 5, (*CPU).SHY)
	op(0x9E, "SHX", AbsoluteY, 3, 5, (*CPU).SHX)
	op(0x9F, "AHX", AbsoluteY, 3, 5, (*CPU).AHX)
	op(0x93, "AHX", IndirectY, 2, 6, (*CPU).AHX)
	op(0x9B, "TAS", AbsoluteY, 3, 5, (*CPU).TAS)
	op(0xBB, "LAS", AbsoluteY, 3, 4, (*CPU).LAS)

	// Unofficial NOPs: 1-byte implied, 2-byte immediate ("SKB"),
	// 2-byte zero page, 2-byte zero page,X, 3-byte absolute ("TOP"),
	// 3-byte absolute,X.
	for _, c := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		op(c, "NOP", Implicit, 1, 2, (*CPU).NOP)
	}
	for _, c := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		op(c, "NOP", Immediate, 2, 2, (*CPU).NOP)
	}
	for _, c := range []uint8{0x04, 0x44, 0x64} {
		op(c, "NOP", ZeroPage, 2, 3, (*CPU).NOP)
	}
	for _, c := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		op(c, "NOP", ZeroPageX, 2, 4, (*CPU).NOP)
	}
	op(0x0C, "NOP", Absolute, 3, 4, (*CPU).NOP)
	for _, c := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		op(c, "NOP", AbsoluteX, 3, 4, (*CPU).NOP)
	}

	for _, c := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		op(c, "JAM", Implicit, 1, 2, (*CPU).JAM)
	}
}

func (c *CPU) ADC(mode uint8) {
	o := c.resolve(mode)
	c.addWithCarry(c.read(o.addr))
	c.addOopsCycle(o)
}

func (c *CPU) AND(mode uint8) {
	o := c.resolve(mode)
	c.A &= c.read(o.addr)
	c.setNegativeAndZero(c.A)
	c.addOopsCycle(o)
}

func (c *CPU) ASL(mode uint8) {
	if mode == Accumulator {
		c.setFlag(FlagCarry, c.A&0x80 != 0)
		c.A <<= 1
		c.setNegativeAndZero(c.A)
		return
	}
	o := c.resolve(mode)
	v := c.read(o.addr)
	c.setFlag(FlagCarry, v&0x80 != 0)
	nv := v << 1
	c.write(o.addr, nv)
	c.setNegativeAndZero(nv)
}

func (c *CPU) BCC(mode uint8) { c.branch(FlagCarry, false) }
func (c *CPU) BCS(mode uint8) { c.branch(FlagCarry, true) }
func (c *CPU) BEQ(mode uint8) { c.branch(FlagZero, true) }
func (c *CPU) BMI(mode uint8) { c.branch(FlagNegative, true) }
func (c *CPU) BNE(mode uint8) { c.branch(FlagZero, false) }
func (c *CPU) BPL(mode uint8) { c.branch(FlagNegative, false) }
func (c *CPU) BVC(mode uint8) { c.branch(FlagOverflow, false) }
func (c *CPU) BVS(mode uint8) { c.branch(FlagOverflow, true) }

func (c *CPU) BIT(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr)
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&FlagOverflow != 0)
	c.setFlag(FlagNegative, v&FlagNegative != 0)
}

func (c *CPU) BRK(mode uint8) {
	c.pushAddress(c.PC + 1)
	c.pushStack(c.P | FlagBreak | FlagUnused)
	c.flagsOn(FlagInterruptDisable)
	c.PC = c.read16(vectorBRK)
}

func (c *CPU) CLC(mode uint8) { c.flagsOff(FlagCarry) }
func (c *CPU) CLD(mode uint8) { c.flagsOff(FlagDecimal) }
func (c *CPU) CLI(mode uint8) { c.flagsOff(FlagInterruptDisable) }
func (c *CPU) CLV(mode uint8) { c.flagsOff(FlagOverflow) }

func (c *CPU) CMP(mode uint8) {
	o := c.resolve(mode)
	c.compare(c.A, c.read(o.addr))
	c.addOopsCycle(o)
}

func (c *CPU) CPX(mode uint8) {
	o := c.resolve(mode)
	c.compare(c.X, c.read(o.addr))
}

func (c *CPU) CPY(mode uint8) {
	o := c.resolve(mode)
	c.compare(c.Y, c.read(o.addr))
}

func (c *CPU) DEC(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr) - 1
	c.write(o.addr, v)
	c.setNegativeAndZero(v)
}

func (c *CPU) DEX(mode uint8) { c.X--; c.setNegativeAndZero(c.X) }
func (c *CPU) DEY(mode uint8) { c.Y--; c.setNegativeAndZero(c.Y) }

func (c *CPU) EOR(mode uint8) {
	o := c.resolve(mode)
	c.A ^= c.read(o.addr)
	c.setNegativeAndZero(c.A)
	c.addOopsCycle(o)
}

func (c *CPU) INC(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr) + 1
	c.write(o.addr, v)
	c.setNegativeAndZero(v)
}

func (c *CPU) INX(mode uint8) { c.X++; c.setNegativeAndZero(c.X) }
func (c *CPU) INY(mode uint8) { c.Y++; c.setNegativeAndZero(c.Y) }

func (c *CPU) JMP(mode uint8) {
	c.PC = c.resolve(mode).addr
}

func (c *CPU) JSR(mode uint8) {
	c.pushAddress(c.PC + 1)
	c.PC = c.resolve(mode).addr
}

func (c *CPU) LDA(mode uint8) {
	o := c.resolve(mode)
	c.A = c.read(o.addr)
	c.setNegativeAndZero(c.A)
	c.addOopsCycle(o)
}

func (c *CPU) LDX(mode uint8) {
	o := c.resolve(mode)
	c.X = c.read(o.addr)
	c.setNegativeAndZero(c.X)
	c.addOopsCycle(o)
}

func (c *CPU) LDY(mode uint8) {
	o := c.resolve(mode)
	c.Y = c.read(o.addr)
	c.setNegativeAndZero(c.Y)
	c.addOopsCycle(o)
}

func (c *CPU) LSR(mode uint8) {
	if mode == Accumulator {
		c.setFlag(FlagCarry, c.A&1 != 0)
		c.A >>= 1
		c.setNegativeAndZero(c.A)
		return
	}
	o := c.resolve(mode)
	v := c.read(o.addr)
	c.setFlag(FlagCarry, v&1 != 0)
	nv := v >> 1
	c.write(o.addr, nv)
	c.setNegativeAndZero(nv)
}

func (c *CPU) NOP(mode uint8) {
	if mode == Implicit {
		return
	}
	c.addOopsCycle(c.resolve(mode))
}

func (c *CPU) JAM(mode uint8) {
	glog.Warningf("pc=%04X: JAM opcode, halting instruction fetch", c.PC-1)
	c.halted = true
}

func (c *CPU) ORA(mode uint8) {
	o := c.resolve(mode)
	c.A |= c.read(o.addr)
	c.setNegativeAndZero(c.A)
	c.addOopsCycle(o)
}

func (c *CPU) PHA(mode uint8) { c.pushStack(c.A) }
func (c *CPU) PHP(mode uint8) { c.pushStack(c.P | FlagBreak | FlagUnused) }

func (c *CPU) PLA(mode uint8) {
	c.A = c.popStack()
	c.setNegativeAndZero(c.A)
}

func (c *CPU) PLP(mode uint8) {
	c.P = (c.popStack() &^ FlagBreak) | FlagUnused
}

func (c *CPU) ROL(mode uint8) {
	if mode == Accumulator {
		c.A = c.rotateLeft(c.A)
		c.setNegativeAndZero(c.A)
		return
	}
	o := c.resolve(mode)
	nv := c.rotateLeft(c.read(o.addr))
	c.write(o.addr, nv)
	c.setNegativeAndZero(nv)
}

func (c *CPU) ROR(mode uint8) {
	if mode == Accumulator {
		c.A = c.rotateRight(c.A)
		c.setNegativeAndZero(c.A)
		return
	}
	o := c.resolve(mode)
	nv := c.rotateRight(c.read(o.addr))
	c.write(o.addr, nv)
	c.setNegativeAndZero(nv)
}

func (c *CPU) RTI(mode uint8) {
	c.P = (c.popStack() &^ FlagBreak) | FlagUnused
	c.PC = c.popAddress()
}

func (c *CPU) RTS(mode uint8) {
	c.PC = c.popAddress() + 1
}

func (c *CPU) SBC(mode uint8) {
	o := c.resolve(mode)
	c.addWithCarry(^c.read(o.addr))
	c.addOopsCycle(o)
}

func (c *CPU) SEC(mode uint8) { c.flagsOn(FlagCarry) }
func (c *CPU) SED(mode uint8) { c.flagsOn(FlagDecimal) }
func (c *CPU) SEI(mode uint8) { c.flagsOn(FlagInterruptDisable) }

func (c *CPU) STA(mode uint8) { c.write(c.resolve(mode).addr, c.A) }
func (c *CPU) STX(mode uint8) { c.write(c.resolve(mode).addr, c.X) }
func (c *CPU) STY(mode uint8) { c.write(c.resolve(mode).addr, c.Y) }

func (c *CPU) TAX(mode uint8) { c.X = c.A; c.setNegativeAndZero(c.X) }
func (c *CPU) TAY(mode uint8) { c.Y = c.A; c.setNegativeAndZero(c.Y) }
func (c *CPU) TSX(mode uint8) { c.X = c.SP; c.setNegativeAndZero(c.X) }
func (c *CPU) TXA(mode uint8) { c.A = c.X; c.setNegativeAndZero(c.A) }
func (c *CPU) TXS(mode uint8) { c.SP = c.X }
func (c *CPU) TYA(mode uint8) { c.A = c.Y; c.setNegativeAndZero(c.A) }

// LAX loads both A and X from memory in one instruction — a composite of
// LDA and LDX that costs nothing extra to implement correctly.
func (c *CPU) LAX(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr)
	c.A, c.X = v, v
	c.setNegativeAndZero(v)
	c.addOopsCycle(o)
}

// SAX stores A AND X without touching any flags.
func (c *CPU) SAX(mode uint8) {
	c.write(c.resolve(mode).addr, c.A&c.X)
}

// DCP decrements memory then compares it against A (DEC+CMP).
func (c *CPU) DCP(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr) - 1
	c.write(o.addr, v)
	c.compare(c.A, v)
}

// ISC increments memory then subtracts it from A with carry (INC+SBC).
func (c *CPU) ISC(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr) + 1
	c.write(o.addr, v)
	c.addWithCarry(^v)
}

// SLO shifts memory left then ORs it into A (ASL+ORA).
func (c *CPU) SLO(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr)
	c.setFlag(FlagCarry, v&0x80 != 0)
	nv := v << 1
	c.write(o.addr, nv)
	c.A |= nv
	c.setNegativeAndZero(c.A)
}

// RLA rotates memory left then ANDs it into A (ROL+AND).
func (c *CPU) RLA(mode uint8) {
	o := c.resolve(mode)
	nv := c.rotateLeft(c.read(o.addr))
	c.write(o.addr, nv)
	c.A &= nv
	c.setNegativeAndZero(c.A)
}

// SRE shifts memory right then XORs it into A (LSR+EOR).
func (c *CPU) SRE(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr)
	c.setFlag(FlagCarry, v&1 != 0)
	nv := v >> 1
	c.write(o.addr, nv)
	c.A ^= nv
	c.setNegativeAndZero(c.A)
}

// RRA rotates memory right then adds it into A with carry (ROR+ADC).
func (c *CPU) RRA(mode uint8) {
	o := c.resolve(mode)
	nv := c.rotateRight(c.read(o.addr))
	c.write(o.addr, nv)
	c.addWithCarry(nv)
}

// ANC ANDs A with memory, then copies the resulting sign bit into Carry
// as though the result had been shifted (it shares an opcode encoding
// with ASL/ROL on the real chip's decode PLA).
func (c *CPU) ANC(mode uint8) {
	o := c.resolve(mode)
	c.A &= c.read(o.addr)
	c.setNegativeAndZero(c.A)
	c.setFlag(FlagCarry, c.A&0x80 != 0)
}

// ALR (also known as ASR) ANDs A with memory, then shifts the result
// right one bit (AND+LSR).
func (c *CPU) ALR(mode uint8) {
	o := c.resolve(mode)
	c.A &= c.read(o.addr)
	c.setFlag(FlagCarry, c.A&1 != 0)
	c.A >>= 1
	c.setNegativeAndZero(c.A)
}

// ARR ANDs A with memory, then rotates right, setting Carry/Overflow from
// unusual bit positions — one of the odder quirks of the 6502's illegal
// opcode decode logic.
func (c *CPU) ARR(mode uint8) {
	o := c.resolve(mode)
	t := c.A & c.read(o.addr)
	res := (t >> 1) | ((c.P & FlagCarry) << 7)
	c.A = res
	c.setFlag(FlagCarry, res&0x40 != 0)
	c.setFlag(FlagOverflow, ((res>>6)^(res>>5))&1 != 0)
	c.setNegativeAndZero(res)
}

// AXS (also known as SBX) ANDs A with X, then subtracts memory from that
// without involving the carry flag, storing the result in X.
func (c *CPU) AXS(mode uint8) {
	o := c.resolve(mode)
	ax := c.A & c.X
	v := c.read(o.addr)
	c.setFlag(FlagCarry, ax >= v)
	c.X = ax - v
	c.setNegativeAndZero(c.X)
}

// SHY, SHX, AHX and TAS are the "unstable" store-group illegals: on real
// hardware their result depends on internal bus timing around the
// indexed address's high-byte carry, and varies across 6502 fabrication
// batches. This models the commonly documented approximation (AND the
// register(s) against the target's high byte, plus one) since no
// conforming ROM relies on the true unstable behavior.
func (c *CPU) SHY(mode uint8) {
	o := c.resolve(mode)
	c.write(o.addr, c.Y&uint8((o.addr>>8)+1))
}

func (c *CPU) SHX(mode uint8) {
	o := c.resolve(mode)
	c.write(o.addr, c.X&uint8((o.addr>>8)+1))
}

func (c *CPU) AHX(mode uint8) {
	o := c.resolve(mode)
	c.write(o.addr, c.A&c.X&uint8((o.addr>>8)+1))
}

func (c *CPU) TAS(mode uint8) {
	o := c.resolve(mode)
	c.SP = c.A & c.X
	c.write(o.addr, c.SP&uint8((o.addr>>8)+1))
}

// LAS ANDs memory with SP and loads the result into A, X and SP at once.
func (c *CPU) LAS(mode uint8) {
	o := c.resolve(mode)
	v := c.read(o.addr) & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setNegativeAndZero(v)
	c.addOopsCycle(o)
}
