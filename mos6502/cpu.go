// Package mos6502 implements the MOS Technology 6502 processor as
// found in the Ricoh 2A03 (the NES's CPU), including every documented
// opcode, the undocumented opcodes other than $8B and $AB (those two take
// the unknown-opcode path: a 1-byte, 2-cycle NOP with a logged warning),
// and exact per-instruction cycle accounting.
// https://en.wikipedia.org/wiki/MOS_Technology_6502
package mos6502

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/golang/glog"
)

// 6502 Interrupt Vectors
// https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
	vectorBRK   = vectorIRQ
)

// 6502 Processor Status Flags
// https://www.nesdev.org/obelisk-6502-guide/registers.html
const (
	FlagCarry            = 1 << 0 // C
	FlagZero             = 1 << 1 // Z
	FlagInterruptDisable = 1 << 2 // I
	FlagDecimal          = 1 << 3 // D
	FlagBreak            = 1 << 4 // B
	FlagUnused           = 1 << 5 // always on, never cleared except by hardware reset quirks
	FlagOverflow         = 1 << 6 // V
	FlagNegative         = 1 << 7 // N
)

// Addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	Implicit = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // Indexed Indirect, (zp,X)
	IndirectY // Indirect Indexed, (zp),Y
)

var modeNames = map[uint8]string{
	Implicit: "IMPLICIT", Accumulator: "ACCUMULATOR", Immediate: "IMMEDIATE",
	ZeroPage: "ZEROPAGE", ZeroPageX: "ZEROPAGE,X", ZeroPageY: "ZEROPAGE,Y",
	Relative: "RELATIVE", Absolute: "ABSOLUTE", AbsoluteX: "ABSOLUTE,X",
	AbsoluteY: "ABSOLUTE,Y", Indirect: "INDIRECT", IndirectX: "(INDIRECT,X)",
	IndirectY: "(INDIRECT),Y",
}

const stackPage = 0x0100

// interruptKind distinguishes the two interrupt lines the CPU samples at
// instruction boundaries: NMI is edge-triggered and always serviced once
// latched; IRQ is level-triggered and masked by FlagInterruptDisable.
type interruptKind uint8

const (
	noInterrupt interruptKind = iota
	nmiInterrupt
	irqInterrupt
)

// CPU implements the MOS 6502/2A03 instruction set. It reads and writes
// memory exclusively through Bus — it owns no address-decoding logic of
// its own, since the motherboard (package console) is the sole owner of
// the system memory map.
type CPU struct {
	A, X, Y uint8
	P       uint8
	SP      uint8
	PC      uint16

	Bus Bus

	// TotalCycles is the running count of CPU cycles elapsed since
	// power-on, used by the motherboard to keep the PPU's 3:1 clock
	// ratio and by trace output.
	TotalCycles uint64

	// cycles counts down the Tick calls left in the current
	// instruction, interrupt service routine or stall; the Tick that
	// takes it from 1 to 0 fetches the next instruction. An
	// instruction's full effect is applied on the Tick that fetches
	// it; the remaining cycles just elapse.
	cycles uint16

	nmiPending bool // edge-latched, cleared once serviced
	irqLine    bool // level; held by whichever device asserted it

	// halted is set by a JAM/KIL opcode. Real 2A03 silicon locks up
	// permanently; conforming ROMs never execute one, so we log and
	// freeze instruction fetch rather than modeling a true hang.
	halted bool
}

// New constructs a CPU wired to bus and loaded to the reset vector, per
// the documented 2A03 power-up state.
// https://www.nesdev.org/wiki/CPU_power_up_state
func New(bus Bus) *CPU {
	c := &CPU{
		Bus: bus,
		SP:  0xFD,
		P:   FlagUnused | FlagInterruptDisable,
		// A real 2A03 spends 7 cycles running the reset sequence
		// before the first instruction fetch; TotalCycles starts
		// there so CYC columns in trace output line up with a
		// reference log from power-on.
		TotalCycles: 7,
	}
	c.PC = c.read16(vectorReset)
	return c
}

func (c *CPU) String() string {
	return fmt.Sprintf("A,X,Y: %3d,%3d,%3d PC:%04X SP:%02X P:%s", c.A, c.X, c.Y, c.PC, c.SP, statusString(c.P))
}

func statusString(p uint8) string {
	var sb strings.Builder
	for _, f := range []struct {
		mask byte
		c    byte
	}{
		{FlagNegative, 'N'}, {FlagOverflow, 'V'}, {FlagUnused, '-'}, {FlagBreak, 'B'},
		{FlagDecimal, 'D'}, {FlagInterruptDisable, 'I'}, {FlagZero, 'Z'}, {FlagCarry, 'C'},
	} {
		if p&f.mask != 0 {
			sb.WriteByte(f.c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Reset puts the CPU through the documented reset sequence: SP drops by
// 3 (as if pushing, without writing since /RESET holds R/W high), I is
// set, and PC loads from the reset vector. Takes 7 cycles on real
// hardware; Reset schedules them itself, so callers just keep ticking.
func (c *CPU) Reset() {
	c.SP -= 3
	c.flagsOn(FlagInterruptDisable)
	c.PC = c.read16(vectorReset)
	c.cycles = 7
}

// NMI latches a non-maskable interrupt request. It is edge-triggered: the
// motherboard calls this once per PPU vblank edge, not continuously.
func (c *CPU) NMI() {
	c.nmiPending = true
}

// SetIRQLine sets or clears the level-triggered IRQ line. Multiple
// devices (mappers, APU frame counter) may share it; the motherboard ORs
// their requests together before calling this.
func (c *CPU) SetIRQLine(asserted bool) {
	c.irqLine = asserted
}

// Stall adds n cycles of dead time before the next fetch, used by the
// motherboard to model the OAM DMA alignment/transfer cost without the
// CPU itself knowing anything about DMA.
func (c *CPU) Stall(n uint16) {
	c.cycles += n
}

// AtInstructionBoundary reports whether the next Tick will fetch a new
// instruction (or service a pending interrupt) rather than continue one
// already in flight. The motherboard's debug step uses this to know when
// a single dbg_step_instruction() call should stop ticking.
func (c *CPU) AtInstructionBoundary() bool {
	return c.cycles <= 1
}

// Tick advances the CPU by one cycle. The motherboard calls this once
// per CPU cycle (a third as often as the PPU dot clock).
func (c *CPU) Tick() {
	c.TotalCycles++

	if c.cycles > 0 {
		c.cycles--
		if c.cycles > 0 {
			return
		}
	}

	if c.halted {
		return
	}

	if kind := c.pendingInterrupt(); kind != noInterrupt {
		c.serviceInterrupt(kind)
		return
	}

	c.executeNext()
}

func (c *CPU) pendingInterrupt() interruptKind {
	if c.nmiPending {
		return nmiInterrupt
	}
	if c.irqLine && c.P&FlagInterruptDisable == 0 {
		return irqInterrupt
	}
	return noInterrupt
}

// serviceInterrupt runs the documented 7-cycle interrupt sequence: push
// PCH, push PCL, push P (with B clear, unlike BRK), set I, load PC from
// the appropriate vector.
func (c *CPU) serviceInterrupt(kind interruptKind) {
	vector := uint16(vectorIRQ)
	if kind == nmiInterrupt {
		vector = vectorNMI
		c.nmiPending = false
	}

	c.pushAddress(c.PC)
	c.pushStack((c.P | FlagUnused) &^ FlagBreak)
	c.flagsOn(FlagInterruptDisable)
	c.PC = c.read16(vector)
	c.cycles = 7
}

var invalidInstruction = fmt.Errorf("invalid instruction")

func (c *CPU) executeNext() {
	opByte := c.read(c.PC)
	op := &opcodeTable[opByte]
	if op.fn == nil {
		glog.Warningf("pc=%04X: unimplemented opcode 0x%02X, treating as 1-byte NOP", c.PC, opByte)
		c.PC++
		c.cycles = 2
		return
	}

	c.cycles = uint16(op.cycles)
	c.PC++
	before := c.PC

	op.fn(c, op.mode)

	// If the instruction didn't itself change PC (branch taken, jump,
	// interrupt return), advance past its remaining operand bytes.
	if c.PC == before {
		c.PC += uint16(op.bytes) - 1
	}
}

// read returns the byte at addr.
func (c *CPU) read(addr uint16) uint8 {
	return c.Bus.Read(addr)
}

// read16 returns the two bytes at addr, little-endian.
func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return (hi << 8) | lo
}

// read16ZeroPageWrap reads a 16-bit pointer from a zero-page address,
// wrapping within page zero instead of crossing into page one — the
// famous 6502 JMP ($xxFF) / indirect zero-page bug's little sibling.
func (c *CPU) read16ZeroPageWrap(addr uint8) uint16 {
	lo := uint16(c.read(uint16(addr)))
	hi := uint16(c.read(uint16(addr + 1)))
	return (hi << 8) | lo
}

func (c *CPU) write(addr uint16, val uint8) {
	c.Bus.Write(addr, val)
}

func (c *CPU) write16(addr, val uint16) {
	c.write(addr, uint8(val&0x00FF))
	c.write(addr+1, uint8(val>>8))
}

// operand describes the resolved operand of the instruction currently
// executing: its effective address (meaningless for Accumulator/
// Implicit) and whether resolving it crossed a page boundary.
type operand struct {
	addr        uint16
	pageCrossed bool
}

// resolve computes the effective address for mode, assuming PC currently
// points at the first operand byte. It also reports whether an indexed
// mode crossed a page boundary; read handlers turn that into the "oops
// cycle" via addOopsCycle.
func (c *CPU) resolve(mode uint8) operand {
	switch mode {
	case Accumulator, Implicit:
		panic("mos6502: resolve called for an addressing mode with no operand address")
	case Immediate:
		return operand{addr: c.PC}
	case ZeroPage:
		return operand{addr: uint16(c.read(c.PC))}
	case ZeroPageX:
		return operand{addr: uint16(c.read(c.PC) + c.X)}
	case ZeroPageY:
		return operand{addr: uint16(c.read(c.PC) + c.Y)}
	case Absolute:
		return operand{addr: c.read16(c.PC)}
	case AbsoluteX:
		base := c.read16(c.PC)
		addr := base + uint16(c.X)
		return operand{addr: addr, pageCrossed: pageCrossed(base, addr)}
	case AbsoluteY:
		base := c.read16(c.PC)
		addr := base + uint16(c.Y)
		return operand{addr: addr, pageCrossed: pageCrossed(base, addr)}
	case Indirect:
		ptr := c.read16(c.PC)
		return operand{addr: c.indirectJMPTarget(ptr)}
	case IndirectX:
		zp := c.read(c.PC) + c.X
		return operand{addr: c.read16ZeroPageWrap(zp)}
	case IndirectY:
		zp := c.read(c.PC)
		base := c.read16ZeroPageWrap(zp)
		addr := base + uint16(c.Y)
		return operand{addr: addr, pageCrossed: pageCrossed(base, addr)}
	case Relative:
		// Relative to PC *after* the full 2-byte instruction: PC
		// currently points at the single operand byte, so +1 gets
		// us past it to where the branch is actually computed from.
		return operand{addr: (c.PC + 1) + uint16(int8(c.read(c.PC)))}
	default:
		panic(fmt.Sprintf("mos6502: unknown addressing mode %d", mode))
	}
}

// indirectJMPTarget reproduces the original 6502's page-wrap bug: if the
// low byte of the pointer is $FF, the high byte is fetched from the start
// of the *same* page instead of the next one.
func (c *CPU) indirectJMPTarget(ptr uint16) uint16 {
	lo := uint16(c.read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.read(hiAddr))
	return (hi << 8) | lo
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// addOopsCycle applies the +1 cycle penalty for indexed addressing modes
// that crossed a page boundary. Only applies to read instructions; RMW
// and store instructions always pay the worst case and already have it
// baked into their table cycle counts.
func (c *CPU) addOopsCycle(o operand) {
	if o.pageCrossed {
		c.cycles++
	}
}

func (c *CPU) flagsOn(mask uint8)  { c.P |= mask }
func (c *CPU) flagsOff(mask uint8) { c.P &^= mask }

func (c *CPU) setFlag(mask uint8, on bool) {
	if on {
		c.flagsOn(mask)
	} else {
		c.flagsOff(mask)
	}
}

func (c *CPU) setNegativeAndZero(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

func (c *CPU) stackAddr() uint16 { return stackPage + uint16(c.SP) }

func (c *CPU) pushStack(v uint8) {
	c.write(c.stackAddr(), v)
	c.SP--
}

func (c *CPU) popStack() uint8 {
	c.SP++
	return c.read(c.stackAddr())
}

func (c *CPU) pushAddress(addr uint16) {
	c.pushStack(uint8(addr >> 8))
	c.pushStack(uint8(addr))
}

func (c *CPU) popAddress() uint16 {
	lo := uint16(c.popStack())
	hi := uint16(c.popStack())
	return (hi << 8) | lo
}

// branch jumps to the relative operand's target if the status bits in
// mask being set matches want, applying the standard +1 cycle for a
// taken branch and a further +1 if it crosses a page.
func (c *CPU) branch(mask uint8, want bool) {
	o := c.resolve(Relative)
	if (c.P&mask != 0) != want {
		return
	}
	c.cycles++
	if pageCrossed(c.PC+1, o.addr) {
		c.cycles++
	}
	c.PC = o.addr
}

// addWithCarry implements both ADC and, via one's-complement of the
// operand, SBC.
func (c *CPU) addWithCarry(v uint8) {
	sum := uint16(c.A) + uint16(v) + uint16(c.P&FlagCarry)
	res := uint8(sum)

	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^res)&(v^res)&0x80 != 0)
	c.A = res
	c.setNegativeAndZero(c.A)
}

func (c *CPU) compare(reg, v uint8) {
	c.setFlag(FlagCarry, reg >= v)
	c.setNegativeAndZero(reg - v)
}

func (c *CPU) rotateLeft(v uint8) uint8 {
	carryIn := c.P & FlagCarry
	c.setFlag(FlagCarry, v&0x80 != 0)
	return (v << 1) | carryIn
}

func (c *CPU) rotateRight(v uint8) uint8 {
	carryIn := (c.P & FlagCarry) << 7
	c.setFlag(FlagCarry, v&FlagCarry != 0)
	return bits.RotateLeft8(v, -1)&0x7F | carryIn
}
