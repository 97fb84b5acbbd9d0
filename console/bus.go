// Package console implements the motherboard: the single owner of the
// CPU, the PPU, system RAM, the two controller ports and the cartridge,
// wiring them together into the master clock and the CPU/PPU memory
// maps described by the hardware.
// https://www.nesdev.org/wiki/CPU_memory_map
package console

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/mos6502"
	"github.com/bdwalton/nescore/ppu"
)

const (
	ramSize = 0x0800 // 2 KiB built-in work RAM, mirrored through $1FFF

	regOAMDMA    = 0x4014
	regJoypad1   = 0x4016
	regJoypad2   = 0x4017
	ioRegionEnd  = 0x4020 // $4018-$401F: unused/APU test regs, open bus
	cartWindow   = 0x4020 // $4020-$FFFF: cartridge PRG
)

// Bus is the motherboard: it owns every NES component and is the sole
// address decoder for both the CPU and PPU buses. It implements
// mos6502.Bus directly (CPU address space) and hands the PPU a small
// adapter (ppuBus) onto the cartridge's CHR/nametable window.
type Bus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	mapper cartridge.Mapper

	ram [ramSize]uint8

	pad1, pad2 controller

	// openBus latches the last byte returned by any mapped read,
	// returned for addresses with no backing device.
	openBus uint8

	masterClock uint64
}

type ppuBus struct {
	mapper cartridge.Mapper
}

func (b *ppuBus) Read(addr uint16) uint8       { return b.mapper.PPURead(addr) }
func (b *ppuBus) Write(addr uint16, val uint8) { b.mapper.PPUWrite(addr, val) }

// New constructs a motherboard around mapper, wires the CPU and PPU to
// it, and runs the documented power-on reset sequence.
func New(mapper cartridge.Mapper) *Bus {
	b := &Bus{mapper: mapper}
	b.ppu = ppu.New(&ppuBus{mapper: mapper})
	b.cpu = mos6502.New(b)
	return b
}

// Reset re-triggers the CPU's reset sequence without clearing RAM, VRAM
// or OAM, matching a real NES's reset-button behavior.
func (b *Bus) Reset() {
	b.cpu.Reset()
}

// SetPC forces the program counter, used by trace-comparison tooling to
// start execution at a fixed address (nestest's automation entry point)
// instead of the reset vector.
func (b *Bus) SetPC(pc uint16) {
	b.cpu.PC = pc
}

// Read implements mos6502.Bus: the CPU-visible address space.
func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = b.ram[addr&0x07FF]
	case addr < 0x4000:
		v = b.ppu.CPURead(uint8(addr & 0x0007))
	case addr == regJoypad1:
		v = (b.openBus &^ 0x01) | b.pad1.read()
	case addr == regJoypad2:
		v = (b.openBus &^ 0x01) | b.pad2.read()
	case addr < ioRegionEnd:
		return b.openBus
	case addr >= cartWindow:
		v = b.mapper.CPURead(addr)
	default:
		return b.openBus
	}
	b.openBus = v
	return v
}

// Write implements mos6502.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = val
	case addr < 0x4000:
		b.ppu.CPUWrite(uint8(addr&0x0007), val)
	case addr == regOAMDMA:
		b.oamDMA(val)
	case addr == regJoypad1:
		b.pad1.write(val)
		b.pad2.write(val) // $4016 strobes both pads
	case addr == regJoypad2:
		// $4017 is the APU frame counter on real hardware; out of
		// scope here, so the write is simply absorbed.
	case addr < ioRegionEnd:
		// unused I/O range
	case addr >= cartWindow:
		b.mapper.CPUWrite(addr, val)
	}
}

// SetController1 and SetController2 feed live button state into the two
// joypad ports. The frontend is responsible for translating its own
// input source (keyboard, gamepad) into the Button* bitmask.
func (b *Bus) SetController1(mask uint8) { b.pad1.SetButtons(mask) }
func (b *Bus) SetController2(mask uint8) { b.pad2.SetButtons(mask) }

// oamDMA copies 256 bytes from $NN00-$NNFF into PPU OAM starting at
// whatever OAMADDR currently holds, and stalls the CPU for 513 or 514
// cycles depending on whether the write lands on an even or odd CPU
// cycle (the source the spec was distilled from doesn't model this;
// nesdev documents it precisely).
// https://www.nesdev.org/wiki/DMA
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(b.Read(base + uint16(i)))
	}

	cycles := uint16(513)
	if b.cpu.TotalCycles%2 == 1 {
		cycles = 514
	}
	b.cpu.Stall(cycles)
}

// tickMaster advances the PPU one dot and, every third dot, the CPU one
// cycle, forwarding the PPU's vblank edge to the CPU as NMI.
func (b *Bus) tickMaster() {
	b.ppu.Clock()
	if b.ppu.PollNMI() {
		b.cpu.NMI()
	}
	if b.masterClock%3 == 0 {
		b.cpu.Tick()
	}
	b.masterClock++
}

// TickFrame runs the master clock until a full frame has been produced
// and returns the 256x240 RGB framebuffer. The returned slice is only
// valid until the next call.
func (b *Bus) TickFrame() []byte {
	for !b.ppu.IsFrameReady() {
		b.tickMaster()
	}
	return b.ppu.FrameBuffer()
}

// DebugStepInstruction advances the CPU by exactly one instruction and
// returns the trace line describing the state *before* that instruction
// executed, in the fixed column layout consumed by a reference-log
// comparator. Cycles still in flight (a reset sequence, a DMA stall) are
// run off first.
func (b *Bus) DebugStepInstruction() string {
	for !b.cpu.AtInstructionBoundary() {
		b.tickMaster()
	}
	line := b.traceLine()

	for b.cpu.AtInstructionBoundary() {
		b.tickMaster()
	}
	for !b.cpu.AtInstructionBoundary() {
		b.tickMaster()
	}

	return line
}

func (b *Bus) traceLine() string {
	return fmt.Sprintf("%s PPU:%3d,%3d CYC:%d",
		b.cpu.TraceColumns(), b.ppu.Dot(), b.ppu.Scanline(), b.cpu.TotalCycles)
}

// debugDump bundles the references dump_debug_data() exposes: nametables,
// palette and CHR, each a read-only alias of live memory.
type debugDump struct {
	Nametables []byte
	Palette    []byte
	CHR        []byte
}

// DumpDebugData returns nametables, palette RAM and CHR for inspection
// tooling. The returned slices alias live memory and must be treated as
// read-only.
func (b *Bus) DumpDebugData() debugDump {
	return debugDump{
		Nametables: b.mapper.DumpNametables(),
		Palette:    b.ppu.DumpPalette(),
		CHR:        b.mapper.DumpCHR(),
	}
}

// Run drives the master clock continuously, calling onFrame each time a
// frame completes, until stop reports true. Intended for a frontend's
// background goroutine, grounded on the teacher's own Run(ctx) loop.
func (b *Bus) Run(stop func() bool, onFrame func([]byte)) {
	for !stop() {
		b.tickMaster()
		if b.ppu.IsFrameReady() {
			onFrame(b.ppu.FrameBuffer())
		}
	}
}

