package console

import (
	"testing"

	"github.com/bdwalton/nescore/cartridge"
)

func newTestBus() *Bus {
	return New(cartridge.NewDummy())
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x0010, 0x42)

	for _, mirror := range []uint16{0x0010, 0x0810, 0x1010, 0x1810} {
		if got := b.Read(mirror); got != 0x42 {
			t.Errorf("Read(%04X) = %02X, want 42", mirror, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x3FFB, 0x10) // mirrors $2003 (OAMADDR)
	b.Write(0x2004, 0x77) // OAMDATA, direct

	if got := b.ppu.DumpOAM()[0x10]; got != 0x77 {
		t.Errorf("OAM[0x10] = %02X, want 77 (OAMADDR set via mirrored port)", got)
	}
}

func TestOpenBusReturnsLastMappedRead(t *testing.T) {
	b := newTestBus()
	b.mapper.(*cartridge.Dummy).CPUMem[0x8000] = 0x99
	b.Read(0x8000)

	if got := b.Read(0x4018); got != 0x99 {
		t.Errorf("open-bus read = %02X, want 99 (last mapped read)", got)
	}
}

func TestOAMDMACopiesPageIntoOAM(t *testing.T) {
	b := newTestBus()
	b.Write(0x2003, 0x00) // OAMADDR
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	before := b.cpu.TotalCycles
	b.Write(regOAMDMA, 0x02)

	for i := 0; i < 256; i++ {
		if got := b.ppu.DumpOAM()[i]; got != uint8(i) {
			t.Errorf("OAM[%d] = %d, want %d", i, got, i)
		}
	}

	elapsed := b.cpu.TotalCycles - before
	if elapsed != 513 && elapsed != 514 {
		t.Errorf("OAM DMA stalled CPU for %d cycles, want 513 or 514", elapsed)
	}
}

func TestControllerShiftsOutLatchedButtons(t *testing.T) {
	b := newTestBus()
	b.SetController1(ButtonA | ButtonStart)

	b.Write(0x4016, 0x01) // strobe high: latch continuously
	b.Write(0x4016, 0x00) // strobe low: freeze shift register

	var bits [8]uint8
	for i := range bits {
		bits[i] = b.Read(0x4016) & 0x01
	}

	want := [8]uint8{1, 0, 0, 1, 0, 0, 0, 0} // A, _, _, Start, ...
	if bits != want {
		t.Errorf("shifted bits = %v, want %v", bits, want)
	}

	if got := b.Read(0x4016) & 0x01; got != 1 {
		t.Errorf("read past 8th bit = %d, want 1", got)
	}
}

func TestTickFrameAdvancesClockRatio(t *testing.T) {
	b := newTestBus()
	before := b.cpu.TotalCycles
	b.TickFrame()
	elapsed := b.cpu.TotalCycles - before
	if elapsed == 0 {
		t.Errorf("TickFrame produced no CPU cycles")
	}
}

func TestDebugStepInstructionAdvancesExactlyOneInstruction(t *testing.T) {
	b := newTestBus()
	b.mapper.(*cartridge.Dummy).CPUMem[0xFFFC] = 0x00
	b.mapper.(*cartridge.Dummy).CPUMem[0xFFFD] = 0x80
	b.mapper.(*cartridge.Dummy).CPUMem[0x8000] = 0xEA // NOP
	b.mapper.(*cartridge.Dummy).CPUMem[0x8001] = 0xEA // NOP
	b.Reset()
	b.SetPC(0x8000)

	line := b.DebugStepInstruction()
	if line == "" {
		t.Fatalf("empty trace line")
	}
	if b.cpu.PC != 0x8001 {
		t.Errorf("PC = %04X after one NOP, want 8001", b.cpu.PC)
	}
}
