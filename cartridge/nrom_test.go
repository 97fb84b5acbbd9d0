package cartridge

import (
	"testing"

	"github.com/bdwalton/nescore/rom"
)

func newTestNROM(prgSize int, chr []byte, m rom.Mirroring) *nrom {
	prg := make([]byte, prgSize)
	for i := range prg {
		prg[i] = uint8(i)
	}
	isRAM := chr == nil
	if isRAM {
		chr = make([]byte, 8192)
	}
	vramSize := nametableSize
	if m == rom.MirrorFourScreen {
		vramSize = fourScreenNametableSize
	}
	return &nrom{
		prg:       prg,
		chr:       chr,
		chrIsRAM:  isRAM,
		prgRAM:    make([]byte, 8192),
		vram:      make([]byte, vramSize),
		mirroring: m,
	}
}

func TestNROM16KMirrors(t *testing.T) {
	m := newTestNROM(16384, make([]byte, 8192), rom.MirrorHorizontal)
	if got, want := m.CPURead(0x8000), m.CPURead(0xC000); got != want {
		t.Errorf("16K image: CPURead(0x8000)=%d != CPURead(0xC000)=%d", got, want)
	}
	if got, want := m.CPURead(0xFFFF), m.CPURead(0xBFFF); got != want {
		t.Errorf("16K image: CPURead(0xFFFF)=%d != CPURead(0xBFFF)=%d", got, want)
	}
}

func TestNROM32KNoMirror(t *testing.T) {
	m := newTestNROM(32768, make([]byte, 8192), rom.MirrorHorizontal)
	m.prg[0] = 0x11
	m.prg[0x4000] = 0x22
	if got, want := m.CPURead(0x8000), uint8(0x11); got != want {
		t.Errorf("CPURead(0x8000) = 0x%02X, want 0x%02X", got, want)
	}
	if got, want := m.CPURead(0xC000), uint8(0x22); got != want {
		t.Errorf("CPURead(0xC000) = 0x%02X, want 0x%02X (distinct bank, not mirrored)", got, want)
	}
}

func TestNROMPRGRAM(t *testing.T) {
	m := newTestNROM(16384, make([]byte, 8192), rom.MirrorHorizontal)
	m.CPUWrite(0x6000, 0x42)
	if got, want := m.CPURead(0x6000), uint8(0x42); got != want {
		t.Errorf("PRG RAM round trip: got %d, want %d", got, want)
	}
}

func TestNROMCPUWriteToPRGIsIgnored(t *testing.T) {
	m := newTestNROM(16384, make([]byte, 8192), rom.MirrorHorizontal)
	before := m.CPURead(0x8000)
	m.CPUWrite(0x8000, 0xFF)
	if got := m.CPURead(0x8000); got != before {
		t.Errorf("write to $8000 on NROM mutated PRG: got %d, want unchanged %d", got, before)
	}
}

func TestNROMCHRRAMWritable(t *testing.T) {
	m := newTestNROM(16384, nil, rom.MirrorHorizontal)
	m.PPUWrite(0x0010, 0x55)
	if got, want := m.PPURead(0x0010), uint8(0x55); got != want {
		t.Errorf("CHR RAM round trip: got %d, want %d", got, want)
	}
}

func TestNROMCHRROMNotWritable(t *testing.T) {
	chr := make([]byte, 8192)
	chr[0x10] = 0x99
	m := newTestNROM(16384, chr, rom.MirrorHorizontal)
	m.PPUWrite(0x0010, 0x01)
	if got, want := m.PPURead(0x0010), uint8(0x99); got != want {
		t.Errorf("CHR ROM write took effect: got %d, want unchanged %d", got, want)
	}
}

func TestNROMNametableMirroring(t *testing.T) {
	m := newTestNROM(16384, make([]byte, 8192), rom.MirrorVertical)
	m.PPUWrite(0x2000, 0xAB)
	if got, want := m.PPURead(0x2800), uint8(0xAB); got != want {
		t.Errorf("vertical mirroring: PPURead(0x2800) = %d, want %d (mirrors 0x2000)", got, want)
	}
	if got, want := m.PPURead(0x2400), uint8(0); got != want {
		t.Errorf("vertical mirroring: PPURead(0x2400) = %d, want %d (distinct table)", got, want)
	}
}

func TestNROMNametableMirrorAt3000(t *testing.T) {
	m := newTestNROM(16384, make([]byte, 8192), rom.MirrorHorizontal)
	m.PPUWrite(0x2000, 0x7E)
	if got, want := m.PPURead(0x3000), uint8(0x7E); got != want {
		t.Errorf("$3000 mirror of $2000: got %d, want %d", got, want)
	}
}
