package cartridge

import "github.com/bdwalton/nescore/rom"

func init() {
	RegisterMapper(0, newNROM)
}

// nrom implements mapper 0 (NROM): no bank switching. 16 KiB PRG images
// mirror into both halves of the $8000-$FFFF window; 32 KiB images fill it
// directly. CHR is either fixed ROM or, if the image declares no CHR
// blocks, 8 KiB of CHR RAM. Optional 8 KiB of battery-backed PRG RAM lives
// at $6000-$7FFF.
type nrom struct {
	prg       []byte
	chr       []byte
	chrIsRAM  bool
	prgRAM    []byte
	vram      []byte
	mirroring rom.Mirroring
	saveRAM   bool
}

func newNROM(r *rom.ROM) Mapper {
	chr := r.CHR
	isRAM := r.HasCHRRAM()
	if isRAM {
		chr = make([]byte, 8192)
	}

	m := r.Header.MirroringMode()
	vramSize := nametableSize
	if m == rom.MirrorFourScreen {
		vramSize = fourScreenNametableSize
	}

	return &nrom{
		prg:       r.PRG,
		chr:       chr,
		chrIsRAM:  isRAM,
		prgRAM:    make([]byte, 8192),
		vram:      make([]byte, vramSize),
		mirroring: m,
		saveRAM:   r.Header.HasBatteryBackedRAM(),
	}
}

func (m *nrom) ID() uint16   { return 0 }
func (m *nrom) Name() string { return "NROM" }

// prgIndex translates a $8000-$FFFF CPU address into an index into prg,
// mirroring a 16 KiB image across both halves of the window.
func (m *nrom) prgIndex(addr uint16) int {
	off := int(addr - 0x8000)
	if len(m.prg) <= 16384 {
		off %= 16384
	}
	return off % len(m.prg)
}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.prg[m.prgIndex(addr)]
	case addr >= 0x6000:
		return m.prgRAM[addr-0x6000]
	default:
		return 0
	}
}

func (m *nrom) CPUPeek(addr uint16) uint8 {
	return m.CPURead(addr)
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
	}
	// Writes to $8000-$FFFF are no-ops on NROM: there's no bank register.
}

func (m *nrom) ppuIndex(addr uint16) (vram bool, idx int) {
	addr &= 0x3FFF
	if addr < 0x2000 {
		return false, int(addr) % len(m.chr)
	}
	return true, int(mirrorNametable(addr&0x2FFF, m.mirroring))
}

func (m *nrom) PPURead(addr uint16) uint8 {
	isVRAM, idx := m.ppuIndex(addr)
	if isVRAM {
		return m.vram[idx]
	}
	return m.chr[idx]
}

func (m *nrom) PPUPeek(addr uint16) uint8 {
	return m.PPURead(addr)
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	isVRAM, idx := m.ppuIndex(addr)
	if isVRAM {
		m.vram[idx] = val
		return
	}
	if m.chrIsRAM {
		m.chr[idx] = val
	}
	// Writes to CHR ROM are ignored.
}

func (m *nrom) Mirroring() rom.Mirroring { return m.mirroring }
func (m *nrom) HasSaveRAM() bool         { return m.saveRAM }

func (m *nrom) DumpCHR() []byte         { return m.chr }
func (m *nrom) DumpNametables() []byte  { return m.vram }
