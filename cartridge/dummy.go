package cartridge

import "github.com/bdwalton/nescore/rom"

// Dummy is a flat 64 KiB address space with no bank switching, used to
// drive CPU and PPU unit tests without needing a real ROM image.
type Dummy struct {
	CPUMem [65536]uint8
	PPUMem [16384]uint8
	MM     rom.Mirroring
}

// NewDummy returns a ready-to-use Dummy mapper.
func NewDummy() *Dummy {
	return &Dummy{}
}

func (d *Dummy) ID() uint16   { return 0xFFFF }
func (d *Dummy) Name() string { return "dummy" }

func (d *Dummy) CPURead(addr uint16) uint8      { return d.CPUMem[addr] }
func (d *Dummy) CPUPeek(addr uint16) uint8      { return d.CPUMem[addr] }
func (d *Dummy) CPUWrite(addr uint16, v uint8)  { d.CPUMem[addr] = v }
func (d *Dummy) PPURead(addr uint16) uint8      { return d.PPUMem[addr%16384] }
func (d *Dummy) PPUPeek(addr uint16) uint8      { return d.PPUMem[addr%16384] }
func (d *Dummy) PPUWrite(addr uint16, v uint8)  { d.PPUMem[addr%16384] = v }
func (d *Dummy) Mirroring() rom.Mirroring       { return d.MM }
func (d *Dummy) HasSaveRAM() bool               { return true }
func (d *Dummy) DumpCHR() []byte                { return d.PPUMem[:0x2000] }
func (d *Dummy) DumpNametables() []byte         { return d.PPUMem[0x2000:] }
