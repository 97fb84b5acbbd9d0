// Package cartridge implements the Mapper interface that stands between
// the CPU/PPU buses and a parsed ROM image, plus a registry of mappers
// keyed by iNES mapper number.
package cartridge

import (
	"fmt"

	"github.com/bdwalton/nescore/rom"
)

// Mapper is the contract a cartridge circuit must satisfy. CPU* methods
// serve the $4020-$FFFF PRG window; PPU* methods serve the $0000-$1FFF
// CHR window and the $2000-$2FFF nametable window. The Peek variants must
// be free of side effects (no bank-switch latches, no open-bus state
// changes) so the debug dump surface can inspect memory without disturbing
// emulation.
type Mapper interface {
	ID() uint16
	Name() string

	CPURead(addr uint16) uint8
	CPUPeek(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)

	PPURead(addr uint16) uint8
	PPUPeek(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)

	Mirroring() rom.Mirroring
	HasSaveRAM() bool

	// DumpCHR and DumpNametables expose the raw backing stores behind
	// the PPU address space for the debug surface (dump_debug_data in
	// the control contract). The returned slices alias live memory;
	// callers must treat them as read-only.
	DumpCHR() []byte
	DumpNametables() []byte
}

// factory builds a fresh Mapper instance bound to a parsed ROM. Mappers
// register a factory rather than a shared instance so that two ROMs using
// the same mapper number never alias state.
type factory func(*rom.ROM) Mapper

var registry = map[uint16]factory{}

// RegisterMapper adds a mapper factory to the registry, keyed by iNES
// mapper number. Called from each mapper's init().
func RegisterMapper(id uint16, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("cartridge: mapper id %d registered twice", id))
	}
	registry[id] = f
}

// Get constructs the Mapper named by r's header, or an error if the mapper
// number isn't supported.
func Get(r *rom.ROM) (Mapper, error) {
	id := r.Header.MapperNumber()
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("cartridge: unsupported mapper id %d", id)
	}
	return f(r), nil
}

const (
	nametableSize           = 2048 // two physical 1KiB tables, horizontal/vertical mirroring
	fourScreenNametableSize = 4096 // four independent physical 1KiB tables
)

// mirrorNametable maps a PPU address in $2000-$2FFF to an offset into the
// physical nametable backing store, per the cartridge's mirroring mode.
// addr is assumed already reduced to the $2000-$2FFF mirror region.
func mirrorNametable(addr uint16, m rom.Mirroring) uint16 {
	table := (addr - 0x2000) / 0x400 // logical nametable 0-3
	offset := addr % 0x400

	if m == rom.MirrorFourScreen {
		return table*0x400 + offset
	}

	var physical uint16
	if m == rom.MirrorVertical {
		physical = table % 2
	} else {
		physical = table / 2
	}
	return physical*0x400 + offset
}
