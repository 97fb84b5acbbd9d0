package mos6502

// Bus is the CPU's view of the outside world. The motherboard (package
// console) implements it, owning RAM mirroring, PPU register routing,
// OAM DMA, controller ports and the cartridge window — the CPU itself
// knows nothing about any of that, exactly as spec'd in the "motherboard
// owns the memory map" design note.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}
