package cartridge

import (
	"bytes"
	"testing"

	"github.com/bdwalton/nescore/rom"
)

func TestGetUnknownMapper(t *testing.T) {
	r := &rom.ROM{Header: headerWithMapper(t, 200)}
	if _, err := Get(r); err == nil {
		t.Errorf("Get with unknown mapper: got nil error, want one")
	}
}

func TestGetKnownMapper(t *testing.T) {
	r := &rom.ROM{Header: headerWithMapper(t, 0), PRG: make([]byte, 16384)}
	m, err := Get(r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got, want := m.Name(), "NROM"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestMirrorNametable(t *testing.T) {
	cases := []struct {
		addr uint16
		m    rom.Mirroring
		want uint16
	}{
		{0x2000, rom.MirrorHorizontal, 0x0000},
		{0x2400, rom.MirrorHorizontal, 0x0000},
		{0x2800, rom.MirrorHorizontal, 0x0400},
		{0x2C00, rom.MirrorHorizontal, 0x0400},
		{0x2000, rom.MirrorVertical, 0x0000},
		{0x2400, rom.MirrorVertical, 0x0400},
		{0x2800, rom.MirrorVertical, 0x0000},
		{0x2C00, rom.MirrorVertical, 0x0400},
		{0x2000, rom.MirrorFourScreen, 0x0000},
		{0x2400, rom.MirrorFourScreen, 0x0400},
		{0x2800, rom.MirrorFourScreen, 0x0800},
		{0x2C00, rom.MirrorFourScreen, 0x0C00},
	}

	for i, tc := range cases {
		if got := mirrorNametable(tc.addr, tc.m); got != tc.want {
			t.Errorf("%d: mirrorNametable(0x%04X, %v) = 0x%04X, want 0x%04X", i, tc.addr, tc.m, got, tc.want)
		}
	}
}

// headerWithMapper constructs a Header reporting the given mapper number,
// via parseHeader's exported entry point (New/Parse), since Header's
// fields are unexported outside the rom package.
func headerWithMapper(t *testing.T, id uint16) *rom.Header {
	t.Helper()
	prgBlocks := byte(1)
	flags6 := byte((id & 0x0F) << 4)
	flags7 := byte(id & 0xF0)
	hdr := []byte{'N', 'E', 'S', 0x1A, prgBlocks, 0, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
	var buf bytes.Buffer
	buf.Write(hdr)
	buf.Write(make([]byte, int(prgBlocks)*16384))
	r, err := rom.Parse(&buf)
	if err != nil {
		t.Fatalf("rom.Parse: %v", err)
	}
	return r.Header
}
