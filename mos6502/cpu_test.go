package mos6502

import "testing"

type testBus struct {
	data [65536]uint8
}

func (b *testBus) Read(addr uint16) uint8      { return b.data[addr] }
func (b *testBus) Write(addr uint16, val uint8) { b.data[addr] = val }

func newTestCPU() (*CPU, *testBus) {
	b := &testBus{}
	return New(b), b
}

func fill(b *testBus, val uint8) {
	for i := range b.data {
		b.data[i] = val
	}
}

func TestNewResetVector(t *testing.T) {
	b := &testBus{}
	b.data[0xFFFC] = 0x34
	b.data[0xFFFD] = 0x12
	c := New(b)
	if c.PC != 0x1234 {
		t.Errorf("PC = 0x%04x, want 0x1234", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = 0x%02x, want 0xFD", c.SP)
	}
	if c.P&FlagInterruptDisable == 0 {
		t.Errorf("I flag not set after power-on")
	}
	if c.TotalCycles != 7 {
		t.Errorf("TotalCycles = %d, want 7 (cycles spent in the reset sequence)", c.TotalCycles)
	}
}

func TestTickCycleAccounting(t *testing.T) {
	c, b := newTestCPU()
	fill(b, 0xEA) // NOP everywhere

	cases := []struct {
		pc             uint16
		a, x, y        uint8
		op, lo, hi     uint8
		wantPC         uint16
		wantCycles     int
	}{
		{0, 0, 0, 0, 0x69 /* ADC IMM */, 0, 0, 2, 2},
		{0, 0, 0, 0, 0x7D /* ADC ABS,X */, 0, 0, 3, 4},
		{0x00FF, 1, 1, 0, 0x7D /* ADC ABS,X */, 0xFF, 0x01, 0x0102, 5}, // page crossed
		{0x00FF, 1, 1, 2, 0x79 /* ADC ABS,Y */, 0xFF, 0x01, 0x0102, 5}, // page crossed
	}

	for i, tc := range cases {
		c.PC = tc.pc
		c.A, c.X, c.Y = tc.a, tc.x, tc.y
		c.write(c.PC, tc.op)
		c.write(c.PC+1, tc.lo)
		c.write(c.PC+2, tc.hi)
		c.cycles = 0

		for n := 0; n < int(tc.wantCycles); n++ {
			c.Tick()
		}

		if c.PC != tc.wantPC {
			t.Errorf("%d: PC = 0x%04x, want 0x%04x", i, c.PC, tc.wantPC)
		}
	}
}

func TestResolveAddressingModes(t *testing.T) {
	c, b := newTestCPU()
	b.data[0x000F] = 0x44
	b.data[0x0010] = 0x55
	b.data[0x0064] = 0x0F
	b.data[0x0065] = 0x00
	b.data[0x001F] = 0x55
	b.data[0x0020] = 0x00
	b.data[0x00BB] = 0x66
	b.data[0x00BC] = 0x00
	b.data[0x110F] = 0xFA
	b.data[0x1110] = 0xBB
	c.X = 0x10
	c.Y = 0xAC

	cases := []struct {
		pc   uint16
		mode uint8
		want uint16
	}{
		{0x0064, Immediate, 0x0064},
		{0x0064, ZeroPage, 0x000F},
		{0x0064, ZeroPageX, 0x001F},
		{0x0064, ZeroPageY, 0x00BB},
		{0x0064, Absolute, 0x000F},
	}

	for i, tc := range cases {
		c.PC = tc.pc
		if got := c.resolve(tc.mode).addr; got != tc.want {
			t.Errorf("%d: resolve(mode=%d) = 0x%04x, want 0x%04x", i, tc.mode, got, tc.want)
		}
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, b := newTestCPU()
	b.data[0x30FF] = 0x80
	b.data[0x3000] = 0x50 // wraps within the page instead of reading 0x3100
	b.data[0x3100] = 0xFF

	if got, want := c.indirectJMPTarget(0x30FF), uint16(0x5080); got != want {
		t.Errorf("indirectJMPTarget = 0x%04x, want 0x%04x", got, want)
	}
}

func TestBranchCyclePenalties(t *testing.T) {
	c, b := newTestCPU()
	fill(b, 0xEA)

	cases := []struct {
		pc         uint16
		offset     uint8
		carry      bool
		wantPC     uint16
	}{
		{0x6677, 0x0A, false, 0x6682},   // taken, no page cross
		{0x60FF, 0x0A, false, 0x610A},   // taken, target on the same page as the next instruction ($6100)
		{0x6677, 0x0A, true, 0x6677},    // not taken
	}

	for i, tc := range cases {
		c.PC = tc.pc
		c.setFlag(FlagCarry, tc.carry)
		c.write(c.PC, tc.offset)
		c.BCC(Relative)
		if c.PC != tc.wantPC {
			t.Errorf("%d: PC = 0x%04x, want 0x%04x", i, c.PC, tc.wantPC)
		}
	}
}

func TestStackPushPopAddress(t *testing.T) {
	c, _ := newTestCPU()
	c.SP = 0xFF
	c.pushAddress(0xAC08)
	if c.SP != 0xFD {
		t.Errorf("SP after push = 0x%02x, want 0xFD", c.SP)
	}
	if got := c.popAddress(); got != 0xAC08 {
		t.Errorf("popAddress = 0x%04x, want 0xAC08", got)
	}
	if c.SP != 0xFF {
		t.Errorf("SP after pop = 0x%02x, want 0xFF", c.SP)
	}
}

func TestBRKAndRTI(t *testing.T) {
	c, b := newTestCPU()
	b.data[vectorBRK] = 0x69
	b.data[vectorBRK+1] = 0xAC
	c.PC = 0xFF15
	c.P = 0x00

	c.BRK(Implicit)
	if c.PC != 0xAC69 {
		t.Errorf("PC after BRK = 0x%04x, want 0xAC69", c.PC)
	}
	if c.P&FlagInterruptDisable == 0 {
		t.Errorf("I flag not set after BRK")
	}

	c.RTI(Implicit)
	if c.PC != 0xFF16 {
		t.Errorf("PC after RTI = 0x%04x, want 0xFF16", c.PC)
	}
}

func TestNMIPriorityOverIRQ(t *testing.T) {
	c, b := newTestCPU()
	b.data[vectorNMI] = 0x00
	b.data[vectorNMI+1] = 0x90
	b.data[vectorIRQ] = 0x00
	b.data[vectorIRQ+1] = 0xA0
	c.P &^= FlagInterruptDisable
	c.NMI()
	c.SetIRQLine(true)

	if got := c.pendingInterrupt(); got != nmiInterrupt {
		t.Errorf("pendingInterrupt() = %v, want nmiInterrupt", got)
	}
}

func TestIRQMaskedByInterruptDisable(t *testing.T) {
	c, _ := newTestCPU()
	c.flagsOn(FlagInterruptDisable)
	c.SetIRQLine(true)
	if got := c.pendingInterrupt(); got != noInterrupt {
		t.Errorf("pendingInterrupt() = %v, want noInterrupt while I flag set", got)
	}
}

func TestStallAccountsForOAMDMA(t *testing.T) {
	c, b := newTestCPU()
	fill(b, 0xEA)
	c.PC = 0
	c.cycles = 0
	c.Stall(513)

	ticked := 0
	for c.cycles > 0 || c.PC == 0 {
		if ticked > 1000 {
			t.Fatalf("CPU never resumed fetching after Stall(513)")
		}
		c.Tick()
		ticked++
	}
	if ticked != 513 {
		t.Errorf("ticks consumed by stall+fetch = %d, want 513", ticked)
	}
}

func TestJAMHalts(t *testing.T) {
	c, b := newTestCPU()
	c.PC = 0
	b.data[0] = 0x02
	c.cycles = 0
	c.Tick()
	if !c.halted {
		t.Errorf("CPU not halted after executing a JAM opcode")
	}
}
