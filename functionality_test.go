// Package functionality does basic end-to-end verification of the 6502
// variants against small hand-assembled programs running on a plain flat
// memory bank, exercising cpu and memory together the way a real host
// would rather than unit-testing either package in isolation.
package functionality

import (
	"testing"

	"mos6502/cpu"
	"mos6502/memory"
)

// assemble loads prog at addr and returns a Chip entering execution there.
func assemble(t *testing.T, cpuType cpu.CPUType, addr uint16, prog []uint8) *cpu.Chip {
	t.Helper()
	mem := memory.NewFlatMemory()
	memory.LoadAt(mem, addr, prog)
	c, err := cpu.New(&cpu.ChipDef{CPU: cpuType, Mem: mem, EntryPoint: &addr})
	if err != nil {
		t.Fatalf("cpu.New: %v", err)
	}
	return c
}

func run(t *testing.T, c *cpu.Chip, steps int) {
	t.Helper()
	for i := 0; i < steps; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

// TestSumLoop computes 1+2+...+10 into zero page $00 using an X-counted
// TXA/ADC/STA/DEX/BNE loop, the kind of short program nestest-adjacent
// smoke tests lean on.
func TestSumLoop(t *testing.T) {
	prog := []uint8{
		0xA9, 0x00, // LDA #$00
		0x85, 0x00, // STA $00      ; sum = 0
		0xA2, 0x0A, // LDX #$0A     ; X = 10
		// loop:
		0x8A,       // TXA
		0x18,       // CLC
		0x65, 0x00, // ADC $00      ; A = X + sum
		0x85, 0x00, // STA $00      ; sum = A
		0xCA,       // DEX
		0xD0, 0xF7, // BNE loop
	}
	c := assemble(t, cpu.CPUNMOSRicoh, 0xC000, prog)
	run(t, c, 3+10*6) // 3 setup instrs, then 10 loop iterations of 6 instrs each

	if got := c.Read(0x0000); got != 55 {
		t.Errorf("sum = %d, want 55", got)
	}
	if c.X != 0 {
		t.Errorf("X = %d, want 0", c.X)
	}
}

// TestIllegalOpcodesDoNotJam checks that a short program mixing
// documented and composed-illegal opcodes runs to completion without
// hitting the JAM/UnknownOpcode condition.
func TestIllegalOpcodesDoNotJam(t *testing.T) {
	prog := []uint8{
		0xA9, 0x05, // LDA #$05
		0x85, 0x10, // STA $10
		0xC7, 0x10, // DCP $10      ; illegal: DEC $10 then CMP A,$10
		0xA7, 0x10, // LAX $10      ; illegal: LDA+LDX from $10
	}
	c := assemble(t, cpu.CPUNMOSRicoh, 0xC000, prog)
	run(t, c, 4)
	if c.A != 0x04 || c.X != 0x04 {
		t.Errorf("A=%02X X=%02X, want both 04 (DCP decremented $10 to 4, LAX reloaded it)", c.A, c.X)
	}
}

// TestRicohDisablesBCDButNotTheFlag checks the Ricoh/NES 2A03 variant's
// defining quirk: SED still sets the D flag, but ADC ignores it.
func TestRicohDisablesBCDButNotTheFlag(t *testing.T) {
	prog := []uint8{
		0xF8,       // SED
		0xA9, 0x09, // LDA #$09
		0x69, 0x01, // ADC #$01   ; binary 9+1=10=$0A, decimal would be $10
	}
	c := assemble(t, cpu.CPUNMOSRicoh, 0xC000, prog)
	run(t, c, 3)
	if c.P&uint8(cpu.FlagD) == 0 {
		t.Error("D flag should still be set by SED")
	}
	if c.A != 0x0A {
		t.Errorf("A = %02X, want 0A (binary add, BCD not executed on Ricoh)", c.A)
	}
}

// TestNMOSExecutesBCD checks the plain NMOS variant actually performs
// decimal adjustment once SED is in effect, unlike CPUNMOSRicoh.
func TestNMOSExecutesBCD(t *testing.T) {
	prog := []uint8{
		0xF8,       // SED
		0xA9, 0x09, // LDA #$09
		0x69, 0x01, // ADC #$01   ; decimal 9+1=10 -> $10
	}
	c := assemble(t, cpu.CPUNMOS, 0xC000, prog)
	run(t, c, 3)
	if c.A != 0x10 {
		t.Errorf("A = %02X, want 10 (BCD-adjusted)", c.A)
	}
}
