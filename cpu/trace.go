package cpu

import (
	"fmt"
	"strings"

	"mos6502/memory"
)

// formatTrace renders one nestest-style trace line from the register
// snapshot taken before the instruction ran, the raw instruction bytes
// read straight back out of memory, and the cycle count after execution.
// The bytes are re-read after the instruction has run, so an instruction
// that overwrites its own opcode or operand bytes shows the new values,
// not the ones that were fetched.
func formatTrace(snap snapshot, opcode uint8, e opcodeEntry, mem memory.Bank, cyclesAfter uint64) string {
	n := operandBytes(e.mode)
	raw := make([]byte, n+1)
	raw[0] = opcode
	for i := 0; i < n; i++ {
		raw[i+1] = mem.Read(snap.PC + 1 + uint16(i))
	}

	hexBytes := make([]string, len(raw))
	for i, b := range raw {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}
	bytesCol := strings.Join(hexBytes, " ")

	op := fmt.Sprintf("%s_%s", e.mnemonic, modeSuffix[e.mode])

	return fmt.Sprintf("%04X  %-8s %-9s A:%02X X:%02X Y:%02X SR:%02X SP:%02X CYC:%d",
		snap.PC, bytesCol, op, snap.A, snap.X, snap.Y, snap.P, snap.SP, cyclesAfter)
}

// Disassemble renders a single instruction at addr without executing it,
// for static disassembly tools. It returns the formatted line and the
// instruction's length in bytes (1-3), so a caller can advance to the
// next instruction regardless of whether the opcode is recognized.
func Disassemble(mem memory.Bank, addr uint16) (line string, length int) {
	opcode := mem.Read(addr)
	e := opcodeTable[opcode]
	if e.exec == nil {
		return fmt.Sprintf("%04X  %02X       .byte $%02X (unknown/JAM opcode)", addr, opcode, opcode), 1
	}

	n := operandBytes(e.mode)
	raw := make([]byte, n+1)
	raw[0] = opcode
	for i := 0; i < n; i++ {
		raw[i+1] = mem.Read(addr + 1 + uint16(i))
	}
	hexBytes := make([]string, len(raw))
	for i, b := range raw {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}
	op := fmt.Sprintf("%s_%s", e.mnemonic, modeSuffix[e.mode])
	return fmt.Sprintf("%04X  %-8s %s", addr, strings.Join(hexBytes, " "), op), n + 1
}
