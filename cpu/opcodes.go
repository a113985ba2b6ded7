package cpu

// execFunc performs one instruction's operand resolution plus its
// register/memory side effects. It returns any cycles to add beyond the
// opcode's base count - conditional page-cross penalties for read
// instructions, or the extra cycle(s) a taken branch costs. Write and
// read-modify-write instructions instead bake their one guaranteed extra
// cycle directly into the base count, since it never depends on the
// operand's value.
type execFunc func(c *Chip, e opcodeEntry) (uint8, error)

// opcodeEntry is one row of the 256-entry dispatch table: enough to both
// execute the instruction and render its trace-line mnemonic/operand.
type opcodeEntry struct {
	opcode   uint8
	mnemonic string
	mode     addrMode
	cycles   uint8
	exec     execFunc
}

var opcodeTable [256]opcodeEntry

type opRow struct {
	op     uint8
	mode   addrMode
	cycles uint8
}

func install(mnemonic string, exec execFunc, rows ...opRow) {
	for _, r := range rows {
		opcodeTable[r.op] = opcodeEntry{opcode: r.op, mnemonic: mnemonic, mode: r.mode, cycles: r.cycles, exec: exec}
	}
}

func loadExec(set func(c *Chip, v uint8)) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, crossed := fetch(c, e.mode)
		set(c, v)
		c.setNZ(v)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func storeExec(get func(c *Chip) uint8) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		c.Write(addr, get(c))
		return 0, nil
	}
}

func logicalExec(op func(a, v uint8) uint8) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, crossed := fetch(c, e.mode)
		c.A = op(c.A, v)
		c.setNZ(c.A)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func adcExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, crossed := fetch(c, e.mode)
		c.adc(v)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func sbcExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, crossed := fetch(c, e.mode)
		c.sbc(v)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func cmpExec(reg func(c *Chip) uint8) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, crossed := fetch(c, e.mode)
		c.compare(reg(c), v)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func bitExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, _ := fetch(c, e.mode)
		c.setFlag(FlagZ, c.A&v == 0)
		c.setFlag(FlagN, v&0x80 != 0)
		c.setFlag(FlagV, v&0x40 != 0)
		return 0, nil
	}
}

// rmwExec covers ASL/LSR/ROL/ROR/INC/DEC. The composed SLO/SRE/RLA/RRA/
// DCP/ISC handlers in illegal.go repeat the same read/dummy-write/write
// sequence inline rather than calling it. Accumulator mode operates on A
// directly with no bus access.
func rmwExec(op func(c *Chip, v uint8) uint8) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		if e.mode == modeAccumulator {
			c.A = op(c, c.A)
			return 0, nil
		}
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v) // dummy write, matches real RMW bus behavior
		result := op(c, v)
		c.Write(addr, result)
		return 0, nil
	}
}

func incOp(c *Chip, v uint8) uint8 {
	r := v + 1
	c.setNZ(r)
	return r
}

func decOp(c *Chip, v uint8) uint8 {
	r := v - 1
	c.setNZ(r)
	return r
}

func branchExec(cond func(c *Chip) bool) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		target := relativeTarget(c)
		if !cond(c) {
			return 0, nil
		}
		extra := uint8(1)
		if pageDiffers(c.PC, target) {
			extra++
		}
		c.PC = target
		return extra, nil
	}
}

func transferExec(get func(c *Chip) uint8, set func(c *Chip, v uint8), affectFlags bool) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v := get(c)
		set(c, v)
		if affectFlags {
			c.setNZ(v)
		}
		return 0, nil
	}
}

func flagExec(f Flag, v bool) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		c.setFlag(f, v)
		return 0, nil
	}
}

func jmpExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		c.PC = addr
		return 0, nil
	}
}

func jsrExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr := c.readWord(c.PC)
		ret := c.PC + 1
		c.push(uint8(ret >> 8))
		c.push(uint8(ret & 0xFF))
		c.PC = addr
		return 0, nil
	}
}

func rtsExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		lo := c.pop()
		hi := c.pop()
		c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
		return 0, nil
	}
}

func brkExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		c.PC++ // BRK's second byte is a padding signature byte, never executed
		c.push(uint8(c.PC >> 8))
		c.push(uint8(c.PC & 0xFF))
		c.push(c.P | uint8(FlagB) | uint8(FlagU))
		c.setFlag(FlagI, true)
		c.PC = c.readWord(irqVector)
		return 0, nil
	}
}

func rtiExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		p := c.pop()
		c.P = (p &^ uint8(FlagB)) | uint8(FlagU)
		lo := c.pop()
		hi := c.pop()
		c.PC = uint16(hi)<<8 | uint16(lo)
		return 0, nil
	}
}

func phaExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		c.push(c.A)
		return 0, nil
	}
}

func phpExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		c.push(c.P | uint8(FlagB) | uint8(FlagU))
		return 0, nil
	}
}

func plaExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		c.A = c.pop()
		c.setNZ(c.A)
		return 0, nil
	}
}

func plpExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		c.P = (c.pop() &^ uint8(FlagB)) | uint8(FlagU)
		return 0, nil
	}
}

func nopExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		return 0, nil
	}
}

// illegalNopExec consumes the operand (for modes that have one) and
// credits a page-cross cycle the same way a read instruction would -
// the undocumented multi-byte NOPs genuinely perform the bus read.
func illegalNopExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		if e.mode == modeImplied {
			return 0, nil
		}
		_, _, crossed := fetch(c, e.mode)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func init() {
	install("LDA", loadExec(func(c *Chip, v uint8) { c.A = v }),
		opRow{0xA9, modeImmediate, 2}, opRow{0xA5, modeZeroPage, 3}, opRow{0xB5, modeZeroPageX, 4},
		opRow{0xAD, modeAbsolute, 4}, opRow{0xBD, modeAbsoluteX, 4}, opRow{0xB9, modeAbsoluteY, 4},
		opRow{0xA1, modeIndirectX, 6}, opRow{0xB1, modeIndirectY, 5})

	install("LDX", loadExec(func(c *Chip, v uint8) { c.X = v }),
		opRow{0xA2, modeImmediate, 2}, opRow{0xA6, modeZeroPage, 3}, opRow{0xB6, modeZeroPageY, 4},
		opRow{0xAE, modeAbsolute, 4}, opRow{0xBE, modeAbsoluteY, 4})

	install("LDY", loadExec(func(c *Chip, v uint8) { c.Y = v }),
		opRow{0xA0, modeImmediate, 2}, opRow{0xA4, modeZeroPage, 3}, opRow{0xB4, modeZeroPageX, 4},
		opRow{0xAC, modeAbsolute, 4}, opRow{0xBC, modeAbsoluteX, 4})

	install("STA", storeExec(func(c *Chip) uint8 { return c.A }),
		opRow{0x85, modeZeroPage, 3}, opRow{0x95, modeZeroPageX, 4}, opRow{0x8D, modeAbsolute, 4},
		opRow{0x9D, modeAbsoluteX, 5}, opRow{0x99, modeAbsoluteY, 5}, opRow{0x81, modeIndirectX, 6},
		opRow{0x91, modeIndirectY, 6})

	install("STX", storeExec(func(c *Chip) uint8 { return c.X }),
		opRow{0x86, modeZeroPage, 3}, opRow{0x96, modeZeroPageY, 4}, opRow{0x8E, modeAbsolute, 4})

	install("STY", storeExec(func(c *Chip) uint8 { return c.Y }),
		opRow{0x84, modeZeroPage, 3}, opRow{0x94, modeZeroPageX, 4}, opRow{0x8C, modeAbsolute, 4})

	install("TAX", transferExec(func(c *Chip) uint8 { return c.A }, func(c *Chip, v uint8) { c.X = v }, true), opRow{0xAA, modeImplied, 2})
	install("TAY", transferExec(func(c *Chip) uint8 { return c.A }, func(c *Chip, v uint8) { c.Y = v }, true), opRow{0xA8, modeImplied, 2})
	install("TXA", transferExec(func(c *Chip) uint8 { return c.X }, func(c *Chip, v uint8) { c.A = v }, true), opRow{0x8A, modeImplied, 2})
	install("TYA", transferExec(func(c *Chip) uint8 { return c.Y }, func(c *Chip, v uint8) { c.A = v }, true), opRow{0x98, modeImplied, 2})
	install("TSX", transferExec(func(c *Chip) uint8 { return c.SP }, func(c *Chip, v uint8) { c.X = v }, true), opRow{0xBA, modeImplied, 2})
	install("TXS", transferExec(func(c *Chip) uint8 { return c.X }, func(c *Chip, v uint8) { c.SP = v }, false), opRow{0x9A, modeImplied, 2})

	install("PHA", phaExec(), opRow{0x48, modeImplied, 3})
	install("PHP", phpExec(), opRow{0x08, modeImplied, 3})
	install("PLA", plaExec(), opRow{0x68, modeImplied, 4})
	install("PLP", plpExec(), opRow{0x28, modeImplied, 4})

	install("AND", logicalExec(func(a, v uint8) uint8 { return a & v }),
		opRow{0x29, modeImmediate, 2}, opRow{0x25, modeZeroPage, 3}, opRow{0x35, modeZeroPageX, 4},
		opRow{0x2D, modeAbsolute, 4}, opRow{0x3D, modeAbsoluteX, 4}, opRow{0x39, modeAbsoluteY, 4},
		opRow{0x21, modeIndirectX, 6}, opRow{0x31, modeIndirectY, 5})

	install("ORA", logicalExec(func(a, v uint8) uint8 { return a | v }),
		opRow{0x09, modeImmediate, 2}, opRow{0x05, modeZeroPage, 3}, opRow{0x15, modeZeroPageX, 4},
		opRow{0x0D, modeAbsolute, 4}, opRow{0x1D, modeAbsoluteX, 4}, opRow{0x19, modeAbsoluteY, 4},
		opRow{0x01, modeIndirectX, 6}, opRow{0x11, modeIndirectY, 5})

	install("EOR", logicalExec(func(a, v uint8) uint8 { return a ^ v }),
		opRow{0x49, modeImmediate, 2}, opRow{0x45, modeZeroPage, 3}, opRow{0x55, modeZeroPageX, 4},
		opRow{0x4D, modeAbsolute, 4}, opRow{0x5D, modeAbsoluteX, 4}, opRow{0x59, modeAbsoluteY, 4},
		opRow{0x41, modeIndirectX, 6}, opRow{0x51, modeIndirectY, 5})

	install("BIT", bitExec(), opRow{0x24, modeZeroPage, 3}, opRow{0x2C, modeAbsolute, 4})

	install("ADC", adcExec(),
		opRow{0x69, modeImmediate, 2}, opRow{0x65, modeZeroPage, 3}, opRow{0x75, modeZeroPageX, 4},
		opRow{0x6D, modeAbsolute, 4}, opRow{0x7D, modeAbsoluteX, 4}, opRow{0x79, modeAbsoluteY, 4},
		opRow{0x61, modeIndirectX, 6}, opRow{0x71, modeIndirectY, 5})

	install("SBC", sbcExec(),
		opRow{0xE9, modeImmediate, 2}, opRow{0xE5, modeZeroPage, 3}, opRow{0xF5, modeZeroPageX, 4},
		opRow{0xED, modeAbsolute, 4}, opRow{0xFD, modeAbsoluteX, 4}, opRow{0xF9, modeAbsoluteY, 4},
		opRow{0xE1, modeIndirectX, 6}, opRow{0xF1, modeIndirectY, 5})

	install("CMP", cmpExec(func(c *Chip) uint8 { return c.A }),
		opRow{0xC9, modeImmediate, 2}, opRow{0xC5, modeZeroPage, 3}, opRow{0xD5, modeZeroPageX, 4},
		opRow{0xCD, modeAbsolute, 4}, opRow{0xDD, modeAbsoluteX, 4}, opRow{0xD9, modeAbsoluteY, 4},
		opRow{0xC1, modeIndirectX, 6}, opRow{0xD1, modeIndirectY, 5})

	install("CPX", cmpExec(func(c *Chip) uint8 { return c.X }),
		opRow{0xE0, modeImmediate, 2}, opRow{0xE4, modeZeroPage, 3}, opRow{0xEC, modeAbsolute, 4})

	install("CPY", cmpExec(func(c *Chip) uint8 { return c.Y }),
		opRow{0xC0, modeImmediate, 2}, opRow{0xC4, modeZeroPage, 3}, opRow{0xCC, modeAbsolute, 4})

	install("INC", rmwExec(incOp), opRow{0xE6, modeZeroPage, 5}, opRow{0xF6, modeZeroPageX, 6}, opRow{0xEE, modeAbsolute, 6}, opRow{0xFE, modeAbsoluteX, 7})
	install("DEC", rmwExec(decOp), opRow{0xC6, modeZeroPage, 5}, opRow{0xD6, modeZeroPageX, 6}, opRow{0xCE, modeAbsolute, 6}, opRow{0xDE, modeAbsoluteX, 7})

	install("INX", func(c *Chip, e opcodeEntry) (uint8, error) { c.X++; c.setNZ(c.X); return 0, nil }, opRow{0xE8, modeImplied, 2})
	install("INY", func(c *Chip, e opcodeEntry) (uint8, error) { c.Y++; c.setNZ(c.Y); return 0, nil }, opRow{0xC8, modeImplied, 2})
	install("DEX", func(c *Chip, e opcodeEntry) (uint8, error) { c.X--; c.setNZ(c.X); return 0, nil }, opRow{0xCA, modeImplied, 2})
	install("DEY", func(c *Chip, e opcodeEntry) (uint8, error) { c.Y--; c.setNZ(c.Y); return 0, nil }, opRow{0x88, modeImplied, 2})

	install("ASL", rmwExec((*Chip).asl), opRow{0x0A, modeAccumulator, 2}, opRow{0x06, modeZeroPage, 5}, opRow{0x16, modeZeroPageX, 6}, opRow{0x0E, modeAbsolute, 6}, opRow{0x1E, modeAbsoluteX, 7})
	install("LSR", rmwExec((*Chip).lsr), opRow{0x4A, modeAccumulator, 2}, opRow{0x46, modeZeroPage, 5}, opRow{0x56, modeZeroPageX, 6}, opRow{0x4E, modeAbsolute, 6}, opRow{0x5E, modeAbsoluteX, 7})
	install("ROL", rmwExec((*Chip).rol), opRow{0x2A, modeAccumulator, 2}, opRow{0x26, modeZeroPage, 5}, opRow{0x36, modeZeroPageX, 6}, opRow{0x2E, modeAbsolute, 6}, opRow{0x3E, modeAbsoluteX, 7})
	install("ROR", rmwExec((*Chip).ror), opRow{0x6A, modeAccumulator, 2}, opRow{0x66, modeZeroPage, 5}, opRow{0x76, modeZeroPageX, 6}, opRow{0x6E, modeAbsolute, 6}, opRow{0x7E, modeAbsoluteX, 7})

	install("JMP", jmpExec(), opRow{0x4C, modeAbsolute, 3}, opRow{0x6C, modeIndirect, 5})
	install("JSR", jsrExec(), opRow{0x20, modeAbsolute, 6})
	install("RTS", rtsExec(), opRow{0x60, modeImplied, 6})
	install("BRK", brkExec(), opRow{0x00, modeImplied, 7})
	install("RTI", rtiExec(), opRow{0x40, modeImplied, 6})

	install("BPL", branchExec(func(c *Chip) bool { return !c.getFlag(FlagN) }), opRow{0x10, modeRelative, 2})
	install("BMI", branchExec(func(c *Chip) bool { return c.getFlag(FlagN) }), opRow{0x30, modeRelative, 2})
	install("BVC", branchExec(func(c *Chip) bool { return !c.getFlag(FlagV) }), opRow{0x50, modeRelative, 2})
	install("BVS", branchExec(func(c *Chip) bool { return c.getFlag(FlagV) }), opRow{0x70, modeRelative, 2})
	install("BCC", branchExec(func(c *Chip) bool { return !c.getFlag(FlagC) }), opRow{0x90, modeRelative, 2})
	install("BCS", branchExec(func(c *Chip) bool { return c.getFlag(FlagC) }), opRow{0xB0, modeRelative, 2})
	install("BNE", branchExec(func(c *Chip) bool { return !c.getFlag(FlagZ) }), opRow{0xD0, modeRelative, 2})
	install("BEQ", branchExec(func(c *Chip) bool { return c.getFlag(FlagZ) }), opRow{0xF0, modeRelative, 2})

	install("CLC", flagExec(FlagC, false), opRow{0x18, modeImplied, 2})
	install("SEC", flagExec(FlagC, true), opRow{0x38, modeImplied, 2})
	install("CLI", flagExec(FlagI, false), opRow{0x58, modeImplied, 2})
	install("SEI", flagExec(FlagI, true), opRow{0x78, modeImplied, 2})
	install("CLV", flagExec(FlagV, false), opRow{0xB8, modeImplied, 2})
	install("CLD", flagExec(FlagD, false), opRow{0xD8, modeImplied, 2})
	install("SED", flagExec(FlagD, true), opRow{0xF8, modeImplied, 2})

	install("NOP", nopExec(), opRow{0xEA, modeImplied, 2})
}
