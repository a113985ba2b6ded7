package cpu

// This file wires up the undocumented opcode matrix: the composed
// illegal instructions (each one is really two documented operations
// sharing a single bus cycle, e.g. DCP = DEC then CMP), the unstable
// opcodes whose real silicon behavior depends on analog bus effects this
// emulator does not model, and the illegal NOP family that only differ
// from NOP $EA in how many operand bytes (and bus reads) they consume.
//
// JAM/KIL (0x02,0x12,0x22,0x32,0x42,0x52,0x62,0x72,0x92,0xB2,0xD2,0xF2)
// need no entry here: an opcodeTable slot with a nil exec is exactly the
// UnknownOpcode condition Step() already reports.

func dcpExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v)
		v--
		c.Write(addr, v)
		c.compare(c.A, v)
		return 0, nil
	}
}

func iscExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v)
		v++
		c.Write(addr, v)
		c.sbc(v)
		return 0, nil
	}
}

func sloExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v)
		c.setFlag(FlagC, v&0x80 != 0)
		result := v << 1
		c.Write(addr, result)
		c.A |= result
		c.setNZ(c.A)
		return 0, nil
	}
}

func sreExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v)
		c.setFlag(FlagC, v&0x01 != 0)
		result := v >> 1
		c.Write(addr, result)
		c.A ^= result
		c.setNZ(c.A)
		return 0, nil
	}
}

func rlaExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v)
		carryIn := uint8(0)
		if c.getFlag(FlagC) {
			carryIn = 1
		}
		c.setFlag(FlagC, v&0x80 != 0)
		result := (v << 1) | carryIn
		c.Write(addr, result)
		c.A &= result
		c.setNZ(c.A)
		return 0, nil
	}
}

func rraExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		v := c.Read(addr)
		c.Write(addr, v)
		carryIn := uint8(0)
		if c.getFlag(FlagC) {
			carryIn = 0x80
		}
		c.setFlag(FlagC, v&0x01 != 0)
		result := (v >> 1) | carryIn
		c.Write(addr, result)
		c.adc(result)
		return 0, nil
	}
}

func laxExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, crossed := fetch(c, e.mode)
		c.A = v
		c.X = v
		c.setNZ(v)
		if crossed {
			return 1, nil
		}
		return 0, nil
	}
}

func saxExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		addr, _ := resolve(c, e.mode)
		c.Write(addr, c.A&c.X)
		return 0, nil
	}
}

func ancExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, _ := fetch(c, e.mode)
		c.A &= v
		c.setNZ(c.A)
		c.setFlag(FlagC, c.A&0x80 != 0)
		return 0, nil
	}
}

func alrExec() execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		v, _, _ := fetch(c, e.mode)
		c.A &= v
		carry := c.A&0x01 != 0
		c.A >>= 1
		c.setFlag(FlagC, carry)
		c.setNZ(c.A)
		return 0, nil
	}
}

// unstableExec handles the family whose real-hardware output depends on
// bus capacitance and open-collector bus conflicts rather than pure
// digital logic (ANE/XAA, LXA, SHA, SHX, SHY, TAS, LAS, SBX, ARR). This
// core consumes the documented bytes/cycles and reports UnstableOpcode
// without touching registers or memory, rather than guessing at one
// specific die's quirk.
func unstableExec(mnemonic string) execFunc {
	return func(c *Chip, e opcodeEntry) (uint8, error) {
		if e.mode != modeImplied {
			resolve(c, e.mode)
		}
		return 0, UnstableOpcode{Mnemonic: mnemonic, Opcode: e.opcode}
	}
}

func init() {
	install("LAX", laxExec(),
		opRow{0xA7, modeZeroPage, 3}, opRow{0xB7, modeZeroPageY, 4}, opRow{0xAF, modeAbsolute, 4},
		opRow{0xBF, modeAbsoluteY, 4}, opRow{0xA3, modeIndirectX, 6}, opRow{0xB3, modeIndirectY, 5})

	install("SAX", saxExec(),
		opRow{0x87, modeZeroPage, 3}, opRow{0x97, modeZeroPageY, 4}, opRow{0x8F, modeAbsolute, 4},
		opRow{0x83, modeIndirectX, 6})

	install("DCP", dcpExec(),
		opRow{0xC7, modeZeroPage, 5}, opRow{0xD7, modeZeroPageX, 6}, opRow{0xCF, modeAbsolute, 6},
		opRow{0xDF, modeAbsoluteX, 7}, opRow{0xDB, modeAbsoluteY, 7}, opRow{0xC3, modeIndirectX, 8},
		opRow{0xD3, modeIndirectY, 8})

	install("ISC", iscExec(),
		opRow{0xE7, modeZeroPage, 5}, opRow{0xF7, modeZeroPageX, 6}, opRow{0xEF, modeAbsolute, 6},
		opRow{0xFF, modeAbsoluteX, 7}, opRow{0xFB, modeAbsoluteY, 7}, opRow{0xE3, modeIndirectX, 8},
		opRow{0xF3, modeIndirectY, 8})

	install("SLO", sloExec(),
		opRow{0x07, modeZeroPage, 5}, opRow{0x17, modeZeroPageX, 6}, opRow{0x0F, modeAbsolute, 6},
		opRow{0x1F, modeAbsoluteX, 7}, opRow{0x1B, modeAbsoluteY, 7}, opRow{0x03, modeIndirectX, 8},
		opRow{0x13, modeIndirectY, 8})

	install("SRE", sreExec(),
		opRow{0x47, modeZeroPage, 5}, opRow{0x57, modeZeroPageX, 6}, opRow{0x4F, modeAbsolute, 6},
		opRow{0x5F, modeAbsoluteX, 7}, opRow{0x5B, modeAbsoluteY, 7}, opRow{0x43, modeIndirectX, 8},
		opRow{0x53, modeIndirectY, 8})

	install("RLA", rlaExec(),
		opRow{0x27, modeZeroPage, 5}, opRow{0x37, modeZeroPageX, 6}, opRow{0x2F, modeAbsolute, 6},
		opRow{0x3F, modeAbsoluteX, 7}, opRow{0x3B, modeAbsoluteY, 7}, opRow{0x23, modeIndirectX, 8},
		opRow{0x33, modeIndirectY, 8})

	install("RRA", rraExec(),
		opRow{0x67, modeZeroPage, 5}, opRow{0x77, modeZeroPageX, 6}, opRow{0x6F, modeAbsolute, 6},
		opRow{0x7F, modeAbsoluteX, 7}, opRow{0x7B, modeAbsoluteY, 7}, opRow{0x63, modeIndirectX, 8},
		opRow{0x73, modeIndirectY, 8})

	install("ANC", ancExec(), opRow{0x0B, modeImmediate, 2}, opRow{0x2B, modeImmediate, 2})
	install("ALR", alrExec(), opRow{0x4B, modeImmediate, 2})

	install("ARR", unstableExec("ARR"), opRow{0x6B, modeImmediate, 2})
	install("ANE", unstableExec("ANE"), opRow{0x8B, modeImmediate, 2})
	install("LXA", unstableExec("LXA"), opRow{0xAB, modeImmediate, 2})
	install("SHA", unstableExec("SHA"), opRow{0x9F, modeAbsoluteY, 5}, opRow{0x93, modeIndirectY, 6})
	install("SHX", unstableExec("SHX"), opRow{0x9E, modeAbsoluteY, 5})
	install("SHY", unstableExec("SHY"), opRow{0x9C, modeAbsoluteX, 5})
	install("TAS", unstableExec("TAS"), opRow{0x9B, modeAbsoluteY, 5})
	install("LAS", unstableExec("LAS"), opRow{0xBB, modeAbsoluteY, 4})
	install("SBX", unstableExec("SBX"), opRow{0xCB, modeImmediate, 2})

	// 0xEB is the well-known undocumented SBC duplicate - real silicon
	// decodes it identically to the documented 0xE9.
	install("SBC", sbcExec(), opRow{0xEB, modeImmediate, 2})

	install("NOP", nopExec(),
		opRow{0x1A, modeImplied, 2}, opRow{0x3A, modeImplied, 2}, opRow{0x5A, modeImplied, 2},
		opRow{0x7A, modeImplied, 2}, opRow{0xDA, modeImplied, 2}, opRow{0xFA, modeImplied, 2})

	install("NOP", illegalNopExec(),
		opRow{0x80, modeImmediate, 2}, opRow{0x82, modeImmediate, 2}, opRow{0x89, modeImmediate, 2},
		opRow{0xC2, modeImmediate, 2}, opRow{0xE2, modeImmediate, 2},
		opRow{0x04, modeZeroPage, 3}, opRow{0x44, modeZeroPage, 3}, opRow{0x64, modeZeroPage, 3},
		opRow{0x14, modeZeroPageX, 4}, opRow{0x34, modeZeroPageX, 4}, opRow{0x54, modeZeroPageX, 4},
		opRow{0x74, modeZeroPageX, 4}, opRow{0xD4, modeZeroPageX, 4}, opRow{0xF4, modeZeroPageX, 4},
		opRow{0x0C, modeAbsolute, 4},
		opRow{0x1C, modeAbsoluteX, 4}, opRow{0x3C, modeAbsoluteX, 4}, opRow{0x5C, modeAbsoluteX, 4},
		opRow{0x7C, modeAbsoluteX, 4}, opRow{0xDC, modeAbsoluteX, 4}, opRow{0xFC, modeAbsoluteX, 4})
}
