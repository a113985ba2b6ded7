package cpu

// zeroCheck and negativeCheck set Z/N the way every load, transfer and
// RMW instruction does: from the bare value left in the register or
// memory cell, independent of how it got there.
func (c *Chip) zeroCheck(v uint8) {
	c.setFlag(FlagZ, v == 0)
}

func (c *Chip) negativeCheck(v uint8) {
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *Chip) setNZ(v uint8) {
	c.zeroCheck(v)
	c.negativeCheck(v)
}

// adc implements ADC for all three CPU types. BCD is only ever live for
// CPUNMOS and CPUCMOS when the D flag is set; CPUNMOSRicoh (the 2A03/2A07
// used by the NES, and the default variant for nestest-style tracing)
// never takes the decimal branch even with D set, matching the Ricoh die
// that left the BCD adder unconnected.
func (c *Chip) adc(value uint8) {
	carryIn := uint16(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}

	if c.cpuType != CPUNMOSRicoh && c.getFlag(FlagD) {
		c.adcDecimal(value, uint8(carryIn))
		return
	}

	sum := uint16(c.A) + uint16(value) + carryIn
	result := uint8(sum)
	overflow := (^(c.A ^ value) & (c.A ^ result) & 0x80) != 0

	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, overflow)
	c.A = result
	c.setNZ(c.A)
}

// sbc mirrors adc: binary subtraction is addition of the one's
// complement, which is the form real 6502 silicon actually implements.
func (c *Chip) sbc(value uint8) {
	if c.cpuType != CPUNMOSRicoh && c.getFlag(FlagD) {
		c.sbcDecimal(value)
		return
	}
	c.adc(^value)
}

// adcDecimal performs BCD addition per nibble with carry propagation and
// decimal-adjustment, the textbook 6502 BCD algorithm. Flags C/Z/N/V are
// set the same (quirky, not fully well-defined on real silicon for V/N)
// way a stock NMOS 6502 sets them; this path is unreachable for
// CPUNMOSRicoh and is exercised only by CPUNMOS/CPUCMOS tests.
func (c *Chip) adcDecimal(value uint8, carryIn uint8) {
	lo := (c.A & 0x0F) + (value & 0x0F) + carryIn
	hi := (c.A >> 4) + (value >> 4)
	if lo > 9 {
		lo += 6
		hi++
	}
	binResult := uint16(c.A) + uint16(value) + uint16(carryIn)
	c.setFlag(FlagZ, uint8(binResult) == 0)
	overflow := (^(c.A ^ value) & (c.A ^ uint8(binResult)) & 0x80) != 0
	c.setFlag(FlagV, overflow)
	if hi > 9 {
		hi += 6
	}
	c.setFlag(FlagC, hi > 15)
	c.A = (hi << 4) | (lo & 0x0F)
	c.negativeCheck(c.A)
}

func (c *Chip) sbcDecimal(value uint8) {
	carryIn := uint8(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	binResult := int16(c.A) - int16(value) - int16(1-carryIn)

	lo := int16(c.A&0x0F) - int16(value&0x0F) - int16(1-carryIn)
	hi := int16(c.A>>4) - int16(value>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}

	overflow := ((c.A ^ value) & (c.A ^ uint8(binResult)) & 0x80) != 0
	c.setFlag(FlagV, overflow)
	c.setFlag(FlagC, binResult >= 0)
	c.setFlag(FlagZ, uint8(binResult) == 0)

	c.A = (uint8(hi&0x0F) << 4) | uint8(lo&0x0F)
	c.negativeCheck(c.A)
}

func (c *Chip) compare(reg, value uint8) {
	result := reg - value
	c.setFlag(FlagC, reg >= value)
	c.setNZ(result)
}

func (c *Chip) asl(v uint8) uint8 {
	c.setFlag(FlagC, v&0x80 != 0)
	result := v << 1
	c.setNZ(result)
	return result
}

func (c *Chip) lsr(v uint8) uint8 {
	c.setFlag(FlagC, v&0x01 != 0)
	result := v >> 1
	c.setNZ(result)
	return result
}

func (c *Chip) rol(v uint8) uint8 {
	carryIn := uint8(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	result := (v << 1) | carryIn
	c.setNZ(result)
	return result
}

func (c *Chip) ror(v uint8) uint8 {
	carryIn := uint8(0)
	if c.getFlag(FlagC) {
		carryIn = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	result := (v >> 1) | carryIn
	c.setNZ(result)
	return result
}
