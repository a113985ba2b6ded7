// Package memory defines the basic interfaces for working with a 6502
// family memory map. Implementations are free to add shadowing, bank
// switching or memory-mapped I/O side effects above the base RAM bank
// provided here; the CPU only ever depends on the Bank interface.
package memory

import (
	"fmt"
)

// Bank is the interface the CPU uses for all bus access. Everything the
// core sees as "memory" - RAM, ROM, or a mapped I/O register - implements
// this.
type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is a
	// no-op without error.
	Write(addr uint16, val uint8)
	// PowerOn resets the bank to its power-on state.
	PowerOn()
	// Parent holds a reference (if non-nil) to the next level memory
	// controller. A chain of these can be created in order to find the
	// outermost one, e.g. to inspect shared databus state.
	Parent() Bank
	// DatabusVal returns the last value seen to cross the data bus.
	DatabusVal() uint8
}

// LatestDatabusVal hunts up a chain of Banks until it finds the outermost
// one and returns the DatabusVal from it.
func LatestDatabusVal(b Bank) uint8 {
	if b.Parent() != nil {
		return LatestDatabusVal(b.Parent())
	}
	return b.DatabusVal()
}

// ram implements a flat, fully addressable 8-bit RAM bank.
type ram struct {
	mem        []uint8
	parent     Bank
	databusVal uint8
}

// New8BitRAMBank creates an R/W RAM bank of the given size. Size must be a
// power of 2 and no larger than 64KiB (the full 16-bit address space). If
// the bank is smaller than 64KiB, addresses beyond its length alias back
// into it.
func New8BitRAMBank(size int, parent Bank) (Bank, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	return &ram{
		mem:    make([]uint8, size),
		parent: parent,
	}, nil
}

// NewFlatMemory creates a full 64KiB RAM bank with no parent, the default
// address space for a bare CPU.
func NewFlatMemory() Bank {
	b, _ := New8BitRAMBank(1<<16, nil)
	return b
}

// Read implements Bank. Address is masked to fit the bank's size.
func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.mem) - 1)
	val := r.mem[addr]
	r.databusVal = val
	return val
}

// Write implements Bank. Address is masked to fit the bank's size.
func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.mem) - 1)
	r.databusVal = val
	r.mem[addr] = val
}

// PowerOn implements Bank by zeroing the RAM. Real silicon powers on with
// indeterminate contents, but a deterministic zero-fill keeps traces
// reproducible, which is what golden-trace testing requires.
func (r *ram) PowerOn() {
	for i := range r.mem {
		r.mem[i] = 0
	}
}

// Parent implements Bank.
func (r *ram) Parent() Bank {
	return r.parent
}

// DatabusVal implements Bank.
func (r *ram) DatabusVal() uint8 {
	return r.databusVal
}

// LoadAt copies data into the bank starting at addr, wrapping around 64KiB
// if it runs past the end. Used by loaders that place a ROM image at a
// fixed base address (e.g. $8000) without parsing any file header.
func LoadAt(b Bank, addr uint16, data []uint8) {
	for i, v := range data {
		b.Write(addr+uint16(i), v)
	}
}

// LoadROM places a 16KiB-or-smaller PRG image at $8000, mirroring it at
// $C000 if it is exactly 16KiB - the common convention for a single-bank
// NROM-style image, and the layout spec.md's external ROM-loading
// collaborator is expected to produce before handing memory to the core.
func LoadROM(b Bank, rom []uint8) {
	const bank = 0x8000
	const bankSize = 0x4000
	LoadAt(b, bank, rom)
	if len(rom) == bankSize {
		LoadAt(b, bank+bankSize, rom)
	}
}
