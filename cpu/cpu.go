// Package cpu implements the MOS 6502 instruction set as used by the NES's
// Ricoh 2A03 (NMOS 6502 with decimal mode disabled): opcode decode,
// addressing-mode resolution, the 56 documented operations plus the common
// undocumented extensions, and the packed processor-status byte.
package cpu

import (
	"nes6502/mem"
	"nes6502/trace"
)

// A Cpu is the register file of a 6502: six registers, no memory of its
// own. Every byte it reads or writes goes through the *mem.Bus passed into
// ExecNextInstr -- the Cpu holds no reference to one, so the same Cpu value
// can in principle be stepped against different buses between calls (no
// production use case needs this, but it keeps the ownership in the caller's
// hands exactly as the "pass Bus by exclusive mutable reference" design
// calls for).
type Cpu struct {
	PC uint16 // next instruction address
	SP uint8  // stack pointer; effective stack address is 0x0100 | SP
	A  uint8  // accumulator
	X  uint8  // index register X
	Y  uint8  // index register Y
	P  uint8  // packed processor status (see flags.go)

	// LastPageCrossed reports whether the most recently resolved addressing
	// mode crossed a page boundary. The core does not use this for timing
	// (cycle-exact timing is out of scope), but a host driver wanting to
	// approximate real NES timing can read it after each step.
	LastPageCrossed bool

	// Trace records unknown-opcode sightings. Never nil on a Cpu returned by
	// New.
	Trace *trace.Log
}

// New returns a Cpu with the canonical power-on register file: SP=0xFD,
// A=X=Y=0, P=0x24 (unused bit set, interrupt-disable set), PC=0. Call Reset
// once a Bus is available to load PC from the reset vector.
func New() *Cpu {
	return &Cpu{
		SP:    0xfd,
		P:     0x24,
		Trace: trace.New(nil),
	}
}

// Reset re-reads the 16-bit reset vector at 0xFFFC into PC. Every other
// register is left untouched -- this is the NES's warm reset, distinct from
// the cold power-on state New already establishes.
func (c *Cpu) Reset(bus *mem.Bus) {
	c.PC = bus.ReadU16(0xfffc)
}

// ExecNextInstr fetches the opcode at PC, resolves its operand, and executes
// it to completion: this is the Cpu's entire public contract beyond
// construction and Reset. Exactly one opcode executes per call; PC always
// ends up pointing at the next opcode to fetch (branches, jumps, and
// BRK/RTI/RTS aside, which set PC directly).
//
// An opcode byte with no table entry is not a fault: it is recorded via
// Trace and the call returns having consumed only the opcode byte.
func (c *Cpu) ExecNextInstr(bus *mem.Bus) {
	opcodeAddr := c.PC
	opcode := bus.Read(c.PC)
	c.PC++

	entry, ok := opcodeTable[opcode]
	if !ok {
		c.Trace.RecordUnknown(opcodeAddr, opcode)
		return
	}

	op := c.resolve(bus, entry.Mode)
	c.LastPageCrossed = op.pageCrossed
	entry.Exec(c, bus, op)
}

// push writes v to the stack (page one, descending) and decrements SP,
// wrapping silently on underflow.
func (c *Cpu) push(bus *mem.Bus, v byte) {
	bus.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

// pull increments SP, wrapping silently on overflow, then reads the byte it
// now points at.
func (c *Cpu) pull(bus *mem.Bus) byte {
	c.SP++
	return bus.Read(0x0100 | uint16(c.SP))
}

// push16 pushes v high-byte-then-low-byte, so that a subsequent pull16
// reproduces it.
func (c *Cpu) push16(bus *mem.Bus, v uint16) {
	c.push(bus, byte(v>>8))
	c.push(bus, byte(v))
}

// pull16 pulls a 16-bit value low-then-high, undoing push16.
func (c *Cpu) pull16(bus *mem.Bus) uint16 {
	lo := uint16(c.pull(bus))
	hi := uint16(c.pull(bus))
	return hi<<8 | lo
}

// pullStatus pulls a status byte from the stack, discarding bits 4 and 5 of
// the pulled value and keeping whatever this Cpu's P already carried in
// those positions. PLP and RTI both go through this; only a push (PHP, or
// the implicit push inside BRK) ever reflects a caller-chosen B/U.
func (c *Cpu) pullStatus(bus *mem.Bus) {
	pulled := c.pull(bus)
	c.P = (pulled & 0xcf) | (c.P & 0x30)
}
