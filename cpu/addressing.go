package cpu

import (
	"nes6502/mask"
	"nes6502/mem"
)

// An AddressingMode tells the Cpu where to find the operand of an
// instruction: zero, one, or two bytes following the opcode, advancing PC
// accordingly, and resolving either an immediate value or an effective
// 16-bit address.
type AddressingMode int

const (
	Implied     AddressingMode = iota // no operand; PC does not advance
	Accumulator                       // operand and target is A, for RMW variants

	Immediate // operand byte is the value itself
	ZeroPage  // 1-byte operand d; effective = d
	ZeroPageX // (d + X) mod 256 -- wraps within page zero
	ZeroPageY // (d + Y) mod 256 -- wraps within page zero

	Absolute  // 2-byte little-endian operand
	AbsoluteX // absolute + X, 16-bit wrap, may cross a page
	AbsoluteY // absolute + Y, 16-bit wrap, may cross a page

	Indirect  // 2-byte pointer; effective = word at pointer (JMP only; has the page-wrap bug)
	IndirectX // (d + X) mod 256 is a zero-page pointer to the effective address
	IndirectY // word at d (zero page) + Y, 16-bit wrap, may cross a page

	Relative // signed 8-bit offset, relative to PC after consuming the offset byte
)

// operand carries everything an addressing mode resolved: the effective
// address (meaningful for every mode except Implied/Accumulator/Immediate's
// own register target), the value read from it (meaningless for write-only
// destinations and for JMP targets), whether the mode is Accumulator (so the
// instruction knows to read/write A instead of memory), and whether indexing
// crossed a page boundary.
type operand struct {
	addr        uint16
	val         byte
	accumulator bool
	pageCrossed bool
}

// resolve consumes the correct number of operand bytes from bus[c.PC:],
// advancing c.PC, and resolves the addressing mode to an operand. This is
// the one place every 6502 addressing quirk in the spec lives: zero-page
// wrap, the indirect page-boundary bug, and page-cross detection for the
// indexed modes.
func (c *Cpu) resolve(bus *mem.Bus, mode AddressingMode) operand {
	switch mode {
	case Implied:
		return operand{}

	case Accumulator:
		return operand{val: c.A, accumulator: true}

	case Immediate:
		addr := c.PC
		c.PC++
		return operand{addr: addr, val: bus.Read(addr)}

	case ZeroPage:
		d := bus.Read(c.PC)
		c.PC++
		addr := uint16(d)
		return operand{addr: addr, val: bus.Read(addr)}

	case ZeroPageX:
		d := bus.Read(c.PC)
		c.PC++
		addr := uint16(d + c.X) // byte add wraps mod 256, staying in page zero
		return operand{addr: addr, val: bus.Read(addr)}

	case ZeroPageY:
		d := bus.Read(c.PC)
		c.PC++
		addr := uint16(d + c.Y)
		return operand{addr: addr, val: bus.Read(addr)}

	case Absolute:
		lo := bus.Read(c.PC)
		c.PC++
		hi := bus.Read(c.PC)
		c.PC++
		addr := mask.Word(hi, lo)
		return operand{addr: addr, val: bus.Read(addr)}

	case AbsoluteX:
		lo := bus.Read(c.PC)
		c.PC++
		hi := bus.Read(c.PC)
		c.PC++
		base := mask.Word(hi, lo)
		addr := base + uint16(c.X)
		crossed := addr&0xff00 != base&0xff00
		return operand{addr: addr, val: bus.Read(addr), pageCrossed: crossed}

	case AbsoluteY:
		lo := bus.Read(c.PC)
		c.PC++
		hi := bus.Read(c.PC)
		c.PC++
		base := mask.Word(hi, lo)
		addr := base + uint16(c.Y)
		crossed := addr&0xff00 != base&0xff00
		return operand{addr: addr, val: bus.Read(addr), pageCrossed: crossed}

	case Indirect:
		loPtr := bus.Read(c.PC)
		c.PC++
		hiPtr := bus.Read(c.PC)
		c.PC++
		ptr := mask.Word(hiPtr, loPtr)

		lo := bus.Read(ptr)
		var hi byte
		if loPtr == 0xff {
			// The JMP-indirect page-wrap bug: when the low byte of the
			// pointer is 0xff, the high byte is fetched from the start of
			// the same page rather than the next page.
			hi = bus.Read(ptr & 0xff00)
		} else {
			hi = bus.Read(ptr + 1)
		}
		addr := mask.Word(hi, lo)
		return operand{addr: addr} // JMP uses addr as the new PC, not as data

	case IndirectX:
		d := bus.Read(c.PC)
		c.PC++
		ptr := d + c.X // wraps within page zero
		lo := bus.Read(uint16(ptr))
		hi := bus.Read(uint16(ptr + 1)) // also wraps within page zero
		addr := mask.Word(hi, lo)
		return operand{addr: addr, val: bus.Read(addr)}

	case IndirectY:
		d := bus.Read(c.PC)
		c.PC++
		lo := bus.Read(uint16(d))
		hi := bus.Read(uint16(d + 1)) // wraps within page zero
		base := mask.Word(hi, lo)
		addr := base + uint16(c.Y)
		crossed := addr&0xff00 != base&0xff00
		return operand{addr: addr, val: bus.Read(addr), pageCrossed: crossed}

	case Relative:
		offset := int8(bus.Read(c.PC))
		c.PC++
		// Relative to PC already advanced past the offset byte.
		target := uint16(int32(c.PC) + int32(offset))
		crossed := target&0xff00 != c.PC&0xff00
		return operand{addr: target, pageCrossed: crossed}

	default:
		return operand{}
	}
}
