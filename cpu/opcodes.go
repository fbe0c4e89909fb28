package cpu

import "nes6502/mem"

// An opcodeEntry is everything ExecNextInstr needs once it has the opcode
// byte: which addressing mode consumes the operand bytes, which function
// carries out the operation, a name for diagnostics/disassembly, and a
// cycle count for a host driver that wants to approximate real timing.
// Cycle counts here are the un-penalized base counts; a taken branch or a
// page-crossing indexed read costs one or two more cycles on real hardware,
// exposed to callers via Cpu.LastPageCrossed rather than baked into Cycles.
type opcodeEntry struct {
	Mode    AddressingMode
	Exec    func(c *Cpu, bus *mem.Bus, op operand)
	Mnemonic string
	Cycles  byte
}

// opcodeTable lists every byte value this Cpu recognizes: the 56 documented
// operations across their addressing-mode variants, plus the undocumented
// extension (NOPs, LAX/SAX, and the unofficial read-modify-write combos)
// needed to run test ROMs like nestest. A byte with no entry here takes the
// unknown-opcode path in ExecNextInstr.
//
// Source for mnemonic/mode/cycle assignment:
// https://www.nesdev.org/obelisk-6502-guide/reference.html and, for the
// unofficial opcodes, https://www.nesdev.org/wiki/CPU_unofficial_opcodes.
var opcodeTable = map[byte]opcodeEntry{
	// ADC
	0x69: {Immediate, adc, "ADC", 2},
	0x65: {ZeroPage, adc, "ADC", 3},
	0x75: {ZeroPageX, adc, "ADC", 4},
	0x6D: {Absolute, adc, "ADC", 4},
	0x7D: {AbsoluteX, adc, "ADC", 4},
	0x79: {AbsoluteY, adc, "ADC", 4},
	0x61: {IndirectX, adc, "ADC", 6},
	0x71: {IndirectY, adc, "ADC", 5},

	// AND
	0x29: {Immediate, and, "AND", 2},
	0x25: {ZeroPage, and, "AND", 3},
	0x35: {ZeroPageX, and, "AND", 4},
	0x2D: {Absolute, and, "AND", 4},
	0x3D: {AbsoluteX, and, "AND", 4},
	0x39: {AbsoluteY, and, "AND", 4},
	0x21: {IndirectX, and, "AND", 6},
	0x31: {IndirectY, and, "AND", 5},

	// ASL
	0x0A: {Accumulator, asl, "ASL", 2},
	0x06: {ZeroPage, asl, "ASL", 5},
	0x16: {ZeroPageX, asl, "ASL", 6},
	0x0E: {Absolute, asl, "ASL", 6},
	0x1E: {AbsoluteX, asl, "ASL", 7},

	// BIT
	0x24: {ZeroPage, bit, "BIT", 3},
	0x2C: {Absolute, bit, "BIT", 4},

	// Branches
	0x10: {Relative, bpl, "BPL", 2},
	0x30: {Relative, bmi, "BMI", 2},
	0x50: {Relative, bvc, "BVC", 2},
	0x70: {Relative, bvs, "BVS", 2},
	0x90: {Relative, bcc, "BCC", 2},
	0xB0: {Relative, bcs, "BCS", 2},
	0xD0: {Relative, bne, "BNE", 2},
	0xF0: {Relative, beq, "BEQ", 2},

	// BRK
	0x00: {Implied, brk, "BRK", 7},

	// Compares
	0xC9: {Immediate, cmp, "CMP", 2},
	0xC5: {ZeroPage, cmp, "CMP", 3},
	0xD5: {ZeroPageX, cmp, "CMP", 4},
	0xCD: {Absolute, cmp, "CMP", 4},
	0xDD: {AbsoluteX, cmp, "CMP", 4},
	0xD9: {AbsoluteY, cmp, "CMP", 4},
	0xC1: {IndirectX, cmp, "CMP", 6},
	0xD1: {IndirectY, cmp, "CMP", 5},

	0xE0: {Immediate, cpx, "CPX", 2},
	0xE4: {ZeroPage, cpx, "CPX", 3},
	0xEC: {Absolute, cpx, "CPX", 4},

	0xC0: {Immediate, cpy, "CPY", 2},
	0xC4: {ZeroPage, cpy, "CPY", 3},
	0xCC: {Absolute, cpy, "CPY", 4},

	// DEC
	0xC6: {ZeroPage, dec, "DEC", 5},
	0xD6: {ZeroPageX, dec, "DEC", 6},
	0xCE: {Absolute, dec, "DEC", 6},
	0xDE: {AbsoluteX, dec, "DEC", 7},

	// EOR
	0x49: {Immediate, eor, "EOR", 2},
	0x45: {ZeroPage, eor, "EOR", 3},
	0x55: {ZeroPageX, eor, "EOR", 4},
	0x4D: {Absolute, eor, "EOR", 4},
	0x5D: {AbsoluteX, eor, "EOR", 4},
	0x59: {AbsoluteY, eor, "EOR", 4},
	0x41: {IndirectX, eor, "EOR", 6},
	0x51: {IndirectY, eor, "EOR", 5},

	// Flag ops
	0x18: {Implied, clc, "CLC", 2},
	0x38: {Implied, sec, "SEC", 2},
	0x58: {Implied, cli, "CLI", 2},
	0x78: {Implied, sei, "SEI", 2},
	0xB8: {Implied, clv, "CLV", 2},
	0xD8: {Implied, cld, "CLD", 2},
	0xF8: {Implied, sed, "SED", 2},

	// INC
	0xE6: {ZeroPage, inc, "INC", 5},
	0xF6: {ZeroPageX, inc, "INC", 6},
	0xEE: {Absolute, inc, "INC", 6},
	0xFE: {AbsoluteX, inc, "INC", 7},

	// Transfers / register increment-decrement
	0xAA: {Implied, tax, "TAX", 2},
	0x8A: {Implied, txa, "TXA", 2},
	0xCA: {Implied, dex, "DEX", 2},
	0xE8: {Implied, inx, "INX", 2},
	0xA8: {Implied, tay, "TAY", 2},
	0x98: {Implied, tya, "TYA", 2},
	0x88: {Implied, dey, "DEY", 2},
	0xC8: {Implied, iny, "INY", 2},
	0x9A: {Implied, txs, "TXS", 2},
	0xBA: {Implied, tsx, "TSX", 2},

	// JMP / JSR / RTS / RTI
	0x4C: {Absolute, jmp, "JMP", 3},
	0x6C: {Indirect, jmp, "JMP", 5},
	0x20: {Absolute, jsr, "JSR", 6},
	0x60: {Implied, rts, "RTS", 6},
	0x40: {Implied, rti, "RTI", 6},

	// Loads
	0xA9: {Immediate, lda, "LDA", 2},
	0xA5: {ZeroPage, lda, "LDA", 3},
	0xB5: {ZeroPageX, lda, "LDA", 4},
	0xAD: {Absolute, lda, "LDA", 4},
	0xBD: {AbsoluteX, lda, "LDA", 4},
	0xB9: {AbsoluteY, lda, "LDA", 4},
	0xA1: {IndirectX, lda, "LDA", 6},
	0xB1: {IndirectY, lda, "LDA", 5},

	0xA2: {Immediate, ldx, "LDX", 2},
	0xA6: {ZeroPage, ldx, "LDX", 3},
	0xB6: {ZeroPageY, ldx, "LDX", 4},
	0xAE: {Absolute, ldx, "LDX", 4},
	0xBE: {AbsoluteY, ldx, "LDX", 4},

	0xA0: {Immediate, ldy, "LDY", 2},
	0xA4: {ZeroPage, ldy, "LDY", 3},
	0xB4: {ZeroPageX, ldy, "LDY", 4},
	0xAC: {Absolute, ldy, "LDY", 4},
	0xBC: {AbsoluteX, ldy, "LDY", 4},

	// LSR
	0x4A: {Accumulator, lsr, "LSR", 2},
	0x46: {ZeroPage, lsr, "LSR", 5},
	0x56: {ZeroPageX, lsr, "LSR", 6},
	0x4E: {Absolute, lsr, "LSR", 6},
	0x5E: {AbsoluteX, lsr, "LSR", 7},

	// NOP (official)
	0xEA: {Implied, nop, "NOP", 2},

	// ORA
	0x09: {Immediate, ora, "ORA", 2},
	0x05: {ZeroPage, ora, "ORA", 3},
	0x15: {ZeroPageX, ora, "ORA", 4},
	0x0D: {Absolute, ora, "ORA", 4},
	0x1D: {AbsoluteX, ora, "ORA", 4},
	0x19: {AbsoluteY, ora, "ORA", 4},
	0x01: {IndirectX, ora, "ORA", 6},
	0x11: {IndirectY, ora, "ORA", 5},

	// Stack
	0x48: {Implied, pha, "PHA", 3},
	0x68: {Implied, pla, "PLA", 4},
	0x08: {Implied, php, "PHP", 3},
	0x28: {Implied, plp, "PLP", 4},

	// ROL / ROR
	0x2A: {Accumulator, rol, "ROL", 2},
	0x26: {ZeroPage, rol, "ROL", 5},
	0x36: {ZeroPageX, rol, "ROL", 6},
	0x2E: {Absolute, rol, "ROL", 6},
	0x3E: {AbsoluteX, rol, "ROL", 7},

	0x6A: {Accumulator, ror, "ROR", 2},
	0x66: {ZeroPage, ror, "ROR", 5},
	0x76: {ZeroPageX, ror, "ROR", 6},
	0x6E: {Absolute, ror, "ROR", 6},
	0x7E: {AbsoluteX, ror, "ROR", 7},

	// SBC
	0xE9: {Immediate, sbc, "SBC", 2},
	0xE5: {ZeroPage, sbc, "SBC", 3},
	0xF5: {ZeroPageX, sbc, "SBC", 4},
	0xED: {Absolute, sbc, "SBC", 4},
	0xFD: {AbsoluteX, sbc, "SBC", 4},
	0xF9: {AbsoluteY, sbc, "SBC", 4},
	0xE1: {IndirectX, sbc, "SBC", 6},
	0xF1: {IndirectY, sbc, "SBC", 5},

	// Stores
	0x85: {ZeroPage, sta, "STA", 3},
	0x95: {ZeroPageX, sta, "STA", 4},
	0x8D: {Absolute, sta, "STA", 4},
	0x9D: {AbsoluteX, sta, "STA", 5},
	0x99: {AbsoluteY, sta, "STA", 5},
	0x81: {IndirectX, sta, "STA", 6},
	0x91: {IndirectY, sta, "STA", 6},

	0x86: {ZeroPage, stx, "STX", 3},
	0x96: {ZeroPageY, stx, "STX", 4},
	0x8E: {Absolute, stx, "STX", 4},

	0x84: {ZeroPage, sty, "STY", 3},
	0x94: {ZeroPageX, sty, "STY", 4},
	0x8C: {Absolute, sty, "STY", 4},

	// --- Unofficial extension ---------------------------------------------

	// Single-byte NOPs.
	0x1A: {Implied, nop, "NOP", 2},
	0x3A: {Implied, nop, "NOP", 2},
	0x5A: {Implied, nop, "NOP", 2},
	0x7A: {Implied, nop, "NOP", 2},
	0xDA: {Implied, nop, "NOP", 2},
	0xFA: {Implied, nop, "NOP", 2},

	// Two-byte NOPs, zero-page family.
	0x04: {ZeroPage, nop, "NOP", 3},
	0x44: {ZeroPage, nop, "NOP", 3},
	0x64: {ZeroPage, nop, "NOP", 3},
	0x14: {ZeroPageX, nop, "NOP", 4},
	0x34: {ZeroPageX, nop, "NOP", 4},
	0x54: {ZeroPageX, nop, "NOP", 4},
	0x74: {ZeroPageX, nop, "NOP", 4},
	0xD4: {ZeroPageX, nop, "NOP", 4},
	0xF4: {ZeroPageX, nop, "NOP", 4},

	// Two-byte NOPs, immediate family.
	0x80: {Immediate, nop, "NOP", 2},
	0x82: {Immediate, nop, "NOP", 2},
	0x89: {Immediate, nop, "NOP", 2},
	0xC2: {Immediate, nop, "NOP", 2},
	0xE2: {Immediate, nop, "NOP", 2},

	// Three-byte NOPs, absolute family.
	0x0C: {Absolute, nop, "NOP", 4},
	0x1C: {AbsoluteX, nop, "NOP", 4},
	0x3C: {AbsoluteX, nop, "NOP", 4},
	0x5C: {AbsoluteX, nop, "NOP", 4},
	0x7C: {AbsoluteX, nop, "NOP", 4},
	0xDC: {AbsoluteX, nop, "NOP", 4},
	0xFC: {AbsoluteX, nop, "NOP", 4},

	// SLO
	0x07: {ZeroPage, slo, "SLO", 5},
	0x17: {ZeroPageX, slo, "SLO", 6},
	0x0F: {Absolute, slo, "SLO", 6},
	0x1F: {AbsoluteX, slo, "SLO", 7},
	0x1B: {AbsoluteY, slo, "SLO", 7},
	0x03: {IndirectX, slo, "SLO", 8},
	0x13: {IndirectY, slo, "SLO", 8},

	// RLA
	0x27: {ZeroPage, rla, "RLA", 5},
	0x37: {ZeroPageX, rla, "RLA", 6},
	0x2F: {Absolute, rla, "RLA", 6},
	0x3F: {AbsoluteX, rla, "RLA", 7},
	0x3B: {AbsoluteY, rla, "RLA", 7},
	0x23: {IndirectX, rla, "RLA", 8},
	0x33: {IndirectY, rla, "RLA", 8},

	// SRE
	0x47: {ZeroPage, sre, "SRE", 5},
	0x57: {ZeroPageX, sre, "SRE", 6},
	0x4F: {Absolute, sre, "SRE", 6},
	0x5F: {AbsoluteX, sre, "SRE", 7},
	0x5B: {AbsoluteY, sre, "SRE", 7},
	0x43: {IndirectX, sre, "SRE", 8},
	0x53: {IndirectY, sre, "SRE", 8},

	// RRA
	0x67: {ZeroPage, rra, "RRA", 5},
	0x77: {ZeroPageX, rra, "RRA", 6},
	0x6F: {Absolute, rra, "RRA", 6},
	0x7F: {AbsoluteX, rra, "RRA", 7},
	0x7B: {AbsoluteY, rra, "RRA", 7},
	0x63: {IndirectX, rra, "RRA", 8},
	0x73: {IndirectY, rra, "RRA", 8},

	// ISC (ISB)
	0xE7: {ZeroPage, isc, "ISC", 5},
	0xF7: {ZeroPageX, isc, "ISC", 6},
	0xEF: {Absolute, isc, "ISC", 6},
	0xFF: {AbsoluteX, isc, "ISC", 7},
	0xFB: {AbsoluteY, isc, "ISC", 7},
	0xE3: {IndirectX, isc, "ISC", 8},
	0xF3: {IndirectY, isc, "ISC", 8},

	// DCP
	0xC7: {ZeroPage, dcp, "DCP", 5},
	0xD7: {ZeroPageX, dcp, "DCP", 6},
	0xCF: {Absolute, dcp, "DCP", 6},
	0xDF: {AbsoluteX, dcp, "DCP", 7},
	0xDB: {AbsoluteY, dcp, "DCP", 7},
	0xC3: {IndirectX, dcp, "DCP", 8},
	0xD3: {IndirectY, dcp, "DCP", 8},

	// LAX
	0xA7: {ZeroPage, lax, "LAX", 3},
	0xB7: {ZeroPageY, lax, "LAX", 4},
	0xAF: {Absolute, lax, "LAX", 4},
	0xBF: {AbsoluteY, lax, "LAX", 4},
	0xA3: {IndirectX, lax, "LAX", 6},
	0xB3: {IndirectY, lax, "LAX", 5},

	// SAX
	0x87: {ZeroPage, sax, "SAX", 3},
	0x97: {ZeroPageY, sax, "SAX", 4},
	0x8F: {Absolute, sax, "SAX", 4},
	0x83: {IndirectX, sax, "SAX", 6},
}

// operandSizes gives the number of operand bytes each mode consumes, for
// disasm's static walk: it needs to know how far to advance without
// executing anything.
var operandSizes = map[AddressingMode]int{
	Implied:     0,
	Accumulator: 0,
	Immediate:   1,
	ZeroPage:    1,
	ZeroPageX:   1,
	ZeroPageY:   1,
	Absolute:    2,
	AbsoluteX:   2,
	AbsoluteY:   2,
	Indirect:    2,
	IndirectX:   1,
	IndirectY:   1,
	Relative:    1,
}

// Describe returns the mnemonic, addressing mode, and total instruction
// length (opcode byte + operand bytes) for opcode, and reports whether
// opcode has a table entry at all. disasm uses this to walk a PRG-ROM image
// without touching a Cpu.
func Describe(opcode byte) (mnemonic string, mode AddressingMode, size int, ok bool) {
	entry, ok := opcodeTable[opcode]
	if !ok {
		return "", 0, 0, false
	}
	return entry.Mnemonic, entry.Mode, 1 + operandSizes[entry.Mode], true
}
