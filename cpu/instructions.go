package cpu

import "nes6502/mem"

// Each function below implements one mnemonic's effect given an already
// resolved operand. None of them touch PC except the control-flow family
// (JMP/JSR/RTS/RTI/BRK) and the branches; everything else only reads
// op.val, writes op.addr (or A), and updates P.
//
// Reference: https://www.nesdev.org/obelisk-6502-guide/reference.html

// readRMW returns the byte an instruction should treat as its input: A for
// Accumulator mode, the byte already read into op.val otherwise.
func readRMW(c *Cpu, op operand) byte {
	if op.accumulator {
		return c.A
	}
	return op.val
}

// writeRMW stores a computed result back to wherever op came from.
func writeRMW(c *Cpu, bus *mem.Bus, op operand, result byte) {
	if op.accumulator {
		c.A = result
		return
	}
	bus.Write(op.addr, result)
}

// --- Load/store --------------------------------------------------------

func lda(c *Cpu, bus *mem.Bus, op operand) {
	c.A = op.val
	c.setZN(c.A)
}

func ldx(c *Cpu, bus *mem.Bus, op operand) {
	c.X = op.val
	c.setZN(c.X)
}

func ldy(c *Cpu, bus *mem.Bus, op operand) {
	c.Y = op.val
	c.setZN(c.Y)
}

func sta(c *Cpu, bus *mem.Bus, op operand) {
	bus.Write(op.addr, c.A)
}

func stx(c *Cpu, bus *mem.Bus, op operand) {
	bus.Write(op.addr, c.X)
}

func sty(c *Cpu, bus *mem.Bus, op operand) {
	bus.Write(op.addr, c.Y)
}

// --- Transfers -----------------------------------------------------------

func tax(c *Cpu, bus *mem.Bus, op operand) { c.X = c.A; c.setZN(c.X) }
func tay(c *Cpu, bus *mem.Bus, op operand) { c.Y = c.A; c.setZN(c.Y) }
func tsx(c *Cpu, bus *mem.Bus, op operand) { c.X = c.SP; c.setZN(c.X) }
func txa(c *Cpu, bus *mem.Bus, op operand) { c.A = c.X; c.setZN(c.A) }
func tya(c *Cpu, bus *mem.Bus, op operand) { c.A = c.Y; c.setZN(c.A) }
func txs(c *Cpu, bus *mem.Bus, op operand) { c.SP = c.X } // no flags

// --- Stack -----------------------------------------------------------------

func pha(c *Cpu, bus *mem.Bus, op operand) { c.push(bus, c.A) }

func php(c *Cpu, bus *mem.Bus, op operand) {
	c.push(bus, c.P|FlagB|FlagU)
}

func pla(c *Cpu, bus *mem.Bus, op operand) {
	c.A = c.pull(bus)
	c.setZN(c.A)
}

func plp(c *Cpu, bus *mem.Bus, op operand) {
	c.pullStatus(bus)
}

// --- Arithmetic --------------------------------------------------------

// addWithCarry is the shared 9-bit-sum core of ADC and SBC. SBC calls it
// with m complemented, per spec: SBC(A, M, C) == ADC(A, M^0xFF, C).
func addWithCarry(c *Cpu, m byte) {
	carryIn := uint16(0)
	if c.getFlag(FlagC) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := byte(sum)

	c.setFlag(FlagC, sum >= 0x100)
	c.setFlag(FlagV, (c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func adc(c *Cpu, bus *mem.Bus, op operand) {
	addWithCarry(c, op.val)
}

func sbc(c *Cpu, bus *mem.Bus, op operand) {
	addWithCarry(c, op.val^0xff)
}

// --- Logical -------------------------------------------------------------

func and(c *Cpu, bus *mem.Bus, op operand) { c.A &= op.val; c.setZN(c.A) }
func ora(c *Cpu, bus *mem.Bus, op operand) { c.A |= op.val; c.setZN(c.A) }
func eor(c *Cpu, bus *mem.Bus, op operand) { c.A ^= op.val; c.setZN(c.A) }

func bit(c *Cpu, bus *mem.Bus, op operand) {
	c.setFlag(FlagZ, c.A&op.val == 0)
	c.setFlag(FlagN, op.val&0x80 != 0)
	c.setFlag(FlagV, op.val&0x40 != 0)
}

// --- Shifts and rotates --------------------------------------------------

func asl(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	c.setFlag(FlagC, v&0x80 != 0)
	result := v << 1
	writeRMW(c, bus, op, result)
	c.setZN(result)
}

// lsr always clears N (bit 7 of the result of a right shift of an 8-bit
// value is always 0); Z still reflects the result rather than being forced.
func lsr(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	c.setFlag(FlagC, v&0x01 != 0)
	result := v >> 1
	writeRMW(c, bus, op, result)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
}

func rol(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	oldCarry := byte(0)
	if c.getFlag(FlagC) {
		oldCarry = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	result := (v << 1) | oldCarry
	writeRMW(c, bus, op, result)
	c.setZN(result)
}

func ror(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	oldCarry := byte(0)
	if c.getFlag(FlagC) {
		oldCarry = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	result := (v >> 1) | oldCarry
	writeRMW(c, bus, op, result)
	c.setZN(result)
}

// --- Increments/decrements -----------------------------------------------

func inc(c *Cpu, bus *mem.Bus, op operand) {
	result := op.val + 1
	bus.Write(op.addr, result)
	c.setZN(result)
}

func dec(c *Cpu, bus *mem.Bus, op operand) {
	result := op.val - 1
	bus.Write(op.addr, result)
	c.setZN(result)
}

func inx(c *Cpu, bus *mem.Bus, op operand) { c.X++; c.setZN(c.X) }
func iny(c *Cpu, bus *mem.Bus, op operand) { c.Y++; c.setZN(c.Y) }
func dex(c *Cpu, bus *mem.Bus, op operand) { c.X--; c.setZN(c.X) }
func dey(c *Cpu, bus *mem.Bus, op operand) { c.Y--; c.setZN(c.Y) }

// --- Compares --------------------------------------------------------------

func compare(c *Cpu, r, m byte) {
	result := r - m
	c.setFlag(FlagC, r >= m)
	c.setFlag(FlagZ, r == m)
	c.setFlag(FlagN, result&0x80 != 0)
}

func cmp(c *Cpu, bus *mem.Bus, op operand) { compare(c, c.A, op.val) }
func cpx(c *Cpu, bus *mem.Bus, op operand) { compare(c, c.X, op.val) }
func cpy(c *Cpu, bus *mem.Bus, op operand) { compare(c, c.Y, op.val) }

// --- Control flow ----------------------------------------------------------

// jmp loads PC with the address the addressing mode already resolved --
// Absolute for JMP abs, Indirect (with its page-wrap bug) for JMP (ind).
func jmp(c *Cpu, bus *mem.Bus, op operand) {
	c.PC = op.addr
}

// jsr pushes the return-minus-one address. By the time this runs, Absolute
// addressing has already advanced PC past both operand bytes, so PC is
// exactly the return address; push PC-1 so RTS's pulled+1 lands back there.
func jsr(c *Cpu, bus *mem.Bus, op operand) {
	c.push16(bus, c.PC-1)
	c.PC = op.addr
}

func rts(c *Cpu, bus *mem.Bus, op operand) {
	c.PC = c.pull16(bus) + 1
}

// brk pads PC by one more byte, pushes it, pushes P with B and U forced to
// 1, sets I, and vectors through 0xFFFE/0xFFFF.
func brk(c *Cpu, bus *mem.Bus, op operand) {
	c.PC++
	c.push16(bus, c.PC)
	c.push(bus, c.P|FlagB|FlagU)
	c.setFlag(FlagI, true)
	c.PC = bus.ReadU16(0xfffe)
}

// rti pulls P (discarding the pulled B/U bits), then pulls PC directly --
// unlike RTS, no +1 follows.
func rti(c *Cpu, bus *mem.Bus, op operand) {
	c.pullStatus(bus)
	c.PC = c.pull16(bus)
}

// --- Branches --------------------------------------------------------------

// branch is shared by all eight conditional branches: Relative addressing
// has already computed the target address and consumed the offset byte;
// taking the branch is just assigning PC.
func branch(c *Cpu, op operand, taken bool) {
	if taken {
		c.PC = op.addr
	}
}

func beq(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, c.getFlag(FlagZ)) }
func bne(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, !c.getFlag(FlagZ)) }
func bcs(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, c.getFlag(FlagC)) }
func bcc(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, !c.getFlag(FlagC)) }
func bmi(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, c.getFlag(FlagN)) }
func bpl(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, !c.getFlag(FlagN)) }
func bvs(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, c.getFlag(FlagV)) }
func bvc(c *Cpu, bus *mem.Bus, op operand) { branch(c, op, !c.getFlag(FlagV)) }

// --- Flag ops ------------------------------------------------------------

func clc(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagC, false) }
func sec(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagC, true) }
func cld(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagD, false) }
func sed(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagD, true) }
func cli(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagI, false) }
func sei(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagI, true) }
func clv(c *Cpu, bus *mem.Bus, op operand) { c.setFlag(FlagV, false) }

// --- NOPs ------------------------------------------------------------------

// nop does nothing beyond what addressing-mode resolution already did
// (consuming the right number of operand bytes). Every documented and
// undocumented NOP variant in the table shares this.
func nop(c *Cpu, bus *mem.Bus, op operand) {}

// --- Unofficial read-modify-write combos -----------------------------------
//
// Each of these performs two documented effects back to back against the
// same resolved operand, exactly as the undocumented opcode's silicon
// behavior does: compute the RMW result, write it back, then fold it into
// an accumulator operation. They exist so a test ROM exercising them
// doesn't fall into the unknown-opcode path.

// slo: ASL operand, then ORA the result into A.
func slo(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	c.setFlag(FlagC, v&0x80 != 0)
	result := v << 1
	writeRMW(c, bus, op, result)
	c.A |= result
	c.setZN(c.A)
}

// rla: ROL operand, then AND the result into A.
func rla(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	oldCarry := byte(0)
	if c.getFlag(FlagC) {
		oldCarry = 1
	}
	c.setFlag(FlagC, v&0x80 != 0)
	result := (v << 1) | oldCarry
	writeRMW(c, bus, op, result)
	c.A &= result
	c.setZN(c.A)
}

// sre: LSR operand, then EOR the result into A.
func sre(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	c.setFlag(FlagC, v&0x01 != 0)
	result := v >> 1
	writeRMW(c, bus, op, result)
	c.A ^= result
	c.setZN(c.A)
}

// rra: ROR operand, then ADC the result into A.
func rra(c *Cpu, bus *mem.Bus, op operand) {
	v := readRMW(c, op)
	oldCarry := byte(0)
	if c.getFlag(FlagC) {
		oldCarry = 0x80
	}
	c.setFlag(FlagC, v&0x01 != 0)
	result := (v >> 1) | oldCarry
	writeRMW(c, bus, op, result)
	addWithCarry(c, result)
}

// isc (ISB): INC operand, then SBC the result from A.
func isc(c *Cpu, bus *mem.Bus, op operand) {
	result := op.val + 1
	bus.Write(op.addr, result)
	addWithCarry(c, result^0xff)
}

// dcp: DEC operand, then CMP A against the result.
func dcp(c *Cpu, bus *mem.Bus, op operand) {
	result := op.val - 1
	bus.Write(op.addr, result)
	compare(c, c.A, result)
}

// lax: LDA and LDX in one step, both from the same resolved operand.
func lax(c *Cpu, bus *mem.Bus, op operand) {
	c.A = op.val
	c.X = op.val
	c.setZN(c.A)
}

// sax: store A AND X; affects no flags.
func sax(c *Cpu, bus *mem.Bus, op operand) {
	bus.Write(op.addr, c.A&c.X)
}
