package cpu

// The status register (P) packs seven flags into a single byte. Storing it
// packed -- rather than as eight bool fields -- is what makes PHP/PLP/BRK/RTI
// correct: those instructions manipulate specific bit patterns (forcing B and
// U to 1 only in the pushed copy, never in the live P) that are easy to get
// right against a byte and easy to get subtly wrong against a struct of
// bools.
//
// 7 6 5 4 3 2 1 0
// N V U B D I Z C
const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagI uint8 = 1 << 2 // Interrupt disable
	FlagD uint8 = 1 << 3 // Decimal (tracked, ignored by arithmetic on the NES)
	FlagB uint8 = 1 << 4 // Break -- meaningful only in a pushed copy of P
	FlagU uint8 = 1 << 5 // Unused, conventionally 1
	FlagV uint8 = 1 << 6 // Overflow
	FlagN uint8 = 1 << 7 // Negative
)

func (c *Cpu) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *Cpu) setFlag(flag uint8, v bool) {
	if v {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// setZN sets the Zero and Negative flags from result, as almost every
// operation in the catalog does.
func (c *Cpu) setZN(result byte) {
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, result&0x80 != 0)
}
