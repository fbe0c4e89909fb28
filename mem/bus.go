// Package mem implements the NES CPU-visible address bus: a 16-bit address
// space decoded into internal RAM, the PPU register window, APU/IO ports, an
// OAM-DMA trigger byte, optional cartridge RAM, and PRG-ROM.
//
// A Bus has no behaviour of its own beyond address decoding and the
// mirroring each region calls for. It does not know about opcodes, flags, or
// the instruction cycle. The Cpu is its only writer during execution; tooling
// such as the debugger also reads it, and LoadProgram stages programs into it.
package mem

const (
	ramSize    = 0x0800 // 2 KiB internal RAM, mirrored through 0x1fff
	ramEnd     = 0x1fff
	ppuStart   = 0x2000
	ppuEnd     = 0x3fff
	ppuRegs    = 8 // 8-byte PPU register window, mirrored through 0x3fff
	apuIOStart = 0x4000
	apuIOSize  = 0x18 // 0x4000-0x4017 inclusive
	oamDMAAddr = 0x4014
	cartStart  = 0x6000
	cartEnd    = 0x7fff
	cartSize   = 0x2000 // 8 KiB cartridge (save) RAM
	prgStart   = 0x8000
)

// A Bus is the CPU-side memory map of an NES. It is constructed once with a
// fixed PRG-ROM image; everything else starts zeroed.
type Bus struct {
	ram     [ramSize]byte
	ppuRegs [ppuRegs]byte
	apuIO   [apuIOSize]byte
	oamDMA  byte
	cartRAM [cartSize]byte
	prg     []byte // retained across Reset; owned by the cartridge, not the Bus
}

// NewBus constructs a Bus backed by the given PRG-ROM image. Any non-empty
// length is accepted; addressing into it wraps modulo len(prg), which is how
// a 16 KiB cartridge ends up mirrored into both halves of 0x8000-0xffff.
func NewBus(prg []byte) *Bus {
	return &Bus{prg: prg}
}

// Read returns the byte backing addr, applying the region's mirroring rule.
// Unmapped addresses read as 0.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr <= ramEnd:
		return b.ram[addr%ramSize]

	case addr >= ppuStart && addr <= ppuEnd:
		return b.ppuRegs[(addr-ppuStart)%ppuRegs]

	case addr == oamDMAAddr:
		return b.oamDMA

	case addr >= apuIOStart && addr < apuIOStart+apuIOSize:
		return b.apuIO[addr-apuIOStart]

	case addr >= cartStart && addr <= cartEnd:
		return b.cartRAM[addr-cartStart]

	case addr >= prgStart:
		if len(b.prg) == 0 {
			return 0
		}
		return b.prg[int(addr-prgStart)%len(b.prg)]

	default:
		return 0
	}
}

// Write stores value at addr, applying the region's mirroring rule. Writes
// into PRG-ROM (0x8000-0xffff) are silently discarded, as are writes to
// unmapped addresses.
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr <= ramEnd:
		b.ram[addr%ramSize] = value

	case addr >= ppuStart && addr <= ppuEnd:
		b.ppuRegs[(addr-ppuStart)%ppuRegs] = value

	case addr == oamDMAAddr:
		b.oamDMA = value

	case addr >= apuIOStart && addr < apuIOStart+apuIOSize:
		b.apuIO[addr-apuIOStart] = value

	case addr >= cartStart && addr <= cartEnd:
		b.cartRAM[addr-cartStart] = value

		// 0x8000-0xffff (PRG-ROM) and anything unmapped: no-op.
	}
}

// ReadU16 composes a little-endian 16-bit value from Read(addr) and
// Read(addr+1). Address arithmetic wraps modulo 2^16; there is no
// page-boundary special-casing here -- that bug belongs to the Cpu's
// Indirect addressing mode, not the Bus.
func (b *Bus) ReadU16(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Reset zeroes internal RAM, cartridge RAM, mirrored PPU/APU storage, and the
// OAM-DMA byte. PRG-ROM is retained, since it belongs to the cartridge, not
// to working memory.
func (b *Bus) Reset() {
	b.ram = [ramSize]byte{}
	b.ppuRegs = [ppuRegs]byte{}
	b.apuIO = [apuIOSize]byte{}
	b.oamDMA = 0
	b.cartRAM = [cartSize]byte{}
}

// PRGSnapshot returns the PRG-ROM image currently backing the Bus, for
// tooling (the disassembler) that wants to walk it without going through
// Read. The returned slice aliases the Bus's own backing array.
func (b *Bus) PRGSnapshot() []byte {
	return b.prg
}

// LoadProgram copies program into memory starting at addr. Ordinarily a ROM
// image is mastered onto the cartridge before the console ever sees it
// rather than "written" through the bus, so this bypasses the PRG-ROM
// write-protect; it is the entry point test harnesses and the debugger use
// to stage a hand-assembled program without going through the full rom.Load
// pipeline. When addr falls in the PRG-ROM window and no image has been
// loaded yet, a 32 KiB scratch image is allocated on demand.
func (b *Bus) LoadProgram(addr uint16, program []byte) {
	for i, v := range program {
		a := addr + uint16(i)
		switch {
		case a <= ramEnd:
			b.ram[a%ramSize] = v
		case a >= cartStart && a <= cartEnd:
			b.cartRAM[a-cartStart] = v
		case a >= prgStart:
			if len(b.prg) == 0 {
				b.prg = make([]byte, 0x8000)
			}
			idx := int(a-prgStart) % len(b.prg)
			b.prg[idx] = v
		}
	}
}
