package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassembleWalksInstructionBoundaries(t *testing.T) {
	// LDA #$05; ADC #$03; BRK
	prg := []byte{0xa9, 0x05, 0x69, 0x03, 0x00}

	lines, err := Disassemble(prg, 0x8000)

	assert.NoError(t, err)
	assert.Len(t, lines, 3)
	assert.Equal(t, uint16(0x8000), lines[0].Addr)
	assert.Equal(t, "LDA $05", lines[0].Text)
	assert.Equal(t, uint16(0x8002), lines[1].Addr)
	assert.Equal(t, "ADC $03", lines[1].Text)
	assert.Equal(t, uint16(0x8004), lines[2].Addr)
	assert.Equal(t, "BRK", lines[2].Text)
}

func TestDisassembleHandlesUnknownOpcodeAsByteLiteral(t *testing.T) {
	prg := []byte{0x02, 0xea} // 0x02 has no table entry; 0xea is NOP

	lines, err := Disassemble(prg, 0x8000)

	assert.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, ".byte $02", lines[0].Text)
	assert.Equal(t, "NOP", lines[1].Text)
}

func TestDisassembleOrdersByAddressAcrossChunks(t *testing.T) {
	prg := make([]byte, 64)
	for i := range prg {
		prg[i] = 0xea // NOP, one byte each -- plenty of instruction boundaries to split on
	}

	lines, err := Disassemble(prg, 0x8000)

	assert.NoError(t, err)
	assert.Len(t, lines, 64)
	for i, line := range lines {
		assert.Equal(t, uint16(0x8000+i), line.Addr)
	}
}

func TestDisassembleEmptyImage(t *testing.T) {
	lines, err := Disassemble(nil, 0x8000)
	assert.NoError(t, err)
	assert.Nil(t, lines)
}
