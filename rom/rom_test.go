package rom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildImage(prgBanks, chrBanks int, flags6, flags7 byte, trainer bool, prg, chr []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(byte(prgBanks))
	buf.WriteByte(byte(chrBanks))
	buf.WriteByte(flags6)
	buf.WriteByte(flags7)
	buf.Write(make([]byte, 8)) // remaining header bytes, unused here
	if trainer {
		buf.Write(make([]byte, 512))
	}
	buf.Write(prg)
	buf.Write(chr)
	return buf.Bytes()
}

func TestLoadParsesHeaderAndSlices(t *testing.T) {
	prg := make([]byte, 16*1024)
	prg[0] = 0xa9
	chr := make([]byte, 8*1024)
	chr[0] = 0x7e

	data := buildImage(1, 1, 0x01, 0x00, false, prg, chr)
	img, err := Load(bytes.NewReader(data))

	assert.NoError(t, err)
	assert.Len(t, img.PRGROM, 16*1024)
	assert.Len(t, img.CHRROM, 8*1024)
	assert.Equal(t, byte(0xa9), img.PRGROM[0])
	assert.Equal(t, byte(0x7e), img.CHRROM[0])
	assert.False(t, img.HasTrainer)
}

func TestLoadSkipsTrainer(t *testing.T) {
	prg := []byte{0x60}
	data := buildImage(1, 0, 0x04, 0x00, true, append(prg, make([]byte, 16*1024-1)...), nil)

	img, err := Load(bytes.NewReader(data))

	assert.NoError(t, err)
	assert.True(t, img.HasTrainer)
	assert.Equal(t, byte(0x60), img.PRGROM[0])
}

func TestLoadDecodesMapperFromBothNibbles(t *testing.T) {
	prg := make([]byte, 16*1024)
	data := buildImage(1, 0, 0x10, 0x40, false, prg, nil) // low nibble 1, high nibble 4 -> mapper 0x41

	img, err := Load(bytes.NewReader(data))

	assert.NoError(t, err)
	assert.Equal(t, uint8(0x41), img.Mapper)
}

func TestLoadRejectsShortFile(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{0x4e, 0x45, 0x53}))
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildImage(1, 0, 0, 0, false, make([]byte, 16*1024), nil)
	data[0] = 'X'

	_, err := Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestResetVectorReadsLastFourBytes(t *testing.T) {
	prg := make([]byte, 16*1024)
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80

	img := &Image{PRGROM: prg}
	assert.Equal(t, uint16(0x8000), img.ResetVector())
}
