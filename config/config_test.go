package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTemp(t, `rom: testdata/nestest.nes`)

	s, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "testdata/nestest.nes", s.ROM)
	assert.Equal(t, 1000, s.Steps)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadHonorsExplicitFields(t *testing.T) {
	path := writeTemp(t, `
program: testdata/mul3.bin
programAt: "0x8000"
steps: 5000
logLevel: debug
breakpoints: ["0x8057", "0x9000"]
`)

	s, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "testdata/mul3.bin", s.Program)
	assert.Equal(t, 5000, s.Steps)
	assert.Equal(t, "debug", s.LogLevel)

	addr, err := s.ProgramLoadAddr()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8000), addr)

	bps, err := s.BreakpointAddrs()
	assert.NoError(t, err)
	assert.Equal(t, []uint16{0x8057, 0x9000}, bps)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBreakpointAddrsRejectsMalformedEntry(t *testing.T) {
	s := &Session{Breakpoints: []string{"not-hex"}}
	_, err := s.BreakpointAddrs()
	assert.Error(t, err)
}
