// Package config loads the YAML session description cmd/nesdbg runs
// against: either a ROM path or a raw program plus a load address, a step
// budget, a log level, and a set of breakpoints.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// A Session describes one debugger run. Exactly one of ROM or Program
// should be set; ROM takes precedence if both are. ProgramAt gives the
// load address for Program and is ignored when ROM is set.
type Session struct {
	ROM         string   `yaml:"rom"`
	Program     string   `yaml:"program"`
	ProgramAt   string   `yaml:"programAt"`
	Steps       int      `yaml:"steps"`
	LogLevel    string   `yaml:"logLevel"`
	Breakpoints []string `yaml:"breakpoints"`
}

// Load parses the YAML document at path into a Session. Steps defaults to
// 1000 and LogLevel defaults to "info" when left unset.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if s.Steps == 0 {
		s.Steps = 1000
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	return &s, nil
}

// ProgramLoadAddr parses ProgramAt (a "0xNNNN"-style string) into a 16-bit
// address. It is only meaningful when ROM is empty.
func (s *Session) ProgramLoadAddr() (uint16, error) {
	return parseHexWord(s.ProgramAt)
}

// BreakpointAddrs parses every entry in Breakpoints into 16-bit addresses,
// stopping at the first one that doesn't parse.
func (s *Session) BreakpointAddrs() ([]uint16, error) {
	out := make([]uint16, 0, len(s.Breakpoints))
	for _, raw := range s.Breakpoints {
		addr, err := parseHexWord(raw)
		if err != nil {
			return nil, fmt.Errorf("config: breakpoint %q: %w", raw, err)
		}
		out = append(out, addr)
	}
	return out, nil
}

func parseHexWord(raw string) (uint16, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	v, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
