// Command nesdbg is an interactive step-debugger for the nes6502 core: it
// loads a session config (a ROM or a raw program), steps the Cpu on
// keypress, and renders register/flag state alongside a disassembly
// listing.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"nes6502/config"
	"nes6502/cpu"
	"nes6502/mem"
	"nes6502/rom"
	"nes6502/trace"
)

func main() {
	configPath := flag.String("config", "", "path to a session YAML file")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("nesdbg: -config is required")
	}

	session, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("nesdbg: %v", err)
	}

	bus, origin, err := buildBus(session)
	if err != nil {
		log.Fatalf("nesdbg: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := cpu.New()
	c.Trace = trace.New(logger)
	c.Reset(bus)
	if origin != 0 {
		c.PC = origin
	}

	breakpoints, err := session.BreakpointAddrs()
	if err != nil {
		log.Fatalf("nesdbg: %v", err)
	}

	m := newModel(c, bus, session.Steps, breakpoints, logger)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "nesdbg:", err)
		os.Exit(1)
	}
}

// buildBus constructs a Bus per the session config: an iNES image when ROM
// is set, otherwise a raw program staged at ProgramAt via Bus.LoadProgram.
func buildBus(session *config.Session) (*mem.Bus, uint16, error) {
	if session.ROM != "" {
		f, err := os.Open(session.ROM)
		if err != nil {
			return nil, 0, fmt.Errorf("opening rom: %w", err)
		}
		defer f.Close()

		img, err := rom.Load(f)
		if err != nil {
			return nil, 0, fmt.Errorf("loading rom: %w", err)
		}
		bus := mem.NewBus(img.PRGROM)
		return bus, img.ResetVector(), nil
	}

	addr, err := session.ProgramLoadAddr()
	if err != nil {
		return nil, 0, fmt.Errorf("parsing programAt: %w", err)
	}

	bus := mem.NewBus(nil)
	if session.Program != "" {
		raw, err := os.ReadFile(session.Program)
		if err != nil {
			return nil, 0, fmt.Errorf("reading program: %w", err)
		}
		bus.LoadProgram(addr, raw)
	}
	return bus, addr, nil
}
